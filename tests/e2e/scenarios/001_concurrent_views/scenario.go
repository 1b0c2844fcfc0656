package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic traffic and must match expected results.
const (
	portfolioCount    = 8    // Number of portfolios created for the run
	viewsPerPortfolio = 2500 // Views sent to every portfolio
)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"curl/7.88.1",
}

// ### End - fixed configs

type project struct {
	ProjectName string `json:"projectName"`
	ProjectURL  string `json:"projectUrl"`
	Description string `json:"description"`
}

type createRequest struct {
	FullName       string    `json:"fullName"`
	Role           string    `json:"role"`
	Location       string    `json:"location"`
	Username       string    `json:"username"`
	Bio            string    `json:"bio"`
	PrimaryFocus   string    `json:"primaryFocus"`
	SecondaryFocus string    `json:"secondaryFocus"`
	Stack          string    `json:"stack"`
	Tooling        string    `json:"tooling"`
	Projects       []project `json:"projects"`
}

type viewResponse struct {
	Data struct {
		Username string `json:"username"`
		Views    int64  `json:"views"`
	} `json:"data"`
}

// main runs the e2e scenario: 001_concurrent_views
//
// This scenario creates a set of portfolios and hammers GET /portfolios/{username}
// from parallel workers, then checks that no view was lost.
//
// What it tests:
//   - Portfolio creation via POST /portfolios
//   - Concurrent view recording for the same username (direct: atomic store
//     increments, buffered: in-memory coalescing plus periodic bulk flush)
//   - Flush on interval and on batch size threshold
//
// Expected results:
//   - Every create returns 201
//   - Every view returns 200
//   - After the flush wait, a final read of each portfolio reports exactly
//     viewsPerPortfolio views in buffered mode (the read's own view is still
//     pending) and viewsPerPortfolio+1 in direct mode
//
// Run the server with ignore_bots=false; the user agents above are not bots anyway.
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	// must match views.mode of the server
	viewMode := getEnv("VIEW_MODE", "buffered")
	parallel := getEnvInt("PARALLEL", 16)
	// longer than views.flush_interval_ms of the server
	flushWait := time.Duration(getEnvInt("FLUSH_WAIT_MS", 7000)) * time.Millisecond
	// keeps usernames unique across runs
	runID := strconv.FormatInt(time.Now().Unix(), 36)

	fmt.Println("Starting e2e scenario: 001_concurrent_views")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("VIEW_MODE: %s\n", viewMode)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("FLUSH_WAIT: %s\n", flushWait)
	fmt.Printf("PORTFOLIOS: %d, VIEWS_PER_PORTFOLIO: %d\n", portfolioCount, viewsPerPortfolio)
	fmt.Println()

	client := &http.Client{Timeout: 30 * time.Second}

	usernames := make([]string, 0, portfolioCount)
	for i := 0; i < portfolioCount; i++ {
		username := fmt.Sprintf("e2e-%s-%02d", runID, i)
		if err := createPortfolio(client, baseURL, username); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: create %s: %v\n", username, err)
			os.Exit(1)
		}
		usernames = append(usernames, username)
	}
	fmt.Printf("Created %d portfolios\n", len(usernames))

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var okRequests int64
	var failedRequests int64

	start := time.Now()
	for i := 0; i < viewsPerPortfolio; i++ {
		for _, username := range usernames {
			wg.Add(1)
			workerChan <- struct{}{} // Acquire worker slot

			go func(username, ua string) {
				defer wg.Done()
				defer func() { <-workerChan }() // Release worker slot

				if _, err := viewPortfolio(client, baseURL, username, ua); err != nil {
					atomic.AddInt64(&failedRequests, 1)
					fmt.Fprintf(os.Stderr, "ERROR: view %s: %v\n", username, err)
					return
				}
				atomic.AddInt64(&okRequests, 1)
			}(username, userAgents[i%len(userAgents)])
		}
	}
	wg.Wait()
	fmt.Printf("Sent %d views in %s (%d failed)\n", okRequests, time.Since(start), failedRequests)
	if failedRequests > 0 {
		os.Exit(1)
	}

	fmt.Printf("Waiting %s for pending views to flush...\n", flushWait)
	time.Sleep(flushWait)

	want := int64(viewsPerPortfolio)
	if viewMode == "direct" {
		want++
	}
	mismatches := 0
	for _, username := range usernames {
		views, err := viewPortfolio(client, baseURL, username, userAgents[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: final read %s: %v\n", username, err)
			os.Exit(1)
		}
		if views != want {
			mismatches++
			fmt.Fprintf(os.Stderr, "MISMATCH: %s has %d views, want %d\n", username, views, want)
			continue
		}
		fmt.Printf("%s: %d views\n", username, views)
	}

	fmt.Println()
	if mismatches > 0 {
		fmt.Fprintf(os.Stderr, "Scenario failed: %d portfolio(s) lost views\n", mismatches)
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func createPortfolio(client *http.Client, baseURL, username string) error {
	body, err := json.Marshal(createRequest{
		FullName:       "E2E Runner",
		Role:           "Load Tester",
		Location:       "Localhost",
		Username:       username,
		Bio:            "Generated by the concurrent views scenario.",
		PrimaryFocus:   "throughput",
		SecondaryFocus: "correctness",
		Stack:          "go",
		Tooling:        "curl",
		Projects: []project{{
			ProjectName: "views",
			ProjectURL:  "https://example.com/views",
			Description: "counts views",
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := client.Post(baseURL+"/portfolios", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
	}
	return nil
}

func viewPortfolio(client *http.Client, baseURL, username, userAgent string) (int64, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/portfolios/"+username, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var body viewResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return body.Data.Views, nil
}
