package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "ada", want: "ada"},
		{in: "  Ada.Lovelace ", want: "ada.lovelace"},
		{in: "\tGRACE\n", want: "grace"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeUsername(tt.in))
		})
	}
}

func TestPortfolioUpdate_Apply_OnlySetFields(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 2, 17, 10, 0, 0, 0, time.UTC)
	p := &Portfolio{
		ID:        "01HZX",
		FullName:  "Ada Lovelace",
		Role:      "Backend Engineer",
		Username:  "ada",
		Github:    "https://github.com/ada",
		Projects:  []Project{{ProjectName: "Engine", ProjectURL: "https://example.com", Description: "Analytical"}},
		Views:     7,
		CreatedAt: created,
	}

	role := "Staff Engineer"
	github := ""
	update := &PortfolioUpdate{Role: &role, Github: &github}
	update.Apply(p)

	assert.Equal(t, "Staff Engineer", p.Role)
	assert.Equal(t, "", p.Github)
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, "ada", p.Username)
	assert.Len(t, p.Projects, 1)
	assert.Equal(t, int64(7), p.Views)
	assert.Equal(t, created, p.CreatedAt)
}

func TestPortfolioUpdate_Apply_ReplacesProjects(t *testing.T) {
	t.Parallel()

	p := &Portfolio{Projects: []Project{{ProjectName: "Old"}}}
	update := &PortfolioUpdate{Projects: []Project{{ProjectName: "New"}, {ProjectName: "Newer"}}}
	update.Apply(p)

	assert.Equal(t, []Project{{ProjectName: "New"}, {ProjectName: "Newer"}}, p.Projects)
}

func TestViewDeltasFromCounts(t *testing.T) {
	t.Parallel()

	deltas := ViewDeltasFromCounts(map[string]int64{"ada": 3, "grace": 1})

	assert.ElementsMatch(t, []ViewDelta{{Username: "ada", Delta: 3}, {Username: "grace", Delta: 1}}, deltas)
	assert.Equal(t, int64(4), TotalViews(deltas))
	assert.Empty(t, ViewDeltasFromCounts(map[string]int64{}))
}
