package models

// ViewDelta is one entry of a bulk view increment.
type ViewDelta struct {
	Username string `json:"username"`
	Delta    int64  `json:"delta"`
}

// BulkIncrementResult reports how the entries of one bulk increment were applied.
// Entries are independent: a missing or failed entry never affects the others.
type BulkIncrementResult struct {
	Applied int
	Missing int
	Failed  int
}

// ViewDeltasFromCounts converts a pending count map into an unordered delta list.
func ViewDeltasFromCounts(counts map[string]int64) []ViewDelta {
	deltas := make([]ViewDelta, 0, len(counts))
	for username, delta := range counts {
		deltas = append(deltas, ViewDelta{Username: username, Delta: delta})
	}
	return deltas
}

// TotalViews sums the deltas.
func TotalViews(deltas []ViewDelta) int64 {
	var total int64
	for _, d := range deltas {
		total += d.Delta
	}
	return total
}
