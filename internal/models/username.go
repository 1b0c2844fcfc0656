package models

import "strings"

// NormalizeUsername trims and case-folds a username into its counter key form.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
