package core

import (
	"strings"

	"github.com/agext/levenshtein"
)

// suggestCutoff is the minimum similarity score for a fuzzy match to be
// offered to the user.
const suggestCutoff = 0.7

// Suggest proposes the closest name from universe for a mistyped
// candidate. It scores each name with a Levenshtein similarity ratio in
// [0,1] and returns the single best name scoring at least 0.7. Ties keep
// the first name encountered, so callers should pass universe in a
// stable order (catalog insertion order).
func Suggest(candidate string, universe []string) (string, bool) {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if candidate == "" {
		return "", false
	}
	best := ""
	bestScore := 0.0
	for _, name := range universe {
		score := levenshtein.Similarity(candidate, strings.ToLower(name), nil)
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	if bestScore < suggestCutoff {
		return "", false
	}
	return best, true
}
