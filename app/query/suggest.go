package query

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	maxSuggestions  = 3
	similarityFloor = 0.3
)

// Suggest returns up to limit vocabulary entries most similar to the query,
// most similar first. Candidates below the similarity floor are dropped.
func Suggest(query string, vocabulary []string, limit int) []string {
	type scored struct {
		value string
		sim   float64
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var candidates []scored
	for _, v := range vocabulary {
		sim := similarity(q, strings.ToLower(v))
		if sim >= similarityFloor {
			candidates = append(candidates, scored{value: v, sim: sim})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	suggestions := make([]string, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, c.value)
	}
	return suggestions
}

// similarity is a normalized edit-distance ratio in [0, 1]: 1 for equal
// strings, 0 for a full-length rewrite.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
