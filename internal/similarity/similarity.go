// Package similarity scores how well a candidate title covers a query title.
package similarity

import (
	"regexp"
	"strings"
)

var whitespace = regexp.MustCompile(`\s+`)

// Normalize lowercases, collapses runs of whitespace to single spaces, and
// trims the result.
func Normalize(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(strings.ToLower(s), " "))
}

// bigrams returns the set of overlapping 2-rune windows of s. A string
// shorter than two runes contributes itself as its only window.
func bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	set := make(map[string]struct{})
	if len(runes) < 2 {
		if len(runes) == 1 {
			set[string(runes)] = struct{}{}
		}
		return set
	}
	for i := 0; i < len(runes)-1; i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}

// Score returns the fraction of the query's bigrams found in the candidate,
// in [0,1]. The score is asymmetric: it measures how much of the query the
// candidate covers, not a distance. An empty query scores 0.
func Score(query, candidate string) float64 {
	a := bigrams(Normalize(query))
	if len(a) == 0 {
		return 0.0
	}
	b := bigrams(Normalize(candidate))
	shared := 0
	for g := range a {
		if _, ok := b[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(a))
}
