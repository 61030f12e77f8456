// Package fuzzy decides whether two keywords should be treated as the same term.
//
// Two rules exist and each caller uses exactly one of them:
//   - Matches (substring containment) compares job keywords with resume keywords.
//   - Similar (edit-distance similarity above SimilarityThreshold) compares short
//     skill names with job keywords.
//
// Both rules are symmetric and deterministic.
package fuzzy

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// SimilarityThreshold is the similarity two terms must exceed to be Similar.
const SimilarityThreshold = 0.8

// Distance returns the Levenshtein edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns (maxLen - Distance(a, b)) / maxLen in [0, 1], where maxLen is
// the rune length of the longer string. Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1.0
	}
	return float64(maxLen-Distance(a, b)) / float64(maxLen)
}

// Similar reports whether a and b are close enough by edit distance.
func Similar(a, b string) bool {
	return Similarity(a, b) > SimilarityThreshold
}

// Matches reports whether either term contains the other. An empty term only
// matches another empty term.
func Matches(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// AnyMatch reports whether term Matches at least one candidate.
func AnyMatch(term string, candidates []string) bool {
	for _, c := range candidates {
		if Matches(term, c) {
			return true
		}
	}
	return false
}
