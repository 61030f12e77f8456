// Package keywords turns free text into the term lists used for job matching.
package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxKeywords caps how many terms are kept per text. It also bounds the
	// pairwise matching work to MaxKeywords*MaxKeywords comparisons.
	MaxKeywords = 50
	// MinKeywordLength is the shortest token (in runes) that is kept.
	MinKeywordLength = 3
)

// stopWords holds common English function words that never count as keywords
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "shall": true, "a": true, "an": true,
	"this": true, "that": true, "these": true, "those": true,
}

// IsStopWord reports whether word (already lowercased) is in the stop-word set.
func IsStopWord(word string) bool {
	return stopWords[word]
}

// Extract returns the lowercase, deduplicated keywords of text in first-seen
// order, capped at MaxKeywords.
func Extract(text string) []string {
	if text == "" {
		return []string{}
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	keywords := make([]string, 0, MaxKeywords)
	seen := make(map[string]bool)
	for _, token := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(token) < MinKeywordLength || stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
		if len(keywords) == MaxKeywords {
			break
		}
	}
	return keywords
}
