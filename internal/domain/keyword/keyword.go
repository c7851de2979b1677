// Package keyword implements the term model the retrieval core runs on:
// extraction of search terms from free text and naive term-hit scoring.
package keyword

import (
	"regexp"
	"strings"
)

// Extraction limits. Queries keep fewer terms than ingested pages so a
// verbose question cannot dominate the scan.
const (
	// QueryLimit caps keywords extracted from a search query.
	QueryLimit = 5
	// PageLimit caps keywords stored with an ingested page.
	PageLimit = 10

	// minTokenLength is exclusive: tokens of this length or shorter are dropped.
	minTokenLength = 3
)

var tokenPattern = regexp.MustCompile(`[a-zA-Z]+`)

// stopWords are function words and bare-act boilerplate too common to rank on.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "into": true, "have": true, "has": true,
	"shall": true, "will": true, "been": true, "were": true, "was": true,
	"are": true, "your": true, "you": true, "hereby": true, "such": true,
	"any": true, "other": true, "their": true, "thereof": true, "law": true,
	"section": true, "article": true, "acts": true,
}

// Set is an ordered collection of distinct lowercase keywords.
// The zero value is the empty set.
type Set struct {
	words []string
}

// Extract tokenizes text into maximal ASCII letter runs, lowercases them,
// drops tokens of length <= 3 and stop words, and keeps the first max
// distinct survivors in order of first occurrence. Extraction is pure: the
// same text always yields the same set.
func Extract(text string, max int) Set {
	if max <= 0 {
		return Set{}
	}

	var words []string
	seen := make(map[string]bool)
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		w := strings.ToLower(tok)
		if len(w) <= minTokenLength || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
		if len(words) == max {
			break
		}
	}
	return Set{words: words}
}

// Reconstruct creates a Set without filtering (storage hydration).
func Reconstruct(words []string) Set {
	return Set{words: words}
}

// Words returns the keywords in first-occurrence order.
func (s Set) Words() []string { return s.words }

// Len returns the number of keywords.
func (s Set) Len() int { return len(s.words) }

// IsEmpty reports whether the set holds no keywords. Callers treat an empty
// set as "nothing can match" and short-circuit without touching the store.
func (s Set) IsEmpty() bool { return len(s.words) == 0 }

// Score counts how many keywords occur in text as case-insensitive
// substrings. Each keyword contributes at most one point no matter how often
// it appears. The empty set scores zero against everything.
func (s Set) Score(text string) int {
	if len(s.words) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, w := range s.words {
		if strings.Contains(lower, w) {
			hits++
		}
	}
	return hits
}
