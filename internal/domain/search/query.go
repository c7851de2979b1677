// Package search defines the retrieval request and result shapes.
package search

import (
	"fmt"

	"github.com/kailas-cloud/actdex/internal/domain"
)

// Query parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length.
	MaxQueryLength = 4096
	// DefaultExplainResults caps how many ranked hits feed an explanation
	// when the caller does not say.
	DefaultExplainResults = 5
)

// Query is a validated free-text retrieval request.
type Query struct {
	text       string
	maxResults int
}

// NewQuery validates a query. maxResults is the caller's cap on returned
// results; zero means "use the service result budget". Callers can lower
// the cap, never raise it past the budget.
func NewQuery(text string, maxResults int) (Query, error) {
	if text == "" {
		return Query{}, fmt.Errorf("%w: query is required", domain.ErrInvalidQuery)
	}
	if len(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if maxResults < 0 {
		return Query{}, fmt.Errorf("%w: max_results must not be negative", domain.ErrInvalidQuery)
	}
	return Query{text: text, maxResults: maxResults}, nil
}

// Text returns the raw query text.
func (q *Query) Text() string { return q.text }

// MaxResults returns the caller's result cap (0 = service budget).
func (q *Query) MaxResults() int { return q.maxResults }
