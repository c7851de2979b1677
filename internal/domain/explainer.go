package domain

import (
	"context"

	"github.com/kailas-cloud/actdex/internal/domain/style"
)

// Explainer is the shared explanation contract between layers.
type Explainer interface {
	Explain(ctx context.Context, input ExplainInput) (ExplainResult, error)
}

// HealthChecker verifies explainer provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// ExplainInput is a fully resolved explanation request: the user's question,
// the answer style, and the passages retrieval picked for grounding.
type ExplainInput struct {
	Query    string
	Style    style.Style
	Passages []ExplainPassage
}

// ExplainPassage is one retrieved passage handed to the explainer.
// PageNo 0 means the source page is unknown.
type ExplainPassage struct {
	ActName string
	Title   string
	PageNo  int
	Snippet string
}

// ExplainResult carries the explanation text and token usage through the decorator chain.
type ExplainResult struct {
	Explanation      string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}
