package domain

import "context"

type explainUsageKey struct{}

// ExplainUsage collects LLM token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the
// service; the explainer writes after each provider call; the handler reads
// it back for response headers.
type ExplainUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Used             bool // true if the explainer ran, even on a cache hit with 0 tokens
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *ExplainUsage) {
	u := &ExplainUsage{}
	return context.WithValue(ctx, explainUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *ExplainUsage {
	u, _ := ctx.Value(explainUsageKey{}).(*ExplainUsage)
	return u
}

// AddTokens records consumed tokens.
func (u *ExplainUsage) AddTokens(prompt, completion int) {
	if u != nil {
		u.PromptTokens += prompt
		u.CompletionTokens += completion
		u.TotalTokens += prompt + completion
		u.Used = true
	}
}
