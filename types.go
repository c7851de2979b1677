package actdex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/actdex/internal/domain"
	domsearch "github.com/kailas-cloud/actdex/internal/domain/search"
)

// Result is a single matched act page.
// Score counts distinct query keywords found on the page.
// A zero PageNo means the page number is unknown.
type Result struct {
	ActName string
	Title   string
	PageNo  int
	Snippet string
	Score   int
}

// Explanation is a rendered answer with the passages it was built from.
type Explanation struct {
	Query    string
	Keywords []string
	Style    string // "english" or "hinglish"
	Answer   string
	Used     []Result
}

// Act is one ingested act with its stored page count.
type Act struct {
	Name  string
	Pages int
}

// Passage is one corpus snippet handed to an Explainer.
type Passage struct {
	ActName string
	Title   string
	PageNo  int
	Snippet string
}

// Explainer produces a prose answer for a query from matched passages.
// style is "english" or "hinglish", detected from the query.
// Token accounting is zero for custom explainers.
type Explainer interface {
	Explain(ctx context.Context, query, style string, passages []Passage) (string, error)
}

// explainerAdapter wraps a public Explainer to satisfy internal domain.Explainer.
type explainerAdapter struct {
	inner Explainer
}

func (a *explainerAdapter) Explain(ctx context.Context, in domain.ExplainInput) (domain.ExplainResult, error) {
	passages := make([]Passage, len(in.Passages))
	for i, p := range in.Passages {
		passages[i] = Passage{
			ActName: p.ActName,
			Title:   p.Title,
			PageNo:  p.PageNo,
			Snippet: p.Snippet,
		}
	}

	text, err := a.inner.Explain(ctx, in.Query, string(in.Style), passages)
	if err != nil {
		return domain.ExplainResult{}, fmt.Errorf("explain: %w", err)
	}
	return domain.ExplainResult{Explanation: text}, nil
}

func resultsFromDomain(in []domsearch.Result) []Result {
	out := make([]Result, len(in))
	for i, r := range in {
		out[i] = Result{
			ActName: r.ActName(),
			Title:   r.Title(),
			PageNo:  r.PageNo(),
			Snippet: r.Snippet(),
			Score:   r.Score(),
		}
	}
	return out
}
