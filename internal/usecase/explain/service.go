package explain

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/domain/keyword"
	domsearch "github.com/kailas-cloud/actdex/internal/domain/search"
	"github.com/kailas-cloud/actdex/internal/domain/style"
)

// noMatchGuidance is returned when the scan finds nothing to ground an
// explanation on. A miss is a successful outcome, not an error.
const noMatchGuidance = "No clear match was found in the indexed bare acts/pages for this query.\n\n" +
	"Try the following:\n" +
	"- Type the exact name of the Act (for example: 'Digital Personal Data Protection Act 2023').\n" +
	"- If you know it, also mention the section/article number (for example: 'Section 43 IT Act')."

// Explanation aggregates an explain outcome: the search evidence and the
// rendered answer.
type Explanation struct {
	Query       string
	Keywords    keyword.Set
	UsedResults []domsearch.Result
	Answer      string
	Style       style.Style
}

// Service turns a query into a grounded plain-language explanation.
type Service struct {
	search    Searcher
	explainer Explainer
	logger    *zap.Logger
}

// New creates an explain service.
func New(search Searcher, explainer Explainer, logger *zap.Logger) *Service {
	return &Service{search: search, explainer: explainer, logger: logger}
}

// Explain runs the keyword scan and renders an answer from the results the
// query budget admits. Zero matches (including queries with no usable
// keywords) produce the guidance text instead of an explainer call.
func (s *Service) Explain(ctx context.Context, q domsearch.Query) (Explanation, error) {
	resp, err := s.search.Search(ctx, q)
	if err != nil {
		return Explanation{}, fmt.Errorf("search: %w", err)
	}

	st := style.Detect(q.Text())

	used := resp.Results()
	if len(used) == 0 {
		s.logger.Info("No search results for explanation", zap.String("query", q.Text()))
		return Explanation{
			Query:    resp.Query(),
			Keywords: resp.Keywords(),
			Answer:   noMatchGuidance,
			Style:    st,
		}, nil
	}

	passages := make([]domain.ExplainPassage, len(used))
	for i := range used {
		passages[i] = domain.ExplainPassage{
			ActName: used[i].ActName(),
			Title:   used[i].Title(),
			PageNo:  used[i].PageNo(),
			Snippet: used[i].Snippet(),
		}
	}

	result, err := s.explainer.Explain(ctx, domain.ExplainInput{
		Query:    q.Text(),
		Style:    st,
		Passages: passages,
	})
	if err != nil {
		return Explanation{}, fmt.Errorf("explain: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(result.PromptTokens, result.CompletionTokens)

	s.logger.Debug("Explanation rendered",
		zap.String("style", string(st)),
		zap.Int("used_results", len(used)),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return Explanation{
		Query:       resp.Query(),
		Keywords:    resp.Keywords(),
		UsedResults: used,
		Answer:      result.Explanation,
		Style:       st,
	}, nil
}
