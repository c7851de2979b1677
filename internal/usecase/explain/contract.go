package explain

import (
	"context"

	"github.com/kailas-cloud/actdex/internal/domain"
	domsearch "github.com/kailas-cloud/actdex/internal/domain/search"
)

// Searcher runs the keyword scan explanations are grounded on.
type Searcher interface {
	Search(ctx context.Context, q domsearch.Query) (domsearch.Response, error)
}

// Explainer renders the final answer from the query and its evidence.
type Explainer interface {
	Explain(ctx context.Context, input domain.ExplainInput) (domain.ExplainResult, error)
}
