package actdex

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

type explainRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// Explain searches the corpus and renders a plain-language answer from the
// matched passages. maxResults caps the passages handed to the explainer;
// 0 uses the server default.
func (c *Client) Explain(ctx context.Context, query string, maxResults int) (expl Explanation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("explain", start, err) }()

	header, err := c.do(ctx, http.MethodPost, "/explain-law",
		explainRequest{Query: query, MaxResults: maxResults}, &expl)
	if err != nil {
		return Explanation{}, err
	}
	if v := header.Get("X-Explainer-Tokens"); v != "" {
		expl.TokensUsed, _ = strconv.Atoi(v)
	}
	return expl, nil
}
