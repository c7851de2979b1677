package actdex

import (
	"context"
	"net/http"
	"time"
)

type searchRequest struct {
	Query string `json:"query"`
}

// Search runs a keyword search over the ingested corpus.
func (c *Client) Search(ctx context.Context, query string) (res SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	_, err = c.do(ctx, http.MethodPost, "/search-law", searchRequest{Query: query}, &res)
	return res, err
}
