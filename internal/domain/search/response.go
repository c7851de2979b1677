package search

import "github.com/kailas-cloud/actdex/internal/domain/keyword"

// Response is the complete outcome of one retrieval call: the echoed query,
// the keywords actually searched for, and the ranked, truncated hits.
// Degenerate inputs (no usable keywords, no matches) produce a Response
// with empty fields, never an error.
type Response struct {
	query    string
	keywords keyword.Set
	results  []Result
}

// NewResponse creates a retrieval response.
func NewResponse(query string, kws keyword.Set, results []Result) Response {
	return Response{query: query, keywords: kws, results: results}
}

// Query returns the original query text.
func (r *Response) Query() string { return r.query }

// Keywords returns the extracted query keywords.
func (r *Response) Keywords() keyword.Set { return r.keywords }

// Results returns the ranked hits (possibly empty, never more than the
// result budget).
func (r *Response) Results() []Result { return r.results }
