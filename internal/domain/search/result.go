package search

// Result is a single ranked hit. ActName, Title and PageNo mirror the
// stored page and may be absent ("" / 0); Snippet is a prefix of the page
// text; Score is the count of query keywords found in the full text, so it
// is always at least 1 for a returned hit.
type Result struct {
	actName string
	title   string
	pageNo  int
	snippet string
	score   int
}

// NewResult creates a search hit.
func NewResult(actName, title string, pageNo int, snippet string, score int) Result {
	return Result{actName: actName, title: title, pageNo: pageNo, snippet: snippet, score: score}
}

// ActName returns the act name ("" if unknown).
func (r *Result) ActName() string { return r.actName }

// Title returns the page title ("" if unknown).
func (r *Result) Title() string { return r.title }

// PageNo returns the 1-based page number (0 if unknown).
func (r *Result) PageNo() int { return r.pageNo }

// Snippet returns the leading slice of the page text.
func (r *Result) Snippet() string { return r.snippet }

// Score returns the keyword hit count.
func (r *Result) Score() int { return r.score }
