package chi

import (
	"time"

	"github.com/kailas-cloud/actdex/internal/domain/keyword"
	domsearch "github.com/kailas-cloud/actdex/internal/domain/search"
)

// errorCode is the machine-readable discriminator carried in error responses.
type errorCode string

const (
	codeBadRequest             errorCode = "bad_request"
	codeValidationFailed       errorCode = "validation_failed"
	codeUnauthorized           errorCode = "unauthorized"
	codeStoreUnavailable       errorCode = "store_unavailable"
	codeExplainerUnavailable   errorCode = "explainer_unavailable"
	codeExplainerEmpty         errorCode = "explainer_empty"
	codeExplainerQuotaExceeded errorCode = "explainer_quota_exceeded"
	codeInternalError          errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type rootResponse struct {
	Service     string `json:"service"`
	Description string `json:"description"`
	DocsURL     string `json:"docs_url"`
	Health      string `json:"health"`
}

type pingResponse struct {
	Message string `json:"message"`
}

// searchRequest is the POST /search-law payload.
type searchRequest struct {
	Query string `json:"query"`
}

// explainRequest is the POST /explain-law payload. A zero MaxResults means
// the default cap.
type explainRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResultItem struct {
	ActName string `json:"act_name,omitempty"`
	Title   string `json:"title,omitempty"`
	PageNo  *int   `json:"page_no,omitempty"`
	Snippet string `json:"snippet"`
	Score   int    `json:"score"`
}

type searchResponse struct {
	Query    string             `json:"query"`
	Keywords []string           `json:"keywords"`
	Results  []searchResultItem `json:"results"`
}

type explainResponse struct {
	Query       string             `json:"query"`
	Keywords    []string           `json:"keywords"`
	UsedResults []searchResultItem `json:"used_results"`
	Explanation string             `json:"explanation"`
	Style       string             `json:"style"`
}

type actItem struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
}

type actsResponse struct {
	Acts  []actItem `json:"acts"`
	Total int       `json:"total"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type usageMetrics struct {
	ExplainRequests  int  `json:"explain_requests"`
	Tokens           int  `json:"tokens"`
	CostMillidollars *int `json:"cost_millidollars,omitempty"`
}

type budgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     *bool      `json:"is_exhausted,omitempty"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

type usageResponse struct {
	Period        string       `json:"period"`
	Provider      string       `json:"provider,omitempty"`
	PeriodStartAt *time.Time   `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time   `json:"period_end_at,omitempty"`
	Usage         usageMetrics `json:"usage"`
	Budget        budgetStatus `json:"budget"`
}

// keywordsToWire renders a keyword set as a JSON list. Empty sets encode as
// [] rather than null.
func keywordsToWire(kws keyword.Set) []string {
	words := kws.Words()
	out := make([]string, len(words))
	copy(out, words)
	return out
}

func resultsToWire(results []domsearch.Result) []searchResultItem {
	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = resultToWire(&results[i])
	}
	return items
}

// resultToWire converts a ranked hit. A zero page number means the page is
// unknown and the field is omitted.
func resultToWire(res *domsearch.Result) searchResultItem {
	item := searchResultItem{
		ActName: res.ActName(),
		Title:   res.Title(),
		Snippet: res.Snippet(),
		Score:   res.Score(),
	}
	if res.PageNo() > 0 {
		n := res.PageNo()
		item.PageNo = &n
	}
	return item
}
