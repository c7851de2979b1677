package actdex

import "time"

// SearchResult is a single matched act page.
// Score counts distinct query keywords found on the page.
// A zero PageNo means the page number is unknown.
type SearchResult struct {
	ActName string `json:"act_name"`
	Title   string `json:"title"`
	PageNo  int    `json:"page_no"`
	Snippet string `json:"snippet"`
	Score   int    `json:"score"`
}

// SearchResponse is the outcome of one keyword search.
type SearchResponse struct {
	Query    string         `json:"query"`
	Keywords []string       `json:"keywords"`
	Results  []SearchResult `json:"results"`
}

// Explanation is a rendered answer with the passages it was built from.
// TokensUsed comes from the X-Explainer-Tokens response header; it is zero
// when the answer was served without calling the model (guidance or cache).
type Explanation struct {
	Query       string         `json:"query"`
	Keywords    []string       `json:"keywords"`
	UsedResults []SearchResult `json:"used_results"`
	Explanation string         `json:"explanation"`
	Style       string         `json:"style"`

	TokensUsed int `json:"-"`
}

// ActInfo is one ingested act with its stored page count.
type ActInfo struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
}

// HealthStatus represents the aggregated service health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component -> "ok"/"error"
}

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageMetrics tracks explanation resource consumption.
type UsageMetrics struct {
	ExplainRequests  int `json:"explain_requests"`
	Tokens           int `json:"tokens"`
	CostMillidollars int `json:"cost_millidollars"`
}

// BudgetStatus tracks token quota state. ResetsAt is nil when no budget
// is configured on the server.
type BudgetStatus struct {
	TokensLimit     int        `json:"tokens_limit"`
	TokensRemaining int        `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at"`
}

// UsageReport contains explanation usage statistics for a time period.
// Period bounds are nil for the total period.
type UsageReport struct {
	Period      UsagePeriod  `json:"period"`
	Provider    string       `json:"provider"`
	PeriodStart *time.Time   `json:"period_start_at"`
	PeriodEnd   *time.Time   `json:"period_end_at"`
	Usage       UsageMetrics `json:"usage"`
	Budget      BudgetStatus `json:"budget"`
}
