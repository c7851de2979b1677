package metrics

// Metrics holds explainer usage for a time period.
type Metrics struct {
	explainRequests  int
	tokens           int
	costMillidollars int
}

// New creates a Metrics snapshot.
func New(requests, tokens, costMillidollars int) Metrics {
	return Metrics{explainRequests: requests, tokens: tokens, costMillidollars: costMillidollars}
}

// ExplainRequests returns the number of explainer calls.
func (m Metrics) ExplainRequests() int { return m.explainRequests }

// Tokens returns the total tokens consumed.
func (m Metrics) Tokens() int { return m.tokens }

// CostMillidollars returns cost in millidollars (1 USD = 1000).
func (m Metrics) CostMillidollars() int { return m.costMillidollars }
