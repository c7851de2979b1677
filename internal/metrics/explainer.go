package metrics

import "github.com/prometheus/client_golang/prometheus"

// Explainer (LLM) Prometheus metrics.
var (
	ExplainerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "explainer_requests_total",
			Help:      "Total number of explainer requests",
		},
		[]string{"provider", "model", "status"},
	)

	ExplainerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "explainer_request_duration_seconds",
			Help:      "Explainer request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	ExplainerTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "explainer_tokens_total",
			Help:      "Total explainer tokens consumed",
		},
		[]string{"provider", "model", "type"}, // type: "prompt" / "completion"
	)

	ExplainerErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "explainer_errors_total",
			Help:      "Total explainer errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	ExplainerBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "explainer_budget_tokens_remaining",
			Help:      "Remaining explanation token budget",
		},
		[]string{"provider", "period"},
	)

	ExplainerCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "explainer_cache_total",
			Help:      "Explanation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var explainerMetricsRegistered bool

// RegisterExplainerMetrics registers Prometheus explainer metrics. Must be called once from main.
func RegisterExplainerMetrics() {
	if explainerMetricsRegistered {
		return
	}
	prometheus.MustRegister(ExplainerRequestsTotal)
	prometheus.MustRegister(ExplainerRequestDuration)
	prometheus.MustRegister(ExplainerTokensTotal)
	prometheus.MustRegister(ExplainerErrorsTotal)
	prometheus.MustRegister(ExplainerBudgetTokensRemaining)
	prometheus.MustRegister(ExplainerCacheTotal)
	explainerMetricsRegistered = true
}
