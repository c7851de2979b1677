package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of search calls",
		},
		[]string{"outcome"}, // "ok" / "empty_keywords" / "no_match" / "error"
	)

	SearchPagesScannedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_pages_scanned_total",
			Help:      "Corpus pages visited across all searches",
		},
	)

	SearchPagesMatchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_pages_matched_total",
			Help:      "Corpus pages that scored above zero across all searches",
		},
	)

	SearchScanCapTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_scan_cap_total",
			Help:      "Searches stopped early by the scan budget",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus retrieval metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchPagesScannedTotal)
	prometheus.MustRegister(SearchPagesMatchedTotal)
	prometheus.MustRegister(SearchScanCapTotal)
	searchMetricsRegistered = true
}
