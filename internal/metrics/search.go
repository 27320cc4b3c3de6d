package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcome label values.
const (
	SearchOutcomeSuccess   = "success"
	SearchOutcomeTimeout   = "timeout"
	SearchOutcomeCanceled  = "canceled"
	SearchOutcomeTransport = "transport_error"
)

// Search index Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "search_requests_total",
			Help:      "Total number of search index requests by outcome",
		},
		[]string{"outcome"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contentd",
			Name:      "search_request_duration_seconds",
			Help:      "Search index request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	)

	SearchUpstreamStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contentd",
			Name:      "search_upstream_status_total",
			Help:      "HTTP status codes returned by the search index",
		},
		[]string{"status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchUpstreamStatusTotal)
	searchMetricsRegistered = true
}
