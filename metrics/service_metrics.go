package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_gateway_"

// Operation constants used as the "operation" label
const (
	OperationCoinsList  = "coins_list"
	OperationCategories = "categories_list"
	OperationMarkets    = "markets"
	OperationPing       = "ping"
)

// Request status constants
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusRateLimited = "rate_limited"
	StatusTimeout     = "timeout"
)

var (
	// UpstreamRequestsTotal counts HTTP requests to the CoinGecko API
	// Cardinality: ~16 (4 operations x 4 statuses)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "upstream_requests_total",
			Help: "Total number of HTTP requests to the CoinGecko API",
		},
		[]string{"operation", "status"},
	)

	// UpstreamRequestDuration tracks upstream request latency
	// Cardinality: ~4 (number of operations)
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "upstream_request_duration_seconds",
			Help: "Time taken by HTTP requests to the CoinGecko API",
		},
		[]string{"operation"},
	)
)

// MetricsWriter records upstream request metrics for one operation
type MetricsWriter struct {
	operation string
}

// NewMetricsWriter creates a metrics writer bound to an operation label
func NewMetricsWriter(operation string) *MetricsWriter {
	return &MetricsWriter{operation: operation}
}

// OnRequest records the outcome of a single upstream request
func (w *MetricsWriter) OnRequest(status string) {
	UpstreamRequestsTotal.WithLabelValues(w.operation, status).Inc()
}

// ObserveDuration records the duration of a single upstream request
func (w *MetricsWriter) ObserveDuration(start time.Time) {
	UpstreamRequestDuration.WithLabelValues(w.operation).Observe(time.Since(start).Seconds())
}
