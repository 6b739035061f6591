package metrics

import "github.com/prometheus/client_golang/prometheus"

// Embedding backend Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "embedding_requests_total",
			Help:      "Embedding API calls by outcome",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "knowdex",
			Name:      "embedding_request_duration_seconds",
			Help:      "Latency of embedding API calls",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "embedding_tokens_total",
			Help:      "Tokens billed for embedding calls",
		},
		[]string{"provider", "model", "type"},
	)

	EmbeddingErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "embedding_errors_total",
			Help:      "Embedding API failures by kind",
		},
		[]string{"provider", "model", "error_type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "embedding_cache_total",
			Help:      "Cache lookups by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// Completion backend Prometheus metrics.
var (
	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "completion_requests_total",
			Help:      "Chat completion API calls by outcome",
		},
		[]string{"provider", "model", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "knowdex",
			Name:      "completion_request_duration_seconds",
			Help:      "Latency of chat completion API calls",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "model"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "completion_tokens_total",
			Help:      "Tokens billed for completion calls",
		},
		[]string{"provider", "model", "type"},
	)

	CompletionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "knowdex",
			Name:      "completion_errors_total",
			Help:      "Completion API failures by kind",
		},
		[]string{"provider", "model", "error_type"},
	)
)

var backendMetricsRegistered bool

// RegisterBackendMetrics registers the provider metric vectors with the
// default registry. Call once from main before serving /metrics.
func RegisterBackendMetrics() {
	if backendMetricsRegistered {
		return
	}
	prometheus.MustRegister(
		EmbeddingRequestsTotal, EmbeddingRequestDuration, EmbeddingTokensTotal,
		EmbeddingErrorsTotal, EmbeddingCacheTotal,
		CompletionRequestsTotal, CompletionRequestDuration,
		CompletionTokensTotal, CompletionErrorsTotal,
	)
	backendMetricsRegistered = true
}
