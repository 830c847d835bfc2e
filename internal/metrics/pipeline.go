package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics. Registered explicitly from main
// (no init()) so the ingest binary does not drag them in.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodsearch",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache lookups by result",
		},
		[]string{"result"},
	)

	CompletionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "completion_requests_total",
			Help:      "Total number of chat completion requests",
		},
		[]string{"model", "purpose", "status"},
	)

	CompletionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodsearch",
			Name:      "completion_request_duration_seconds",
			Help:      "Chat completion request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"model", "purpose"},
	)

	CompletionTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "completion_tokens_total",
			Help:      "Total chat completion tokens consumed",
		},
		[]string{"model", "purpose", "kind"},
	)

	SearchTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "search_tier_total",
			Help:      "Searches answered per retrieval fallback tier",
		},
		[]string{"tier"},
	)
)

// RegisterPipelineMetrics registers the search pipeline metrics exactly once.
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingCacheTotal,
		CompletionRequestsTotal,
		CompletionRequestDuration,
		CompletionTokensTotal,
		SearchTierTotal,
	)
}
