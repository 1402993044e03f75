package ai

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dm_ai_requests_total",
			Help: "Total number of requests to the model API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dm_ai_request_duration_seconds",
			Help:    "Histogram of model API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dm_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts reported by the provider.",
			Buckets: prometheus.ExponentialBuckets(256, 2, 10), // 256 .. 131072
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dm_ai_completion_tokens",
			Help:    "Histogram of completion token counts reported by the provider.",
			Buckets: prometheus.LinearBuckets(64, 64, 16), // 64 .. 1024
		},
		[]string{"model"},
	)
	aiPromptTokensEstimated = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dm_ai_prompt_tokens_estimated",
			Help:    "Local tiktoken estimate of the assembled prompt size before sending.",
			Buckets: prometheus.ExponentialBuckets(256, 2, 10),
		},
	)
	aiFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dm_ai_fallbacks_total",
			Help: "Total number of retries on the default model after the requested model failed.",
		},
		[]string{"from_model", "status"},
	)
	aiCredentialMissingTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dm_ai_credential_missing_total",
			Help: "Turns rejected because no model credential was available.",
		},
	)
)

func observeUsage(model string, usage UsageInfo) {
	if usage.PromptTokens > 0 {
		aiPromptTokens.WithLabelValues(model).Observe(float64(usage.PromptTokens))
	}
	if usage.CompletionTokens > 0 {
		aiCompletionTokens.WithLabelValues(model).Observe(float64(usage.CompletionTokens))
	}
}
