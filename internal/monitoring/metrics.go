package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP surface metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chutes_proxy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_class"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chutes_proxy_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"method", "path", "status_class"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chutes_proxy_http_inflight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Upstream call metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chutes_proxy_upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"status_class"},
	)

	UpstreamRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chutes_proxy_upstream_request_duration_seconds",
			Help:    "Upstream API request latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
	)

	UpstreamModelRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chutes_proxy_upstream_model_requests_total",
			Help: "Total number of upstream requests by model",
		},
		[]string{"model", "status_class"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chutes_proxy_upstream_errors_total",
			Help: "Total number of upstream errors by reason",
		},
		[]string{"reason"},
	)

	// Streaming relay metrics
	SSELinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chutes_proxy_sse_lines_total",
			Help: "Total number of SSE events forwarded",
		},
		[]string{"path"},
	)

	SSEDisconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chutes_proxy_sse_disconnects_total",
			Help: "Total number of SSE stream terminations by reason",
		},
		[]string{"path", "reason"},
	)

	// Token usage metrics, filled from upstream usage reports
	TokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chutes_proxy_tokens_used_total",
			Help: "Total number of tokens reported by the upstream",
		},
		[]string{"model", "type"}, // type: prompt, completion, total
	)
)
