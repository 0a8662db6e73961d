package middleware

import (
	"math"
	"time"

	"github.com/aikoandre/Chutes-Proxy/internal/monitoring"
)

// RecordUpstream records upstream request duration and status classification.
func RecordUpstream(dur time.Duration, status int, networkErr bool) {
	cls := statusClass(status)
	if networkErr {
		cls = "network_error"
	}
	durSec := dur.Seconds()
	if math.IsNaN(durSec) || math.IsInf(durSec, 0) {
		durSec = 0
	}
	monitoring.UpstreamRequestsTotal.WithLabelValues(cls).Inc()
	monitoring.UpstreamRequestDuration.Observe(durSec)
}

// RecordUpstreamError increments upstream error by reason
func RecordUpstreamError(reason string) {
	if reason == "" {
		reason = "other"
	}
	monitoring.UpstreamErrors.WithLabelValues(reason).Inc()
}

// RecordUpstreamModel increments per-model upstream counters by model/status class.
func RecordUpstreamModel(model string, status int, networkErr bool) {
	if model == "" {
		model = "unknown"
	}
	cls := statusClass(status)
	if networkErr {
		cls = "network_error"
	}
	monitoring.UpstreamModelRequests.WithLabelValues(model, cls).Inc()
}

// RecordTokenUsage adds the token counts an upstream response reported for a model.
func RecordTokenUsage(model string, prompt, completion, total int64) {
	if model == "" {
		model = "unknown"
	}
	if prompt > 0 {
		monitoring.TokensUsed.WithLabelValues(model, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		monitoring.TokensUsed.WithLabelValues(model, "completion").Add(float64(completion))
	}
	if total > 0 {
		monitoring.TokensUsed.WithLabelValues(model, "total").Add(float64(total))
	}
}
