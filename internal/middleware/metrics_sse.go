package middleware

import (
	"github.com/aikoandre/Chutes-Proxy/internal/monitoring"
)

// RecordSSELines adds to the SSE lines counter for a path.
func RecordSSELines(path string, n int) {
	if n <= 0 {
		return
	}
	monitoring.SSELinesTotal.WithLabelValues(path).Add(float64(n))
}

// RecordSSEClose increments an SSE disconnect reason counter for a path/reason.
func RecordSSEClose(path, reason string) {
	if reason == "" {
		reason = "other"
	}
	monitoring.SSEDisconnectsTotal.WithLabelValues(path, reason).Inc()
}
