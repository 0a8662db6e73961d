package constants

import "time"

const (
	// UpstreamStreamTimeout enforces max duration for streaming requests.
	// Chutes can take minutes to schedule a cold model, so the budget is generous.
	UpstreamStreamTimeout = 300 * time.Second
	// UpstreamGenerateTimeout enforces max duration for non-stream requests.
	UpstreamGenerateTimeout = 300 * time.Second
	// ServerShutdownTimeout bounds graceful HTTP server shutdown.
	ServerShutdownTimeout = 30 * time.Second
	// ServerGracefulWait defines post-shutdown wait window for cleanup.
	ServerGracefulWait = 2 * time.Second
)
