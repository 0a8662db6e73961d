package constants

import "time"

// HTTP client connection pool settings. The proxy keeps a single pool toward
// one upstream host, so per-host and global limits match.
const (
	MaxIdleConns        = 4096
	MaxIdleConnsPerHost = 4096
	IdleConnTimeout     = 90 * time.Second

	DefaultKeepAlive = 30 * time.Second
)

// HTTP timeout settings for the outbound transport.
const (
	DefaultDialTimeout         = 10 * time.Second
	DefaultTLSHandshakeTimeout = 10 * time.Second
	// DefaultResponseHeaderTimeout must cover upstream model cold starts;
	// time-to-first-byte on a cold Chutes model can run minutes.
	DefaultResponseHeaderTimeout = 300 * time.Second
	DefaultExpectContinueTimeout = 2 * time.Second
)
