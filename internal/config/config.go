package config

import (
	"fmt"
	"strings"
)

// ServerConfig holds the inbound HTTP listener settings.
type ServerConfig struct {
	Host  string
	Port  string
	Debug bool
}

// UpstreamConfig holds credentials and transport settings for the Chutes API.
type UpstreamConfig struct {
	// URL is the full chat-completions endpoint of the upstream provider.
	URL string
	// APIToken is the bearer credential attached to outbound calls.
	APIToken string
	// HeaderPassthrough forwards the caller's own Authorization bearer
	// instead of APIToken when set. Off by default.
	HeaderPassthrough bool
	ProxyURL          string

	DialTimeoutSec           int
	TLSHandshakeTimeoutSec   int
	ResponseHeaderTimeoutSec int
	ExpectContinueTimeoutSec int
}

// LogConfig holds logging output settings.
type LogConfig struct {
	File string
}

// Config is the immutable process configuration. It is built once by Load
// and passed by reference; nothing mutates it afterwards.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Log      LogConfig
}

// Validate checks the invariants that make the proxy runnable. A missing
// upstream credential is fatal at startup, not a per-request error.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Upstream.APIToken) == "" {
		return fmt.Errorf("CHUTES_API_TOKEN is not set")
	}
	if strings.TrimSpace(c.Upstream.URL) == "" {
		return fmt.Errorf("upstream URL is empty")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("server port is empty")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
