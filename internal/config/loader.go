package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultUpstreamURL is the Chutes AI chat-completions endpoint.
const DefaultUpstreamURL = "https://llm.chutes.ai/v1/chat/completions"

// fileConfig mirrors the YAML configuration file. All fields are optional;
// zero values fall back to defaults or environment variables.
type fileConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Debug   bool   `yaml:"debug"`
	LogFile string `yaml:"log_file"`

	UpstreamURL       string `yaml:"upstream_url"`
	APIToken          string `yaml:"api_token"`
	HeaderPassthrough bool   `yaml:"header_passthrough"`
	ProxyURL          string `yaml:"proxy_url"`

	DialTimeoutSec           int `yaml:"dial_timeout_sec"`
	TLSHandshakeTimeoutSec   int `yaml:"tls_handshake_timeout_sec"`
	ResponseHeaderTimeoutSec int `yaml:"response_header_timeout_sec"`
	ExpectContinueTimeoutSec int `yaml:"expect_continue_timeout_sec"`
}

// Load builds the process configuration. Precedence: defaults, then the YAML
// file at path (skipped silently when absent), then environment variables.
// The result is validated; Load never returns a half-usable Config.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "",
			Port: "8000",
		},
		Upstream: UpstreamConfig{
			URL: DefaultUpstreamURL,
		},
	}
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.Host != "" {
		cfg.Server.Host = fc.Host
	}
	if fc.Port != "" {
		cfg.Server.Port = fc.Port
	}
	if fc.Debug {
		cfg.Server.Debug = true
	}
	if fc.LogFile != "" {
		cfg.Log.File = fc.LogFile
	}
	if fc.UpstreamURL != "" {
		cfg.Upstream.URL = fc.UpstreamURL
	}
	if fc.APIToken != "" {
		cfg.Upstream.APIToken = fc.APIToken
	}
	if fc.HeaderPassthrough {
		cfg.Upstream.HeaderPassthrough = true
	}
	if fc.ProxyURL != "" {
		cfg.Upstream.ProxyURL = fc.ProxyURL
	}
	if fc.DialTimeoutSec > 0 {
		cfg.Upstream.DialTimeoutSec = fc.DialTimeoutSec
	}
	if fc.TLSHandshakeTimeoutSec > 0 {
		cfg.Upstream.TLSHandshakeTimeoutSec = fc.TLSHandshakeTimeoutSec
	}
	if fc.ResponseHeaderTimeoutSec > 0 {
		cfg.Upstream.ResponseHeaderTimeoutSec = fc.ResponseHeaderTimeoutSec
	}
	if fc.ExpectContinueTimeoutSec > 0 {
		cfg.Upstream.ExpectContinueTimeoutSec = fc.ExpectContinueTimeoutSec
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getenv("HOST", cfg.Server.Host)
	cfg.Server.Port = getenv("PORT", cfg.Server.Port)
	setToggleFromEnv("DEBUG", func(v bool) { cfg.Server.Debug = v })
	cfg.Log.File = getenv("LOG_FILE", cfg.Log.File)

	cfg.Upstream.URL = getenv("CHUTES_API_URL", cfg.Upstream.URL)
	cfg.Upstream.APIToken = getenv("CHUTES_API_TOKEN", cfg.Upstream.APIToken)
	setToggleFromEnv("HEADER_PASSTHROUGH", func(v bool) { cfg.Upstream.HeaderPassthrough = v })
	cfg.Upstream.ProxyURL = getenv("PROXY_URL", cfg.Upstream.ProxyURL)

	setIntFromEnv("DIAL_TIMEOUT_SEC", func(n int) { cfg.Upstream.DialTimeoutSec = n })
	setIntFromEnv("TLS_HANDSHAKE_TIMEOUT_SEC", func(n int) { cfg.Upstream.TLSHandshakeTimeoutSec = n })
	setIntFromEnv("RESPONSE_HEADER_TIMEOUT_SEC", func(n int) { cfg.Upstream.ResponseHeaderTimeoutSec = n })
	setIntFromEnv("EXPECT_CONTINUE_TIMEOUT_SEC", func(n int) { cfg.Upstream.ExpectContinueTimeoutSec = n })
}
