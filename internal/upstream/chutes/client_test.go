package chutes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/aikoandre/Chutes-Proxy/internal/config"
	"github.com/aikoandre/Chutes-Proxy/internal/upstream"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "8000"},
		Upstream: config.UpstreamConfig{
			URL:      "https://example.com/v1/chat/completions",
			APIToken: "server-token",
		},
	}
}

func okResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestClientSetsAcceptHeaderForSSE(t *testing.T) {
	t.Parallel()
	client := New(testConfig())
	var seen string
	client.cli = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen = req.Header.Get("Accept")
			return okResponse(`{}`), nil
		}),
	}

	resp, err := client.ChatCompletionStream(context.Background(), []byte(`{"model":"x","stream":true}`))
	if err != nil {
		t.Fatalf("ChatCompletionStream returned err: %v", err)
	}
	defer resp.Body.Close()
	if seen != "text/event-stream" {
		t.Fatalf("expected Accept text/event-stream, got %q", seen)
	}
}

func TestClientSetsAcceptHeaderForJSON(t *testing.T) {
	t.Parallel()
	client := New(testConfig())
	var seen string
	client.cli = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen = req.Header.Get("Accept")
			return okResponse(`{}`), nil
		}),
	}

	resp, err := client.ChatCompletion(context.Background(), []byte(`{"model":"x"}`))
	if err != nil {
		t.Fatalf("ChatCompletion returned err: %v", err)
	}
	defer resp.Body.Close()
	if seen != "application/json" {
		t.Fatalf("expected Accept application/json, got %q", seen)
	}
}

func TestClientUsesConfiguredToken(t *testing.T) {
	t.Parallel()
	client := New(testConfig())
	var auth string
	client.cli = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			auth = req.Header.Get("Authorization")
			return okResponse(`{}`), nil
		}),
	}

	// Caller headers are attached, but passthrough is off, so the proxy
	// token wins.
	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer caller-token")
	ctx := upstream.WithHeaderOverrides(context.Background(), hdr)

	resp, err := client.ChatCompletion(ctx, []byte(`{"model":"x"}`))
	if err != nil {
		t.Fatalf("ChatCompletion returned err: %v", err)
	}
	defer resp.Body.Close()
	if auth != "Bearer server-token" {
		t.Fatalf("expected server token, got %q", auth)
	}
}

func TestClientHeaderPassthrough(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Upstream.HeaderPassthrough = true
	client := New(cfg)
	var auth string
	client.cli = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			auth = req.Header.Get("Authorization")
			return okResponse(`{}`), nil
		}),
	}

	hdr := http.Header{}
	hdr.Set("Authorization", "Bearer caller-token")
	ctx := upstream.WithHeaderOverrides(context.Background(), hdr)

	resp, err := client.ChatCompletion(ctx, []byte(`{"model":"x"}`))
	if err != nil {
		t.Fatalf("ChatCompletion returned err: %v", err)
	}
	defer resp.Body.Close()
	if auth != "Bearer caller-token" {
		t.Fatalf("expected caller token, got %q", auth)
	}
}

func TestClientPassthroughFallsBackWithoutCallerToken(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.Upstream.HeaderPassthrough = true
	client := New(cfg)
	var auth string
	client.cli = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			auth = req.Header.Get("Authorization")
			return okResponse(`{}`), nil
		}),
	}

	resp, err := client.ChatCompletion(context.Background(), []byte(`{"model":"x"}`))
	if err != nil {
		t.Fatalf("ChatCompletion returned err: %v", err)
	}
	defer resp.Body.Close()
	if auth != "Bearer server-token" {
		t.Fatalf("expected server token fallback, got %q", auth)
	}
}

func TestClientStopsOnContextCancel(t *testing.T) {
	t.Parallel()
	client := New(testConfig())
	client.cli = &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("should not be called when context cancelled")
		}),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := client.ChatCompletion(ctx, []byte(`{"model":"x"}`))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected nil response")
	}
}

func TestDurationOrDefault(t *testing.T) {
	t.Parallel()
	if got := durationOrDefault(0, 7*time.Second); got != 7*time.Second {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := durationOrDefault(-3, time.Second); got != time.Second {
		t.Fatalf("expected fallback for negative, got %v", got)
	}
	if got := durationOrDefault(42, time.Second); got != 42*time.Second {
		t.Fatalf("expected 42s, got %v", got)
	}
}

func TestClassifyErr(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"dns", errors.New(`dial tcp: lookup llm.chutes.ai: no such host`), "dns"},
		{"reset", errors.New("read: connection reset by peer"), "conn_reset"},
		{"pipe", errors.New("write: broken pipe"), "conn_broken_pipe"},
		{"deadline", errors.New("context deadline exceeded"), "deadline"},
		{"canceled", errors.New("context canceled"), "canceled"},
		{"timeout", errors.New("net/http: timeout awaiting response headers"), "timeout"},
		{"other", errors.New("something odd"), "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyErr(tt.err); got != tt.want {
				t.Fatalf("classifyErr(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
