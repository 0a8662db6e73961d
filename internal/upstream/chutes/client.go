package chutes

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aikoandre/Chutes-Proxy/internal/config"
	"github.com/aikoandre/Chutes-Proxy/internal/constants"
	mw "github.com/aikoandre/Chutes-Proxy/internal/middleware"
	"github.com/aikoandre/Chutes-Proxy/internal/monitoring/tracing"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Client struct {
	cfg *config.Config
	cli *http.Client
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}

func New(cfg *config.Config) *Client {
	// Timeouts and proxy from environment/config
	dialTO := durationOrDefault(cfg.Upstream.DialTimeoutSec, constants.DefaultDialTimeout)
	tlsTO := durationOrDefault(cfg.Upstream.TLSHandshakeTimeoutSec, constants.DefaultTLSHandshakeTimeout)
	hdrTO := durationOrDefault(cfg.Upstream.ResponseHeaderTimeoutSec, constants.DefaultResponseHeaderTimeout)
	expTO := durationOrDefault(cfg.Upstream.ExpectContinueTimeoutSec, constants.DefaultExpectContinueTimeout)

	tr := &http.Transport{
		Proxy: getProxyFunc(cfg.Upstream.ProxyURL),
		DialContext: (&net.Dialer{
			Timeout:   dialTO,
			KeepAlive: constants.DefaultKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   tlsTO,
		ResponseHeaderTimeout: hdrTO,
		ExpectContinueTimeout: expTO,
		MaxIdleConns:          constants.MaxIdleConns,
		MaxIdleConnsPerHost:   constants.MaxIdleConnsPerHost,
		IdleConnTimeout:       constants.IdleConnTimeout,
	}
	// Overall deadlines come from the request context; streams must be
	// allowed to outlive any fixed client timeout.
	return &Client{cfg: cfg, cli: &http.Client{Transport: tr, Timeout: 0}}
}

// getProxyFunc returns appropriate proxy function based on configuration
func getProxyFunc(proxyURL string) func(*http.Request) (*url.URL, error) {
	if proxyURL != "" {
		// Parse proxy URL
		if parsedURL, err := url.Parse(proxyURL); err == nil {
			return http.ProxyURL(parsedURL)
		}
	}
	// Fall back to environment proxy
	return http.ProxyFromEnvironment
}

func getStatus(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// postJSON sends a POST request with JSON body to the chat-completions endpoint.
//
// IMPORTANT: Caller is responsible for closing resp.Body if resp is non-nil and err is nil.
func (c *Client) postJSON(ctx context.Context, payload []byte, stream bool) (*http.Response, error) {
	model := strings.TrimSpace(gjson.GetBytes(payload, "model").String())

	spanCtx, span := tracing.StartSpan(ctx, "upstream/chutes", "Chutes.ChatCompletion",
		trace.WithAttributes(
			attribute.String("http.method", http.MethodPost),
			attribute.String("http.url", c.cfg.Upstream.URL),
			attribute.Bool("chat.stream", stream),
			attribute.String("upstream.model", model),
		))
	defer span.End()
	ctx = spanCtx

	finishSpan := func(status int, err error) {
		span.SetAttributes(attribute.Int("http.status_code", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else if status >= 400 {
			span.SetStatus(codes.Error, fmt.Sprintf("http_status=%d", status))
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if err := ctx.Err(); err != nil {
		finishSpan(0, err)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Upstream.URL, bytes.NewReader(payload))
	if err != nil {
		finishSpan(0, err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	} else {
		req.Header.Set("Accept", "application/json")
	}
	c.applyDefaultHeaders(ctx, req)

	start := time.Now()
	resp, err := c.cli.Do(req)
	dur := time.Since(start)

	status := getStatus(resp)
	mw.RecordUpstream(dur, status, err != nil)
	mw.RecordUpstreamModel(model, status, err != nil)
	if err != nil {
		mw.RecordUpstreamError(classifyErr(err))
	}

	finishSpan(status, err)
	return resp, err
}

// ChatCompletion sends a buffered chat-completions request.
//
// IMPORTANT: Caller MUST close resp.Body if resp is non-nil and err is nil.
// Example:
//
//	resp, err := client.ChatCompletion(ctx, payload)
//	if err != nil { return err }
//	defer resp.Body.Close()
func (c *Client) ChatCompletion(ctx context.Context, payload []byte) (*http.Response, error) {
	return c.postJSON(ctx, payload, false)
}

// ChatCompletionStream sends a streaming chat-completions request. The stream
// flag inside the payload selects SSE on the upstream side; the endpoint is
// the same either way.
//
// IMPORTANT: Caller MUST close resp.Body if resp is non-nil and err is nil.
// Example:
//
//	resp, err := client.ChatCompletionStream(ctx, payload)
//	if err != nil { return err }
//	defer resp.Body.Close()
func (c *Client) ChatCompletionStream(ctx context.Context, payload []byte) (*http.Response, error) {
	return c.postJSON(ctx, payload, true)
}
