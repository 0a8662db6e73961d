package chutes

import (
	"context"
	"net/http"
	"strings"

	"github.com/aikoandre/Chutes-Proxy/internal/constants"
	"github.com/aikoandre/Chutes-Proxy/internal/upstream"
)

// applyDefaultHeaders centralizes default/override header logic
func (c *Client) applyDefaultHeaders(ctx context.Context, req *http.Request) {
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("User-Agent", "chutes-proxy/"+constants.GetVersion())

	if bearer := c.bearerFor(ctx); bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}

// bearerFor picks the outbound credential. The proxy token is the default;
// callers only get their own Authorization forwarded when header passthrough
// is switched on.
func (c *Client) bearerFor(ctx context.Context) string {
	if c.cfg.Upstream.HeaderPassthrough {
		if hdr := upstream.HeaderOverrides(ctx); hdr != nil {
			if auth := strings.TrimSpace(hdr.Get("Authorization")); auth != "" {
				return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}
		}
	}
	return c.cfg.Upstream.APIToken
}
