package openai

import (
	"io"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	"github.com/aikoandre/Chutes-Proxy/internal/translator"
	"github.com/gin-gonic/gin"
)

// chatRequestContext carries one chat request from inbound parse to upstream
// relay. payload is the outbound body with the model field already rewritten
// to the Chutes identifier; everything else in it is the caller's own JSON.
type chatRequestContext struct {
	model       string // model name exactly as the caller sent it
	displayName string // canonical name from the registry
	upstreamID  string
	payload     []byte
	stream      bool
}

func (r *chatRequestContext) isStreaming() bool { return r.stream }

// buildChatRequest reads, validates and translates the inbound body. Any
// failure here happens before the upstream is contacted, so the caller always
// gets a plain JSON error.
func buildChatRequest(h *Handler, c *gin.Context) (*chatRequestContext, *chatError) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, newChatError(apperrors.NewValidation("failed to read request body: " + err.Error()))
	}

	req, err := translator.ParseChatRequest(body)
	if err != nil {
		return nil, chatErrorFrom(err)
	}

	payload, err := translator.OpenAIToChutesRequest(h.registry, body)
	if err != nil {
		return nil, chatErrorFrom(err)
	}

	entry, ok := h.registry.Lookup(req.Model)
	if !ok {
		// OpenAIToChutesRequest already rejected unknown names; this only
		// trips if the registry changes between the two lookups.
		return nil, newChatError(apperrors.NewUnknownModel(req.Model))
	}

	// Expose the resolved names to the access log.
	c.Set("model", entry.DisplayName)
	c.Set("upstream_model", entry.UpstreamID)

	return &chatRequestContext{
		model:       req.Model,
		displayName: entry.DisplayName,
		upstreamID:  entry.UpstreamID,
		payload:     payload,
		stream:      req.Stream,
	}, nil
}
