package openai

import (
	"context"
	"net/http"

	"github.com/aikoandre/Chutes-Proxy/internal/config"
	"github.com/aikoandre/Chutes-Proxy/internal/models"
	"github.com/aikoandre/Chutes-Proxy/internal/upstream/chutes"
)

// chutesClient is the slice of the upstream client the handlers rely on.
// Tests swap in a stub; production wiring uses *chutes.Client.
type chutesClient interface {
	ChatCompletion(ctx context.Context, payload []byte) (*http.Response, error)
	ChatCompletionStream(ctx context.Context, payload []byte) (*http.Response, error)
}

var _ chutesClient = (*chutes.Client)(nil)

// Handler bundles the dependencies shared by the OpenAI-compatible endpoints.
type Handler struct {
	cfg      *config.Config
	registry *models.Registry
	client   chutesClient
}

// New builds the handler set backed by the curated model registry and a
// single Chutes upstream client.
func New(cfg *config.Config) *Handler {
	return &Handler{
		cfg:      cfg,
		registry: models.Default(),
		client:   chutes.New(cfg),
	}
}

// Endpoint implementations are split across files:
//   - openai_chat.go: POST /v1/chat/completions entrypoint
//   - chat_request.go: inbound parsing and model resolution
//   - chat_response.go: buffered completion path
//   - chat_stream.go: SSE relay path
//   - openai_models.go: GET /v1/models and GET /v1/models/:id
