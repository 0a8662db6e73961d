package translator

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
)

// ChatMessage is one conversation turn. Content stays raw because OpenAI
// allows both a plain string and an array of typed parts; the proxy forwards
// it untouched either way.
type ChatMessage struct {
	Role      string          `json:"role"`
	Content   json.RawMessage `json:"content,omitempty"`
	Name      string          `json:"name,omitempty"`
	ToolCalls json.RawMessage `json:"tool_calls,omitempty"`
}

// ChatRequest is the typed view of an inbound chat-completion request. Known
// generation parameters are pointers so absence survives re-encoding; fields
// outside this schema ride along in the retained raw body.
type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`

	Temperature      *float64        `json:"temperature,omitempty"`
	TopP             *float64        `json:"top_p,omitempty"`
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	FrequencyPenalty *float64        `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64        `json:"presence_penalty,omitempty"`
	N                *int            `json:"n,omitempty"`
	Seed             *int            `json:"seed,omitempty"`
	Stop             json.RawMessage `json:"stop,omitempty"`
}

// ParseChatRequest decodes and validates an inbound request body.
func ParseChatRequest(body []byte) (*ChatRequest, error) {
	var req ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, apperrors.NewValidation("invalid json: " + err.Error())
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate checks the structural schema. Value ranges are left to the
// upstream provider, which enforces its own limits per model.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return apperrors.NewValidation("missing required field: model")
	}
	if len(r.Messages) == 0 {
		return apperrors.NewValidation("messages array cannot be empty")
	}
	for i, msg := range r.Messages {
		if msg.Role == "" {
			return apperrors.NewValidation(fmt.Sprintf("message at index %d missing required field: role", i))
		}
		switch msg.Role {
		case "system", "user", "assistant", "tool", "function":
		default:
			return apperrors.NewValidation(fmt.Sprintf("message at index %d has invalid role: %s", i, msg.Role))
		}
		if msg.Role != "tool" && msg.Role != "function" {
			if len(msg.Content) == 0 && len(msg.ToolCalls) == 0 {
				return apperrors.NewValidation(fmt.Sprintf("message at index %d missing content or tool_calls", i))
			}
		}
	}
	return nil
}
