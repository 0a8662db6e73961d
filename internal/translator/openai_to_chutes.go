package translator

import (
	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	"github.com/aikoandre/Chutes-Proxy/internal/models"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// OpenAIToChutesRequest builds the outbound payload from a validated inbound
// body. The upstream speaks the same chat-completions dialect, so the only
// rewrite is the model field: the exposed display name becomes the upstream
// identifier. Every other field, including parameters this proxy does not
// know about, passes through byte-identical.
func OpenAIToChutesRequest(reg *models.Registry, rawJSON []byte) ([]byte, error) {
	model := gjson.GetBytes(rawJSON, "model").String()
	upstreamID, ok := reg.Resolve(model)
	if !ok {
		return nil, apperrors.NewUnknownModel(model)
	}
	out, err := sjson.SetBytes(rawJSON, "model", upstreamID)
	if err != nil {
		return nil, apperrors.NewValidation("invalid request body: " + err.Error())
	}
	return out, nil
}
