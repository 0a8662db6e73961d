package translator

import (
	"time"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ChutesToOpenAIResponse validates a buffered upstream response and
// normalizes it to the OpenAI completion shape. Generated text is never
// touched; only the envelope is patched: the model field is set back to the
// exposed display name, and id/object/created are synthesized when the
// upstream omits them.
func ChutesToOpenAIResponse(body []byte, displayName string) ([]byte, error) {
	root, err := parseUpstreamObject(body)
	if err != nil {
		return nil, err
	}

	choices := root.Get("choices")
	if !choices.IsArray() || len(choices.Array()) == 0 {
		return nil, apperrors.NewUpstreamFormat("upstream response has no choices")
	}
	if !choices.Array()[0].Get("message").Exists() {
		return nil, apperrors.NewUpstreamFormat("upstream response choice has no message")
	}

	return normalizeEnvelope(body, root, displayName, "chat.completion")
}

// ChutesToOpenAIChunk validates one streamed upstream chunk and normalizes
// it to the OpenAI chunk shape. Token deltas are preserved byte-for-byte.
// Upstream error events pass through unchanged so the caller sees them.
func ChutesToOpenAIChunk(chunk []byte, displayName string) ([]byte, error) {
	root, err := parseUpstreamObject(chunk)
	if err != nil {
		return nil, err
	}

	if root.Get("error").Exists() {
		return chunk, nil
	}
	// An empty choices array is legal: usage-only trailer chunks carry one.
	if !root.Get("choices").IsArray() {
		return nil, apperrors.NewUpstreamFormat("upstream chunk has no choices")
	}

	return normalizeEnvelope(chunk, root, displayName, "chat.completion.chunk")
}

func parseUpstreamObject(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, apperrors.NewUpstreamFormat("upstream payload is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, apperrors.NewUpstreamFormat("upstream payload is not a JSON object")
	}
	return root, nil
}

func normalizeEnvelope(body []byte, root gjson.Result, displayName, object string) ([]byte, error) {
	out := body
	var err error
	if displayName != "" {
		if out, err = sjson.SetBytes(out, "model", displayName); err != nil {
			return nil, apperrors.NewUpstreamFormat("rewrite model: " + err.Error())
		}
	}
	if !root.Get("object").Exists() {
		if out, err = sjson.SetBytes(out, "object", object); err != nil {
			return nil, apperrors.NewUpstreamFormat("set object: " + err.Error())
		}
	}
	if !root.Get("id").Exists() {
		if out, err = sjson.SetBytes(out, "id", newCompletionID()); err != nil {
			return nil, apperrors.NewUpstreamFormat("set id: " + err.Error())
		}
	}
	if !root.Get("created").Exists() {
		if out, err = sjson.SetBytes(out, "created", time.Now().Unix()); err != nil {
			return nil, apperrors.NewUpstreamFormat("set created: " + err.Error())
		}
	}
	return out, nil
}

func newCompletionID() string {
	return "chatcmpl-" + uuid.NewString()
}
