package openai

import (
	mw "github.com/aikoandre/Chutes-Proxy/internal/middleware"
	"github.com/tidwall/gjson"
)

// recordTokenUsage feeds the token counters from a usage block, when the
// payload carries one. Streaming chunks usually omit usage (or carry null)
// until the final chunk, so missing blocks are a no-op.
func recordTokenUsage(model string, payload []byte) {
	usage := gjson.GetBytes(payload, "usage")
	if !usage.Exists() || usage.Type == gjson.Null {
		return
	}
	mw.RecordTokenUsage(model,
		usage.Get("prompt_tokens").Int(),
		usage.Get("completion_tokens").Int(),
		usage.Get("total_tokens").Int(),
	)
}
