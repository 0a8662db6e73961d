package openai

import "github.com/gin-gonic/gin"

// ChatCompletions handles POST /v1/chat/completions. Each inbound request
// maps to exactly one upstream call; the stream flag picks between the
// buffered and the SSE relay path.
func (h *Handler) ChatCompletions(c *gin.Context) {
	reqCtx, cerr := buildChatRequest(h, c)
	if cerr != nil {
		cerr.write(c)
		return
	}

	if reqCtx.isStreaming() {
		if cerr := h.streamChatCompletions(c, reqCtx); cerr != nil {
			cerr.write(c)
		}
		return
	}

	if cerr := h.completeChat(c, reqCtx); cerr != nil {
		cerr.write(c)
	}
}
