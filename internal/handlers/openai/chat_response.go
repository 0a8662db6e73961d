package openai

import (
	"net/http"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	common "github.com/aikoandre/Chutes-Proxy/internal/handlers/common"
	"github.com/aikoandre/Chutes-Proxy/internal/logging"
	"github.com/aikoandre/Chutes-Proxy/internal/translator"
	"github.com/aikoandre/Chutes-Proxy/internal/upstream"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// completeChat runs the non-streaming path: one upstream round trip, then the
// translated body is returned in full.
func (h *Handler) completeChat(c *gin.Context, req *chatRequestContext) *chatError {
	baseCtx := upstream.WithHeaderOverrides(c.Request.Context(), c.Request.Header)
	ctx, cancel := common.WithUpstreamTimeout(baseCtx, false)
	defer cancel()

	resp, err := h.client.ChatCompletion(ctx, req.payload)
	if err != nil {
		return chatErrorFrom(apperrors.MapNetworkError(err))
	}

	body, err := upstream.ReadAll(resp)
	if err != nil {
		return chatErrorFrom(apperrors.MapNetworkError(err))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return newChatErrorWithBody(apperrors.MapHTTPError(resp.StatusCode, body), body)
	}

	out, err := translator.ChutesToOpenAIResponse(body, req.displayName)
	if err != nil {
		return chatErrorFrom(err)
	}

	recordTokenUsage(req.displayName, out)

	logging.WithReq(c, log.Fields{
		"upstream_model":  req.upstreamID,
		"upstream_status": resp.StatusCode,
		"stream":          false,
		"kind":            logging.ErrorKind(resp.StatusCode, false),
	}).Info("chat_completed")

	c.Data(http.StatusOK, "application/json", out)
	return nil
}
