package openai

import (
	"net/http"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	common "github.com/aikoandre/Chutes-Proxy/internal/handlers/common"
	"github.com/gin-gonic/gin"
)

// chatError is a request-scoped failure captured before any bytes reached the
// client. body, when set, is the raw upstream payload that explains the
// failure; it rides along so the caller sees what Chutes actually said.
type chatError struct {
	api  *apperrors.APIError
	body []byte
}

func newChatError(api *apperrors.APIError) *chatError {
	return &chatError{api: api}
}

func newChatErrorWithBody(api *apperrors.APIError, body []byte) *chatError {
	return &chatError{api: api, body: body}
}

// chatErrorFrom wraps an arbitrary error. Errors minted by this codebase keep
// their status and code; anything else is reported as an upstream failure.
func chatErrorFrom(err error) *chatError {
	if api, ok := apperrors.AsAPIError(err); ok {
		return &chatError{api: api}
	}
	return &chatError{api: apperrors.New(http.StatusBadGateway, "upstream_error", "server_error", err.Error())}
}

func (e *chatError) write(c *gin.Context) {
	if e == nil {
		return
	}
	if len(e.body) > 0 {
		common.AbortWithUpstreamError(c, e.api, e.body)
		return
	}
	common.AbortWithAPIError(c, e.api)
}
