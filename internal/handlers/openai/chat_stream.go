package openai

import (
	"net/http"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	common "github.com/aikoandre/Chutes-Proxy/internal/handlers/common"
	"github.com/aikoandre/Chutes-Proxy/internal/logging"
	mw "github.com/aikoandre/Chutes-Proxy/internal/middleware"
	"github.com/aikoandre/Chutes-Proxy/internal/translator"
	"github.com/aikoandre/Chutes-Proxy/internal/upstream"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// streamChatCompletions relays the upstream SSE stream chunk for chunk. Each
// upstream data line is translated, written and flushed before the next one
// is read, so the caller sees chunks at the pace the provider emits them.
//
// SSE headers are withheld until the first chunk translates cleanly; until
// then any failure can still be reported as a regular JSON error. Once bytes
// are on the wire the only remaining option for a broken stream is to close
// the connection with whatever was already sent.
func (h *Handler) streamChatCompletions(c *gin.Context, req *chatRequestContext) *chatError {
	baseCtx := upstream.WithHeaderOverrides(c.Request.Context(), c.Request.Header)
	ctx, cancel := common.WithUpstreamTimeout(baseCtx, true)
	defer cancel()

	resp, err := h.client.ChatCompletionStream(ctx, req.payload)
	if err != nil {
		return chatErrorFrom(apperrors.MapNetworkError(err))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := upstream.ReadAll(resp)
		return newChatErrorWithBody(apperrors.MapHTTPError(resp.StatusCode, body), body)
	}
	defer resp.Body.Close()

	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}

	var (
		w       gin.ResponseWriter
		flusher http.Flusher
		started bool
		lines   int
	)

	closeStream := func(reason string, fields log.Fields) {
		mw.RecordSSELines(path, lines)
		mw.RecordSSEClose(path, reason)
		logging.WithReq(c, fields).Warn("chat_stream_aborted")
	}

	sc := common.NewSSEScanner(resp.Body)
	for {
		raw, done, err := sc.Next()
		if err != nil {
			reason := "upstream_error"
			if c.Request.Context().Err() != nil {
				reason = "client_disconnect"
			}
			if !started {
				return chatErrorFrom(apperrors.MapNetworkError(err))
			}
			closeStream(reason, log.Fields{
				"upstream_model": req.upstreamID,
				"reason":         reason,
				"error":          err.Error(),
				"chunks_sent":    lines,
			})
			return nil
		}
		if done {
			break
		}

		chunk, terr := translator.ChutesToOpenAIChunk(raw, req.displayName)
		if terr != nil {
			if !started {
				return chatErrorFrom(terr)
			}
			closeStream("format_error", log.Fields{
				"upstream_model": req.upstreamID,
				"reason":         "format_error",
				"error":          terr.Error(),
				"chunks_sent":    lines,
			})
			return nil
		}

		if !started {
			w, flusher = common.PrepareSSE(c)
			started = true
		}
		if werr := common.SSEWriteRaw(w, flusher, chunk); werr != nil {
			closeStream("client_disconnect", log.Fields{
				"upstream_model": req.upstreamID,
				"reason":         "client_disconnect",
				"error":          werr.Error(),
				"chunks_sent":    lines,
			})
			return nil
		}
		lines++
		recordTokenUsage(req.displayName, chunk)
	}

	// A stream that ends before producing a single chunk still terminates
	// cleanly for the client.
	if !started {
		w, flusher = common.PrepareSSE(c)
	}
	_ = common.SSEWriteDone(w, flusher)

	mw.RecordSSELines(path, lines)
	mw.RecordSSEClose(path, "done")
	logging.WithReq(c, log.Fields{
		"upstream_model": req.upstreamID,
		"stream":         true,
		"chunks":         lines,
	}).Info("chat_stream_completed")
	return nil
}
