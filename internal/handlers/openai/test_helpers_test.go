package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aikoandre/Chutes-Proxy/internal/config"
	"github.com/aikoandre/Chutes-Proxy/internal/models"
	"github.com/gin-gonic/gin"
)

// stubChutesClient implements chutesClient with injectable behavior and
// call counting, so tests can assert how often the upstream was contacted.
type stubChutesClient struct {
	completionCalls int
	streamCalls     int

	completion func(ctx context.Context, payload []byte) (*http.Response, error)
	stream     func(ctx context.Context, payload []byte) (*http.Response, error)
}

func (s *stubChutesClient) ChatCompletion(ctx context.Context, payload []byte) (*http.Response, error) {
	s.completionCalls++
	if s.completion == nil {
		return jsonResponse(http.StatusOK, `{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"}}]}`), nil
	}
	return s.completion(ctx, payload)
}

func (s *stubChutesClient) ChatCompletionStream(ctx context.Context, payload []byte) (*http.Response, error) {
	s.streamCalls++
	if s.stream == nil {
		return sseResponse("data: [DONE]\n\n"), nil
	}
	return s.stream(ctx, payload)
}

func newHandlerForTests(client chutesClient) *Handler {
	return &Handler{
		cfg:      &config.Config{},
		registry: models.Default(),
		client:   client,
	}
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func sseResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"text/event-stream"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// sseBody builds an upstream SSE body from data payloads, terminated by the
// [DONE] sentinel.
func sseBody(payloads ...string) string {
	var b strings.Builder
	for _, p := range payloads {
		b.WriteString("data: ")
		b.WriteString(p)
		b.WriteString("\n\n")
	}
	b.WriteString("data: [DONE]\n\n")
	return b.String()
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/chat/completions", h.ChatCompletions)
	router.GET("/v1/models", h.ListModels)
	router.GET("/v1/models/:id", h.GetModel)
	return router
}

func performRequest(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)
	return rec
}
