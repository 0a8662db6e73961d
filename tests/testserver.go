package tests

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tidwall/gjson"
)

func startTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("httptest server unavailable: %v", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

// fakeChutes stands in for the Chutes chat-completions endpoint. It records
// every request so tests can assert what the proxy actually sent out.
type fakeChutes struct {
	mu       sync.Mutex
	requests []recordedRequest

	// respond produces the reply for one request; when nil a minimal
	// buffered completion is returned.
	respond func(w http.ResponseWriter, r *http.Request, body []byte)
}

type recordedRequest struct {
	authorization string
	contentType   string
	accept        string
	body          []byte
}

func (f *fakeChutes) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			authorization: r.Header.Get("Authorization"),
			contentType:   r.Header.Get("Content-Type"),
			accept:        r.Header.Get("Accept"),
			body:          body,
		})
		f.mu.Unlock()

		if f.respond != nil {
			f.respond(w, r, body)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cmpl-e2e","object":"chat.completion","created":1700000000,` +
			`"model":"` + gjson.GetBytes(body, "model").String() + `",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"pong"},"finish_reason":"stop"}],` +
			`"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`))
	})
}

func (f *fakeChutes) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeChutes) lastRequest() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return recordedRequest{}
	}
	return f.requests[len(f.requests)-1]
}
