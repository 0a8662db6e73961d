package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/aikoandre/Chutes-Proxy/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAbortWithAPIError(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		err            *apperrors.APIError
		expectedStatus int
		expectedType   string
		expectedCode   string
	}{
		{
			name:           "chat_completions_error",
			path:           "/v1/chat/completions",
			err:            apperrors.New(http.StatusBadRequest, "invalid_request_error", "invalid_request_error", "missing model parameter"),
			expectedStatus: http.StatusBadRequest,
			expectedType:   "invalid_request_error",
			expectedCode:   "invalid_request_error",
		},
		{
			name:           "models_error",
			path:           "/v1/models",
			err:            apperrors.New(http.StatusInternalServerError, "server_error", "server_error", "internal error"),
			expectedStatus: http.StatusInternalServerError,
			expectedType:   "server_error",
			expectedCode:   "server_error",
		},
		{
			name:           "unknown_model_error",
			path:           "/v1/chat/completions",
			err:            apperrors.NewUnknownModel("gpt-4"),
			expectedStatus: http.StatusNotFound,
			expectedType:   "invalid_request_error",
			expectedCode:   "model_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", tt.path, nil)

			AbortWithAPIError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, c.IsAborted())

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			// OpenAI format: {"error": {"message": "...", "type": "...", "code": "..."}}
			errorObj, ok := response["error"].(map[string]interface{})
			require.True(t, ok, "response should have 'error' object")

			assert.Equal(t, tt.err.Message, errorObj["message"])
			assert.Equal(t, tt.expectedType, errorObj["type"])
			assert.Equal(t, tt.expectedCode, errorObj["code"])
		})
	}
}

func TestAbortWithAPIErrorNil(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/v1/chat/completions", nil)

	AbortWithAPIError(c, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAbortWithError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/v1/chat/completions", nil)

	AbortWithError(c, http.StatusBadGateway, "upstream_error", "upstream refused")

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorObj := response["error"].(map[string]interface{})
	assert.Equal(t, "upstream refused", errorObj["message"])
	assert.Equal(t, "upstream_error", errorObj["type"])
}

func TestAbortWithErrorDefaultsOnEmptyFields(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/v1/chat/completions", nil)

	// Out-of-range status falls back to 500, empty type to server_error
	AbortWithError(c, 200, "", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorObj := response["error"].(map[string]interface{})
	assert.Equal(t, "internal error", errorObj["message"])
	assert.Equal(t, "server_error", errorObj["type"])
}

func TestAbortWithUpstreamError(t *testing.T) {
	t.Run("json upstream body lands in details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/v1/chat/completions", nil)

		apiErr := apperrors.MapHTTPError(http.StatusBadGateway, nil)
		AbortWithUpstreamError(c, apiErr, []byte(`{"error":{"message":"boom"}}`))

		assert.Equal(t, http.StatusBadGateway, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorObj := response["error"].(map[string]interface{})
		details, ok := errorObj["details"].(map[string]interface{})
		require.True(t, ok, "error should carry details")
		assert.Contains(t, details, "upstream")
	})

	t.Run("non-json upstream body kept raw", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/v1/chat/completions", nil)

		AbortWithUpstreamError(c, apperrors.MapHTTPError(http.StatusBadGateway, nil), []byte("<html>bad gateway</html>"))

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		errorObj := response["error"].(map[string]interface{})
		details, ok := errorObj["details"].(map[string]interface{})
		require.True(t, ok, "error should carry details")
		assert.Equal(t, "<html>bad gateway</html>", details["upstream_raw"])
	})
}
