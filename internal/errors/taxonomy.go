package errors

import (
	"fmt"
	"net/http"
)

// NewValidation reports a malformed inbound request. Raised before any
// upstream interaction.
func NewValidation(message string) *APIError {
	return New(http.StatusBadRequest, "invalid_request_error", "invalid_request_error", message)
}

// NewUnknownModel reports a model name absent from the registry. Raised
// before any upstream call is attempted.
func NewUnknownModel(model string) *APIError {
	return New(http.StatusNotFound, "model_not_found", "invalid_request_error",
		fmt.Sprintf("The model %q does not exist or is not served by this proxy", model))
}

// NewUpstreamFormat reports an upstream payload that could not be translated.
// The offending payload is summarized, never replayed wholesale.
func NewUpstreamFormat(message string) *APIError {
	return New(http.StatusBadGateway, "upstream_format_error", "server_error", message)
}
