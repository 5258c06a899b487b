package generation

import (
	"errors"
	"net/http"
)

// Kind classifies a generation failure
type Kind string

const (
	KindClientInput   Kind = "client_input"
	KindNetwork       Kind = "network"
	KindProvider      Kind = "provider"
	KindResponseShape Kind = "response_shape"
)

// Error codes
const (
	CodeInvalidJSON        = "INVALID_JSON"
	CodeInvalidInputMethod = "INVALID_INPUT_METHOD"
	CodeMissingPrompt      = "MISSING_PROMPT"
	CodeMissingImage       = "MISSING_IMAGE"
	CodeMissingJewelryType = "MISSING_JEWELRY_TYPE"
	CodeTimeout            = "TIMEOUT"
	CodeNetworkError       = "NETWORK_ERROR"
	CodeProviderError      = "PROVIDER_ERROR"
	CodeBadGateway         = "BAD_GATEWAY_RESPONSE"
	CodeMissingOutputURL   = "MISSING_OUTPUT_URL"
	CodeMissingID          = "MISSING_ID"
)

// Error is a failure that ends a generation. StatusCode is what the caller
// sees; Message is safe to show verbatim.
type Error struct {
	Kind       Kind
	StatusCode int
	Code       string
	Message    string
	// Details carries the raw provider body for provider errors
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from err
func AsError(err error) (*Error, bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

func inputError(code, message string) *Error {
	return &Error{Kind: KindClientInput, StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

func shapeError(code, message string, err error) *Error {
	return &Error{Kind: KindResponseShape, StatusCode: http.StatusBadGateway, Code: code, Message: message, Err: err}
}

// providerMessages override the provider's own text for known statuses
var providerMessages = map[int]string{
	http.StatusBadRequest:          "Bad request: Check your configuration parameters",
	http.StatusUnauthorized:        "Authentication failed: Invalid API key",
	http.StatusForbidden:           "Access forbidden: You don't have permission",
	http.StatusNotFound:            "Not found: Invalid workflow",
	http.StatusTooManyRequests:     "Rate limited: Too many requests, please try again later",
	http.StatusInternalServerError: "The New Black AI server error: Please try again",
}

// ProviderMessage is the caller-facing text for a provider status
func ProviderMessage(status int, statusText string) string {
	if msg, ok := providerMessages[status]; ok {
		return msg
	}
	return "API error: " + statusText
}
