package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dualcaster-deals/dualcaster/app/internal/apperrors"
)

// Kind classifies an API client failure. Handlers switch on the closed set of
// kinds for differentiated handling instead of inspecting message text.
type Kind int

const (
	// KindAuth - an authenticated call was attempted with no stored token.
	// The request never reaches the network.
	KindAuth Kind = iota

	// KindUnauthorized - the backend answered 401. The stored token has
	// already been cleared by the time the caller sees this error.
	KindUnauthorized

	// KindTimeout - the client-side deadline was exceeded. Carries 408
	// semantics; a refresh-class operation may still be running server-side.
	KindTimeout

	// KindNetwork - the backend could not be reached (status 0).
	KindNetwork

	// KindHTTP - any other non-2xx response.
	KindHTTP

	// KindInternal - request marshaling or response decoding failed.
	KindInternal
)

var kindNames = []string{"auth", "unauthorized", "timeout", "network", "http", "internal"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// APIError is the single error shape surfaced by the client layer.
// StatusCode 0 = no HTTP response was received.
type APIError struct {
	Kind       Kind
	StatusCode int
	// Message is shown to the end user. For HTTP failures it is the
	// detail/message field extracted from the response body when present.
	Message string
	// LogMessage carries the technical detail for logging.
	LogMessage string
}

func (e *APIError) Error() string {
	return e.Message
}

// LogError returns the detailed technical message for logging
func (e *APIError) LogError() string {
	if e.LogMessage != "" {
		return e.LogMessage
	}
	return e.Message
}

// Retryable reports whether re-invoking the same call can plausibly succeed
// without the user re-authenticating first.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindNetwork:
		return true
	case KindHTTP:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// newAuthRequiredError - client-side short-circuit, no network call was made
func newAuthRequiredError() *APIError {
	return &APIError{
		Kind:       KindAuth,
		StatusCode: 0,
		Message:    "Authentication required. Please log in.",
		LogMessage: "authenticated call attempted with no stored token",
	}
}

// newTimeoutError - the configured deadline passed before the backend answered.
// Refresh-class operations keep running server-side after the client gives up.
func newTimeoutError(path string, refreshClass bool) *APIError {
	msg := fmt.Sprintf("The request timed out (%s).", path)
	if refreshClass {
		msg = fmt.Sprintf("The refresh timed out (%s). The operation may still be running on the server - check back shortly.", path)
	}
	return &APIError{
		Kind:       KindTimeout,
		StatusCode: http.StatusRequestTimeout,
		Message:    msg,
		LogMessage: fmt.Sprintf("deadline exceeded calling %s", path),
	}
}

// newNetworkError - fetch-level failure, names the unreachable URL
func newNetworkError(url string, err error) *APIError {
	return &APIError{
		Kind:       KindNetwork,
		StatusCode: 0,
		Message:    fmt.Sprintf("Unable to reach %s. Please check your connection and try again.", url),
		LogMessage: fmt.Sprintf("network error calling %s: %v", url, err),
	}
}

// newInternalError - supply the error and an explanation of what was being
// done when the error occurred
func newInternalError(err error, while string) *APIError {
	return &APIError{
		Kind:       KindInternal,
		StatusCode: 0,
		Message:    "An error occurred. Please try again later.",
		LogMessage: fmt.Sprintf("internal error: %v while %v", err, while),
	}
}

// newHTTPError creates an APIError from a non-2xx response sent by the
// Dualcaster API. The message is extracted from the JSON body detail/message
// field, falling back to the raw body text, falling back to "HTTP <status>".
func newHTTPError(res *http.Response) *APIError {
	kind := KindHTTP
	if res.StatusCode == http.StatusUnauthorized {
		kind = KindUnauthorized
	}

	apiErr := &APIError{
		Kind:       kind,
		StatusCode: res.StatusCode,
		Message:    fmt.Sprintf("HTTP %d", res.StatusCode),
		LogMessage: fmt.Sprintf("dualcaster API status %d", res.StatusCode),
	}

	if res.Body == nil {
		return apiErr
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var serverErr struct {
		ErrorCode apperrors.ErrorCode `json:"error_code"`
		Detail    string              `json:"detail"`
		Message   string              `json:"message"`
	}

	if err := json.Unmarshal(body, &serverErr); err == nil {
		switch {
		case serverErr.Detail != "":
			apiErr.Message = serverErr.Detail
		case serverErr.Message != "":
			apiErr.Message = serverErr.Message
		}
		if serverErr.ErrorCode != "" {
			apiErr.LogMessage = fmt.Sprintf("dualcaster API status %d - %s: %s", res.StatusCode, serverErr.ErrorCode, apiErr.Message)
		} else if apiErr.Message != "" {
			apiErr.LogMessage = fmt.Sprintf("dualcaster API status %d - %s", res.StatusCode, apiErr.Message)
		}
		if apiErr.Message != fmt.Sprintf("HTTP %d", res.StatusCode) {
			return apiErr
		}
	}

	// not a JSON error body - fall back to the response text
	if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Message = text
		apiErr.LogMessage = fmt.Sprintf("dualcaster API status %d - %s", res.StatusCode, text)
	} else if res.Status != "" {
		apiErr.LogMessage = fmt.Sprintf("dualcaster API status %s", res.Status)
	}

	return apiErr
}
