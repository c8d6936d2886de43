package schema

import (
	"fmt"
	"net/http"
	"strings"
)

// StatusError carries a non-2xx HTTP status back to the caller together with
// a message extracted from the response body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v (status %v)", e.Message, e.StatusCode)
}

// NewStatusError builds a StatusError for statusCode; the message comes from
// body.message when the body is a status document, otherwise from the raw
// body, falling back to the standard status text.
func NewStatusError(statusCode int, body []byte) *StatusError {
	message := strings.TrimSpace(string(body))
	if status := ParseStatus(body); status != nil && status.Message != "" {
		message = status.Message
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &StatusError{StatusCode: statusCode, Message: message}
}

// ConfigError reports connection configuration problems detected at
// construction time, before any request is issued.
type ConfigError struct {
	Issues []string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + strings.Join(e.Issues, "; ")
}

// NewConfigError creates a ConfigError with the supplied issues.
func NewConfigError(issues ...string) *ConfigError {
	return &ConfigError{Issues: issues}
}
