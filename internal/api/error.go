// internal/api/error.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error is the structured failure returned for any non-2xx response. Message
// carries the server's envelope message when one was provided.
type Error struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// AsError extracts an *Error from err, if it carries one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// IsAuthError reports whether err is a 401 or 403 response.
func IsAuthError(err error) bool {
	apiErr, ok := AsError(err)
	return ok && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// IsJWTExpired reports whether err is a server fault whose message indicates
// an expired token. The server reports this as a 500 with a message substring
// rather than a structured code.
func IsJWTExpired(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusInternalServerError &&
		strings.Contains(apiErr.Message, "JWT expired")
}

// IsConstraintViolation reports whether err is a server fault caused by a
// foreign key constraint, surfaced only via the message text.
func IsConstraintViolation(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.StatusCode == http.StatusInternalServerError &&
		strings.Contains(apiErr.Message, "foreign key constraint")
}
