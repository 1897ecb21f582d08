package errors

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// MaxBodyExcerpt bounds how much of a backend response body is kept on an error
const MaxBodyExcerpt = 256

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// BackendError is returned when the REST backend answers outside the 2xx range.
type BackendError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

// NewBackendError creates a backend error, keeping at most a short excerpt of body.
func NewBackendError(method, url string, statusCode int, body []byte) *BackendError {
	if len(body) > MaxBodyExcerpt {
		body = body[:MaxBodyExcerpt]
	}
	body = trimPartialRune(body)
	return &BackendError{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

// trimPartialRune drops a UTF-8 sequence cut off at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}

// Error implements the error interface
func (e *BackendError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend %s %s returned %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend %s %s returned %d", e.Method, e.URL, e.StatusCode)
}

// HTTPStatus returns the HTTP status for this error
func (e *BackendError) HTTPStatus() int {
	return http.StatusBadGateway
}

// HTTPStatuser is implemented by errors that map onto an HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

// StatusOf returns the HTTP status carried by err, or 500 when it carries none.
func StatusOf(err error) int {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}
