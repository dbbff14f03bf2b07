package api

import (
	"errors"
	"net/http"
)

// Error carries the human-readable message extracted from whichever layer
// failed: an HTTP error body's message field, or a failure raised by the
// mock layer.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Common statuses reused by both implementations.
func BadRequest(message string) *Error   { return NewError(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return NewError(http.StatusUnauthorized, message) }
func NotFound(message string) *Error     { return NewError(http.StatusNotFound, message) }

// ErrorMessage is the single point that turns a facade error into the
// message string stored on the session; forms read that message reactively
// instead of formatting errors themselves.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsStatus reports whether err is an api.Error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
