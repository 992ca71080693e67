// Package errors provides structured error handling with context propagation
// and HTTP status code mapping for responses coming back from the trainer API.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of error for metrics and retry decisions.
type ErrorType string

const (
	// TypeValidation indicates the backend rejected the request input (HTTP 400)
	TypeValidation ErrorType = "validation"
	// TypeNotFound indicates the resource does not exist (HTTP 404)
	TypeNotFound ErrorType = "not_found"
	// TypeNetwork indicates a transient transport or server-side failure
	TypeNetwork ErrorType = "network"
	// TypeDecode indicates a response body that could not be parsed
	TypeDecode ErrorType = "decode"
	// TypeInternal indicates a client-side programming error
	TypeInternal ErrorType = "internal"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ValidationError creates a new validation error.
func ValidationError(message string) *Error {
	return &Error{Type: TypeValidation, Message: message, Context: make(map[string]any)}
}

// NotFoundError creates a new not-found error.
func NotFoundError(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message, Context: make(map[string]any)}
}

// NetworkError creates a new transient network error.
func NetworkError(message string, cause error) *Error {
	return &Error{Type: TypeNetwork, Message: message, Cause: cause, Context: make(map[string]any)}
}

// DecodeError creates a new response-decoding error.
func DecodeError(message string, cause error) *Error {
	return &Error{Type: TypeDecode, Message: message, Cause: cause, Context: make(map[string]any)}
}

// InternalError creates a new internal error.
func InternalError(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause, Context: make(map[string]any)}
}

// FromResponse maps a non-2xx API response to a typed error. The detail
// string is the backend's {"detail": ...} body, already extracted.
func FromResponse(status int, detail string) *Error {
	if detail == "" {
		detail = http.StatusText(status)
	}
	switch {
	case status == http.StatusNotFound:
		return NotFoundError(detail).WithContext("status", status)
	case status >= 400 && status < 500:
		return ValidationError(detail).WithContext("status", status)
	default:
		return NetworkError(detail, nil).WithContext("status", status)
	}
}

// IsTransient reports whether the error is worth a user-driven retry:
// transport failures and 5xx responses, never validation rejections.
func IsTransient(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == TypeNetwork
	}
	return false
}

// TypeOf returns the error's type, or TypeInternal for untyped errors.
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}
