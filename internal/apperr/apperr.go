// Package apperr classifies application errors so the HTTP layer can map
// them to status codes and a stable response envelope.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Kind distinguishes the failure classes surfaced to callers.
type Kind int

const (
	KindInternal   Kind = iota // unexpected store/runtime failure
	KindValidation             // malformed, missing or inconsistent input
	KindConflict               // uniqueness violation, pre-check or store-enforced
	KindNotFound               // missing entity by id/slug
	KindAuth                   // missing/invalid/expired credential
	KindForbidden              // role mismatch
)

// Error carries a caller-facing message, a failure kind, and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return fiber.StatusBadRequest
	case KindNotFound:
		return fiber.StatusNotFound
	case KindAuth:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// Validation returns a 400 validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Validationf returns a 400 validation error with a formatted message.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict returns a uniqueness-violation error (surfaced as 400).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Conflictf returns a uniqueness-violation error with a formatted message.
func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Auth returns a 401 error.
func Auth(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

// Forbidden returns a 403 error.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal wraps an unexpected failure as a 500 error.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// IsKind reports whether err is an apperr.Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
