// Package apperr defines the error taxonomy shared by services and handlers:
// caller-fixable validation errors, absent-record signalling, and opaque
// database failures.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is the machine-readable error code exposed to clients.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeNotFound   Code = "NOT_FOUND"
	CodeDatabase   Code = "DATABASE_ERROR"
)

// Error is a classified application error. Field is set for validation errors
// to name the offending input field; Err carries the underlying cause for
// database errors and is never shown to end users.
type Error struct {
	Code    Code
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error code to an HTTP status.
func (e *Error) Status() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Validation returns a 400-class error naming the offending field.
func Validation(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// NotFound returns a 404-class error. Lifecycle operations signal absence by
// returning nil instead; handlers use this when rendering that absence.
func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// Database wraps a storage failure behind a stable message.
func Database(message string, err error) *Error {
	return &Error{Code: CodeDatabase, Message: message, Err: err}
}

// As extracts an *Error from err's chain, or nil.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == CodeValidation
}

// Message returns the user-facing text for err: the error's own message for
// the three domain codes, a generic string for any other failure, and
// "unknown error" when there is no error value at all.
func Message(err error) string {
	if err == nil {
		return "unknown error"
	}
	if ae := As(err); ae != nil {
		return ae.Message
	}
	return "an unexpected error occurred"
}

// IsUniqueViolation reports whether err is a uniqueness-constraint violation.
// The structured Postgres error code is checked first; substring inspection of
// the error text is a last-resort fallback for drivers that do not surface it.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == pgerrUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	for _, needle := range []string{"unique constraint failed", "unique", "already exists"} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

// Postgres class 23 integrity violation for unique constraints.
const pgerrUniqueViolation = "23505"
