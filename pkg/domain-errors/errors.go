// Package domainerrors provides coded domain errors.
//
// Services return these so transport layers can map failures onto a stable
// taxonomy without string matching. Stores return pkg/platform/sentinel
// errors; services translate them into coded errors at the boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	CodeValidation    Code = "VALIDATION"
	CodeBadRequest    Code = "BAD_REQUEST"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeCertification Code = "CERTIFICATION"
	CodeIntegrity     Code = "INTEGRITY"
	CodeInternal      Code = "INTERNAL"
)

// Error is a coded domain error. Details carries per-item findings for
// errors that aggregate several problems (certification gate, integrity
// check) so callers can surface every finding, not just the first.
type Error struct {
	Code    Code
	Message string
	Details []string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// WithDetails returns a copy of the error carrying per-item findings.
func (e *Error) WithDetails(details ...string) *Error {
	clone := *e
	clone.Details = append(clone.Details[:len(clone.Details):len(clone.Details)], details...)
	return &clone
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// GetCode extracts the code from err, defaulting to CodeInternal for
// uncoded errors so transport mapping always has something to work with.
func GetCode(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Is delegates to errors.Is so callers using the alias import don't need a
// second errors import.
func Is(err, target error) bool { return errors.Is(err, target) }
