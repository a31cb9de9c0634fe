// Package domainerrors defines the coded error taxonomy shared by every
// operation in the registry core. Services return these; the dispatch layer
// translates codes into HTTP statuses.
//
// The first failing check aborts an operation, so at most one coded error is
// produced per request. Every error carries a human-readable message naming
// the offending field and value.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a registry failure.
type Code string

const (
	// CodeValidation: missing or malformed field, invalid enum value.
	CodeValidation Code = "validation"
	// CodeUnauthorized: the request signer is not the System Administrator.
	CodeUnauthorized Code = "unauthorized"
	// CodeConflict: the target id is already committed.
	CodeConflict Code = "conflict"
	// CodeReference: a cited foreign id does not exist in state.
	CodeReference Code = "reference"
	// CodeConsistency: typology/derivation mismatch or a derived product not
	// permitted by an enabled product type.
	CodeConsistency Code = "consistency"
	// CodeInternal: store or codec failure; nothing the caller can fix.
	CodeInternal Code = "internal"
)

// Error is a coded domain error. The zero value is not meaningful; construct
// via New or Wrap.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code. Wrapped chains are searched.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for uncoded
// errors so transport mapping never guesses.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
