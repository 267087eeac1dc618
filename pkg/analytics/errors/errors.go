// Package errors defines the errors returned by the analytics packages.
// Callers match them with errors.Is, for example to guard against
// ErrTransport when tracking inline in a request handler.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrMissingHostname indicates no hostname was configured or passed per call
	ErrMissingHostname = errors.New("no hostname provided for Simple Analytics")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport indicates the collection endpoint could not be reached
	ErrTransport = errors.New("transport failure")
)

// Error represents a domain error with additional context
type Error struct {
	// Code is a machine-readable error code
	Code string
	// Message is a human-readable error description
	Message string
	// Op describes the operation that failed
	Op string
	// Err is the underlying error
	Err error
}

// Error implements the error interface with a formatted message
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain handling
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error with the given details
func NewError(code string, message string, op string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// InvalidInput wraps a validation failure so it matches ErrInvalidInput
func InvalidInput(op, message string) *Error {
	return NewError("INVALID_INPUT", message, op, ErrInvalidInput)
}

// IsMissingHostname returns true if err represents a missing hostname
func IsMissingHostname(err error) bool {
	return errors.Is(err, ErrMissingHostname)
}

// IsInvalidInput returns true if err represents an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTransport returns true if err represents a failed network round trip
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
