// Package errors provides the error taxonomy shared by the tracker, relay and CLI.
// The tracking errors are those of the public analytics package; the relay
// adds its own on top.
package errors

import (
	"errors"

	analyticserrors "github.com/wrale/wrale-analytics/pkg/analytics/errors"
)

// Error represents a domain error with additional context
type Error = analyticserrors.Error

// Sentinel errors
var (
	ErrMissingHostname = analyticserrors.ErrMissingHostname
	ErrInvalidInput    = analyticserrors.ErrInvalidInput
	ErrTransport       = analyticserrors.ErrTransport

	// ErrRateLimited indicates the caller exceeded its request budget
	ErrRateLimited = errors.New("rate limit exceeded")
)

// NewError creates a new Error with the given details
func NewError(code string, message string, op string, err error) *Error {
	return analyticserrors.NewError(code, message, op, err)
}

// InvalidInput wraps a validation failure so it matches ErrInvalidInput
func InvalidInput(op, message string) *Error {
	return analyticserrors.InvalidInput(op, message)
}

// IsMissingHostname returns true if err represents a missing hostname
func IsMissingHostname(err error) bool {
	return analyticserrors.IsMissingHostname(err)
}

// IsInvalidInput returns true if err represents an invalid input error
func IsInvalidInput(err error) bool {
	return analyticserrors.IsInvalidInput(err)
}

// IsTransport returns true if err represents a failed network round trip
func IsTransport(err error) bool {
	return analyticserrors.IsTransport(err)
}

// IsRateLimited returns true if err represents a rate limit rejection
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
