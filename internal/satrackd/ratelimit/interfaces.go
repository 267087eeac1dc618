package ratelimit

import (
	"context"
	"time"

	apperrors "github.com/wrale/wrale-analytics/internal/errors"
)

// LimitKey identifies a specific rate limit
type LimitKey struct {
	Type     string // e.g., "event_relay"
	RemoteIP string // client IP
	Endpoint string // API endpoint for specific limits
}

// Store handles rate limit state persistence
type Store interface {
	// Increment increments a counter and returns the current count.
	// Returns ErrLimitExceeded once the count passes Rate+BurstSize.
	Increment(ctx context.Context, key LimitKey, limit Limit) (int, error)
}

// Service manages rate limiting for the relay
type Service interface {
	// Allow checks if an operation should be allowed
	Allow(ctx context.Context, key LimitKey) error

	// GetLimit returns the configured limit for a key type
	GetLimit(limitType string) Limit

	// RegisterLimit adds or updates the limit for a key type
	RegisterLimit(limitType string, limit Limit) error
}

// Limit defines the rate limit configuration
type Limit struct {
	// Rate is the number of operations allowed
	Rate int

	// Period is the time window for the rate
	Period time.Duration

	// BurstSize allows a short burst over the rate (optional)
	BurstSize int
}

// Max returns the highest count allowed within a period
func (l Limit) Max() int {
	return l.Rate + l.BurstSize
}

// Error types for rate limiting
var (
	ErrLimitExceeded = NewError("RATE_LIMITED", "rate limit exceeded", apperrors.ErrRateLimited)
	ErrStoreError    = NewError("STORE_ERROR", "rate limit store error", nil)
	ErrInvalidLimit  = NewError("INVALID_LIMIT", "invalid rate limit configuration", apperrors.ErrInvalidInput)
	ErrInvalidKey    = NewError("INVALID_KEY", "invalid rate limit key", apperrors.ErrInvalidInput)
)

// Error represents a rate limiting error
type Error struct {
	Code    string
	Message string
	err     error
}

func (e Error) Error() string {
	return e.Message
}

// Unwrap exposes the shared sentinel, if any
func (e Error) Unwrap() error {
	return e.err
}

// NewError creates a new rate limit error
func NewError(code string, message string, sentinel error) Error {
	return Error{
		Code:    code,
		Message: message,
		err:     sentinel,
	}
}
