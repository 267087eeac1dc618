// Package mocks provides testify mocks for the rate limiter
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/wrale/wrale-analytics/internal/satrackd/ratelimit"
)

// Service implements ratelimit.Service
type Service struct {
	mock.Mock
}

func (m *Service) Allow(ctx context.Context, key ratelimit.LimitKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *Service) GetLimit(limitType string) ratelimit.Limit {
	args := m.Called(limitType)
	return args.Get(0).(ratelimit.Limit)
}

func (m *Service) RegisterLimit(limitType string, limit ratelimit.Limit) error {
	args := m.Called(limitType, limit)
	return args.Error(0)
}

// Store implements ratelimit.Store
type Store struct {
	mock.Mock
}

func (m *Store) Increment(ctx context.Context, key ratelimit.LimitKey, limit ratelimit.Limit) (int, error) {
	args := m.Called(ctx, key, limit)
	return args.Int(0), args.Error(1)
}
