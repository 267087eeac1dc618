// Package memory keeps fixed-window rate limit counters in process memory
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wrale/wrale-analytics/internal/satrackd/ratelimit"
)

// sweepInterval is the minimum time between scans for expired windows
const sweepInterval = time.Minute

type window struct {
	count int
	reset time.Time
}

// Store implements ratelimit.Store for a single relay instance
type Store struct {
	mu      sync.Mutex
	windows   map[ratelimit.LimitKey]*window
	lastSweep time.Time
	now       func() time.Time
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		windows: make(map[ratelimit.LimitKey]*window),
		now:     time.Now,
	}
}

// Increment increments the counter for key within the current window
func (s *Store) Increment(_ context.Context, key ratelimit.LimitKey, limit ratelimit.Limit) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(limit.Period)}
		s.windows[key] = w
		if now.Sub(s.lastSweep) >= sweepInterval {
			s.sweep(now)
		}
	}
	w.count++

	if w.count > limit.Max() {
		return w.count, ratelimit.ErrLimitExceeded
	}
	return w.count, nil
}

// sweep drops expired windows; callers hold mu
func (s *Store) sweep(now time.Time) {
	s.lastSweep = now
	for k, w := range s.windows {
		if !now.Before(w.reset) {
			delete(s.windows, k)
		}
	}
}
