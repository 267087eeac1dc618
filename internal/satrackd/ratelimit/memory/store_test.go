package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrale/wrale-analytics/internal/satrackd/ratelimit"
)

func TestStoreFixedWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time { return now }

	ctx := context.Background()
	key := ratelimit.LimitKey{Type: ratelimit.EventRelayLimit, RemoteIP: "192.0.2.1"}
	limit := ratelimit.Limit{Rate: 2, Period: time.Minute, BurstSize: 1}

	for i := 1; i <= 3; i++ {
		count, err := s.Increment(ctx, key, limit)
		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	count, err := s.Increment(ctx, key, limit)
	assert.ErrorIs(t, err, ratelimit.ErrLimitExceeded)
	assert.Equal(t, 4, count)

	other := ratelimit.LimitKey{Type: ratelimit.EventRelayLimit, RemoteIP: "192.0.2.2"}
	_, err = s.Increment(ctx, other, limit)
	assert.NoError(t, err, "keys are counted independently")

	now = now.Add(time.Minute)
	count, err = s.Increment(ctx, key, limit)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "a new window starts after the period")
	assert.NotContains(t, s.windows, other, "expired windows are swept")
}

func TestStoreSweepsAtMostOncePerInterval(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	s := NewStore()
	s.now = func() time.Time { return now }

	ctx := context.Background()
	limit := ratelimit.Limit{Rate: 5, Period: 10 * time.Second}
	key := func(ip string) ratelimit.LimitKey {
		return ratelimit.LimitKey{Type: ratelimit.EventRelayLimit, RemoteIP: ip}
	}

	_, err := s.Increment(ctx, key("192.0.2.1"), limit)
	require.NoError(t, err)

	now = start.Add(20 * time.Second)
	_, err = s.Increment(ctx, key("192.0.2.2"), limit)
	require.NoError(t, err)
	assert.Contains(t, s.windows, key("192.0.2.1"), "no sweep before the interval elapses")

	now = start.Add(sweepInterval)
	_, err = s.Increment(ctx, key("192.0.2.3"), limit)
	require.NoError(t, err)
	assert.NotContains(t, s.windows, key("192.0.2.1"))
	assert.NotContains(t, s.windows, key("192.0.2.2"))
	assert.Len(t, s.windows, 1)
}
