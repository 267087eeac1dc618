// Package redis stores rate limit counters in Redis so limits hold across relay replicas
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/wrale/wrale-analytics/internal/satrackd/ratelimit"
)

// Store implements rate limit storage using Redis
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed rate limit store
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// keyStr converts a LimitKey to a Redis key
func (s *Store) keyStr(key ratelimit.LimitKey) string {
	return fmt.Sprintf("satrack:rate:%s:%s:%s",
		key.Type,
		key.RemoteIP,
		key.Endpoint,
	)
}

// Increment increments the counter for key, starting a new window on first use
func (s *Store) Increment(ctx context.Context, key ratelimit.LimitKey, limit ratelimit.Limit) (int, error) {
	redisKey := s.keyStr(key)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ratelimit.ErrStoreError, err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, limit.Period).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ratelimit.ErrStoreError, err)
		}
	}

	if int(count) > limit.Max() {
		return int(count), ratelimit.ErrLimitExceeded
	}
	return int(count), nil
}

// Ping verifies the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
