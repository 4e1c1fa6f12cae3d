// Package ratelimit provides the Redis-backed submission cooldown.
//
// Unlike the default history-backed limiter, the claim here is atomic:
// SET NX both checks and reserves the address's window in one round
// trip, so concurrent duplicates from the same address cannot both pass.
// The trade-off is that the claim is made before the insert commits; a
// submission that later fails persistence still burns its window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smesner/contactsweb/internal/pkg/logger"
)

const keyPrefix = "contacts:cooldown:"

// RedisLimiter reserves a per-address cooldown slot in Redis.
type RedisLimiter struct {
	client *redis.Client
	window time.Duration
}

// NewRedisLimiter creates a limiter. A non-positive window falls back to
// one minute.
func NewRedisLimiter(client *redis.Client, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, window: window}
}

// Allow atomically claims the address's cooldown slot. It returns
// (false, nil) when the slot is already held and an error when Redis
// cannot be reached, which the pipeline treats as indeterminate.
func (l *RedisLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := keyPrefix + email
	claimed, err := l.client.SetNX(ctx, key, 1, l.window).Result()
	if err != nil {
		return false, fmt.Errorf("claim cooldown slot: %w", err)
	}

	logger.Debug("cooldown claim", "email", email, "claimed", claimed)
	return claimed, nil
}
