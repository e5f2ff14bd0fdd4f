package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every instance that
// talks to the same Redis.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter allows perMinute attempts per key in each one-minute window.
func NewRedisLimiter(client redis.Cmdable, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: "throttle:",
		limit:  int64(perMinute),
		window: time.Minute,
	}
}

func (r *RedisLimiter) key(k string) string {
	return r.prefix + k
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := r.key(key)

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ratelimit: incr: %w", err)
	}
	count := incr.Val()

	// a key without expiry opens the window, whether this is the first hit
	// or an earlier EXPIRE was lost
	if ttl.Val() < 0 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit: expire: %w", err)
		}
	}

	return count <= r.limit, nil
}
