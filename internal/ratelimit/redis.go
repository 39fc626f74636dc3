// README: Fixed-window rate limiter over redis counters.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLimitExceeded is returned when a bucket is exhausted for the current
// window. Callers map it to their own throttling response; the limiter does
// no backoff or retry.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Redis counts requests per key in fixed windows. INCR plus a first-write
// EXPIRE keeps it a single round trip in the common case and safe under
// concurrent callers.
type Redis struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

// NewRedis returns a limiter allowing limit calls per window for each key.
func NewRedis(rdb *redis.Client, limit int, window time.Duration) *Redis {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Redis{rdb: rdb, limit: int64(limit), window: window}
}

// CheckLimit consumes one slot for key, returning ErrLimitExceeded when the
// window's budget is spent.
func (l *Redis) CheckLimit(ctx context.Context, key string) error {
	bucket := "ratelimit:" + key

	count, err := l.rdb.Incr(ctx, bucket).Result()
	if err != nil {
		return fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, bucket, l.window).Err(); err != nil {
			return fmt.Errorf("rate limit expire: %w", err)
		}
	}
	if count > l.limit {
		return fmt.Errorf("%w: %d requests in current window for %q", ErrLimitExceeded, count, key)
	}
	return nil
}
