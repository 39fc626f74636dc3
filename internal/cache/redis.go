// README: Redis-backed result cache for the extraction pipeline.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"venuescout/internal/extraction"
)

// Redis implements extraction.Cache on top of a shared redis client.
// Values go through a JSON round-trip, so callers always receive a deep copy
// and can never mutate the stored snapshot.
type Redis struct {
	rdb *redis.Client
}

// NewRedis returns a cache backed by the given client.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

// Get returns the cached result for key, or (nil, nil) on a miss.
func (c *Redis) Get(ctx context.Context, key string) (*extraction.Result, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var result extraction.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &result, nil
}

// Set stores the result under key with a best-effort TTL.
func (c *Redis) Set(ctx context.Context, key string, value *extraction.Result, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
