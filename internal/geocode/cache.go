// README: Redis-backed cache for geocoding results.
package geocode

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Geocoded addresses are stable; keep them for a week.
const cacheTTL = 7 * 24 * time.Hour

// Cache stores resolved addresses keyed by normalized address text.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, r Result) error
}

// RedisCache implements Cache on a shared Redis instance.
type RedisCache struct {
	redis *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{redis: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (Result, bool, error) {
	val, err := c.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	var r Result
	if err := json.Unmarshal([]byte(val), &r); err != nil {
		return Result{}, false, err
	}
	return r, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, r Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, key, raw, cacheTTL).Err()
}
