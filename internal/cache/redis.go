package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache provides caching operations using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  *Stats
}

// NewRedis creates a Redis-backed store.
func NewRedis(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

// Get retrieves a value. The boolean reports a cache hit.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			atomic.AddUint64(&c.stats.Misses, 1)
			return "", false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return "", false, fmt.Errorf("cache get error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return value, true, nil
}

// Set stores a value with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value string) error {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Stats returns the current cache statistics.
func (c *RedisCache) Stats() StatsSnapshot {
	return c.stats.snapshot()
}

// Ping checks if the Redis connection is healthy.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
