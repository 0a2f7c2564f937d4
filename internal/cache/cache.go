// Package cache stores AI duration estimates so repeated titles skip the
// provider round trip.
package cache

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"paper2plan/internal/config"

	"github.com/redis/go-redis/v9"
)

// Store is a string cache keyed by normalized task title
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Stats() StatsSnapshot
	Close() error
}

// Stats tracks cache statistics.
type Stats struct {
	Hits   uint64
	Misses uint64
	Sets   uint64
	Errors uint64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hit_rate"`
}

func (s *Stats) snapshot() StatsSnapshot {
	hits := atomic.LoadUint64(&s.Hits)
	misses := atomic.LoadUint64(&s.Misses)

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return StatsSnapshot{
		Hits:    hits,
		Misses:  misses,
		Sets:    atomic.LoadUint64(&s.Sets),
		Errors:  atomic.LoadUint64(&s.Errors),
		HitRate: hitRate,
	}
}

// New returns a Redis-backed store when an address is configured and the
// server answers a ping, otherwise an in-process store.
func New(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	if cfg.RedisAddr == "" {
		return NewMemory(cfg.TTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedis(client, cfg.Prefix, cfg.TTL), nil
}

// Key normalizes a task title so case and spacing variants share an entry.
func Key(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// memoryEntry is a value with its expiry
type memoryEntry struct {
	value   string
	expires time.Time
}
