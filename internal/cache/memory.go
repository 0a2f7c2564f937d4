package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is the in-process fallback used when no Redis is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	stats   *Stats
	now     func() time.Time
}

// NewMemory creates an in-process store. A non-positive ttl never expires.
func NewMemory(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		stats:   &Stats{},
		now:     time.Now,
	}
}

// Get retrieves a value. The boolean reports a cache hit.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || (!entry.expires.IsZero() && c.now().After(entry.expires)) {
		atomic.AddUint64(&c.stats.Misses, 1)
		return "", false, nil
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return entry.value, true, nil
}

// Set stores a value with the configured TTL.
func (c *MemoryCache) Set(_ context.Context, key string, value string) error {
	entry := memoryEntry{value: value}
	if c.ttl > 0 {
		entry.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Stats returns the current cache statistics.
func (c *MemoryCache) Stats() StatsSnapshot {
	return c.stats.snapshot()
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
