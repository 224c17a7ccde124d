// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides a process-wide TTL cache for adapter search
// contributions, keyed by (adapter, query, requested count). Eviction is
// TTL-only; there is no size bound.
package cache

import (
	"sync"
	"time"

	"github.com/pdiddy/scholar-hub/pkg/types"
)

// Key identifies one adapter contribution.
type Key struct {
	Adapter string
	Query   string
	Max     int
}

type entry struct {
	storedAt time.Time
	records  []types.Record
}

// Cache is a clock-injected TTL cache, safe for concurrent use. The zero
// value is not usable; construct with New. A nil *Cache is a valid no-op
// cache: Get always misses and Put does nothing.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Key]entry
}

// New creates a cache with the given TTL. now supplies the clock; pass nil
// for time.Now.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[Key]entry),
	}
}

// Get returns the cached records for k, or false when absent or expired.
// Expired entries are removed on access. The returned slice is a copy so
// callers can mutate their records without poisoning the cache.
func (c *Cache) Get(k Key) ([]types.Record, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.entries[k]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().Sub(e.storedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Put may have refreshed it.
		if cur, ok := c.entries[k]; ok && c.now().Sub(cur.storedAt) > c.ttl {
			delete(c.entries, k)
		}
		c.mu.Unlock()
		return nil, false
	}

	out := make([]types.Record, len(e.records))
	copy(out, e.records)
	return out, true
}

// Put stores records under k with the current timestamp, replacing any
// previous entry.
func (c *Cache) Put(k Key, records []types.Record) {
	if c == nil {
		return
	}

	stored := make([]types.Record, len(records))
	copy(stored, records)

	c.mu.Lock()
	c.entries[k] = entry{storedAt: c.now(), records: stored}
	c.mu.Unlock()
}

// Len reports the number of entries, expired or not.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
