package cache

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// entry pairs a cached value with its absolute expiry time.
type entry struct {
	value     string
	expiresAt time.Time
}

// Cache is a bounded key-value store with least-recently-used eviction and
// per-entry expiry. All operations are safe for concurrent use; the mutex
// is scoped to each individual operation.
type Cache struct {
	mu         sync.Mutex
	lru        *lru.Cache[string, entry]
	maxSize    int
	defaultTTL time.Duration

	now func() time.Time // overridable in tests
}

// New creates a Cache holding at most maxSize entries (minimum 1) whose
// entries expire defaultTTL after insertion unless overridden per Set.
func New(maxSize int, defaultTTL time.Duration) *Cache {
	if maxSize < 1 {
		maxSize = 1
	}
	store, err := lru.New[string, entry](maxSize)
	if err != nil {
		// Unreachable with a positive size
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}
	return &Cache{
		lru:        store,
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the value for key. Stale entries are removed and reported as
// misses; a hit promotes the entry to most-recently-used.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.lru.Get(key)
	if !ok {
		return "", false
	}
	if c.now().After(e.expiresAt) {
		c.lru.Remove(key)
		return "", false
	}
	return e.value, true
}

// Set stores value under key. An existing key is replaced and counts as a
// fresh insert for recency; when the cache is full the least-recently-used
// entry is evicted. An optional ttl overrides the default.
func (c *Cache) Set(key, value string, ttl ...time.Duration) {
	d := c.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		d = ttl[0]
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry{value: value, expiresAt: c.now().Add(d)})
}

// Delete removes key, reporting whether it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Remove(key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Len returns the number of entries currently stored, stale ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// SweepExpired removes every stale entry and returns how many were
// removed. Survivors keep their recency order: inspection uses Peek, which
// does not promote.
func (c *Cache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for _, key := range c.lru.Keys() {
		if e, ok := c.lru.Peek(key); ok && now.After(e.expiresAt) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

// Stats describes the current occupancy of a cache.
type Stats struct {
	Size         int `json:"size"`
	MaxSize      int `json:"max_size"`
	ExpiredCount int `json:"expired_count"` // stale but not yet swept
	ValidCount   int `json:"valid_count"`
}

// GetStats reports occupancy without disturbing recency order.
func (c *Cache) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expired := 0
	for _, key := range c.lru.Keys() {
		if e, ok := c.lru.Peek(key); ok && now.After(e.expiresAt) {
			expired++
		}
	}
	size := c.lru.Len()
	return Stats{
		Size:         size,
		MaxSize:      c.maxSize,
		ExpiredCount: expired,
		ValidCount:   size - expired,
	}
}
