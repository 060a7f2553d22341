package cache

import (
	"log"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Cache type names used in stats
const (
	TypeSearch   = "search_cache"
	TypeRandom   = "random_cache"
	TypeCategory = "category_cache"
)

// Options configures the Manager's cache instances.
type Options struct {
	SearchSize   int
	RandomSize   int
	CategorySize int
	DefaultTTL   time.Duration
}

// Manager owns the three per-query-type caches and their hit/miss
// counters. Counters are incremented on every Get, whether or not the
// caller keeps the value.
type Manager struct {
	search   *Cache
	random   *Cache
	category *Cache

	searchHits     atomic.Int64
	searchMisses   atomic.Int64
	randomHits     atomic.Int64
	randomMisses   atomic.Int64
	categoryHits   atomic.Int64
	categoryMisses atomic.Int64
}

// NewManager creates a Manager. Category entries live twice as long as the
// default TTL since category composition only changes on reload.
func NewManager(opts Options) *Manager {
	return &Manager{
		search:   New(opts.SearchSize, opts.DefaultTTL),
		random:   New(opts.RandomSize, opts.DefaultTTL),
		category: New(opts.CategorySize, opts.DefaultTTL*2),
	}
}

func searchKey(query string) string {
	return "search:" + strings.ToLower(query)
}

func randomKey(category string, count int) string {
	return "random:" + category + ":" + strconv.Itoa(count)
}

func categoryKey(key string) string {
	return "category:" + key
}

// GetSearchResult looks up a cached search result for query.
func (m *Manager) GetSearchResult(query string) (string, bool) {
	value, ok := m.search.Get(searchKey(query))
	if ok {
		m.searchHits.Add(1)
	} else {
		m.searchMisses.Add(1)
	}
	return value, ok
}

// SetSearchResult caches a search result for query.
func (m *Manager) SetSearchResult(query, result string, ttl ...time.Duration) {
	m.search.Set(searchKey(query), result, ttl...)
}

// GetRandomRecipes looks up a cached random recommendation.
func (m *Manager) GetRandomRecipes(category string, count int) (string, bool) {
	value, ok := m.random.Get(randomKey(category, count))
	if ok {
		m.randomHits.Add(1)
	} else {
		m.randomMisses.Add(1)
	}
	return value, ok
}

// SetRandomRecipes caches a random recommendation.
func (m *Manager) SetRandomRecipes(category string, count int, result string, ttl ...time.Duration) {
	m.random.Set(randomKey(category, count), result, ttl...)
}

// GetCategoryInfo looks up cached category information.
func (m *Manager) GetCategoryInfo(key string) (string, bool) {
	value, ok := m.category.Get(categoryKey(key))
	if ok {
		m.categoryHits.Add(1)
	} else {
		m.categoryMisses.Add(1)
	}
	return value, ok
}

// SetCategoryInfo caches category information.
func (m *Manager) SetCategoryInfo(key, result string, ttl ...time.Duration) {
	m.category.Set(categoryKey(key), result, ttl...)
}

// ClearAll empties all three caches and resets every counter.
func (m *Manager) ClearAll() {
	m.search.Clear()
	m.random.Clear()
	m.category.Clear()

	m.searchHits.Store(0)
	m.searchMisses.Store(0)
	m.randomHits.Store(0)
	m.randomMisses.Store(0)
	m.categoryHits.Store(0)
	m.categoryMisses.Store(0)

	log.Printf("all caches cleared")
}

// CleanupStats reports how many stale entries a sweep removed.
type CleanupStats struct {
	Search   int `json:"search_cleared"`
	Random   int `json:"random_cleared"`
	Category int `json:"category_cleared"`
	Total    int `json:"total_cleared"`
}

// CleanupExpired sweeps all three caches.
func (m *Manager) CleanupExpired() CleanupStats {
	stats := CleanupStats{
		Search:   m.search.SweepExpired(),
		Random:   m.random.SweepExpired(),
		Category: m.category.SweepExpired(),
	}
	stats.Total = stats.Search + stats.Random + stats.Category
	return stats
}

// TypeStats merges one cache's occupancy with its hit/miss counters.
type TypeStats struct {
	Stats
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"` // rounded to 3 decimals, 0 with no requests
}

// GetCacheStats reports occupancy and hit rates per cache type.
func (m *Manager) GetCacheStats() map[string]TypeStats {
	return map[string]TypeStats{
		TypeSearch:   typeStats(m.search, m.searchHits.Load(), m.searchMisses.Load()),
		TypeRandom:   typeStats(m.random, m.randomHits.Load(), m.randomMisses.Load()),
		TypeCategory: typeStats(m.category, m.categoryHits.Load(), m.categoryMisses.Load()),
	}
}

func typeStats(c *Cache, hits, misses int64) TypeStats {
	var rate float64
	if total := hits + misses; total > 0 {
		rate = math.Round(float64(hits)/float64(total)*1000) / 1000
	}
	return TypeStats{
		Stats:   c.GetStats(),
		Hits:    hits,
		Misses:  misses,
		HitRate: rate,
	}
}
