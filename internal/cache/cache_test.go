package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time deterministically.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(maxSize int, defaultTTL time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := New(maxSize, defaultTTL)
	c.now = clock.Now
	return c, clock
}

func TestGetSetRoundTrip(t *testing.T) {
	c, _ := newTestCache(10, time.Hour)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)
	assert.Equal(t, 1, c.Len())
}

func TestTTLExpiry(t *testing.T) {
	c, clock := newTestCache(10, time.Hour)

	c.Set("k", "v", time.Second)
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	before := c.Len()
	clock.Advance(2 * time.Second)

	_, ok = c.Get("k")
	assert.False(t, ok)
	// Lazy expiry removed the entry
	assert.Equal(t, before-1, c.Len())
}

func TestDefaultTTLApplies(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)

	c.Set("k", "v")
	clock.Advance(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCapacityEviction(t *testing.T) {
	c, _ := newTestCache(3, time.Hour)

	for i := range 4 {
		c.Set(fmt.Sprintf("k%d", i), "v")
	}

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("k0")
	assert.False(t, ok, "least-recently-used key should be evicted")
	for _, key := range []string{"k1", "k2", "k3"} {
		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
}

func TestLRUOrderRespectsAccess(t *testing.T) {
	c, _ := newTestCache(2, time.Hour)

	c.Set("a", "1")
	c.Set("b", "2")

	// Touch "a" so "b" becomes least recently used
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", "3")

	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestReplaceCountsAsFreshInsert(t *testing.T) {
	c, _ := newTestCache(2, time.Hour)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("a", "updated") // refreshes recency of "a"
	c.Set("c", "3")       // evicts "b"

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "updated", got)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(10, time.Hour)

	c.Set("k", "v")
	assert.True(t, c.Delete("k"))
	assert.False(t, c.Delete("k"))
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(10, time.Hour)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Clear()
	assert.Zero(t, c.Len())
}

func TestSweepExpired(t *testing.T) {
	c, clock := newTestCache(10, time.Hour)

	c.Set("stale1", "v", time.Second)
	c.Set("stale2", "v", time.Second)
	c.Set("fresh", "v", time.Hour)

	clock.Advance(2 * time.Second)

	assert.Equal(t, 2, c.SweepExpired())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("fresh")
	assert.True(t, ok)

	// Nothing left to sweep
	assert.Zero(t, c.SweepExpired())
}

func TestSweepPreservesRecencyOrder(t *testing.T) {
	c, clock := newTestCache(2, time.Hour)

	c.Set("old", "v")
	c.Set("stale", "v", time.Second)
	clock.Advance(2 * time.Second)

	// Sweeping must not promote "old"; the next insert beyond capacity
	// still evicts it first.
	assert.Equal(t, 1, c.SweepExpired())
	c.Set("a", "1")
	c.Set("b", "2")

	_, ok := c.Get("old")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)
}

func TestGetStats(t *testing.T) {
	c, clock := newTestCache(5, time.Hour)

	c.Set("stale", "v", time.Second)
	c.Set("fresh", "v", time.Hour)
	clock.Advance(2 * time.Second)

	stats := c.GetStats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, 5, stats.MaxSize)
	assert.Equal(t, 1, stats.ExpiredCount)
	assert.Equal(t, 1, stats.ValidCount)
}

func TestMinimumCapacity(t *testing.T) {
	c := New(0, time.Hour)
	c.Set("a", "1")
	c.Set("b", "2")
	assert.Equal(t, 1, c.Len())
}
