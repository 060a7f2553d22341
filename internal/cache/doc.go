// Package cache provides a capacity-bounded TTL cache for formatted query
// results and a Manager owning the per-query-type cache instances.
//
// Cache layers per-entry absolute expiry on top of an LRU store: Get
// removes stale entries lazily, SweepExpired removes them in bulk, and
// insertion beyond capacity evicts the least-recently-used entry. The
// Manager holds three independent caches (search, random, category),
// tracks hit/miss counters per type, and exposes bulk clear and sweep
// operations for the background cleanup loop.
package cache
