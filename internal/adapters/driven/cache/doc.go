// Package cache provides a bounded, thread-safe cache with pluggable eviction.
//
// It backs the namespace handle cache: when a new entry is added to a full
// cache, the Policy chooses exactly one entry to discard. Eviction only
// forgets the cached value; it never touches what the value refers to.
//
// Policies:
//   - Random: discards a uniformly random entry
//   - LRU: discards the least recently used entry
//
// Eviction counts and cache size can be exported as Prometheus metrics with
// WithMetrics, and observed directly with WithEvictionCallback.
package cache
