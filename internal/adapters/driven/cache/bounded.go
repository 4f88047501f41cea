package cache

import (
	"fmt"
	"sync"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
	"github.com/esoadamo/sqlitedb/internal/core/ports/driven"
)

// Bounded is a fixed-capacity cache whose eviction order is decided by a Policy.
type Bounded[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]V
	policy   Policy
	evictFn  EvictCallback[V]
	metrics  *cacheMetrics
}

var _ driven.Cache[int] = (*Bounded[int])(nil)

// New creates a cache holding at most capacity entries.
func New[V any](capacity int, policy Policy, options ...Option[V]) (*Bounded[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: cache capacity must be positive, got %d", domain.ErrInvalidInput, capacity)
	}
	if policy == nil {
		policy = NewRandom()
	}

	opts := &cacheOptions[V]{}
	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	var metrics *cacheMetrics
	if opts.registerer != nil {
		var err error
		metrics, err = newCacheMetrics(opts.registerer, opts.metricsName)
		if err != nil {
			return nil, fmt.Errorf("registering cache metrics: %w", err)
		}
	}

	return &Bounded[V]{
		capacity: capacity,
		items:    make(map[string]V, capacity),
		policy:   policy,
		evictFn:  opts.evictCallback,
		metrics:  metrics,
	}, nil
}

// Capacity returns the maximum number of entries.
func (c *Bounded[V]) Capacity() int {
	return c.capacity
}

// Get retrieves a value by key.
func (c *Bounded[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items[key]
	if !ok {
		c.metrics.recordMiss()
		return v, false
	}
	c.policy.Touched(key)
	c.metrics.recordHit()
	return v, true
}

// Add stores value under key. Adding a new key to a full cache first evicts
// exactly one entry chosen by the policy and returns its key.
func (c *Bounded[V]) Add(key string, value V) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; ok {
		c.items[key] = value
		c.policy.Touched(key)
		return "", false
	}

	var evicted string
	var didEvict bool
	if len(c.items) >= c.capacity {
		evicted, didEvict = c.evict()
	}

	c.items[key] = value
	c.policy.Added(key)
	c.metrics.updateSize(len(c.items))
	return evicted, didEvict
}

// evict removes the policy's victim. Caller must hold the lock.
func (c *Bounded[V]) evict() (string, bool) {
	victim, ok := c.policy.Victim()
	if !ok {
		return "", false
	}
	value := c.items[victim]
	delete(c.items, victim)
	c.policy.Removed(victim)
	c.metrics.recordEviction()
	if c.evictFn != nil {
		c.evictFn(victim, value)
	}
	return victim, true
}

// Remove forgets key.
func (c *Bounded[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	c.policy.Removed(key)
	c.metrics.updateSize(len(c.items))
	return true
}

// Len returns the number of cached entries.
func (c *Bounded[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns the cached keys in no particular order.
func (c *Bounded[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}
