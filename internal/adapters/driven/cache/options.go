package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EvictCallback is called when an entry is evicted from the cache.
// It runs under the cache lock and must not call back into the cache.
type EvictCallback[V any] func(key string, value V)

// Option configures cache behavior using the functional options pattern.
type Option[V any] func(*cacheOptions[V])

type cacheOptions[V any] struct {
	registerer    prometheus.Registerer
	metricsName   string
	evictCallback EvictCallback[V]
}

// WithMetrics enables Prometheus metrics export for the cache.
// If registerer is nil or name is empty, this option is ignored.
func WithMetrics[V any](registerer prometheus.Registerer, name string) Option[V] {
	return func(opts *cacheOptions[V]) {
		if registerer != nil && name != "" {
			opts.registerer = registerer
			opts.metricsName = name
		}
	}
}

// WithEvictionCallback sets a callback function that is called when entries are evicted.
func WithEvictionCallback[V any](callback EvictCallback[V]) Option[V] {
	return func(opts *cacheOptions[V]) {
		opts.evictCallback = callback
	}
}
