package sqlitedb

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

// Option adjusts how a database is opened.
type Option func(*options)

type options struct {
	cfg        Config
	logger     *slog.Logger
	autoQuit   func() bool
	registerer prometheus.Registerer
}

// WithLogger sets the logger. If not provided, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAutoQuit lets the worker stop on its own when fn reports true while idle.
// fn runs on the worker goroutine.
func WithAutoQuit(fn func() bool) Option {
	return func(o *options) {
		o.autoQuit = fn
		o.cfg.Database.AutoQuit = fn != nil
	}
}

// WithoutAutoQuit keeps the worker running until Close.
func WithoutAutoQuit() Option {
	return func(o *options) {
		o.autoQuit = nil
		o.cfg.Database.AutoQuit = false
	}
}

// WithPollInterval sets how often an idle worker re-evaluates autoquit.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.cfg.Database.PollInterval = d.String()
	}
}

// WithQueueSize bounds the worker's queues.
func WithQueueSize(n int) Option {
	return func(o *options) {
		o.cfg.Database.QueueSize = n
	}
}

// WithCacheCapacity sets how many namespace handles are kept.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.cfg.Cache.Capacity = n
	}
}

// WithEviction selects which handle is discarded when the cache is full.
func WithEviction(p domain.EvictionPolicy) Option {
	return func(o *options) {
		o.cfg.Cache.Eviction = p
	}
}

// WithOpaqueCodec selects the encoding of values that are not JSON trees.
func WithOpaqueCodec(c domain.OpaqueCodec) Option {
	return func(o *options) {
		o.cfg.Codec.Opaque = c
	}
}

// WithRegisterer enables Prometheus metrics for the worker and the handle cache.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// Eviction policies and opaque codecs accepted by the options above.
const (
	EvictionRandom = domain.EvictionRandom
	EvictionLRU    = domain.EvictionLRU
	CodecGob       = domain.OpaqueCodecGob
	CodecCBOR      = domain.OpaqueCodecCBOR
)
