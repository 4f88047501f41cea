package sqlite

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

// AutoQuitFunc decides whether an idle worker may stop on its own.
// It is evaluated on the worker goroutine only while the queue is empty.
type AutoQuitFunc func() bool

// AutoQuitOnDone returns an AutoQuitFunc reporting whether ctx is done.
// It is the cooperative shutdown signal used by default.
func AutoQuitOnDone(ctx context.Context) AutoQuitFunc {
	return func() bool {
		return ctx.Err() != nil
	}
}

// Option customizes DB behavior.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	autoQuit     AutoQuitFunc
	autoQuitSet  bool
	pollInterval time.Duration
	queueSize    int
	registerer   prometheus.Registerer
}

func defaultOptions() *options {
	return &options{
		logger:       slog.New(slog.DiscardHandler),
		pollInterval: domain.DefaultPollInterval,
		queueSize:    domain.DefaultQueueSize,
	}
}

// WithLogger specifies the logger used by the worker and facade.
// If not provided, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAutoQuit replaces the default autoquit predicate.
func WithAutoQuit(fn AutoQuitFunc) Option {
	return func(o *options) {
		o.autoQuit = fn
		o.autoQuitSet = true
	}
}

// WithoutAutoQuit disables autoquit; the worker then stops only on Quit.
func WithoutAutoQuit() Option {
	return WithAutoQuit(nil)
}

// WithPollInterval sets how long the idle worker waits before re-evaluating autoquit.
// Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithQueueSize bounds the command and response queues.
// Non-positive values are ignored.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}

// WithRegisterer enables Prometheus metrics for the worker.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}
