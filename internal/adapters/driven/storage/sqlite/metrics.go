package sqlite

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/esoadamo/sqlitedb/internal/core/domain"
)

// workerMetrics holds Prometheus metrics for the database worker.
type workerMetrics struct {
	commands *prometheus.CounterVec
	errors   prometheus.Counter
	duration prometheus.Histogram
}

// newWorkerMetrics creates worker metrics and registers them with reg.
// A nil registerer yields nil metrics, which are safe to record on.
func newWorkerMetrics(reg prometheus.Registerer, path string) (*workerMetrics, error) {
	if reg == nil {
		return nil, nil
	}

	labels := prometheus.Labels{"database": path}
	m := &workerMetrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "sqlitedb",
			Subsystem:   "worker",
			Name:        "commands_total",
			ConstLabels: labels,
			Help:        "Total number of commands processed by the worker",
		}, []string{"kind"}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "sqlitedb",
			Subsystem:   "worker",
			Name:        "errors_total",
			ConstLabels: labels,
			Help:        "Total number of commands that failed",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "sqlitedb",
			Subsystem:   "worker",
			Name:        "command_duration_seconds",
			ConstLabels: labels,
			Help:        "Time spent executing a command on the connection",
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.commands, m.errors, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// record tracks one processed command.
func (m *workerMetrics) record(kind domain.CommandKind, failed bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(kind.String()).Inc()
	if failed {
		m.errors.Inc()
	}
	m.duration.Observe(elapsed.Seconds())
}
