// Package metrics provides Prometheus instrumentation for goflush components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for goflush components.
type Registry struct {
	// Writer Metrics
	WriterFlushes          *prometheus.CounterVec
	WriterFlushedBytes     *prometheus.CounterVec
	WriterAutoFlushes      *prometheus.CounterVec
	WriterSinkErrors       *prometheus.CounterVec
	WriterDiscardedWrites  *prometheus.CounterVec
	WriterOutstandingBytes *prometheus.GaugeVec
	BackpressureWaits      *prometheus.CounterVec
	BackpressureWaitTime   *prometheus.HistogramVec

	// Buffer Pool Metrics
	PoolRents    *prometheus.CounterVec
	PoolReturns  *prometheus.CounterVec
	PoolOversize *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by goflush components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistryWithConfig creates a metrics registry from a Config. It
// returns nil when collection is disabled; components treat a nil
// registry as "no metrics".
func NewRegistryWithConfig(config Config) *Registry {
	if !config.Enabled {
		return nil
	}
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return NewRegistry(reg)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Writer Metrics
		WriterFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "flushes_total",
				Help:      "Total number of batches enqueued for writing",
			},
			[]string{"writer_name"},
		),

		WriterFlushedBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "flushed_bytes_total",
				Help:      "Total number of bytes enqueued for writing",
			},
			[]string{"writer_name"},
		),

		WriterAutoFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "auto_flushes_total",
				Help:      "Total number of implicit flushes triggered by Advance",
			},
			[]string{"writer_name"},
		),

		WriterSinkErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "sink_errors_total",
				Help:      "Total number of sink write failures",
			},
			[]string{"writer_name"},
		),

		WriterDiscardedWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "discarded_writes_total",
				Help:      "Total number of queued writes discarded after a sink failure",
			},
			[]string{"writer_name"},
		),

		WriterOutstandingBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "outstanding_bytes",
				Help:      "Number of bytes currently in flight to the sink",
			},
			[]string{"writer_name"},
		),

		BackpressureWaits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "backpressure_waits_total",
				Help:      "Total number of flush calls that had to wait for in-flight bytes",
			},
			[]string{"writer_name"},
		),

		BackpressureWaitTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "goflush",
				Subsystem: "writer",
				Name:      "backpressure_wait_seconds",
				Help:      "Time spent waiting for the outstanding byte count to drop",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"writer_name"},
		),

		// Buffer Pool Metrics
		PoolRents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "pool",
				Name:      "rents_total",
				Help:      "Total number of buffers rented from the pool",
			},
			[]string{"pool_name", "size_class"},
		),

		PoolReturns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "pool",
				Name:      "returns_total",
				Help:      "Total number of buffers returned to the pool",
			},
			[]string{"pool_name", "size_class"},
		),

		PoolOversize: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "goflush",
				Subsystem: "pool",
				Name:      "oversize_total",
				Help:      "Total number of rents too large for any pooled size class",
			},
			[]string{"pool_name"},
		),
	}
}
