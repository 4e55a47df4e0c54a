// Package metrics records encode and decode activity of the huff command
// on a private Prometheus registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "huff"

// Recorder holds the command's collectors. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	operations  *prometheus.CounterVec
	bytes       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	cachedTrees prometheus.Gauge
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of encode and decode operations by result",
			},
			[]string{"op", "result"},
		),
		bytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bytes_total",
				Help:      "Total bytes read and written by operation",
			},
			[]string{"op", "direction"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of encode and decode operations",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"op"},
		),
		cachedTrees: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "table_cache",
				Name:      "trees",
				Help:      "Number of rebuilt trees held by the decoder table cache",
			},
		),
	}
}

// Observe records one operation. in and out are the bytes read and written;
// a failed operation only counts its input.
func (r *Recorder) Observe(op string, in, out int, d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.operations.WithLabelValues(op, result).Inc()
	r.bytes.WithLabelValues(op, "in").Add(float64(in))
	if err == nil {
		r.bytes.WithLabelValues(op, "out").Add(float64(out))
	}
	r.duration.WithLabelValues(op).Observe(d.Seconds())
}

// SetCachedTrees reports the current size of the decoder table cache.
func (r *Recorder) SetCachedTrees(n int) {
	if r == nil {
		return
	}
	r.cachedTrees.Set(float64(n))
}

// WriteTextfile writes all metrics to path in the text exposition format,
// replacing the file atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
