// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records the outcome of a tutorial load as Prometheus
// gauges and writes them to a node-exporter textfile.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "elastic_tutorial"

// Recorder holds the gauges for one CLI run.
type Recorder struct {
	registry *prometheus.Registry

	rows        prometheus.Gauge
	columns     prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
	failures    *prometheus.GaugeVec
}

// NewRecorder registers the load gauges on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rows",
			Help:      "Rows in the last loaded tutorial table.",
		}),
		columns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "columns",
			Help:      "Columns in the last loaded tutorial table, index excluded.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Wall time of the last load, fetch included.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful load.",
		}),
		failures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "load_failed",
			Help:      "1 if the last load failed, by source.",
		}, []string{"source"}),
	}
	r.registry.MustRegister(r.rows, r.columns, r.duration, r.lastSuccess, r.failures)
	return r
}

// Registry exposes the underlying registry, for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveSuccess records a completed load.
func (r *Recorder) ObserveSuccess(source string, rows, columns int, elapsed time.Duration, now time.Time) {
	r.rows.Set(float64(rows))
	r.columns.Set(float64(columns))
	r.duration.Set(elapsed.Seconds())
	r.lastSuccess.Set(float64(now.Unix()))
	r.failures.WithLabelValues(source).Set(0)
}

// ObserveFailure records a failed load.
func (r *Recorder) ObserveFailure(source string, elapsed time.Duration) {
	r.duration.Set(elapsed.Seconds())
	r.failures.WithLabelValues(source).Set(1)
}

// WriteTextfile writes the current values in the Prometheus text format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
