// Package metrics records per-run pipeline metrics for Prometheus.
//
// Metrics live on a private registry and are written once per run to a
// node_exporter textfile, since a batch run never serves HTTP.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	registry *prometheus.Registry

	WindowsTotal      *prometheus.CounterVec
	WindowDuration    prometheus.Histogram
	WindowDocuments   prometheus.Histogram
	WindowSimplices   prometheus.Gauge
	BettiNumber       *prometheus.GaugeVec
	RunFailuresTotal  *prometheus.CounterVec
	LastRunTimestamp  prometheus.Gauge
	LastRunSuccessful prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.WindowsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabtopo_windows_total",
			Help: "Windows visited, by outcome (processed or skipped)",
		},
		[]string{"outcome"},
	)

	m.WindowDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collabtopo_window_duration_seconds",
			Help:    "Time spent processing one non-empty window",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30, 60},
		},
	)

	m.WindowDocuments = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collabtopo_window_documents",
			Help:    "Documents selected per non-empty window",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	m.WindowSimplices = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "collabtopo_window_simplices",
			Help: "Simplices in the most recently processed complex",
		},
	)

	m.BettiNumber = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "collabtopo_betti_number",
			Help: "Betti numbers of the most recently processed window",
		},
		[]string{"dimension"},
	)

	m.RunFailuresTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collabtopo_run_failures_total",
			Help: "Run failures by error kind",
		},
		[]string{"kind"},
	)

	m.LastRunTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "collabtopo_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		},
	)

	m.LastRunSuccessful = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "collabtopo_last_run_success",
			Help: "1 if the last run completed without error",
		},
	)

	return m
}

// RecordSkipped counts an empty window.
func (m *Metrics) RecordSkipped() {
	if m == nil {
		return
	}
	m.WindowsTotal.WithLabelValues("skipped").Inc()
}

// RecordWindow records one processed window.
func (m *Metrics) RecordWindow(documents, simplices int, betti []int, duration time.Duration) {
	if m == nil {
		return
	}
	m.WindowsTotal.WithLabelValues("processed").Inc()
	m.WindowDuration.Observe(duration.Seconds())
	m.WindowDocuments.Observe(float64(documents))
	m.WindowSimplices.Set(float64(simplices))
	m.BettiNumber.Reset()
	for dim, b := range betti {
		m.BettiNumber.WithLabelValues(strconv.Itoa(dim)).Set(float64(b))
	}
}

// RecordRun marks the end of a run. kind is empty on success.
func (m *Metrics) RecordRun(kind string, finished time.Time) {
	if m == nil {
		return
	}
	m.LastRunTimestamp.Set(float64(finished.Unix()))
	if kind == "" {
		m.LastRunSuccessful.Set(1)
		return
	}
	m.LastRunSuccessful.Set(0)
	m.RunFailuresTotal.WithLabelValues(kind).Inc()
}

// WriteTextfile writes the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
