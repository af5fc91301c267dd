package infrastructure

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "meteocombine"

// Metrics holds the Prometheus counters and gauges for one consolidation run.
// Each Metrics owns its registry, so a batch run can write it to a
// node_exporter textfile without touching the global default registry.
type Metrics struct {
	registry *prometheus.Registry

	FilesDiscovered prometheus.Gauge
	FilesProcessed  *prometheus.CounterVec // labels: status={success,empty,rejected}
	RowsRetained    prometheus.Counter
	RowsDropped     *prometheus.CounterVec // labels: reason={header,blank,boilerplate,non_numeric}
	DatesMissing    prometheus.Counter
	RunDuration     prometheus.Gauge
	LastRunSuccess  prometheus.Gauge
}

// NewMetrics creates all run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FilesDiscovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "files_discovered",
			Help:      "Spreadsheet files found in the input directory.",
		}),
		FilesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "files_processed_total",
			Help:      "Spreadsheet files processed by outcome status.",
		}, []string{"status"}),
		RowsRetained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_retained_total",
			Help:      "Observation rows written to the combined dataset.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_dropped_total",
			Help:      "Rows removed by the cleaner, by reason.",
		}, []string{"reason"}),
		DatesMissing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dates_missing_total",
			Help:      "Files in which no report date phrase was found.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last consolidation run.",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_success",
			Help:      "1 when the last run completed, 0 when it aborted.",
		}),
	}

	m.registry.MustRegister(
		m.FilesDiscovered,
		m.FilesProcessed,
		m.RowsRetained,
		m.RowsDropped,
		m.DatesMissing,
		m.RunDuration,
		m.LastRunSuccess,
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records the duration and completion state of a run.
func (m *Metrics) ObserveRun(d time.Duration, ok bool) {
	m.RunDuration.Set(d.Seconds())
	if ok {
		m.LastRunSuccess.Set(1)
	} else {
		m.LastRunSuccess.Set(0)
	}
}

// WriteTextfile writes the registry in the text exposition format for the
// node_exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
