// Package metrics provides Prometheus metrics for the HTTP server and the
// export pipeline:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - export_runs_total / export_failures_total: export run counters
//   - structure_record_count / ambiguous_ligand_count: snapshot gauges
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	ExportRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "export_runs_total",
			Help: "Completed identifier export runs",
		},
	)

	ExportFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "export_failures_total",
			Help: "Failed identifier export runs",
		},
	)

	StructureRecordCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "structure_record_count",
			Help: "Structure records in the latest snapshot",
		},
	)

	AmbiguousLigandCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ambiguous_ligand_count",
			Help: "Ligand expo codes shared by multiple KLIFS ligand IDs in the latest snapshot",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(ExportRunsTotal)
	prometheus.MustRegister(ExportFailuresTotal)
	prometheus.MustRegister(StructureRecordCount)
	prometheus.MustRegister(AmbiguousLigandCount)
}
