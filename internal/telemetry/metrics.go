// Package telemetry exposes Prometheus metrics for the file manager.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	// Command intake
	CommandsAccepted *prometheus.CounterVec
	CommandsRejected *prometheus.CounterVec

	// Queue and worker
	QueueDepth     prometheus.Gauge
	WorkerDuration *prometheus.HistogramVec
	WorkerErrors   *prometheus.CounterVec

	// Diagnostics
	EventsTotal *prometheus.CounterVec

	// Free-space monitor
	VolumeFreeBytes *prometheus.GaugeVec

	// Open handles
	OpenHandles prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		CommandsAccepted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filemgr_commands_accepted_total",
				Help: "Commands that passed verification and were queued",
			},
			[]string{"command"},
		),
		CommandsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filemgr_commands_rejected_total",
				Help: "Commands rejected at intake",
			},
			[]string{"command", "reason"},
		),
		QueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "filemgr_queue_depth",
				Help: "Entries currently in the command queue",
			},
		),
		WorkerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filemgr_worker_duration_seconds",
				Help:    "Worker command execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
			},
			[]string{"command"},
		),
		WorkerErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filemgr_worker_errors_total",
				Help: "Commands that failed during execution",
			},
			[]string{"command"},
		),
		EventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filemgr_events_total",
				Help: "Diagnostic events by severity",
			},
			[]string{"severity"},
		),
		VolumeFreeBytes: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "filemgr_volume_free_bytes",
				Help: "Free bytes per monitored volume",
			},
			[]string{"volume"},
		),
		OpenHandles: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "filemgr_open_handles",
				Help: "File handles currently registered open",
			},
		),
	}
}
