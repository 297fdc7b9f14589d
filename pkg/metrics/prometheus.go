package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	recoveries     *prometheus.CounterVec
	snapshots      prometheus.Counter
	snapshotItems  prometheus.Histogram
	buildDuration  prometheus.Histogram
	alertsTotal    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	watchSessions  prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		recoveries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shellwatch_base_price_recoveries_total",
				Help: "Base price recovery attempts by outcome",
			},
			[]string{"outcome"},
		),
		snapshots: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shellwatch_snapshots_built_total",
				Help: "Total number of snapshots built",
			},
		),
		snapshotItems: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shellwatch_snapshot_items",
				Help:    "Number of items per built snapshot",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
		buildDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shellwatch_snapshot_build_duration_seconds",
				Help:    "Duration of snapshot builds in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		alertsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shellwatch_discount_alerts_total",
				Help: "Discount alerts published by topic",
			},
			[]string{"topic"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shellwatch_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		watchSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shellwatch_watch_sessions",
				Help: "Currently connected watch websocket sessions",
			},
		),
	}
}

// RecordRecovery records a base price recovery attempt outcome ("found" or "not_found").
func (r *Recorder) RecordRecovery(outcome string) {
	r.recoveries.WithLabelValues(outcome).Inc()
}

// RecordSnapshotBuilt records a completed snapshot build.
func (r *Recorder) RecordSnapshotBuilt(items int, seconds float64) {
	r.snapshots.Inc()
	r.snapshotItems.Observe(float64(items))
	r.buildDuration.Observe(seconds)
}

// RecordAlertPublished records a published discount alert.
func (r *Recorder) RecordAlertPublished(topic string) {
	r.alertsTotal.WithLabelValues(topic).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// WatchSessionStarted increments the active watch session gauge.
func (r *Recorder) WatchSessionStarted() {
	r.watchSessions.Inc()
}

// WatchSessionEnded decrements the active watch session gauge.
func (r *Recorder) WatchSessionEnded() {
	r.watchSessions.Dec()
}
