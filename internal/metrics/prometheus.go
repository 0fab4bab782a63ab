package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReadingsIngested counts accepted readings.
	ReadingsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "healthwatch_readings_ingested_total",
			Help: "Total number of readings ingested",
		},
	)

	// ReadingsRejected counts readings dropped before ingestion.
	ReadingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthwatch_readings_rejected_total",
			Help: "Total number of readings rejected",
		},
		[]string{"reason"},
	)

	// AlertsCreated counts alerts by type.
	AlertsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthwatch_alerts_created_total",
			Help: "Total number of alerts created",
		},
		[]string{"type"},
	)

	// EvaluationLatency tracks one full evaluate pass per subject.
	EvaluationLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "healthwatch_evaluation_latency_seconds",
			Help:    "Evaluation pass latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// ActiveSubjects is the number of subjects with live monitors.
	ActiveSubjects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "healthwatch_active_subjects",
			Help: "Number of subjects currently monitored",
		},
	)

	// EscalationsSent counts outbound escalation notifications.
	EscalationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthwatch_escalations_sent_total",
			Help: "Total number of escalation notifications sent",
		},
		[]string{"channel"},
	)

	// CacheWrites counts read-path cache updates by outcome.
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "healthwatch_cache_writes_total",
			Help: "Total number of cache writes",
		},
		[]string{"kind", "status"},
	)
)
