package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"healthwatch/internal/alerts"
	"healthwatch/internal/insight"
	"healthwatch/internal/models"
	"healthwatch/internal/window"
)

// Monitor owns the full per-subject pipeline state: window store, alert
// manager and the derived insight products. One instance per subject;
// the window and alert state are never shared between subjects.
//
// A single mutex makes each evaluation tick atomic with respect to
// ingestion and the read paths. Read methods return copies and never
// mutate state.
type Monitor struct {
	subjectID string
	logger    *zap.Logger

	mu     sync.Mutex
	window *window.Store
	alerts *alerts.Manager
}

// New creates a monitor for one subject.
func New(subjectID string, windowSize int, logger *zap.Logger) *Monitor {
	return &Monitor{
		subjectID: subjectID,
		logger:    logger.With(zap.String("subject_id", subjectID)),
		window:    window.NewStore(windowSize),
		alerts:    alerts.NewManager(logger.With(zap.String("subject_id", subjectID))),
	}
}

// SubjectID returns the owning subject.
func (m *Monitor) SubjectID() string {
	return m.subjectID
}

// Ingest appends a reading to the window. Overflow drops the oldest
// reading; there is no blocking and no error on overflow.
func (m *Monitor) Ingest(r models.Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.window.Push(r)
}

// Evaluate runs the full analyzer and pattern pipeline over the current
// window and returns the alerts that were newly created this tick.
func (m *Monitor) Evaluate() []models.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alerts.Evaluate(m.window.Readings(0))
}

// Alerts returns the retained alerts, most recent first, capped at 20.
func (m *Monitor) Alerts() []models.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alerts.List()
}

// MarkRead flips an alert to read and reports whether the call changed
// state. Unknown or already-read ids are a no-op.
func (m *Monitor) MarkRead(alertID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.alerts.MarkRead(alertID)
}

// Insight derives the composite score, risk tier and trend labels from
// the latest reading and recent history. With no history the metrics are
// treated as zero.
func (m *Monitor) Insight() models.HealthInsight {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest, _ := m.window.Latest()
	return insight.BuildInsight(latest, m.window.Readings(0))
}

// Recommendations applies the rule table to the current metrics and
// history.
func (m *Monitor) Recommendations() []models.Recommendation {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest, _ := m.window.Latest()
	return insight.Recommendations(latest, m.window.Readings(0))
}

// Predictions generates the forward-looking statements for the subject.
func (m *Monitor) Predictions() []models.Prediction {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest, _ := m.window.Latest()
	history := m.window.Readings(0)
	return insight.Predictions(latest, history, insight.BuildInsight(latest, history))
}

// AveragesSince returns per-metric means over readings at or after
// cutoff.
func (m *Monitor) AveragesSince(cutoff time.Time) models.MetricAverages {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window.AveragesSince(cutoff)
}

// RangeSince returns per-metric min/max over readings at or after
// cutoff.
func (m *Monitor) RangeSince(cutoff time.Time) models.MetricRanges {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window.RangeSince(cutoff)
}

// Len returns the number of retained readings.
func (m *Monitor) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window.Len()
}
