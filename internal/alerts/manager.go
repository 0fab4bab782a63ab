package alerts

import (
	"go.uber.org/zap"

	"healthwatch/internal/analyzer"
	"healthwatch/internal/models"
)

const (
	// maxRetained caps the retained alert list; oldest entries beyond the
	// cap are dropped irrespective of read state.
	maxRetained = 20
	// maxCandidatesPerPass caps how many of a pass's candidates reach the
	// alert list; only the most recent survive.
	maxCandidatesPerPass = 5
)

// Manager converts analyzer/detector findings into retained Alert records
// with a read/unread lifecycle. One instance per subject; the caller is
// the single writer.
type Manager struct {
	logger *zap.Logger
	// retained alerts, newest first
	alerts []models.Alert
}

// NewManager creates an alert manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		alerts: make([]models.Alert, 0, maxRetained),
	}
}

// Evaluate runs the statistical analyzer and the pattern detector over
// the history, converts the resulting candidates into alerts and returns
// the ones that were actually new. A candidate is suppressed when an
// alert with the same derived id is already retained; there is no
// time-based cooldown beyond that.
func (m *Manager) Evaluate(history []models.Reading) []models.Alert {
	candidates := analyzer.DetectAnomalies(history)
	candidates = append(candidates, analyzer.DetectPatterns(history)...)

	if len(candidates) > maxCandidatesPerPass {
		candidates = candidates[len(candidates)-maxCandidatesPerPass:]
	}

	var created []models.Alert
	for _, c := range candidates {
		if m.exists(c.ID) {
			continue
		}

		alert := c.Alert()
		m.alerts = append([]models.Alert{alert}, m.alerts...)
		created = append(created, alert)

		m.logger.Info("Alert created",
			zap.String("alert_id", alert.ID),
			zap.String("type", string(alert.Type)),
			zap.String("title", alert.Title),
		)
	}

	if len(m.alerts) > maxRetained {
		m.alerts = m.alerts[:maxRetained]
	}

	return created
}

// List returns the retained alerts, most recent first.
func (m *Manager) List() []models.Alert {
	out := make([]models.Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// MarkRead flips an alert's read flag. It reports whether the call
// changed state; an unknown or already-read id is a no-op, not an error.
// Once read, an alert never reverts to unread.
func (m *Manager) MarkRead(alertID string) bool {
	for i := range m.alerts {
		if m.alerts[i].ID != alertID {
			continue
		}
		if m.alerts[i].Read {
			return false
		}
		m.alerts[i].Read = true
		return true
	}
	return false
}

func (m *Manager) exists(alertID string) bool {
	for _, a := range m.alerts {
		if a.ID == alertID {
			return true
		}
	}
	return false
}
