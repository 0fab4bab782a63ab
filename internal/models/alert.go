package models

import (
	"time"
)

// AlertType classifies an alert for downstream collaborators.
// A critical alert is expected to trigger caregiver/emergency escalation.
type AlertType string

const (
	AlertCritical AlertType = "critical"
	AlertWarning  AlertType = "warning"
	AlertInfo     AlertType = "info"
)

// Alert is a persistent, deduplicated finding with a read/unread lifecycle.
// The ID is derived from the originating metric/category plus timestamp, so
// re-emitting the same finding is idempotent for any sink.
type Alert struct {
	ID             string    `json:"id"`
	Type           AlertType `json:"type"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Metric         string    `json:"metric,omitempty"`
	Value          *float64  `json:"value,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Read           bool      `json:"read"`
}

// AnomalyCandidate is a transient finding produced by the statistical
// analyzer or the pattern detector. It is never persisted directly; the
// alert manager consumes it in the same evaluation pass that produced it.
type AnomalyCandidate struct {
	ID             string
	Type           AlertType
	Title          string
	Description    string
	Metric         string
	Value          *float64
	Recommendation string
	Timestamp      time.Time
}

// Alert converts the candidate into its durable form.
func (c AnomalyCandidate) Alert() Alert {
	return Alert{
		ID:             c.ID,
		Type:           c.Type,
		Title:          c.Title,
		Description:    c.Description,
		Metric:         c.Metric,
		Value:          c.Value,
		Recommendation: c.Recommendation,
		Timestamp:      c.Timestamp,
	}
}
