package models

import (
	"time"
)

// Metric names used by the window store, analyzers and caches.
const (
	MetricHeartRate     = "heartRate"
	MetricBloodOxygen   = "bloodOxygen"
	MetricSystolic      = "bloodPressureSystolic"
	MetricDiastolic     = "bloodPressureDiastolic"
	MetricActivityLevel = "activityLevel"
	MetricSleepQuality  = "sleepQuality"
)

// Reading is one normalized sample from a device adapter or manual entry.
// Adapters map vendor payloads and units into this shape before handoff;
// the core never mutates a Reading after it is created.
type Reading struct {
	Timestamp              time.Time `json:"timestamp"`
	HeartRate              float64   `json:"heart_rate"`
	BloodOxygen            float64   `json:"blood_oxygen"`
	BloodPressureSystolic  float64   `json:"blood_pressure_systolic"`
	BloodPressureDiastolic float64   `json:"blood_pressure_diastolic"`
	ActivityLevel          float64   `json:"activity_level"`
	SleepQuality           float64   `json:"sleep_quality"`
}

// Metric returns the named metric value, 0 for unknown names.
func (r Reading) Metric(name string) float64 {
	switch name {
	case MetricHeartRate:
		return r.HeartRate
	case MetricBloodOxygen:
		return r.BloodOxygen
	case MetricSystolic:
		return r.BloodPressureSystolic
	case MetricDiastolic:
		return r.BloodPressureDiastolic
	case MetricActivityLevel:
		return r.ActivityLevel
	case MetricSleepQuality:
		return r.SleepQuality
	}
	return 0
}

// ReadingMessage is the canonical ingest payload carried on the reading
// feed (Redis Stream or MQTT). Adapters publish it after normalization.
type ReadingMessage struct {
	SubjectID string  `json:"subject_id"`
	Reading   Reading `json:"reading"`
}

// MetricAverages holds per-metric rounded means over a time range.
type MetricAverages struct {
	HeartRate              float64 `json:"heart_rate"`
	BloodOxygen            float64 `json:"blood_oxygen"`
	BloodPressureSystolic  float64 `json:"blood_pressure_systolic"`
	BloodPressureDiastolic float64 `json:"blood_pressure_diastolic"`
	ActivityLevel          float64 `json:"activity_level"`
	SleepQuality           float64 `json:"sleep_quality"`
}

// MinMax is a per-metric observed range.
type MinMax struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MetricRanges holds per-metric min/max over a time range.
type MetricRanges struct {
	HeartRate              MinMax `json:"heart_rate"`
	BloodOxygen            MinMax `json:"blood_oxygen"`
	BloodPressureSystolic  MinMax `json:"blood_pressure_systolic"`
	BloodPressureDiastolic MinMax `json:"blood_pressure_diastolic"`
	ActivityLevel          MinMax `json:"activity_level"`
	SleepQuality           MinMax `json:"sleep_quality"`
}
