package analyzer

import (
	"fmt"

	"healthwatch/internal/models"
)

// Single-point detection thresholds.
const (
	minSamples     = 5  // below this, no statistical basis
	recentWindow   = 10 // points used for mean/stddev
	hrCriticalHigh = 110
	hrCriticalLow  = 50
	o2Critical     = 94
	activityFloor  = 3000 // absolute floor for low-activity findings
	bpSystolicMax  = 140
	bpDiastolicMax = 90
)

// DetectAnomalies runs the single-point outlier checks against the latest
// reading of the history. Fewer than 5 points returns no candidates.
func DetectAnomalies(history []models.Reading) []models.AnomalyCandidate {
	if len(history) < minSamples {
		return nil
	}

	var candidates []models.AnomalyCandidate
	latest := history[len(history)-1]
	recent := history
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}
	ts := latest.Timestamp.UnixMilli()

	// Heart rate outlier
	hrStats := CalculateStats(metricValues(recent, models.MetricHeartRate))
	if IsOutlier(latest.HeartRate, hrStats) {
		severity := Severity(latest.HeartRate, hrStats)

		alertType := models.AlertWarning
		if latest.HeartRate > hrCriticalHigh || latest.HeartRate < hrCriticalLow {
			alertType = models.AlertCritical
		}

		title := "Low Heart Rate Alert"
		recommendation := "Monitor for symptoms. Ensure adequate activity level. Consult doctor if accompanied by fatigue."
		if latest.HeartRate > hrStats.Mean {
			title = "Elevated Heart Rate Alert"
			recommendation = "Consider rest, hydration, and stress management. Contact healthcare provider if persistent."
		}

		candidates = append(candidates, models.AnomalyCandidate{
			ID:             fmt.Sprintf("hr-anomaly-%d", ts),
			Type:           alertType,
			Title:          title,
			Description:    fmt.Sprintf("Heart rate of %.0f bpm detected, which is %s outside normal patterns.", latest.HeartRate, severity),
			Metric:         models.MetricHeartRate,
			Value:          floatPtr(latest.HeartRate),
			Recommendation: recommendation,
			Timestamp:      latest.Timestamp,
		})
	}

	// Blood oxygen outlier
	o2Stats := CalculateStats(metricValues(recent, models.MetricBloodOxygen))
	if IsOutlier(latest.BloodOxygen, o2Stats) {
		alertType := models.AlertWarning
		if latest.BloodOxygen < o2Critical {
			alertType = models.AlertCritical
		}

		candidates = append(candidates, models.AnomalyCandidate{
			ID:             fmt.Sprintf("o2-anomaly-%d", ts),
			Type:           alertType,
			Title:          "Blood Oxygen Level Alert",
			Description:    fmt.Sprintf("Blood oxygen saturation of %.0f%% is below normal patterns.", latest.BloodOxygen),
			Metric:         models.MetricBloodOxygen,
			Value:          floatPtr(latest.BloodOxygen),
			Recommendation: "Practice deep breathing exercises. Ensure proper posture. Seek medical attention if levels remain low.",
			Timestamp:      latest.Timestamp,
		})
	}

	// Blood pressure threshold check (not z-score based)
	if latest.BloodPressureSystolic > bpSystolicMax || latest.BloodPressureDiastolic > bpDiastolicMax {
		candidates = append(candidates, models.AnomalyCandidate{
			ID:             fmt.Sprintf("bp-anomaly-%d", ts),
			Type:           models.AlertCritical,
			Title:          "High Blood Pressure",
			Description:    fmt.Sprintf("Blood pressure reading of %.0f/%.0f mmHg indicates hypertension.", latest.BloodPressureSystolic, latest.BloodPressureDiastolic),
			Metric:         models.MetricSystolic,
			Value:          floatPtr(latest.BloodPressureSystolic),
			Recommendation: "Reduce sodium intake, practice relaxation techniques, and consult your healthcare provider immediately.",
			Timestamp:      latest.Timestamp,
		})
	}

	// Activity drop: both conditions required so normal rest periods are
	// not flagged.
	activityStats := CalculateStats(metricValues(recent, models.MetricActivityLevel))
	if latest.ActivityLevel < activityStats.Mean-2*activityStats.StdDev && latest.ActivityLevel < activityFloor {
		candidates = append(candidates, models.AnomalyCandidate{
			ID:             fmt.Sprintf("activity-anomaly-%d", ts),
			Type:           models.AlertInfo,
			Title:          "Low Activity Level Detected",
			Description:    fmt.Sprintf("Activity level of %.0f steps is significantly below your recent average.", latest.ActivityLevel),
			Metric:         models.MetricActivityLevel,
			Value:          floatPtr(latest.ActivityLevel),
			Recommendation: "Consider light physical activity if feeling well. Take regular movement breaks.",
			Timestamp:      latest.Timestamp,
		})
	}

	return candidates
}

func metricValues(readings []models.Reading, metric string) []float64 {
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = r.Metric(metric)
	}
	return values
}

func floatPtr(v float64) *float64 {
	return &v
}
