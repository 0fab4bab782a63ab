package analyzer

import (
	"fmt"

	"healthwatch/internal/models"
)

// Multi-window pattern thresholds.
const (
	patternWindow        = 20
	sustainedHRLimit     = 100
	sustainedHRCount     = 4 // of the most recent 5 points
	o2DeclineDelta       = 2
	o2DeclineAbsolute    = 96
	variabilityWindow    = 10
	variabilityThreshold = 15
)

// DetectPatterns examines a longer slice of the window for sustained
// conditions, directional trends and variability anomalies that a
// single-point check cannot see. Requires at least 20 points.
func DetectPatterns(history []models.Reading) []models.AnomalyCandidate {
	if len(history) < patternWindow {
		return nil
	}

	var candidates []models.AnomalyCandidate
	recent := history[len(history)-patternWindow:]
	latest := recent[len(recent)-1]
	ts := latest.Timestamp.UnixMilli()

	// Sustained elevated heart rate: 4 of the most recent 5 points above
	// the limit.
	high := 0
	for _, r := range recent[len(recent)-5:] {
		if r.HeartRate > sustainedHRLimit {
			high++
		}
	}
	if high >= sustainedHRCount {
		candidates = append(candidates, models.AnomalyCandidate{
			ID:             fmt.Sprintf("sustained-hr-%d", ts),
			Type:           models.AlertWarning,
			Title:          "Sustained Elevated Heart Rate",
			Description:    "Heart rate has remained elevated for an extended period.",
			Recommendation: "Take time to rest and practice stress reduction techniques. Monitor for other symptoms.",
			Timestamp:      latest.Timestamp,
		})
	}

	// Declining oxygen trend: most recent 5-point mean at least 2 units
	// below the preceding 5-point mean, and itself below 96.
	recentMean := CalculateStats(metricValues(recent[len(recent)-5:], models.MetricBloodOxygen)).Mean
	prevMean := CalculateStats(metricValues(recent[len(recent)-10:len(recent)-5], models.MetricBloodOxygen)).Mean
	if recentMean < prevMean-o2DeclineDelta && recentMean < o2DeclineAbsolute {
		candidates = append(candidates, models.AnomalyCandidate{
			ID:             fmt.Sprintf("declining-o2-%d", ts),
			Type:           models.AlertWarning,
			Title:          "Declining Blood Oxygen Trend",
			Description:    "Blood oxygen levels have been gradually decreasing.",
			Recommendation: "Ensure good ventilation and consider breathing exercises. Monitor closely.",
			Timestamp:      latest.Timestamp,
		})
	}

	// Heart-rate variability: mean absolute successive difference over
	// the most recent 10 points.
	hrValues := metricValues(recent[len(recent)-variabilityWindow:], models.MetricHeartRate)
	if Variability(hrValues) > variabilityThreshold {
		candidates = append(candidates, models.AnomalyCandidate{
			ID:             fmt.Sprintf("hr-variability-%d", ts),
			Type:           models.AlertInfo,
			Title:          "High Heart Rate Variability",
			Description:    "Unusual variation in heart rate patterns detected.",
			Recommendation: "This could indicate stress or irregular rhythm. Consider relaxation techniques.",
			Timestamp:      latest.Timestamp,
		})
	}

	return candidates
}
