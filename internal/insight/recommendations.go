package insight

import (
	"healthwatch/internal/models"
)

// Rule thresholds for the recommendation table. The 24-point activity
// average intentionally divides by 24 regardless of available history,
// mirroring the reference behavior.
const (
	recHRHigh          = 100
	recHRLow           = 60
	recO2Low           = 95
	recActivityWindow  = 24
	recActivityLow     = 5000
	recSleepLow        = 70
	recHRTrendDelta    = 5
)

// Recommendations applies the rule table against the current metrics and
// recent history. All applicable rules fire independently in declared
// order; the prevention-category hydration and nutrition entries always
// appear.
func Recommendations(current models.Reading, history []models.Reading) []models.Recommendation {
	var recs []models.Recommendation

	// Heart rate analysis
	if current.HeartRate > recHRHigh {
		recs = append(recs, models.Recommendation{
			ID:          "high-heart-rate",
			Title:       "Elevated Heart Rate Detected",
			Description: "Your current heart rate is above the normal resting range. This could indicate stress, caffeine intake, or physical activity.",
			Category:    models.CategoryImmediate,
			Priority:    models.PriorityHigh,
			Actions: []string{
				"Take slow, deep breaths for 2-3 minutes",
				"Sit down and rest for 10-15 minutes",
				"Avoid caffeine for the next few hours",
				"Consider meditation or relaxation techniques",
			},
			DataPoints: 15,
		})
	} else if current.HeartRate < recHRLow {
		recs = append(recs, models.Recommendation{
			ID:          "low-heart-rate",
			Title:       "Low Heart Rate Observed",
			Description: "Your heart rate is below the typical resting range. While this can be normal for athletes, monitor for any symptoms.",
			Category:    models.CategoryImmediate,
			Priority:    models.PriorityMedium,
			Actions: []string{
				"Note any symptoms like dizziness or fatigue",
				"Ensure adequate hydration",
				"Consider gentle movement or stretching",
			},
			DataPoints: 12,
		})
	}

	// Blood oxygen analysis
	if current.BloodOxygen < recO2Low {
		recs = append(recs, models.Recommendation{
			ID:          "low-oxygen",
			Title:       "Low Blood Oxygen Level",
			Description: "Blood oxygen saturation below 95% may indicate respiratory issues or poor circulation.",
			Category:    models.CategoryImmediate,
			Priority:    models.PriorityHigh,
			Actions: []string{
				"Practice deep breathing exercises",
				"Ensure good posture and airway clearance",
				"Move to fresh air if in a stuffy environment",
				"Contact healthcare provider if persistent",
			},
			DataPoints: 20,
		})
	}

	// Activity level analysis over the last 24 points
	if activityAverage(history) < recActivityLow {
		recs = append(recs, models.Recommendation{
			ID:          "low-activity",
			Title:       "Increase Daily Activity",
			Description: "Your recent activity levels are below recommended guidelines. Regular movement is crucial for cardiovascular health.",
			Category:    models.CategoryLifestyle,
			Priority:    models.PriorityMedium,
			Actions: []string{
				"Aim for at least 10,000 steps daily",
				"Take walking breaks every hour",
				"Use stairs instead of elevators",
				"Try a 10-minute morning walk",
			},
			DataPoints: 48,
		})
	}

	// Sleep quality analysis
	if current.SleepQuality < recSleepLow {
		recs = append(recs, models.Recommendation{
			ID:          "poor-sleep",
			Title:       "Improve Sleep Quality",
			Description: "Your sleep quality score indicates room for improvement. Quality sleep is essential for recovery and overall health.",
			Category:    models.CategoryLifestyle,
			Priority:    models.PriorityMedium,
			Actions: []string{
				"Establish a consistent bedtime routine",
				"Avoid screens 1 hour before bed",
				"Keep bedroom cool and dark",
				"Limit caffeine after 2 PM",
			},
			DataPoints: 30,
		})
	}

	// Trend-based recommendation: recent 10-point mean vs the 10 before
	recent, previous := splitHalves(history)
	if len(recent) > 0 && len(previous) > 0 {
		recentHR := metricMean(recent, models.MetricHeartRate)
		previousHR := metricMean(previous, models.MetricHeartRate)

		if recentHR > previousHR+recHRTrendDelta {
			recs = append(recs, models.Recommendation{
				ID:          "increasing-hr-trend",
				Title:       "Rising Heart Rate Trend",
				Description: "Your heart rate has been gradually increasing. This could indicate increasing stress levels or changes in fitness.",
				Category:    models.CategoryPrevention,
				Priority:    models.PriorityLow,
				Actions: []string{
					"Monitor stress levels and practice relaxation",
					"Review recent lifestyle changes",
					"Consider cardiovascular exercise to improve fitness",
					"Track patterns with daily activities",
				},
				DataPoints: 20,
			})
		}
	}

	// Unconditional preventive entries
	recs = append(recs, models.Recommendation{
		ID:          "hydration-reminder",
		Title:       "Stay Hydrated",
		Description: "Proper hydration supports optimal heart function and blood oxygen transport.",
		Category:    models.CategoryPrevention,
		Priority:    models.PriorityLow,
		Actions: []string{
			"Drink 8-10 glasses of water daily",
			"Monitor urine color for hydration status",
			"Increase intake during physical activity",
			"Consider electrolyte balance during exercise",
		},
		DataPoints: 5,
	})

	recs = append(recs, models.Recommendation{
		ID:          "nutrition-focus",
		Title:       "Heart-Healthy Nutrition",
		Description: "A balanced diet rich in omega-3 fatty acids and antioxidants supports cardiovascular health.",
		Category:    models.CategoryLifestyle,
		Priority:    models.PriorityLow,
		Actions: []string{
			"Include fatty fish 2-3 times per week",
			"Eat plenty of fruits and vegetables",
			"Limit processed foods and excess sodium",
			"Consider Mediterranean-style eating patterns",
		},
		DataPoints: 10,
	})

	return recs
}

func activityAverage(history []models.Reading) float64 {
	start := len(history) - recActivityWindow
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, r := range history[start:] {
		sum += r.ActivityLevel
	}
	return sum / recActivityWindow
}
