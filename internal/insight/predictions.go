package insight

import (
	"healthwatch/internal/models"
)

const (
	predActivityWindow = 7
	predActivityHigh   = 9000
	predSleepGood      = 80
)

// Predictions generates the forward-looking statements from the smaller
// rule table over the insight's trend labels and recent averages. Each
// carries a fixed confidence and timeframe.
func Predictions(current models.Reading, history []models.Reading, ins models.HealthInsight) []models.Prediction {
	var preds []models.Prediction

	// Heart rate trend prediction
	if ins.Trends.HeartRate == models.TrendIncreasing {
		preds = append(preds, models.Prediction{
			Title:       "Heart Rate Trend",
			Description: "Based on current patterns, your resting heart rate may continue to increase over the next few days.",
			Confidence:  0.75,
			Timeframe:   "3-5 days",
		})
	}

	// Activity prediction over the last 7 points
	start := len(history) - predActivityWindow
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, r := range history[start:] {
		sum += r.ActivityLevel
	}
	if sum/predActivityWindow > predActivityHigh {
		preds = append(preds, models.Prediction{
			Title:       "Fitness Improvement",
			Description: "Your consistent high activity levels suggest improved cardiovascular fitness in the coming weeks.",
			Confidence:  0.85,
			Timeframe:   "2-3 weeks",
		})
	}

	// Recovery prediction
	if current.SleepQuality > predSleepGood && ins.Trends.Activity == models.TrendIncreasing {
		preds = append(preds, models.Prediction{
			Title:       "Enhanced Recovery",
			Description: "Good sleep quality combined with increased activity suggests optimal recovery patterns.",
			Confidence:  0.72,
			Timeframe:   "1-2 weeks",
		})
	}

	// Risk prediction
	if ins.RiskLevel == models.RiskHigh {
		preds = append(preds, models.Prediction{
			Title:       "Health Risk Alert",
			Description: "Current health patterns indicate potential risks. Following recommendations could improve outcomes.",
			Confidence:  0.68,
			Timeframe:   "Immediate attention needed",
		})
	}

	return preds
}
