package insight

import (
	"healthwatch/internal/analyzer"
	"healthwatch/internal/models"
)

// Trend split: the last 20 points are compared as most-recent-10 vs the
// prior 10.
const (
	trendHalf = 10

	hrTrendDelta       = 3
	o2TrendDelta       = 1
	activityTrendDelta = 500
)

// Score derives the composite 0-100 health score from the current
// metrics. Penalties are independent and additive; each metric
// contributes at most once. The result is clamped to [0,100].
func Score(current models.Reading) int {
	score := 100

	switch {
	case current.HeartRate < 60 || current.HeartRate > 100:
		score -= 15
	case current.HeartRate > 90 || current.HeartRate < 65:
		score -= 5
	}

	switch {
	case current.BloodOxygen < 95:
		score -= 20
	case current.BloodOxygen < 97:
		score -= 10
	}

	switch {
	case current.ActivityLevel < 5000:
		score -= 15
	case current.ActivityLevel < 8000:
		score -= 5
	}

	switch {
	case current.SleepQuality < 70:
		score -= 10
	case current.SleepQuality < 80:
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// RiskForScore maps the clamped score to its risk tier.
func RiskForScore(score int) models.RiskLevel {
	if score < 60 {
		return models.RiskHigh
	}
	if score < 80 {
		return models.RiskMedium
	}
	return models.RiskLow
}

// ComputeTrends labels each trend-bearing metric by comparing the mean of
// the most recent 10 points against the mean of the prior 10. With no
// data in either half every trend is stable.
func ComputeTrends(history []models.Reading) models.Trends {
	trends := models.Trends{
		HeartRate:   models.TrendStable,
		BloodOxygen: models.TrendStable,
		Activity:    models.TrendStable,
	}

	recent, previous := splitHalves(history)
	if len(recent) == 0 || len(previous) == 0 {
		return trends
	}

	trends.HeartRate = trendLabel(
		metricMean(recent, models.MetricHeartRate),
		metricMean(previous, models.MetricHeartRate),
		hrTrendDelta,
	)
	trends.BloodOxygen = trendLabel(
		metricMean(recent, models.MetricBloodOxygen),
		metricMean(previous, models.MetricBloodOxygen),
		o2TrendDelta,
	)
	trends.Activity = trendLabel(
		metricMean(recent, models.MetricActivityLevel),
		metricMean(previous, models.MetricActivityLevel),
		activityTrendDelta,
	)

	return trends
}

// BuildInsight assembles the full insight snapshot for a subject.
func BuildInsight(current models.Reading, history []models.Reading) models.HealthInsight {
	score := Score(current)
	return models.HealthInsight{
		OverallScore: score,
		RiskLevel:    RiskForScore(score),
		Trends:       ComputeTrends(history),
	}
}

func trendLabel(recentMean, previousMean, delta float64) models.Trend {
	if recentMean > previousMean+delta {
		return models.TrendIncreasing
	}
	if recentMean < previousMean-delta {
		return models.TrendDecreasing
	}
	return models.TrendStable
}

// splitHalves returns the most recent 10 readings and the 10 before them.
// Shorter histories yield shorter (possibly empty) halves.
func splitHalves(history []models.Reading) (recent, previous []models.Reading) {
	n := len(history)
	if n > trendHalf {
		recent = history[n-trendHalf:]
	} else {
		recent = history
	}

	prevEnd := n - trendHalf
	if prevEnd > 0 {
		prevStart := prevEnd - trendHalf
		if prevStart < 0 {
			prevStart = 0
		}
		previous = history[prevStart:prevEnd]
	}
	return recent, previous
}

func metricMean(readings []models.Reading, metric string) float64 {
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = r.Metric(metric)
	}
	return analyzer.CalculateStats(values).Mean
}
