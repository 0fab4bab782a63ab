package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthwatch/internal/models"
)

func predTitles(preds []models.Prediction) []string {
	titles := make([]string, len(preds))
	for i, p := range preds {
		titles[i] = p.Title
	}
	return titles
}

func TestPredictions_QuietBaseline(t *testing.T) {
	current := metricsReading(72, 98, 8000, 75)
	history := trendHistory(72, 72)
	for i := range history {
		history[i].ActivityLevel = 8000
	}
	ins := BuildInsight(current, history)

	assert.Empty(t, Predictions(current, history, ins))
}

func TestPredictions_HeartRateTrend(t *testing.T) {
	current := metricsReading(72, 98, 8000, 75)
	history := trendHistory(85, 72)
	for i := range history {
		history[i].ActivityLevel = 8000
	}
	ins := BuildInsight(current, history)

	preds := Predictions(current, history, ins)
	require.Len(t, preds, 1)
	assert.Equal(t, "Heart Rate Trend", preds[0].Title)
	assert.Equal(t, 0.75, preds[0].Confidence)
	assert.Equal(t, "3-5 days", preds[0].Timeframe)
}

func TestPredictions_FitnessImprovement(t *testing.T) {
	current := metricsReading(72, 98, 9500, 75)
	history := trendHistory(72, 72)
	for i := range history {
		history[i].ActivityLevel = 9500
	}
	ins := BuildInsight(current, history)

	preds := Predictions(current, history, ins)
	require.Len(t, preds, 1)
	assert.Equal(t, "Fitness Improvement", preds[0].Title)
	assert.Equal(t, 0.85, preds[0].Confidence)
	assert.Equal(t, "2-3 weeks", preds[0].Timeframe)
}

func TestPredictions_EnhancedRecovery(t *testing.T) {
	current := metricsReading(72, 98, 8000, 85)
	history := trendHistory(72, 72)
	for i := range history {
		history[i].ActivityLevel = 8000
	}
	// activity rising over the recent half
	for i := 10; i < 20; i++ {
		history[i].ActivityLevel = 8700
	}
	ins := BuildInsight(current, history)

	preds := Predictions(current, history, ins)
	titles := predTitles(preds)
	assert.Contains(t, titles, "Enhanced Recovery")
}

func TestPredictions_HighRisk(t *testing.T) {
	current := metricsReading(110, 94, 4000, 65) // score 40, high risk
	history := trendHistory(72, 72)
	for i := range history {
		history[i].ActivityLevel = 8000
	}
	ins := BuildInsight(current, history)
	require.Equal(t, models.RiskHigh, ins.RiskLevel)

	preds := Predictions(current, history, ins)
	titles := predTitles(preds)
	assert.Contains(t, titles, "Health Risk Alert")

	for _, p := range preds {
		if p.Title == "Health Risk Alert" {
			assert.Equal(t, 0.68, p.Confidence)
			assert.Equal(t, "Immediate attention needed", p.Timeframe)
		}
	}
}
