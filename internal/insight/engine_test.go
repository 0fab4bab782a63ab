package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"healthwatch/internal/models"
)

func metricsReading(hr, o2, activity, sleep float64) models.Reading {
	return models.Reading{
		Timestamp:              time.Now(),
		HeartRate:              hr,
		BloodOxygen:            o2,
		BloodPressureSystolic:  120,
		BloodPressureDiastolic: 80,
		ActivityLevel:          activity,
		SleepQuality:           sleep,
	}
}

func TestScore_PerfectMetrics(t *testing.T) {
	assert.Equal(t, 100, Score(metricsReading(72, 98, 9000, 85)))
}

func TestScore_TieredPenalties(t *testing.T) {
	// severe tier only, never both tiers per metric
	assert.Equal(t, 85, Score(metricsReading(110, 98, 9000, 85))) // hr -15
	assert.Equal(t, 95, Score(metricsReading(95, 98, 9000, 85)))  // hr -5
	assert.Equal(t, 80, Score(metricsReading(72, 94, 9000, 85)))  // o2 -20
	assert.Equal(t, 90, Score(metricsReading(72, 96, 9000, 85)))  // o2 -10
	assert.Equal(t, 85, Score(metricsReading(72, 98, 4000, 85)))  // activity -15
	assert.Equal(t, 95, Score(metricsReading(72, 98, 7000, 85)))  // activity -5
	assert.Equal(t, 90, Score(metricsReading(72, 98, 9000, 65)))  // sleep -10
	assert.Equal(t, 95, Score(metricsReading(72, 98, 9000, 75)))  // sleep -5
}

func TestScore_PenaltiesAccumulate(t *testing.T) {
	// -15 -20 -15 -10 = 40
	assert.Equal(t, 40, Score(metricsReading(110, 94, 4000, 65)))
}

func TestScore_ClampedAtZero(t *testing.T) {
	// max penalty is 60, so a zero reading bottoms out at 40
	assert.Equal(t, 40, Score(models.Reading{}))
}

func TestRiskForScore_Boundaries(t *testing.T) {
	assert.Equal(t, models.RiskHigh, RiskForScore(59))
	assert.Equal(t, models.RiskMedium, RiskForScore(60))
	assert.Equal(t, models.RiskMedium, RiskForScore(79))
	assert.Equal(t, models.RiskLow, RiskForScore(80))
	assert.Equal(t, models.RiskLow, RiskForScore(100))
}

func trendHistory(hrRecent, hrPrevious float64) []models.Reading {
	base := time.Now().Add(-20 * time.Minute)
	readings := make([]models.Reading, 20)
	for i := range readings {
		hr := hrPrevious
		if i >= 10 {
			hr = hrRecent
		}
		readings[i] = metricsReading(hr, 98, 9000, 85)
		readings[i].Timestamp = base.Add(time.Duration(i) * time.Minute)
	}
	return readings
}

func TestComputeTrends_HeartRate(t *testing.T) {
	assert.Equal(t, models.TrendIncreasing, ComputeTrends(trendHistory(80, 72)).HeartRate)
	assert.Equal(t, models.TrendDecreasing, ComputeTrends(trendHistory(64, 72)).HeartRate)
	// delta of exactly 3 is stable
	assert.Equal(t, models.TrendStable, ComputeTrends(trendHistory(75, 72)).HeartRate)
}

func TestComputeTrends_ShortHistoryIsStable(t *testing.T) {
	short := trendHistory(80, 72)[12:] // only 8 points, no previous half
	trends := ComputeTrends(short)
	assert.Equal(t, models.TrendStable, trends.HeartRate)
	assert.Equal(t, models.TrendStable, trends.BloodOxygen)
	assert.Equal(t, models.TrendStable, trends.Activity)
}

func TestComputeTrends_ActivityAndOxygen(t *testing.T) {
	history := trendHistory(72, 72)
	for i := 10; i < 20; i++ {
		history[i].ActivityLevel = 9600 // +600 over the 9000 baseline
		history[i].BloodOxygen = 96.5   // -1.5 under the 98 baseline
	}

	trends := ComputeTrends(history)
	assert.Equal(t, models.TrendIncreasing, trends.Activity)
	assert.Equal(t, models.TrendDecreasing, trends.BloodOxygen)
}

func TestBuildInsight(t *testing.T) {
	history := trendHistory(80, 72)
	ins := BuildInsight(metricsReading(105, 94, 4000, 65), history)

	assert.Equal(t, 40, ins.OverallScore)
	assert.Equal(t, models.RiskHigh, ins.RiskLevel)
	assert.Equal(t, models.TrendIncreasing, ins.Trends.HeartRate)
}
