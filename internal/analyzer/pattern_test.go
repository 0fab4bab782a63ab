package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthwatch/internal/models"
)

func flatHistory(base time.Time, n int) []models.Reading {
	readings := make([]models.Reading, n)
	for i := range readings {
		readings[i] = baselineReading(base.Add(time.Duration(i) * time.Minute))
	}
	return readings
}

func TestDetectPatterns_InsufficientHistory(t *testing.T) {
	history := flatHistory(time.Now(), 19)
	assert.Nil(t, DetectPatterns(history))
}

func TestDetectPatterns_SustainedHeartRate(t *testing.T) {
	history := flatHistory(time.Now(), 20)
	// all of the last 5 above the limit, kept close so variability stays low
	for i, hr := range []float64{101, 102, 101, 103, 102} {
		history[15+i].HeartRate = hr
	}

	candidates := DetectPatterns(history)
	require.Len(t, candidates, 1)
	assert.Equal(t, models.AlertWarning, candidates[0].Type)
	assert.Equal(t, "Sustained Elevated Heart Rate", candidates[0].Title)
	assert.Contains(t, candidates[0].ID, "sustained-hr-")
}

func TestDetectPatterns_SustainedHeartRate_ThreeOfFiveNotEnough(t *testing.T) {
	history := flatHistory(time.Now(), 20)
	for i, hr := range []float64{101, 102, 72, 103, 72} {
		history[15+i].HeartRate = hr
	}
	assert.Empty(t, DetectPatterns(history))
}

func TestDetectPatterns_DecliningOxygen(t *testing.T) {
	history := flatHistory(time.Now(), 20)
	// previous five at 98, recent five at 93: drop of 5 and below 96
	for i := 15; i < 20; i++ {
		history[i].BloodOxygen = 93
	}

	candidates := DetectPatterns(history)
	require.Len(t, candidates, 1)
	assert.Equal(t, models.AlertWarning, candidates[0].Type)
	assert.Equal(t, "Declining Blood Oxygen Trend", candidates[0].Title)
	assert.Contains(t, candidates[0].ID, "declining-o2-")
}

func TestDetectPatterns_DecliningOxygen_AbsoluteFloor(t *testing.T) {
	history := flatHistory(time.Now(), 20)
	// drop of 2.5 but recent mean 97.5 is not below 96
	for i := 0; i < 15; i++ {
		history[i].BloodOxygen = 100
	}
	for i := 15; i < 20; i++ {
		history[i].BloodOxygen = 97.5
	}
	assert.Empty(t, DetectPatterns(history))
}

func TestDetectPatterns_HeartRateVariability(t *testing.T) {
	history := flatHistory(time.Now(), 20)
	// alternate the last 10 points: successive differences of 40
	for i := 10; i < 20; i++ {
		if i%2 == 0 {
			history[i].HeartRate = 60
		} else {
			history[i].HeartRate = 100
		}
	}

	candidates := DetectPatterns(history)
	require.Len(t, candidates, 1)
	assert.Equal(t, models.AlertInfo, candidates[0].Type)
	assert.Equal(t, "High Heart Rate Variability", candidates[0].Title)
	assert.Contains(t, candidates[0].ID, "hr-variability-")
}

func TestDetectPatterns_StableHistoryProducesNothing(t *testing.T) {
	assert.Empty(t, DetectPatterns(flatHistory(time.Now(), 25)))
}
