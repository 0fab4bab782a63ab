package simulator

import (
	"math"
	"math/rand"
	"time"

	"healthwatch/internal/models"
)

// Generator produces synthetic wearable readings: baseline values with
// a slow sine drift plus jitter, clamped to device ranges. Used to
// exercise the pipeline without real hardware.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator with a fixed seed so fixtures are
// reproducible.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces one reading stamped at ts.
func (g *Generator) Generate(ts time.Time) models.Reading {
	ms := float64(ts.UnixMilli())

	heartRate := 72 + math.Sin(ms/10000)*15 + g.rng.Float64()*10 - 5
	heartRate = clamp(math.Round(heartRate), 50, 120)

	bloodOxygen := clamp(math.Round(98+g.rng.Float64()*4-2), 90, 100)
	systolic := clamp(math.Round(120+g.rng.Float64()*20-10), 90, 180)
	diastolic := clamp(math.Round(80+g.rng.Float64()*15-7), 60, 120)

	activity := 8500 + math.Sin(ms/20000)*3000 + g.rng.Float64()*2000 - 1000
	if activity < 0 {
		activity = 0
	}

	sleepQuality := clamp(math.Round(85+g.rng.Float64()*20-10), 0, 100)

	return models.Reading{
		Timestamp:              ts,
		HeartRate:              heartRate,
		BloodOxygen:            bloodOxygen,
		BloodPressureSystolic:  systolic,
		BloodPressureDiastolic: diastolic,
		ActivityLevel:          math.Round(activity),
		SleepQuality:           sleepQuality,
	}
}

// Series produces count readings spaced by interval, ending at end.
func (g *Generator) Series(end time.Time, count int, interval time.Duration) []models.Reading {
	readings := make([]models.Reading, 0, count)
	start := end.Add(-time.Duration(count-1) * interval)
	for i := 0; i < count; i++ {
		readings = append(readings, g.Generate(start.Add(time.Duration(i)*interval)))
	}
	return readings
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
