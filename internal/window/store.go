package window

import (
	"math"
	"time"

	"healthwatch/internal/models"
)

// DefaultCapacity is the reference window size.
const DefaultCapacity = 100

// Store is the bounded rolling history of readings for one subject.
// Insertion is FIFO-evicting: once the window is full the oldest reading
// is unconditionally dropped on each push. Single writer per subject;
// read methods return copies.
type Store struct {
	capacity int
	readings []models.Reading // chronological, oldest first
}

// NewStore creates a window store. A non-positive capacity falls back to
// DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		readings: make([]models.Reading, 0, capacity),
	}
}

// Push appends a reading, evicting the oldest entry once length exceeds
// the capacity. Overflow never blocks and never errors.
func (s *Store) Push(r models.Reading) {
	if len(s.readings) >= s.capacity {
		copy(s.readings, s.readings[1:])
		s.readings = s.readings[:len(s.readings)-1]
	}
	s.readings = append(s.readings, r)
}

// Len returns the number of retained readings.
func (s *Store) Len() int {
	return len(s.readings)
}

// Latest returns the most recent reading, false when the window is empty.
func (s *Store) Latest() (models.Reading, bool) {
	if len(s.readings) == 0 {
		return models.Reading{}, false
	}
	return s.readings[len(s.readings)-1], true
}

// Readings returns the most recent count readings in chronological order,
// or all retained readings when count is non-positive or exceeds the
// window length. Callers must check length before running statistics that
// require a minimum sample size.
func (s *Store) Readings(count int) []models.Reading {
	n := len(s.readings)
	if count <= 0 || count > n {
		count = n
	}
	out := make([]models.Reading, count)
	copy(out, s.readings[n-count:])
	return out
}

// Snapshot returns the most recent count values of one metric in
// chronological order, or fewer if insufficient history exists.
func (s *Store) Snapshot(metric string, count int) []float64 {
	readings := s.Readings(count)
	values := make([]float64, len(readings))
	for i, r := range readings {
		values[i] = r.Metric(metric)
	}
	return values
}

// AveragesSince returns per-metric rounded means over readings at or
// after cutoff. An empty range yields zeros rather than an error.
func (s *Store) AveragesSince(cutoff time.Time) models.MetricAverages {
	var sum models.MetricAverages
	count := 0
	for _, r := range s.readings {
		if r.Timestamp.Before(cutoff) {
			continue
		}
		sum.HeartRate += r.HeartRate
		sum.BloodOxygen += r.BloodOxygen
		sum.BloodPressureSystolic += r.BloodPressureSystolic
		sum.BloodPressureDiastolic += r.BloodPressureDiastolic
		sum.ActivityLevel += r.ActivityLevel
		sum.SleepQuality += r.SleepQuality
		count++
	}
	if count == 0 {
		return models.MetricAverages{}
	}
	n := float64(count)
	return models.MetricAverages{
		HeartRate:              math.Round(sum.HeartRate / n),
		BloodOxygen:            math.Round(sum.BloodOxygen / n),
		BloodPressureSystolic:  math.Round(sum.BloodPressureSystolic / n),
		BloodPressureDiastolic: math.Round(sum.BloodPressureDiastolic / n),
		ActivityLevel:          math.Round(sum.ActivityLevel / n),
		SleepQuality:           math.Round(sum.SleepQuality / n),
	}
}

// RangeSince returns per-metric min/max over readings at or after cutoff.
// An empty range yields zeroed ranges.
func (s *Store) RangeSince(cutoff time.Time) models.MetricRanges {
	var out models.MetricRanges
	first := true
	for _, r := range s.readings {
		if r.Timestamp.Before(cutoff) {
			continue
		}
		if first {
			out.HeartRate = models.MinMax{Min: r.HeartRate, Max: r.HeartRate}
			out.BloodOxygen = models.MinMax{Min: r.BloodOxygen, Max: r.BloodOxygen}
			out.BloodPressureSystolic = models.MinMax{Min: r.BloodPressureSystolic, Max: r.BloodPressureSystolic}
			out.BloodPressureDiastolic = models.MinMax{Min: r.BloodPressureDiastolic, Max: r.BloodPressureDiastolic}
			out.ActivityLevel = models.MinMax{Min: r.ActivityLevel, Max: r.ActivityLevel}
			out.SleepQuality = models.MinMax{Min: r.SleepQuality, Max: r.SleepQuality}
			first = false
			continue
		}
		widen(&out.HeartRate, r.HeartRate)
		widen(&out.BloodOxygen, r.BloodOxygen)
		widen(&out.BloodPressureSystolic, r.BloodPressureSystolic)
		widen(&out.BloodPressureDiastolic, r.BloodPressureDiastolic)
		widen(&out.ActivityLevel, r.ActivityLevel)
		widen(&out.SleepQuality, r.SleepQuality)
	}
	return out
}

func widen(m *models.MinMax, v float64) {
	if v < m.Min {
		m.Min = v
	}
	if v > m.Max {
		m.Max = v
	}
}
