package analyzer

import (
	"math"
)

// Stats summarizes one metric over the recent window.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// CalculateStats computes mean and population standard deviation.
func CalculateStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	var sum float64
	min := values[0]
	max := values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return Stats{Mean: mean, StdDev: math.Sqrt(variance), Min: min, Max: max}
}

// ZScore returns how many standard deviations value sits from the mean,
// 0 when the deviation is degenerate.
func ZScore(value float64, stats Stats) float64 {
	if stats.StdDev == 0 {
		return 0
	}
	return math.Abs(value-stats.Mean) / stats.StdDev
}

// IsOutlier reports whether value deviates by strictly more than 2
// standard deviations. Exactly 2.0 is not an outlier.
func IsOutlier(value float64, stats Stats) bool {
	if stats.StdDev == 0 {
		return false
	}
	return ZScore(value, stats) > 2.0
}

// Severity maps a z-score magnitude to the wording tier used in alert
// descriptions. This is distinct from the alert's type classification.
func Severity(value float64, stats Stats) string {
	z := ZScore(value, stats)
	if z > 3.0 {
		return "significantly"
	}
	if z > 2.5 {
		return "considerably"
	}
	return "moderately"
}

// Variability is the mean absolute successive difference of a series,
// 0 for fewer than two points.
func Variability(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(values); i++ {
		sum += math.Abs(values[i] - values[i-1])
	}
	return sum / float64(len(values)-1)
}
