package models

// RiskLevel is derived solely from the overall score thresholds
// (<60 high, <80 medium, else low).
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Trend labels the direction of a metric over recent history.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Trends carries the per-metric trend labels the insight engine produces.
type Trends struct {
	HeartRate   Trend `json:"heart_rate"`
	BloodOxygen Trend `json:"blood_oxygen"`
	Activity    Trend `json:"activity"`
}

// HealthInsight is the normalized per-subject snapshot: composite score,
// risk tier and trend labels.
type HealthInsight struct {
	OverallScore int       `json:"overall_score"`
	RiskLevel    RiskLevel `json:"risk_level"`
	Trends       Trends    `json:"trends"`
}

// Recommendation categories and priorities.
const (
	CategoryImmediate  = "immediate"
	CategoryLifestyle  = "lifestyle"
	CategoryPrevention = "prevention"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is one actionable suggestion from the rule table.
// DataPoints is a fixed provenance/confidence proxy, not a live sample count.
type Recommendation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	Actions     []string `json:"actions,omitempty"`
	DataPoints  int      `json:"data_points"`
}

// Prediction is a forward-looking statement with a fixed confidence and
// timeframe rather than a computed probability.
type Prediction struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Timeframe   string  `json:"timeframe"`
}
