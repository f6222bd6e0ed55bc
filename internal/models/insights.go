package models

import "time"

// CorrelationStrength is the discrete interpretation bucket for a Pearson r,
// combining magnitude band with sign.
type CorrelationStrength string

const (
	StrengthStrongPositive   CorrelationStrength = "strong_positive"
	StrengthModeratePositive CorrelationStrength = "moderate_positive"
	StrengthWeakPositive     CorrelationStrength = "weak_positive"
	StrengthNegligible       CorrelationStrength = "negligible"
	StrengthWeakNegative     CorrelationStrength = "weak_negative"
	StrengthModerateNegative CorrelationStrength = "moderate_negative"
	StrengthStrongNegative   CorrelationStrength = "strong_negative"
)

// TrendDirection describes where a metric is heading over time
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// CorrelationResult is the correlation between mood and one lifestyle factor
type CorrelationResult struct {
	Factor         Metric              `json:"factor"`
	Coefficient    float64             `json:"coefficient"` // Pearson r (-1 to 1)
	PValue         float64             `json:"p_value"`
	SampleSize     int                 `json:"sample_size"`
	Interpretation CorrelationStrength `json:"interpretation"`
}

// TrendResult is a linear fit of one metric against the day index
type TrendResult struct {
	Metric          Metric         `json:"metric"`
	Direction       TrendDirection `json:"direction"`
	WeeklyMagnitude float64        `json:"weekly_magnitude"` // daily slope x 7
	RSquared        float64        `json:"r_squared"`
	SampleSize      int            `json:"sample_size"`
}

// WeeklyPattern describes mood variation across weekdays
type WeeklyPattern struct {
	WeekdayMeans map[string]float64 `json:"weekday_means"`
	PeakDays     []string           `json:"peak_days"`
	LowDays      []string           `json:"low_days"`
	Variation    float64            `json:"variation"` // max weekday mean - min
	Strength     float64            `json:"strength"`  // 0-1, variation/3 capped
	SampleSize   int                `json:"sample_size"`
}

// SuggestionCategory groups suggestions by the lifestyle area they address
type SuggestionCategory string

const (
	CategorySleep     SuggestionCategory = "sleep"
	CategoryExercise  SuggestionCategory = "exercise"
	CategoryNutrition SuggestionCategory = "nutrition"
	CategoryStress    SuggestionCategory = "stress"
	CategoryHydration SuggestionCategory = "hydration"
	CategoryLifestyle SuggestionCategory = "lifestyle"
)

// Suggestion is a generated optimization suggestion. Suggestions are derived
// from significant correlations and never persisted.
type Suggestion struct {
	Category       SuggestionCategory `json:"category"`
	Priority       int                `json:"priority"` // 1 = highest
	ExpectedImpact float64            `json:"expected_impact"`
	Text           string             `json:"text"`
	Difficulty     string             `json:"difficulty"` // "easy", "moderate", "hard"
	Timeframe      string             `json:"timeframe"`
}

// WellnessMetrics are simple aggregates over the full record set
type WellnessMetrics struct {
	EntryCount       int                `json:"entry_count"`
	Averages         map[Metric]float64 `json:"averages"`
	ConsistencyScore float64            `json:"consistency_score"` // entry-count proxy, 0-100
	ImprovementTrend TrendDirection     `json:"improvement_trend"` // recent vs prior mood window
}

// InsightsReport is the full analytics output consumed by the presentation
// layer. Each section is computed independently: too little data for one
// section leaves the others intact.
type InsightsReport struct {
	Correlations []CorrelationResult `json:"correlations"`
	Trends       []TrendResult       `json:"trends"`
	Pattern      *WeeklyPattern      `json:"pattern,omitempty"`
	Suggestions  []Suggestion        `json:"suggestions"`
	Metrics      WellnessMetrics     `json:"metrics"`
	ComputedAt   time.Time           `json:"computed_at"`
}
