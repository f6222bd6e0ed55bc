package models

import "time"

// Metric identifies one of the numeric measures recorded on a wellness entry.
// The set is closed: analysis code iterates over Metrics rather than reading
// record fields by string name.
type Metric string

const (
	MetricMood      Metric = "mood"
	MetricEnergy    Metric = "energy"
	MetricStress    Metric = "stress"
	MetricSleep     Metric = "sleep"
	MetricHydration Metric = "hydration"
	MetricExercise  Metric = "exercise"
	MetricNutrition Metric = "nutrition"
)

// Metrics lists every supported metric in declaration order. Correlation and
// trend output preserves this order for equal-strength results.
var Metrics = []Metric{
	MetricMood,
	MetricEnergy,
	MetricStress,
	MetricSleep,
	MetricHydration,
	MetricExercise,
	MetricNutrition,
}

// WellnessRecord is a single day's self-reported observation. Mood, energy,
// stress and nutrition use a 1-10 scale; sleep is hours; hydration is glasses;
// exercise is minutes (entry forms that only ask "did you exercise?" store
// 0 or a nominal minute count).
type WellnessRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         time.Time `json:"date"`
	Mood         float64   `json:"mood"`
	Energy       float64   `json:"energy"`
	Stress       float64   `json:"stress"`
	SleepHours   float64   `json:"sleep_hours"`
	Hydration    float64   `json:"hydration"`
	ExerciseMins float64   `json:"exercise_minutes"`
	Nutrition    float64   `json:"nutrition"`
	Notes        *string   `json:"notes,omitempty"`
	Factors      []string  `json:"factors,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Value returns the named metric from the record. Unknown metrics read as 0,
// matching the engine's treatment of absent data.
func (r *WellnessRecord) Value(m Metric) float64 {
	switch m {
	case MetricMood:
		return r.Mood
	case MetricEnergy:
		return r.Energy
	case MetricStress:
		return r.Stress
	case MetricSleep:
		return r.SleepHours
	case MetricHydration:
		return r.Hydration
	case MetricExercise:
		return r.ExerciseMins
	case MetricNutrition:
		return r.Nutrition
	default:
		return 0
	}
}

// CreateRecordRequest represents the request to log a wellness entry
type CreateRecordRequest struct {
	Date         time.Time `json:"date" binding:"required"`
	Mood         float64   `json:"mood" binding:"min=0,max=10"`
	Energy       float64   `json:"energy" binding:"min=0,max=10"`
	Stress       float64   `json:"stress" binding:"min=0,max=10"`
	SleepHours   float64   `json:"sleep_hours" binding:"min=0,max=24"`
	Hydration    float64   `json:"hydration" binding:"min=0,max=20"`
	ExerciseMins float64   `json:"exercise_minutes" binding:"min=0"`
	Nutrition    float64   `json:"nutrition" binding:"min=0,max=10"`
	Notes        *string   `json:"notes"`
	Factors      []string  `json:"factors"`
}

// UpdateRecordRequest represents a partial update to a wellness entry.
// Nullable fields distinguish "not sent" from "clear this value".
type UpdateRecordRequest struct {
	Date         *time.Time     `json:"date"`
	Mood         *float64       `json:"mood"`
	Energy       *float64       `json:"energy"`
	Stress       *float64       `json:"stress"`
	SleepHours   *float64       `json:"sleep_hours"`
	Hydration    *float64       `json:"hydration"`
	ExerciseMins *float64       `json:"exercise_minutes"`
	Nutrition    *float64       `json:"nutrition"`
	Notes        NullableString `json:"notes"`
	Factors      []string       `json:"factors"`
}
