package models

import "time"

// Goal represents a measurable target with a deadline
type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	TargetValue  float64   `json:"target_value"`
	CurrentValue float64   `json:"current_value"`
	Unit         string    `json:"unit"`
	Deadline     time.Time `json:"deadline"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProgressSample is one logged progress point for a goal. Samples are not
// trusted to arrive in order; the optimizer re-sorts by timestamp.
type ProgressSample struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Mood      *float64  `json:"mood,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GoalMetrics are derived from a goal and its progress samples on demand.
// They are never stored, so they cannot go stale.
type GoalMetrics struct {
	GoalID              string    `json:"goal_id"`
	CompletionRate      float64   `json:"completion_rate"` // percent, uncapped so overshoot is visible
	TimeRemainingDays   float64   `json:"time_remaining_days"`
	AverageDailyRate    float64   `json:"average_daily_rate"`
	ProjectedCompletion time.Time `json:"projected_completion"`
	EfficiencyScore     float64   `json:"efficiency_score"`  // 0-100, capped at 100
	ConsistencyScore    float64   `json:"consistency_score"` // 0-100, variance-based
	SampleCount         int       `json:"sample_count"`
}

// BottleneckKind classifies why a goal is underperforming
type BottleneckKind string

const (
	BottleneckLowEfficiency BottleneckKind = "low_efficiency"
	BottleneckInconsistency BottleneckKind = "inconsistency"
	BottleneckTimePressure  BottleneckKind = "time_pressure"
	BottleneckStagnation    BottleneckKind = "stagnation"
)

// Bottleneck is a rule-triggered flag on a goal analysis
type Bottleneck struct {
	Kind        BottleneckKind `json:"kind"`
	Description string         `json:"description"`
}

// RecommendationKind classifies a goal recommendation
type RecommendationKind string

const (
	RecommendIncreaseFrequency RecommendationKind = "increase_frequency"
	RecommendAddSupport        RecommendationKind = "add_support"
	RecommendAdjustTarget      RecommendationKind = "adjust_target"
)

// GoalRecommendation is a generated, prioritized action for a goal
type GoalRecommendation struct {
	Kind        RecommendationKind `json:"kind"`
	Priority    int                `json:"priority"` // 1 = highest
	Description string             `json:"description"`
}

// GoalAnalysis bundles derived metrics with bottlenecks and recommendations
type GoalAnalysis struct {
	Metrics         GoalMetrics          `json:"metrics"`
	Bottlenecks     []Bottleneck         `json:"bottlenecks"`
	Recommendations []GoalRecommendation `json:"recommendations"`
	AnalyzedAt      time.Time            `json:"analyzed_at"`
}

// GoalCorrelation is the correlation between two goals' day-aligned progress
type GoalCorrelation struct {
	GoalAID     string  `json:"goal_a_id"`
	GoalBID     string  `json:"goal_b_id"`
	Coefficient float64 `json:"coefficient"`
	PValue      float64 `json:"p_value"`
	SampleSize  int     `json:"sample_size"`
}

// CreateGoalRequest represents the request to create a goal
type CreateGoalRequest struct {
	Title       string    `json:"title" binding:"required"`
	TargetValue float64   `json:"target_value" binding:"required,gt=0"`
	Unit        string    `json:"unit" binding:"required"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// UpdateGoalRequest represents a partial update to a goal
type UpdateGoalRequest struct {
	Title        *string      `json:"title"`
	TargetValue  *float64     `json:"target_value"`
	CurrentValue *float64     `json:"current_value"`
	Unit         *string      `json:"unit"`
	Deadline     NullableTime `json:"deadline"`
}

// AddProgressRequest represents the request to log goal progress
type AddProgressRequest struct {
	Timestamp time.Time `json:"timestamp" binding:"required"`
	Value     float64   `json:"value" binding:"min=0"`
	Mood      *float64  `json:"mood"`
	Notes     *string   `json:"notes"`
}
