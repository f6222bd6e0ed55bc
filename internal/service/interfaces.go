package service

import (
	"context"

	"github.com/wellspringapp/wellspring/backend/internal/models"
)

// AnalyticsService computes insights from wellness records. All methods are
// pure functions of their input snapshot: the caller's slice is never
// mutated, and the same input always yields the same output.
type AnalyticsService interface {
	// AnalyzeCorrelations computes mood-vs-factor Pearson correlations,
	// strongest first. Below the configured minimum it returns an empty
	// slice: "no correlations yet" is a normal state for a new user.
	AnalyzeCorrelations(records []models.WellnessRecord) []models.CorrelationResult

	// AnalyzeTrends regresses each metric against the day index and reports
	// weekly direction and magnitude, most statistically confident first.
	AnalyzeTrends(records []models.WellnessRecord) []models.TrendResult

	// DetectWeeklyPattern looks for mood variation across weekdays. It
	// returns nil when the data is too sparse or the spread too small to
	// call a pattern.
	DetectWeeklyPattern(records []models.WellnessRecord) *models.WeeklyPattern

	// GenerateSuggestions turns statistically significant correlations into
	// prioritized, category-specific suggestions.
	GenerateSuggestions(records []models.WellnessRecord) []models.Suggestion

	// AggregateMetrics computes per-field averages, the logging-consistency
	// score, and the recent-vs-prior mood trend.
	AggregateMetrics(records []models.WellnessRecord) models.WellnessMetrics

	// BuildReport assembles every section. Sections are independent: too few
	// records for trends does not suppress correlations, and so on.
	BuildReport(records []models.WellnessRecord) *models.InsightsReport
}

// GoalOptimizer derives metrics, bottlenecks, and recommendations for goals.
// Like AnalyticsService it is pure with respect to its inputs; progress
// samples are copied and re-sorted rather than trusted to arrive in order.
type GoalOptimizer interface {
	CalculateMetrics(goal *models.Goal, samples []models.ProgressSample) models.GoalMetrics
	AnalyzeGoal(goal *models.Goal, samples []models.ProgressSample) models.GoalAnalysis

	// CrossGoalCorrelations computes Pearson correlations between the
	// day-aligned progress series of each pair of goals.
	CrossGoalCorrelations(goals []models.Goal, samplesByGoal map[string][]models.ProgressSample) []models.GoalCorrelation
}

// RecordService manages wellness record CRUD
type RecordService interface {
	CreateRecord(ctx context.Context, userID string, req *models.CreateRecordRequest) (*models.WellnessRecord, error)
	GetRecord(ctx context.Context, userID, id string) (*models.WellnessRecord, error)
	ListRecords(ctx context.Context, userID string, limit, offset int) ([]models.WellnessRecord, error)
	UpdateRecord(ctx context.Context, userID, id string, req *models.UpdateRecordRequest) (*models.WellnessRecord, error)
	DeleteRecord(ctx context.Context, userID, id string) error
}

// GoalService manages goals and their progress samples
type GoalService interface {
	CreateGoal(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error)
	GetGoal(ctx context.Context, userID, id string) (*models.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, userID, id string, req *models.UpdateGoalRequest) (*models.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error

	AddProgress(ctx context.Context, userID, goalID string, req *models.AddProgressRequest) (*models.ProgressSample, error)
	ListProgress(ctx context.Context, userID, goalID string) ([]models.ProgressSample, error)
}
