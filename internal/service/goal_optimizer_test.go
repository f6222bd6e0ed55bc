package service

import (
	"math"
	"testing"
	"time"

	"github.com/wellspringapp/wellspring/backend/internal/models"
)

var fixedNow = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func newTestOptimizer() *goalOptimizer {
	return &goalOptimizer{
		opts: DefaultAnalysisOptions(),
		now:  func() time.Time { return fixedNow },
	}
}

func sample(goalID string, daysAgo int, value float64) models.ProgressSample {
	return models.ProgressSample{
		ID:        "s",
		GoalID:    goalID,
		Timestamp: fixedNow.AddDate(0, 0, -daysAgo),
		Value:     value,
	}
}

func testGoal(target, current float64, createdDaysAgo, deadlineDaysAhead int) *models.Goal {
	return &models.Goal{
		ID:           "goal-1",
		UserID:       "user-1",
		Title:        "Run 100km",
		TargetValue:  target,
		CurrentValue: current,
		Unit:         "km",
		Deadline:     fixedNow.AddDate(0, 0, deadlineDaysAhead),
		CreatedAt:    fixedNow.AddDate(0, 0, -createdDaysAgo),
	}
}

func TestCompletionRateOvershoot(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 120, 30, 30)

	metrics := o.CalculateMetrics(goal, nil)
	if math.Abs(metrics.CompletionRate-120) > 1e-9 {
		t.Errorf("Expected uncapped completion rate 120, got %f", metrics.CompletionRate)
	}
}

func TestCompletionRateZeroTarget(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(0, 10, 30, 30)

	metrics := o.CalculateMetrics(goal, nil)
	if metrics.CompletionRate != 0 {
		t.Errorf("Expected completion rate 0 for zero target, got %f", metrics.CompletionRate)
	}
}

func TestAverageDailyRatePooled(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 20, 30, 30)

	// Uneven spacing: 20 units over 10 elapsed days pools to 2/day, even
	// though the per-step rates are 2.0 and 2.0 vs a long gap
	samples := []models.ProgressSample{
		sample(goal.ID, 10, 0),
		sample(goal.ID, 8, 4),
		sample(goal.ID, 0, 20),
	}

	metrics := o.CalculateMetrics(goal, samples)
	if math.Abs(metrics.AverageDailyRate-2) > 1e-9 {
		t.Errorf("Expected pooled rate 2, got %f", metrics.AverageDailyRate)
	}
	if metrics.SampleCount != 3 {
		t.Errorf("Expected sample count 3, got %d", metrics.SampleCount)
	}
}

func TestAverageDailyRateFallback(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 30, 10, 30)

	// One sample is not enough for pairwise pooling; fall back to progress
	// since creation
	samples := []models.ProgressSample{sample(goal.ID, 2, 30)}

	metrics := o.CalculateMetrics(goal, samples)
	if math.Abs(metrics.AverageDailyRate-3) > 1e-6 {
		t.Errorf("Expected fallback rate 3, got %f", metrics.AverageDailyRate)
	}
}

func TestProjectedCompletionStalledGoal(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 50, 30, 30)

	// Two samples at the same value: zero rate, projection uses the floor
	samples := []models.ProgressSample{
		sample(goal.ID, 10, 50),
		sample(goal.ID, 5, 50),
	}

	metrics := o.CalculateMetrics(goal, samples)
	if !metrics.ProjectedCompletion.After(fixedNow.AddDate(0, 0, 1000)) {
		t.Errorf("Expected far-future projection for stalled goal, got %v", metrics.ProjectedCompletion)
	}
}

func TestProjectedCompletionAlreadyDone(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 110, 30, 30)

	metrics := o.CalculateMetrics(goal, nil)
	if !metrics.ProjectedCompletion.Equal(fixedNow) {
		t.Errorf("Expected projection at now for completed goal, got %v", metrics.ProjectedCompletion)
	}
}

func TestEfficiencyScoreCappedAt100(t *testing.T) {
	o := newTestOptimizer()
	// Planned 50 days for 100 units: theoretical rate 2/day. Actual 4/day.
	goal := testGoal(100, 40, 10, 40)
	samples := []models.ProgressSample{
		sample(goal.ID, 10, 0),
		sample(goal.ID, 0, 40),
	}

	metrics := o.CalculateMetrics(goal, samples)
	if metrics.EfficiencyScore != 100 {
		t.Errorf("Expected efficiency capped at exactly 100, got %f", metrics.EfficiencyScore)
	}
}

func TestEfficiencyScoreOnPace(t *testing.T) {
	o := newTestOptimizer()
	// Theoretical 2/day, actual 1/day: 50
	goal := testGoal(100, 10, 10, 40)
	samples := []models.ProgressSample{
		sample(goal.ID, 10, 0),
		sample(goal.ID, 0, 10),
	}

	metrics := o.CalculateMetrics(goal, samples)
	if math.Abs(metrics.EfficiencyScore-50) > 1e-9 {
		t.Errorf("Expected efficiency 50, got %f", metrics.EfficiencyScore)
	}
}

func TestConsistencyScoreFewSamples(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 10, 30, 30)

	samples := []models.ProgressSample{
		sample(goal.ID, 5, 0),
		sample(goal.ID, 0, 10),
	}

	metrics := o.CalculateMetrics(goal, samples)
	if metrics.ConsistencyScore != 50 {
		t.Errorf("Expected neutral consistency 50 for 2 samples, got %f", metrics.ConsistencyScore)
	}
}

func TestConsistencyScoreEvenSteps(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 40, 30, 30)

	samples := []models.ProgressSample{
		sample(goal.ID, 15, 10),
		sample(goal.ID, 10, 20),
		sample(goal.ID, 5, 30),
		sample(goal.ID, 0, 40),
	}

	metrics := o.CalculateMetrics(goal, samples)
	if math.Abs(metrics.ConsistencyScore-100) > 1e-9 {
		t.Errorf("Expected consistency 100 for even steps, got %f", metrics.ConsistencyScore)
	}
}

func TestConsistencyScoreNoForwardProgress(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 10, 30, 30)

	// Only backward movement: every delta clamps to zero
	samples := []models.ProgressSample{
		sample(goal.ID, 15, 30),
		sample(goal.ID, 10, 20),
		sample(goal.ID, 5, 10),
		sample(goal.ID, 0, 10),
	}

	metrics := o.CalculateMetrics(goal, samples)
	if metrics.ConsistencyScore != 0 {
		t.Errorf("Expected consistency 0 with no forward progress, got %f", metrics.ConsistencyScore)
	}
}

func TestAnalyzeGoalBottlenecks(t *testing.T) {
	o := newTestOptimizer()

	// Nearly out of time, barely started, nothing logged in 20 days
	goal := testGoal(100, 10, 100, 3)
	samples := []models.ProgressSample{
		sample(goal.ID, 30, 9),
		sample(goal.ID, 20, 10),
	}

	analysis := o.AnalyzeGoal(goal, samples)

	kinds := make(map[models.BottleneckKind]bool)
	for _, b := range analysis.Bottlenecks {
		kinds[b.Kind] = true
	}

	for _, want := range []models.BottleneckKind{
		models.BottleneckLowEfficiency,
		models.BottleneckTimePressure,
		models.BottleneckStagnation,
	} {
		if !kinds[want] {
			t.Errorf("Expected bottleneck %s, got %v", want, analysis.Bottlenecks)
		}
	}
	// Two samples score a neutral 50, above the inconsistency threshold
	if kinds[models.BottleneckInconsistency] {
		t.Errorf("Did not expect inconsistency bottleneck, got %v", analysis.Bottlenecks)
	}
}

func TestAnalyzeGoalNoStagnationWithoutSamples(t *testing.T) {
	o := newTestOptimizer()
	goal := testGoal(100, 0, 10, 30)

	analysis := o.AnalyzeGoal(goal, nil)
	for _, b := range analysis.Bottlenecks {
		if b.Kind == models.BottleneckStagnation {
			t.Error("Stagnation should not fire for a goal with no samples at all")
		}
	}
}

func TestRecommendationsAheadOfSchedule(t *testing.T) {
	o := newTestOptimizer()

	// 90% done with 60 days to spare, steady even progress
	goal := testGoal(100, 90, 30, 60)
	samples := []models.ProgressSample{
		sample(goal.ID, 20, 30),
		sample(goal.ID, 15, 50),
		sample(goal.ID, 10, 70),
		sample(goal.ID, 5, 90),
	}

	analysis := o.AnalyzeGoal(goal, samples)
	if len(analysis.Recommendations) != 1 {
		t.Fatalf("Expected 1 recommendation, got %d: %v", len(analysis.Recommendations), analysis.Recommendations)
	}
	if analysis.Recommendations[0].Kind != models.RecommendAdjustTarget {
		t.Errorf("Expected adjust_target, got %s", analysis.Recommendations[0].Kind)
	}
}

func TestRecommendationsStrugglingGoal(t *testing.T) {
	o := newTestOptimizer()

	// Behind pace with bursty progress: both pace and support fire, ordered
	// by priority
	goal := testGoal(100, 10, 30, 10)
	samples := []models.ProgressSample{
		sample(goal.ID, 21, 0),
		sample(goal.ID, 14, 9),
		sample(goal.ID, 7, 9.5),
		sample(goal.ID, 1, 10),
	}

	analysis := o.AnalyzeGoal(goal, samples)
	if len(analysis.Recommendations) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d: %v", len(analysis.Recommendations), analysis.Recommendations)
	}
	if analysis.Recommendations[0].Kind != models.RecommendIncreaseFrequency {
		t.Errorf("Expected increase_frequency first, got %s", analysis.Recommendations[0].Kind)
	}
	if analysis.Recommendations[1].Kind != models.RecommendAddSupport {
		t.Errorf("Expected add_support second, got %s", analysis.Recommendations[1].Kind)
	}
}

func TestCrossGoalCorrelations(t *testing.T) {
	o := newTestOptimizer()

	goalA := *testGoal(100, 50, 30, 30)
	goalA.ID = "goal-a"
	goalB := *testGoal(200, 100, 30, 30)
	goalB.ID = "goal-b"
	goalC := *testGoal(50, 5, 30, 30)
	goalC.ID = "goal-c"

	samplesByGoal := make(map[string][]models.ProgressSample)
	// A and B share 8 days with B exactly double A
	for day := 1; day <= 8; day++ {
		v := float64(day * 5)
		samplesByGoal["goal-a"] = append(samplesByGoal["goal-a"], sample("goal-a", day, v))
		samplesByGoal["goal-b"] = append(samplesByGoal["goal-b"], sample("goal-b", day, 2*v))
	}
	// C only overlaps on 3 days, below the correlation minimum
	for day := 1; day <= 3; day++ {
		samplesByGoal["goal-c"] = append(samplesByGoal["goal-c"], sample("goal-c", day, float64(day)))
	}

	results := o.CrossGoalCorrelations([]models.Goal{goalA, goalB, goalC}, samplesByGoal)
	if len(results) != 1 {
		t.Fatalf("Expected 1 correlation pair, got %d: %v", len(results), results)
	}

	got := results[0]
	if got.GoalAID != "goal-a" || got.GoalBID != "goal-b" {
		t.Errorf("Expected pair (goal-a, goal-b), got (%s, %s)", got.GoalAID, got.GoalBID)
	}
	if math.Abs(got.Coefficient-1) > 1e-9 {
		t.Errorf("Expected coefficient 1 for proportional progress, got %f", got.Coefficient)
	}
	if got.SampleSize != 8 {
		t.Errorf("Expected sample size 8, got %d", got.SampleSize)
	}
	if got.PValue > 1e-6 {
		t.Errorf("Expected near-zero p-value, got %f", got.PValue)
	}
}

func TestCrossGoalCorrelationsLastValuePerDay(t *testing.T) {
	o := newTestOptimizer()

	goalA := *testGoal(100, 50, 30, 30)
	goalA.ID = "goal-a"
	goalB := *testGoal(100, 50, 30, 30)
	goalB.ID = "goal-b"

	samplesByGoal := make(map[string][]models.ProgressSample)
	for day := 1; day <= 7; day++ {
		v := float64(day)
		// An earlier same-day sample with a misleading value must lose to the
		// later one
		early := sample("goal-a", day, 99)
		early.Timestamp = early.Timestamp.Add(-2 * time.Hour)
		late := sample("goal-a", day, v)
		samplesByGoal["goal-a"] = append(samplesByGoal["goal-a"], late, early)
		samplesByGoal["goal-b"] = append(samplesByGoal["goal-b"], sample("goal-b", day, 3*v))
	}

	results := o.CrossGoalCorrelations([]models.Goal{goalA, goalB}, samplesByGoal)
	if len(results) != 1 {
		t.Fatalf("Expected 1 correlation pair, got %d", len(results))
	}
	if math.Abs(results[0].Coefficient-1) > 1e-9 {
		t.Errorf("Expected coefficient 1 when later same-day samples win, got %f", results[0].Coefficient)
	}
}
