package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/wellspringapp/wellspring/backend/internal/models"
	"github.com/wellspringapp/wellspring/backend/internal/stats"
)

const (
	// Floor on the daily rate used for projection, so a stalled goal projects
	// to a far-future date instead of dividing by zero
	minProjectionRate = 0.001

	// Samples needed before the variance-based consistency score is
	// meaningful; below this the score is a neutral 50
	minSamplesForConsistency = 3

	// Bottleneck rule thresholds
	lowEfficiencyThreshold = 50.0
	inconsistencyThreshold = 40.0
	timePressureDays       = 7.0
	timePressureCompletion = 80.0
	stagnationWindowDays   = 7.0

	// Recommendation rule thresholds
	recommendFrequencyBelow  = 60.0
	recommendSupportBelow    = 50.0
	recommendRetargetAbove   = 80.0
	recommendRetargetMinDays = 30.0
)

type goalOptimizer struct {
	opts AnalysisOptions
	now  func() time.Time
}

// NewGoalOptimizer creates a goal optimizer with the given engine tuning.
func NewGoalOptimizer(opts AnalysisOptions) GoalOptimizer {
	return &goalOptimizer{opts: opts.withDefaults(), now: time.Now}
}

// sortedSamples returns a timestamp-ascending copy. Caller order is never
// trusted and never mutated.
func sortedSamples(samples []models.ProgressSample) []models.ProgressSample {
	sorted := make([]models.ProgressSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// CalculateMetrics derives the full metric set for a goal from its progress
// samples. Metrics are recomputed on every call and never stored.
func (o *goalOptimizer) CalculateMetrics(goal *models.Goal, samples []models.ProgressSample) models.GoalMetrics {
	now := o.now()
	sorted := sortedSamples(samples)

	completionRate := 0.0
	if goal.TargetValue > 0 {
		// Deliberately uncapped: >100 tells the caller the target was overshot.
		completionRate = goal.CurrentValue / goal.TargetValue * 100
	}

	rate := o.averageDailyRate(goal, sorted, now)

	return models.GoalMetrics{
		GoalID:              goal.ID,
		CompletionRate:      completionRate,
		TimeRemainingDays:   goal.Deadline.Sub(now).Hours() / 24,
		AverageDailyRate:    rate,
		ProjectedCompletion: o.projectCompletion(goal, rate, now),
		EfficiencyScore:     o.efficiencyScore(goal, rate),
		ConsistencyScore:    consistencyScore(sorted),
		SampleCount:         len(sorted),
	}
}

// averageDailyRate pools progress over elapsed days: total delta value over
// total delta days across consecutive sample pairs. Pooling (rather than
// averaging per-step rates) keeps unevenly spaced samples from skewing the
// estimate. With fewer than two samples it falls back to progress over time
// since the goal was created.
func (o *goalOptimizer) averageDailyRate(goal *models.Goal, sorted []models.ProgressSample, now time.Time) float64 {
	if len(sorted) >= 2 {
		var totalValue, totalDays float64
		for i := 1; i < len(sorted); i++ {
			days := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp).Hours() / 24
			if days <= 0 {
				continue
			}
			totalValue += sorted[i].Value - sorted[i-1].Value
			totalDays += days
		}
		if totalDays > 0 {
			return totalValue / totalDays
		}
	}

	elapsed := now.Sub(goal.CreatedAt).Hours() / 24
	if elapsed <= 0 {
		return 0
	}
	return goal.CurrentValue / elapsed
}

// projectCompletion extrapolates the current rate linearly. The rate floor
// turns a stalled goal into a far-future date rather than infinity.
func (o *goalOptimizer) projectCompletion(goal *models.Goal, rate float64, now time.Time) time.Time {
	remaining := goal.TargetValue - goal.CurrentValue
	if remaining <= 0 {
		return now
	}

	days := remaining / math.Max(rate, minProjectionRate)
	return now.Add(time.Duration(days * 24 * float64(time.Hour)))
}

// efficiencyScore compares the actual rate against the rate the deadline
// demands. Capped at 100: being ahead of schedule reports 100, not 200.
func (o *goalOptimizer) efficiencyScore(goal *models.Goal, rate float64) float64 {
	plannedDays := goal.Deadline.Sub(goal.CreatedAt).Hours() / 24
	if plannedDays <= 0 || goal.TargetValue <= 0 {
		return 0
	}

	theoretical := goal.TargetValue / plannedDays
	return math.Min(100, rate/theoretical*100)
}

// consistencyScore measures the evenness of per-step progress via the
// coefficient of variation of positive deltas. Backward movement counts as a
// zero-progress step, not negative progress.
func consistencyScore(sorted []models.ProgressSample) float64 {
	if len(sorted) < minSamplesForConsistency {
		return 50
	}

	deltas := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		d := sorted[i].Value - sorted[i-1].Value
		if d < 0 {
			d = 0
		}
		deltas = append(deltas, d)
	}

	mean := stats.Mean(deltas)
	if mean == 0 {
		return 0
	}

	cv := stats.StdDev(deltas) / mean
	return math.Max(0, 100-cv*100)
}

// AnalyzeGoal wraps metrics with rule-based bottleneck detection and
// recommendation generation.
func (o *goalOptimizer) AnalyzeGoal(goal *models.Goal, samples []models.ProgressSample) models.GoalAnalysis {
	now := o.now()
	metrics := o.CalculateMetrics(goal, samples)

	return models.GoalAnalysis{
		Metrics:         metrics,
		Bottlenecks:     o.detectBottlenecks(metrics, samples, now),
		Recommendations: o.buildRecommendations(goal, metrics),
		AnalyzedAt:      now.UTC(),
	}
}

func (o *goalOptimizer) detectBottlenecks(metrics models.GoalMetrics, samples []models.ProgressSample, now time.Time) []models.Bottleneck {
	bottlenecks := make([]models.Bottleneck, 0, 4)

	if metrics.EfficiencyScore < lowEfficiencyThreshold {
		bottlenecks = append(bottlenecks, models.Bottleneck{
			Kind:        models.BottleneckLowEfficiency,
			Description: fmt.Sprintf("Progress rate is at %.0f%% of what the deadline requires", metrics.EfficiencyScore),
		})
	}

	if metrics.ConsistencyScore < inconsistencyThreshold {
		bottlenecks = append(bottlenecks, models.Bottleneck{
			Kind:        models.BottleneckInconsistency,
			Description: "Progress arrives in uneven bursts rather than steady steps",
		})
	}

	if metrics.TimeRemainingDays < timePressureDays && metrics.CompletionRate < timePressureCompletion {
		bottlenecks = append(bottlenecks, models.Bottleneck{
			Kind:        models.BottleneckTimePressure,
			Description: fmt.Sprintf("Only %.0f days remain with the goal %.0f%% complete", metrics.TimeRemainingDays, metrics.CompletionRate),
		})
	}

	if len(samples) > 0 && !hasSampleSince(samples, now.AddDate(0, 0, -int(stagnationWindowDays))) {
		bottlenecks = append(bottlenecks, models.Bottleneck{
			Kind:        models.BottleneckStagnation,
			Description: "No progress has been logged in the last 7 days",
		})
	}

	return bottlenecks
}

func hasSampleSince(samples []models.ProgressSample, cutoff time.Time) bool {
	for i := range samples {
		if samples[i].Timestamp.After(cutoff) {
			return true
		}
	}
	return false
}

func (o *goalOptimizer) buildRecommendations(goal *models.Goal, metrics models.GoalMetrics) []models.GoalRecommendation {
	recommendations := make([]models.GoalRecommendation, 0, 3)

	if metrics.EfficiencyScore < recommendFrequencyBelow {
		recommendations = append(recommendations, models.GoalRecommendation{
			Kind:        models.RecommendIncreaseFrequency,
			Priority:    1,
			Description: fmt.Sprintf("Log progress on %q more often; the current pace will miss the deadline", goal.Title),
		})
	}

	if metrics.ConsistencyScore < recommendSupportBelow {
		recommendations = append(recommendations, models.GoalRecommendation{
			Kind:        models.RecommendAddSupport,
			Priority:    2,
			Description: "Pair this goal with a reminder or an accountability partner to even out progress",
		})
	}

	if metrics.CompletionRate > recommendRetargetAbove && metrics.TimeRemainingDays > recommendRetargetMinDays {
		recommendations = append(recommendations, models.GoalRecommendation{
			Kind:        models.RecommendAdjustTarget,
			Priority:    3,
			Description: fmt.Sprintf("You are %.0f%% done with %.0f days to spare; consider raising the target", metrics.CompletionRate, metrics.TimeRemainingDays),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority < recommendations[j].Priority
	})

	return recommendations
}

// CrossGoalCorrelations aligns each goal's progress samples by calendar day
// (last value logged on a day wins) and computes Pearson correlations over
// the days two goals share. Pairs with too few shared days are omitted.
func (o *goalOptimizer) CrossGoalCorrelations(goals []models.Goal, samplesByGoal map[string][]models.ProgressSample) []models.GoalCorrelation {
	daily := make(map[string]map[string]float64, len(goals))
	for _, goal := range goals {
		series := make(map[string]float64)
		for _, sample := range sortedSamples(samplesByGoal[goal.ID]) {
			series[sample.Timestamp.Format("2006-01-02")] = sample.Value
		}
		daily[goal.ID] = series
	}

	results := make([]models.GoalCorrelation, 0)
	for i := 0; i < len(goals); i++ {
		for j := i + 1; j < len(goals); j++ {
			a, b := daily[goals[i].ID], daily[goals[j].ID]

			shared := make([]string, 0, len(a))
			for day := range a {
				if _, ok := b[day]; ok {
					shared = append(shared, day)
				}
			}
			if len(shared) < o.opts.MinEntriesForCorrelation {
				continue
			}
			sort.Strings(shared)

			x := make([]float64, len(shared))
			y := make([]float64, len(shared))
			for k, day := range shared {
				x[k] = a[day]
				y[k] = b[day]
			}

			r := stats.PearsonCorrelation(x, y)
			results = append(results, models.GoalCorrelation{
				GoalAID:     goals[i].ID,
				GoalBID:     goals[j].ID,
				Coefficient: r,
				PValue:      stats.CorrelationPValue(r, len(shared)),
				SampleSize:  len(shared),
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].Coefficient) > math.Abs(results[j].Coefficient)
	})

	return results
}
