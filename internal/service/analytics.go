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
	// Weekly magnitude below this is reported as a stable trend
	stableTrendThreshold = 0.1

	// Weekday mood spread below this is noise, not a pattern
	minPatternVariation = 0.5

	// Weekdays within this distance of the extreme count as peak/low days
	patternDayTolerance = 0.3

	// Spread that normalizes pattern strength to 1.0
	patternStrengthSpan = 3.0

	// Entry count that earns a 100 logging-consistency score
	consistencyWindowDays = 30

	// Window size and minimum for the recent-vs-prior mood comparison
	improvementWindow     = 14
	improvementMinEntries = 7

	// Mood delta beyond which the improvement trend leaves "stable"
	improvementThreshold = 0.3
)

// correlationFactors are the lifestyle metrics correlated against mood, in
// reporting order for equal-strength results.
var correlationFactors = []models.Metric{
	models.MetricEnergy,
	models.MetricStress,
	models.MetricSleep,
	models.MetricHydration,
	models.MetricExercise,
	models.MetricNutrition,
}

type analyticsService struct {
	opts AnalysisOptions
}

// NewAnalyticsService creates an analytics engine with the given tuning.
// Zero-valued options fall back to defaults.
func NewAnalyticsService(opts AnalysisOptions) AnalyticsService {
	return &analyticsService{opts: opts.withDefaults()}
}

// sortedByDate returns a date-ascending copy of records. The engine never
// mutates the caller's slice.
func sortedByDate(records []models.WellnessRecord) []models.WellnessRecord {
	sorted := make([]models.WellnessRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// factorSeries extracts the comparison series for one factor. Stress is
// inverted (10 - value) so that "more of this factor" consistently means
// "expected better mood" across all factors.
func factorSeries(records []models.WellnessRecord, factor models.Metric) []float64 {
	series := make([]float64, len(records))
	for i := range records {
		v := records[i].Value(factor)
		if factor == models.MetricStress {
			v = 10 - v
		}
		series[i] = v
	}
	return series
}

func metricSeries(records []models.WellnessRecord, m models.Metric) []float64 {
	series := make([]float64, len(records))
	for i := range records {
		series[i] = records[i].Value(m)
	}
	return series
}

// AnalyzeCorrelations computes mood-vs-factor correlations, sorted by
// absolute coefficient descending.
func (s *analyticsService) AnalyzeCorrelations(records []models.WellnessRecord) []models.CorrelationResult {
	if len(records) < s.opts.MinEntriesForCorrelation {
		return []models.CorrelationResult{}
	}

	sorted := sortedByDate(records)
	mood := metricSeries(sorted, models.MetricMood)

	results := make([]models.CorrelationResult, 0, len(correlationFactors))
	for _, factor := range correlationFactors {
		r := stats.PearsonCorrelation(mood, factorSeries(sorted, factor))
		results = append(results, models.CorrelationResult{
			Factor:         factor,
			Coefficient:    r,
			PValue:         stats.CorrelationPValue(r, len(sorted)),
			SampleSize:     len(sorted),
			Interpretation: s.interpretCorrelation(r),
		})
	}

	// Stable sort keeps factor declaration order on ties.
	sort.SliceStable(results, func(i, j int) bool {
		return math.Abs(results[i].Coefficient) > math.Abs(results[j].Coefficient)
	})

	return results
}

// interpretCorrelation buckets r by magnitude and sign.
func (s *analyticsService) interpretCorrelation(r float64) models.CorrelationStrength {
	absR := math.Abs(r)
	t := s.opts.Thresholds

	switch {
	case absR >= t.Strong:
		if r > 0 {
			return models.StrengthStrongPositive
		}
		return models.StrengthStrongNegative
	case absR >= t.Moderate:
		if r > 0 {
			return models.StrengthModeratePositive
		}
		return models.StrengthModerateNegative
	case absR >= t.Weak:
		if r > 0 {
			return models.StrengthWeakPositive
		}
		return models.StrengthWeakNegative
	default:
		return models.StrengthNegligible
	}
}

// AnalyzeTrends regresses each metric against days-since-first-record and
// reports the weekly rate of change, sorted by R² descending.
func (s *analyticsService) AnalyzeTrends(records []models.WellnessRecord) []models.TrendResult {
	if len(records) < s.opts.MinEntriesForTrends {
		return []models.TrendResult{}
	}

	sorted := sortedByDate(records)
	first := sorted[0].Date

	dayIndex := make([]float64, len(sorted))
	for i := range sorted {
		dayIndex[i] = sorted[i].Date.Sub(first).Hours() / 24
	}

	trends := make([]models.TrendResult, 0, len(models.Metrics))
	for _, metric := range models.Metrics {
		fit := stats.LinearRegression(dayIndex, metricSeries(sorted, metric))
		weekly := fit.Slope * 7

		direction := models.TrendStable
		if math.Abs(weekly) >= stableTrendThreshold {
			if weekly > 0 {
				direction = models.TrendIncreasing
			} else {
				direction = models.TrendDecreasing
			}
		}

		trends = append(trends, models.TrendResult{
			Metric:          metric,
			Direction:       direction,
			WeeklyMagnitude: weekly,
			RSquared:        fit.RSquared,
			SampleSize:      len(sorted),
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].RSquared > trends[j].RSquared
	})

	return trends
}

// DetectWeeklyPattern buckets mood by weekday and reports the spread between
// the best and worst days, if the data supports calling it a pattern.
func (s *analyticsService) DetectWeeklyPattern(records []models.WellnessRecord) *models.WeeklyPattern {
	if len(records) < s.opts.MinEntriesForTrends {
		return nil
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range records {
		day := records[i].Date.Weekday().String()
		sums[day] += records[i].Mood
		counts[day]++
	}

	if len(counts) < 4 {
		return nil
	}

	means := make(map[string]float64, len(counts))
	maxMean := math.Inf(-1)
	minMean := math.Inf(1)
	for day, count := range counts {
		mean := sums[day] / float64(count)
		means[day] = mean
		maxMean = math.Max(maxMean, mean)
		minMean = math.Min(minMean, mean)
	}

	variation := maxMean - minMean
	if variation < minPatternVariation {
		return nil
	}

	// Walk weekdays in calendar order so peak/low lists are deterministic.
	var peakDays, lowDays []string
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := wd.String()
		mean, ok := means[day]
		if !ok {
			continue
		}
		if maxMean-mean <= patternDayTolerance {
			peakDays = append(peakDays, day)
		}
		if mean-minMean <= patternDayTolerance {
			lowDays = append(lowDays, day)
		}
	}

	return &models.WeeklyPattern{
		WeekdayMeans: means,
		PeakDays:     peakDays,
		LowDays:      lowDays,
		Variation:    variation,
		Strength:     math.Min(1, variation/patternStrengthSpan),
		SampleSize:   len(records),
	}
}

// suggestionRule is the per-factor calibration for suggestion generation.
// Impact multipliers are calibrated by hand, not derived from a model.
type suggestionRule struct {
	category    models.SuggestionCategory
	priority    int
	impactScale float64
	difficulty  string
	timeframe   string
	raiseText   string // positive correlation: more of the factor helps
	lowerText   string // negative correlation: less of the factor helps
}

var suggestionRules = map[models.Metric]suggestionRule{
	models.MetricSleep: {
		category: models.CategorySleep, priority: 2, impactScale: 8,
		difficulty: "moderate", timeframe: "2-3 weeks",
		raiseText: "Sleep tracks your mood closely. You average %.1f hours; adding even half an hour looks worthwhile.",
		lowerText: "Your mood dips on longer-sleep days. You average %.1f hours; a steadier, slightly shorter schedule may help.",
	},
	models.MetricExercise: {
		category: models.CategoryExercise, priority: 2, impactScale: 7,
		difficulty: "moderate", timeframe: "2-4 weeks",
		raiseText: "Exercise days line up with better mood. You average %.1f minutes; a few more short sessions could pay off.",
		lowerText: "Heavy exercise days line up with lower mood. You average %.1f minutes; consider lighter recovery days.",
	},
	models.MetricNutrition: {
		category: models.CategoryNutrition, priority: 3, impactScale: 6,
		difficulty: "moderate", timeframe: "3-4 weeks",
		raiseText: "Better-nutrition days are better-mood days. Your average rating is %.1f; planning meals ahead tends to lift it.",
		lowerText: "Your nutrition rating moves opposite to mood. Your average is %.1f; it may be worth reviewing what you count as a good day.",
	},
	models.MetricStress: {
		category: models.CategoryStress, priority: 1, impactScale: 9,
		difficulty: "hard", timeframe: "2-6 weeks",
		raiseText: "Low-stress days are your best mood days. Your average stress is %.1f; a daily wind-down habit is the highest-leverage change here.",
		lowerText: "Your mood holds up even on stressful days, but stress averages %.1f; keeping it from creeping higher protects that.",
	},
	models.MetricHydration: {
		category: models.CategoryHydration, priority: 4, impactScale: 5,
		difficulty: "easy", timeframe: "1-2 weeks",
		raiseText: "Hydration correlates with your mood. You average %.1f glasses; keeping a bottle at hand is an easy win.",
		lowerText: "Hydration shows an inverse relationship with mood at %.1f glasses; the signal is likely confounded, but worth watching.",
	},
	models.MetricEnergy: {
		category: models.CategoryLifestyle, priority: 3, impactScale: 6,
		difficulty: "moderate", timeframe: "2-4 weeks",
		raiseText: "Energy and mood rise together. Your average energy is %.1f; the sleep and exercise levers above feed directly into it.",
		lowerText: "Energy and mood move apart in your data, with energy averaging %.1f; pacing high-energy days more evenly may help.",
	},
}

// GenerateSuggestions emits one suggestion per correlation that clears both
// the weak-r floor and the significance threshold. Unknown factors are
// skipped. Output is ordered by priority, then expected impact.
func (s *analyticsService) GenerateSuggestions(records []models.WellnessRecord) []models.Suggestion {
	correlations := s.AnalyzeCorrelations(records)
	suggestions := make([]models.Suggestion, 0, len(correlations))

	for _, c := range correlations {
		absR := math.Abs(c.Coefficient)
		if absR < s.opts.Thresholds.Weak || c.PValue >= s.opts.ConfidenceThreshold {
			continue
		}

		rule, ok := suggestionRules[c.Factor]
		if !ok {
			continue
		}

		priority := rule.priority
		if c.Factor == models.MetricStress || absR >= s.opts.Thresholds.Strong {
			priority = 1
		}

		text := rule.raiseText
		if c.Coefficient < 0 {
			text = rule.lowerText
		}
		avg := stats.Mean(metricSeries(records, c.Factor))

		suggestions = append(suggestions, models.Suggestion{
			Category:       rule.category,
			Priority:       priority,
			ExpectedImpact: absR * rule.impactScale,
			Text:           fmt.Sprintf(text, avg),
			Difficulty:     rule.difficulty,
			Timeframe:      rule.timeframe,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority < suggestions[j].Priority
		}
		return suggestions[i].ExpectedImpact > suggestions[j].ExpectedImpact
	})

	return suggestions
}

// AggregateMetrics computes whole-dataset averages, the entry-count
// consistency score, and the recent-vs-prior mood comparison.
//
// The consistency score here deliberately measures logging habit (how much of
// a 30-day window has data), not variance. Goal consistency is the
// variance-based one.
func (s *analyticsService) AggregateMetrics(records []models.WellnessRecord) models.WellnessMetrics {
	averages := make(map[models.Metric]float64, len(models.Metrics))
	for _, metric := range models.Metrics {
		averages[metric] = stats.Mean(metricSeries(records, metric))
	}

	consistency := math.Min(100, float64(len(records))/consistencyWindowDays*100)

	return models.WellnessMetrics{
		EntryCount:       len(records),
		Averages:         averages,
		ConsistencyScore: consistency,
		ImprovementTrend: s.improvementTrend(records),
	}
}

// improvementTrend compares mean mood of the newest window against the window
// before it. Too few records on either side reads as stable, not as evidence.
func (s *analyticsService) improvementTrend(records []models.WellnessRecord) models.TrendDirection {
	sorted := sortedByDate(records)
	n := len(sorted)

	recentStart := n - improvementWindow
	if recentStart < 0 {
		recentStart = 0
	}
	olderStart := recentStart - improvementWindow
	if olderStart < 0 {
		olderStart = 0
	}

	recent := sorted[recentStart:]
	older := sorted[olderStart:recentStart]

	if len(recent) < improvementMinEntries || len(older) < improvementMinEntries {
		return models.TrendStable
	}

	diff := stats.Mean(metricSeries(recent, models.MetricMood)) -
		stats.Mean(metricSeries(older, models.MetricMood))

	switch {
	case diff > improvementThreshold:
		return models.TrendIncreasing
	case diff < -improvementThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

// BuildReport runs every analysis section over the same snapshot. Sections
// fail soft independently: a dataset too small for trends still produces
// correlations, metrics, and so on.
func (s *analyticsService) BuildReport(records []models.WellnessRecord) *models.InsightsReport {
	return &models.InsightsReport{
		Correlations: s.AnalyzeCorrelations(records),
		Trends:       s.AnalyzeTrends(records),
		Pattern:      s.DetectWeeklyPattern(records),
		Suggestions:  s.GenerateSuggestions(records),
		Metrics:      s.AggregateMetrics(records),
		ComputedAt:   time.Now().UTC(),
	}
}
