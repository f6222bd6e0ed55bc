package service

// CorrelationThresholds are the absolute-r cutoffs for interpretation buckets.
type CorrelationThresholds struct {
	Strong   float64
	Moderate float64
	Weak     float64
}

// AnalysisOptions tune the analytics engine. Options are threaded explicitly
// into the services that need them; there is no process-wide mutable default.
type AnalysisOptions struct {
	// MinEntriesForCorrelation is the smallest record count that produces
	// correlation results at all. Below it the engine reports "nothing yet",
	// not an error.
	MinEntriesForCorrelation int

	// MinEntriesForTrends gates trend and weekly-pattern analysis.
	MinEntriesForTrends int

	// ConfidenceThreshold is the p-value ceiling for a correlation to drive
	// an optimization suggestion.
	ConfidenceThreshold float64

	Thresholds CorrelationThresholds
}

// DefaultAnalysisOptions returns the stock engine tuning.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		MinEntriesForCorrelation: 7,
		MinEntriesForTrends:      14,
		ConfidenceThreshold:      0.05,
		Thresholds: CorrelationThresholds{
			Strong:   0.5,
			Moderate: 0.3,
			Weak:     0.1,
		},
	}
}

// withDefaults fills any unset option from the defaults, so a partially
// populated options struct behaves sensibly.
func (o AnalysisOptions) withDefaults() AnalysisOptions {
	d := DefaultAnalysisOptions()
	if o.MinEntriesForCorrelation <= 0 {
		o.MinEntriesForCorrelation = d.MinEntriesForCorrelation
	}
	if o.MinEntriesForTrends <= 0 {
		o.MinEntriesForTrends = d.MinEntriesForTrends
	}
	if o.ConfidenceThreshold <= 0 {
		o.ConfidenceThreshold = d.ConfidenceThreshold
	}
	if o.Thresholds.Strong <= 0 {
		o.Thresholds.Strong = d.Thresholds.Strong
	}
	if o.Thresholds.Moderate <= 0 {
		o.Thresholds.Moderate = d.Thresholds.Moderate
	}
	if o.Thresholds.Weak <= 0 {
		o.Thresholds.Weak = d.Thresholds.Weak
	}
	return o
}
