package sensitivity

import (
	"fmt"
	"math"
	"sort"

	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/variables"
)

const (
	criticalShare = 0.3

	riskHighThreshold   = 50.0
	riskMediumThreshold = 20.0

	robustnessHighPriority = 0.3
	robustnessMedium       = 0.6
)

// Per-variable recommendation thresholds, in ROI points of max impact.
var variableThresholds = map[string]struct {
	threshold float64
	text      string
}{
	variables.AnnualBenefits: {30,
		"Benefit estimates drive the outcome. Validate revenue and cost-saving assumptions against historical data before committing."},
	variables.ImplementationCosts: {25,
		"Implementation cost overruns materially change the return. Obtain fixed-price quotes or add a contingency budget."},
	variables.TimeHorizon: {20,
		"Returns depend heavily on the evaluation horizon. Confirm the benefit stream is durable beyond the first years."},
	variables.DiscountRate: {15,
		"The discount rate assumption shifts the result. Align it with the organization's cost of capital."},
}

// Analyzer runs single and paired variable perturbations through the
// return calculator. It is stateless and safe for concurrent use.
type Analyzer struct {
	calc *returns.Calculator
}

// NewAnalyzer creates a new analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{calc: returns.NewCalculator()}
}

// Analyze evaluates ROI at each variable's range bounds and derives the
// ranked factor list, critical variables, robustness score, risk buckets,
// and recommendations.
func (a *Analyzer) Analyze(base returns.Inputs, ranges []variables.Range) (*Analysis, error) {
	baseROI := a.calc.Calculate(base).ROI

	factors := make([]Factor, 0, len(ranges))
	for _, r := range ranges {
		entry, err := variables.Lookup(r.Variable)
		if err != nil {
			return nil, fmt.Errorf("sensitivity: %w", err)
		}

		low := base.Clone()
		entry.Apply(&low, r.Min)
		high := base.Clone()
		entry.Apply(&high, r.Max)

		factors = append(factors, Factor{
			Variable:   r.Variable,
			BaseValue:  entry.Base(base),
			LowValue:   r.Min,
			HighValue:  r.Max,
			LowImpact:  a.calc.Calculate(low).ROI - baseROI,
			HighImpact: a.calc.Calculate(high).ROI - baseROI,
		})
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].MaxImpact() > factors[j].MaxImpact()
	})

	critical := make([]string, 0)
	criticalCount := int(math.Ceil(criticalShare * float64(len(factors))))
	for i := 0; i < criticalCount && i < len(factors); i++ {
		critical = append(critical, factors[i].Variable)
	}

	risk := make(map[string]string, len(factors))
	totalImpact := 0.0
	for _, f := range factors {
		impact := f.MaxImpact()
		totalImpact += impact
		switch {
		case impact > riskHighThreshold:
			risk[f.Variable] = RiskHigh
		case impact > riskMediumThreshold:
			risk[f.Variable] = RiskMedium
		default:
			risk[f.Variable] = RiskLow
		}
	}

	robustness := 1.0
	if len(factors) > 0 {
		// Impacts are ROI percentage points, so 100 points of average
		// swing maps to zero robustness.
		robustness = 1 - (totalImpact/float64(len(factors)))/100
	}
	robustness = math.Max(0, math.Min(1, robustness))

	return &Analysis{
		Factors:           factors,
		CriticalVariables: critical,
		RobustnessScore:   robustness,
		RiskAssessment:    risk,
		Recommendations:   recommendations(robustness, factors),
	}, nil
}

// recommendations keys templated text on robustness thresholds, then adds
// variable-specific guidance when a top-3 factor exceeds its named
// threshold.
func recommendations(robustness float64, factors []Factor) []string {
	recs := make([]string, 0, 4)
	switch {
	case robustness < robustnessHighPriority:
		recs = append(recs,
			"High priority: outcomes are very sensitive to input assumptions. Re-validate all estimates and consider a staged investment.")
	case robustness < robustnessMedium:
		recs = append(recs,
			"Medium priority: results shift noticeably with assumptions. Track the critical variables monthly during implementation.")
	default:
		recs = append(recs,
			"Low risk: projected returns are stable across the tested assumption ranges.")
	}

	top := factors
	if len(top) > 3 {
		top = top[:3]
	}
	for _, f := range top {
		if tmpl, ok := variableThresholds[f.Variable]; ok && f.MaxImpact() > tmpl.threshold {
			recs = append(recs, tmpl.text)
		}
	}
	return recs
}

// TornadoData shapes the sorted factor list into tornado diagram entries,
// strictly ordered by descending |highImpact - lowImpact|.
func (a *Analyzer) TornadoData(factors []Factor) []TornadoEntry {
	entries := make([]TornadoEntry, 0, len(factors))
	for _, f := range factors {
		entries = append(entries, TornadoEntry{
			Variable:   f.Variable,
			Label:      variables.Label(f.Variable),
			LowImpact:  f.LowImpact,
			HighImpact: f.HighImpact,
			Range:      math.Abs(f.HighImpact - f.LowImpact),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Range > entries[j].Range
	})
	return entries
}
