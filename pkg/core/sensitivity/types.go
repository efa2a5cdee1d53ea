// Package sensitivity perturbs single and paired variables around a base
// case to rank ROI sensitivity, classify per-variable risk, generate
// recommendations, and locate break-even values via bisection.
package sensitivity

// Factor records the ROI response of one variable at its range bounds.
// Impacts are ROI deltas versus the base case, in percentage points.
type Factor struct {
	Variable   string  `json:"variable"`
	BaseValue  float64 `json:"base_value"`
	LowValue   float64 `json:"low_value"`
	HighValue  float64 `json:"high_value"`
	LowImpact  float64 `json:"low_impact"`
	HighImpact float64 `json:"high_impact"`
}

// MaxImpact is the larger-magnitude of the two impacts, as an absolute.
func (f Factor) MaxImpact() float64 {
	lo, hi := f.LowImpact, f.HighImpact
	if lo < 0 {
		lo = -lo
	}
	if hi < 0 {
		hi = -hi
	}
	if lo > hi {
		return lo
	}
	return hi
}

// Risk classification levels for variables.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Analysis is the full single-variable sensitivity output.
type Analysis struct {
	Factors           []Factor          `json:"factors"` // sorted by MaxImpact desc
	CriticalVariables []string          `json:"critical_variables"`
	RobustnessScore   float64           `json:"robustness_score"` // 0-1
	RiskAssessment    map[string]string `json:"risk_assessment"`  // variable -> level
	Recommendations   []string          `json:"recommendations"`
}

// Interaction reports the pairwise effect of two variables at their maxima.
type Interaction struct {
	Variable1         string  `json:"variable_1"`
	Variable2         string  `json:"variable_2"`
	IndependentEffect float64 `json:"independent_effect"` // sum of solo effects
	CombinedEffect    float64 `json:"combined_effect"`
	InteractionEffect float64 `json:"interaction_effect"` // combined - independent
	Significant       bool    `json:"significant"`
}

// Pair names two ranged variables for interaction analysis.
type Pair struct {
	Variable1 string `json:"variable_1"`
	Variable2 string `json:"variable_2"`
}

// TornadoEntry is one bar of the tornado diagram, widest range first.
type TornadoEntry struct {
	Variable   string  `json:"variable"`
	Label      string  `json:"label"`
	LowImpact  float64 `json:"low_impact"`
	HighImpact float64 `json:"high_impact"`
	Range      float64 `json:"range"` // |high - low|
}
