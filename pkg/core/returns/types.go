// Package returns provides deterministic return-on-investment calculations
// for a single set of cash-flow assumptions. All functions are pure; the
// package holds no state between calls.
//
// Unit convention (binding everywhere in this module): ROI and all impact
// figures are point-scale percentages (15 means 15%). DiscountRate and
// RiskFactor are fractions in [0,1].
package returns

// Inputs describes one set of cash-flow assumptions.
//
// The yearly slices hold one entry per year. A slice shorter than the time
// horizon has its last value carried forward; an empty slice is treated as
// zero for every year.
type Inputs struct {
	InitialInvestment   float64   `json:"initial_investment"`
	AnnualBenefits      []float64 `json:"annual_benefits"`
	ImplementationCosts []float64 `json:"implementation_costs"`
	MaintenanceCosts    []float64 `json:"maintenance_costs"`
	DiscountRate        float64   `json:"discount_rate"` // fraction, 0-1
	TimeHorizon         int       `json:"time_horizon"`  // years, >= 1
	RiskFactor          float64   `json:"risk_factor"`   // fraction, 0-1
}

// Results holds the computed return metrics.
//
// PaybackPeriod and BreakEvenPoint use -1 as a "not achieved" sentinel;
// both are otherwise fractional years >= 0.
type Results struct {
	NPV             float64 `json:"npv"`
	IRR             float64 `json:"irr"`
	PaybackPeriod   float64 `json:"payback_period"`
	ROI             float64 `json:"roi"` // percentage points
	RiskAdjustedROI float64 `json:"risk_adjusted_roi"`
	BreakEvenPoint  float64 `json:"break_even_point"`
	TotalReturn     float64 `json:"total_return"`
	Confidence      float64 `json:"confidence"` // 0-1
}

// Clone returns a deep copy of the inputs so perturbation routines can
// mutate assumption slices without touching the caller's base case.
func (in Inputs) Clone() Inputs {
	out := in
	out.AnnualBenefits = append([]float64(nil), in.AnnualBenefits...)
	out.ImplementationCosts = append([]float64(nil), in.ImplementationCosts...)
	out.MaintenanceCosts = append([]float64(nil), in.MaintenanceCosts...)
	return out
}

// YearValue reads the value of a yearly assumption slice for a given year,
// applying the carry-forward rule: past the end of the slice the last value
// repeats; an empty slice reads as zero.
func YearValue(seq []float64, year int) float64 {
	if len(seq) == 0 {
		return 0
	}
	if year >= len(seq) {
		return seq[len(seq)-1]
	}
	return seq[year]
}
