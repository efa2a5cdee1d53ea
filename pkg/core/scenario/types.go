// Package scenario derives conservative/realistic/optimistic variants of a
// base case, outcome probabilities, and correlated Monte Carlo simulations
// over ranged variables.
package scenario

import (
	"impact_engine/pkg/core/returns"
)

const (
	// TargetROI is the fixed point-scale target used by the probability block.
	TargetROI = 15.0
	// BreakEvenBand is the half-width of the break-even band around ROI 0.
	BreakEvenBand = 5.0
	// DefaultTrials is the Monte Carlo trial count when the caller passes 0.
	DefaultTrials = 1000
)

// YearProjection is one year of a scenario's cash-flow projection.
type YearProjection struct {
	Year               int     `json:"year"`
	Benefit            float64 `json:"benefit"`
	ImplementationCost float64 `json:"implementation_cost"`
	MaintenanceCost    float64 `json:"maintenance_cost"`
	NetCashFlow        float64 `json:"net_cash_flow"`
	Cumulative         float64 `json:"cumulative"`
}

// Valuation is the three-method valuation attached to each scenario.
type Valuation struct {
	DiscountedCashFlow float64 `json:"discounted_cash_flow"`
	RevenueMultiple    float64 `json:"revenue_multiple"`
	AssetBased         float64 `json:"asset_based"`
}

// Scenario is one fully evaluated variant of the base case.
type Scenario struct {
	Name        string           `json:"name"`
	Assumptions returns.Inputs   `json:"assumptions"`
	Projections []YearProjection `json:"projections"`
	Valuation   Valuation        `json:"valuation"`
	RiskScore   float64          `json:"risk_score"`   // point scale
	Probability float64          `json:"probability"`  // weight, 0-1
	Results     returns.Results  `json:"results"`
}

// OutcomeProbability reports outcome fractions across the three scenarios.
type OutcomeProbability struct {
	PositiveROI float64 `json:"positive_roi"`
	BreakEven   float64 `json:"break_even"`
	MeetsTarget float64 `json:"meets_target"`
}

// VariableImpact is one entry of the coarse sensitivity ranking.
type VariableImpact struct {
	Variable string  `json:"variable"`
	Impact   float64 `json:"impact"` // ROI points, absolute
}

// ScenarioSet is the full output of GenerateScenarios.
type ScenarioSet struct {
	Conservative       Scenario           `json:"conservative"`
	Realistic          Scenario           `json:"realistic"`
	Optimistic         Scenario           `json:"optimistic"`
	Probability        OutcomeProbability `json:"probability"`
	SensitivityRanking []VariableImpact   `json:"sensitivity_ranking"`
}

// Correlation declares a pairwise dependency between two ranged variables.
// It drives a first-order linear adjustment during Monte Carlo sampling,
// not a joint distribution.
type Correlation struct {
	Variable1   string  `json:"variable_1"`
	Variable2   string  `json:"variable_2"`
	Coefficient float64 `json:"coefficient"` // -1..1
}

// MonteCarloResult aggregates the ROI outcome distribution of a simulation.
type MonteCarloResult struct {
	Trials      int             `json:"trials"`
	MeanROI     float64         `json:"mean_roi"`
	MedianROI   float64         `json:"median_roi"`
	StdDev      float64         `json:"std_dev"` // population
	Percentiles map[int]float64 `json:"percentiles"`
	MinROI      float64         `json:"min_roi"`
	MaxROI      float64         `json:"max_roi"`
}
