package scenario

import (
	"fmt"
	"math/rand"
	"sort"

	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/variables"
)

// Scenario probability weights.
const (
	conservativeWeight = 0.25
	realisticWeight    = 0.50
	optimisticWeight   = 0.25
)

// Valuation constants for the revenue-multiple and asset-based methods.
const (
	revenueMultiple   = 2.5
	assetRecoveryRate = 0.8
)

// Generator builds scenario variants of a base case. The random source is
// injected so Monte Carlo runs are reproducible; the plain scenario path
// never touches it.
type Generator struct {
	calc *returns.Calculator
	rng  *rand.Rand
}

// NewGenerator creates a generator around the given random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{calc: returns.NewCalculator(), rng: rng}
}

// GenerateScenarios derives the conservative/realistic/optimistic variants,
// the outcome-probability block, and a coarse sensitivity ranking. The
// output is fully deterministic for fixed inputs.
func (g *Generator) GenerateScenarios(base returns.Inputs, ranges []variables.Range) (*ScenarioSet, error) {
	conservative, err := g.buildDirectional(base, ranges, true)
	if err != nil {
		return nil, err
	}
	optimistic, err := g.buildDirectional(base, ranges, false)
	if err != nil {
		return nil, err
	}

	set := &ScenarioSet{
		Conservative: g.evaluate("conservative", conservative, conservativeWeight),
		Realistic:    g.evaluate("realistic", base.Clone(), realisticWeight),
		Optimistic:   g.evaluate("optimistic", optimistic, optimisticWeight),
	}
	set.Probability = outcomeProbability([]returns.Results{
		set.Conservative.Results,
		set.Realistic.Results,
		set.Optimistic.Results,
	})

	ranking, err := g.rankVariables(base, ranges)
	if err != nil {
		return nil, err
	}
	set.SensitivityRanking = ranking
	return set, nil
}

// buildDirectional applies the fixed per-variable directional table: benefit
// variables take min for conservative / max for optimistic, cost and rate
// variables the reverse, and the horizon takes min/max directly.
func (g *Generator) buildDirectional(base returns.Inputs, ranges []variables.Range, conservative bool) (returns.Inputs, error) {
	out := base.Clone()
	for _, r := range ranges {
		entry, err := variables.Lookup(r.Variable)
		if err != nil {
			return returns.Inputs{}, fmt.Errorf("scenario range: %w", err)
		}
		value := r.Max
		switch entry.Kind {
		case variables.KindBenefit, variables.KindHorizon:
			if conservative {
				value = r.Min
			}
		case variables.KindCost, variables.KindRate:
			if !conservative {
				value = r.Min
			}
		}
		entry.Apply(&out, value)
	}
	return out, nil
}

// evaluate runs the calculator over one variant and fills its projections
// and three-method valuation.
func (g *Generator) evaluate(name string, in returns.Inputs, weight float64) Scenario {
	res := g.calc.Calculate(in)

	projections := make([]YearProjection, 0, in.TimeHorizon)
	cumulative := -in.InitialInvestment
	totalBenefits := 0.0
	for y := 0; y < in.TimeHorizon; y++ {
		benefit := returns.YearValue(in.AnnualBenefits, y)
		impl := returns.YearValue(in.ImplementationCosts, y)
		maint := returns.YearValue(in.MaintenanceCosts, y)
		net := benefit - impl - maint
		cumulative += net
		totalBenefits += benefit
		projections = append(projections, YearProjection{
			Year:               y + 1,
			Benefit:            benefit,
			ImplementationCost: impl,
			MaintenanceCost:    maint,
			NetCashFlow:        net,
			Cumulative:         cumulative,
		})
	}

	avgBenefit := 0.0
	if in.TimeHorizon > 0 {
		avgBenefit = totalBenefits / float64(in.TimeHorizon)
	}

	return Scenario{
		Name:        name,
		Assumptions: in,
		Projections: projections,
		Valuation: Valuation{
			DiscountedCashFlow: res.NPV,
			RevenueMultiple:    avgBenefit * revenueMultiple,
			AssetBased:         in.InitialInvestment * assetRecoveryRate,
		},
		RiskScore:   in.RiskFactor * 100,
		Probability: weight,
		Results:     res,
	}
}

// outcomeProbability reports, across the evaluated scenarios, the fraction
// with positive ROI, the fraction inside the break-even band, and the
// fraction meeting the fixed target.
func outcomeProbability(results []returns.Results) OutcomeProbability {
	if len(results) == 0 {
		return OutcomeProbability{}
	}
	var positive, breakEven, target int
	for _, r := range results {
		if r.ROI > 0 {
			positive++
		}
		if r.ROI >= -BreakEvenBand && r.ROI <= BreakEvenBand {
			breakEven++
		}
		if r.ROI >= TargetROI {
			target++
		}
	}
	n := float64(len(results))
	return OutcomeProbability{
		PositiveROI: float64(positive) / n,
		BreakEven:   float64(breakEven) / n,
		MeetsTarget: float64(target) / n,
	}
}

// rankVariables is the coarse ranking: per variable, the larger absolute
// ROI deviation from base between its min and max, sorted descending.
func (g *Generator) rankVariables(base returns.Inputs, ranges []variables.Range) ([]VariableImpact, error) {
	baseROI := g.calc.Calculate(base).ROI
	ranking := make([]VariableImpact, 0, len(ranges))
	for _, r := range ranges {
		entry, err := variables.Lookup(r.Variable)
		if err != nil {
			return nil, fmt.Errorf("sensitivity ranking: %w", err)
		}

		low := base.Clone()
		entry.Apply(&low, r.Min)
		high := base.Clone()
		entry.Apply(&high, r.Max)

		lowDelta := g.calc.Calculate(low).ROI - baseROI
		highDelta := g.calc.Calculate(high).ROI - baseROI
		impact := absMax(lowDelta, highDelta)
		ranking = append(ranking, VariableImpact{Variable: r.Variable, Impact: impact})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Impact > ranking[j].Impact
	})
	return ranking, nil
}

func absMax(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}
