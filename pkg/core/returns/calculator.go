package returns

import "math"

const (
	irrSeed       = 0.1
	irrMaxIter    = 100
	irrTolerance  = 1e-4
	maxConfidence = 0.95
)

// Calculator computes return metrics from cash-flow assumptions.
// It is stateless and safe for concurrent use.
type Calculator struct{}

// NewCalculator creates a new instance of the calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate runs the full metric suite for one assumption set. It never
// panics: malformed yearly slices degrade via the carry-forward/zero rule,
// and unreachable payback/break-even conditions yield the -1 sentinel.
// Pathological numeric inputs (NaN, Inf) propagate through the results
// rather than being rejected.
func (c *Calculator) Calculate(in Inputs) Results {
	if in.TimeHorizon < 1 {
		in.TimeHorizon = 1
	}

	totalBenefits := 0.0
	totalCosts := in.InitialInvestment
	for y := 0; y < in.TimeHorizon; y++ {
		totalBenefits += YearValue(in.AnnualBenefits, y)
		totalCosts += YearValue(in.ImplementationCosts, y) + YearValue(in.MaintenanceCosts, y)
	}
	totalReturn := totalBenefits - totalCosts

	roi := 0.0
	if totalCosts != 0 {
		roi = totalReturn / totalCosts * 100
	}

	return Results{
		NPV:             c.NPVAtRate(in, in.DiscountRate),
		IRR:             c.irr(in),
		PaybackPeriod:   c.paybackPeriod(in),
		ROI:             roi,
		RiskAdjustedROI: roi * (1 - in.RiskFactor),
		BreakEvenPoint:  c.breakEvenPoint(in, totalBenefits, totalCosts),
		TotalReturn:     totalReturn,
		Confidence:      c.confidence(in),
	}
}

// NPVAtRate discounts each year's net cash flow (benefit minus
// implementation and maintenance costs) by (1+rate)^(year+1), sums, and
// subtracts the initial investment.
func (c *Calculator) NPVAtRate(in Inputs, rate float64) float64 {
	npv := -in.InitialInvestment
	for y := 0; y < in.TimeHorizon; y++ {
		net := YearValue(in.AnnualBenefits, y) -
			YearValue(in.ImplementationCosts, y) -
			YearValue(in.MaintenanceCosts, y)
		npv += net / math.Pow(1+rate, float64(y+1))
	}
	return npv
}

// npvDerivative is the analytic derivative of NPV with respect to rate.
func (c *Calculator) npvDerivative(in Inputs, rate float64) float64 {
	d := 0.0
	for y := 0; y < in.TimeHorizon; y++ {
		net := YearValue(in.AnnualBenefits, y) -
			YearValue(in.ImplementationCosts, y) -
			YearValue(in.MaintenanceCosts, y)
		d += -float64(y+1) * net / math.Pow(1+rate, float64(y+2))
	}
	return d
}

// irr solves NPV(rate) = 0 by Newton-Raphson seeded at 0.1 with the
// analytic derivative, up to 100 iterations, tolerance 1e-4 on |NPV|.
// A near-zero derivative breaks early and returns the last estimate. When
// the iteration budget runs out without converging, a bracketing bisection
// pass takes over; if no sign change exists on the search interval the last
// Newton estimate is returned. There is no separate convergence flag, so a
// caller cannot distinguish "converged" from "gave up".
func (c *Calculator) irr(in Inputs) float64 {
	rate := irrSeed
	for i := 0; i < irrMaxIter; i++ {
		npv := c.NPVAtRate(in, rate)
		if math.Abs(npv) < irrTolerance {
			return rate
		}
		deriv := c.npvDerivative(in, rate)
		if math.Abs(deriv) < irrTolerance {
			return rate
		}
		rate -= npv / deriv
		if rate <= -0.99 {
			rate = -0.99
		}
	}
	return c.irrBisect(in, rate)
}

// irrBisect is the fallback for a diverging Newton run: bisect over a wide
// rate interval when it brackets a root, otherwise give back the Newton
// estimate unchanged.
func (c *Calculator) irrBisect(in Inputs, fallback float64) float64 {
	lo, hi := -0.9, 10.0
	fLo := c.NPVAtRate(in, lo)
	fHi := c.NPVAtRate(in, hi)
	if fLo*fHi > 0 {
		return fallback
	}
	for i := 0; i < irrMaxIter; i++ {
		mid := (lo + hi) / 2
		fMid := c.NPVAtRate(in, mid)
		if math.Abs(fMid) < irrTolerance {
			return mid
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return (lo + hi) / 2
}

// paybackPeriod walks the years accumulating net cash flow from
// -initialInvestment and linearly interpolates the fractional crossing
// point inside the first year the cumulative flow turns non-negative.
// Returns -1 when the horizon is exhausted first.
func (c *Calculator) paybackPeriod(in Inputs) float64 {
	cumulative := -in.InitialInvestment
	if cumulative >= 0 {
		return 0
	}
	for y := 0; y < in.TimeHorizon; y++ {
		net := YearValue(in.AnnualBenefits, y) -
			YearValue(in.ImplementationCosts, y) -
			YearValue(in.MaintenanceCosts, y)
		prev := cumulative
		cumulative += net
		if cumulative >= 0 {
			if net == 0 {
				return float64(y)
			}
			return float64(y) + (-prev / net)
		}
	}
	return -1
}

// breakEvenPoint is total costs over average annual benefit, in years.
// Sentinel -1 when the average benefit is not positive.
func (c *Calculator) breakEvenPoint(in Inputs, totalBenefits, totalCosts float64) float64 {
	avg := totalBenefits / float64(in.TimeHorizon)
	if avg <= 0 {
		return -1
	}
	return totalCosts / avg
}

// confidence is a heuristic: 0.80 base, +0.05 each for a benefit history of
// three or more years, a horizon of three or more years, a risk factor
// under 0.3, and a discount rate strictly inside (0, 0.2). Capped at 0.95.
func (c *Calculator) confidence(in Inputs) float64 {
	conf := 0.80
	if len(in.AnnualBenefits) >= 3 {
		conf += 0.05
	}
	if in.TimeHorizon >= 3 {
		conf += 0.05
	}
	if in.RiskFactor < 0.3 {
		conf += 0.05
	}
	if in.DiscountRate > 0 && in.DiscountRate < 0.2 {
		conf += 0.05
	}
	return math.Min(conf, maxConfidence)
}
