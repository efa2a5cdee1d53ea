package scenario

import (
	"fmt"
	"math"
	"sort"

	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/variables"
)

var percentileLevels = []int{5, 10, 25, 50, 75, 90, 95}

// GenerateCorrelatedScenarios runs a Monte Carlo simulation over the ranged
// variables. Each trial samples every variable independently from its
// declared distribution, then applies the declared pairwise correlations as
// a first-order linear adjustment: (sampledValue - 0.5) * coefficient is
// added to the partner variable and the result is clamped back into its
// range. This is an explicit approximation of correlated sampling, not a
// joint-distribution (copula) sampler.
//
// trials <= 0 selects DefaultTrials.
func (g *Generator) GenerateCorrelatedScenarios(base returns.Inputs, ranges []variables.Range, correlations []Correlation, trials int) (*MonteCarloResult, error) {
	if trials <= 0 {
		trials = DefaultTrials
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("monte carlo: no variable ranges declared")
	}

	entries := make(map[string]variables.Entry, len(ranges))
	bounds := make(map[string]variables.Range, len(ranges))
	for _, r := range ranges {
		entry, err := variables.Lookup(r.Variable)
		if err != nil {
			return nil, fmt.Errorf("monte carlo: %w", err)
		}
		entries[r.Variable] = entry
		bounds[r.Variable] = r
	}

	outcomes := make([]float64, 0, trials)
	for t := 0; t < trials; t++ {
		sampled := make(map[string]float64, len(ranges))
		for _, r := range ranges {
			sampled[r.Variable] = g.sample(r)
		}

		for _, corr := range correlations {
			v1, ok1 := sampled[corr.Variable1]
			r2, ok2 := bounds[corr.Variable2]
			if !ok1 || !ok2 {
				// Correlations may only reference ranged variables.
				return nil, fmt.Errorf("monte carlo: correlation references unranged variable %q/%q",
					corr.Variable1, corr.Variable2)
			}
			adjusted := sampled[corr.Variable2] + (v1-0.5)*corr.Coefficient
			sampled[corr.Variable2] = clamp(adjusted, r2.Min, r2.Max)
		}

		in := base.Clone()
		for name, value := range sampled {
			entries[name].Apply(&in, value)
		}
		outcomes = append(outcomes, g.calc.Calculate(in).ROI)
	}

	return aggregate(outcomes), nil
}

// sample draws one value from a range's declared distribution.
func (g *Generator) sample(r variables.Range) float64 {
	switch r.Distribution {
	case variables.DistNormal:
		// Box-Muller with mean at the midpoint and the range covering
		// six standard deviations; clamped back into the range.
		mean := (r.Min + r.Max) / 2
		sigma := (r.Max - r.Min) / 6
		u1 := g.rng.Float64()
		for u1 == 0 {
			u1 = g.rng.Float64()
		}
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
		return clamp(mean+z*sigma, r.Min, r.Max)
	case variables.DistTriangular:
		// Inverse CDF with the mode at the midpoint.
		mode := (r.Min + r.Max) / 2
		u := g.rng.Float64()
		span := r.Max - r.Min
		cut := (mode - r.Min) / span
		if u < cut {
			return r.Min + math.Sqrt(u*span*(mode-r.Min))
		}
		return r.Max - math.Sqrt((1-u)*span*(r.Max-mode))
	default:
		return r.Min + g.rng.Float64()*(r.Max-r.Min)
	}
}

// aggregate computes the distribution statistics over the trial outcomes:
// mean, median, population standard deviation, and nearest-rank percentiles.
func aggregate(outcomes []float64) *MonteCarloResult {
	sorted := append([]float64(nil), outcomes...)
	sort.Float64s(sorted)
	n := len(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	variance := 0.0
	for _, v := range sorted {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(n)

	median := sorted[n/2]
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	percentiles := make(map[int]float64, len(percentileLevels))
	for _, p := range percentileLevels {
		idx := p * n / 100
		if idx >= n {
			idx = n - 1
		}
		percentiles[p] = sorted[idx]
	}

	return &MonteCarloResult{
		Trials:      n,
		MeanROI:     mean,
		MedianROI:   median,
		StdDev:      math.Sqrt(variance),
		Percentiles: percentiles,
		MinROI:      sorted[0],
		MaxROI:      sorted[n-1],
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
