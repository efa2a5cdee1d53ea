package sensitivity

import (
	"fmt"
	"math"
	"sort"

	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/variables"
)

// significanceThreshold flags interaction effects above 10 ROI points.
const significanceThreshold = 10.0

// AnalyzeInteractions compares, for each declared pair, the sum of the two
// solo effects at their maxima against the combined effect with both at
// maximum. The difference is the interaction effect; pairs beyond the
// significance threshold are flagged. Output is sorted by |interaction|
// descending.
func (a *Analyzer) AnalyzeInteractions(base returns.Inputs, ranges []variables.Range, pairs []Pair) ([]Interaction, error) {
	bounds := make(map[string]variables.Range, len(ranges))
	entries := make(map[string]variables.Entry, len(ranges))
	for _, r := range ranges {
		entry, err := variables.Lookup(r.Variable)
		if err != nil {
			return nil, fmt.Errorf("interaction: %w", err)
		}
		bounds[r.Variable] = r
		entries[r.Variable] = entry
	}

	baseROI := a.calc.Calculate(base).ROI
	soloAtMax := func(name string) (float64, error) {
		r, ok := bounds[name]
		if !ok {
			return 0, fmt.Errorf("interaction: variable %q has no declared range", name)
		}
		in := base.Clone()
		entries[name].Apply(&in, r.Max)
		return a.calc.Calculate(in).ROI - baseROI, nil
	}

	out := make([]Interaction, 0, len(pairs))
	for _, p := range pairs {
		effect1, err := soloAtMax(p.Variable1)
		if err != nil {
			return nil, err
		}
		effect2, err := soloAtMax(p.Variable2)
		if err != nil {
			return nil, err
		}

		both := base.Clone()
		entries[p.Variable1].Apply(&both, bounds[p.Variable1].Max)
		entries[p.Variable2].Apply(&both, bounds[p.Variable2].Max)
		combined := a.calc.Calculate(both).ROI - baseROI

		independent := effect1 + effect2
		interaction := combined - independent
		out = append(out, Interaction{
			Variable1:         p.Variable1,
			Variable2:         p.Variable2,
			IndependentEffect: independent,
			CombinedEffect:    combined,
			InteractionEffect: interaction,
			Significant:       math.Abs(interaction) > significanceThreshold,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].InteractionEffect) > math.Abs(out[j].InteractionEffect)
	})
	return out, nil
}
