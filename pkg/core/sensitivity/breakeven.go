package sensitivity

import (
	"fmt"
	"math"

	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/variables"
)

const (
	breakEvenMaxIter   = 50
	breakEvenTolerance = 0.01
	breakEvenSpan      = 10.0
)

// FindBreakEvenValue bisects the named variable over [0, 10*current] for
// the value where ROI crosses zero, up to 50 iterations, stopping once
// |ROI| < 0.01. The search assumes the ROI response is monotonic on the
// interval, which is not guaranteed for every variable; when the interval
// does not bracket a sign change the -1 sentinel is returned instead.
func (a *Analyzer) FindBreakEvenValue(base returns.Inputs, variable string, current float64) (float64, error) {
	entry, err := variables.Lookup(variable)
	if err != nil {
		return 0, fmt.Errorf("break-even: %w", err)
	}

	roiAt := func(v float64) float64 {
		in := base.Clone()
		entry.Apply(&in, v)
		return a.calc.Calculate(in).ROI
	}

	lo, hi := 0.0, breakEvenSpan*current
	fLo, fHi := roiAt(lo), roiAt(hi)
	if math.Abs(fLo) < breakEvenTolerance {
		return lo, nil
	}
	if math.Abs(fHi) < breakEvenTolerance {
		return hi, nil
	}
	if fLo*fHi > 0 {
		return -1, nil
	}

	mid := (lo + hi) / 2
	for i := 0; i < breakEvenMaxIter; i++ {
		mid = (lo + hi) / 2
		fMid := roiAt(mid)
		if math.Abs(fMid) < breakEvenTolerance {
			return mid, nil
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo, fLo = mid, fMid
		}
	}
	return mid, nil
}
