package impact

import "math"

// Industry-average ROI by category, in points. Categories without an entry
// fall back to the default.
var industryAverageROI = map[string]float64{
	CategoryOperational: 20,
	CategoryFinancial:   25,
	CategoryStrategic:   15,
	CategoryMarketing:   18,
}

const defaultIndustryROI = 15.0

// benchmark positions a computed ROI against the category's fixed industry
// average. Top quartile is 1.5x the average, bottom quartile 0.6x; the
// percentile rank interpolates linearly inside four bands and clamps to
// [0, 100].
func benchmark(category string, roi float64) BenchmarkComparison {
	avg, ok := industryAverageROI[category]
	if !ok {
		avg = defaultIndustryROI
	}
	top := avg * 1.5
	bottom := avg * 0.6

	var rank float64
	switch {
	case roi <= bottom:
		rank = 25 * roi / bottom
	case roi <= avg:
		rank = 25 + 25*(roi-bottom)/(avg-bottom)
	case roi <= top:
		rank = 50 + 25*(roi-avg)/(top-avg)
	default:
		rank = 75 + 25*(roi-top)/top
	}
	rank = math.Max(0, math.Min(100, rank))

	return BenchmarkComparison{
		Category:        category,
		IndustryAverage: avg,
		TopQuartile:     top,
		BottomQuartile:  bottom,
		PercentileRank:  rank,
		ComputedROI:     roi,
	}
}
