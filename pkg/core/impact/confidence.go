package impact

import (
	"math"
	"strings"

	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/scenario"
	"impact_engine/pkg/core/sensitivity"
)

// blendConfidence averages the opportunity confidence with the calculation
// confidence, folds in the positive-ROI scenario fraction and the
// sensitivity robustness score step by step, applies a 0.9 haircut when
// more than two high-risk factors exist, and clamps to [0.1, 0.95].
func blendConfidence(opp Opportunity, res returns.Results, scenarios *scenario.ScenarioSet, sens *sensitivity.Analysis) float64 {
	conf := (opp.Confidence + res.Confidence) / 2
	conf = (conf + scenarios.Probability.PositiveROI) / 2
	conf = (conf + sens.RobustnessScore) / 2

	highRisk := 0
	for _, level := range sens.RiskAssessment {
		if level == sensitivity.RiskHigh {
			highRisk++
		}
	}
	if highRisk > 2 {
		conf *= 0.9
	}
	return math.Max(0.1, math.Min(0.95, conf))
}

// marketFactors assembles the qualitative commentary: economic conditions
// always, a digital-transformation note on title match, competitive
// pressure for strategic/marketing work, and a regulatory note for
// operational/financial work.
func marketFactors(opp Opportunity, market *MarketData) []MarketFactor {
	factors := make([]MarketFactor, 0, 4)

	economic := MarketFactor{
		Factor:      "Economic conditions",
		Impact:      "neutral",
		Description: "General economic conditions influence realization of projected benefits.",
	}
	if market != nil {
		switch {
		case market.GrowthRate > 0.02:
			economic.Impact = "positive"
			economic.Description = "Above-trend market growth supports the projected benefit stream."
		case market.GrowthRate < 0:
			economic.Impact = "negative"
			economic.Description = "A contracting market puts downward pressure on the projected benefits."
		}
	}
	factors = append(factors, economic)

	title := strings.ToLower(opp.Title)
	if strings.Contains(title, "digital") || strings.Contains(title, "automation") {
		factors = append(factors, MarketFactor{
			Factor:      "Digital transformation trend",
			Impact:      "positive",
			Description: "Sustained industry investment in digital capabilities supports adoption.",
		})
	}

	switch opp.Category {
	case CategoryStrategic, CategoryMarketing:
		factors = append(factors, MarketFactor{
			Factor:      "Competitive pressure",
			Impact:      "negative",
			Description: "Competitor responses can erode the projected advantage over the horizon.",
		})
	case CategoryOperational, CategoryFinancial:
		factors = append(factors, MarketFactor{
			Factor:      "Regulatory environment",
			Impact:      "neutral",
			Description: "Regulatory changes may alter compliance costs embedded in the baseline.",
		})
	}

	return factors
}
