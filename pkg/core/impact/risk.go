package impact

import (
	"sort"
	"strings"

	"impact_engine/pkg/core/scenario"
)

// benefitRealizationFloor is the positive-ROI scenario fraction below which
// a benefit-realization risk is raised.
const benefitRealizationFloor = 0.7

// assessRisks derives the risk list from fixed rules over the opportunity
// and the scenario outcomes, sorted by riskScore descending.
func assessRisks(opp Opportunity, scenarios *scenario.ScenarioSet) []RiskEntry {
	risks := make([]RiskEntry, 0, 4)

	if opp.ImplementationDifficulty == DifficultyVeryHigh {
		risks = append(risks, RiskEntry{
			Risk:        "Implementation complexity may cause delays and cost overruns",
			Probability: 0.6,
			Impact:      8,
			Mitigation:  "Break the implementation into phases with go/no-go gates and dedicated program management.",
		})
	}

	if positive := scenarios.Probability.PositiveROI; positive < benefitRealizationFloor {
		risks = append(risks, RiskEntry{
			Risk:        "Projected benefits may not be realized under adverse scenarios",
			Probability: 1 - positive,
			Impact:      7,
			Mitigation:  "Define measurable benefit milestones and review against them quarterly.",
		})
	}

	if opp.Category == CategoryMarketing || opp.Category == CategoryStrategic {
		risks = append(risks, RiskEntry{
			Risk:        "Market conditions may shift before benefits materialize",
			Probability: 0.5,
			Impact:      6,
			Mitigation:  "Re-validate market assumptions at each phase boundary and keep exit options open.",
		})
	}

	title := strings.ToLower(opp.Title)
	if strings.Contains(title, "digital") || strings.Contains(title, "automation") {
		risks = append(risks, RiskEntry{
			Risk:        "Technology adoption may lag behind the implementation schedule",
			Probability: 0.4,
			Impact:      6,
			Mitigation:  "Invest in training and change management alongside the technical rollout.",
		})
	}

	for i := range risks {
		risks[i].RiskScore = risks[i].Probability * risks[i].Impact
	}
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].RiskScore > risks[j].RiskScore
	})
	return risks
}
