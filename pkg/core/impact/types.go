// Package impact orchestrates the full financial-impact analysis: it builds
// calculator inputs from an opportunity and baseline business metrics,
// drives the scenario and sensitivity layers, and derives risk, benchmark,
// and confidence summaries.
package impact

import (
	"time"

	"github.com/google/uuid"

	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/scenario"
	"impact_engine/pkg/core/sensitivity"
)

// Implementation difficulty tiers.
const (
	DifficultyLow      = "low"
	DifficultyMedium   = "medium"
	DifficultyHigh     = "high"
	DifficultyVeryHigh = "very_high"
)

// Opportunity categories with dedicated handling.
const (
	CategoryOperational = "operational"
	CategoryFinancial   = "financial"
	CategoryStrategic   = "strategic"
	CategoryMarketing   = "marketing"
)

// Opportunity is a proposed improvement supplied by the host system. The
// engine performs no shape validation beyond numeric guards; malformed
// records are the data layer's responsibility.
type Opportunity struct {
	ID                       uuid.UUID `json:"id"`
	Title                    string    `json:"title"`
	Category                 string    `json:"category"`
	EstimatedRevenueImpact   float64   `json:"estimated_revenue_impact"` // annual, money
	EstimatedCostSavings     float64   `json:"estimated_cost_savings"`   // annual, money
	EstimatedInvestment      float64   `json:"estimated_investment"`     // money
	ImplementationDifficulty string    `json:"implementation_difficulty"`
	Confidence               float64   `json:"confidence"` // 0-1
}

// BusinessMetrics is the baseline the opportunity is evaluated against.
type BusinessMetrics struct {
	AnnualRevenue float64 `json:"annual_revenue"`
	AnnualCosts   float64 `json:"annual_costs"`
	EmployeeCount int     `json:"employee_count"`
	Industry      string  `json:"industry"`
}

// MarketData optionally colors the qualitative market commentary.
type MarketData struct {
	GrowthRate           float64 `json:"growth_rate"` // fraction
	CompetitiveIntensity string  `json:"competitive_intensity"`
}

// RiskEntry is one row of the derived risk-assessment list.
type RiskEntry struct {
	Risk        string  `json:"risk"`
	Probability float64 `json:"probability"` // 0-1
	Impact      float64 `json:"impact"`      // 1-10 severity
	Mitigation  string  `json:"mitigation"`
	RiskScore   float64 `json:"risk_score"` // probability * impact
}

// BenchmarkComparison positions the computed ROI against a fixed
// industry-average table for the opportunity's category.
type BenchmarkComparison struct {
	Category          string  `json:"category"`
	IndustryAverage   float64 `json:"industry_average"`    // ROI points
	TopQuartile       float64 `json:"top_quartile"`        // 1.5x average
	BottomQuartile    float64 `json:"bottom_quartile"`     // 0.6x average
	PercentileRank    float64 `json:"percentile_rank"`     // 0-100
	ComputedROI       float64 `json:"computed_roi"`        // points
}

// MarketFactor is one qualitative commentary entry.
type MarketFactor struct {
	Factor      string `json:"factor"`
	Impact      string `json:"impact"` // positive / neutral / negative
	Description string `json:"description"`
}

// ComprehensiveImpactAnalysis aggregates every engine output for one
// opportunity. All fields are plain data owned by the caller.
type ComprehensiveImpactAnalysis struct {
	AnalysisID     uuid.UUID                `json:"analysis_id"`
	OpportunityID  uuid.UUID                `json:"opportunity_id"`
	Returns        returns.Results          `json:"returns"`
	Scenarios      *scenario.ScenarioSet    `json:"scenarios"`
	Sensitivity    *sensitivity.Analysis    `json:"sensitivity"`
	RiskAssessment []RiskEntry              `json:"risk_assessment"` // sorted by RiskScore desc
	Benchmark      BenchmarkComparison      `json:"benchmark"`
	MarketFactors  []MarketFactor           `json:"market_factors"`
	Confidence     float64                  `json:"confidence"` // blended, 0.1-0.95
	Methodology    string                   `json:"methodology"`
	Assumptions    []string                 `json:"assumptions"`
	GeneratedAt    time.Time                `json:"generated_at"`
}
