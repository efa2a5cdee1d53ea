// Package impact exposes the engine's five entry points over HTTP. The
// handlers are thin: decode, delegate to the core, encode. Persistence and
// caching are optional collaborators wired at startup.
package impact

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"impact_engine/pkg/core/cache"
	coreimpact "impact_engine/pkg/core/impact"
	"impact_engine/pkg/core/returns"
	"impact_engine/pkg/core/scenario"
	"impact_engine/pkg/core/sensitivity"
	"impact_engine/pkg/core/store"
	"impact_engine/pkg/core/variables"
)

var (
	calculator    *returns.Calculator
	generator     *scenario.Generator
	analyzer      *sensitivity.Analyzer
	orchestrator  *coreimpact.Orchestrator
	resultCache   cache.Repository
	repo          *store.ImpactRepo
	defaultTrials int
)

// InitHandler wires the engine components into the handlers. repo may be
// nil when no database is configured; trials <= 0 falls back to the
// scenario package default.
func InitHandler(rng *rand.Rand, c cache.Repository, r *store.ImpactRepo, trials int) {
	calculator = returns.NewCalculator()
	generator = scenario.NewGenerator(rng)
	analyzer = sensitivity.NewAnalyzer()
	orchestrator = coreimpact.NewOrchestrator(rng)
	resultCache = c
	repo = r
	defaultTrials = trials
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// HandleROI computes the return metrics for one assumption set.
func HandleROI(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var in returns.Inputs
	if !decode(w, r, &in) {
		return
	}
	respond(w, calculator.Calculate(in))
}

// ScenarioRequest carries a base case plus its uncertainty ranges.
type ScenarioRequest struct {
	Base   returns.Inputs    `json:"base"`
	Ranges []variables.Range `json:"ranges"`
}

// HandleScenarios derives the conservative/realistic/optimistic variants.
func HandleScenarios(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ScenarioRequest
	if !decode(w, r, &req) {
		return
	}
	set, err := generator.GenerateScenarios(req.Base, req.Ranges)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	respond(w, set)
}

// MonteCarloRequest adds correlations and a trial count to a scenario
// request. Trials <= 0 selects the engine default.
type MonteCarloRequest struct {
	Base         returns.Inputs         `json:"base"`
	Ranges       []variables.Range      `json:"ranges"`
	Correlations []scenario.Correlation `json:"correlations"`
	Trials       int                    `json:"trials"`
}

// HandleMonteCarlo runs the correlated simulation.
func HandleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req MonteCarloRequest
	if !decode(w, r, &req) {
		return
	}
	trials := req.Trials
	if trials <= 0 {
		trials = defaultTrials
	}
	start := time.Now()
	res, err := generator.GenerateCorrelatedScenarios(req.Base, req.Ranges, req.Correlations, trials)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	fmt.Printf("[IMPACT] Monte Carlo: %d trials in %v\n", res.Trials, time.Since(start))
	respond(w, res)
}

// HandleSensitivity runs the single-variable analysis plus tornado data.
func HandleSensitivity(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ScenarioRequest
	if !decode(w, r, &req) {
		return
	}
	analysis, err := analyzer.Analyze(req.Base, req.Ranges)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	respond(w, struct {
		*sensitivity.Analysis
		Tornado []sensitivity.TornadoEntry `json:"tornado"`
	}{analysis, analyzer.TornadoData(analysis.Factors)})
}

// ComprehensiveRequest carries the orchestrator's collaborator-supplied
// records.
type ComprehensiveRequest struct {
	Opportunity     coreimpact.Opportunity     `json:"opportunity"`
	BusinessMetrics coreimpact.BusinessMetrics `json:"business_metrics"`
	MarketData      *coreimpact.MarketData     `json:"market_data,omitempty"`
}

// HandleComprehensive runs the full orchestrated analysis. Results are
// cached by opportunity ID and, when a database is configured, persisted.
func HandleComprehensive(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req ComprehensiveRequest
	if !decode(w, r, &req) {
		return
	}

	cacheKey := "impact:" + req.Opportunity.ID.String()
	if cached, ok := resultCache.Get(cacheKey); ok {
		fmt.Printf("[IMPACT] Cache hit for opportunity %s\n", req.Opportunity.ID)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, cached)
		return
	}

	analysis, err := orchestrator.PerformComprehensiveImpactAnalysis(req.Opportunity, req.BusinessMetrics, req.MarketData)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := resultCache.Set(cacheKey, string(payload)); err != nil {
		fmt.Printf("[WARNING] Failed to cache analysis: %v\n", err)
	}
	if repo != nil {
		if err := repo.Save(context.Background(), analysis); err != nil {
			fmt.Printf("[WARNING] Failed to persist analysis: %v\n", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}
