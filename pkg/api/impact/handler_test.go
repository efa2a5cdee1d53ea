package impact

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"impact_engine/pkg/core/cache"
	coreimpact "impact_engine/pkg/core/impact"
	"impact_engine/pkg/core/returns"
)

func setup() {
	InitHandler(rand.New(rand.NewSource(1)), cache.NewMemory(), nil, 200)
}

func post(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleROI(t *testing.T) {
	setup()
	rec := post(t, HandleROI, returns.Inputs{
		InitialInvestment:   100000,
		AnnualBenefits:      []float64{40000, 40000, 40000},
		ImplementationCosts: []float64{10000, 0, 0},
		MaintenanceCosts:    []float64{2000, 2000, 2000},
		DiscountRate:        0.10,
		TimeHorizon:         3,
		RiskFactor:          0.2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res returns.Results
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.TotalReturn != 4000 {
		t.Errorf("total return expected 4000, got %f", res.TotalReturn)
	}
}

func TestHandleSensitivityRejectsUnknownVariable(t *testing.T) {
	setup()
	rec := post(t, HandleSensitivity, map[string]interface{}{
		"base":   returns.Inputs{InitialInvestment: 1000, TimeHorizon: 1},
		"ranges": []map[string]interface{}{{"variable": "weather", "min": 0, "max": 1}},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for unknown variable, got %d", rec.Code)
	}
}

func TestHandleComprehensiveUsesCache(t *testing.T) {
	setup()
	req := ComprehensiveRequest{
		Opportunity: coreimpact.Opportunity{
			ID:                       uuid.New(),
			Title:                    "Invoice automation",
			Category:                 coreimpact.CategoryOperational,
			EstimatedRevenueImpact:   50000,
			EstimatedCostSavings:     30000,
			EstimatedInvestment:      120000,
			ImplementationDifficulty: coreimpact.DifficultyMedium,
			Confidence:               0.8,
		},
		BusinessMetrics: coreimpact.BusinessMetrics{AnnualRevenue: 2000000},
	}

	first := post(t, HandleComprehensive, req)
	if first.Code != http.StatusOK {
		t.Fatalf("status %d: %s", first.Code, first.Body.String())
	}
	second := post(t, HandleComprehensive, req)
	if second.Code != http.StatusOK {
		t.Fatalf("status %d: %s", second.Code, second.Body.String())
	}
	// The cached body is the exact bytes of the first computation, so the
	// randomly assigned analysis ID must match.
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("second request should be served from cache")
	}
}

func TestHandleBadJSON(t *testing.T) {
	setup()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	HandleROI(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", rec.Code)
	}
}
