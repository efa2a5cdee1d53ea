package variables

import (
	"errors"
	"math"
	"testing"

	"impact_engine/pkg/core/returns"
)

func TestApplyMultiplierVariables(t *testing.T) {
	in := returns.Inputs{
		InitialInvestment:   100000,
		AnnualBenefits:      []float64{40000, 40000},
		ImplementationCosts: []float64{10000},
		DiscountRate:        0.10,
		TimeHorizon:         3,
	}

	work := in.Clone()
	if err := Apply(&work, AnnualBenefits, 1.5); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if work.AnnualBenefits[0] != 60000 || work.AnnualBenefits[1] != 60000 {
		t.Errorf("benefit scaling wrong: %v", work.AnnualBenefits)
	}
	// Base case untouched.
	if in.AnnualBenefits[0] != 40000 {
		t.Error("base inputs mutated through clone")
	}

	if err := Apply(&work, InitialInvestment, 0.5); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if work.InitialInvestment != 50000 {
		t.Errorf("investment scaling wrong: %f", work.InitialInvestment)
	}
}

func TestApplyAbsoluteVariables(t *testing.T) {
	in := returns.Inputs{DiscountRate: 0.10, RiskFactor: 0.2, TimeHorizon: 3}

	if err := Apply(&in, DiscountRate, 1.4); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if in.DiscountRate != 1.0 {
		t.Errorf("discount rate should clamp to 1.0, got %f", in.DiscountRate)
	}

	if err := Apply(&in, TimeHorizon, 0.2); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if in.TimeHorizon != 1 {
		t.Errorf("horizon floor is 1 year, got %d", in.TimeHorizon)
	}

	base, err := BaseValue(in, RiskFactor)
	if err != nil || math.Abs(base-0.2) > 1e-12 {
		t.Errorf("risk factor base expected 0.2, got %f (%v)", base, err)
	}
}

func TestUnknownVariableIsTypedError(t *testing.T) {
	in := returns.Inputs{TimeHorizon: 1}
	err := Apply(&in, "marketShare", 1.0)
	if !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
	if _, err := BaseValue(in, "marketShare"); !errors.Is(err, ErrUnknownVariable) {
		t.Errorf("expected ErrUnknownVariable, got %v", err)
	}
}

func TestKindTable(t *testing.T) {
	kinds := map[string]Kind{
		AnnualBenefits:      KindBenefit,
		ImplementationCosts: KindCost,
		MaintenanceCosts:    KindCost,
		InitialInvestment:   KindCost,
		DiscountRate:        KindRate,
		RiskFactor:          KindRate,
		TimeHorizon:         KindHorizon,
	}
	for name, want := range kinds {
		e, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if e.Kind != want {
			t.Errorf("%s: kind %d, want %d", name, e.Kind, want)
		}
	}
}
