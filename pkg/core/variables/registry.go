// Package variables defines the ranged variables the scenario and
// sensitivity layers may perturb, and a registered dispatch table that
// replaces the legacy name-keyed switch. An unrecognized variable name is a
// typed error, never a silent no-op.
package variables

import (
	"errors"
	"fmt"
	"math"

	"impact_engine/pkg/core/returns"
)

// ErrUnknownVariable is returned when a variable name is not registered.
var ErrUnknownVariable = errors.New("unknown variable")

// Distribution selects the Monte Carlo sampling shape for a range.
type Distribution string

const (
	DistUniform    Distribution = "uniform"
	DistNormal     Distribution = "normal"
	DistTriangular Distribution = "triangular"
)

// Kind classifies a variable for the scenario directional table.
type Kind int

const (
	// KindBenefit variables take their range minimum in the conservative
	// scenario and maximum in the optimistic one.
	KindBenefit Kind = iota
	// KindCost variables go the other way: max conservative, min optimistic.
	KindCost
	// KindRate covers discountRate and riskFactor: max conservative,
	// min optimistic.
	KindRate
	// KindHorizon uses min/max directly (min conservative, max optimistic).
	KindHorizon
)

// Registered variable names.
const (
	AnnualBenefits      = "annualBenefits"
	ImplementationCosts = "implementationCosts"
	MaintenanceCosts    = "maintenanceCosts"
	InitialInvestment   = "initialInvestment"
	DiscountRate        = "discountRate"
	TimeHorizon         = "timeHorizon"
	RiskFactor          = "riskFactor"
)

// Range declares the uncertainty interval for one variable.
//
// Values for the yearly-slice variables (annualBenefits,
// implementationCosts, maintenanceCosts) and initialInvestment are
// multipliers on the base assumption, so 1.0 means unchanged. discountRate
// and riskFactor values are absolute fractions, and timeHorizon values are
// absolute years.
type Range struct {
	Variable     string       `json:"variable"`
	Min          float64      `json:"min"`
	Max          float64      `json:"max"`
	Distribution Distribution `json:"distribution"`
}

// Entry binds a variable name to its apply and base-read functions.
type Entry struct {
	Kind  Kind
	Label string
	// Apply writes the value into the inputs in the variable's units.
	Apply func(in *returns.Inputs, value float64)
	// Base reads the variable's current value in the same units.
	Base func(in returns.Inputs) float64
}

func scale(seq []float64, factor float64) []float64 {
	out := make([]float64, len(seq))
	for i, v := range seq {
		out[i] = v * factor
	}
	return out
}

func clampFraction(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

var registry = map[string]Entry{
	AnnualBenefits: {
		Kind:  KindBenefit,
		Label: "Annual Benefits",
		Apply: func(in *returns.Inputs, v float64) { in.AnnualBenefits = scale(in.AnnualBenefits, v) },
		Base:  func(returns.Inputs) float64 { return 1.0 },
	},
	ImplementationCosts: {
		Kind:  KindCost,
		Label: "Implementation Costs",
		Apply: func(in *returns.Inputs, v float64) { in.ImplementationCosts = scale(in.ImplementationCosts, v) },
		Base:  func(returns.Inputs) float64 { return 1.0 },
	},
	MaintenanceCosts: {
		Kind:  KindCost,
		Label: "Maintenance Costs",
		Apply: func(in *returns.Inputs, v float64) { in.MaintenanceCosts = scale(in.MaintenanceCosts, v) },
		Base:  func(returns.Inputs) float64 { return 1.0 },
	},
	InitialInvestment: {
		Kind:  KindCost,
		Label: "Initial Investment",
		Apply: func(in *returns.Inputs, v float64) { in.InitialInvestment *= v },
		Base:  func(returns.Inputs) float64 { return 1.0 },
	},
	DiscountRate: {
		Kind:  KindRate,
		Label: "Discount Rate",
		Apply: func(in *returns.Inputs, v float64) { in.DiscountRate = clampFraction(v) },
		Base:  func(in returns.Inputs) float64 { return in.DiscountRate },
	},
	RiskFactor: {
		Kind:  KindRate,
		Label: "Risk Factor",
		Apply: func(in *returns.Inputs, v float64) { in.RiskFactor = clampFraction(v) },
		Base:  func(in returns.Inputs) float64 { return in.RiskFactor },
	},
	TimeHorizon: {
		Kind:  KindHorizon,
		Label: "Time Horizon",
		Apply: func(in *returns.Inputs, v float64) {
			h := int(math.Round(v))
			if h < 1 {
				h = 1
			}
			in.TimeHorizon = h
		},
		Base: func(in returns.Inputs) float64 { return float64(in.TimeHorizon) },
	},
}

// Lookup resolves a variable name to its registry entry.
func Lookup(name string) (Entry, error) {
	e, ok := registry[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return e, nil
}

// Apply sets the named variable on a copy-safe inputs pointer.
func Apply(in *returns.Inputs, name string, value float64) error {
	e, err := Lookup(name)
	if err != nil {
		return err
	}
	e.Apply(in, value)
	return nil
}

// BaseValue reads the named variable's current value from the inputs.
func BaseValue(in returns.Inputs, name string) (float64, error) {
	e, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return e.Base(in), nil
}

// Label returns the human-readable label for a registered name, or the name
// itself when unregistered (labels are presentation only).
func Label(name string) string {
	if e, ok := registry[name]; ok {
		return e.Label
	}
	return name
}
