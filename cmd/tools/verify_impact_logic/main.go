// Command verify_impact_logic recomputes the engine's reference scenario
// from first principles and compares it against the calculator. Useful as a
// smoke check after formula changes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"impact_engine/pkg/core/returns"
)

func referenceInputs() returns.Inputs {
	return returns.Inputs{
		InitialInvestment:   100000,
		AnnualBenefits:      []float64{40000, 40000, 40000},
		ImplementationCosts: []float64{10000, 0, 0},
		MaintenanceCosts:    []float64{2000, 2000, 2000},
		DiscountRate:        0.10,
		TimeHorizon:         3,
		RiskFactor:          0.2,
	}
}

func main() {
	mode := flag.String("mode", "check", "Mode: check or calculate")
	dataStr := flag.String("data", "", "Optional JSON inputs payload (defaults to the reference scenario)")
	flag.Parse()

	in := referenceInputs()
	if *dataStr != "" {
		if err := json.Unmarshal([]byte(*dataStr), &in); err != nil {
			fmt.Printf("Error unmarshaling inputs: %v\n", err)
			os.Exit(1)
		}
	}

	calc := returns.NewCalculator()
	res := calc.Calculate(in)

	switch *mode {
	case "calculate":
		out, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(out))
	case "check":
		runChecks(calc, in, res)
	default:
		fmt.Printf("Unknown mode: %s\n", *mode)
		os.Exit(1)
	}
}

func runChecks(calc *returns.Calculator, in returns.Inputs, res returns.Results) {
	failed := false
	check := func(name string, got, want, tol float64) {
		if math.Abs(got-want) > tol {
			fmt.Printf("FAIL %-14s got %.6f want %.6f\n", name, got, want)
			failed = true
		} else {
			fmt.Printf("ok   %-14s %.6f\n", name, got)
		}
	}

	// Net flows 28000/38000/38000 discounted at 10%.
	check("npv", res.NPV, 28000/1.1+38000/1.21+38000/1.331-100000, 1e-6)
	// Benefits 120000 against costs 116000.
	check("roi", res.ROI, 4000.0/116000.0*100, 1e-9)
	check("payback", res.PaybackPeriod, 2+34000.0/38000.0, 1e-9)
	check("break_even", res.BreakEvenPoint, 2.9, 1e-9)
	check("confidence", res.Confidence, 0.95, 1e-12)
	check("npv_at_irr", calc.NPVAtRate(in, res.IRR), 0, 1e-3)

	if failed {
		fmt.Println("Error: reference scenario drifted from the documented formulas")
		os.Exit(1)
	}
	fmt.Println("Success: all reference figures match")
}
