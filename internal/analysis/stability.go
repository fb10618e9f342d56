package analysis

import "github.com/san-kum/popsim/internal/dynamo"

// Equilibrium is a fixed point of dP/dt with its linearised slope.
// A negative slope attracts nearby populations, a positive one repels them.
type Equilibrium struct {
	Population float64
	Slope      float64
}

func (e Equilibrium) Stable() bool { return e.Slope < 0 }

func (e Equilibrium) String() string {
	if e.Stable() {
		return "stable"
	}
	return "unstable"
}

// Slope is d/dP of r·P·(1 − P/K), i.e. r·(1 − 2P/K).
func Slope(pop float64, params dynamo.Parameters) float64 {
	return params.GrowthRate * (1.0 - 2.0*pop/params.CarryingCapacity)
}

// Stability classifies the two equilibria 0 and K.
func Stability(params dynamo.Parameters) [2]Equilibrium {
	k := params.CarryingCapacity
	return [2]Equilibrium{
		{Population: 0, Slope: Slope(0, params)},
		{Population: k, Slope: Slope(k, params)},
	}
}
