package analysis

import (
	"math"

	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/physics"
)

// Facts are the closed-form properties of one parameter set.
type Facts struct {
	Equilibria          [2]float64
	MaxGrowthRate       float64
	MaxGrowthPopulation float64

	halfCapacityTime float64
	hasHalfCapacity  bool
}

// HalfCapacityTime returns the time at which the population reaches K/2.
// ok is false when that moment is not in the future of t=0.
func (f Facts) HalfCapacityTime() (t float64, ok bool) {
	return f.halfCapacityTime, f.hasHalfCapacity
}

// Analyze derives the static facts of params without iterating.
func Analyze(params dynamo.Parameters) Facts {
	k := params.CarryingCapacity
	peak := k / 2.0

	facts := Facts{
		Equilibria:          [2]float64{0, k},
		MaxGrowthPopulation: peak,
		MaxGrowthRate:       physics.GrowthRate(peak, params),
	}

	if arg := k/params.InitialPopulation - 1.0; arg > 0 {
		if t := math.Log(arg) / params.GrowthRate; t > 0 {
			facts.halfCapacityTime = t
			facts.hasHalfCapacity = true
		}
	}

	return facts
}

// Exact is the analytic solution P(t) = K / (1 + ((K-P0)/P0) e^(-rt)).
func Exact(params dynamo.Parameters, t float64) float64 {
	k, p0 := params.CarryingCapacity, params.InitialPopulation
	return k / (1.0 + (k-p0)/p0*math.Exp(-params.GrowthRate*t))
}

// SaturationTime is the analytic time at which P reaches the early-exit
// level. ok is false when P0 already starts at or above it.
func SaturationTime(params dynamo.Parameters) (float64, bool) {
	k, p0 := params.CarryingCapacity, params.InitialPopulation
	level := params.SaturationLevel()
	if p0 >= level {
		return 0, false
	}
	return math.Log((k-p0)/p0*level/(k-level)) / params.GrowthRate, true
}

// RatePoint is one (population, dP/dt) pair on the phase line.
type RatePoint struct {
	Population float64
	Rate       float64
}

// RateCurve samples dP/dt at n+1 evenly spaced populations over [0, K].
func RateCurve(params dynamo.Parameters, n int) []RatePoint {
	if n < 1 {
		n = 1
	}
	points := make([]RatePoint, n+1)
	for i := 0; i <= n; i++ {
		pop := params.CarryingCapacity * float64(i) / float64(n)
		points[i] = RatePoint{Population: pop, Rate: physics.GrowthRate(pop, params)}
	}
	return points
}
