package integrators

import (
	"testing"

	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/physics"
)

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	f := physics.NewLogistic(dynamo.Parameters{GrowthRate: 0.5, CarryingCapacity: 1000})
	x := 10.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(f, 0, x, 0.01)
		if x > 990 {
			x = 10.0
		}
	}
}

func BenchmarkRK4_FieldFunc(b *testing.B) {
	integ := NewRK4()
	params := dynamo.Parameters{GrowthRate: 0.5, CarryingCapacity: 1000}
	f := dynamo.FieldFunc(func(t, x float64) float64 { return physics.GrowthRate(x, params) })
	x := 10.0

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(f, 0, x, 0.01)
		if x > 990 {
			x = 10.0
		}
	}
}
