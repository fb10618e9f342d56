package integrators

import "github.com/san-kum/popsim/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta method with a fixed step.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Field, t, x, dt float64) float64 {
	k1 := dt * f.Derive(t, x)
	k2 := dt * f.Derive(t+dt/2.0, x+k1/2.0)
	k3 := dt * f.Derive(t+dt/2.0, x+k2/2.0)
	k4 := dt * f.Derive(t+dt, x+k3)

	return x + (k1+2*k2+2*k3+k4)/6.0
}
