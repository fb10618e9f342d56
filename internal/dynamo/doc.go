// Package dynamo provides core simulation primitives for population dynamics.
//
// The package defines the fundamental types shared by the model, the
// integrator and the analyzer:
//
//   - [Parameters]: the five inputs of a logistic run
//   - [Sample]: one emitted (time, population) record
//   - [Field]: a scalar ODE right-hand side dP/dt = f(t, P)
//   - [Stepper]: a fixed-step numerical integrator
//
// # Example
//
//	p := dynamo.Parameters{GrowthRate: 0.5, CarryingCapacity: 1000, InitialPopulation: 10, MaxTime: 50, StepSize: 0.1}
//	for s := range sim.Run(p) {
//	    fmt.Println(s.Time, s.Population)
//	}
//
// # Preconditions
//
// Nothing in the core validates [Parameters]. Callers check them with
// [Parameters.Validate] at the boundary before simulating.
package dynamo
