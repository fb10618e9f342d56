// Package physics provides the population model for simulation.
//
// [GrowthRate] is the pure logistic right-hand side. [Logistic] wraps the
// same equation as a [dynamo.Field] so it can be handed to any
// [dynamo.Stepper], and implements [dynamo.Configurable] so the live view
// can retune r and K between runs:
//
//	f := physics.NewLogistic(params)
//	next := integrators.NewRK4().Step(f, t, pop, dt)
package physics
