// Package analysis provides closed-form results for the logistic model.
//
// Nothing here iterates; every function is evaluated directly from
// [dynamo.Parameters]:
//
//   - [Analyze]: equilibria, half-capacity time, maximum growth rate
//   - [Exact]: the analytic trajectory P(t)
//   - [SaturationTime]: when P(t) crosses the early-exit level
//   - [RateCurve]: dP/dt sampled over [0, K] for phase-line plots
//   - [Stability]: linearised slope and stability of each equilibrium
//
// # Half-capacity time
//
// The half-capacity time is undefined when P0 is already at or past K/2.
// [Facts.HalfCapacityTime] reports that with ok == false instead of a NaN
// or negative value:
//
//	if t, ok := analysis.Analyze(p).HalfCapacityTime(); ok {
//	    fmt.Printf("K/2 reached at t=%.2f\n", t)
//	}
package analysis
