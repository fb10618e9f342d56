package metrics

import (
	"math"

	"github.com/san-kum/popsim/internal/analysis"
	"github.com/san-kum/popsim/internal/dynamo"
)

// AnalyticError is the largest relative deviation of the integrated
// population from the closed-form logistic solution.
type AnalyticError struct {
	name     string
	params   dynamo.Parameters
	maxError float64
}

func NewAnalyticError(params dynamo.Parameters) *AnalyticError {
	return &AnalyticError{
		name:   "analytic_error",
		params: params,
	}
}

func (a *AnalyticError) Name() string { return a.name }

func (a *AnalyticError) OnSample(s dynamo.Sample) {
	exact := analysis.Exact(a.params, s.Time)
	if exact == 0 {
		return
	}
	a.maxError = math.Max(a.maxError, math.Abs(s.Population-exact)/math.Abs(exact))
}

func (a *AnalyticError) Value() float64 { return a.maxError }

func (a *AnalyticError) Reset() { a.maxError = 0 }
