package physics

import (
	"fmt"

	"github.com/san-kum/popsim/internal/dynamo"
)

// GrowthRate evaluates dP/dt = r*P*(1 - P/K). It is negative above K and
// zero at both equilibria.
func GrowthRate(pop float64, params dynamo.Parameters) float64 {
	return params.GrowthRate * pop * (1.0 - pop/params.CarryingCapacity)
}

// Logistic is the logistic growth equation as an integrable field.
type Logistic struct {
	R float64
	K float64
}

var _ dynamo.Configurable = (*Logistic)(nil)

func NewLogistic(params dynamo.Parameters) *Logistic {
	return &Logistic{R: params.GrowthRate, K: params.CarryingCapacity}
}

// Derive ignores t; the equation is autonomous.
func (l *Logistic) Derive(t, pop float64) float64 {
	return l.R * pop * (1.0 - pop/l.K)
}

// Apply copies the field's r and K into params.
func (l *Logistic) Apply(params dynamo.Parameters) dynamo.Parameters {
	params.GrowthRate = l.R
	params.CarryingCapacity = l.K
	return params
}

func (l *Logistic) GetParams() map[string]float64 {
	return map[string]float64{
		"r": l.R,
		"k": l.K,
	}
}

func (l *Logistic) SetParam(name string, value float64) error {
	switch name {
	case "r":
		if value <= 0 {
			return &dynamo.ParameterError{Name: "growth_rate", Value: value, Wrapped: dynamo.ErrParameterBounds}
		}
		l.R = value
	case "k":
		if value <= 0 {
			return &dynamo.ParameterError{Name: "carrying_capacity", Value: value, Wrapped: dynamo.ErrParameterBounds}
		}
		l.K = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
