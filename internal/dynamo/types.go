package dynamo

import (
	"fmt"
	"math"
)

// SaturationFraction is the share of carrying capacity at which a run stops.
const SaturationFraction = 0.999

// maxSteps bounds t_max/dt so that the step count fits in an int.
const maxSteps = float64(math.MaxInt)

type Parameters struct {
	GrowthRate        float64
	CarryingCapacity  float64
	InitialPopulation float64
	MaxTime           float64
	StepSize          float64
}

// Steps is the number of whole steps that fit in the horizon. The
// fractional remainder is never simulated. Only meaningful for validated
// parameters.
func (p Parameters) Steps() int {
	return int(p.MaxTime / p.StepSize)
}

// SaturationLevel is the population at which a run terminates early.
func (p Parameters) SaturationLevel() float64 {
	return p.CarryingCapacity * SaturationFraction
}

func (p Parameters) String() string {
	return fmt.Sprintf("r=%.4f K=%.0f P0=%.0f t_max=%.2f dt=%.4f",
		p.GrowthRate, p.CarryingCapacity, p.InitialPopulation, p.MaxTime, p.StepSize)
}

// Validate checks the boundary contract: every field must be strictly
// positive and finite. It reports the first offending field.
func (p Parameters) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"growth_rate", p.GrowthRate},
		{"carrying_capacity", p.CarryingCapacity},
		{"initial_population", p.InitialPopulation},
		{"max_time", p.MaxTime},
		{"step_size", p.StepSize},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ParameterError{Name: f.name, Value: f.value, Wrapped: ErrNotFinite}
		}
		if f.value <= 0 {
			return &ParameterError{Name: f.name, Value: f.value, Wrapped: ErrParameterBounds}
		}
	}
	if p.MaxTime/p.StepSize >= maxSteps {
		return &ParameterError{Name: "max_time", Value: p.MaxTime, Wrapped: ErrParameterBounds}
	}
	return nil
}

// AboveCapacity reports whether the initial population starts at or above
// K. Such runs are legal but decline toward K instead of growing.
func (p Parameters) AboveCapacity() bool {
	return p.InitialPopulation >= p.CarryingCapacity
}

type Sample struct {
	Time              float64
	Population        float64
	GrowthRate        float64
	PercentOfCapacity float64
}

// Field is the right-hand side of a scalar ODE dx/dt = f(t, x).
type Field interface {
	Derive(t, x float64) float64
}

// FieldFunc adapts a plain function to [Field].
type FieldFunc func(t, x float64) float64

func (f FieldFunc) Derive(t, x float64) float64 { return f(t, x) }

type Stepper interface {
	Step(f Field, t, x, dt float64) float64
}

type Observer interface {
	OnSample(s Sample)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// StopReason says why a driving loop ended.
type StopReason int

const (
	Exhausted StopReason = iota
	Saturated
	Aborted
)

func (r StopReason) String() string {
	switch r {
	case Saturated:
		return "saturated"
	case Aborted:
		return "aborted"
	default:
		return "exhausted"
	}
}
