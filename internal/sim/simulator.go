package sim

import (
	"context"
	"iter"

	"github.com/san-kum/popsim/internal/dynamo"
	"github.com/san-kum/popsim/internal/integrators"
	"github.com/san-kum/popsim/internal/physics"
)

// Run integrates the logistic equation for params with RK4 and yields one
// sample per accepted step. Params must already be validated.
func Run(params dynamo.Parameters) iter.Seq[dynamo.Sample] {
	return New(integrators.NewRK4()).Run(params)
}

// maxPrealloc caps the sample buffer Collect reserves up front; most runs
// saturate long before the horizon.
const maxPrealloc = 1 << 14

type Simulator struct {
	stepper   dynamo.Stepper
	observers []dynamo.Observer
}

func New(stepper dynamo.Stepper) *Simulator {
	return &Simulator{
		stepper:   stepper,
		observers: make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Run returns the lazy sample sequence for params. Each range over the
// sequence starts again from P0 with its own state; a consumer that stops
// ranging ends the integration at once.
func (s *Simulator) Run(params dynamo.Parameters) iter.Seq[dynamo.Sample] {
	return func(yield func(dynamo.Sample) bool) {
		s.drive(params, yield)
	}
}

// drive is the stepping loop. The sample for step i is taken from the
// pre-update state; a saturated sample is the last one.
func (s *Simulator) drive(params dynamo.Parameters, yield func(dynamo.Sample) bool) dynamo.StopReason {
	f := physics.NewLogistic(params)
	steps := params.Steps()
	limit := params.SaturationLevel()

	t := 0.0
	pop := params.InitialPopulation

	for i := 0; i <= steps; i++ {
		sample := dynamo.Sample{
			Time:              t,
			Population:        pop,
			GrowthRate:        physics.GrowthRate(pop, params),
			PercentOfCapacity: pop / params.CarryingCapacity * 100.0,
		}
		if !yield(sample) {
			return dynamo.Aborted
		}

		if pop >= limit {
			return dynamo.Saturated
		}
		if i == steps {
			break
		}

		pop = s.stepper.Step(f, t, pop, params.StepSize)
		t += params.StepSize
	}

	return dynamo.Exhausted
}

// Collect drains the sequence into a Result, notifying observers for every
// sample. It stops with ctx.Err() if ctx is canceled mid-run.
func (s *Simulator) Collect(ctx context.Context, params dynamo.Parameters) (*Result, error) {
	result := &Result{
		Params:  params,
		Samples: make([]dynamo.Sample, 0, min(params.Steps()+1, maxPrealloc)),
	}

	var ctxErr error
	result.Reason = s.drive(params, func(sample dynamo.Sample) bool {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			return false
		default:
		}

		for _, obs := range s.observers {
			obs.OnSample(sample)
		}
		result.Samples = append(result.Samples, sample)
		return true
	})

	if ctxErr != nil {
		return result, ctxErr
	}
	return result, nil
}
