package sim

import (
	"context"

	"github.com/san-kum/popsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent simulations concurrently. Runs share no state,
// so the only coordination is collecting results.
type Ensemble struct {
	newStepper func() dynamo.Stepper
	workers    int
}

func NewEnsemble(newStepper func() dynamo.Stepper, workers int) *Ensemble {
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{newStepper: newStepper, workers: workers}
}

// Run simulates every parameter set and returns results in input order.
// The first failing run cancels the rest.
func (e *Ensemble) Run(ctx context.Context, sets []dynamo.Parameters) ([]*Result, error) {
	results := make([]*Result, len(sets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, params := range sets {
		g.Go(func() error {
			res, err := New(e.newStepper()).Collect(ctx, params)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
