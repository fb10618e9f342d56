package sim

import "github.com/san-kum/popsim/internal/dynamo"

type Result struct {
	Params  dynamo.Parameters
	Samples []dynamo.Sample
	Reason  dynamo.StopReason
}

// Final returns the last emitted sample.
func (r *Result) Final() dynamo.Sample {
	if len(r.Samples) == 0 {
		return dynamo.Sample{}
	}
	return r.Samples[len(r.Samples)-1]
}
