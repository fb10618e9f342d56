package metrics

import "github.com/san-kum/popsim/internal/dynamo"

// Metric is a named observer that folds the sample stream into one value.
type Metric interface {
	dynamo.Observer
	Name() string
	Value() float64
	Reset()
}

// Defaults returns the metrics reported after every run.
func Defaults(params dynamo.Parameters) []Metric {
	return []Metric{
		NewPeakGrowth(),
		NewSaturation(params),
		NewAnalyticError(params),
	}
}
