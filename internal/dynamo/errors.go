package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for boundary validation.
var (
	// ErrParameterBounds indicates a parameter is zero or negative.
	ErrParameterBounds = errors.New("dynamo: parameter must be positive")

	// ErrNotFinite indicates a parameter is NaN or infinite.
	ErrNotFinite = errors.New("dynamo: parameter must be finite")

	// ErrUnknownParam indicates a SetParam call with an unsupported name.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)

// ParameterError wraps a validation failure with the offending field.
type ParameterError struct {
	Name    string
	Value   float64
	Wrapped error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s (%s = %g)", e.Wrapped.Error(), e.Name, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}
