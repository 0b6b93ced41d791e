package dynamo

import "errors"

// Domain errors raised at configuration boundaries. Stepping itself never
// fails; non-finite values simply propagate.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrDimensionMismatch indicates a state vector of the wrong length.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)
