package adaptive

import "errors"

var (
	// ErrInvalidFilterOrder reports a filter order that is not positive or
	// exceeds the recording length.
	ErrInvalidFilterOrder = errors.New("adaptive: invalid filter order")

	// ErrInvalidStepSize reports a non-positive LMS step size.
	ErrInvalidStepSize = errors.New("adaptive: step size must be positive")

	// ErrInvalidForgettingFactor reports an RLS forgetting factor outside
	// [0.99, 1.0].
	ErrInvalidForgettingFactor = errors.New("adaptive: forgetting factor must be in [0.99, 1.0]")

	// ErrInvalidDelta reports a non-positive RLS initialization scale.
	ErrInvalidDelta = errors.New("adaptive: delta must be positive")

	// ErrDimensionMismatch reports matrices whose sample counts disagree.
	ErrDimensionMismatch = errors.New("adaptive: dimension mismatch")

	// ErrNoReferences reports an empty reference matrix.
	ErrNoReferences = errors.New("adaptive: reference matrix must contain at least one channel")
)
