package laplace

import (
	"errors"
	"fmt"
)

// Domain errors for profile integration and solving.
var (
	// ErrDomain indicates the profile left its valid region mid-trace
	// (negative radius, fold-over past MaxPhi, or NaN/Inf state).
	ErrDomain = errors.New("laplace: profile left valid domain")

	// ErrStepTooSmall indicates the adaptive arclength step collapsed
	// below the configured floor without meeting the error tolerance.
	ErrStepTooSmall = errors.New("laplace: adaptive step below minimum")

	// ErrMaxSteps indicates the trace exceeded its step budget before
	// any stop condition fired.
	ErrMaxSteps = errors.New("laplace: step budget exhausted")

	// ErrNoBracket indicates the shooting solver found no sign change
	// for the boundary residual.
	ErrNoBracket = errors.New("laplace: no bracket for boundary residual")

	// ErrMaxIterations indicates root finding exhausted its iteration
	// budget before the residual tolerance was met.
	ErrMaxIterations = errors.New("laplace: iteration budget exhausted")

	// ErrBadParameters indicates invalid physical or solver parameters.
	ErrBadParameters = errors.New("laplace: invalid parameters")
)

// TraceError wraps an integration failure with its location along the
// profile.
type TraceError struct {
	S       float64
	Step    int
	State   State
	Wrapped error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("trace step %d (s=%.6g): %v", e.Step, e.S, e.Wrapped)
}

func (e *TraceError) Unwrap() error {
	return e.Wrapped
}
