package shoot

import (
	"fmt"

	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/shape"
)

// Phase is the stage the solver reached.
type Phase int

const (
	Initialized Phase = iota
	Bracketing
	Refining
	Converged
	Failed
)

func (p Phase) String() string {
	switch p {
	case Initialized:
		return "initialized"
	case Bracketing:
		return "bracketing"
	case Refining:
		return "refining"
	case Converged:
		return "converged"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Solution is a converged droplet shape. The profile is dimensional
// (meters) and owned by the caller; the solver never mutates it after
// returning.
type Solution struct {
	Profile      []laplace.ProfilePoint
	ApexRadius   float64 // meters
	Bond         float64
	ContactAngle float64 // radians
	Residual     float64
	Iterations   int
	Phase        Phase
	Metrics      map[string]float64
}

func (s *Solution) Volume() float64      { return shape.Volume(s.Profile) }
func (s *Solution) SurfaceArea() float64 { return shape.SurfaceArea(s.Profile) }
func (s *Solution) MaxRadius() float64   { return shape.MaxRadius(s.Profile) }
func (s *Solution) Height() float64      { return shape.Height(s.Profile) }

// ConvergenceError reports exhaustion of the solver budget, carrying the
// best residual seen so the caller can judge how close it came.
type ConvergenceError struct {
	Phase        Phase
	Iterations   int
	BestResidual float64
	BestGuess    float64
	Wrapped      error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("shooting %s after %d iterations (best residual %.3g at r0=%.6g): %v",
		e.Phase, e.Iterations, e.BestResidual, e.BestGuess, e.Wrapped)
}

func (e *ConvergenceError) Unwrap() error {
	return e.Wrapped
}
