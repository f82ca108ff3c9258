package shoot

import (
	"fmt"
	"math"

	"github.com/san-kum/dropsim/internal/laplace"
)

// Config holds solver tolerances and budgets. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	MaxIterations int     // residual evaluations across bracketing and refining
	ResidualTol   float64 // |T(profile)| acceptance threshold
	StepTol       float64 // relative bracket width floor on the apex radius
	MaxPhi        float64 // fold-over guard, radians
	ODETolerance  float64 // local truncation error tolerance per step
	InitialStep   float64 // dimensionless arclength
	MinStep       float64
	MaxStep       float64
	InitialGuess  float64 // apex radius guess in meters; 0 picks the capillary length
}

func DefaultConfig() Config {
	return Config{
		MaxIterations: 200,
		ResidualTol:   1e-8,
		StepTol:       1e-12,
		MaxPhi:        3 * math.Pi / 2,
		ODETolerance:  1e-10,
		InitialStep:   1e-3,
		MinStep:       1e-12,
		MaxStep:       0.02,
	}
}

func (c Config) validate() error {
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: MaxIterations must be positive", laplace.ErrBadParameters)
	}
	if c.ResidualTol <= 0 || c.StepTol <= 0 {
		return fmt.Errorf("%w: tolerances must be positive", laplace.ErrBadParameters)
	}
	if c.InitialGuess < 0 {
		return fmt.Errorf("%w: InitialGuess must not be negative", laplace.ErrBadParameters)
	}
	return nil
}

func (c Config) traceConfig() laplace.TraceConfig {
	tc := laplace.DefaultTraceConfig()
	tc.Tolerance = c.ODETolerance
	tc.InitialStep = c.InitialStep
	tc.MinStep = c.MinStep
	tc.MaxStep = c.MaxStep
	tc.MaxPhi = c.MaxPhi
	return tc
}
