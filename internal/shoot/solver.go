// Package shoot finds the apex radius of curvature for which the traced
// Young-Laplace profile satisfies a boundary target, by bracketing and
// bisection over trace runs.
package shoot

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/dropsim/internal/fluid"
	"github.com/san-kum/dropsim/internal/integrators"
	"github.com/san-kum/dropsim/internal/laplace"
	"github.com/san-kum/dropsim/internal/metrics"
	"github.com/san-kum/dropsim/internal/shape"
)

// bracketFloor is the smallest apex radius (meters) tried while
// expanding the bracket downward.
const bracketFloor = 1e-15

type Solver struct {
	cfg Config
}

func New(cfg Config) *Solver {
	return &Solver{cfg: cfg}
}

// evaluation is one residual probe at a candidate apex radius.
type evaluation struct {
	residual float64
	profile  []laplace.ProfilePoint
	metrics  map[string]float64
}

// finite reports whether the probe produced a usable residual. Traces
// that failed mid-integration count as infinitely large drops so that
// bracketing can continue past them.
func (e evaluation) finite() bool {
	return !math.IsInf(e.residual, 0) && !math.IsNaN(e.residual)
}

// Solve shoots over the apex radius of curvature until the target
// residual is within tolerance. contactAngle (radians) terminates each
// trace. The same inputs always produce the same solution.
func (s *Solver) Solve(ctx context.Context, params fluid.Parameters, contactAngle float64, target Target) (*Solution, error) {
	if err := s.cfg.validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if contactAngle <= 0 || contactAngle > math.Pi {
		return nil, fmt.Errorf("%w: contact angle must be in (0, pi], got %g", laplace.ErrBadParameters, contactAngle)
	}

	guess := s.cfg.InitialGuess
	if guess == 0 {
		guess = params.CapillaryLength()
		if vt, ok := target.(VolumeTarget); ok {
			if est := volumeGuess(params, vt.Volume); est > 0 {
				guess = est
			}
		}
	}

	iter := 0
	best := evaluation{residual: math.Inf(1)}
	bestGuess := guess

	eval := func(r0 float64) (evaluation, error) {
		iter++
		ev, err := s.probe(ctx, params, contactAngle, target, r0)
		if err != nil {
			return ev, err
		}
		if ev.finite() && math.Abs(ev.residual) < math.Abs(best.residual) {
			best = ev
			bestGuess = r0
		}
		return ev, nil
	}

	fail := func(phase Phase, wrapped error) error {
		return &ConvergenceError{
			Phase:        phase,
			Iterations:   iter,
			BestResidual: best.residual,
			BestGuess:    bestGuess,
			Wrapped:      wrapped,
		}
	}

	// Bracketing: find lo with negative residual and hi with positive
	// (or failed) residual. All targets grow with the apex radius, so
	// the residual changes sign exactly once.
	lo, hi := guess, guess
	evGuess, err := eval(guess)
	if err != nil {
		return nil, err
	}
	if evGuess.finite() && math.Abs(evGuess.residual) < s.cfg.ResidualTol {
		return s.solution(params, contactAngle, evGuess, guess, iter), nil
	}

	fLo, fHi := evGuess.residual, evGuess.residual
	for fLo >= 0 {
		if iter >= s.cfg.MaxIterations || lo < bracketFloor {
			return nil, fail(Bracketing, laplace.ErrNoBracket)
		}
		lo *= 0.5
		ev, err := eval(lo)
		if err != nil {
			return nil, err
		}
		fLo = ev.residual
	}
	for fHi < 0 {
		if iter >= s.cfg.MaxIterations || math.IsInf(hi, 0) {
			return nil, fail(Bracketing, laplace.ErrNoBracket)
		}
		hi *= 2.0
		ev, err := eval(hi)
		if err != nil {
			return nil, err
		}
		fHi = ev.residual
	}

	// Refining: bisection over [lo, hi]. Probes that failed to trace
	// behave like positive residuals, shrinking the bracket from above.
	for iter < s.cfg.MaxIterations {
		mid := 0.5 * (lo + hi)
		ev, err := eval(mid)
		if err != nil {
			return nil, err
		}

		if ev.finite() && math.Abs(ev.residual) < s.cfg.ResidualTol {
			return s.solution(params, contactAngle, ev, mid, iter), nil
		}

		if ev.residual > 0 || !ev.finite() {
			hi = mid
		} else {
			lo = mid
		}

		if hi-lo < s.cfg.StepTol*mid {
			return nil, fail(Refining, laplace.ErrMaxIterations)
		}
	}

	return nil, fail(Refining, laplace.ErrMaxIterations)
}

// probe traces one candidate drop and evaluates the target residual.
// Integration failures are absorbed into an infinite residual; only
// cancellation and configuration errors surface.
func (s *Solver) probe(ctx context.Context, params fluid.Parameters, contactAngle float64, target Target, r0 float64) (evaluation, error) {
	bond := params.BondNumber(r0)
	sys := laplace.NewYoungLaplace(bond)

	tracer := laplace.NewTracer(integrators.NewRK45())
	stepCount := metrics.NewStepCount()
	meanStep := metrics.NewMeanStep()
	minStep := metrics.NewMinStep()
	tracer.AddMetric(stepCount)
	tracer.AddMetric(meanStep)
	tracer.AddMetric(minStep)

	prof, err := tracer.Trace(ctx, sys, laplace.ContactAngleReached(contactAngle), s.cfg.traceConfig())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, laplace.ErrBadParameters) {
			return evaluation{}, err
		}
		return evaluation{residual: math.Inf(1)}, nil
	}

	dimensional := shape.Scale(prof, r0)
	res := target.Residual(dimensional, r0)
	if math.IsNaN(res) {
		res = math.Inf(1)
	}

	return evaluation{
		residual: res,
		profile:  dimensional,
		metrics: map[string]float64{
			stepCount.Name(): stepCount.Value(),
			meanStep.Name():  meanStep.Value(),
			minStep.Name():   minStep.Value(),
		},
	}, nil
}

// volumeGuess seeds the search with the empirical apex-radius estimate.
// The Bond number itself depends on the radius, so the estimate is
// iterated a few times; a non-finite fixed point returns 0 and the
// caller falls back to the capillary length.
func volumeGuess(params fluid.Parameters, volume float64) float64 {
	r0 := params.CapillaryLength()
	for i := 0; i < 3; i++ {
		est := shape.EstimateApexRadius(params.BondNumber(r0), volume, 0)
		if math.IsNaN(est) || math.IsInf(est, 0) || est <= 0 {
			return 0
		}
		r0 = est
	}
	return r0
}

func (s *Solver) solution(params fluid.Parameters, contactAngle float64, ev evaluation, r0 float64, iter int) *Solution {
	return &Solution{
		Profile:      ev.profile,
		ApexRadius:   r0,
		Bond:         params.BondNumber(r0),
		ContactAngle: contactAngle,
		Residual:     ev.residual,
		Iterations:   iter,
		Phase:        Converged,
		Metrics:      ev.metrics,
	}
}
