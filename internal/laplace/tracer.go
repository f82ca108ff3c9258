package laplace

import (
	"context"
	"fmt"
	"math"
)

// StopCondition reports whether the trace should terminate at p.
type StopCondition func(p ProfilePoint) bool

// ContactAngleReached stops once the tangent angle reaches ca radians.
func ContactAngleReached(ca float64) StopCondition {
	return func(p ProfilePoint) bool { return p.Phi >= ca }
}

// HeightReached stops once the profile drops to height z.
func HeightReached(z float64) StopCondition {
	return func(p ProfilePoint) bool { return p.Z >= z }
}

// ArclengthReached stops after s units of arclength.
func ArclengthReached(s float64) StopCondition {
	return func(p ProfilePoint) bool { return p.S >= s }
}

// Tracer integrates a profile system outward from the apex, producing
// the discretized curve sample by sample.
type Tracer struct {
	integrator Integrator
	metrics    []Metric
}

func NewTracer(integ Integrator) *Tracer {
	return &Tracer{integrator: integ}
}

func (t *Tracer) AddMetric(m Metric) { t.metrics = append(t.metrics, m) }

// Trace marches sys from the apex until stop fires. The returned profile
// always contains the apex sample and the sample at which stop fired.
// Domain violations (negative radius, fold-over, NaN) return a
// TraceError wrapping ErrDomain; step-size collapse wraps
// ErrStepTooSmall.
func (t *Tracer) Trace(ctx context.Context, sys System, stop StopCondition, cfg TraceConfig) ([]ProfilePoint, error) {
	if err := validateTraceConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range t.metrics {
		m.Reset()
	}

	y := ApexState()
	s := 0.0
	h := cfg.InitialStep

	profile := make([]ProfilePoint, 0, 256)
	profile = append(profile, point(y, s))

	for step := 0; step < cfg.MaxSteps; step++ {
		select {
		case <-ctx.Done():
			return profile, ctx.Err()
		default:
		}

		var (
			yNew State
			hNew float64
		)

		if adaptive, ok := t.integrator.(AdaptiveIntegrator); ok {
			var accepted bool
			yNew, hNew, accepted = adaptive.StepAdaptive(sys, y, s, h, cfg.Tolerance)
			if !accepted {
				if hNew < cfg.MinStep {
					return profile, &TraceError{S: s, Step: step, State: y.Clone(), Wrapped: ErrStepTooSmall}
				}
				h = hNew
				continue
			}
		} else {
			yNew = t.integrator.Step(sys, y, s, h)
			hNew = h
		}

		hStep := h
		yPrev, sPrev := y, s

		if !yNew.IsValid() {
			return profile, &TraceError{S: s, Step: step, State: yNew, Wrapped: fmt.Errorf("%w: non-finite state", ErrDomain)}
		}
		if yNew[IdxR] < -apexEps {
			return profile, &TraceError{S: s, Step: step, State: yNew, Wrapped: fmt.Errorf("%w: negative radius", ErrDomain)}
		}
		if yNew[IdxPhi] > cfg.MaxPhi {
			return profile, &TraceError{S: s, Step: step, State: yNew, Wrapped: fmt.Errorf("%w: fold-over (phi=%.4f)", ErrDomain, yNew[IdxPhi])}
		}

		s += hStep
		y = yNew
		h = math.Min(hNew, cfg.MaxStep)

		p := point(y, s)
		profile = append(profile, p)

		for _, m := range t.metrics {
			m.Observe(p, hStep)
		}

		if stop(p) {
			profile[len(profile)-1] = t.refineCrossing(sys, yPrev, sPrev, hStep, stop)
			return profile, nil
		}
		if s >= cfg.MaxArclength {
			return profile, &TraceError{S: s, Step: step, State: y.Clone(), Wrapped: fmt.Errorf("%w: arclength limit", ErrMaxSteps)}
		}
	}

	return profile, &TraceError{S: s, Step: cfg.MaxSteps, State: y.Clone(), Wrapped: ErrMaxSteps}
}

// refineCrossing bisects the final step so the returned sample sits on
// the stop boundary instead of overshooting it by up to a full step.
func (t *Tracer) refineCrossing(sys System, y0 State, s0, h float64, stop StopCondition) ProfilePoint {
	lo, hi := 0.0, h
	for i := 0; i < 60 && hi-lo > 1e-15; i++ {
		mid := 0.5 * (lo + hi)
		yMid := t.integrator.Step(sys, y0, s0, mid)
		if stop(point(yMid, s0+mid)) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return point(t.integrator.Step(sys, y0, s0, hi), s0+hi)
}

func validateTraceConfig(cfg TraceConfig) error {
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrBadParameters, cfg.Tolerance)
	}
	if cfg.InitialStep <= 0 || cfg.MinStep <= 0 || cfg.MaxStep <= 0 {
		return fmt.Errorf("%w: step sizes must be positive", ErrBadParameters)
	}
	if cfg.MinStep > cfg.InitialStep || cfg.InitialStep > cfg.MaxStep {
		return fmt.Errorf("%w: need MinStep <= InitialStep <= MaxStep", ErrBadParameters)
	}
	if cfg.MaxPhi <= 0 {
		return fmt.Errorf("%w: MaxPhi must be positive", ErrBadParameters)
	}
	if cfg.MaxSteps <= 0 {
		return fmt.Errorf("%w: MaxSteps must be positive", ErrBadParameters)
	}
	return nil
}

func point(y State, s float64) ProfilePoint {
	return ProfilePoint{S: s, R: y[IdxR], Z: y[IdxZ], Phi: y[IdxPhi]}
}
