package laplace

import "math"

// State indices for the droplet profile system.
const (
	IdxR   = 0 // radial distance from the symmetry axis
	IdxZ   = 1 // height above the apex
	IdxPhi = 2 // tangent angle measured from the horizontal
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE system parameterized by arclength s.
type System interface {
	Derive(y State, s float64) State
	Dim() int
}

type Integrator interface {
	Step(sys System, y State, s float64, h float64) State
}

// AdaptiveIntegrator attempts a single step of size h and reports
// whether the local error estimate met tol. The returned step size is
// the suggestion for the next attempt (shrunk on rejection).
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, y State, s, h, tol float64) (State, float64, bool)
}

// ProfilePoint is one sample of the droplet profile. Coordinates are
// dimensionless (scaled by the apex radius of curvature) when produced by
// Trace, dimensional after Solution scaling.
type ProfilePoint struct {
	S   float64 // arclength from the apex
	R   float64 // radial coordinate
	Z   float64 // height below/above the apex
	Phi float64 // tangent angle, radians
}

// Metric accumulates a scalar over the course of a trace.
type Metric interface {
	Name() string
	Observe(p ProfilePoint, h float64)
	Value() float64
	Reset()
}

// TraceConfig controls a single profile trace.
type TraceConfig struct {
	Tolerance    float64 // local truncation error tolerance
	InitialStep  float64
	MinStep      float64
	MaxStep      float64
	MaxArclength float64
	MaxPhi       float64 // fold-over guard
	MaxSteps     int
}

func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		Tolerance:    1e-9,
		InitialStep:  1e-3,
		MinStep:      1e-12,
		MaxStep:      0.05,
		MaxArclength: 50.0,
		MaxPhi:       3 * math.Pi / 2,
		MaxSteps:     200000,
	}
}
