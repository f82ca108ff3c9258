package laplace

import (
	"context"
	"errors"
	"math"
	"testing"
)

// fixedRK4 is a minimal in-package integrator for tracer tests.
type fixedRK4 struct{}

func (fixedRK4) Step(sys System, y State, s, h float64) State {
	n := len(y)
	k1 := sys.Derive(y, s)
	y2 := make(State, n)
	for i := range y {
		y2[i] = y[i] + 0.5*h*k1[i]
	}
	k2 := sys.Derive(y2, s+0.5*h)
	y3 := make(State, n)
	for i := range y {
		y3[i] = y[i] + 0.5*h*k2[i]
	}
	k3 := sys.Derive(y3, s+0.5*h)
	y4 := make(State, n)
	for i := range y {
		y4[i] = y[i] + h*k3[i]
	}
	k4 := sys.Derive(y4, s+h)
	out := make(State, n)
	for i := range y {
		out[i] = y[i] + h/6.0*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}

func testConfig() TraceConfig {
	cfg := DefaultTraceConfig()
	cfg.InitialStep = 1e-3
	cfg.MaxStep = 1e-3
	return cfg
}

func TestTraceZeroBondHemisphere(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	sys := NewYoungLaplace(0)

	prof, err := tracer.Trace(context.Background(), sys, ContactAngleReached(math.Pi/2), testConfig())
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	last := prof[len(prof)-1]
	if math.Abs(last.Phi-math.Pi/2) > 1e-9 {
		t.Errorf("final phi: expected pi/2, got %.12f", last.Phi)
	}
	if math.Abs(last.R-1.0) > 1e-6 {
		t.Errorf("equator radius: expected 1, got %.9f", last.R)
	}
	if math.Abs(last.Z-1.0) > 1e-6 {
		t.Errorf("equator height: expected 1, got %.9f", last.Z)
	}
	if prof[0].R != 0 || prof[0].Z != 0 || prof[0].Phi != 0 {
		t.Error("profile must start at the apex")
	}
}

func TestTraceStopsAtHeight(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	sys := NewYoungLaplace(0)

	// Unit circle: z = 1 - cos(s), so depth 1 is reached at phi = pi/2.
	prof, err := tracer.Trace(context.Background(), sys, HeightReached(1.0), testConfig())
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	last := prof[len(prof)-1]
	if math.Abs(last.Z-1.0) > 1e-6 {
		t.Errorf("final depth: expected 1, got %.9f", last.Z)
	}
	if math.Abs(last.Phi-math.Pi/2) > 1e-5 {
		t.Errorf("final phi: expected pi/2, got %.9f", last.Phi)
	}
}

func TestTraceStopsAtArclength(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	sys := NewYoungLaplace(0)

	prof, err := tracer.Trace(context.Background(), sys, ArclengthReached(0.5), testConfig())
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	last := prof[len(prof)-1]
	if math.Abs(last.S-0.5) > 1e-9 {
		t.Errorf("final arclength: expected 0.5, got %.12f", last.S)
	}
	// Circle again: phi tracks arclength exactly.
	if math.Abs(last.Phi-0.5) > 1e-6 {
		t.Errorf("final phi: expected 0.5, got %.9f", last.Phi)
	}
}

func TestTracePhiMonotonicNearApex(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	sys := NewYoungLaplace(0.5)

	prof, err := tracer.Trace(context.Background(), sys, ContactAngleReached(math.Pi/2), testConfig())
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	for i := 1; i < len(prof)/2; i++ {
		if prof[i].Phi <= prof[i-1].Phi {
			t.Fatalf("phi not monotonic at sample %d", i)
		}
		if prof[i].R < 0 {
			t.Fatalf("negative radius at sample %d", i)
		}
	}
}

func TestTraceFoldOverIsDomainError(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	sys := NewYoungLaplace(0)

	cfg := testConfig()
	cfg.MaxPhi = math.Pi / 4

	_, err := tracer.Trace(context.Background(), sys, ContactAngleReached(math.Pi), cfg)
	if !errors.Is(err, ErrDomain) {
		t.Fatalf("expected ErrDomain, got %v", err)
	}

	var te *TraceError
	if !errors.As(err, &te) {
		t.Fatal("expected a TraceError wrapper")
	}
	if te.S <= 0 {
		t.Error("TraceError should carry the failure arclength")
	}
}

func TestTraceContextCancel(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	sys := NewYoungLaplace(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tracer.Trace(ctx, sys, ContactAngleReached(math.Pi/2), testConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTraceDeterminism(t *testing.T) {
	sys := NewYoungLaplace(0.37)

	p1, err1 := NewTracer(fixedRK4{}).Trace(context.Background(), sys, ContactAngleReached(2.0), testConfig())
	p2, err2 := NewTracer(fixedRK4{}).Trace(context.Background(), sys, ContactAngleReached(2.0), testConfig())

	if err1 != nil || err2 != nil {
		t.Fatalf("trace failed: %v / %v", err1, err2)
	}
	if len(p1) != len(p2) {
		t.Fatalf("profiles differ in length: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("profiles differ at sample %d", i)
		}
	}
}

func TestTraceInvalidConfig(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	sys := NewYoungLaplace(0)

	tests := []struct {
		name   string
		mutate func(*TraceConfig)
	}{
		{"zero tolerance", func(c *TraceConfig) { c.Tolerance = 0 }},
		{"zero step", func(c *TraceConfig) { c.InitialStep = 0 }},
		{"inverted steps", func(c *TraceConfig) { c.MinStep = 1; c.MaxStep = 1e-3 }},
		{"zero max phi", func(c *TraceConfig) { c.MaxPhi = 0 }},
		{"zero budget", func(c *TraceConfig) { c.MaxSteps = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTraceConfig()
			tt.mutate(&cfg)
			if _, err := tracer.Trace(context.Background(), sys, ContactAngleReached(1), cfg); !errors.Is(err, ErrBadParameters) {
				t.Errorf("expected ErrBadParameters, got %v", err)
			}
		})
	}
}

type countingMetric struct {
	steps int
}

func (c *countingMetric) Name() string                      { return "steps" }
func (c *countingMetric) Observe(p ProfilePoint, h float64) { c.steps++ }
func (c *countingMetric) Value() float64                    { return float64(c.steps) }
func (c *countingMetric) Reset()                            { c.steps = 0 }

func TestTraceMetrics(t *testing.T) {
	tracer := NewTracer(fixedRK4{})
	m := &countingMetric{}
	tracer.AddMetric(m)

	prof, err := tracer.Trace(context.Background(), NewYoungLaplace(0), ContactAngleReached(1), testConfig())
	if err != nil {
		t.Fatalf("trace failed: %v", err)
	}

	// One observation per accepted step; the profile additionally holds
	// the apex sample.
	if int(m.Value()) != len(prof)-1 {
		t.Errorf("metric saw %d steps, profile has %d", int(m.Value()), len(prof)-1)
	}
}
