package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/dropsim/internal/laplace"
)

func TestRK4_CircleProfile(t *testing.T) {
	integ := NewRK4()
	sys := &circleSystem{}

	y := laplace.ApexState()
	h := 0.001

	for i := 0; i < 1000; i++ {
		y = integ.Step(sys, y, float64(i)*h, h)
	}

	if math.Abs(y[laplace.IdxR]-math.Sin(1.0)) > 1e-10 {
		t.Errorf("r drifted: expected %.12f, got %.12f", math.Sin(1.0), y[laplace.IdxR])
	}
	if math.Abs(y[laplace.IdxPhi]-1.0) > 1e-12 {
		t.Errorf("phi drifted: expected 1.0, got %.12f", y[laplace.IdxPhi])
	}
}

func TestRK4_ScratchReuse(t *testing.T) {
	integ := NewRK4()
	sys := &circleSystem{}

	y1 := integ.Step(sys, laplace.ApexState(), 0, 0.01)
	y2 := integ.Step(sys, laplace.ApexState(), 0, 0.01)

	for i := range y1 {
		if y1[i] != y2[i] {
			t.Fatalf("repeated identical steps differ at %d: %g vs %g", i, y1[i], y2[i])
		}
	}
}
