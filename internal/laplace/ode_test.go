package laplace

import (
	"math"
	"testing"
)

func TestYoungLaplaceApexLimit(t *testing.T) {
	sys := NewYoungLaplace(0.5)

	dy := sys.Derive(ApexState(), 0)

	if dy[IdxR] != 1.0 {
		t.Errorf("dr/ds at apex: expected 1, got %f", dy[IdxR])
	}
	if dy[IdxZ] != 0.0 {
		t.Errorf("dz/ds at apex: expected 0, got %f", dy[IdxZ])
	}
	// At the apex both principal curvatures equal 1/R0, so the
	// dimensionless dphi/ds limit is 1 regardless of Bond number.
	if math.Abs(dy[IdxPhi]-1.0) > 1e-15 {
		t.Errorf("dphi/ds at apex: expected 1, got %f", dy[IdxPhi])
	}
}

func TestYoungLaplaceZeroBondIsCircle(t *testing.T) {
	sys := NewYoungLaplace(0)

	// On the exact unit circle r=sin(s), z=1-cos(s), phi=s the
	// curvature equation must give dphi/ds = 1 everywhere.
	for _, s := range []float64{0.1, 0.5, 1.0, 2.0, 3.0} {
		y := State{math.Sin(s), 1 - math.Cos(s), s}
		dy := sys.Derive(y, s)
		if math.Abs(dy[IdxPhi]-1.0) > 1e-12 {
			t.Errorf("s=%.1f: dphi/ds = %.15f, want 1", s, dy[IdxPhi])
		}
	}
}

func TestYoungLaplaceGravityFlattens(t *testing.T) {
	flat := NewYoungLaplace(2.0)
	round := NewYoungLaplace(0)

	// Below the apex (z>0 with z measured downward from the apex of a
	// sessile drop) hydrostatic pressure raises the curvature demand.
	y := State{0.5, 0.3, 0.55}
	dFlat := flat.Derive(y, 0.6)
	dRound := round.Derive(y, 0.6)

	if dFlat[IdxPhi] <= dRound[IdxPhi] {
		t.Errorf("positive Bond must increase dphi/ds: %f vs %f", dFlat[IdxPhi], dRound[IdxPhi])
	}
}

func TestYoungLaplaceTolman(t *testing.T) {
	sys := &YoungLaplace{Bond: 0, Tolman: 0.1}

	// gamma0 = 2/(1+2a); with the curvature correction the apex
	// dphi/ds limit becomes gamma0/(2(1-a*gamma0)).
	g0 := 2.0 / 1.2
	want := g0 / (2 * (1 - 0.1*g0))

	dy := sys.Derive(ApexState(), 0)
	if math.Abs(dy[IdxPhi]-want) > 1e-12 {
		t.Errorf("Tolman apex limit: expected %.12f, got %.12f", want, dy[IdxPhi])
	}
}

func TestStateHelpers(t *testing.T) {
	s := State{1, 2, 3}

	c := s.Clone()
	c[0] = 9
	if s[0] != 1 {
		t.Error("Clone must not alias")
	}

	if !s.IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN(), 3}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1), 0, 0}).IsValid() {
		t.Error("Inf state reported valid")
	}
}
