package fluid

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dropsim/internal/laplace"
)

func TestWaterCapillaryLength(t *testing.T) {
	w := Water()

	lc := w.CapillaryLength()

	// Water against air at standard gravity: ~2.7 mm.
	if math.Abs(lc-2.7e-3) > 0.1e-3 {
		t.Errorf("expected capillary length ~2.7mm, got %.4fmm", lc*1e3)
	}
}

func TestBondNumber(t *testing.T) {
	w := Water()

	// A drop with apex radius equal to the capillary length has Bond
	// number 1 by construction.
	lc := w.CapillaryLength()
	bo := w.BondNumber(lc)

	if math.Abs(bo-1.0) > 1e-12 {
		t.Errorf("expected Bond 1 at r0=lc, got %.15f", bo)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr bool
	}{
		{"water ok", func(p *Parameters) {}, false},
		{"zero tension", func(p *Parameters) { p.SurfaceTension = 0 }, true},
		{"negative tension", func(p *Parameters) { p.SurfaceTension = -0.01 }, true},
		{"equal densities", func(p *Parameters) { p.DensityVapour = p.DensityLiquid }, true},
		{"zero gravity", func(p *Parameters) { p.Gravity = 0 }, true},
		{"nan tension", func(p *Parameters) { p.SurfaceTension = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Water()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr && !errors.Is(err, laplace.ErrBadParameters) {
				t.Errorf("error should wrap ErrBadParameters, got %v", err)
			}
		})
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		p, err := ByName(name)
		if err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}

	if _, err := ByName("unobtainium"); err == nil {
		t.Error("expected error for unknown fluid")
	}
}
