package metrics

import (
	"testing"

	"github.com/san-kum/dropsim/internal/laplace"
)

func TestStepCount(t *testing.T) {
	c := NewStepCount()

	for i := 0; i < 5; i++ {
		c.Observe(laplace.ProfilePoint{}, 0.01)
	}

	if c.Value() != 5 {
		t.Errorf("expected 5 steps, got %g", c.Value())
	}

	c.Reset()
	if c.Value() != 0 {
		t.Error("reset did not clear count")
	}
}

func TestMeanStep(t *testing.T) {
	m := NewMeanStep()

	m.Observe(laplace.ProfilePoint{}, 0.01)
	m.Observe(laplace.ProfilePoint{}, 0.03)

	if m.Value() != 0.02 {
		t.Errorf("expected mean 0.02, got %g", m.Value())
	}
}

func TestMinStepEmpty(t *testing.T) {
	m := NewMinStep()

	if m.Value() != 0 {
		t.Errorf("empty MinStep should report 0, got %g", m.Value())
	}

	m.Observe(laplace.ProfilePoint{}, 0.02)
	m.Observe(laplace.ProfilePoint{}, 0.005)
	m.Observe(laplace.ProfilePoint{}, 0.01)

	if m.Value() != 0.005 {
		t.Errorf("expected min 0.005, got %g", m.Value())
	}
}
