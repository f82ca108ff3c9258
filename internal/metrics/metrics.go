// Package metrics provides trace observers that accumulate integration
// statistics for reporting alongside a solution.
package metrics

import (
	"math"

	"github.com/san-kum/dropsim/internal/laplace"
)

type StepCount struct {
	steps int
}

func NewStepCount() *StepCount { return &StepCount{} }

func (c *StepCount) Name() string                              { return "steps" }
func (c *StepCount) Observe(p laplace.ProfilePoint, h float64) { c.steps++ }
func (c *StepCount) Value() float64                            { return float64(c.steps) }
func (c *StepCount) Reset()                                    { c.steps = 0 }

// MeanStep reports the average accepted arclength step.
type MeanStep struct {
	sum     float64
	samples int
}

func NewMeanStep() *MeanStep { return &MeanStep{} }

func (m *MeanStep) Name() string { return "mean_step" }

func (m *MeanStep) Observe(p laplace.ProfilePoint, h float64) {
	m.sum += h
	m.samples++
}

func (m *MeanStep) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanStep) Reset() {
	m.sum = 0
	m.samples = 0
}

// MinStep reports the smallest accepted arclength step, a proxy for how
// close the trace came to step collapse.
type MinStep struct {
	min float64
}

func NewMinStep() *MinStep { return &MinStep{min: math.Inf(1)} }

func (m *MinStep) Name() string { return "min_step" }

func (m *MinStep) Observe(p laplace.ProfilePoint, h float64) {
	if h < m.min {
		m.min = h
	}
}

func (m *MinStep) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

func (m *MinStep) Reset() { m.min = math.Inf(1) }
