package integrators

import (
	"testing"

	"github.com/san-kum/dropsim/internal/laplace"
)

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	sys := laplace.NewYoungLaplace(0.25)
	y := laplace.State{0.1, 0.01, 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integ.Step(sys, y, 0.1, 0.001)
		y[0] = 0.1
	}
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	sys := laplace.NewYoungLaplace(0.25)
	y := laplace.State{0.1, 0.01, 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integ.Step(sys, y, 0.1, 0.001)
		y[0] = 0.1
	}
}

func BenchmarkRK45(b *testing.B) {
	integ := NewRK45()
	sys := laplace.NewYoungLaplace(0.25)
	y := laplace.State{0.1, 0.01, 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		y = integ.Step(sys, y, 0.1, 0.001)
		y[0] = 0.1
	}
}

func BenchmarkRK45_Adaptive(b *testing.B) {
	integ := NewRK45()
	sys := laplace.NewYoungLaplace(0.25)
	y := laplace.State{0.1, 0.01, 0.1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = integ.StepAdaptive(sys, y, 0.1, 0.001, 1e-9)
	}
}
