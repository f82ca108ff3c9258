package integrators

import "github.com/san-kum/dropsim/internal/laplace"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys laplace.System, y laplace.State, s, h float64) laplace.State {
	dy := sys.Derive(y, s)
	result := make(laplace.State, len(y))
	for i := range y {
		result[i] = y[i] + h*dy[i]
	}
	return result
}
