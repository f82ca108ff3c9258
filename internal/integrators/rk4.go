package integrators

import "github.com/san-kum/dropsim/internal/laplace"

// RK4 is the classic fixed-step fourth-order scheme. Scratch buffers are
// reused across steps, so an RK4 value must not be shared between
// concurrent traces.
type RK4 struct {
	k1, k2, k3, k4 laplace.State
	scratch        laplace.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(laplace.State, n)
		r.k2 = make(laplace.State, n)
		r.k3 = make(laplace.State, n)
		r.k4 = make(laplace.State, n)
		r.scratch = make(laplace.State, n)
	}
}

func (r *RK4) Step(sys laplace.System, y laplace.State, s, h float64) laplace.State {
	n := len(y)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(y, s))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, s+h*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, s+h*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, s+h))

	result := make(laplace.State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = y[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
