// Package ode - the shared problem record.
package ode

import (
	"fmt"

	"github.com/nabla-rs/diffsol/vector"
)

// DefaultRtol is the relative tolerance a problem gets when the caller
// has no preference.
const DefaultRtol = 1e-6

// DefaultAtol returns the default absolute tolerance vector for a
// system of n states.
func DefaultAtol(n int) vector.Vector {
	return vector.NewDenseFromElement(n, 1e-6)
}

// Problem ties equations to tolerances, the initial time, and the
// initial step. Instances are shared between the caller and solvers;
// Clone is a cheap copy of the references.
type Problem struct {
	Eqn  Equations
	Rtol float64
	Atol vector.Vector
	T0   float64
	H0   float64
}

// NewProblem validates that the tolerance vector covers the system.
func NewProblem(eqn Equations, rtol float64, atol vector.Vector, t0, h0 float64) (*Problem, error) {
	if atol.Len() != eqn.Rhs().NStates() {
		return nil, fmt.Errorf("NewProblem: atol len %d for %d states: %w", atol.Len(), eqn.Rhs().NStates(), ErrBadProblem)
	}

	return &Problem{Eqn: eqn, Rtol: rtol, Atol: atol, T0: t0, H0: h0}, nil
}

// Clone returns a copy sharing the equations and tolerance vector.
func (p *Problem) Clone() *Problem {
	return &Problem{Eqn: p.Eqn, Rtol: p.Rtol, Atol: p.Atol, T0: p.T0, H0: p.H0}
}

// SetParams rebinds the equations' parameters. While a solver holds
// the underlying operator the rebind fails with op.ErrParameterBound.
func (p *Problem) SetParams(params vector.Vector) error {
	return p.Eqn.SetParams(params)
}
