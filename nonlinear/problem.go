// Package nonlinear - SolverProblem, the shared problem tuple.
package nonlinear

import (
	"fmt"

	"github.com/nabla-rs/diffsol/op"
	"github.com/nabla-rs/diffsol/vector"
)

// SolverProblem ties an operator to its tolerances. Instances are
// shared between producers and solvers; Clone is a cheap copy of the
// references.
type SolverProblem struct {
	Op   op.NonLinearOp
	Atol vector.Vector
	Rtol float64
}

// NewSolverProblem validates that the tolerance vector covers every
// state of the operator.
func NewSolverProblem(o op.NonLinearOp, atol vector.Vector, rtol float64) (*SolverProblem, error) {
	if atol.Len() != o.NStates() {
		return nil, fmt.Errorf("NewSolverProblem: atol len %d for %d states: %w", atol.Len(), o.NStates(), ErrBadProblem)
	}

	return &SolverProblem{Op: o, Atol: atol, Rtol: rtol}, nil
}

// Clone returns a copy sharing the operator and tolerance vector.
func (p *SolverProblem) Clone() *SolverProblem {
	return &SolverProblem{Op: p.Op, Atol: p.Atol, Rtol: p.Rtol}
}
