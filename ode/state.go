// Package ode - solver state and DAE-consistent initialization.
package ode

import (
	"fmt"

	"github.com/nabla-rs/diffsol/nonlinear"
	"github.com/nabla-rs/diffsol/op"
	"github.com/nabla-rs/diffsol/vector"
)

// State is the (y, t, h) triple an integrator advances. The caller
// owns it: it is handed to a Method via SetProblem and taken back with
// TakeState.
type State struct {
	Y vector.Vector
	T float64
	H float64
}

// NewState evaluates the init function at t0. The result is not
// necessarily consistent with algebraic constraints; use
// NewConsistentState for systems with a singular mass matrix.
func NewState(p *Problem) *State {
	return &State{Y: p.Eqn.Init(p.T0), T: p.T0, H: p.H0}
}

// NewConsistentState evaluates the init function and then projects the
// purely algebraic components (zero rows of the mass diagonal) onto
// the constraint manifold F_alg(y, t0) = 0, holding the differential
// components at their init values:
//
//  1. extract the mass diagonal at t0,
//  2. filter the indices where it vanishes,
//  3. return immediately if there are none,
//  4. restrict the residual to that subset with the rest frozen,
//  5. filter atol to the subset,
//  6. run the caller's nonlinear solver on the reduced problem,
//  7. scatter the converged values back into y.
//
// Solver errors, including those raised inside the equations,
// propagate unchanged.
func NewConsistentState(p *Problem, rootSolver nonlinear.NonLinearSolver) (*State, error) {
	t0, h0 := p.T0, p.H0
	massMatrix, err := op.Matrix(p.Eqn.Mass(), t0)
	if err != nil {
		return nil, fmt.Errorf("NewConsistentState: %w", err)
	}
	indices := massMatrix.Diagonal().FilterIndices(func(v float64) bool { return v == 0 })
	y := p.Eqn.Init(t0)
	if len(indices) == 0 {
		return &State{Y: y, T: t0, H: h0}, nil
	}

	yFiltered, err := y.Filter(indices)
	if err != nil {
		return nil, fmt.Errorf("NewConsistentState: %w", err)
	}
	atolFiltered, err := p.Atol.Filter(indices)
	if err != nil {
		return nil, fmt.Errorf("NewConsistentState: %w", err)
	}
	f, err := op.NewFiltered(p.Eqn.Rhs(), y, indices)
	if err != nil {
		return nil, fmt.Errorf("NewConsistentState: %w", err)
	}
	reduced, err := nonlinear.NewSolverProblem(f, atolFiltered, p.Rtol)
	if err != nil {
		return nil, fmt.Errorf("NewConsistentState: %w", err)
	}
	if err = rootSolver.SetProblem(reduced); err != nil {
		return nil, fmt.Errorf("NewConsistentState: %w", err)
	}
	if err = rootSolver.SolveInPlace(yFiltered, t0); err != nil {
		return nil, err
	}
	if err = y.ScatterFrom(yFiltered, f.Indices()); err != nil {
		return nil, fmt.Errorf("NewConsistentState: %w", err)
	}

	return &State{Y: y, T: t0, H: h0}, nil
}
