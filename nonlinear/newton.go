// Package nonlinear - the modified Newton solver.
package nonlinear

import (
	"fmt"

	"github.com/nabla-rs/diffsol/linsolver"
	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/op"
	"github.com/nabla-rs/diffsol/vector"
)

// NonLinearSolver is the contract the ODE layer consumes: set a
// problem, optionally reset the Jacobian, then solve for roots at
// fixed times.
type NonLinearSolver interface {
	// Problem returns the current problem, or nil.
	Problem() *SolverProblem

	// SetProblem installs a problem, discarding any previous problem
	// and factorization.
	SetProblem(p *SolverProblem) error

	// ResetJacobian recomputes and refactorizes F_x(x, t).
	ResetJacobian(x vector.Vector, t float64) error

	// Solve returns the root reached from x at fixed t.
	Solve(x vector.Vector, t float64) (vector.Vector, error)

	// SolveInPlace iterates x to the root in place.
	SolveInPlace(x vector.Vector, t float64) error

	// SetMaxIter sets the iteration budget.
	SetMaxIter(n int)

	// MaxIter returns the iteration budget.
	MaxIter() int

	// NIter returns the iterations taken by the last solve.
	NIter() int
}

// Newton is a modified-Newton root finder: the Jacobian factorization
// from the last ResetJacobian is reused across iterations and solves
// until the next reset.
type Newton struct {
	problem *SolverProblem
	ls      linsolver.LinearSolver
	conv    *Convergence
	jac     matrix.Matrix
	jacSet  bool
	maxIter int
	niter   int
	resid   vector.Vector
}

// Compile-time assertion: *Newton implements the solver contract.
var _ NonLinearSolver = (*Newton)(nil)

// NewNewton builds a Newton solver over the given linear solver.
func NewNewton(ls linsolver.LinearSolver, opts ...Option) *Newton {
	s := &Newton{ls: ls, maxIter: DefaultMaxIter}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Problem returns the current problem, or nil.
func (s *Newton) Problem() *SolverProblem { return s.problem }

// SetProblem installs a problem. The previous problem's operator is
// released, the new one retained, and any cached factorization is
// discarded.
func (s *Newton) SetProblem(p *SolverProblem) error {
	if s.problem != nil {
		op.Release(s.problem.Op)
	}
	s.problem = p
	if p == nil {
		s.conv, s.jac, s.jacSet, s.resid = nil, nil, false, nil

		return nil
	}
	op.Retain(p.Op)
	s.conv = NewConvergence(p, s.maxIter)
	s.jac = nil
	s.jacSet = false
	s.resid = vector.NewDense(p.Op.NOut())

	return nil
}

// ResetJacobian recomputes J = F_x(x, t) into the cached buffer and
// refactorizes it. Calling it twice with the same arguments reproduces
// the same factorization.
func (s *Newton) ResetJacobian(x vector.Vector, t float64) error {
	if s.problem == nil {
		return fmt.Errorf("Newton.ResetJacobian: %w", ErrProblemNotSet)
	}
	o := s.problem.Op
	if s.jac == nil {
		m, err := matrix.NewFromSparsity(o.NOut(), o.NStates(), o.Sparsity())
		if err != nil {
			return fmt.Errorf("Newton.ResetJacobian: %w", err)
		}
		s.jac = m
	}
	if err := o.JacobianInplace(x, t, s.jac); err != nil {
		return fmt.Errorf("Newton.ResetJacobian: %w", err)
	}
	if err := s.ls.SetProblem(s.jac); err != nil {
		return fmt.Errorf("Newton.ResetJacobian: %w", err)
	}
	s.jacSet = true

	return nil
}

// Solve clones x and iterates the clone to the root.
func (s *Newton) Solve(x vector.Vector, t float64) (vector.Vector, error) {
	out := x.Clone()
	if err := s.SolveInPlace(out, t); err != nil {
		return nil, err
	}

	return out, nil
}

// SolveInPlace performs modified Newton iterations on x at fixed t.
// The Jacobian is computed at the starting iterate when no
// factorization is cached; per iteration the residual is solved
// against that factorization, x is stepped by -delta, and delta is
// handed to the convergence test.
func (s *Newton) SolveInPlace(x vector.Vector, t float64) error {
	if s.problem == nil {
		return fmt.Errorf("Newton.SolveInPlace: %w", ErrProblemNotSet)
	}
	if !s.jacSet {
		if err := s.ResetJacobian(x, t); err != nil {
			return err
		}
	}
	s.conv.Reset(x)
	s.niter = 0
	o := s.problem.Op
	for {
		// Residual at the current iterate; closure errors propagate
		// unchanged.
		if err := o.CallInplace(x, t, s.resid); err != nil {
			return err
		}
		// delta solves J*delta = F(x, t) against the cached
		// factorization.
		if err := s.ls.SolveInPlace(s.resid); err != nil {
			return fmt.Errorf("Newton.SolveInPlace: %w", err)
		}
		// x <- x - delta.
		if err := x.Axpy(-1, s.resid, 1); err != nil {
			return fmt.Errorf("Newton.SolveInPlace: %w", err)
		}
		s.niter++
		switch s.conv.CheckNewIteration(s.resid) {
		case StatusConverged:
			return nil
		case StatusDiverged:
			return fmt.Errorf("Newton.SolveInPlace: after %d iterations: %w", s.niter, ErrDiverged)
		case StatusMaximumIterations:
			return fmt.Errorf("Newton.SolveInPlace: after %d iterations: %w", s.niter, ErrMaxIterations)
		case StatusContinue:
		}
	}
}

// SetMaxIter sets the iteration budget.
func (s *Newton) SetMaxIter(n int) {
	if n <= 0 {
		return
	}
	s.maxIter = n
	if s.conv != nil {
		s.conv.SetMaxIter(n)
	}
}

// MaxIter returns the iteration budget.
func (s *Newton) MaxIter() int { return s.maxIter }

// NIter returns the iterations taken by the last solve.
func (s *Newton) NIter() int { return s.niter }
