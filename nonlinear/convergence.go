// Package nonlinear - the adaptive convergence test.
package nonlinear

import (
	"math"

	"github.com/nabla-rs/diffsol/vector"
)

// Status is the outcome of one convergence check.
type Status int

const (
	// StatusContinue: no decision yet; iterate again.
	StatusContinue Status = iota

	// StatusConverged: the scaled update is below tolerance.
	StatusConverged

	// StatusDiverged: the update sequence grows, or its projected
	// contraction cannot reach tolerance within the budget.
	StatusDiverged

	// StatusMaximumIterations: the iteration budget is exhausted.
	StatusMaximumIterations
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "Continue"
	case StatusConverged:
		return "Converged"
	case StatusDiverged:
		return "Diverged"
	case StatusMaximumIterations:
		return "MaximumIterations"
	default:
		return "Unknown"
	}
}

// MaximumTol caps the working tolerance; beyond it Newton would
// under-converge relative to stiff-ODE practice.
const MaximumTol = 0.03

// Convergence tracks the scaled update norms of one Newton solve. It
// must be Reset against a reference iterate before the first check;
// checking earlier is a programming error and panics.
type Convergence struct {
	rtol    float64
	atol    vector.Vector
	tol     float64
	maxIter int
	iter    int
	scale   vector.Vector
	oldNorm float64
	hasOld  bool
}

// NewConvergence derives the working tolerance from the problem:
// tol = clamp(0.5*sqrt(rtol), 10*eps/rtol, MaximumTol).
func NewConvergence(problem *SolverProblem, maxIter int) *Convergence {
	minimumTol := 10 * vector.Epsilon / problem.Rtol
	tol := 0.5 * math.Sqrt(problem.Rtol)
	if tol > MaximumTol {
		tol = MaximumTol
	}
	if tol < minimumTol {
		tol = minimumTol
	}

	return &Convergence{
		rtol:    problem.Rtol,
		atol:    problem.Atol,
		tol:     tol,
		maxIter: maxIter,
	}
}

// Tol returns the working tolerance.
func (c *Convergence) Tol() float64 { return c.tol }

// Iter returns the number of iterations recorded since the last Reset.
func (c *Convergence) Iter() int { return c.iter }

// SetMaxIter updates the iteration budget.
func (c *Convergence) SetMaxIter(n int) { c.maxIter = n }

// Reset pins the tolerance scale to the given reference iterate:
// scale = atol + rtol*|y|. The iteration counter and the previous norm
// are cleared; a stale contraction rate must not leak into the next
// solve.
func (c *Convergence) Reset(y vector.Vector) {
	scale := y.Abs()
	scale.Scale(c.rtol)
	_ = scale.Axpy(1, c.atol, 1)
	c.scale = scale
	c.iter = 0
	c.hasOld = false
}

// CheckNewIteration judges the latest update dy. The vector is scaled
// in place by the tolerance scale as a side effect.
func (c *Convergence) CheckNewIteration(dy vector.Vector) Status {
	if c.scale == nil {
		panic("nonlinear: Convergence.CheckNewIteration called before Reset")
	}
	_ = dy.DivAssign(c.scale)
	norm := dy.Norm()
	// A vanishing update cannot be judged by its contraction rate.
	if norm <= vector.Epsilon {
		return StatusConverged
	}
	if c.hasOld {
		rate := norm / c.oldNorm
		if rate >= 1 {
			return StatusDiverged
		}
		if rate/(1-rate)*norm < c.tol {
			return StatusConverged
		}
		// Even at the current contraction rate the remaining budget
		// cannot reach tolerance: abort early.
		if math.Pow(rate, float64(c.maxIter-c.iter))/(1-rate)*norm > c.tol {
			return StatusDiverged
		}
	}
	c.iter++
	c.oldNorm = norm
	c.hasOld = true
	if c.iter >= c.maxIter {
		return StatusMaximumIterations
	}

	return StatusContinue
}
