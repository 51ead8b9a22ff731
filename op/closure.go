// Package op - Closure, the nonlinear operator built from a residual
// function and a Jacobian action.
package op

import (
	"fmt"

	"github.com/nabla-rs/diffsol/jacobian"
	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// Func is a residual: y = F(x, p, t).
type Func func(x, p vector.Vector, t float64, y vector.Vector) error

// JacAction is a Jacobian-vector product: y = F_x(x, p, t) * v.
type JacAction func(x, p vector.Vector, t float64, v, y vector.Vector) error

// Closure wraps a residual and its Jacobian action into a NonLinearOp.
// The parameter vector is shared with the caller; the statistics
// counter sits behind a pointer so every holder of the closure sees
// and updates the same record.
type Closure struct {
	f         Func
	jacAction JacAction
	nstates   int
	nout      int
	params    vector.Vector
	sparsity  *matrix.Sparsity
	coloring  *jacobian.Coloring
	stats     *Statistics
	borrows   int
}

// Compile-time assertion: *Closure implements NonLinearOp.
var _ NonLinearOp = (*Closure)(nil)

// NewClosure builds a nonlinear operator from the two functions, its
// dimensions, and a shared parameter vector (nil means no parameters).
func NewClosure(f Func, jacAction JacAction, nstates, nout int, params vector.Vector) (*Closure, error) {
	if nstates <= 0 || nout <= 0 {
		return nil, fmt.Errorf("NewClosure(%d,%d): %w", nstates, nout, ErrBadDimension)
	}
	if params == nil {
		params = vector.NewDense(0)
	}

	return &Closure{
		f:         f,
		jacAction: jacAction,
		nstates:   nstates,
		nout:      nout,
		params:    params,
		stats:     &Statistics{},
	}, nil
}

// NStates returns the number of input states.
func (c *Closure) NStates() int { return c.nstates }

// NOut returns the number of outputs.
func (c *Closure) NOut() int { return c.nout }

// NParams returns the number of parameters.
func (c *Closure) NParams() int { return c.params.Len() }

// Sparsity returns the discovered Jacobian pattern, if any.
func (c *Closure) Sparsity() *matrix.Sparsity { return c.sparsity }

// Statistics returns a snapshot of the evaluation counters.
func (c *Closure) Statistics() Statistics { return *c.stats }

// Params returns the shared parameter vector.
func (c *Closure) Params() vector.Vector { return c.params }

// SetParams rebinds the parameter vector. It fails with
// ErrParameterBound while any solver retains the operator, and with
// ErrBadDimension if the length changes.
func (c *Closure) SetParams(p vector.Vector) error {
	if c.borrows > 0 {
		return fmt.Errorf("Closure.SetParams: %w", ErrParameterBound)
	}
	if p.Len() != c.params.Len() {
		return fmt.Errorf("Closure.SetParams: %d params, want %d: %w", p.Len(), c.params.Len(), ErrBadDimension)
	}
	c.params = p

	return nil
}

// Retain marks the closure as held by a solver.
func (c *Closure) Retain() { c.borrows++ }

// Release undoes one Retain.
func (c *Closure) Release() {
	if c.borrows > 0 {
		c.borrows--
	}
}

// CalculateSparsity probes the Jacobian action around (y0, t0),
// installs the discovered pattern, and precomputes the coloring plan
// used by JacobianInplace from then on.
func (c *Closure) CalculateSparsity(y0 vector.Vector, t0 float64) error {
	nonZeros, err := jacobian.FindNonZerosNonLinear(c, y0, t0)
	if err != nil {
		return fmt.Errorf("Closure.CalculateSparsity: %w", err)
	}
	sp, err := matrix.NewSparsity(c.nout, c.nstates, nonZeros)
	if err != nil {
		return fmt.Errorf("Closure.CalculateSparsity: %w", err)
	}
	coloring, err := jacobian.NewColoring(c.nout, c.nstates, nonZeros)
	if err != nil {
		return fmt.Errorf("Closure.CalculateSparsity: %w", err)
	}
	c.sparsity, c.coloring = sp, coloring

	return nil
}

// CallInplace computes y = F(x, p, t).
func (c *Closure) CallInplace(x vector.Vector, t float64, y vector.Vector) error {
	c.stats.IncrementCall()

	return c.f(x, c.params, t, y)
}

// JacMulInplace computes y = F_x(x, p, t) * v.
func (c *Closure) JacMulInplace(x vector.Vector, t float64, v, y vector.Vector) error {
	c.stats.IncrementJacMul()

	return c.jacAction(x, c.params, t, v, y)
}

// JacobianInplace materializes the Jacobian, through the coloring plan
// when sparsity has been calculated and by basis iteration otherwise.
func (c *Closure) JacobianInplace(x vector.Vector, t float64, m matrix.Matrix) error {
	c.stats.IncrementMatrix()
	if c.coloring != nil {
		return c.coloring.JacobianInplace(c, x, t, m)
	}

	return DefaultJacobianInplace(c, x, t, m)
}
