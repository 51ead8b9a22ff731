// Package op - LinearClosure and ConstantClosure, the closure wrappers
// for the linear and constant operator refinements.
package op

import (
	"fmt"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// GemvFunc is a matrix action with accumulator: y = A(p, t)*x + beta*y.
type GemvFunc func(x, p vector.Vector, t float64, beta float64, y vector.Vector) error

// LinearClosure wraps a GEMV-style action into a LinearOp.
type LinearClosure struct {
	f        GemvFunc
	nstates  int
	nout     int
	params   vector.Vector
	sparsity *matrix.Sparsity
	stats    *Statistics
}

// Compile-time assertion: *LinearClosure implements LinearOp.
var _ LinearOp = (*LinearClosure)(nil)

// NewLinearClosure builds a linear operator from a matrix action.
func NewLinearClosure(f GemvFunc, nstates, nout int, params vector.Vector) (*LinearClosure, error) {
	if nstates <= 0 || nout <= 0 {
		return nil, fmt.Errorf("NewLinearClosure(%d,%d): %w", nstates, nout, ErrBadDimension)
	}
	if params == nil {
		params = vector.NewDense(0)
	}

	return &LinearClosure{f: f, nstates: nstates, nout: nout, params: params, stats: &Statistics{}}, nil
}

// NStates returns the number of input states.
func (c *LinearClosure) NStates() int { return c.nstates }

// NOut returns the number of outputs.
func (c *LinearClosure) NOut() int { return c.nout }

// NParams returns the number of parameters.
func (c *LinearClosure) NParams() int { return c.params.Len() }

// Sparsity returns the declared matrix pattern, if any.
func (c *LinearClosure) Sparsity() *matrix.Sparsity { return c.sparsity }

// SetSparsity declares the pattern of the operator's matrix. The
// pattern shape must match the operator's dimensions.
func (c *LinearClosure) SetSparsity(sp *matrix.Sparsity) error {
	if sp != nil && (sp.Rows() != c.nout || sp.Cols() != c.nstates) {
		return fmt.Errorf("LinearClosure.SetSparsity: pattern %dx%d for operator %dx%d: %w",
			sp.Rows(), sp.Cols(), c.nout, c.nstates, ErrBadDimension)
	}
	c.sparsity = sp

	return nil
}

// Statistics returns a snapshot of the evaluation counters.
func (c *LinearClosure) Statistics() Statistics { return *c.stats }

// GemvInplace computes y = A(p, t)*x + beta*y.
func (c *LinearClosure) GemvInplace(x vector.Vector, t float64, beta float64, y vector.Vector) error {
	c.stats.IncrementCall()

	return c.f(x, c.params, t, beta, y)
}

// MatrixInplace materializes A(t) by basis probing.
func (c *LinearClosure) MatrixInplace(t float64, m matrix.Matrix) error {
	c.stats.IncrementMatrix()

	return DefaultMatrixInplace(c, t, m)
}

// ConstantFunc is a time-dependent constant: y = c(p, t).
type ConstantFunc func(p vector.Vector, t float64, y vector.Vector) error

// ConstantClosure wraps a constant function into a ConstantOp.
type ConstantClosure struct {
	f      ConstantFunc
	nout   int
	params vector.Vector
	stats  *Statistics
}

// Compile-time assertion: *ConstantClosure implements ConstantOp.
var _ ConstantOp = (*ConstantClosure)(nil)

// NewConstantClosure builds a constant operator.
func NewConstantClosure(f ConstantFunc, nout int, params vector.Vector) (*ConstantClosure, error) {
	if nout <= 0 {
		return nil, fmt.Errorf("NewConstantClosure(%d): %w", nout, ErrBadDimension)
	}
	if params == nil {
		params = vector.NewDense(0)
	}

	return &ConstantClosure{f: f, nout: nout, params: params, stats: &Statistics{}}, nil
}

// NStates returns 0: a constant operator has no input states.
func (c *ConstantClosure) NStates() int { return 0 }

// NOut returns the number of outputs.
func (c *ConstantClosure) NOut() int { return c.nout }

// NParams returns the number of parameters.
func (c *ConstantClosure) NParams() int { return c.params.Len() }

// Sparsity returns nil: constants have a zero Jacobian.
func (c *ConstantClosure) Sparsity() *matrix.Sparsity { return nil }

// Statistics returns a snapshot of the evaluation counters.
func (c *ConstantClosure) Statistics() Statistics { return *c.stats }

// CallInplace computes y = c(p, t).
func (c *ConstantClosure) CallInplace(t float64, y vector.Vector) error {
	c.stats.IncrementCall()

	return c.f(c.params, t, y)
}

// JacMulInplace writes the zero vector: the Jacobian of a constant
// vanishes.
func (c *ConstantClosure) JacMulInplace(y vector.Vector) error {
	y.Fill(0)

	return nil
}
