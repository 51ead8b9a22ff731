// Package op - operator capability set and derived default behaviors.
package op

import (
	"fmt"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// Op is the common surface of every operator: given a parameter vector
// p, it maps an input of NStates elements to an output of NOut
// elements at a time t.
type Op interface {
	// NStates returns the number of input states.
	NStates() int

	// NOut returns the number of outputs.
	NOut() int

	// NParams returns the number of parameters.
	NParams() int

	// Sparsity returns the pattern of the operator's Jacobian or
	// matrix, if one has been declared or discovered; nil otherwise.
	Sparsity() *matrix.Sparsity

	// Statistics returns a snapshot of the evaluation counters.
	Statistics() Statistics
}

// NonLinearOp is an operator y = F(x, t) with a Jacobian action and a
// materializable Jacobian.
type NonLinearOp interface {
	Op

	// CallInplace computes y = F(x, t).
	CallInplace(x vector.Vector, t float64, y vector.Vector) error

	// JacMulInplace computes y = F_x(x, t) * v.
	JacMulInplace(x vector.Vector, t float64, v, y vector.Vector) error

	// JacobianInplace materializes F_x(x, t) into m, which should have
	// been allocated against Sparsity().
	JacobianInplace(x vector.Vector, t float64, m matrix.Matrix) error
}

// LinearOp is an operator y = A(t)*x exposed through a GEMV-style
// action with a beta accumulator.
type LinearOp interface {
	Op

	// GemvInplace computes y = A(t)*x + beta*y.
	GemvInplace(x vector.Vector, t float64, beta float64, y vector.Vector) error

	// MatrixInplace materializes A(t) into m.
	MatrixInplace(t float64, m matrix.Matrix) error
}

// ConstantOp is an operator y = c(t); its Jacobian is zero.
type ConstantOp interface {
	Op

	// CallInplace computes y = c(t).
	CallInplace(t float64, y vector.Vector) error
}

// Borrowable is implemented by operators whose shared parameters are
// protected by borrow accounting. Solvers retain the operator while
// they hold a problem built on it.
type Borrowable interface {
	Retain()
	Release()
}

// Retain marks o as held if it supports borrow accounting.
func Retain(o Op) {
	if b, ok := o.(Borrowable); ok {
		b.Retain()
	}
}

// Release undoes one Retain if o supports borrow accounting.
func Release(o Op) {
	if b, ok := o.(Borrowable); ok {
		b.Release()
	}
}

// Call computes F(x, t) into a fresh vector.
func Call(o NonLinearOp, x vector.Vector, t float64) (vector.Vector, error) {
	y := vector.NewDense(o.NOut())
	if err := o.CallInplace(x, t, y); err != nil {
		return nil, err
	}

	return y, nil
}

// JacMul computes F_x(x, t)*v into a fresh vector.
func JacMul(o NonLinearOp, x vector.Vector, t float64, v vector.Vector) (vector.Vector, error) {
	y := vector.NewDense(o.NOut())
	if err := o.JacMulInplace(x, t, v, y); err != nil {
		return nil, err
	}

	return y, nil
}

// Jacobian materializes F_x(x, t) into a fresh matrix allocated
// against the operator's sparsity (Sparse when a pattern is known,
// Dense otherwise).
func Jacobian(o NonLinearOp, x vector.Vector, t float64) (matrix.Matrix, error) {
	m, err := matrix.NewFromSparsity(o.NOut(), o.NStates(), o.Sparsity())
	if err != nil {
		return nil, fmt.Errorf("op.Jacobian: %w", err)
	}
	if err = o.JacobianInplace(x, t, m); err != nil {
		return nil, err
	}

	return m, nil
}

// DefaultJacobianInplace materializes the Jacobian by iterating the
// standard basis: column j of the result is F_x(x, t)*e_j. Coloring-
// aware operators override this with the compressed path.
func DefaultJacobianInplace(o NonLinearOp, x vector.Vector, t float64, m matrix.Matrix) error {
	probe := vector.NewDense(o.NStates())
	col := vector.NewDense(o.NOut())
	for j := 0; j < o.NStates(); j++ {
		_ = probe.Set(j, 1)
		if err := o.JacMulInplace(x, t, probe, col); err != nil {
			return fmt.Errorf("op.DefaultJacobianInplace: column %d: %w", j, err)
		}
		if err := m.SetColumn(j, col); err != nil {
			return fmt.Errorf("op.DefaultJacobianInplace: column %d: %w", j, err)
		}
		_ = probe.Set(j, 0)
	}

	return nil
}

// CallLinear computes A(t)*x into a fresh vector.
func CallLinear(o LinearOp, x vector.Vector, t float64) (vector.Vector, error) {
	y := vector.NewDense(o.NOut())
	if err := o.GemvInplace(x, t, 0, y); err != nil {
		return nil, err
	}

	return y, nil
}

// Matrix materializes A(t) into a fresh matrix allocated against the
// operator's sparsity.
func Matrix(o LinearOp, t float64) (matrix.Matrix, error) {
	m, err := matrix.NewFromSparsity(o.NOut(), o.NStates(), o.Sparsity())
	if err != nil {
		return nil, fmt.Errorf("op.Matrix: %w", err)
	}
	if err = o.MatrixInplace(t, m); err != nil {
		return nil, err
	}

	return m, nil
}

// DefaultMatrixInplace materializes A(t) by probing the matrix action
// with each standard basis vector.
func DefaultMatrixInplace(o LinearOp, t float64, m matrix.Matrix) error {
	probe := vector.NewDense(o.NStates())
	col := vector.NewDense(o.NOut())
	for j := 0; j < o.NStates(); j++ {
		_ = probe.Set(j, 1)
		if err := o.GemvInplace(probe, t, 0, col); err != nil {
			return fmt.Errorf("op.DefaultMatrixInplace: column %d: %w", j, err)
		}
		if err := m.SetColumn(j, col); err != nil {
			return fmt.Errorf("op.DefaultMatrixInplace: column %d: %w", j, err)
		}
		_ = probe.Set(j, 0)
	}

	return nil
}

// CallConstant computes c(t) into a fresh vector.
func CallConstant(o ConstantOp, t float64) (vector.Vector, error) {
	y := vector.NewDense(o.NOut())
	if err := o.CallInplace(t, y); err != nil {
		return nil, err
	}

	return y, nil
}
