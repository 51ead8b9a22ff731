// Package op - Unit, the identity operator.
package op

import (
	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// Unit returns its input unchanged. It satisfies both NonLinearOp and
// LinearOp, which makes it the default mass matrix of a plain ODE.
type Unit struct {
	n int
}

// Compile-time assertions: *Unit is usable in either role.
var (
	_ NonLinearOp = (*Unit)(nil)
	_ LinearOp    = (*Unit)(nil)
)

// NewUnit returns the identity operator on n states.
func NewUnit(n int) *Unit { return &Unit{n: n} }

// NStates returns the number of input states.
func (u *Unit) NStates() int { return u.n }

// NOut returns the number of outputs.
func (u *Unit) NOut() int { return u.n }

// NParams returns 0.
func (u *Unit) NParams() int { return 0 }

// Sparsity returns nil.
func (u *Unit) Sparsity() *matrix.Sparsity { return nil }

// Statistics returns an empty record: the identity is not counted.
func (u *Unit) Statistics() Statistics { return Statistics{} }

// CallInplace copies x into y.
func (u *Unit) CallInplace(x vector.Vector, _ float64, y vector.Vector) error {
	return y.CopyFrom(x)
}

// JacMulInplace copies v into y: the Jacobian is the identity.
func (u *Unit) JacMulInplace(_ vector.Vector, _ float64, v, y vector.Vector) error {
	return y.CopyFrom(v)
}

// JacobianInplace writes the identity matrix.
func (u *Unit) JacobianInplace(_ vector.Vector, _ float64, m matrix.Matrix) error {
	for i := 0; i < u.n; i++ {
		if err := m.Set(i, i, 1); err != nil {
			return err
		}
	}

	return nil
}

// GemvInplace computes y = x + beta*y.
func (u *Unit) GemvInplace(x vector.Vector, _ float64, beta float64, y vector.Vector) error {
	return y.Axpy(1, x, beta)
}

// MatrixInplace writes the identity matrix.
func (u *Unit) MatrixInplace(_ float64, m matrix.Matrix) error {
	return u.JacobianInplace(nil, 0, m)
}
