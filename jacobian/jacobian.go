// Package jacobian - sparsity discovery by basis probing.
package jacobian

import (
	"fmt"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// Operator is the slice of the operator surface this package needs: a
// Jacobian action and the two dimensions. The op package's nonlinear
// operators satisfy it.
type Operator interface {
	NStates() int
	NOut() int
	JacMulInplace(x vector.Vector, t float64, v, y vector.Vector) error
}

// LinearOperator is the corresponding slice for linear operators,
// whose matrix action is probed directly.
type LinearOperator interface {
	NStates() int
	NOut() int
	GemvInplace(x vector.Vector, t float64, beta float64, y vector.Vector) error
}

// FindNonZerosNonLinear applies the operator's Jacobian action to each
// standard basis vector around (x, t) and returns the positions where
// the result was nonzero, ordered column-major.
func FindNonZerosNonLinear(op Operator, x vector.Vector, t float64) ([]matrix.Position, error) {
	probe := vector.NewDense(op.NStates())
	out := vector.NewDense(op.NOut())
	var nonZeros []matrix.Position
	for j := 0; j < op.NStates(); j++ {
		_ = probe.Set(j, 1)
		if err := op.JacMulInplace(x, t, probe, out); err != nil {
			return nil, fmt.Errorf("FindNonZerosNonLinear: column %d: %w", j, err)
		}
		for i := 0; i < out.Len(); i++ {
			if v, _ := out.At(i); v != 0 {
				nonZeros = append(nonZeros, matrix.Position{Row: i, Col: j})
			}
		}
		_ = probe.Set(j, 0)
	}

	return nonZeros, nil
}

// FindNonZerosLinear probes a linear operator's matrix action with each
// standard basis vector and returns the responding positions, ordered
// column-major.
func FindNonZerosLinear(op LinearOperator, t float64) ([]matrix.Position, error) {
	probe := vector.NewDense(op.NStates())
	out := vector.NewDense(op.NOut())
	var nonZeros []matrix.Position
	for j := 0; j < op.NStates(); j++ {
		_ = probe.Set(j, 1)
		if err := op.GemvInplace(probe, t, 0, out); err != nil {
			return nil, fmt.Errorf("FindNonZerosLinear: column %d: %w", j, err)
		}
		for i := 0; i < out.Len(); i++ {
			if v, _ := out.At(i); v != 0 {
				nonZeros = append(nonZeros, matrix.Position{Row: i, Col: j})
			}
		}
		_ = probe.Set(j, 0)
	}

	return nonZeros, nil
}
