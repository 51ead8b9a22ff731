// Package linsolver - LU delegated to gonum's mat.LU.
package linsolver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// GonumLU is the external-library LU solver. An exactly singular
// factorization (zero determinant) is rejected by SetProblem with
// ErrSingular; gonum's near-singularity (Condition) report at solve
// time is not an error and the computed solution is returned. Any
// other library failure is wrapped in ErrBackend.
type GonumLU struct {
	n  int
	lu *mat.LU
}

// Compile-time assertion: *GonumLU implements the LinearSolver
// contract.
var _ LinearSolver = (*GonumLU)(nil)

// NewGonumLU returns an empty solver.
func NewGonumLU() *GonumLU { return &GonumLU{} }

// SetProblem factors a with gonum's LU.
func (s *GonumLU) SetProblem(a matrix.Matrix) error {
	if a.Rows() != a.Cols() {
		return fmt.Errorf("GonumLU.SetProblem: %dx%d: %w", a.Rows(), a.Cols(), ErrNotSquare)
	}
	n := a.Rows()
	var dense *mat.Dense
	if g, ok := a.(*matrix.Gonum); ok {
		dense = g.Unwrap()
	} else {
		dense = mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v, _ := a.At(i, j)
				dense.Set(i, j, v)
			}
		}
	}
	lu := &mat.LU{}
	lu.Factorize(dense)
	// An exactly singular factorization has a zero pivot; reject it now
	// rather than at the first solve.
	if lu.Det() == 0 {
		s.lu, s.n = nil, 0

		return fmt.Errorf("GonumLU.SetProblem: %w", ErrSingular)
	}
	s.n, s.lu = n, lu

	return nil
}

// SolveInPlace overwrites b with the solution of A*x = b.
func (s *GonumLU) SolveInPlace(b vector.Vector) error {
	if s.lu == nil {
		return fmt.Errorf("GonumLU.SolveInPlace: %w", ErrNoProblem)
	}
	if b.Len() != s.n {
		return fmt.Errorf("GonumLU.SolveInPlace: rhs len %d for dimension %d: %w", b.Len(), s.n, ErrDimensionMismatch)
	}
	rhs := mat.NewVecDense(s.n, nil)
	for i := 0; i < s.n; i++ {
		v, _ := b.At(i)
		rhs.SetVec(i, v)
	}
	var x mat.VecDense
	if err := s.lu.SolveVecTo(&x, false, rhs); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			// Ill-conditioned but solved; the solution is still the
			// best the factorization offers. Report it as usable.
			for i := 0; i < s.n; i++ {
				_ = b.Set(i, x.AtVec(i))
			}

			return nil
		}

		return fmt.Errorf("GonumLU.SolveInPlace: %v: %w", err, ErrBackend)
	}
	for i := 0; i < s.n; i++ {
		_ = b.Set(i, x.AtVec(i))
	}

	return nil
}
