// Package linsolver - native LU with partial pivoting.
// The factorization follows the Doolittle scheme (unit lower triangle)
// with row pivoting for stability; L and U share one flat buffer so a
// solve is two triangular sweeps over cached data.
package linsolver

import (
	"fmt"
	"math"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// LU is the native dense LU solver. The zero value is ready to use;
// call SetProblem before SolveInPlace.
type LU struct {
	n    int
	lu   []float64 // packed L (unit diagonal implied) and U, row-major
	perm []int     // row permutation applied during pivoting
}

// Compile-time assertion: *LU implements the LinearSolver contract.
var _ LinearSolver = (*LU)(nil)

// NewLU returns an empty solver.
func NewLU() *LU { return &LU{} }

// SetProblem copies a into the internal buffer and factors it.
// A pivot column with no usable entry yields ErrSingular and leaves
// the solver without a valid factorization.
func (s *LU) SetProblem(a matrix.Matrix) error {
	if a.Rows() != a.Cols() {
		return fmt.Errorf("LU.SetProblem: %dx%d: %w", a.Rows(), a.Cols(), ErrNotSquare)
	}
	n := a.Rows()
	lu := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			lu[i*n+j], _ = a.At(i, j)
		}
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for k := 0; k < n; k++ {
		// Select the pivot row by largest magnitude in column k.
		pivot, pivotVal := k, math.Abs(lu[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(lu[i*n+k]); v > pivotVal {
				pivot, pivotVal = i, v
			}
		}
		if pivotVal == 0 {
			s.lu, s.perm, s.n = nil, nil, 0

			return fmt.Errorf("LU.SetProblem: zero pivot in column %d: %w", k, ErrSingular)
		}
		if pivot != k {
			// Swap full rows so L multipliers stay consistent.
			for j := 0; j < n; j++ {
				lu[k*n+j], lu[pivot*n+j] = lu[pivot*n+j], lu[k*n+j]
			}
			perm[k], perm[pivot] = perm[pivot], perm[k]
		}
		// Eliminate below the pivot, storing multipliers in place.
		inv := 1 / lu[k*n+k]
		for i := k + 1; i < n; i++ {
			m := lu[i*n+k] * inv
			lu[i*n+k] = m
			for j := k + 1; j < n; j++ {
				lu[i*n+j] -= m * lu[k*n+j]
			}
		}
	}
	s.n, s.lu, s.perm = n, lu, perm

	return nil
}

// SolveInPlace overwrites b with the solution of A*x = b using the
// cached factorization.
func (s *LU) SolveInPlace(b vector.Vector) error {
	if s.lu == nil {
		return fmt.Errorf("LU.SolveInPlace: %w", ErrNoProblem)
	}
	if b.Len() != s.n {
		return fmt.Errorf("LU.SolveInPlace: rhs len %d for dimension %d: %w", b.Len(), s.n, ErrDimensionMismatch)
	}
	n := s.n
	// Apply the row permutation into a work buffer.
	work := make([]float64, n)
	for i := 0; i < n; i++ {
		work[i], _ = b.At(s.perm[i])
	}
	// Forward substitution with unit lower triangle.
	for i := 1; i < n; i++ {
		sum := work[i]
		for j := 0; j < i; j++ {
			sum -= s.lu[i*n+j] * work[j]
		}
		work[i] = sum
	}
	// Backward substitution with the upper triangle.
	for i := n - 1; i >= 0; i-- {
		sum := work[i]
		for j := i + 1; j < n; j++ {
			sum -= s.lu[i*n+j] * work[j]
		}
		work[i] = sum / s.lu[i*n+i]
	}
	for i := 0; i < n; i++ {
		if err := b.Set(i, work[i]); err != nil {
			return err
		}
	}

	return nil
}
