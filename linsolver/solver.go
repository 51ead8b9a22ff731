// Package linsolver - the LinearSolver contract.
package linsolver

import (
	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// LinearSolver factors a square system matrix once and solves A*x = b
// repeatedly against that factorization.
type LinearSolver interface {
	// SetProblem factors a; any previous factorization is discarded.
	// The matrix contents are captured at this call - later mutations
	// of a do not affect solves until the next SetProblem.
	SetProblem(a matrix.Matrix) error

	// SolveInPlace overwrites b with the solution of A*x = b.
	SolveInPlace(b vector.Vector) error
}
