// Package linsolver: sentinel error set.
package linsolver

import "errors"

var (
	// ErrSingular is returned when factorization fails on a singular
	// (or numerically singular) matrix.
	ErrSingular = errors.New("linsolver: singular matrix")

	// ErrBackend wraps an opaque failure from an external numeric
	// library.
	ErrBackend = errors.New("linsolver: backend failure")

	// ErrNoProblem indicates SolveInPlace was called before SetProblem.
	ErrNoProblem = errors.New("linsolver: no matrix has been set")

	// ErrNotSquare indicates a non-square system matrix.
	ErrNotSquare = errors.New("linsolver: matrix is not square")

	// ErrDimensionMismatch indicates a right-hand side whose length
	// differs from the factored dimension.
	ErrDimensionMismatch = errors.New("linsolver: dimension mismatch")
)
