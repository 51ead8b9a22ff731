// Package matrix: sentinel error set.
// Every error returned by this package either is one of these
// sentinels or wraps one with call-site context ("Dense.Set(3,7): ..."
// shape); callers and tests match with errors.Is. Panics are reserved
// for programmer errors in private helpers.
package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (non-positive rows or columns, or a view window outside its base).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrIndexOutOfBounds indicates a row, column, or triplet index
	// outside the declared shape.
	ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. GEMV with a wrong-length vector or GEMM with disagreeing
	// inner dimensions.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrOutsidePattern indicates a write to a sparse position that the
	// fixed sparsity pattern does not contain.
	ErrOutsidePattern = errors.New("matrix: position outside sparsity pattern")

	// ErrPatternMismatch indicates two sparse operands whose patterns
	// disagree in an operation that requires identical patterns.
	ErrPatternMismatch = errors.New("matrix: sparsity patterns differ")

	// ErrDuplicateEntry indicates a duplicate (row, col) pair where the
	// pattern construction requires unique positions.
	ErrDuplicateEntry = errors.New("matrix: duplicate entry in sparsity pattern")

	// ErrAliased indicates an in-place operation whose operands must be
	// distinct objects but were not.
	ErrAliased = errors.New("matrix: operands must not alias the receiver")

	// ErrNaNInf signals a NaN or +-Inf value where the configured
	// numeric policy requires finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
