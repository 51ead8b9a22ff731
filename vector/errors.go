// Package vector: sentinel error set.
// All failures returned by this package either are one of these
// sentinels or wrap one with call-site context; match with errors.Is.
package vector

import "errors"

var (
	// ErrIndexOutOfBounds indicates an element or scatter position outside [0, Len).
	ErrIndexOutOfBounds = errors.New("vector: index out of bounds")

	// ErrLengthMismatch indicates two operands of incompatible lengths.
	ErrLengthMismatch = errors.New("vector: length mismatch")

	// ErrBadIndexOrder indicates an index set that is not strictly ascending.
	ErrBadIndexOrder = errors.New("vector: indices must be strictly ascending")
)
