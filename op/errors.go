// Package op: sentinel error set.
package op

import "errors"

var (
	// ErrParameterBound indicates an attempt to rebind the parameters
	// of an operator while a solver holds it.
	ErrParameterBound = errors.New("op: operator is held by a solver; parameters cannot be rebound")

	// ErrBadDimension indicates a closure constructed with non-positive
	// dimensions or an argument of the wrong length.
	ErrBadDimension = errors.New("op: invalid operator dimension")
)
