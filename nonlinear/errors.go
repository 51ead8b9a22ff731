// Package nonlinear: sentinel error set.
package nonlinear

import "errors"

var (
	// ErrDiverged indicates the convergence test detected a growing or
	// projected-failing update sequence.
	ErrDiverged = errors.New("nonlinear: iteration diverged")

	// ErrMaxIterations indicates the iteration budget was exhausted
	// without convergence.
	ErrMaxIterations = errors.New("nonlinear: maximum iterations exceeded")

	// ErrProblemNotSet indicates a solve was attempted before
	// SetProblem.
	ErrProblemNotSet = errors.New("nonlinear: no problem has been set")

	// ErrBadProblem indicates a problem whose tolerance vector does not
	// match the operator dimensions.
	ErrBadProblem = errors.New("nonlinear: tolerance length does not match operator states")
)
