// Package ode: sentinel error set.
package ode

import "errors"

var (
	// ErrBadProblem indicates a tolerance vector whose length does not
	// match the system size.
	ErrBadProblem = errors.New("ode: tolerance length does not match system size")

	// ErrStateNotSet indicates a Method was driven before SetProblem
	// installed a state.
	ErrStateNotSet = errors.New("ode: solver state has not been set")
)
