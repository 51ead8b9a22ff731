// Package ode - the equations record.
package ode

import (
	"github.com/nabla-rs/diffsol/op"
	"github.com/nabla-rs/diffsol/vector"
)

// Equations describes one system M(t)*y' = f(y, t; p): the right-hand
// side operator, the mass matrix operator, and the initial state.
type Equations interface {
	// Rhs returns the right-hand side f as a nonlinear operator.
	Rhs() op.NonLinearOp

	// Mass returns the mass matrix M as a linear operator. Singular
	// rows encode algebraic constraints.
	Mass() op.LinearOp

	// Init evaluates the initial state at time t.
	Init(t float64) vector.Vector

	// SetParams rebinds the parameter vector of the underlying
	// operators.
	SetParams(p vector.Vector) error
}

// InitFunc produces the initial state for a system.
type InitFunc func(t float64) vector.Vector

// System is the closure-backed Equations implementation.
type System struct {
	rhs  op.NonLinearOp
	mass op.LinearOp
	init InitFunc
}

// Compile-time assertion: *System implements Equations.
var _ Equations = (*System)(nil)

// NewSystem assembles a system from its parts. A nil mass defaults to
// the identity operator, i.e. a plain ODE.
func NewSystem(rhs op.NonLinearOp, mass op.LinearOp, init InitFunc) *System {
	if mass == nil {
		mass = op.NewUnit(rhs.NStates())
	}

	return &System{rhs: rhs, mass: mass, init: init}
}

// Rhs returns the right-hand side operator.
func (s *System) Rhs() op.NonLinearOp { return s.rhs }

// Mass returns the mass matrix operator.
func (s *System) Mass() op.LinearOp { return s.mass }

// Init evaluates the initial state at time t.
func (s *System) Init(t float64) vector.Vector { return s.init(t) }

// paramSetter is the optional rebinding surface of an operator.
type paramSetter interface {
	SetParams(p vector.Vector) error
}

// SetParams rebinds the right-hand side's parameters when it supports
// rebinding; a right-hand side without a SetParams method ignores the
// call. The mass operator's parameters are not rebound.
func (s *System) SetParams(p vector.Vector) error {
	if ps, ok := s.rhs.(paramSetter); ok {
		return ps.SetParams(p)
	}

	return nil
}
