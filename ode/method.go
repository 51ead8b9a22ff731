// Package ode - the integrator-facing Method contract and its default
// compositions.
package ode

import (
	"fmt"
	"sort"

	"github.com/nabla-rs/diffsol/nonlinear"
	"github.com/nabla-rs/diffsol/vector"
)

// Method is the contract integrator implementations satisfy. A Method
// steps the state it was given, interpolates inside the last step, and
// returns the state to the caller on request; it does not create
// states itself.
type Method interface {
	// Problem returns the current problem, or nil before SetProblem.
	Problem() *Problem

	// SetProblem installs a state and problem, performing any
	// initialisation the integrator needs. The state is assumed
	// consistent with the algebraic constraints.
	SetProblem(state *State, p *Problem) error

	// Step advances the internal state by one step.
	Step() error

	// Interpolate evaluates the solution at a time between the current
	// time and the last step taken.
	Interpolate(t float64) (vector.Vector, error)

	// State returns the current state, or nil if none is set.
	State() *State

	// TakeState removes and returns the current state; the Method
	// needs a new SetProblem afterwards.
	TakeState() *State
}

// Solve initializes m with a fresh state for p and steps until the
// solution covers t, returning the interpolated value there.
func Solve(m Method, p *Problem, t float64) (vector.Vector, error) {
	if err := m.SetProblem(NewState(p), p); err != nil {
		return nil, err
	}

	return stepTo(m, t)
}

// MakeConsistentAndSolve first projects the initial state onto the
// algebraic constraints using rootSolver, then solves up to t.
func MakeConsistentAndSolve(m Method, p *Problem, t float64, rootSolver nonlinear.NonLinearSolver) (vector.Vector, error) {
	state, err := NewConsistentState(p, rootSolver)
	if err != nil {
		return nil, err
	}
	if err = m.SetProblem(state, p); err != nil {
		return nil, err
	}

	return stepTo(m, t)
}

// stepTo drives m until its time passes t and interpolates back.
func stepTo(m Method, t float64) (vector.Vector, error) {
	for {
		s := m.State()
		if s == nil {
			return nil, fmt.Errorf("ode.stepTo: %w", ErrStateNotSet)
		}
		if s.T > t {
			break
		}
		if err := m.Step(); err != nil {
			return nil, err
		}
	}

	return m.Interpolate(t)
}

// SolutionPoint is one (state, t) sample of a solution.
type SolutionPoint struct {
	State vector.Vector
	T     float64
}

// Solution is a time-ordered collection of solution points.
type Solution struct {
	Points []SolutionPoint
}

// Push inserts a point, keeping the collection sorted by time.
func (s *Solution) Push(state vector.Vector, t float64) {
	at := sort.Search(len(s.Points), func(i int) bool { return s.Points[i].T > t })
	s.Points = append(s.Points, SolutionPoint{})
	copy(s.Points[at+1:], s.Points[at:])
	s.Points[at] = SolutionPoint{State: state, T: t}
}
