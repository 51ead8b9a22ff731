// Package ode holds the problem and state glue between the operator
// core and concrete integrators: the equations record M(t)*y' =
// f(y, t; p), tolerance bookkeeping, consistent initial states for the
// differential-algebraic case, and the integrator-facing Method
// contract.
//
// What:
//
//   - Equations - right-hand side, mass matrix operator, and initial
//     state function of one system.
//   - System - the closure-backed Equations implementation; a nil mass
//     defaults to the identity (a plain ODE).
//   - Problem - shared (equations, rtol, atol, t0, h0) record.
//   - State - the (y, t, h) triple owned by the caller and passed into
//     and out of integrators.
//   - NewState / NewConsistentState - plain initialization versus the
//     algebraic-constraint projection for singular mass matrices.
//   - Method - the integrator contract, with Solve and
//     MakeConsistentAndSolve compositions.
//   - Solution - time-ordered (state, t) points for harnesses.
//
// Integrator implementations (BDF, SDIRK, ...) live outside this
// package and consume these contracts.
package ode
