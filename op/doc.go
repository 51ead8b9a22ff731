// Package op defines the operator framework of the solver core:
// nonlinear, linear, and constant functions as first-class values with
// derived Jacobians and evaluation statistics.
//
// What:
//
//   - Op / NonLinearOp / LinearOp / ConstantOp - the capability set
//     consumed by the nonlinear solver and the ODE layer.
//   - Closure / LinearClosure / ConstantClosure - wrappers turning
//     plain functions (a residual and its Jacobian action, a GEMV-style
//     matrix action, or a constant) plus a shared parameter vector into
//     an operator.
//   - Unit - the identity operator, usable as either a NonLinearOp or
//     a LinearOp (the default mass matrix of a plain ODE).
//   - Filtered - restriction of an operator to an index subset with
//     the complement frozen; the residual projection behind
//     DAE-consistent initial states.
//   - Statistics - per-operator counters (calls, Jacobian actions,
//     matrix evaluations), JSON-serializable for diagnostics.
//
// Statistics live behind a shared pointer so read-only holders of an
// operator still record their evaluations; the core is single-threaded
// and no synchronization is involved. Parameter vectors are shared:
// SetParams fails with ErrParameterBound while any solver holds the
// operator (Retain/Release accounting).
package op
