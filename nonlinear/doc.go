// Package nonlinear solves F(x, t) = 0 by modified Newton iteration
// with an adaptive convergence test.
//
// What:
//
//   - SolverProblem - the shared tuple (operator, atol, rtol) a solver
//     works on.
//   - NonLinearSolver - the solver contract consumed by the ODE layer.
//   - Newton - modified Newton: the Jacobian is factored once per
//     ResetJacobian and reused across iterations and solves.
//   - Convergence - the status machine deciding Converged, Diverged,
//     Continue, or MaximumIterations from the scaled update norms.
//
// The working tolerance is tol = clamp(0.5*sqrt(rtol), 10*eps/rtol,
// 0.03): Newton's target is capped relative to the outer integrator's
// tolerance so inner iterations neither over- nor under-converge. The
// per-iteration test scales the update by scale = atol + rtol*|y_ref|
// and tracks the contraction rate; a rate at or above one, or a rate
// whose projection cannot reach tol within the iteration budget,
// terminates early as divergence.
//
// Errors:
//
//   - ErrDiverged, ErrMaxIterations - terminal iteration outcomes.
//   - ErrProblemNotSet - solving before SetProblem.
//
// Calling Convergence.CheckNewIteration before Reset is a programming
// error and panics; it is not part of the error taxonomy.
package nonlinear
