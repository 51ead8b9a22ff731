// Package linsolver provides the factor-once/solve-many linear solver
// used by the Newton iteration.
//
// What:
//
//   - LinearSolver - the two-call contract: SetProblem factors the
//     matrix, SolveInPlace reuses the factorization for each
//     right-hand side.
//   - LU - native partial-pivot LU over any Matrix backend.
//   - GonumLU - LU delegated to gonum's mat.LU.
//
// The factorization stays valid until the next SetProblem call; the
// modified-Newton loop exploits this by refactoring only when the
// Jacobian is reset.
//
// Errors:
//
//   - ErrSingular - the factorization found no usable pivot.
//   - ErrBackend - opaque failure inside the external library.
//   - ErrNoProblem - SolveInPlace before any SetProblem.
package linsolver
