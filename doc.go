// Package diffsol is the core of a stiff ODE/DAE solver library for
// problems of the form M(t)*y' = f(y, t; p), including singular mass
// matrices.
//
// The module is organized as small focused packages:
//
//	vector/     - dense vectors (native + gonum backends), index sets,
//	              filter/scatter
//	matrix/     - dense and compressed-column matrices behind one
//	              capability set, sparsity patterns, borrowed views
//	linsolver/  - factor-once/solve-many LU (native + gonum)
//	op/         - nonlinear/linear/constant operators from closures,
//	              evaluation statistics, DAE residual projection
//	jacobian/   - sparsity discovery and graph-coloring compression
//	nonlinear/  - modified Newton with an adaptive convergence test
//	ode/        - problem/state glue, consistent initial states, the
//	              integrator-facing Method contract
//
// Integrators (BDF, SDIRK), command-line tooling, and bindings to
// native solver libraries build on these contracts and live outside
// this module.
package diffsol
