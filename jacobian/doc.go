// Package jacobian discovers sparsity patterns of operators and
// materializes sparse Jacobians with graph-coloring compression.
//
// What:
//
//   - FindNonZerosNonLinear / FindNonZerosLinear - probe an operator
//     with every standard basis vector and record the (row, col)
//     positions that respond. O(n) operator actions, intended to run
//     once at problem setup.
//   - Coloring - a greedy distance-1 partition of the columns such
//     that no two columns in a group share a nonzero row. One operator
//     action per group then recovers every column in it; the scatter
//     tables that distribute the probe result back into the matrix are
//     precomputed at construction and replayed on each call.
//
// The column partition is deterministic for a fixed nonzero set:
// columns are visited in ascending order and each takes the lowest
// group whose row support is disjoint from its own.
package jacobian
