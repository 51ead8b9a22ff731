// Package matrix provides the rank-2 abstraction of the solver core:
// dense and sparse matrices behind one capability set, plus borrowed
// views and sparsity patterns.
//
// What:
//
//   - Matrix - the capability set (GEMV, column writes, diagonal,
//     scatter-by-indices, scale-add) shared by all backends.
//   - DenseMatrix - the dense refinement adding GEMM and views.
//   - Dense - native row-major backend on a flat []float64.
//   - Sparse - native compressed-column backend with a fixed pattern.
//   - Gonum - external-library dense backend wrapping mat.Dense.
//   - Sparsity - the set of (row, col) positions a sparse matrix may
//     hold, fixed for the matrix's lifetime.
//   - View / ViewMut - borrowed windows permitting BLAS operations
//     without copying; a view must not outlive its base matrix.
//
// Why:
//
//   - The operator and Jacobian layers only ever touch the Matrix
//     surface, so dense and sparse storage (and the gonum stack) are
//     interchangeable under them.
//   - SetDataWithIndices is the write primitive behind sparsity-aware
//     Jacobian materialization: coloring computes (position, source)
//     tables once and replays them per evaluation.
//
// Complexity:
//
//   - GEMV: O(r*c) dense, O(nnz) sparse. GEMM: O(r*k*c).
//   - Triplet construction: O(t) dense, O(t log t) sparse (pattern
//     sort).
//
// Errors:
//
//   - ErrBadShape, ErrIndexOutOfBounds, ErrDimensionMismatch -
//     shape/index violations at the API boundary.
//   - ErrOutsidePattern, ErrPatternMismatch, ErrDuplicateEntry -
//     sparse pattern discipline.
//   - ErrAliased - in-place operations whose operands must not alias.
//
// All errors are package-prefixed sentinels matched with errors.Is.
package matrix
