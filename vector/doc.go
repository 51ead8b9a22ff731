// Package vector provides the dense vector abstraction shared by every
// layer of the solver core.
//
// What:
//
//   - Vector - the capability set (BLAS-1 ops, elementwise ops,
//     filter/scatter) that higher layers program against.
//   - Dense - the native backend: a flat []float64.
//   - Gonum - the external-library backend wrapping mat.VecDense.
//   - Index - an ordered set of positions produced by FilterIndices
//     and consumed by ScatterFrom.
//
// Why:
//
//   - Operators, Jacobian probing, and Newton iteration only ever need
//     the Vector surface, so either backend can be swapped in without
//     touching them.
//   - Filter/scatter is the mechanism behind restricting a residual to
//     the algebraic components of a DAE and writing the converged
//     values back.
//
// Complexity:
//
//   - All elementwise operations and Axpy: O(n).
//   - FilterIndices/Filter/ScatterFrom: O(n) / O(k) / O(k).
//
// Errors:
//
//   - ErrIndexOutOfBounds: element or scatter position outside [0, n).
//   - ErrLengthMismatch: operands of different lengths.
//   - ErrBadIndexOrder: scatter indices not strictly ascending.
//
// Vectors have a fixed length for their whole lifetime; no operation
// grows or shrinks one.
package vector
