// Package vector - capability surface and the Index type.
package vector

import (
	"fmt"
	"math"
)

// Epsilon is the float64 machine epsilon used by tolerance logic
// throughout the solver core.
const Epsilon = 2.220446049250313e-16

// Vector is the capability set every backend must provide.
// Lengths are immutable after construction. In-place methods mutate
// the receiver; methods returning a Vector allocate on the receiver's
// backend.
type Vector interface {
	// Len returns the number of elements.
	Len() int

	// At retrieves element i, or ErrIndexOutOfBounds.
	At(i int) (float64, error)

	// Set writes element i, or ErrIndexOutOfBounds.
	Set(i int, v float64) error

	// Clone returns a deep copy on the same backend.
	Clone() Vector

	// CopyFrom overwrites the receiver with src (ErrLengthMismatch on
	// length disagreement).
	CopyFrom(src Vector) error

	// Fill sets every element to v.
	Fill(v float64)

	// Abs returns a new vector of elementwise absolute values.
	Abs() Vector

	// AddScalar adds c to every element in place.
	AddScalar(c float64)

	// MulAssign multiplies elementwise by other in place.
	MulAssign(other Vector) error

	// DivAssign divides elementwise by other in place.
	DivAssign(other Vector) error

	// Axpy computes self = alpha*x + beta*self in place.
	Axpy(alpha float64, x Vector, beta float64) error

	// Scale multiplies every element by alpha in place.
	Scale(alpha float64)

	// Norm returns the Euclidean (2-) norm.
	Norm() float64

	// FilterIndices returns the ascending positions whose values
	// satisfy pred.
	FilterIndices(pred func(float64) bool) Index

	// Filter returns a new short vector holding the elements at the
	// given positions, in order.
	Filter(idx Index) (Vector, error)

	// ScatterFrom writes src[k] into self[idx[k]] for each k. Indices
	// must be strictly ascending and in range; len(src) must equal
	// len(idx).
	ScatterFrom(src Vector, idx Index) error
}

// Index is an ordered sequence of positions into a vector. Instances
// built by NewIndex or FilterIndices are strictly ascending; scatter
// operations rely on that ordering.
type Index []int

// NewIndex validates that positions are non-negative and strictly
// ascending and returns them as an Index.
func NewIndex(positions []int) (Index, error) {
	for k, p := range positions {
		if p < 0 {
			return nil, fmt.Errorf("NewIndex: position %d: %w", p, ErrIndexOutOfBounds)
		}
		if k > 0 && p <= positions[k-1] {
			return nil, fmt.Errorf("NewIndex: position %d after %d: %w", p, positions[k-1], ErrBadIndexOrder)
		}
	}
	ix := make(Index, len(positions))
	copy(ix, positions)

	return ix, nil
}

// Len returns the number of positions in the index.
func (ix Index) Len() int { return len(ix) }

// Clone returns a deep copy of the index.
func (ix Index) Clone() Index {
	cp := make(Index, len(ix))
	copy(cp, ix)

	return cp
}

// validateFor checks that every position fits a vector of length n and
// that the ordering invariant still holds.
func (ix Index) validateFor(n int) error {
	for k, p := range ix {
		if p < 0 || p >= n {
			return fmt.Errorf("Index: position %d for length %d: %w", p, n, ErrIndexOutOfBounds)
		}
		if k > 0 && p <= ix[k-1] {
			return fmt.Errorf("Index: position %d after %d: %w", p, ix[k-1], ErrBadIndexOrder)
		}
	}

	return nil
}

// raw returns the contiguous backing slice of v when the backend
// exposes one, or nil. Kernels use it as a fast path and fall back to
// the At/Set surface otherwise.
func raw(v Vector) []float64 {
	switch w := v.(type) {
	case *Dense:
		return w.data
	case *Gonum:
		return w.RawData()
	}

	return nil
}

// AllClose reports whether |a[i]-b[i]| <= atol + rtol*|b[i]| for every
// component. Vectors of different lengths are never close.
func AllClose(a, b Vector, rtol, atol float64) bool {
	if a.Len() != b.Len() {
		return false
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := 0; i < a.Len(); i++ {
		av, _ := a.At(i)
		bv, _ := b.At(i)
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false
		}
	}

	return true
}
