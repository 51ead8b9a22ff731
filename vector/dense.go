// Package vector - Dense, the native backend.
// Dense stores elements in a flat slice, mirroring the row-major flat
// storage used by the dense matrix backend.
package vector

import (
	"fmt"
	"math"
)

// Dense is a fixed-length vector backed by a flat []float64.
type Dense struct {
	data []float64
}

// Compile-time assertion: *Dense implements the Vector surface.
var _ Vector = (*Dense)(nil)

// NewDense returns a zero vector of length n. Negative lengths are a
// programming error and yield an empty vector of length 0.
func NewDense(n int) *Dense {
	if n < 0 {
		n = 0
	}

	return &Dense{data: make([]float64, n)}
}

// NewDenseFromSlice copies values into a fresh Dense.
func NewDenseFromSlice(values []float64) *Dense {
	d := &Dense{data: make([]float64, len(values))}
	copy(d.data, values)

	return d
}

// NewDenseFromElement returns a length-n vector with every component
// set to v.
func NewDenseFromElement(n int, v float64) *Dense {
	d := NewDense(n)
	d.Fill(v)

	return d
}

// Len returns the number of elements.
func (d *Dense) Len() int { return len(d.data) }

// At retrieves element i.
func (d *Dense) At(i int) (float64, error) {
	if i < 0 || i >= len(d.data) {
		return 0, fmt.Errorf("Dense.At(%d): %w", i, ErrIndexOutOfBounds)
	}

	return d.data[i], nil
}

// Set writes element i.
func (d *Dense) Set(i int, v float64) error {
	if i < 0 || i >= len(d.data) {
		return fmt.Errorf("Dense.Set(%d): %w", i, ErrIndexOutOfBounds)
	}
	d.data[i] = v

	return nil
}

// Clone returns a deep copy.
func (d *Dense) Clone() Vector {
	return NewDenseFromSlice(d.data)
}

// RawData exposes the backing slice without copy. Mutations through
// the slice are visible to the vector; length must not be changed.
func (d *Dense) RawData() []float64 { return d.data }

// CopyFrom overwrites the receiver with src.
func (d *Dense) CopyFrom(src Vector) error {
	if src.Len() != len(d.data) {
		return fmt.Errorf("Dense.CopyFrom: %d vs %d: %w", len(d.data), src.Len(), ErrLengthMismatch)
	}
	if rs := raw(src); rs != nil {
		copy(d.data, rs)

		return nil
	}
	for i := range d.data {
		d.data[i], _ = src.At(i)
	}

	return nil
}

// Fill sets every element to v.
func (d *Dense) Fill(v float64) {
	for i := range d.data {
		d.data[i] = v
	}
}

// Abs returns a new vector of elementwise absolute values.
func (d *Dense) Abs() Vector {
	out := NewDense(len(d.data))
	for i, v := range d.data {
		out.data[i] = math.Abs(v)
	}

	return out
}

// AddScalar adds c to every element in place.
func (d *Dense) AddScalar(c float64) {
	for i := range d.data {
		d.data[i] += c
	}
}

// MulAssign multiplies elementwise by other in place.
func (d *Dense) MulAssign(other Vector) error {
	if other.Len() != len(d.data) {
		return fmt.Errorf("Dense.MulAssign: %d vs %d: %w", len(d.data), other.Len(), ErrLengthMismatch)
	}
	if ro := raw(other); ro != nil {
		for i := range d.data {
			d.data[i] *= ro[i]
		}

		return nil
	}
	for i := range d.data {
		v, _ := other.At(i)
		d.data[i] *= v
	}

	return nil
}

// DivAssign divides elementwise by other in place. Division follows
// IEEE-754; a zero divisor produces Inf or NaN rather than an error.
func (d *Dense) DivAssign(other Vector) error {
	if other.Len() != len(d.data) {
		return fmt.Errorf("Dense.DivAssign: %d vs %d: %w", len(d.data), other.Len(), ErrLengthMismatch)
	}
	if ro := raw(other); ro != nil {
		for i := range d.data {
			d.data[i] /= ro[i]
		}

		return nil
	}
	for i := range d.data {
		v, _ := other.At(i)
		d.data[i] /= v
	}

	return nil
}

// Axpy computes self = alpha*x + beta*self in place.
func (d *Dense) Axpy(alpha float64, x Vector, beta float64) error {
	if x.Len() != len(d.data) {
		return fmt.Errorf("Dense.Axpy: %d vs %d: %w", len(d.data), x.Len(), ErrLengthMismatch)
	}
	if rx := raw(x); rx != nil {
		for i := range d.data {
			d.data[i] = alpha*rx[i] + beta*d.data[i]
		}

		return nil
	}
	for i := range d.data {
		v, _ := x.At(i)
		d.data[i] = alpha*v + beta*d.data[i]
	}

	return nil
}

// Scale multiplies every element by alpha in place.
func (d *Dense) Scale(alpha float64) {
	for i := range d.data {
		d.data[i] *= alpha
	}
}

// Norm returns the Euclidean norm.
func (d *Dense) Norm() float64 {
	var sum float64
	for _, v := range d.data {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// FilterIndices returns the ascending positions whose values satisfy
// pred.
func (d *Dense) FilterIndices(pred func(float64) bool) Index {
	var ix Index
	for i, v := range d.data {
		if pred(v) {
			ix = append(ix, i)
		}
	}

	return ix
}

// Filter returns the elements at the given positions as a new vector.
func (d *Dense) Filter(idx Index) (Vector, error) {
	if err := idx.validateFor(len(d.data)); err != nil {
		return nil, fmt.Errorf("Dense.Filter: %w", err)
	}
	out := NewDense(len(idx))
	for k, p := range idx {
		out.data[k] = d.data[p]
	}

	return out, nil
}

// ScatterFrom writes src[k] into self[idx[k]] for each k.
func (d *Dense) ScatterFrom(src Vector, idx Index) error {
	if src.Len() != len(idx) {
		return fmt.Errorf("Dense.ScatterFrom: %d values for %d indices: %w", src.Len(), len(idx), ErrLengthMismatch)
	}
	if err := idx.validateFor(len(d.data)); err != nil {
		return fmt.Errorf("Dense.ScatterFrom: %w", err)
	}
	for k, p := range idx {
		d.data[p], _ = src.At(k)
	}

	return nil
}

// String implements fmt.Stringer for debugging.
func (d *Dense) String() string {
	out := "["
	for i, v := range d.data {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%g", v)
	}

	return out + "]"
}
