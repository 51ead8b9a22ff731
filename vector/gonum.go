// Package vector - Gonum, the external-library backend.
// Gonum adapts gonum's mat.VecDense to the Vector surface so the rest
// of the core can run unchanged on top of the gonum stack. Storage is
// owned by the wrapped VecDense and released by the garbage collector;
// there is no explicit free step.
package vector

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Gonum is a fixed-length vector backed by a gonum mat.VecDense.
// A zero-length vector is represented by a nil inner VecDense, since
// gonum rejects zero-sized allocations.
type Gonum struct {
	v *mat.VecDense
}

// Compile-time assertion: *Gonum implements the Vector surface.
var _ Vector = (*Gonum)(nil)

// NewGonum returns a zero vector of length n on the gonum backend.
func NewGonum(n int) *Gonum {
	if n <= 0 {
		return &Gonum{}
	}

	return &Gonum{v: mat.NewVecDense(n, nil)}
}

// NewGonumFromSlice copies values into a fresh gonum-backed vector.
func NewGonumFromSlice(values []float64) *Gonum {
	if len(values) == 0 {
		return &Gonum{}
	}
	cp := make([]float64, len(values))
	copy(cp, values)

	return &Gonum{v: mat.NewVecDense(len(cp), cp)}
}

// WrapGonum adopts an existing VecDense without copying. The caller
// must not resize v afterwards.
func WrapGonum(v *mat.VecDense) *Gonum { return &Gonum{v: v} }

// Unwrap exposes the underlying VecDense for interop with gonum APIs.
func (g *Gonum) Unwrap() *mat.VecDense { return g.v }

// RawData returns the contiguous backing slice (VecDense built by this
// package always has unit increment). Mutations through the slice are
// visible to the vector.
func (g *Gonum) RawData() []float64 {
	if g.v == nil {
		return nil
	}
	rv := g.v.RawVector()
	if rv.Inc != 1 {
		return nil
	}

	return rv.Data[:rv.N]
}

// Len returns the number of elements.
func (g *Gonum) Len() int {
	if g.v == nil {
		return 0
	}

	return g.v.Len()
}

// At retrieves element i.
func (g *Gonum) At(i int) (float64, error) {
	if i < 0 || i >= g.Len() {
		return 0, fmt.Errorf("Gonum.At(%d): %w", i, ErrIndexOutOfBounds)
	}

	return g.v.AtVec(i), nil
}

// Set writes element i.
func (g *Gonum) Set(i int, v float64) error {
	if i < 0 || i >= g.Len() {
		return fmt.Errorf("Gonum.Set(%d): %w", i, ErrIndexOutOfBounds)
	}
	g.v.SetVec(i, v)

	return nil
}

// Clone returns a deep copy on the gonum backend.
func (g *Gonum) Clone() Vector {
	if g.v == nil {
		return &Gonum{}
	}
	cp := mat.NewVecDense(g.v.Len(), nil)
	cp.CopyVec(g.v)

	return &Gonum{v: cp}
}

// CopyFrom overwrites the receiver with src.
func (g *Gonum) CopyFrom(src Vector) error {
	if src.Len() != g.Len() {
		return fmt.Errorf("Gonum.CopyFrom: %d vs %d: %w", g.Len(), src.Len(), ErrLengthMismatch)
	}
	if g.v == nil {
		return nil
	}
	if o, ok := src.(*Gonum); ok {
		g.v.CopyVec(o.v)

		return nil
	}
	for i := 0; i < g.v.Len(); i++ {
		v, _ := src.At(i)
		g.v.SetVec(i, v)
	}

	return nil
}

// Fill sets every element to v.
func (g *Gonum) Fill(v float64) {
	data := g.RawData()
	for i := range data {
		data[i] = v
	}
}

// Abs returns a new vector of elementwise absolute values.
func (g *Gonum) Abs() Vector {
	out := NewGonum(g.Len())
	src, dst := g.RawData(), out.RawData()
	for i, v := range src {
		dst[i] = math.Abs(v)
	}

	return out
}

// AddScalar adds c to every element in place.
func (g *Gonum) AddScalar(c float64) {
	floats.AddConst(c, g.RawData())
}

// MulAssign multiplies elementwise by other in place.
func (g *Gonum) MulAssign(other Vector) error {
	if other.Len() != g.Len() {
		return fmt.Errorf("Gonum.MulAssign: %d vs %d: %w", g.Len(), other.Len(), ErrLengthMismatch)
	}
	if ro := raw(other); ro != nil {
		floats.Mul(g.RawData(), ro)

		return nil
	}
	data := g.RawData()
	for i := range data {
		v, _ := other.At(i)
		data[i] *= v
	}

	return nil
}

// DivAssign divides elementwise by other in place (IEEE-754 semantics
// for zero divisors).
func (g *Gonum) DivAssign(other Vector) error {
	if other.Len() != g.Len() {
		return fmt.Errorf("Gonum.DivAssign: %d vs %d: %w", g.Len(), other.Len(), ErrLengthMismatch)
	}
	if ro := raw(other); ro != nil {
		floats.Div(g.RawData(), ro)

		return nil
	}
	data := g.RawData()
	for i := range data {
		v, _ := other.At(i)
		data[i] /= v
	}

	return nil
}

// Axpy computes self = alpha*x + beta*self in place.
func (g *Gonum) Axpy(alpha float64, x Vector, beta float64) error {
	if x.Len() != g.Len() {
		return fmt.Errorf("Gonum.Axpy: %d vs %d: %w", g.Len(), x.Len(), ErrLengthMismatch)
	}
	if g.v == nil {
		return nil
	}
	if o, ok := x.(*Gonum); ok {
		g.v.ScaleVec(beta, g.v)
		g.v.AddScaledVec(g.v, alpha, o.v)

		return nil
	}
	data := g.RawData()
	for i := range data {
		v, _ := x.At(i)
		data[i] = alpha*v + beta*data[i]
	}

	return nil
}

// Scale multiplies every element by alpha in place.
func (g *Gonum) Scale(alpha float64) {
	if g.v == nil {
		return
	}
	g.v.ScaleVec(alpha, g.v)
}

// Norm returns the Euclidean norm.
func (g *Gonum) Norm() float64 {
	if g.v == nil {
		return 0
	}

	return mat.Norm(g.v, 2)
}

// FilterIndices returns the ascending positions whose values satisfy
// pred.
func (g *Gonum) FilterIndices(pred func(float64) bool) Index {
	var ix Index
	for i, v := range g.RawData() {
		if pred(v) {
			ix = append(ix, i)
		}
	}

	return ix
}

// Filter returns the elements at the given positions as a new vector.
func (g *Gonum) Filter(idx Index) (Vector, error) {
	if err := idx.validateFor(g.Len()); err != nil {
		return nil, fmt.Errorf("Gonum.Filter: %w", err)
	}
	out := NewGonum(len(idx))
	src, dst := g.RawData(), out.RawData()
	for k, p := range idx {
		dst[k] = src[p]
	}

	return out, nil
}

// ScatterFrom writes src[k] into self[idx[k]] for each k.
func (g *Gonum) ScatterFrom(src Vector, idx Index) error {
	if src.Len() != len(idx) {
		return fmt.Errorf("Gonum.ScatterFrom: %d values for %d indices: %w", src.Len(), len(idx), ErrLengthMismatch)
	}
	if err := idx.validateFor(g.Len()); err != nil {
		return fmt.Errorf("Gonum.ScatterFrom: %w", err)
	}
	data := g.RawData()
	for k, p := range idx {
		data[p], _ = src.At(k)
	}

	return nil
}
