// Package op - Filtered, restriction of an operator to an index
// subset.
// The wrapped residual is evaluated on the full state with the
// complement components frozen at their reference values; only the
// selected components of input and output cross the boundary. This is
// the projection used to solve for the algebraic components of a DAE
// without perturbing the differential ones.
package op

import (
	"fmt"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// Filtered restricts inner to the components listed in indices.
type Filtered struct {
	inner   NonLinearOp
	indices vector.Index
	frozen  vector.Vector // reference full state; complement stays here
	xFull   vector.Vector // scratch: full input
	vFull   vector.Vector // scratch: full direction
	yFull   vector.Vector // scratch: full output
}

// Compile-time assertion: *Filtered implements NonLinearOp.
var _ NonLinearOp = (*Filtered)(nil)

// NewFiltered wraps inner, freezing the complement of indices at the
// corresponding components of y.
func NewFiltered(inner NonLinearOp, y vector.Vector, indices vector.Index) (*Filtered, error) {
	if y.Len() != inner.NStates() {
		return nil, fmt.Errorf("NewFiltered: state len %d for operator with %d states: %w",
			y.Len(), inner.NStates(), ErrBadDimension)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("NewFiltered: empty index set: %w", ErrBadDimension)
	}
	return &Filtered{
		inner:   inner,
		indices: indices.Clone(),
		frozen:  y.Clone(),
		xFull:   vector.NewDense(inner.NStates()),
		vFull:   vector.NewDense(inner.NStates()),
		yFull:   vector.NewDense(inner.NOut()),
	}, nil
}

// Indices returns the positions the operator is restricted to.
func (f *Filtered) Indices() vector.Index { return f.indices }

// NStates returns the size of the restricted system.
func (f *Filtered) NStates() int { return len(f.indices) }

// NOut returns the size of the restricted system.
func (f *Filtered) NOut() int { return len(f.indices) }

// NParams returns the wrapped operator's parameter count.
func (f *Filtered) NParams() int { return f.inner.NParams() }

// Sparsity returns nil: the restricted Jacobian is materialized dense.
func (f *Filtered) Sparsity() *matrix.Sparsity { return nil }

// Statistics returns the wrapped operator's counters: evaluations of
// the restriction are evaluations of the inner operator.
func (f *Filtered) Statistics() Statistics { return f.inner.Statistics() }

// Retain forwards borrow accounting to the wrapped operator.
func (f *Filtered) Retain() { Retain(f.inner) }

// Release forwards borrow accounting to the wrapped operator.
func (f *Filtered) Release() { Release(f.inner) }

// CallInplace evaluates the restricted residual: the full state is the
// frozen reference with x scattered into the selected positions.
func (f *Filtered) CallInplace(x vector.Vector, t float64, y vector.Vector) error {
	if err := f.xFull.CopyFrom(f.frozen); err != nil {
		return err
	}
	if err := f.xFull.ScatterFrom(x, f.indices); err != nil {
		return fmt.Errorf("Filtered.CallInplace: %w", err)
	}
	if err := f.inner.CallInplace(f.xFull, t, f.yFull); err != nil {
		return err
	}

	return filterInto(f.yFull, f.indices, y)
}

// JacMulInplace evaluates the restricted Jacobian action: the
// direction is zero on the frozen complement.
func (f *Filtered) JacMulInplace(x vector.Vector, t float64, v, y vector.Vector) error {
	if err := f.xFull.CopyFrom(f.frozen); err != nil {
		return err
	}
	if err := f.xFull.ScatterFrom(x, f.indices); err != nil {
		return fmt.Errorf("Filtered.JacMulInplace: %w", err)
	}
	f.vFull.Fill(0)
	if err := f.vFull.ScatterFrom(v, f.indices); err != nil {
		return fmt.Errorf("Filtered.JacMulInplace: %w", err)
	}
	if err := f.inner.JacMulInplace(f.xFull, t, f.vFull, f.yFull); err != nil {
		return err
	}

	return filterInto(f.yFull, f.indices, y)
}

// JacobianInplace materializes the restricted Jacobian by basis
// iteration over the subset.
func (f *Filtered) JacobianInplace(x vector.Vector, t float64, m matrix.Matrix) error {
	return DefaultJacobianInplace(f, x, t, m)
}

// filterInto copies src at the given positions into dst without
// allocating.
func filterInto(src vector.Vector, idx vector.Index, dst vector.Vector) error {
	if dst.Len() != len(idx) {
		return fmt.Errorf("op.filterInto: dst len %d for %d indices: %w", dst.Len(), len(idx), ErrBadDimension)
	}
	for k, p := range idx {
		v, err := src.At(p)
		if err != nil {
			return err
		}
		_ = dst.Set(k, v)
	}

	return nil
}
