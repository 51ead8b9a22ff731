// Package matrix - borrowed windows into a dense matrix.
// Views share the base matrix's storage: no copy on creation, O(1)
// element access, and BLAS operations read or write through to the
// base. A view must not outlive its base matrix.
package matrix

import (
	"fmt"

	"github.com/nabla-rs/diffsol/vector"
)

// View is a read-only window [r0, r0+r) x [c0, c0+c) into a base
// matrix.
type View struct {
	base   Matrix
	r0, c0 int
	r, c   int
}

// ViewMut is a mutable window with the same geometry as View.
type ViewMut struct {
	View
}

// newView validates the window bounds against the base shape.
func newView(base Matrix, r0, c0, rows, cols int) (*View, error) {
	if r0 < 0 || c0 < 0 || rows <= 0 || cols <= 0 || r0+rows > base.Rows() || c0+cols > base.Cols() {
		return nil, fmt.Errorf("View(%d,%d,%d,%d) of %dx%d: %w", r0, c0, rows, cols, base.Rows(), base.Cols(), ErrBadShape)
	}

	return &View{base: base, r0: r0, c0: c0, r: rows, c: cols}, nil
}

// Rows returns the number of rows in the window.
func (v *View) Rows() int { return v.r }

// Cols returns the number of columns in the window.
func (v *View) Cols() int { return v.c }

// At reads element (i, j) of the window.
func (v *View) At(i, j int) (float64, error) {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("View.At(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}

	return v.base.At(v.r0+i, v.c0+j)
}

// Gemv computes y = alpha*V*x + beta*y over the window.
func (v *View) Gemv(alpha float64, x vector.Vector, beta float64, y vector.Vector) error {
	if err := checkGemvShapes("View.Gemv", v.r, v.c, x, y); err != nil {
		return err
	}
	for i := 0; i < v.r; i++ {
		var sum float64
		for j := 0; j < v.c; j++ {
			a, _ := v.base.At(v.r0+i, v.c0+j)
			xv, _ := x.At(j)
			sum += a * xv
		}
		yv, _ := y.At(i)
		_ = y.Set(i, alpha*sum+beta*yv)
	}

	return nil
}

// AsVector copies a rows x 1 window into a new native vector.
func (v *View) AsVector() (vector.Vector, error) {
	if v.c != 1 {
		return nil, fmt.Errorf("View.AsVector: window is %dx%d: %w", v.r, v.c, ErrBadShape)
	}
	out := vector.NewDense(v.r)
	for i := 0; i < v.r; i++ {
		val, _ := v.base.At(v.r0+i, v.c0)
		_ = out.Set(i, val)
	}

	return out, nil
}

// Set writes element (i, j) of the window through to the base.
func (v *ViewMut) Set(i, j int, val float64) error {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("ViewMut.Set(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}

	return v.base.Set(v.r0+i, v.c0+j, val)
}

// SetColumn replaces window column j with vec, writing through to the
// base matrix.
func (v *ViewMut) SetColumn(j int, vec vector.Vector) error {
	if j < 0 || j >= v.c {
		return fmt.Errorf("ViewMut.SetColumn(%d): %w", j, ErrIndexOutOfBounds)
	}
	if vec.Len() != v.r {
		return fmt.Errorf("ViewMut.SetColumn(%d): vector len %d for %d rows: %w", j, vec.Len(), v.r, ErrDimensionMismatch)
	}
	for i := 0; i < v.r; i++ {
		val, _ := vec.At(i)
		if err := v.base.Set(v.r0+i, v.c0+j, val); err != nil {
			return err
		}
	}

	return nil
}
