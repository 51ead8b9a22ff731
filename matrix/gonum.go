// Package matrix - Gonum, the external-library dense backend.
// Gonum adapts gonum's mat.Dense to the Matrix and DenseMatrix
// surfaces. Storage belongs to the wrapped mat.Dense and is reclaimed
// by the garbage collector; no explicit release step exists for this
// backend.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/nabla-rs/diffsol/vector"
)

// Gonum is a dense matrix backed by a gonum mat.Dense.
type Gonum struct {
	d *mat.Dense
}

// Compile-time assertions: *Gonum implements both matrix surfaces.
var (
	_ Matrix      = (*Gonum)(nil)
	_ DenseMatrix = (*Gonum)(nil)
)

// NewGonumDense creates an r x c zero matrix on the gonum backend.
func NewGonumDense(rows, cols int) (*Gonum, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewGonumDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &Gonum{d: mat.NewDense(rows, cols, nil)}, nil
}

// GonumFromTriplets builds a gonum-backed dense matrix from triplets
// with the same last-wins semantics as DenseFromTriplets.
func GonumFromTriplets(rows, cols int, ts []Triplet) (*Gonum, error) {
	m, err := NewGonumDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if err = checkTriplets("GonumFromTriplets", rows, cols, ts); err != nil {
		return nil, err
	}
	for _, t := range ts {
		m.d.Set(t.Row, t.Col, t.Value)
	}

	return m, nil
}

// GonumFromDiagonal builds the square gonum-backed matrix with v on
// the main diagonal.
func GonumFromDiagonal(v vector.Vector) (*Gonum, error) {
	m, err := NewGonumDense(v.Len(), v.Len())
	if err != nil {
		return nil, fmt.Errorf("GonumFromDiagonal: %w", err)
	}
	for i := 0; i < v.Len(); i++ {
		val, _ := v.At(i)
		m.d.Set(i, i, val)
	}

	return m, nil
}

// WrapGonumDense adopts an existing mat.Dense without copying.
func WrapGonumDense(d *mat.Dense) *Gonum { return &Gonum{d: d} }

// Unwrap exposes the underlying mat.Dense for interop with gonum APIs.
func (m *Gonum) Unwrap() *mat.Dense { return m.d }

// Rows returns the number of rows.
func (m *Gonum) Rows() int { r, _ := m.d.Dims(); return r }

// Cols returns the number of columns.
func (m *Gonum) Cols() int { _, c := m.d.Dims(); return c }

// At retrieves element (i, j).
func (m *Gonum) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, fmt.Errorf("Gonum.At(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}

	return m.d.At(i, j), nil
}

// Set writes element (i, j).
func (m *Gonum) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return fmt.Errorf("Gonum.Set(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}
	m.d.Set(i, j, v)

	return nil
}

// Clone returns a deep copy on the gonum backend.
func (m *Gonum) Clone() Matrix {
	return &Gonum{d: mat.DenseCopyOf(m.d)}
}

// CopyFrom overwrites the receiver with src of the same shape.
func (m *Gonum) CopyFrom(src Matrix) error {
	if src.Rows() != m.Rows() || src.Cols() != m.Cols() {
		return fmt.Errorf("Gonum.CopyFrom: %dx%d vs %dx%d: %w", m.Rows(), m.Cols(), src.Rows(), src.Cols(), ErrDimensionMismatch)
	}
	if o, ok := src.(*Gonum); ok {
		m.d.Copy(o.d)

		return nil
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := src.At(i, j)
			m.d.Set(i, j, v)
		}
	}

	return nil
}

// Scale multiplies every element by alpha in place.
func (m *Gonum) Scale(alpha float64) {
	m.d.Scale(alpha, m.d)
}

// ScaleAddAssign computes self = x + beta*y; operands must not be the
// receiver.
func (m *Gonum) ScaleAddAssign(x Matrix, beta float64, y Matrix) error {
	if x == Matrix(m) || y == Matrix(m) {
		return fmt.Errorf("Gonum.ScaleAddAssign: %w", ErrAliased)
	}
	if x.Rows() != m.Rows() || x.Cols() != m.Cols() || y.Rows() != m.Rows() || y.Cols() != m.Cols() {
		return fmt.Errorf("Gonum.ScaleAddAssign: %w", ErrDimensionMismatch)
	}
	xg, xok := x.(*Gonum)
	yg, yok := y.(*Gonum)
	if xok && yok {
		m.d.Scale(beta, yg.d)
		m.d.Add(m.d, xg.d)

		return nil
	}
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			xv, _ := x.At(i, j)
			yv, _ := y.At(i, j)
			m.d.Set(i, j, xv+beta*yv)
		}
	}

	return nil
}

// SetColumn replaces column j with v.
func (m *Gonum) SetColumn(j int, v vector.Vector) error {
	if j < 0 || j >= m.Cols() {
		return fmt.Errorf("Gonum.SetColumn(%d): %w", j, ErrIndexOutOfBounds)
	}
	if v.Len() != m.Rows() {
		return fmt.Errorf("Gonum.SetColumn(%d): vector len %d for %d rows: %w", j, v.Len(), m.Rows(), ErrDimensionMismatch)
	}
	if rv := rawData(v); rv != nil {
		m.d.SetCol(j, rv)

		return nil
	}
	for i := 0; i < m.Rows(); i++ {
		val, _ := v.At(i)
		m.d.Set(i, j, val)
	}

	return nil
}

// Diagonal extracts the main diagonal as a gonum-backed vector.
func (m *Gonum) Diagonal() vector.Vector {
	n := m.Rows()
	if m.Cols() < n {
		n = m.Cols()
	}
	out := vector.NewGonum(n)
	dst := out.RawData()
	for i := 0; i < n; i++ {
		dst[i] = m.d.At(i, i)
	}

	return out
}

// Gemv computes y = alpha*A*x + beta*y via gonum kernels when both
// vectors live on the gonum backend.
func (m *Gonum) Gemv(alpha float64, x vector.Vector, beta float64, y vector.Vector) error {
	if err := checkGemvShapes("Gonum.Gemv", m.Rows(), m.Cols(), x, y); err != nil {
		return err
	}
	xg, xok := x.(*vector.Gonum)
	yg, yok := y.(*vector.Gonum)
	if xok && yok {
		tmp := mat.NewVecDense(m.Rows(), nil)
		tmp.MulVec(m.d, xg.Unwrap())
		yv := yg.Unwrap()
		yv.ScaleVec(beta, yv)
		yv.AddScaledVec(yv, alpha, tmp)

		return nil
	}
	for i := 0; i < m.Rows(); i++ {
		var sum float64
		for j := 0; j < m.Cols(); j++ {
			xv, _ := x.At(j)
			sum += m.d.At(i, j) * xv
		}
		yv, _ := y.At(i)
		_ = y.Set(i, alpha*sum+beta*yv)
	}

	return nil
}

// Gemm computes self = alpha*a*b + beta*self via gonum kernels when
// both operands live on the gonum backend.
func (m *Gonum) Gemm(alpha float64, a, b Matrix, beta float64) error {
	if a == Matrix(m) || b == Matrix(m) {
		return fmt.Errorf("Gonum.Gemm: %w", ErrAliased)
	}
	if a.Cols() != b.Rows() || a.Rows() != m.Rows() || b.Cols() != m.Cols() {
		return fmt.Errorf("Gonum.Gemm: %dx%d * %dx%d into %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), m.Rows(), m.Cols(), ErrDimensionMismatch)
	}
	ag, aok := a.(*Gonum)
	bg, bok := b.(*Gonum)
	if aok && bok {
		var tmp mat.Dense
		tmp.Mul(ag.d, bg.d)
		if beta == 0 {
			m.d.Scale(alpha, &tmp)

			return nil
		}
		m.d.Scale(beta, m.d)
		tmp.Scale(alpha, &tmp)
		m.d.Add(m.d, &tmp)

		return nil
	}
	inner := a.Cols()
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			var sum float64
			for k := 0; k < inner; k++ {
				av, _ := a.At(i, k)
				bv, _ := b.At(k, j)
				sum += av * bv
			}
			m.d.Set(i, j, alpha*sum+beta*m.d.At(i, j))
		}
	}

	return nil
}

// SetDataWithIndices writes data[src[k]] into position dst[k].
func (m *Gonum) SetDataWithIndices(dst []Position, src vector.Index, data vector.Vector) error {
	if len(dst) != len(src) {
		return fmt.Errorf("Gonum.SetDataWithIndices: %d positions for %d sources: %w", len(dst), len(src), ErrDimensionMismatch)
	}
	for k, p := range dst {
		if p.Row < 0 || p.Row >= m.Rows() || p.Col < 0 || p.Col >= m.Cols() {
			return fmt.Errorf("Gonum.SetDataWithIndices(%d,%d): %w", p.Row, p.Col, ErrIndexOutOfBounds)
		}
		v, err := data.At(src[k])
		if err != nil {
			return fmt.Errorf("Gonum.SetDataWithIndices: source %d: %w", src[k], err)
		}
		m.d.Set(p.Row, p.Col, v)
	}

	return nil
}

// Sparsity returns nil: the gonum backend is dense.
func (m *Gonum) Sparsity() *Sparsity { return nil }

// View borrows a read-only window into the matrix.
func (m *Gonum) View(r0, c0, rows, cols int) (*View, error) {
	return newView(m, r0, c0, rows, cols)
}

// ViewMut borrows a mutable window into the matrix.
func (m *Gonum) ViewMut(r0, c0, rows, cols int) (*ViewMut, error) {
	v, err := newView(m, r0, c0, rows, cols)
	if err != nil {
		return nil, err
	}

	return &ViewMut{View: *v}, nil
}

// ColumnView borrows column j as a rows x 1 read-only window.
func (m *Gonum) ColumnView(j int) (*View, error) {
	return newView(m, 0, j, m.Rows(), 1)
}
