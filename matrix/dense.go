// Package matrix - Dense, the native row-major backend.
// Dense stores elements in a flat slice for cache friendliness; all
// kernels have a flat fast path and an interface fallback for mixed
// backends.
package matrix

import (
	"fmt"
	"math"

	"github.com/nabla-rs/diffsol/vector"
)

// denseErrorf wraps an underlying error with Dense method context.
// Example message shape: "Dense.Set(3,7): matrix: index out of bounds".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r, c are dimensions; data holds r*c elements in row-major order.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

// Compile-time assertions: *Dense implements both matrix surfaces.
var (
	_ Matrix      = (*Dense)(nil)
	_ DenseMatrix = (*Dense)(nil)
)

// NewDense creates an r x c Dense initialized to zeros.
// Validates r>0 && c>0; returns ErrBadShape on failure.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}
	cfg := newConfig(opts)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: cfg.validateNaNInf,
	}, nil
}

// DenseFromTriplets builds a dense matrix from (row, col, value)
// entries. Duplicate positions follow last-wins semantics; coordinates
// outside the shape yield ErrIndexOutOfBounds.
func DenseFromTriplets(rows, cols int, ts []Triplet, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if err = checkTriplets("DenseFromTriplets", rows, cols, ts); err != nil {
		return nil, err
	}
	for _, t := range ts {
		m.data[t.Row*cols+t.Col] = t.Value
	}

	return m, nil
}

// DenseFromDiagonal builds the square matrix with v on the main
// diagonal and zeros elsewhere.
func DenseFromDiagonal(v vector.Vector) (*Dense, error) {
	n := v.Len()
	m, err := NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("DenseFromDiagonal: %w", err)
	}
	for i := 0; i < n; i++ {
		val, _ := v.At(i)
		m.data[i*n+i] = val
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat offset for (row, col) or returns a
// sentinel; it never panics.
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves element (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[off], nil
}

// Set writes element (row, col), honoring the NaN/Inf policy.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf("Set", row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (data buffer duplicated, policy kept).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// CopyFrom overwrites the receiver with src of the same shape.
func (m *Dense) CopyFrom(src Matrix) error {
	if src.Rows() != m.r || src.Cols() != m.c {
		return fmt.Errorf("Dense.CopyFrom: %dx%d vs %dx%d: %w", m.r, m.c, src.Rows(), src.Cols(), ErrDimensionMismatch)
	}
	if o, ok := src.(*Dense); ok {
		copy(m.data, o.data)

		return nil
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			m.data[i*m.c+j], _ = src.At(i, j)
		}
	}

	return nil
}

// Scale multiplies every element by alpha in place.
func (m *Dense) Scale(alpha float64) {
	for i := range m.data {
		m.data[i] *= alpha
	}
}

// ScaleAddAssign computes self = x + beta*y. Operands must match the
// receiver's shape and must not be the receiver itself.
func (m *Dense) ScaleAddAssign(x Matrix, beta float64, y Matrix) error {
	if x == Matrix(m) || y == Matrix(m) {
		return fmt.Errorf("Dense.ScaleAddAssign: %w", ErrAliased)
	}
	if x.Rows() != m.r || x.Cols() != m.c || y.Rows() != m.r || y.Cols() != m.c {
		return fmt.Errorf("Dense.ScaleAddAssign: %w", ErrDimensionMismatch)
	}
	xd, xok := x.(*Dense)
	yd, yok := y.(*Dense)
	if xok && yok {
		for i := range m.data {
			m.data[i] = xd.data[i] + beta*yd.data[i]
		}

		return nil
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			xv, _ := x.At(i, j)
			yv, _ := y.At(i, j)
			m.data[i*m.c+j] = xv + beta*yv
		}
	}

	return nil
}

// SetColumn replaces column j with v.
func (m *Dense) SetColumn(j int, v vector.Vector) error {
	if j < 0 || j >= m.c {
		return denseErrorf("SetColumn", 0, j, ErrIndexOutOfBounds)
	}
	if v.Len() != m.r {
		return fmt.Errorf("Dense.SetColumn(%d): vector len %d for %d rows: %w", j, v.Len(), m.r, ErrDimensionMismatch)
	}
	if rv := rawData(v); rv != nil {
		for i := 0; i < m.r; i++ {
			m.data[i*m.c+j] = rv[i]
		}

		return nil
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j], _ = v.At(i)
	}

	return nil
}

// Diagonal extracts the main diagonal as a new native vector.
func (m *Dense) Diagonal() vector.Vector {
	n := m.r
	if m.c < n {
		n = m.c
	}
	out := vector.NewDense(n)
	dst := out.RawData()
	for i := 0; i < n; i++ {
		dst[i] = m.data[i*m.c+i]
	}

	return out
}

// Gemv computes y = alpha*A*x + beta*y.
func (m *Dense) Gemv(alpha float64, x vector.Vector, beta float64, y vector.Vector) error {
	if err := checkGemvShapes("Dense.Gemv", m.r, m.c, x, y); err != nil {
		return err
	}
	rx, ry := rawData(x), rawData(y)
	if rx != nil && ry != nil {
		for i := 0; i < m.r; i++ {
			var sum float64
			row := m.data[i*m.c : (i+1)*m.c]
			for j, a := range row {
				sum += a * rx[j]
			}
			ry[i] = alpha*sum + beta*ry[i]
		}

		return nil
	}
	for i := 0; i < m.r; i++ {
		var sum float64
		for j := 0; j < m.c; j++ {
			xv, _ := x.At(j)
			sum += m.data[i*m.c+j] * xv
		}
		yv, _ := y.At(i)
		_ = y.Set(i, alpha*sum+beta*yv)
	}

	return nil
}

// Gemm computes self = alpha*a*b + beta*self.
func (m *Dense) Gemm(alpha float64, a, b Matrix, beta float64) error {
	if a == Matrix(m) || b == Matrix(m) {
		return fmt.Errorf("Dense.Gemm: %w", ErrAliased)
	}
	if a.Cols() != b.Rows() || a.Rows() != m.r || b.Cols() != m.c {
		return fmt.Errorf("Dense.Gemm: %dx%d * %dx%d into %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), m.r, m.c, ErrDimensionMismatch)
	}
	inner := a.Cols()
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			var sum float64
			for k := 0; k < inner; k++ {
				av, _ := a.At(i, k)
				bv, _ := b.At(k, j)
				sum += av * bv
			}
			m.data[i*m.c+j] = alpha*sum + beta*m.data[i*m.c+j]
		}
	}

	return nil
}

// SetDataWithIndices writes data[src[k]] into position dst[k].
func (m *Dense) SetDataWithIndices(dst []Position, src vector.Index, data vector.Vector) error {
	if len(dst) != len(src) {
		return fmt.Errorf("Dense.SetDataWithIndices: %d positions for %d sources: %w", len(dst), len(src), ErrDimensionMismatch)
	}
	for k, p := range dst {
		off, err := m.indexOf("SetDataWithIndices", p.Row, p.Col)
		if err != nil {
			return err
		}
		v, err := data.At(src[k])
		if err != nil {
			return fmt.Errorf("Dense.SetDataWithIndices: source %d: %w", src[k], err)
		}
		m.data[off] = v
	}

	return nil
}

// Sparsity returns nil: dense storage has no pattern.
func (m *Dense) Sparsity() *Sparsity { return nil }

// View borrows a read-only window into the matrix.
func (m *Dense) View(r0, c0, rows, cols int) (*View, error) {
	return newView(m, r0, c0, rows, cols)
}

// ViewMut borrows a mutable window into the matrix.
func (m *Dense) ViewMut(r0, c0, rows, cols int) (*ViewMut, error) {
	v, err := newView(m, r0, c0, rows, cols)
	if err != nil {
		return nil, err
	}

	return &ViewMut{View: *v}, nil
}

// ColumnView borrows column j as a rows x 1 read-only window.
func (m *Dense) ColumnView(j int) (*View, error) {
	return newView(m, 0, j, m.r, 1)
}

// String implements fmt.Stringer for debugging.
func (m *Dense) String() string {
	out := ""
	for i := 0; i < m.r; i++ {
		out += "["
		for j := 0; j < m.c; j++ {
			out += fmt.Sprintf("%g", m.data[i*m.c+j])
			if j+1 < m.c {
				out += ", "
			}
		}
		out += "]\n"
	}

	return out
}

// rawVector is the fast-path surface a vector backend may expose.
type rawVector interface{ RawData() []float64 }

// rawData returns the contiguous backing slice of v, or nil when the
// backend does not expose one.
func rawData(v vector.Vector) []float64 {
	if r, ok := v.(rawVector); ok {
		return r.RawData()
	}

	return nil
}
