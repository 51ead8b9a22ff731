// Package matrix - Sparse, the native compressed-column backend.
// Layout follows the classic CSC scheme (column pointers, row indices,
// values); the pattern is supplied as a Sparsity whose column-major
// ordering doubles as the storage order, so a position's pattern
// ordinal is its offset into the value array.
package matrix

import (
	"fmt"

	"github.com/nabla-rs/diffsol/vector"
)

// Sparse is a fixed-pattern compressed-column matrix.
type Sparse struct {
	sp     *Sparsity
	colPtr []int     // len cols+1; data offsets per column
	rowIdx []int     // len nnz; ascending rows within each column
	data   []float64 // len nnz; column-major pattern order
}

// Compile-time assertion: *Sparse implements the Matrix surface.
var _ Matrix = (*Sparse)(nil)

// NewSparse allocates a zero matrix over the given pattern. The
// pattern is shared, not copied; it is immutable by construction.
func NewSparse(sp *Sparsity) *Sparse {
	colPtr := make([]int, sp.Cols()+1)
	rowIdx := make([]int, sp.Len())
	for k, p := range sp.positions {
		colPtr[p.Col+1]++
		rowIdx[k] = p.Row
	}
	for j := 0; j < sp.Cols(); j++ {
		colPtr[j+1] += colPtr[j]
	}

	return &Sparse{
		sp:     sp,
		colPtr: colPtr,
		rowIdx: rowIdx,
		data:   make([]float64, sp.Len()),
	}
}

// SparseFromTriplets builds pattern and values in one step. Duplicate
// positions are rejected with ErrDuplicateEntry (the pattern is fixed
// at construction), out-of-range coordinates with ErrIndexOutOfBounds.
func SparseFromTriplets(rows, cols int, ts []Triplet) (*Sparse, error) {
	if err := checkTriplets("SparseFromTriplets", rows, cols, ts); err != nil {
		return nil, err
	}
	positions := make([]Position, len(ts))
	for k, t := range ts {
		positions[k] = Position{Row: t.Row, Col: t.Col}
	}
	sp, err := NewSparsity(rows, cols, positions)
	if err != nil {
		return nil, fmt.Errorf("SparseFromTriplets: %w", err)
	}
	m := NewSparse(sp)
	for _, t := range ts {
		k, _ := sp.Ordinal(t.Row, t.Col)
		m.data[k] = t.Value
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Sparse) Rows() int { return m.sp.Rows() }

// Cols returns the number of columns.
func (m *Sparse) Cols() int { return m.sp.Cols() }

// At retrieves element (i, j); positions outside the pattern read as
// zero.
func (m *Sparse) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, fmt.Errorf("Sparse.At(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}
	if k, ok := m.sp.Ordinal(i, j); ok {
		return m.data[k], nil
	}

	return 0, nil
}

// Set writes element (i, j); writing outside the fixed pattern is a
// contract violation reported as ErrOutsidePattern.
func (m *Sparse) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return fmt.Errorf("Sparse.Set(%d,%d): %w", i, j, ErrIndexOutOfBounds)
	}
	k, ok := m.sp.Ordinal(i, j)
	if !ok {
		return fmt.Errorf("Sparse.Set(%d,%d): %w", i, j, ErrOutsidePattern)
	}
	m.data[k] = v

	return nil
}

// Clone returns a deep copy sharing the immutable pattern.
func (m *Sparse) Clone() Matrix {
	cp := NewSparse(m.sp)
	copy(cp.data, m.data)

	return cp
}

// CopyFrom overwrites the receiver's values with those of src, which
// must be a Sparse with the identical pattern.
func (m *Sparse) CopyFrom(src Matrix) error {
	o, ok := src.(*Sparse)
	if !ok || !samePattern(m.sp, o.sp) {
		return fmt.Errorf("Sparse.CopyFrom: %w", ErrPatternMismatch)
	}
	copy(m.data, o.data)

	return nil
}

// Scale multiplies every stored value by alpha in place.
func (m *Sparse) Scale(alpha float64) {
	for i := range m.data {
		m.data[i] *= alpha
	}
}

// ScaleAddAssign computes self = x + beta*y over identical patterns.
func (m *Sparse) ScaleAddAssign(x Matrix, beta float64, y Matrix) error {
	if x == Matrix(m) || y == Matrix(m) {
		return fmt.Errorf("Sparse.ScaleAddAssign: %w", ErrAliased)
	}
	xs, xok := x.(*Sparse)
	ys, yok := y.(*Sparse)
	if !xok || !yok || !samePattern(m.sp, xs.sp) || !samePattern(m.sp, ys.sp) {
		return fmt.Errorf("Sparse.ScaleAddAssign: %w", ErrPatternMismatch)
	}
	for k := range m.data {
		m.data[k] = xs.data[k] + beta*ys.data[k]
	}

	return nil
}

// SetColumn replaces column j with v. Values at rows outside the
// column's pattern must be zero; a nonzero there is ErrOutsidePattern.
func (m *Sparse) SetColumn(j int, v vector.Vector) error {
	if j < 0 || j >= m.Cols() {
		return fmt.Errorf("Sparse.SetColumn(%d): %w", j, ErrIndexOutOfBounds)
	}
	if v.Len() != m.Rows() {
		return fmt.Errorf("Sparse.SetColumn(%d): vector len %d for %d rows: %w", j, v.Len(), m.Rows(), ErrDimensionMismatch)
	}
	// Stored rows of column j occupy data[colPtr[j]:colPtr[j+1]].
	stored := make(map[int]bool, m.colPtr[j+1]-m.colPtr[j])
	for k := m.colPtr[j]; k < m.colPtr[j+1]; k++ {
		val, _ := v.At(m.rowIdx[k])
		m.data[k] = val
		stored[m.rowIdx[k]] = true
	}
	for i := 0; i < m.Rows(); i++ {
		if stored[i] {
			continue
		}
		if val, _ := v.At(i); val != 0 {
			return fmt.Errorf("Sparse.SetColumn(%d): nonzero at unstored row %d: %w", j, i, ErrOutsidePattern)
		}
	}

	return nil
}

// Diagonal extracts the main diagonal (zeros where the pattern has no
// diagonal entry).
func (m *Sparse) Diagonal() vector.Vector {
	n := m.Rows()
	if m.Cols() < n {
		n = m.Cols()
	}
	out := vector.NewDense(n)
	dst := out.RawData()
	for i := 0; i < n; i++ {
		if k, ok := m.sp.Ordinal(i, i); ok {
			dst[i] = m.data[k]
		}
	}

	return out
}

// Gemv computes y = alpha*A*x + beta*y in O(nnz).
func (m *Sparse) Gemv(alpha float64, x vector.Vector, beta float64, y vector.Vector) error {
	if err := checkGemvShapes("Sparse.Gemv", m.Rows(), m.Cols(), x, y); err != nil {
		return err
	}
	y.Scale(beta)
	rx, ry := rawData(x), rawData(y)
	if rx != nil && ry != nil {
		for j := 0; j < m.Cols(); j++ {
			xv := alpha * rx[j]
			for k := m.colPtr[j]; k < m.colPtr[j+1]; k++ {
				ry[m.rowIdx[k]] += m.data[k] * xv
			}
		}

		return nil
	}
	for j := 0; j < m.Cols(); j++ {
		xj, _ := x.At(j)
		xv := alpha * xj
		for k := m.colPtr[j]; k < m.colPtr[j+1]; k++ {
			yv, _ := y.At(m.rowIdx[k])
			_ = y.Set(m.rowIdx[k], yv+m.data[k]*xv)
		}
	}

	return nil
}

// SetDataWithIndices writes data[src[k]] into pattern position dst[k].
func (m *Sparse) SetDataWithIndices(dst []Position, src vector.Index, data vector.Vector) error {
	if len(dst) != len(src) {
		return fmt.Errorf("Sparse.SetDataWithIndices: %d positions for %d sources: %w", len(dst), len(src), ErrDimensionMismatch)
	}
	for k, p := range dst {
		ord, ok := m.sp.Ordinal(p.Row, p.Col)
		if !ok {
			return fmt.Errorf("Sparse.SetDataWithIndices: position (%d,%d): %w", p.Row, p.Col, ErrOutsidePattern)
		}
		v, err := data.At(src[k])
		if err != nil {
			return fmt.Errorf("Sparse.SetDataWithIndices: source %d: %w", src[k], err)
		}
		m.data[ord] = v
	}

	return nil
}

// Sparsity returns the fixed pattern.
func (m *Sparse) Sparsity() *Sparsity { return m.sp }

// samePattern reports whether two patterns are interchangeable: the
// same object, or equal shape and position sets.
func samePattern(a, b *Sparsity) bool {
	if a == b {
		return true
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() || a.Len() != b.Len() {
		return false
	}
	for k, p := range a.positions {
		if b.positions[k] != p {
			return false
		}
	}

	return true
}
