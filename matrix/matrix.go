// Package matrix - capability surface shared by all backends.
package matrix

import (
	"fmt"
	"math"

	"github.com/nabla-rs/diffsol/vector"
)

// Matrix is the capability set every backend must provide. Shapes are
// immutable after construction; for sparse backends the pattern is
// fixed for the matrix's lifetime.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At retrieves element (i, j). Sparse backends return 0 for
	// positions outside their pattern.
	At(i, j int) (float64, error)

	// Set writes element (i, j). Sparse backends reject positions
	// outside their pattern with ErrOutsidePattern.
	Set(i, j int, v float64) error

	// Clone returns a deep copy on the same backend.
	Clone() Matrix

	// CopyFrom overwrites the receiver with src. Shapes must agree;
	// sparse receivers additionally require an identical pattern.
	CopyFrom(src Matrix) error

	// Scale multiplies every stored element by alpha in place.
	Scale(alpha float64)

	// ScaleAddAssign computes self = x + beta*y. Neither x nor y may be
	// the receiver (ErrAliased).
	ScaleAddAssign(x Matrix, beta float64, y Matrix) error

	// SetColumn replaces column j with v; v.Len() must equal Rows().
	SetColumn(j int, v vector.Vector) error

	// Diagonal extracts the main diagonal as a new vector of length
	// min(Rows, Cols).
	Diagonal() vector.Vector

	// Gemv computes y = alpha*A*x + beta*y.
	Gemv(alpha float64, x vector.Vector, beta float64, y vector.Vector) error

	// SetDataWithIndices writes data[src[k]] into position dst[k] for
	// each k. Pair counts must match. This is the replay primitive of
	// the Jacobian coloring path; dst positions of sparse backends must
	// lie inside the pattern.
	SetDataWithIndices(dst []Position, src vector.Index, data vector.Vector) error

	// Sparsity returns the pattern of a sparse backend, or nil for
	// dense storage.
	Sparsity() *Sparsity
}

// DenseMatrix is the dense refinement: full GEMM and borrowed views.
type DenseMatrix interface {
	Matrix

	// Gemm computes self = alpha*a*b + beta*self. The receiver shape
	// must be a.Rows() x b.Cols() and a.Cols() must equal b.Rows().
	Gemm(alpha float64, a, b Matrix, beta float64) error

	// View borrows a read-only window [r0, r0+rows) x [c0, c0+cols).
	View(r0, c0, rows, cols int) (*View, error)

	// ViewMut borrows a mutable window of the same geometry.
	ViewMut(r0, c0, rows, cols int) (*ViewMut, error)

	// ColumnView borrows column j as a read-only rows x 1 window.
	ColumnView(j int) (*View, error)
}

// Triplet is one (row, col, value) entry of a coordinate-format
// construction list.
type Triplet struct {
	Row, Col int
	Value    float64
}

// NewFromSparsity allocates a zero matrix of the given shape on the
// native backend: Sparse when a pattern is supplied, Dense otherwise.
// A supplied pattern must match the requested shape.
func NewFromSparsity(rows, cols int, sp *Sparsity) (Matrix, error) {
	if sp == nil {
		return NewDense(rows, cols)
	}
	if sp.Rows() != rows || sp.Cols() != cols {
		return nil, fmt.Errorf("NewFromSparsity: pattern %dx%d for shape %dx%d: %w",
			sp.Rows(), sp.Cols(), rows, cols, ErrDimensionMismatch)
	}

	return NewSparse(sp), nil
}

// TripletsOf lists the nonzero entries of m in row-major order.
// Useful for round-tripping a matrix through a triplet constructor.
func TripletsOf(m Matrix) []Triplet {
	var ts []Triplet
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			v, _ := m.At(i, j)
			if v != 0 {
				ts = append(ts, Triplet{Row: i, Col: j, Value: v})
			}
		}
	}

	return ts
}

// AllClose reports whether |a[i,j]-b[i,j]| <= atol + rtol*|b[i,j]|
// for every position. Matrices of different shapes are never close.
func AllClose(a, b Matrix, rtol, atol float64) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ := a.At(i, j)
			bv, _ := b.At(i, j)
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false
			}
		}
	}

	return true
}

// checkTriplets validates triplet coordinates against a shape.
func checkTriplets(op string, rows, cols int, ts []Triplet) error {
	for _, t := range ts {
		if t.Row < 0 || t.Row >= rows || t.Col < 0 || t.Col >= cols {
			return fmt.Errorf("%s: triplet (%d,%d) for shape %dx%d: %w", op, t.Row, t.Col, rows, cols, ErrIndexOutOfBounds)
		}
	}

	return nil
}

// checkGemvShapes validates GEMV operand lengths against a shape.
func checkGemvShapes(op string, rows, cols int, x, y vector.Vector) error {
	if x.Len() != cols || y.Len() != rows {
		return fmt.Errorf("%s: x len %d, y len %d for shape %dx%d: %w", op, x.Len(), y.Len(), rows, cols, ErrDimensionMismatch)
	}

	return nil
}
