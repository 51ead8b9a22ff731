// Package matrix_test - unit tests for the Sparsity pattern and the
// native compressed-column backend.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// tridiagonal returns the triplets of the 3x3 matrix
// (2,-1; -1,2,-1; -1,2) used across the sparse tests.
func tridiagonal() []matrix.Triplet {
	return []matrix.Triplet{
		{Row: 0, Col: 0, Value: 2}, {Row: 0, Col: 1, Value: -1},
		{Row: 1, Col: 0, Value: -1}, {Row: 1, Col: 1, Value: 2}, {Row: 1, Col: 2, Value: -1},
		{Row: 2, Col: 1, Value: -1}, {Row: 2, Col: 2, Value: 2},
	}
}

// ------------------------------------------------------------------
// 1. Sparsity pattern.
// ------------------------------------------------------------------

func TestSparsityConstruction(t *testing.T) {
	_, err := matrix.NewSparsity(0, 3, nil)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewSparsity(2, 2, []matrix.Position{{Row: 2, Col: 0}})
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	_, err = matrix.NewSparsity(2, 2, []matrix.Position{{Row: 0, Col: 0}, {Row: 0, Col: 0}})
	require.ErrorIs(t, err, matrix.ErrDuplicateEntry)

	sp, err := matrix.NewSparsity(3, 3, []matrix.Position{
		{Row: 2, Col: 2}, {Row: 0, Col: 0}, {Row: 1, Col: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 3, sp.Len())
	require.True(t, sp.Contains(1, 0))
	require.False(t, sp.Contains(0, 1))

	// Positions come back column-major regardless of input order.
	require.Equal(t, []matrix.Position{
		{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 2},
	}, sp.Positions())
}

// ------------------------------------------------------------------
// 2. Sparse matrix semantics.
// ------------------------------------------------------------------

func TestSparseFromTriplets(t *testing.T) {
	// A duplicate position is an error for the fixed-pattern backend,
	// unlike the dense last-wins policy.
	_, err := matrix.SparseFromTriplets(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 0, Col: 0, Value: 2},
	})
	require.ErrorIs(t, err, matrix.ErrDuplicateEntry)

	_, err = matrix.SparseFromTriplets(2, 2, []matrix.Triplet{{Row: 2, Col: 0, Value: 1}})
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	m, err := matrix.SparseFromTriplets(3, 3, tridiagonal())
	require.NoError(t, err)
	require.Equal(t, 7, m.Sparsity().Len())

	// Stored and unstored reads.
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, -1.0, v)
	v, err = m.At(0, 2)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestSparsePatternIsFixed(t *testing.T) {
	m, err := matrix.SparseFromTriplets(3, 3, tridiagonal())
	require.NoError(t, err)

	// Writing inside the pattern is fine; outside is a contract
	// violation.
	require.NoError(t, m.Set(0, 1, 9))
	require.ErrorIs(t, m.Set(0, 2, 1), matrix.ErrOutsidePattern)
	require.ErrorIs(t, m.Set(5, 0, 1), matrix.ErrIndexOutOfBounds)
}

func TestSparseGemvMatchesDense(t *testing.T) {
	sm, err := matrix.SparseFromTriplets(3, 3, tridiagonal())
	require.NoError(t, err)
	dm, err := matrix.DenseFromTriplets(3, 3, tridiagonal())
	require.NoError(t, err)

	x := vector.NewDenseFromSlice([]float64{1, 2, 3})
	ys := vector.NewDenseFromSlice([]float64{1, 1, 1})
	yd := vector.NewDenseFromSlice([]float64{1, 1, 1})

	require.NoError(t, sm.Gemv(2, x, -1, ys))
	require.NoError(t, dm.Gemv(2, x, -1, yd))
	require.True(t, vector.AllClose(ys, yd, 0, 1e-14))
}

func TestSparseColumnAndDiagonal(t *testing.T) {
	m, err := matrix.SparseFromTriplets(3, 3, tridiagonal())
	require.NoError(t, err)

	require.True(t, vector.AllClose(m.Diagonal(), vector.NewDenseFromSlice([]float64{2, 2, 2}), 0, 0))

	// Column 0 stores rows 0 and 1 only; a nonzero at row 2 violates
	// the pattern.
	require.NoError(t, m.SetColumn(0, vector.NewDenseFromSlice([]float64{5, 6, 0})))
	v, _ := m.At(1, 0)
	require.Equal(t, 6.0, v)
	require.ErrorIs(t,
		m.SetColumn(0, vector.NewDenseFromSlice([]float64{5, 6, 7})),
		matrix.ErrOutsidePattern)
}

func TestSparseCopyScaleAdd(t *testing.T) {
	a, err := matrix.SparseFromTriplets(3, 3, tridiagonal())
	require.NoError(t, err)
	b := a.Clone().(*matrix.Sparse)
	b.Scale(2)

	// dst = a + 1*b = 3*a over the shared pattern.
	dst := matrix.NewSparse(a.Sparsity())
	require.NoError(t, dst.ScaleAddAssign(a, 1, b))
	v, _ := dst.At(1, 1)
	require.Equal(t, 6.0, v)

	require.ErrorIs(t, dst.ScaleAddAssign(dst, 1, b), matrix.ErrAliased)

	// A different pattern is rejected for CopyFrom and ScaleAddAssign.
	other, err := matrix.SparseFromTriplets(3, 3, []matrix.Triplet{{Row: 0, Col: 2, Value: 1}})
	require.NoError(t, err)
	require.ErrorIs(t, dst.CopyFrom(other), matrix.ErrPatternMismatch)
	require.ErrorIs(t, dst.ScaleAddAssign(a, 1, other), matrix.ErrPatternMismatch)

	require.NoError(t, dst.CopyFrom(a))
	require.True(t, matrix.AllClose(dst, a, 0, 0))
}

func TestSparseSetDataWithIndices(t *testing.T) {
	m, err := matrix.SparseFromTriplets(3, 3, tridiagonal())
	require.NoError(t, err)

	data := vector.NewDenseFromSlice([]float64{100, 200})
	dst := []matrix.Position{{Row: 0, Col: 0}, {Row: 2, Col: 1}}
	require.NoError(t, m.SetDataWithIndices(dst, vector.Index{1, 0}, data))

	v00, _ := m.At(0, 0)
	v21, _ := m.At(2, 1)
	require.Equal(t, 200.0, v00)
	require.Equal(t, 100.0, v21)

	// Positions outside the pattern are rejected.
	require.ErrorIs(t,
		m.SetDataWithIndices([]matrix.Position{{Row: 0, Col: 2}}, vector.Index{0}, data),
		matrix.ErrOutsidePattern)
}

// TestNewFromSparsity covers the allocation helper used by Jacobian
// materialization.
func TestNewFromSparsity(t *testing.T) {
	m, err := matrix.NewFromSparsity(2, 2, nil)
	require.NoError(t, err)
	require.Nil(t, m.Sparsity())

	sp, err := matrix.NewSparsity(2, 2, []matrix.Position{{Row: 0, Col: 0}})
	require.NoError(t, err)
	m, err = matrix.NewFromSparsity(2, 2, sp)
	require.NoError(t, err)
	require.NotNil(t, m.Sparsity())

	_, err = matrix.NewFromSparsity(3, 2, sp)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
