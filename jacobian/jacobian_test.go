// Package jacobian_test exercises sparsity discovery and the coloring
// compression against operators with known Jacobian structure.
package jacobian_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabla-rs/diffsol/jacobian"
	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/vector"
)

// matrixOp is a linear probe target: its Jacobian action is a fixed
// matrix, independent of x and t.
type matrixOp struct {
	m matrix.Matrix
}

func (o *matrixOp) NStates() int { return o.m.Cols() }
func (o *matrixOp) NOut() int    { return o.m.Rows() }
func (o *matrixOp) JacMulInplace(_ vector.Vector, _ float64, v, y vector.Vector) error {
	return o.m.Gemv(1, v, 0, y)
}

// tridiagonal is the 3x3 matrix (2,-1,0; -1,2,-1; 0,-1,2).
func tridiagonalOp(t *testing.T) *matrixOp {
	t.Helper()
	m, err := matrix.DenseFromTriplets(3, 3, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 2}, {Row: 0, Col: 1, Value: -1},
		{Row: 1, Col: 0, Value: -1}, {Row: 1, Col: 1, Value: 2}, {Row: 1, Col: 2, Value: -1},
		{Row: 2, Col: 1, Value: -1}, {Row: 2, Col: 2, Value: 2},
	})
	require.NoError(t, err)

	return &matrixOp{m: m}
}

// ------------------------------------------------------------------
// 1. Sparsity discovery.
// ------------------------------------------------------------------

func TestFindNonZerosTridiagonal(t *testing.T) {
	op := tridiagonalOp(t)
	x := vector.NewDense(3)

	nz, err := jacobian.FindNonZerosNonLinear(op, x, 0)
	require.NoError(t, err)

	// Exactly the seven structural nonzeros, column-major.
	require.Equal(t, []matrix.Position{
		{Row: 0, Col: 0}, {Row: 1, Col: 0},
		{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1},
		{Row: 1, Col: 2}, {Row: 2, Col: 2},
	}, nz)
}

func TestFindNonZerosLinear(t *testing.T) {
	op := tridiagonalOp(t)

	nz, err := jacobian.FindNonZerosLinear(&linearAdapter{op}, 0)
	require.NoError(t, err)
	require.Len(t, nz, 7)
}

// linearAdapter presents the fixed matrix as a linear operator.
type linearAdapter struct{ o *matrixOp }

func (a *linearAdapter) NStates() int { return a.o.NStates() }
func (a *linearAdapter) NOut() int    { return a.o.NOut() }
func (a *linearAdapter) GemvInplace(x vector.Vector, _ float64, beta float64, y vector.Vector) error {
	return a.o.m.Gemv(1, x, beta, y)
}

// ------------------------------------------------------------------
// 2. Coloring structure.
// ------------------------------------------------------------------

// TestColoringBidiagonal: on an upper-bidiagonal pattern, columns 0
// and 2 have disjoint row supports and share a color; column 1
// conflicts with both.
func TestColoringBidiagonal(t *testing.T) {
	nz := []matrix.Position{
		{Row: 0, Col: 0},
		{Row: 0, Col: 1}, {Row: 1, Col: 1},
		{Row: 1, Col: 2}, {Row: 2, Col: 2},
	}
	c, err := jacobian.NewColoring(3, 3, nz)
	require.NoError(t, err)
	require.Equal(t, 2, c.NumColors())
	require.Equal(t, [][]int{{0, 2}, {1}}, c.Groups())
}

// TestColoringTridiagonal: every column pair of the tridiagonal
// pattern shares a row (columns 0 and 2 meet in row 1), so no
// compression is possible without breaking exact reconstruction.
func TestColoringTridiagonal(t *testing.T) {
	op := tridiagonalOp(t)
	nz, err := jacobian.FindNonZerosNonLinear(op, vector.NewDense(3), 0)
	require.NoError(t, err)

	c, err := jacobian.NewColoring(3, 3, nz)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0}, {1}, {2}}, c.Groups())
}

// TestColoringDeterministic: rebuilding from the same nonzero set must
// reproduce the identical partition.
func TestColoringDeterministic(t *testing.T) {
	nz := []matrix.Position{
		{Row: 0, Col: 0}, {Row: 2, Col: 1}, {Row: 1, Col: 2}, {Row: 0, Col: 3}, {Row: 2, Col: 4},
	}
	a, err := jacobian.NewColoring(3, 5, nz)
	require.NoError(t, err)
	b, err := jacobian.NewColoring(3, 5, nz)
	require.NoError(t, err)
	require.Equal(t, a.Groups(), b.Groups())
}

func TestColoringRejectsBadPositions(t *testing.T) {
	_, err := jacobian.NewColoring(2, 2, []matrix.Position{{Row: 2, Col: 0}})
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

// ------------------------------------------------------------------
// 3. Compressed materialization.
// ------------------------------------------------------------------

// TestJacobianInplaceMatchesDense reconstructs the tridiagonal
// Jacobian through the coloring path and compares with the probing
// matrix itself.
func TestJacobianInplaceMatchesDense(t *testing.T) {
	op := tridiagonalOp(t)
	x := vector.NewDense(3)
	nz, err := jacobian.FindNonZerosNonLinear(op, x, 0)
	require.NoError(t, err)

	c, err := jacobian.NewColoring(3, 3, nz)
	require.NoError(t, err)

	sp, err := matrix.NewSparsity(3, 3, nz)
	require.NoError(t, err)
	recon := matrix.NewSparse(sp)
	require.NoError(t, c.JacobianInplace(op, x, 0, recon))

	require.True(t, matrix.AllClose(recon, op.m, 0, 10*vector.Epsilon))

	// Positions outside the pattern stay exactly zero.
	v, err := recon.At(0, 2)
	require.NoError(t, err)
	require.Zero(t, v)
}

// TestJacobianInplaceCompressed checks a genuinely compressed plan:
// one probe recovers two structurally orthogonal columns at once.
func TestJacobianInplaceCompressed(t *testing.T) {
	m, err := matrix.DenseFromTriplets(3, 3, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 2}, {Row: 0, Col: 1, Value: -1},
		{Row: 1, Col: 1, Value: 2}, {Row: 1, Col: 2, Value: -1},
		{Row: 2, Col: 2, Value: 2},
	})
	require.NoError(t, err)
	op := &matrixOp{m: m}

	nz, err := jacobian.FindNonZerosNonLinear(op, vector.NewDense(3), 0)
	require.NoError(t, err)
	c, err := jacobian.NewColoring(3, 3, nz)
	require.NoError(t, err)
	require.Equal(t, 2, c.NumColors())

	recon, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	require.NoError(t, c.JacobianInplace(op, vector.NewDense(3), 0, recon))
	require.True(t, matrix.AllClose(recon, m, 0, 10*vector.Epsilon))
}

// TestJacobianInplaceShapeCheck rejects a target matrix whose shape
// disagrees with the plan.
func TestJacobianInplaceShapeCheck(t *testing.T) {
	op := tridiagonalOp(t)
	nz, err := jacobian.FindNonZerosNonLinear(op, vector.NewDense(3), 0)
	require.NoError(t, err)
	c, err := jacobian.NewColoring(3, 3, nz)
	require.NoError(t, err)

	wrong, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, c.JacobianInplace(op, vector.NewDense(3), 0, wrong), matrix.ErrDimensionMismatch)
}
