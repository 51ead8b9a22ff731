// Package op_test exercises the operator framework: closures,
// statistics accounting, sparsity discovery, parameter binding, and
// the filtered restriction.
package op_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nabla-rs/diffsol/matrix"
	"github.com/nabla-rs/diffsol/op"
	"github.com/nabla-rs/diffsol/vector"
)

// quadratic returns the closure for F(x) = p0*x.*x - p1 on two states,
// the operator of the Newton square-problem test.
func quadratic(t *testing.T, params vector.Vector) *op.Closure {
	t.Helper()
	f := func(x, p vector.Vector, _ float64, y vector.Vector) error {
		c0, _ := p.At(0)
		c1, _ := p.At(1)
		for i := 0; i < x.Len(); i++ {
			xi, _ := x.At(i)
			_ = y.Set(i, c0*xi*xi-c1)
		}

		return nil
	}
	jac := func(x, p vector.Vector, _ float64, v, y vector.Vector) error {
		c0, _ := p.At(0)
		for i := 0; i < x.Len(); i++ {
			xi, _ := x.At(i)
			vi, _ := v.At(i)
			_ = y.Set(i, 2*c0*xi*vi)
		}

		return nil
	}
	c, err := op.NewClosure(f, jac, 2, 2, params)
	require.NoError(t, err)

	return c
}

// ------------------------------------------------------------------
// 1. Closure basics and statistics.
// ------------------------------------------------------------------

func TestClosureCallAndJacobian(t *testing.T) {
	c := quadratic(t, vector.NewDenseFromSlice([]float64{2, 8}))
	x := vector.NewDenseFromSlice([]float64{1, 2})

	y, err := op.Call(c, x, 0)
	require.NoError(t, err)
	require.True(t, vector.AllClose(y, vector.NewDenseFromSlice([]float64{-6, 0}), 0, 1e-14))

	// Jacobian at x is diag(4x) = diag(4, 8).
	j, err := op.Jacobian(c, x, 0)
	require.NoError(t, err)
	want, err := matrix.DenseFromDiagonal(vector.NewDenseFromSlice([]float64{4, 8}))
	require.NoError(t, err)
	require.True(t, matrix.AllClose(j, want, 1e-14, 1e-14))
}

func TestStatisticsAccounting(t *testing.T) {
	c := quadratic(t, vector.NewDenseFromSlice([]float64{2, 8}))
	x := vector.NewDenseFromSlice([]float64{1, 1})

	require.Equal(t, op.Statistics{}, c.Statistics())

	_, err := op.Call(c, x, 0)
	require.NoError(t, err)
	_, err = op.JacMul(c, x, 0, vector.NewDenseFromSlice([]float64{1, 0}))
	require.NoError(t, err)
	_, err = op.Jacobian(c, x, 0)
	require.NoError(t, err)

	s := c.Statistics()
	require.Equal(t, 1, s.NumberOfCalls)
	// One explicit product plus two basis probes of the dense path.
	require.Equal(t, 3, s.NumberOfJacMuls)
	require.Equal(t, 1, s.NumberOfMatrixEvals)

	// Counters never decrease and accumulate across holders of the
	// same operator value.
	var holder op.NonLinearOp = c
	_, err = op.Call(holder, x, 0)
	require.NoError(t, err)
	require.Equal(t, 2, c.Statistics().NumberOfCalls)
}

func TestStatisticsJSONRoundTrip(t *testing.T) {
	s := op.Statistics{NumberOfCalls: 3, NumberOfJacMuls: 7, NumberOfMatrixEvals: 2}
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{"number_of_calls":3,"number_of_jac_muls":7,"number_of_matrix_evals":2}`, string(raw))

	var back op.Statistics
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, s, back)
}

// ------------------------------------------------------------------
// 2. Sparsity discovery on the closure.
// ------------------------------------------------------------------

func TestClosureCalculateSparsity(t *testing.T) {
	c := quadratic(t, vector.NewDenseFromSlice([]float64{2, 8}))
	require.Nil(t, c.Sparsity())

	// The Jacobian is diagonal; probing must discover exactly that.
	require.NoError(t, c.CalculateSparsity(vector.NewDenseFromSlice([]float64{1, 1}), 0))
	sp := c.Sparsity()
	require.NotNil(t, sp)
	require.Equal(t, 2, sp.Len())
	require.True(t, sp.Contains(0, 0))
	require.True(t, sp.Contains(1, 1))

	// Materialization now goes through the coloring plan into a sparse
	// matrix.
	x := vector.NewDenseFromSlice([]float64{3, 5})
	j, err := op.Jacobian(c, x, 0)
	require.NoError(t, err)
	require.NotNil(t, j.Sparsity())
	want, err := matrix.DenseFromDiagonal(vector.NewDenseFromSlice([]float64{12, 20}))
	require.NoError(t, err)
	require.True(t, matrix.AllClose(j, want, 1e-14, 1e-14))
}

// ------------------------------------------------------------------
// 3. Parameter binding.
// ------------------------------------------------------------------

func TestSetParamsBindingConflict(t *testing.T) {
	c := quadratic(t, vector.NewDenseFromSlice([]float64{2, 8}))

	// Free operator: rebinding works, wrong length is rejected.
	require.NoError(t, c.SetParams(vector.NewDenseFromSlice([]float64{3, 9})))
	require.ErrorIs(t, c.SetParams(vector.NewDense(1)), op.ErrBadDimension)

	// While retained by a solver, rebinding is a conflict.
	op.Retain(c)
	require.ErrorIs(t, c.SetParams(vector.NewDenseFromSlice([]float64{1, 1})), op.ErrParameterBound)
	op.Release(c)
	require.NoError(t, c.SetParams(vector.NewDenseFromSlice([]float64{1, 1})))
}

// ------------------------------------------------------------------
// 4. Unit, linear, and constant operators.
// ------------------------------------------------------------------

func TestUnitOperator(t *testing.T) {
	u := op.NewUnit(3)
	x := vector.NewDenseFromSlice([]float64{1, 2, 3})

	y, err := op.Call(u, x, 0)
	require.NoError(t, err)
	require.True(t, vector.AllClose(y, x, 0, 0))

	// As a LinearOp: y = x + beta*y.
	y = vector.NewDenseFromSlice([]float64{10, 10, 10})
	require.NoError(t, u.GemvInplace(x, 0, 0.5, y))
	require.True(t, vector.AllClose(y, vector.NewDenseFromSlice([]float64{6, 7, 8}), 0, 1e-14))

	m, err := op.Matrix(u, 0)
	require.NoError(t, err)
	d, _ := m.At(1, 1)
	off, _ := m.At(0, 1)
	require.Equal(t, 1.0, d)
	require.Zero(t, off)
}

func TestLinearClosure(t *testing.T) {
	// A(t) = t * [[1,2],[3,4]].
	base, err := matrix.DenseFromTriplets(2, 2, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 1}, {Row: 0, Col: 1, Value: 2},
		{Row: 1, Col: 0, Value: 3}, {Row: 1, Col: 1, Value: 4},
	})
	require.NoError(t, err)
	lc, err := op.NewLinearClosure(func(x, _ vector.Vector, t float64, beta float64, y vector.Vector) error {
		return base.Gemv(t, x, beta, y)
	}, 2, 2, nil)
	require.NoError(t, err)

	y, err := op.CallLinear(lc, vector.NewDenseFromSlice([]float64{1, 1}), 2)
	require.NoError(t, err)
	require.True(t, vector.AllClose(y, vector.NewDenseFromSlice([]float64{6, 14}), 0, 1e-14))

	m, err := op.Matrix(lc, 1)
	require.NoError(t, err)
	require.True(t, matrix.AllClose(m, base, 0, 1e-14))
	require.Equal(t, 1, lc.Statistics().NumberOfMatrixEvals)
}

func TestConstantClosure(t *testing.T) {
	cc, err := op.NewConstantClosure(func(_ vector.Vector, t float64, y vector.Vector) error {
		y.Fill(t)

		return nil
	}, 2, nil)
	require.NoError(t, err)

	y, err := op.CallConstant(cc, 3)
	require.NoError(t, err)
	require.True(t, vector.AllClose(y, vector.NewDenseFromSlice([]float64{3, 3}), 0, 0))

	// The Jacobian of a constant is zero.
	z := vector.NewDenseFromSlice([]float64{9, 9})
	require.NoError(t, cc.JacMulInplace(z))
	require.True(t, vector.AllClose(z, vector.NewDense(2), 0, 0))
}

// ------------------------------------------------------------------
// 5. Filtered restriction.
// ------------------------------------------------------------------

func TestFilteredOperator(t *testing.T) {
	// F(y) = (y1 - t, y0 - y1) on two states; restrict to component 1
	// with y0 frozen at its reference value.
	f := func(x, _ vector.Vector, t float64, y vector.Vector) error {
		x0, _ := x.At(0)
		x1, _ := x.At(1)
		_ = y.Set(0, x1-t)
		_ = y.Set(1, x0-x1)

		return nil
	}
	jac := func(_, _ vector.Vector, _ float64, v, y vector.Vector) error {
		v0, _ := v.At(0)
		v1, _ := v.At(1)
		_ = y.Set(0, v1)
		_ = y.Set(1, v0-v1)

		return nil
	}
	inner, err := op.NewClosure(f, jac, 2, 2, nil)
	require.NoError(t, err)

	ref := vector.NewDenseFromSlice([]float64{5, 0})
	fo, err := op.NewFiltered(inner, ref, vector.Index{1})
	require.NoError(t, err)
	require.Equal(t, 1, fo.NStates())

	// Residual component 1 with y0 frozen at 5: F1 = 5 - x.
	y, err := op.Call(fo, vector.NewDenseFromSlice([]float64{2}), 0)
	require.NoError(t, err)
	require.True(t, vector.AllClose(y, vector.NewDenseFromSlice([]float64{3}), 0, 1e-14))

	// Restricted Jacobian: dF1/dy1 = -1.
	j, err := op.Jacobian(fo, vector.NewDenseFromSlice([]float64{2}), 0)
	require.NoError(t, err)
	v, _ := j.At(0, 0)
	require.InDelta(t, -1.0, v, 1e-14)

	// Construction contract checks.
	_, err = op.NewFiltered(inner, vector.NewDense(3), vector.Index{1})
	require.ErrorIs(t, err, op.ErrBadDimension)
	_, err = op.NewFiltered(inner, ref, vector.Index{})
	require.ErrorIs(t, err, op.ErrBadDimension)
}
