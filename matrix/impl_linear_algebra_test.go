// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for universal Matrix (linear algebra) operations.
package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemometrics/matrix"
)

// TestSub verifies element-wise subtraction and its shape and nil checks.
func TestSub(t *testing.T) {
	a := MustRows(t, []float64{1, 2}, []float64{3, 4})
	b := MustRows(t, []float64{10, 20}, []float64{30, 40})

	diff, err := matrix.Sub(b, a)
	require.NoError(t, err)
	RequireClose(t, MustRows(t, []float64{9, 18}, []float64{27, 36}), diff, 0)

	_, err = matrix.Sub(a, MustDense(t, 3, 2))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Sub(nil, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// Fast path and fallback must agree for every kernel.
func TestKernels_InterfaceHidingFallback(t *testing.T) {
	a := RandDense(t, 4, 3, 1)
	b := RandDense(t, 3, 5, 2)
	c := RandDense(t, 4, 3, 3)

	p1, err := matrix.Mul(a, b)
	require.NoError(t, err)
	p2, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	RequireClose(t, p1, p2, 1e-15)

	s1, err := matrix.Sub(a, c)
	require.NoError(t, err)
	s2, err := matrix.Sub(hide{a}, c)
	require.NoError(t, err)
	RequireClose(t, s1, s2, 0)

	t1, err := matrix.Transpose(a)
	require.NoError(t, err)
	t2, err := matrix.Transpose(hide{a})
	require.NoError(t, err)
	RequireClose(t, t1, t2, 0)
}

// TestMul checks a small product against hand-computed values.
func TestMul(t *testing.T) {
	a := MustRows(t, []float64{1, 2, 3}, []float64{4, 5, 6})
	b := MustRows(t, []float64{7, 8}, []float64{9, 10}, []float64{11, 12})
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	RequireClose(t, MustRows(t, []float64{58, 64}, []float64{139, 154}), p, 0)

	_, err = matrix.Mul(a, a)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestTransposeScale verifies Transpose and Scale without touching the operand.
func TestTransposeScale(t *testing.T) {
	a := MustRows(t, []float64{1, 2, 3}, []float64{4, 5, 6})
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	RequireClose(t, MustRows(t, []float64{1, 4}, []float64{2, 5}, []float64{3, 6}), at, 0)

	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	RequireClose(t, MustRows(t, []float64{-2, -4, -6}, []float64{-8, -10, -12}), s, 0)
	// Operand untouched.
	assert.Equal(t, 1.0, MustAt(t, a, 0, 0))
}

// TestMatVecMatTVec checks both matrix-vector products and their length checks.
func TestMatVecMatTVec(t *testing.T) {
	a := MustRows(t, []float64{1, 2}, []float64{3, 4}, []float64{5, 6})

	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1}, y)

	z, err := matrix.MatTVec(a, []float64{1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 14}, z)

	_, err = matrix.MatVec(a, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatTVec(a, []float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestInverse verifies A·A⁻¹ = I for triangular and symmetric positive definite inputs.
func TestInverse(t *testing.T) {
	// Unit upper triangular, the shape PᵀW takes in a PLS fit.
	a := MustRows(t,
		[]float64{1, 0.3, -0.2},
		[]float64{0, 1, 0.5},
		[]float64{0, 0, 1},
	)
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	id := Identity(t, 3)
	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	RequireClose(t, id, prod, 1e-12)

	// Symmetric positive definite.
	spd := MustRows(t, []float64{4, 1}, []float64{1, 3})
	inv, err = matrix.Inverse(spd)
	require.NoError(t, err)
	prod, err = matrix.Mul(inv, spd)
	require.NoError(t, err)
	RequireClose(t, Identity(t, 2), prod, 1e-12)
}

// TestInverse_Errors ensures singular, non-square and nil inputs are rejected.
func TestInverse_Errors(t *testing.T) {
	_, err := matrix.Inverse(MustRows(t, []float64{1, 2}, []float64{2, 4}))
	assert.ErrorIs(t, err, matrix.ErrSingular)
	_, err = matrix.Inverse(MustDense(t, 2, 3))
	assert.ErrorIs(t, err, matrix.ErrNonSquare)
	_, err = matrix.Inverse(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestLU_Reconstructs verifies that L·U reproduces the input.
func TestLU_Reconstructs(t *testing.T) {
	a := MustRows(t, []float64{4, 3, 2}, []float64{2, 5, 1}, []float64{1, 2, 6})
	L, U, err := matrix.LU(a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, MustAt(t, L, 2, 2))
	assert.Zero(t, MustAt(t, U, 2, 0))
	back, err := matrix.Mul(L, U)
	require.NoError(t, err)
	RequireClose(t, a, back, 1e-12)
}
