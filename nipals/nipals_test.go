// SPDX-License-Identifier: MIT

package nipals_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/chemometrics/matrix"
	"github.com/katalvlaran/chemometrics/nipals"
)

// synthetic returns a 30×6 X and a 30×2 Y driven by X's first three columns.
func synthetic(t *testing.T, seed int64) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	X, err := matrix.NewDense(30, 6)
	require.NoError(t, err)
	Y, err := matrix.NewDense(30, 2)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		row := X.RawRow(i)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		yr := Y.RawRow(i)
		yr[0] = 2*row[0] - row[1] + 0.1*rng.NormFloat64()
		yr[1] = row[2] + 0.5*row[0] + 0.1*rng.NormFloat64()
	}

	return X, Y
}

func cols(t *testing.T, m *matrix.Dense) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Cols())
	for j := range out {
		c, err := m.Col(j)
		require.NoError(t, err)
		out[j] = c
	}

	return out
}

// TestDecompose_Structure verifies unit, orthogonal weights with a positive dominant entry and orthogonal scores.
func TestDecompose_Structure(t *testing.T) {
	X, Y := synthetic(t, 1)
	res, err := nipals.Default().Decompose(X, Y, 4)
	require.NoError(t, err)
	require.Equal(t, 4, res.Components())

	T, W, P := cols(t, res.T), cols(t, res.W), cols(t, res.P)
	for a := range W {
		// Unit weights, positive dominant entry.
		assert.InDelta(t, 1, floats.Norm(W[a], 2), 1e-12)
		assert.Greater(t, W[a][floats.MaxIdx(absAll(W[a]))], 0.0)
		for b := range W {
			if a == b {
				continue
			}
			// Orthogonal scores and weights.
			assert.InDelta(t, 0, floats.Dot(T[a], T[b]), 1e-8, "t%d·t%d", a, b)
			assert.InDelta(t, 0, floats.Dot(W[a], W[b]), 1e-8, "w%d·w%d", a, b)
		}
		// PᵀW is unit upper triangular.
		assert.InDelta(t, 1, floats.Dot(P[a], W[a]), 1e-10)
		for b := 0; b < a; b++ {
			assert.InDelta(t, 0, floats.Dot(P[a], W[b]), 1e-8, "p%d·w%d", a, b)
		}
	}
	assert.Len(t, res.XMean, 6)
	assert.Len(t, res.YMean, 2)
	assert.Len(t, res.Iterations, 4)
}

// TestDecompose_FullRankReconstructsX ensures that with as many components as columns T·Pᵀ plus the mean gives back X.
func TestDecompose_FullRankReconstructsX(t *testing.T) {
	X, Y := synthetic(t, 2)
	res, err := nipals.Decompose(X, Y, 6, nipals.DefaultOptions())
	require.NoError(t, err)

	Pt, err := matrix.Transpose(res.P)
	require.NoError(t, err)
	hat, err := matrix.Mul(res.T, Pt)
	require.NoError(t, err)
	hat, err = matrix.AddCols(hat, res.XMean)
	require.NoError(t, err)
	ok, err := matrix.AllClose(hat, X, 0, 1e-8)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestDecompose_Deterministic verifies that repeated runs produce identical weights and scores.
func TestDecompose_Deterministic(t *testing.T) {
	X, Y := synthetic(t, 3)
	a, err := nipals.Default().Decompose(X, Y, 3)
	require.NoError(t, err)
	b, err := nipals.Default().Decompose(X, Y, 3)
	require.NoError(t, err)
	assert.Equal(t, a.W.String(), b.W.String())
	assert.Equal(t, a.T.String(), b.T.String())
}

// TestDecompose_UnivariateConvergesImmediately checks that a single response converges in two inner iterations per component.
func TestDecompose_UnivariateConvergesImmediately(t *testing.T) {
	X, Y := synthetic(t, 4)
	rows := make([]int, Y.Rows())
	for i := range rows {
		rows[i] = i
	}
	y, err := Y.Induced(rows, []int{0})
	require.NoError(t, err)
	res, err := nipals.Default().Decompose(X, y, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, res.Iterations)
}

// TestDecompose_InputsUntouched ensures Decompose leaves X unchanged.
func TestDecompose_InputsUntouched(t *testing.T) {
	X, Y := synthetic(t, 5)
	before := X.String()
	_, err := nipals.Default().Decompose(X, Y, 2)
	require.NoError(t, err)
	assert.Equal(t, before, X.String())
}

// TestDecompose_Errors covers row mismatch, invalid component counts, invalid options and nil input.
func TestDecompose_Errors(t *testing.T) {
	X, Y := synthetic(t, 6)

	short, err := Y.SelectRows([]int{0, 1, 2})
	require.NoError(t, err)
	_, err = nipals.Default().Decompose(X, short, 1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = nipals.Default().Decompose(X, Y, 7)
	assert.ErrorIs(t, err, nipals.ErrInvalidComponents)
	_, err = nipals.Default().Decompose(X, Y, 0)
	assert.ErrorIs(t, err, nipals.ErrInvalidComponents)

	_, err = nipals.New(nipals.Options{Tolerance: 0, MaxIter: 10, RankEpsilon: 1e-12}).Decompose(X, Y, 1)
	assert.ErrorIs(t, err, nipals.ErrInvalidOptions)

	_, err = nipals.Default().Decompose(nil, Y, 1)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestDecompose_RankDeficient verifies that extracting more components than the rank of X yields ErrRankDeficient.
func TestDecompose_RankDeficient(t *testing.T) {
	// Every column of X is a multiple of the first: rank one.
	rng := rand.New(rand.NewSource(7))
	X, err := matrix.NewDense(12, 3)
	require.NoError(t, err)
	Y, err := matrix.NewDense(12, 1)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		v := rng.NormFloat64()
		require.NoError(t, X.Set(i, 0, v))
		require.NoError(t, X.Set(i, 1, 2*v))
		require.NoError(t, X.Set(i, 2, -v))
		require.NoError(t, Y.Set(i, 0, rng.NormFloat64()))
	}
	_, err = nipals.Default().Decompose(X, Y, 1)
	require.NoError(t, err)
	_, err = nipals.Default().Decompose(X, Y, 2)
	assert.ErrorIs(t, err, nipals.ErrRankDeficient)
	assert.Contains(t, err.Error(), "component 2")
}

// TestDecompose_NoConvergence ensures a one-iteration cap on a multi-response fit yields ErrNoConvergence.
func TestDecompose_NoConvergence(t *testing.T) {
	X, Y := synthetic(t, 8)
	opts := nipals.DefaultOptions()
	opts.MaxIter = 1
	_, err := nipals.Decompose(X, Y, 1, opts)
	assert.ErrorIs(t, err, nipals.ErrNoConvergence)
}

func absAll(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Abs(x)
	}

	return out
}
