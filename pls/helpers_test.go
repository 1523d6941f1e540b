// SPDX-License-Identifier: MIT

package pls_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemometrics/matrix"
	"github.com/katalvlaran/chemometrics/nipals"
)

// calibration returns an n×p X of independent normals and a univariate Y
// driven by columns 0, 1 and 2 only: y = 3x0 + 2x1 − 2x2 + 0.1ε.
func calibration(t testing.TB, n, p int, seed int64) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	X, err := matrix.NewDense(n, p)
	require.NoError(t, err)
	Y, err := matrix.NewDense(n, 1)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		row := X.RawRow(i)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		Y.RawRow(i)[0] = 3*row[0] + 2*row[1] - 2*row[2] + 0.1*rng.NormFloat64()
	}

	return X, Y
}

// noise returns an n×p X and an n×1 Y drawn independently of each other.
func noise(t testing.TB, n, p int, seed int64) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	X, err := matrix.NewDense(n, p)
	require.NoError(t, err)
	Y, err := matrix.NewDense(n, 1)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		for j := range X.RawRow(i) {
			X.RawRow(i)[j] = rng.NormFloat64()
		}
		Y.RawRow(i)[0] = rng.NormFloat64()
	}

	return X, Y
}

// multiResponse returns a 60×6 X with offsets and a two-column Y.
func multiResponse(t testing.TB, seed int64) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	X, err := matrix.NewDense(60, 6)
	require.NoError(t, err)
	Y, err := matrix.NewDense(60, 2)
	require.NoError(t, err)
	for i := 0; i < 60; i++ {
		row := X.RawRow(i)
		for j := range row {
			row[j] = 10*float64(j) + float64(j+1)*rng.NormFloat64()
		}
		yr := Y.RawRow(i)
		yr[0] = row[0] - 0.5*row[3] + 0.2*rng.NormFloat64()
		yr[1] = 100 + 0.3*row[4] + row[1] + 0.2*rng.NormFloat64()
	}

	return X, Y
}

func dense(t testing.TB, m matrix.Matrix) *matrix.Dense {
	t.Helper()
	require.NotNil(t, m)
	d, err := matrix.AsDense(m)
	require.NoError(t, err)

	return d
}

func col(t testing.TB, m matrix.Matrix, j int) []float64 {
	t.Helper()
	c, err := dense(t, m).Col(j)
	require.NoError(t, err)

	return c
}

func requireClose(t testing.TB, want, got matrix.Matrix, tol float64) {
	t.Helper()
	ok, err := matrix.AllClose(want, got, 0, tol)
	require.NoError(t, err)
	require.True(t, ok, "matrices differ beyond %g\nwant:\n%v\ngot:\n%v", tol, want, got)
}

// failingDecomposer fails whenever it sees a row count other than okRows.
type failingDecomposer struct {
	okRows int
}

func (f failingDecomposer) Decompose(X, Y matrix.Matrix, n int) (*nipals.Result, error) {
	if X.Rows() != f.okRows {
		return nil, nipals.ErrNoConvergence
	}

	return nipals.Default().Decompose(X, Y, n)
}
