// SPDX-License-Identifier: MIT

package scaling_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemometrics/matrix"
	"github.com/katalvlaran/chemometrics/scaling"
)

func mustRows(t *testing.T, rows ...[]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

func col(t *testing.T, m matrix.Matrix, j int) []float64 {
	t.Helper()
	d, err := matrix.AsDense(m)
	require.NoError(t, err)
	c, err := d.Col(j)
	require.NoError(t, err)

	return c
}

// TestPowerScaler_Family verifies the divisor of mean centering, Pareto and unit variance and the constant-column rule.
func TestPowerScaler_Family(t *testing.T) {
	// Column 0: mean 2, population σ = sqrt(2/3).
	x := mustRows(t, []float64{1, 5}, []float64{2, 5}, []float64{3, 5})
	sigma := math.Sqrt(2.0 / 3.0)

	tests := []struct {
		name   string
		scaler *scaling.PowerScaler
		div    float64
	}{
		{"mean-centering", scaling.NewMeanCentering(), 1},
		{"pareto", scaling.NewPareto(), math.Sqrt(sigma)},
		{"unit-variance", scaling.NewUnitVariance(), sigma},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			xs, err := tc.scaler.FitTransform(x)
			require.NoError(t, err)
			assert.InDeltaSlice(t, []float64{-1 / tc.div, 0, 1 / tc.div}, col(t, xs, 0), 1e-12)
			// Constant column is centred, never divided by zero.
			assert.Equal(t, []float64{0, 0, 0}, col(t, xs, 1))
			assert.InDeltaSlice(t, []float64{2, 5}, tc.scaler.Mean(), 1e-15)
			assert.Equal(t, 1.0, tc.scaler.Scale()[1])
		})
	}
}

// TestPowerScaler_RoundTrip ensures InverseTransform undoes FitTransform for an arbitrary power.
func TestPowerScaler_RoundTrip(t *testing.T) {
	x := mustRows(t, []float64{1, -4, 10}, []float64{2.5, 3, 11}, []float64{-7, 0.5, 9})
	s, err := scaling.NewPowerScaler(0.75)
	require.NoError(t, err)

	xs, err := s.FitTransform(x)
	require.NoError(t, err)
	back, err := s.InverseTransform(xs)
	require.NoError(t, err)
	ok, err := matrix.AllClose(back, x, 0, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)

	// Transform reuses the fitted parameters.
	again, err := s.Transform(x)
	require.NoError(t, err)
	ok, err = matrix.AllClose(again, xs, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestPowerScaler_Errors covers invalid powers, use before fitting and column mismatches.
func TestPowerScaler_Errors(t *testing.T) {
	_, err := scaling.NewPowerScaler(-1)
	assert.ErrorIs(t, err, scaling.ErrInvalidPower)
	_, err = scaling.NewPowerScaler(math.NaN())
	assert.ErrorIs(t, err, scaling.ErrInvalidPower)

	s := scaling.NewUnitVariance()
	_, err = s.Transform(mustRows(t, []float64{1}))
	assert.ErrorIs(t, err, scaling.ErrNotFitted)
	_, err = s.InverseTransform(mustRows(t, []float64{1}))
	assert.ErrorIs(t, err, scaling.ErrNotFitted)

	_, err = s.FitTransform(mustRows(t, []float64{1, 2}, []float64{3, 4}))
	require.NoError(t, err)
	_, err = s.Transform(mustRows(t, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = s.FitTransform(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestPowerScaler_CloneIsUnfitted verifies that Clone keeps the power but not the fitted statistics.
func TestPowerScaler_CloneIsUnfitted(t *testing.T) {
	s := scaling.NewPareto()
	_, err := s.FitTransform(mustRows(t, []float64{1}, []float64{3}))
	require.NoError(t, err)

	c := s.Clone()
	ps, ok := c.(*scaling.PowerScaler)
	require.True(t, ok)
	assert.False(t, ps.IsFitted())
	assert.Equal(t, scaling.PowerPareto, ps.Power())
	assert.True(t, s.IsFitted())
}

// TestPowerScaler_DoesNotMutateInput ensures FitTransform leaves its input unchanged.
func TestPowerScaler_DoesNotMutateInput(t *testing.T) {
	x := mustRows(t, []float64{1, 2}, []float64{3, 4})
	_, err := scaling.NewUnitVariance().FitTransform(x)
	require.NoError(t, err)
	v, err := x.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
}
