// SPDX-License-Identifier: MIT

package pls

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemometrics/matrix"
)

// TestFlipComponents_KeepsPredictions verifies that flipping component signs leaves predictions unchanged.
func TestFlipComponents_KeepsPredictions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	X, err := matrix.NewDense(25, 4)
	require.NoError(t, err)
	Y, err := matrix.NewDense(25, 2)
	require.NoError(t, err)
	for i := 0; i < 25; i++ {
		row := X.RawRow(i)
		for j := range row {
			row[j] = rng.NormFloat64()
		}
		Y.RawRow(i)[0] = row[0] + 0.5*row[1] + 0.05*rng.NormFloat64()
		Y.RawRow(i)[1] = row[2] - row[3] + 0.05*rng.NormFloat64()
	}
	m, err := New(3)
	require.NoError(t, err)
	require.NoError(t, m.Fit(X, Y))

	before, err := m.predict(X)
	require.NoError(t, err)
	p0, err := m.p.Col(1)
	require.NoError(t, err)
	t0, err := m.t.Col(1)
	require.NoError(t, err)

	require.NoError(t, m.flipComponents([]bool{false, true, false}))

	after, err := m.predict(X)
	require.NoError(t, err)
	ok, err := matrix.AllClose(before, after, 0, 1e-10)
	require.NoError(t, err)
	assert.True(t, ok)

	p1, err := m.p.Col(1)
	require.NoError(t, err)
	t1, err := m.t.Col(1)
	require.NoError(t, err)
	for j := range p0 {
		assert.Equal(t, -p0[j], p1[j])
	}
	for i := range t0 {
		assert.Equal(t, -t0[i], t1[i])
	}

	// The flipped model aligns back onto its own original loadings.
	ref := m.p.Copy()
	require.NoError(t, ref.ScaleCol(1, -1))
	flips, err := m.alignTo(ref)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, flips)

	assert.ErrorIs(t, m.flipComponents([]bool{true}), ErrDimension)
}
