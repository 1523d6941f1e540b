// SPDX-License-Identifier: MIT

package folds_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chemometrics/folds"
)

// TestKFold_PartitionsIndexSet verifies that the test sets of every split cover each index exactly once, shuffled or not.
func TestKFold_PartitionsIndexSet(t *testing.T) {
	for _, tc := range []struct {
		n       int
		k       int
		shuffle bool
	}{
		{10, 2, false},
		{100, 7, false},
		{100, 7, true},
		{23, 5, true},
		{7, 7, false},
	} {
		t.Run(fmt.Sprintf("n=%d/k=%d/shuffle=%v", tc.n, tc.k, tc.shuffle), func(t *testing.T) {
			fs, err := folds.KFold{Splits: tc.k, Shuffle: tc.shuffle, Seed: 42}.Split(tc.n)
			require.NoError(t, err)
			require.Len(t, fs, tc.k)
			require.NoError(t, folds.Validate(fs, tc.n))

			var all []int
			for _, f := range fs {
				all = append(all, f.Test...)
			}
			sort.Ints(all)
			for i, v := range all {
				require.Equal(t, i, v)
			}
		})
	}
}

// TestKFold_FoldSizes ensures the first n%k folds take one extra sample and unshuffled folds are contiguous.
func TestKFold_FoldSizes(t *testing.T) {
	// 100 = 7*14 + 2: the first two folds hold 15 samples.
	fs, err := folds.NewKFold(7).Split(100)
	require.NoError(t, err)
	sizes := make([]int, len(fs))
	for i, f := range fs {
		sizes[i] = len(f.Test)
	}
	assert.Equal(t, []int{15, 15, 14, 14, 14, 14, 14}, sizes)
	// Unshuffled folds are contiguous.
	assert.Equal(t, 0, fs[0].Test[0])
	assert.Equal(t, 14, fs[0].Test[14])
	assert.Equal(t, 15, fs[1].Test[0])
}

// TestKFold_ShuffleReproducible verifies that the same seed gives the same split and a new seed a different one.
func TestKFold_ShuffleReproducible(t *testing.T) {
	g := folds.KFold{Splits: 4, Shuffle: true, Seed: 9}
	a, err := g.Split(40)
	require.NoError(t, err)
	b, err := g.Split(40)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := folds.KFold{Splits: 4, Shuffle: true, Seed: 10}.Split(40)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

// TestKFold_Errors ensures fewer than two splits or more splits than samples yield ErrInvalidSplit.
func TestKFold_Errors(t *testing.T) {
	_, err := folds.KFold{Splits: 1}.Split(10)
	assert.ErrorIs(t, err, folds.ErrInvalidSplit)
	_, err = folds.NewKFold(5).Split(4)
	assert.ErrorIs(t, err, folds.ErrInvalidSplit)
	assert.Equal(t, folds.DefaultSplits, folds.NewKFold(0).Splits)
}

// TestPredefined verifies label-driven folds and the rejection of single, negative or short label sets.
func TestPredefined(t *testing.T) {
	fs, err := folds.Predefined{Labels: []int{5, 2, 5, 2, 9}}.Split(5)
	require.NoError(t, err)
	require.Len(t, fs, 3)
	assert.Equal(t, []int{1, 3}, fs[0].Test)
	assert.Equal(t, []int{0, 2}, fs[1].Test)
	assert.Equal(t, []int{4}, fs[2].Test)

	_, err = folds.Predefined{Labels: []int{0, 0, 0}}.Split(3)
	assert.ErrorIs(t, err, folds.ErrInvalidSplit)
	_, err = folds.Predefined{Labels: []int{0, -1}}.Split(2)
	assert.ErrorIs(t, err, folds.ErrInvalidSplit)
	_, err = folds.Predefined{Labels: []int{0, 1}}.Split(3)
	assert.ErrorIs(t, err, folds.ErrInvalidSplit)
}

// TestValidate_Violations checks that each broken split layout is reported as ErrInvalidSplit.
func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name  string
		folds []folds.Fold
	}{
		{"single fold", []folds.Fold{{Test: []int{0, 1}}}},
		{"overlap", []folds.Fold{{Train: []int{1}, Test: []int{0}}, {Train: []int{1}, Test: []int{0}}}},
		{"train overlaps test", []folds.Fold{{Train: []int{0}, Test: []int{0}}, {Train: []int{0}, Test: []int{1}}}},
		{"out of range", []folds.Fold{{Train: []int{1}, Test: []int{2}}, {Train: []int{0}, Test: []int{1}}}},
		{"empty test", []folds.Fold{{Train: []int{0, 1}}, {Train: nil, Test: []int{0, 1}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, folds.Validate(tc.folds, 2), folds.ErrInvalidSplit)
		})
	}
}
