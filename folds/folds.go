// SPDX-License-Identifier: MIT

package folds

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultSplits is the number of folds used by NewKFold(0) callers that want
// the conventional default.
const DefaultSplits = 7

var (
	// ErrInvalidSplit indicates fold parameters or a fold list that cannot
	// form a valid partition.
	ErrInvalidSplit = errors.New("folds: invalid split")
)

// Fold is one train/test partition of the sample indices.
type Fold struct {
	Train []int
	Test  []int
}

// Generator produces folds for n samples.
type Generator interface {
	Split(n int) ([]Fold, error)
}

// Compile-time assertions.
var (
	_ Generator = KFold{}
	_ Generator = Predefined{}
)

// KFold splits n samples into Splits consecutive folds.
//
// Fields:
//   - Splits: number of folds (>= 2).
//   - Shuffle: permute indices before chunking.
//   - Seed: RNG seed used when Shuffle is set (0 selects a fixed default).
type KFold struct {
	Splits  int
	Shuffle bool
	Seed    int64
}

// NewKFold returns an unshuffled KFold. k <= 0 selects DefaultSplits.
func NewKFold(k int) KFold {
	if k <= 0 {
		k = DefaultSplits
	}

	return KFold{Splits: k}
}

// Split implements Generator.
//
// Errors:
//   - ErrInvalidSplit when Splits < 2 or n < Splits.
//
// Complexity: O(k·n).
func (k KFold) Split(n int) ([]Fold, error) {
	if k.Splits < 2 {
		return nil, fmt.Errorf("KFold: %d splits: %w", k.Splits, ErrInvalidSplit)
	}
	if n < k.Splits {
		return nil, fmt.Errorf("KFold: %d samples for %d splits: %w", n, k.Splits, ErrInvalidSplit)
	}

	order := identity(n)
	if k.Shuffle {
		shuffleIntsInPlace(order, NewRNG(k.Seed))
	}

	labels := make([]int, n)
	base, extra := n/k.Splits, n%k.Splits
	start := 0
	for f := 0; f < k.Splits; f++ {
		size := base
		if f < extra {
			size++
		}
		for _, idx := range order[start : start+size] {
			labels[idx] = f
		}
		start += size
	}

	return fromLabels(labels, k.Splits), nil
}

// Predefined assigns sample i to test fold Labels[i]. Labels must be
// non-negative; folds are ordered by ascending label and empty labels are
// skipped.
type Predefined struct {
	Labels []int
}

// Split implements Generator. n must equal len(Labels).
func (p Predefined) Split(n int) ([]Fold, error) {
	if n != len(p.Labels) {
		return nil, fmt.Errorf("Predefined: %d labels for %d samples: %w", len(p.Labels), n, ErrInvalidSplit)
	}
	remap := make(map[int]int)
	for i, l := range p.Labels {
		if l < 0 {
			return nil, fmt.Errorf("Predefined: label %d at sample %d: %w", l, i, ErrInvalidSplit)
		}
		remap[l] = 0
	}
	distinct := make([]int, 0, len(remap))
	for l := range remap {
		distinct = append(distinct, l)
	}
	sort.Ints(distinct)
	for f, l := range distinct {
		remap[l] = f
	}
	labels := make([]int, n)
	for i, l := range p.Labels {
		labels[i] = remap[l]
	}
	out := fromLabels(labels, len(distinct))
	if err := Validate(out, n); err != nil {
		return nil, fmt.Errorf("Predefined: %w", err)
	}

	return out, nil
}

// Validate checks that folds form a valid partition of 0..n-1.
//
// Errors:
//   - ErrInvalidSplit naming the first violation found.
func Validate(folds []Fold, n int) error {
	if len(folds) < 2 {
		return fmt.Errorf("%d folds, need at least 2: %w", len(folds), ErrInvalidSplit)
	}
	seen := make([]int, n)
	for f, fold := range folds {
		if len(fold.Test) == 0 {
			return fmt.Errorf("fold %d has an empty test set: %w", f, ErrInvalidSplit)
		}
		if len(fold.Train)+len(fold.Test) != n {
			return fmt.Errorf("fold %d: train %d + test %d != %d samples: %w",
				f, len(fold.Train), len(fold.Test), n, ErrInvalidSplit)
		}
		inTest := make([]bool, n)
		for _, idx := range fold.Test {
			if idx < 0 || idx >= n {
				return fmt.Errorf("fold %d: test index %d out of range: %w", f, idx, ErrInvalidSplit)
			}
			if inTest[idx] {
				return fmt.Errorf("fold %d: test index %d repeated: %w", f, idx, ErrInvalidSplit)
			}
			inTest[idx] = true
			seen[idx]++
		}
		for _, idx := range fold.Train {
			if idx < 0 || idx >= n || inTest[idx] {
				return fmt.Errorf("fold %d: train index %d not in the test complement: %w", f, idx, ErrInvalidSplit)
			}
		}
	}
	for idx, c := range seen {
		if c != 1 {
			return fmt.Errorf("sample %d appears in %d test sets: %w", idx, c, ErrInvalidSplit)
		}
	}

	return nil
}

// fromLabels builds k folds from a per-sample fold label. Indices in Train
// and Test are ascending.
func fromLabels(labels []int, k int) []Fold {
	out := make([]Fold, k)
	for i, l := range labels {
		out[l].Test = append(out[l].Test, i)
	}
	n := len(labels)
	for f := range out {
		out[f].Train = make([]int, 0, n-len(out[f].Test))
		for i, l := range labels {
			if l != f {
				out[f].Train = append(out[f].Train, i)
			}
		}
	}

	return out
}

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}

	return p
}
