// SPDX-License-Identifier: MIT

// Package folds splits sample indices into cross-validation folds.
//
// A split is a list of Fold values. It is valid when there are at least two
// folds, every index 0..n-1 appears in exactly one Test set, and each Train
// set is the complement of its Test set. Validate checks all of this.
//
// Generators:
//   - KFold: k contiguous folds; the first n%k folds get one extra
//     sample. Optional seeded shuffle.
//   - Predefined: caller-supplied fold label per sample.
//
// Generators are restartable: Split may be called any number of times and a
// shuffled KFold returns the same folds for the same Seed.
//
// rng.go holds the deterministic random-stream helpers also used for
// permutation testing.
package folds
