// SPDX-License-Identifier: MIT

// Package matrix: the public Matrix contract shared by every package of the
// module (scaling, nipals, pls). Errors and kernels live in dedicated files
// (errors.go, impl_*.go) per the package conventions.
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Rows are samples and columns are variables throughout the module.
//
// Contract:
//   - At/Set never panic on bad indices; they return ErrOutOfRange.
//   - Clone returns an independent deep copy.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows (samples).
	// Complexity: O(1).
	Rows() int

	// Cols returns the number of columns (variables).
	// Complexity: O(1).
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// Complexity: O(rows*cols).
	Clone() Matrix
}
