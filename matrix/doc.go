// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra substrate of the module.
//
// The matrix package provides:
//
//   - Matrix, a minimal interface (Rows, Cols, At, Set, Clone) with
//     error-returning accessors, and Dense, its row-major implementation.
//   - Canonical kernels: Sub, Mul, Transpose, Scale, MatVec, MatTVec,
//     LU and Inverse.
//   - Column statistics used by scaling and model evaluation: CenterColumns,
//     ColumnSumSquares, SumSquares.
//   - Row/column selection (Dense.SelectRows, Dense.Induced) for resampling
//     schemes such as k-fold cross-validation.
//
// Every kernel allocates a fresh result and never mutates its operands, except
// the explicitly in-place methods on *Dense (Set, ScaleCol, SubOuter).
// Passing *Dense operands unlocks flat-slice fast paths; any other Matrix goes
// through the bounds-checked At/Set fallback with identical results.
package matrix
