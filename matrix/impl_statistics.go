// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the column statistics latent-variable models are built from:
//     column means, column centering and sums of squares.
//
// Exposed API (see api.go):
//   - CenterColumns(X)    -> (Xc, means)       // subtract per-column mean
//   - ColumnSumSquares(X) -> ss                // Σ_i X[i,j]²
//   - SumSquares(X)       -> ss                // Σ_ij X[i,j]²
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Zero-row matrices yield zero means and zero sums.

package matrix

const (
	opColumnMeans      = "ColumnMeans"
	opCenterColumns    = "CenterColumns"
	opColumnSumSquares = "ColumnSumSquares"
	opSumSquares       = "SumSquares"
)

// columnMeans accumulates per-column sums and divides by the row count.
// Implementation:
//   - Stage 1: Validate X (non-nil); materialize as Dense.
//   - Stage 2: Accumulate sums in a deterministic pass.
//   - Stage 3: Divide by r (skipped when r == 0).
//
// Complexity:
//   - Time O(r*c), Space O(c).
func columnMeans(X Matrix) ([]float64, error) {
	d, err := AsDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := d.r, d.c
	means := make([]float64, c)
	if r == 0 {
		return means, nil
	}
	var i, j int
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			means[j] += d.data[base+j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means, nil
}

// centerColumns subtracts the per-column mean from every element.
// Returns the centered copy and the means so callers can un-center later.
func centerColumns(X Matrix) (*Dense, []float64, error) {
	means, err := columnMeans(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	Xc, err := ewBroadcastCols(X, means, -1)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	return Xc, means, nil
}

// columnSumSquares returns Σ_i X[i,j]² per column.
func columnSumSquares(X Matrix) ([]float64, error) {
	d, err := AsDense(X)
	if err != nil {
		return nil, matrixErrorf(opColumnSumSquares, err)
	}
	r, c := d.r, d.c
	ss := make([]float64, c)
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		base := i * c
		for j = 0; j < c; j++ {
			v = d.data[base+j]
			ss[j] += v * v
		}
	}

	return ss, nil
}

// sumSquares returns the total Σ_ij X[i,j]².
func sumSquares(X Matrix) (float64, error) {
	ss, err := columnSumSquares(X)
	if err != nil {
		return 0, matrixErrorf(opSumSquares, err)
	}
	total := ZeroSum
	for _, v := range ss {
		total += v
	}

	return total, nil
}
