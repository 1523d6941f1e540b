// SPDX-License-Identifier: MIT

// Public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication: each facade delegates to the canonical implementation.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors & Utilities ----------

// NewDenseFromCols builds an r×k matrix whose j-th column is cols[j].
// Latent-variable code collects per-component vectors column by column.
//
// Errors:
//   - ErrInvalidDimensions when cols is empty or the first column is empty.
//   - ErrRaggedRows when column lengths differ.
func NewDenseFromCols(cols [][]float64) (*Dense, error) {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, k := len(cols[0]), len(cols)
	out, err := NewDense(r, k)
	if err != nil {
		return nil, err
	}
	for j, col := range cols {
		if len(col) != r {
			return nil, matrixErrorf("NewDenseFromCols", ErrRaggedRows)
		}
		for i, v := range col {
			out.data[i*k+j] = v
		}
	}

	return out, nil
}

// ---------- Column statistics ----------

// CenterColumns returns a column-centered copy of X and the subtracted means.
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// ColumnSumSquares returns Σ_i X[i,j]² for every column j.
func ColumnSumSquares(X Matrix) ([]float64, error) { return columnSumSquares(X) }

// SumSquares returns Σ_ij X[i,j]².
func SumSquares(X Matrix) (float64, error) { return sumSquares(X) }

// ---------- Broadcast helpers ----------

// SubCols returns X with v[j] subtracted from every element of column j.
func SubCols(X Matrix, v []float64) (*Dense, error) { return ewBroadcastCols(X, v, -1) }

// AddCols returns X with v[j] added to every element of column j.
func AddCols(X Matrix, v []float64) (*Dense, error) { return ewBroadcastCols(X, v, +1) }

// ScaleCols returns X with column j multiplied by s[j].
func ScaleCols(X Matrix, s []float64) (*Dense, error) { return ewScaleCols(X, s) }

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
// Errors on nil inputs, shape mismatch or non-finite tolerances.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) { return ewAllClose(a, b, rtol, atol) }
