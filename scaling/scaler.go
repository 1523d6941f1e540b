// SPDX-License-Identifier: MIT

package scaling

import "github.com/katalvlaran/chemometrics/matrix"

// Scaler is a learnable, invertible, column-wise transformation.
//
// Contract:
//   - FitTransform learns the parameters from X and returns X transformed.
//   - Transform and InverseTransform apply the learned parameters and never refit.
//   - Clone returns an UNFITTED scaler with the same configuration.
//   - Inputs are never mutated; results are freshly allocated.
type Scaler interface {
	FitTransform(X matrix.Matrix) (matrix.Matrix, error)
	Transform(X matrix.Matrix) (matrix.Matrix, error)
	InverseTransform(X matrix.Matrix) (matrix.Matrix, error)
	Clone() Scaler
}

// Compile-time assertion.
var _ Scaler = (*PowerScaler)(nil)
