// SPDX-License-Identifier: MIT

package scaling

import "errors"

var (
	// ErrNotFitted is returned by Transform/InverseTransform before FitTransform.
	ErrNotFitted = errors.New("scaling: scaler is not fitted")

	// ErrInvalidPower indicates a negative or non-finite scaling power.
	ErrInvalidPower = errors.New("scaling: power must be a finite value >= 0")

	// ErrEmptyInput indicates a matrix with no rows was supplied to FitTransform.
	ErrEmptyInput = errors.New("scaling: input has no rows")
)
