// SPDX-License-Identifier: MIT
// Package pls: sentinel error set.
// Every exported operation returns one of these sentinels wrapped with an
// operation tag. When a lower package (matrix, scaling, nipals, folds) is the
// origin, its sentinel is wrapped as well, so errors.Is matches both.

package pls

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates an invalid component count, option or fold split.
	ErrConfiguration = errors.New("pls: invalid configuration")

	// ErrDimension indicates inputs whose shapes disagree with each other or
	// with the fitted model.
	ErrDimension = errors.New("pls: dimension mismatch")

	// ErrNotFitted is returned by operations that need a fitted model.
	ErrNotFitted = errors.New("pls: model is not fitted")

	// ErrNumeric indicates a numeric failure: rank deficiency, non-convergence,
	// a singular system or a zero sum of squares.
	ErrNumeric = errors.New("pls: numeric failure")

	// ErrValue indicates an invalid argument value (component subset, alpha,
	// permutation count, non-finite input).
	ErrValue = errors.New("pls: invalid value")
)

// Operation tags for error wrapping.
const (
	opNew                = "pls.New"
	opConfigure          = "pls.Configure"
	opFit                = "pls.Fit"
	opTransform          = "pls.Transform"
	opTransformY         = "pls.TransformY"
	opInverseTransform   = "pls.InverseTransform"
	opInverseTransformY  = "pls.InverseTransformY"
	opPredict            = "pls.Predict"
	opScore              = "pls.Score"
	opCoefficients       = "pls.RegressionCoefficients"
	opVIP                = "pls.VIP"
	opHotellingT2        = "pls.HotellingT2"
	opHotellingT2Limit   = "pls.HotellingT2Limit"
	opCrossValidate      = "pls.CrossValidate"
	opPermutationTest    = "pls.PermutationTest"
	opAlignSigns         = "pls.AlignSigns"
	opScaledCoefficients = "pls.ScaledRegressionCoefficients"
)

// plsErrorf wraps cause under op with the pls sentinel kind.
// If cause already carries kind, it is only tagged.
func plsErrorf(op string, kind, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	if errors.Is(cause, kind) {
		return fmt.Errorf("%s: %w", op, cause)
	}

	return fmt.Errorf("%s: %w: %w", op, kind, cause)
}
