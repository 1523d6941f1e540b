// SPDX-License-Identifier: MIT

// Package pls implements Partial Least Squares regression for multivariate
// calibration: fitting, projection, prediction, model diagnostics,
// sign-aligned k-fold cross-validation and permutation testing.
//
// A Model relates a predictor matrix X (n×p) to a response matrix Y (n×q)
// through a latent components:
//
//	Xs − x̄ ≈ T Pᵀ     Ys − ȳ ≈ T Cᵀ     T = (Xs − x̄) W*
//
// where Xs and Ys are X and Y after their scalers. By default X is scaled to
// unit variance, Y is left unscaled and the decomposition is NIPALS.
//
// Typical use:
//
//	m, _ := pls.New(3)
//	if err := m.Fit(X, Y); err != nil { ... }
//	Yhat, _ := m.Predict(Xnew)
//	vip, _ := m.VIP()
//	cv, _ := m.CrossValidate(ctx, X, Y, folds.NewKFold(7))
//
// Reconfiguration (Configure, SetComponents, SetXScaler, SetYScaler, Reset)
// is destructive: the fitted matrices, model parameters and the latest
// cross-validation parameters are discarded.
//
// Cross-validation and permutation testing run on unfitted clones of the
// model's configuration and never change its fitted state. Folds and
// permutations may run concurrently (WithWorkers, WithPermutationWorkers);
// results are reduced in a fixed order and do not depend on the worker count.
//
// Errors are reported with five sentinels (ErrConfiguration, ErrDimension,
// ErrNotFitted, ErrNumeric, ErrValue). Errors from the matrix, scaling, nipals
// and folds packages are wrapped so that errors.Is matches both taxonomies.
package pls
