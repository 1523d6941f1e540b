// SPDX-License-Identifier: MIT

// Package chemometrics is a Partial Least Squares regression toolkit for
// spectroscopy and other wide, collinear data sets.
//
// What is in the box?
//
//	A deterministic, pure-Go stack for latent-variable regression:
//		• Dense matrices with strict shape and finiteness validation
//		• Column scalers: mean centering, unit variance, Pareto, any power
//		• NIPALS PLS2 decomposition with rank-deficiency detection
//		• Fold generators: k-fold (optionally shuffled) and predefined labels
//		• PLS model: fit, project, predict, VIP, Hotelling T², coefficients
//		• Cross-validation with sign-aligned loadings, PRESS and Q²
//		• Permutation tests, eager or streamed through iter.Seq2
//
// Subpackages:
//
//	matrix/  : Matrix interface, Dense storage, products and statistics
//	scaling/ : Scaler interface and the power-family scalers
//	nipals/  : NIPALS decomposition into scores, weights and loadings
//	folds/   : cross-validation splits and seeded random streams
//	pls/     : the PLS model and its validation tools
//
// Quick start:
//
//	m, _ := pls.New(3, pls.WithXScaler(scaling.NewPareto()))
//	_ = m.Fit(X, Y)
//	cv, _ := m.CrossValidate(ctx, X, Y, folds.KFold{Splits: 7, Shuffle: true})
//	fmt.Println(cv.Q2)
//
// Runnable demos live in examples/.
//
//	go get github.com/katalvlaran/chemometrics
package chemometrics
