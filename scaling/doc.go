// SPDX-License-Identifier: MIT

// Package scaling provides the column scaling step applied to X and Y before
// a latent-variable decomposition.
//
// What is power scaling?
//
//	Every column j is centred on its mean and divided by σ_j^power:
//
//	    x'_ij = (x_ij − μ_j) / σ_j^power
//
//	  • power = 0   → mean centring only
//	  • power = 0.5 → Pareto scaling (σ_j^½)
//	  • power = 1   → unit-variance (auto) scaling
//
//	σ_j is the population standard deviation of the fitting data. A constant
//	column (σ_j = 0) gets a unit divisor so it is centred but never blown up.
//
// Usage:
//
//	s := scaling.NewUnitVariance()
//	xs, err := s.FitTransform(X)   // learn μ, σ from X and apply them
//	zs, err := s.Transform(Z)      // reuse the learned parameters
//	x2, err := s.InverseTransform(xs)
//
// Scalers are stateful and NOT safe for concurrent FitTransform calls; use
// Clone to obtain an unfitted copy with the same configuration per goroutine.
package scaling
