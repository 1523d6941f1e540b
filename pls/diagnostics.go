// SPDX-License-Identifier: MIT
// Package pls: model diagnostics.
//
// All diagnostics read the fitted state only and return ErrNotFitted before
// Fit. Score-based statistics (VIP, Hotelling T²) are computed in the scaled
// space the model was fitted in; RegressionCoefficients and Intercept map
// original X units to original Y units.

package pls

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/chemometrics/matrix"
)

// RegressionCoefficients returns B (p×q) such that Predict(X) = X B + Intercept.
//
// B is obtained by probing Predict with the zero row and the p unit rows,
// which is exact because both scalers are affine per column. The result
// therefore folds the scaling into the coefficients and needs no
// scaler-specific algebra.
func (m *Model) RegressionCoefficients() (matrix.Matrix, error) {
	B, _, err := m.affineMap()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCoefficients, err)
	}

	return B, nil
}

// Intercept returns the q predictions for an all-zero X row.
func (m *Model) Intercept() ([]float64, error) {
	_, b0, err := m.affineMap()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCoefficients, err)
	}

	return b0, nil
}

// affineMap recovers (B, b0) of the prediction map x ↦ x B + b0.
func (m *Model) affineMap() (*matrix.Dense, []float64, error) {
	if !m.IsFitted() {
		return nil, nil, ErrNotFitted
	}
	probe, err := matrix.NewDense(m.nX+1, m.nX)
	if err != nil {
		return nil, nil, err
	}
	for j := 0; j < m.nX; j++ {
		if err = probe.Set(j+1, j, 1); err != nil {
			return nil, nil, err
		}
	}
	out, err := m.predict(probe)
	if err != nil {
		return nil, nil, err
	}
	b0, err := out.Row(0)
	if err != nil {
		return nil, nil, err
	}
	B, err := matrix.NewDense(m.nX, m.nY)
	if err != nil {
		return nil, nil, err
	}
	for j := 0; j < m.nX; j++ {
		row, dst := out.RawRow(j+1), B.RawRow(j)
		floats.SubTo(dst, row, b0)
	}

	return B, b0, nil
}

// ScaledRegressionCoefficients returns W* Cᵀ (p×q), the coefficients between
// centred scaled X and centred scaled Y.
func (m *Model) ScaledRegressionCoefficients() (matrix.Matrix, error) {
	if !m.IsFitted() {
		return nil, fmt.Errorf("%s: %w", opScaledCoefficients, ErrNotFitted)
	}
	Ct, err := matrix.Transpose(m.c)
	if err != nil {
		return nil, wrapf(opScaledCoefficients, err, "")
	}
	B, err := matrix.Mul(m.wstar, Ct)
	if err != nil {
		return nil, wrapf(opScaledCoefficients, err, "")
	}

	return B, nil
}

// Rotations returns a copy of W* = W (PᵀW)⁻¹ (p×a).
func (m *Model) Rotations() (matrix.Matrix, error) { return m.fittedCopy(m.wstar) }

// VIP returns the variable importance in projection of every X column:
//
//	VIP_j = sqrt( p · Σ_a SSY_a (w_ja / ‖w_a‖)² / Σ_a SSY_a ),  SSY_a = (c_aᵀc_a)(t_aᵀt_a)
//
// The mean of VIP² over all columns is 1; columns above 1 are conventionally
// read as influential.
//
// Errors:
//   - ErrNotFitted; ErrNumeric when a weight vector or the total SSY is zero.
func (m *Model) VIP() ([]float64, error) {
	if !m.IsFitted() {
		return nil, fmt.Errorf("%s: %w", opVIP, ErrNotFitted)
	}
	var (
		p     = m.nX
		acc   = make([]float64, p)
		total float64
	)
	for a := 0; a < m.nComponents; a++ {
		t, err := m.t.Col(a)
		if err != nil {
			return nil, wrapf(opVIP, err, "")
		}
		c, err := m.c.Col(a)
		if err != nil {
			return nil, wrapf(opVIP, err, "")
		}
		w, err := m.w.Col(a)
		if err != nil {
			return nil, wrapf(opVIP, err, "")
		}
		norm := floats.Norm(w, 2)
		if norm == 0 {
			return nil, fmt.Errorf("%s: component %d has a zero weight vector: %w", opVIP, a+1, ErrNumeric)
		}
		ssy := floats.Dot(c, c) * floats.Dot(t, t)
		total += ssy
		for j, wj := range w {
			r := wj / norm
			acc[j] += ssy * r * r
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("%s: explained Y sum of squares is zero: %w", opVIP, ErrNumeric)
	}
	for j := range acc {
		acc[j] = math.Sqrt(float64(p) * acc[j] / total)
	}

	return acc, nil
}

// HotellingT2 returns Hotelling's T² of every training sample over the given
// 1-based components: T²_i = Σ_a t_ia² / s²_a, with s²_a the sample variance
// of score column a. nil or empty components is rejected; pass every index
// explicitly to use the whole model.
//
// Errors:
//   - ErrNotFitted.
//   - ErrValue for an empty list, an index outside 1..a or a duplicate.
//   - ErrNumeric when a selected score column has zero variance.
func (m *Model) HotellingT2(components []int) ([]float64, error) {
	if !m.IsFitted() {
		return nil, fmt.Errorf("%s: %w", opHotellingT2, ErrNotFitted)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%s: no components selected: %w", opHotellingT2, ErrValue)
	}
	seen := make(map[int]bool, len(components))
	for _, a := range components {
		if a < 1 || a > m.nComponents {
			return nil, fmt.Errorf("%s: component %d outside 1..%d: %w", opHotellingT2, a, m.nComponents, ErrValue)
		}
		if seen[a] {
			return nil, fmt.Errorf("%s: component %d repeated: %w", opHotellingT2, a, ErrValue)
		}
		seen[a] = true
	}

	out := make([]float64, m.t.Rows())
	for _, a := range components {
		t, err := m.t.Col(a - 1)
		if err != nil {
			return nil, wrapf(opHotellingT2, err, "")
		}
		s2 := stat.Variance(t, nil)
		if !(s2 > 0) {
			return nil, fmt.Errorf("%s: component %d has zero score variance: %w", opHotellingT2, a, ErrNumeric)
		}
		for i, v := range t {
			out[i] += v * v / s2
		}
	}

	return out, nil
}

// HotellingT2Limit returns the (1−alpha) critical value of T² for a model
// with nComps components fitted on n samples:
//
//	a(n−1)/(n−a) · F_{1−α}(a, n−a)
//
// The F quantile is obtained from the inverse regularized incomplete beta
// function: if x = I⁻¹_{1−α}(a/2, (n−a)/2) then F = (n−a)·x / (a·(1−x)).
//
// Errors:
//   - ErrNotFitted.
//   - ErrValue when nComps is outside 1..a, alpha is outside (0, 1) or
//     n <= nComps.
func (m *Model) HotellingT2Limit(nComps int, alpha float64) (float64, error) {
	if !m.IsFitted() {
		return 0, fmt.Errorf("%s: %w", opHotellingT2Limit, ErrNotFitted)
	}
	if nComps < 1 || nComps > m.nComponents {
		return 0, fmt.Errorf("%s: %d components outside 1..%d: %w", opHotellingT2Limit, nComps, m.nComponents, ErrValue)
	}
	if !(alpha > 0 && alpha < 1) {
		return 0, fmt.Errorf("%s: alpha %g outside (0, 1): %w", opHotellingT2Limit, alpha, ErrValue)
	}
	n := m.t.Rows()
	if n <= nComps {
		return 0, fmt.Errorf("%s: %d samples for %d components: %w", opHotellingT2Limit, n, nComps, ErrValue)
	}

	d1, d2 := float64(nComps), float64(n-nComps)
	f := fQuantile(d1, d2, 1-alpha)

	return d1 * float64(n-1) / d2 * f, nil
}

// fQuantile returns the p-quantile of the F(d1, d2) distribution.
func fQuantile(d1, d2, p float64) float64 {
	x := mathext.InvRegIncBeta(d1/2, d2/2, p)

	return d2 * x / (d1 * (1 - x))
}
