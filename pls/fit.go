// SPDX-License-Identifier: MIT

package pls

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/chemometrics/folds"
	"github.com/katalvlaran/chemometrics/matrix"
	"github.com/katalvlaran/chemometrics/nipals"
	"github.com/katalvlaran/chemometrics/scaling"
)

// Fit learns the model from X (n×p) and Y (n×q).
// Implementation:
//   - Stage 1: validate shapes, finiteness and the component count.
//   - Stage 2: fit the X and Y scalers independently (identity when nil).
//   - Stage 3: decompose the scaled data and derive the rotations W(PᵀW)⁻¹.
//   - Stage 4: compute ModelParameters in scaled space.
//
// The previous fitted state and the latest CV parameters are discarded
// first, even when Fit fails.
//
// Errors:
//   - ErrValue for nil or non-finite input.
//   - ErrDimension when row counts differ, Y has no columns or
//     nComponents > min(n, p).
//   - ErrNumeric wrapping decomposer failures (nipals.ErrRankDeficient,
//     nipals.ErrNoConvergence) and singular rotations.
func (m *Model) Fit(X, Y matrix.Matrix) error {
	m.Reset()

	if err := validatePair(X, Y); err != nil {
		return fmt.Errorf("%s: %w", opFit, err)
	}
	rows, p, q := X.Rows(), X.Cols(), Y.Cols()
	if m.nComponents > rows || m.nComponents > p {
		return fmt.Errorf("%s: %d components for %d×%d X (need <= min(rows, cols)): %w",
			opFit, m.nComponents, rows, p, ErrDimension)
	}

	xs, err := fitScaler(m.xScaler, X)
	if err != nil {
		return wrapf(opFit, err, "X scaler")
	}
	ys, err := fitScaler(m.yScaler, Y)
	if err != nil {
		return wrapf(opFit, err, "Y scaler")
	}

	res, err := m.decomposer.Decompose(xs, ys, m.nComponents)
	if err != nil {
		return plsErrorf(opFit, ErrNumeric, err)
	}
	if err = checkResult(res, rows, p, q, m.nComponents); err != nil {
		return plsErrorf(opFit, ErrNumeric, err)
	}

	wstar, err := rotations(res.W, res.P)
	if err != nil {
		return plsErrorf(opFit, ErrNumeric, err)
	}
	params, err := explained(xs, ys, res)
	if err != nil {
		return wrapf(opFit, err, "explained variance")
	}

	m.t, m.u, m.w, m.p, m.c, m.wstar = res.T, res.U, res.W, res.P, res.C, wstar
	m.xMean = append([]float64(nil), res.XMean...)
	m.yMean = append([]float64(nil), res.YMean...)
	m.nX, m.nY = p, q
	m.params = params

	m.logger.Debug("pls model fitted",
		zap.Int("samples", rows),
		zap.Int("components", m.nComponents),
		zap.Float64("r2x", params.R2X),
		zap.Float64("r2y", params.R2Y),
	)

	return nil
}

// FitTransform fits the model and returns the X scores T.
func (m *Model) FitTransform(X, Y matrix.Matrix) (matrix.Matrix, error) {
	if err := m.Fit(X, Y); err != nil {
		return nil, err
	}

	return m.t.Copy(), nil
}

// validatePair checks the invariants shared by every (X, Y) entry point.
func validatePair(X, Y matrix.Matrix) error {
	if err := matrix.ValidateNotNil(X); err != nil {
		return fmt.Errorf("X: %w: %w", ErrValue, err)
	}
	if err := matrix.ValidateNotNil(Y); err != nil {
		return fmt.Errorf("Y: %w: %w", ErrValue, err)
	}
	if X.Rows() != Y.Rows() {
		return fmt.Errorf("X has %d rows, Y has %d: %w", X.Rows(), Y.Rows(), ErrDimension)
	}
	if X.Rows() == 0 || X.Cols() == 0 || Y.Cols() == 0 {
		return fmt.Errorf("X is %d×%d, Y is %d×%d: %w", X.Rows(), X.Cols(), Y.Rows(), Y.Cols(), ErrDimension)
	}
	if err := matrix.ValidateFinite(X); err != nil {
		return fmt.Errorf("X: %w: %w", ErrValue, err)
	}
	if err := matrix.ValidateFinite(Y); err != nil {
		return fmt.Errorf("Y: %w: %w", ErrValue, err)
	}

	return nil
}

// fitScaler fits s on X and returns the scaled copy. nil s is identity.
func fitScaler(s scaling.Scaler, X matrix.Matrix) (*matrix.Dense, error) {
	if s == nil {
		d, err := matrix.AsDense(X)
		if err != nil {
			return nil, err
		}

		return d.Copy(), nil
	}
	out, err := s.FitTransform(X)
	if err != nil {
		return nil, err
	}

	return matrix.AsDense(out)
}

// applyScaler applies an already fitted s (nil is identity). The result
// never aliases X.
func applyScaler(s scaling.Scaler, X matrix.Matrix) (*matrix.Dense, error) {
	if s == nil {
		d, err := matrix.AsDense(X)
		if err != nil {
			return nil, err
		}

		return d.Copy(), nil
	}
	out, err := s.Transform(X)
	if err != nil {
		return nil, err
	}

	return matrix.AsDense(out)
}

// invertScaler undoes an already fitted s (nil is identity).
func invertScaler(s scaling.Scaler, X *matrix.Dense) (*matrix.Dense, error) {
	if s == nil {
		return X, nil
	}
	out, err := s.InverseTransform(X)
	if err != nil {
		return nil, err
	}

	return matrix.AsDense(out)
}

// checkResult guards against a custom Decomposer returning inconsistent shapes.
func checkResult(res *nipals.Result, n, p, q, a int) error {
	if res == nil || res.T == nil || res.U == nil || res.W == nil || res.P == nil || res.C == nil {
		return errors.New("decomposer returned an incomplete result")
	}
	shapes := []struct {
		name       string
		m          *matrix.Dense
		rows, cols int
	}{
		{"T", res.T, n, a}, {"U", res.U, n, a},
		{"W", res.W, p, a}, {"P", res.P, p, a}, {"C", res.C, q, a},
	}
	for _, s := range shapes {
		if s.m.Rows() != s.rows || s.m.Cols() != s.cols {
			return fmt.Errorf("decomposer returned %s as %d×%d, want %d×%d",
				s.name, s.m.Rows(), s.m.Cols(), s.rows, s.cols)
		}
	}
	if len(res.XMean) != p || len(res.YMean) != q {
		return fmt.Errorf("decomposer returned means of length %d and %d, want %d and %d",
			len(res.XMean), len(res.YMean), p, q)
	}

	return nil
}

// rotations returns W* = W (PᵀW)⁻¹, which maps centred X directly to T.
func rotations(W, P *matrix.Dense) (*matrix.Dense, error) {
	Pt, err := matrix.Transpose(P)
	if err != nil {
		return nil, err
	}
	PtW, err := matrix.Mul(Pt, W)
	if err != nil {
		return nil, err
	}
	inv, err := matrix.Inverse(PtW)
	if err != nil {
		return nil, fmt.Errorf("rotations: %w", err)
	}

	return matrix.Mul(W, inv)
}

// explained computes R²X and R²Y of the fit in scaled space.
// Totals come from the residual of the full reconstruction; per-component
// values are ‖t_a p_aᵀ‖²/SS and ‖t_a c_aᵀ‖²/SS.
func explained(xs, ys *matrix.Dense, res *nipals.Result) (*ModelParameters, error) {
	xc, err := matrix.SubCols(xs, res.XMean)
	if err != nil {
		return nil, err
	}
	yc, err := matrix.SubCols(ys, res.YMean)
	if err != nil {
		return nil, err
	}
	ssx, err := matrix.SumSquares(xc)
	if err != nil {
		return nil, err
	}
	ssy, err := matrix.SumSquares(yc)
	if err != nil {
		return nil, err
	}
	if ssx == 0 || ssy == 0 {
		return nil, fmt.Errorf("zero total sum of squares (X %g, Y %g): %w", ssx, ssy, ErrNumeric)
	}

	r2x, err := reconstructionR2(xc, res.T, res.P, ssx)
	if err != nil {
		return nil, err
	}
	r2y, err := reconstructionR2(yc, res.T, res.C, ssy)
	if err != nil {
		return nil, err
	}

	a := res.Components()
	out := &ModelParameters{
		R2X:             r2x,
		R2Y:             r2y,
		R2XPerComponent: make([]float64, a),
		R2YPerComponent: make([]float64, a),
	}
	var t, p, c []float64
	for k := 0; k < a; k++ {
		if t, err = res.T.Col(k); err != nil {
			return nil, err
		}
		if p, err = res.P.Col(k); err != nil {
			return nil, err
		}
		if c, err = res.C.Col(k); err != nil {
			return nil, err
		}
		tt := floats.Dot(t, t)
		out.R2XPerComponent[k] = tt * floats.Dot(p, p) / ssx
		out.R2YPerComponent[k] = tt * floats.Dot(c, c) / ssy
	}

	return out, nil
}

// reconstructionR2 returns 1 − ‖A − S Lᵀ‖²/ss.
func reconstructionR2(A, S, L *matrix.Dense, ss float64) (float64, error) {
	Lt, err := matrix.Transpose(L)
	if err != nil {
		return 0, err
	}
	hat, err := matrix.Mul(S, Lt)
	if err != nil {
		return 0, err
	}
	resid, err := matrix.Sub(A, hat)
	if err != nil {
		return 0, err
	}
	rss, err := matrix.SumSquares(resid)
	if err != nil {
		return 0, err
	}

	return 1 - rss/ss, nil
}

// classify maps lower-package sentinels onto the pls taxonomy.
func classify(err error) error {
	for _, kind := range []error{ErrConfiguration, ErrDimension, ErrNotFitted, ErrNumeric, ErrValue} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	switch {
	case errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrInvalidDimensions),
		errors.Is(err, nipals.ErrInvalidComponents):
		return ErrDimension
	case errors.Is(err, scaling.ErrNotFitted):
		return ErrNotFitted
	case errors.Is(err, matrix.ErrNaNInf),
		errors.Is(err, matrix.ErrNilMatrix),
		errors.Is(err, scaling.ErrEmptyInput),
		errors.Is(err, scaling.ErrInvalidPower):
		return ErrValue
	case errors.Is(err, folds.ErrInvalidSplit):
		return ErrConfiguration
	default:
		return ErrNumeric
	}
}

// wrapf tags err with op and an optional detail, adding the pls sentinel
// chosen by classify.
func wrapf(op string, err error, detail string) error {
	switch {
	case op == "":
		op = detail
	case detail != "":
		op = op + ": " + detail
	}
	if op == "" {
		kind := classify(err)
		if errors.Is(err, kind) {
			return err
		}

		return fmt.Errorf("%w: %w", kind, err)
	}

	return plsErrorf(op, classify(err), err)
}
