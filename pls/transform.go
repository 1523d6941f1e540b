// SPDX-License-Identifier: MIT

package pls

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/chemometrics/matrix"
)

// Transform projects X (m×p) onto the latent space and returns T (m×a).
// X is scaled with the already fitted X scaler (never refit), centred with the
// decomposition means and multiplied by the rotations W*. On the training X
// it reproduces the fitted scores.
//
// Errors:
//   - ErrNotFitted, ErrValue (nil or non-finite X), ErrDimension (column count).
func (m *Model) Transform(X matrix.Matrix) (matrix.Matrix, error) {
	T, err := m.transform(X, opTransform)
	if err != nil {
		return nil, err
	}

	return T, nil
}

func (m *Model) transform(X matrix.Matrix, op string) (*matrix.Dense, error) {
	if !m.IsFitted() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFitted)
	}
	if err := m.checkInput(X, m.nX, "X"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	xs, err := applyScaler(m.xScaler, X)
	if err != nil {
		return nil, wrapf(op, err, "X scaler")
	}
	xc, err := matrix.SubCols(xs, m.xMean)
	if err != nil {
		return nil, wrapf(op, err, "")
	}
	T, err := matrix.Mul(xc, m.wstar)
	if err != nil {
		return nil, wrapf(op, err, "")
	}

	return T, nil
}

// TransformY projects Y (m×q) onto the Y latent space with the NIPALS
// Y-score rule applied to undeflated data: u_a = (Ys − ȳ) c_a / (c_aᵀc_a).
// The first column reproduces the fitted U exactly on the training Y; later
// fitted columns were computed on deflated Y and differ.
//
// Errors:
//   - ErrNotFitted, ErrValue, ErrDimension.
//   - ErrNumeric when a Y loading vector is zero.
func (m *Model) TransformY(Y matrix.Matrix) (matrix.Matrix, error) {
	if !m.IsFitted() {
		return nil, fmt.Errorf("%s: %w", opTransformY, ErrNotFitted)
	}
	if err := m.checkInput(Y, m.nY, "Y"); err != nil {
		return nil, fmt.Errorf("%s: %w", opTransformY, err)
	}
	ys, err := applyScaler(m.yScaler, Y)
	if err != nil {
		return nil, wrapf(opTransformY, err, "Y scaler")
	}
	yc, err := matrix.SubCols(ys, m.yMean)
	if err != nil {
		return nil, wrapf(opTransformY, err, "")
	}
	R := m.c.Copy()
	for a := 0; a < m.nComponents; a++ {
		c, err := R.Col(a)
		if err != nil {
			return nil, wrapf(opTransformY, err, "")
		}
		cc := floats.Dot(c, c)
		if cc == 0 {
			return nil, fmt.Errorf("%s: component %d has a zero Y loading: %w", opTransformY, a+1, ErrNumeric)
		}
		if err = R.ScaleCol(a, 1/cc); err != nil {
			return nil, wrapf(opTransformY, err, "")
		}
	}
	U, err := matrix.Mul(yc, R)
	if err != nil {
		return nil, wrapf(opTransformY, err, "")
	}

	return U, nil
}

// InverseTransform maps X scores back to X space: X̂ = T Pᵀ + mean, followed
// by the inverse X scaling.
//
// Errors:
//   - ErrNotFitted, ErrValue, ErrDimension (T must have a columns).
func (m *Model) InverseTransform(T matrix.Matrix) (matrix.Matrix, error) {
	X, err := m.reconstruct(T, m.p, m.xMean, opInverseTransform, false)
	if err != nil {
		return nil, err
	}

	return X, nil
}

// InverseTransformY maps scores back to Y space: Ŷ = U Cᵀ + mean, followed by
// the inverse Y scaling. Passing X scores yields the model's prediction.
//
// Errors:
//   - ErrNotFitted, ErrValue, ErrDimension (U must have a columns).
func (m *Model) InverseTransformY(U matrix.Matrix) (matrix.Matrix, error) {
	Y, err := m.reconstruct(U, m.c, m.yMean, opInverseTransformY, true)
	if err != nil {
		return nil, err
	}

	return Y, nil
}

func (m *Model) reconstruct(S matrix.Matrix, L *matrix.Dense, mean []float64, op string, isY bool) (*matrix.Dense, error) {
	if !m.IsFitted() {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFitted)
	}
	if err := m.checkInput(S, m.nComponents, "scores"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	Lt, err := matrix.Transpose(L)
	if err != nil {
		return nil, wrapf(op, err, "")
	}
	hat, err := matrix.Mul(S, Lt)
	if err != nil {
		return nil, wrapf(op, err, "")
	}
	if hat, err = matrix.AddCols(hat, mean); err != nil {
		return nil, wrapf(op, err, "")
	}
	s := m.xScaler
	if isY {
		s = m.yScaler
	}
	out, err := invertScaler(s, hat)
	if err != nil {
		return nil, wrapf(op, err, "inverse scaling")
	}

	return out, nil
}

// Predict returns Ŷ (m×q) for X (m×p) in original Y units.
//
// Errors:
//   - ErrNotFitted.
//   - ErrDimension naming both column counts when X does not match the fit.
//   - ErrValue for nil or non-finite X.
func (m *Model) Predict(X matrix.Matrix) (matrix.Matrix, error) {
	Y, err := m.predict(X)
	if err != nil {
		return nil, err
	}

	return Y, nil
}

func (m *Model) predict(X matrix.Matrix) (*matrix.Dense, error) {
	T, err := m.transform(X, opPredict)
	if err != nil {
		return nil, err
	}

	return m.reconstruct(T, m.c, m.yMean, opPredict, true)
}

// Score returns R²Y of the model's predictions on (X, Y), measured in the
// fitted Y scaler's space against the column means of the supplied Y.
//
// Errors:
//   - as Predict; ErrDimension for a Y shape mismatch.
//   - ErrNumeric when Y has zero variance in every column.
func (m *Model) Score(X, Y matrix.Matrix) (float64, error) {
	if err := validatePair(X, Y); err != nil {
		return 0, fmt.Errorf("%s: %w", opScore, err)
	}
	if m.IsFitted() && Y.Cols() != m.nY {
		return 0, fmt.Errorf("%s: Y has %d columns, model expects %d: %w",
			opScore, Y.Cols(), m.nY, ErrDimension)
	}
	pred, err := m.predict(X)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opScore, err)
	}
	ys, err := applyScaler(m.yScaler, Y)
	if err != nil {
		return 0, wrapf(opScore, err, "Y scaler")
	}
	ps, err := applyScaler(m.yScaler, pred)
	if err != nil {
		return 0, wrapf(opScore, err, "Y scaler")
	}
	r2, err := rSquared(ys, ps)
	if err != nil {
		return 0, wrapf(opScore, err, "")
	}

	return r2, nil
}

// rSquared returns 1 − ‖Y − Ŷ‖² / ‖Y − mean(Y)‖² with Y's own column means.
func rSquared(Y, Yhat *matrix.Dense) (float64, error) {
	resid, err := matrix.Sub(Y, Yhat)
	if err != nil {
		return 0, err
	}
	rss, err := matrix.SumSquares(resid)
	if err != nil {
		return 0, err
	}
	yc, _, err := matrix.CenterColumns(Y)
	if err != nil {
		return 0, err
	}
	tss, err := matrix.SumSquares(yc)
	if err != nil {
		return 0, err
	}
	if tss == 0 {
		return 0, fmt.Errorf("zero total sum of squares: %w", ErrNumeric)
	}

	return 1 - rss/tss, nil
}

// checkInput validates a matrix supplied to a fitted model.
func (m *Model) checkInput(A matrix.Matrix, cols int, name string) error {
	if err := matrix.ValidateNotNil(A); err != nil {
		return fmt.Errorf("%s: %w: %w", name, ErrValue, err)
	}
	if A.Cols() != cols {
		return fmt.Errorf("%s has %d columns, model expects %d: %w", name, A.Cols(), cols, ErrDimension)
	}
	if A.Rows() == 0 {
		return fmt.Errorf("%s has no rows: %w", name, ErrDimension)
	}
	if err := matrix.ValidateFinite(A); err != nil {
		return fmt.Errorf("%s: %w: %w", name, ErrValue, err)
	}

	return nil
}
