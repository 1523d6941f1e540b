// SPDX-License-Identifier: MIT

package pls

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/chemometrics/matrix"
)

// AlignSigns decides, per component, whether target's loading vector should
// be negated to match ref. Column a is flipped when
//
//	Σ_j |ref_ja + target_ja| < Σ_j |ref_ja − target_ja|
//
// Ties keep the original sign. Latent components are only defined up to sign,
// so fold models must be aligned before their loadings are averaged.
//
// Errors:
//   - ErrValue for a nil matrix, ErrDimension when the shapes differ.
func AlignSigns(ref, target matrix.Matrix) ([]bool, error) {
	if err := matrix.ValidateNotNil(ref); err != nil {
		return nil, fmt.Errorf("%s: ref: %w: %w", opAlignSigns, ErrValue, err)
	}
	if err := matrix.ValidateNotNil(target); err != nil {
		return nil, fmt.Errorf("%s: target: %w: %w", opAlignSigns, ErrValue, err)
	}
	if ref.Rows() != target.Rows() || ref.Cols() != target.Cols() {
		return nil, fmt.Errorf("%s: ref is %d×%d, target is %d×%d: %w",
			opAlignSigns, ref.Rows(), ref.Cols(), target.Rows(), target.Cols(), ErrDimension)
	}
	R, err := matrix.AsDense(ref)
	if err != nil {
		return nil, wrapf(opAlignSigns, err, "")
	}
	T, err := matrix.AsDense(target)
	if err != nil {
		return nil, wrapf(opAlignSigns, err, "")
	}

	flips := make([]bool, R.Cols())
	neg := make([]float64, R.Rows())
	for a := range flips {
		r, err := R.Col(a)
		if err != nil {
			return nil, wrapf(opAlignSigns, err, "")
		}
		t, err := T.Col(a)
		if err != nil {
			return nil, wrapf(opAlignSigns, err, "")
		}
		floats.ScaleTo(neg, -1, t)
		flips[a] = floats.Distance(r, neg, 1) < floats.Distance(r, t, 1)
	}

	return flips, nil
}

// flipComponents negates column a of every fitted score, weight and loading
// matrix where flips[a] is set. Predictions are unchanged.
func (m *Model) flipComponents(flips []bool) error {
	if len(flips) != m.nComponents {
		return fmt.Errorf("%d flags for %d components: %w", len(flips), m.nComponents, ErrDimension)
	}
	for a, f := range flips {
		if !f {
			continue
		}
		for _, d := range []*matrix.Dense{m.t, m.u, m.w, m.p, m.c, m.wstar} {
			if err := d.ScaleCol(a, -1); err != nil {
				return err
			}
		}
	}

	return nil
}

// alignTo flips the fitted components of m to match the reference loadings.
func (m *Model) alignTo(refP *matrix.Dense) ([]bool, error) {
	flips, err := AlignSigns(refP, m.p)
	if err != nil {
		return nil, err
	}
	if err = m.flipComponents(flips); err != nil {
		return nil, err
	}

	return flips, nil
}
