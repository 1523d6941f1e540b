// SPDX-License-Identifier: MIT

package scaling

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/chemometrics/matrix"
)

// Canonical powers of the scaler family.
const (
	PowerMeanCentering = 0.0
	PowerPareto        = 0.5
	PowerUnitVariance  = 1.0
)

const (
	opFitTransform     = "PowerScaler.FitTransform"
	opTransform        = "PowerScaler.Transform"
	opInverseTransform = "PowerScaler.InverseTransform"
)

// PowerScaler centres each column and divides it by σ^Power.
// The zero value is NOT usable; construct with NewPowerScaler or one of the
// named constructors.
type PowerScaler struct {
	power float64

	mean  []float64 // μ_j learned by FitTransform
	scale []float64 // σ_j^power, 1 for constant columns
}

// NewPowerScaler returns an unfitted scaler with the given power.
//
// Errors:
//   - ErrInvalidPower when power is negative, NaN or ±Inf.
func NewPowerScaler(power float64) (*PowerScaler, error) {
	if power < 0 || math.IsNaN(power) || math.IsInf(power, 0) {
		return nil, fmt.Errorf("NewPowerScaler(%g): %w", power, ErrInvalidPower)
	}

	return &PowerScaler{power: power}, nil
}

// NewUnitVariance returns a unit-variance (auto) scaler.
func NewUnitVariance() *PowerScaler { return &PowerScaler{power: PowerUnitVariance} }

// NewPareto returns a Pareto scaler.
func NewPareto() *PowerScaler { return &PowerScaler{power: PowerPareto} }

// NewMeanCentering returns a scaler that only centres columns.
func NewMeanCentering() *PowerScaler { return &PowerScaler{power: PowerMeanCentering} }

// Power reports the configured power.
func (s *PowerScaler) Power() float64 { return s.power }

// IsFitted reports whether FitTransform has completed.
func (s *PowerScaler) IsFitted() bool { return s.mean != nil }

// Mean returns a copy of the learned column means (nil before fitting).
func (s *PowerScaler) Mean() []float64 { return cloneFloats(s.mean) }

// Scale returns a copy of the learned column divisors (nil before fitting).
func (s *PowerScaler) Scale() []float64 { return cloneFloats(s.scale) }

// Clone returns an unfitted scaler with the same power.
func (s *PowerScaler) Clone() Scaler { return &PowerScaler{power: s.power} }

// FitTransform learns μ and σ^power per column from X and returns the scaled copy.
// Implementation:
//   - Stage 1: validate X (non-nil, at least one row).
//   - Stage 2: per column, population mean/std via gonum stat.PopMeanStdDev.
//   - Stage 3: divisor σ^power, replaced by 1 when σ is zero.
//   - Stage 4: apply Transform with the new parameters.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func (s *PowerScaler) FitTransform(X matrix.Matrix) (matrix.Matrix, error) {
	d, err := matrix.AsDense(X)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFitTransform, err)
	}
	if d.Rows() == 0 {
		return nil, fmt.Errorf("%s: %w", opFitTransform, ErrEmptyInput)
	}

	c := d.Cols()
	mean := make([]float64, c)
	scale := make([]float64, c)
	var col []float64
	for j := 0; j < c; j++ {
		if col, err = d.Col(j); err != nil {
			return nil, fmt.Errorf("%s: %w", opFitTransform, err)
		}
		mu, sigma := stat.PopMeanStdDev(col, nil)
		mean[j] = mu
		scale[j] = divisor(sigma, mu, s.power)
	}
	s.mean, s.scale = mean, scale

	return s.Transform(d)
}

// Transform applies (x − μ) / σ^power with the fitted parameters.
//
// Errors:
//   - ErrNotFitted before FitTransform.
//   - matrix.ErrDimensionMismatch when the column count differs from the fit.
func (s *PowerScaler) Transform(X matrix.Matrix) (matrix.Matrix, error) {
	if err := s.checkFitted(X, opTransform); err != nil {
		return nil, err
	}
	centred, err := matrix.SubCols(X, s.mean)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransform, err)
	}
	inv := make([]float64, len(s.scale))
	for j, v := range s.scale {
		inv[j] = 1 / v
	}
	out, err := matrix.ScaleCols(centred, inv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opTransform, err)
	}

	return out, nil
}

// InverseTransform maps scaled data back: x = x'·σ^power + μ.
func (s *PowerScaler) InverseTransform(X matrix.Matrix) (matrix.Matrix, error) {
	if err := s.checkFitted(X, opInverseTransform); err != nil {
		return nil, err
	}
	scaled, err := matrix.ScaleCols(X, s.scale)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverseTransform, err)
	}
	out, err := matrix.AddCols(scaled, s.mean)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverseTransform, err)
	}

	return out, nil
}

func (s *PowerScaler) checkFitted(X matrix.Matrix, op string) error {
	if !s.IsFitted() {
		return fmt.Errorf("%s: %w", op, ErrNotFitted)
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if X.Cols() != len(s.mean) {
		return fmt.Errorf("%s: got %d columns, fitted on %d: %w",
			op, X.Cols(), len(s.mean), matrix.ErrDimensionMismatch)
	}

	return nil
}

// constantTol is the relative spread under which a column counts as constant.
const constantTol = 1e-12

// divisor returns σ^power, or 1 for a constant column.
func divisor(sigma, mu, power float64) float64 {
	if power == 0 || sigma <= constantTol*math.Max(1, math.Abs(mu)) {
		return 1
	}
	if power == 1 {
		return sigma
	}

	return math.Pow(sigma, power)
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
