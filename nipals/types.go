// SPDX-License-Identifier: MIT

package nipals

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/chemometrics/matrix"
)

// Defaults for Options.
const (
	DefaultTolerance = 1e-6
	DefaultMaxIter   = 500
	// DefaultRankEpsilon is the norm under which a weight or score vector is
	// considered degenerate.
	DefaultRankEpsilon = 1e-12
)

var (
	// ErrRankDeficient indicates that the (deflated) data cannot support another component.
	ErrRankDeficient = errors.New("nipals: rank deficient data")

	// ErrNoConvergence indicates the inner loop hit MaxIter without meeting Tolerance.
	ErrNoConvergence = errors.New("nipals: inner loop did not converge")

	// ErrInvalidComponents indicates nComponents outside 1..min(n, p).
	ErrInvalidComponents = errors.New("nipals: invalid number of components")

	// ErrInvalidOptions indicates a non-positive tolerance, iteration cap or epsilon.
	ErrInvalidOptions = errors.New("nipals: invalid options")
)

// Options configures the inner iteration.
//
// Fields:
//   - Tolerance: convergence threshold on ‖w − w_old‖₂.
//   - MaxIter: cap on inner iterations per component.
//   - RankEpsilon: norm under which ‖Xᵀu‖, tᵀt or cᵀc signal rank deficiency.
type Options struct {
	Tolerance   float64
	MaxIter     int
	RankEpsilon float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Tolerance:   DefaultTolerance,
		MaxIter:     DefaultMaxIter,
		RankEpsilon: DefaultRankEpsilon,
	}
}

// Validate reports ErrInvalidOptions for unusable settings.
func (o Options) Validate() error {
	if !(o.Tolerance > 0) || o.MaxIter <= 0 || !(o.RankEpsilon > 0) {
		return fmt.Errorf("tolerance=%g maxIter=%d epsilon=%g: %w",
			o.Tolerance, o.MaxIter, o.RankEpsilon, ErrInvalidOptions)
	}

	return nil
}

// Result holds a fitted decomposition with a components.
//
//	T n×a  X scores          U n×a  Y scores
//	W p×a  X weights         P p×a  X loadings
//	C q×a  Y loadings
//
// XMean/YMean are the column means removed before the first component.
// Iterations[k] is the inner-loop count used by component k.
type Result struct {
	T, U, W, P, C *matrix.Dense
	XMean, YMean  []float64
	Iterations    []int
}

// Components returns the number of extracted components.
func (r *Result) Components() int {
	if r == nil || r.T == nil {
		return 0
	}

	return r.T.Cols()
}
