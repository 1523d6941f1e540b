// SPDX-License-Identifier: MIT

package nipals

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/chemometrics/matrix"
)

const opDecompose = "nipals.Decompose"

// NIPALS is a reusable decomposer bound to a set of Options.
// It is stateless between calls and safe for concurrent use.
type NIPALS struct {
	opts Options
}

// New returns a decomposer with the given options. Invalid options surface
// from Decompose, not here.
func New(opts Options) *NIPALS { return &NIPALS{opts: opts} }

// Default returns a decomposer with DefaultOptions.
func Default() *NIPALS { return New(DefaultOptions()) }

// Options returns the configured options.
func (n *NIPALS) Options() Options { return n.opts }

// Decompose extracts nComponents latent components from (X, Y).
func (n *NIPALS) Decompose(X, Y matrix.Matrix, nComponents int) (*Result, error) {
	return Decompose(X, Y, nComponents, n.opts)
}

// Decompose runs NIPALS PLS2 on (X, Y).
// Implementation:
//   - Stage 1: validate shapes, component count and options.
//   - Stage 2: column-centre copies of X and Y (inputs are never mutated).
//   - Stage 3: for each component run the inner loop, orient, compute the
//     loadings and deflate.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (row counts differ).
//   - ErrInvalidComponents, ErrInvalidOptions.
//   - ErrRankDeficient, ErrNoConvergence (wrapped with the component index).
func Decompose(X, Y matrix.Matrix, nComponents int, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("%s: X: %w", opDecompose, err)
	}
	if err := matrix.ValidateNotNil(Y); err != nil {
		return nil, fmt.Errorf("%s: Y: %w", opDecompose, err)
	}
	rows, p, q := X.Rows(), X.Cols(), Y.Cols()
	if Y.Rows() != rows {
		return nil, fmt.Errorf("%s: X has %d rows, Y has %d: %w",
			opDecompose, rows, Y.Rows(), matrix.ErrDimensionMismatch)
	}
	if q == 0 {
		return nil, fmt.Errorf("%s: Y has no columns: %w", opDecompose, matrix.ErrInvalidDimensions)
	}
	if nComponents <= 0 || nComponents > rows || nComponents > p {
		return nil, fmt.Errorf("%s: %d components for %d×%d X: %w",
			opDecompose, nComponents, rows, p, ErrInvalidComponents)
	}

	Xk, xMean, err := matrix.CenterColumns(X)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}
	Yk, yMean, err := matrix.CenterColumns(Y)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDecompose, err)
	}

	var (
		Ts = make([][]float64, nComponents)
		Us = make([][]float64, nComponents)
		Ws = make([][]float64, nComponents)
		Ps = make([][]float64, nComponents)
		Cs = make([][]float64, nComponents)
		it = make([]int, nComponents)
	)
	for a := 0; a < nComponents; a++ {
		comp, err := extract(Xk, Yk, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: component %d: %w", opDecompose, a+1, err)
		}
		if err = Xk.SubOuter(comp.t, comp.p); err != nil {
			return nil, fmt.Errorf("%s: %w", opDecompose, err)
		}
		if err = Yk.SubOuter(comp.t, comp.c); err != nil {
			return nil, fmt.Errorf("%s: %w", opDecompose, err)
		}
		Ts[a], Us[a], Ws[a], Ps[a], Cs[a], it[a] = comp.t, comp.u, comp.w, comp.p, comp.c, comp.iter
	}

	res := &Result{XMean: xMean, YMean: yMean, Iterations: it}
	for _, dst := range []struct {
		out  **matrix.Dense
		cols [][]float64
	}{
		{&res.T, Ts}, {&res.U, Us}, {&res.W, Ws}, {&res.P, Ps}, {&res.C, Cs},
	} {
		if *dst.out, err = matrix.NewDenseFromCols(dst.cols); err != nil {
			return nil, fmt.Errorf("%s: %w", opDecompose, err)
		}
	}

	return res, nil
}

// component is the output of one inner loop.
type component struct {
	t, u, w, p, c []float64
	iter          int
}

// extract runs the inner loop on the current (deflated) X and Y.
func extract(X, Y *matrix.Dense, opts Options) (*component, error) {
	u, err := startScore(Y, opts.RankEpsilon)
	if err != nil {
		return nil, err
	}

	var (
		w, wOld, t, c []float64
		tt, cc        float64
		iter          int
		converged     bool
	)
	for iter = 1; iter <= opts.MaxIter; iter++ {
		// w = Xᵀu / ‖Xᵀu‖
		if w, err = matrix.MatTVec(X, u); err != nil {
			return nil, err
		}
		nw := floats.Norm(w, 2)
		if nw <= opts.RankEpsilon {
			return nil, fmt.Errorf("‖Xᵀu‖=%g: %w", nw, ErrRankDeficient)
		}
		floats.Scale(1/nw, w)

		// t = Xw
		if t, err = matrix.MatVec(X, w); err != nil {
			return nil, err
		}
		tt = floats.Dot(t, t)
		if tt <= opts.RankEpsilon {
			return nil, fmt.Errorf("tᵀt=%g: %w", tt, ErrRankDeficient)
		}

		// c = Yᵀt / tᵀt
		if c, err = matrix.MatTVec(Y, t); err != nil {
			return nil, err
		}
		floats.Scale(1/tt, c)
		cc = floats.Dot(c, c)
		if cc <= opts.RankEpsilon*opts.RankEpsilon {
			return nil, fmt.Errorf("cᵀc=%g: %w", cc, ErrRankDeficient)
		}

		// u = Yc / cᵀc
		if u, err = matrix.MatVec(Y, c); err != nil {
			return nil, err
		}
		floats.Scale(1/cc, u)

		if wOld != nil && floats.Distance(w, wOld, 2) < opts.Tolerance {
			converged = true
			break
		}
		wOld = w
	}
	if !converged {
		return nil, fmt.Errorf("after %d iterations: %w", opts.MaxIter, ErrNoConvergence)
	}

	orient(w, t, c, u)

	// p = Xᵀt / tᵀt
	p, err := matrix.MatTVec(X, t)
	if err != nil {
		return nil, err
	}
	floats.Scale(1/tt, p)

	return &component{t: t, u: u, w: w, p: p, c: c, iter: iter}, nil
}

// startScore returns a copy of the Y column with the largest sum of squares.
func startScore(Y *matrix.Dense, eps float64) ([]float64, error) {
	ss, err := matrix.ColumnSumSquares(Y)
	if err != nil {
		return nil, err
	}
	best := floats.MaxIdx(ss)
	if ss[best] <= eps {
		return nil, fmt.Errorf("residual Y sum of squares %g: %w", ss[best], ErrRankDeficient)
	}

	return Y.Col(best)
}

// orient flips all vectors when the largest-magnitude entry of w is negative.
// The first index wins ties.
func orient(w []float64, rest ...[]float64) {
	idx, best := 0, -1.0
	for j, v := range w {
		if a := math.Abs(v); a > best {
			idx, best = j, a
		}
	}
	if w[idx] >= 0 {
		return
	}
	floats.Scale(-1, w)
	for _, v := range rest {
		floats.Scale(-1, v)
	}
}
