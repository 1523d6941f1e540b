// SPDX-License-Identifier: MIT

package pls

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/chemometrics/folds"
	"github.com/katalvlaran/chemometrics/matrix"
)

// errConsumed is returned by a second traversal of a Permutations sequence.
var errConsumed = errors.New("permutation sequence already consumed")

// PermutationStat is the outcome of one permuted refit.
type PermutationStat struct {
	// Iteration is the 0-based permutation index; it selects the RNG stream.
	Iteration int
	// Order is the row permutation applied to Y.
	Order []int
	R2Y   float64
	Q2    float64
}

// PermutationResult summarizes a permutation test.
//
// P-values are empirical: (count(null >= observed) + 1) / (n + 1).
type PermutationResult struct {
	Q2        float64
	R2Y       float64
	NullQ2    []float64
	NullR2Y   []float64
	PValueQ2  float64
	PValueR2Y float64
	Seed      int64
}

// permRun holds the validated inputs shared by every iteration.
type permRun struct {
	x, y   *matrix.Dense
	splits []folds.Fold
	cfg    permConfig
	cv     cvConfig
}

// PermutationTest measures how far the model's R²Y and Q² stand above what
// the same configuration reaches on data with the X–Y link destroyed.
//
// The observed statistics come from a fit and a cross-validation of a clone on
// (X, Y). Iteration i then shuffles the rows of Y with the RNG stream
// folds.StreamRNG(seed, i), refits for R²Y and cross-validates for Q² with the
// same folds. Iterations are independent, so results depend only on the seed
// and not on WithPermutationWorkers. The caller's model is not modified.
//
// Errors:
//   - ErrValue when nPermutations <= 0, plus input errors as CrossValidate.
//   - Iteration failures are wrapped as "permutation i".
//   - ctx.Err() when the context is cancelled.
func (m *Model) PermutationTest(ctx context.Context, X, Y matrix.Matrix, nPermutations int, gen folds.Generator, opts ...PermOption) (*PermutationResult, error) {
	run, err := m.preparePermutations(X, Y, nPermutations, gen, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opPermutationTest, err)
	}

	cv, ref, err := m.crossValidate(ctx, run.x, run.y, run.splits, run.cv)
	if err != nil {
		return nil, fmt.Errorf("%s: observed model: %w", opPermutationTest, err)
	}
	out := &PermutationResult{
		Q2:      cv.Q2,
		R2Y:     ref.params.R2Y,
		NullQ2:  make([]float64, nPermutations),
		NullR2Y: make([]float64, nPermutations),
		Seed:    run.cfg.seed,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(run.cfg.workers)
	for i := 0; i < nPermutations; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st, err := m.permute(gctx, run, i)
			if err != nil {
				return err
			}
			out.NullQ2[i], out.NullR2Y[i] = st.Q2, st.R2Y

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", opPermutationTest, err)
	}
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", opPermutationTest, err)
	}

	out.PValueQ2 = EmpiricalPValue(out.NullQ2, out.Q2)
	out.PValueR2Y = EmpiricalPValue(out.NullR2Y, out.R2Y)
	m.logger.Debug("permutation test done",
		zap.Int("permutations", nPermutations),
		zap.Float64("q2", out.Q2),
		zap.Float64("p_q2", out.PValueQ2),
		zap.Float64("r2y", out.R2Y),
		zap.Float64("p_r2y", out.PValueR2Y),
	)

	return out, nil
}

// Permutations returns a lazy sequence of nPermutations permuted refits,
// computed one at a time as the caller pulls. It yields the same statistics
// as PermutationTest for the same seed and folds, without the observed model.
//
// The sequence stops after the first error, which is yielded with a zero
// PermutationStat. It is single-use: a second traversal yields one ErrValue.
// Worker options are ignored.
//
// Errors (returned immediately):
//   - ErrValue when nPermutations <= 0, plus input errors as CrossValidate.
func (m *Model) Permutations(ctx context.Context, X, Y matrix.Matrix, nPermutations int, gen folds.Generator, opts ...PermOption) (iter.Seq2[PermutationStat, error], error) {
	run, err := m.preparePermutations(X, Y, nPermutations, gen, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opPermutationTest, err)
	}
	var used atomic.Bool

	return func(yield func(PermutationStat, error) bool) {
		if !used.CompareAndSwap(false, true) {
			yield(PermutationStat{}, fmt.Errorf("%s: %w: %w", opPermutationTest, ErrValue, errConsumed))
			return
		}
		for i := 0; i < nPermutations; i++ {
			if err := ctx.Err(); err != nil {
				yield(PermutationStat{}, fmt.Errorf("%s: %w", opPermutationTest, err))
				return
			}
			st, err := m.permute(ctx, run, i)
			if err != nil {
				yield(PermutationStat{}, fmt.Errorf("%s: %w", opPermutationTest, err))
				return
			}
			if !yield(st, nil) {
				return
			}
		}
	}, nil
}

// EmpiricalPValue returns (count(null >= observed) + 1) / (len(null) + 1).
// NaN entries of null never count as exceeding.
func EmpiricalPValue(null []float64, observed float64) float64 {
	var count int
	for _, v := range null {
		if v >= observed {
			count++
		}
	}

	return float64(count+1) / float64(len(null)+1)
}

// preparePermutations validates the inputs once for every iteration.
func (m *Model) preparePermutations(X, Y matrix.Matrix, n int, gen folds.Generator, opts []PermOption) (*permRun, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%d permutations: %w", n, ErrValue)
	}
	cfg := defaultPermConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cv := defaultCVConfig()
	for _, opt := range cfg.cv {
		opt(&cv)
	}
	cv.workers, cv.distribution = 1, false

	splits, err := makeSplits(X, Y, gen)
	if err != nil {
		return nil, err
	}
	run := &permRun{splits: splits, cfg: cfg, cv: cv}
	if run.x, err = matrix.AsDense(X); err != nil {
		return nil, wrapf("", err, "X")
	}
	if run.y, err = matrix.AsDense(Y); err != nil {
		return nil, wrapf("", err, "Y")
	}

	return run, nil
}

// permute runs iteration i: shuffle Y rows, cross-validate, read R²Y off the
// full-data reference fit.
func (m *Model) permute(ctx context.Context, run *permRun, i int) (PermutationStat, error) {
	order := folds.Permutation(run.y.Rows(), folds.StreamRNG(run.cfg.seed, uint64(i)))
	yp, err := run.y.SelectRows(order)
	if err != nil {
		return PermutationStat{}, wrapf(fmt.Sprintf("permutation %d", i), err, "")
	}
	cv, ref, err := m.crossValidate(ctx, run.x, yp, run.splits, run.cv)
	if err != nil {
		return PermutationStat{}, fmt.Errorf("permutation %d: %w", i, err)
	}
	m.logger.Debug("permutation done",
		zap.Int("iteration", i),
		zap.Float64("q2", cv.Q2),
		zap.Float64("r2y", ref.params.R2Y),
	)

	return PermutationStat{Iteration: i, Order: order, R2Y: ref.params.R2Y, Q2: cv.Q2}, nil
}
