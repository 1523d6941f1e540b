// SPDX-License-Identifier: MIT
// Package pls: k-fold cross-validation.
//
// Flow:
//   - A reference model (clone of the caller's configuration) is fitted on
//     the full data. Its X loadings are the sign reference for every fold and
//     its fitted scalers define the space residuals are measured in.
//   - Each fold fits its own clone on the train rows, aligns signs, predicts
//     the test rows and records PRESS and SS_Y in its own slot.
//   - Slots are reduced in fold order, so results do not depend on the
//     number of workers.

package pls

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/chemometrics/folds"
	"github.com/katalvlaran/chemometrics/matrix"
)

// CVParameters is the outcome of one cross-validation run.
//
// Q2 = 1 − Press/SSY. Press and SSY are summed over all folds and response
// columns. SSX is the matching total for X: each fold's test rows centred on
// their own mean, in the reference model's scaled space. PressPerVariable and Q2PerVariable are set only with
// WithPressPerVariable(true). Loading and weight statistics are taken over
// sign-aligned fold models (sample standard deviation).
type CVParameters struct {
	Q2               float64
	Press            float64
	SSY              float64
	SSX              float64
	PressPerVariable []float64
	Q2PerVariable    []float64

	R2XFolds []float64
	R2YFolds []float64

	MeanLoadingsP *matrix.Dense
	StdLoadingsP  *matrix.Dense
	MeanWeights   *matrix.Dense
	StdWeights    *matrix.Dense
	MeanLoadingsC *matrix.Dense
	StdLoadingsC  *matrix.Dense

	// Distribution is nil unless WithOutputDistribution was given.
	Distribution *CVDistribution
}

// CVDistribution keeps the per-fold aligned matrices, in fold order.
type CVDistribution struct {
	LoadingsP []*matrix.Dense
	Weights   []*matrix.Dense
	LoadingsC []*matrix.Dense
	Q2        []float64
}

// foldResult is the slot written by one fold task.
type foldResult struct {
	press, ssy []float64
	ssx        float64
	r2x, r2y   float64
	p, w, c    *matrix.Dense
}

// cvData holds the inputs shared read-only by every fold task.
type cvData struct {
	x, y   *matrix.Dense
	ys     *matrix.Dense // Y in the reference model's scaled space
	ref    *Model
	splits []folds.Fold
}

// CrossValidate runs k-fold cross-validation of the model's configuration on
// (X, Y) and records the result as the model's latest CV parameters. The
// model's own fitted matrices and scalers are not touched.
//
// gen == nil selects a shuffled KFold with DefaultCVFolds splits and a fixed
// seed.
//
// Errors:
//   - ErrConfiguration when gen fails or its folds do not partition the rows.
//   - ErrValue, ErrDimension for invalid input (as Fit).
//   - Fold failures are wrapped as "cross-validation fold k" and keep their
//     sentinel (ErrNumeric, ErrDimension).
//   - ErrNumeric when the pooled SS_Y is zero.
//   - ctx.Err() when the context is cancelled.
func (m *Model) CrossValidate(ctx context.Context, X, Y matrix.Matrix, gen folds.Generator, opts ...CVOption) (*CVParameters, error) {
	cfg := defaultCVConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	splits, err := makeSplits(X, Y, gen)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCrossValidate, err)
	}
	res, _, err := m.crossValidate(ctx, X, Y, splits, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCrossValidate, err)
	}
	m.cv = res
	m.logger.Debug("cross-validation done",
		zap.Int("folds", len(splits)),
		zap.Float64("q2", res.Q2),
		zap.Float64("press", res.Press),
	)

	return res, nil
}

// makeSplits validates (X, Y) and produces a checked fold list.
func makeSplits(X, Y matrix.Matrix, gen folds.Generator) ([]folds.Fold, error) {
	if err := validatePair(X, Y); err != nil {
		return nil, err
	}
	if gen == nil {
		gen = folds.KFold{Splits: DefaultCVFolds, Shuffle: true}
	}
	n := X.Rows()
	splits, err := gen.Split(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err = folds.Validate(splits, n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return splits, nil
}

// crossValidate is the engine behind CrossValidate and the permutation test.
// It returns the fitted reference model alongside the parameters.
func (m *Model) crossValidate(ctx context.Context, X, Y matrix.Matrix, splits []folds.Fold, cfg cvConfig) (*CVParameters, *Model, error) {
	ref := m.Clone()
	if err := ref.Fit(X, Y); err != nil {
		return nil, nil, fmt.Errorf("reference model: %w", err)
	}
	data := &cvData{ref: ref, splits: splits}
	var err error
	if data.x, err = matrix.AsDense(X); err != nil {
		return nil, nil, wrapf("reference model", err, "")
	}
	if data.y, err = matrix.AsDense(Y); err != nil {
		return nil, nil, wrapf("reference model", err, "")
	}
	if data.ys, err = applyScaler(ref.yScaler, data.y); err != nil {
		return nil, nil, wrapf("reference model", err, "Y scaler")
	}

	results := make([]*foldResult, len(splits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for k := range splits {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := m.runFold(data, k)
			if err != nil {
				return fmt.Errorf("cross-validation fold %d: %w", k+1, err)
			}
			results[k] = r
			m.logger.Debug("cross-validation fold done",
				zap.Int("fold", k+1),
				zap.Int("test", len(splits[k].Test)),
				zap.Float64("r2y", r.r2y),
			)

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, nil, err
	}

	out, err := reduceFolds(results, cfg)
	if err != nil {
		return nil, nil, err
	}

	return out, ref, nil
}

// runFold fits fold k and measures it on the held-out rows.
func (m *Model) runFold(d *cvData, k int) (*foldResult, error) {
	fold := d.splits[k]
	xtr, err := d.x.SelectRows(fold.Train)
	if err != nil {
		return nil, wrapf("", err, "train rows")
	}
	ytr, err := d.y.SelectRows(fold.Train)
	if err != nil {
		return nil, wrapf("", err, "train rows")
	}
	xte, err := d.x.SelectRows(fold.Test)
	if err != nil {
		return nil, wrapf("", err, "test rows")
	}
	yteS, err := d.ys.SelectRows(fold.Test)
	if err != nil {
		return nil, wrapf("", err, "test rows")
	}

	fm := m.Clone()
	if err = fm.Fit(xtr, ytr); err != nil {
		return nil, err
	}
	if _, err = fm.alignTo(d.ref.p); err != nil {
		return nil, err
	}

	// Y residuals in the reference scaled space.
	pred, err := fm.predict(xte)
	if err != nil {
		return nil, err
	}
	predS, err := applyScaler(d.ref.yScaler, pred)
	if err != nil {
		return nil, wrapf(opPredict, err, "reference Y scaler")
	}
	press, err := residualColumnSS(yteS, predS)
	if err != nil {
		return nil, err
	}
	yc, _, err := matrix.CenterColumns(yteS)
	if err != nil {
		return nil, wrapf("", err, "")
	}
	ssy, err := matrix.ColumnSumSquares(yc)
	if err != nil {
		return nil, wrapf("", err, "")
	}

	// X reconstruction of the held-out rows, also in the reference space.
	r2x, ssx, err := fm.heldOutR2X(d.ref, xte)
	if err != nil {
		return nil, err
	}

	return &foldResult{
		press: press,
		ssy:   ssy,
		ssx:   ssx,
		r2x:   r2x,
		r2y:   ratioR2(floats.Sum(press), floats.Sum(ssy)),
		p:     fm.p.Copy(),
		w:     fm.w.Copy(),
		c:     fm.c.Copy(),
	}, nil
}

// heldOutR2X returns 1 − ‖Xs − X̂s‖²/‖Xs − mean‖² on the test rows, both
// sides scaled with the reference model's X scaler, together with the
// denominator ‖Xs − mean‖².
func (m *Model) heldOutR2X(ref *Model, xte *matrix.Dense) (float64, float64, error) {
	T, err := m.transform(xte, opTransform)
	if err != nil {
		return 0, 0, err
	}
	xhat, err := m.reconstruct(T, m.p, m.xMean, opInverseTransform, false)
	if err != nil {
		return 0, 0, err
	}
	xs, err := applyScaler(ref.xScaler, xte)
	if err != nil {
		return 0, 0, wrapf(opTransform, err, "reference X scaler")
	}
	xhatS, err := applyScaler(ref.xScaler, xhat)
	if err != nil {
		return 0, 0, wrapf(opTransform, err, "reference X scaler")
	}
	rss, err := residualColumnSS(xs, xhatS)
	if err != nil {
		return 0, 0, err
	}
	xc, _, err := matrix.CenterColumns(xs)
	if err != nil {
		return 0, 0, wrapf("", err, "")
	}
	tss, err := matrix.SumSquares(xc)
	if err != nil {
		return 0, 0, wrapf("", err, "")
	}

	return ratioR2(floats.Sum(rss), tss), tss, nil
}

// reduceFolds combines fold slots in order.
func reduceFolds(results []*foldResult, cfg cvConfig) (*CVParameters, error) {
	k := len(results)
	q := len(results[0].press)
	pressVar := make([]float64, q)
	ssyVar := make([]float64, q)
	out := &CVParameters{
		R2XFolds: make([]float64, k),
		R2YFolds: make([]float64, k),
	}
	ps := make([]*matrix.Dense, k)
	ws := make([]*matrix.Dense, k)
	cs := make([]*matrix.Dense, k)
	for f, r := range results {
		for j := 0; j < q; j++ {
			pressVar[j] += r.press[j]
			ssyVar[j] += r.ssy[j]
		}
		out.SSX += r.ssx
		out.R2XFolds[f], out.R2YFolds[f] = r.r2x, r.r2y
		ps[f], ws[f], cs[f] = r.p, r.w, r.c
	}
	out.Press, out.SSY = floats.Sum(pressVar), floats.Sum(ssyVar)
	if out.SSY == 0 {
		return nil, fmt.Errorf("pooled test-fold SS_Y is zero: %w", ErrNumeric)
	}
	out.Q2 = 1 - out.Press/out.SSY
	if cfg.pressPerVariable {
		out.PressPerVariable = pressVar
		out.Q2PerVariable = make([]float64, q)
		for j := range pressVar {
			out.Q2PerVariable[j] = ratioR2(pressVar[j], ssyVar[j])
		}
	}

	var err error
	if out.MeanLoadingsP, out.StdLoadingsP, err = meanStd(ps); err != nil {
		return nil, err
	}
	if out.MeanWeights, out.StdWeights, err = meanStd(ws); err != nil {
		return nil, err
	}
	if out.MeanLoadingsC, out.StdLoadingsC, err = meanStd(cs); err != nil {
		return nil, err
	}
	if cfg.distribution {
		dist := &CVDistribution{LoadingsP: ps, Weights: ws, LoadingsC: cs, Q2: make([]float64, k)}
		for f, r := range results {
			dist.Q2[f] = ratioR2(floats.Sum(r.press), floats.Sum(r.ssy))
		}
		out.Distribution = dist
	}

	return out, nil
}

// meanStd returns the element-wise mean and sample standard deviation of
// equally shaped matrices.
func meanStd(ms []*matrix.Dense) (*matrix.Dense, *matrix.Dense, error) {
	rows, cols := ms[0].Rows(), ms[0].Cols()
	mean, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, nil, wrapf("", err, "")
	}
	std, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, nil, wrapf("", err, "")
	}
	vals := make([]float64, len(ms))
	for i := 0; i < rows; i++ {
		mr, sr := mean.RawRow(i), std.RawRow(i)
		for j := 0; j < cols; j++ {
			for f, d := range ms {
				vals[f] = d.RawRow(i)[j]
			}
			mr[j], sr[j] = stat.MeanStdDev(vals, nil)
		}
	}

	return mean, std, nil
}

// residualColumnSS returns the per-column sum of squares of A − B.
func residualColumnSS(A, B *matrix.Dense) ([]float64, error) {
	resid, err := matrix.Sub(A, B)
	if err != nil {
		return nil, wrapf("", err, "")
	}
	ss, err := matrix.ColumnSumSquares(resid)
	if err != nil {
		return nil, wrapf("", err, "")
	}

	return ss, nil
}

// ratioR2 returns 1 − rss/tss, or NaN when tss is zero.
func ratioR2(rss, tss float64) float64 {
	if tss == 0 {
		return math.NaN()
	}

	return 1 - rss/tss
}
