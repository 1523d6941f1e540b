// SPDX-License-Identifier: MIT

package pls

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/chemometrics/matrix"
	"github.com/katalvlaran/chemometrics/nipals"
	"github.com/katalvlaran/chemometrics/scaling"
)

// Decomposer extracts a latent decomposition from scaled (X, Y).
// Implementations must be deterministic and must not mutate their inputs.
type Decomposer interface {
	Decompose(X, Y matrix.Matrix, nComponents int) (*nipals.Result, error)
}

// Compile-time assertion.
var _ Decomposer = (*nipals.NIPALS)(nil)

// ModelParameters summarizes the fraction of variance explained in scaled
// space by a fitted model.
type ModelParameters struct {
	R2X             float64
	R2Y             float64
	R2XPerComponent []float64
	R2YPerComponent []float64
}

// Model is a PLS regression model.
//
// Lifecycle: configure (New, Configure, Set*) then Fit. Any reconfiguration
// discards the fitted matrices, the model parameters and the latest
// cross-validation parameters.
//
// Scalers are owned by the model: Fit calls FitTransform on them in place.
// Sharing one scaler instance between models is not supported.
//
// A Model is not safe for concurrent mutation. Read-only methods (Transform,
// Predict, diagnostics) may run concurrently on a fitted model.
type Model struct {
	nComponents int
	xScaler     scaling.Scaler
	yScaler     scaling.Scaler
	decomposer  Decomposer
	logger      *zap.Logger

	// fitted state
	t, u, w, p, c *matrix.Dense
	wstar         *matrix.Dense
	xMean, yMean  []float64
	nX, nY        int
	params        *ModelParameters

	cv *CVParameters
}

// New returns an unfitted model with nComponents latent components.
// Defaults: unit-variance X scaling, no Y scaling, NIPALS with
// nipals.DefaultOptions, no-op logger.
//
// Errors:
//   - ErrConfiguration when nComponents <= 0.
func New(nComponents int, opts ...Option) (*Model, error) {
	if nComponents <= 0 {
		return nil, fmt.Errorf("%s: %d components: %w", opNew, nComponents, ErrConfiguration)
	}
	m := &Model{
		nComponents: nComponents,
		xScaler:     scaling.NewUnitVariance(),
		decomposer:  nipals.Default(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Configure replaces the component count and both scalers, then resets the
// model. A nil scaler means identity. On error the model is left unchanged.
func (m *Model) Configure(nComponents int, x, y scaling.Scaler) error {
	if nComponents <= 0 {
		return fmt.Errorf("%s: %d components: %w", opConfigure, nComponents, ErrConfiguration)
	}
	m.nComponents, m.xScaler, m.yScaler = nComponents, x, y
	m.Reset()

	return nil
}

// SetComponents changes the component count and resets the model.
func (m *Model) SetComponents(n int) error {
	if n <= 0 {
		return fmt.Errorf("%s: %d components: %w", opConfigure, n, ErrConfiguration)
	}
	m.nComponents = n
	m.Reset()

	return nil
}

// SetXScaler replaces the X scaler (nil = identity) and resets the model.
func (m *Model) SetXScaler(s scaling.Scaler) {
	m.xScaler = s
	m.Reset()
}

// SetYScaler replaces the Y scaler (nil = identity) and resets the model.
func (m *Model) SetYScaler(s scaling.Scaler) {
	m.yScaler = s
	m.Reset()
}

// Reset discards every fitted artifact and the latest CV parameters.
// Scalers keep their configuration; the next Fit refits them.
func (m *Model) Reset() {
	m.t, m.u, m.w, m.p, m.c, m.wstar = nil, nil, nil, nil, nil, nil
	m.xMean, m.yMean = nil, nil
	m.nX, m.nY = 0, 0
	m.params = nil
	m.cv = nil
}

// Clone returns an unfitted model with the same configuration. Scalers are
// cloned unfitted; the decomposer and logger are shared.
func (m *Model) Clone() *Model {
	return &Model{
		nComponents: m.nComponents,
		xScaler:     cloneScaler(m.xScaler),
		yScaler:     cloneScaler(m.yScaler),
		decomposer:  m.decomposer,
		logger:      m.logger,
	}
}

// IsFitted reports whether Fit has completed since the last reset.
func (m *Model) IsFitted() bool {
	return m.t != nil && m.u != nil && m.w != nil && m.p != nil && m.c != nil && m.wstar != nil
}

// Components returns the configured number of latent components.
func (m *Model) Components() int { return m.nComponents }

// XScaler returns the X scaler (nil = identity).
func (m *Model) XScaler() scaling.Scaler { return m.xScaler }

// YScaler returns the Y scaler (nil = identity).
func (m *Model) YScaler() scaling.Scaler { return m.yScaler }

// XScores returns a copy of T (n×a).
func (m *Model) XScores() (matrix.Matrix, error) { return m.fittedCopy(m.t) }

// YScores returns a copy of U (n×a) as produced by the decomposer.
func (m *Model) YScores() (matrix.Matrix, error) { return m.fittedCopy(m.u) }

// Weights returns a copy of W (p×a).
func (m *Model) Weights() (matrix.Matrix, error) { return m.fittedCopy(m.w) }

// XLoadings returns a copy of P (p×a).
func (m *Model) XLoadings() (matrix.Matrix, error) { return m.fittedCopy(m.p) }

// YLoadings returns a copy of C (q×a).
func (m *Model) YLoadings() (matrix.Matrix, error) { return m.fittedCopy(m.c) }

// ModelParameters returns the explained-variance summary of the fit.
func (m *Model) ModelParameters() (ModelParameters, error) {
	if !m.IsFitted() {
		return ModelParameters{}, ErrNotFitted
	}
	out := *m.params
	out.R2XPerComponent = append([]float64(nil), m.params.R2XPerComponent...)
	out.R2YPerComponent = append([]float64(nil), m.params.R2YPerComponent...)

	return out, nil
}

// CVParameters returns the result of the latest CrossValidate run, or nil.
// Fit and every reconfiguration clear it, so a non-nil result always comes
// from a run made after the current fit. The returned value is shared with
// the model and must not be modified.
func (m *Model) CVParameters() *CVParameters { return m.cv }

func (m *Model) fittedCopy(d *matrix.Dense) (matrix.Matrix, error) {
	if !m.IsFitted() {
		return nil, ErrNotFitted
	}

	return d.Copy(), nil
}

func cloneScaler(s scaling.Scaler) scaling.Scaler {
	if s == nil {
		return nil
	}

	return s.Clone()
}
