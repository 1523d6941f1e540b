// SPDX-License-Identifier: MIT
// Package pls: functional options.
//
// Convention: option constructors panic on programmer errors (a nil
// decomposer, a negative worker count) and never return errors; validation of
// data-dependent values happens in the operations themselves.

package pls

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/chemometrics/scaling"
)

// Defaults.
const (
	// DefaultCVFolds is the fold count of NewDefaultFolds.
	DefaultCVFolds = 7
	// DefaultWorkers runs folds and permutations sequentially.
	DefaultWorkers = 1
	// DefaultPermutationSeed seeds permutation streams when no seed is given.
	DefaultPermutationSeed int64 = 1
)

// ---------- Model options ----------

// Option configures a Model at construction.
type Option func(*Model)

// WithXScaler sets the X scaler. nil means identity (no scaling).
func WithXScaler(s scaling.Scaler) Option {
	return func(m *Model) { m.xScaler = s }
}

// WithoutXScaler disables the default unit-variance X scaler.
func WithoutXScaler() Option {
	return func(m *Model) { m.xScaler = nil }
}

// WithYScaler sets the Y scaler. The default is nil (identity).
func WithYScaler(s scaling.Scaler) Option {
	return func(m *Model) { m.yScaler = s }
}

// WithDecomposer replaces the default NIPALS decomposer.
// Panics on nil.
func WithDecomposer(d Decomposer) Option {
	if d == nil {
		panic("pls: WithDecomposer(nil)")
	}

	return func(m *Model) { m.decomposer = d }
}

// WithLogger attaches a zap logger. nil selects a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l == nil {
			l = zap.NewNop()
		}
		m.logger = l
	}
}

// ---------- Cross-validation options ----------

// CVOption configures a single CrossValidate run.
type CVOption func(*cvConfig)

type cvConfig struct {
	pressPerVariable bool
	workers          int
	distribution     bool
}

func defaultCVConfig() cvConfig {
	return cvConfig{workers: DefaultWorkers}
}

// WithPressPerVariable accumulates PRESS per response column instead of one
// whole-matrix sum per fold.
func WithPressPerVariable(on bool) CVOption {
	return func(c *cvConfig) { c.pressPerVariable = on }
}

// WithWorkers sets the number of folds fitted concurrently. Panics if n < 1.
func WithWorkers(n int) CVOption {
	if n < 1 {
		panic(fmt.Sprintf("pls: WithWorkers(%d): need at least one worker", n))
	}

	return func(c *cvConfig) { c.workers = n }
}

// WithOutputDistribution keeps the per-fold aligned loadings, weights and Q²
// in CVParameters.Distribution.
func WithOutputDistribution() CVOption {
	return func(c *cvConfig) { c.distribution = true }
}

// ---------- Permutation options ----------

// PermOption configures a permutation test.
type PermOption func(*permConfig)

type permConfig struct {
	seed    int64
	workers int
	cv      []CVOption
}

func defaultPermConfig() permConfig {
	return permConfig{seed: DefaultPermutationSeed, workers: DefaultWorkers}
}

// WithPermutationSeed sets the parent seed of the per-iteration RNG streams.
func WithPermutationSeed(seed int64) PermOption {
	return func(c *permConfig) { c.seed = seed }
}

// WithPermutationWorkers sets the number of permutations run concurrently.
// Panics if n < 1.
func WithPermutationWorkers(n int) PermOption {
	if n < 1 {
		panic(fmt.Sprintf("pls: WithPermutationWorkers(%d): need at least one worker", n))
	}

	return func(c *permConfig) { c.workers = n }
}

// WithPermutationCV forwards options to every inner cross-validation.
// Worker and distribution options are ignored there; permutations are the
// unit of parallelism.
func WithPermutationCV(opts ...CVOption) PermOption {
	return func(c *permConfig) { c.cv = append(c.cv, opts...) }
}
