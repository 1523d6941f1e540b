// SPDX-License-Identifier: MIT

// Package folds - RNG utilities shared by shuffled splits and permutation tests.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
//   - Use StreamRNG to create an independent stream per worker or per iteration.
package folds

import "math/rand"

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// NewRNG returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with a SplitMix64 finalizer, so neighbouring stream ids give unrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// StreamRNG returns the RNG for stream id under a parent seed. The result
// depends only on (parent, stream), never on how many streams were created
// before, so iterations can run in any order or in parallel.
func StreamRNG(parent int64, stream uint64) *rand.Rand {
	if parent == 0 {
		parent = defaultRNGSeed
	}

	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// Permutation returns a permutation of 0..n-1 drawn from rng.
// If rng==nil, the default deterministic stream is used.
//
// Complexity: O(n) time, O(n) space.
func Permutation(n int, rng *rand.Rand) []int {
	p := identity(n)
	shuffleIntsInPlace(p, rng)

	return p
}

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a using rng.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	n := len(a)
	if n <= 1 {
		return
	}
	r := rng
	if r == nil {
		r = NewRNG(0)
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
