// SPDX-License-Identifier: MIT

// Package nipals implements the NIPALS algorithm for two-block PLS (PLS2).
//
// Given predictors X (n×p) and responses Y (n×q) it extracts latent
// components one at a time. For component a:
//
//  1. u ← the Y column with the largest sum of squares
//  2. repeat until ‖w − w_old‖₂ < Tolerance:
//     w ← Xᵀu / ‖Xᵀu‖,  t ← Xw,  c ← Yᵀt / tᵀt,  u ← Yc / cᵀc
//  3. orient w so its largest-magnitude entry is positive (t, c, u follow)
//  4. p ← Xᵀt / tᵀt, then deflate X ← X − t pᵀ and Y ← Y − t cᵀ
//
// X and Y are column-centred internally; the means are returned in Result so
// callers can centre new data the same way.
//
// The sign convention makes the decomposition deterministic: the same input
// always produces bit-identical output.
//
// Complexity: O(a · iter · n · (p + q)) time, O(n·(p+q)) memory.
package nipals
