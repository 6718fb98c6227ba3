// SPDX-License-Identifier: MIT

// Package numeric provides the small numeric toolkit every calibration
// pipeline is built from.
//
// 🚀 What is in here?
//
//	• Fits:          LinearFit, QuadraticFit (closed-form least squares)
//	• Lookup:        LocateIndexAndFraction, Interpolate (strictly increasing grids)
//	• Sequences:     SortAndMergeDuplicateX, Smooth, Differentiate, IntegrateEulerForward
//	• Shape:         LocalExtrema, RangeCheck, IsStrictlyIncreasing/Decreasing
//	• Step sizes:    NiceStep, NextNiceValue
//
// ✨ Guarantees:
//   - No function mutates its inputs; every returned slice is freshly allocated.
//   - No logging and no panics on user input: failures are sentinel errors
//     from errors.go, wrapped with the operation name and matched via errors.Is.
//   - Deterministic: identical inputs give bit-identical outputs.
//
// ⚙️ Usage:
//
//	x, y, _ := numeric.SortAndMergeDuplicateX(raw.X, raw.Y)
//	ys, _ := numeric.Smooth(y, 3)
//	xm, dy, err := numeric.Differentiate(x[3:], ys)
//
// The grid helpers expect x strictly increasing. Raw lab curves are only
// weakly monotone and must go through SortAndMergeDuplicateX first.
package numeric
