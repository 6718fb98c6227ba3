// SPDX-License-Identifier: MIT

// Package consolidation locates the end of primary consolidation on a
// settlement-time record of one load stage.
//
// 🚀 What is it?
//
// Two classic graphical constructions are automated on the same curve:
//
//   - log-time: settlement against log₁₀ t,
//   - root-time: settlement against √t.
//
// In both, the record is smoothed with a horizontally padded spline, the
// steepest tangent of the spline is intersected with the tangent through the
// tail of the record (a least-squares line over the last TailFraction of the
// samples). The intersection marks 100 % primary consolidation.
//
// ✨ Output
//
//   - Log, Root: the two 100 % points, in time/settlement coordinates.
//   - Blended:   their LogWeight-weighted average.
//   - P90:       the measured time at which 90 % of the blended settlement
//     is reached.
//
// ⚙️ Usage
//
//	pts, err := consolidation.TangentPoints(t, s, consolidation.DefaultSettings())
//	if err != nil { ... }
//	t100 := pts.Blended.X
package consolidation
