// SPDX-License-Identifier: MIT

// Package geometry provides the curve-geometry tools the calibrators share:
//
//   - SplineInterpolate / PadHorizontal — cubic Bézier spline through measured
//     points with a tunable tangent strength (0 = straight chords, 1 = full
//     Catmull-Rom-like handles).
//   - BestTangentAngle — the common tangent line through (0, y0) that best
//     touches a family of circles resting on the x-axis; used to fit one
//     friction angle through several Mohr stress circles at once.
//   - ResampleOnUnion — brings two independently sampled curves onto one
//     shared x-grid restricted to their overlap.
//
// All functions are pure: inputs are never modified and outputs are fresh.
// Built on numeric for lookup/interpolation; no logging.
package geometry
