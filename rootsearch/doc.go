// SPDX-License-Identifier: MIT

// Package rootsearch fits a one-free-parameter curve family to data with a
// derivative-free interval search.
//
// 🚀 What does it do?
//
//	Given samples (x, y) and an Equation f(x; p), Search finds the p that
//	minimizes Σ (y − f(x; p))². Every other coefficient of the family is
//	solved in closed form for each trial p.
//
// Algorithm Outline:
//  1. Evaluate the residual at every point of Config.CandidateInterval and
//     keep the best index (clamped so both neighbours exist).
//  2. Bracket the minimum with the two neighbours of that index.
//  3. Repeatedly evaluate the midpoint (tracked as the running estimate) and
//     pull the endpoint with the larger residual toward the other one, so the
//     bracket width shrinks by Config.ShrinkFactor per step.
//  4. Stop when the width drops below Config.Tolerance or after
//     Config.MaxIterations steps, and return the coefficients at the better
//     endpoint.
//
// Hitting the iteration cap is not an error: Result.Converged is false and a
// warning goes to the diagnostics sink.
//
// Supported families:
//
//	"log" — y = a·ln(x + b) + c, free parameter b.
//
// Trial values that make the family undefined (x + b ≤ 0, or all ln(x + b)
// collapsing to one value) score SentinelResidual so the search can step away.
package rootsearch
