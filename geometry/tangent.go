// SPDX-License-Identifier: MIT

package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// maxTangentDeg bounds the angle scan; a vertical line has no finite slope.
const maxTangentDeg = 90.0

// BestTangentAngle finds the line y = y0 + x·tan θ that best touches the
// circles with diameters [xMin[i], xMax[i]] on the x-axis.
//
// For every θ the error is Σ (rᵢ − dᵢ(θ))², where rᵢ is the radius and
// dᵢ(θ) = |cᵢ·sin θ + y0·cos θ| the distance from the centre cᵢ to the line.
// The scan is bracketed by the exact single-circle tangent angles, widened by
// one step on each side and clipped to [0°, 90°), then walked linearly with
// angleStepDeg.
//
// Returns the smallest error and the angle in degrees where it occurs.
//
// Errors:
//   - ErrBadInput for empty or mismatched inputs, a non-positive step, or a
//     circle with xMax <= xMin.
func BestTangentAngle(xMin, xMax []float64, y0, angleStepDeg float64) (minError, angleDeg float64, err error) {
	n := len(xMin)
	if n == 0 || n != len(xMax) {
		return 0, 0, fmt.Errorf("%w: %d lower vs %d upper bounds", ErrBadInput, len(xMin), len(xMax))
	}
	if !(angleStepDeg > 0) {
		return 0, 0, fmt.Errorf("%w: angle step %g", ErrBadInput, angleStepDeg)
	}

	centres := make([]float64, n)
	radii := make([]float64, n)
	thetas := make([]float64, n)
	for i := range xMin {
		if !(xMax[i] > xMin[i]) {
			return 0, 0, fmt.Errorf("%w: circle %d has xMax %g <= xMin %g", ErrBadInput, i, xMax[i], xMin[i])
		}
		centres[i] = (xMin[i] + xMax[i]) / 2
		radii[i] = (xMax[i] - xMin[i]) / 2

		ratio := radii[i] / math.Hypot(centres[i], y0)
		ratio = math.Max(-1, math.Min(1, ratio))
		thetas[i] = (math.Asin(ratio) - math.Atan2(y0, centres[i])) * 180 / math.Pi
	}
	lo := math.Max(floats.Min(thetas)-angleStepDeg, 0)
	hi := math.Min(floats.Max(thetas)+angleStepDeg, maxTangentDeg-angleStepDeg)
	if hi < lo {
		hi = lo
	}

	fitError := func(deg float64) float64 {
		s, c := math.Sincos(deg * math.Pi / 180)
		var sum float64
		for i := range centres {
			d := radii[i] - math.Abs(centres[i]*s+y0*c)
			sum += d * d
		}

		return sum
	}

	bestDeg, bestErr := lo, fitError(lo)
	steps := int(math.Floor((hi-lo)/angleStepDeg + 1e-9))
	for k := 1; k <= steps; k++ {
		deg := lo + float64(k)*angleStepDeg
		if e := fitError(deg); e < bestErr {
			bestDeg, bestErr = deg, e
		}
	}

	return bestErr, bestDeg, nil
}
