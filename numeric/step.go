// SPDX-License-Identifier: MIT

package numeric

import "math"

// niceSnapTol absorbs float noise when value is already a multiple of the step.
const niceSnapTol = 1e-9

// NiceStep picks a round increment for span: one of 0.2, 0.5, 1 or 2 times
// 10^⌊log₁₀ span⌋, the power of ten at or below span (not the nearest one).
// Between 3 and 7.5 steps cover the span, and the step never shrinks as span
// grows. Non-positive or non-finite spans return 0.
func NiceStep(span float64) float64 {
	if !(span > 0) || math.IsInf(span, 0) {
		return 0
	}

	mag := math.Pow(10, math.Floor(math.Log10(span)))
	norm := span / mag
	switch {
	case norm < 1.5:
		return 0.2 * mag
	case norm < 3.5:
		return 0.5 * mag
	case norm < 7.5:
		return 1.0 * mag
	default:
		return 2.0 * mag
	}
}

// NextNiceValue snaps value to a multiple of NiceStep(span), rounding up
// when roundUp is set and down otherwise. Values already on the grid are
// returned on the grid. A zero step leaves value unchanged.
func NextNiceValue(value, span float64, roundUp bool) float64 {
	step := NiceStep(span)
	if step == 0 {
		return value
	}

	q := value / step
	if r := math.Round(q); math.Abs(q-r) < niceSnapTol {
		return r * step
	}
	if roundUp {
		return math.Ceil(q) * step
	}

	return math.Floor(q) * step
}
