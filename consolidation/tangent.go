// SPDX-License-Identifier: MIT

package consolidation

import (
	"fmt"
	"math"

	"github.com/katalvlaran/soilcal/curve"
	"github.com/katalvlaran/soilcal/geometry"
	"github.com/katalvlaran/soilcal/numeric"
)

// minSamples is the shortest record either construction accepts.
const minSamples = 4

// parallelTol is the slope difference below which two tangents count as parallel.
const parallelTol = 1e-12

// Points holds the characteristic points of one consolidation record.
// All X values are times, all Y values settlements.
type Points struct {
	Log     curve.CharacteristicPoint
	Root    curve.CharacteristicPoint
	Blended curve.CharacteristicPoint
	P90     curve.CharacteristicPoint

	// TailSlope is the tail tangent slope in settlement per decade of time.
	TailSlope float64
}

// TangentPoints runs the log-time and root-time constructions on one stage.
//
// Stages:
//  1. Validate settings, times and settlements.
//  2. Log-time construction on (log₁₀ t, s).
//  3. Root-time construction on (√t, s).
//  4. Blend and locate the 90 % point on the measured record.
//
// Errors:
//   - ErrBadSettings, ErrTooShort, ErrBadTime.
//   - ErrNotIncreasing when settlement decreases anywhere or never grows.
//   - ErrParallelTangents when a construction has no usable intersection.
//   - numeric and geometry errors from the underlying primitives.
func TangentPoints(time, settlement []float64, s Settings) (Points, error) {
	// Stage 1 (Validate).
	if err := s.Validate(); err != nil {
		return Points{}, consolidationErrorf(opTangentPoints, err)
	}
	n := len(time)
	if n != len(settlement) || n < minSamples {
		return Points{}, consolidationErrorf(opTangentPoints,
			fmt.Errorf("%w: %d times, %d settlements, need >= %d", ErrTooShort, n, len(settlement), minSamples))
	}
	if time[0] <= 0 || !numeric.IsStrictlyIncreasing(time) {
		return Points{}, consolidationErrorf(opTangentPoints, ErrBadTime)
	}
	for i := 1; i < n; i++ {
		if settlement[i] < settlement[i-1] {
			return Points{}, consolidationErrorf(opTangentPoints,
				fmt.Errorf("%w: drops at index %d", ErrNotIncreasing, i))
		}
	}
	if settlement[n-1] <= settlement[0] {
		return Points{}, consolidationErrorf(opTangentPoints, ErrNotIncreasing)
	}

	// Stage 2 (Log-time).
	logT := make([]float64, n)
	for i, t := range time {
		logT[i] = math.Log10(t)
	}
	u, y, tailSlope, err := construct(logT, settlement, s)
	if err != nil {
		return Points{}, consolidationErrorf(opLogTime, err)
	}
	logPt := curve.CharacteristicPoint{X: math.Pow(10, u), Y: y, Index: -1}

	// Stage 3 (Root-time).
	rootT := make([]float64, n)
	for i, t := range time {
		rootT[i] = math.Sqrt(t)
	}
	u, y, _, err = construct(rootT, settlement, s)
	if err != nil {
		return Points{}, consolidationErrorf(opRootTime, err)
	}
	if u < 0 {
		return Points{}, consolidationErrorf(opRootTime,
			fmt.Errorf("%w: intersection at sqrt(t) = %g", ErrParallelTangents, u))
	}
	rootPt := curve.CharacteristicPoint{X: u * u, Y: y, Index: -1}

	// Stage 4 (Blend, 90 %).
	w := s.LogWeight
	blended := curve.CharacteristicPoint{
		X:     w*logPt.X + (1-w)*rootPt.X,
		Y:     w*logPt.Y + (1-w)*rootPt.Y,
		Index: -1,
	}
	p90, err := ninetyPercent(time, settlement, blended.Y)
	if err != nil {
		return Points{}, consolidationErrorf(opP90, err)
	}

	return Points{Log: logPt, Root: rootPt, Blended: blended, P90: p90, TailSlope: tailSlope}, nil
}

// construct returns the intersection (u, y) of the steepest spline tangent
// with the tail tangent of (u, s), plus the tail slope.
func construct(u, s []float64, set Settings) (float64, float64, float64, error) {
	px, py, err := geometry.PadHorizontal(u, s)
	if err != nil {
		return 0, 0, 0, err
	}
	sx, sy, err := geometry.SplineInterpolate(px, py, set.SamplesPerSegment, set.TangentFactor)
	if err != nil {
		return 0, 0, 0, err
	}
	sx, sy, err = numeric.SortAndMergeDuplicateX(sx, sy)
	if err != nil {
		return 0, 0, 0, err
	}
	xm, dy, err := numeric.Differentiate(sx, sy)
	if err != nil {
		return 0, 0, 0, err
	}

	k := numeric.ArgMax(dy)
	steep := dy[k]
	steepIcpt := (sy[k]+sy[k+1])/2 - steep*xm[k]

	tail := max(2, int(math.Ceil(set.TailFraction*float64(len(u)))))
	tailSlope, tailIcpt, err := numeric.LinearFit(u[len(u)-tail:], s[len(s)-tail:])
	if err != nil {
		return 0, 0, 0, err
	}

	if math.Abs(steep-tailSlope) < parallelTol {
		return 0, 0, 0, fmt.Errorf("%w: slopes %g and %g", ErrParallelTangents, steep, tailSlope)
	}
	x := (tailIcpt - steepIcpt) / (steep - tailSlope)

	return x, steep*x + steepIcpt, tailSlope, nil
}

// ninetyPercent finds the measured time at 90 % of the settlement increase
// from the first sample up to target.
func ninetyPercent(time, settlement []float64, target float64) (curve.CharacteristicPoint, error) {
	y90 := settlement[0] + 0.9*(target-settlement[0])
	// Plateaus collapse to one sample so settlement can serve as abscissa.
	sm, tm, err := numeric.SortAndMergeDuplicateX(settlement, time)
	if err != nil {
		return curve.CharacteristicPoint{}, err
	}
	t90, err := numeric.Interpolate(y90, sm, tm)
	if err != nil {
		return curve.CharacteristicPoint{}, err
	}

	return curve.CharacteristicPoint{X: t90, Y: y90, Index: -1}, nil
}
