// SPDX-License-Identifier: MIT

package geometry

import (
	"fmt"
	"math"
)

// degenerateLen is the chord length below which a segment is treated as a point.
const degenerateLen = 1e-12

type point struct{ x, y float64 }

func (p point) sub(q point) point     { return point{p.x - q.x, p.y - q.y} }
func (p point) add(q point) point     { return point{p.x + q.x, p.y + q.y} }
func (p point) scale(s float64) point { return point{p.x * s, p.y * s} }
func (p point) dot(q point) float64   { return p.x*q.x + p.y*q.y }
func (p point) norm() float64         { return math.Hypot(p.x, p.y) }

// bezier evaluates the cubic Bézier curve p0-h0-h1-p1 at t in [0, 1].
func bezier(p0, h0, h1, p1 point, t float64) point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t

	return point{
		a*p0.x + b*h0.x + c*h1.x + d*p1.x,
		a*p0.y + b*h0.y + c*h1.y + d*p1.y,
	}
}

// handle returns the control point next to from, along dir, scaled by the
// projection of chord onto dir and by tangentFactor. Negative projections
// are clamped to zero so handles never point backwards.
func handle(from, chord, dir point, tangentFactor float64) point {
	dd := dir.dot(dir)
	if dd == 0 {
		return from
	}
	proj := math.Max(chord.dot(dir)/dd, 0)

	return from.add(dir.scale(tangentFactor * proj / 3))
}

// SplineInterpolate draws a cubic Bézier spline through (xs, ys).
//
// For every run of four consecutive points P0..P3 it emits samplesPerSegment
// points from P1 (inclusive) toward P2 (exclusive); the last interior point
// closes the output. Handles follow the chord directions P2−P0 and P1−P3.
// The first and last input points only steer tangents; use PadHorizontal to
// add them with horizontal end tangents.
//
// Near-zero-length segments repeat P1 instead of constructing a curve.
//
// Output length: (len(xs)−3)·samplesPerSegment + 1.
//
// Errors:
//   - ErrBadInput for fewer than four points, mismatched lengths,
//     samplesPerSegment < 1 or tangentFactor outside [0, 1].
func SplineInterpolate(xs, ys []float64, samplesPerSegment int, tangentFactor float64) ([]float64, []float64, error) {
	n := len(xs)
	if n != len(ys) || n < 4 {
		return nil, nil, fmt.Errorf("%w: need >= 4 paired points, got %d/%d", ErrBadInput, len(xs), len(ys))
	}
	if samplesPerSegment < 1 {
		return nil, nil, fmt.Errorf("%w: samples per segment %d", ErrBadInput, samplesPerSegment)
	}
	if !(tangentFactor >= 0 && tangentFactor <= 1) {
		return nil, nil, fmt.Errorf("%w: tangent factor %g not in [0, 1]", ErrBadInput, tangentFactor)
	}

	size := (n-3)*samplesPerSegment + 1
	xOut := make([]float64, 0, size)
	yOut := make([]float64, 0, size)
	for k := 1; k < n-2; k++ {
		p0 := point{xs[k-1], ys[k-1]}
		p1 := point{xs[k], ys[k]}
		p2 := point{xs[k+1], ys[k+1]}
		p3 := point{xs[k+2], ys[k+2]}

		chord := p2.sub(p1)
		if chord.norm() < degenerateLen {
			for j := 0; j < samplesPerSegment; j++ {
				xOut = append(xOut, p1.x)
				yOut = append(yOut, p1.y)
			}
			continue
		}

		h1 := handle(p1, chord, p2.sub(p0), tangentFactor)
		h2 := handle(p2, chord.scale(-1), p1.sub(p3), tangentFactor)
		for j := 0; j < samplesPerSegment; j++ {
			b := bezier(p1, h1, h2, p2, float64(j)/float64(samplesPerSegment))
			xOut = append(xOut, b.x)
			yOut = append(yOut, b.y)
		}
	}
	xOut = append(xOut, xs[n-2])
	yOut = append(yOut, ys[n-2])

	return xOut, yOut, nil
}

// PadHorizontal adds one point before the first and after the last sample so
// that SplineInterpolate starts and ends with horizontal tangents:
//
//	P₋₁ = (2x₀ − x₁, y₁),  Pₙ = (2xₙ₋₁ − xₙ₋₂, yₙ₋₂).
func PadHorizontal(xs, ys []float64) ([]float64, []float64, error) {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return nil, nil, fmt.Errorf("%w: need >= 2 paired points, got %d/%d", ErrBadInput, len(xs), len(ys))
	}

	xOut := make([]float64, 0, n+2)
	yOut := make([]float64, 0, n+2)
	xOut = append(xOut, 2*xs[0]-xs[1])
	yOut = append(yOut, ys[1])
	xOut = append(xOut, xs...)
	yOut = append(yOut, ys...)
	xOut = append(xOut, 2*xs[n-1]-xs[n-2])
	yOut = append(yOut, ys[n-2])

	return xOut, yOut, nil
}
