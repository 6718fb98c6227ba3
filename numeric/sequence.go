// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SortAndMergeDuplicateX stably sorts the pairs by x and collapses runs of
// equal x into one sample whose y is the running mean of the merged values.
//
// Complexity: O(n log n).
func SortAndMergeDuplicateX(x, y []float64) ([]float64, []float64, error) {
	if err := checkPair(x, y); err != nil {
		return nil, nil, numericErrorf(opSortMerge, err)
	}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	xOut := make([]float64, 0, len(x))
	yOut := make([]float64, 0, len(y))
	count := 0
	for _, k := range idx {
		last := len(xOut) - 1
		if last >= 0 && xOut[last] == x[k] {
			count++
			yOut[last] += (y[k] - yOut[last]) / float64(count)
			continue
		}
		xOut = append(xOut, x[k])
		yOut = append(yOut, y[k])
		count = 1
	}

	return xOut, yOut, nil
}

// Smooth applies a trailing moving average of width window: out[i] is the
// mean of values[i..i+window−1]. The result has len(values)−window elements;
// window 0 returns a copy of the input.
//
// Errors:
//   - ErrBadWindow when window < 0 or window ≥ len(values) (for window > 0).
//
// Complexity: O(n·window).
func Smooth(values []float64, window int) ([]float64, error) {
	if window < 0 {
		return nil, numericErrorf(opSmooth, fmt.Errorf("%w: %d", ErrBadWindow, window))
	}
	if window == 0 {
		out := make([]float64, len(values))
		copy(out, values)

		return out, nil
	}
	if window >= len(values) {
		return nil, numericErrorf(opSmooth, fmt.Errorf("%w: %d for %d samples", ErrBadWindow, window, len(values)))
	}

	out := make([]float64, len(values)-window)
	for i := range out {
		out[i] = stat.Mean(values[i:i+window], nil)
	}

	return out, nil
}

// Differentiate returns forward difference quotients dy/dx evaluated at the
// interval midpoints xMid[i] = (x[i]+x[i+1])/2.
//
// Errors:
//   - ErrTooShort for fewer than two samples.
//   - ErrDuplicateX, naming the offending index, when x[i] == x[i+1].
//
// Complexity: O(n).
func Differentiate(x, y []float64) ([]float64, []float64, error) {
	if err := checkPair(x, y); err != nil {
		return nil, nil, numericErrorf(opDifferentiate, err)
	}
	if len(x) < 2 {
		return nil, nil, numericErrorf(opDifferentiate, ErrTooShort)
	}

	xMid := make([]float64, len(x)-1)
	dy := make([]float64, len(x)-1)
	for i := range dy {
		dx := x[i+1] - x[i]
		if dx == 0 {
			return nil, nil, numericErrorf(opDifferentiate, fmt.Errorf("%w: at index %d", ErrDuplicateX, i))
		}
		xMid[i] = (x[i] + x[i+1]) / 2
		dy[i] = (y[i+1] - y[i]) / dx
	}

	return xMid, dy, nil
}

// IntegrateEulerForward rebuilds a sequence from increments by explicit
// forward accumulation:
//
//	x[0] = x0, y[0] = y0
//	x[i+1] = x[i] + dx[i]
//	y[i+1] = y[i] + dy[i]·dx[i]
//
// The result has len(dx)+1 samples.
func IntegrateEulerForward(x0, y0 float64, dx, dy []float64) ([]float64, []float64, error) {
	if len(dx) != len(dy) {
		return nil, nil, numericErrorf(opIntegrate, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(dx), len(dy)))
	}

	x := make([]float64, len(dx)+1)
	y := make([]float64, len(dx)+1)
	x[0], y[0] = x0, y0
	for i := range dx {
		x[i+1] = x[i] + dx[i]
		y[i+1] = y[i] + dy[i]*dx[i]
	}

	return x, y, nil
}

// Steps returns the consecutive differences v[i+1] − v[i].
func Steps(v []float64) []float64 {
	if len(v) < 2 {
		return []float64{}
	}
	out := make([]float64, len(v)-1)
	for i := range out {
		out[i] = v[i+1] - v[i]
	}

	return out
}

// Mean returns the arithmetic mean of values (NaN for an empty slice).
func Mean(values []float64) float64 {
	return stat.Mean(values, nil)
}
