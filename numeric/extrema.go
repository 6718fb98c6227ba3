// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"
)

// LocalExtrema returns every index i for which no value inside
// [i−window, i+window] (clipped to the bounds) is strictly greater
// (wantMax) or strictly smaller (!wantMax) than values[i].
//
// Plateaus yield every index of the plateau. Endpoints qualify like any
// other index; callers that only want turning points filter them out.
//
// Errors:
//   - ErrBadWindow for a negative window.
//   - ErrWindowTooLarge when window > len(values); the returned slice is empty, never nil.
//
// Complexity: O(n·window).
func LocalExtrema(values []float64, window int, wantMax bool) ([]int, error) {
	if window < 0 {
		return []int{}, numericErrorf(opLocalExtrema, fmt.Errorf("%w: %d", ErrBadWindow, window))
	}
	n := len(values)
	if window > n {
		return []int{}, numericErrorf(opLocalExtrema, fmt.Errorf("%w: %d > %d", ErrWindowTooLarge, window, n))
	}

	out := []int{}
	for i := 0; i < n; i++ {
		lo := max(0, i-window)
		hi := min(n-1, i+window)
		keep := true
		for j := lo; j <= hi && keep; j++ {
			if wantMax && values[j] > values[i] {
				keep = false
			}
			if !wantMax && values[j] < values[i] {
				keep = false
			}
		}
		if keep {
			out = append(out, i)
		}
	}

	return out, nil
}

// ArgMax returns the index of the first largest value, or -1 for an empty slice.
func ArgMax(values []float64) int {
	best := -1
	bestV := math.Inf(-1)
	for i, v := range values {
		if v > bestV {
			best, bestV = i, v
		}
	}

	return best
}

// ArgMin returns the index of the first smallest value, or -1 for an empty slice.
func ArgMin(values []float64) int {
	best := -1
	bestV := math.Inf(1)
	for i, v := range values {
		if v < bestV {
			best, bestV = i, v
		}
	}

	return best
}
