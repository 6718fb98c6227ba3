// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"
	"sort"
)

// LocateIndexAndFraction finds i and f ∈ [0,1) such that
//
//	value ≈ sorted[i] + f·(sorted[i+1] − sorted[i]).
//
// Exact hits return f = 0, except the last element which returns (n−2, 1.0)
// so that i+1 is always a valid index.
//
// Errors:
//   - ErrTooShort when the list has fewer than two elements.
//   - ErrOutOfRange when value is NaN, below the first or above the last element.
//   - ErrNotAscending when the list is not ascending around value.
//
// Complexity: O(log n).
func LocateIndexAndFraction(value float64, sorted []float64) (int, float64, error) {
	n := len(sorted)
	if n < 2 {
		return 0, 0, numericErrorf(opLocate, ErrTooShort)
	}
	if sorted[n-1] < sorted[0] {
		return 0, 0, numericErrorf(opLocate, ErrNotAscending)
	}
	if math.IsNaN(value) || value < sorted[0] || value > sorted[n-1] {
		return 0, 0, numericErrorf(opLocate,
			fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, value, sorted[0], sorted[n-1]))
	}

	i := sort.SearchFloat64s(sorted, value)
	if i >= n {
		return 0, 0, numericErrorf(opLocate, ErrNotAscending)
	}
	if sorted[i] == value {
		if i == n-1 {
			return n - 2, 1.0, nil
		}

		return i, 0, nil
	}
	if i == 0 {
		return 0, 0, numericErrorf(opLocate, ErrNotAscending)
	}

	lo := i - 1
	den := sorted[i] - sorted[lo]
	if den <= 0 {
		return 0, 0, numericErrorf(opLocate, fmt.Errorf("%w: at index %d", ErrNotAscending, lo))
	}
	f := (value - sorted[lo]) / den
	if f < 0 || f >= 1 {
		return 0, 0, numericErrorf(opLocate, fmt.Errorf("%w: at index %d", ErrNotAscending, lo))
	}

	return lo, f, nil
}

// Interpolate evaluates the piecewise-linear curve (xs, ys) at value.
// xs must be strictly increasing; errors are those of LocateIndexAndFraction.
func Interpolate(value float64, xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, numericErrorf(opLocate, ErrLengthMismatch)
	}
	i, f, err := LocateIndexAndFraction(value, xs)
	if err != nil {
		return 0, err
	}
	if f == 0 {
		return ys[i], nil
	}

	return ys[i] + f*(ys[i+1]-ys[i]), nil
}

// RangeCheck reports whether every element lies in [min, max].
// NaN never passes; an empty slice passes trivially.
func RangeCheck(values []float64, min, max float64) bool {
	for _, v := range values {
		if !(v >= min && v <= max) {
			return false
		}
	}

	return true
}

// IsStrictlyIncreasing reports whether values[i] < values[i+1] for all i.
func IsStrictlyIncreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if !(values[i] > values[i-1]) {
			return false
		}
	}

	return true
}

// IsStrictlyDecreasing reports whether values[i] > values[i+1] for all i.
func IsStrictlyDecreasing(values []float64) bool {
	for i := 1; i < len(values); i++ {
		if !(values[i] < values[i-1]) {
			return false
		}
	}

	return true
}
