// SPDX-License-Identifier: MIT

package geometry

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/soilcal/curve"
	"github.com/katalvlaran/soilcal/numeric"
)

// ResampleOnUnion puts a and b on one shared grid: the sorted union of both
// x sets restricted to the common domain [max(a₀, b₀), min(aₙ, bₘ)].
// Each curve is linearly interpolated at every grid point.
//
// Returns the grid and the two resampled y series, all of equal length.
//
// Errors:
//   - curve.ErrEmpty / curve.ErrLengthMismatch for malformed curves.
//   - ErrNotIncreasing if either x is not strictly increasing.
//   - ErrNoOverlap if the domains are disjoint.
func ResampleOnUnion(a, b curve.Curve) ([]float64, []float64, []float64, error) {
	// Stage 1 (Validate).
	for _, c := range []curve.Curve{a, b} {
		if err := c.Validate(); err != nil {
			return nil, nil, nil, err
		}
		if !numeric.IsStrictlyIncreasing(c.X) {
			return nil, nil, nil, ErrNotIncreasing
		}
	}
	lo := max(a.X[0], b.X[0])
	hi := min(a.X[a.Len()-1], b.X[b.Len()-1])
	if lo > hi {
		return nil, nil, nil, fmt.Errorf("%w: [%g, %g] vs [%g, %g]",
			ErrNoOverlap, a.X[0], a.X[a.Len()-1], b.X[0], b.X[b.Len()-1])
	}

	// Stage 2 (Grid): merged, de-duplicated, clipped to the overlap.
	grid := make([]float64, 0, a.Len()+b.Len())
	for _, xs := range [][]float64{a.X, b.X} {
		for _, x := range xs {
			if x >= lo && x <= hi {
				grid = append(grid, x)
			}
		}
	}
	sort.Float64s(grid)
	w := 0
	for i, x := range grid {
		if i == 0 || x != grid[w-1] {
			grid[w] = x
			w++
		}
	}
	grid = grid[:w]

	// Stage 3 (Interpolate).
	ya := make([]float64, len(grid))
	yb := make([]float64, len(grid))
	for i, x := range grid {
		var err error
		if ya[i], err = numeric.Interpolate(x, a.X, a.Y); err != nil {
			return nil, nil, nil, err
		}
		if yb[i], err = numeric.Interpolate(x, b.X, b.Y); err != nil {
			return nil, nil, nil, err
		}
	}

	return grid, ya, yb, nil
}
