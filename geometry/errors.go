// SPDX-License-Identifier: MIT

package geometry

import "errors"

var (
	// ErrBadInput indicates malformed arguments (lengths, counts, factors).
	ErrBadInput = errors.New("geometry: invalid input")

	// ErrNoOverlap indicates two curves whose x-domains do not intersect.
	ErrNoOverlap = errors.New("geometry: curves do not overlap")

	// ErrNotIncreasing indicates a curve whose x is not strictly increasing.
	ErrNotIncreasing = errors.New("geometry: x not strictly increasing")
)
