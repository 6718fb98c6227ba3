// SPDX-License-Identifier: MIT

package numeric

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "numeric: ". Operations wrap these with
// their name (see numericErrorf); callers match with errors.Is.
var (
	// ErrEmptyInput indicates an empty sequence where samples are required.
	ErrEmptyInput = errors.New("numeric: empty input")

	// ErrTooShort indicates fewer samples than the operation needs.
	ErrTooShort = errors.New("numeric: too few samples")

	// ErrLengthMismatch indicates paired sequences of different lengths.
	ErrLengthMismatch = errors.New("numeric: length mismatch")

	// ErrDegenerate indicates a closed-form denominator collapsing to zero
	// (e.g. all x equal in a fit).
	ErrDegenerate = errors.New("numeric: degenerate system")

	// ErrOutOfRange indicates a lookup value outside the grid.
	ErrOutOfRange = errors.New("numeric: value outside sorted range")

	// ErrNotAscending indicates a grid that is not ascending around the lookup value.
	ErrNotAscending = errors.New("numeric: list not sorted ascending")

	// ErrDuplicateX indicates two equal adjacent abscissae in a difference quotient.
	ErrDuplicateX = errors.New("numeric: duplicate adjacent x")

	// ErrBadWindow indicates a negative window or one that consumes the whole sequence.
	ErrBadWindow = errors.New("numeric: invalid window")

	// ErrWindowTooLarge indicates an extremum window wider than the sequence.
	ErrWindowTooLarge = errors.New("numeric: window exceeds sequence length")
)

// Operation names used in wrapped errors.
const (
	opLinearFit     = "LinearFit"
	opQuadraticFit  = "QuadraticFit"
	opLocate        = "LocateIndexAndFraction"
	opSortMerge     = "SortAndMergeDuplicateX"
	opSmooth        = "Smooth"
	opDifferentiate = "Differentiate"
	opIntegrate     = "IntegrateEulerForward"
	opLocalExtrema  = "LocalExtrema"
)

// numericErrorf tags err with the operation name.
func numericErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
