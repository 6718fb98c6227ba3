// SPDX-License-Identifier: MIT

package curve

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch indicates that X and Y differ in length.
	ErrLengthMismatch = errors.New("curve: x and y length mismatch")

	// ErrEmpty indicates a curve without samples.
	ErrEmpty = errors.New("curve: no samples")

	// ErrMissingField indicates that a required key is absent from a Source.
	ErrMissingField = errors.New("curve: required field missing")
)

// Curve is one measured quantity (Y) against another (X).
// Most numeric primitives require X strictly increasing; raw lab curves
// must pass through numeric.SortAndMergeDuplicateX first.
type Curve struct {
	X []float64
	Y []float64
}

// New builds a Curve from copies of x and y.
func New(x, y []float64) (Curve, error) {
	c := Curve{X: clone(x), Y: clone(y)}
	if err := c.Validate(); err != nil {
		return Curve{}, err
	}

	return c, nil
}

// Len returns the number of samples.
func (c Curve) Len() int { return len(c.X) }

// Validate checks that the curve is non-empty and its columns have equal length.
func (c Curve) Validate() error {
	if len(c.X) != len(c.Y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(c.X), len(c.Y))
	}
	if len(c.X) == 0 {
		return ErrEmpty
	}

	return nil
}

// Clone returns a deep copy.
func (c Curve) Clone() Curve {
	return Curve{X: clone(c.X), Y: clone(c.Y)}
}

// CharacteristicPoint is a point located on a curve by an extremum or tangent
// construction. Index refers to the sample it was derived from, or -1 when
// the point lies between samples.
type CharacteristicPoint struct {
	X     float64
	Y     float64
	Index int
}

// ReferenceStressPair holds the lower and upper stress levels around which
// oedometer curves are sampled. The zero value asks the calibrator to pick
// both levels from the measured stress range.
type ReferenceStressPair struct {
	Lower float64 `yaml:"lower" validate:"gte=0"`
	Upper float64 `yaml:"upper" validate:"gte=0"`
}

// IsZero reports whether neither level was set.
func (p ReferenceStressPair) IsZero() bool { return p.Lower == 0 && p.Upper == 0 }

func clone(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
