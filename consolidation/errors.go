// SPDX-License-Identifier: MIT

package consolidation

import (
	"errors"
	"fmt"
)

var (
	// ErrNotIncreasing indicates a settlement record that decreases somewhere
	// or never increases at all.
	ErrNotIncreasing = errors.New("consolidation: settlement not increasing")

	// ErrBadTime indicates times that are not positive and strictly increasing.
	ErrBadTime = errors.New("consolidation: time must be positive and strictly increasing")

	// ErrTooShort indicates fewer samples than a construction needs.
	ErrTooShort = errors.New("consolidation: too few samples")

	// ErrParallelTangents indicates that the steepest and tail tangents never meet
	// at a usable point.
	ErrParallelTangents = errors.New("consolidation: tangents do not intersect")

	// ErrBadSettings indicates settings outside their documented ranges.
	ErrBadSettings = errors.New("consolidation: invalid settings")
)

const (
	opTangentPoints = "TangentPoints"
	opLogTime       = "TangentPoints/log-time"
	opRootTime      = "TangentPoints/root-time"
	opP90           = "TangentPoints/p90"
)

func consolidationErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
