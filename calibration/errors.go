// SPDX-License-Identifier: MIT

package calibration

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/soilcal/diag"
)

// Kind classifies why a calibration failed.
type Kind int

const (
	// InputIncomplete: a required curve or scalar is missing or empty.
	InputIncomplete Kind = iota + 1

	// NumericDegenerate: a denominator or log argument collapsed to zero or below.
	NumericDegenerate

	// ValidityViolation: a physical ordering or sign constraint does not hold.
	ValidityViolation

	// NonConvergence: the root search ran out of iterations. Reported as a
	// warning; calibrators never fail with it.
	NonConvergence
)

// Sentinel errors matched by *Error through errors.Is.
var (
	ErrInputIncomplete   = errors.New("calibration: input incomplete")
	ErrNumericDegenerate = errors.New("calibration: numeric degenerate")
	ErrValidityViolation = errors.New("calibration: validity violation")
	ErrNonConvergence    = errors.New("calibration: no convergence")
	errUnknownKind       = errors.New("calibration: unknown failure")
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case InputIncomplete:
		return "input incomplete"
	case NumericDegenerate:
		return "numeric degenerate"
	case ValidityViolation:
		return "validity violation"
	case NonConvergence:
		return "non-convergence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InputIncomplete:
		return ErrInputIncomplete
	case NumericDegenerate:
		return ErrNumericDegenerate
	case ValidityViolation:
		return ErrValidityViolation
	case NonConvergence:
		return ErrNonConvergence
	default:
		return errUnknownKind
	}
}

// Error is the failure of one calibration step.
//
// errors.Is(err, ErrValidityViolation) etc. match on Kind; errors.Is and
// errors.As also see the wrapped cause.
type Error struct {
	Kind Kind

	// Step names the pipeline step that aborted, e.g. "hypoplastic/sample".
	Step string

	// Quantity names the offending quantity, if any, e.g. "h_s".
	Quantity string

	// Err is the underlying cause; may be nil.
	Err error
}

// Error implements error.
func (e *Error) Error() string {
	msg := fmt.Sprintf("calibration: %s: %s", e.Step, e.Kind)
	if e.Quantity != "" {
		msg += fmt.Sprintf(" (%s)", e.Quantity)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool { return target == e.Kind.sentinel() }

// fail builds an *Error and reports it on sink as an error-severity entry.
func fail(sink diag.Sink, kind Kind, step, quantity string, cause error) error {
	err := &Error{Kind: kind, Step: step, Quantity: quantity, Err: cause}
	diag.Errorf(sink, "%s", err.Error())

	return err
}

// failf is fail with a formatted cause.
func failf(sink diag.Sink, kind Kind, step, quantity, format string, args ...any) error {
	return fail(sink, kind, step, quantity, fmt.Errorf(format, args...))
}
