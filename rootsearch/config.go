// SPDX-License-Identifier: MIT

package rootsearch

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/soilcal/diag"
)

// Defaults (single source of truth for DefaultConfig).
const (
	// DefaultMaxIterations bounds the bracket-shrinking loop.
	DefaultMaxIterations = 500

	// DefaultShrinkFactor is the per-step bracket width ratio.
	DefaultShrinkFactor = 0.95

	// DefaultTolerance is the bracket width at which the search stops.
	DefaultTolerance = 1e-6
)

var (
	// ErrUnsupportedEquation is returned for an unknown equation name.
	ErrUnsupportedEquation = errors.New("rootsearch: unsupported equation")

	// ErrBadConfig is returned when a Config violates its documented ranges.
	ErrBadConfig = errors.New("rootsearch: invalid config")

	// ErrBadInput is returned for malformed sample data.
	ErrBadInput = errors.New("rootsearch: invalid input data")
)

// Config controls Search. The zero value is invalid; start from DefaultConfig.
type Config struct {
	// CandidateInterval is scanned first; it must hold at least three strictly
	// increasing values.
	CandidateInterval []float64 `yaml:"candidate_interval"`

	// MaxIterations caps the shrinking loop (> 0).
	MaxIterations int `yaml:"max_iterations"`

	// ShrinkFactor is the bracket width ratio per step, in (0.5, 1).
	ShrinkFactor float64 `yaml:"shrink_factor"`

	// Tolerance is the stopping bracket width (> 0).
	Tolerance float64 `yaml:"tolerance"`
}

// DefaultConfig returns the documented defaults with the given candidates.
func DefaultConfig(candidates ...float64) Config {
	c := make([]float64, len(candidates))
	copy(c, candidates)

	return Config{
		CandidateInterval: c,
		MaxIterations:     DefaultMaxIterations,
		ShrinkFactor:      DefaultShrinkFactor,
		Tolerance:         DefaultTolerance,
	}
}

// Validate checks every field against its documented range.
func (c Config) Validate() error {
	if len(c.CandidateInterval) < 3 {
		return fmt.Errorf("%w: need at least 3 candidates, got %d", ErrBadConfig, len(c.CandidateInterval))
	}
	for i := 1; i < len(c.CandidateInterval); i++ {
		if !(c.CandidateInterval[i] > c.CandidateInterval[i-1]) {
			return fmt.Errorf("%w: candidates not strictly increasing at index %d", ErrBadConfig, i)
		}
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations %d", ErrBadConfig, c.MaxIterations)
	}
	if !(c.ShrinkFactor > 0.5 && c.ShrinkFactor < 1) {
		return fmt.Errorf("%w: shrink factor %g not in (0.5, 1)", ErrBadConfig, c.ShrinkFactor)
	}
	if !(c.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance %g", ErrBadConfig, c.Tolerance)
	}

	return nil
}

// Option tunes a single Search call.
type Option func(*options)

type options struct {
	sink diag.Sink
}

// WithSink routes convergence warnings to s.
func WithSink(s diag.Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

func gatherOptions(opts []Option) options {
	o := options{sink: diag.Discard}
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
