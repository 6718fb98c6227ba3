// SPDX-License-Identifier: MIT

package consolidation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	// DefaultSamplesPerSegment is the spline resolution between two samples.
	DefaultSamplesPerSegment = 8

	// DefaultTangentFactor is the spline handle strength.
	DefaultTangentFactor = 0.5

	// DefaultTailFraction is the share of trailing samples fitted by the tail tangent.
	DefaultTailFraction = 0.25

	// DefaultLogWeight weights the log-time point in the blended result.
	DefaultLogWeight = 0.5
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Settings tunes both tangent constructions.
type Settings struct {
	SamplesPerSegment int     `yaml:"samples_per_segment" validate:"min=1,max=1000"`
	TangentFactor     float64 `yaml:"tangent_factor" validate:"gte=0,lte=1"`
	TailFraction      float64 `yaml:"tail_fraction" validate:"gt=0,lt=1"`
	LogWeight         float64 `yaml:"log_weight" validate:"gte=0,lte=1"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		SamplesPerSegment: DefaultSamplesPerSegment,
		TangentFactor:     DefaultTangentFactor,
		TailFraction:      DefaultTailFraction,
		LogWeight:         DefaultLogWeight,
	}
}

// Validate reports the first out-of-range field wrapped in ErrBadSettings.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSettings, err)
	}

	return nil
}
