// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/soilcal/consolidation"
	"github.com/katalvlaran/soilcal/curve"
	"github.com/katalvlaran/soilcal/rootsearch"
)

// Hypoplastic defaults.
const (
	// MaxInfluenceInterval caps the log-offset of the flanking sample points,
	// as a fraction of the measured ln-stress range.
	MaxInfluenceInterval = 1.0 / 12

	// DefaultSafetyMargin keeps sample points this fraction inside the data.
	DefaultSafetyMargin = 0.01

	// DefaultInitialVoidFactor is e_i / e_c.
	DefaultInitialVoidFactor = 1.15
)

// Extended hypoplastic defaults.
const (
	DefaultSmoothWindow           = 5
	DefaultPeakWindow             = 5
	DefaultSameStiffnessTolerance = 0.1
	DefaultChi                    = 4.0
)

// Viscohypoplastic defaults.
const (
	DefaultLoadFraction         = 0.5
	DefaultReloadFraction       = 0.5
	DefaultExtremaWindow        = 3
	DefaultShapeFactor          = 0.95
	DefaultReferenceStrainRatio = 0.01
	DefaultReferencePressure    = 100.0
)

// DilatancySource selects the dilatancy term of the alpha relation.
type DilatancySource string

const (
	// DilatancyMeasured uses tan of the measured peak dilatancy angle.
	DilatancyMeasured DilatancySource = "measured"

	// DilatancyKarcher replaces it with KarcherDilatancy of the peak and
	// critical friction angles.
	DilatancyKarcher DilatancySource = "karcher"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// HypoplasticSettings tunes CalibrateHypoplastic.
type HypoplasticSettings struct {
	// Reference holds the two anchor vertical stresses; zero picks them from
	// the measured range.
	Reference curve.ReferenceStressPair `yaml:"reference"`

	InfluenceInterval float64         `yaml:"influence_interval" validate:"gt=0,lte=0.08333333333333333"`
	SafetyMargin      float64         `yaml:"safety_margin" validate:"gte=0,lt=0.5"`
	InitialVoidFactor float64         `yaml:"initial_void_factor" validate:"gte=1"`
	Dilatancy         DilatancySource `yaml:"dilatancy" validate:"oneof=measured karcher"`
}

// DefaultHypoplasticSettings returns the documented defaults.
func DefaultHypoplasticSettings() HypoplasticSettings {
	return HypoplasticSettings{
		InfluenceInterval: MaxInfluenceInterval,
		SafetyMargin:      DefaultSafetyMargin,
		InitialVoidFactor: DefaultInitialVoidFactor,
		Dilatancy:         DilatancyMeasured,
	}
}

// Validate checks every field against its documented range.
func (s HypoplasticSettings) Validate() error { return structValidate(s) }

// ExtendedSettings tunes CalibrateExtendedHypoplastic and AnalyzePath.
type ExtendedSettings struct {
	// StrainOffset drops this many leading samples (seating) from every path.
	StrainOffset int `yaml:"strain_offset" validate:"gte=0"`

	// SmoothWindow is the moving-average window before and after differentiation.
	SmoothWindow int `yaml:"smooth_window" validate:"gte=0"`

	// PeakWindow is the LocalExtrema half-width for the stiffness peak.
	PeakWindow int `yaml:"peak_window" validate:"gte=1"`

	// SameStiffnessTolerance is the relative gap under which the 0° and 180°
	// stiffness curves count as merged.
	SameStiffnessTolerance float64 `yaml:"same_stiffness_tolerance" validate:"gt=0,lt=1"`

	Chi float64 `yaml:"chi" validate:"gt=0"`
}

// DefaultExtendedSettings returns the documented defaults.
func DefaultExtendedSettings() ExtendedSettings {
	return ExtendedSettings{
		SmoothWindow:           DefaultSmoothWindow,
		PeakWindow:             DefaultPeakWindow,
		SameStiffnessTolerance: DefaultSameStiffnessTolerance,
		Chi:                    DefaultChi,
	}
}

// Validate checks every field against its documented range.
func (s ExtendedSettings) Validate() error { return structValidate(s) }

// ViscoSettings tunes CalibrateViscohypoplastic.
type ViscoSettings struct {
	// LoadFraction places point 1 between points 0 and 2 in ln-stress.
	LoadFraction float64 `yaml:"load_fraction" validate:"gt=0,lt=1"`

	// ReloadFraction places point 5 between points 4 and 6 in ln-stress.
	ReloadFraction float64 `yaml:"reload_fraction" validate:"gt=0,lt=1"`

	// ExtremaWindow is the LocalExtrema half-width for the turning points.
	ExtremaWindow int `yaml:"extrema_window" validate:"gte=1"`

	// ShapeFactor is beta_x.
	ShapeFactor float64 `yaml:"shape_factor" validate:"gt=0,lte=1"`

	// ReferenceStrainRatio scales the unloading strain in D_r.
	ReferenceStrainRatio float64 `yaml:"reference_strain_ratio" validate:"gt=0"`

	// ReferencePressure is the mean stress at which e100 is read, kN/m².
	ReferencePressure float64 `yaml:"reference_pressure" validate:"gt=0"`

	// CreepFit replaces the tail slope by a fitted a·ln(t+b)+c creep law.
	CreepFit bool `yaml:"creep_fit"`

	// Solver drives the creep-law fit. Empty candidates are generated from
	// the stage time scale.
	Solver rootsearch.Config `yaml:"solver"`

	Consolidation consolidation.Settings `yaml:"consolidation"`
}

// DefaultViscoSettings returns the documented defaults.
func DefaultViscoSettings() ViscoSettings {
	return ViscoSettings{
		LoadFraction:         DefaultLoadFraction,
		ReloadFraction:       DefaultReloadFraction,
		ExtremaWindow:        DefaultExtremaWindow,
		ShapeFactor:          DefaultShapeFactor,
		ReferenceStrainRatio: DefaultReferenceStrainRatio,
		ReferencePressure:    DefaultReferencePressure,
		Solver:               rootsearch.DefaultConfig(),
		Consolidation:        consolidation.DefaultSettings(),
	}
}

// Validate checks every field against its documented range. The solver is
// checked only when CreepFit is set and candidates were supplied.
func (s ViscoSettings) Validate() error {
	if err := structValidate(s); err != nil {
		return err
	}
	if s.CreepFit && len(s.Solver.CandidateInterval) > 0 {
		return s.Solver.Validate()
	}

	return nil
}

func structValidate(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("calibration: invalid settings: %w", err)
	}

	return nil
}

// validatable is implemented by every settings type.
type validatable interface{ Validate() error }

// MarshalSettings encodes resolved settings (Result.Settings) as YAML.
func MarshalSettings(s any) ([]byte, error) {
	return yaml.Marshal(s)
}

// UnmarshalSettings decodes YAML over *s and validates the outcome. Fields
// absent from data keep their prior value, so start from the defaults.
func UnmarshalSettings[S validatable](data []byte, s *S) error {
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("calibration: decode settings: %w", err)
	}

	return (*s).Validate()
}
