// SPDX-License-Identifier: MIT

package calibration

import (
	"math"

	"github.com/katalvlaran/soilcal/geometry"
)

const stepFriction = "friction"

// DefaultAngleStep is the angle resolution of FrictionAngleFromCircles, degrees.
const DefaultAngleStep = 0.01

// FrictionAngleFromCircles fits one Mohr-Coulomb envelope τ = c + σ·tan φ
// through the failure circles (sigma3[i], sigma1[i]) of several triaxial
// tests with a known cohesion c, and returns φ in degrees with the squared
// radius misfit. A non-positive stepDeg means DefaultAngleStep.
func FrictionAngleFromCircles(sigma3, sigma1 []float64, cohesion, stepDeg float64, opts ...Option) (phiDeg, misfit float64, err error) {
	r := newRun(opts)
	if len(sigma3) == 0 || len(sigma3) != len(sigma1) {
		return 0, 0, failf(r.sink, InputIncomplete, stepFriction, "circles",
			"%d minor vs %d major principal stresses", len(sigma3), len(sigma1))
	}
	if !(cohesion >= 0) {
		return 0, 0, failf(r.sink, ValidityViolation, stepFriction, "cohesion", "cohesion %g", cohesion)
	}
	if !(stepDeg > 0) {
		stepDeg = DefaultAngleStep
	}

	misfit, phiDeg, err = geometry.BestTangentAngle(sigma3, sigma1, cohesion, stepDeg)
	if err != nil {
		return 0, 0, fail(r.sink, ValidityViolation, stepFriction, "circles", err)
	}
	if !(phiDeg > 0) || math.IsNaN(misfit) {
		return 0, 0, failf(r.sink, ValidityViolation, stepFriction, "phi", "no envelope above 0° (best %g°)", phiDeg)
	}

	return phiDeg, misfit, nil
}
