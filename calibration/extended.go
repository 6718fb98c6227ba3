// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"
	"math"

	"github.com/katalvlaran/soilcal/curve"
	"github.com/katalvlaran/soilcal/diag"
	"github.com/katalvlaran/soilcal/geometry"
	"github.com/katalvlaran/soilcal/numeric"
)

const (
	stepExtValidate = "extended/validate"
	stepExtPath     = "extended/path"
	stepExtCombine  = "extended/combine"
	stepExtBetaR    = "extended/beta_r"
)

// ShearPath is one triaxial stress path after a load reversal.
// Lengths in mm, stresses in kN/m².
type ShearPath struct {
	// AxialDisplacement is the axial compression of the sample.
	AxialDisplacement []float64

	// Height is the initial sample height.
	Height float64

	// StressDifference is σ1 − σ3.
	StressDifference []float64
}

// ExtendedInput bundles the three reversal paths, named by the angle between
// the previous and the new loading direction.
type ExtendedInput struct {
	Path0   ShearPath
	Path90  ShearPath
	Path180 ShearPath
}

// PathResponse is the processed stiffness response of one path. Strain,
// Modulus, HalfDeviator and Integrated share one grid.
type PathResponse struct {
	Strain  []float64
	Modulus []float64

	// HalfDeviator is the smoothed q/2 read on the modulus grid.
	HalfDeviator []float64

	// Integrated rebuilds q/2 from the smoothed modulus.
	Integrated []float64

	// PeakIndex indexes the stiffness peak; R and EMax are its strain and modulus.
	PeakIndex int
	R         float64
	EMax      float64
}

// AnalyzePath turns one path into a smoothed tangent-modulus curve:
// strain = AxialDisplacement/Height and q/2 = ΔStress/2, then smooth, differentiate,
// smooth again and integrate back. The stiffness peak is the first local
// maximum of the modulus within s.PeakWindow.
func AnalyzePath(p ShearPath, s ExtendedSettings) (PathResponse, error) {
	if err := s.Validate(); err != nil {
		return PathResponse{}, &Error{Kind: ValidityViolation, Step: stepExtPath, Quantity: "settings", Err: err}
	}

	return analyzePath(p, s, diag.Discard)
}

func analyzePath(p ShearPath, s ExtendedSettings, sink diag.Sink) (PathResponse, error) {
	n := len(p.AxialDisplacement)
	if n == 0 || n != len(p.StressDifference) {
		return PathResponse{}, failf(sink, InputIncomplete, stepExtPath, "path",
			"%d displacements vs %d stresses", n, len(p.StressDifference))
	}
	if !(p.Height > 0) {
		return PathResponse{}, failf(sink, NumericDegenerate, stepExtPath, "height", "sample height %g", p.Height)
	}
	if s.StrainOffset >= n {
		return PathResponse{}, failf(sink, InputIncomplete, stepExtPath, "path",
			"offset %d leaves nothing of %d samples", s.StrainOffset, n)
	}

	strain := make([]float64, 0, n-s.StrainOffset)
	half := make([]float64, 0, n-s.StrainOffset)
	for i := s.StrainOffset; i < n; i++ {
		strain = append(strain, p.AxialDisplacement[i]/p.Height)
		half = append(half, p.StressDifference[i]/2)
	}
	strain, half, err := numeric.SortAndMergeDuplicateX(strain, half)
	if err != nil {
		return PathResponse{}, fail(sink, InputIncomplete, stepExtPath, "strain", err)
	}

	w := s.SmoothWindow
	xs, err := numeric.Smooth(strain, w)
	if err != nil {
		return PathResponse{}, fail(sink, InputIncomplete, stepExtPath, "strain", err)
	}
	qs, err := numeric.Smooth(half, w)
	if err != nil {
		return PathResponse{}, fail(sink, InputIncomplete, stepExtPath, "q/2", err)
	}
	xm, dq, err := numeric.Differentiate(xs, qs)
	if err != nil {
		return PathResponse{}, fail(sink, NumericDegenerate, stepExtPath, "modulus", err)
	}
	if len(dq) <= w {
		return PathResponse{}, failf(sink, InputIncomplete, stepExtPath, "path",
			"%d modulus samples for smoothing window %d", len(dq), w)
	}
	grid, err := numeric.Smooth(xm, w)
	if err != nil {
		return PathResponse{}, fail(sink, InputIncomplete, stepExtPath, "modulus", err)
	}
	modulus, err := numeric.Smooth(dq, w)
	if err != nil {
		return PathResponse{}, fail(sink, InputIncomplete, stepExtPath, "modulus", err)
	}

	halfOnGrid := make([]float64, len(grid))
	for i, x := range grid {
		if halfOnGrid[i], err = numeric.Interpolate(x, xs, qs); err != nil {
			return PathResponse{}, fail(sink, NumericDegenerate, stepExtPath, "q/2", err)
		}
	}
	_, integrated, err := numeric.IntegrateEulerForward(grid[0], halfOnGrid[0], numeric.Steps(grid), modulus[:len(grid)-1])
	if err != nil {
		return PathResponse{}, fail(sink, NumericDegenerate, stepExtPath, "q/2", err)
	}

	peaks, err := numeric.LocalExtrema(modulus, s.PeakWindow, true)
	if err != nil || len(peaks) == 0 {
		return PathResponse{}, failf(sink, ValidityViolation, stepExtPath, "E_max",
			"no stiffness peak within window %d (%v)", s.PeakWindow, err)
	}
	k := peaks[0]

	return PathResponse{
		Strain:       grid,
		Modulus:      modulus,
		HalfDeviator: halfOnGrid,
		Integrated:   integrated,
		PeakIndex:    k,
		R:            grid[k],
		EMax:         modulus[k],
	}, nil
}

// CalibrateExtendedHypoplastic derives [m_T, m_R, R_max, beta_r, chi].
//
// Stages:
//  1. AnalyzePath on the 0°, 90° and 180° paths.
//  2. R_max = R(180°), m_R = E_max(180°)/E_max(0°), m_T = E_max(90°)/E_max(0°),
//     inverted with a warning when below one.
//  3. eps_som: on the union strain grid, the first strain at or after the
//     later of the 0° and 180° peaks where both stiffness curves agree
//     within SameStiffnessTolerance.
//  4. beta_r from R_max, eps_som and chi.
func CalibrateExtendedHypoplastic(in ExtendedInput, s ExtendedSettings, opts ...Option) (Result[ExtendedHypoplasticParameters, ExtendedSettings], error) {
	var zero Result[ExtendedHypoplasticParameters, ExtendedSettings]
	r := newRun(opts)

	// Stage 1 (Paths).
	if err := s.Validate(); err != nil {
		return zero, fail(r.sink, ValidityViolation, stepExtValidate, "settings", err)
	}
	var resp [3]PathResponse
	for i, p := range []ShearPath{in.Path0, in.Path90, in.Path180} {
		var err error
		if resp[i], err = analyzePath(p, s, r.sink); err != nil {
			return zero, err
		}
	}
	r0, r90, r180 := resp[0], resp[1], resp[2]

	// Stage 2 (Stiffness ratios).
	if !(r0.EMax > 0) {
		return zero, failf(r.sink, NumericDegenerate, stepExtCombine, "E_max(0°)", "peak modulus %g", r0.EMax)
	}
	rMax := r180.R
	if !(rMax > 0) {
		return zero, failf(r.sink, NumericDegenerate, stepExtCombine, "R_max", "peak strain %g", rMax)
	}
	mR := r180.EMax / r0.EMax
	mT := r90.EMax / r0.EMax
	if !(mR > 0) || !(mT > 0) {
		return zero, failf(r.sink, ValidityViolation, stepExtCombine, "m_R/m_T",
			"stiffness ratios %g, %g outside (0, ∞)", mR, mT)
	}
	if mT < 1 {
		diag.Warnf(r.sink, "%s: m_T = %g below one, using its inverse", stepExtCombine, mT)
		mT = 1 / mT
	}

	// Stage 3 (eps_som).
	epsSom, err := mergedStiffnessStrain(r0, r180, s.SameStiffnessTolerance, r.sink)
	if err != nil {
		return zero, err
	}

	// Stage 4 (beta_r).
	betaR, err := betaR(rMax, epsSom, s.Chi)
	if err != nil {
		return zero, fail(r.sink, ValidityViolation, stepExtBetaR, "beta_r", err)
	}

	return Result[ExtendedHypoplasticParameters, ExtendedSettings]{
		Parameters: ExtendedHypoplasticParameters{
			MT:    mT,
			MR:    mR,
			RMax:  rMax,
			BetaR: betaR,
			Chi:   s.Chi,
		},
		Settings:    s,
		Diagnostics: r.rec.Entries(),
	}, nil
}

// mergedStiffnessStrain returns the first union-grid strain at or after the
// joint peak where |E180 − E0|/E0 < tol.
func mergedStiffnessStrain(r0, r180 PathResponse, tol float64, sink diag.Sink) (float64, error) {
	a, err := curve.New(r0.Strain, r0.Modulus)
	if err != nil {
		return 0, fail(sink, InputIncomplete, stepExtCombine, "E(0°)", err)
	}
	b, err := curve.New(r180.Strain, r180.Modulus)
	if err != nil {
		return 0, fail(sink, InputIncomplete, stepExtCombine, "E(180°)", err)
	}
	grid, e0, e180, err := geometry.ResampleOnUnion(a, b)
	if err != nil {
		return 0, fail(sink, ValidityViolation, stepExtCombine, "eps_som", err)
	}

	joint := math.Max(r0.R, r180.R)
	for i, x := range grid {
		if x < joint || e0[i] == 0 {
			continue
		}
		if math.Abs(e180[i]-e0[i])/math.Abs(e0[i]) < tol {
			return x, nil
		}
	}

	return 0, failf(sink, ValidityViolation, stepExtCombine, "eps_som",
		"0° and 180° stiffness never within %g after strain %g", tol, joint)
}

// betaR solves the intergranular strain evolution exponent so that the
// stiffness degradation ρ^chi reaches 0.9 of its range at eps_som:
//
//	ρs = 0.9^(1/chi),  x = eps_som/R_max − 1,  beta_r = 2·ln(1/(1−ρs))/x − 1.
//
// beta_r must be positive.
func betaR(rMax, epsSom, chi float64) (float64, error) {
	x := epsSom/rMax - 1
	if !(x > 0) {
		return 0, fmt.Errorf("eps_som %g not beyond R_max %g", epsSom, rMax)
	}
	rhoS := math.Pow(0.9, 1/chi)
	b := 2*math.Log(1/(1-rhoS))/x - 1
	if !(b > 0) {
		return 0, fmt.Errorf("beta_r %g not positive (eps_som %g, R_max %g)", b, epsSom, rMax)
	}

	return b, nil
}
