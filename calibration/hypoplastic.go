// SPDX-License-Identifier: MIT

package calibration

import (
	"fmt"
	"math"

	"github.com/katalvlaran/soilcal/curve"
	"github.com/katalvlaran/soilcal/diag"
	"github.com/katalvlaran/soilcal/numeric"
)

// Step names reported in *Error.Step.
const (
	stepHypoValidate    = "hypoplastic/validate"
	stepHypoSample      = "hypoplastic/sample"
	stepHypoCompression = "hypoplastic/compression"
	stepHypoAlpha       = "hypoplastic/alpha"
	stepHypoBeta        = "hypoplastic/beta"
)

// kPaPerMPa converts h_s to the reported unit.
const kPaPerMPa = 1000.0

// HypoplasticInput bundles one sand's oedometer and triaxial records.
// Angles are in degrees, stresses in kN/m².
type HypoplasticInput struct {
	CriticalFrictionAngle float64
	MinVoidRatio          float64
	MaxVoidRatio          float64

	// Loose and Dense are vertical stress (X) against void ratio (Y).
	Loose curve.Curve
	Dense curve.Curve

	PeakFrictionLoose float64
	PeakFrictionDense float64

	// Peak state of the dense drained triaxial test.
	PeakDilatancy  float64
	PeakMeanStress float64
	PeakVoidRatio  float64
}

// samplePoints are the six sampled stresses A, C, B, D, F, E (ascending)
// with the void ratio of both curves at each.
type samplePoints struct {
	p     [6]float64
	loose [6]float64
	dense [6]float64
	delta float64 // ln-stress half-width around each anchor
}

const (
	anchorC = 1
	anchorF = 4
)

// CalibrateHypoplastic derives [phi_c, h_s, n, e_d, e_c, e_i, alpha, beta].
//
// Stages:
//  1. Validate inputs and settings.
//  2. Sample both compression curves at six mean stresses: the anchors C and F
//     from the reference pair and their ln-stress neighbours A, B and D, E.
//  3. n and h_s from the local compression indices of the loose curve at C and F.
//     n outside (0, 1] is a ValidityViolation.
//  4. e_d, e_c, e_i from the limiting void ratios.
//  5. alpha from the dense peak state.
//  6. beta from loose/dense stiffness ratios at C and F.
//
// Vertical stresses become mean stresses through K0 = 1 − sin φc.
func CalibrateHypoplastic(in HypoplasticInput, s HypoplasticSettings, opts ...Option) (Result[HypoplasticParameters, HypoplasticSettings], error) {
	var zero Result[HypoplasticParameters, HypoplasticSettings]
	r := newRun(opts)

	// Stage 1 (Validate).
	if err := s.Validate(); err != nil {
		return zero, fail(r.sink, ValidityViolation, stepHypoValidate, "settings", err)
	}
	if err := validateHypoplasticInput(in, r.sink); err != nil {
		return zero, err
	}
	phiC := deg2rad(in.CriticalFrictionAngle)
	k0 := 1 - math.Sin(phiC)
	toMean := (1 + 2*k0) / 3

	// Stage 2 (Sample).
	sp, ref, err := sampleCompression(in.Loose, in.Dense, toMean, s, r)
	if err != nil {
		return zero, err
	}
	s.Reference = ref

	// Stage 3 (Compression law).
	ccLoose := compressionIndices(sp.loose, sp.delta)
	ccDense := compressionIndices(sp.dense, sp.delta)
	eC, eF := sp.loose[anchorC], sp.loose[anchorF]
	pC, pF := sp.p[anchorC], sp.p[anchorF]
	n := math.Log(eC*ccLoose[1]/(eF*ccLoose[0])) / math.Log(pF/pC)
	if !(n > 0) || !numeric.RangeCheck([]float64{n}, 0, 1) {
		return zero, failf(r.sink, ValidityViolation, stepHypoCompression, "n", "exponent %g not in (0, 1]", n)
	}
	hs := 3 * pC * math.Pow(n*eC/ccLoose[0], 1/n)
	if !(hs > 0) || math.IsInf(hs, 0) {
		return zero, failf(r.sink, NumericDegenerate, stepHypoCompression, "h_s", "granular hardness %g", hs)
	}

	// Stage 4 (Limit void ratios).
	ed0, ec0 := in.MinVoidRatio, in.MaxVoidRatio
	ei0 := s.InitialVoidFactor * ec0
	limits := func(p float64) (float64, float64) {
		f := math.Exp(-math.Pow(3*p/hs, n))

		return ed0 * f, ec0 * f
	}

	// Stage 5 (alpha).
	phiP := deg2rad(in.PeakFrictionDense)
	tanNu := math.Tan(deg2rad(in.PeakDilatancy))
	if s.Dilatancy == DilatancyKarcher {
		tanNu = KarcherDilatancy(phiP, phiC)
	}
	edP, ecP := limits(in.PeakMeanStress)
	rePeak := (in.PeakVoidRatio - edP) / (ecP - edP)
	if !(rePeak > 0) || rePeak == 1 {
		return zero, failf(r.sink, ValidityViolation, stepHypoAlpha, "r_e",
			"peak void ratio %g gives relative density ratio %g (e_d=%g, e_c=%g)", in.PeakVoidRatio, rePeak, edP, ecP)
	}
	arg := alphaArgument(phiP, phiC, tanNu)
	if !(arg > 0) {
		return zero, failf(r.sink, NumericDegenerate, stepHypoAlpha, "alpha", "log argument %g", arg)
	}
	alpha := math.Log(arg) / math.Log(rePeak)

	// Stage 6 (beta).
	rPhi := math.Sin(deg2rad(in.PeakFrictionLoose)) / math.Sin(phiP)
	var betas [2]float64
	for k, i := range []int{anchorC, anchorF} {
		ed, ec := limits(sp.p[i])
		eL, eD := sp.loose[i], sp.dense[i]
		reL := (eL - ed) / (ec - ed)
		reD := (eD - ed) / (ec - ed)
		if !(reL > 0) || !(reD > 0) {
			return zero, failf(r.sink, ValidityViolation, stepHypoBeta, "r_e",
				"non-positive ratio at p=%g (loose %g, dense %g)", sp.p[i], reL, reD)
		}
		if !(eL > eD) {
			return zero, failf(r.sink, ValidityViolation, stepHypoBeta, "void ratio",
				"loose %g not above dense %g at p=%g", eL, eD, sp.p[i])
		}
		rS := (ccLoose[k] / ccDense[k]) * (1 + eD) / (1 + eL)
		rAlpha := math.Pow(reD/reL, alpha)
		betas[k] = math.Log(rS*rPhi/rAlpha) / math.Log(eL/eD)
	}
	beta := numeric.Mean(betas[:])
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return zero, failf(r.sink, NumericDegenerate, stepHypoBeta, "beta", "beta %g", beta)
	}

	return Result[HypoplasticParameters, HypoplasticSettings]{
		Parameters: HypoplasticParameters{
			PhiC:  phiC,
			Hs:    hs / kPaPerMPa,
			N:     n,
			Ed:    ed0,
			Ec:    ec0,
			Ei:    ei0,
			Alpha: alpha,
			Beta:  beta,
		},
		Settings:    s,
		Diagnostics: r.rec.Entries(),
	}, nil
}

func validateHypoplasticInput(in HypoplasticInput, sink diag.Sink) error {
	curves := []struct {
		name string
		c    curve.Curve
	}{{"loose curve", in.Loose}, {"dense curve", in.Dense}}
	for _, nc := range curves {
		if err := nc.c.Validate(); err != nil {
			return fail(sink, InputIncomplete, stepHypoValidate, nc.name, err)
		}
		if nc.c.Len() < 2 {
			return failf(sink, InputIncomplete, stepHypoValidate, nc.name, "%d samples", nc.c.Len())
		}
	}

	angles := []struct {
		name string
		deg  float64
	}{
		{"phi_c", in.CriticalFrictionAngle},
		{"phi_p loose", in.PeakFrictionLoose},
		{"phi_p dense", in.PeakFrictionDense},
		{"dilatancy", in.PeakDilatancy},
	}
	for _, a := range angles {
		if !(a.deg > 0 && a.deg < 90) {
			return failf(sink, ValidityViolation, stepHypoValidate, a.name, "angle %g° not in (0°, 90°)", a.deg)
		}
	}
	if !(in.PeakMeanStress > 0) {
		return failf(sink, ValidityViolation, stepHypoValidate, "peak p", "mean stress %g", in.PeakMeanStress)
	}
	if !(in.MinVoidRatio > 0 && in.MinVoidRatio < in.MaxVoidRatio) {
		return failf(sink, ValidityViolation, stepHypoValidate, "e_min/e_max",
			"need 0 < e_min (%g) < e_max (%g)", in.MinVoidRatio, in.MaxVoidRatio)
	}

	return nil
}

// compressionLine returns ln(mean stress) and void ratio of c, sorted and
// de-duplicated.
func compressionLine(c curve.Curve, toMean float64) ([]float64, []float64, error) {
	x, e, err := numeric.SortAndMergeDuplicateX(c.X, c.Y)
	if err != nil {
		return nil, nil, err
	}
	if x[0] <= 0 {
		return nil, nil, fmt.Errorf("non-positive stress %g", x[0])
	}
	lnP := make([]float64, len(x))
	for i, v := range x {
		lnP[i] = math.Log(v * toMean)
	}

	return lnP, e, nil
}

// sampleCompression resolves the reference pair, places the six sample
// stresses and reads both curves there.
func sampleCompression(loose, dense curve.Curve, toMean float64, s HypoplasticSettings, r run) (samplePoints, curve.ReferenceStressPair, error) {
	var sp samplePoints
	lnL, eL, err := compressionLine(loose, toMean)
	if err != nil {
		return sp, s.Reference, fail(r.sink, ValidityViolation, stepHypoSample, "loose curve", err)
	}
	lnD, eD, err := compressionLine(dense, toMean)
	if err != nil {
		return sp, s.Reference, fail(r.sink, ValidityViolation, stepHypoSample, "dense curve", err)
	}

	// Common vertical stress range of both curves.
	lo := math.Exp(math.Max(lnL[0], lnD[0])) / toMean
	hi := math.Exp(math.Min(lnL[len(lnL)-1], lnD[len(lnD)-1])) / toMean
	if !(lo < hi) {
		return sp, s.Reference, failf(r.sink, ValidityViolation, stepHypoSample, "stress range",
			"curves share no stress range")
	}

	ref := s.Reference
	if ref.IsZero() {
		lower := lo * math.Pow(hi/lo, 1.0/3)
		upper := lo * math.Pow(hi/lo, 2.0/3)
		ref.Lower = numeric.NextNiceValue(lower, lower, true)
		ref.Upper = numeric.NextNiceValue(upper, upper, false)
		// Narrow ranges can snap both points onto the same grid value.
		if !(ref.Lower < ref.Upper) {
			ref.Lower, ref.Upper = lower, upper
		}
		diag.Warnf(r.sink, "%s: reference stresses defaulted to %g and %g", stepHypoSample, ref.Lower, ref.Upper)
	}
	if !(ref.Lower > 0 && ref.Lower < ref.Upper) {
		return sp, ref, failf(r.sink, ValidityViolation, stepHypoSample, "reference stress",
			"lower %g not below upper %g", ref.Lower, ref.Upper)
	}

	m := s.SafetyMargin
	delta := s.InfluenceInterval * math.Log(hi/lo)
	delta = math.Min(delta, math.Log(ref.Lower/(lo*(1+m))))
	delta = math.Min(delta, math.Log(hi*(1-m)/ref.Upper))
	if !(delta > 0) {
		return sp, ref, failf(r.sink, ValidityViolation, stepHypoSample, "reference stress",
			"[%g, %g] leaves no room inside measured range [%g, %g]", ref.Lower, ref.Upper, lo, hi)
	}
	sp.delta = delta

	sigma := [6]float64{
		ref.Lower * math.Exp(-delta), ref.Lower, ref.Lower * math.Exp(delta),
		ref.Upper * math.Exp(-delta), ref.Upper, ref.Upper * math.Exp(delta),
	}
	if !numeric.IsStrictlyIncreasing(sigma[:]) {
		return sp, ref, failf(r.sink, ValidityViolation, stepHypoSample, "stress",
			"sample stresses %v not increasing", sigma)
	}
	for i, v := range sigma {
		sp.p[i] = v * toMean
		lnp := math.Log(sp.p[i])
		if sp.loose[i], err = numeric.Interpolate(lnp, lnL, eL); err != nil {
			return sp, ref, fail(r.sink, ValidityViolation, stepHypoSample, "loose curve", err)
		}
		if sp.dense[i], err = numeric.Interpolate(lnp, lnD, eD); err != nil {
			return sp, ref, fail(r.sink, ValidityViolation, stepHypoSample, "dense curve", err)
		}
	}
	if !numeric.IsStrictlyDecreasing(sp.loose[:]) {
		return sp, ref, failf(r.sink, ValidityViolation, stepHypoSample, "void ratio",
			"loose void ratio %v does not decrease with stress", sp.loose)
	}
	if !numeric.IsStrictlyDecreasing(sp.dense[:]) {
		return sp, ref, failf(r.sink, ValidityViolation, stepHypoSample, "void ratio",
			"dense void ratio %v does not decrease with stress", sp.dense)
	}

	return sp, ref, nil
}

// compressionIndices returns C_c = Δe/Δln p around C (from A, B) and F (from D, E).
func compressionIndices(e [6]float64, delta float64) [2]float64 {
	return [2]float64{
		(e[0] - e[2]) / (2 * delta),
		(e[3] - e[5]) / (2 * delta),
	}
}

// alphaArgument is the bracketed term of the peak-state alpha relation
//
//	6[(2+Kp)² + a²Kp(Kp−1−tan ν)] / [a(2+Kp)(5Kp−2)√(4+2(1+tan ν)²)]
//
// with Kp = (1+sin φp)/(1−sin φp) and a = √3(3−sin φc)/(2√2 sin φc).
func alphaArgument(phiP, phiC, tanNu float64) float64 {
	kp := (1 + math.Sin(phiP)) / (1 - math.Sin(phiP))
	a := criticalStateA(phiC)
	num := 6 * ((2+kp)*(2+kp) + a*a*kp*(kp-1-tanNu))
	den := a * (2 + kp) * (5*kp - 2) * math.Sqrt(4+2*(1+tanNu)*(1+tanNu))

	return num / den
}

// criticalStateA is the hypoplastic constant a = √3(3−sin φc)/(2√2 sin φc).
func criticalStateA(phiC float64) float64 {
	s := math.Sin(phiC)

	return math.Sqrt(3) * (3 - s) / (2 * math.Sqrt2 * s)
}

// KarcherDilatancy estimates tan ν at peak from the peak and critical
// friction angles (radians) through Rowe's stress-dilatancy relation
//
//	sin ν = (sin φp − sin φc) / (1 − sin φp·sin φc).
//
// It stands in for a measured dilatancy angle when
// HypoplasticSettings.Dilatancy is DilatancyKarcher. Returns 0 for φp ≤ φc.
func KarcherDilatancy(phiPeak, phiCritical float64) float64 {
	sp, sc := math.Sin(phiPeak), math.Sin(phiCritical)
	if sp <= sc {
		return 0
	}
	sinNu := (sp - sc) / (1 - sp*sc)

	return sinNu / math.Sqrt(1-sinNu*sinNu)
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
