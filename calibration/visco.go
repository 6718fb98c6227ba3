// SPDX-License-Identifier: MIT

package calibration

import (
	"errors"
	"math"

	"github.com/katalvlaran/soilcal/consolidation"
	"github.com/katalvlaran/soilcal/diag"
	"github.com/katalvlaran/soilcal/numeric"
	"github.com/katalvlaran/soilcal/rootsearch"
)

const (
	stepViscoValidate = "visco/validate"
	stepViscoCreep    = "visco/creep"
	stepViscoPoints   = "visco/points"
	stepViscoSlopes   = "visco/slopes"
	stepViscoRate     = "visco/rate"
	stepViscoState    = "visco/state"
)

// Characteristic point slots on the CRS curve.
const (
	ptStart = iota
	ptLoad
	ptUnload
	ptReload
	ptRejoin
	ptVirgin
	ptEnd
	numPoints
)

// minCRSSamples is the shortest CRS record holding all seven points.
const minCRSSamples = numPoints

// creepCandidates is how many NiceStep multiples seed the creep-law fit.
const creepCandidates = 20

// lambdaMismatch is the relative gap between loading and reloading lambda
// above which a warning is raised.
const lambdaMismatch = 0.5

// CRSTest is a constant-rate-of-strain oedometer record with one
// unload/reload loop. Stress is vertical, kN/m²; height in mm; rate in mm/s.
type CRSTest struct {
	Stress        []float64
	VoidRatio     []float64
	InitialHeight float64
	Rate          float64
}

// CRLStage is one constant-load stage: void ratio over time (s) after the
// vertical load was raised from LoadFrom to LoadTo.
type CRLStage struct {
	Time      []float64
	VoidRatio []float64
	LoadFrom  float64
	LoadTo    float64
}

// ViscoInput bundles one clay sample's CRS and CRL records.
// CriticalFrictionAngle is in degrees.
type ViscoInput struct {
	CriticalFrictionAngle float64
	CRS                   CRSTest
	Stages                []CRLStage
}

// CharacteristicIndices locates the seven characteristic points of a CRS
// stress record:
//
//	0 start, 2 unload turning point (single interior maximum),
//	3 reload turning point (single interior minimum), 4 first sample after 3
//	back at the stress of 2, 6 end; 1 and 5 sit at LoadFraction and
//	ReloadFraction of the ln-stress span of 0–2 and 4–6.
//
// Anything but exactly one interior maximum before exactly one interior
// minimum is a ValidityViolation.
func CharacteristicIndices(stress []float64, s ViscoSettings) ([numPoints]int, error) {
	if err := s.Validate(); err != nil {
		return [numPoints]int{}, &Error{Kind: ValidityViolation, Step: stepViscoPoints, Quantity: "settings", Err: err}
	}

	return characteristicIndices(stress, s, diag.Discard)
}

func characteristicIndices(stress []float64, s ViscoSettings, sink diag.Sink) ([numPoints]int, error) {
	var idx [numPoints]int
	n := len(stress)
	if n < minCRSSamples {
		return idx, failf(sink, InputIncomplete, stepViscoPoints, "CRS", "%d samples, need >= %d", n, minCRSSamples)
	}
	if !numeric.RangeCheck(stress, math.SmallestNonzeroFloat64, math.Inf(1)) {
		return idx, failf(sink, ValidityViolation, stepViscoPoints, "stress", "non-positive stress in CRS record")
	}

	interior := func(wantMax bool) ([]int, error) {
		all, err := numeric.LocalExtrema(stress, s.ExtremaWindow, wantMax)
		if err != nil {
			return nil, err
		}
		var out []int
		for _, i := range all {
			if i > 0 && i < n-1 {
				out = append(out, i)
			}
		}

		return out, nil
	}
	maxima, err := interior(true)
	if err != nil {
		return idx, fail(sink, InputIncomplete, stepViscoPoints, "extrema", err)
	}
	minima, err := interior(false)
	if err != nil {
		return idx, fail(sink, InputIncomplete, stepViscoPoints, "extrema", err)
	}
	if len(maxima) != 1 || len(minima) != 1 || maxima[0] >= minima[0] {
		return idx, failf(sink, ValidityViolation, stepViscoPoints, "extrema",
			"need one unload point before one reload point, found maxima %v and minima %v", maxima, minima)
	}

	idx[ptStart], idx[ptUnload], idx[ptReload], idx[ptEnd] = 0, maxima[0], minima[0], n-1
	idx[ptRejoin] = -1
	for i := idx[ptReload] + 1; i < n; i++ {
		if stress[i] >= stress[idx[ptUnload]] {
			idx[ptRejoin] = i
			break
		}
	}
	if idx[ptRejoin] < 0 {
		return idx, failf(sink, ValidityViolation, stepViscoPoints, "reload",
			"reloading never returns to %g", stress[idx[ptUnload]])
	}
	idx[ptLoad] = logPlace(stress, idx[ptStart], idx[ptUnload], s.LoadFraction)
	idx[ptVirgin] = logPlace(stress, idx[ptRejoin], idx[ptEnd], s.ReloadFraction)

	for k := 1; k < numPoints; k++ {
		if idx[k] <= idx[k-1] {
			return idx, failf(sink, ValidityViolation, stepViscoPoints, "order",
				"characteristic indices %v not strictly increasing", idx)
		}
	}

	return idx, nil
}

// logPlace returns the first index in (a, b) whose stress reaches the given
// fraction of the ln-stress span from a to b, or b−1 if none does.
func logPlace(stress []float64, a, b int, fraction float64) int {
	la, lb := math.Log(stress[a]), math.Log(stress[b])
	target := la + fraction*(lb-la)
	for i := a + 1; i < b; i++ {
		if math.Log(stress[i]) >= target {
			return i
		}
	}

	return b - 1
}

// CalibrateViscohypoplastic derives [e100, lambda, kappa, beta_x, I_v, D_r, OCR].
//
// Stages:
//  1. Validate inputs and settings; at least two CRL stages are required.
//  2. I_v = c_alpha/C_c averaged over the later half of the CRL stages.
//  3. Seven characteristic points on the CRS curve.
//  4. lambda from the virgin reload branch (5–6), kappa from the unloading
//     branch (2–3) reduced by the K0 stress ratio.
//  5. D_r from the CRS strain rate and the unloading strain.
//  6. e100, the equivalent pressures and OCR at point 3.
//
// Vertical stresses become mean stresses through K0 = 1 − sin φc.
func CalibrateViscohypoplastic(in ViscoInput, s ViscoSettings, opts ...Option) (Result[ViscohypoplasticParameters, ViscoSettings], error) {
	var zero Result[ViscohypoplasticParameters, ViscoSettings]
	r := newRun(opts)

	// Stage 1 (Validate).
	if err := s.Validate(); err != nil {
		return zero, fail(r.sink, ValidityViolation, stepViscoValidate, "settings", err)
	}
	crs := in.CRS
	if len(crs.Stress) == 0 || len(crs.Stress) != len(crs.VoidRatio) {
		return zero, failf(r.sink, InputIncomplete, stepViscoValidate, "CRS",
			"%d stresses vs %d void ratios", len(crs.Stress), len(crs.VoidRatio))
	}
	if len(in.Stages) < 2 {
		return zero, failf(r.sink, InputIncomplete, stepViscoValidate, "CRL", "%d stages, need >= 2", len(in.Stages))
	}
	if !(crs.InitialHeight > 0) || !(crs.Rate > 0) {
		return zero, failf(r.sink, NumericDegenerate, stepViscoValidate, "CRS",
			"height %g and rate %g must be positive", crs.InitialHeight, crs.Rate)
	}
	if !(in.CriticalFrictionAngle > 0 && in.CriticalFrictionAngle < 90) {
		return zero, failf(r.sink, ValidityViolation, stepViscoValidate, "phi_c",
			"angle %g° not in (0°, 90°)", in.CriticalFrictionAngle)
	}
	phiC := deg2rad(in.CriticalFrictionAngle)
	k0 := 1 - math.Sin(phiC)
	toMean := (1 + 2*k0) / 3

	// Stage 2 (Creep).
	later := in.Stages[len(in.Stages)/2:]
	ivs := make([]float64, 0, len(later))
	for _, st := range later {
		iv, err := viscosityIndex(st, s, r.sink)
		if err != nil {
			return zero, err
		}
		ivs = append(ivs, iv)
	}
	iv := numeric.Mean(ivs)

	// Stage 3 (Points).
	idx, err := characteristicIndices(crs.Stress, s, r.sink)
	if err != nil {
		return zero, err
	}
	p := func(k int) float64 { return crs.Stress[idx[k]] * toMean }
	e := func(k int) float64 { return crs.VoidRatio[idx[k]] }

	// Stage 4 (Slopes).
	if !(p(ptEnd) > p(ptVirgin)) || !(p(ptUnload) > p(ptReload)) {
		return zero, failf(r.sink, NumericDegenerate, stepViscoSlopes, "mean stress",
			"collapsed stress span at indices %v", idx)
	}
	lambda := math.Log((1+e(ptVirgin))/(1+e(ptEnd))) / math.Log(p(ptEnd)/p(ptVirgin))
	if !(lambda > 0) {
		return zero, failf(r.sink, ValidityViolation, stepViscoSlopes, "lambda", "compression slope %g", lambda)
	}
	if p(ptUnload) > p(ptLoad) {
		loadLambda := math.Log((1+e(ptLoad))/(1+e(ptUnload))) / math.Log(p(ptUnload)/p(ptLoad))
		if math.Abs(loadLambda-lambda) > lambdaMismatch*lambda {
			diag.Warnf(r.sink, "%s: loading branch lambda %g differs from reloading lambda %g", stepViscoSlopes, loadLambda, lambda)
		}
	}
	unloadStrain := math.Log((1 + e(ptReload)) / (1 + e(ptUnload)))
	kappa0 := unloadStrain / math.Log(p(ptUnload)/p(ptReload))
	if !(kappa0 > 0) {
		return zero, failf(r.sink, ValidityViolation, stepViscoSlopes, "kappa", "swelling slope %g", kappa0)
	}
	eta0 := 3 * (1 - k0) / (1 + 2*k0)
	a := criticalStateA(phiC)
	kappa := kappa0 / (1 + (eta0/a)*(eta0/a))

	// Stage 5 (Rate).
	d := crs.Rate / crs.InitialHeight
	dr := d * unloadStrain / (unloadStrain + s.ReferenceStrainRatio)
	if !(dr > 0) || math.IsInf(dr, 0) {
		return zero, failf(r.sink, NumericDegenerate, stepViscoRate, "D_r", "reference creep rate %g", dr)
	}

	// Stage 6 (State).
	pRef := s.ReferencePressure
	onePlusE100 := (1 + e(ptVirgin)) * math.Pow(p(ptVirgin)/pRef, lambda)
	pe := pRef * math.Pow(onePlusE100/(1+e(ptReload)), 1/lambda)
	m := 6 * math.Sin(phiC) / (3 - math.Sin(phiC))
	ratio := eta0 / (s.ShapeFactor * m)
	pePlus := p(ptReload) * (1 + ratio*ratio)
	ocr := pe / pePlus
	if !(ocr > 0) || math.IsInf(ocr, 0) {
		return zero, failf(r.sink, NumericDegenerate, stepViscoState, "OCR", "pe %g over pe+ %g", pe, pePlus)
	}

	return Result[ViscohypoplasticParameters, ViscoSettings]{
		Parameters: ViscohypoplasticParameters{
			E100:   onePlusE100 - 1,
			Lambda: lambda,
			Kappa:  kappa,
			BetaX:  s.ShapeFactor,
			Iv:     iv,
			Dr:     dr,
			OCR:    ocr,
		},
		Settings:    s,
		Diagnostics: r.rec.Entries(),
	}, nil
}

// viscosityIndex returns c_alpha/C_c of one CRL stage, with c_alpha the
// negative mean slope of e over ln t after the end of primary consolidation.
func viscosityIndex(st CRLStage, s ViscoSettings, sink diag.Sink) (float64, error) {
	n := len(st.Time)
	if n < 4 || n != len(st.VoidRatio) {
		return 0, failf(sink, InputIncomplete, stepViscoCreep, "CRL stage",
			"%d times vs %d void ratios, need >= 4", n, len(st.VoidRatio))
	}
	if !(st.LoadFrom > 0 && st.LoadTo > st.LoadFrom) {
		return 0, failf(sink, ValidityViolation, stepViscoCreep, "load step",
			"load %g -> %g is not an increase", st.LoadFrom, st.LoadTo)
	}
	cc := (st.VoidRatio[0] - st.VoidRatio[n-1]) / math.Log(st.LoadTo/st.LoadFrom)
	if !(cc > 0) {
		return 0, failf(sink, NumericDegenerate, stepViscoCreep, "C_c", "compression index %g", cc)
	}

	settlement := make([]float64, n)
	for i, e := range st.VoidRatio {
		settlement[i] = st.VoidRatio[0] - e
	}
	start := -1
	pts, err := consolidation.TangentPoints(st.Time, settlement, s.Consolidation)
	switch {
	case errors.Is(err, consolidation.ErrNotIncreasing), errors.Is(err, consolidation.ErrBadTime):
		return 0, fail(sink, ValidityViolation, stepViscoCreep, "settlement", err)
	case err != nil:
		diag.Warnf(sink, "%s: no end of primary consolidation (%v), using the last %g of the stage",
			stepViscoCreep, err, s.Consolidation.TailFraction)
	default:
		for i, t := range st.Time {
			if t >= pts.Blended.X {
				start = i
				break
			}
		}
		if start < 0 || n-start < 2 {
			diag.Warnf(sink, "%s: t100 = %g leaves fewer than two samples, using the last %g of the stage",
				stepViscoCreep, pts.Blended.X, s.Consolidation.TailFraction)
			start = -1
		}
	}
	if start < 0 {
		start = n - max(2, int(math.Ceil(s.Consolidation.TailFraction*float64(n))))
	}
	tailT, tailE := st.Time[start:], st.VoidRatio[start:]

	var cAlpha float64
	if s.CreepFit && len(tailT) >= 3 {
		cAlpha, err = fitCreep(tailT, tailE, s.Solver, sink)
		if err != nil {
			return 0, err
		}
	} else {
		lnT := make([]float64, len(tailT))
		for i, t := range tailT {
			lnT[i] = math.Log(t)
		}
		_, slopes, err := numeric.Differentiate(lnT, tailE)
		if err != nil {
			return 0, fail(sink, NumericDegenerate, stepViscoCreep, "c_alpha", err)
		}
		cAlpha = -numeric.Mean(slopes)
	}
	if !(cAlpha > 0) {
		return 0, failf(sink, ValidityViolation, stepViscoCreep, "c_alpha", "creep coefficient %g", cAlpha)
	}

	return cAlpha / cc, nil
}

// fitCreep fits e = a·ln(t+b)+c to the creep tail and returns −a.
// Empty solver candidates are replaced by multiples of NiceStep(t_first).
func fitCreep(t, e []float64, cfg rootsearch.Config, sink diag.Sink) (float64, error) {
	if len(cfg.CandidateInterval) == 0 {
		step := numeric.NiceStep(t[0])
		if step == 0 {
			return 0, failf(sink, NumericDegenerate, stepViscoCreep, "creep fit", "no candidate step for t=%g", t[0])
		}
		cand := make([]float64, creepCandidates+1)
		for k := range cand {
			cand[k] = float64(k) * step
		}
		cfg.CandidateInterval = cand
	}
	res, err := rootsearch.Search(t, e, "log", cfg, rootsearch.WithSink(sink))
	if err != nil {
		return 0, fail(sink, NumericDegenerate, stepViscoCreep, "creep fit", err)
	}
	if len(res.Coefficients) == 0 {
		return 0, failf(sink, NumericDegenerate, stepViscoCreep, "creep fit", "no coefficients at b=%g", res.Parameter)
	}

	return -res.Coefficients[0], nil
}
