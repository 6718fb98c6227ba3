// SPDX-License-Identifier: MIT

package calibration_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/soilcal/calibration"
	"github.com/katalvlaran/soilcal/diag"
)

const (
	clayLambda = 0.1
	clayKappa  = 0.02
	crsHeight  = 20.0
	crsRate    = 0.001
)

// crsRecord loads along ln(1+e) = ln 2 − λ·ln(σ/12.5) to 400, unloads to 100
// and reloads to 800 along a κ line that rejoins the virgin line at 400.
// Turning points sit at indices 20 and 28; the record has 41 samples.
func crsRecord() calibration.CRSTest {
	ncl := func(s float64) float64 { return 2*math.Pow(s/12.5, -clayLambda) - 1 }
	swell := func(s float64) float64 { return (1+ncl(400))*math.Pow(s/400, -clayKappa) - 1 }

	var stress, e []float64
	for i := 0; i <= 20; i++ {
		s := 12.5 * math.Pow(2, float64(i)/4)
		stress, e = append(stress, s), append(e, ncl(s))
	}
	for i := 1; i <= 8; i++ {
		s := 400 * math.Pow(2, -float64(i)/4)
		stress, e = append(stress, s), append(e, swell(s))
	}
	for i := 1; i <= 12; i++ {
		s := 100 * math.Pow(2, float64(i)/4)
		v := ncl(s)
		if i <= 8 {
			v = swell(s)
		}
		stress, e = append(stress, s), append(e, v)
	}

	return calibration.CRSTest{Stress: stress, VoidRatio: e, InitialHeight: crsHeight, Rate: crsRate}
}

// crlStage settles 0.01 over the decade before t = 1 s, then creeps
// creep per decade of time up to 10⁴ s. Samples every quarter decade from 10⁻² s.
func crlStage(e0, creep float64) calibration.CRLStage {
	var ts, es []float64
	for k := -2.0; k <= 4.0; k += 0.25 {
		var s float64
		switch {
		case k <= -1:
			s = 0
		case k <= 0:
			s = 0.01 * (k + 1)
		default:
			s = 0.01 + creep*k
		}
		ts = append(ts, math.Pow(10, k))
		es = append(es, e0-s)
	}

	return calibration.CRLStage{Time: ts, VoidRatio: es, LoadFrom: 50, LoadTo: 100}
}

func clayInput() calibration.ViscoInput {
	return calibration.ViscoInput{
		CriticalFrictionAngle: 30,
		CRS:                   crsRecord(),
		Stages:                []calibration.CRLStage{crlStage(0.9, 0.002), crlStage(0.8, 0.0005)},
	}
}

// laterStageIv is c_alpha/C_c of the second clay stage.
func laterStageIv() float64 {
	cAlpha := 0.0005 / math.Ln10
	cc := (0.01 + 4*0.0005) / math.Ln2

	return cAlpha / cc
}

// ------------------------------------------------------------------
// CharacteristicIndices
// ------------------------------------------------------------------

func TestCharacteristicIndices_Loop(t *testing.T) {
	t.Parallel()

	idx, err := calibration.CharacteristicIndices(crsRecord().Stress, calibration.DefaultViscoSettings())
	require.NoError(t, err)
	assert.Equal(t, [7]int{0, 10, 20, 28, 36, 38, 40}, idx)
}

func TestCharacteristicIndices_NeedsOneLoop(t *testing.T) {
	t.Parallel()

	s := calibration.DefaultViscoSettings()

	monotone := make([]float64, 20)
	for i := range monotone {
		monotone[i] = float64(10 + i)
	}
	_, err := calibration.CharacteristicIndices(monotone, s)
	assert.ErrorIs(t, err, calibration.ErrValidityViolation)

	twoLoops := []float64{10, 20, 30, 40, 30, 20, 30, 40, 50, 40, 30, 20, 30, 40, 50, 60, 70}
	_, err = calibration.CharacteristicIndices(twoLoops, s)
	assert.ErrorIs(t, err, calibration.ErrValidityViolation)

	_, err = calibration.CharacteristicIndices([]float64{1, 2, 3}, s)
	assert.ErrorIs(t, err, calibration.ErrInputIncomplete)
}

func TestCharacteristicIndices_NoRejoin(t *testing.T) {
	t.Parallel()

	// Reloading stops short of the unloading stress.
	stress := []float64{10, 20, 40, 80, 160, 120, 90, 60, 45, 60, 90, 120, 150}
	_, err := calibration.CharacteristicIndices(stress, calibration.DefaultViscoSettings())
	require.Error(t, err)
	assert.ErrorIs(t, err, calibration.ErrValidityViolation)
	assert.Contains(t, err.Error(), "reload")
}

// ------------------------------------------------------------------
// CalibrateViscohypoplastic
// ------------------------------------------------------------------

func TestCalibrateVisco_RecoversClayParameters(t *testing.T) {
	t.Parallel()

	res, err := calibration.CalibrateViscohypoplastic(clayInput(), calibration.DefaultViscoSettings())
	require.NoError(t, err)

	// φc = 30°: K0 = 0.5, η0 = 0.75, M = 1.2, a = √3·2.5/√2.
	a := math.Sqrt(3) * 2.5 / math.Sqrt2
	eta0 := 0.75
	unload := clayKappa * math.Log(4)

	p := res.Parameters
	assert.InDelta(t, clayLambda, p.Lambda, 1e-9)
	assert.InDelta(t, clayKappa/(1+(eta0/a)*(eta0/a)), p.Kappa, 1e-9)
	assert.Equal(t, calibration.DefaultShapeFactor, p.BetaX)
	assert.InDelta(t, 2*math.Pow(12, -clayLambda)-1, p.E100, 1e-9)
	assert.InDelta(t, crsRate/crsHeight*unload/(unload+0.01), p.Dr, 1e-12)

	ratio := eta0 / (0.95 * 1.2)
	assert.InDelta(t, math.Pow(4, 0.8)/(1+ratio*ratio), p.OCR, 1e-6)
	assert.InDelta(t, laterStageIv(), p.Iv, 1e-6)
	assert.Empty(t, res.Diagnostics)
}

func TestCalibrateVisco_CreepFitAgreesWithTailSlope(t *testing.T) {
	t.Parallel()

	s := calibration.DefaultViscoSettings()
	s.CreepFit = true
	res, err := calibration.CalibrateViscohypoplastic(clayInput(), s)
	require.NoError(t, err)
	assert.InEpsilon(t, laterStageIv(), res.Parameters.Iv, 1e-3)
}

func TestCalibrateVisco_LoadingBranchMismatchWarns(t *testing.T) {
	t.Parallel()

	in := clayInput()
	// Stiffen the first loading segment so lambda(1–2) drops well below lambda(5–6).
	for i := 10; i <= 20; i++ {
		in.CRS.VoidRatio[i] = in.CRS.VoidRatio[20] + 0.2*(in.CRS.VoidRatio[i]-in.CRS.VoidRatio[20])
	}
	rec := diag.NewRecorder()
	res, err := calibration.CalibrateViscohypoplastic(in, calibration.DefaultViscoSettings(), calibration.WithSink(rec))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Count(diag.Warning))
	assert.InDelta(t, clayLambda, res.Parameters.Lambda, 1e-9)
}

func TestCalibrateVisco_InputFailures(t *testing.T) {
	t.Parallel()

	in := clayInput()
	in.Stages = in.Stages[:1]
	_, err := calibration.CalibrateViscohypoplastic(in, calibration.DefaultViscoSettings())
	assert.ErrorIs(t, err, calibration.ErrInputIncomplete)

	in = clayInput()
	in.CRS.Rate = 0
	_, err = calibration.CalibrateViscohypoplastic(in, calibration.DefaultViscoSettings())
	assert.ErrorIs(t, err, calibration.ErrNumericDegenerate)

	in = clayInput()
	in.Stages[1].LoadTo = in.Stages[1].LoadFrom
	_, err = calibration.CalibrateViscohypoplastic(in, calibration.DefaultViscoSettings())
	assert.ErrorIs(t, err, calibration.ErrValidityViolation)

	in = clayInput()
	in.CRS.VoidRatio = in.CRS.VoidRatio[:5]
	_, err = calibration.CalibrateViscohypoplastic(in, calibration.DefaultViscoSettings())
	assert.ErrorIs(t, err, calibration.ErrInputIncomplete)
}

func TestCalibrateVisco_UnloadingWithoutSwellingIsViolation(t *testing.T) {
	t.Parallel()

	in := clayInput()
	e2 := in.CRS.VoidRatio[20]
	for i := 21; i <= 36; i++ {
		in.CRS.VoidRatio[i] = e2
	}
	_, err := calibration.CalibrateViscohypoplastic(in, calibration.DefaultViscoSettings())
	require.Error(t, err)
	assert.ErrorIs(t, err, calibration.ErrValidityViolation)
	assert.Contains(t, err.Error(), "kappa")
}
