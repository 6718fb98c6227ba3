// SPDX-License-Identifier: MIT

package calibration

import (
	"math"

	"github.com/katalvlaran/soilcal/curve"
	"github.com/katalvlaran/soilcal/diag"
)

const stepSource = "source"

// HypoplasticInputFromSource reads a HypoplasticInput from src.
// A missing key is an InputIncomplete *Error naming the key.
func HypoplasticInputFromSource(src curve.Source, opts ...Option) (HypoplasticInput, error) {
	r := newRun(opts)
	b := binder{src: src, sink: r.sink}
	in := HypoplasticInput{
		CriticalFrictionAngle: b.scalar(KeyCriticalFrictionAngle),
		MinVoidRatio:          b.scalar(KeyMinVoidRatio),
		MaxVoidRatio:          b.scalar(KeyMaxVoidRatio),
		Loose:                 b.curve(KeyLooseStress, KeyLooseVoidRatio),
		Dense:                 b.curve(KeyDenseStress, KeyDenseVoidRatio),
		PeakFrictionLoose:     b.scalar(KeyPeakFrictionLoose),
		PeakFrictionDense:     b.scalar(KeyPeakFrictionDense),
		PeakDilatancy:         b.scalar(KeyPeakDilatancy),
		PeakMeanStress:        b.scalar(KeyPeakMeanStress),
		PeakVoidRatio:         b.scalar(KeyPeakVoidRatio),
	}
	if b.err != nil {
		return HypoplasticInput{}, b.err
	}

	return in, nil
}

// ExtendedInputFromSource reads the 0°, 90° and 180° paths from src.
// A path without its own height falls back to the shared KeyHeight.
func ExtendedInputFromSource(src curve.Source, opts ...Option) (ExtendedInput, error) {
	r := newRun(opts)
	b := binder{src: src, sink: r.sink}
	path := func(angle int) ShearPath {
		height := curve.OptionalScalar(src, PathKey(angle, KeyHeight), math.NaN())
		if math.IsNaN(height) {
			height = b.scalar(KeyHeight)
		}

		return ShearPath{
			AxialDisplacement: b.series(PathKey(angle, KeyAxialDisplacement)),
			Height:            height,
			StressDifference:  b.series(PathKey(angle, KeyStressDifference)),
		}
	}
	in := ExtendedInput{Path0: path(0), Path90: path(90), Path180: path(180)}
	if b.err != nil {
		return ExtendedInput{}, b.err
	}

	return in, nil
}

// ViscoInputFromSource reads the CRS record and every CRL stage numbered
// consecutively from 1 until the first stage without a time series.
func ViscoInputFromSource(src curve.Source, opts ...Option) (ViscoInput, error) {
	r := newRun(opts)
	b := binder{src: src, sink: r.sink}
	in := ViscoInput{
		CriticalFrictionAngle: b.scalar(KeyCriticalFrictionAngle),
		CRS: CRSTest{
			Stress:        b.series(KeyCRSStress),
			VoidRatio:     b.series(KeyCRSVoidRatio),
			InitialHeight: b.scalar(KeyCRSHeight),
			Rate:          b.scalar(KeyCRSRate),
		},
	}
	for k := 1; ; k++ {
		if _, ok := src.Series(StageKey(k, KeyStageTime)); !ok {
			break
		}
		in.Stages = append(in.Stages, CRLStage{
			Time:      b.series(StageKey(k, KeyStageTime)),
			VoidRatio: b.series(StageKey(k, KeyStageVoidRatio)),
			LoadFrom:  b.scalar(StageKey(k, KeyStageLoadFrom)),
			LoadTo:    b.scalar(StageKey(k, KeyStageLoadTo)),
		})
	}
	if b.err != nil {
		return ViscoInput{}, b.err
	}

	return in, nil
}

// binder reads keys until the first failure, which it keeps.
type binder struct {
	src  curve.Source
	sink diag.Sink
	err  error
}

func (b *binder) record(key string, err error) {
	if b.err == nil && err != nil {
		b.err = fail(b.sink, InputIncomplete, stepSource, key, err)
	}
}

func (b *binder) scalar(key string) float64 {
	v, err := curve.RequireScalar(b.src, key)
	b.record(key, err)

	return v
}

func (b *binder) series(key string) []float64 {
	v, err := curve.RequireSeries(b.src, key)
	b.record(key, err)

	return v
}

func (b *binder) curve(xKey, yKey string) curve.Curve {
	c, err := curve.RequireCurve(b.src, xKey, yKey)
	b.record(xKey+" / "+yKey, err)

	return c
}
