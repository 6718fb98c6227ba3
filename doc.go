// SPDX-License-Identifier: MIT

// Package soilcal turns raw soil-laboratory records into constitutive-model
// parameter sets: hypoplastic sand, extended hypoplastic (intergranular
// strain) and viscohypoplastic clay.
//
// 🚀 What is soilcal?
//
//	A deterministic, pure-Go calibration engine that brings together:
//		• Curve primitives: sort/merge, smoothing, differentiation, integration
//		• Fits: linear and quadratic least squares, local extrema, nice steps
//		• Geometry: tangent splines, Mohr-circle envelopes, curve resampling
//		• Consolidation: Casagrande and Taylor tangent constructions
//		• Root search: bracketed one-parameter fits of creep laws
//		• Calibrators: hypoplastic, extended hypoplastic, viscohypoplastic
//
// ✨ Why soilcal?
//
//   - Pure functions – inputs are never mutated; equal inputs give equal parameters
//   - Typed failures – every aborted step is a *calibration.Error with a Kind
//   - Pluggable diagnostics – warnings go to a diag.Sink (zap, logr or a Recorder)
//   - Reproducible – resolved settings come back with every Result and round-trip as YAML
//
// Packages, leaves first:
//
//	curve/         — Curve, CharacteristicPoint, ReferenceStressPair, keyed Source
//	diag/          — Severity, Sink, Recorder, zap and logr adapters
//	numeric/       — sequence primitives, fits, lookups, nice steps
//	rootsearch/    — equation registry and bracket-shrinking parameter search
//	geometry/      — tangent splines, best tangent angle, union resampling
//	consolidation/ — end-of-primary-consolidation tangent points
//	calibration/   — the three calibrators, settings, errors, source binding
//
// Quick start:
//
//	res, err := calibration.CalibrateHypoplastic(in, calibration.DefaultHypoplasticSettings(),
//		calibration.WithSink(diag.NewZapSink(logger)))
//	if err != nil {
//		var ce *calibration.Error
//		if errors.As(err, &ce) { /* ce.Kind, ce.Step, ce.Quantity */ }
//	}
//	fmt.Println(res.Parameters.Labels(), res.Parameters.Values())
//
//	go get github.com/katalvlaran/soilcal
package soilcal
