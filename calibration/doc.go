// SPDX-License-Identifier: MIT

// Package calibration turns laboratory records into constitutive parameter
// sets for three soil models.
//
// 🚀 What is it?
//
//   - CalibrateHypoplastic: sand hypoplasticity
//     [phi_c, h_s, n, e_d, e_c, e_i, alpha, beta] from a loose and a dense
//     oedometer curve plus the peak state of a dense triaxial test.
//   - CalibrateExtendedHypoplastic: intergranular strain
//     [m_T, m_R, R_max, beta_r, chi] from three triaxial reversal paths.
//   - CalibrateViscohypoplastic: clay visco-hypoplasticity
//     [e100, lambda, kappa, beta_x, I_v, D_r, OCR] from a CRS test with one
//     unload/reload loop and at least two CRL stages.
//
// Every calibrator runs validate → derive → check → emit and returns either a
// full Result or a *Error with one of four kinds:
//
//	InputIncomplete | NumericDegenerate | ValidityViolation | NonConvergence
//
// Match them with errors.Is(err, ErrValidityViolation) and friends. A failed
// calibration never returns a partial parameter vector.
//
// ✨ Diagnostics
//
// Warnings (defaulted reference stresses, an inverted m_T, a creep fit that
// did not converge) never abort. They are collected in Result.Diagnostics
// and forwarded to the sink passed with WithSink, for example
// diag.NewZapSink(logger).
//
// ⚙️ Usage
//
//	in, err := calibration.HypoplasticInputFromSource(src)
//	if err != nil { ... }
//	res, err := calibration.CalibrateHypoplastic(in, calibration.DefaultHypoplasticSettings(),
//		calibration.WithSink(diag.NewZapSink(logger)))
//	if errors.Is(err, calibration.ErrValidityViolation) { ... }
//	fmt.Println(res.Parameters.Labels(), res.Parameters.Values())
//	raw, _ := calibration.MarshalSettings(res.Settings) // reproducible re-run
//
// Calibrators keep no state between calls and never modify their inputs, so
// independent samples may be calibrated concurrently.
package calibration
