// SPDX-License-Identifier: MIT

package calibration

import "github.com/katalvlaran/soilcal/diag"

// ParameterSet is a fixed-order, labelled parameter vector.
// Values returns a fresh slice on every call.
type ParameterSet interface {
	Labels() []string
	Values() []float64
}

// Result is a successful calibration: the parameters, the settings actually
// used after defaulting, and every diagnostic raised on the way.
// A failed calibration returns the zero Result.
type Result[P ParameterSet, S any] struct {
	Parameters  P
	Settings    S
	Diagnostics []diag.Entry
}

// HypoplasticParameters is the 8-value hypoplastic sand set.
// PhiC is in radians and Hs in MPa.
type HypoplasticParameters struct {
	PhiC  float64 `yaml:"phi_c"`
	Hs    float64 `yaml:"h_s"`
	N     float64 `yaml:"n"`
	Ed    float64 `yaml:"e_d"`
	Ec    float64 `yaml:"e_c"`
	Ei    float64 `yaml:"e_i"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
}

// Labels returns the parameter names in vector order.
func (HypoplasticParameters) Labels() []string {
	return []string{"phi_c", "h_s", "n", "e_d", "e_c", "e_i", "alpha", "beta"}
}

// Values returns the parameters in Labels order.
func (p HypoplasticParameters) Values() []float64 {
	return []float64{p.PhiC, p.Hs, p.N, p.Ed, p.Ec, p.Ei, p.Alpha, p.Beta}
}

// ExtendedHypoplasticParameters is the 5-value intergranular strain set.
type ExtendedHypoplasticParameters struct {
	MT    float64 `yaml:"m_T"`
	MR    float64 `yaml:"m_R"`
	RMax  float64 `yaml:"R_max"`
	BetaR float64 `yaml:"beta_r"`
	Chi   float64 `yaml:"chi"`
}

// Labels returns the parameter names in vector order.
func (ExtendedHypoplasticParameters) Labels() []string {
	return []string{"m_T", "m_R", "R_max", "beta_r", "chi"}
}

// Values returns the parameters in Labels order.
func (p ExtendedHypoplasticParameters) Values() []float64 {
	return []float64{p.MT, p.MR, p.RMax, p.BetaR, p.Chi}
}

// ViscohypoplasticParameters is the 7-value visco-hypoplastic clay set.
type ViscohypoplasticParameters struct {
	E100   float64 `yaml:"e100"`
	Lambda float64 `yaml:"lambda"`
	Kappa  float64 `yaml:"kappa"`
	BetaX  float64 `yaml:"beta_x"`
	Iv     float64 `yaml:"I_v"`
	Dr     float64 `yaml:"D_r"`
	OCR    float64 `yaml:"OCR"`
}

// Labels returns the parameter names in vector order.
func (ViscohypoplasticParameters) Labels() []string {
	return []string{"e100", "lambda", "kappa", "beta_x", "I_v", "D_r", "OCR"}
}

// Values returns the parameters in Labels order.
func (p ViscohypoplasticParameters) Values() []float64 {
	return []float64{p.E100, p.Lambda, p.Kappa, p.BetaX, p.Iv, p.Dr, p.OCR}
}
