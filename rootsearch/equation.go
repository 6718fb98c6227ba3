// SPDX-License-Identifier: MIT

package rootsearch

import (
	"fmt"
	"math"

	"github.com/katalvlaran/soilcal/numeric"
)

// SentinelResidual scores trial parameters for which the family is undefined.
const SentinelResidual = 1e6

// Equation is a curve family with one free parameter p.
type Equation interface {
	// Name is the registry key.
	Name() string

	// Fit solves the remaining coefficients for p and returns the full
	// coefficient tuple together with the sum of squared residuals. Undefined
	// trials return (nil, SentinelResidual).
	Fit(x, y []float64, p float64) ([]float64, float64)
}

// LogEquation is y = a·ln(x + b) + c with free parameter b.
// Coefficients are returned as [a, b, c].
type LogEquation struct{}

// Name implements Equation.
func (LogEquation) Name() string { return "log" }

// Fit implements Equation. a and c come from a linear least-squares fit of y
// against ln(x + b).
func (LogEquation) Fit(x, y []float64, b float64) ([]float64, float64) {
	u := make([]float64, len(x))
	for i, v := range x {
		if !(v+b > 0) {
			return nil, SentinelResidual
		}
		u[i] = math.Log(v + b)
	}

	a, c, err := numeric.LinearFit(u, y)
	if err != nil {
		return nil, SentinelResidual
	}

	var res float64
	for i := range u {
		d := y[i] - (a*u[i] + c)
		res += d * d
	}
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return nil, SentinelResidual
	}

	return []float64{a, b, c}, res
}

var registry = map[string]Equation{
	LogEquation{}.Name(): LogEquation{},
}

// Lookup returns the registered family for name.
func Lookup(name string) (Equation, error) {
	eq, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEquation, name)
	}

	return eq, nil
}
