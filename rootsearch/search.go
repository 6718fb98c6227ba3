// SPDX-License-Identifier: MIT

package rootsearch

import (
	"fmt"

	"github.com/katalvlaran/soilcal/diag"
)

// Result is the outcome of a Search.
type Result struct {
	// Equation is the family name.
	Equation string

	// Coefficients is the full tuple at Parameter (e.g. [a, b, c] for "log").
	Coefficients []float64

	// Parameter is the chosen value of the free parameter.
	Parameter float64

	// Residual is the sum of squared residuals at Parameter.
	Residual float64

	// Midpoint is the last bracket midpoint, the running estimate, and
	// MidpointResidual its residual.
	Midpoint         float64
	MidpointResidual float64

	// Iterations is the number of shrinking steps taken.
	Iterations int

	// Converged is false when MaxIterations was reached first.
	Converged bool
}

// Search fits the named family to (x, y); see the package documentation.
//
// Errors:
//   - ErrUnsupportedEquation for an unknown name (Result has no coefficients).
//   - ErrBadConfig / ErrBadInput for invalid arguments.
//
// Non-convergence is reported on the sink, not as an error.
func Search(x, y []float64, name string, cfg Config, opts ...Option) (Result, error) {
	eq, err := Lookup(name)
	if err != nil {
		return Result{}, err
	}

	return SearchEquation(x, y, eq, cfg, opts...)
}

// SearchEquation is Search for a caller-supplied family.
func SearchEquation(x, y []float64, eq Equation, cfg Config, opts ...Option) (Result, error) {
	o := gatherOptions(opts)

	// Stage 1 (Validate).
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if len(x) != len(y) || len(x) < 3 {
		return Result{}, fmt.Errorf("%w: %d x vs %d y samples", ErrBadInput, len(x), len(y))
	}

	residual := func(p float64) float64 {
		_, r := eq.Fit(x, y, p)

		return r
	}

	// Stage 2 (Scan): best candidate, clamped so both neighbours exist.
	cand := cfg.CandidateInterval
	best, bestR := 0, residual(cand[0])
	for i := 1; i < len(cand); i++ {
		if r := residual(cand[i]); r < bestR {
			best, bestR = i, r
		}
	}
	best = min(max(best, 1), len(cand)-2)

	// Stage 3 (Shrink): pull the worse endpoint toward the better one.
	lo, hi := cand[best-1], cand[best+1]
	rLo, rHi := residual(lo), residual(hi)
	step := 1 - cfg.ShrinkFactor
	mid := (lo + hi) / 2
	midR := residual(mid)
	iter := 0
	for ; iter < cfg.MaxIterations && hi-lo >= cfg.Tolerance; iter++ {
		mid = (lo + hi) / 2
		midR = residual(mid)
		width := hi - lo
		if rLo > rHi {
			lo += step * width
			rLo = residual(lo)
		} else {
			hi -= step * width
			rHi = residual(hi)
		}
	}
	converged := hi-lo < cfg.Tolerance
	if !converged {
		diag.Warnf(o.sink, "rootsearch: %s did not converge after %d iterations (bracket width %g > tolerance %g)",
			eq.Name(), iter, hi-lo, cfg.Tolerance)
	}

	// Stage 4 (Finalize): coefficients at the better endpoint.
	p := lo
	if rHi < rLo {
		p = hi
	}
	coef, r := eq.Fit(x, y, p)

	return Result{
		Equation:         eq.Name(),
		Coefficients:     coef,
		Parameter:        p,
		Residual:         r,
		Midpoint:         mid,
		MidpointResidual: midR,
		Iterations:       iter,
		Converged:        converged,
	}, nil
}
