// SPDX-License-Identifier: MIT

package rootsearch_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/soilcal/diag"
	"github.com/katalvlaran/soilcal/rootsearch"
)

// logData samples y = a·ln(x+b)+c at x = 1..50.
func logData(a, b, c float64) ([]float64, []float64) {
	x := make([]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = float64(i + 1)
		y[i] = a*math.Log(x[i]+b) + c
	}

	return x, y
}

func candidates(from, to, step float64) []float64 {
	var out []float64
	for v := from; v <= to+step/2; v += step {
		out = append(out, v)
	}

	return out
}

func TestSearch_RecoversLogCoefficients(t *testing.T) {
	t.Parallel()

	x, y := logData(2.0, 3.0, -1.0)
	rec := diag.NewRecorder()

	res, err := rootsearch.Search(x, y, "log", rootsearch.DefaultConfig(candidates(0.5, 10, 0.5)...), rootsearch.WithSink(rec))
	require.NoError(t, err)
	require.Len(t, res.Coefficients, 3)
	assert.True(t, res.Converged)
	assert.InDelta(t, 2.0, res.Coefficients[0], 1e-3)
	assert.InDelta(t, 3.0, res.Coefficients[1], 1e-3)
	assert.InDelta(t, -1.0, res.Coefficients[2], 1e-3)
	assert.Equal(t, res.Parameter, res.Coefficients[1])
	assert.Equal(t, 0, rec.Count(diag.Warning))
	assert.Less(t, res.Iterations, rootsearch.DefaultMaxIterations)
}

func TestSearch_MinimumAtCandidateEdgeIsClamped(t *testing.T) {
	t.Parallel()

	// True b lies on the first candidate; the bracket is still [c0, c2].
	x, y := logData(1.5, 1.0, 0.5)
	res, err := rootsearch.Search(x, y, "log", rootsearch.DefaultConfig(1, 2, 3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Parameter, 1e-3)
}

func TestSearch_NonConvergenceIsWarningOnly(t *testing.T) {
	t.Parallel()

	x, y := logData(2.0, 3.0, -1.0)
	cfg := rootsearch.DefaultConfig(candidates(0.5, 10, 0.5)...)
	cfg.MaxIterations = 3
	rec := diag.NewRecorder()

	res, err := rootsearch.Search(x, y, "log", cfg, rootsearch.WithSink(rec))
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 3, res.Iterations)
	assert.Len(t, res.Coefficients, 3, "best parameters are still returned")
	assert.Equal(t, 1, rec.Count(diag.Warning))
}

func TestSearch_UnsupportedEquation(t *testing.T) {
	t.Parallel()

	x, y := logData(1, 1, 1)
	res, err := rootsearch.Search(x, y, "power", rootsearch.DefaultConfig(1, 2, 3))
	assert.ErrorIs(t, err, rootsearch.ErrUnsupportedEquation)
	assert.Empty(t, res.Coefficients)
}

func TestSearch_BadConfig(t *testing.T) {
	t.Parallel()

	x, y := logData(1, 1, 1)
	cases := map[string]rootsearch.Config{
		"too few candidates": rootsearch.DefaultConfig(1, 2),
		"unsorted":           rootsearch.DefaultConfig(1, 3, 2),
		"shrink too small":   {CandidateInterval: []float64{1, 2, 3}, MaxIterations: 10, ShrinkFactor: 0.5, Tolerance: 1e-6},
		"zero iterations":    {CandidateInterval: []float64{1, 2, 3}, MaxIterations: 0, ShrinkFactor: 0.9, Tolerance: 1e-6},
		"zero tolerance":     {CandidateInterval: []float64{1, 2, 3}, MaxIterations: 10, ShrinkFactor: 0.9},
	}
	for name, cfg := range cases {
		_, err := rootsearch.Search(x, y, "log", cfg)
		assert.ErrorIs(t, err, rootsearch.ErrBadConfig, name)
	}

	_, err := rootsearch.Search([]float64{1, 2}, []float64{1, 2}, "log", rootsearch.DefaultConfig(1, 2, 3))
	assert.ErrorIs(t, err, rootsearch.ErrBadInput)
}

func TestLogEquation_DegenerateTrialsScoreSentinel(t *testing.T) {
	t.Parallel()

	eq := rootsearch.LogEquation{}
	x := []float64{1, 2, 3}
	y := []float64{0, 1, 2}

	coef, r := eq.Fit(x, y, -1.5)
	assert.Nil(t, coef)
	assert.Equal(t, rootsearch.SentinelResidual, r, "x+b <= 0 is undefined")

	coef, r = eq.Fit([]float64{2, 2, 2}, y, 1)
	assert.Nil(t, coef)
	assert.Equal(t, rootsearch.SentinelResidual, r, "collapsed log denominator")
}

func TestSearch_StepsAwayFromSentinelCandidates(t *testing.T) {
	t.Parallel()

	x, y := logData(2.0, 3.0, -1.0)
	// Candidates below -1 make ln(x+b) undefined for x=1.
	res, err := rootsearch.Search(x, y, "log", rootsearch.DefaultConfig(candidates(-4, 8, 1)...))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, res.Parameter, 1e-3)
}

func TestDefaultConfig_CopiesCandidates(t *testing.T) {
	t.Parallel()

	in := []float64{1, 2, 3}
	cfg := rootsearch.DefaultConfig(in...)
	in[0] = 99
	assert.Equal(t, 1.0, cfg.CandidateInterval[0])
	assert.Equal(t, rootsearch.DefaultShrinkFactor, cfg.ShrinkFactor)
	assert.Equal(t, rootsearch.DefaultTolerance, cfg.Tolerance)
	require.NoError(t, cfg.Validate())
}
