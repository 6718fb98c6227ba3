// SPDX-License-Identifier: MIT

package numeric_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/soilcal/numeric"
)

const eps = 1e-12

var approx = cmpopts.EquateApprox(0, 1e-9)

// ------------------------------
// Fits
// ------------------------------

func TestLinearFit_ExactLine(t *testing.T) {
	t.Parallel()

	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9}
	slope, intercept, err := numeric.LinearFit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, slope, eps)
	assert.InDelta(t, 1.0, intercept, eps)
}

func TestLinearFit_Degenerate(t *testing.T) {
	t.Parallel()

	_, _, err := numeric.LinearFit([]float64{2, 2, 2}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, numeric.ErrDegenerate)

	_, _, err = numeric.LinearFit([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, numeric.ErrLengthMismatch)

	_, _, err = numeric.LinearFit(nil, nil)
	assert.ErrorIs(t, err, numeric.ErrEmptyInput)
}

func TestQuadraticFit_ExactParabola(t *testing.T) {
	t.Parallel()

	x := []float64{-2, -1, 0, 1, 2, 3}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 0.5*v*v - 3*v + 2
	}
	a, b, c, err := numeric.QuadraticFit(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, a, 1e-9)
	assert.InDelta(t, -3.0, b, 1e-9)
	assert.InDelta(t, 2.0, c, 1e-9)
}

func TestQuadraticFit_Degenerate(t *testing.T) {
	t.Parallel()

	_, _, _, err := numeric.QuadraticFit([]float64{1, 1, 2, 2}, []float64{0, 1, 2, 3})
	assert.ErrorIs(t, err, numeric.ErrDegenerate, "two distinct x cannot define a parabola")

	_, _, _, err = numeric.QuadraticFit([]float64{1, 2}, []float64{0, 1})
	assert.ErrorIs(t, err, numeric.ErrTooShort)
}

// ------------------------------
// Lookup
// ------------------------------

func TestLocateIndexAndFraction_Midpoint(t *testing.T) {
	t.Parallel()

	i, f, err := numeric.LocateIndexAndFraction(2.5, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.InDelta(t, 0.5, f, eps)
}

func TestLocateIndexAndFraction_ExactHits(t *testing.T) {
	t.Parallel()

	list := []float64{1, 2, 3, 4}

	i, f, err := numeric.LocateIndexAndFraction(1, list)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0.0, f)

	i, f, err = numeric.LocateIndexAndFraction(3, list)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	assert.Equal(t, 0.0, f)

	i, f, err = numeric.LocateIndexAndFraction(4, list)
	require.NoError(t, err)
	assert.Equal(t, 2, i, "last element pairs with index n-2")
	assert.Equal(t, 1.0, f)
}

func TestLocateIndexAndFraction_Reconstructs(t *testing.T) {
	t.Parallel()

	list := []float64{-3, -1.5, 0, 0.25, 7, 11.5, 100}
	for _, v := range []float64{-3, -2.2, -0.1, 0.1, 3.3, 11.5, 50, 100} {
		i, f, err := numeric.LocateIndexAndFraction(v, list)
		require.NoError(t, err, "value %g", v)
		got := list[i] + f*(list[i+1]-list[i])
		assert.InDelta(t, v, got, 1e-12, "value %g", v)
		assert.True(t, f >= 0 && f <= 1)
	}
}

func TestLocateIndexAndFraction_Failures(t *testing.T) {
	t.Parallel()

	_, _, err := numeric.LocateIndexAndFraction(0.5, []float64{1, 2, 3})
	assert.ErrorIs(t, err, numeric.ErrOutOfRange)

	_, _, err = numeric.LocateIndexAndFraction(3.5, []float64{1, 2, 3})
	assert.ErrorIs(t, err, numeric.ErrOutOfRange)

	_, _, err = numeric.LocateIndexAndFraction(math.NaN(), []float64{1, 2, 3})
	assert.ErrorIs(t, err, numeric.ErrOutOfRange)

	_, _, err = numeric.LocateIndexAndFraction(2, []float64{3, 2, 1})
	assert.ErrorIs(t, err, numeric.ErrNotAscending)

	_, _, err = numeric.LocateIndexAndFraction(1, []float64{1})
	assert.ErrorIs(t, err, numeric.ErrTooShort)
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	v, err := numeric.Interpolate(1.5, []float64{0, 1, 2}, []float64{0, 10, 30})
	require.NoError(t, err)
	assert.InDelta(t, 20.0, v, eps)

	v, err = numeric.Interpolate(2, []float64{0, 1, 2}, []float64{0, 10, 30})
	require.NoError(t, err)
	assert.InDelta(t, 30.0, v, eps)

	_, err = numeric.Interpolate(1, []float64{0, 1, 2}, []float64{0, 10})
	assert.ErrorIs(t, err, numeric.ErrLengthMismatch)
}

func TestRangeCheck(t *testing.T) {
	t.Parallel()

	assert.True(t, numeric.RangeCheck([]float64{0, 0.5, 1}, 0, 1))
	assert.False(t, numeric.RangeCheck([]float64{0, 1.01}, 0, 1))
	assert.False(t, numeric.RangeCheck([]float64{math.NaN()}, 0, 1))
	assert.True(t, numeric.RangeCheck(nil, 0, 1))
}

func TestMonotonicity(t *testing.T) {
	t.Parallel()

	assert.True(t, numeric.IsStrictlyIncreasing([]float64{1, 2, 3}))
	assert.False(t, numeric.IsStrictlyIncreasing([]float64{1, 2, 2}))
	assert.True(t, numeric.IsStrictlyDecreasing([]float64{3, 2, 1}))
	assert.False(t, numeric.IsStrictlyDecreasing([]float64{3, 3, 1}))
}

// ------------------------------
// Sequences
// ------------------------------

func TestSortAndMergeDuplicateX(t *testing.T) {
	t.Parallel()

	in := []float64{3, 1, 1, 2}
	x, y, err := numeric.SortAndMergeDuplicateX(in, []float64{9, 1, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, x)
	assert.Equal(t, []float64{2, 5, 9}, y)
	assert.Equal(t, []float64{3, 1, 1, 2}, in, "input must not be mutated")
}

func TestSortAndMergeDuplicateX_RunningMeanOfThree(t *testing.T) {
	t.Parallel()

	x, y, err := numeric.SortAndMergeDuplicateX([]float64{1, 1, 1}, []float64{1, 2, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, x)
	assert.InDelta(t, 3.0, y[0], eps)
}

func TestSmooth(t *testing.T) {
	t.Parallel()

	values := []float64{1, 2, 3, 4, 5, 6}

	same, err := numeric.Smooth(values, 0)
	require.NoError(t, err)
	assert.Equal(t, values, same)

	for w := 1; w < len(values); w++ {
		out, err := numeric.Smooth(values, w)
		require.NoError(t, err)
		assert.Len(t, out, len(values)-w)
	}

	out, err := numeric.Smooth(values, 2)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{1.5, 2.5, 3.5, 4.5}, out, approx); diff != "" {
		t.Fatalf("Smooth mismatch (-want +got):\n%s", diff)
	}

	_, err = numeric.Smooth(values, len(values))
	assert.ErrorIs(t, err, numeric.ErrBadWindow)
	_, err = numeric.Smooth(values, -1)
	assert.ErrorIs(t, err, numeric.ErrBadWindow)
}

func TestSmooth_AveragesExactlyWindowSamples(t *testing.T) {
	t.Parallel()

	cases := []struct {
		values []float64
		window int
		want   []float64
	}{
		{[]float64{1, 2, 3, 4}, 2, []float64{1.5, 2.5}},
		{[]float64{0, 10, 0, 10}, 1, []float64{0, 10, 0}},
		{[]float64{0, 10, 0, 10}, 2, []float64{5, 5}},
		{[]float64{3, 6, 9, 0}, 3, []float64{6}},
	}
	for _, c := range cases {
		out, err := numeric.Smooth(c.values, c.window)
		require.NoError(t, err)
		if diff := cmp.Diff(c.want, out, approx); diff != "" {
			t.Errorf("Smooth(%v, %d) mismatch (-want +got):\n%s", c.values, c.window, diff)
		}
	}
}

func TestDifferentiate(t *testing.T) {
	t.Parallel()

	xm, dy, err := numeric.Differentiate([]float64{0, 1, 2}, []float64{0, 2, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1.5}, xm)
	assert.Equal(t, []float64{2, 4}, dy)
}

func TestDifferentiate_DuplicateX(t *testing.T) {
	t.Parallel()

	xm, dy, err := numeric.Differentiate([]float64{0, 1, 1, 2}, []float64{0, 1, 2, 3})
	assert.ErrorIs(t, err, numeric.ErrDuplicateX)
	assert.Contains(t, err.Error(), "index 1")
	assert.Nil(t, xm)
	assert.Nil(t, dy)
}

func TestIntegrateEulerForward_InvertsDifferentiate(t *testing.T) {
	t.Parallel()

	x := []float64{0, 0.5, 1.5, 3, 3.25}
	y := []float64{2, 1, 4, -1, 0}
	_, dy, err := numeric.Differentiate(x, y)
	require.NoError(t, err)

	xr, yr, err := numeric.IntegrateEulerForward(x[0], y[0], numeric.Steps(x), dy)
	require.NoError(t, err)
	if diff := cmp.Diff(x, xr, approx); diff != "" {
		t.Fatalf("x mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(y, yr, approx); diff != "" {
		t.Fatalf("y mismatch (-want +got):\n%s", diff)
	}

	_, _, err = numeric.IntegrateEulerForward(0, 0, []float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, numeric.ErrLengthMismatch)
}

// ------------------------------
// Extrema
// ------------------------------

func TestLocalExtrema(t *testing.T) {
	t.Parallel()

	values := []float64{0, 3, 1, 0, 2, 5, 4, 1}

	maxima, err := numeric.LocalExtrema(values, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5}, maxima)

	minima, err := numeric.LocalExtrema(values, 2, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 7}, minima)
}

func TestLocalExtrema_WindowTooLarge(t *testing.T) {
	t.Parallel()

	out, err := numeric.LocalExtrema([]float64{1, 2, 3}, 4, true)
	assert.ErrorIs(t, err, numeric.ErrWindowTooLarge)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestArgMaxArgMin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, numeric.ArgMax([]float64{1, 4, 9, 9}))
	assert.Equal(t, 0, numeric.ArgMin([]float64{-1, 4, -1}))
	assert.Equal(t, -1, numeric.ArgMax(nil))
}

// ------------------------------
// Steps
// ------------------------------

func TestNiceStep(t *testing.T) {
	t.Parallel()

	cases := []struct {
		span, want float64
	}{
		{10, 2},
		{4.2, 1},
		{0.9, 0.2},
		{250, 50},
		{80, 20},
		{0, 0},
		{-5, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, numeric.NiceStep(c.span), 1e-12, "span %g", c.span)
	}
}

func TestNiceStep_PowerOfTenAtOrBelowSpan(t *testing.T) {
	t.Parallel()

	// 9 and 4.2 are nearer to 10 than to 1; the scale still comes from 1.
	assert.InDelta(t, 2.0, numeric.NiceStep(9), 1e-12)
	assert.InDelta(t, 1.0, numeric.NiceStep(4.2), 1e-12)
	assert.InDelta(t, 0.2, numeric.NiceStep(1), 1e-12)
	assert.InDelta(t, 2.0, numeric.NiceStep(10), 1e-12)

	prev := 0.0
	for span := 0.05; span < 500; span *= 1.01 {
		step := numeric.NiceStep(span)
		assert.GreaterOrEqual(t, step, prev, "span %g", span)
		assert.GreaterOrEqual(t, span/step, 3.0-1e-9, "span %g", span)
		assert.Less(t, span/step, 7.5, "span %g", span)
		prev = step
	}
}

func TestNextNiceValue(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 14.0, numeric.NextNiceValue(13, 10, true), eps)
	assert.InDelta(t, 12.0, numeric.NextNiceValue(13, 10, false), eps)
	assert.InDelta(t, 0.6, numeric.NextNiceValue(0.6, 0.9, false), 1e-12, "on-grid values stay put")
	assert.Equal(t, 3.3, numeric.NextNiceValue(3.3, 0, true), "zero span leaves value unchanged")
}

func TestMean(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.5, numeric.Mean([]float64{1, 2, 3, 4}), eps)
	assert.True(t, math.IsNaN(numeric.Mean(nil)))
}
