// SPDX-License-Identifier: MIT

package calibration_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/soilcal/calibration"
)

func TestError_MatchesKindAndCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	var err error = &calibration.Error{
		Kind:     calibration.NumericDegenerate,
		Step:     "hypoplastic/compression",
		Quantity: "h_s",
		Err:      cause,
	}
	wrapped := fmt.Errorf("outer: %w", err)

	assert.ErrorIs(t, wrapped, calibration.ErrNumericDegenerate)
	assert.ErrorIs(t, wrapped, cause)
	assert.NotErrorIs(t, wrapped, calibration.ErrValidityViolation)
	assert.Equal(t, "calibration: hypoplastic/compression: numeric degenerate (h_s): boom", err.Error())

	var ce *calibration.Error
	require.ErrorAs(t, wrapped, &ce)
	assert.Equal(t, "h_s", ce.Quantity)
}

func TestError_MessageWithoutQuantityOrCause(t *testing.T) {
	t.Parallel()

	err := &calibration.Error{Kind: calibration.InputIncomplete, Step: "source"}
	assert.Equal(t, "calibration: source: input incomplete", err.Error())
	assert.NoError(t, err.Unwrap())
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "input incomplete", calibration.InputIncomplete.String())
	assert.Equal(t, "validity violation", calibration.ValidityViolation.String())
	assert.Equal(t, "non-convergence", calibration.NonConvergence.String())
	assert.Equal(t, "kind(0)", calibration.Kind(0).String())

	unknown := &calibration.Error{Kind: calibration.Kind(42), Step: "x"}
	for _, s := range []error{
		calibration.ErrInputIncomplete, calibration.ErrNumericDegenerate,
		calibration.ErrValidityViolation, calibration.ErrNonConvergence,
	} {
		assert.NotErrorIs(t, unknown, s)
	}
}

func TestParameterSets_LabelsMatchValues(t *testing.T) {
	t.Parallel()

	sets := []calibration.ParameterSet{
		calibration.HypoplasticParameters{PhiC: 1, Beta: 8},
		calibration.ExtendedHypoplasticParameters{MT: 1, Chi: 5},
		calibration.ViscohypoplasticParameters{E100: 1, OCR: 7},
	}
	for _, p := range sets {
		labels, values := p.Labels(), p.Values()
		require.Len(t, values, len(labels))
		assert.Equal(t, 1.0, values[0])
		assert.Equal(t, float64(len(values)), values[len(values)-1])

		// Fresh slices every call.
		values[0] = -1
		assert.Equal(t, 1.0, p.Values()[0])
	}
}
