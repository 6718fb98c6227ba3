// SPDX-License-Identifier: MIT

package curve

import "fmt"

// Source is the read-only view of one soil sample's data, keyed by
// "Name [Unit]" strings. Values are either a single float or a series.
type Source interface {
	Scalar(key string) (float64, bool)
	Series(key string) ([]float64, bool)
}

// MapSource is a Source over a plain map whose values are float64, int or
// []float64.
type MapSource map[string]any

// Scalar implements Source.
func (m MapSource) Scalar(key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Series implements Source.
func (m MapSource) Series(key string) ([]float64, bool) {
	v, ok := m[key].([]float64)
	if !ok {
		return nil, false
	}

	return clone(v), true
}

// RequireScalar reads key or fails with ErrMissingField.
func RequireScalar(src Source, key string) (float64, error) {
	v, ok := src.Scalar(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingField, key)
	}

	return v, nil
}

// OptionalScalar reads key, falling back to def when absent.
func OptionalScalar(src Source, key string, def float64) float64 {
	if v, ok := src.Scalar(key); ok {
		return v
	}

	return def
}

// RequireSeries reads key or fails with ErrMissingField.
func RequireSeries(src Source, key string) ([]float64, error) {
	v, ok := src.Series(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, key)
	}

	return v, nil
}

// RequireCurve reads two series and pairs them into a validated Curve.
func RequireCurve(src Source, xKey, yKey string) (Curve, error) {
	x, err := RequireSeries(src, xKey)
	if err != nil {
		return Curve{}, err
	}
	y, err := RequireSeries(src, yKey)
	if err != nil {
		return Curve{}, err
	}
	c := Curve{X: x, Y: y}
	if err = c.Validate(); err != nil {
		return Curve{}, fmt.Errorf("%q/%q: %w", xKey, yKey, err)
	}

	return c, nil
}
