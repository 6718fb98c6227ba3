// SPDX-License-Identifier: MIT

package numeric

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// detTol is the relative threshold below which a normal-equation determinant
// is treated as zero.
const detTol = 1e-12

// LinearFit returns the ordinary least-squares line y = slope·x + intercept.
//
// Errors:
//   - ErrEmptyInput / ErrLengthMismatch for malformed input.
//   - ErrDegenerate when every x is equal (vertical line, zero denominator).
//
// Complexity: O(n).
func LinearFit(x, y []float64) (slope, intercept float64, err error) {
	if err = checkPair(x, y); err != nil {
		return 0, 0, numericErrorf(opLinearFit, err)
	}

	n := float64(len(x))
	sx, sy := floats.Sum(x), floats.Sum(y)
	sxx, sxy := floats.Dot(x, x), floats.Dot(x, y)

	den := n*sxx - sx*sx
	if floats.Max(x) == floats.Min(x) || den == 0 {
		return 0, 0, numericErrorf(opLinearFit, ErrDegenerate)
	}

	slope = (n*sxy - sx*sy) / den
	intercept = (sy - slope*sx) / n

	return slope, intercept, nil
}

// QuadraticFit returns the least-squares parabola y = a·x² + b·x + c.
//
// Implementation:
//   - Stage 1: accumulate the power sums Σxᵏ (k ≤ 4) and Σxᵏy (k ≤ 2).
//   - Stage 2: solve the 3×3 normal equations by Cramer's rule.
//
// Errors:
//   - ErrTooShort for fewer than three samples.
//   - ErrDegenerate when the normal-matrix determinant is ~0 relative to its scale
//     (e.g. fewer than three distinct x).
//
// Complexity: O(n).
func QuadraticFit(x, y []float64) (a, b, c float64, err error) {
	if err = checkPair(x, y); err != nil {
		return 0, 0, 0, numericErrorf(opQuadraticFit, err)
	}
	if len(x) < 3 {
		return 0, 0, 0, numericErrorf(opQuadraticFit, ErrTooShort)
	}

	// Stage 1: power sums.
	var s1, s2, s3, s4, t0, t1, t2 float64
	for i := range x {
		x1 := x[i]
		x2 := x1 * x1
		s1 += x1
		s2 += x2
		s3 += x2 * x1
		s4 += x2 * x2
		t0 += y[i]
		t1 += x1 * y[i]
		t2 += x2 * y[i]
	}
	n := float64(len(x))

	// Stage 2: Cramer's rule on the normal matrix.
	normal := []float64{
		s4, s3, s2,
		s3, s2, s1,
		s2, s1, n,
	}
	rhs := []float64{t2, t1, t0}

	det := mat.Det(mat.NewDense(3, 3, normal))
	scale := math.Abs(s4 * s2 * n)
	if scale == 0 || math.Abs(det) <= detTol*scale {
		return 0, 0, 0, numericErrorf(opQuadraticFit, fmt.Errorf("%w: determinant %g", ErrDegenerate, det))
	}

	coef := make([]float64, 3)
	for col := 0; col < 3; col++ {
		m := make([]float64, 9)
		copy(m, normal)
		for row := 0; row < 3; row++ {
			m[row*3+col] = rhs[row]
		}
		coef[col] = mat.Det(mat.NewDense(3, 3, m)) / det
	}

	return coef[0], coef[1], coef[2], nil
}

// checkPair validates two paired, non-empty sequences.
func checkPair(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) == 0 {
		return ErrEmptyInput
	}

	return nil
}
