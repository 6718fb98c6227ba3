// SPDX-License-Identifier: MIT

package geometry_test

import (
	"fmt"

	"github.com/katalvlaran/soilcal/curve"
	"github.com/katalvlaran/soilcal/geometry"
)

// ExamplePadHorizontal mirrors the neighbours of both ends so that the spline
// leaves the first and last sample horizontally.
func ExamplePadHorizontal() {
	x, y, _ := geometry.PadHorizontal([]float64{1, 2, 4}, []float64{10, 20, 15})
	fmt.Println(x, y)
	// Output:
	// [0 1 2 4 6] [20 10 20 15 20]
}

// ExampleResampleOnUnion aligns two stress-strain paths on one strain grid.
func ExampleResampleOnUnion() {
	a, _ := curve.New([]float64{0, 1, 2, 3}, []float64{0, 10, 20, 30})
	b, _ := curve.New([]float64{0.5, 2.5}, []float64{5, 25})

	x, ya, yb, err := geometry.ResampleOnUnion(a, b)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(x)
	fmt.Println(ya)
	fmt.Println(yb)
	// Output:
	// [0.5 1 2 2.5]
	// [5 10 20 25]
	// [5 10 20 25]
}
