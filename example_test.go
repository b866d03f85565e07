package spacecurve_test

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/spacecurve"
)

func ExampleEstimateLength() {
	h := spacecurve.NewHelix("thread", 1, 0.5, false, 0, 4*math.Pi)
	est, err := spacecurve.EstimateLength(h, &spacecurve.LengthOptions{Precision: 1e-9})
	if err != nil {
		panic(err)
	}
	fmt.Printf("length %.6f, converged %t\n", est.Length, est.Converged)
	// Output:
	// length 12.606097, converged true
}

func ExampleFunc() {
	// A curve given only by its coordinate functions. Without derivatives,
	// tangents come from finite differences.
	c := spacecurve.Func{
		Base: spacecurve.Base{Name: "parabola", Start: 0, Stop: 1},
		X:    func(t float64) float64 { return t },
		Y:    func(t float64) float64 { return t * t },
	}
	est, err := spacecurve.EstimateLength(c, &spacecurve.LengthOptions{Precision: 1e-8, Step: 1e-5})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4f\n", est.Length)
	// Output:
	// 1.4789
}

func ExampleLine() {
	l := spacecurve.NewLine("diagonal", r3.Vec{}, r3.Vec{X: 1, Y: 2, Z: 2}, 0, 1)
	fmt.Printf("%.9f\n", spacecurve.Arclen(l, 1e-9))
	// Output:
	// 3.000000000
}
