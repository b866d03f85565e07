// Package coord converts points between cartesian, spherical, and cylindrical
// coordinates and reduces angles into canonical ranges.
//
// Spherical coordinates are (r, θ, φ), with θ the polar angle measured from
// the positive z axis, in [0, π], and φ the azimuth measured from the positive
// x axis, in (-π, π]. Cylindrical coordinates are (ρ, φ, z) with the same
// azimuth. All three are stored in an [r3.Vec] in that order.
//
// The flat variants operate on arrays of consecutive triples, the layout
// produced by evaluating a curve at many parameters and flattening the
// result.
package coord

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidDimension is returned when an input cannot be interpreted as
// triples of coordinates.
var ErrInvalidDimension = errors.New("invalid dimension")

// CartesianToSpherical converts p = (x, y, z) to (r, θ, φ).
// The origin maps to (0, 0, 0).
func CartesianToSpherical(p r3.Vec) r3.Vec {
	r := r3.Norm(p)
	if r == 0 {
		return r3.Vec{}
	}
	return r3.Vec{
		X: r,
		Y: math.Acos(clamp(p.Z / r)),
		Z: math.Atan2(p.Y, p.X),
	}
}

// SphericalToCartesian converts s = (r, θ, φ) to (x, y, z).
func SphericalToCartesian(s r3.Vec) r3.Vec {
	sinTheta, cosTheta := math.Sincos(s.Y)
	sinPhi, cosPhi := math.Sincos(s.Z)
	return r3.Vec{
		X: s.X * sinTheta * cosPhi,
		Y: s.X * sinTheta * sinPhi,
		Z: s.X * cosTheta,
	}
}

// CartesianToCylindrical converts p = (x, y, z) to (ρ, φ, z).
func CartesianToCylindrical(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: math.Hypot(p.X, p.Y),
		Y: math.Atan2(p.Y, p.X),
		Z: p.Z,
	}
}

// CylindricalToCartesian converts c = (ρ, φ, z) to (x, y, z).
func CylindricalToCartesian(c r3.Vec) r3.Vec {
	sin, cos := math.Sincos(c.Y)
	return r3.Vec{
		X: c.X * cos,
		Y: c.X * sin,
		Z: c.Z,
	}
}

// SphericalToCylindrical converts s = (r, θ, φ) to (ρ, φ, z).
func SphericalToCylindrical(s r3.Vec) r3.Vec {
	sin, cos := math.Sincos(s.Y)
	return r3.Vec{
		X: s.X * sin,
		Y: s.Z,
		Z: s.X * cos,
	}
}

// CylindricalToSpherical converts c = (ρ, φ, z) to (r, θ, φ).
func CylindricalToSpherical(c r3.Vec) r3.Vec {
	r := math.Hypot(c.X, c.Z)
	if r == 0 {
		return r3.Vec{}
	}
	return r3.Vec{
		X: r,
		Y: math.Atan2(c.X, c.Z),
		Z: c.Y,
	}
}

func clamp(x float64) float64 {
	return max(-1, min(1, x))
}

// CartesianToSphericalFlat applies [CartesianToSpherical] to every triple of
// a flat array.
func CartesianToSphericalFlat(flat []float64) ([]float64, error) {
	return mapFlat(flat, CartesianToSpherical)
}

// SphericalToCartesianFlat applies [SphericalToCartesian] to every triple of
// a flat array.
func SphericalToCartesianFlat(flat []float64) ([]float64, error) {
	return mapFlat(flat, SphericalToCartesian)
}

// CartesianToCylindricalFlat applies [CartesianToCylindrical] to every triple
// of a flat array.
func CartesianToCylindricalFlat(flat []float64) ([]float64, error) {
	return mapFlat(flat, CartesianToCylindrical)
}

// CylindricalToCartesianFlat applies [CylindricalToCartesian] to every triple
// of a flat array.
func CylindricalToCartesianFlat(flat []float64) ([]float64, error) {
	return mapFlat(flat, CylindricalToCartesian)
}

// SphericalToCylindricalFlat applies [SphericalToCylindrical] to every triple
// of a flat array.
func SphericalToCylindricalFlat(flat []float64) ([]float64, error) {
	return mapFlat(flat, SphericalToCylindrical)
}

// CylindricalToSphericalFlat applies [CylindricalToSpherical] to every triple
// of a flat array.
func CylindricalToSphericalFlat(flat []float64) ([]float64, error) {
	return mapFlat(flat, CylindricalToSpherical)
}

// Triples splits a flat array into its consecutive triples.
func Triples(flat []float64) ([]r3.Vec, error) {
	if len(flat)%3 != 0 {
		return nil, fmt.Errorf("%d values do not form triples: %w", len(flat), ErrInvalidDimension)
	}
	out := make([]r3.Vec, len(flat)/3)
	for i := range out {
		out[i] = r3.Vec{X: flat[3*i], Y: flat[3*i+1], Z: flat[3*i+2]}
	}
	return out, nil
}

// Flatten is the inverse of [Triples].
func Flatten(vs []r3.Vec) []float64 {
	out := make([]float64, 0, 3*len(vs))
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

func mapFlat(flat []float64, fn func(r3.Vec) r3.Vec) ([]float64, error) {
	vs, err := Triples(flat)
	if err != nil {
		return nil, err
	}
	for i, v := range vs {
		vs[i] = fn(v)
	}
	return Flatten(vs), nil
}
