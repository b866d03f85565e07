package spacecurve

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/spacecurve/coord"
)

// Norm returns the Euclidean norm of v.
func Norm(v []float64) float64 {
	return floats.Norm(v, 2)
}

// UnitVector returns v scaled to unit length. The zero vector is returned
// unchanged, as a new slice, instead of dividing by zero; callers that need a
// direction have to handle that case themselves.
func UnitVector(v []float64) []float64 {
	out := slices.Clone(v)
	if n := Norm(v); n != 0 {
		floats.Scale(1/n, out)
	}
	return out
}

// AngleBetween returns the angle between v1 and v2, in [0, π].
//
// The shorter vector is padded with zeros. A zero vector has a zero unit
// vector, which makes its angle to anything π/2.
func AngleBetween(v1, v2 []float64) float64 {
	n := max(len(v1), len(v2))
	u1 := pad(UnitVector(v1), n)
	u2 := pad(UnitVector(v2), n)
	return math.Acos(max(-1, min(1, floats.Dot(u1, u2))))
}

func pad(v []float64, n int) []float64 {
	if len(v) >= n {
		return v
	}
	return append(v, make([]float64, n-len(v))...)
}

// Vec3 converts a slice of three coordinates to a vector.
func Vec3(v []float64) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fmt.Errorf("got %d coordinates, want 3: %w", len(v), ErrInvalidDimension)
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

// Vec3s converts a flat array of consecutive triples to vectors.
func Vec3s(flat []float64) ([]r3.Vec, error) {
	return coord.Triples(flat)
}

// Unit3 is like [r3.Unit] but returns the zero vector for a zero input instead
// of NaNs.
func Unit3(v r3.Vec) r3.Vec {
	if v == (r3.Vec{}) {
		return v
	}
	return r3.Unit(v)
}

// Angle3 returns the angle between two vectors, in [0, π]. It follows the
// conventions of [AngleBetween].
func Angle3(v1, v2 r3.Vec) float64 {
	return math.Acos(max(-1, min(1, r3.Dot(Unit3(v1), Unit3(v2)))))
}
