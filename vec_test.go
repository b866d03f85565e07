package spacecurve

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNorm(t *testing.T) {
	if n := Norm([]float64{3, 4}); n != 5 {
		t.Errorf("got %v, want 5", n)
	}
	if n := Norm([]float64{1, 2, 2}); n != 3 {
		t.Errorf("got %v, want 3", n)
	}
	if n := Norm(nil); n != 0 {
		t.Errorf("got %v, want 0", n)
	}
}

func TestUnitVector(t *testing.T) {
	for _, v := range [][]float64{{3, 4}, {1, 2, 2}, {-1e-5, 7, 3, 9}, {1e10, 0, 0}} {
		u := UnitVector(v)
		if !approxEqual(Norm(u), 1, 1e-15) {
			t.Errorf("norm of unit vector of %v is %v", v, Norm(u))
		}
		if len(u) != len(v) {
			t.Errorf("unit vector of %v has %d components", v, len(u))
		}
	}

	zero := []float64{0, 0, 0}
	diff(t, zero, UnitVector(zero))

	// The input must not be modified.
	v := []float64{3, 4}
	UnitVector(v)
	diff(t, []float64{3, 4}, v)
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		v1, v2 []float64
		want   float64
	}{
		{[]float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{[]float64{1, 2, 3}, []float64{2, 4, 6}, 0},
		{[]float64{1, 2, 3}, []float64{-1, -2, -3}, math.Pi},
		{[]float64{1, 0, 0}, []float64{0, 1, 0}, math.Pi / 2},
		{[]float64{1, 1}, []float64{1, 0}, math.Pi / 4},
		// Padding
		{[]float64{1, 0}, []float64{0, 0, 1}, math.Pi / 2},
		{[]float64{1, 1}, []float64{1, 1, 0}, 0},
		// Degenerate
		{[]float64{0, 0, 0}, []float64{1, 2, 3}, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := AngleBetween(tt.v1, tt.v2); !approxEqual(got, tt.want, 1e-7) {
			t.Errorf("AngleBetween(%v, %v) = %v, want %v", tt.v1, tt.v2, got, tt.want)
		}
	}
}

func TestAngle3(t *testing.T) {
	if a := Angle3(r3.Vec{X: 1}, r3.Vec{Y: 2}); !approxEqual(a, math.Pi/2, 1e-15) {
		t.Errorf("got %v, want π/2", a)
	}
	if a := Angle3(r3.Vec{X: 1, Y: 1}, r3.Vec{X: -1, Y: -1}); !approxEqual(a, math.Pi, 1e-7) {
		t.Errorf("got %v, want π", a)
	}
	if a := Angle3(r3.Vec{}, r3.Vec{X: 1}); !approxEqual(a, math.Pi/2, 1e-15) {
		t.Errorf("got %v, want π/2", a)
	}
}

func TestUnit3(t *testing.T) {
	if u := Unit3(r3.Vec{}); u != (r3.Vec{}) {
		t.Errorf("got %v, want zero vector", u)
	}
	if u := Unit3(r3.Vec{X: 3, Z: 4}); !vecNear(u, r3.Vec{X: 0.6, Z: 0.8}, 1e-15) {
		t.Errorf("got %v", u)
	}
}

func TestVec3(t *testing.T) {
	v, err := Vec3([]float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if v != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("got %v", v)
	}
	for _, in := range [][]float64{nil, {1, 2}, {1, 2, 3, 4}} {
		if _, err := Vec3(in); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Vec3(%v): got error %v, want ErrInvalidDimension", in, err)
		}
	}

	vs, err := Vec3s([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}, vs)
	if _, err := Vec3s([]float64{1, 2, 3, 4}); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("got error %v, want ErrInvalidDimension", err)
	}
}
