package spacecurve

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewArcSortsAxes(t *testing.T) {
	a := NewArc("a", 1, 2, false, 0, math.Pi)
	if a.A != 2 || a.B != 1 {
		t.Errorf("got a=%v, b=%v, want a=2, b=1", a.A, a.B)
	}
	a = NewArc("a", 3, 2, false, 0, math.Pi)
	if a.A != 3 || a.B != 2 {
		t.Errorf("got a=%v, b=%v, want a=3, b=2", a.A, a.B)
	}
}

func TestArcEccentricity(t *testing.T) {
	a := NewArc("a", 2, 1, false, 0, math.Pi)
	if e := a.Eccentricity(); !approxEqual(e, math.Sqrt(3)/2, 1e-15) {
		t.Errorf("got eccentricity %v, want √3/2", e)
	}
	if f := a.FocalDistance(); !approxEqual(f, math.Sqrt(3), 1e-15) {
		t.Errorf("got focal distance %v, want √3", f)
	}

	circle := NewArc("c", 4, 4, false, 0, math.Pi)
	if e := circle.Eccentricity(); e != 0 {
		t.Errorf("circle has eccentricity %v", e)
	}
	if e := (Arc{}).Eccentricity(); e != 0 {
		t.Errorf("degenerate arc has eccentricity %v", e)
	}
}

func TestArcDirection(t *testing.T) {
	ccw := NewArc("ccw", 2, 1, false, 0, math.Pi)
	cw := NewArc("cw", 2, 1, true, 0, math.Pi)
	if ccw.Direction() != 1 || cw.Direction() != -1 {
		t.Errorf("got directions %v and %v", ccw.Direction(), cw.Direction())
	}
	for _, tt := range []float64{0, 0.5, 2, 4} {
		p, q := ccw.Eval(tt), cw.Eval(tt)
		if p.X != q.X || p.Y != -q.Y || p.Z != 0 || q.Z != 0 {
			t.Errorf("at %v: %v and %v aren't mirrored", tt, p, q)
		}
		v, w := ccw.Tangent(tt), cw.Tangent(tt)
		if v.X != w.X || v.Y != -w.Y {
			t.Errorf("at %v: tangents %v and %v aren't mirrored", tt, v, w)
		}
	}
	if p := ccw.Eval(math.Pi / 2); !vecNear(p, r3.Vec{Y: 1}, 1e-15) {
		t.Errorf("got %v at π/2", p)
	}
}
