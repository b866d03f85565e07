package spacecurve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Arc is an elliptic arc in the xy plane, centered on the origin, with the
// semi-major axis A along x and the semi-minor axis B along y.
//
// Its fields may be changed after construction, but [NewArc] is the only place
// that enforces A >= B. Changing a curve while its length is being computed on
// another goroutine is a data race.
type Arc struct {
	Base
	A, B float64
	// Clockwise flips the sign of the y coordinate.
	Clockwise bool
}

var _ ParametricCurve = Arc{}
var _ Tangenter = Arc{}

// NewArc returns an elliptic arc with semi-axes a and b, in either order,
// traversed from angle start to angle stop.
func NewArc(name string, a, b float64, clockwise bool, start, stop float64) Arc {
	if b > a {
		a, b = b, a
	}
	return Arc{
		Base:      Base{Name: name, Start: start, Stop: stop},
		A:         a,
		B:         b,
		Clockwise: clockwise,
	}
}

// Direction returns -1 for clockwise arcs and 1 otherwise.
func (a Arc) Direction() float64 {
	return direction(a.Clockwise)
}

func direction(clockwise bool) float64 {
	if clockwise {
		return -1
	}
	return 1
}

func (a Arc) Eval(t float64) r3.Vec {
	sin, cos := math.Sincos(t)
	return r3.Vec{
		X: a.A * cos,
		Y: a.Direction() * a.B * sin,
	}
}

func (a Arc) Tangent(t float64) r3.Vec {
	sin, cos := math.Sincos(t)
	return r3.Vec{
		X: -a.A * sin,
		Y: a.Direction() * a.B * cos,
	}
}

// Eccentricity returns sqrt(1 - B²/A²).
func (a Arc) Eccentricity() float64 {
	if a.A == 0 {
		return 0
	}
	r := a.B / a.A
	return math.Sqrt(1 - r*r)
}

// FocalDistance returns the distance of the foci from the center.
func (a Arc) FocalDistance() float64 {
	return a.A * a.Eccentricity()
}

func (a Arc) String() string {
	return fmt.Sprintf("Arc(%s: a=%g, b=%g, clockwise=%t, t ∈ [%g, %g])", a.Base, a.A, a.B, a.Clockwise, a.Start, a.Stop)
}
