package spacecurve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Helix is a helix around the axis x = Radius, y = 0, starting at the origin
// and rising by Pitch along z per full turn.
type Helix struct {
	Base
	Radius float64
	Pitch  float64
	// Clockwise flips the sign of the y coordinate.
	Clockwise bool
}

var _ ParametricCurve = Helix{}
var _ Tangenter = Helix{}

// NewHelix returns a helix traversed from angle start to angle stop.
func NewHelix(name string, radius, pitch float64, clockwise bool, start, stop float64) Helix {
	return Helix{
		Base:      Base{Name: name, Start: start, Stop: stop},
		Radius:    radius,
		Pitch:     pitch,
		Clockwise: clockwise,
	}
}

// Direction returns -1 for clockwise helices and 1 otherwise.
func (h Helix) Direction() float64 {
	return direction(h.Clockwise)
}

func (h Helix) Eval(t float64) r3.Vec {
	sin, cos := math.Sincos(t)
	return r3.Vec{
		X: h.Radius - h.Radius*cos,
		Y: h.Direction() * h.Radius * sin,
		Z: h.Pitch / (2 * math.Pi) * t,
	}
}

func (h Helix) Tangent(t float64) r3.Vec {
	sin, cos := math.Sincos(t)
	return r3.Vec{
		X: h.Radius * sin,
		Y: h.Direction() * h.Radius * cos,
		Z: h.Pitch / (2 * math.Pi),
	}
}

func (h Helix) String() string {
	return fmt.Sprintf("Helix(%s: r=%g, pitch=%g, clockwise=%t, t ∈ [%g, %g])", h.Base, h.Radius, h.Pitch, h.Clockwise, h.Start, h.Stop)
}
