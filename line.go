package spacecurve

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Line represents the straight line Origin + t·Direction.
type Line struct {
	Base
	Origin    r3.Vec
	Direction r3.Vec
}

var _ ParametricCurve = Line{}
var _ Tangenter = Line{}

// NewLine returns a line through origin with the given direction, traversed
// from start to stop.
func NewLine(name string, origin, direction r3.Vec, start, stop float64) Line {
	return Line{
		Base:      Base{Name: name, Start: start, Stop: stop},
		Origin:    origin,
		Direction: direction,
	}
}

func (l Line) Eval(t float64) r3.Vec {
	return r3.Add(l.Origin, r3.Scale(t, l.Direction))
}

// Tangent returns the line's direction.
func (l Line) Tangent(t float64) r3.Vec {
	return l.Direction
}

// Segment returns the points at the start and stop of the domain.
func (l Line) Segment() (r3.Vec, r3.Vec) {
	return l.Eval(l.Start), l.Eval(l.Stop)
}

func (l Line) String() string {
	return fmt.Sprintf("Line(%s: %v + t·%v, t ∈ [%g, %g])", l.Base, l.Origin, l.Direction, l.Start, l.Stop)
}
