package spacecurve

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Frame is a Cartesian coordinate frame, placed in its parent frame by a
// rotation followed by a translation. A nil parent is the global frame.
//
// A point p expressed in the frame is Rotation.Rotate(p) + Origin in the
// parent frame. The zero Rotation is treated as the identity.
type Frame struct {
	Name     string
	Origin   r3.Vec
	Rotation r3.Rotation
	Parent   *Frame
}

// NewFrame returns a frame rotated by angle radians around axis and then
// moved to origin, relative to parent.
func NewFrame(name string, origin r3.Vec, angle float64, axis r3.Vec, parent *Frame) *Frame {
	rot := identity
	if angle != 0 {
		rot = r3.NewRotation(angle, axis)
	}
	return &Frame{
		Name:     name,
		Origin:   origin,
		Rotation: rot,
		Parent:   parent,
	}
}

var identity = r3.Rotation{Real: 1}

func (f *Frame) rotation() r3.Rotation {
	if f.Rotation == (r3.Rotation{}) {
		return identity
	}
	return f.Rotation
}

// ToParent converts p from f to its parent frame.
func (f *Frame) ToParent(p r3.Vec) r3.Vec {
	return r3.Add(f.rotation().Rotate(p), f.Origin)
}

// FromParent converts p from f's parent frame to f.
func (f *Frame) FromParent(p r3.Vec) r3.Vec {
	inv := r3.Rotation(quat.Conj(quat.Number(f.rotation())))
	return inv.Rotate(r3.Sub(p, f.Origin))
}

// ToGlobal converts p from f to the global frame.
func (f *Frame) ToGlobal(p r3.Vec) r3.Vec {
	for fr := f; fr != nil; fr = fr.Parent {
		p = fr.ToParent(p)
	}
	return p
}

// ToLocal converts p from the global frame to f.
func (f *Frame) ToLocal(p r3.Vec) r3.Vec {
	var chain []*Frame
	for fr := f; fr != nil; fr = fr.Parent {
		chain = append(chain, fr)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		p = chain[i].FromParent(p)
	}
	return p
}

// Depth returns the number of frames between f and the global frame.
func (f *Frame) Depth() int {
	n := 0
	for fr := f; fr != nil; fr = fr.Parent {
		n++
	}
	return n
}

func (f *Frame) String() string {
	if f == nil {
		return "global"
	}
	if f.Parent == nil {
		return f.Name
	}
	return f.Parent.String() + "/" + f.Name
}

// Framer is implemented by curves whose points are expressed in a frame other
// than the global one. Every curve embedding [Base] implements it.
type Framer interface {
	CoordinateFrame() *Frame
}

// GlobalPoints evaluates c at every parameter of ts and converts the points to
// the global frame. Curves without a frame are assumed to be global already.
func GlobalPoints(c ParametricCurve, ts []float64) []r3.Vec {
	pts := Points(c, ts)
	fr, ok := c.(Framer)
	if !ok || fr.CoordinateFrame() == nil {
		return pts
	}
	f := fr.CoordinateFrame()
	for i, p := range pts {
		pts[i] = f.ToGlobal(p)
	}
	return pts
}

// GlobalCurve wraps a curve so that it evaluates in the global frame. Its
// tangents are rotated but not translated.
type GlobalCurve struct {
	Curve ParametricCurve
	Frame *Frame
}

var _ ParametricCurve = GlobalCurve{}

// InGlobalFrame returns c expressed in the global frame. Curves without a
// frame are returned unchanged.
func InGlobalFrame(c ParametricCurve) ParametricCurve {
	fr, ok := c.(Framer)
	if !ok || fr.CoordinateFrame() == nil {
		return c
	}
	return GlobalCurve{Curve: c, Frame: fr.CoordinateFrame()}
}

func (g GlobalCurve) Eval(t float64) r3.Vec {
	return g.Frame.ToGlobal(g.Curve.Eval(t))
}

func (g GlobalCurve) Domain() (start, stop float64) {
	return g.Curve.Domain()
}

// HasTangent reports whether the wrapped curve has an exact tangent.
func (g GlobalCurve) HasTangent() bool {
	_, ok := exactTangent(g.Curve)
	return ok
}

func (g GlobalCurve) Tangent(t float64) r3.Vec {
	v := TangentAt(g.Curve, t, DefaultStep, Central)
	for fr := g.Frame; fr != nil; fr = fr.Parent {
		v = fr.rotation().Rotate(v)
	}
	return v
}
