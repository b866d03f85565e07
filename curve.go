package spacecurve

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/spacecurve/coord"
)

// DefaultAccuracy is a default value for functions that take an accuracy or
// precision argument.
const DefaultAccuracy = 1e-6

// DefaultStep is the default parameter step for finite-difference tangents.
//
// It is small enough for well-conditioned coordinate functions of moderate
// magnitude. Curves whose coordinates are large or vary wildly need a step
// chosen for them; no automatic step adaptation is performed.
const DefaultStep = 1e-10

var (
	// ErrInvalidDimension is returned when a vector cannot be interpreted as a
	// triple of coordinates.
	ErrInvalidDimension = coord.ErrInvalidDimension
	// ErrInvalidOption is returned for nonsensical length estimation options.
	ErrInvalidOption = errors.New("invalid option")
	// ErrNonFinite is returned when a domain, point, or tangent isn't finite.
	ErrNonFinite = errors.New("non-finite value")
)

// ParametricCurve describes a curve in space parametrized by a scalar t over
// a domain [start, stop]. The domain may be decreasing, in which case the
// curve is traversed backwards.
type ParametricCurve interface {
	// Eval evaluates the curve at parameter t.
	Eval(t float64) r3.Vec
	// Domain returns the parameter interval of the curve.
	Domain() (start, stop float64)
}

// Tangenter describes curves that know their exact derivative.
//
// Curves that don't implement it get their tangents from finite differences.
type Tangenter interface {
	// Tangent returns the derivative of the curve with respect to t.
	Tangent(t float64) r3.Vec
}

// Base contains the state shared by all curves: a name, an optional frame the
// points are expressed in, and the parameter domain.
//
// On its own, Base is the zero curve. Embed it to get [ParametricCurve.Domain]
// and [Framer] for free.
type Base struct {
	Name  string
	Frame *Frame
	Start float64
	Stop  float64
}

var _ ParametricCurve = Base{}

// Eval always returns the origin.
func (b Base) Eval(t float64) r3.Vec { return r3.Vec{} }

func (b Base) Domain() (start, stop float64) { return b.Start, b.Stop }

// CoordinateFrame implements [Framer].
func (b Base) CoordinateFrame() *Frame { return b.Frame }

func (b Base) String() string {
	if b.Name == "" {
		return "curve"
	}
	return b.Name
}

// Func is a curve defined by its coordinate functions. A nil coordinate
// function is constantly zero.
//
// If all of DX, DY, and DZ are set, they are used as the exact tangent.
// Otherwise tangents are approximated by finite differences.
type Func struct {
	Base
	X, Y, Z    func(t float64) float64
	DX, DY, DZ func(t float64) float64
}

var _ ParametricCurve = Func{}
var _ Tangenter = Func{}

func call(fn func(float64) float64, t float64) float64 {
	if fn == nil {
		return 0
	}
	return fn(t)
}

func (f Func) Eval(t float64) r3.Vec {
	return r3.Vec{X: call(f.X, t), Y: call(f.Y, t), Z: call(f.Z, t)}
}

// HasTangent reports whether f has all three derivative functions.
func (f Func) HasTangent() bool {
	return f.DX != nil && f.DY != nil && f.DZ != nil
}

// Tangent returns the exact tangent if f has one, and a central difference
// with [DefaultStep] otherwise.
func (f Func) Tangent(t float64) r3.Vec {
	if !f.HasTangent() {
		return difference(f, t, DefaultStep, Central)
	}
	return r3.Vec{X: f.DX(t), Y: f.DY(t), Z: f.DZ(t)}
}

// Difference selects a finite-difference scheme.
type Difference int

const (
	// Central uses (p(t+h/2) - p(t-h/2)) / h.
	Central Difference = iota
	// Forward uses (-3p(t) + 4p(t+h) - p(t+2h)) / 2h, for the start of a
	// domain.
	Forward
	// Backward uses (3p(t) - 4p(t-h) + p(t-2h)) / 2h, for the end of a
	// domain.
	Backward
)

func (d Difference) String() string {
	switch d {
	case Central:
		return "central"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "Difference(?)"
	}
}

func difference(c ParametricCurve, t, step float64, d Difference) r3.Vec {
	if step <= 0 {
		step = DefaultStep
	}
	switch d {
	case Forward:
		p0, p1, p2 := c.Eval(t), c.Eval(t+step), c.Eval(t+2*step)
		return r3.Scale(1/(2*step), r3.Sub(r3.Sub(r3.Scale(4, p1), r3.Scale(3, p0)), p2))
	case Backward:
		p0, p1, p2 := c.Eval(t), c.Eval(t-step), c.Eval(t-2*step)
		return r3.Scale(1/(2*step), r3.Add(r3.Sub(r3.Scale(3, p0), r3.Scale(4, p1)), p2))
	default:
		p0, p1 := c.Eval(t-step/2), c.Eval(t+step/2)
		return r3.Scale(1/step, r3.Sub(p1, p0))
	}
}

// exactTangent returns c's exact tangent, if it has one. Curves like [Func]
// that only sometimes know their tangent report it via HasTangent.
func exactTangent(c ParametricCurve) (Tangenter, bool) {
	if o, ok := c.(interface{ HasTangent() bool }); ok && !o.HasTangent() {
		return nil, false
	}
	tc, ok := c.(Tangenter)
	return tc, ok
}

// TangentAt returns the tangent of c at t.
//
// If c implements [Tangenter], its exact tangent is returned and step and d
// are ignored. Otherwise the tangent is approximated with the given
// finite-difference scheme. A step of zero or less means [DefaultStep].
func TangentAt(c ParametricCurve, t, step float64, d Difference) r3.Vec {
	if tc, ok := exactTangent(c); ok {
		return tc.Tangent(t)
	}
	return difference(c, t, step, d)
}

// Points evaluates c at every parameter of ts, in order.
func Points(c ParametricCurve, ts []float64) []r3.Vec {
	out := make([]r3.Vec, len(ts))
	for i, t := range ts {
		out[i] = c.Eval(t)
	}
	return out
}

// Coordinates evaluates c at every parameter of ts and returns the x, y, and
// z coordinates as separate slices.
func Coordinates(c ParametricCurve, ts []float64) (xs, ys, zs []float64) {
	xs = make([]float64, len(ts))
	ys = make([]float64, len(ts))
	zs = make([]float64, len(ts))
	for i, t := range ts {
		p := c.Eval(t)
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	return xs, ys, zs
}

// Tangents returns the tangents of c at every parameter of ts.
//
// Finite differences don't look outside of ts' range: the first sample uses a
// forward difference, the last one a backward difference, and all others a
// central difference. Curves implementing [Tangenter] use their exact tangent
// everywhere.
func Tangents(c ParametricCurve, ts []float64, step float64) []r3.Vec {
	out := make([]r3.Vec, len(ts))
	for i, t := range ts {
		d := Central
		if len(ts) > 1 {
			switch i {
			case 0:
				d = Forward
			case len(ts) - 1:
				d = Backward
			}
		}
		out[i] = TangentAt(c, t, step, d)
	}
	return out
}

// Speeds returns the magnitudes of [Tangents].
func Speeds(c ParametricCurve, ts []float64, step float64) []float64 {
	tangents := Tangents(c, ts, step)
	out := make([]float64, len(ts))
	for i, v := range tangents {
		out[i] = r3.Norm(v)
	}
	return out
}

// TangentLength estimates the length of c between the first and last
// parameter of ts by integrating the speed over t with the trapezoidal rule.
//
// ts should be monotonic. Decreasing samples give the same, positive, length
// as the reversed samples.
func TangentLength(c ParametricCurve, ts []float64, step float64) float64 {
	if len(ts) < 2 {
		return 0
	}
	speeds := Speeds(c, ts, step)
	switch {
	case slices.IsSorted(ts):
		return integrate.Trapezoidal(ts, speeds)
	case isDecreasing(ts):
		xs := slices.Clone(ts)
		slices.Reverse(xs)
		slices.Reverse(speeds)
		return integrate.Trapezoidal(xs, speeds)
	default:
		var sum float64
		for i := 1; i < len(ts); i++ {
			sum += trapezoid(ts[i-1], ts[i], speeds[i-1], speeds[i])
		}
		return sum
	}
}

// PolylineLength returns the length of the polyline through the points of c
// at the parameters of ts.
func PolylineLength(c ParametricCurve, ts []float64) float64 {
	var sum float64
	var prev r3.Vec
	for i, t := range ts {
		p := c.Eval(t)
		if i > 0 {
			sum += r3.Norm(r3.Sub(p, prev))
		}
		prev = p
	}
	return sum
}

func trapezoid(t0, t1, s0, s1 float64) float64 {
	return 0.5 * math.Abs(t1-t0) * (s0 + s1)
}

func isDecreasing(ts []float64) bool {
	for i := 1; i < len(ts); i++ {
		if ts[i] > ts[i-1] {
			return false
		}
	}
	return true
}

func isFinite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
