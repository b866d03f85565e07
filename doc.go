// Package spacecurve provides parametric curves in three-dimensional space and
// measures them: it evaluates points and tangents and estimates arc length to
// a requested precision. It is intended for trajectory and path planning, such
// as tool paths or manipulator trajectories, where curves are given by their
// coordinate functions and have no usable closed-form length.
//
// # Curves
//
// [ParametricCurve] describes curves that can be evaluated at a parameter t
// over a domain [start, stop]. Points and vectors are
// [gonum.org/v1/gonum/spatial/r3.Vec] values.
// [Tangenter] is an optional interface implemented by curves that know their
// exact derivative; all other curves get their tangents from finite
// differences, see [TangentAt] and [Tangents].
//
// This package includes the following curves:
//   - [Line]
//   - [Arc], an elliptic arc
//   - [Helix]
//   - [Func], a curve given by arbitrary coordinate functions
//
// All of them embed [Base], which holds a name, the domain, and an optional
// [Frame] the curve's points are expressed in.
//
// # Arc length
//
// [EstimateLength] measures curves by adaptive mesh refinement. Every
// interval of a mesh over the domain is measured twice: once by integrating
// the speed with the trapezoidal rule ([TangentLength]) and once as the chord
// between its end points ([PolylineLength]). On nearly straight stretches the
// two agree; where the curve bends they don't, and only those intervals are
// refined. Each interval may use a share of the requested precision
// proportional to its width, so the error of the whole length stays within
// the precision. The meshes live in a [honnef.co/go/spacecurve/mesh.Tree], one
// level per refinement.
//
// Refinement stops when no interval needs it, or when the iteration limit is
// reached. The latter isn't an error: [LengthEstimate] reports whether the
// estimate converged, how many passes it took, and the remaining residual.
//
// # Coordinates
//
// The [honnef.co/go/spacecurve/coord] package converts between cartesian,
// spherical, and cylindrical coordinates and reduces angles. Vector helpers
// such as [UnitVector] and [AngleBetween] work on slices of any dimension.
package spacecurve
