package spacecurve

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"honnef.co/go/spacecurve/mesh"
)

// LengthOptions controls [EstimateLength]. The zero value of every field
// selects its default.
type LengthOptions struct {
	// Precision is the absolute accuracy of the length. It is split among the
	// mesh intervals in proportion to their width, and an interval is refined
	// until its residual fits its share. Defaults to [DefaultAccuracy].
	Precision float64
	// MaxIterations caps the number of refinement passes. Defaults to 1000.
	MaxIterations int
	// MaxNodes caps the number of nodes a single pass may evaluate. Defaults
	// to 1<<20.
	MaxNodes int
	// InitialSegments is the number of intervals of the root mesh. It must
	// be at least 2. Defaults to 2.
	InitialSegments int
	// RefinementCoefficient is the factor by which the step shrinks per
	// level. Defaults to 2.
	RefinementCoefficient int
	// Step is the finite-difference step for curves without an exact
	// tangent. Defaults to [DefaultStep].
	Step float64
	// Concurrency is the number of meshes evaluated in parallel. Values of 1
	// or less evaluate sequentially. The curve must be safe for concurrent
	// evaluation.
	Concurrency int
}

func (opts *LengthOptions) resolve() (LengthOptions, error) {
	var o LengthOptions
	if opts != nil {
		o = *opts
	}
	if math.IsNaN(o.Precision) || o.Precision < 0 {
		return o, fmt.Errorf("precision %v: %w", o.Precision, ErrInvalidOption)
	}
	if o.Precision == 0 {
		o.Precision = DefaultAccuracy
	}
	if o.MaxIterations < 0 {
		return o, fmt.Errorf("max iterations %d: %w", o.MaxIterations, ErrInvalidOption)
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = 1000
	}
	if o.MaxNodes < 0 {
		return o, fmt.Errorf("max nodes %d: %w", o.MaxNodes, ErrInvalidOption)
	}
	if o.MaxNodes == 0 {
		o.MaxNodes = 1 << 20
	}
	if o.InitialSegments < 0 || o.InitialSegments == 1 {
		return o, fmt.Errorf("initial segments %d: %w", o.InitialSegments, ErrInvalidOption)
	}
	if o.InitialSegments == 0 {
		o.InitialSegments = 2
	}
	if o.RefinementCoefficient == 1 || o.RefinementCoefficient < 0 {
		return o, fmt.Errorf("refinement coefficient %d: %w", o.RefinementCoefficient, ErrInvalidOption)
	}
	if o.RefinementCoefficient == 0 {
		o.RefinementCoefficient = 2
	}
	if math.IsNaN(o.Step) || math.IsInf(o.Step, 0) || o.Step < 0 {
		return o, fmt.Errorf("step %v: %w", o.Step, ErrInvalidOption)
	}
	if o.Step == 0 {
		o.Step = DefaultStep
	}
	return o, nil
}

// Pass describes one refinement pass of [EstimateLength].
type Pass struct {
	// Level is the tree level whose meshes were evaluated.
	Level int
	// Meshes is the number of meshes evaluated.
	Meshes int
	// Nodes is the number of nodes evaluated.
	Nodes int
	// Refinements is the number of intervals that exceeded the precision.
	Refinements int
	// MaxResidual is the largest residual of the evaluated meshes.
	MaxResidual float64
}

// LengthEstimate is the result of [EstimateLength].
type LengthEstimate struct {
	// Length is the estimated arc length.
	Length float64
	// Converged reports whether all residuals fell below the precision. If
	// false, the estimator ran out of iterations or nodes and Length is the
	// best estimate available at that point.
	Converged bool
	// Iterations is the number of refinement passes performed.
	Iterations int
	// MaxResidual is the largest residual of the final, flattened mesh.
	MaxResidual float64
	// ResidualSum is the sum of the residuals of the flattened mesh. It
	// bounds the error of Length and is at most the precision if Converged is
	// true.
	ResidualSum float64
	// Passes describes every pass, in order.
	Passes []Pass
	// Mesh is the flattened mesh. Its Solution holds the length of the curve
	// between consecutive nodes and its Residual the discrepancy of the two
	// estimates on that interval.
	Mesh *mesh.Mesh
}

// Cumulative returns the arc length from the start of the curve to every node
// of the flattened mesh.
func (est LengthEstimate) Cumulative() []float64 {
	if est.Mesh == nil {
		return nil
	}
	return est.Mesh.Cumulative()
}

// Arclen returns the length of c to the given accuracy, using [EstimateLength]
// with default options otherwise. It returns NaN if the length can't be
// estimated.
func Arclen(c ParametricCurve, accuracy float64) float64 {
	est, err := EstimateLength(c, &LengthOptions{Precision: accuracy})
	if err != nil {
		return math.NaN()
	}
	return est.Length
}

// EstimateLength computes the arc length of c over its domain by adaptive
// mesh refinement.
//
// Every mesh interval gets two independent length estimates: the trapezoidal
// integral of the speed and the chord between its end points. Their
// discrepancy, together with the discrepancy between the trapezoid and its
// Richardson extrapolation, is the interval's residual. Where the residual
// exceeds the interval's share of the precision, the interval is covered by a
// finer mesh on the next level, and only that mesh is evaluated in the next
// pass. Refinement stops once no interval needs it, or when opts.MaxIterations
// passes have been performed or the next pass would exceed opts.MaxNodes. The
// length is the sum of the extrapolated integrals over the flattened tree.
//
// Finite-difference tangents limit the achievable precision: if the noise of
// the speeds, roughly the machine epsilon divided by opts.Step, exceeds the
// precision per unit of t, the estimate won't converge.
//
// Running out of iterations isn't an error; the estimate reports it by having
// Converged set to false. An error is returned for invalid options and for
// curves that evaluate to non-finite points or tangents.
//
// Lengths are independent of c's frame, since frames are rigid.
func EstimateLength(c ParametricCurve, opts *LengthOptions) (LengthEstimate, error) {
	o, err := opts.resolve()
	if err != nil {
		return LengthEstimate{}, err
	}
	start, stop := c.Domain()
	if math.IsNaN(start) || math.IsNaN(stop) || math.IsInf(start, 0) || math.IsInf(stop, 0) {
		return LengthEstimate{}, fmt.Errorf("domain [%v, %v]: %w", start, stop, ErrNonFinite)
	}
	if start == stop {
		return LengthEstimate{Converged: true, Mesh: mesh.NewUniform(start, stop, 0, 0, 0)}, nil
	}

	span := math.Abs(stop - start)
	root := mesh.NewUniform(start, stop, (stop-start)/float64(o.InitialSegments), 0, 0)
	tree := mesh.NewTree(root, o.RefinementCoefficient)
	log := Logger()

	var est LengthEstimate
	for {
		level := tree.MaxLevel()
		ids := tree.Level(level)
		meshes := make([]*mesh.Mesh, len(ids))
		for i, id := range ids {
			meshes[i] = tree.Get(id)
		}
		if err := evaluateAll(c, meshes, o); err != nil {
			return LengthEstimate{}, err
		}
		est.Iterations++

		pass := Pass{Level: level, Meshes: len(meshes)}
		var chunks [][3]int
		nextNodes := 0
		for i, m := range meshes {
			pass.Nodes += m.Len()
			pass.MaxResidual = max(pass.MaxResidual, m.MaxResidual())
			// Each interval gets a share of the precision proportional to its
			// width, so that the residuals of a converged mesh sum to at most
			// the precision.
			threshold := o.Precision * math.Abs(m.Step) / span
			for _, iv := range mesh.RefinementPoints(m, threshold) {
				chunks = append(chunks, [3]int{i, iv[0], iv[1]})
				nextNodes += (iv[1]-iv[0])*o.RefinementCoefficient + 1
			}
		}
		pass.Refinements = len(chunks)
		est.Passes = append(est.Passes, pass)
		log.Debug("refinement pass",
			slog.Int("iteration", est.Iterations),
			slog.Int("level", level),
			slog.Int("meshes", pass.Meshes),
			slog.Int("nodes", pass.Nodes),
			slog.Int("refinements", pass.Refinements),
			slog.Float64("max_residual", pass.MaxResidual))

		if len(chunks) == 0 {
			est.Converged = true
			break
		}
		if est.Iterations >= o.MaxIterations || nextNodes > o.MaxNodes {
			log.Warn("arc length did not converge",
				slog.Int("iterations", est.Iterations),
				slog.Int("pending_nodes", nextNodes),
				slog.Float64("max_residual", pass.MaxResidual),
				slog.Float64("precision", o.Precision))
			break
		}

		for _, ch := range chunks {
			tree.Add(mesh.Refine(meshes[ch[0]], ch[1], ch[2], o.RefinementCoefficient), level+1)
		}
		tree.RemoveCoarseDuplicates()
	}

	est.Mesh = tree.Flatten()
	est.Length = est.Mesh.Integral()
	est.MaxResidual = est.Mesh.MaxResidual()
	est.ResidualSum = floats.Sum(est.Mesh.Residual)
	return est, nil
}

func evaluateAll(c ParametricCurve, meshes []*mesh.Mesh, o LengthOptions) error {
	start, stop := c.Domain()
	lo, hi := min(start, stop), max(start, stop)
	if o.Concurrency <= 1 || len(meshes) == 1 {
		for _, m := range meshes {
			if err := evaluate(c, m, o.Step, lo, hi); err != nil {
				return err
			}
		}
		return nil
	}

	// Sibling meshes don't overlap and each goroutine only writes to its own
	// mesh.
	var g errgroup.Group
	g.SetLimit(o.Concurrency)
	for _, m := range meshes {
		m := m
		g.Go(func() error { return evaluate(c, m, o.Step, lo, hi) })
	}
	return g.Wait()
}

// evaluate annotates every interval of m. The solution is the speed
// integrated with Simpson's rule, i.e. the trapezoidal rule extrapolated from
// the interval and its two halves. The residual is the larger of the
// trapezoid's distance to the chord and to the extrapolated value.
//
// Finite differences are one-sided only at the ends of the curve's domain
// [lo, hi], so that a node shared by several meshes always gets the same
// tangent.
func evaluate(c ParametricCurve, m *mesh.Mesh, step, lo, hi float64) error {
	n := m.Len()
	pts := Points(c, m.Nodes)
	speeds := make([]float64, n)
	for i, t := range m.Nodes {
		d := Central
		switch t {
		case lo:
			d = Forward
		case hi:
			d = Backward
		}
		v := TangentAt(c, t, step, d)
		if !isFinite(pts[i]) {
			return fmt.Errorf("point at t=%v: %w", t, ErrNonFinite)
		}
		if !isFinite(v) {
			return fmt.Errorf("tangent at t=%v: %w", t, ErrNonFinite)
		}
		speeds[i] = r3.Norm(v)
	}

	m.SetAnnotations(0, 0, 0)
	for i := 1; i < n; i++ {
		t0, t1 := m.Nodes[i-1], m.Nodes[i]
		mid := TangentAt(c, t0+(t1-t0)/2, step, Central)
		if !isFinite(mid) {
			return fmt.Errorf("tangent at t=%v: %w", t0+(t1-t0)/2, ErrNonFinite)
		}
		trap := trapezoid(t0, t1, speeds[i-1], speeds[i])
		simpson := math.Abs(t1-t0) / 6 * (speeds[i-1] + 4*r3.Norm(mid) + speeds[i])
		chord := r3.Norm(r3.Sub(pts[i], pts[i-1]))
		m.SetAnnotations(i, simpson, max(math.Abs(trap-chord), math.Abs(simpson-trap)))
	}
	return nil
}
