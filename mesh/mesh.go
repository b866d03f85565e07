// Package mesh provides one-dimensional uniform meshes and a tree of meshes at
// increasing refinement levels, as used for adaptive integration.
//
// A [Mesh] is an ordered set of parameter samples, its nodes, each carrying a
// solution and a residual. The solution at node i describes the interval
// between nodes i-1 and i, which is why the first node's solution and residual
// are always zero.
//
// A [Tree] stores meshes in an arena and indexes them by level. Level 0 holds
// the root mesh; each finer level shrinks the step by the tree's refinement
// coefficient. Meshes that have been superseded by finer ones are marked
// inactive rather than removed, so IDs stay valid for the lifetime of the
// tree.
package mesh

import (
	"fmt"
	"math"
)

// Mesh is a uniform one-dimensional mesh.
type Mesh struct {
	// Nodes are the physical nodes of the mesh, in traversal order. They run
	// from the mesh's start to its stop, which may be decreasing.
	Nodes []float64
	// Solution and Residual are aligned with Nodes.
	Solution []float64
	Residual []float64
	// Step is the signed distance between consecutive nodes.
	Step float64

	// Boundary conditions aren't interpreted by this package; they are
	// carried for callers that solve boundary value problems on the mesh.
	BoundaryCondition1 float64
	BoundaryCondition2 float64
}

// NewUniform returns a mesh spanning [start, stop] with a step no larger than
// step in magnitude. The interval is split into ceil(|stop-start|/|step|) equal
// parts, at least one, and the last node is exactly stop.
//
// NewUniform panics if start and stop differ and step is zero or not finite.
func NewUniform(start, stop, step, bc1, bc2 float64) *Mesh {
	span := stop - start
	n := 1
	if span != 0 {
		if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
			panic(fmt.Sprintf("mesh: invalid step %v", step))
		}
		// Guard against the quotient landing a hair above an integer.
		q := math.Abs(span / step)
		n = max(1, int(math.Ceil(q-1e-9*q)))
	}
	m := &Mesh{
		Nodes:              make([]float64, n+1),
		Solution:           make([]float64, n+1),
		Residual:           make([]float64, n+1),
		Step:               span / float64(n),
		BoundaryCondition1: bc1,
		BoundaryCondition2: bc2,
	}
	for i := 0; i < n; i++ {
		m.Nodes[i] = start + float64(i)*m.Step
	}
	m.Nodes[n] = stop
	return m
}

// Len returns the number of nodes.
func (m *Mesh) Len() int { return len(m.Nodes) }

// Start returns the first node.
func (m *Mesh) Start() float64 { return m.Nodes[0] }

// Stop returns the last node.
func (m *Mesh) Stop() float64 { return m.Nodes[len(m.Nodes)-1] }

// Bounds returns the interval covered by the mesh with lo <= hi, regardless of
// traversal direction.
func (m *Mesh) Bounds() (lo, hi float64) {
	a, b := m.Start(), m.Stop()
	return min(a, b), max(a, b)
}

// SetAnnotations stores the solution and residual of node i.
func (m *Mesh) SetAnnotations(i int, solution, residual float64) {
	m.Solution[i] = solution
	m.Residual[i] = residual
}

// Integral sums the solution from left to right.
func (m *Mesh) Integral() float64 {
	var sum float64
	for _, s := range m.Solution {
		sum += s
	}
	return sum
}

// Cumulative returns the running sum of the solution at every node.
func (m *Mesh) Cumulative() []float64 {
	out := make([]float64, len(m.Solution))
	var sum float64
	for i, s := range m.Solution {
		sum += s
		out[i] = sum
	}
	return out
}

// MaxResidual returns the largest residual of the mesh.
func (m *Mesh) MaxResidual() float64 {
	var r float64
	for _, v := range m.Residual {
		r = max(r, v)
	}
	return r
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh[%g, %g; %d nodes, step %g]", m.Start(), m.Stop(), m.Len(), m.Step)
}

// RefinementPoints returns the node intervals of m that need refinement
// because their residual exceeds threshold.
//
// Each returned pair [lo, hi] covers a maximal run of nodes lo+1…hi whose
// residuals exceed threshold. Since a node's residual describes the interval
// ending at that node, the run is widened by the preceding node, and the
// interval to refine is Nodes[lo]…Nodes[hi]. Pairs are disjoint and ordered.
func RefinementPoints(m *Mesh, threshold float64) [][2]int {
	var out [][2]int
	start := -1
	for i := 1; i < len(m.Residual); i++ {
		if m.Residual[i] > threshold {
			if start < 0 {
				start = i - 1
			}
			continue
		}
		if start >= 0 {
			out = append(out, [2]int{start, i - 1})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, [2]int{start, len(m.Residual) - 1})
	}
	return out
}

// Refine returns a child mesh covering Nodes[lo]…Nodes[hi] of m with the step
// divided by coefficient. The child's nodes include all of the parent's nodes
// in that range.
func Refine(m *Mesh, lo, hi int, coefficient int) *Mesh {
	if lo < 0 || hi >= len(m.Nodes) || lo >= hi {
		panic(fmt.Sprintf("mesh: invalid refinement interval [%d, %d] of %d nodes", lo, hi, len(m.Nodes)))
	}
	if coefficient < 2 {
		panic(fmt.Sprintf("mesh: invalid refinement coefficient %d", coefficient))
	}
	n := (hi - lo) * coefficient
	start, stop := m.Nodes[lo], m.Nodes[hi]
	child := &Mesh{
		Nodes:              make([]float64, n+1),
		Solution:           make([]float64, n+1),
		Residual:           make([]float64, n+1),
		Step:               (stop - start) / float64(n),
		BoundaryCondition1: m.BoundaryCondition1,
		BoundaryCondition2: m.BoundaryCondition2,
	}
	for i := 0; i < n; i++ {
		if i%coefficient == 0 {
			// Share the parent's node exactly so that flattening lines up.
			child.Nodes[i] = m.Nodes[lo+i/coefficient]
		} else {
			child.Nodes[i] = start + float64(i)*child.Step
		}
	}
	child.Nodes[n] = stop
	return child
}
