package mesh

import (
	"cmp"
	"fmt"
	"slices"
)

// ID identifies a mesh in a [Tree]. IDs are never reused.
type ID int

type entry struct {
	mesh   *Mesh
	level  int
	active bool
}

// Tree is a collection of meshes organized by refinement level.
//
// The root mesh lives at level 0. Meshes at level l+1 refine intervals of
// meshes at level l, with steps smaller by the refinement coefficient. Meshes
// on the same level must not overlap.
//
// A Tree is not safe for concurrent mutation. Distinct meshes may be written
// to concurrently.
type Tree struct {
	coefficient int
	arena       []entry
	levels      [][]ID
}

// NewTree returns a tree whose level 0 consists of root.
//
// NewTree panics if coefficient is smaller than 2.
func NewTree(root *Mesh, coefficient int) *Tree {
	if coefficient < 2 {
		panic(fmt.Sprintf("mesh: invalid refinement coefficient %d", coefficient))
	}
	t := &Tree{coefficient: coefficient}
	t.Add(root, 0)
	return t
}

// Coefficient returns the refinement coefficient.
func (t *Tree) Coefficient() int { return t.coefficient }

// Root returns the level 0 mesh the tree was created with.
func (t *Tree) Root() *Mesh { return t.arena[0].mesh }

// Add inserts m at the given level and returns its ID.
func (t *Tree) Add(m *Mesh, level int) ID {
	if level < 0 {
		panic(fmt.Sprintf("mesh: invalid level %d", level))
	}
	id := ID(len(t.arena))
	t.arena = append(t.arena, entry{mesh: m, level: level, active: true})
	for len(t.levels) <= level {
		t.levels = append(t.levels, nil)
	}
	t.levels[level] = append(t.levels[level], id)
	return id
}

// Get returns the mesh with the given ID, whether it is active or not.
func (t *Tree) Get(id ID) *Mesh {
	return t.arena[id].mesh
}

// Active reports whether the mesh hasn't been superseded.
func (t *Tree) Active(id ID) bool {
	return t.arena[id].active
}

// LevelOf returns the level of the mesh with the given ID.
func (t *Tree) LevelOf(id ID) int {
	return t.arena[id].level
}

// Level returns the IDs of the active meshes at the given level, in insertion
// order.
func (t *Tree) Level(level int) []ID {
	if level < 0 || level >= len(t.levels) {
		return nil
	}
	var out []ID
	for _, id := range t.levels[level] {
		if t.arena[id].active {
			out = append(out, id)
		}
	}
	return out
}

// Levels returns the levels that have at least one active mesh, in ascending
// order.
func (t *Tree) Levels() []int {
	var out []int
	for l := range t.levels {
		if len(t.Level(l)) > 0 {
			out = append(out, l)
		}
	}
	return out
}

// MaxLevel returns the finest level with an active mesh.
func (t *Tree) MaxLevel() int {
	levels := t.Levels()
	if len(levels) == 0 {
		return -1
	}
	return levels[len(levels)-1]
}

// Len returns the number of active meshes.
func (t *Tree) Len() int {
	n := 0
	for _, e := range t.arena {
		if e.active {
			n++
		}
	}
	return n
}

// RemoveCoarseDuplicates deactivates every mesh whose interval is entirely
// covered by active meshes of finer levels. It returns the number of meshes
// deactivated.
func (t *Tree) RemoveCoarseDuplicates() int {
	removed := 0
	// finer holds the merged intervals of the active meshes above level l.
	var finer [][2]float64
	for l := len(t.levels) - 2; l >= 0; l-- {
		finer = merge(append(finer, t.intervals(l+1)...))
		if len(finer) == 0 {
			continue
		}
		for _, id := range t.levels[l] {
			e := &t.arena[id]
			if !e.active {
				continue
			}
			lo, hi := e.mesh.Bounds()
			if lo == hi {
				continue
			}
			if covers(finer, lo, hi) {
				e.active = false
				removed++
			}
		}
	}
	return removed
}

// intervals returns the bounds of the active meshes at level.
func (t *Tree) intervals(level int) [][2]float64 {
	var ivs [][2]float64
	for _, id := range t.levels[level] {
		if !t.arena[id].active {
			continue
		}
		lo, hi := t.arena[id].mesh.Bounds()
		ivs = append(ivs, [2]float64{lo, hi})
	}
	return ivs
}

// covers reports whether [lo, hi] lies within one of the sorted, disjoint
// intervals of merged.
func covers(merged [][2]float64, lo, hi float64) bool {
	i, _ := slices.BinarySearchFunc(merged, hi, func(iv [2]float64, hi float64) int {
		return cmp.Compare(iv[1], hi)
	})
	return i < len(merged) && merged[i][0] <= lo
}

type segment struct {
	a, b     float64
	solution float64
	residual float64
}

func (s segment) bounds() (lo, hi float64) {
	return min(s.a, s.b), max(s.a, s.b)
}

// Flatten merges all active meshes into a single mesh, coarse to fine. Every
// interval is taken from the finest active mesh covering it, so the result has
// neither overlaps nor gaps. Its Step is that of the root mesh.
//
// Each level is sorted once and merged into the segments of the coarser levels
// in a single linear pass.
//
// Flatten panics if the active meshes don't tile the root's interval.
func (t *Tree) Flatten() *Mesh {
	root := t.Root()

	// segs is sorted by lower bound.
	var segs []segment
	for l := range t.levels {
		var covered [][2]float64
		var added []segment
		for _, id := range t.levels[l] {
			e := t.arena[id]
			if !e.active {
				continue
			}
			lo, hi := e.mesh.Bounds()
			covered = append(covered, [2]float64{lo, hi})
			m := e.mesh
			for i := 1; i < len(m.Nodes); i++ {
				added = append(added, segment{
					a:        m.Nodes[i-1],
					b:        m.Nodes[i],
					solution: m.Solution[i],
					residual: m.Residual[i],
				})
			}
		}
		if len(added) == 0 {
			continue
		}
		slices.SortFunc(added, compareSegments)
		segs = mergeLevel(segs, merge(covered), added)
	}
	if len(segs) == 0 {
		panic("mesh: tree has no active meshes")
	}
	if root.Stop() < root.Start() {
		slices.Reverse(segs)
	}

	out := &Mesh{
		Nodes:              make([]float64, 0, len(segs)+1),
		Solution:           make([]float64, 0, len(segs)+1),
		Residual:           make([]float64, 0, len(segs)+1),
		Step:               root.Step,
		BoundaryCondition1: root.BoundaryCondition1,
		BoundaryCondition2: root.BoundaryCondition2,
	}
	out.Nodes = append(out.Nodes, segs[0].a)
	out.Solution = append(out.Solution, 0)
	out.Residual = append(out.Residual, 0)
	for i, s := range segs {
		if i > 0 && segs[i-1].b != s.a {
			panic(fmt.Sprintf("mesh: active meshes don't tile the domain near %g", s.a))
		}
		out.Nodes = append(out.Nodes, s.b)
		out.Solution = append(out.Solution, s.solution)
		out.Residual = append(out.Residual, s.residual)
	}
	if out.Start() != root.Start() || out.Stop() != root.Stop() {
		panic(fmt.Sprintf("mesh: flattened mesh spans [%g, %g], root spans [%g, %g]",
			out.Start(), out.Stop(), root.Start(), root.Stop()))
	}
	return out
}

func compareSegments(x, y segment) int {
	xlo, _ := x.bounds()
	ylo, _ := y.bounds()
	return cmp.Compare(xlo, ylo)
}

// merge sorts intervals and joins the ones that touch or overlap.
func merge(ivs [][2]float64) [][2]float64 {
	slices.SortFunc(ivs, func(a, b [2]float64) int { return cmp.Compare(a[0], b[0]) })
	var merged [][2]float64
	for _, iv := range ivs {
		if n := len(merged); n > 0 && iv[0] <= merged[n-1][1] {
			merged[n-1][1] = max(merged[n-1][1], iv[1])
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// mergeLevel drops the segments of segs that lie within covered and merges
// added into the rest. All three must be sorted by lower bound.
func mergeLevel(segs []segment, covered [][2]float64, added []segment) []segment {
	kept := segs[:0:0]
	j := 0
	for _, s := range segs {
		lo, hi := s.bounds()
		for j < len(covered) && covered[j][1] < hi {
			j++
		}
		if j < len(covered) && covered[j][0] <= lo {
			continue
		}
		kept = append(kept, s)
	}

	out := make([]segment, 0, len(kept)+len(added))
	for len(kept) > 0 && len(added) > 0 {
		if compareSegments(added[0], kept[0]) < 0 {
			out = append(out, added[0])
			added = added[1:]
		} else {
			out = append(out, kept[0])
			kept = kept[1:]
		}
	}
	out = append(out, kept...)
	return append(out, added...)
}
