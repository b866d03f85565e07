package mesh

import (
	"testing"
)

func fill(m *Mesh, solution float64) {
	for i := 1; i < m.Len(); i++ {
		m.SetAnnotations(i, solution, solution/10)
	}
}

func TestTreeLevels(t *testing.T) {
	root := NewUniform(0, 4, 1, 0, 0)
	tree := NewTree(root, 2)
	if tree.Root() != root {
		t.Error("root mismatch")
	}
	if tree.Coefficient() != 2 {
		t.Errorf("got coefficient %d, want 2", tree.Coefficient())
	}

	a := tree.Add(Refine(root, 0, 1, 2), 1)
	b := tree.Add(Refine(root, 2, 4, 2), 1)
	diff(t, []int{0, 1}, tree.Levels())
	diff(t, []ID{a, b}, tree.Level(1))
	if tree.MaxLevel() != 1 {
		t.Errorf("got max level %d, want 1", tree.MaxLevel())
	}
	if tree.LevelOf(b) != 1 {
		t.Errorf("got level %d, want 1", tree.LevelOf(b))
	}
	if tree.Len() != 3 {
		t.Errorf("got %d meshes, want 3", tree.Len())
	}
	if tree.Level(7) != nil {
		t.Error("expected no meshes at level 7")
	}
}

func TestTreeFlatten(t *testing.T) {
	root := NewUniform(0, 4, 1, 0, 0)
	fill(root, 10)
	tree := NewTree(root, 2)

	child := Refine(root, 1, 2, 2)
	fill(child, 1)
	tree.Add(child, 1)

	grandchild := Refine(child, 0, 1, 2)
	fill(grandchild, 0.25)
	tree.Add(grandchild, 2)

	flat := tree.Flatten()
	diff(t, []float64{0, 1, 1.25, 1.5, 2, 3, 4}, flat.Nodes)
	diff(t, []float64{0, 10, 0.25, 0.25, 1, 10, 10}, flat.Solution)
	if got, want := flat.Integral(), 31.5; got != want {
		t.Errorf("got integral %v, want %v", got, want)
	}
	if flat.Residual[0] != 0 || flat.Solution[0] != 0 {
		t.Error("first node must not carry a solution")
	}
}

func TestTreeFlattenDecreasing(t *testing.T) {
	root := NewUniform(2, 0, 1, 0, 0)
	fill(root, 3)
	tree := NewTree(root, 2)
	child := Refine(root, 1, 2, 2)
	fill(child, 1)
	tree.Add(child, 1)

	flat := tree.Flatten()
	diff(t, []float64{2, 1, 0.5, 0}, flat.Nodes)
	diff(t, []float64{0, 3, 1, 1}, flat.Solution)
}

func TestRemoveCoarseDuplicates(t *testing.T) {
	root := NewUniform(0, 4, 1, 0, 0)
	fill(root, 10)
	tree := NewTree(root, 2)

	// A child spanning the root entirely supersedes it.
	child := Refine(root, 0, 4, 2)
	fill(child, 1)
	id := tree.Add(child, 1)

	partial := Refine(child, 0, 2, 2)
	fill(partial, 0.25)
	tree.Add(partial, 2)

	if n := tree.RemoveCoarseDuplicates(); n != 1 {
		t.Errorf("removed %d meshes, want 1", n)
	}
	if tree.Active(0) {
		t.Error("root should have been deactivated")
	}
	if !tree.Active(id) {
		t.Error("partially covered child must stay active")
	}
	diff(t, []int{1, 2}, tree.Levels())
	if tree.Get(0) != root {
		t.Error("IDs must stay valid after deactivation")
	}

	flat := tree.Flatten()
	if got, want := flat.Integral(), 4*0.25+6*1.0; got != want {
		t.Errorf("got integral %v, want %v", got, want)
	}
	if flat.Start() != 0 || flat.Stop() != 4 {
		t.Errorf("flattened mesh spans [%v, %v], want [0, 4]", flat.Start(), flat.Stop())
	}
}

func TestRemoveCoarseDuplicatesAdjacent(t *testing.T) {
	// Two adjacent children together cover a mesh neither covers alone.
	root := NewUniform(0, 2, 1, 0, 0)
	tree := NewTree(root, 2)
	tree.Add(Refine(root, 0, 1, 2), 1)
	tree.Add(Refine(root, 1, 2, 2), 1)
	if n := tree.RemoveCoarseDuplicates(); n != 1 {
		t.Errorf("removed %d meshes, want 1", n)
	}
	if n := tree.RemoveCoarseDuplicates(); n != 0 {
		t.Errorf("second pass removed %d meshes, want 0", n)
	}
	diff(t, []int{1}, tree.Levels())
	diff(t, []float64{0, 0.5, 1, 1.5, 2}, tree.Flatten().Nodes)
}

func TestTreeInvalidCoefficient(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewTree(NewUniform(0, 1, 1, 0, 0), 1)
}

// manyChildren returns a tree whose root has n intervals, every other one
// refined by its own child mesh.
func manyChildren(n int) *Tree {
	root := NewUniform(0, float64(n), 1, 0, 0)
	fill(root, 1)
	tree := NewTree(root, 2)
	for i := 0; i < n; i += 2 {
		child := Refine(root, i, i+1, 2)
		fill(child, 0.5)
		tree.Add(child, 1)
	}
	return tree
}

func TestTreeFlattenManyMeshes(t *testing.T) {
	const n = 20000
	tree := manyChildren(n)
	if tree.RemoveCoarseDuplicates() != 0 {
		t.Error("partially refined root was removed")
	}
	flat := tree.Flatten()
	if got, want := flat.Len(), n+n/2+1; got != want {
		t.Fatalf("got %d nodes, want %d", got, want)
	}
	for i := 1; i < flat.Len(); i++ {
		if flat.Nodes[i] <= flat.Nodes[i-1] {
			t.Fatalf("nodes %d and %d aren't increasing", i-1, i)
		}
	}
	if got, want := flat.Integral(), float64(n); got != want {
		t.Errorf("got integral %v, want %v", got, want)
	}
}

func BenchmarkTreeFlatten(b *testing.B) {
	tree := manyChildren(20000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Flatten()
	}
}
