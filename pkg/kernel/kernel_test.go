package kernel

import (
	"testing"

	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
	"github.com/ArroyoDev-LLC/3dframe/pkg/scad"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Evaluate against a counting stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel counts operations so Evaluate's tree walk can be checked
// without a real geometry backend.
type stubKernel struct {
	primitives  int
	unions      int
	differences int
	transforms  int
}

func (k *stubKernel) prim(max [3]float64) Solid {
	k.primitives++
	return &stubSolid{maxBB: max}
}

func (k *stubKernel) Box(x, y, z float64) Solid { return k.prim([3]float64{x, y, z}) }
func (k *stubKernel) Cylinder(height, radius float64, _ int) Solid {
	return k.prim([3]float64{radius, radius, height})
}
func (k *stubKernel) Sphere(radius float64) Solid { return k.prim([3]float64{radius, radius, radius}) }

func (k *stubKernel) Union(a, _ Solid) Solid { k.unions++; return a }
func (k *stubKernel) Difference(a, _ Solid) Solid {
	k.differences++
	return a
}
func (k *stubKernel) Intersection(a, _ Solid) Solid { return a }

func (k *stubKernel) Translate(s Solid, _, _, _ float64) Solid {
	k.transforms++
	return s
}
func (k *stubKernel) Rotate(s Solid, _ [3]float64, _ float64) Solid {
	k.transforms++
	return s
}

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestEvaluateWalksTree(t *testing.T) {
	k := &stubKernel{}
	tree := scad.Difference{Children: []scad.Solid{
		scad.Union{Children: []scad.Solid{
			scad.Sphere{R: 20},
			scad.Rotate{Axis: geometry.Vec3{X: 1}, Degrees: 90, Child: scad.Cylinder{H: 50, R: 10}},
		}},
		scad.Translate{By: geometry.Vec3{Z: 5}, Child: scad.Cylinder{H: 40, R: 8}},
	}}

	s, err := Evaluate(k, tree, 48)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if s == nil {
		t.Fatal("Evaluate() returned nil solid")
	}
	if k.primitives != 3 {
		t.Errorf("primitives = %d, want 3", k.primitives)
	}
	if k.unions != 1 {
		t.Errorf("unions = %d, want 1", k.unions)
	}
	if k.differences != 1 {
		t.Errorf("differences = %d, want 1", k.differences)
	}
	if k.transforms != 2 {
		t.Errorf("transforms = %d, want 2", k.transforms)
	}
}

func TestEvaluateSkipsText(t *testing.T) {
	k := &stubKernel{}
	tree := scad.Difference{Children: []scad.Solid{
		scad.Sphere{R: 20},
		scad.Translate{By: geometry.Vec3{X: 18}, Child: scad.Text{Content: "AA", Size: 6, Depth: 1.5}},
	}}

	s, err := Evaluate(k, tree, 48)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if s == nil {
		t.Fatal("Evaluate() returned nil solid")
	}
	if k.primitives != 1 {
		t.Errorf("primitives = %d, want 1 (text must be skipped)", k.primitives)
	}
	if k.differences != 0 {
		t.Errorf("differences = %d, want 0 (skipped cut leaves nothing to subtract)", k.differences)
	}
}

func TestEvaluateTextOnlyTreeIsNil(t *testing.T) {
	k := &stubKernel{}
	s, err := Evaluate(k, scad.Union{Children: []scad.Solid{scad.Text{Content: "S1"}}}, 48)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if s != nil {
		t.Error("Evaluate() of a text-only tree should reduce to nil")
	}
}
