package sdfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ArroyoDev-LLC/3dframe/pkg/joint"
	"github.com/ArroyoDev-LLC/3dframe/pkg/kernel"
	"github.com/ArroyoDev-LLC/3dframe/pkg/model"
)

func TestBoxPlacement(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	// Minimum corner at the origin, like the OpenSCAD cube.
	const tol = 0.01
	expectMin := [3]float64{0, 0, 0}
	expectMax := [3]float64{100, 50, 25}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestCylinderPlacement(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 32)
	min, max := cyl.BoundingBox()

	// Base on z=0, extending along +Z.
	const tol = 0.01
	if math.Abs(min[2]) > tol {
		t.Errorf("cylinder base z = %f, expected 0", min[2])
	}
	if math.Abs(max[2]-50) > tol {
		t.Errorf("cylinder top z = %f, expected 50", max[2])
	}
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
}

func TestSphere(t *testing.T) {
	k := New()
	s := k.Sphere(25)
	min, max := s.BoundingBox()

	const tol = 0.01
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]+25) > tol || math.Abs(max[i]-25) > tol {
			t.Errorf("sphere bounds axis %d = [%f, %f], expected [-25, 25]", i, min[i], max[i])
		}
	}
	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
}

func TestDifference(t *testing.T) {
	k := New()

	sphere := k.Sphere(50)
	sphereMesh, err := k.ToMesh(sphere)
	if err != nil {
		t.Fatalf("ToMesh(sphere) failed: %v", err)
	}

	bore := k.Translate(k.Cylinder(120, 20, 32), 0, 0, -60)
	diff := k.Difference(sphere, bore)
	diffMesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}
	// A sphere with a bore through it should have more triangles than a
	// plain sphere.
	if diffMesh.TriangleCount() <= sphereMesh.TriangleCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than sphere (%d triangles)",
			diffMesh.TriangleCount(), sphereMesh.TriangleCount())
	}
}

func TestRotateAboutAxis(t *testing.T) {
	k := New()
	cyl := k.Cylinder(100, 5, 32)

	// Rotating the +Z cylinder 90 degrees about Y lays it along +X.
	rotated := k.Rotate(cyl, [3]float64{0, 1, 0}, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	zExtent := max[2] - min[2]

	const tol = 1.0
	if math.Abs(xExtent-100) > tol {
		t.Errorf("rotated X extent = %f, expected ~100", xExtent)
	}
	if math.Abs(zExtent-10) > tol {
		t.Errorf("rotated Z extent = %f, expected ~10", zExtent)
	}
}

func TestWriteSTL(t *testing.T) {
	k := New()
	s := k.Sphere(10)

	path := filepath.Join(t.TempDir(), "sphere.stl")
	if err := k.WriteSTL(s, path); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s failed: %v", path, err)
	}
	if fi.Size() == 0 {
		t.Fatal("STL file is empty")
	}

	// A missing directory must surface as an error, not a silent log line.
	if err := k.WriteSTL(s, filepath.Join(t.TempDir(), "missing", "sphere.stl")); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// TestEvaluateJointSolid runs a real two-socket joint through the sdfx
// backend end to end.
func TestEvaluateJointSolid(t *testing.T) {
	frame, err := model.Parse(model.RawModel{
		Vertices: [][3]float64{{0, 0, 0}, {200, 0, 0}, {0, 200, 0}},
		Edges: []model.RawEdge{
			{Vertices: [2]int{0, 1}, Radius: 12.7},
			{Vertices: [2]int{0, 2}, Radius: 12.7},
		},
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cfg := joint.DefaultConfig()
	layout, err := joint.Analyze(frame, 0, cfg)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	doc, err := joint.NewBuilder(cfg).Build(layout)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	k := New()
	solid, err := kernel.Evaluate(k, doc.Root, doc.Segments)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if solid == nil {
		t.Fatal("Evaluate returned nil solid")
	}

	// The joint must at least span its core diameter in every axis and
	// reach out along both socket directions.
	min, max := solid.BoundingBox()
	if max[0]-min[0] < 2*cfg.CoreRadius() || max[1]-min[1] < 2*cfg.CoreRadius() {
		t.Errorf("joint bounds too small: min=%v max=%v", min, max)
	}
	if max[0] < cfg.Reach()*0.9 || max[1] < cfg.Reach()*0.9 {
		t.Errorf("joint does not reach along socket directions: max=%v want ~%f", max, cfg.Reach())
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("joint mesh is empty")
	}
}
