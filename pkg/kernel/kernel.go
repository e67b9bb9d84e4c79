// Package kernel defines the abstract geometry kernel interface used to
// evaluate joint solid trees in-process. Implementations (sdfx) provide
// solid modeling and boolean operations behind this interface, so previews
// and tests run without the external CAD toolchain installed.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Box has its minimum corner at the origin; Cylinder sits
	// on z=0 extending along +Z; Sphere is centered at the origin. These
	// placements match the OpenSCAD primitives the joint scripts use.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid
	Sphere(radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, axis [3]float64, degrees float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
