// Package scad models a parametric joint solid as an immutable tree of
// primitive nodes and serializes it to an OpenSCAD script, the compilation
// contract with the external CAD tool. Nodes are value types built
// bottom-up; sub-trees are never mutated after construction, so shapes may
// be shared between joints without aliasing hazards.
package scad

import (
	"math"

	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
)

// Solid is a node of the parametric solid tree.
type Solid interface {
	isSolid()
}

// Sphere is a sphere of radius R centered at the origin.
type Sphere struct {
	R float64
}

// Cylinder is a cylinder of height H and radius R. Its base sits on the
// z=0 plane and it extends along +Z, matching OpenSCAD's default.
type Cylinder struct {
	H, R float64
}

// Cube is an axis-aligned box with its minimum corner at the origin.
type Cube struct {
	X, Y, Z float64
}

// Text is a text label extruded Depth along +Z on the z=0 plane.
type Text struct {
	Content string
	Size    float64
	Depth   float64
	Halign  string
	Valign  string
}

// Translate moves its child by By.
type Translate struct {
	By    geometry.Vec3
	Child Solid
}

// Rotate rotates its child by Degrees around Axis (through the origin).
type Rotate struct {
	Axis    geometry.Vec3
	Degrees float64
	Child   Solid
}

// Union combines its children into one solid.
type Union struct {
	Children []Solid
}

// Difference subtracts every child after the first from the first.
type Difference struct {
	Children []Solid
}

// Intersection keeps only the volume common to all children.
type Intersection struct {
	Children []Solid
}

func (Sphere) isSolid()       {}
func (Cylinder) isSolid()     {}
func (Cube) isSolid()         {}
func (Text) isSolid()         {}
func (Translate) isSolid()    {}
func (Rotate) isSolid()       {}
func (Union) isSolid()        {}
func (Difference) isSolid()   {}
func (Intersection) isSolid() {}

// Bore records the direction and radius of one socket bore of a joint, as
// declared in the script header. The declarations are machine-readable so
// a compiled joint can be traced back to the strut it receives.
type Bore struct {
	StrutID   int
	Direction geometry.Vec3
	Radius    float64
}

// Document is a complete joint script: identifying metadata, the declared
// bores, and the solid tree itself.
type Document struct {
	VertexID    int
	VertexLabel string
	Segments    int // OpenSCAD $fn facet count
	Bores       []Bore
	Root        Solid
}

// Oriented returns s rotated so its +Z axis points along dir. dir must be
// a unit vector.
func Oriented(s Solid, dir geometry.Vec3) Solid {
	z := geometry.Vec3{Z: 1}
	angle := geometry.AngleBetween(z, dir)
	if angle < geometry.Epsilon {
		return s
	}
	axis := z.Cross(dir)
	if axis.IsZero() {
		// dir is -Z: any horizontal axis flips it.
		axis = geometry.Vec3{X: 1}
	}
	return Rotate{Axis: axis, Degrees: angle * 180 / math.Pi, Child: s}
}
