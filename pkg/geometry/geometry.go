// Package geometry provides the vector and angle math used by the rest of
// the joint engine. All functions are pure and deterministic for a given
// input modulo floating-point associativity.
package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the coincidence tolerance for points and the degeneracy
// tolerance for near-zero vectors, in model units (mm).
const Epsilon = 1e-9

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z float64
}

// DegenerateInputError reports inputs too close together (or too short)
// to yield a meaningful direction.
type DegenerateInputError struct {
	Op string
	A  Vec3
	B  Vec3
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("geometry: degenerate input to %s: %v and %v coincide within tolerance", e.Op, e.A, e.B)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Neg returns -v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsZero reports whether v is shorter than Epsilon.
func (v Vec3) IsZero() bool {
	return v.Length() < Epsilon
}

// Unit returns v normalized to unit length. It returns a
// DegenerateInputError when v is shorter than Epsilon.
func (v Vec3) Unit() (Vec3, error) {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}, &DegenerateInputError{Op: "Unit", A: v}
	}
	return v.Scale(1 / l), nil
}

// Direction returns the unit vector pointing from a to b. It returns a
// DegenerateInputError when a and b coincide within Epsilon.
func Direction(a, b Vec3) (Vec3, error) {
	d := b.Sub(a)
	l := d.Length()
	if l < Epsilon {
		return Vec3{}, &DegenerateInputError{Op: "Direction", A: a, B: b}
	}
	return d.Scale(1 / l), nil
}

// AngleBetween returns the angle in [0, pi] between u and v. The inputs are
// normalized internally and the cosine is clamped to [-1, 1] so that
// near-parallel inputs never push acos outside its domain.
func AngleBetween(u, v Vec3) float64 {
	lu, lv := u.Length(), v.Length()
	if lu < Epsilon || lv < Epsilon {
		return 0
	}
	c := u.Dot(v) / (lu * lv)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// ProjectOntoPlane returns the component of v orthogonal to normal.
// The normal need not be unit length.
func ProjectOntoPlane(v, normal Vec3) Vec3 {
	nn := normal.Dot(normal)
	if nn < Epsilon*Epsilon {
		return v
	}
	return v.Sub(normal.Scale(v.Dot(normal) / nn))
}

// Azimuth returns the signed angle of v around axis, measured from ref,
// mapped into [0, 2*pi). ref and v are first projected onto the plane
// orthogonal to axis. When the projection of v is degenerate (v is parallel
// to axis) the azimuth is defined as 0.
func Azimuth(v, ref, axis Vec3) float64 {
	pv := ProjectOntoPlane(v, axis)
	pr := ProjectOntoPlane(ref, axis)
	if pv.Length() < Epsilon || pr.Length() < Epsilon {
		return 0
	}
	a := math.Atan2(pr.Cross(pv).Dot(axis)/axis.Length(), pr.Dot(pv))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Perpendicular returns an arbitrary unit vector orthogonal to v, chosen
// deterministically. v must be non-degenerate.
func Perpendicular(v Vec3) Vec3 {
	// Cross against the global axis v is least aligned with.
	basis := Vec3{X: 1}
	if math.Abs(v.X) >= math.Abs(v.Y) && math.Abs(v.X) >= math.Abs(v.Z) {
		basis = Vec3{Y: 1}
	}
	p := v.Cross(basis)
	u, err := p.Unit()
	if err != nil {
		return Vec3{Z: 1}
	}
	return u
}
