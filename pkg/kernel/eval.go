package kernel

import (
	"fmt"

	"github.com/ArroyoDev-LLC/3dframe/pkg/scad"
)

// Evaluate walks a joint solid tree and builds it on k. Text nodes are
// skipped: engraved labels need font tessellation the kernels do not
// carry, and previews do not need them. The returned solid is nil only
// when the whole tree reduces to skipped nodes.
func Evaluate(k Kernel, s scad.Solid, segments int) (Solid, error) {
	switch n := s.(type) {
	case scad.Sphere:
		return k.Sphere(n.R), nil
	case scad.Cylinder:
		return k.Cylinder(n.H, n.R, segments), nil
	case scad.Cube:
		return k.Box(n.X, n.Y, n.Z), nil
	case scad.Text:
		return nil, nil
	case scad.Translate:
		child, err := Evaluate(k, n.Child, segments)
		if err != nil || child == nil {
			return child, err
		}
		return k.Translate(child, n.By.X, n.By.Y, n.By.Z), nil
	case scad.Rotate:
		child, err := Evaluate(k, n.Child, segments)
		if err != nil || child == nil {
			return child, err
		}
		return k.Rotate(child, [3]float64{n.Axis.X, n.Axis.Y, n.Axis.Z}, n.Degrees), nil
	case scad.Union:
		return evalGroup(k, n.Children, segments, k.Union)
	case scad.Intersection:
		return evalGroup(k, n.Children, segments, k.Intersection)
	case scad.Difference:
		if len(n.Children) == 0 {
			return nil, nil
		}
		acc, err := Evaluate(k, n.Children[0], segments)
		if err != nil {
			return nil, err
		}
		for _, c := range n.Children[1:] {
			cut, err := Evaluate(k, c, segments)
			if err != nil {
				return nil, err
			}
			if cut == nil || acc == nil {
				continue
			}
			acc = k.Difference(acc, cut)
		}
		return acc, nil
	default:
		return nil, fmt.Errorf("kernel: unknown solid node %T", s)
	}
}

func evalGroup(k Kernel, children []scad.Solid, segments int, combine func(a, b Solid) Solid) (Solid, error) {
	var acc Solid
	for _, c := range children {
		s, err := Evaluate(k, c, segments)
		if err != nil {
			return nil, err
		}
		if s == nil {
			continue
		}
		if acc == nil {
			acc = s
		} else {
			acc = combine(acc, s)
		}
	}
	return acc, nil
}
