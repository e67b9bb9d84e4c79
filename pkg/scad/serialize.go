package scad

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write serializes doc as an OpenSCAD script. The script opens with a
// facet-count header and one machine-readable declaration per bore, then
// the solid tree.
func Write(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "$fn = %d;\n", doc.Segments)
	fmt.Fprintf(bw, "// 3dframe joint %s (vertex %d)\n", doc.VertexLabel, doc.VertexID)
	for _, b := range doc.Bores {
		fmt.Fprintf(bw, "// bore %d dir %.9g %.9g %.9g r %.9g\n",
			b.StrutID, b.Direction.X, b.Direction.Y, b.Direction.Z, b.Radius)
	}
	if err := writeSolid(bw, doc.Root, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func writeSolid(w *bufio.Writer, s Solid, depth int) error {
	ind := strings.Repeat("  ", depth)
	switch n := s.(type) {
	case Sphere:
		fmt.Fprintf(w, "%ssphere(r=%.9g);\n", ind, n.R)
	case Cylinder:
		fmt.Fprintf(w, "%scylinder(h=%.9g, r=%.9g);\n", ind, n.H, n.R)
	case Cube:
		fmt.Fprintf(w, "%scube([%.9g, %.9g, %.9g]);\n", ind, n.X, n.Y, n.Z)
	case Text:
		fmt.Fprintf(w, "%slinear_extrude(height=%.9g) text(%q, size=%.9g, halign=%q, valign=%q);\n",
			ind, n.Depth, n.Content, n.Size, n.Halign, n.Valign)
	case Translate:
		fmt.Fprintf(w, "%stranslate([%.9g, %.9g, %.9g])\n", ind, n.By.X, n.By.Y, n.By.Z)
		return writeSolid(w, n.Child, depth+1)
	case Rotate:
		fmt.Fprintf(w, "%srotate(a=%.9g, v=[%.9g, %.9g, %.9g])\n",
			ind, n.Degrees, n.Axis.X, n.Axis.Y, n.Axis.Z)
		return writeSolid(w, n.Child, depth+1)
	case Union:
		return writeGroup(w, "union", n.Children, depth)
	case Difference:
		return writeGroup(w, "difference", n.Children, depth)
	case Intersection:
		return writeGroup(w, "intersection", n.Children, depth)
	default:
		return fmt.Errorf("scad: unknown solid node %T", s)
	}
	return nil
}

func writeGroup(w *bufio.Writer, op string, children []Solid, depth int) error {
	ind := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s() {\n", ind, op)
	for _, c := range children {
		if err := writeSolid(w, c, depth+1); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "%s}\n", ind)
	return nil
}
