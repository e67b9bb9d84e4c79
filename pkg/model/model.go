// Package model holds the parsed frame graph: vertices, the struts
// connecting them, and the incidence lists tying the two together.
// A Frame is built once by Parse or Load and is read-only afterwards.
package model

import (
	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
)

// MillimetersPerInch converts frame files declared in inches to the
// millimeter unit used everywhere downstream.
const MillimetersPerInch = 25.4

// Vertex is one node of the frame graph. Struts lists the ids of every
// strut incident to this vertex, in edge input order.
type Vertex struct {
	ID       int
	Label    string
	Position geometry.Vec3
	Struts   []int
}

// Strut is one straight member of the frame. A and B are endpoint vertex
// ids; Length and Direction (unit, A toward B) are derived from the
// endpoint positions at parse time.
type Strut struct {
	ID        int
	A, B      int
	Radius    float64
	Length    float64
	Direction geometry.Vec3
}

// OtherEnd returns the endpoint of s that is not vid.
func (s Strut) OtherEnd(vid int) int {
	if s.A == vid {
		return s.B
	}
	return s.A
}

// Frame is the full parsed graph. Vertices and Struts are ordered by id.
type Frame struct {
	Vertices []Vertex
	Struts   []Strut

	labelIndex map[string]int
}

// Vertex returns the vertex with the given id, or nil.
func (f *Frame) Vertex(id int) *Vertex {
	if id < 0 || id >= len(f.Vertices) {
		return nil
	}
	return &f.Vertices[id]
}

// VertexByLabel returns the id of the vertex with the given two-letter
// label, or -1 when no such vertex exists.
func (f *Frame) VertexByLabel(label string) int {
	id, ok := f.labelIndex[label]
	if !ok {
		return -1
	}
	return id
}

// labelFor generates the printable vertex label for index i:
// 'AA', 'AB' ... 'AZ', 'BA' ... 'ZZ', then widening to 'AAA' and beyond.
// Labels never repeat, so label lookups and label-bearing artifacts stay
// unambiguous on frames past 676 vertices.
func labelFor(i int) string {
	width := 2
	span := 26 * 26
	for i >= span {
		i -= span
		span *= 26
		width++
	}
	buf := make([]byte, width)
	for j := width - 1; j >= 0; j-- {
		buf[j] = byte('A' + i%26)
		i /= 26
	}
	return string(buf)
}
