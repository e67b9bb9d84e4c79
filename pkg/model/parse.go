package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
)

// RawEdge is one edge entry of the frame-model file.
type RawEdge struct {
	Vertices [2]int  `json:"vertices"`
	Radius   float64 `json:"radius"`
}

// RawModel mirrors the frame-model file produced by the upstream compute
// step: a declared vertex count, ordered vertex positions, and ordered
// edges. Unit may be "mm" (default) or "in".
type RawModel struct {
	NumVertices int          `json:"num_vertices"`
	Unit        string       `json:"unit,omitempty"`
	Vertices    [][3]float64 `json:"vertices"`
	Edges       []RawEdge    `json:"edges"`
}

// EmptyModelError reports a frame-model file with zero vertices.
type EmptyModelError struct{}

func (e *EmptyModelError) Error() string {
	return "model: frame has no vertices"
}

// MalformedModelError reports a structurally invalid frame-model file.
type MalformedModelError struct {
	Reason string
}

func (e *MalformedModelError) Error() string {
	return "model: malformed frame: " + e.Reason
}

// Parse validates a RawModel and builds the Frame, converting coordinates
// and radii to millimeters when the declared unit is inches.
//
// Incidence lists are built in edge input order: for every edge, its id is
// appended to both endpoint vertices. This insertion order is canonical;
// downstream socket ordering ties back to it, so two runs over the same
// file produce identical joint geometry.
func Parse(raw RawModel) (*Frame, error) {
	if len(raw.Vertices) == 0 {
		return nil, &EmptyModelError{}
	}
	if raw.NumVertices != 0 && raw.NumVertices != len(raw.Vertices) {
		return nil, &MalformedModelError{
			Reason: fmt.Sprintf("declared vertex count %d but %d positions given", raw.NumVertices, len(raw.Vertices)),
		}
	}

	unit := 1.0
	switch raw.Unit {
	case "", "mm":
	case "in":
		unit = MillimetersPerInch
	default:
		return nil, &MalformedModelError{Reason: fmt.Sprintf("unknown unit %q", raw.Unit)}
	}

	f := &Frame{
		Vertices:   make([]Vertex, len(raw.Vertices)),
		Struts:     make([]Strut, len(raw.Edges)),
		labelIndex: make(map[string]int, len(raw.Vertices)),
	}
	for i, p := range raw.Vertices {
		f.Vertices[i] = Vertex{
			ID:       i,
			Label:    labelFor(i),
			Position: geometry.Vec3{X: p[0] * unit, Y: p[1] * unit, Z: p[2] * unit},
		}
		f.labelIndex[f.Vertices[i].Label] = i
	}

	for i, e := range raw.Edges {
		a, b := e.Vertices[0], e.Vertices[1]
		if a < 0 || a >= len(f.Vertices) || b < 0 || b >= len(f.Vertices) {
			return nil, &MalformedModelError{
				Reason: fmt.Sprintf("edge %d references vertex out of range [%d, %d]", i, a, b),
			}
		}
		if a == b {
			return nil, &MalformedModelError{Reason: fmt.Sprintf("edge %d connects vertex %d to itself", i, a)}
		}
		dir, err := geometry.Direction(f.Vertices[a].Position, f.Vertices[b].Position)
		if err != nil {
			return nil, &MalformedModelError{
				Reason: fmt.Sprintf("edge %d has coincident endpoints %d and %d", i, a, b),
			}
		}
		f.Struts[i] = Strut{
			ID:        i,
			A:         a,
			B:         b,
			Radius:    e.Radius * unit,
			Length:    f.Vertices[b].Position.Sub(f.Vertices[a].Position).Length(),
			Direction: dir,
		}
		f.Vertices[a].Struts = append(f.Vertices[a].Struts, i)
		f.Vertices[b].Struts = append(f.Vertices[b].Struts, i)
	}

	return f, nil
}

// Load reads and parses a frame-model file from disk.
func Load(path string) (*Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	var raw RawModel
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedModelError{Reason: err.Error()}
	}
	return Parse(raw)
}
