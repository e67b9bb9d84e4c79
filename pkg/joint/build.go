package joint

import (
	"fmt"
	"math"

	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
	"github.com/ArroyoDev-LLC/3dframe/pkg/scad"
)

// boreOvershoot extends bores past the sleeve end so the subtraction
// leaves no zero-thickness membrane at the opening.
const boreOvershoot = 1.0

// UnresolvableCollisionError reports two sockets whose sleeves still
// overlap after the bounded core-enlargement retries.
type UnresolvableCollisionError struct {
	VertexID       int
	StrutA, StrutB int
	Separation     float64 // actual angle between the two sockets
	Required       float64 // separation needed at the final core radius
	Attempts       int
}

func (e *UnresolvableCollisionError) Error() string {
	return fmt.Sprintf("joint: vertex %d sockets for struts %d and %d overlap: separated %.1f deg, need %.1f deg after %d enlargements",
		e.VertexID, e.StrutA, e.StrutB,
		e.Separation*180/math.Pi, e.Required*180/math.Pi, e.Attempts)
}

// Builder constructs parametric joint solids from socket layouts.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder using cfg.
func NewBuilder(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build turns a socket layout into a joint solid document: a central body,
// one sleeved friction-fit bore per strut, and engraved identification
// labels. When the layout carries collision risk the core is grown in
// bounded steps until every adjacent socket pair clears, failing with
// UnresolvableCollisionError when the attempts run out.
//
// The retry loop is a three-state machine (initial, enlarged, failed): a
// placement either fits at the current core radius, grows the core by one
// step, or exhausts its attempt budget and fails deterministically.
func (b *Builder) Build(layout *SocketLayout) (*scad.Document, error) {
	coreR := b.cfg.CoreRadius()

	attempts := 0
	for {
		conflict := b.findConflict(layout, coreR)
		if conflict == nil {
			break
		}
		if attempts >= b.cfg.MaxEnlargeAttempts {
			conflict.Attempts = attempts
			return nil, conflict
		}
		coreR += b.cfg.EnlargeStep
		attempts++
	}

	return b.assemble(layout, coreR), nil
}

// findConflict returns the first socket pair whose sleeves would overlap
// at the given core radius, or nil when the placement fits. Every pair is
// checked, not just azimuth neighbors: two sockets near the reference axis
// can sort to opposite azimuths while being angularly coincident. Two
// sleeves clear when the distance between their axes at sleeve-tip reach
// exceeds the sum of their outer radii. Sleeves merging nearer the core is
// fine (they union into the body there), so the check runs where the
// bores open.
func (b *Builder) findConflict(layout *SocketLayout, coreR float64) *UnresolvableCollisionError {
	n := len(layout.Sockets)
	reach := coreR + b.cfg.SocketLength()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, c := layout.Sockets[i], layout.Sockets[j]
			sep := geometry.AngleBetween(a.Direction, c.Direction)
			gap := 2 * reach * math.Sin(sep/2)
			need := b.cfg.SleeveRadius(a.Radius) + b.cfg.SleeveRadius(c.Radius)
			if gap < need {
				return &UnresolvableCollisionError{
					VertexID:   layout.VertexID,
					StrutA:     a.StrutID,
					StrutB:     c.StrutID,
					Separation: sep,
					Required:   requiredSeparation(b.cfg.SleeveRadius(a.Radius), b.cfg.SleeveRadius(c.Radius), reach),
				}
			}
		}
	}
	return nil
}

// assemble builds the solid tree for a layout at the given core radius.
func (b *Builder) assemble(layout *SocketLayout, coreR float64) *scad.Document {
	cfg := b.cfg
	sleeveStart := coreR * 0.5 // sleeves embed halfway into the core
	sleeveLen := cfg.SocketLength() + (coreR - sleeveStart)
	boreDepth := cfg.SocketLength() - cfg.ShellThickness()

	body := []scad.Solid{scad.Sphere{R: coreR}}
	var cuts []scad.Solid
	bores := make([]scad.Bore, 0, len(layout.Sockets))

	for _, s := range layout.Sockets {
		sleeve := scad.Oriented(scad.Translate{
			By:    geometry.Vec3{Z: sleeveStart},
			Child: scad.Cylinder{H: sleeveLen, R: cfg.SleeveRadius(s.Radius)},
		}, s.Direction)
		body = append(body, sleeve)

		boreStart := sleeveStart + sleeveLen - boreDepth
		bore := scad.Oriented(scad.Translate{
			By:    geometry.Vec3{Z: boreStart},
			Child: scad.Cylinder{H: boreDepth + boreOvershoot, R: cfg.BoreRadius(s.Radius)},
		}, s.Direction)
		cuts = append(cuts, bore)

		cuts = append(cuts, b.socketLabel(s, coreR, sleeveStart+sleeveLen))
		bores = append(bores, scad.Bore{
			StrutID:   s.StrutID,
			Direction: s.Direction,
			Radius:    cfg.BoreRadius(s.Radius),
		})
	}

	cuts = append(cuts, b.coreLabel(layout, coreR))

	return &scad.Document{
		VertexID:    layout.VertexID,
		VertexLabel: layout.VertexLabel,
		Segments:    cfg.Segments,
		Bores:       bores,
		Root: scad.Difference{
			Children: append([]scad.Solid{scad.Union{Children: body}}, cuts...),
		},
	}
}

// socketLabel engraves the strut id and cut length on the outside of a
// sleeve at mid-length, facing outward from the sleeve axis. The cut
// length is how long the strut must be sawed: the center distance minus
// the material both joints keep below their bore floors.
func (b *Builder) socketLabel(s Socket, coreR, sleeveEnd float64) scad.Solid {
	content := fmt.Sprintf("S%d", s.StrutID)
	if cut := s.Length - 2*(b.cfg.CoreRadius()+b.cfg.ShellThickness()); cut > 0 {
		content = fmt.Sprintf("S%d %.0fmm", s.StrutID, cut)
	}
	out := geometry.Perpendicular(s.Direction)
	along := s.Direction.Scale((coreR + sleeveEnd) / 2)
	pos := along.Add(out.Scale(b.cfg.SleeveRadius(s.Radius) - b.cfg.LabelDepth/2))
	return scad.Translate{
		By: pos,
		Child: scad.Oriented(scad.Text{
			Content: content,
			Size:    b.cfg.LabelSize(),
			Depth:   b.cfg.LabelDepth,
			Halign:  "center",
			Valign:  "center",
		}, out),
	}
}

// coreLabel engraves the vertex label on the clearest side of the core:
// the direction pointing away from the socket cluster.
func (b *Builder) coreLabel(layout *SocketLayout, coreR float64) scad.Solid {
	var sum geometry.Vec3
	for _, s := range layout.Sockets {
		sum = sum.Add(s.Direction)
	}
	n, err := sum.Neg().Unit()
	if err != nil {
		// Sockets balance out; fall back to the reference axis side.
		n = layout.Axis
	}
	return scad.Translate{
		By: n.Scale(coreR - b.cfg.LabelDepth/2),
		Child: scad.Oriented(scad.Text{
			Content: fmt.Sprintf("%s/%d", layout.VertexLabel, layout.VertexID),
			Size:    b.cfg.LabelSize(),
			Depth:   b.cfg.LabelDepth,
			Halign:  "center",
			Valign:  "center",
		}, n),
	}
}
