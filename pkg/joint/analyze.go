package joint

import (
	"fmt"
	"math"
	"sort"

	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
	"github.com/ArroyoDev-LLC/3dframe/pkg/model"
)

// Socket is one entry of a SocketLayout: a strut arriving at the vertex,
// its unit direction pointing away from the vertex, and its nominal radius.
type Socket struct {
	StrutID   int
	Direction geometry.Vec3
	Radius    float64
	Length    float64

	// Azimuth is the socket's signed angle around the layout's reference
	// axis; sockets are sorted by it ascending.
	Azimuth float64
}

// SocketLayout is the per-vertex analysis result: the sockets in canonical
// angular order around Axis, plus clearance diagnostics.
type SocketLayout struct {
	VertexID    int
	VertexLabel string
	Sockets     []Socket
	Axis        geometry.Vec3

	// MinSeparation is the smallest angle between adjacent sockets in
	// sorted order, including the wraparound pair. 2*pi for cap joints.
	MinSeparation float64

	// CollisionRisk is set when any socket pair is closer than the
	// configured clearance angle. Advisory: the builder still attempts
	// construction with an enlarged core.
	CollisionRisk bool

	// Cap marks the degenerate but valid single-strut case.
	Cap bool
}

// IsolatedVertexError reports a vertex with no incident struts; there is
// nothing to build for it.
type IsolatedVertexError struct {
	VertexID int
}

func (e *IsolatedVertexError) Error() string {
	return fmt.Sprintf("joint: vertex %d has no incident struts", e.VertexID)
}

// Analyze computes the socket layout for one vertex of frame.
//
// Socket order is deterministic: directions are sorted by ascending azimuth
// around a reference axis chosen from the strut geometry itself (for two
// struts, the normal of the pair; otherwise the direction with the largest
// angle sum against all others). Ties fall back to polar angle and then
// strut id, so the ordering depends only on the parsed frame, never on map
// iteration or scheduling.
func Analyze(frame *model.Frame, vertexID int, cfg Config) (*SocketLayout, error) {
	v := frame.Vertex(vertexID)
	if v == nil {
		return nil, &model.MalformedModelError{Reason: fmt.Sprintf("vertex %d does not exist", vertexID)}
	}
	if len(v.Struts) == 0 {
		return nil, &IsolatedVertexError{VertexID: vertexID}
	}

	sockets := make([]Socket, 0, len(v.Struts))
	for _, sid := range v.Struts {
		strut := frame.Struts[sid]
		other := frame.Vertex(strut.OtherEnd(vertexID))
		dir, err := geometry.Direction(v.Position, other.Position)
		if err != nil {
			return nil, fmt.Errorf("joint: vertex %d strut %d: %w", vertexID, sid, err)
		}
		sockets = append(sockets, Socket{
			StrutID:   sid,
			Direction: dir,
			Radius:    strut.Radius,
			Length:    strut.Length,
		})
	}

	layout := &SocketLayout{
		VertexID:    vertexID,
		VertexLabel: v.Label,
		Sockets:     sockets,
	}

	if len(sockets) == 1 {
		layout.Cap = true
		layout.Axis = sockets[0].Direction
		layout.MinSeparation = 2 * math.Pi
		return layout, nil
	}

	layout.Axis = referenceAxis(sockets)
	orderSockets(layout)

	minSep := math.Inf(1)
	for i := range layout.Sockets {
		j := (i + 1) % len(layout.Sockets)
		sep := geometry.AngleBetween(layout.Sockets[i].Direction, layout.Sockets[j].Direction)
		if sep < minSep {
			minSep = sep
		}
	}
	layout.MinSeparation = minSep

	// Risk is judged over every pair, not just azimuth neighbors: sockets
	// near the reference axis can sort far apart yet point the same way.
risk:
	for i := range layout.Sockets {
		for j := i + 1; j < len(layout.Sockets); j++ {
			a, b := layout.Sockets[i], layout.Sockets[j]
			sep := geometry.AngleBetween(a.Direction, b.Direction)
			if sep < cfg.MinClearanceAngle(a.Radius, b.Radius) {
				layout.CollisionRisk = true
				break risk
			}
		}
	}

	return layout, nil
}

// referenceAxis picks the angular-ordering anchor for a layout. Two struts
// use their cross-product normal; more use the strut direction with the
// largest angle sum against all others, ties broken by input order.
func referenceAxis(sockets []Socket) geometry.Vec3 {
	if len(sockets) == 2 {
		n := sockets[0].Direction.Cross(sockets[1].Direction)
		if axis, err := n.Unit(); err == nil {
			return axis
		}
		// Collinear pair: any perpendicular anchors the plane.
		return geometry.Perpendicular(sockets[0].Direction)
	}

	best := 0
	bestSum := -1.0
	for i := range sockets {
		sum := 0.0
		for j := range sockets {
			if i != j {
				sum += geometry.AngleBetween(sockets[i].Direction, sockets[j].Direction)
			}
		}
		if sum > bestSum+geometry.Epsilon {
			best, bestSum = i, sum
		}
	}
	return sockets[best].Direction
}

// orderSockets sorts the layout's sockets ascending by azimuth around the
// reference axis, measured from a fixed in-plane reference direction.
func orderSockets(l *SocketLayout) {
	ref := referenceDirection(l)
	for i := range l.Sockets {
		l.Sockets[i].Azimuth = geometry.Azimuth(l.Sockets[i].Direction, ref, l.Axis)
	}
	sort.SliceStable(l.Sockets, func(i, j int) bool {
		a, b := l.Sockets[i], l.Sockets[j]
		if math.Abs(a.Azimuth-b.Azimuth) > geometry.Epsilon {
			return a.Azimuth < b.Azimuth
		}
		pa := geometry.AngleBetween(l.Axis, a.Direction)
		pb := geometry.AngleBetween(l.Axis, b.Direction)
		if math.Abs(pa-pb) > geometry.Epsilon {
			return pa < pb
		}
		return a.StrutID < b.StrutID
	})
}

// referenceDirection returns the azimuth zero mark: the first socket
// direction with a usable projection onto the plane orthogonal to the
// axis, or a deterministic perpendicular when all are axis-parallel.
func referenceDirection(l *SocketLayout) geometry.Vec3 {
	for _, s := range l.Sockets {
		p := geometry.ProjectOntoPlane(s.Direction, l.Axis)
		if !p.IsZero() {
			return s.Direction
		}
	}
	return geometry.Perpendicular(l.Axis)
}
