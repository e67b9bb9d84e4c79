package export

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ArroyoDev-LLC/3dframe/pkg/joint"
	"github.com/ArroyoDev-LLC/3dframe/pkg/model"
	"github.com/ArroyoDev-LLC/3dframe/pkg/shard"
)

// VertexResult is the outcome of one vertex's analyze-build-export run.
type VertexResult struct {
	VertexID int
	Label    string
	Artifact *Artifact
	Err      error
}

// Summary aggregates a shard run. It is the primary operator-facing
// failure signal: per-vertex failures are recorded here, not surfaced as
// an aborted batch.
type Summary struct {
	Results []VertexResult
}

// Succeeded returns the number of vertices that exported cleanly.
func (s *Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of vertices that recorded an error.
func (s *Summary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

// String formats the summary as an operator report, one line per failure.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d succeeded, %d failed of %d vertices",
		s.Succeeded(), s.Failed(), len(s.Results))
	for _, r := range s.Results {
		if r.Err != nil {
			fmt.Fprintf(&b, "\n  vertex %d (%s): %v", r.VertexID, r.Label, r.Err)
		}
	}
	return b.String()
}

// Engine runs the joint pipeline for every vertex of a shard: analyze,
// build, export. Geometry and external-tool failures are scoped to their
// vertex; the engine records them and continues, since one pathological
// vertex must not block joints for the rest of the object.
type Engine struct {
	Frame    *model.Frame
	Config   joint.Config
	Exporter *Exporter

	// Concurrency bounds parallel exports within this worker. Zero or
	// negative means sequential.
	Concurrency int
}

// Run processes every vertex of ws and returns the aggregate summary.
// The returned error is non-nil only for batch-level problems (a shard
// referencing vertices the frame does not have); per-vertex failures land
// in the summary.
func (e *Engine) Run(ctx context.Context, ws shard.WorkShard) (*Summary, error) {
	for _, id := range ws.VertexIDs {
		if e.Frame.Vertex(id) == nil {
			return nil, &model.MalformedModelError{
				Reason: fmt.Sprintf("shard references vertex %d but frame has %d vertices", id, len(e.Frame.Vertices)),
			}
		}
	}

	cfg := e.Config
	if ws.Scale > 0 {
		cfg.Scale = ws.Scale
	}
	builder := joint.NewBuilder(cfg)

	summary := &Summary{Results: make([]VertexResult, len(ws.VertexIDs))}
	g, gctx := errgroup.WithContext(ctx)
	if e.Concurrency > 1 {
		g.SetLimit(e.Concurrency)
	} else {
		g.SetLimit(1)
	}

	for i, id := range ws.VertexIDs {
		g.Go(func() error {
			summary.Results[i] = e.runVertex(gctx, builder, cfg, id)
			// Failures are recorded, never returned: returning would
			// cancel the rest of the shard.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

func (e *Engine) runVertex(ctx context.Context, builder *joint.Builder, cfg joint.Config, id int) VertexResult {
	res := VertexResult{VertexID: id, Label: e.Frame.Vertices[id].Label}

	layout, err := joint.Analyze(e.Frame, id, cfg)
	if err != nil {
		res.Err = err
		return res
	}
	if layout.CollisionRisk {
		log.Printf("vertex %d (%s): collision risk, min separation %.1f deg",
			id, res.Label, layout.MinSeparation*180/math.Pi)
	}

	doc, err := builder.Build(layout)
	if err != nil {
		res.Err = err
		return res
	}

	art, err := e.Exporter.Export(ctx, doc)
	if err != nil {
		res.Err = err
		return res
	}
	res.Artifact = art
	return res
}
