// Package export materializes joint solids: it writes the OpenSCAD script
// for a joint, drives the external CAD compiler to produce a mesh, and
// optionally drives the external renderer for a preview image. The batch
// engine in this package runs the full shard pipeline with per-vertex
// failure isolation.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ArroyoDev-LLC/3dframe/pkg/scad"
)

// Compiler compiles a joint script into a mesh artifact. Implementations
// are injected so tests can substitute a fake and exports can run
// concurrently without hidden shared state.
type Compiler interface {
	Compile(ctx context.Context, scadPath, outPath string) error
}

// Renderer produces a preview image for a joint script.
type Renderer interface {
	RenderImage(ctx context.Context, scadPath, imagePath string) error
}

// ExternalToolError wraps a collaborator failure: the tool's exit status
// and captured stderr. A context timeout surfaces through the same type.
type ExternalToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("export: %s failed (exit %d)", e.Tool, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// Artifact references the files produced for one joint.
type Artifact struct {
	VertexID  int
	Label     string
	ScadPath  string
	MeshPath  string
	ImagePath string // empty unless a preview render was requested
}

// Exporter writes joint scripts and drives the external collaborators.
// Output files are keyed by vertex id plus label, so concurrent workers
// writing to the same directory never collide.
type Exporter struct {
	Compiler  Compiler
	Renderer  Renderer // required only when Render is set
	OutDir    string
	RenderDir string // preview image directory; defaults under OutDir
	Format    string // mesh format extension, default "stl"
	Render    bool
}

// Export writes doc's script, compiles it, and optionally renders a
// preview image. Paths derive from the vertex id and label.
func (e *Exporter) Export(ctx context.Context, doc *scad.Document) (*Artifact, error) {
	format := e.Format
	if format == "" {
		format = "stl"
	}
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create output dir: %w", err)
	}

	base := fmt.Sprintf("joint-v%d-%s", doc.VertexID, doc.VertexLabel)
	art := &Artifact{
		VertexID: doc.VertexID,
		Label:    doc.VertexLabel,
		ScadPath: filepath.Join(e.OutDir, base+".scad"),
		MeshPath: filepath.Join(e.OutDir, base+"."+format),
	}

	f, err := os.Create(art.ScadPath)
	if err != nil {
		return nil, fmt.Errorf("export: write script: %w", err)
	}
	if err := scad.Write(f, doc); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: write script: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("export: write script: %w", err)
	}

	if err := e.Compiler.Compile(ctx, art.ScadPath, art.MeshPath); err != nil {
		return nil, err
	}

	if e.Render && e.Renderer != nil {
		dir := e.RenderDir
		if dir == "" {
			dir = filepath.Join(e.OutDir, "previews")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("export: create render dir: %w", err)
		}
		art.ImagePath = filepath.Join(dir, base+".png")
		if err := e.Renderer.RenderImage(ctx, art.ScadPath, art.ImagePath); err != nil {
			return nil, err
		}
	}

	return art, nil
}
