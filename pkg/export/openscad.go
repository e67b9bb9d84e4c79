package export

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// OpenSCAD drives the openscad binary as both the mesh compiler and the
// preview renderer. The zero value uses "openscad" from PATH.
type OpenSCAD struct {
	Bin       string
	ExtraArgs []string
}

var _ Compiler = (*OpenSCAD)(nil)
var _ Renderer = (*OpenSCAD)(nil)

func (o *OpenSCAD) bin() string {
	if o.Bin != "" {
		return o.Bin
	}
	return "openscad"
}

// Compile compiles scadPath into the mesh file at outPath. The output
// format follows outPath's extension, as openscad itself resolves it.
func (o *OpenSCAD) Compile(ctx context.Context, scadPath, outPath string) error {
	args := append([]string{"--enable=all", "-o", outPath}, o.ExtraArgs...)
	args = append(args, scadPath)
	return o.run(ctx, args)
}

// RenderImage renders scadPath to a raster preview at imagePath.
func (o *OpenSCAD) RenderImage(ctx context.Context, scadPath, imagePath string) error {
	args := append([]string{"--render", "-o", imagePath}, o.ExtraArgs...)
	args = append(args, scadPath)
	return o.run(ctx, args)
}

func (o *OpenSCAD) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, o.bin(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return nil
	}
	toolErr := &ExternalToolError{
		Tool:   o.bin(),
		Stderr: strings.TrimSpace(stderr.String()),
		Err:    err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		toolErr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		// A timeout or cancellation is reported like any other tool
		// failure, with the context cause attached.
		toolErr.Err = ctxErr
	}
	return toolErr
}
