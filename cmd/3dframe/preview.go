package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ArroyoDev-LLC/3dframe/pkg/joint"
	"github.com/ArroyoDev-LLC/3dframe/pkg/kernel"
	"github.com/ArroyoDev-LLC/3dframe/pkg/kernel/sdfx"
	"github.com/ArroyoDev-LLC/3dframe/pkg/model"
)

func newPreviewCmd() *cobra.Command {
	var (
		vertices []string
		scale    float64
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "preview <model.json>",
		Short: "Mesh joints in-process, without the CAD toolchain",
		Long: "Preview evaluates joint solids with the built-in geometry kernel and\n" +
			"writes STL meshes directly, so joints can be inspected on machines\n" +
			"without openscad installed. Engraved labels are omitted.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], vertices, scale, outDir)
		},
	}

	cmd.Flags().StringSliceVarP(&vertices, "vertices", "v", nil,
		"vertices to preview: index, label, or N-M range (default: all)")
	cmd.Flags().Float64VarP(&scale, "scale", "s", 1.0, "uniform joint scale")
	cmd.Flags().StringVarP(&outDir, "out", "o", "previews", "output directory")

	return cmd
}

func runPreview(cmd *cobra.Command, modelPath string, selectors []string, scale float64, outDir string) error {
	frame, err := model.Load(modelPath)
	if err != nil {
		return err
	}

	var ids []int
	if len(selectors) > 0 {
		ids, err = resolveVertices(frame, selectors)
		if err != nil {
			return err
		}
	} else {
		for _, v := range frame.Vertices {
			ids = append(ids, v.ID)
		}
	}

	cfg := joint.DefaultConfig()
	cfg.Scale = scale
	k := sdfx.New()

	failed := 0
	for _, id := range ids {
		path, err := previewVertex(frame, id, cfg, k, outDir)
		if err != nil {
			failed++
			log.Printf("vertex %d: preview failed: %v", id, err)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d previews failed", failed, len(ids))
	}
	return nil
}

// previewVertex meshes one vertex's joint through the in-process kernel
// and writes it under outDir, returning the STL path.
func previewVertex(frame *model.Frame, id int, cfg joint.Config, k *sdfx.SdfxKernel, outDir string) (string, error) {
	layout, err := joint.Analyze(frame, id, cfg)
	if err != nil {
		return "", err
	}
	doc, err := joint.NewBuilder(cfg).Build(layout)
	if err != nil {
		return "", err
	}
	solid, err := kernel.Evaluate(k, doc.Root, doc.Segments)
	if err != nil {
		return "", err
	}
	if solid == nil {
		return "", fmt.Errorf("joint for vertex %d reduced to an empty solid", id)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create preview dir: %w", err)
	}
	path := filepath.Join(outDir, fmt.Sprintf("joint-v%d-%s.stl", doc.VertexID, doc.VertexLabel))
	if err := k.WriteSTL(solid, path); err != nil {
		return "", err
	}
	return path, nil
}
