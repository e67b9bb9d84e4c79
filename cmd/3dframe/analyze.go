package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/ArroyoDev-LLC/3dframe/pkg/geometry"
	"github.com/ArroyoDev-LLC/3dframe/pkg/joint"
	"github.com/ArroyoDev-LLC/3dframe/pkg/model"
)

func newAnalyzeCmd() *cobra.Command {
	var scale float64

	cmd := &cobra.Command{
		Use:   "analyze <model.json>",
		Short: "Report vertices whose sockets are at collision risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], scale)
		},
	}
	cmd.Flags().Float64VarP(&scale, "scale", "s", 1.0, "uniform joint scale")
	return cmd
}

func runAnalyze(cmd *cobra.Command, modelPath string, scale float64) error {
	frame, err := model.Load(modelPath)
	if err != nil {
		return err
	}

	cfg := joint.DefaultConfig()
	cfg.Scale = scale

	out := cmd.OutOrStdout()
	risky := 0
	for _, v := range frame.Vertices {
		layout, err := joint.Analyze(frame, v.ID, cfg)
		if err != nil {
			var isolated *joint.IsolatedVertexError
			if errors.As(err, &isolated) {
				fmt.Fprintf(out, "vertex %d (%s): isolated, no struts\n", v.ID, v.Label)
				continue
			}
			return err
		}
		if !layout.CollisionRisk {
			continue
		}
		risky++
		for i := range layout.Sockets {
			for j := i + 1; j < len(layout.Sockets); j++ {
				a, b := layout.Sockets[i], layout.Sockets[j]
				sep := geometry.AngleBetween(a.Direction, b.Direction)
				if sep < cfg.MinClearanceAngle(a.Radius, b.Radius) {
					fmt.Fprintf(out, "vertex %d (%s): struts %d and %d only %.1f deg apart (need %.1f)\n",
						v.ID, v.Label, a.StrutID, b.StrutID,
						sep*180/math.Pi,
						cfg.MinClearanceAngle(a.Radius, b.Radius)*180/math.Pi)
				}
			}
		}
	}
	fmt.Fprintf(out, "%d of %d vertices at collision risk\n", risky, len(frame.Vertices))
	return nil
}
