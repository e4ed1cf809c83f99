package main

import (
	"fmt"
	"log"
	"os"

	"github.com/philipparndt/meshslice/pkg/analysis"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/philipparndt/meshslice/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	editPlane           planeFlags
	editAt              geometry.Vector3
	editDelta           geometry.Vector3
	editOutput          string
	editConfig          string
	editSelectionRadius float64
	editInfluenceRadius float64
	editVerbose         bool
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Drag a point on the slice curve and write the deformed mesh",
	Long: `Press at --at, drag by --delta and release, exactly as the interactive
viewer would. If no curve point lies within the selection radius a new
point is inserted on the nearest segment. The delta is projected onto
the slice plane and vertices within the influence radius follow it with
a linear falloff.`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editPlane.register(editCmd)
	editCmd.Flags().Var(newVectorValue(&editAt, geometry.Vector3{}), "at", "Pointer position on the slice plane")
	editCmd.Flags().Var(newVectorValue(&editDelta, geometry.Vector3{}), "delta", "Drag offset")
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "Output STL file (required)")
	editCmd.Flags().StringVarP(&editConfig, "config", "c", "", "TOML configuration file")
	editCmd.Flags().Float64Var(&editSelectionRadius, "selection-radius", 0, "Override the selection radius")
	editCmd.Flags().Float64Var(&editInfluenceRadius, "influence-radius", 0, "Override the vertex influence radius")
	editCmd.Flags().BoolVarP(&editVerbose, "verbose", "v", false, "Log manipulator decisions to stderr")
	_ = editCmd.MarkFlagRequired("output")
}

func runEdit(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(editConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("selection-radius") {
		cfg.SelectionRadius = editSelectionRadius
	}
	if cmd.Flags().Changed("influence-radius") {
		cfg.VertexInfluenceRadius = editInfluenceRadius
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	plane, err := editPlane.plane()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, _, err := loadMesh(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}
	var opts []slice.Option
	if editVerbose {
		opts = append(opts, slice.WithLogger(log.New(os.Stderr, "meshslice: ", log.LstdFlags)))
	}
	result, err := applyEdit(m, plane, cfg, editAt, editDelta, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := stl.WriteFile(editOutput, stl.FromMesh(m.ID, m)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", editOutput, err)
		os.Exit(1)
	}

	action := "Selected"
	if result.created {
		action = "Created"
	}
	fmt.Printf("%s point: %s\n", action, analysis.FormatVector(result.selected))
	fmt.Printf("Inserted vertices: %d\n", result.inserted)
	fmt.Printf("Affected vertices: %d\n", result.affected)
	fmt.Printf("Moved vertices: %d\n", result.moved)
	fmt.Printf("Written: %s (%d triangles)\n", editOutput, m.TriangleCount())
}

// editResult summarizes one press, hold and release cycle
type editResult struct {
	selected geometry.Vector3
	created  bool
	inserted int
	affected int
	moved    int
}

// applyEdit presses at the point on the plane closest to at, holds at an
// offset of delta and releases. The mesh is deformed in place.
func applyEdit(m *mesh.Mesh, plane geometry.Plane, cfg slice.Config, at, delta geometry.Vector3, opts ...slice.Option) (editResult, error) {
	registry := mesh.NewRegistry()
	registry.Put(m)
	manipulator := slice.NewManipulator(cfg, opts...)

	pointer := plane.ClosestPoint(at)
	frame := slice.Frame{Plane: &plane, Meshes: registry, Pointer: pointer, Input: slice.InputPress}
	pressed := manipulator.Step(frame)
	if !pressed.Selected {
		return editResult{}, fmt.Errorf("no curve point within %.4f of %s", cfg.SelectionRadius, analysis.FormatVector(pointer))
	}
	result := editResult{created: pressed.Created, affected: manipulator.AffectedCount()}
	result.selected, _ = manipulator.Selected()

	frame.Input = slice.InputHold
	frame.Pointer = pointer.Add(delta)
	result.moved = manipulator.Step(frame).Moved

	frame.Input = slice.InputRelease
	manipulator.Step(frame)

	result.inserted = len(manipulator.Insertions(m.ID))
	return result, nil
}
