package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshslice/pkg/analysis"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/spf13/cobra"
)

var (
	slicePlane    planeFlags
	sliceSegments bool
	sliceEpsilon  float64
)

var sliceCmd = &cobra.Command{
	Use:   "slice [file...]",
	Short: "Intersect meshes with a plane and print the curve",
	Long: `Build the intersection curve of one or more STL files with the plane
given by --origin and --normal. Segments are chained into contours and
collinear points are removed before printing.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSlice,
}

func init() {
	rootCmd.AddCommand(sliceCmd)

	slicePlane.register(sliceCmd)
	sliceCmd.Flags().BoolVar(&sliceSegments, "segments", false, "Print raw segments instead of contours")
	sliceCmd.Flags().Float64Var(&sliceEpsilon, "epsilon", 1e-6, "Distance under which curve points are merged")
}

// loadRegistry loads every file into a registry keyed by file name
func loadRegistry(files []string) (*mesh.Registry, error) {
	registry := mesh.NewRegistry()
	for _, f := range files {
		m, _, err := loadMesh(f)
		if err != nil {
			return nil, err
		}
		if err := registry.Add(m); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func runSlice(cmd *cobra.Command, args []string) {
	plane, err := slicePlane.plane()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry, err := loadRegistry(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	curve := slice.BuildCurve(plane, registry.All())

	fmt.Println("Slice")
	fmt.Println("=====")
	fmt.Printf("Plane origin: %s\n", analysis.FormatVector(plane.Origin))
	fmt.Printf("Plane normal: %s\n", analysis.FormatVector(plane.Normal))
	fmt.Printf("Segments: %d\n\n", curve.SegmentCount())

	if sliceSegments {
		fmt.Printf("%-6s %-30s %-30s\n", "Index", "Start", "End")
		for i := 0; i < curve.SegmentCount(); i++ {
			a, b := curve.Segment(i)
			fmt.Printf("%-6d %-30s %-30s\n", i+1, analysis.FormatVector(a), analysis.FormatVector(b))
		}
		return
	}

	contours := slice.ChainContours(curve, sliceEpsilon)
	fmt.Printf("Contours: %d\n", len(contours))
	for i, c := range contours {
		c = c.Simplify(sliceEpsilon)
		state := "open"
		if c.Closed {
			state = "closed"
		}
		fmt.Printf("\nContour %d (%s, %d points, perimeter %s)\n", i+1, state, len(c.Points), analysis.FormatMeasurement(c.Perimeter(), ""))
		for _, p := range c.Points {
			fmt.Printf("  %s\n", analysis.FormatVector(p))
		}
	}
}
