package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshslice/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about an STL file",
	Long:  "Show vertex and triangle counts, dimensions, surface area, enclosed volume and edge statistics of the welded mesh.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	m, collider, err := loadMesh(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeMesh(m)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Topology:")
	fmt.Printf("  Vertices: %d\n", result.VertexCount)
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Boundary edges: %d\n", result.BoundaryEdges)
	fmt.Printf("  Non-manifold edges: %d\n", result.NonManifoldEdges)
	fmt.Printf("  Closed: %v\n", result.Closed())
	fmt.Printf("  Needs repair: %v\n\n", collider.NeedsRepair())

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions.X, ""))
	fmt.Printf("  Height (Y): %s\n", analysis.FormatMeasurement(result.Dimensions.Y, ""))
	fmt.Printf("  Depth (Z): %s\n", analysis.FormatMeasurement(result.Dimensions.Z, ""))
	fmt.Printf("  Surface Area: %s\n", analysis.FormatMeasurement(result.SurfaceArea, "square units"))
	if result.Closed() {
		fmt.Printf("  Volume: %s\n", analysis.FormatMeasurement(result.Volume, "cubic units"))
	}
	fmt.Println()

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %s\n", analysis.FormatMeasurement(result.MinEdgeLength, ""))
	fmt.Printf("  Maximum: %s\n", analysis.FormatMeasurement(result.MaxEdgeLength, ""))
	fmt.Printf("  Average: %s\n", analysis.FormatMeasurement(result.AvgEdgeLength, ""))
}
