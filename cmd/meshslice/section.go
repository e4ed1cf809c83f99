package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshslice/pkg/analysis"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/spf13/cobra"
)

var (
	sectionPlane   planeFlags
	sectionEpsilon float64
)

var sectionCmd = &cobra.Command{
	Use:   "section [file...]",
	Short: "Measure the cross sections cut by a plane",
	Args:  cobra.MinimumNArgs(1),
	Run:   runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionPlane.register(sectionCmd)
	sectionCmd.Flags().Float64Var(&sectionEpsilon, "epsilon", 1e-6, "Distance under which curve points are merged")
}

func runSection(cmd *cobra.Command, args []string) {
	plane, err := sectionPlane.plane()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry, err := loadRegistry(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	contours := slice.ChainContours(slice.BuildCurve(plane, registry.All()), sectionEpsilon)

	fmt.Println("Cross Sections")
	fmt.Println("==============")
	fmt.Printf("%-6s %-8s %-8s %-14s %s\n", "Index", "Closed", "Points", "Perimeter", "Area")

	var totalArea float64
	for i, c := range contours {
		c = c.Simplify(sectionEpsilon)
		area := "-"
		if c.Closed {
			a, err := slice.SectionArea(plane, c)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: contour %d: %v\n", i+1, err)
			} else {
				totalArea += a
				area = fmt.Sprintf("%.4f", a)
			}
		}
		fmt.Printf("%-6d %-8v %-8d %-14.4f %s\n", i+1, c.Closed, len(c.Points), c.Perimeter(), area)
	}

	fmt.Printf("\nTotal area: %s\n", analysis.FormatMeasurement(totalArea, "square units"))
}
