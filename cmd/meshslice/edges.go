package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshslice/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	edgesCount    int
	edgesShortest bool
)

var edgesCmd = &cobra.Command{
	Use:   "edges [file]",
	Short: "List the longest or shortest edges of an STL file",
	Args:  cobra.ExactArgs(1),
	Run:   runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)

	edgesCmd.Flags().IntVarP(&edgesCount, "count", "n", 10, "Number of edges to display")
	edgesCmd.Flags().BoolVarP(&edgesShortest, "shortest", "s", false, "Show shortest instead of longest edges")
}

func runEdges(cmd *cobra.Command, args []string) {
	m, _, err := loadMesh(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeMesh(m)

	edges := analysis.FindLongestEdges(result, edgesCount)
	title := fmt.Sprintf("Top %d Longest Edges", len(edges))
	if edgesShortest {
		edges = analysis.FindShortestEdges(result, edgesCount)
		title = fmt.Sprintf("Top %d Shortest Edges", len(edges))
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("%-6s %-30s %-30s %-12s %s\n", "Index", "Start", "End", "Length", "Faces")
	for i, e := range edges {
		fmt.Printf("%-6d %-30s %-30s %-12.4f %d\n",
			i+1,
			analysis.FormatVector(m.WorldVertex(e.A)),
			analysis.FormatVector(m.WorldVertex(e.B)),
			e.Length,
			e.Triangles)
	}
}
