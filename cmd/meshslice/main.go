package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshslice/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meshslice",
	Short: "Slice STL meshes with a plane and edit them along the cut",
	Long: `meshslice intersects STL models with a cutting plane. It reports the
intersection curve and cross sections, and can insert and drag control
points on the curve to deform the surrounding surface.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
