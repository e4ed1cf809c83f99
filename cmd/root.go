package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/philipparndt/meshslice/internal/app"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/philipparndt/meshslice/version"
	"github.com/spf13/cobra"
)

var (
	configFile      string
	playerFiles     []string
	selectionRadius float64
	influenceRadius float64
	verbose         bool
)

var rootCmd = &cobra.Command{
	Use:     "meshslice-view <file.stl>...",
	Short:   "Interactive mesh slicing viewer",
	Long:    `meshslice-view shows STL models with a movable slice plane. Click on the intersection curve to insert a point and drag it to deform the surface.`,
	Args:    cobra.MinimumNArgs(1),
	Version: version.GetFullVersion(),
	RunE:    runView,
}

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "TOML configuration file (reloaded on change)")
	rootCmd.Flags().StringSliceVar(&playerFiles, "player", nil, "STL files tagged with the exclude tag")
	rootCmd.Flags().Float64Var(&selectionRadius, "selection-radius", 0, "Override the selection radius")
	rootCmd.Flags().Float64Var(&influenceRadius, "influence-radius", 0, "Override the vertex influence radius")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log manipulator and reload events to stdout")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg := slice.DefaultConfig()
	if configFile != "" {
		loaded, err := slice.LoadConfig(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("selection-radius") {
		cfg.SelectionRadius = selectionRadius
	}
	if cmd.Flags().Changed("influence-radius") {
		cfg.VertexInfluenceRadius = influenceRadius
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := app.Options{
		Files:      args,
		Players:    playerFiles,
		ConfigFile: configFile,
		Config:     cfg,
	}
	if verbose {
		opts.Logger = log.New(os.Stdout, "", log.Ltime|log.Lmicroseconds)
	}
	return app.Run(opts)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
