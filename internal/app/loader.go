package app

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshslice/pkg/collision"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/philipparndt/meshslice/pkg/stl"
	"github.com/philipparndt/meshslice/pkg/watcher"
)

// loadRegistry parses every STL file into a registry keyed by base name
func loadRegistry(files []string, playerTag string, players map[string]bool) (*mesh.Registry, error) {
	registry := mesh.NewRegistry()
	for _, f := range files {
		model, err := stl.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		m, err := model.ToMesh(filepath.Base(f), stl.DefaultWeldTolerance)
		if err != nil {
			return nil, err
		}
		if players[f] {
			m.Tag = playerTag
		}
		if _, err := collision.Attach(m); err != nil {
			return nil, err
		}
		if err := registry.Add(m); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// sceneBounds returns the world bounds of every registered mesh
func sceneBounds(registry *mesh.Registry) geometry.BoundingBox {
	box := geometry.NewBoundingBox()
	for _, m := range registry.All() {
		wb := m.WorldBounds()
		if wb.IsEmpty() {
			continue
		}
		box.Extend(wb.Min)
		box.Extend(wb.Max)
	}
	return box
}

// setupFileWatcher watches the model files and the config file
func (app *App) setupFileWatcher() error {
	fw, err := watcher.NewFileWatcher(500*time.Millisecond, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	err = fw.Watch(app.FileWatch.files, func(changed string) {
		app.logger.Printf("file changed: %s", changed)
		app.FileWatch.needsReload.Store(true)
	})
	if err == nil && app.FileWatch.configFile != "" {
		err = fw.Watch([]string{app.FileWatch.configFile}, func(changed string) {
			app.logger.Printf("config changed: %s", changed)
			app.FileWatch.needsConfig.Store(true)
		})
	}
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	fmt.Printf("Watching %d file(s) for changes\n", len(app.FileWatch.files))
	return nil
}

// reloadModel parses the model files in the background
func (app *App) reloadModel() {
	if app.FileWatch.isLoading {
		return
	}
	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	fmt.Println("Reloading model...")

	files := append([]string(nil), app.FileWatch.files...)
	tag := app.Slice.manipulator.Config().ExcludeTag
	players := app.players
	go func() {
		registry, err := loadRegistry(files, tag, players)
		app.FileWatch.loaded <- loadResult{registry: registry, err: err}
	}()
}

// applyLoadedModel swaps in a finished reload (must be called on main thread)
func (app *App) applyLoadedModel() {
	var result loadResult
	select {
	case result = <-app.FileWatch.loaded:
	default:
		return
	}
	app.FileWatch.isLoading = false

	if result.err != nil {
		fmt.Printf("Error reloading model: %v\n", result.err)
		return
	}

	app.unloadGPU()
	app.Scene.registry = result.registry
	app.Scene.dirty = true
	app.updateSceneInfo()

	// a reload discards interactive points and any running drag
	app.Slice.manipulator = slice.NewManipulator(app.Slice.manipulator.Config(), slice.WithLogger(app.logger))

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	fmt.Printf("Model reloaded successfully in %.2fs!\n", elapsed.Seconds())
}

// reloadConfig re-reads the config file and applies it to the manipulator
// and the slice controller; an invalid file keeps the previous settings
func (app *App) reloadConfig() {
	cfg, err := slice.LoadConfig(app.FileWatch.configFile)
	if err != nil {
		fmt.Printf("Error reloading config: %v\n", err)
		return
	}
	controller, err := slice.NewSliceController(cfg.Render)
	if err != nil {
		fmt.Printf("Error reloading config: %v\n", err)
		return
	}
	app.Slice.manipulator.SetConfig(cfg)
	app.Slice.controller = controller
	fmt.Println("Config reloaded")
}

// updateSceneInfo recomputes center and size from the registry
func (app *App) updateSceneInfo() {
	box := sceneBounds(app.Scene.registry)
	if box.IsEmpty() {
		app.Scene.center = rl.Vector3{}
		app.Scene.size = 1
		return
	}
	center := box.Center()
	size := box.Size()
	app.Scene.center = rl.Vector3{X: float32(center.X), Y: float32(center.Y), Z: float32(center.Z)}
	app.Scene.size = float32(math.Max(size.X, math.Max(size.Y, size.Z)))
}
