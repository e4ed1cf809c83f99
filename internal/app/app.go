// Package app is the interactive slice viewer.
package app

import (
	"fmt"
	"io"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/slice"
)

// Options configures the viewer
type Options struct {
	Files []string
	// Players are files tagged with the config's exclude tag
	Players    []string
	ConfigFile string
	Config     slice.Config
	Logger     *log.Logger
}

type App struct {
	Camera      CameraState
	Scene       SceneData
	View        ViewSettings
	Slice       SliceState
	Interaction InteractionState
	Hover       hoverInfo
	FileWatch   FileWatchState

	players map[string]bool
	logger  *log.Logger
}

// newApp builds the viewer state without touching the window
func newApp(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	controller, err := slice.NewSliceController(opts.Config.Render)
	if err != nil {
		return nil, err
	}

	players := make(map[string]bool, len(opts.Players))
	for _, p := range opts.Players {
		players[p] = true
	}

	files := append(append([]string(nil), opts.Files...), opts.Players...)
	registry, err := loadRegistry(files, opts.Config.ExcludeTag, players)
	if err != nil {
		return nil, err
	}

	app := &App{
		Scene: SceneData{
			registry: registry,
			gpu:      make(map[string]rl.Mesh),
			dirty:    true,
		},
		View: ViewSettings{
			showWireframe: false,
			showFilled:    true,
			showPlane:     true,
		},
		Slice: SliceState{
			manipulator: slice.NewManipulator(opts.Config, slice.WithLogger(logger)),
			controller:  controller,
			overlay:     &sliceOverlay{},
		},
		FileWatch: FileWatchState{
			files:      files,
			configFile: opts.ConfigFile,
			loaded:     make(chan loadResult, 1),
		},
		players: players,
		logger:  logger,
	}

	app.updateSceneInfo()
	center := geometry.NewVector3(float64(app.Scene.center.X), float64(app.Scene.center.Y), float64(app.Scene.center.Z))
	app.Slice.plane = geometry.NewPlane(center, geometry.NewVector3(0, 1, 0))
	app.Slice.step = float64(app.Scene.size) / 100
	if app.Slice.step <= 0 {
		app.Slice.step = 0.01
	}
	return app, nil
}

// Run opens the window and runs the frame loop until it is closed
func Run(opts Options) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1400, 900, "meshslice")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	if err := app.setupFileWatcher(); err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
	} else {
		defer app.FileWatch.fileWatcher.Close()
	}

	app.Scene.material = rl.LoadMaterialDefault()
	app.frameScene()

	for !rl.WindowShouldClose() {
		app.frame()
	}

	app.unloadGPU()
	return nil
}

// frame runs one update and draw pass
func (app *App) frame() {
	if app.FileWatch.needsReload.CompareAndSwap(true, false) {
		app.reloadModel()
	}
	if app.FileWatch.needsConfig.CompareAndSwap(true, false) {
		app.reloadConfig()
	}
	app.applyLoadedModel()

	app.handleInput()
	app.updateCamera()
	app.stepManipulator()
	app.uploadScene()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

	rl.BeginMode3D(app.Camera.camera)
	if app.View.showFilled {
		app.drawScene()
	}
	if app.View.showWireframe {
		app.drawWireframe()
	}
	app.drawCurve()
	app.drawPlane()
	rl.EndMode3D()

	app.drawUI()
	rl.EndDrawing()
}
