package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/philipparndt/meshslice/pkg/watcher"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // can be panned
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// SceneData holds the loaded meshes and their GPU copies
type SceneData struct {
	registry *mesh.Registry
	gpu      map[string]rl.Mesh
	material rl.Material
	center   rl.Vector3
	size     float32
	dirty    bool // meshes changed since the last upload
}

// ViewSettings holds display settings
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showPlane     bool
}

// SliceState holds the plane and the manipulator driven by it
type SliceState struct {
	plane       geometry.Plane
	step        float64
	manipulator *slice.Manipulator
	controller  *slice.SliceController
	overlay     *sliceOverlay
	last        slice.FrameResult
	section     sectionSummary
}

// sectionSummary is the cross section measured on the last frame
type sectionSummary struct {
	contours  int
	closed    int
	perimeter float64
	area      float64
}

// InteractionState holds mouse state
type InteractionState struct {
	pointer    geometry.Vector3
	hasPointer bool
	isOrbiting bool
	isPanning  bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	files            []string
	configFile       string
	fileWatcher      *watcher.FileWatcher
	needsReload      atomic.Bool // set from the watcher goroutine
	needsConfig      atomic.Bool
	isLoading        bool
	loadingStartTime time.Time
	loaded           chan loadResult
}

type loadResult struct {
	registry *mesh.Registry
	err      error
}
