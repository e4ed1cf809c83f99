package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshslice/pkg/analysis"
	"github.com/philipparndt/meshslice/pkg/collision"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/slice"
)

// inputFor maps the left mouse button state of one frame to a manipulator event
func inputFor(pressed, down, released bool) slice.Input {
	switch {
	case pressed:
		return slice.InputPress
	case released:
		return slice.InputRelease
	case down:
		return slice.InputHold
	default:
		return slice.InputNone
	}
}

// axisNormal returns the unit axis for X, Y or Z keys
func axisNormal(key int32) (geometry.Vector3, bool) {
	switch key {
	case rl.KeyX:
		return geometry.NewVector3(1, 0, 0), true
	case rl.KeyY:
		return geometry.NewVector3(0, 1, 0), true
	case rl.KeyZ:
		return geometry.NewVector3(0, 0, 1), true
	}
	return geometry.Vector3{}, false
}

// handleInput processes keyboard and camera input
func (app *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.View.showPlane = !app.View.showPlane
	}
	if rl.IsKeyPressed(rl.KeyV) {
		app.Slice.controller.SetEnabled(!app.Slice.controller.Enabled())
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.FileWatch.needsReload.Store(true)
	}
	if rl.IsKeyPressed(rl.KeyC) && app.FileWatch.configFile != "" {
		app.FileWatch.needsConfig.Store(true)
	}

	for _, key := range []int32{rl.KeyX, rl.KeyY, rl.KeyZ} {
		if rl.IsKeyPressed(key) {
			normal, _ := axisNormal(key)
			app.Slice.plane = geometry.NewPlane(app.Slice.plane.Origin, normal)
		}
	}

	step := app.Slice.step
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		step *= 10
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressedRepeat(rl.KeyUp) {
		app.Slice.plane = app.Slice.plane.Translate(step)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressedRepeat(rl.KeyDown) {
		app.Slice.plane = app.Slice.plane.Translate(-step)
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.doOrbit(delta)
		}
	}
	if rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
		}
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.doZoom(wheel)
	}
}

// mouseRay returns the world ray under the cursor
func (app *App) mouseRay() (geometry.Vector3, geometry.Vector3) {
	ray := rl.GetMouseRay(rl.GetMousePosition(), app.Camera.camera)
	origin := geometry.NewVector3(float64(ray.Position.X), float64(ray.Position.Y), float64(ray.Position.Z))
	direction := geometry.NewVector3(float64(ray.Direction.X), float64(ray.Direction.Y), float64(ray.Direction.Z))
	return origin, direction
}

// stepManipulator feeds this frame's pointer and button state to the manipulator
func (app *App) stepManipulator() {
	origin, direction := app.mouseRay()
	pointer, hit := app.Slice.plane.RayIntersection(origin, direction)
	if hit {
		app.Interaction.pointer = pointer
	}
	app.Interaction.hasPointer = hit

	input := inputFor(
		rl.IsMouseButtonPressed(rl.MouseLeftButton),
		rl.IsMouseButtonDown(rl.MouseLeftButton),
		rl.IsMouseButtonReleased(rl.MouseLeftButton),
	)
	// a press off the plane does nothing; a hold keeps the last pointer
	if input == slice.InputPress && !hit {
		input = slice.InputNone
	}

	plane := app.Slice.plane
	result := app.Slice.manipulator.Step(slice.Frame{
		Plane:   &plane,
		Meshes:  app.Scene.registry,
		Pointer: app.Interaction.pointer,
		Input:   input,
	})
	if result.Created || result.Moved > 0 {
		app.Scene.dirty = true
	}
	app.Slice.last = result
	app.Slice.section = summarizeSection(plane, result.Curve)

	app.Slice.controller.Update(&plane, app.Slice.overlay)
	app.updateHover(origin, direction)
}

// summarizeSection chains the curve and measures its closed loops
func summarizeSection(plane geometry.Plane, curve slice.Curve) sectionSummary {
	var s sectionSummary
	for _, c := range slice.ChainContours(curve, 1e-6) {
		s.contours++
		s.perimeter += c.Perimeter()
		if !c.Closed {
			continue
		}
		s.closed++
		if area, err := slice.SectionArea(plane, c.Simplify(1e-6)); err == nil {
			s.area += area
		}
	}
	return s
}

// updateHover finds the surface and nearest vertex under the cursor
func (app *App) updateHover(origin, direction geometry.Vector3) {
	app.Hover = hoverInfo{}
	id, hit, ok := collision.Pick(app.Scene.registry.All(), origin, direction)
	if !ok {
		return
	}
	m, _ := app.Scene.registry.Get(id)
	idx, dist := analysis.FindNearestVertex(m, hit.Point)
	app.Hover = hoverInfo{
		valid:    true,
		meshID:   id,
		point:    hit.Point,
		vertex:   idx,
		distance: dist,
	}
}
