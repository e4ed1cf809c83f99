package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshslice/pkg/analysis"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/version"
)

// hoverInfo describes the surface point under the cursor
type hoverInfo struct {
	valid    bool
	meshID   string
	point    geometry.Vector3
	vertex   int
	distance float64
}

// drawUI draws the HUD
func (app *App) drawUI() {
	x := int32(10)
	y := int32(10)
	lineHeight := int32(20)
	textColor := rl.LightGray

	line := func(text string, color rl.Color) {
		rl.DrawText(text, x, y, 16, color)
		y += lineHeight
	}

	line(fmt.Sprintf("meshslice %s", version.GetVersion()), rl.White)
	line(fmt.Sprintf("Meshes: %d", app.Scene.registry.Len()), textColor)

	plane := app.Slice.plane
	line(fmt.Sprintf("Plane origin: %s", analysis.FormatVector(plane.Origin)), textColor)
	line(fmt.Sprintf("Plane normal: %s", analysis.FormatVector(plane.Normal)), textColor)

	state := "off"
	if app.Slice.controller.Enabled() {
		state = "on"
	}
	line(fmt.Sprintf("Slice effect: %s", state), app.Slice.overlay.color(255))
	y += lineHeight / 2

	curve := app.Slice.last.Curve
	line(fmt.Sprintf("Segments: %d", curve.SegmentCount()), textColor)
	s := app.Slice.section
	line(fmt.Sprintf("Contours: %d (%d closed)", s.contours, s.closed), textColor)
	line(fmt.Sprintf("Perimeter: %.4f", s.perimeter), textColor)
	line(fmt.Sprintf("Section area: %.4f", s.area), textColor)
	line(fmt.Sprintf("Points: %d", len(app.Slice.manipulator.Points())), textColor)

	if p, ok := app.Slice.manipulator.Selected(); ok {
		line(fmt.Sprintf("Dragging %s (%d vertices)", analysis.FormatVector(p), app.Slice.manipulator.AffectedCount()), rl.Orange)
	}
	if app.Slice.last.Skipped {
		line("Frame skipped", rl.Red)
	}

	if app.Hover.valid {
		y += lineHeight / 2
		line(fmt.Sprintf("Hover %s at %s", app.Hover.meshID, analysis.FormatVector(app.Hover.point)), textColor)
		line(fmt.Sprintf("Nearest vertex: #%d (%.4f)", app.Hover.vertex, app.Hover.distance), textColor)
	}

	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		text := fmt.Sprintf("Loading... (%.1fs)", elapsed)
		w := rl.MeasureText(text, 16)
		rl.DrawText(text, int32(rl.GetScreenWidth())-w-20, 10, 16, rl.Yellow)
	}

	help := "LMB: create/drag point  RMB: orbit  MMB: pan  Wheel: zoom  Up/Down: move plane  X/Y/Z: plane axis  V: effect  P: plane  W: wireframe  F: fill  R: reload"
	rl.DrawText(help, 10, int32(rl.GetScreenHeight())-24, 14, rl.Gray)
}
