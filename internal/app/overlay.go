package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/slice"
)

// sliceOverlay receives the slice render parameters every frame
type sliceOverlay struct {
	params  slice.RenderParams
	changed bool
}

var _ slice.RenderSink = (*sliceOverlay)(nil)

func (o *sliceOverlay) SetSliceParams(params slice.RenderParams) {
	if params != o.params {
		o.params = params
		o.changed = true
	}
}

// color returns the slice color with the given alpha
func (o *sliceOverlay) color(alpha uint8) rl.Color {
	r, g, b := o.params.SliceColor.Clamped().RGB255()
	return rl.NewColor(r, g, b, alpha)
}

func toRL(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// drawPlane draws a translucent quad of the slice plane around the scene
func (app *App) drawPlane() {
	if !app.View.showPlane || !app.Slice.overlay.params.Enabled {
		return
	}
	plane := app.Slice.plane
	center := plane.To2D(geometry.NewVector3(float64(app.Scene.center.X), float64(app.Scene.center.Y), float64(app.Scene.center.Z)))
	half := float64(app.Scene.size) * 0.75

	corner := func(sx, sy float64) rl.Vector3 {
		return toRL(plane.From2D(geometry.Vector2{X: center.X + sx*half, Y: center.Y + sy*half}))
	}
	c0 := corner(-1, -1)
	c1 := corner(1, -1)
	c2 := corner(1, 1)
	c3 := corner(-1, 1)

	fill := app.Slice.overlay.color(40)
	// both windings so the quad shows from either side
	rl.DrawTriangle3D(c0, c1, c2, fill)
	rl.DrawTriangle3D(c0, c2, c3, fill)
	rl.DrawTriangle3D(c0, c2, c1, fill)
	rl.DrawTriangle3D(c0, c3, c2, fill)

	edge := app.Slice.overlay.color(160)
	rl.DrawLine3D(c0, c1, edge)
	rl.DrawLine3D(c1, c2, edge)
	rl.DrawLine3D(c2, c3, edge)
	rl.DrawLine3D(c3, c0, edge)
}

// drawCurve draws the intersection curve, the interactive points and the
// pointer projected on the plane
func (app *App) drawCurve() {
	curve := app.Slice.manipulator.Curve()
	lineColor := app.Slice.overlay.color(255)
	radius := app.Scene.size * 0.006

	for i := 0; i < curve.SegmentCount(); i++ {
		a, b := curve.Segment(i)
		rl.DrawCylinderEx(toRL(a), toRL(b), radius*0.4, radius*0.4, 6, lineColor)
	}

	for _, p := range app.Slice.manipulator.Points() {
		rl.DrawSphere(toRL(p), radius*2, rl.Yellow)
	}
	if p, ok := app.Slice.manipulator.Selected(); ok {
		rl.DrawSphere(toRL(p), radius*3, rl.Orange)
	}
	if app.Interaction.hasPointer && !app.Slice.manipulator.Dragging() {
		rl.DrawSphereWires(toRL(app.Interaction.pointer), float32(app.Slice.manipulator.Config().SelectionRadius), 8, 8, rl.NewColor(255, 255, 255, 60))
	}
}
