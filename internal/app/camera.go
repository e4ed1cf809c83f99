package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Scene.center
}

// frameScene points the camera at the scene bounds
func (app *App) frameScene() {
	distance := app.Scene.size * 2
	if distance <= 0 {
		distance = 10
	}
	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.3
	app.Camera.defaultAngleY = 0.3
	app.resetCameraView()

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	c := &app.Camera
	x := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Sin(float64(c.angleY)))
	y := c.distance * float32(math.Sin(float64(c.angleX)))
	z := c.distance * float32(math.Cos(float64(c.angleX))) * float32(math.Cos(float64(c.angleY)))

	c.camera.Position = rl.Vector3{
		X: c.target.X + x,
		Y: c.target.Y + y,
		Z: c.target.Z + z,
	}
	c.camera.Target = c.target
}

// doOrbit rotates the camera around its target
func (app *App) doOrbit(delta rl.Vector2) {
	c := &app.Camera
	c.angleY -= delta.X * 0.01
	c.angleX += delta.Y * 0.01

	limit := float32(math.Pi/2 - 0.01)
	if c.angleX > limit {
		c.angleX = limit
	}
	if c.angleX < -limit {
		c.angleX = -limit
	}
}

// doPan performs camera panning based on mouse delta
func (app *App) doPan(delta rl.Vector2) {
	c := &app.Camera
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.target, c.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	panSpeed := c.distance * 0.001

	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(right, -delta.X*panSpeed))
	c.target = rl.Vector3Add(c.target, rl.Vector3Scale(up, delta.Y*panSpeed))
}

// doZoom scales the orbit distance by the wheel movement
func (app *App) doZoom(wheel float32) {
	c := &app.Camera
	c.distance *= 1.0 - wheel*0.05
	minDist := app.Scene.size * 0.05
	if minDist <= 0 {
		minDist = 0.1
	}
	if c.distance < minDist {
		c.distance = minDist
	}
}
