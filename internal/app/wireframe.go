package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawWireframe renders every mesh edge once
func (app *App) drawWireframe() {
	wireframeColor := rl.NewColor(100, 100, 100, 200)

	for _, m := range app.Scene.registry.All() {
		triangles := m.Triangles()
		drawn := make(map[[2]int]bool, len(triangles))
		for i := 0; i+2 < len(triangles); i += 3 {
			corners := [3]int{triangles[i], triangles[i+1], triangles[i+2]}
			for e := 0; e < 3; e++ {
				a, b := corners[e], corners[(e+1)%3]
				if a > b {
					a, b = b, a
				}
				key := [2]int{a, b}
				if drawn[key] {
					continue
				}
				drawn[key] = true
				rl.DrawLine3D(toRL(m.WorldVertex(a)), toRL(m.WorldVertex(b)), wireframeColor)
			}
		}
	}
}
