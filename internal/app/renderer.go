package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/philipparndt/meshslice/pkg/slice"
)

var (
	baseColor  = colorful.Color{R: 0.5, G: 0.6, B: 1.0}
	lightDir   = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()
	playerTint = colorful.Color{R: 0.4, G: 0.9, B: 0.5}
)

// sliceTint returns how strongly a point at the given distance from the
// plane takes the slice color: fully inside the threshold band, fading to
// zero over the color threshold beyond it
func sliceTint(distance float64, params slice.RenderParams) float64 {
	if !params.Enabled {
		return 0
	}
	d := math.Abs(distance)
	if d <= params.Threshold {
		return 1
	}
	if params.ColorThreshold <= 0 {
		return 0
	}
	return geometry.Clamp01(1 - (d-params.Threshold)/params.ColorThreshold)
}

// planeDistance evaluates the plane equation (nx, ny, nz, d) at p
func planeDistance(eq [4]float64, p geometry.Vector3) float64 {
	return eq[0]*p.X + eq[1]*p.Y + eq[2]*p.Z - eq[3]
}

// shade returns the lit, slice-tinted color of a vertex
func shade(base colorful.Color, normal, p geometry.Vector3, params slice.RenderParams) rl.Color {
	light := math.Max(0.3, -normal.Dot(lightDir))
	lit := colorful.Color{R: base.R * light, G: base.G * light, B: base.B * light}

	if t := sliceTint(planeDistance(params.Plane, p), params); t > 0 {
		lit = lit.BlendRgb(params.SliceColor, t)
	}
	r, g, b := lit.Clamped().RGB255()
	return rl.NewColor(r, g, b, 255)
}

// meshToRaylib converts a mesh to a flat-shaded Raylib mesh in world space
func meshToRaylib(m *mesh.Mesh, params slice.RenderParams) rl.Mesh {
	triangleCount := m.TriangleCount()
	vertexCount := triangleCount * 3

	out := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	colors := make([]uint8, vertexCount*4)

	base := baseColor
	if m.Tag != "" {
		base = playerTint
	}

	idx := 0
	for i := 0; i < triangleCount; i++ {
		tri := m.WorldTriangle(i)
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			c := shade(base, tri.Normal, v, params)
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(tri.Normal.X)
			normals[idx*3+1] = float32(tri.Normal.Y)
			normals[idx*3+2] = float32(tri.Normal.Z)
			colors[idx*4+0] = c.R
			colors[idx*4+1] = c.G
			colors[idx*4+2] = c.B
			colors[idx*4+3] = c.A
			idx++
		}
	}

	if len(vertices) > 0 {
		out.Vertices = &vertices[0]
		out.Normals = &normals[0]
		out.Colors = &colors[0]
	}

	rl.UploadMesh(&out, false)
	return out
}

// uploadScene rebuilds the GPU meshes when the scene or slice params changed
func (app *App) uploadScene() {
	if !app.Scene.dirty && !app.Slice.overlay.changed {
		return
	}
	app.unloadGPU()
	for _, m := range app.Scene.registry.All() {
		if m.TriangleCount() == 0 {
			continue
		}
		app.Scene.gpu[m.ID] = meshToRaylib(m, app.Slice.overlay.params)
	}
	app.Scene.dirty = false
	app.Slice.overlay.changed = false
}

func (app *App) unloadGPU() {
	for id, gm := range app.Scene.gpu {
		rl.UnloadMesh(&gm)
		delete(app.Scene.gpu, id)
	}
}

// drawScene draws every uploaded mesh
func (app *App) drawScene() {
	for _, gm := range app.Scene.gpu {
		rl.DrawMesh(gm, app.Scene.material, rl.MatrixIdentity())
	}
}
