package mesh

import "github.com/philipparndt/meshslice/pkg/geometry"

// NewCube creates an axis-aligned cube centered at the origin
// The cube shares its eight corners between faces, so it has 8 vertices
// and 12 outward-facing triangles.
func NewCube(id string, size float64) *Mesh {
	h := size / 2
	vertices := []geometry.Vector3{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
	triangles := []int{
		0, 3, 2, 0, 2, 1, // -Z
		4, 5, 6, 4, 6, 7, // +Z
		0, 1, 5, 0, 5, 4, // -Y
		3, 7, 6, 3, 6, 2, // +Y
		0, 4, 7, 0, 7, 3, // -X
		1, 2, 6, 1, 6, 5, // +X
	}

	m, err := New(id, vertices, triangles, nil, nil)
	if err != nil {
		// static buffers above are always valid
		panic(err)
	}
	return m
}

// NewGrid creates a flat grid in the XY plane facing +Z with a UV channel
// The grid spans [0, width] x [0, height] and is split into cols x rows quads.
func NewGrid(id string, width, height float64, cols, rows int) *Mesh {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	var vertices []geometry.Vector3
	var normals []geometry.Vector3
	var uvs []geometry.Vector2
	for j := 0; j <= rows; j++ {
		for i := 0; i <= cols; i++ {
			u := float64(i) / float64(cols)
			v := float64(j) / float64(rows)
			vertices = append(vertices, geometry.NewVector3(u*width, v*height, 0))
			normals = append(normals, geometry.NewVector3(0, 0, 1))
			uvs = append(uvs, geometry.NewVector2(u, v))
		}
	}

	var triangles []int
	stride := cols + 1
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			a := j*stride + i
			b := a + 1
			c := a + stride + 1
			d := a + stride
			triangles = append(triangles, a, b, c, a, c, d)
		}
	}

	m, err := New(id, vertices, triangles, normals, uvs)
	if err != nil {
		panic(err)
	}
	return m
}
