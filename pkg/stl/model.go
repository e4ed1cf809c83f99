package stl

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

// DefaultWeldTolerance merges STL corners closer than this into one vertex
const DefaultWeldTolerance = 1e-6

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// ToMesh welds the triangle soup into an indexed mesh
// Corners within tolerance of each other share one vertex. Normals are
// computed from the welded faces; STL carries no UVs.
func (m *Model) ToMesh(id string, tolerance float64) (*mesh.Mesh, error) {
	if tolerance <= 0 {
		tolerance = DefaultWeldTolerance
	}

	// Corners are bucketed into cells one tolerance wide. Two corners within
	// tolerance can land in adjacent cells, so the neighbouring cells are
	// searched as well.
	type key [3]int64
	cell := func(v geometry.Vector3) key {
		return key{
			int64(math.Floor(v.X / tolerance)),
			int64(math.Floor(v.Y / tolerance)),
			int64(math.Floor(v.Z / tolerance)),
		}
	}

	lookup := make(map[key][]int)
	var vertices []geometry.Vector3
	find := func(v geometry.Vector3, k key) (int, bool) {
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, idx := range lookup[key{k[0] + dx, k[1] + dy, k[2] + dz}] {
						if vertices[idx].Distance(v) <= tolerance {
							return idx, true
						}
					}
				}
			}
		}
		return 0, false
	}

	indices := make([]int, 0, len(m.Triangles)*3)
	for _, tri := range m.Triangles {
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			k := cell(v)
			idx, ok := find(v, k)
			if !ok {
				idx = len(vertices)
				lookup[k] = append(lookup[k], idx)
				vertices = append(vertices, v)
			}
			indices = append(indices, idx)
		}
	}

	result, err := mesh.New(id, vertices, indices, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh from %q: %w", m.Name, err)
	}
	return result, nil
}

// FromMesh returns the world-space triangles of a mesh as a model
func FromMesh(name string, msh *mesh.Mesh) *Model {
	model := NewModel(name)
	for i := 0; i < msh.TriangleCount(); i++ {
		model.AddTriangle(msh.WorldTriangle(i))
	}
	return model
}
