package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/meshslice/pkg/geometry"
)

// ErrCommitted is returned when an edit is committed twice
var ErrCommitted = errors.New("edit already committed")

// CommitOptions controls the derived data rebuilt on commit
type CommitOptions struct {
	// RecalculateNormals replaces the normals with area-weighted face normals
	RecalculateNormals bool
}

// Edit is a rebuild transaction over a mesh's buffers
//
// Begin copies the buffers; nothing is visible on the mesh until Commit,
// which validates the new buffers and swaps them in together.
type Edit struct {
	mesh      *Mesh
	vertices  []geometry.Vector3
	triangles []int
	normals   []geometry.Vector3
	uvs       []geometry.Vector2
	hasUVs    bool
	done      bool
}

// Begin starts an edit transaction on the mesh
func (m *Mesh) Begin() *Edit {
	return &Edit{
		mesh:      m,
		vertices:  append([]geometry.Vector3(nil), m.vertices...),
		triangles: append([]int(nil), m.triangles...),
		normals:   append([]geometry.Vector3(nil), m.normals...),
		uvs:       append([]geometry.Vector2(nil), m.uvs...),
		hasUVs:    len(m.uvs) > 0,
	}
}

// VertexCount returns the number of vertices in the edit buffers
func (e *Edit) VertexCount() int {
	return len(e.vertices)
}

// Vertex returns vertex i of the edit buffers
func (e *Edit) Vertex(i int) geometry.Vector3 {
	return e.vertices[i]
}

// Normal returns normal i of the edit buffers
func (e *Edit) Normal(i int) geometry.Vector3 {
	return e.normals[i]
}

// UV returns texture coordinate i; zero if the mesh has no UV channel
func (e *Edit) UV(i int) geometry.Vector2 {
	if !e.hasUVs {
		return geometry.Vector2{}
	}
	return e.uvs[i]
}

// HasUVs reports whether the edited mesh carries a UV channel
func (e *Edit) HasUVs() bool {
	return e.hasUVs
}

// SetVertex moves vertex i
func (e *Edit) SetVertex(i int, p geometry.Vector3) {
	e.vertices[i] = p
}

// AddVertex appends a vertex and returns its index
// The uv is dropped for meshes without a UV channel.
func (e *Edit) AddVertex(p, normal geometry.Vector3, uv geometry.Vector2) int {
	e.vertices = append(e.vertices, p)
	e.normals = append(e.normals, normal)
	if e.hasUVs {
		e.uvs = append(e.uvs, uv)
	}
	return len(e.vertices) - 1
}

// Triangles returns the edit's index buffer
func (e *Edit) Triangles() []int {
	return e.triangles
}

// SetTriangles replaces the index buffer
func (e *Edit) SetTriangles(triangles []int) {
	e.triangles = triangles
}

// Commit validates the edited buffers and installs them on the mesh
// The collision proxy is refreshed from the new buffers before they are
// swapped in. On any error, including a failed refresh, the mesh is left
// untouched.
func (e *Edit) Commit(opts CommitOptions) error {
	if e.done {
		return ErrCommitted
	}

	if len(e.triangles)%3 != 0 {
		return fmt.Errorf("index buffer length %d is not a multiple of 3", len(e.triangles))
	}
	for i, idx := range e.triangles {
		if idx < 0 || idx >= len(e.vertices) {
			return fmt.Errorf("triangle index %d at position %d out of range [0, %d)", idx, i, len(e.vertices))
		}
	}
	normals := e.normals
	if opts.RecalculateNormals {
		normals = computeNormals(e.vertices, e.triangles)
	}
	if len(normals) != len(e.vertices) {
		return fmt.Errorf("normal count %d does not match vertex count %d", len(normals), len(e.vertices))
	}
	if len(e.uvs) != 0 && len(e.uvs) != len(e.vertices) {
		return fmt.Errorf("uv count %d does not match vertex count %d", len(e.uvs), len(e.vertices))
	}

	m := e.mesh
	next := Snapshot{
		ID:        m.ID,
		Transform: m.Transform,
		Vertices:  e.vertices,
		Triangles: e.triangles,
		Normals:   normals,
		Bounds:    geometry.BoundsOf(e.vertices),
	}
	if len(e.uvs) > 0 {
		next.UVs = e.uvs
	}

	if m.collider != nil {
		if err := m.collider.Refresh(next); err != nil {
			return fmt.Errorf("failed to refresh collider for %q: %w", m.ID, err)
		}
	}

	e.done = true
	m.vertices = next.Vertices
	m.triangles = next.Triangles
	m.normals = next.Normals
	m.uvs = next.UVs
	m.bounds = next.Bounds
	return nil
}
