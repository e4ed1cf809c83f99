// Package mesh holds indexed triangle meshes whose buffers are edited through
// transactions and committed atomically.
package mesh

import (
	"fmt"

	"github.com/philipparndt/meshslice/pkg/geometry"
)

// Collider receives the mesh geometry after every committed edit
type Collider interface {
	Refresh(snapshot Snapshot) error
}

// Snapshot is an immutable view of a mesh's buffers at one commit
// The slices are shared with the mesh and must not be modified.
type Snapshot struct {
	ID        string
	Transform geometry.Transform
	Vertices  []geometry.Vector3
	Triangles []int
	Normals   []geometry.Vector3
	UVs       []geometry.Vector2
	Bounds    geometry.BoundingBox
}

// Mesh is an indexed triangle mesh with a local-to-world transform
type Mesh struct {
	ID        string
	Tag       string
	Transform geometry.Transform

	vertices  []geometry.Vector3
	triangles []int
	normals   []geometry.Vector3
	uvs       []geometry.Vector2
	bounds    geometry.BoundingBox
	collider  Collider
}

// New creates a mesh from local-space buffers
// normals may be nil, in which case they are computed from the triangles.
// uvs may be nil for meshes without a UV channel.
func New(id string, vertices []geometry.Vector3, triangles []int, normals []geometry.Vector3, uvs []geometry.Vector2) (*Mesh, error) {
	m := &Mesh{
		ID:        id,
		Transform: geometry.IdentityTransform(),
	}

	e := m.Begin()
	e.vertices = append(e.vertices, vertices...)
	e.triangles = append(e.triangles, triangles...)
	e.normals = append(e.normals, normals...)
	e.uvs = append(e.uvs, uvs...)

	if err := e.Commit(CommitOptions{RecalculateNormals: len(normals) == 0}); err != nil {
		return nil, fmt.Errorf("invalid mesh %q: %w", id, err)
	}
	return m, nil
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.triangles) / 3
}

// Vertices returns the local-space vertex positions
func (m *Mesh) Vertices() []geometry.Vector3 {
	return m.vertices
}

// Triangles returns the flat triangle index buffer
func (m *Mesh) Triangles() []int {
	return m.triangles
}

// Normals returns the per-vertex normals
func (m *Mesh) Normals() []geometry.Vector3 {
	return m.normals
}

// UVs returns the per-vertex texture coordinates, empty if the mesh has none
func (m *Mesh) UVs() []geometry.Vector2 {
	return m.uvs
}

// HasUVs reports whether the mesh carries a UV channel
func (m *Mesh) HasUVs() bool {
	return len(m.uvs) > 0
}

// Bounds returns the local-space bounding box
func (m *Mesh) Bounds() geometry.BoundingBox {
	return m.bounds
}

// WorldBounds returns a world-space box containing every vertex
func (m *Mesh) WorldBounds() geometry.BoundingBox {
	if m.bounds.IsEmpty() {
		return m.bounds
	}
	box := geometry.NewBoundingBox()
	for _, c := range m.bounds.Corners() {
		box.Extend(m.Transform.TransformPoint(c))
	}
	return box
}

// WorldVertex returns vertex i in world space
func (m *Mesh) WorldVertex(i int) geometry.Vector3 {
	return m.Transform.TransformPoint(m.vertices[i])
}

// WorldTriangle returns triangle i (not index offset) in world space
func (m *Mesh) WorldTriangle(i int) geometry.Triangle {
	base := i * 3
	v1 := m.WorldVertex(m.triangles[base])
	v2 := m.WorldVertex(m.triangles[base+1])
	v3 := m.WorldVertex(m.triangles[base+2])
	tri := geometry.NewTriangle(geometry.Vector3{}, v1, v2, v3)
	tri.Normal = tri.CalculateNormal()
	return tri
}

// Snapshot returns the current buffers
func (m *Mesh) Snapshot() Snapshot {
	return Snapshot{
		ID:        m.ID,
		Transform: m.Transform,
		Vertices:  m.vertices,
		Triangles: m.triangles,
		Normals:   m.normals,
		UVs:       m.uvs,
		Bounds:    m.bounds,
	}
}

// SetCollider attaches a collision proxy and refreshes it immediately
// Passing nil detaches the current proxy.
func (m *Mesh) SetCollider(c Collider) error {
	m.collider = c
	if c == nil {
		return nil
	}
	if err := c.Refresh(m.Snapshot()); err != nil {
		return fmt.Errorf("failed to refresh collider for %q: %w", m.ID, err)
	}
	return nil
}

// Collider returns the attached collision proxy, if any
func (m *Mesh) Collider() Collider {
	return m.collider
}

// SetTransform replaces the transform and refreshes the collision proxy
func (m *Mesh) SetTransform(t geometry.Transform) error {
	m.Transform = t
	if m.collider == nil {
		return nil
	}
	if err := m.collider.Refresh(m.Snapshot()); err != nil {
		return fmt.Errorf("failed to refresh collider for %q: %w", m.ID, err)
	}
	return nil
}

// computeNormals returns area-weighted vertex normals
func computeNormals(vertices []geometry.Vector3, triangles []int) []geometry.Vector3 {
	normals := make([]geometry.Vector3, len(vertices))
	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		tri := geometry.NewTriangle(geometry.Vector3{}, vertices[a], vertices[b], vertices[c])
		face := tri.AreaVector()
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
