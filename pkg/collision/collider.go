// Package collision maintains world-space collision proxies for meshes
package collision

import (
	"fmt"
	"math"
	"sync"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/unixpickle/model3d/model3d"
)

// Hit describes where a ray met a collider
type Hit struct {
	Point    geometry.Vector3
	Normal   geometry.Vector3
	Distance float64
}

// MeshCollider is a collision proxy rebuilt from every committed mesh snapshot
type MeshCollider struct {
	mu       sync.RWMutex
	mesh     *model3d.Mesh
	collider model3d.Collider
	bounds   geometry.BoundingBox
}

// New creates an empty collider
func New() *MeshCollider {
	return &MeshCollider{bounds: geometry.NewBoundingBox()}
}

// Attach creates a collider for m and installs it on the mesh
func Attach(m *mesh.Mesh) (*MeshCollider, error) {
	c := New()
	if err := m.SetCollider(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh rebuilds the proxy from a snapshot in world space
// Zero-area triangles are skipped.
func (c *MeshCollider) Refresh(s mesh.Snapshot) error {
	if len(s.Triangles)%3 != 0 {
		return fmt.Errorf("snapshot %q has %d indices", s.ID, len(s.Triangles))
	}

	tris := make([]*model3d.Triangle, 0, len(s.Triangles)/3)
	bounds := geometry.NewBoundingBox()
	for i := 0; i+2 < len(s.Triangles); i += 3 {
		var tri model3d.Triangle
		for k := 0; k < 3; k++ {
			idx := s.Triangles[i+k]
			if idx < 0 || idx >= len(s.Vertices) {
				return fmt.Errorf("snapshot %q: index %d out of range", s.ID, idx)
			}
			p := s.Transform.TransformPoint(s.Vertices[idx])
			bounds.Extend(p)
			tri[k] = toCoord(p)
		}
		if tri.Area() < 1e-12 {
			continue
		}
		tris = append(tris, &tri)
	}

	var collider model3d.Collider
	m := model3d.NewMeshTriangles(tris)
	if len(tris) > 0 {
		collider = model3d.MeshToCollider(m)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mesh = m
	c.collider = collider
	c.bounds = bounds
	return nil
}

// Raycast returns the nearest hit along the ray
func (c *MeshCollider) Raycast(origin, direction geometry.Vector3) (Hit, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := direction.Normalize()
	if c.collider == nil || dir.Length() == 0 {
		return Hit{}, false
	}

	rc, ok := c.collider.FirstRayCollision(&model3d.Ray{
		Origin:    toCoord(origin),
		Direction: toCoord(dir),
	})
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Point:    origin.Add(dir.Mul(rc.Scale)),
		Normal:   fromCoord(rc.Normal),
		Distance: rc.Scale,
	}, true
}

// SphereCollision reports whether a sphere touches the surface
func (c *MeshCollider) SphereCollision(center geometry.Vector3, radius float64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.collider == nil {
		return false
	}
	return c.collider.SphereCollision(toCoord(center), radius)
}

// Bounds returns the world-space bounds of the last snapshot
func (c *MeshCollider) Bounds() geometry.BoundingBox {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bounds
}

// TriangleCount returns the number of triangles in the proxy
func (c *MeshCollider) TriangleCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.mesh == nil {
		return 0
	}
	return len(c.mesh.TriangleSlice())
}

// NeedsRepair reports whether the proxy surface is not a closed manifold
func (c *MeshCollider) NeedsRepair() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.mesh == nil {
		return false
	}
	return c.mesh.NeedsRepair()
}

// Pick casts a ray against the colliders of several meshes and returns the
// ID of the closest mesh hit
func Pick(meshes []*mesh.Mesh, origin, direction geometry.Vector3) (string, Hit, bool) {
	bestID := ""
	best := Hit{Distance: math.Inf(1)}
	for _, m := range meshes {
		c, ok := m.Collider().(*MeshCollider)
		if !ok {
			continue
		}
		if hit, ok := c.Raycast(origin, direction); ok && hit.Distance < best.Distance {
			best = hit
			bestID = m.ID
		}
	}
	if bestID == "" {
		return "", Hit{}, false
	}
	return bestID, best, true
}

func toCoord(v geometry.Vector3) model3d.Coord3D {
	return model3d.XYZ(v.X, v.Y, v.Z)
}

func fromCoord(c model3d.Coord3D) geometry.Vector3 {
	return geometry.NewVector3(c.X, c.Y, c.Z)
}
