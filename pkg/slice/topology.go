package slice

import (
	"fmt"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

// SplitAt inserts a vertex at worldPoint into every triangle of m that the
// plane crosses near it and returns the inserted vertex indices
//
// A triangle qualifies when exactly two of its edges strictly cross the
// plane and the midpoint of the two crossings is closer than radius to
// worldPoint. It is replaced by (c0, c1, n), (c1, c2, n), (c2, c0, n),
// appended after the triangles that were not split. Each split gets its own
// vertex with barycentric normal and UV. Normals of the original vertices
// are kept as they are. All splits are committed in one edit; if that
// commit fails the mesh is unchanged and no indices are returned.
func SplitAt(plane geometry.Plane, m *mesh.Mesh, worldPoint geometry.Vector3, radius float64) ([]int, error) {
	tris := m.Triangles()

	var split []int
	for i := 0; i+2 < len(tris); i += 3 {
		tri := geometry.NewTriangle(geometry.Vector3{},
			m.WorldVertex(tris[i]), m.WorldVertex(tris[i+1]), m.WorldVertex(tris[i+2]))
		crossings := tri.PlaneCrossings(plane)
		if len(crossings) != 2 {
			continue
		}
		mid := crossings[0].Add(crossings[1]).Mul(0.5)
		if mid.Distance(worldPoint) < radius {
			split = append(split, i)
		}
	}
	if len(split) == 0 {
		return nil, nil
	}

	local := m.Transform.InverseTransformPoint(worldPoint)

	e := m.Begin()
	kept := make([]int, 0, len(tris)-3*len(split))
	added := make([]int, 0, 9*len(split))
	inserted := make([]int, 0, len(split))

	next := 0
	for i := 0; i+2 < len(tris); i += 3 {
		c0, c1, c2 := tris[i], tris[i+1], tris[i+2]
		if next >= len(split) || split[next] != i {
			kept = append(kept, c0, c1, c2)
			continue
		}
		next++

		u, v, w := geometry.Barycentric(e.Vertex(c0), e.Vertex(c1), e.Vertex(c2), local)
		normal := e.Normal(c0).Mul(u).Add(e.Normal(c1).Mul(v)).Add(e.Normal(c2).Mul(w)).Normalize()
		uv := e.UV(c0).Mul(u).Add(e.UV(c1).Mul(v)).Add(e.UV(c2).Mul(w))

		n := e.AddVertex(local, normal, uv)
		inserted = append(inserted, n)
		added = append(added, c0, c1, n, c1, c2, n, c2, c0, n)
	}

	e.SetTriangles(append(kept, added...))
	if err := e.Commit(mesh.CommitOptions{}); err != nil {
		return nil, fmt.Errorf("failed to split mesh %q: %w", m.ID, err)
	}
	return inserted, nil
}
