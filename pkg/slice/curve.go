package slice

import (
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

// Curve is the intersection of the slice plane with a set of meshes
// Points 2k and 2k+1 form segment k; MeshIDs[k] names the mesh it came from.
type Curve struct {
	Points  []geometry.Vector3
	MeshIDs []string
}

// SegmentCount returns the number of segments in the curve
func (c Curve) SegmentCount() int {
	return len(c.Points) / 2
}

// Segment returns the endpoints of segment i
func (c Curve) Segment(i int) (geometry.Vector3, geometry.Vector3) {
	return c.Points[2*i], c.Points[2*i+1]
}

// BuildCurve intersects every triangle of the given meshes with the plane
//
// A vertex is above the plane when its signed distance is positive. A
// triangle whose vertices do not all share a side contributes one segment
// made of the crossing points of its two mixed edges, in edge order
// v1v2, v2v3, v3v1.
func BuildCurve(plane geometry.Plane, meshes []*mesh.Mesh) Curve {
	var curve Curve
	for _, m := range meshes {
		if !straddles(plane, m) {
			continue
		}

		tris := m.Triangles()
		for i := 0; i+2 < len(tris); i += 3 {
			v1 := m.WorldVertex(tris[i])
			v2 := m.WorldVertex(tris[i+1])
			v3 := m.WorldVertex(tris[i+2])

			before := len(curve.Points)
			curve.Points = appendCrossings(curve.Points, plane, v1, v2, v3)
			if len(curve.Points) > before {
				curve.MeshIDs = append(curve.MeshIDs, m.ID)
			}
		}
	}
	return curve
}

// appendCrossings appends the 0 or 2 crossing points of one triangle
func appendCrossings(points []geometry.Vector3, plane geometry.Plane, v1, v2, v3 geometry.Vector3) []geometry.Vector3 {
	d1 := plane.SignedDistance(v1)
	d2 := plane.SignedDistance(v2)
	d3 := plane.SignedDistance(v3)

	above1, above2, above3 := d1 > 0, d2 > 0, d3 > 0
	if above1 == above2 && above2 == above3 {
		return points
	}

	if above1 != above2 {
		points = append(points, geometry.SegmentPlaneIntersection(v1, v2, d1, d2))
	}
	if above2 != above3 {
		points = append(points, geometry.SegmentPlaneIntersection(v2, v3, d2, d3))
	}
	if above3 != above1 {
		points = append(points, geometry.SegmentPlaneIntersection(v3, v1, d3, d1))
	}
	return points
}

// straddles reports whether any triangle of m can cross the plane
// Signed distance is affine, so the transformed corners of the local bounds
// bracket every vertex.
func straddles(plane geometry.Plane, m *mesh.Mesh) bool {
	bounds := m.Bounds()
	if bounds.IsEmpty() {
		return false
	}

	above, below := 0, 0
	for _, c := range bounds.Corners() {
		if plane.SignedDistance(m.Transform.TransformPoint(c)) > 0 {
			above++
		} else {
			below++
		}
	}
	return above > 0 && below > 0
}
