package geometry

import "math"

// barycentricEpsilon is the denominator magnitude below which a triangle is
// treated as degenerate
const barycentricEpsilon = 1e-4

// PlaneSignedDistance returns dot(point - planeOrigin, planeNormal)
func PlaneSignedDistance(point, planeOrigin, planeNormal Vector3) float64 {
	return point.Sub(planeOrigin).Dot(planeNormal)
}

// SegmentPlaneIntersection returns the point where segment p1-p2 crosses a plane
// d1 and d2 are the signed distances of the endpoints and must have opposite
// signs; the result is undefined when d1 == d2.
func SegmentPlaneIntersection(p1, p2 Vector3, d1, d2 float64) Vector3 {
	return p1.Lerp(p2, d1/(d1-d2))
}

// EdgeCrossing reports whether edge p1-p2 strictly crosses the plane and where
// Endpoints lying exactly on the plane do not count as a crossing.
func EdgeCrossing(p1, p2 Vector3, plane Plane) (Vector3, bool) {
	d1 := plane.SignedDistance(p1)
	d2 := plane.SignedDistance(p2)
	if (d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0) {
		return SegmentPlaneIntersection(p1, p2, d1, d2), true
	}
	return Vector3{}, false
}

// Barycentric decomposes p into weights (u, v, w) of the corners v1, v2, v3
// Points off the triangle's plane are projected in the least-squares sense.
// Degenerate triangles yield the centroid weights.
func Barycentric(v1, v2, v3, p Vector3) (u, v, w float64) {
	e0 := v2.Sub(v1)
	e1 := v3.Sub(v1)
	e2 := p.Sub(v1)

	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	d20 := e2.Dot(e0)
	d21 := e2.Dot(e1)

	denom := d00*d11 - d01*d01
	if math.Abs(denom) < barycentricEpsilon {
		return 1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0
	}

	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1.0 - v - w
	return u, v, w
}

// ProjectOntoSegment2D projects p onto segment a-b
// t is the normalized position along the segment and distance is measured
// from p to its projection. ok is false for zero-length segments and for
// projections outside the segment.
func ProjectOntoSegment2D(p, a, b Vector2) (t, distance float64, ok bool) {
	line := b.Sub(a)
	length := line.Length()
	if length == 0 {
		return 0, 0, false
	}
	dir := line.Mul(1 / length)

	along := p.Sub(a).Dot(dir)
	if along < 0 || along > length {
		return 0, 0, false
	}

	projection := a.Add(dir.Mul(along))
	return along / length, p.Distance(projection), true
}
