package geometry

import "math"

// Plane is an oriented plane given by a point on it and its unit normal
type Plane struct {
	Origin Vector3
	Normal Vector3
}

// NewPlane creates a plane through origin; the normal is normalized
func NewPlane(origin, normal Vector3) Plane {
	return Plane{Origin: origin, Normal: normal.Normalize()}
}

// SignedDistance returns the signed distance from the plane to a point
// Positive values lie on the side the normal points to
func (p Plane) SignedDistance(point Vector3) float64 {
	return PlaneSignedDistance(point, p.Origin, p.Normal)
}

// Equation returns (nx, ny, nz, d) with d = dot(normal, origin)
func (p Plane) Equation() [4]float64 {
	return [4]float64{p.Normal.X, p.Normal.Y, p.Normal.Z, p.Normal.Dot(p.Origin)}
}

// ClosestPoint returns the orthogonal projection of a point onto the plane
func (p Plane) ClosestPoint(point Vector3) Vector3 {
	return point.Sub(p.Origin).ProjectOnPlane(p.Normal).Add(p.Origin)
}

// Translate returns the plane moved along its normal by the given distance
func (p Plane) Translate(distance float64) Plane {
	return Plane{Origin: p.Origin.Add(p.Normal.Mul(distance)), Normal: p.Normal}
}

// Basis returns the two tangent axes spanning the plane
//
// right is perpendicular to the normal and to +Z (or +X when the normal is
// parallel to Z), forward completes the frame. For an up-facing plane this
// is the XZ frame.
func (p Plane) Basis() (right, forward Vector3) {
	reference := NewVector3(0, 0, 1)
	if math.Abs(p.Normal.Dot(reference)) > 1-1e-9 {
		reference = NewVector3(1, 0, 0)
	}
	right = p.Normal.Cross(reference).Normalize()
	forward = right.Cross(p.Normal)
	return right, forward
}

// To2D expresses a point in the plane's tangent frame
// The component along the normal is dropped
func (p Plane) To2D(point Vector3) Vector2 {
	right, forward := p.Basis()
	rel := point.Sub(p.Origin)
	return Vector2{X: rel.Dot(right), Y: rel.Dot(forward)}
}

// From2D maps a point of the tangent frame back onto the plane
func (p Plane) From2D(point Vector2) Vector3 {
	right, forward := p.Basis()
	return p.Origin.Add(right.Mul(point.X)).Add(forward.Mul(point.Y))
}

// RayIntersection intersects a ray with the plane
// Returns false if the ray is parallel to the plane or points away from it
func (p Plane) RayIntersection(origin, direction Vector3) (Vector3, bool) {
	denom := direction.Dot(p.Normal)
	if math.Abs(denom) < 1e-12 {
		return Vector3{}, false
	}
	t := p.Origin.Sub(origin).Dot(p.Normal) / denom
	if t < 0 {
		return Vector3{}, false
	}
	return origin.Add(direction.Mul(t)), true
}
