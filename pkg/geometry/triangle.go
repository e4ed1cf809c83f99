package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// CalculateNormal computes the normal vector from the winding order
func (t Triangle) CalculateNormal() Vector3 {
	return t.AreaVector().Normalize()
}

// AreaVector returns the unnormalized face normal; its length is twice the area
func (t Triangle) AreaVector() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2)
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.AreaVector().Length() / 2.0
}

// PlaneCrossings returns the points where the triangle's edges strictly cross
// the plane, in edge order V1V2, V2V3, V3V1
func (t Triangle) PlaneCrossings(plane Plane) []Vector3 {
	var crossings []Vector3
	edges := [3][2]Vector3{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}}
	for _, edge := range edges {
		if p, ok := EdgeCrossing(edge[0], edge[1], plane); ok {
			crossings = append(crossings, p)
		}
	}
	return crossings
}
