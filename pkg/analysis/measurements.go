package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

// EdgeInfo describes one undirected edge of an indexed mesh
type EdgeInfo struct {
	A, B      int
	Length    float64
	Triangles int
}

// MeshReport contains measurements of an indexed mesh in world space
type MeshReport struct {
	ID               string
	BoundingBox      geometry.BoundingBox
	Dimensions       geometry.Vector3
	SurfaceArea      float64
	Volume           float64
	VertexCount      int
	TriangleCount    int
	EdgeCount        int
	BoundaryEdges    int
	NonManifoldEdges int
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
	Edges            []EdgeInfo
}

// Closed reports whether every edge is shared by exactly two triangles
func (r *MeshReport) Closed() bool {
	return r.EdgeCount > 0 && r.BoundaryEdges == 0 && r.NonManifoldEdges == 0
}

// AnalyzeMesh measures a mesh
// Volume is the signed volume enclosed by the surface and only meaningful
// for closed meshes.
func AnalyzeMesh(m *mesh.Mesh) *MeshReport {
	report := &MeshReport{
		ID:            m.ID,
		BoundingBox:   m.WorldBounds(),
		VertexCount:   m.VertexCount(),
		TriangleCount: m.TriangleCount(),
	}
	if m.VertexCount() > 0 {
		report.Dimensions = report.BoundingBox.Size()
	}

	type edgeKey struct{ a, b int }
	edges := make(map[edgeKey]*EdgeInfo)
	var order []edgeKey

	tris := m.Triangles()
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.WorldTriangle(i)
		report.SurfaceArea += tri.Area()
		report.Volume += tri.V1.Dot(tri.V2.Cross(tri.V3)) / 6

		corners := [3]int{tris[3*i], tris[3*i+1], tris[3*i+2]}
		for k := 0; k < 3; k++ {
			a, b := corners[k], corners[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			key := edgeKey{a, b}
			if e, ok := edges[key]; ok {
				e.Triangles++
				continue
			}
			edges[key] = &EdgeInfo{
				A:         a,
				B:         b,
				Length:    m.WorldVertex(a).Distance(m.WorldVertex(b)),
				Triangles: 1,
			}
			order = append(order, key)
		}
	}

	report.MinEdgeLength = math.MaxFloat64
	total := 0.0
	for _, key := range order {
		e := edges[key]
		report.Edges = append(report.Edges, *e)
		total += e.Length
		report.MinEdgeLength = math.Min(report.MinEdgeLength, e.Length)
		report.MaxEdgeLength = math.Max(report.MaxEdgeLength, e.Length)
		switch {
		case e.Triangles == 1:
			report.BoundaryEdges++
		case e.Triangles > 2:
			report.NonManifoldEdges++
		}
	}

	report.EdgeCount = len(report.Edges)
	if report.EdgeCount > 0 {
		report.AvgEdgeLength = total / float64(report.EdgeCount)
	} else {
		report.MinEdgeLength = 0
	}
	return report
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(report *MeshReport, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(report *MeshReport, count int) []EdgeInfo {
	return sortedEdges(report, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(report *MeshReport, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(report.Edges))
	copy(edges, report.Edges)
	sort.SliceStable(edges, func(i, j int) bool { return less(edges[i], edges[j]) })
	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex returns the index of the world-space vertex nearest to point
// Returns -1 for an empty mesh.
func FindNearestVertex(m *mesh.Mesh, point geometry.Vector3) (int, float64) {
	nearest := -1
	minDistance := math.MaxFloat64
	for i := 0; i < m.VertexCount(); i++ {
		if d := m.WorldVertex(i).Distance(point); d < minDistance {
			minDistance = d
			nearest = i
		}
	}
	return nearest, minDistance
}

// FormatVector formats a vector for display
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// FormatMeasurement formats a measurement with its unit
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.4f %s", value, unit)
}
