package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/philipparndt/meshslice/pkg/stl"
)

func near(a, b geometry.Vector3) bool {
	return a.Distance(b) < 1e-6
}

func hasVertex(m *mesh.Mesh, p geometry.Vector3) bool {
	for _, v := range m.Vertices() {
		if near(v, p) {
			return true
		}
	}
	return false
}

func TestApplyEditWritesDeformedMesh(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "wall.stl")
	if err := stl.WriteFile(input, stl.FromMesh("wall", mesh.NewGrid("wall", 8, 2, 2, 2))); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	m, _, err := loadMesh(input)
	if err != nil {
		t.Fatalf("loadMesh failed: %v", err)
	}
	if m.VertexCount() != 9 {
		t.Fatalf("Expected 9 welded vertices, got %d", m.VertexCount())
	}

	cfg := slice.DefaultConfig()
	cfg.VertexInfluenceRadius = 2
	plane := geometry.NewPlane(geometry.NewVector3(0, 0.5, 0), geometry.NewVector3(0, 1, 0))

	result, err := applyEdit(m, plane, cfg, geometry.NewVector3(3, 0.5, 0), geometry.NewVector3(1, 0, 0))
	if err != nil {
		t.Fatalf("applyEdit failed: %v", err)
	}
	if !result.created {
		t.Error("Expected a new point on the curve")
	}
	if result.inserted != 1 {
		t.Errorf("Expected 1 inserted vertex, got %d", result.inserted)
	}
	if result.moved != 4 {
		t.Errorf("Expected 4 moved vertices, got %d", result.moved)
	}
	if !near(result.selected, geometry.NewVector3(3, 0.5, 0)) {
		t.Errorf("Expected selection at (3,0.5,0), got %v", result.selected)
	}

	output := filepath.Join(dir, "out.stl")
	if err := stl.WriteFile(output, stl.FromMesh(m.ID, m)); err != nil {
		t.Fatalf("Failed to write output: %v", err)
	}
	written, _, err := loadMesh(output)
	if err != nil {
		t.Fatalf("Failed to reload output: %v", err)
	}

	if written.VertexCount() != 10 {
		t.Errorf("Expected 10 vertices after the split, got %d", written.VertexCount())
	}
	if written.TriangleCount() != 10 {
		t.Errorf("Expected 10 triangles after the split, got %d", written.TriangleCount())
	}
	// indices change when welding, so look vertices up by position
	if !hasVertex(written, geometry.NewVector3(4, 0.5, 0)) {
		t.Error("Expected the dragged vertex at (4,0.5,0)")
	}
	for _, y := range []float64{0, 1, 2} {
		if !hasVertex(written, geometry.NewVector3(4.5, y, 0)) {
			t.Errorf("Expected the x=4 column at y=%v to move half the delta", y)
		}
	}
	if hasVertex(written, geometry.NewVector3(3, 0.5, 0)) {
		t.Error("The created vertex should not stay at its press position")
	}
	if math.Abs(written.Bounds().Max.X-8) > 1e-6 {
		t.Errorf("Vertices outside the radius should not move, max x is %v", written.Bounds().Max.X)
	}
}

func TestApplyEditMissesCurve(t *testing.T) {
	m := mesh.NewGrid("wall", 8, 2, 2, 2)
	plane := geometry.NewPlane(geometry.NewVector3(0, 0.5, 0), geometry.NewVector3(0, 1, 0))

	if _, err := applyEdit(m, plane, slice.DefaultConfig(), geometry.NewVector3(30, 0.5, 0), geometry.NewVector3(1, 0, 0)); err == nil {
		t.Error("Expected an error when nothing is within the selection radius")
	}
	if m.VertexCount() != 9 {
		t.Errorf("A missed press must not touch the mesh, got %d vertices", m.VertexCount())
	}
}
