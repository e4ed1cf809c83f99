package slice

import (
	"math"
	"testing"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

func vecNear(a, b geometry.Vector3) bool {
	return a.Distance(b) < 1e-9
}

func wallScene(t *testing.T, extra ...*mesh.Mesh) (*mesh.Registry, *mesh.Mesh) {
	t.Helper()
	reg := mesh.NewRegistry()
	wall := newWall()
	for _, m := range append([]*mesh.Mesh{wall}, extra...) {
		if err := reg.Add(m); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	return reg, wall
}

func step(m *Manipulator, plane geometry.Plane, reg *mesh.Registry, input Input, x, y, z float64) FrameResult {
	return m.Step(Frame{
		Plane:   &plane,
		Meshes:  reg,
		Pointer: geometry.NewVector3(x, y, z),
		Input:   input,
	})
}

func TestFalloff(t *testing.T) {
	tests := []struct {
		distance, radius, want float64
	}{
		{0, 1, 1},
		{0.25, 1, 0.75},
		{1, 1, 0},
		{2, 1, 0},
		{-1, 1, 1},
		{0.5, 0, 0},
		{0.5, -1, 0},
	}
	for _, tt := range tests {
		if got := Falloff(tt.distance, tt.radius); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Falloff(%g, %g) = %g, want %g", tt.distance, tt.radius, got, tt.want)
		}
	}

	prev := Falloff(0, 1)
	for d := 0.0; d <= 1.5; d += 0.01 {
		w := Falloff(d, 1)
		if w > prev {
			t.Fatalf("Falloff increased at distance %g", d)
		}
		if w < 0 || w > 1 {
			t.Fatalf("Falloff %g out of range at distance %g", w, d)
		}
		prev = w
	}
}

func TestStepWithoutPlaneOrMeshes(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, _ := wallScene(t)

	if r := m.Step(Frame{Meshes: reg, Input: InputPress}); !r.Skipped {
		t.Error("Expected frame without plane to be skipped")
	}
	plane := upPlane(0.5)
	if r := m.Step(Frame{Plane: &plane, Input: InputPress}); !r.Skipped {
		t.Error("Expected frame without registry to be skipped")
	}
	if m.Dragging() {
		t.Error("Skipped frames must not change state")
	}
}

func TestPressNearSegmentCreatesPoint(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)
	plane := upPlane(0.5)

	r := step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	if !r.Created || !r.Selected {
		t.Fatalf("Expected a point to be created, got %+v", r)
	}
	if r.Curve.SegmentCount() != 4 {
		t.Errorf("Expected 4 segments before the edit, got %d", r.Curve.SegmentCount())
	}

	points := m.Points()
	if len(points) != 1 {
		t.Fatalf("Expected 1 interactive point, got %d", len(points))
	}
	if !vecNear(points[0], geometry.NewVector3(3, 0.5, 0)) {
		t.Errorf("Expected point at the projection (3,0.5,0), got %v", points[0])
	}
	if !m.Dragging() {
		t.Error("Expected to be dragging after creation")
	}
	if got := m.Insertions("wall"); len(got) != 1 || got[0] != 9 {
		t.Errorf("Expected insertion of vertex 9, got %v", got)
	}
	if wall.VertexCount() != 10 {
		t.Errorf("Expected 10 vertices, got %d", wall.VertexCount())
	}
}

func TestPressFarAwayStaysIdle(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)

	r := step(m, upPlane(0.5), reg, InputPress, 3, 0.5, 3)
	if r.Created || r.Selected || m.Dragging() {
		t.Errorf("Expected no hit, got %+v", r)
	}
	if wall.VertexCount() != 9 || len(m.Points()) != 0 {
		t.Error("A miss must not change anything")
	}
}

func TestPressSelectsCurvePointBeforeCreating(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)

	r := step(m, upPlane(0.5), reg, InputPress, 2.1, 0.5, 0.1)
	if !r.Selected || r.Created {
		t.Fatalf("Expected the curve point at x=2 to be selected, got %+v", r)
	}
	selected, ok := m.Selected()
	if !ok || !vecNear(selected, geometry.NewVector3(2, 0.5, 0)) {
		t.Errorf("Expected selection (2,0.5,0), got %v", selected)
	}
	if len(m.Points()) != 0 || wall.VertexCount() != 9 {
		t.Error("Selecting must not create points or vertices")
	}
}

func TestCreateWithZeroDragKeepsShape(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)
	plane := upPlane(0.5)
	area := totalArea(wall)
	positions := append([]geometry.Vector3(nil), wall.Vertices()...)

	step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	step(m, plane, reg, InputHold, 3, 0.5, 0.2)
	step(m, plane, reg, InputRelease, 3, 0.5, 0.2)

	if wall.VertexCount() != 10 {
		t.Errorf("Expected 10 vertices, got %d", wall.VertexCount())
	}
	if wall.TriangleCount() != 10 {
		t.Errorf("Expected 10 triangles, got %d", wall.TriangleCount())
	}
	for i, p := range positions {
		if !vecNear(wall.Vertices()[i], p) {
			t.Errorf("Vertex %d moved from %v to %v", i, p, wall.Vertices()[i])
		}
	}
	if math.Abs(totalArea(wall)-area) > 1e-9 {
		t.Errorf("Surface area changed from %f to %f", area, totalArea(wall))
	}
	checkIndices(t, wall)
}

func TestDragDisplacesWithFalloff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VertexInfluenceRadius = 2
	m := NewManipulator(cfg)
	reg, wall := wallScene(t)
	plane := upPlane(0.5)
	original := append([]geometry.Vector3(nil), wall.Vertices()...)

	step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	if m.AffectedCount() != 4 {
		t.Fatalf("Expected 4 affected vertices, got %d", m.AffectedCount())
	}

	r := step(m, plane, reg, InputHold, 4, 0.5, 0.2)
	if r.Moved != 4 {
		t.Errorf("Expected 4 moved vertices, got %d", r.Moved)
	}

	vertices := wall.Vertices()
	// x=4 column sits at planar distance 1 and gets half the delta
	for _, i := range []int{1, 4, 7} {
		want := original[i].Add(geometry.NewVector3(0.5, 0, 0))
		if !vecNear(vertices[i], want) {
			t.Errorf("Vertex %d: expected %v, got %v", i, want, vertices[i])
		}
	}
	if !vecNear(vertices[9], geometry.NewVector3(4, 0.5, 0)) {
		t.Errorf("Expected new vertex at (4,0.5,0), got %v", vertices[9])
	}
	for _, i := range []int{0, 2, 3, 5, 6, 8} {
		if vertices[i] != original[i] {
			t.Errorf("Vertex %d outside the radius moved to %v", i, vertices[i])
		}
	}

	if p := m.Points()[0]; !vecNear(p, geometry.NewVector3(4, 0.5, 0)) {
		t.Errorf("Expected interactive point at (4,0.5,0), got %v", p)
	}
}

func TestRepeatedDragDoesNotCompound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VertexInfluenceRadius = 2
	m := NewManipulator(cfg)
	reg, wall := wallScene(t)
	plane := upPlane(0.5)

	step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	step(m, plane, reg, InputHold, 4, 0.5, 0.2)
	step(m, plane, reg, InputHold, 4, 0.5, 0.2)

	if v := wall.Vertices()[9]; !vecNear(v, geometry.NewVector3(4, 0.5, 0)) {
		t.Errorf("Expected displacement of 1 after holding twice, got %v", v)
	}
	if p := m.Points()[0]; !vecNear(p, geometry.NewVector3(4, 0.5, 0)) {
		t.Errorf("Expected interactive point at start + delta, got %v", p)
	}

	step(m, plane, reg, InputHold, 5, 0.5, 0.2)
	if v := wall.Vertices()[9]; !vecNear(v, geometry.NewVector3(5, 0.5, 0)) {
		t.Errorf("Expected displacement of 2, got %v", v)
	}

	// the pointer's offset along the normal is ignored
	step(m, plane, reg, InputHold, 4, 7, 0.2)
	if v := wall.Vertices()[9]; !vecNear(v, geometry.NewVector3(4, 0.5, 0)) {
		t.Errorf("Expected displacement back to 1, got %v", v)
	}
	if v := wall.Vertices()[1]; !vecNear(v, geometry.NewVector3(4.5, 0, 0)) {
		t.Errorf("Expected falloff vertex at (4.5,0,0), got %v", v)
	}
}

func TestReleaseClearsDragState(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)
	plane := upPlane(0.5)

	step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	step(m, plane, reg, InputHold, 3.2, 0.5, 0.2)
	r := step(m, plane, reg, InputRelease, 3.2, 0.5, 0.2)

	if !r.Released || m.Dragging() || m.AffectedCount() != 0 {
		t.Errorf("Expected release to clear drag state, got %+v", r)
	}
	if _, ok := m.Selected(); ok {
		t.Error("Expected no selection after release")
	}
	moved := wall.Vertices()[9]
	if !vecNear(moved, geometry.NewVector3(3.2, 0.5, 0)) {
		t.Errorf("Expected mesh to keep its last displacement, got %v", moved)
	}

	// hold and release while idle are no-ops
	if r := step(m, plane, reg, InputHold, 9, 0.5, 0); r.Moved != 0 {
		t.Errorf("Hold while idle moved %d vertices", r.Moved)
	}
	if r := step(m, plane, reg, InputRelease, 9, 0.5, 0); r.Released {
		t.Error("Release while idle reported a release")
	}
}

func TestPressSelectsExistingInteractivePoint(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)
	plane := upPlane(0.5)

	step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	step(m, plane, reg, InputRelease, 3, 0.5, 0.2)
	vertices := wall.VertexCount()

	r := step(m, plane, reg, InputPress, 3.1, 0.5, 0.1)
	if !r.Selected || r.Created {
		t.Fatalf("Expected the existing point to be selected, got %+v", r)
	}
	if len(m.Points()) != 1 || wall.VertexCount() != vertices {
		t.Error("Selecting an existing point must not create another")
	}

	step(m, plane, reg, InputHold, 3.1, 0.5, 0.6)
	if p := m.Points()[0]; !vecNear(p, geometry.NewVector3(3, 0.5, 0.5)) {
		t.Errorf("Expected the interactive point to follow the drag, got %v", p)
	}
}

func TestPressWhileDraggingReleasesFirst(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, _ := wallScene(t)
	plane := upPlane(0.5)

	step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	r := step(m, plane, reg, InputPress, 100, 0.5, 0)

	if !r.Released {
		t.Error("Expected the running drag to be released")
	}
	if r.Selected || m.Dragging() {
		t.Error("Expected the second press to miss and stay idle")
	}
}

func TestExcludedMeshIsIgnored(t *testing.T) {
	player := mesh.NewCube("player", 1)
	player.Tag = "Player"
	_ = player.SetTransform(geometry.Translation(geometry.NewVector3(3, 0.5, 0.5)))

	m := NewManipulator(DefaultConfig())
	reg, _ := wallScene(t, player)
	plane := upPlane(0.5)

	r := step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	for _, id := range r.Curve.MeshIDs {
		if id == "player" {
			t.Fatal("Curve contains segments of an excluded mesh")
		}
	}
	if !r.Created {
		t.Fatalf("Expected a point on the wall, got %+v", r)
	}
	if player.VertexCount() != 8 || len(m.Insertions("player")) != 0 {
		t.Error("Excluded mesh was edited")
	}
}

func TestDragThroughScaledTransform(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)
	_ = wall.SetTransform(geometry.NewTransform(geometry.Vector3{}, geometry.Vector3{}, geometry.NewVector3(2, 1, 1)))
	plane := upPlane(0.5)

	r := step(m, plane, reg, InputPress, 6, 0.5, 0.2)
	if !r.Created {
		t.Fatalf("Expected a point, got %+v", r)
	}
	step(m, plane, reg, InputHold, 7, 0.5, 0.2)

	if v := wall.WorldVertex(9); !vecNear(v, geometry.NewVector3(7, 0.5, 0)) {
		t.Errorf("Expected world displacement equal to the drag, got %v", v)
	}
	if v := wall.Vertices()[9]; !vecNear(v, geometry.NewVector3(3.5, 0.5, 0)) {
		t.Errorf("Expected local position (3.5,0.5,0), got %v", v)
	}
}

func TestInputString(t *testing.T) {
	if InputPress.String() != "press" || InputNone.String() != "none" {
		t.Errorf("Unexpected input names %s %s", InputPress, InputNone)
	}
}

func TestCreateWithFailedSplitKeepsInsertionsConsistent(t *testing.T) {
	m := NewManipulator(DefaultConfig())
	reg, wall := wallScene(t)
	if err := wall.SetCollider(&brokenCollider{}); err != nil {
		t.Fatalf("SetCollider failed: %v", err)
	}
	plane := upPlane(0.5)

	r := step(m, plane, reg, InputPress, 3, 0.5, 0.2)
	if !r.Created {
		t.Fatal("Expected the press to create a point")
	}

	// every vertex the mesh gained must be recorded, and none were gained
	if got := len(m.Insertions(wall.ID)); got != wall.VertexCount()-9 {
		t.Errorf("Insertion map has %d entries but the mesh gained %d vertices", got, wall.VertexCount()-9)
	}
	if wall.VertexCount() != 9 || wall.TriangleCount() != 8 {
		t.Errorf("Expected an untouched wall, got %d vertices and %d triangles", wall.VertexCount(), wall.TriangleCount())
	}
	checkIndices(t, wall)
}
