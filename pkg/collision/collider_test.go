package collision

import (
	"math"
	"testing"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

func TestRaycastCube(t *testing.T) {
	cube := mesh.NewCube("cube", 1)
	c, err := Attach(cube)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	hit, ok := c.Raycast(geometry.NewVector3(0.1, -0.2, -5), geometry.NewVector3(0, 0, 2))
	if !ok {
		t.Fatal("Expected ray to hit the cube")
	}
	if math.Abs(hit.Distance-4.5) > 1e-6 {
		t.Errorf("Expected distance 4.5, got %f", hit.Distance)
	}
	if math.Abs(hit.Point.Z+0.5) > 1e-6 {
		t.Errorf("Expected hit on z=-0.5, got %v", hit.Point)
	}

	if _, ok := c.Raycast(geometry.NewVector3(5, 5, -5), geometry.NewVector3(0, 0, 1)); ok {
		t.Error("Expected ray beside the cube to miss")
	}
	if c.TriangleCount() != 12 {
		t.Errorf("Expected 12 triangles, got %d", c.TriangleCount())
	}
}

func TestRefreshFollowsCommit(t *testing.T) {
	cube := mesh.NewCube("cube", 1)
	c, err := Attach(cube)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	e := cube.Begin()
	for i := 0; i < e.VertexCount(); i++ {
		e.SetVertex(i, e.Vertex(i).Mul(2))
	}
	if err := e.Commit(mesh.CommitOptions{}); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	hit, ok := c.Raycast(geometry.NewVector3(0.3, -0.1, -5), geometry.NewVector3(0, 0, 1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Point.Z+1) > 1e-6 {
		t.Errorf("Expected hit on scaled face z=-1, got %v", hit.Point)
	}
	if math.Abs(c.Bounds().Max.X-1) > 1e-9 {
		t.Errorf("Expected bounds to follow commit, got %v", c.Bounds())
	}
}

func TestRefreshUsesTransform(t *testing.T) {
	cube := mesh.NewCube("cube", 1)
	if err := cube.SetTransform(geometry.Translation(geometry.NewVector3(10, 0, 0))); err != nil {
		t.Fatalf("SetTransform failed: %v", err)
	}
	c, err := Attach(cube)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if !c.SphereCollision(geometry.NewVector3(10, 0, 0), 0.6) {
		t.Error("Expected sphere around translated cube to touch it")
	}
	if c.SphereCollision(geometry.Vector3{}, 0.6) {
		t.Error("Expected no collision at the origin")
	}
	if c.NeedsRepair() {
		t.Error("Closed cube should not need repair")
	}
}

func TestPick(t *testing.T) {
	near := mesh.NewCube("near", 1)
	far := mesh.NewCube("far", 1)
	_ = far.SetTransform(geometry.Translation(geometry.NewVector3(0, 0, 5)))
	for _, m := range []*mesh.Mesh{near, far} {
		if _, err := Attach(m); err != nil {
			t.Fatalf("Attach failed: %v", err)
		}
	}

	id, _, ok := Pick([]*mesh.Mesh{far, near}, geometry.NewVector3(0.2, -0.1, -5), geometry.NewVector3(0, 0, 1))
	if !ok || id != "near" {
		t.Errorf("Expected to pick near, got %q (%v)", id, ok)
	}
}
