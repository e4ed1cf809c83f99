package stl

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

const asciiTriangle = `solid test part
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 1 0 0
      vertex 1 1 0
      vertex 0 1 0
    endloop
  endfacet
endsolid test part
`

func TestParseASCII(t *testing.T) {
	model, err := Decode([]byte(asciiTriangle))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if model.Name != "test part" {
		t.Errorf("Expected name 'test part', got %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", model.TriangleCount())
	}
	if math.Abs(model.SurfaceArea()-1) > 1e-9 {
		t.Errorf("Expected area 1, got %f", model.SurfaceArea())
	}

	m, err := model.ToMesh("quad", 0)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if m.VertexCount() != 4 {
		t.Errorf("Expected 4 welded vertices, got %d", m.VertexCount())
	}
	if m.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", m.TriangleCount())
	}
}

func TestParseASCIIErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad number", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 a 0\n"},
		{"short vertex", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0\n"},
		{"two vertices", "solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nendloop\nendfacet\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.input)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	cube := mesh.NewCube("cube", 2)

	var buf bytes.Buffer
	// a header starting with "solid" must still be read as binary
	if err := Write(&buf, FromMesh("solid cube", cube)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 84+12*50 {
		t.Fatalf("Unexpected binary size %d", buf.Len())
	}

	model, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if model.TriangleCount() != 12 {
		t.Fatalf("Expected 12 triangles, got %d", model.TriangleCount())
	}
	if !strings.HasPrefix(model.Name, "solid cube") {
		t.Errorf("Unexpected name %q", model.Name)
	}

	box := model.BoundingBox()
	if box.Min.X != -1 || box.Max.Z != 1 {
		t.Errorf("Unexpected bounds %v", box)
	}

	welded, err := model.ToMesh("cube", DefaultWeldTolerance)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if welded.VertexCount() != 8 {
		t.Errorf("Expected 8 welded vertices, got %d", welded.VertexCount())
	}
	for i := 0; i < welded.TriangleCount(); i++ {
		tri := welded.WorldTriangle(i)
		if tri.CalculateNormal().Dot(tri.V1) <= 0 {
			t.Errorf("Triangle %d lost its outward winding", i)
		}
	}
}

func TestToMeshWeldsAcrossCellBoundary(t *testing.T) {
	const tolerance = 1e-3
	// the shared edge corners sit on either side of a cell boundary
	lo := geometry.NewVector3(0.0009999, 0, 0)
	hi := geometry.NewVector3(0.0010001, 0, 0)
	top := geometry.NewVector3(0.001, 1, 0)

	model := NewModel("strip")
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, geometry.NewVector3(-1, 0, 0), lo, top))
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, hi, geometry.NewVector3(1, 0, 0), top))

	m, err := model.ToMesh("strip", tolerance)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if m.VertexCount() != 4 {
		t.Errorf("Expected 4 welded vertices, got %d", m.VertexCount())
	}

	// corners further apart than the tolerance stay separate
	model = NewModel("gap")
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, geometry.NewVector3(-1, 0, 0), geometry.NewVector3(0, 0, 0), top))
	model.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, geometry.NewVector3(0.002, 0, 0), geometry.NewVector3(1, 0, 0), top))
	m, err = model.ToMesh("gap", tolerance)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if m.VertexCount() != 5 {
		t.Errorf("Expected 5 vertices, got %d", m.VertexCount())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.stl")
	if err := WriteFile(path, FromMesh("cube", mesh.NewCube("cube", 1))); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	model, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if model.TriangleCount() != 12 {
		t.Errorf("Expected 12 triangles, got %d", model.TriangleCount())
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
