package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/meshslice/pkg/collision"
	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
	"github.com/philipparndt/meshslice/pkg/slice"
	"github.com/philipparndt/meshslice/pkg/stl"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// vectorValue is a pflag.Value holding an "x,y,z" triple
type vectorValue struct {
	v *geometry.Vector3
}

var _ pflag.Value = vectorValue{}

func newVectorValue(v *geometry.Vector3, def geometry.Vector3) vectorValue {
	*v = def
	return vectorValue{v: v}
}

func (f vectorValue) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f vectorValue) Set(s string) error {
	v, err := parseVector(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func (f vectorValue) Type() string {
	return "x,y,z"
}

func parseVector(s string) (geometry.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected x,y,z but got %q", s)
	}
	var c [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

// planeFlags registers --origin and --normal on a command
type planeFlags struct {
	origin geometry.Vector3
	normal geometry.Vector3
}

func (p *planeFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(newVectorValue(&p.origin, geometry.Vector3{}), "origin", "A point on the slice plane")
	cmd.Flags().Var(newVectorValue(&p.normal, geometry.NewVector3(0, 1, 0)), "normal", "Slice plane normal")
}

func (p *planeFlags) plane() (geometry.Plane, error) {
	if p.normal.Length() == 0 {
		return geometry.Plane{}, fmt.Errorf("plane normal must not be zero")
	}
	return geometry.NewPlane(p.origin, p.normal), nil
}

// loadMesh parses an STL file into a welded mesh with a collision proxy
func loadMesh(filename string) (*mesh.Mesh, *collision.MeshCollider, error) {
	model, err := stl.Parse(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	m, err := model.ToMesh(filename, stl.DefaultWeldTolerance)
	if err != nil {
		return nil, nil, err
	}
	c, err := collision.Attach(m)
	if err != nil {
		return nil, nil, err
	}
	return m, c, nil
}

// loadConfig reads the config file if one is given
func loadConfig(path string) (slice.Config, error) {
	if path == "" {
		return slice.DefaultConfig(), nil
	}
	return slice.LoadConfig(path)
}
