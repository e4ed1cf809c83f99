// Package slice intersects meshes with a movable plane and lets a pointer
// create, select and drag points on the intersection curve, displacing the
// surrounding vertices with a linear falloff.
package slice

import (
	"io"
	"log"
	"math"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/philipparndt/meshslice/pkg/mesh"
)

// Input is the pointer event of one frame
type Input int

const (
	InputNone Input = iota
	InputPress
	InputHold
	InputRelease
)

func (i Input) String() string {
	switch i {
	case InputPress:
		return "press"
	case InputHold:
		return "hold"
	case InputRelease:
		return "release"
	default:
		return "none"
	}
}

// Frame is everything the manipulator reads in one step
type Frame struct {
	Plane   *geometry.Plane
	Meshes  *mesh.Registry
	Pointer geometry.Vector3
	Input   Input
}

// FrameResult reports what one step did
type FrameResult struct {
	Curve    Curve
	Skipped  bool
	Selected bool
	Created  bool
	Released bool
	Moved    int
}

type affectedVertex struct {
	mesh     *mesh.Mesh
	index    int
	original geometry.Vector3
	distance float64
}

// Manipulator is the Idle/Dragging state machine driven once per frame
type Manipulator struct {
	config Config
	logger *log.Logger

	curve      Curve
	points     []geometry.Vector3
	insertions map[string][]int

	dragging   bool
	selected   geometry.Vector3
	pointIndex int
	pointStart geometry.Vector3
	dragStart  geometry.Vector3
	affected   []affectedVertex
}

// Option configures a Manipulator
type Option func(*Manipulator)

// WithLogger routes diagnostic output to l
func WithLogger(l *log.Logger) Option {
	return func(m *Manipulator) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManipulator creates an idle manipulator
func NewManipulator(cfg Config, opts ...Option) *Manipulator {
	m := &Manipulator{
		config:     cfg,
		logger:     log.New(io.Discard, "", 0),
		insertions: make(map[string][]int),
		pointIndex: -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Config returns the active configuration
func (m *Manipulator) Config() Config {
	return m.config
}

// SetConfig replaces the configuration; a running drag keeps its vertex set
func (m *Manipulator) SetConfig(cfg Config) {
	m.config = cfg
}

// Step rebuilds the curve and processes one input event
func (m *Manipulator) Step(f Frame) FrameResult {
	if f.Plane == nil {
		m.logger.Printf("no slice plane, skipping frame")
		return FrameResult{Skipped: true}
	}
	if f.Meshes == nil {
		m.logger.Printf("no mesh registry, skipping frame")
		return FrameResult{Skipped: true}
	}

	plane := *f.Plane
	candidates := f.Meshes.Candidates(m.config.ExcludeTag)
	m.curve = BuildCurve(plane, candidates)

	result := FrameResult{Curve: m.curve}
	switch f.Input {
	case InputPress:
		if m.dragging {
			m.release()
			result.Released = true
		}
		result.Selected, result.Created = m.press(plane, candidates, f.Pointer)
	case InputHold:
		if m.dragging {
			result.Moved = m.drag(plane, f.Pointer)
		}
	case InputRelease:
		if m.dragging {
			m.release()
			result.Released = true
		}
	}
	return result
}

func (m *Manipulator) press(plane geometry.Plane, candidates []*mesh.Mesh, pointer geometry.Vector3) (selected, created bool) {
	if p, idx, ok := m.nearestPoint(plane, pointer); ok {
		m.beginDrag(plane, candidates, pointer, p, idx)
		m.logger.Printf("selected point %v", p)
		return true, false
	}

	p, ok := m.pointOnCurve(plane, pointer)
	if !ok {
		return false, false
	}

	for _, msh := range candidates {
		inserted, err := SplitAt(plane, msh, p, m.config.VertexInfluenceRadius)
		if err != nil {
			m.logger.Printf("split skipped: %v", err)
			continue
		}
		if len(inserted) > 0 {
			m.insertions[msh.ID] = append(m.insertions[msh.ID], inserted...)
			m.logger.Printf("inserted %d vertices into %s", len(inserted), msh.ID)
		}
	}

	m.points = append(m.points, p)
	m.beginDrag(plane, candidates, pointer, p, len(m.points)-1)
	m.logger.Printf("created point %v", p)
	return true, true
}

// nearestPoint finds the closest curve or interactive point within the
// selection radius; idx is -1 unless an interactive point was picked
func (m *Manipulator) nearestPoint(plane geometry.Plane, pointer geometry.Vector3) (geometry.Vector3, int, bool) {
	at := plane.To2D(pointer)
	best := m.config.SelectionRadius
	var nearest geometry.Vector3
	idx := -1
	found := false

	for _, p := range m.curve.Points {
		if d := plane.To2D(p).Distance(at); d < best {
			best, nearest, idx, found = d, p, -1, true
		}
	}
	for i, p := range m.points {
		if d := plane.To2D(p).Distance(at); d < best {
			best, nearest, idx, found = d, p, i, true
		}
	}

	// a curve point that coincides with an interactive point drags that point
	if found && idx < 0 {
		for i, p := range m.points {
			if p == nearest {
				idx = i
				break
			}
		}
	}
	return nearest, idx, found
}

// pointOnCurve projects the pointer onto the closest segment within the
// selection radius
func (m *Manipulator) pointOnCurve(plane geometry.Plane, pointer geometry.Vector3) (geometry.Vector3, bool) {
	at := plane.To2D(pointer)
	best := m.config.SelectionRadius
	var point geometry.Vector3
	found := false

	for i := 0; i < m.curve.SegmentCount(); i++ {
		a, b := m.curve.Segment(i)
		t, d, ok := geometry.ProjectOntoSegment2D(at, plane.To2D(a), plane.To2D(b))
		if ok && d < best {
			best = d
			point = a.Lerp(b, t)
			found = true
		}
	}
	return point, found
}

func (m *Manipulator) beginDrag(plane geometry.Plane, candidates []*mesh.Mesh, pointer, selected geometry.Vector3, idx int) {
	m.dragging = true
	m.selected = selected
	m.pointIndex = idx
	if idx >= 0 {
		m.pointStart = m.points[idx]
	}
	m.dragStart = pointer
	m.collectAffected(plane, candidates)
}

func (m *Manipulator) collectAffected(plane geometry.Plane, candidates []*mesh.Mesh) {
	m.affected = m.affected[:0]
	radius := m.config.VertexInfluenceRadius

	for _, msh := range candidates {
		vertices := msh.Vertices()
		for i, v := range vertices {
			rel := msh.WorldVertex(i).Sub(plane.Origin)
			if math.Abs(rel.Dot(plane.Normal)) >= radius {
				continue
			}
			projected := rel.ProjectOnPlane(plane.Normal).Add(plane.Origin)
			d := projected.Distance(m.selected)
			if d >= radius {
				continue
			}
			m.affected = append(m.affected, affectedVertex{
				mesh:     msh,
				index:    i,
				original: v,
				distance: d,
			})
		}
	}
}

// drag displaces every affected vertex from its original position
func (m *Manipulator) drag(plane geometry.Plane, pointer geometry.Vector3) int {
	delta := pointer.Sub(m.dragStart).ProjectOnPlane(plane.Normal)

	edits := make(map[*mesh.Mesh]*mesh.Edit)
	var order []*mesh.Mesh
	moved := 0
	for _, a := range m.affected {
		e, ok := edits[a.mesh]
		if !ok {
			e = a.mesh.Begin()
			edits[a.mesh] = e
			order = append(order, a.mesh)
		}
		if a.index >= e.VertexCount() {
			continue
		}
		local := a.mesh.Transform.InverseTransformVector(delta)
		weight := Falloff(a.distance, m.config.VertexInfluenceRadius)
		e.SetVertex(a.index, a.original.Add(local.Mul(weight)))
		moved++
	}

	for _, msh := range order {
		if err := edits[msh].Commit(mesh.CommitOptions{RecalculateNormals: true}); err != nil {
			m.logger.Printf("drag commit on %s failed: %v", msh.ID, err)
		}
	}

	if m.pointIndex >= 0 {
		m.points[m.pointIndex] = m.pointStart.Add(delta)
	}
	return moved
}

func (m *Manipulator) release() {
	m.dragging = false
	m.selected = geometry.Vector3{}
	m.pointIndex = -1
	m.pointStart = geometry.Vector3{}
	m.dragStart = geometry.Vector3{}
	m.affected = m.affected[:0]
}

// Falloff returns the displacement weight of a vertex at the given planar
// distance from the selected point
func Falloff(distance, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return geometry.Clamp01(1 - distance/radius)
}

// Curve returns the curve built in the last step
func (m *Manipulator) Curve() Curve {
	return m.curve
}

// Points returns a copy of the interactive points in creation order
func (m *Manipulator) Points() []geometry.Vector3 {
	return append([]geometry.Vector3(nil), m.points...)
}

// Selected returns the point being dragged
func (m *Manipulator) Selected() (geometry.Vector3, bool) {
	if !m.dragging {
		return geometry.Vector3{}, false
	}
	if m.pointIndex >= 0 {
		return m.points[m.pointIndex], true
	}
	return m.selected, true
}

// Dragging reports whether a drag is in progress
func (m *Manipulator) Dragging() bool {
	return m.dragging
}

// AffectedCount returns the number of vertices collected for the current drag
func (m *Manipulator) AffectedCount() int {
	return len(m.affected)
}

// Insertions returns the vertex indices inserted into the given mesh
func (m *Manipulator) Insertions(meshID string) []int {
	return append([]int(nil), m.insertions[meshID]...)
}
