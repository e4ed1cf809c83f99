package slice

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshslice/pkg/geometry"
	"github.com/rclancey/earcut"
)

// Contour is an ordered polyline through connected curve segments
// A closed contour does not repeat its first point at the end.
type Contour struct {
	Points []geometry.Vector3
	Closed bool
}

// ChainContours links segments whose endpoints lie within eps of each other
func ChainContours(curve Curve, eps float64) []Contour {
	type edge struct{ a, b geometry.Vector3 }

	unused := make([]edge, 0, curve.SegmentCount())
	for i := 0; i < curve.SegmentCount(); i++ {
		a, b := curve.Segment(i)
		if a.Distance(b) <= eps {
			continue
		}
		unused = append(unused, edge{a, b})
	}

	// take removes and returns the far end of an edge touching p
	take := func(p geometry.Vector3) (geometry.Vector3, bool) {
		for j, e := range unused {
			var other geometry.Vector3
			switch {
			case e.a.Distance(p) <= eps:
				other = e.b
			case e.b.Distance(p) <= eps:
				other = e.a
			default:
				continue
			}
			unused = append(unused[:j], unused[j+1:]...)
			return other, true
		}
		return geometry.Vector3{}, false
	}

	var contours []Contour
	for len(unused) > 0 {
		first := unused[0]
		unused = unused[1:]
		points := []geometry.Vector3{first.a, first.b}
		closed := false

		for {
			next, ok := take(points[len(points)-1])
			if !ok {
				break
			}
			if next.Distance(points[0]) <= eps {
				closed = true
				break
			}
			points = append(points, next)
		}

		if !closed {
			// extend backwards from the start
			for {
				prev, ok := take(points[0])
				if !ok {
					break
				}
				points = append([]geometry.Vector3{prev}, points...)
			}
		}

		contours = append(contours, Contour{Points: points, Closed: closed})
	}
	return contours
}

// Perimeter returns the length of the polyline, including the closing edge
func (c Contour) Perimeter() float64 {
	total := 0.0
	for i := 1; i < len(c.Points); i++ {
		total += c.Points[i-1].Distance(c.Points[i])
	}
	if c.Closed && len(c.Points) > 2 {
		total += c.Points[len(c.Points)-1].Distance(c.Points[0])
	}
	return total
}

// Simplify drops points that lie on the line through their neighbours
func (c Contour) Simplify(eps float64) Contour {
	points := c.Points
	for {
		n := len(points)
		if n < 3 {
			break
		}
		removed := false
		for i := 0; i < n; i++ {
			if !c.Closed && (i == 0 || i == n-1) {
				continue
			}
			prev := points[(i+n-1)%n]
			next := points[(i+1)%n]
			if collinear(prev, points[i], next, eps) {
				points = append(append([]geometry.Vector3(nil), points[:i]...), points[i+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			break
		}
	}
	return Contour{Points: points, Closed: c.Closed}
}

func collinear(a, b, c geometry.Vector3, eps float64) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	scale := ab.Length() * ac.Length()
	if scale == 0 {
		return true
	}
	return ab.Cross(ac).Length() <= eps*scale
}

// SectionArea returns the area enclosed by a closed contour lying in the plane
func SectionArea(plane geometry.Plane, c Contour) (float64, error) {
	if !c.Closed {
		return 0, fmt.Errorf("contour is open")
	}
	if len(c.Points) < 3 {
		return 0, fmt.Errorf("contour has %d points", len(c.Points))
	}

	coords := make([]float64, 0, len(c.Points)*2)
	for _, p := range c.Points {
		q := plane.To2D(p)
		coords = append(coords, q.X, q.Y)
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return 0, fmt.Errorf("failed to triangulate section: %w", err)
	}

	area := 0.0
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, d := indices[i]*2, indices[i+1]*2, indices[i+2]*2
		cross := (coords[b]-coords[a])*(coords[d+1]-coords[a+1]) -
			(coords[d]-coords[a])*(coords[b+1]-coords[a+1])
		area += math.Abs(cross) / 2
	}
	return area, nil
}
