// Package projector runs vector geometries through the world to pixel
// transform, vertex by vertex, keeping vertex order.
package projector

import (
	"github.com/paulmach/orb"

	"geomap/internal/transform"
)

// ProjectPoint projects a single point.
func ProjectPoint(p orb.Point, v transform.Viewport) transform.PixelPoint {
	return transform.WorldToPixel(p, v)
}

// ProjectLineString projects every vertex of ls. The result has the same
// length and order as ls.
func ProjectLineString(ls orb.LineString, v transform.Viewport) []transform.PixelPoint {
	return projectPoints(ls, v)
}

// ProjectPolygon projects the shell followed by every hole into one flat
// vertex buffer. Ring boundaries are not marked; use ProjectRings when the
// ring structure is needed.
func ProjectPolygon(poly orb.Polygon, v transform.Viewport) []transform.PixelPoint {
	return ProjectRings(poly, v).Vertices
}

// Rings is a projected polygon: one contiguous vertex buffer plus the length
// of each ring in it, shell first.
type Rings struct {
	Vertices []transform.PixelPoint
	Lengths  []int
}

// ProjectRings projects a polygon keeping its ring table.
func ProjectRings(poly orb.Polygon, v transform.Viewport) Rings {
	n := 0
	for _, r := range poly {
		n += len(r)
	}
	out := Rings{
		Vertices: make([]transform.PixelPoint, n),
		Lengths:  make([]int, len(poly)),
	}
	j := 0
	for k, r := range poly {
		for i, p := range r {
			out.Vertices[j+i] = transform.WorldToPixel(p, v)
		}
		out.Lengths[k] = len(r)
		j += len(r)
	}
	return out
}

// Len returns the number of rings.
func (r Rings) Len() int { return len(r.Lengths) }

// Ring returns ring i as a slice of the shared vertex buffer.
func (r Rings) Ring(i int) []transform.PixelPoint {
	off := 0
	for _, l := range r.Lengths[:i] {
		off += l
	}
	return r.Vertices[off : off+r.Lengths[i] : off+r.Lengths[i]]
}

func projectPoints(pts []orb.Point, v transform.Viewport) []transform.PixelPoint {
	out := make([]transform.PixelPoint, len(pts))
	for i, p := range pts {
		out[i] = transform.WorldToPixel(p, v)
	}
	return out
}
