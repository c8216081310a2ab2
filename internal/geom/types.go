// Package geom loads vector data from files and pasted text into orb
// geometries ready for projection.
package geom

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ErrNoGeometry is returned when input parses but holds no coordinates.
var ErrNoGeometry = errors.New("no geometries found")

// Attributes is a table of per-feature properties.
type Attributes struct {
	Columns []string
	Rows    [][]string
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   []orb.Point
	Lines    []orb.LineString
	Polygons []orb.Polygon // ring 0 is the shell, the rest are holes
	Bound    orb.Bound
	Attrs    Attributes

	vertices int
}

// Empty reports whether no geometry was added.
func (d *Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// Vertices returns the total number of coordinates held.
func (d *Data) Vertices() int { return d.vertices }

// Add flattens g into d and grows the bound. Unknown types are ignored.
func (d *Data) Add(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		d.Points = append(d.Points, g)
		d.extend(g)
	case orb.MultiPoint:
		for _, p := range g {
			d.Add(p)
		}
	case orb.LineString:
		if len(g) == 0 {
			return
		}
		d.Lines = append(d.Lines, g)
		d.extend(g...)
	case orb.MultiLineString:
		for _, ls := range g {
			d.Add(ls)
		}
	case orb.Ring:
		d.Add(orb.Polygon{g})
	case orb.Polygon:
		if len(g) == 0 || len(g[0]) == 0 {
			return
		}
		d.Polygons = append(d.Polygons, g)
		for _, r := range g {
			d.extend(r...)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			d.Add(p)
		}
	case orb.Bound:
		d.Add(g.ToPolygon())
	case orb.Collection:
		for _, c := range g {
			d.Add(c)
		}
	}
}

func (d *Data) extend(pts ...orb.Point) {
	for _, p := range pts {
		if d.vertices == 0 {
			d.Bound = p.Bound()
		} else {
			d.Bound = d.Bound.Extend(p)
		}
		d.vertices++
	}
}
