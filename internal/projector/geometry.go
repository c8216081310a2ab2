package projector

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"geomap/internal/transform"
)

// ErrUnsupportedGeometry is returned for geometry types ProjectGeometry does
// not know how to walk.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// Projected groups the pixel output of an arbitrary geometry by kind.
type Projected struct {
	Points   []transform.PixelPoint
	Lines    [][]transform.PixelPoint
	Polygons []Rings
}

// Empty reports whether nothing was projected.
func (p Projected) Empty() bool {
	return len(p.Points) == 0 && len(p.Lines) == 0 && len(p.Polygons) == 0
}

// ProjectGeometry projects any orb geometry, collections included.
// A bound is treated as a closed polygon.
func ProjectGeometry(g orb.Geometry, v transform.Viewport) (Projected, error) {
	var out Projected
	if err := out.add(g, v); err != nil {
		return Projected{}, err
	}
	return out, nil
}

func (out *Projected) add(g orb.Geometry, v transform.Viewport) error {
	switch g := g.(type) {
	case nil:
		return errors.Wrap(ErrUnsupportedGeometry, "nil")
	case orb.Point:
		out.Points = append(out.Points, ProjectPoint(g, v))
	case orb.MultiPoint:
		out.Points = append(out.Points, projectPoints(g, v)...)
	case orb.LineString:
		out.Lines = append(out.Lines, ProjectLineString(g, v))
	case orb.MultiLineString:
		for _, ls := range g {
			out.Lines = append(out.Lines, ProjectLineString(ls, v))
		}
	case orb.Ring:
		out.Polygons = append(out.Polygons, ProjectRings(orb.Polygon{g}, v))
	case orb.Polygon:
		out.Polygons = append(out.Polygons, ProjectRings(g, v))
	case orb.MultiPolygon:
		for _, p := range g {
			out.Polygons = append(out.Polygons, ProjectRings(p, v))
		}
	case orb.Bound:
		out.Polygons = append(out.Polygons, ProjectRings(g.ToPolygon(), v))
	case orb.Collection:
		for _, c := range g {
			if err := out.add(c, v); err != nil {
				return err
			}
		}
	default:
		return errors.Wrapf(ErrUnsupportedGeometry, "%T", g)
	}
	return nil
}
