package tui

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"

	"geomap/internal/projector"
	"geomap/internal/transform"
)

// clipPad keeps strokes crossing the canvas edge from being cut short.
const clipPad = 4 // dots

func (m Model) renderAsciiMap(w, h int) string {
	br := newBrailleBuf(w, h)
	if m.vp.Validate() == nil {
		view := m.vp.Envelope().Bound().Pad(clipPad * math.Max(m.vp.PixelWidth(), m.vp.PixelHeight()))
		if m.showPolys {
			for _, poly := range m.data.Polygons {
				m.drawClipped(br, view, poly)
			}
		}
		if m.showLines {
			for _, ls := range m.data.Lines {
				m.drawClipped(br, view, ls)
			}
		}
		if m.showPoints {
			for _, p := range m.data.Points {
				if view.Contains(p) {
					br.set(toDot(projector.ProjectPoint(p, m.vp)))
				}
			}
		}
	}
	lines := br.toLines()

	// Hover highlight: draw an orange circle at the hovered vertex cell
	// Division truncates toward zero, so negative dots are rejected first.
	if m.hovering && m.hoverMicX >= 0 && m.hoverMicY >= 0 {
		cx := m.hoverMicX / dotsX
		cy := m.hoverMicY / dotsY
		if cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				lines[cy] = string(r[:cx]) + hoverStyle.Render("◯") + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

// drawClipped cuts g to the visible region in world space, projects what is
// left and rasterises it.
func (m Model) drawClipped(br *brailleBuf, view orb.Bound, g orb.Geometry) {
	if !view.Intersects(g.Bound()) {
		return
	}
	// clip reuses its input's backing arrays
	c := clip.Geometry(view, orb.Clone(g))
	if c == nil {
		return
	}
	out, err := projector.ProjectGeometry(c, m.vp)
	if err != nil {
		return
	}
	for _, ls := range out.Lines {
		br.path(toDots(ls), false)
	}
	for _, rings := range out.Polygons {
		ds := make([][]dot, rings.Len())
		for i := range ds {
			ds[i] = toDots(rings.Ring(i))
		}
		br.fill(ds)
		for _, r := range ds {
			br.path(r, true)
		}
	}
	for _, p := range out.Points {
		br.set(toDot(p))
	}
}

// vertex is a data coordinate with its current screen position.
type vertex struct {
	world orb.Point
	pixel transform.PixelPoint
}

// eachVertex projects every coordinate of the loaded data.
func (m Model) eachVertex(fn func(vertex)) {
	for _, p := range m.data.Points {
		fn(vertex{p, projector.ProjectPoint(p, m.vp)})
	}
	for _, ls := range m.data.Lines {
		for i, px := range projector.ProjectLineStringConcurrent(ls, m.vp, 0) {
			fn(vertex{ls[i], px})
		}
	}
	for _, poly := range m.data.Polygons {
		flat := projector.ProjectPolygon(poly, m.vp)
		i := 0
		for _, r := range poly {
			for _, p := range r {
				fn(vertex{p, flat[i]})
				i++
			}
		}
	}
}

// nearest finds the vertex closest to target on screen. With visibleOnly,
// vertices outside the current view are ignored.
func (m Model) nearest(target transform.PixelPoint, visibleOnly bool) (vertex, bool) {
	if m.vp.Validate() != nil {
		return vertex{}, false
	}
	env := m.vp.Envelope()
	best := math.Inf(1)
	var found vertex
	m.eachVertex(func(v vertex) {
		if visibleOnly && !env.Contains(v.world) {
			return
		}
		dx, dy := v.pixel.X-target.X, v.pixel.Y-target.Y
		if d := dx*dx + dy*dy; d < best {
			best = d
			found = v
		}
	})
	return found, !math.IsInf(best, 1)
}

// inspectNearest finds the visible vertex closest to the viewport center.
func (m Model) inspectNearest() (lon, lat float64, ok bool) {
	c := transform.WorldToPixel(m.vp.Center, m.vp)
	v, ok := m.nearest(c, true)
	if !ok {
		return 0, 0, false
	}
	return v.world[0], v.world[1], true
}
