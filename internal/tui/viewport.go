package tui

import (
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"geomap/internal/geom"
	"geomap/internal/transform"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2

	// braille cells hold 2x4 dots, roughly square on a terminal
	dotsX = 2
	dotsY = 4

	zoomStep = 1.2
	zoomMin  = 0.05
	zoomMax  = 64
)

// layout is where the map canvas sits on screen, in cells.
type layout struct {
	originX, originY int
	w, h             int
	contentW         int
	contentH         int
}

func (m Model) layout() layout {
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	sw, gap := 0, 0
	if m.showSidebar {
		sw, gap = sidebarWidth, 1
	}
	return layout{
		originX:  sw + gap,
		originY:  headerHeight,
		w:        max(10, contentW-sw-1),
		h:        contentH,
		contentW: contentW,
		contentH: contentH,
	}
}

func microSize(w, h int) transform.PixelSize {
	return transform.PixelSize{Width: float64(w * dotsX), Height: float64(h * dotsY)}
}

// setMapSize resizes the viewport to a new canvas, fitting the data on the
// first call.
func (m *Model) setMapSize(w, h int) {
	if w == m.mapW && h == m.mapH {
		return
	}
	m.mapW, m.mapH = w, h
	if m.fitZoom == 0 {
		m.fit()
		return
	}
	m.applyViewport(m.vp.Resize(microSize(w, h)))
}

// fit centers the loaded data in the canvas.
func (m *Model) fit() {
	if m.mapW <= 0 || m.mapH <= 0 {
		return
	}
	b := m.data.Bound
	if m.data.Empty() {
		b = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}
	}
	v := transform.FitBound(b, microSize(m.mapW, m.mapH), 1)
	if m.applyViewport(v) {
		m.fitZoom = v.Zoom
		if m.startZoom != 1 {
			m.applyViewport(v.ZoomBy(m.startZoom))
		}
	}
}

// applyViewport installs v if it is valid.
func (m *Model) applyViewport(v transform.Viewport) bool {
	if err := v.Validate(); err != nil {
		m.log.Warn("viewport rejected", zap.Error(err))
		m.status = "viewport: " + err.Error()
		return false
	}
	m.vp = v
	return true
}

// zoomFactor is the magnification relative to the fitted view.
func (m Model) zoomFactor() float64 {
	if m.vp.Zoom == 0 {
		return 1
	}
	return m.fitZoom / m.vp.Zoom
}

func (m *Model) zoomBy(f float64) bool {
	z := m.zoomFactor() * f
	if z < zoomMin || z > zoomMax {
		return false
	}
	return m.applyViewport(m.vp.ZoomBy(f))
}

func (m *Model) pan(cellsX, cellsY int) {
	m.applyViewport(m.vp.Pan(float64(cellsX*dotsX), float64(cellsY*dotsY)))
}

// cellToLonLat converts a map cell back to world coordinates, taking the
// middle of the cell.
func (m Model) cellToLonLat(cx, cy int) (float64, float64, bool) {
	if m.vp.Validate() != nil {
		return 0, 0, false
	}
	p := m.vp.PixelToWorld(transform.PixelPoint{
		X: float64(cx*dotsX) + dotsX/2,
		Y: float64(cy*dotsY) + dotsY/2,
	})
	return p[0], p[1], true
}

func (m *Model) setData(d geom.Data) {
	m.data = d
	m.fitZoom = 0
	m.fit()
	// prefer polys > lines > points for visibility
	m.showPolys = len(d.Polygons) > 0
	m.showLines = len(d.Lines) > 0 && !m.showPolys
	m.showPoints = len(d.Points) > 0 && !m.showPolys
	m.inspectPopup = ""
	m.hovering = false
}
