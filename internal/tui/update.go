package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geomap/internal/geom"
	"geomap/internal/transform"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoomBy(zoomStep) {
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoomFactor())
			}
		case "-", "_":
			if m.zoomBy(1 / zoomStep) {
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoomFactor())
			}
		case "0":
			m.fitZoom = 0
			m.fit()
			m.status = "fit to data"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
			}
			m.relayout()
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			m.inspect()
		case "esc":
			m.inspectPopup = ""
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.pan(0, -1)
		case "down":
			m.pan(0, 1)
		case "left":
			m.pan(-2, 0)
		case "right":
			m.pan(2, 0)
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) relayout() {
	lay := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	m.setMapSize(lay.w, lay.h)
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.status = "view mode"
		m.ta.Blur()
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.log.Info("pasted wkt rejected", zap.Error(err))
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setData(d)
		m.log.Info("rendered pasted wkt", zap.Int("vertices", d.Vertices()))
		m.status = "rendered WKT  " + m.counts()
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m *Model) inspect() {
	lon, lat, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no feature nearby"
		m.status = m.inspectPopup
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<unsaved>"
	}
	b := m.data.Bound
	env := m.vp.Envelope()
	meta := []string{
		fmt.Sprintf("name: %s", name),
		fmt.Sprintf("path: %s", m.selPath),
		fmt.Sprintf("bbox: [%.5f, %.5f, %.5f, %.5f]", b.Min[0], b.Min[1], b.Max[0], b.Max[1]),
		fmt.Sprintf("view: [%.5f, %.5f, %.5f, %.5f]", env.MinX, env.MinY, env.MaxX, env.MaxY),
		fmt.Sprintf("scale: %.6g units/dot", m.vp.PixelWidth()),
		"counts: " + m.counts(),
		fmt.Sprintf("nearest: x=%.6f y=%.6f", lon, lat),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

// hover tracks the mouse over the map: world coordinates for the footer and
// the nearest vertex for the highlight.
func (m *Model) hover(x, y int) {
	lay := m.layout()
	if x < lay.originX || x >= lay.originX+lay.w || y < lay.originY || y >= lay.originY+lay.h {
		m.hovering = false
		m.hoverHasGeo = false
		return
	}
	m.hoverCellX = x - lay.originX
	m.hoverCellY = y - lay.originY
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(m.hoverCellX, m.hoverCellY)

	target := transform.PixelPoint{X: float64(m.hoverCellX * dotsX), Y: float64(m.hoverCellY * dotsY)}
	v, ok := m.nearest(target, false)
	m.hovering = ok
	if ok {
		d := toDot(v.pixel)
		m.hoverMicX, m.hoverMicY = d.x, d.y
	}
}

func (m Model) counts() string {
	return fmt.Sprintf("pts=%d ls=%d poly=%d", len(m.data.Points), len(m.data.Lines), len(m.data.Polygons))
}
