package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geomap/internal/geom"
)

func sized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func (m Model) withHover(x, y int) Model {
	m.hoverMicX, m.hoverMicY = x, y
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func square() geom.Data {
	var d geom.Data
	d.Add(orb.Polygon{
		{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
		{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
	})
	return d
}

func TestModel_fitsOnResize(t *testing.T) {
	m := New(Options{})
	m.setData(square())
	assert.Zero(t, m.fitZoom, "no canvas yet")

	m = sized(t, m, 100, 30)
	assert.Equal(t, 99, m.mapW)
	assert.Equal(t, 27, m.mapH)
	require.NoError(t, m.vp.Validate())
	assert.Equal(t, orb.Point{5, 5}, m.vp.Center)
	assert.InDelta(t, 1.0, m.zoomFactor(), 1e-12)

	env := m.vp.Envelope()
	assert.True(t, env.Contains(orb.Point{0, 0}))
	assert.True(t, env.Contains(orb.Point{10, 10}))

	m = sized(t, m, 60, 20)
	assert.Equal(t, float64(59*dotsX), m.vp.Size.Width)
	assert.InDelta(t, 1.0, m.zoomFactor(), 1e-12, "resize keeps zoom")
}

func TestModel_zoomAndPan(t *testing.T) {
	m := New(Options{})
	m.setData(square())
	m = sized(t, m, 80, 24)

	m = press(m, runes("+"))
	assert.InDelta(t, zoomStep, m.zoomFactor(), 1e-9)
	assert.Contains(t, m.status, "zoom: 1.20x")

	before := m.vp.Center
	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyUp})
	assert.InDelta(t, before[0]+4*m.vp.PixelWidth(), m.vp.Center[0], 1e-9)
	assert.InDelta(t, before[1]+4*m.vp.PixelHeight(), m.vp.Center[1], 1e-9)

	m = press(m, runes("0"))
	assert.Equal(t, orb.Point{5, 5}, m.vp.Center)

	for i := 0; i < 100; i++ {
		m = press(m, runes("-"))
	}
	assert.GreaterOrEqual(t, m.zoomFactor(), zoomMin)
}

func TestModel_startZoom(t *testing.T) {
	m := New(Options{Zoom: 2})
	m.setData(square())
	m = sized(t, m, 80, 24)
	assert.InDelta(t, 2.0, m.zoomFactor(), 1e-9)
}

func TestModel_render(t *testing.T) {
	m := New(Options{})
	m.setData(square())
	m = sized(t, m, 40, 12)

	out := m.renderAsciiMap(m.mapW, m.mapH)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, m.mapH)
	assert.Contains(t, out, "⣿", "filled interior")

	// the hole in the middle of the square stays blank
	mid := []rune(lines[m.mapH/2])
	assert.Equal(t, ' ', mid[m.mapW/2])

	m = press(m, runes("3"))
	assert.Equal(t, strings.Repeat(strings.Repeat(" ", m.mapW)+"\n", m.mapH-1)+strings.Repeat(" ", m.mapW),
		m.renderAsciiMap(m.mapW, m.mapH))
}

func TestModel_renderClipsOffscreen(t *testing.T) {
	var d geom.Data
	d.Add(orb.LineString{{-1e9, 0}, {1e9, 0}})
	d.Add(orb.Point{0, 0})
	m := New(Options{})
	m.setData(d)
	m = sized(t, m, 40, 12)
	for i := 0; i < 40; i++ {
		m = press(m, runes("+"))
	}
	assert.NotEmpty(t, strings.TrimSpace(m.renderAsciiMap(m.mapW, m.mapH)))
}

func TestModel_hover(t *testing.T) {
	m := New(Options{})
	m.setData(square())
	m = sized(t, m, 80, 24)
	lay := m.layout()

	next, _ := m.Update(tea.MouseMsg{X: lay.originX + lay.w/2, Y: lay.originY + lay.h/2})
	m = next.(Model)
	require.True(t, m.hoverHasGeo)
	assert.InDelta(t, 5, m.hoverLon, 1)
	assert.InDelta(t, 5, m.hoverLat, 1)
	assert.True(t, m.hovering)

	next, _ = m.Update(tea.MouseMsg{X: 0, Y: 0})
	m = next.(Model)
	assert.False(t, m.hovering)
	assert.False(t, m.hoverHasGeo)
}

func TestModel_hoverHighlightOffCanvas(t *testing.T) {
	m := sized(t, New(Options{}), 40, 12)
	m.hovering = true

	for _, tc := range []struct {
		x, y int
		want bool
	}{
		{-1, 0, false},
		{0, -1, false},
		{-dotsX, -dotsY, false},
		{1, 3, true},
	} {
		out := m.withHover(tc.x, tc.y).renderAsciiMap(m.mapW, m.mapH)
		assert.Equal(t, tc.want, strings.Contains(out, "◯"), "dot %d,%d", tc.x, tc.y)
	}
}

func TestModel_inspect(t *testing.T) {
	m := New(Options{})
	m = sized(t, m, 80, 24)
	m = press(m, runes("i"))
	assert.Equal(t, "no feature nearby", m.inspectPopup)

	m.setData(square())
	m = press(m, runes("i"))
	assert.Contains(t, m.inspectPopup, "nearest: x=")
	assert.Contains(t, m.inspectPopup, "counts: pts=0 ls=0 poly=1")
	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.inspectPopup)
}

func TestModel_pasteWKT(t *testing.T) {
	m := New(Options{})
	m = sized(t, m, 80, 24)
	m = press(m, runes("p"))
	require.True(t, m.pasteMode)
	m.ta.SetValue("LINESTRING (0 0, 3 4)")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.pasteMode)
	assert.Len(t, m.data.Lines, 1)
	assert.True(t, m.showLines)
	assert.Contains(t, m.status, "rendered WKT")

	m = press(m, runes("p"))
	m.ta.SetValue("NOT WKT")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.pasteMode)
	assert.Contains(t, m.status, "wkt error")
	assert.Len(t, m.data.Lines, 1)
}

func TestModel_loadPathAndAttrs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cities.csv")
	require.NoError(t, os.WriteFile(p, []byte("name,lat,lon\nberlin,52.5,13.4\nparis,48.85,2.35\n"), 0o644))

	m := New(Options{Path: p})
	assert.Len(t, m.data.Points, 2)
	assert.Contains(t, m.status, "loaded: cities.csv")
	m = sized(t, m, 80, 24)

	m = press(m, runes("a"))
	require.True(t, m.showAttrs)
	assert.Len(t, m.tbl.Rows(), 2)
	assert.Len(t, m.tbl.Columns(), 4)
	assert.NotEmpty(t, m.View())

	m.loadPath(filepath.Join(t.TempDir(), "missing.geojson"))
	assert.Contains(t, m.status, "load error")
	assert.Len(t, m.data.Points, 2)
}

func TestModel_attrsSummary(t *testing.T) {
	p := filepath.Join(t.TempDir(), "shape.wkt")
	require.NoError(t, os.WriteFile(p, []byte("POINT (1 2)"), 0o644))
	m := New(Options{Path: p})
	a := m.attributes()
	assert.Equal(t, "name", a.Columns[0])
	assert.Equal(t, "shape.wkt", a.Rows[0][0])

	m.selPath = ""
	m.data = geom.Data{}
	m.showAttrs = true
	m.refreshAttrsFromCurrent()
	assert.False(t, m.showAttrs)
}

func TestAttrTable(t *testing.T) {
	cols, rows := attrTable(geom.Attributes{
		Columns: []string{"a", "a_very_long_column_name_indeed"},
		Rows:    [][]string{{"1"}, {"1", "2", "3"}},
	})
	require.Len(t, cols, 3)
	assert.Equal(t, maxColW, cols[2].Width)
	assert.Equal(t, []string{"1", "1", ""}, []string(rows[0]))
	assert.Equal(t, []string{"2", "1", "2"}, []string(rows[1]))
}

func TestModel_View(t *testing.T) {
	m := New(Options{HideHelp: true})
	assert.Empty(t, m.View())
	m.setData(square())
	m = sized(t, m, 80, 24)
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, m.showSidebar)
	assert.Equal(t, 80-sidebarWidth-1, m.mapW)
	v := m.View()
	assert.Contains(t, v, "geomap")
	assert.NotContains(t, v, "q quit")
}
