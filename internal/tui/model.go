package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geomap/internal/geom"
	"geomap/internal/transform"
)

// Options configures a viewer.
type Options struct {
	// Path is loaded at start when set.
	Path string
	// Zoom is applied on top of the initial fit.
	Zoom     float64
	HideHelp bool
	Logger   *zap.Logger
}

type Model struct {
	log *zap.Logger

	width  int
	height int

	showSidebar bool
	helpVisible bool

	// vp maps world coordinates onto the braille microgrid of the map area.
	vp transform.Viewport
	// fitZoom is vp.Zoom right after fitting, the 1x reference.
	fitZoom   float64
	startZoom float64

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	data geom.Data

	// map area in cells, from the last layout
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Zoom <= 0 {
		opts.Zoom = 1
	}
	m := Model{
		log:         opts.Logger,
		showSidebar: false,
		helpVisible: !opts.HideHelp,
		startZoom:   opts.Zoom,
		status:      "geomap ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (one geometry per line). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	if opts.Path != "" {
		m.loadPath(opts.Path)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }
