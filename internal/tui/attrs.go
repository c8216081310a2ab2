package tui

import (
	"fmt"
	"path/filepath"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"geomap/internal/geom"
)

const maxColW = 24

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded dataset
func (m *Model) refreshAttrsFromCurrent() {
	attrs := m.attributes()
	// an empty table makes bubbles render garbage, so turn the view off instead
	if len(attrs.Columns) == 0 || len(attrs.Rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols, trows := attrTable(attrs)
	// clear rows first so columns and rows never mismatch during the swap
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// attributes returns the dataset's own table, or a one-row summary for
// formats without properties.
func (m *Model) attributes() geom.Attributes {
	if len(m.data.Attrs.Columns) > 0 || m.selPath == "" {
		return m.data.Attrs
	}
	b := m.data.Bound
	return geom.Attributes{
		Columns: []string{"name", "path", "bbox", "points", "lines", "polygons"},
		Rows: [][]string{{
			filepath.Base(m.selPath),
			m.selPath,
			fmt.Sprintf("[%.5f,%.5f,%.5f,%.5f]", b.Min[0], b.Min[1], b.Max[0], b.Max[1]),
			strconv.Itoa(len(m.data.Points)),
			strconv.Itoa(len(m.data.Lines)),
			strconv.Itoa(len(m.data.Polygons)),
		}},
	}
}

// attrTable maps attributes onto bubbles table columns and rows, with a
// leading row number column. Every row is padded or cut to the column count.
func attrTable(a geom.Attributes) ([]table.Column, []table.Row) {
	tcols := make([]table.Column, 0, len(a.Columns)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range a.Columns {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	trows := make([]table.Row, 0, len(a.Rows))
	for i, r := range a.Rows {
		cells := make([]string, len(tcols))
		cells[0] = strconv.Itoa(i + 1)
		copy(cells[1:], r)
		trows = append(trows, table.Row(cells))
	}
	return tcols, trows
}
