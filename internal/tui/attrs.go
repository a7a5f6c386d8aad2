package tui

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrsFromCurrent rebuilds the table from the features on the map.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := m.buildAttributes()
	// an empty table panics in SetColumns while rendering
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	const maxColW = 24
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+2, maxColW)})
	}
	for _, r := range rows {
		for i, v := range r {
			tcols[i].Width = min(max(tcols[i].Width, len(v)+1), maxColW)
		}
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row(normalizeRow(r, len(tcols))))
	}
	// clear rows first so columns and rows never disagree
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

func normalizeRow(cells []string, n int) []string {
	if len(cells) < n {
		return append(cells, make([]string, n-len(cells))...)
	}
	return cells[:n]
}

// buildAttributes returns one row per feature: id, kind, center and the
// union of property keys in sorted order.
func (m *Model) buildAttributes() ([]string, [][]string) {
	fs := m.s.feats.Features()
	seen := map[string]bool{}
	for _, f := range fs {
		for k := range f.Props() {
			seen[k] = true
		}
	}
	keys := slices.Sorted(maps.Keys(seen))
	cols := append([]string{"id", "kind", "center"}, keys...)
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		c := f.Center()
		row := []string{f.ID(), f.Kind().String(), fmt.Sprintf("%.3f, %.3f", c.X, c.Y)}
		props := f.Props()
		for _, k := range keys {
			row = append(row, formatProp(props[k]))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func formatProp(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bs)
	}
}
