package tui

import (
	"github.com/charmbracelet/lipgloss"

	"annomap/internal/geom"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen split shared by View, mouse handling and the
// viewport size of the map.
type layout struct {
	contentW, contentH int
	sidebarW           int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	var l layout
	l.contentW = max(10, m.width)
	popupH := lipgloss.Height(m.renderPopup(l.contentW))
	if m.inspectPopup == "" || m.showAttrs {
		popupH = 0
	}
	l.contentH = max(4, m.height-headerHeight-footerHeight-popupH)
	if m.showSidebar {
		l.sidebarW = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.mapY = headerHeight + popupH
	l.mapW = max(10, l.contentW-l.sidebarW-1)
	l.mapH = l.contentH
	return l
}

// inMap reports whether terminal cell (x, y) is on the canvas and returns
// the cell relative to the canvas origin.
func (l layout) inMap(x, y int) (cx, cy int, ok bool) {
	cx, cy = x-l.mapX, y-l.mapY
	return cx, cy, cx >= 0 && cx < l.mapW && cy >= 0 && cy < l.mapH
}

// Each terminal cell is a 2x4 braille micro grid; one micro dot is one
// screen pixel of the map viewport.
const (
	microW = 2
	microH = 4
)

// cellCenter is the map screen position in the middle of a canvas cell.
func cellCenter(cx, cy int) geom.Point {
	return geom.Point{X: float64(cx*microW) + microW/2.0, Y: float64(cy*microH) + microH/2.0}
}
