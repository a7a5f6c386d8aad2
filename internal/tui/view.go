package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	// Header
	title := fmt.Sprintf(" annomap ─ %s  scale %.4g  %d features ", m.s.m.Axes(), m.s.m.Scale(), m.s.feats.Len())
	header := lipgloss.NewStyle().Width(lay.contentW).Render(m.theme.title.Render(title))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(lay.sidebarW).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, lay.contentW-6)
		}
		maxW := min(lay.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		attrsBox := m.theme.box.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.renderCanvas(lay.mapW, lay.mapH))
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status and help on the left, cursor position on the right
	status := m.theme.dim.Render(" " + m.status + " ")
	help := ""
	if m.helpVisible {
		help = m.help.View(m.keys)
	}
	coords := ""
	if m.hovering {
		coords = fmt.Sprintf("  x=%.3f y=%.3f  ", m.hoverX, m.hoverY)
		if m.hoverFeature != "" {
			coords = m.theme.hover.Render(" "+m.hoverFeature) + m.theme.dim.Render(coords)
		} else {
			coords = m.theme.dim.Render(coords)
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := max(0, lay.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lay.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	rows := []string{header}
	if popup := m.renderPopup(lay.contentW); popup != "" {
		rows = append(rows, popup)
	}
	rows = append(rows, body, footer)
	ui := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return m.theme.app.Width(lay.contentW).Height(m.height).Render(ui)
}

// renderPopup is the inspect box shown between header and body.
func (m Model) renderPopup(contentW int) string {
	if m.inspectPopup == "" || m.showAttrs {
		return ""
	}
	box := m.theme.box.MaxWidth(max(20, min(48, contentW/2))).Render(m.inspectPopup)
	return lipgloss.PlaceHorizontal(contentW, lipgloss.Left, box)
}
