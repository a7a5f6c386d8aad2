package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"annomap/internal/graphic"
)

// theme holds the chrome styles. Text colors follow the canvas background
// so the UI stays readable on light canvases.
type theme struct {
	app    lipgloss.Style
	box    lipgloss.Style
	title  lipgloss.Style
	dim    lipgloss.Style
	hover  lipgloss.Style
	locked lipgloss.Style
}

const (
	accentHex = "#7C3AED"
	borderHex = "#243141"
	dimHex    = "#6B7280"
)

func newTheme(bg colorful.Color) theme {
	fg := "#E6E6E6"
	if _, _, l := bg.Hcl(); l > 0.6 {
		fg = "#1F2328"
	}
	hover := fromColor(graphic.SelectionColor).Hex()
	return theme{
		app:    lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
		box:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(borderHex)).Padding(0, 1),
		title:  lipgloss.NewStyle().Foreground(lipgloss.Color(accentHex)).Bold(true),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(dimHex)),
		hover:  lipgloss.NewStyle().Foreground(lipgloss.Color(hover)).Bold(true),
		locked: lipgloss.NewStyle().Foreground(lipgloss.Color(dimHex)).Italic(true),
	}
}
