package tui

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"annomap/internal/layer"
	"annomap/internal/view"
)

// inkThreshold is the RGB distance from the background above which a
// micro pixel counts as drawn.
const inkThreshold = 0.08

// visibleLayers returns the map layers bottom first, skipping hidden ones.
func (s *session) visibleLayers() []view.Layer {
	all := s.m.Layers()
	out := all[:0]
	for _, l := range all {
		if !s.hidden[l.ID()] {
			out = append(out, l)
		}
	}
	return out
}

// rasterize composes the visible layers at device resolution and scales
// the result to the w by h cell canvas micro grid.
func (s *session) rasterize(w, h int) *image.RGBA {
	vw, vh := s.m.Size()
	dpr := s.cfg.Canvas.PixelRatio
	dw, dh := int(math.Ceil(vw*dpr)), int(math.Ceil(vh*dpr))
	if dw <= 0 || dh <= 0 {
		return image.NewRGBA(image.Rect(0, 0, w*microW, h*microH))
	}
	img := layer.Compose(s.visibleLayers(), s.bg, dw, dh)
	return layer.Downsample(img, w*microW, h*microH)
}

// renderCanvas draws the map into w by h terminal cells.
func (m Model) renderCanvas(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	img := m.s.rasterize(w, h)
	bg := fromColor(m.s.bg)
	br := newBrailleBuf(w, h)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := fromColor(img.RGBAAt(x, y))
			if c.DistanceRgb(bg) > inkThreshold {
				br.setPixel(x, y, c)
			}
		}
	}
	lines := br.toStyledLines()
	if m.hovering && m.hoverCellY >= 0 && m.hoverCellY < h && m.hoverCellX >= 0 && m.hoverCellX < w {
		lines[m.hoverCellY] = overlayCursor(br, m.hoverCellY, m.hoverCellX, m.theme.hover)
	}
	return strings.Join(lines, "\n")
}

// overlayCursor re-renders row y with the hover cell highlighted.
func overlayCursor(br *brailleBuf, y, cx int, st lipgloss.Style) string {
	r := cellRune(br.m[y][cx])
	if r == ' ' {
		r = '+'
	}
	return br.rowRange(y, 0, cx) + st.Render(string(r)) + br.rowRange(y, cx+1, br.w)
}
