package tui

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// brailleBuf packs a 2x4 micro grid into braille cells and keeps the mean
// color of the dots set in each cell.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
	sum  [][][3]float64
	n    [][]int
}

func newBrailleBuf(w, h int) *brailleBuf {
	b := &brailleBuf{w: w, h: h}
	b.m = make([][]uint8, h)
	b.sum = make([][][3]float64, h)
	b.n = make([][]int, h)
	for i := range b.m {
		b.m[i] = make([]uint8, w)
		b.sum[i] = make([][3]float64, w)
		b.n[i] = make([]int, w)
	}
	return b
}

// dotBits maps a micro offset inside a cell to its braille bit.
var dotBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, c colorful.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/microW, mx%microW
	cy, ry := my/microH, my%microH
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= dotBits[rx][ry]
	s := &b.sum[cy][cx]
	s[0] += c.R
	s[1] += c.G
	s[2] += c.B
	b.n[cy][cx]++
}

// cellColor is the mean color of the dots set in cell (x, y).
func (b *brailleBuf) cellColor(x, y int) (colorful.Color, bool) {
	n := b.n[y][x]
	if n == 0 {
		return colorful.Color{}, false
	}
	s := b.sum[y][x]
	k := float64(n)
	return colorful.Color{R: s[0] / k, G: s[1] / k, B: s[2] / k}.Clamped(), true
}

// toLines renders plain braille runes without color.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			row[x] = cellRune(b.m[y][x])
		}
		out[y] = string(row)
	}
	return out
}

// toStyledLines renders each row as runs of equally colored cells.
func (b *brailleBuf) toStyledLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		out[y] = b.rowRange(y, 0, b.w)
	}
	return out
}

// rowRange renders cells [x0, x1) of row y.
func (b *brailleBuf) rowRange(y, x0, x1 int) string {
	var (
		sb  strings.Builder
		run []rune
		hex string
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		if hex == "" {
			sb.WriteString(string(run))
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(run)))
		}
		run = run[:0]
	}
	for x := x0; x < x1; x++ {
		h := ""
		if c, ok := b.cellColor(x, y); ok {
			h = c.Hex()
		}
		if h != hex {
			flush()
			hex = h
		}
		run = append(run, cellRune(b.m[y][x]))
	}
	flush()
	return sb.String()
}

func cellRune(mask uint8) rune {
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}

// fromColor converts any color to colorful, ignoring alpha.
func fromColor(c color.Color) colorful.Color {
	cc, _ := colorful.MakeColor(c)
	return cc
}
