package tui

import (
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrailleDots(t *testing.T) {
	b := newBrailleBuf(2, 1)
	red := colorful.Color{R: 1}
	b.setPixel(0, 0, red)
	b.setPixel(1, 3, red)
	b.setPixel(2, 1, red)
	// out of range is ignored
	b.setPixel(-1, 0, red)
	b.setPixel(4, 0, red)
	b.setPixel(0, 4, red)

	lines := b.toLines()
	require.Len(t, lines, 1)
	assert.Equal(t, string([]rune{0x2800 + 0x01 + 0x80, 0x2800 + 0x02}), lines[0])
}

func TestBrailleCellColorIsMean(t *testing.T) {
	b := newBrailleBuf(1, 1)
	_, ok := b.cellColor(0, 0)
	assert.False(t, ok)

	b.setPixel(0, 0, colorful.Color{R: 1})
	b.setPixel(1, 0, colorful.Color{B: 1})
	c, ok := b.cellColor(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.5, c.R, 1e-9)
	assert.InDelta(t, 0, c.G, 1e-9)
	assert.InDelta(t, 0.5, c.B, 1e-9)
}

func TestBrailleEmptyRowIsBlank(t *testing.T) {
	b := newBrailleBuf(3, 2)
	assert.Equal(t, []string{"   ", "   "}, b.toStyledLines())
}
