package tui

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annomap/internal/config"
	"annomap/internal/feature"
	"annomap/internal/geom"
)

func newTestModel(t *testing.T, wkt string) Model {
	t.Helper()
	p := filepath.Join(t.TempDir(), "shapes.wkt")
	require.NoError(t, os.WriteFile(p, []byte(wkt), 0o644))
	m, err := New(Options{Config: config.Default(), Path: p})
	require.NoError(t, err)
	t.Cleanup(func() {
		if m.s.watch != nil {
			_ = m.s.watch.Close()
		}
	})
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// cellOf returns the terminal cell showing logical point p.
func cellOf(m Model, p geom.Point) (int, int) {
	s := m.Map().ToScreen(p)
	lay := m.layout()
	return lay.mapX + int(math.Floor(s.X/microW)), lay.mapY + int(math.Floor(s.Y/microH))
}

const twoShapes = "POINT (5 5)\nLINESTRING (0 0, 10 0)\n"

func TestNewLoadsAndFits(t *testing.T) {
	m := newTestModel(t, twoShapes)
	require.Equal(t, 2, m.Features().Len())

	w, h := m.Map().Size()
	lay := m.layout()
	assert.Equal(t, float64(lay.mapW*microW), w)
	assert.Equal(t, float64(lay.mapH*microH), h)
	assert.Equal(t, geom.Pt(5, 2.5), m.Map().Center())
	assert.False(t, m.s.fitPending)

	f, ok := m.Features().Get("f-1")
	require.True(t, ok)
	assert.Equal(t, feature.KindPoint, f.Kind())
	assert.Equal(t, "shapes.wkt", f.Props()["source"])
}

func TestArrowNudgesSelection(t *testing.T) {
	m := newTestModel(t, twoShapes)
	m = send(t, m, runes("]"))
	f, ok := m.Features().Selected()
	require.True(t, ok)
	require.Equal(t, "f-1", f.ID())

	before := f.Center()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	after := f.Center()
	assert.InDelta(t, 1/m.Map().Scale(), after.X-before.X, 1e-9)
	assert.Equal(t, before.Y, after.Y)
	assert.Zero(t, m.s.queue.Len())

	// bottom axis: up lowers y
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Less(t, f.Center().Y, after.Y)
}

func TestLockedFeatureDoesNotMove(t *testing.T) {
	m := newTestModel(t, twoShapes)
	m = send(t, m, runes("]"))
	m = send(t, m, runes("k"))
	f, _ := m.Features().Selected()
	require.Equal(t, true, f.Props()["locked"])

	before := f.Center()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, before, f.Center())
	assert.Contains(t, m.status, "locked")
}

func TestArrowPansWithoutSelection(t *testing.T) {
	m := newTestModel(t, twoShapes)
	c := m.Map().Center()
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Greater(t, m.Map().Center().X, c.X)
}

func TestClickSelectsTopmost(t *testing.T) {
	m := newTestModel(t, twoShapes)
	x, y := cellOf(m, geom.Pt(5, 5))
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f, ok := m.Features().Selected()
	require.True(t, ok)
	assert.Equal(t, "f-1", f.ID())
	assert.Equal(t, "f-1", m.hoverFeature)

	// empty canvas clears
	x, y = cellOf(m, geom.Pt(0, 5))
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_, ok = m.Features().Selected()
	assert.False(t, ok)
}

func TestWheelZoomsAtCursor(t *testing.T) {
	m := newTestModel(t, twoShapes)
	x, y := cellOf(m, geom.Pt(5, 5))
	cx, cy, ok := m.layout().inMap(x, y)
	require.True(t, ok)
	under := m.Map().ToGlobal(cellCenter(cx, cy))
	s := m.Map().Scale()

	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.InDelta(t, s*1.2, m.Map().Scale(), 1e-9)
	got := m.Map().ToGlobal(cellCenter(cx, cy))
	assert.InDelta(t, under.X, got.X, 1e-9)
	assert.InDelta(t, under.Y, got.Y, 1e-9)
}

func TestFlipAxesKeepsAnnotationsOnCanvas(t *testing.T) {
	m := newTestModel(t, twoShapes)
	m = send(t, m, runes("y"))
	assert.Equal(t, "right/top", m.Map().Axes().String())
	m = send(t, m, runes("x"))
	assert.Equal(t, "left/top", m.Map().Axes().String())
	assert.NotEmpty(t, m.View())
}

func TestDeleteAndLayerToggle(t *testing.T) {
	m := newTestModel(t, twoShapes)
	m = send(t, m, runes("["))
	m = send(t, m, runes("d"))
	assert.Equal(t, 1, m.Features().Len())
	_, ok := m.Features().Get("f-2")
	assert.False(t, ok)

	m = send(t, m, runes("2"))
	assert.True(t, m.s.hidden[featureLayerID])
	for _, l := range m.s.visibleLayers() {
		assert.NotEqual(t, featureLayerID, l.ID())
	}
}

func TestPasteAppendsFeatures(t *testing.T) {
	m := newTestModel(t, twoShapes)
	m = send(t, m, runes("p"))
	require.True(t, m.pasteMode)
	m.ta.SetValue("POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0))")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, m.pasteMode)
	f, ok := m.Features().Get("paste1-1")
	require.True(t, ok)
	assert.Equal(t, feature.KindPolygon, f.Kind())
	assert.Len(t, f.Points(), 4)
}

func TestAttributesTable(t *testing.T) {
	m := newTestModel(t, twoShapes)
	cols, rows := m.buildAttributes()
	assert.Equal(t, []string{"id", "kind", "center", "source"}, cols)
	require.Len(t, rows, 2)
	assert.Equal(t, "f-2", rows[1][0])
	assert.Equal(t, "line", rows[1][1])
}

func TestRenderDrawsInk(t *testing.T) {
	m := newTestModel(t, twoShapes)
	x, y := cellOf(m, geom.Pt(5, 5))
	lay := m.layout()
	br := newBrailleBuf(lay.mapW, lay.mapH)
	img := m.s.rasterize(lay.mapW, lay.mapH)
	bg := fromColor(m.s.bg)
	b := img.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			if c := fromColor(img.RGBAAt(px, py)); c.DistanceRgb(bg) > inkThreshold {
				br.setPixel(px, py, c)
			}
		}
	}
	assert.NotZero(t, br.m[y-lay.mapY][x-lay.mapX])
}

func TestLockPolicy(t *testing.T) {
	f, err := feature.New("a", feature.Point{X: 1, Y: 1})
	require.NoError(t, err)
	ev := feature.UpdateEvent{Kind: feature.FeatureUpdated, Feature: f, Proposed: feature.Point{X: 2, Y: 1}}
	s, ok := lockPolicy(ev)
	assert.True(t, ok)
	assert.Equal(t, ev.Proposed, s)

	f.SetProp("locked", true)
	_, ok = lockPolicy(ev)
	assert.False(t, ok)
}
