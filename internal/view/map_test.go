package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annomap/internal/geom"
)

var allAxes = []Axes{
	{Right, Bottom},
	{Right, Top},
	{Left, Bottom},
	{Left, Top},
}

func newMap(t *testing.T, mod func(*Options)) *Map {
	t.Helper()
	o := DefaultOptions()
	if mod != nil {
		mod(&o)
	}
	m, err := New(o)
	require.NoError(t, err)
	return m
}

func TestRoundTripAllAxes(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 12.5, Y: -3}, {X: -1000, Y: 42}, {X: 1e-3, Y: 1e6}}
	for _, a := range allAxes {
		t.Run(a.String(), func(t *testing.T) {
			m := newMap(t, func(o *Options) {
				o.Axes = a
				o.Center = geom.Pt(7, -11)
				o.Scale = 2.75
			})
			for _, p := range pts {
				back := m.ToGlobal(m.ToScreen(p))
				assert.InDelta(t, p.X, back.X, 1e-6)
				assert.InDelta(t, p.Y, back.Y, 1e-6)
			}
		})
	}
}

func TestToScreenSigns(t *testing.T) {
	m := newMap(t, func(o *Options) { o.Scale = 2 })
	assert.Equal(t, geom.Pt(400, 300), m.ToScreen(geom.Pt(0, 0)))
	assert.Equal(t, geom.Pt(420, 310), m.ToScreen(geom.Pt(10, 5)))

	m.SetAxes(Axes{Left, Top})
	assert.Equal(t, geom.Pt(380, 290), m.ToScreen(geom.Pt(10, 5)))
}

func TestScaleClamp(t *testing.T) {
	m := newMap(t, func(o *Options) {
		o.MinScale = 0.5
		o.MaxScale = 4
	})
	m.ZoomBy(100)
	assert.Equal(t, 4.0, m.Scale())
	m.ZoomBy(1e-9)
	assert.Equal(t, 0.5, m.Scale())
	m.SetScale(-1)
	assert.Equal(t, 0.5, m.Scale())
	m.ZoomBy(0)
	assert.Greater(t, m.Scale(), 0.0)
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	for _, a := range allAxes {
		m := newMap(t, func(o *Options) { o.Axes = a })
		at := geom.Pt(100, 450)
		before := m.ToGlobal(at)
		m.ZoomAt(at, 3)
		after := m.ToGlobal(at)
		assert.InDelta(t, before.X, after.X, 1e-9, a.String())
		assert.InDelta(t, before.Y, after.Y, 1e-9, a.String())
		assert.Equal(t, 3.0, m.Scale())
	}
}

func TestPanMovesContent(t *testing.T) {
	for _, a := range allAxes {
		m := newMap(t, func(o *Options) { o.Axes = a; o.Scale = 2 })
		p := geom.Pt(3, 4)
		s0 := m.ToScreen(p)
		m.Pan(10, -6)
		s1 := m.ToScreen(p)
		assert.InDelta(t, s0.X+10, s1.X, 1e-9)
		assert.InDelta(t, s0.Y-6, s1.Y, 1e-9)
	}
}

func TestFitBounds(t *testing.T) {
	m := newMap(t, nil)
	m.FitBounds(geom.BBox{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50}, 1.1)
	assert.Equal(t, geom.Pt(50, 25), m.Center())
	assert.InDelta(t, 800/110.0, m.Scale(), 1e-9)

	// tall box is limited by height
	m.FitBounds(geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 300}, 1)
	assert.InDelta(t, 2.0, m.Scale(), 1e-9)

	// a single point only recenters
	m.FitBounds(geom.BBox{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}, 1.1)
	assert.InDelta(t, 2.0, m.Scale(), 1e-9)
	assert.Equal(t, geom.Pt(5, 5), m.Center())
}

func TestAxesStep(t *testing.T) {
	cases := []struct {
		axes   Axes
		dir    Direction
		dx, dy float64
	}{
		{Axes{Right, Bottom}, DirLeft, -1, 0},
		{Axes{Left, Bottom}, DirLeft, 1, 0},
		{Axes{Right, Bottom}, Up, 0, -1},
		{Axes{Right, Top}, Up, 0, 1},
		{Axes{Left, Top}, Down, 0, -1},
		{Axes{Left, Top}, DirRight, -1, 0},
	}
	for _, tc := range cases {
		dx, dy := tc.axes.Step(tc.dir, 1)
		assert.Equal(t, tc.dx, dx, "%s %s", tc.axes, tc.dir)
		assert.Equal(t, tc.dy, dy, "%s %s", tc.axes, tc.dir)
	}
}

func TestParseDirections(t *testing.T) {
	x, err := ParseXDirection("LEFT")
	require.NoError(t, err)
	assert.Equal(t, Left, x)
	y, err := ParseYDirection("top")
	require.NoError(t, err)
	assert.Equal(t, Top, y)
	_, err = ParseXDirection("up")
	assert.True(t, errors.Is(err, ErrInvalidOptions))
}

func TestOptionsValidate(t *testing.T) {
	bad := []func(*Options){
		func(o *Options) { o.Scale = 0 },
		func(o *Options) { o.MinScale = 5; o.MaxScale = 1 },
		func(o *Options) { o.Width = -1 },
		func(o *Options) { o.ZoomStep = 1 },
	}
	for i, mod := range bad {
		o := DefaultOptions()
		mod(&o)
		_, err := New(o)
		assert.ErrorIs(t, err, ErrInvalidOptions, "case %d", i)
	}
}

type recLayer struct {
	id      string
	m       *Map
	refresh int
	removed bool
}

func (l *recLayer) ID() string   { return l.id }
func (l *recLayer) OnAdd(m *Map) { l.m = m }
func (l *recLayer) OnRemove()    { l.m = nil; l.removed = true }
func (l *recLayer) Refresh()     { l.refresh++ }

func TestLayerLifecycle(t *testing.T) {
	m := newMap(t, nil)
	a, b := &recLayer{id: "a"}, &recLayer{id: "b"}
	m.AddLayer(a)
	m.AddLayer(b)
	assert.Same(t, m, a.m)
	assert.Equal(t, 1, a.refresh)

	m.ZoomIn()
	assert.Equal(t, 2, a.refresh)
	assert.Equal(t, 2, b.refresh)

	got, ok := m.Layer("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	require.True(t, m.RemoveLayer("a"))
	assert.True(t, a.removed)
	assert.Nil(t, a.m)
	assert.Len(t, m.Layers(), 1)
	assert.False(t, m.RemoveLayer("a"))
}
