package view

import (
	"math"

	"annomap/internal/applog"
	"annomap/internal/geom"
)

// Layer is anything a Map can own and redraw.
type Layer interface {
	ID() string
	// OnAdd gives the layer a non-owning reference to the map.
	OnAdd(m *Map)
	OnRemove()
	Refresh()
}

// Map converts between logical (global) coordinates and screen pixels.
// Screen positions are derived on demand and never cached, so any change of
// center, scale, viewport or axes is visible to the next call.
type Map struct {
	center geom.Point
	scale  float64
	width  float64
	height float64
	axes   Axes

	minScale, maxScale, zoomStep float64

	layers []Layer
}

// New validates opts and returns a Map.
func New(opts Options) (*Map, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	m := &Map{
		center:   opts.Center,
		width:    opts.Width,
		height:   opts.Height,
		axes:     opts.Axes,
		minScale: opts.MinScale,
		maxScale: opts.MaxScale,
		zoomStep: opts.ZoomStep,
	}
	m.scale = m.clamp(opts.Scale)
	return m, nil
}

func (m *Map) clamp(s float64) float64 {
	return math.Min(math.Max(s, m.minScale), m.maxScale)
}

func (m *Map) Scale() float64     { return m.scale }
func (m *Map) Center() geom.Point { return m.center }
func (m *Map) Axes() Axes         { return m.axes }

// Size returns the viewport in screen pixels.
func (m *Map) Size() (w, h float64) { return m.width, m.height }

// ToScreen maps a logical point to screen pixels. The device pixel ratio is
// not applied here; drawing code multiplies by it.
func (m *Map) ToScreen(p geom.Point) geom.Point {
	return geom.Point{
		X: (p.X-m.center.X)*m.scale*m.axes.X.Sign() + m.width/2,
		Y: (p.Y-m.center.Y)*m.scale*m.axes.Y.Sign() + m.height/2,
	}
}

// ToGlobal is the inverse of ToScreen.
func (m *Map) ToGlobal(s geom.Point) geom.Point {
	return geom.Point{
		X: (s.X-m.width/2)/(m.scale*m.axes.X.Sign()) + m.center.X,
		Y: (s.Y-m.height/2)/(m.scale*m.axes.Y.Sign()) + m.center.Y,
	}
}

// SetCenter moves the view so c is in the middle of the viewport.
func (m *Map) SetCenter(c geom.Point) {
	if !c.Finite() {
		return
	}
	m.center = c
	m.Refresh()
}

// Pan shifts the content by (dx, dy) screen pixels.
func (m *Map) Pan(dx, dy float64) {
	m.SetCenter(geom.Point{
		X: m.center.X - dx/(m.scale*m.axes.X.Sign()),
		Y: m.center.Y - dy/(m.scale*m.axes.Y.Sign()),
	})
}

// SetScale sets the scale, clamped to the configured bounds. Non-positive
// or NaN values are ignored.
func (m *Map) SetScale(s float64) {
	if !(s > 0) {
		return
	}
	m.scale = m.clamp(s)
	m.Refresh()
}

// ZoomBy multiplies the scale by factor around the view center.
func (m *Map) ZoomBy(factor float64) { m.SetScale(m.scale * factor) }

func (m *Map) ZoomIn()  { m.ZoomBy(m.zoomStep) }
func (m *Map) ZoomOut() { m.ZoomBy(1 / m.zoomStep) }

// ZoomAt multiplies the scale by factor keeping the logical point under the
// screen position at fixed.
func (m *Map) ZoomAt(at geom.Point, factor float64) {
	if !(factor > 0) {
		return
	}
	g := m.ToGlobal(at)
	m.scale = m.clamp(m.scale * factor)
	m.center = geom.Point{
		X: g.X - (at.X-m.width/2)/(m.scale*m.axes.X.Sign()),
		Y: g.Y - (at.Y-m.height/2)/(m.scale*m.axes.Y.Sign()),
	}
	m.Refresh()
}

// Resize changes the viewport. Layers resize their surfaces on refresh.
func (m *Map) Resize(w, h float64) {
	if w < 0 || h < 0 {
		return
	}
	m.width, m.height = w, h
	m.Refresh()
}

// SetAxes changes the axis convention.
func (m *Map) SetAxes(a Axes) {
	m.axes = a
	m.Refresh()
}

// FitBounds centers the view on b and picks the largest scale at which b,
// grown by margin, fits the viewport. A zero-size box only recenters.
func (m *Map) FitBounds(b geom.BBox, margin float64) {
	if margin <= 0 {
		margin = 1
	}
	m.center = b.Center()
	s := math.Inf(1)
	if bw := b.Width() * margin; bw > 0 && m.width > 0 {
		s = m.width / bw
	}
	if bh := b.Height() * margin; bh > 0 && m.height > 0 {
		s = math.Min(s, m.height/bh)
	}
	if !math.IsInf(s, 1) {
		m.scale = m.clamp(s)
	}
	m.Refresh()
}

// AddLayer attaches l on top of the existing layers and draws it. A layer
// whose ID is already present replaces the old one in place.
func (m *Map) AddLayer(l Layer) {
	for i, old := range m.layers {
		if old.ID() == l.ID() {
			old.OnRemove()
			m.layers[i] = l
			l.OnAdd(m)
			l.Refresh()
			return
		}
	}
	m.layers = append(m.layers, l)
	l.OnAdd(m)
	l.Refresh()
	applog.Logger().Debug("layer added", "layer", l.ID(), "count", len(m.layers))
}

// RemoveLayer detaches the layer with the given ID.
func (m *Map) RemoveLayer(id string) bool {
	for i, l := range m.layers {
		if l.ID() == id {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			l.OnRemove()
			return true
		}
	}
	return false
}

// Layer returns the layer with the given ID.
func (m *Map) Layer(id string) (Layer, bool) {
	for _, l := range m.layers {
		if l.ID() == id {
			return l, true
		}
	}
	return nil, false
}

// Layers returns the layers bottom to top.
func (m *Map) Layers() []Layer {
	out := make([]Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// Refresh redraws every layer, bottom first.
func (m *Map) Refresh() {
	for _, l := range m.layers {
		l.Refresh()
	}
}
