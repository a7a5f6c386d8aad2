// Package layer owns drawing surfaces. A layer is attached to a view.Map,
// keeps a gg surface sized to the viewport times the device pixel ratio and
// redraws its content whenever the map asks.
package layer

import (
	"image"
	"math"

	"github.com/gogpu/gg"

	"annomap/internal/applog"
	"annomap/internal/view"
)

// Layer is the part shared by every layer kind. It is embedded, not used
// on its own.
type Layer struct {
	id  string
	m   *view.Map
	dc  *gg.Context
	dpr float64
}

func newLayer(id string, dpr float64) Layer {
	if !(dpr > 0) {
		dpr = 1
	}
	return Layer{id: id, dpr: dpr}
}

func (l *Layer) ID() string { return l.id }

// OnAdd stores a non-owning reference to m.
func (l *Layer) OnAdd(m *view.Map) { l.m = m }

// OnRemove drops the map reference and releases the surface.
func (l *Layer) OnRemove() {
	l.m = nil
	if l.dc != nil {
		_ = l.dc.Close()
		l.dc = nil
	}
}

// Map returns the owning map, nil while detached.
func (l *Layer) Map() *view.Map { return l.m }

func (l *Layer) PixelRatio() float64 { return l.dpr }

// SetPixelRatio changes the device pixel ratio; the surface is resized on
// the next refresh.
func (l *Layer) SetPixelRatio(dpr float64) {
	if dpr > 0 {
		l.dpr = dpr
	}
}

// Surface returns the drawing surface, nil before the first refresh.
func (l *Layer) Surface() *gg.Context { return l.dc }

// Image returns the surface pixels, nil if there is no surface.
func (l *Layer) Image() image.Image {
	if l.dc == nil {
		return nil
	}
	return l.dc.Image()
}

// surfaceSize is the viewport in device pixels.
func (l *Layer) surfaceSize() (int, int) {
	w, h := l.m.Size()
	return int(math.Ceil(w * l.dpr)), int(math.Ceil(h * l.dpr))
}

// prepare sizes the surface to the viewport and clears it. It returns false
// when there is nothing to draw on.
func (l *Layer) prepare() bool {
	if l.m == nil {
		applog.Logger().Debug("skipped", "op", "refresh", "layer", l.id, "reason", "no map")
		return false
	}
	w, h := l.surfaceSize()
	if w <= 0 || h <= 0 {
		return false
	}
	switch {
	case l.dc == nil:
		l.dc = gg.NewContext(w, h)
	case l.dc.Width() != w || l.dc.Height() != h:
		if err := l.dc.Resize(w, h); err != nil {
			applog.Logger().Warn("resize surface", "layer", l.id, "err", err)
			_ = l.dc.Close()
			l.dc = gg.NewContext(w, h)
		}
	}
	l.dc.Clear()
	return true
}
