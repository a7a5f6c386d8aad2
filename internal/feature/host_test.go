package feature

import (
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/require"

	"annomap/internal/view"
)

// stubHost records proposals and redraw requests.
type stubHost struct {
	m        *view.Map
	dc       *gg.Context
	dpr      float64
	settings Settings
	events   []UpdateEvent
	redraws  int
}

func (h *stubHost) Transform() Transform {
	if h.m == nil {
		return nil
	}
	return h.m
}
func (h *stubHost) Surface() *gg.Context   { return h.dc }
func (h *stubHost) PixelRatio() float64    { return h.dpr }
func (h *stubHost) Settings() Settings     { return h.settings }
func (h *stubHost) Propose(ev UpdateEvent) { h.events = append(h.events, ev) }
func (h *stubHost) Redraw()                { h.redraws++ }

func newHost(t *testing.T, axes view.Axes, scale float64) *stubHost {
	t.Helper()
	o := view.DefaultOptions()
	o.Width, o.Height = 100, 100
	o.Axes = axes
	o.Scale = scale
	m, err := view.New(o)
	require.NoError(t, err)
	return &stubHost{m: m, dc: newSurface(t, 100, 100), dpr: 1, settings: DefaultSettings()}
}

func attached(t *testing.T, h *stubHost, id string, s Shape) *Feature {
	t.Helper()
	f, err := New(id, s)
	require.NoError(t, err)
	f.Attach(h)
	return f
}

func newSurface(t *testing.T, w, h int) *gg.Context {
	t.Helper()
	dc := gg.NewContext(w, h)
	t.Cleanup(func() { _ = dc.Close() })
	return dc
}
