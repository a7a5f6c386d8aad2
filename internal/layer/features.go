package layer

import (
	"errors"
	"fmt"
	"slices"

	"annomap/internal/applog"
	"annomap/internal/feature"
	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// ErrDuplicateID is returned when adding a feature whose ID is taken.
var ErrDuplicateID = errors.New("duplicate feature id")

// ErrUnknownFeature is returned when committing an update for a feature
// the layer does not own.
var ErrUnknownFeature = errors.New("unknown feature")

// Handler receives proposed updates.
type Handler func(ev feature.UpdateEvent)

// Option configures a layer.
type Option func(*options)

type options struct {
	dpr      float64
	settings feature.Settings
}

// WithPixelRatio sets the device pixel ratio of the surface.
func WithPixelRatio(dpr float64) Option { return func(o *options) { o.dpr = dpr } }

// WithSettings sets move step and click width for the layer's features.
func WithSettings(s feature.Settings) Option { return func(o *options) { o.settings = s } }

func buildOptions(opts []Option) options {
	o := options{dpr: 1, settings: feature.DefaultSettings()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// FeatureLayer owns a registry of features, drawn bottom to top in
// insertion order, and the selection.
type FeatureLayer struct {
	Layer
	settings feature.Settings
	order    []*feature.Feature
	byID     map[string]*feature.Feature
	selected string
	handlers map[int]Handler
	nextSub  int
	// batch suppresses Redraw while several features change at once.
	batch bool
}

var (
	_ view.Layer   = (*FeatureLayer)(nil)
	_ feature.Host = (*FeatureLayer)(nil)
)

// NewFeatureLayer returns an empty layer.
func NewFeatureLayer(id string, opts ...Option) *FeatureLayer {
	o := buildOptions(opts)
	return &FeatureLayer{
		Layer:    newLayer(id, o.dpr),
		settings: o.settings,
		byID:     map[string]*feature.Feature{},
		handlers: map[int]Handler{},
	}
}

// Transform implements feature.Host.
func (l *FeatureLayer) Transform() feature.Transform {
	if l.m == nil {
		return nil
	}
	return l.m
}

func (l *FeatureLayer) Settings() feature.Settings { return l.settings }

// SetSettings replaces the interaction settings.
func (l *FeatureLayer) SetSettings(s feature.Settings) { l.settings = s }

// Add attaches features on top of the existing ones and redraws once.
// Nothing is added if any ID is empty or already present.
func (l *FeatureLayer) Add(fs ...*feature.Feature) error {
	seen := map[string]bool{}
	for _, f := range fs {
		if _, ok := l.byID[f.ID()]; ok || seen[f.ID()] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, f.ID())
		}
		seen[f.ID()] = true
	}
	for _, f := range fs {
		f.Attach(l)
		l.byID[f.ID()] = f
		l.order = append(l.order, f)
	}
	l.Refresh()
	return nil
}

// Remove detaches the feature with the given ID.
func (l *FeatureLayer) Remove(id string) bool {
	f, ok := l.byID[id]
	if !ok {
		return false
	}
	delete(l.byID, id)
	l.order = slices.DeleteFunc(l.order, func(x *feature.Feature) bool { return x == f })
	f.Detach()
	if l.selected == id {
		l.selected = ""
	}
	l.Refresh()
	return true
}

// Clear removes every feature.
func (l *FeatureLayer) Clear() {
	for _, f := range l.order {
		f.Detach()
	}
	l.order = nil
	l.byID = map[string]*feature.Feature{}
	l.selected = ""
	l.Refresh()
}

// Get returns the feature with the given ID.
func (l *FeatureLayer) Get(id string) (*feature.Feature, bool) {
	f, ok := l.byID[id]
	return f, ok
}

// Features returns the features bottom to top.
func (l *FeatureLayer) Features() []*feature.Feature { return slices.Clone(l.order) }

func (l *FeatureLayer) Len() int { return len(l.order) }

// Bounds is the logical bounding box of every feature.
func (l *FeatureLayer) Bounds() (geom.BBox, bool) {
	var b geom.BBox
	for i, f := range l.order {
		fb := f.Bounds()
		b = b.Extend(geom.Point{X: fb.MinX, Y: fb.MinY}, i == 0)
		b = b.Extend(geom.Point{X: fb.MaxX, Y: fb.MaxY}, false)
	}
	return b, len(l.order) > 0
}

// HitTest returns the topmost feature captured by the logical point p.
func (l *FeatureLayer) HitTest(p geom.Point) (*feature.Feature, bool) {
	for i := len(l.order) - 1; i >= 0; i-- {
		if l.order[i].CaptureWithPoint(p) {
			return l.order[i], true
		}
	}
	return nil, false
}

// HitTestScreen converts a screen position (before the pixel ratio) and
// hit tests it.
func (l *FeatureLayer) HitTestScreen(s geom.Point) (*feature.Feature, bool) {
	if l.m == nil {
		return nil, false
	}
	return l.HitTest(l.m.ToGlobal(s))
}

// Select marks a feature as selected. An empty or unknown ID clears the
// selection.
func (l *FeatureLayer) Select(id string) {
	if _, ok := l.byID[id]; !ok {
		id = ""
	}
	if id == l.selected {
		return
	}
	l.selected = id
	l.Refresh()
}

// Selected returns the selected feature.
func (l *FeatureLayer) Selected() (*feature.Feature, bool) {
	f, ok := l.byID[l.selected]
	return f, ok
}

// SelectNext moves the selection by delta in draw order, wrapping around.
func (l *FeatureLayer) SelectNext(delta int) (*feature.Feature, bool) {
	n := len(l.order)
	if n == 0 {
		return nil, false
	}
	i := slices.IndexFunc(l.order, func(f *feature.Feature) bool { return f.ID() == l.selected })
	switch {
	case i < 0 && delta < 0:
		i = n - 1
	case i < 0:
		i = 0
	default:
		i = ((i+delta)%n + n) % n
	}
	l.Select(l.order[i].ID())
	return l.order[i], true
}

// MoveSelected nudges the selected feature; the result arrives as a
// proposed update.
func (l *FeatureLayer) MoveSelected(dir view.Direction) bool {
	f, ok := l.Selected()
	if !ok {
		return false
	}
	_, ok = f.OnMove(dir)
	return ok
}

// OnFeatureUpdated registers h for proposed updates and returns a function
// that unregisters it. Handlers run synchronously in registration order.
func (l *FeatureLayer) OnFeatureUpdated(h Handler) (unsubscribe func()) {
	id := l.nextSub
	l.nextSub++
	l.handlers[id] = h
	return func() { delete(l.handlers, id) }
}

// Propose implements feature.Host.
func (l *FeatureLayer) Propose(ev feature.UpdateEvent) {
	if len(l.handlers) == 0 {
		applog.Logger().Debug("update dropped", "feature", ev.Feature.ID(), "reason", "no subscriber")
		return
	}
	ids := make([]int, 0, len(l.handlers))
	for id := range l.handlers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		l.handlers[id](ev)
	}
}

// Commit applies an accepted update and redraws.
func (l *FeatureLayer) Commit(ev feature.UpdateEvent) error {
	if ev.Feature == nil || l.byID[ev.Feature.ID()] != ev.Feature {
		return ErrUnknownFeature
	}
	return ev.Feature.SetShape(ev.Proposed)
}

// Batch runs fn with redraws suppressed and refreshes once afterwards.
func (l *FeatureLayer) Batch(fn func()) {
	prev := l.batch
	l.batch = true
	fn()
	l.batch = prev
	if !prev {
		l.Refresh()
	}
}

// Redraw implements feature.Host.
func (l *FeatureLayer) Redraw() {
	if !l.batch {
		l.Refresh()
	}
}

// Refresh clears the surface and draws every feature, then the selection
// outline. A failing feature is logged and skipped.
func (l *FeatureLayer) Refresh() {
	if !l.prepare() {
		return
	}
	for _, f := range l.order {
		if err := f.Refresh(); err != nil {
			applog.Logger().Warn("draw feature", "layer", l.id, "err", err)
		}
	}
	if f, ok := l.Selected(); ok {
		if b, ok := f.ScreenBounds(); ok {
			if err := graphic.DrawSelection(l.dc, b, 3*l.dpr, l.dpr); err != nil {
				applog.Logger().Warn("draw selection", "layer", l.id, "err", err)
			}
		}
	}
}
