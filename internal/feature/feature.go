// Package feature implements annotated shapes: geometry plus style plus
// identity, hit tested in logical coordinates and drawn through a view
// transform onto the owning layer's surface.
package feature

import (
	"fmt"
	"maps"

	"annomap/internal/applog"
	"annomap/internal/geom"
	"annomap/internal/view"
)

// Feature is one annotation.
type Feature struct {
	id    string
	shape Shape
	style Style
	props map[string]any
	host  Host
}

// Option configures New.
type Option func(*Feature) error

// WithStyle merges p over the kind's default style.
func WithStyle(p StylePatch) Option {
	return func(f *Feature) error {
		f.style = f.style.Merge(p)
		return nil
	}
}

// WithProps attaches free-form properties.
func WithProps(props map[string]any) Option {
	return func(f *Feature) error {
		f.props = maps.Clone(props)
		return nil
	}
}

// New validates shape and style and returns a detached feature.
func New(id string, shape Shape, opts ...Option) (*Feature, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidShape)
	}
	if shape == nil {
		return nil, fmt.Errorf("%w: nil shape", ErrInvalidShape)
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	f := &Feature{id: id, shape: shape, style: DefaultStyle(shape.Kind())}
	for _, o := range opts {
		if err := o(f); err != nil {
			return nil, err
		}
	}
	if err := f.style.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Feature) ID() string   { return f.id }
func (f *Feature) Kind() Kind   { return f.shape.Kind() }
func (f *Feature) Shape() Shape { return f.shape }
func (f *Feature) Style() Style { return f.style }

// Props returns a copy of the properties.
func (f *Feature) Props() map[string]any { return maps.Clone(f.props) }

// SetProp sets one property.
func (f *Feature) SetProp(k string, v any) {
	if f.props == nil {
		f.props = map[string]any{}
	}
	f.props[k] = v
}

// Attach sets the owning host. Called by layers.
func (f *Feature) Attach(h Host) { f.host = h }

// Detach clears the owning host.
func (f *Feature) Detach() { f.host = nil }

// Attached reports whether the feature can reach a view transform.
func (f *Feature) Attached() bool {
	return f.host != nil && f.host.Transform() != nil
}

func (f *Feature) transform(op string) (Transform, bool) {
	if f.host != nil {
		if t := f.host.Transform(); t != nil {
			return t, true
		}
	}
	applog.Logger().Debug("skipped", "op", op, "feature", f.id, "reason", ErrNotAttached)
	return nil, false
}

func (f *Feature) axes() view.Axes {
	if f.host != nil {
		if t := f.host.Transform(); t != nil {
			return t.Axes()
		}
	}
	return view.Axes{}
}

func (f *Feature) settings() Settings {
	if f.host != nil {
		return f.host.Settings()
	}
	return DefaultSettings()
}

// Points returns the outline under the current axes, or the default axes
// while detached.
func (f *Feature) Points() []geom.Point { return f.shape.Outline(f.axes()) }

// Center returns a point on or inside the shape under the current axes.
func (f *Feature) Center() geom.Point { return f.shape.Center(f.axes()) }

// Bounds is the logical bounding box of the outline.
func (f *Feature) Bounds() geom.BBox { return geom.Bounds(f.Points()) }

// CaptureWithPoint reports whether the logical point p hits the feature.
// Area shapes test containment; line-like shapes test distance against the
// larger of the line width and the minimum click width. A detached feature
// or degenerate geometry never captures.
func (f *Feature) CaptureWithPoint(p geom.Point) bool {
	t, ok := f.transform("capture")
	if !ok || !p.Finite() {
		return false
	}
	scale := t.Scale()
	if !(scale > 0) {
		return false
	}
	return f.shape.contains(p, hitEnv{
		axes:       t.Axes(),
		scale:      scale,
		clickWidth: max(f.style.LineWidth, f.settings().MinClickWidth),
		radius:     f.style.Radius,
	})
}

// OnMove computes the shape nudged one move step in dir and proposes it to
// the host. The feature itself is not changed. It returns false, and does
// nothing, while detached.
func (f *Feature) OnMove(dir view.Direction) (Shape, bool) {
	t, ok := f.transform("move")
	if !ok {
		return nil, false
	}
	proposed := Nudge(f.shape, t.Axes(), dir, f.settings().MoveStep, t.Scale())
	f.host.Propose(UpdateEvent{Kind: FeatureUpdated, Feature: f, Proposed: proposed})
	return proposed, true
}

// Propose validates s and emits it as a proposed update. Detached features
// cannot propose.
func (f *Feature) Propose(s Shape) error {
	if err := f.checkShape(s); err != nil {
		return err
	}
	if _, ok := f.transform("propose"); !ok {
		return nil
	}
	f.host.Propose(UpdateEvent{Kind: FeatureUpdated, Feature: f, Proposed: s})
	return nil
}

func (f *Feature) checkShape(s Shape) error {
	if s == nil {
		return fmt.Errorf("%w: nil shape", ErrInvalidShape)
	}
	if s.Kind() != f.shape.Kind() {
		return fmt.Errorf("%w: %s feature cannot take a %s shape", ErrInvalidShape, f.shape.Kind(), s.Kind())
	}
	return s.Validate()
}

// SetShape commits s and asks the host to redraw. It is what a host calls
// after accepting a proposed update.
func (f *Feature) SetShape(s Shape) error {
	if err := f.checkShape(s); err != nil {
		return err
	}
	f.shape = s
	f.redraw()
	return nil
}

// UpdateStyle merges p over the current style. An invalid result leaves the
// style unchanged.
func (f *Feature) UpdateStyle(p StylePatch) error {
	next := f.style.Merge(p)
	if err := next.Validate(); err != nil {
		return err
	}
	f.style = next
	f.redraw()
	return nil
}

func (f *Feature) redraw() {
	if f.host != nil {
		f.host.Redraw()
	}
}

// Refresh draws the feature on the host surface. It does not clear the
// surface; layers clear once and then refresh every feature, which keeps a
// layer refresh deterministic. A detached feature draws nothing.
func (f *Feature) Refresh() error {
	t, ok := f.transform("refresh")
	if !ok {
		return nil
	}
	dc := f.host.Surface()
	if dc == nil {
		applog.Logger().Debug("skipped", "op", "refresh", "feature", f.id, "reason", "no surface")
		return nil
	}
	dpr := f.host.PixelRatio()
	if !(dpr > 0) {
		dpr = 1
	}
	if err := f.shape.draw(canvas{dc: dc, t: t, dpr: dpr, style: f.style}); err != nil {
		return fmt.Errorf("draw %s %s: %w", f.shape.Kind(), f.id, err)
	}
	return nil
}

// ScreenBounds is the device pixel bounding box of the outline, grown by
// the point radius for points.
func (f *Feature) ScreenBounds() (geom.BBox, bool) {
	if f.host == nil {
		return geom.BBox{}, false
	}
	t := f.host.Transform()
	if t == nil {
		return geom.BBox{}, false
	}
	dpr := f.host.PixelRatio()
	if !(dpr > 0) {
		dpr = 1
	}
	var pts []geom.Point
	for _, p := range f.Points() {
		s := t.ToScreen(p)
		pts = append(pts, geom.Point{X: s.X * dpr, Y: s.Y * dpr})
	}
	b := geom.Bounds(pts)
	if f.shape.Kind() == KindPoint {
		r := f.style.Radius * dpr
		b = geom.BBox{MinX: b.MinX - r, MinY: b.MinY - r, MaxX: b.MaxX + r, MaxY: b.MaxY + r}
	}
	return b, true
}
