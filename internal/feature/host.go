package feature

import (
	"github.com/gogpu/gg"

	"annomap/internal/geom"
	"annomap/internal/view"
)

// Transform is the read side of a view.Map.
type Transform interface {
	ToScreen(p geom.Point) geom.Point
	ToGlobal(p geom.Point) geom.Point
	Scale() float64
	Axes() view.Axes
}

var _ Transform = (*view.Map)(nil)

// Settings are the interaction constants a host provides.
type Settings struct {
	// MoveStep is the keyboard nudge distance in screen pixels.
	MoveStep float64
	// MinClickWidth is the smallest clickable stroke width in screen pixels.
	MinClickWidth float64
}

// DefaultSettings moves one pixel per key press and keeps hairlines
// clickable within 3 pixels either side.
func DefaultSettings() Settings {
	return Settings{MoveStep: 1, MinClickWidth: 6}
}

// Host is the layer owning a feature. Features hold it as a plain
// reference and never manage its lifetime.
type Host interface {
	// Transform returns nil while the host is not on a map.
	Transform() Transform
	// Surface returns nil while the host has no drawing surface.
	Surface() *gg.Context
	PixelRatio() float64
	Settings() Settings
	// Propose hands a candidate shape to the host, which decides whether
	// to commit it.
	Propose(ev UpdateEvent)
	// Redraw asks the host to refresh after a committed change.
	Redraw()
}

// EventKind names an update event.
type EventKind int

const (
	FeatureUpdated EventKind = iota
)

func (k EventKind) String() string {
	if k == FeatureUpdated {
		return "FeatureUpdated"
	}
	return "EventKind(?)"
}

// UpdateEvent carries a proposed shape. Nothing has been applied when it is
// emitted.
type UpdateEvent struct {
	Kind     EventKind
	Feature  *Feature
	Proposed Shape
}
