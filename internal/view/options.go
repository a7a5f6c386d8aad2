package view

import (
	"errors"
	"fmt"
	"math"

	"annomap/internal/geom"
)

// ErrInvalidOptions is returned by New for a configuration that cannot
// produce a valid transform.
var ErrInvalidOptions = errors.New("invalid view options")

// Options configures a Map.
type Options struct {
	Center geom.Point
	// Scale is screen pixels per logical unit.
	Scale float64
	// Width and Height are the viewport size in screen pixels (before the
	// device pixel ratio).
	Width, Height float64
	Axes          Axes
	// MinScale and MaxScale bound every zoom operation.
	MinScale, MaxScale float64
	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep float64
}

// DefaultOptions returns a 800x600 viewport at scale 1 centered on the origin.
func DefaultOptions() Options {
	return Options{
		Scale:    1,
		Width:    800,
		Height:   600,
		MinScale: 1e-4,
		MaxScale: 1e4,
		ZoomStep: 1.2,
	}
}

// Validate checks the invariants a Map relies on.
func (o Options) Validate() error {
	pos := func(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
	switch {
	case !pos(o.MinScale) || !pos(o.MaxScale) || o.MinScale > o.MaxScale:
		return fmt.Errorf("%w: scale bounds [%g, %g]", ErrInvalidOptions, o.MinScale, o.MaxScale)
	case !pos(o.Scale):
		return fmt.Errorf("%w: scale %g", ErrInvalidOptions, o.Scale)
	case o.Width < 0 || o.Height < 0 || math.IsNaN(o.Width) || math.IsNaN(o.Height):
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalidOptions, o.Width, o.Height)
	case !(o.ZoomStep > 1) || math.IsInf(o.ZoomStep, 0):
		return fmt.Errorf("%w: zoom step %g", ErrInvalidOptions, o.ZoomStep)
	case !o.Center.Finite():
		return fmt.Errorf("%w: center %v", ErrInvalidOptions, o.Center)
	}
	return nil
}
