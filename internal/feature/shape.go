package feature

import (
	"fmt"
	"math"

	"github.com/gogpu/gg"

	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// Shape is the geometry of a feature. Values are in logical units and carry
// no axis direction; directions are resolved against view.Axes when the
// outline is computed or the shape is drawn. The set of variants is closed.
type Shape interface {
	Kind() Kind
	Validate() error
	// Outline is the ordered point set used for hit testing.
	Outline(a view.Axes) []geom.Point
	// Center is a point that lies on or inside the shape.
	Center(a view.Axes) geom.Point
	// Translate returns a copy moved by (dx, dy) logical units.
	Translate(dx, dy float64) Shape

	contains(p geom.Point, e hitEnv) bool
	draw(c canvas) error
}

// hitEnv carries what a hit test needs beyond the point itself.
type hitEnv struct {
	axes  view.Axes
	scale float64
	// clickWidth is the clickable stroke width in screen pixels.
	clickWidth float64
	radius     float64
}

// tolerance is half the clickable width in logical units.
func (e hitEnv) tolerance() float64 {
	return e.clickWidth / 2 / e.scale
}

// canvas converts logical geometry to device pixels for one draw call.
type canvas struct {
	dc    *gg.Context
	t     Transform
	dpr   float64
	style Style
}

func (c canvas) screen(p geom.Point) geom.Point {
	s := c.t.ToScreen(p)
	return geom.Point{X: s.X * c.dpr, Y: s.Y * c.dpr}
}

func (c canvas) screenAll(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = c.screen(p)
	}
	return out
}

// length scales a logical length to device pixels.
func (c canvas) length(v float64) float64 { return v * c.t.Scale() * c.dpr }

func (c canvas) paint() graphic.Paint { return c.style.paint(c.dpr) }

// Nudge returns s moved by step screen pixels in direction dir. The logical
// distance is step/scale so the on-screen displacement does not depend on
// zoom.
func Nudge(s Shape, a view.Axes, dir view.Direction, step, scale float64) Shape {
	if !(scale > 0) {
		return s
	}
	dx, dy := a.Step(dir, step/scale)
	return s.Translate(dx, dy)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func checkPoints(k Kind, pts []geom.Point, min int) error {
	if len(pts) < min {
		return fmt.Errorf("%w: %s needs at least %d points, got %d", ErrInvalidShape, k, min, len(pts))
	}
	for i, p := range pts {
		if !p.Finite() {
			return fmt.Errorf("%w: %s point %d is not finite", ErrInvalidShape, k, i)
		}
	}
	return nil
}

func translateAll(pts []geom.Point, dx, dy float64) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(dx, dy)
	}
	return out
}
