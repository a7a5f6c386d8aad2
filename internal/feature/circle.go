package feature

import (
	"fmt"

	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// circleSegments is the number of vertices in a circle outline.
const circleSegments = 32

// Circle has a radius in logical units, so it grows with zoom.
type Circle struct {
	X, Y   float64
	Radius float64
}

func (s Circle) Kind() Kind { return KindCircle }

func (s Circle) Validate() error {
	if !finite(s.X, s.Y, s.Radius) {
		return fmt.Errorf("%w: circle is not finite", ErrInvalidShape)
	}
	if s.Radius < 0 {
		return fmt.Errorf("%w: circle radius %g", ErrInvalidShape, s.Radius)
	}
	return nil
}

func (s Circle) Outline(view.Axes) []geom.Point {
	return geom.CirclePoints(geom.Point{X: s.X, Y: s.Y}, s.Radius, circleSegments)
}

func (s Circle) Center(view.Axes) geom.Point { return geom.Point{X: s.X, Y: s.Y} }

func (s Circle) Translate(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}

func (s Circle) contains(p geom.Point, _ hitEnv) bool {
	if s.Radius <= 0 {
		return false
	}
	return geom.Distance(p, geom.Point{X: s.X, Y: s.Y}) <= s.Radius
}

func (s Circle) draw(c canvas) error {
	return graphic.DrawCircle(c.dc, c.screen(geom.Point{X: s.X, Y: s.Y}), c.length(s.Radius), c.paint())
}
