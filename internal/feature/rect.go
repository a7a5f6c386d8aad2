package feature

import (
	"fmt"

	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// Rect is anchored at (X, Y). Width and Height extend toward screen right
// and screen bottom, so the logical far corner depends on the axes: with x
// growing left it is X-Width, with y growing up it is Y-Height. Flipping an
// axis reflects the rectangle about its anchor.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (s Rect) Kind() Kind { return KindRect }

func (s Rect) Validate() error {
	if !finite(s.X, s.Y, s.Width, s.Height) {
		return fmt.Errorf("%w: rect is not finite", ErrInvalidShape)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: rect size %gx%g", ErrInvalidShape, s.Width, s.Height)
	}
	return nil
}

// Far returns the corner diagonally opposite the anchor.
func (s Rect) Far(a view.Axes) geom.Point {
	return geom.Point{X: a.FarX(s.X, s.Width), Y: a.FarY(s.Y, s.Height)}
}

// Outline is anchor, far-x near-y, far corner, near-x far-y.
func (s Rect) Outline(a view.Axes) []geom.Point {
	far := s.Far(a)
	return []geom.Point{
		{X: s.X, Y: s.Y},
		{X: far.X, Y: s.Y},
		far,
		{X: s.X, Y: far.Y},
	}
}

func (s Rect) Center(a view.Axes) geom.Point {
	return geom.Point{X: a.FarX(s.X, s.Width/2), Y: a.FarY(s.Y, s.Height/2)}
}

func (s Rect) Translate(dx, dy float64) Shape {
	s.X += dx
	s.Y += dy
	return s
}

func (s Rect) contains(p geom.Point, e hitEnv) bool {
	if s.Width == 0 || s.Height == 0 {
		return false
	}
	return geom.PointInPolygon(p, s.Outline(e.axes))
}

// draw relies on the anchor always landing on the screen top-left corner.
func (s Rect) draw(c canvas) error {
	o := c.screen(geom.Point{X: s.X, Y: s.Y})
	return graphic.DrawRect(c.dc, o.X, o.Y, c.length(s.Width), c.length(s.Height), c.paint())
}
