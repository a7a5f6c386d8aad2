package feature

import (
	"fmt"

	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// Point is a single position drawn as a dot of constant screen size.
type Point struct {
	X, Y float64
}

func (s Point) Kind() Kind { return KindPoint }

func (s Point) Validate() error {
	if !finite(s.X, s.Y) {
		return fmt.Errorf("%w: point is not finite", ErrInvalidShape)
	}
	return nil
}

func (s Point) Outline(view.Axes) []geom.Point { return []geom.Point{{X: s.X, Y: s.Y}} }
func (s Point) Center(view.Axes) geom.Point    { return geom.Point{X: s.X, Y: s.Y} }

func (s Point) Translate(dx, dy float64) Shape { return Point{X: s.X + dx, Y: s.Y + dy} }

func (s Point) contains(p geom.Point, e hitEnv) bool {
	r := max(e.radius, e.clickWidth/2) / e.scale
	return geom.Distance(p, s.Center(e.axes)) <= r
}

func (s Point) draw(c canvas) error {
	return graphic.DrawPoint(c.dc, c.screen(s.Center(view.Axes{})), c.style.Radius*c.dpr, c.paint())
}
