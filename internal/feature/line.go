package feature

import (
	"fmt"
	"math"

	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// Line is a single segment.
type Line struct {
	Start, End geom.Point
}

func (s Line) Kind() Kind { return KindLine }

func (s Line) Validate() error {
	return checkPoints(KindLine, []geom.Point{s.Start, s.End}, 2)
}

func (s Line) Outline(view.Axes) []geom.Point { return []geom.Point{s.Start, s.End} }

func (s Line) Center(view.Axes) geom.Point {
	return geom.Point{X: (s.Start.X + s.End.X) / 2, Y: (s.Start.Y + s.End.Y) / 2}
}

func (s Line) Translate(dx, dy float64) Shape {
	return Line{Start: s.Start.Add(dx, dy), End: s.End.Add(dx, dy)}
}

func (s Line) contains(p geom.Point, e hitEnv) bool {
	if s.Start == s.End {
		return false
	}
	return geom.PointOnSegment(p, s.Start, s.End, e.tolerance())
}

func (s Line) draw(c canvas) error {
	return graphic.DrawLine(c.dc, c.screen(s.Start), c.screen(s.End), c.paint())
}

// Default arrow head, in screen pixels and radians.
const (
	DefaultHeadLength = 12
	DefaultHeadAngle  = math.Pi / 6
)

// Arrow is a segment with a head at End. HeadLength is in screen pixels and
// HeadAngle is the half-angle of the head in radians; zero selects the
// defaults.
type Arrow struct {
	Start, End geom.Point
	HeadLength float64
	HeadAngle  float64
}

func (s Arrow) Kind() Kind { return KindArrow }

func (s Arrow) Validate() error {
	if err := checkPoints(KindArrow, []geom.Point{s.Start, s.End}, 2); err != nil {
		return err
	}
	if !finite(s.HeadLength, s.HeadAngle) || s.HeadLength < 0 || s.HeadAngle < 0 || s.HeadAngle >= math.Pi/2 {
		return fmt.Errorf("%w: arrow head %g/%g", ErrInvalidShape, s.HeadLength, s.HeadAngle)
	}
	return nil
}

func (s Arrow) line() Line { return Line{Start: s.Start, End: s.End} }

func (s Arrow) Outline(a view.Axes) []geom.Point { return s.line().Outline(a) }
func (s Arrow) Center(a view.Axes) geom.Point    { return s.line().Center(a) }

func (s Arrow) Translate(dx, dy float64) Shape {
	s.Start = s.Start.Add(dx, dy)
	s.End = s.End.Add(dx, dy)
	return s
}

func (s Arrow) contains(p geom.Point, e hitEnv) bool { return s.line().contains(p, e) }

func (s Arrow) head() (float64, float64) {
	l, a := s.HeadLength, s.HeadAngle
	if l == 0 {
		l = DefaultHeadLength
	}
	if a == 0 {
		a = DefaultHeadAngle
	}
	return l, a
}

func (s Arrow) draw(c canvas) error {
	l, a := s.head()
	return graphic.DrawArrow(c.dc, c.screen(s.Start), c.screen(s.End), l*c.dpr, a, c.paint())
}
