package feature

import (
	"slices"

	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// Polyline is an open path.
type Polyline struct {
	Points []geom.Point
}

func (s Polyline) Kind() Kind { return KindPolyline }

func (s Polyline) Validate() error { return checkPoints(KindPolyline, s.Points, 1) }

func (s Polyline) Outline(view.Axes) []geom.Point { return slices.Clone(s.Points) }

// Center is the point halfway along the path.
func (s Polyline) Center(view.Axes) geom.Point {
	if len(s.Points) == 0 {
		return geom.Point{}
	}
	half := geom.PathLength(s.Points) / 2
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		d := geom.Distance(a, b)
		if d >= half && d > 0 {
			t := half / d
			return geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		}
		half -= d
	}
	return s.Points[0]
}

func (s Polyline) Translate(dx, dy float64) Shape {
	return Polyline{Points: translateAll(s.Points, dx, dy)}
}

func (s Polyline) contains(p geom.Point, e hitEnv) bool {
	if geom.PathLength(s.Points) == 0 {
		return false
	}
	return geom.PointOnPolyline(p, s.Points, e.tolerance())
}

func (s Polyline) draw(c canvas) error {
	return graphic.DrawPolyline(c.dc, c.screenAll(s.Points), c.paint())
}

// Polygon is a closed ring; the closing edge is implicit.
type Polygon struct {
	Points []geom.Point
}

func (s Polygon) Kind() Kind { return KindPolygon }

func (s Polygon) Validate() error { return checkPoints(KindPolygon, s.Points, 1) }

func (s Polygon) Outline(view.Axes) []geom.Point { return slices.Clone(s.Points) }

// Center is the vertex centroid, or an interior point when the centroid
// falls outside a concave polygon.
func (s Polygon) Center(view.Axes) geom.Point { return geom.InteriorPoint(s.Points) }

func (s Polygon) Translate(dx, dy float64) Shape {
	return Polygon{Points: translateAll(s.Points, dx, dy)}
}

func (s Polygon) contains(p geom.Point, _ hitEnv) bool {
	return geom.PointInPolygon(p, s.Points)
}

func (s Polygon) draw(c canvas) error {
	return graphic.DrawPolygon(c.dc, c.screenAll(s.Points), c.paint())
}
