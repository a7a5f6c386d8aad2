package geom

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the tolerance used by the on-segment tests.
const Epsilon = 1e-9

func vec(p Point) r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func point(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(vec(b), vec(a)))
}

// PointInPolygon tests if p is inside polygon using the crossing number rule.
//
// Each edge is treated as half-open in Y (the lower endpoint is included, the
// upper one is not) so a ray passing exactly through a shared vertex is
// counted once. A point on the boundary is inside when the boundary is
// crossed by the ray going toward +X, that is, points on the min-X and min-Y
// edges of an axis-aligned square are inside and points on the max-X and
// max-Y edges are outside. Polygons with fewer than three vertices contain
// nothing.
func PointInPolygon(p Point, polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(p, a, b Point) Point {
	ab := r2.Sub(vec(b), vec(a))
	ds := r2.Norm2(ab)
	if ds == 0 {
		return a
	}
	t := r2.Dot(r2.Sub(vec(p), vec(a)), ab) / ds
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	default:
		return point(r2.Add(vec(a), r2.Scale(t, ab)))
	}
}

// DistanceToSegment returns the distance from p to segment ab, measured
// perpendicular to the segment and clipped to its endpoints.
func DistanceToSegment(p, a, b Point) float64 {
	return Distance(p, ClosestPointOnSegment(p, a, b))
}

// PointOnSegment reports whether p lies on segment ab within tolerance.
func PointOnSegment(p, a, b Point, tolerance float64) bool {
	return DistanceToSegment(p, a, b) <= tolerance+Epsilon
}

// PointOnPolyline reports whether p lies within tolerance of any segment of
// the open path pts. A single-vertex path has no segments.
func PointOnPolyline(p Point, pts []Point, tolerance float64) bool {
	for i := 1; i < len(pts); i++ {
		if PointOnSegment(p, pts[i-1], pts[i], tolerance) {
			return true
		}
	}
	return false
}

// PointOnPolygonBoundary reports whether p lies within tolerance of the
// closed outline of polygon.
func PointOnPolygonBoundary(p Point, polygon []Point, tolerance float64) bool {
	n := len(polygon)
	if n < 2 {
		return false
	}
	if PointOnPolyline(p, polygon, tolerance) {
		return true
	}
	return PointOnSegment(p, polygon[n-1], polygon[0], tolerance)
}

// PathLength returns the total length of the open path pts.
func PathLength(pts []Point) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += Distance(pts[i-1], pts[i])
	}
	return l
}

// Centroid computes the average position of a set of points.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sum r2.Vec
	for _, p := range points {
		sum = r2.Add(sum, vec(p))
	}
	return point(r2.Scale(1/float64(len(points)), sum))
}

// InteriorPoint returns a point inside the polygon. It is the vertex
// centroid when that is inside, otherwise the middle of the widest inside
// span of a horizontal scanline, trying the centroid's Y first and then the
// Ys halfway between vertex rows.
func InteriorPoint(polygon []Point) Point {
	c := Centroid(polygon)
	if len(polygon) < 3 || PointInPolygon(c, polygon) {
		return c
	}
	ys := make([]float64, 0, len(polygon))
	for _, p := range polygon {
		ys = append(ys, p.Y)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)
	rows := []float64{c.Y}
	for i := 1; i < len(ys); i++ {
		rows = append(rows, (ys[i-1]+ys[i])/2)
	}
	for _, y := range rows {
		if p, ok := scanlineMid(polygon, y); ok {
			return p
		}
	}
	return c
}

// scanlineMid is the middle of the widest inside span of the polygon on
// the horizontal line at y.
func scanlineMid(polygon []Point, y float64) (Point, bool) {
	var xs []float64
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > y) != (pj.Y > y) {
			xs = append(xs, (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X)
		}
	}
	slices.Sort(xs)
	best, width := Point{}, 0.0
	for k := 0; k+1 < len(xs); k += 2 {
		if w := xs[k+1] - xs[k]; w > width {
			best, width = Point{X: (xs[k] + xs[k+1]) / 2, Y: y}, w
		}
	}
	return best, width > 0 && PointInPolygon(best, polygon)
}

// Bounds computes the axis-aligned bounding box of a set of points.
func Bounds(points []Point) BBox {
	var b BBox
	for i, p := range points {
		b = b.Extend(p, i == 0)
	}
	return b
}

// CirclePoints generates n evenly-spaced points around a circle, starting at
// angle zero and turning toward +Y.
func CirclePoints(center Point, radius float64, n int) []Point {
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		angle := float64(i) * 2.0 * math.Pi / float64(n)
		points[i] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return points
}

// ArrowHead returns the tip, left and right corners of the head of an arrow
// pointing from start to end. length is measured back from the tip along the
// shaft and angle is the half-angle of the head in radians. ok is false for a
// zero-length shaft.
func ArrowHead(start, end Point, length, angle float64) (tip, left, right Point, ok bool) {
	shaft := r2.Sub(vec(end), vec(start))
	if r2.Norm(shaft) == 0 {
		return end, end, end, false
	}
	back := r2.Scale(-length, r2.Unit(shaft))
	tip = end
	left = point(r2.Add(vec(end), r2.Rotate(back, angle, r2.Vec{})))
	right = point(r2.Add(vec(end), r2.Rotate(back, -angle, r2.Vec{})))
	return tip, left, right, true
}
