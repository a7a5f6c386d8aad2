package geom

import "math"

// Point is a position in either logical or screen space; the caller knows which.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point { return Point{X: p.X + dx, Y: p.Y + dy} }

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to include p. A zero box adopts p as its only point
// when empty is true.
func (b BBox) Extend(p Point, empty bool) BBox {
	if empty {
		return BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
	}
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
	return b
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the middle of the box.
func (b BBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Contains reports whether p lies inside the box, edges included.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Data is a minimal geometry container produced by the file readers.
type Data struct {
	Points   []Point
	Lines    [][]Point
	Polygons [][][]Point // polygons with rings (first outer, following holes)
	BBox     BBox
}

// Empty reports whether no geometry was collected.
func (d *Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

func (d *Data) track(p Point, first bool) {
	d.BBox = d.BBox.Extend(p, first)
}

// AddPoint appends a standalone point and grows the bbox.
func (d *Data) AddPoint(p Point) {
	d.track(p, d.Empty())
	d.Points = append(d.Points, p)
}

// AddLine appends a line string and grows the bbox.
func (d *Data) AddLine(ls []Point) {
	if len(ls) == 0 {
		return
	}
	first := d.Empty()
	d.Lines = append(d.Lines, ls)
	for i, p := range ls {
		d.track(p, first && i == 0)
	}
}

// AddPolygon appends a polygon (outer ring plus holes) and grows the bbox.
func (d *Data) AddPolygon(poly [][]Point) {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return
	}
	first := d.Empty()
	d.Polygons = append(d.Polygons, poly)
	n := 0
	for _, ring := range poly {
		for _, p := range ring {
			d.track(p, first && n == 0)
			n++
		}
	}
}

// Merge appends all geometry of o to d.
func (d *Data) Merge(o Data) {
	for _, p := range o.Points {
		d.AddPoint(p)
	}
	for _, ls := range o.Lines {
		d.AddLine(ls)
	}
	for _, poly := range o.Polygons {
		d.AddPolygon(poly)
	}
}
