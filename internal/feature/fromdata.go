package feature

import (
	"fmt"

	"annomap/internal/geom"
)

// FromData turns imported geometry into features. Points become Point,
// two-vertex line strings Line, longer ones Polyline, and polygons Polygon
// using their outer ring. IDs are prefix-1, prefix-2 and so on. style maps
// a kind to the patch applied over its default; it may be nil.
func FromData(d geom.Data, prefix string, style map[Kind]StylePatch) ([]*Feature, error) {
	var out []*Feature
	add := func(s Shape) error {
		f, err := New(fmt.Sprintf("%s-%d", prefix, len(out)+1), s, WithStyle(style[s.Kind()]))
		if err != nil {
			return err
		}
		out = append(out, f)
		return nil
	}
	for _, p := range d.Points {
		if err := add(Point{X: p.X, Y: p.Y}); err != nil {
			return nil, err
		}
	}
	for _, ls := range d.Lines {
		var s Shape = Polyline{Points: ls}
		if len(ls) == 2 {
			s = Line{Start: ls[0], End: ls[1]}
		}
		if err := add(s); err != nil {
			return nil, err
		}
	}
	for _, poly := range d.Polygons {
		if len(poly) == 0 {
			continue
		}
		ring := poly[0]
		// drop the repeated closing vertex
		if n := len(ring); n > 1 && ring[0] == ring[n-1] {
			ring = ring[:n-1]
		}
		if err := add(Polygon{Points: ring}); err != nil {
			return nil, err
		}
	}
	return out, nil
}
