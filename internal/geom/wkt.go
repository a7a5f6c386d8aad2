package geom

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// parseTuples reads "x y, x y, ..." skipping malformed tuples.
func parseTuples(block string) []Point {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			continue
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}

// body returns the text between the first open and last close delimiter.
func body(s, open, close, kind string) (string, error) {
	i := strings.Index(s, open)
	j := strings.LastIndex(s, close)
	if i < 0 || j <= i {
		return "", fmt.Errorf("wkt %s: invalid", kind)
	}
	return s[i+len(open) : j], nil
}

// splitRings splits "(...),(...)" into ring bodies.
func splitRings(s string) []string {
	norm := strings.ReplaceAll(s, "), (", "),(")
	norm = strings.ReplaceAll(norm, ") , (", "),(")
	return strings.Split(norm, "),(")
}

// ParseWKTData parses one WKT geometry.
// Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING, POLYGON.
func ParseWKTData(wkt string) (Data, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return Data{}, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var d Data
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		b, err := body(s, "(", ")", "multipoint")
		if err != nil {
			return Data{}, err
		}
		// both MULTIPOINT(1 2, 3 4) and MULTIPOINT((1 2), (3 4))
		b = strings.NewReplacer("(", "", ")", "").Replace(b)
		for _, p := range parseTuples(b) {
			d.AddPoint(p)
		}
	case strings.HasPrefix(up, "POINT"):
		b, err := body(s, "(", ")", "point")
		if err != nil {
			return Data{}, err
		}
		for _, p := range parseTuples(b) {
			d.AddPoint(p)
		}
	case strings.HasPrefix(up, "MULTILINESTRING"):
		b, err := body(s, "((", "))", "multilinestring")
		if err != nil {
			return Data{}, err
		}
		for _, part := range splitRings(b) {
			d.AddLine(parseTuples(part))
		}
	case strings.HasPrefix(up, "LINESTRING"):
		b, err := body(s, "(", ")", "linestring")
		if err != nil {
			return Data{}, err
		}
		d.AddLine(parseTuples(b))
	case strings.HasPrefix(up, "POLYGON"):
		b, err := body(s, "((", "))", "polygon")
		if err != nil {
			return Data{}, err
		}
		var poly [][]Point
		for _, rp := range splitRings(b) {
			poly = append(poly, parseTuples(rp))
		}
		d.AddPolygon(poly)
	default:
		return Data{}, errors.New("unsupported wkt type")
	}
	if d.Empty() {
		return Data{}, errors.New("wkt: no coordinates parsed")
	}
	return d, nil
}

// ParseWKTText parses one geometry per non-empty line. Lines starting with
// '#' are comments.
func ParseWKTText(text string) (Data, error) {
	var d Data
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		g, err := ParseWKTData(s)
		if err != nil {
			return Data{}, fmt.Errorf("line %d: %w", line, err)
		}
		d.Merge(g)
	}
	if err := sc.Err(); err != nil {
		return Data{}, err
	}
	if d.Empty() {
		return Data{}, errors.New("wkt: no geometries found")
	}
	return d, nil
}
