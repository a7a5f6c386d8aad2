package geom

import (
	"encoding/json"
	"errors"
	"io"
	"os"
)

// LoadGeo reads a GeoJSON file and returns Data (points, lines, polygons)
func LoadGeo(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadGeo(f)
}

// ReadGeo decodes a GeoJSON document: a bare geometry, a Feature or a
// FeatureCollection.
func ReadGeo(r io.Reader) (Data, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Data{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Data{}, err
	}
	var d Data
	var walkGeom func(g map[string]any)
	walkGeom = func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Point":
			if pt, ok := parsePoint(g["coordinates"]); ok {
				d.AddPoint(pt)
			}
		case "MultiPoint":
			if pts, ok := parseArrayPoints(g["coordinates"]); ok {
				for _, p := range pts {
					d.AddPoint(p)
				}
			}
		case "LineString":
			if ls, ok := parseArrayPoints(g["coordinates"]); ok {
				d.AddLine(ls)
			}
		case "MultiLineString":
			if mls, ok := parseRings(g["coordinates"]); ok {
				for _, ls := range mls {
					d.AddLine(ls)
				}
			}
		case "Polygon":
			if poly, ok := parseRings(g["coordinates"]); ok {
				d.AddPolygon(poly)
			}
		case "MultiPolygon":
			arr, ok := g["coordinates"].([]any)
			if !ok {
				return
			}
			for _, el := range arr {
				if poly, ok := parseRings(el); ok {
					d.AddPolygon(poly)
				}
			}
		case "GeometryCollection":
			if gs, ok := g["geometries"].([]any); ok {
				for _, sub := range gs {
					if sm, ok := sub.(map[string]any); ok {
						walkGeom(sm)
					}
				}
			}
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if g, ok := fm["geometry"].(map[string]any); ok {
						walkGeom(g)
					}
				}
			}
		}
	case "":
		return Data{}, errors.New("invalid geojson: missing type")
	default:
		walkGeom(raw)
	}
	if d.Empty() {
		return Data{}, errors.New("no geometries found")
	}
	return d, nil
}

func parsePoint(v any) (Point, bool) {
	if a, ok := v.([]any); ok && len(a) >= 2 {
		x, xok := a[0].(float64)
		y, yok := a[1].(float64)
		if xok && yok {
			return Point{X: x, Y: y}, true
		}
	}
	return Point{}, false
}

func parseArrayPoints(v any) ([]Point, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var pts []Point
	for _, el := range arr {
		if pt, ok := parsePoint(el); ok {
			pts = append(pts, pt)
		}
	}
	return pts, true
}

func parseRings(v any) ([][]Point, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var rings [][]Point
	for _, el := range arr {
		if ls, ok := parseArrayPoints(el); ok {
			rings = append(rings, ls)
		}
	}
	return rings, true
}
