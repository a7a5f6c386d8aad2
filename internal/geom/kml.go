package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlPlacemark struct {
	Point      *kmlCoords  `xml:"Point"`
	LineString *kmlCoords  `xml:"LineString"`
	Polygon    *kmlPolygon `xml:"Polygon"`
}

type kmlFolder struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Folders    []kmlFolder    `xml:"Folder"`
}

type kmlDoc struct {
	Placemarks []kmlPlacemark `xml:"Placemark"`
	Document   *kmlFolder     `xml:"Document"`
	Folders    []kmlFolder    `xml:"Folder"`
}

// LoadKML extracts Point, LineString and Polygon placemarks from a KML file.
func LoadKML(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadKML(f)
}

// ReadKML decodes KML. Coordinates are "x,y[,alt]"; altitude is ignored.
func ReadKML(r io.Reader) (Data, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Data{}, err
	}
	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Data{}, err
	}
	var d Data
	addPlacemarks(&d, doc.Placemarks)
	if doc.Document != nil {
		walkFolder(&d, *doc.Document)
	}
	for _, f := range doc.Folders {
		walkFolder(&d, f)
	}
	if d.Empty() {
		return Data{}, errors.New("kml: no geometries found")
	}
	return d, nil
}

func walkFolder(d *Data, f kmlFolder) {
	addPlacemarks(d, f.Placemarks)
	for _, sub := range f.Folders {
		walkFolder(d, sub)
	}
}

func addPlacemarks(d *Data, pms []kmlPlacemark) {
	for _, pm := range pms {
		switch {
		case pm.Point != nil:
			for _, p := range kmlTuples(pm.Point.Coordinates) {
				d.AddPoint(p)
			}
		case pm.LineString != nil:
			d.AddLine(kmlTuples(pm.LineString.Coordinates))
		case pm.Polygon != nil:
			poly := [][]Point{kmlTuples(pm.Polygon.Outer.Coordinates)}
			for _, in := range pm.Polygon.Inner {
				poly = append(poly, kmlTuples(in.Coordinates))
			}
			d.AddPolygon(poly)
		}
	}
}

// kmlTuples parses whitespace separated "x,y[,z]" tuples.
func kmlTuples(s string) []Point {
	var out []Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}
