package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a CSV with x/y (or lon/lat) columns and returns points.
func LoadCSV(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV detects the coordinate columns from the header row.
// Column detection: x|lon|lng|long|longitude and y|lat|latitude (case-insensitive).
func ReadCSV(rd io.Reader) (Data, error) {
	r := csv.NewReader(rd)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return Data{}, err
	}
	if len(recs) == 0 {
		return Data{}, errors.New("empty csv")
	}
	idxX, idxY := -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "y", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		case "x", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return Data{}, errors.New("csv: x/y columns not found")
	}
	var d Data
	for _, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		d.AddPoint(Point{X: x, Y: y})
	}
	if d.Empty() {
		return Data{}, errors.New("csv: no valid points parsed")
	}
	return d, nil
}
