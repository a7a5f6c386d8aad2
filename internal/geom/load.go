package geom

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a geometry file, picking the reader by extension.
func Load(path string) (Data, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".csv":
		return LoadCSV(path)
	case ".kml":
		return LoadKML(path)
	case ".wkt", ".txt":
		b, err := os.ReadFile(path)
		if err != nil {
			return Data{}, err
		}
		return ParseWKTText(string(b))
	default:
		return Data{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}
