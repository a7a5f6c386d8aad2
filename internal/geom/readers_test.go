package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWKTData(t *testing.T) {
	d, err := ParseWKTData("POINT (1 2)")
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2}}, d.Points)

	d, err = ParseWKTData("MULTIPOINT ((1 2), (3 4))")
	require.NoError(t, err)
	assert.Len(t, d.Points, 2)

	d, err = ParseWKTData("LINESTRING (0 0, 5 5, 10 0)")
	require.NoError(t, err)
	require.Len(t, d.Lines, 1)
	assert.Len(t, d.Lines[0], 3)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 5}, d.BBox)

	d, err = ParseWKTData("POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))")
	require.NoError(t, err)
	require.Len(t, d.Polygons, 1)
	assert.Len(t, d.Polygons[0], 2)

	d, err = ParseWKTData("MULTILINESTRING ((0 0, 1 1), (2 2, 3 3))")
	require.NoError(t, err)
	assert.Len(t, d.Lines, 2)
}

func TestParseWKTDataErrors(t *testing.T) {
	for _, s := range []string{"", "CIRCLE (1 2)", "POINT 1 2", "POINT (a b)"} {
		_, err := ParseWKTData(s)
		assert.Error(t, err, s)
	}
}

func TestParseWKTText(t *testing.T) {
	d, err := ParseWKTText("# comment\nPOINT (1 1)\n\nLINESTRING (0 0, 2 2)\n")
	require.NoError(t, err)
	assert.Len(t, d.Points, 1)
	assert.Len(t, d.Lines, 1)

	_, err = ParseWKTText("POINT (1 1)\nBOGUS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadGeo(t *testing.T) {
	src := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]}},
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[3,4]]}},
		{"type":"Feature","geometry":{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}}
	]}`
	d, err := ReadGeo(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2}}, d.Points)
	assert.Len(t, d.Lines, 1)
	assert.Len(t, d.Polygons, 1)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 3, MaxY: 4}, d.BBox)

	_, err = ReadGeo(strings.NewReader(`{"features":[]}`))
	assert.Error(t, err)
	_, err = ReadGeo(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	d, err := ReadCSV(strings.NewReader("name,Lat,Lon\na,10,20\nb,bad,1\nc,-1,-2\n"))
	require.NoError(t, err)
	assert.Equal(t, []Point{{20, 10}, {-2, -1}}, d.Points)

	_, err = ReadCSV(strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
}

func TestReadKML(t *testing.T) {
	src := `<kml><Document><Folder>
		<Placemark><Point><coordinates>1,2,0</coordinates></Point></Placemark>
		<Placemark><LineString><coordinates>0,0 5,5</coordinates></LineString></Placemark>
		<Placemark><Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon></Placemark>
	</Folder></Document></kml>`
	d, err := ReadKML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2}}, d.Points)
	assert.Len(t, d.Lines, 1)
	assert.Len(t, d.Polygons, 1)
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "shapes.wkt")
	require.NoError(t, os.WriteFile(p, []byte("POINT (3 4)\n"), 0o644))
	d, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, []Point{{3, 4}}, d.Points)

	_, err = Load(filepath.Join(dir, "x.shp"))
	assert.Error(t, err)
}
