package layer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"annomap/internal/feature"
	"annomap/internal/geom"
	"annomap/internal/view"
)

func newMap(t *testing.T, w, h float64) *view.Map {
	t.Helper()
	o := view.DefaultOptions()
	o.Width, o.Height = w, h
	m, err := view.New(o)
	require.NoError(t, err)
	return m
}

func mustFeature(t *testing.T, id string, s feature.Shape, opts ...feature.Option) *feature.Feature {
	t.Helper()
	f, err := feature.New(id, s, opts...)
	require.NoError(t, err)
	return f
}

func pixels(img image.Image) []uint8 {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out.Pix
}

func TestFeatureRegistry(t *testing.T) {
	l := NewFeatureLayer("f")
	a := mustFeature(t, "a", feature.Point{X: 1, Y: 1})
	b := mustFeature(t, "b", feature.Point{X: 2, Y: 2})
	require.NoError(t, l.Add(a, b))
	assert.Equal(t, 2, l.Len())

	err := l.Add(mustFeature(t, "a", feature.Point{}))
	assert.ErrorIs(t, err, ErrDuplicateID)
	err = l.Add(mustFeature(t, "c", feature.Point{}), mustFeature(t, "c", feature.Point{}))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 2, l.Len())

	got, ok := l.Get("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	l.Select("a")
	require.True(t, l.Remove("a"))
	assert.False(t, l.Remove("a"))
	_, ok = l.Selected()
	assert.False(t, ok)
	assert.False(t, a.Attached())

	bounds, ok := l.Bounds()
	require.True(t, ok)
	assert.Equal(t, geom.BBox{MinX: 2, MinY: 2, MaxX: 2, MaxY: 2}, bounds)

	l.Clear()
	assert.Zero(t, l.Len())
	_, ok = l.Bounds()
	assert.False(t, ok)
}

func TestHitTestTopmostFirst(t *testing.T) {
	m := newMap(t, 100, 100)
	l := NewFeatureLayer("f")
	m.AddLayer(l)
	low := mustFeature(t, "low", feature.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	high := mustFeature(t, "high", feature.Rect{X: 5, Y: 5, Width: 10, Height: 10})
	require.NoError(t, l.Add(low, high))

	f, ok := l.HitTest(geom.Pt(7, 7))
	require.True(t, ok)
	assert.Same(t, high, f)

	f, ok = l.HitTest(geom.Pt(2, 2))
	require.True(t, ok)
	assert.Same(t, low, f)

	_, ok = l.HitTest(geom.Pt(50, 50))
	assert.False(t, ok)

	// screen center is the logical origin
	f, ok = l.HitTestScreen(geom.Pt(52, 52))
	require.True(t, ok)
	assert.Same(t, low, f)
}

func TestSelectNextWraps(t *testing.T) {
	l := NewFeatureLayer("f")
	require.NoError(t, l.Add(
		mustFeature(t, "a", feature.Point{}),
		mustFeature(t, "b", feature.Point{}),
		mustFeature(t, "c", feature.Point{}),
	))
	f, _ := l.SelectNext(1)
	assert.Equal(t, "a", f.ID())
	f, _ = l.SelectNext(-1)
	assert.Equal(t, "c", f.ID())
	f, _ = l.SelectNext(1)
	assert.Equal(t, "a", f.ID())

	l.Select("nope")
	_, ok := l.Selected()
	assert.False(t, ok)
}

func TestMoveThroughQueue(t *testing.T) {
	m := newMap(t, 100, 100)
	m.SetScale(2)
	l := NewFeatureLayer("f", WithSettings(feature.Settings{MoveStep: 4, MinClickWidth: 6}))
	m.AddLayer(l)
	f := mustFeature(t, "r", feature.Rect{X: 0, Y: 0, Width: 2, Height: 2})
	require.NoError(t, l.Add(f))

	var q UpdateQueue
	unsubscribe := l.OnFeatureUpdated(q.Push)

	assert.False(t, l.MoveSelected(view.DirRight))
	l.Select("r")
	require.True(t, l.MoveSelected(view.DirRight))
	require.True(t, l.MoveSelected(view.Down))
	assert.Equal(t, 2, q.Len())
	// proposals are not applied yet
	assert.Equal(t, feature.Rect{Width: 2, Height: 2}, f.Shape())

	n, err := q.CommitAll(l, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, q.Len())
	// each proposal starts from the committed shape at the time it was made
	assert.Equal(t, feature.Rect{X: 0, Y: 2, Width: 2, Height: 2}, f.Shape())

	unsubscribe()
	l.MoveSelected(view.Up)
	assert.Zero(t, q.Len())
}

func TestCommitPolicyAndUnknownFeature(t *testing.T) {
	m := newMap(t, 100, 100)
	l := NewFeatureLayer("f")
	m.AddLayer(l)
	f := mustFeature(t, "p", feature.Point{X: 1, Y: 1})
	require.NoError(t, l.Add(f))
	var q UpdateQueue
	l.OnFeatureUpdated(q.Push)

	require.NoError(t, f.Propose(feature.Point{X: 9, Y: 9}))
	n, err := q.CommitAll(l, func(feature.UpdateEvent) (feature.Shape, bool) { return nil, false })
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, feature.Point{X: 1, Y: 1}, f.Shape())

	// a policy may rewrite the proposal
	require.NoError(t, f.Propose(feature.Point{X: 9, Y: 9}))
	_, err = q.CommitAll(l, func(ev feature.UpdateEvent) (feature.Shape, bool) {
		return feature.Point{X: 5, Y: 5}, true
	})
	require.NoError(t, err)
	assert.Equal(t, feature.Point{X: 5, Y: 5}, f.Shape())

	stranger := mustFeature(t, "p", feature.Point{})
	err = l.Commit(feature.UpdateEvent{Kind: feature.FeatureUpdated, Feature: stranger, Proposed: feature.Point{}})
	assert.ErrorIs(t, err, ErrUnknownFeature)
}

func TestSurfaceFollowsViewportAndRatio(t *testing.T) {
	m := newMap(t, 40, 30)
	l := NewFeatureLayer("f", WithPixelRatio(2))
	assert.Nil(t, l.Surface())
	l.Refresh()
	assert.Nil(t, l.Surface())

	m.AddLayer(l)
	require.NotNil(t, l.Surface())
	assert.Equal(t, 80, l.Surface().Width())
	assert.Equal(t, 60, l.Surface().Height())

	m.Resize(50, 20)
	assert.Equal(t, 100, l.Surface().Width())
	assert.Equal(t, 40, l.Surface().Height())

	m.RemoveLayer("f")
	assert.Nil(t, l.Surface())
	assert.Nil(t, l.Image())
}

func TestLayerRefreshIsDeterministic(t *testing.T) {
	m := newMap(t, 64, 64)
	l := NewFeatureLayer("f", WithPixelRatio(1.5))
	m.AddLayer(l)
	require.NoError(t, l.Add(
		mustFeature(t, "poly", feature.Polygon{Points: []geom.Point{{X: -20, Y: -20}, {X: 20, Y: -10}, {X: 0, Y: 20}}}),
		mustFeature(t, "line", feature.Line{Start: geom.Pt(-30, 25), End: geom.Pt(30, 25)}),
		mustFeature(t, "pt", feature.Point{X: 10, Y: 10}),
		mustFeature(t, "dashed", feature.Line{Start: geom.Pt(-30, -25), End: geom.Pt(30, -25)},
			feature.WithStyle(feature.StylePatch{Dash: []float64{3, 2}})),
		mustFeature(t, "wide", feature.Line{Start: geom.Pt(-30, 15), End: geom.Pt(30, 15)},
			feature.WithStyle(feature.StylePatch{LineWidth: floatPtr(6)})),
	))
	l.Select("poly")

	// the selection outline is drawn last, so every refresh after the
	// first starts from its dashed stroke
	first := pixels(l.Image())
	for range 3 {
		l.Refresh()
		assert.Equal(t, first, pixels(l.Image()))
	}

	m.Pan(5, 0)
	assert.NotEqual(t, first, pixels(l.Image()))
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestImageLayerReadyAndFit(t *testing.T) {
	m := newMap(t, 100, 100)
	il := NewImageLayer("img", ImageInfo{Position: geom.Pt(0, 0)})
	m.AddLayer(il)
	assert.False(t, il.Ready())
	_, _, _, a := il.Image().At(50, 50).RGBA()
	assert.Zero(t, a)

	il.SetImage(solid(200, 100, color.White))
	require.True(t, il.Ready())
	assert.Equal(t, 200.0, il.Info().Width)

	il.FitMap(1.1)
	assert.Equal(t, geom.Pt(100, 50), m.Center())
	assert.InDelta(t, 100/220.0, m.Scale(), 1e-9)

	_, _, _, a = il.Image().At(50, 50).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = il.Image().At(50, 5).RGBA()
	assert.Zero(t, a)

	il.SetReady(false)
	_, _, _, a = il.Image().At(50, 50).RGBA()
	assert.Zero(t, a)
}

func TestImageLayerBoundsFollowAxes(t *testing.T) {
	il := NewImageLayer("img", ImageInfo{Position: geom.Pt(10, 10), Width: 4, Height: 2})
	assert.Equal(t, geom.BBox{MinX: 10, MinY: 10, MaxX: 14, MaxY: 12}, il.Bounds(view.Axes{}))
	assert.Equal(t, geom.BBox{MinX: 6, MinY: 8, MaxX: 10, MaxY: 10}, il.Bounds(view.Axes{X: view.Left, Y: view.Top}))

	w := 8.0
	il.UpdateInfo(ImageInfoPatch{Width: &w})
	assert.Equal(t, 8.0, il.Info().Width)
	assert.Equal(t, 2.0, il.Info().Height)
}

func TestComposeAndDownsample(t *testing.T) {
	m := newMap(t, 20, 20)
	il := NewImageLayer("img", ImageInfo{Position: geom.Pt(-10, -10), Width: 20, Height: 20})
	fl := NewFeatureLayer("f")
	m.AddLayer(il)
	m.AddLayer(fl)
	il.SetImage(solid(4, 4, color.RGBA{B: 255, A: 255}))
	require.NoError(t, fl.Add(mustFeature(t, "r", feature.Rect{X: -2, Y: -2, Width: 4, Height: 4},
		feature.WithStyle(feature.StylePatch{FillColor: strPtr("#ff0000"), FillOpacity: floatPtr(1)}))))

	out := Compose(m.Layers(), color.Black, 20, 20)
	r, _, b, _ := out.At(10, 10).RGBA()
	assert.NotZero(t, r)
	assert.Zero(t, b)
	_, _, b, _ = out.At(1, 1).RGBA()
	assert.NotZero(t, b)

	small := Downsample(out, 5, 5)
	assert.Equal(t, image.Rect(0, 0, 5, 5), small.Bounds())
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
