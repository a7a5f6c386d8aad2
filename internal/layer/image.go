package layer

import (
	"image"

	"github.com/gogpu/gg"

	"annomap/internal/applog"
	"annomap/internal/feature"
	"annomap/internal/geom"
	"annomap/internal/graphic"
	"annomap/internal/view"
)

// ImageInfo places an image in logical space. Position is the corner that
// lands on the screen top-left, like a Rect anchor.
type ImageInfo struct {
	Position      geom.Point
	Width, Height float64
	Opacity       float64
}

// ImageInfoPatch updates only the fields that are set.
type ImageInfoPatch struct {
	Position      *geom.Point
	Width, Height *float64
	Opacity       *float64
}

// ImageLayer draws one positioned image. Loading happens elsewhere; the
// layer draws nothing until it is marked ready.
type ImageLayer struct {
	Layer
	img   *gg.ImageBuf
	info  ImageInfo
	ready bool
}

var _ view.Layer = (*ImageLayer)(nil)

// NewImageLayer returns a layer with no image.
func NewImageLayer(id string, info ImageInfo, opts ...Option) *ImageLayer {
	o := buildOptions(opts)
	if info.Opacity == 0 {
		info.Opacity = 1
	}
	return &ImageLayer{Layer: newLayer(id, o.dpr), info: info}
}

func (l *ImageLayer) Info() ImageInfo { return l.info }
func (l *ImageLayer) Ready() bool     { return l.ready }

// SetReady flips the ready flag and redraws.
func (l *ImageLayer) SetReady(ready bool) {
	l.ready = ready && l.img != nil
	l.Refresh()
}

// SetImage installs img and marks the layer ready. A zero logical size
// takes the pixel size of the image.
func (l *ImageLayer) SetImage(img image.Image) {
	if img == nil {
		l.img, l.ready = nil, false
		l.Refresh()
		return
	}
	l.setBuf(gg.ImageBufFromImage(img))
}

// LoadImage reads an image file with gg and installs it.
func (l *ImageLayer) LoadImage(path string) error {
	buf, err := gg.LoadImage(path)
	if err != nil {
		l.img, l.ready = nil, false
		return err
	}
	l.setBuf(buf)
	applog.Logger().Info("image loaded", "layer", l.id, "path", path)
	return nil
}

func (l *ImageLayer) setBuf(buf *gg.ImageBuf) {
	l.img = buf
	w, h := buf.Bounds()
	if l.info.Width == 0 {
		l.info.Width = float64(w)
	}
	if l.info.Height == 0 {
		l.info.Height = float64(h)
	}
	l.ready = true
	l.Refresh()
}

// UpdateInfo merges p into the placement and redraws.
func (l *ImageLayer) UpdateInfo(p ImageInfoPatch) {
	if p.Position != nil && p.Position.Finite() {
		l.info.Position = *p.Position
	}
	if p.Width != nil && *p.Width >= 0 {
		l.info.Width = *p.Width
	}
	if p.Height != nil && *p.Height >= 0 {
		l.info.Height = *p.Height
	}
	if p.Opacity != nil && *p.Opacity >= 0 && *p.Opacity <= 1 {
		l.info.Opacity = *p.Opacity
	}
	l.Refresh()
}

// Bounds is the logical box covered by the image under axes a.
func (l *ImageLayer) Bounds(a view.Axes) geom.BBox {
	r := feature.Rect{X: l.info.Position.X, Y: l.info.Position.Y, Width: l.info.Width, Height: l.info.Height}
	return geom.Bounds(r.Outline(a))
}

// FitMap centers the map on the image and zooms so the image fills the
// viewport with the given margin.
func (l *ImageLayer) FitMap(margin float64) {
	if l.m == nil {
		return
	}
	l.m.FitBounds(l.Bounds(l.m.Axes()), margin)
}

// Refresh draws the image scaled by the map scale and pixel ratio.
func (l *ImageLayer) Refresh() {
	if !l.prepare() {
		return
	}
	if !l.ready || l.img == nil {
		return
	}
	o := l.m.ToScreen(l.info.Position)
	s := l.m.Scale() * l.dpr
	graphic.DrawImage(l.dc, l.img, o.X*l.dpr, o.Y*l.dpr, l.info.Width*s, l.info.Height*s, l.info.Opacity)
}
