package layer

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"annomap/internal/view"
)

// Imager is a layer whose pixels can be read back.
type Imager interface {
	Image() image.Image
}

// Compose flattens layers, bottom first, over a background color into one
// image of the device pixel size w by h. Layers without pixels are skipped.
func Compose(layers []view.Layer, bg color.Color, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	for _, l := range layers {
		im, ok := l.(Imager)
		if !ok {
			continue
		}
		src := im.Image()
		if src == nil {
			continue
		}
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Over)
	}
	return dst
}

// Downsample scales src into a w by h image with bilinear filtering.
func Downsample(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
