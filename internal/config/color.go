package config

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundColor parses the canvas background.
func (c Config) BackgroundColor() (color.Color, error) {
	col, err := colorful.Hex(c.Canvas.Background)
	if err != nil {
		return nil, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
