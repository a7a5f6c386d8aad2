package feature

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"annomap/internal/graphic"
)

// Style holds drawing attributes. Widths, radius and dash lengths are in
// screen pixels; the device pixel ratio is applied at draw time.
type Style struct {
	StrokeColor string    `toml:"stroke_color"`
	FillColor   string    `toml:"fill_color"` // empty: not filled
	LineWidth   float64   `toml:"line_width"`
	Opacity     float64   `toml:"opacity"`
	FillOpacity float64   `toml:"fill_opacity"`
	Dash        []float64 `toml:"dash"`
	// Radius is the on-screen dot size of a Point.
	Radius float64 `toml:"radius"`
}

// DefaultStyle returns the built-in style of a kind.
func DefaultStyle(k Kind) Style {
	s := Style{LineWidth: 2, Opacity: 1, FillOpacity: 0.3}
	switch k {
	case KindPoint:
		s.StrokeColor, s.FillColor, s.Radius, s.FillOpacity = "#ffcc00", "#ffcc00", 4, 1
	case KindCircle:
		s.StrokeColor = "#34c759"
	case KindRect:
		s.StrokeColor = "#ff3b30"
	case KindLine, KindPolyline:
		s.StrokeColor = "#0a84ff"
	case KindPolygon:
		s.StrokeColor, s.FillColor = "#bf5af2", "#bf5af2"
	case KindArrow:
		s.StrokeColor = "#ff9f0a"
	}
	return s
}

// Validate checks colors and numeric ranges.
func (s Style) Validate() error {
	if _, err := parseColor(s.StrokeColor); err != nil {
		return fmt.Errorf("%w: stroke color: %v", ErrInvalidStyle, err)
	}
	if s.FillColor != "" {
		if _, err := parseColor(s.FillColor); err != nil {
			return fmt.Errorf("%w: fill color: %v", ErrInvalidStyle, err)
		}
	}
	unit := func(v float64) bool { return v >= 0 && v <= 1 }
	switch {
	case !(s.LineWidth >= 0) || math.IsInf(s.LineWidth, 0):
		return fmt.Errorf("%w: line width %g", ErrInvalidStyle, s.LineWidth)
	case !unit(s.Opacity) || !unit(s.FillOpacity):
		return fmt.Errorf("%w: opacity must be within [0, 1]", ErrInvalidStyle)
	case !(s.Radius >= 0) || math.IsInf(s.Radius, 0):
		return fmt.Errorf("%w: radius %g", ErrInvalidStyle, s.Radius)
	}
	for _, d := range s.Dash {
		if !(d > 0) {
			return fmt.Errorf("%w: dash lengths must be positive", ErrInvalidStyle)
		}
	}
	return nil
}

// StylePatch is a merge-patch: nil fields keep the current value. A non-nil
// empty Dash clears the dash pattern.
type StylePatch struct {
	StrokeColor *string   `toml:"stroke_color"`
	FillColor   *string   `toml:"fill_color"`
	LineWidth   *float64  `toml:"line_width"`
	Opacity     *float64  `toml:"opacity"`
	FillOpacity *float64  `toml:"fill_opacity"`
	Dash        []float64 `toml:"dash"`
	Radius      *float64  `toml:"radius"`
}

// Merge returns s with every set field of p applied.
func (s Style) Merge(p StylePatch) Style {
	if p.StrokeColor != nil {
		s.StrokeColor = *p.StrokeColor
	}
	if p.FillColor != nil {
		s.FillColor = *p.FillColor
	}
	if p.LineWidth != nil {
		s.LineWidth = *p.LineWidth
	}
	if p.Opacity != nil {
		s.Opacity = *p.Opacity
	}
	if p.FillOpacity != nil {
		s.FillOpacity = *p.FillOpacity
	}
	if p.Dash != nil {
		s.Dash = slices.Clone(p.Dash)
	}
	if p.Radius != nil {
		s.Radius = *p.Radius
	}
	return s
}

// Then layers q over p; q wins where both are set.
func (p StylePatch) Then(q StylePatch) StylePatch {
	out := p
	if q.StrokeColor != nil {
		out.StrokeColor = q.StrokeColor
	}
	if q.FillColor != nil {
		out.FillColor = q.FillColor
	}
	if q.LineWidth != nil {
		out.LineWidth = q.LineWidth
	}
	if q.Opacity != nil {
		out.Opacity = q.Opacity
	}
	if q.FillOpacity != nil {
		out.FillOpacity = q.FillOpacity
	}
	if q.Dash != nil {
		out.Dash = q.Dash
	}
	if q.Radius != nil {
		out.Radius = q.Radius
	}
	return out
}

func parseColor(hex string) (colorful.Color, error) {
	return colorful.Hex(hex)
}

func withAlpha(c colorful.Color, a float64) color.Color {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

// paint converts the style to device pixels.
func (s Style) paint(dpr float64) graphic.Paint {
	var p graphic.Paint
	if c, err := parseColor(s.StrokeColor); err == nil && s.Opacity > 0 {
		p.Stroke = withAlpha(c, s.Opacity)
	}
	if s.FillColor != "" && s.FillOpacity > 0 {
		if c, err := parseColor(s.FillColor); err == nil {
			p.Fill = withAlpha(c, s.FillOpacity)
		}
	}
	p.LineWidth = s.LineWidth * dpr
	for _, d := range s.Dash {
		p.Dash = append(p.Dash, d*dpr)
	}
	return p
}
