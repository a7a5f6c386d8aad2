// Package graphic draws primitives on a gg surface. Every coordinate is in
// device pixels; callers have already applied the view transform and the
// device pixel ratio.
package graphic

import (
	"image/color"

	"github.com/gogpu/gg"

	"annomap/internal/geom"
)

// Paint describes how a path is filled and stroked. A nil color disables
// that pass.
type Paint struct {
	Stroke    color.Color
	Fill      color.Color
	LineWidth float64
	Dash      []float64
}

// SelectionColor outlines selected features.
var SelectionColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}

// paint fills then strokes the current path and always leaves it empty.
func paint(dc *gg.Context, p Paint) error {
	defer dc.ClearPath()
	if p.Fill != nil {
		dc.SetColor(p.Fill)
		if p.Stroke == nil {
			return dc.Fill()
		}
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	if p.Stroke == nil {
		return nil
	}
	w := p.LineWidth
	if w <= 0 {
		w = 1
	}
	// the whole stroke is replaced on every call; gg keeps it on the context
	st := gg.DefaultStroke().WithWidth(w).WithCap(gg.LineCapRound).WithJoin(gg.LineJoinRound)
	if len(p.Dash) > 0 {
		st = st.WithDashPattern(p.Dash...)
	}
	dc.SetColor(p.Stroke)
	dc.SetStroke(st)
	return dc.Stroke()
}

func path(dc *gg.Context, pts []geom.Point, closed bool) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
	if closed {
		dc.ClosePath()
	}
}

// DrawRect draws an axis-aligned rectangle with its top-left corner at (x, y).
func DrawRect(dc *gg.Context, x, y, w, h float64, p Paint) error {
	dc.DrawRectangle(x, y, w, h)
	return paint(dc, p)
}

// DrawLine strokes a single segment. Fill is ignored.
func DrawLine(dc *gg.Context, a, b geom.Point, p Paint) error {
	p.Fill = nil
	dc.MoveTo(a.X, a.Y)
	dc.LineTo(b.X, b.Y)
	return paint(dc, p)
}

// DrawPolyline strokes an open path. Fewer than two points draw nothing.
func DrawPolyline(dc *gg.Context, pts []geom.Point, p Paint) error {
	if len(pts) < 2 {
		return nil
	}
	p.Fill = nil
	path(dc, pts, false)
	return paint(dc, p)
}

// DrawPolygon fills and strokes a closed ring.
func DrawPolygon(dc *gg.Context, pts []geom.Point, p Paint) error {
	switch len(pts) {
	case 0:
		return nil
	case 1:
		return DrawPoint(dc, pts[0], p.LineWidth, p)
	}
	path(dc, pts, true)
	return paint(dc, p)
}

// DrawCircle draws a circle of radius r centered on c.
func DrawCircle(dc *gg.Context, c geom.Point, r float64, p Paint) error {
	if r <= 0 {
		return nil
	}
	dc.DrawCircle(c.X, c.Y, r)
	return paint(dc, p)
}

// DrawPoint draws a filled dot. The fill falls back to the stroke color.
func DrawPoint(dc *gg.Context, c geom.Point, r float64, p Paint) error {
	if r <= 0 {
		r = 1
	}
	if p.Fill == nil {
		p.Fill = p.Stroke
	}
	dc.DrawCircle(c.X, c.Y, r)
	return paint(dc, p)
}

// DrawArrow strokes the shaft from start to end and fills a triangular head
// of the given length and half-angle at end.
func DrawArrow(dc *gg.Context, start, end geom.Point, headLen, headAngle float64, p Paint) error {
	if err := DrawLine(dc, start, end, p); err != nil {
		return err
	}
	tip, left, right, ok := geom.ArrowHead(start, end, headLen, headAngle)
	if !ok {
		return nil
	}
	head := p
	head.Fill = p.Stroke
	head.Dash = nil
	return DrawPolygon(dc, []geom.Point{tip, left, right}, head)
}

// DrawImage scales img into the rectangle at (x, y) of size w by h.
func DrawImage(dc *gg.Context, img *gg.ImageBuf, x, y, w, h, opacity float64) {
	if img == nil || w <= 0 || h <= 0 {
		return
	}
	dc.DrawImageEx(img, gg.DrawImageOptions{
		X:         x,
		Y:         y,
		DstWidth:  w,
		DstHeight: h,
		Opacity:   opacity,
	})
}

// DrawSelection outlines b, grown by pad pixels, with a dashed rectangle.
func DrawSelection(dc *gg.Context, b geom.BBox, pad, width float64) error {
	return DrawRect(dc, b.MinX-pad, b.MinY-pad, b.Width()+2*pad, b.Height()+2*pad, Paint{
		Stroke:    SelectionColor,
		LineWidth: width,
		Dash:      []float64{4 * width, 2 * width},
	})
}
