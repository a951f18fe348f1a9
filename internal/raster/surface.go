// Package raster is the persistent pixel store shapes are committed to,
// scan converted with rasterx.
package raster

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"Kreate/internal/state"
)

const miterLimit = 4

// Surface owns an RGBA image and the rasterizers drawing into it. Strokes
// use round caps and round joins.
type Surface struct {
	img     *image.RGBA
	filler  *rasterx.Filler
	stroker *rasterx.Stroker
}

// New returns a transparent surface of the given size.
func New(width, height int) *Surface {
	s := &Surface{}
	s.alloc(width, height)
	return s
}

func (s *Surface) alloc(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	b := s.img.Bounds()
	s.filler = rasterx.NewFiller(width, height, rasterx.NewScannerGV(width, height, s.img, b))
	s.stroker = rasterx.NewStroker(width, height, rasterx.NewScannerGV(width, height, s.img, b))
}

// Image returns the backing image. It stays valid until the next Grow.
func (s *Surface) Image() *image.RGBA { return s.img }

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Grow enlarges the surface so it covers at least width x height. The
// surface never shrinks, so a smaller layout cannot crop what is drawn.
func (s *Surface) Grow(width, height int) {
	w, h := s.Size()
	if width <= w && height <= h {
		return
	}
	old := s.img
	s.alloc(max(w, width), max(h, height))
	draw.Copy(s.img, image.Point{}, old, old.Bounds(), draw.Src, nil)
}

// View returns the top-left width x height region of the surface. The view
// shares pixels with the surface until the next Grow.
func (s *Surface) View(width, height int) *image.RGBA {
	r := image.Rect(0, 0, max(width, 1), max(height, 1)).Intersect(s.img.Bounds())
	return s.img.SubImage(r).(*image.RGBA)
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Render commits shape to the surface using style.
func (s *Surface) Render(shape state.Shape, style state.Style) {
	if style.Width <= 0 {
		return
	}
	c := style.Color
	if c == nil {
		c = color.Black
	}

	switch shape.Kind {
	case state.ShapeDot:
		s.fillCircle(shape.From, style.Width/2, c)
	case state.ShapeSegment:
		if shape.From == shape.To {
			// a zero length segment with round caps is a dot
			s.fillCircle(shape.From, style.Width/2, c)
			return
		}
		s.beginStroke(style.Width, c)
		s.stroker.Start(fixedPoint(shape.From))
		s.stroker.Line(fixedPoint(shape.To))
		s.endStroke()
	case state.ShapeCurve:
		s.beginStroke(style.Width, c)
		s.stroker.Start(fixedPoint(shape.From))
		s.stroker.QuadBezier(fixedPoint(shape.Control), fixedPoint(shape.To))
		s.endStroke()
	}
}

func (s *Surface) fillCircle(center state.Point, r float64, c color.Color) {
	s.filler.Clear()
	s.filler.SetColor(c)
	rasterx.AddCircle(center.X, center.Y, r, s.filler)
	s.filler.Draw()
	s.filler.Clear()
}

func (s *Surface) beginStroke(width float64, c color.Color) {
	s.stroker.Clear()
	s.stroker.SetColor(c)
	s.stroker.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(miterLimit*64),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
}

func (s *Surface) endStroke() {
	s.stroker.Stop(false)
	s.stroker.Draw()
	s.stroker.Clear()
}

func fixedPoint(p state.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}
