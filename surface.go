package main

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// Surface is the drawing capability set the renderer and overlays need.
type Surface interface {
	Size() (w, h int)
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)
	// DrawImage scales img into the destination rectangle with nearest
	// neighbour sampling so cells stay crisp at any zoom.
	DrawImage(img image.Image, x, y, w, h float64)
	Image() image.Image
}

// SurfaceFactory creates an off-screen target of the given pixel size.
type SurfaceFactory func(w, h int) Surface

type ggSurface struct {
	dc *gg.Context
}

func NewSurface(w, h int) Surface {
	return &ggSurface{dc: gg.NewContext(max(w, 1), max(h, 1))}
}

func (s *ggSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

func (s *ggSurface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

func (s *ggSurface) FillRect(x, y, w, h float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

func (s *ggSurface) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(lineWidth)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Stroke()
}

func (s *ggSurface) DrawImage(img image.Image, x, y, w, h float64) {
	dst, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	x0, y0 := int(math.Round(x)), int(math.Round(y))
	x1, y1 := int(math.Round(x+w)), int(math.Round(y+h))
	dr := image.Rect(x0, y0, x1, y1)
	if dr.Empty() || !dr.Overlaps(dst.Bounds()) {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, dr, img, img.Bounds(), xdraw.Over, nil)
}

func (s *ggSurface) Image() image.Image {
	return s.dc.Image()
}

// context exposes the gg context for text rendering in exports.
func (s *ggSurface) context() *gg.Context {
	return s.dc
}
