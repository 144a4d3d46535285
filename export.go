package main

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	exportPadding       = 2
	exportCaptionHeight = 20
	maxExportPixels     = 16384
)

// ExportPNG writes the painted area at CellTextureSize pixels per cell,
// reusing the cached chunk images, with a caption strip underneath.
func (e *Editor) ExportPNG(filename string) error {
	bounds, ok := e.Grid.Bounds()
	if !ok {
		return fmt.Errorf("nothing to export")
	}

	cellsW := bounds.Width() + 2*exportPadding
	cellsH := bounds.Height() + 2*exportPadding
	imageWidth := cellsW * CellTextureSize
	canvasHeight := cellsH * CellTextureSize
	imageHeight := canvasHeight + exportCaptionHeight
	if imageWidth > maxExportPixels || imageHeight > maxExportPixels {
		return fmt.Errorf("export too large: %dx%d px (limit %d)", imageWidth, imageHeight, maxExportPixels)
	}

	e.Renderer.RebuildDirty(e.Grid)
	cam := &Camera{
		Origin: r2.Vec{X: float64(bounds.MinX - exportPadding), Y: float64(bounds.MinY - exportPadding)},
		Zoom:   CellTextureSize / BaseCellPixels,
	}

	surface := &ggSurface{dc: gg.NewContext(imageWidth, imageHeight)}
	surface.Clear(color.White)
	e.Renderer.Draw(surface, cam, float64(imageWidth), float64(canvasHeight))

	dc := surface.context()
	dc.SetColor(color.White)
	dc.DrawRectangle(0, float64(canvasHeight), float64(imageWidth), exportCaptionHeight)
	dc.Fill()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	caption := fmt.Sprintf("(%d,%d) %dx%d cells", bounds.MinX, bounds.MinY, bounds.Width(), bounds.Height())
	dc.DrawStringAnchored(caption, 4, float64(canvasHeight)+exportCaptionHeight/2, 0, 0.5)

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	Logger().Info("exported png", "file", filename, "width", imageWidth, "height", imageHeight)
	return nil
}
