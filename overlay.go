package main

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	gridLineColor      = color.RGBA{R: 210, G: 225, B: 255, A: 255}
	selectionFill      = color.NRGBA{R: 77, G: 153, B: 255, A: 38}
	selectionOutline   = color.NRGBA{R: 77, G: 153, B: 255, A: 255}
	moveOutline        = color.NRGBA{R: 255, G: 200, B: 0, A: 255}
	overlayLineWidth   = 1.0
	movingOutlineWidth = 2.0
)

// drawGrid draws a line on every cell edge in view once cells are large
// enough on screen for the lines to help.
func drawGrid(dst Surface, cam *Camera, w, h float64) {
	if cam.PixelScale() < gridLineMinScale {
		return
	}
	box := cam.VisibleWorldRect(w, h)
	for x := int(math.Floor(box.Min.X)); x <= int(math.Ceil(box.Max.X)); x++ {
		sx := math.Round(cam.CellToScreen(point{x, 0}).X)
		dst.FillRect(sx, 0, 1, h, gridLineColor)
	}
	for y := int(math.Floor(box.Min.Y)); y <= int(math.Ceil(box.Max.Y)); y++ {
		sy := math.Round(cam.CellToScreen(point{0, y}).Y)
		dst.FillRect(0, sy, w, 1, gridLineColor)
	}
}

// screenRect returns the screen rectangle covering an inclusive cell rect.
func screenRect(cam *Camera, r Rect) (x, y, w, h float64) {
	tl := cam.CellToScreen(point{r.MinX, r.MinY})
	br := cam.CellToScreen(point{r.MaxX + 1, r.MaxY + 1})
	return tl.X, tl.Y, br.X - tl.X, br.Y - tl.Y
}

func drawSelection(dst Surface, cam *Camera, sel *Selection) {
	switch sel.Phase() {
	case SelectionDragging:
		r, _ := sel.DragRect()
		x, y, w, h := screenRect(cam, r)
		dst.FillRect(x, y, w, h, selectionFill)
		dst.StrokeRect(x, y, w, h, overlayLineWidth, selectionOutline)
		// the committed set stays visible under an additive drag
		if sel.additive && sel.Len() > 0 {
			r, _ := sel.Rect()
			x, y, w, h := screenRect(cam, r)
			dst.StrokeRect(x, y, w, h, overlayLineWidth, selectionOutline)
		}
	case SelectionCommitted:
		r, _ := sel.Rect()
		x, y, w, h := screenRect(cam, r)
		dst.FillRect(x, y, w, h, selectionFill)
		dst.StrokeRect(x, y, w, h, overlayLineWidth, selectionOutline)
	case SelectionMoving:
		drawMoving(dst, cam, sel)
	}
}

// drawMoving draws the lifted cells at the current, unrounded offset.
func drawMoving(dst Surface, cam *Camera, sel *Selection) {
	r, ok := sel.Rect()
	if !ok {
		return
	}
	scale := cam.PixelScale()
	shift := r2.Scale(scale, sel.Offset())
	x, y, w, h := screenRect(cam, r)
	x, y = x+shift.X, y+shift.Y

	if sel.preview != nil {
		dst.DrawImage(sel.preview.image.Image(), x, y, w, h)
	} else {
		for _, lc := range sel.Lifted() {
			s := r2.Add(cam.CellToScreen(lc.Coord), shift)
			dst.FillRect(s.X, s.Y, scale, scale, lc.Cell.Color)
		}
	}
	dst.StrokeRect(x, y, w, h, movingOutlineWidth, moveOutline)
}
