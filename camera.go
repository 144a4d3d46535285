package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Camera maps between screen pixels and world cell coordinates.
type Camera struct {
	// Origin is the world position shown at screen (0, 0).
	Origin r2.Vec
	// Zoom of 1 draws one cell as BaseCellPixels.
	Zoom float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

func (c *Camera) PixelScale() float64 {
	return BaseCellPixels * c.Zoom
}

func (c *Camera) CellToScreen(p point) r2.Vec {
	return r2.Scale(c.PixelScale(), r2.Sub(r2.Vec{X: float64(p.X), Y: float64(p.Y)}, c.Origin))
}

func (c *Camera) ScreenToCell(s r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(1/c.PixelScale(), s), c.Origin)
}

// CellAt returns the integer cell under a screen position.
func (c *Camera) CellAt(s r2.Vec) point {
	w := c.ScreenToCell(s)
	return point{int(math.Floor(w.X)), int(math.Floor(w.Y))}
}

// VisibleWorldRect returns the world-space bounds of a w x h viewport.
func (c *Camera) VisibleWorldRect(w, h float64) r2.Box {
	scale := c.PixelScale()
	return r2.Box{
		Min: c.Origin,
		Max: r2.Vec{X: c.Origin.X + w/scale, Y: c.Origin.Y + h/scale},
	}
}

func (c *Camera) PanBy(delta r2.Vec) {
	c.Origin = r2.Add(c.Origin, delta)
}

// ZoomAroundCursor scales zoom by factor while keeping the world point under
// cursor fixed on screen, including when zoom saturates at MinZoom or MaxZoom.
func (c *Camera) ZoomAroundCursor(cursor r2.Vec, factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	before := c.ScreenToCell(cursor)
	c.Zoom = clampZoom(c.Zoom * factor)
	after := c.ScreenToCell(cursor)
	c.Origin = r2.Add(c.Origin, r2.Sub(before, after))
}

// ZoomTo sets an absolute zoom around cursor.
func (c *Camera) ZoomTo(cursor r2.Vec, zoom float64) {
	if c.Zoom == 0 {
		c.Zoom = 1
	}
	c.ZoomAroundCursor(cursor, zoom/c.Zoom)
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
