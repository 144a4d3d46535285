package main

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"
)

// halfBlock is one terminal cell: the upper half is drawn in the foreground
// color of "▀", the lower half in the background color.
type halfBlock struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// Canvas presents editor frames in the terminal. Each column covers
// pixelsPerColumn frame pixels and each row twice that, so one terminal cell
// shows two square samples.
type Canvas struct {
	frame           Surface
	cols            int
	rows            int
	pixelsPerColumn int
	newSurface      SurfaceFactory
}

func NewCanvas(pixelsPerColumn int, newSurface SurfaceFactory) *Canvas {
	if pixelsPerColumn <= 0 {
		pixelsPerColumn = defaultPixelsPerColumn
	}
	if newSurface == nil {
		newSurface = NewSurface
	}
	return &Canvas{pixelsPerColumn: pixelsPerColumn, newSurface: newSurface}
}

// Resize sets the terminal area in cells and reallocates the frame when it changes.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 1), max(rows, 1)
	if c.frame != nil && cols == c.cols && rows == c.rows {
		return
	}
	c.cols, c.rows = cols, rows
	w, h := c.FrameSize()
	c.frame = c.newSurface(int(w), int(h))
}

// FrameSize is the frame size in pixels.
func (c *Canvas) FrameSize() (w, h float64) {
	s := c.pixelsPerColumn
	return float64(c.cols * s), float64(c.rows * 2 * s)
}

// ScreenToPixel maps a terminal cell to the frame pixel at its center.
func (c *Canvas) ScreenToPixel(x, y int) r2.Vec {
	s := float64(c.pixelsPerColumn)
	return r2.Vec{X: float64(x)*s + s/2, Y: float64(y)*2*s + s}
}

// Render draws the editor into the frame and returns one string per row.
func (c *Canvas) Render(e *Editor) []string {
	if c.frame == nil {
		c.Resize(c.cols, c.rows)
	}
	e.Render(c.frame)
	return renderHalfBlocks(sampleFrame(c.frame.Image(), c.cols, c.rows, c.pixelsPerColumn))
}

// sampleFrame picks the center pixel of each half cell.
func sampleFrame(img image.Image, cols, rows, s int) [][]halfBlock {
	b := img.Bounds()
	at := func(x, y int) color.RGBA {
		if !(image.Point{x, y}).In(b) {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
	out := make([][]halfBlock, rows)
	for row := 0; row < rows; row++ {
		line := make([]halfBlock, cols)
		for col := 0; col < cols; col++ {
			x := b.Min.X + col*s + s/2
			y := b.Min.Y + row*2*s + s/2
			line[col] = halfBlock{Top: at(x, y), Bottom: at(x, y+s)}
		}
		out[row] = line
	}
	return out
}

// renderHalfBlocks styles runs of identical cells together to keep the
// escape sequence count down.
func renderHalfBlocks(rows [][]halfBlock) []string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		var sb strings.Builder
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && row[end] == row[start] {
				end++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(row[start].Top))).
				Background(lipgloss.Color(hexColor(row[start].Bottom)))
			sb.WriteString(style.Render(strings.Repeat("▀", end-start)))
			start = end
		}
		lines[i] = sb.String()
	}
	return lines
}
