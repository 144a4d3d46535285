package main

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

const clipboardHeader = "infinipix"

// Clipboard holds copied cells keyed relative to the source selection's
// bounding-box minimum so they can be pasted at any anchor.
type Clipboard struct {
	Width   int
	Height  int
	Cells   map[point]Cell
	HasData bool
}

func NewClipboard() *Clipboard {
	return &Clipboard{Cells: make(map[point]Cell)}
}

// Copy stores every selected cell present in grid. It reports false when
// there is no selection.
func (c *Clipboard) Copy(grid *CellGrid, sel *Selection) bool {
	rect, ok := sel.Rect()
	if !ok {
		return false
	}
	cells := make(map[point]Cell, sel.Len())
	for _, p := range sel.Cells() {
		if cell, ok := grid.Get(p); ok {
			cells[point{p.X - rect.MinX, p.Y - rect.MinY}] = cell
		}
	}
	c.Width = rect.Width()
	c.Height = rect.Height()
	c.Cells = cells
	c.HasData = true
	return true
}

// PasteChanges plans the changes that place the clipboard at anchor, in
// row-major order. Before values are left for History.Record to fill.
func (c *Clipboard) PasteChanges(anchor point) []CellChange {
	if !c.HasData {
		return nil
	}
	rels := make([]point, 0, len(c.Cells))
	for rel := range c.Cells {
		rels = append(rels, rel)
	}
	sortPoints(rels)
	changes := make([]CellChange, 0, len(rels))
	for _, rel := range rels {
		changes = append(changes, CellChange{
			Coord: anchor.add(rel.X, rel.Y),
			After: cellPtr(c.Cells[rel]),
		})
	}
	return changes
}

// Encode writes the clipboard as text: a header line followed by Height rows
// of Width tokens, each "." or "#rrggbbaa".
func (c *Clipboard) Encode() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %d\n", clipboardHeader, c.Width, c.Height)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			cell, ok := c.Cells[point{x, y}]
			if !ok {
				b.WriteByte('.')
				continue
			}
			fmt.Fprintf(&b, "#%02x%02x%02x%02x", cell.Color.R, cell.Color.G, cell.Color.B, cell.Color.A)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// decodeClipboard parses text produced by Encode.
func decodeClipboard(text string) (*Clipboard, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	header := strings.Fields(lines[0])
	if len(header) != 3 || header[0] != clipboardHeader {
		return nil, fmt.Errorf("not an %s clipboard", clipboardHeader)
	}
	width, err := strconv.Atoi(header[1])
	if err != nil || width <= 0 {
		return nil, fmt.Errorf("invalid clipboard width %q", header[1])
	}
	height, err := strconv.Atoi(header[2])
	if err != nil || height <= 0 {
		return nil, fmt.Errorf("invalid clipboard height %q", header[2])
	}
	if len(lines)-1 != height {
		return nil, fmt.Errorf("expected %d clipboard rows, got %d", height, len(lines)-1)
	}

	clip := NewClipboard()
	clip.Width, clip.Height = width, height
	for y, line := range lines[1:] {
		tokens := strings.Fields(line)
		if len(tokens) != width {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", y, width, len(tokens))
		}
		for x, tok := range tokens {
			if tok == "." {
				continue
			}
			if len(tok) != 9 || tok[0] != '#' {
				return nil, fmt.Errorf("row %d: invalid cell %q", y, tok)
			}
			v, err := strconv.ParseUint(tok[1:], 16, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid cell %q: %w", y, tok, err)
			}
			clip.Cells[point{x, y}] = filledCell(color.RGBA{
				R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v),
			})
		}
	}
	clip.HasData = len(clip.Cells) > 0
	return clip, nil
}
