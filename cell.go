package main

import (
	"image/color"
	"iter"
)

type Cell struct {
	Color  color.RGBA
	Filled bool
}

func filledCell(c color.RGBA) Cell {
	return Cell{Color: c, Filled: true}
}

func cellPtr(c Cell) *Cell {
	return &c
}

// CellGrid is the sparse, unbounded store of painted cells.
// Only filled cells have entries; clearing a cell deletes it.
type CellGrid struct {
	cells map[point]Cell
}

func NewCellGrid() *CellGrid {
	return &CellGrid{cells: make(map[point]Cell)}
}

func (g *CellGrid) Get(p point) (Cell, bool) {
	c, ok := g.cells[p]
	return c, ok
}

// Set stores c at p. A nil or unfilled cell removes the entry.
func (g *CellGrid) Set(p point, c *Cell) {
	if c == nil || !c.Filled {
		delete(g.cells, p)
		return
	}
	g.cells[p] = *c
}

// All yields every painted cell in unspecified order.
func (g *CellGrid) All() iter.Seq2[point, Cell] {
	return func(yield func(point, Cell) bool) {
		for p, c := range g.cells {
			if !yield(p, c) {
				return
			}
		}
	}
}

func (g *CellGrid) Len() int {
	return len(g.cells)
}

// Bounds returns the bounding box of all painted cells.
func (g *CellGrid) Bounds() (r Rect, ok bool) {
	for p := range g.cells {
		if !ok {
			r = Rect{p.X, p.Y, p.X, p.Y}
			ok = true
			continue
		}
		r.MinX = min(r.MinX, p.X)
		r.MinY = min(r.MinY, p.Y)
		r.MaxX = max(r.MaxX, p.X)
		r.MaxY = max(r.MaxY, p.Y)
	}
	return r, ok
}

// InRect returns the painted cells inside r, walking whichever of the
// rectangle or the grid is smaller.
func (g *CellGrid) InRect(r Rect) []point {
	var found []point
	if r.Area() <= len(g.cells) {
		for y := r.MinY; y <= r.MaxY; y++ {
			for x := r.MinX; x <= r.MaxX; x++ {
				if _, ok := g.cells[point{x, y}]; ok {
					found = append(found, point{x, y})
				}
			}
		}
		return found
	}
	for p := range g.cells {
		if r.Contains(p) {
			found = append(found, p)
		}
	}
	return found
}
