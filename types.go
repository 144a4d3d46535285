package main

import "gonum.org/v1/gonum/spatial/r2"

type point struct {
	X, Y int
}

func (p point) add(dx, dy int) point {
	return point{p.X + dx, p.Y + dy}
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

func rectFromPoints(a, b point) Rect {
	return Rect{
		MinX: min(a.X, b.X),
		MinY: min(a.Y, b.Y),
		MaxX: max(a.X, b.X),
		MaxY: max(a.Y, b.Y),
	}
}

func (r Rect) Contains(p point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

func (r Rect) Width() int {
	return r.MaxX - r.MinX + 1
}

func (r Rect) Height() int {
	return r.MaxY - r.MinY + 1
}

func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// boundingRect returns the tight bounding box of cells. ok is false for an empty set.
func boundingRect(cells map[point]struct{}) (r Rect, ok bool) {
	for p := range cells {
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

// PointerEvent is one discrete mouse event in screen pixels.
type PointerEvent struct {
	Pos    r2.Vec
	Button PointerButton
	Action PointerAction
	Shift  bool
}

// ScrollEvent is a wheel notch; positive Delta zooms in.
type ScrollEvent struct {
	Pos   r2.Vec
	Delta float64
}

// CellChange is one cell's transition. A nil Before or After means the cell is absent.
type CellChange struct {
	Coord  point
	Before *Cell
	After  *Cell
}

type Command struct {
	Type    ActionType
	Changes []CellChange
}

type cellMove struct {
	From, To point
}
