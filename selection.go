package main

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

type SelectionPhase int

const (
	SelectionIdle SelectionPhase = iota
	SelectionDragging
	SelectionCommitted
	SelectionMoving
)

func (p SelectionPhase) String() string {
	switch p {
	case SelectionIdle:
		return "idle"
	case SelectionDragging:
		return "dragging"
	case SelectionCommitted:
		return "committed"
	case SelectionMoving:
		return "moving"
	default:
		return "unknown"
	}
}

// DirtyMarker is notified of every cell a grid mutation touches.
type DirtyMarker interface {
	MarkDirty(p point)
}

type liftedCell struct {
	Coord point
	Cell  Cell
}

type selectionPreview struct {
	image   Surface
	cellPix int
}

// Selection is the select tool's state machine:
//
//	Idle -> Dragging -> Idle | Committed
//	Committed -> Moving -> Committed
//	Committed -> Idle (delete, clear)
//
// While Moving the selected cells live in lifted, not in the grid.
type Selection struct {
	dragging  bool
	additive  bool
	dragStart point
	dragEnd   point
	set       map[point]struct{}
	rect      Rect
	preview   *selectionPreview
	moving    bool
	offset    r2.Vec
	lastMouse r2.Vec
	lifted    []liftedCell
}

func NewSelection() *Selection {
	return &Selection{set: make(map[point]struct{})}
}

func (s *Selection) Phase() SelectionPhase {
	switch {
	case s.moving:
		return SelectionMoving
	case s.dragging:
		return SelectionDragging
	case len(s.set) > 0:
		return SelectionCommitted
	default:
		return SelectionIdle
	}
}

// Rect returns the tight bounding box of the selected cells.
func (s *Selection) Rect() (Rect, bool) {
	return s.rect, len(s.set) > 0
}

func (s *Selection) Len() int {
	return len(s.set)
}

func (s *Selection) Contains(p point) bool {
	_, ok := s.set[p]
	return ok
}

// Cells returns the selected coordinates sorted by row then column.
func (s *Selection) Cells() []point {
	cells := make([]point, 0, len(s.set))
	for p := range s.set {
		cells = append(cells, p)
	}
	sortPoints(cells)
	return cells
}

func sortPoints(pts []point) {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})
}

// SetCells replaces the selection with cells and recomputes the rect.
func (s *Selection) SetCells(cells []point) {
	s.set = make(map[point]struct{}, len(cells))
	for _, p := range cells {
		s.set[p] = struct{}{}
	}
	s.recomputeRect()
}

func (s *Selection) recomputeRect() {
	s.rect, _ = boundingRect(s.set)
	s.preview = nil
}

// Forget drops cells that no longer exist from the selection and shrinks
// the rect to what remains.
func (s *Selection) Forget(cells []point) {
	removed := false
	for _, p := range cells {
		if _, ok := s.set[p]; ok {
			delete(s.set, p)
			removed = true
		}
	}
	if removed {
		s.recomputeRect()
	}
}

// Clear drops the committed selection. It does not touch the grid.
func (s *Selection) Clear() {
	s.set = make(map[point]struct{})
	s.rect = Rect{}
	s.preview = nil
	s.dragging = false
}

func (s *Selection) StartDrag(p point, additive bool) {
	s.dragging = true
	s.additive = additive
	s.dragStart = p
	s.dragEnd = p
}

func (s *Selection) UpdateDrag(p point) {
	if s.dragging {
		s.dragEnd = p
	}
}

// DragRect is the rubber band while dragging.
func (s *Selection) DragRect() (Rect, bool) {
	if !s.dragging {
		return Rect{}, false
	}
	return rectFromPoints(s.dragStart, s.dragEnd), true
}

func (s *Selection) CancelDrag() {
	s.dragging = false
}

// FinalizeDrag selects the filled cells inside the drag rectangle. With the
// additive modifier the result is unioned into the existing set; an empty
// result then leaves the selection alone. Without it an empty result clears.
func (s *Selection) FinalizeDrag(grid *CellGrid) bool {
	if !s.dragging {
		return false
	}
	s.dragging = false
	if s.additive && s.dragStart == s.dragEnd {
		return s.AddCell(grid, s.dragStart)
	}

	found := grid.InRect(rectFromPoints(s.dragStart, s.dragEnd))
	if len(found) == 0 {
		if !s.additive {
			s.Clear()
		}
		return false
	}
	if !s.additive {
		s.set = make(map[point]struct{}, len(found))
	}
	for _, p := range found {
		s.set[p] = struct{}{}
	}
	s.recomputeRect()
	return true
}

// AddCell adds a single filled cell to the selection.
func (s *Selection) AddCell(grid *CellGrid, p point) bool {
	if s.Contains(p) {
		return false
	}
	if c, ok := grid.Get(p); !ok || !c.Filled {
		return false
	}
	s.set[p] = struct{}{}
	s.recomputeRect()
	return true
}

// StartMove lifts the selected cells out of the grid so the canvas shows a
// hole under the dragged selection.
func (s *Selection) StartMove(grid *CellGrid, dirty DirtyMarker, mouseWorld r2.Vec, newSurface SurfaceFactory) bool {
	if s.moving || s.dragging || len(s.set) == 0 {
		return false
	}
	s.lifted = s.lifted[:0]
	for _, p := range s.Cells() {
		c, ok := grid.Get(p)
		if !ok {
			continue
		}
		s.lifted = append(s.lifted, liftedCell{Coord: p, Cell: c})
		grid.Set(p, nil)
		dirty.MarkDirty(p)
	}
	if s.preview == nil && newSurface != nil {
		s.preview = buildPreview(s.lifted, s.rect, newSurface)
	}
	s.moving = true
	s.offset = r2.Vec{}
	s.lastMouse = mouseWorld
	Logger().Debug("lifted selection", "cells", len(s.lifted))
	return true
}

// buildPreview renders the lifted cells at up to CellTextureSize px per cell.
func buildPreview(lifted []liftedCell, rect Rect, newSurface SurfaceFactory) *selectionPreview {
	side := max(rect.Width(), rect.Height())
	cellPix := min(CellTextureSize, maxPreviewPixels/side)
	if cellPix < 1 {
		return nil
	}
	img := newSurface(rect.Width()*cellPix, rect.Height()*cellPix)
	for _, lc := range lifted {
		img.FillRect(
			float64((lc.Coord.X-rect.MinX)*cellPix),
			float64((lc.Coord.Y-rect.MinY)*cellPix),
			float64(cellPix), float64(cellPix),
			lc.Cell.Color,
		)
	}
	return &selectionPreview{image: img, cellPix: cellPix}
}

func (s *Selection) UpdateMove(delta r2.Vec) {
	if s.moving {
		s.offset = r2.Add(s.offset, delta)
	}
}

// MoveTo accumulates the world-space delta since the previous pointer position.
func (s *Selection) MoveTo(mouseWorld r2.Vec) {
	if !s.moving {
		return
	}
	s.UpdateMove(r2.Sub(mouseWorld, s.lastMouse))
	s.lastMouse = mouseWorld
}

func (s *Selection) Offset() r2.Vec {
	return s.offset
}

// Lifted returns the staged cells during a move.
func (s *Selection) Lifted() []liftedCell {
	return s.lifted
}

// Drop rounds the accumulated offset to whole cells, writes the lifted cells
// back at their new coordinates and selects them. The returned command is
// relative to the grid as it was before the lift; it is empty when the delta
// rounds to zero.
func (s *Selection) Drop(grid *CellGrid, dirty DirtyMarker) (Command, []cellMove) {
	cmd := Command{Type: ActionMove}
	if !s.moving {
		return cmd, nil
	}
	dx := int(math.Round(s.offset.X))
	dy := int(math.Round(s.offset.Y))

	changes := make(map[point]int, 2*len(s.lifted))
	if dx != 0 || dy != 0 {
		for _, lc := range s.lifted {
			changes[lc.Coord] = len(cmd.Changes)
			cmd.Changes = append(cmd.Changes, CellChange{Coord: lc.Coord, Before: cellPtr(lc.Cell)})
		}
	}

	moved := make([]cellMove, 0, len(s.lifted))
	placed := make(map[point]struct{}, len(s.lifted))
	for _, lc := range s.lifted {
		dest := lc.Coord.add(dx, dy)
		if dx != 0 || dy != 0 {
			if i, ok := changes[dest]; ok {
				cmd.Changes[i].After = cellPtr(lc.Cell)
			} else {
				var before *Cell
				if c, ok := grid.Get(dest); ok {
					before = cellPtr(c)
				}
				changes[dest] = len(cmd.Changes)
				cmd.Changes = append(cmd.Changes, CellChange{Coord: dest, Before: before, After: cellPtr(lc.Cell)})
			}
		}
		grid.Set(dest, cellPtr(lc.Cell))
		dirty.MarkDirty(dest)
		placed[dest] = struct{}{}
		moved = append(moved, cellMove{From: lc.Coord, To: dest})
	}

	s.set = placed
	s.rect, _ = boundingRect(placed)
	s.lifted = nil
	s.preview = nil
	s.moving = false
	s.offset = r2.Vec{}
	Logger().Debug("dropped selection", "dx", dx, "dy", dy, "cells", len(placed))
	return cmd, moved
}

// CancelMove returns lifted cells to where they came from.
func (s *Selection) CancelMove(grid *CellGrid, dirty DirtyMarker) {
	if !s.moving {
		return
	}
	s.offset = r2.Vec{}
	s.Drop(grid, dirty)
}

// Delete removes the selected cells from the grid and clears the selection.
// The returned command has already been applied.
func (s *Selection) Delete(grid *CellGrid, dirty DirtyMarker) Command {
	cmd := Command{Type: ActionDelete}
	for _, p := range s.Cells() {
		c, ok := grid.Get(p)
		if !ok {
			continue
		}
		cmd.Changes = append(cmd.Changes, CellChange{Coord: p, Before: cellPtr(c)})
		grid.Set(p, nil)
		dirty.MarkDirty(p)
	}
	s.Clear()
	return cmd
}
