package main

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// stroke collects one press-to-release paint or erase gesture so it can be
// undone as a single command.
type stroke struct {
	action  ActionType
	color   color.RGBA
	last    point
	changes []CellChange
	index   map[point]int
}

// SetCell writes c at p and marks its chunk dirty. Painting a cell with the
// color it already has, or erasing an empty cell, changes nothing and reports
// false.
func (e *Editor) SetCell(p point, c *Cell) bool {
	return e.setCell(p, c, nil)
}

func (e *Editor) setCell(p point, c *Cell, st *stroke) bool {
	cur, ok := e.Grid.Get(p)
	if c == nil || !c.Filled {
		if !ok {
			return false
		}
		c = nil
	} else if ok && cur == *c {
		return false
	}

	if st != nil {
		if i, seen := st.index[p]; seen {
			st.changes[i].After = c
		} else {
			var before *Cell
			if ok {
				before = cellPtr(cur)
			}
			st.index[p] = len(st.changes)
			st.changes = append(st.changes, CellChange{Coord: p, Before: before, After: c})
		}
	}
	e.Grid.Set(p, c)
	e.Renderer.MarkDirty(p)
	return true
}

func (e *Editor) beginStroke(action ActionType, pos r2.Vec) {
	cell := e.Camera.CellAt(pos)
	e.stroke = &stroke{
		action: action,
		color:  e.Color,
		last:   cell,
		index:  make(map[point]int),
	}
	e.strokeTo(cell)
}

// continueStroke fills every cell between the previous and current pointer
// position so fast drags leave no gaps.
func (e *Editor) continueStroke(pos r2.Vec) {
	if e.stroke == nil {
		return
	}
	cell := e.Camera.CellAt(pos)
	for _, p := range bresenham(e.stroke.last, cell) {
		e.strokeTo(p)
	}
	e.stroke.last = cell
}

func (e *Editor) strokeTo(p point) {
	st := e.stroke
	if st.action == ActionErase {
		e.setCell(p, nil, st)
		return
	}
	e.setCell(p, cellPtr(filledCell(st.color)), st)
}

func (e *Editor) endStroke() {
	st := e.stroke
	if st == nil {
		return
	}
	e.stroke = nil
	if len(st.changes) == 0 {
		return
	}
	var cleared []point
	for _, ch := range st.changes {
		if ch.After == nil {
			cleared = append(cleared, ch.Coord)
		}
	}
	e.Groups.RemoveCells(cleared)
	e.Selection.Forget(cleared)
	e.Groups.SyncSelected(e.Selection)
	e.History.Push(Command{Type: st.action, Changes: st.changes})
	Logger().Debug("stroke", "action", st.action, "cells", len(st.changes))
}

func (e *Editor) selectPress(ev PointerEvent) {
	cell := e.Camera.CellAt(ev.Pos)
	if !ev.Shift && e.Selection.Phase() == SelectionCommitted && e.Selection.Contains(cell) {
		e.Selection.StartMove(e.Grid, e.Renderer, e.Camera.ScreenToCell(ev.Pos), e.newSurface)
		return
	}
	e.Selection.StartDrag(cell, ev.Shift)
}

func (e *Editor) selectDrag(ev PointerEvent) {
	switch e.Selection.Phase() {
	case SelectionMoving:
		e.Selection.MoveTo(e.Camera.ScreenToCell(ev.Pos))
	case SelectionDragging:
		e.Selection.UpdateDrag(e.Camera.CellAt(ev.Pos))
	}
}

func (e *Editor) selectRelease(ev PointerEvent) {
	switch e.Selection.Phase() {
	case SelectionMoving:
		e.Selection.MoveTo(e.Camera.ScreenToCell(ev.Pos))
		e.dropSelection()
	case SelectionDragging:
		e.Selection.UpdateDrag(e.Camera.CellAt(ev.Pos))
		e.Selection.FinalizeDrag(e.Grid)
		e.Groups.SyncSelected(e.Selection)
	}
}

// dropSelection places a moving selection and records the move.
func (e *Editor) dropSelection() {
	cmd, moved := e.Selection.Drop(e.Grid, e.Renderer)
	e.History.Push(cmd)
	e.Groups.MoveCells(moved)
	e.Groups.SyncSelected(e.Selection)
}

// HandlePointer dispatches one pointer event to the active tool. The middle
// button pans in every mode.
func (e *Editor) HandlePointer(ev PointerEvent) {
	e.lastPointer = ev.Pos
	switch ev.Action {
	case PointerPress:
		if e.pan != nil || e.stroke != nil {
			return
		}
		if ev.Button == ButtonMiddle || (ev.Button == ButtonLeft && e.Mode == ModePan) {
			e.startPan(ev.Pos)
			return
		}
		switch {
		case ev.Button == ButtonLeft && e.Mode == ModePaint:
			e.beginStroke(ActionPaint, ev.Pos)
		case ev.Button == ButtonRight && e.Mode == ModePaint, ev.Button == ButtonLeft && e.Mode == ModeErase:
			e.beginStroke(ActionErase, ev.Pos)
		case ev.Button == ButtonLeft && e.Mode == ModeSelect:
			e.selectPress(ev)
		}
	case PointerDrag:
		switch {
		case e.pan != nil:
			e.updatePan(ev.Pos)
		case e.stroke != nil:
			e.continueStroke(ev.Pos)
		case e.Mode == ModeSelect:
			e.selectDrag(ev)
		}
	case PointerRelease:
		switch {
		case e.pan != nil:
			e.endPan()
		case e.stroke != nil:
			e.continueStroke(ev.Pos)
			e.endStroke()
		case e.Mode == ModeSelect:
			e.selectRelease(ev)
		}
	}
}

// HandleScroll zooms around the pointer; positive Delta zooms in.
func (e *Editor) HandleScroll(ev ScrollEvent) {
	e.lastPointer = ev.Pos
	if ev.Delta == 0 {
		return
	}
	e.zoomAt(ev.Pos, ev.Delta)
}
