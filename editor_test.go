package main

import (
	"errors"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

func newTestEditor() *Editor {
	e := NewEditor(nil, newRecordingSurface)
	e.readClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	e.writeClipboard = func(string) error { return nil }
	e.SetViewport(480, 480)
	return e
}

// at returns the screen position of the center of cell p at the default camera.
func at(p point) r2.Vec {
	return r2.Vec{X: (float64(p.X) + 0.5) * BaseCellPixels, Y: (float64(p.Y) + 0.5) * BaseCellPixels}
}

func press(e *Editor, p point, shift bool) {
	e.HandlePointer(PointerEvent{Pos: at(p), Button: ButtonLeft, Action: PointerPress, Shift: shift})
}

func drag(e *Editor, p point) {
	e.HandlePointer(PointerEvent{Pos: at(p), Button: ButtonLeft, Action: PointerDrag})
}

func release(e *Editor, p point) {
	e.HandlePointer(PointerEvent{Pos: at(p), Button: ButtonNone, Action: PointerRelease})
}

func TestSetCellIdempotent(t *testing.T) {
	e := newTestEditor()
	red := filledCell(rgb(255, 0, 0))

	if !e.SetCell(point{3, 3}, &red) {
		t.Fatal("expected first paint to change the grid")
	}
	e.Renderer.RebuildDirty(e.Grid)

	if e.SetCell(point{3, 3}, &red) {
		t.Error("expected repaint with the same color to be a no-op")
	}
	if dirty := e.Renderer.DirtyChunks(); len(dirty) != 0 {
		t.Errorf("expected no dirty chunks, got %v", dirty)
	}
	if e.SetCell(point{100, 100}, nil) {
		t.Error("expected erasing an empty cell to be a no-op")
	}
	if e.Renderer.ChunkCount() != 1 {
		t.Errorf("expected no chunk created by a no-op erase, got %d", e.Renderer.ChunkCount())
	}
}

func TestPaintMarksOneChunk(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{0, 0}, cellPtr(filledCell(rgb(255, 0, 0))))
	e.SetCell(point{1, 0}, cellPtr(filledCell(rgb(0, 0, 255))))

	dirty := e.Renderer.DirtyChunks()
	if len(dirty) != 1 || dirty[0] != (point{0, 0}) {
		t.Errorf("expected only chunk (0,0) dirty, got %v", dirty)
	}
	if e.Grid.Len() != 2 {
		t.Errorf("expected 2 cells, got %d", e.Grid.Len())
	}
}

func TestPaintStrokeIsOneCommand(t *testing.T) {
	e := newTestEditor()
	press(e, point{0, 0}, false)
	drag(e, point{5, 0})
	release(e, point{5, 0})

	if e.Grid.Len() != 6 {
		t.Fatalf("expected 6 interpolated cells, got %d", e.Grid.Len())
	}
	if e.History.Len() != 1 {
		t.Fatalf("expected 1 command, got %d", e.History.Len())
	}

	// the same stroke again changes nothing
	press(e, point{0, 0}, false)
	drag(e, point{5, 0})
	release(e, point{5, 0})
	if e.History.Len() != 1 {
		t.Errorf("expected repaint to record nothing, got %d commands", e.History.Len())
	}

	e.Undo()
	if e.Grid.Len() != 0 {
		t.Errorf("expected undo to clear the stroke, got %d cells", e.Grid.Len())
	}
}

func TestEraseStroke(t *testing.T) {
	e := newTestEditor()
	for x := 0; x < 4; x++ {
		e.SetCell(point{x, 0}, cellPtr(filledCell(e.Color)))
	}
	e.HandleKey("e")
	press(e, point{1, 0}, false)
	drag(e, point{2, 0})
	release(e, point{2, 0})

	if e.Grid.Len() != 2 {
		t.Errorf("expected 2 cells left, got %d", e.Grid.Len())
	}
	if cmd := e.History.undoStack[0]; cmd.Type != ActionErase {
		t.Errorf("expected an erase command, got %v", cmd.Type)
	}
}

func TestEraseShrinksSelection(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{0, 0}, cellPtr(filledCell(e.Color)))
	e.SetCell(point{3, 0}, cellPtr(filledCell(e.Color)))
	e.Selection.SetCells([]point{{0, 0}, {3, 0}})

	e.HandleKey("e")
	press(e, point{3, 0}, false)
	release(e, point{3, 0})

	if e.Selection.Len() != 1 || e.Selection.Contains(point{3, 0}) {
		t.Fatalf("expected only (0,0) selected, got %v", e.Selection.Cells())
	}
	if r, _ := e.Selection.Rect(); r != (Rect{0, 0, 0, 0}) {
		t.Errorf("expected rect {0 0 0 0}, got %v", r)
	}
	if !e.Copy() {
		t.Fatal("expected copy to succeed")
	}
	if e.Clipboard.Width != 1 || e.Clipboard.Height != 1 {
		t.Errorf("expected a 1x1 clipboard, got %dx%d", e.Clipboard.Width, e.Clipboard.Height)
	}
}

func TestPanDragAnchorsAtPress(t *testing.T) {
	e := newTestEditor()
	e.HandleKey("h")
	e.HandlePointer(PointerEvent{Pos: r2.Vec{X: 100, Y: 100}, Button: ButtonLeft, Action: PointerPress})
	e.HandlePointer(PointerEvent{Pos: r2.Vec{X: 124, Y: 100}, Button: ButtonLeft, Action: PointerDrag})
	e.HandlePointer(PointerEvent{Pos: r2.Vec{X: 148, Y: 52}, Button: ButtonLeft, Action: PointerDrag})
	e.HandlePointer(PointerEvent{Pos: r2.Vec{X: 148, Y: 52}, Action: PointerRelease})

	if !vecNear(e.Camera.Origin, r2.Vec{X: -2, Y: 2}) {
		t.Errorf("expected origin (-2,2), got %v", e.Camera.Origin)
	}
	if e.Grid.Len() != 0 {
		t.Error("expected panning to leave the grid alone")
	}
}

func TestScrollZoomsAroundPointer(t *testing.T) {
	e := newTestEditor()
	pos := r2.Vec{X: 200, Y: 120}
	before := e.Camera.ScreenToCell(pos)
	e.HandleScroll(ScrollEvent{Pos: pos, Delta: 1})

	if !scalar.EqualWithinAbs(e.Camera.Zoom, defaultZoomStep, eps) {
		t.Errorf("expected zoom %v, got %v", defaultZoomStep, e.Camera.Zoom)
	}
	if after := e.Camera.ScreenToCell(pos); !vecNear(before, after) {
		t.Errorf("expected %v under the pointer, got %v", before, after)
	}
}

func TestSelectAndMoveWithPointer(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{1, 1}, cellPtr(filledCell(rgb(1, 1, 1))))
	e.SetCell(point{2, 2}, cellPtr(filledCell(rgb(2, 2, 2))))
	e.HandleKey("v")

	press(e, point{0, 0}, false)
	drag(e, point{3, 3})
	release(e, point{3, 3})
	if r, ok := e.Selection.Rect(); !ok || r != (Rect{1, 1, 2, 2}) {
		t.Fatalf("expected rect {1 1 2 2}, got %v", r)
	}

	press(e, point{1, 1}, false)
	if e.Selection.Phase() != SelectionMoving {
		t.Fatalf("expected press inside the selection to lift it, got %v", e.Selection.Phase())
	}
	drag(e, point{6, 6})
	release(e, point{6, 6})

	if _, ok := e.Grid.Get(point{6, 6}); !ok {
		t.Error("expected cell at (6,6)")
	}
	if _, ok := e.Grid.Get(point{7, 7}); !ok {
		t.Error("expected cell at (7,7)")
	}
	if e.History.Len() != 1 {
		t.Fatalf("expected the move recorded, got %d commands", e.History.Len())
	}

	e.HandleKey("u")
	if _, ok := e.Grid.Get(point{1, 1}); !ok {
		t.Error("expected undo to restore (1,1)")
	}
	if _, ok := e.Grid.Get(point{6, 6}); ok {
		t.Error("expected undo to clear (6,6)")
	}
	if e.Selection.Phase() != SelectionIdle {
		t.Errorf("expected undo to clear the selection, got %v", e.Selection.Phase())
	}
}

func TestEscapeCancelsMove(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{2, 2}, cellPtr(filledCell(rgb(5, 5, 5))))
	e.HandleKey("v")
	press(e, point{2, 2}, true)
	release(e, point{2, 2})

	press(e, point{2, 2}, false)
	drag(e, point{9, 9})
	e.HandleKey("esc")

	if _, ok := e.Grid.Get(point{2, 2}); !ok {
		t.Error("expected the cell back at (2,2)")
	}
	if e.History.Len() != 0 {
		t.Errorf("expected nothing recorded, got %d", e.History.Len())
	}
	if e.Selection.Phase() != SelectionCommitted {
		t.Errorf("expected committed, got %v", e.Selection.Phase())
	}
}

func TestUndoDuringMoveDropsFirst(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{0, 0}, cellPtr(filledCell(rgb(5, 5, 5))))
	e.Selection.SetCells([]point{{0, 0}})
	e.HandleKey("v")
	press(e, point{0, 0}, false)
	drag(e, point{3, 0})

	e.Undo()
	if e.Selection.Phase() == SelectionMoving {
		t.Fatal("expected undo to end the move")
	}
	if _, ok := e.Grid.Get(point{0, 0}); !ok {
		t.Error("expected the move to be undone")
	}
	if e.Grid.Len() != 1 {
		t.Errorf("expected 1 cell, got %d", e.Grid.Len())
	}
}

func TestCutPaste(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{1, 1}, cellPtr(filledCell(rgb(1, 1, 1))))
	e.SetCell(point{2, 2}, cellPtr(filledCell(rgb(2, 2, 2))))
	e.Selection.SetCells([]point{{1, 1}, {2, 2}})

	if !e.Cut() {
		t.Fatal("expected cut to succeed")
	}
	if e.Grid.Len() != 0 || e.Selection.Len() != 0 {
		t.Fatalf("expected empty grid and selection, got %d cells and %d selected", e.Grid.Len(), e.Selection.Len())
	}

	if !e.Paste(point{10, 10}) {
		t.Fatal("expected paste to succeed")
	}
	if r, _ := e.Selection.Rect(); r != (Rect{10, 10, 11, 11}) {
		t.Errorf("expected pasted selection {10 10 11 11}, got %v", r)
	}
	if c, _ := e.Grid.Get(point{11, 11}); c.Color != rgb(2, 2, 2) {
		t.Errorf("expected pasted color at (11,11), got %v", c.Color)
	}
	if !e.Renderer.IsDirty(point{0, 0}) {
		t.Error("expected pasted chunk dirty")
	}

	e.Undo()
	if e.Grid.Len() != 0 {
		t.Errorf("expected undo to remove the paste, got %d cells", e.Grid.Len())
	}
	e.Undo()
	if e.Grid.Len() != 2 {
		t.Errorf("expected undo to restore the cut, got %d cells", e.Grid.Len())
	}
}

func TestPasteEmptyClipboard(t *testing.T) {
	e := newTestEditor()
	if e.Paste(point{0, 0}) {
		t.Error("expected paste with an empty clipboard to fail")
	}
	if e.History.Len() != 0 || e.Grid.Len() != 0 {
		t.Error("expected nothing to change")
	}
	if msg, _ := e.HandleKey("p"); msg != "Clipboard is empty" {
		t.Errorf("expected empty clipboard message, got %q", msg)
	}
}

func TestSystemClipboardMirror(t *testing.T) {
	e := newTestEditor()
	e.systemClipboard = true
	var written string
	e.writeClipboard = func(s string) error {
		written = s
		return nil
	}
	e.SetCell(point{0, 0}, cellPtr(filledCell(rgb(255, 0, 0))))
	e.Selection.SetCells([]point{{0, 0}})
	e.Copy()
	if !strings.HasPrefix(written, "infinipix 1 1\n") {
		t.Fatalf("expected encoded clipboard, got %q", written)
	}

	other := newTestEditor()
	other.systemClipboard = true
	other.readClipboard = func() (string, error) { return strings.ReplaceAll(written, "\n", "\r\n"), nil }
	if !other.Paste(point{4, 4}) {
		t.Fatal("expected paste from the system clipboard")
	}
	if c, _ := other.Grid.Get(point{4, 4}); c.Color != rgb(255, 0, 0) {
		t.Errorf("expected red at (4,4), got %v", c.Color)
	}
}

func TestDeleteSelectionKey(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{0, 0}, cellPtr(filledCell(rgb(1, 1, 1))))
	e.Selection.SetCells([]point{{0, 0}})
	e.HandleKey("delete")
	if e.Grid.Len() != 0 || e.History.Len() != 1 {
		t.Errorf("expected deletion recorded, got %d cells and %d commands", e.Grid.Len(), e.History.Len())
	}
	if msg, _ := e.HandleKey("backspace"); msg != "Nothing selected" {
		t.Errorf("expected nothing selected, got %q", msg)
	}
}

func TestGroupLifecycle(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{0, 0}, cellPtr(filledCell(rgb(1, 1, 1))))
	e.SetCell(point{1, 0}, cellPtr(filledCell(rgb(1, 1, 1))))
	e.Selection.SetCells([]point{{0, 0}, {1, 0}})

	msg, _ := e.HandleKey("g")
	if msg != "Created Group 1" {
		t.Errorf("expected group created, got %q", msg)
	}
	e.Selection.Clear()

	if msg, _ := e.HandleKey("tab"); msg != "Selected Group 1" || e.Selection.Len() != 2 {
		t.Errorf("expected tab to select the group, got %q with %d cells", msg, e.Selection.Len())
	}

	e.HandleKey("ctrl+d")
	if e.Grid.Len() != 0 || e.Groups.Len() != 0 {
		t.Errorf("expected group and cells gone, got %d cells and %d groups", e.Grid.Len(), e.Groups.Len())
	}
	e.HandleKey("u")
	if e.Grid.Len() != 2 {
		t.Errorf("expected undo to restore the cells, got %d", e.Grid.Len())
	}
}

func TestHistorySizeFromConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.HistorySize = 3
	e := NewEditor(cfg, newRecordingSurface)
	for x := 0; x < 5; x++ {
		press(e, point{x * 2, 0}, false)
		release(e, point{x * 2, 0})
	}
	if e.History.Len() != 3 {
		t.Errorf("expected 3 commands kept, got %d", e.History.Len())
	}
}

func TestPaletteKeys(t *testing.T) {
	e := newTestEditor()
	e.HandleKey("3")
	if e.Color != basePalette[0][2] {
		t.Errorf("expected %v, got %v", basePalette[0][2], e.Color)
	}
	e.HandleKey("]")
	if e.Color != basePalette[1][2] {
		t.Errorf("expected %v, got %v", basePalette[1][2], e.Color)
	}
	e.HandleKey("[")
	e.HandleKey("[")
	if e.Color != basePalette[paletteRows-1][2] {
		t.Errorf("expected wrap to the last row, got %v", e.Color)
	}
	e.HandleKey("}")
	if e.Color != e.extended[0] {
		t.Errorf("expected first extended color, got %v", e.Color)
	}
	e.HandleKey("{")
	if e.Color != e.extended[len(e.extended)-1] {
		t.Errorf("expected wrap to the last extended color, got %v", e.Color)
	}
}

func TestKeyZoomAndPan(t *testing.T) {
	e := newTestEditor()
	e.HandleKey("+")
	if !scalar.EqualWithinAbs(e.Camera.Zoom, defaultZoomStep, eps) {
		t.Errorf("expected zoom %v, got %v", defaultZoomStep, e.Camera.Zoom)
	}
	e.HandleKey("0")
	if !scalar.EqualWithinAbs(e.Camera.Zoom, 1, eps) {
		t.Errorf("expected zoom reset to 1, got %v", e.Camera.Zoom)
	}

	origin := e.Camera.Origin
	e.HandleKey("shift+right")
	if got := e.Camera.Origin.X - origin.X; !scalar.EqualWithinAbs(got, keyPanCells*4, eps) {
		t.Errorf("expected pan by %v cells, got %v", keyPanCells*4, got)
	}
	if _, ok := e.HandleKey("F5"); ok {
		t.Error("expected unknown key to be unhandled")
	}
}

func TestRenderRebuildsAndDraws(t *testing.T) {
	e := newTestEditor()
	e.SetCell(point{0, 0}, cellPtr(filledCell(rgb(255, 0, 0))))
	dst := newRecordingSurface(240, 240).(*recordingSurface)
	e.Render(dst)

	if len(e.Renderer.DirtyChunks()) != 0 {
		t.Error("expected render to rebuild dirty chunks")
	}
	if len(dst.images) != 1 {
		t.Errorf("expected 1 chunk drawn, got %d", len(dst.images))
	}
	if dst.clears != 1 {
		t.Errorf("expected the frame cleared once, got %d", dst.clears)
	}
}
