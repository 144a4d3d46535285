package main

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Editor owns the document and every piece of interaction state. Tools
// receive it explicitly; nothing is global.
type Editor struct {
	Grid      *CellGrid
	Camera    *Camera
	Renderer  *ChunkRenderer
	Selection *Selection
	History   *History
	Clipboard *Clipboard
	Groups    *Groups

	Mode  Mode
	Color color.RGBA

	paletteRow    int
	paletteCol    int
	extended      []color.RGBA
	extendedIndex int

	zoomStep   float64
	showGrid   bool
	newSurface SurfaceFactory

	stroke      *stroke
	pan         *panDrag
	lastPointer r2.Vec
	viewW       float64
	viewH       float64

	systemClipboard bool
	readClipboard   func() (string, error)
	writeClipboard  func(string) error
}

func NewEditor(cfg *Config, newSurface SurfaceFactory) *Editor {
	if cfg == nil {
		cfg = defaultConfig()
	}
	if newSurface == nil {
		newSurface = NewSurface
	}
	zoomStep := cfg.ZoomStep
	if zoomStep <= 1 {
		zoomStep = defaultZoomStep
	}
	return &Editor{
		Grid:            NewCellGrid(),
		Camera:          NewCamera(),
		Renderer:        NewChunkRenderer(newSurface),
		Selection:       NewSelection(),
		History:         NewHistory(cfg.HistorySize),
		Clipboard:       NewClipboard(),
		Groups:          NewGroups(),
		Mode:            ModePaint,
		Color:           cfg.StartColor,
		extended:        extendedPalette(),
		extendedIndex:   -1,
		zoomStep:        zoomStep,
		showGrid:        cfg.ShowGrid,
		newSurface:      newSurface,
		systemClipboard: cfg.SystemClipboard,
		readClipboard:   readClipboardText,
		writeClipboard:  writeClipboardText,
	}
}

// SetViewport records the frame size used for keyboard zoom and panning.
func (e *Editor) SetViewport(w, h float64) {
	e.viewW, e.viewH = w, h
}

// settle finishes any gesture in progress so a keyboard command sees a
// stable document. A move in progress is dropped where it is.
func (e *Editor) settle() {
	if e.stroke != nil {
		e.endStroke()
	}
	e.pan = nil
	switch e.Selection.Phase() {
	case SelectionMoving:
		e.dropSelection()
	case SelectionDragging:
		e.Selection.CancelDrag()
	}
}

// Cancel aborts a drag (the previous selection is kept) or returns a moving
// selection to where it was lifted from. Otherwise it clears the selection.
func (e *Editor) Cancel() string {
	switch e.Selection.Phase() {
	case SelectionDragging:
		e.Selection.CancelDrag()
		return "Selection cancelled"
	case SelectionMoving:
		e.Selection.CancelMove(e.Grid, e.Renderer)
		e.Groups.SyncSelected(e.Selection)
		return "Move cancelled"
	case SelectionCommitted:
		e.Selection.Clear()
		e.Groups.SyncSelected(e.Selection)
	}
	return ""
}

func (e *Editor) SetMode(mode Mode) {
	if mode == e.Mode {
		return
	}
	e.settle()
	e.Mode = mode
}

func (e *Editor) Undo() bool {
	e.settle()
	cmd, ok := e.History.Undo(e.Grid, e.Renderer)
	if ok {
		e.afterHistory(cmd)
	}
	return ok
}

func (e *Editor) Redo() bool {
	e.settle()
	cmd, ok := e.History.Redo(e.Grid, e.Renderer)
	if ok {
		e.afterHistory(cmd)
	}
	return ok
}

// afterHistory drops selection state that may point at cells the command
// just changed.
func (e *Editor) afterHistory(cmd Command) {
	e.Selection.Clear()
	var gone []point
	for _, ch := range cmd.Changes {
		if _, ok := e.Grid.Get(ch.Coord); !ok {
			gone = append(gone, ch.Coord)
		}
	}
	e.Groups.RemoveCells(gone)
	e.Groups.SyncSelected(e.Selection)
}

// Copy stores the selection in the clipboard.
func (e *Editor) Copy() bool {
	e.settle()
	if !e.Clipboard.Copy(e.Grid, e.Selection) {
		return false
	}
	e.mirrorClipboard()
	return true
}

// Cut copies the selection, removes its cells and clears the selection.
func (e *Editor) Cut() bool {
	e.settle()
	if !e.Clipboard.Copy(e.Grid, e.Selection) {
		return false
	}
	e.mirrorClipboard()
	cmd := e.Selection.Delete(e.Grid, e.Renderer)
	cmd.Type = ActionCut
	e.History.Push(cmd)
	e.forget(cmd)
	return true
}

// DeleteSelection removes the selected cells.
func (e *Editor) DeleteSelection() bool {
	e.settle()
	if e.Selection.Len() == 0 {
		return false
	}
	cmd := e.Selection.Delete(e.Grid, e.Renderer)
	e.History.Push(cmd)
	e.forget(cmd)
	return true
}

func (e *Editor) forget(cmd Command) {
	cells := make([]point, len(cmd.Changes))
	for i, ch := range cmd.Changes {
		cells[i] = ch.Coord
	}
	e.Groups.RemoveCells(cells)
	e.Groups.SyncSelected(e.Selection)
}

// Paste places the clipboard with its top-left at anchor and selects the
// pasted cells. An empty clipboard is a no-op.
func (e *Editor) Paste(anchor point) bool {
	e.settle()
	if !e.Clipboard.HasData && e.systemClipboard {
		e.loadSystemClipboard()
	}
	changes := e.Clipboard.PasteChanges(anchor)
	if len(changes) == 0 {
		return false
	}
	cmd := e.History.Record(e.Grid, e.Renderer, ActionPaste, changes)
	pasted := make([]point, len(cmd.Changes))
	for i, ch := range cmd.Changes {
		pasted[i] = ch.Coord
	}
	e.Groups.RemoveCells(pasted)
	e.Selection.SetCells(pasted)
	e.Groups.SyncSelected(e.Selection)
	return true
}

// PasteAtPointer pastes at the cell under the last pointer position.
func (e *Editor) PasteAtPointer() bool {
	return e.Paste(e.Camera.CellAt(e.lastPointer))
}

func (e *Editor) mirrorClipboard() {
	if !e.systemClipboard || e.writeClipboard == nil {
		return
	}
	if err := e.writeClipboard(e.Clipboard.Encode()); err != nil {
		Logger().Warn("system clipboard write failed", "err", err)
	}
}

func (e *Editor) loadSystemClipboard() {
	if e.readClipboard == nil {
		return
	}
	text, err := e.readClipboard()
	if err != nil {
		Logger().Warn("system clipboard read failed", "err", err)
		return
	}
	clip, err := decodeClipboard(cleanClipboardText(text))
	if err != nil {
		Logger().Debug("system clipboard ignored", "err", err)
		return
	}
	e.Clipboard = clip
}

// GroupSelection turns the selected cells into a new group.
func (e *Editor) GroupSelection() (*Group, bool) {
	e.settle()
	return e.Groups.Create(e.Selection.Cells())
}

// SelectNextGroup selects the group after the current one.
func (e *Editor) SelectNextGroup() (*Group, bool) {
	e.settle()
	g, ok := e.Groups.Next(e.Groups.Selected())
	if !ok {
		return nil, false
	}
	var present []point
	for _, p := range g.Points() {
		if _, ok := e.Grid.Get(p); ok {
			present = append(present, p)
		}
	}
	e.Selection.SetCells(present)
	e.Groups.SyncSelected(e.Selection)
	return g, true
}

// Ungroup dissolves the selected group and keeps its cells.
func (e *Editor) Ungroup() bool {
	e.settle()
	return e.Groups.Ungroup(e.Groups.Selected())
}

// DeleteGroup removes the selected group together with its cells.
func (e *Editor) DeleteGroup() bool {
	e.settle()
	g, ok := e.Groups.Take(e.Groups.Selected())
	if !ok {
		return false
	}
	changes := make([]CellChange, 0, len(g.Cells))
	for _, p := range g.Points() {
		if _, ok := e.Grid.Get(p); ok {
			changes = append(changes, CellChange{Coord: p})
		}
	}
	e.History.Record(e.Grid, e.Renderer, ActionDeleteGroup, changes)
	e.Selection.Clear()
	return true
}

func (e *Editor) selectPalette(row, col int) {
	e.paletteRow = (row%paletteRows + paletteRows) % paletteRows
	e.paletteCol = (col%paletteCols + paletteCols) % paletteCols
	e.Color = basePalette[e.paletteRow][e.paletteCol]
	e.extendedIndex = -1
}

func (e *Editor) stepExtended(delta int) {
	n := len(e.extended)
	if e.extendedIndex < 0 {
		e.extendedIndex = 0
		if delta < 0 {
			e.extendedIndex = n - 1
		}
	} else {
		e.extendedIndex = ((e.extendedIndex+delta)%n + n) % n
	}
	e.Color = e.extended[e.extendedIndex]
}

// HandleKey applies an editor hotkey and returns a status message, if any.
// handled is false for keys the editor does not own.
func (e *Editor) HandleKey(key string) (msg string, handled bool) {
	if e.handlePan(key, getMoveSpeed(key)) {
		return "", true
	}
	switch key {
	case "b":
		e.SetMode(ModePaint)
	case "e":
		e.SetMode(ModeErase)
	case "h", " ":
		e.SetMode(ModePan)
	case "v":
		e.SetMode(ModeSelect)
	case "esc":
		return e.Cancel(), true
	case "u", "ctrl+z":
		if !e.Undo() {
			return "Nothing to undo", true
		}
	case "U", "ctrl+y":
		if !e.Redo() {
			return "Nothing to redo", true
		}
	case "c":
		if !e.Copy() {
			return "Nothing selected", true
		}
		return fmt.Sprintf("Copied %dx%d", e.Clipboard.Width, e.Clipboard.Height), true
	case "x":
		if !e.Cut() {
			return "Nothing selected", true
		}
		return fmt.Sprintf("Cut %dx%d", e.Clipboard.Width, e.Clipboard.Height), true
	case "p":
		if !e.PasteAtPointer() {
			return "Clipboard is empty", true
		}
	case "delete", "backspace":
		if !e.DeleteSelection() {
			return "Nothing selected", true
		}
	case "g":
		g, ok := e.GroupSelection()
		if !ok {
			return "Nothing selected", true
		}
		return fmt.Sprintf("Created %s", g.Name), true
	case "G":
		if !e.Ungroup() {
			return "No group selected", true
		}
		return "Ungrouped", true
	case "tab":
		g, ok := e.SelectNextGroup()
		if !ok {
			return "No groups", true
		}
		return fmt.Sprintf("Selected %s", g.Name), true
	case "ctrl+d":
		if !e.DeleteGroup() {
			return "No group selected", true
		}
		return "Group deleted", true
	case "1", "2", "3", "4", "5", "6", "7", "8":
		e.selectPalette(e.paletteRow, int(key[0]-'1'))
	case "[":
		e.selectPalette(e.paletteRow-1, e.paletteCol)
	case "]":
		e.selectPalette(e.paletteRow+1, e.paletteCol)
	case "{":
		e.stepExtended(-1)
	case "}":
		e.stepExtended(1)
	case "+", "=":
		e.zoomAt(e.viewportCenter(), 1)
	case "-", "_":
		e.zoomAt(e.viewportCenter(), -1)
	case "0":
		e.Camera.ZoomTo(e.viewportCenter(), 1)
	case "#":
		e.showGrid = !e.showGrid
	default:
		return "", false
	}
	return "", true
}

// Render rebuilds dirty chunks and draws the visible canvas with overlays.
func (e *Editor) Render(dst Surface) {
	w, h := dst.Size()
	fw, fh := float64(w), float64(h)
	e.Renderer.RebuildDirty(e.Grid)
	dst.Clear(color.White)
	if e.showGrid {
		drawGrid(dst, e.Camera, fw, fh)
	}
	e.Renderer.Draw(dst, e.Camera, fw, fh)
	drawSelection(dst, e.Camera, e.Selection)
}
