package main

// History is a bounded undo stack of cell commands with a redo stack.
// Pushing past capacity evicts the oldest command.
type History struct {
	undoStack []Command
	redoStack []Command
	capacity  int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistorySize
	}
	return &History{capacity: capacity}
}

func (h *History) Len() int     { return len(h.undoStack) }
func (h *History) RedoLen() int { return len(h.redoStack) }
func (h *History) Cap() int     { return h.capacity }

// Record fills each missing Before from grid, applies every After, marks the
// touched chunks dirty and pushes the command. Changes are applied in order,
// so a coordinate listed twice captures the intermediate value.
func (h *History) Record(grid *CellGrid, dirty DirtyMarker, actionType ActionType, changes []CellChange) Command {
	cmd := Command{Type: actionType, Changes: make([]CellChange, 0, len(changes))}
	for _, ch := range changes {
		if ch.Before == nil {
			if c, ok := grid.Get(ch.Coord); ok {
				ch.Before = cellPtr(c)
			}
		}
		grid.Set(ch.Coord, ch.After)
		dirty.MarkDirty(ch.Coord)
		cmd.Changes = append(cmd.Changes, ch)
	}
	h.Push(cmd)
	return cmd
}

// Push stores a command that has already been applied to the grid.
// Empty commands are ignored.
func (h *History) Push(cmd Command) {
	if len(cmd.Changes) == 0 {
		return
	}
	h.undoStack = append(h.undoStack, cmd)
	h.redoStack = h.redoStack[:0]
	if over := len(h.undoStack) - h.capacity; over > 0 {
		h.undoStack = append(h.undoStack[:0:0], h.undoStack[over:]...)
		Logger().Debug("history evicted", "count", over, "capacity", h.capacity)
	}
}

// Undo restores the Before values of the most recent command.
func (h *History) Undo(grid *CellGrid, dirty DirtyMarker) (Command, bool) {
	if len(h.undoStack) == 0 {
		return Command{}, false
	}

	lastIndex := len(h.undoStack) - 1
	cmd := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]

	for i := len(cmd.Changes) - 1; i >= 0; i-- {
		ch := cmd.Changes[i]
		grid.Set(ch.Coord, ch.Before)
		dirty.MarkDirty(ch.Coord)
	}

	h.redoStack = append(h.redoStack, cmd)
	return cmd, true
}

// Redo reapplies the most recently undone command.
func (h *History) Redo(grid *CellGrid, dirty DirtyMarker) (Command, bool) {
	if len(h.redoStack) == 0 {
		return Command{}, false
	}

	lastIndex := len(h.redoStack) - 1
	cmd := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]

	for _, ch := range cmd.Changes {
		grid.Set(ch.Coord, ch.After)
		dirty.MarkDirty(ch.Coord)
	}

	h.undoStack = append(h.undoStack, cmd)
	return cmd, true
}
