package main

import (
	"fmt"
	"sort"
)

// Group is a named set of cells that can be reselected later.
type Group struct {
	ID    int
	Name  string
	Cells map[point]struct{}
}

func (g *Group) Points() []point {
	pts := make([]point, 0, len(g.Cells))
	for p := range g.Cells {
		pts = append(pts, p)
	}
	sortPoints(pts)
	return pts
}

// Groups keeps every group plus a cell -> group index. A cell belongs to at
// most one group.
type Groups struct {
	groups   []*Group
	index    map[point]int
	nextID   int
	selected int
}

func NewGroups() *Groups {
	return &Groups{index: make(map[point]int), nextID: 1}
}

func (gs *Groups) Len() int { return len(gs.groups) }

func (gs *Groups) List() []*Group {
	return gs.groups
}

func (gs *Groups) Get(id int) (*Group, bool) {
	for _, g := range gs.groups {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// Selected returns the id of the group that exactly matches the selection, or 0.
func (gs *Groups) Selected() int {
	return gs.selected
}

// Create groups cells, taking them away from any group they were in.
func (gs *Groups) Create(cells []point) (*Group, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	gs.RemoveCells(cells)
	g := &Group{
		ID:    gs.nextID,
		Name:  fmt.Sprintf("Group %d", gs.nextID),
		Cells: make(map[point]struct{}, len(cells)),
	}
	gs.nextID++
	for _, p := range cells {
		g.Cells[p] = struct{}{}
		gs.index[p] = g.ID
	}
	gs.groups = append(gs.groups, g)
	gs.selected = g.ID
	return g, true
}

func (gs *Groups) Rename(id int, name string) bool {
	g, ok := gs.Get(id)
	if !ok || name == "" {
		return false
	}
	g.Name = name
	return true
}

// Ungroup dissolves a group and leaves its cells on the canvas.
func (gs *Groups) Ungroup(id int) bool {
	_, ok := gs.remove(id)
	return ok
}

// Take removes a group and returns it so the caller can delete its cells.
func (gs *Groups) Take(id int) (*Group, bool) {
	return gs.remove(id)
}

func (gs *Groups) remove(id int) (*Group, bool) {
	for i, g := range gs.groups {
		if g.ID != id {
			continue
		}
		for p := range g.Cells {
			delete(gs.index, p)
		}
		gs.groups = append(gs.groups[:i], gs.groups[i+1:]...)
		if gs.selected == id {
			gs.selected = 0
		}
		return g, true
	}
	return nil, false
}

// MoveCells carries group membership along with moved cells. Cells that a
// move overwrites leave their group.
func (gs *Groups) MoveCells(moves []cellMove) {
	carried := make(map[point]int, len(moves))
	for _, mv := range moves {
		if id, ok := gs.index[mv.From]; ok {
			gs.detach(mv.From)
			carried[mv.To] = id
		}
	}
	for _, mv := range moves {
		if _, ok := gs.index[mv.To]; ok {
			gs.detach(mv.To)
		}
	}
	for p, id := range carried {
		if g, ok := gs.Get(id); ok {
			g.Cells[p] = struct{}{}
			gs.index[p] = id
		}
	}
	gs.dropEmpty()
}

// RemoveCells drops cells from their groups; groups left empty are removed.
func (gs *Groups) RemoveCells(cells []point) {
	for _, p := range cells {
		gs.detach(p)
	}
	gs.dropEmpty()
}

func (gs *Groups) detach(p point) {
	id, ok := gs.index[p]
	if !ok {
		return
	}
	delete(gs.index, p)
	if g, ok := gs.Get(id); ok {
		delete(g.Cells, p)
	}
}

func (gs *Groups) dropEmpty() {
	kept := gs.groups[:0]
	for _, g := range gs.groups {
		if len(g.Cells) > 0 {
			kept = append(kept, g)
			continue
		}
		if gs.selected == g.ID {
			gs.selected = 0
		}
	}
	gs.groups = kept
}

// SyncSelected marks the group whose cells exactly equal the selection.
func (gs *Groups) SyncSelected(sel *Selection) {
	gs.selected = 0
	if sel.Len() == 0 {
		return
	}
	for _, g := range gs.groups {
		if len(g.Cells) != sel.Len() {
			continue
		}
		match := true
		for p := range g.Cells {
			if !sel.Contains(p) {
				match = false
				break
			}
		}
		if match {
			gs.selected = g.ID
			return
		}
	}
}

// Next returns the group after id in creation order, wrapping around.
func (gs *Groups) Next(id int) (*Group, bool) {
	if len(gs.groups) == 0 {
		return nil, false
	}
	ids := make([]int, len(gs.groups))
	for i, g := range gs.groups {
		ids[i] = g.ID
	}
	i := sort.SearchInts(ids, id+1)
	if i == len(ids) {
		i = 0
	}
	return gs.groups[i], true
}
