package main

import (
	"image"
	"image/color"
	"math"
	"sort"
)

type chunk struct {
	image Surface
	dirty bool
}

// RenderStats counts the work done by the last RebuildDirty and Draw calls.
type RenderStats struct {
	Chunks  int
	Rebuilt int
	Drawn   int
}

// ChunkRenderer caches one image per 64x64-cell chunk. Only dirty chunks are
// rebuilt and only chunks inside the viewport are drawn.
type ChunkRenderer struct {
	chunks     map[point]*chunk
	newSurface SurfaceFactory
	stats      RenderStats
}

func NewChunkRenderer(newSurface SurfaceFactory) *ChunkRenderer {
	if newSurface == nil {
		newSurface = NewSurface
	}
	return &ChunkRenderer{
		chunks:     make(map[point]*chunk),
		newSurface: newSurface,
	}
}

// floorDiv and floorMod use Euclidean semantics so negative cells land in
// the chunk to their left/top.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// decompose splits a cell into its chunk coordinate and the local offset inside it.
func decompose(p point) (chunkCoord, local point) {
	return point{floorDiv(p.X, ChunkSize), floorDiv(p.Y, ChunkSize)},
		point{floorMod(p.X, ChunkSize), floorMod(p.Y, ChunkSize)}
}

func chunkOf(p point) point {
	c, _ := decompose(p)
	return c
}

func (r *ChunkRenderer) chunkAt(cp point) *chunk {
	c, ok := r.chunks[cp]
	if !ok {
		c = &chunk{
			image: r.newSurface(ChunkTextureSize, ChunkTextureSize),
			dirty: true,
		}
		r.chunks[cp] = c
	}
	return c
}

// MarkDirty flags the chunk owning p for rebuild, creating it if needed.
func (r *ChunkRenderer) MarkDirty(p point) {
	r.chunkAt(chunkOf(p)).dirty = true
}

func (r *ChunkRenderer) IsDirty(cp point) bool {
	c, ok := r.chunks[cp]
	return ok && c.dirty
}

// DirtyChunks returns the dirty chunk coordinates sorted by row then column.
func (r *ChunkRenderer) DirtyChunks() []point {
	var dirty []point
	for cp, c := range r.chunks {
		if c.dirty {
			dirty = append(dirty, cp)
		}
	}
	sort.Slice(dirty, func(i, j int) bool {
		if dirty[i].Y != dirty[j].Y {
			return dirty[i].Y < dirty[j].Y
		}
		return dirty[i].X < dirty[j].X
	})
	return dirty
}

func (r *ChunkRenderer) ChunkCount() int {
	return len(r.chunks)
}

func (r *ChunkRenderer) Stats() RenderStats {
	r.stats.Chunks = len(r.chunks)
	return r.stats
}

// RebuildDirty redraws every dirty chunk from grid and returns how many were rebuilt.
func (r *ChunkRenderer) RebuildDirty(grid *CellGrid) int {
	rebuilt := 0
	for cp, c := range r.chunks {
		if !c.dirty {
			continue
		}
		r.rebuildChunk(cp, c, grid)
		rebuilt++
	}
	r.stats.Rebuilt = rebuilt
	if rebuilt > 0 {
		Logger().Debug("rebuilt chunks", "count", rebuilt, "total", len(r.chunks))
	}
	return rebuilt
}

func (r *ChunkRenderer) rebuildChunk(cp point, c *chunk, grid *CellGrid) {
	c.image.Clear(color.Transparent)
	minX, minY := cp.X*ChunkSize, cp.Y*ChunkSize
	for ly := 0; ly < ChunkSize; ly++ {
		for lx := 0; lx < ChunkSize; lx++ {
			cell, ok := grid.Get(point{minX + lx, minY + ly})
			if !ok || !cell.Filled {
				continue
			}
			c.image.FillRect(
				float64(lx*CellTextureSize),
				float64(ly*CellTextureSize),
				CellTextureSize,
				CellTextureSize,
				cell.Color,
			)
		}
	}
	c.dirty = false
}

// visibleChunks returns the inclusive chunk range covering a w x h viewport.
func visibleChunks(cam *Camera, w, h float64) (minC, maxC point) {
	box := cam.VisibleWorldRect(w, h)
	minC = point{
		floorDiv(int(math.Floor(box.Min.X)), ChunkSize),
		floorDiv(int(math.Floor(box.Min.Y)), ChunkSize),
	}
	maxC = point{
		floorDiv(int(math.Ceil(box.Max.X)), ChunkSize),
		floorDiv(int(math.Ceil(box.Max.Y)), ChunkSize),
	}
	return minC, maxC
}

// Draw blits the cached image of every existing chunk in view onto dst.
// Chunk edges are rounded to whole pixels; neighbours share the same rounded
// edge so no seams appear at fractional zoom.
func (r *ChunkRenderer) Draw(dst Surface, cam *Camera, w, h float64) int {
	minC, maxC := visibleChunks(cam, w, h)
	drawn := 0
	for cy := minC.Y; cy <= maxC.Y; cy++ {
		for cx := minC.X; cx <= maxC.X; cx++ {
			c, ok := r.chunks[point{cx, cy}]
			if !ok {
				continue
			}
			topLeft := cam.CellToScreen(point{cx * ChunkSize, cy * ChunkSize})
			bottomRight := cam.CellToScreen(point{(cx + 1) * ChunkSize, (cy + 1) * ChunkSize})
			x0, y0 := math.Round(topLeft.X), math.Round(topLeft.Y)
			x1, y1 := math.Round(bottomRight.X), math.Round(bottomRight.Y)
			dst.DrawImage(c.image.Image(), x0, y0, x1-x0, y1-y0)
			drawn++
		}
	}
	r.stats.Drawn = drawn
	return drawn
}

// ChunkImage returns the cached image for a chunk coordinate.
func (r *ChunkRenderer) ChunkImage(cp point) (image.Image, bool) {
	c, ok := r.chunks[cp]
	if !ok {
		return nil, false
	}
	return c.image.Image(), true
}
