package main

import (
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		p     point
		chunk point
		local point
	}{
		{point{0, 0}, point{0, 0}, point{0, 0}},
		{point{63, 63}, point{0, 0}, point{63, 63}},
		{point{64, 0}, point{1, 0}, point{0, 0}},
		{point{-1, -1}, point{-1, -1}, point{63, 63}},
		{point{-64, -65}, point{-1, -2}, point{0, 63}},
		{point{-129, 200}, point{-3, 3}, point{63, 8}},
	}
	for _, tt := range tests {
		chunk, local := decompose(tt.p)
		if chunk != tt.chunk || local != tt.local {
			t.Errorf("decompose(%v): expected %v/%v, got %v/%v", tt.p, tt.chunk, tt.local, chunk, local)
		}
	}
}

func TestDecomposeRoundTrip(t *testing.T) {
	for x := -300; x <= 300; x += 7 {
		for y := -300; y <= 300; y += 11 {
			p := point{x, y}
			chunk, local := decompose(p)
			if local.X < 0 || local.X >= ChunkSize || local.Y < 0 || local.Y >= ChunkSize {
				t.Fatalf("decompose(%v): local %v out of range", p, local)
			}
			back := point{chunk.X*ChunkSize + local.X, chunk.Y*ChunkSize + local.Y}
			if back != p {
				t.Fatalf("decompose(%v): round trip gave %v", p, back)
			}
		}
	}
}

func TestMarkDirtyCreatesChunk(t *testing.T) {
	r := NewChunkRenderer(newRecordingSurface)
	r.MarkDirty(point{-1, 5})
	r.MarkDirty(point{-10, 60})

	if r.ChunkCount() != 1 {
		t.Fatalf("expected 1 chunk, got %d", r.ChunkCount())
	}
	if !r.IsDirty(point{-1, 0}) {
		t.Error("expected chunk (-1,0) to be dirty")
	}

	grid := NewCellGrid()
	if n := r.RebuildDirty(grid); n != 1 {
		t.Errorf("expected 1 rebuilt chunk, got %d", n)
	}
	if len(r.DirtyChunks()) != 0 {
		t.Errorf("expected no dirty chunks after rebuild, got %v", r.DirtyChunks())
	}
	if n := r.RebuildDirty(grid); n != 0 {
		t.Errorf("expected nothing to rebuild, got %d", n)
	}
}

func TestRebuildDrawsCells(t *testing.T) {
	grid := NewCellGrid()
	r := NewChunkRenderer(nil)
	red := rgb(255, 0, 0)
	blue := rgb(0, 0, 255)

	set := func(p point, c color.RGBA) {
		grid.Set(p, cellPtr(filledCell(c)))
		r.MarkDirty(p)
	}
	set(point{1, 2}, red)
	set(point{-1, -1}, blue)
	r.RebuildDirty(grid)

	img, ok := r.ChunkImage(point{0, 0})
	if !ok {
		t.Fatal("expected chunk (0,0) to exist")
	}
	if got := rgbaAt(img, 1*CellTextureSize+4, 2*CellTextureSize+4); got != red {
		t.Errorf("expected red at cell (1,2), got %v", got)
	}
	if got := rgbaAt(img, 4, 4); got.A != 0 {
		t.Errorf("expected transparent at cell (0,0), got %v", got)
	}

	img, _ = r.ChunkImage(point{-1, -1})
	if got := rgbaAt(img, 63*CellTextureSize+4, 63*CellTextureSize+4); got != blue {
		t.Errorf("expected blue at local (63,63), got %v", got)
	}

	grid.Set(point{1, 2}, nil)
	r.MarkDirty(point{1, 2})
	r.RebuildDirty(grid)
	img, _ = r.ChunkImage(point{0, 0})
	if got := rgbaAt(img, 1*CellTextureSize+4, 2*CellTextureSize+4); got.A != 0 {
		t.Errorf("expected erased cell to be transparent, got %v", got)
	}
}

func TestDrawCullsToViewport(t *testing.T) {
	r := NewChunkRenderer(newRecordingSurface)
	for _, cp := range []point{{0, 0}, {5, 5}, {-1, 0}} {
		r.MarkDirty(point{cp.X * ChunkSize, cp.Y * ChunkSize})
	}

	dst := newRecordingSurface(240, 240).(*recordingSurface)
	cam := NewCamera()
	if n := r.Draw(dst, cam, 240, 240); n != 1 {
		t.Fatalf("expected 1 chunk drawn, got %d", n)
	}
	want := drawnImage{0, 0, ChunkSize * BaseCellPixels, ChunkSize * BaseCellPixels}
	if dst.images[0] != want {
		t.Errorf("expected %v, got %v", want, dst.images[0])
	}

	dst = newRecordingSurface(240, 240).(*recordingSurface)
	cam.Origin = r2.Vec{X: -10, Y: -10}
	if n := r.Draw(dst, cam, 240, 240); n != 2 {
		t.Fatalf("expected 2 chunks drawn, got %d", n)
	}
	if got := r.Stats(); got.Drawn != 2 || got.Chunks != 3 {
		t.Errorf("expected 2 drawn of 3 chunks, got %+v", got)
	}
}

func TestDrawChunksShareEdges(t *testing.T) {
	r := NewChunkRenderer(newRecordingSurface)
	r.MarkDirty(point{0, 0})
	r.MarkDirty(point{ChunkSize, 0})

	dst := newRecordingSurface(4000, 400).(*recordingSurface)
	cam := &Camera{Origin: r2.Vec{X: 0.3, Y: 0.1}, Zoom: 0.37}
	if n := r.Draw(dst, cam, 4000, 400); n != 2 {
		t.Fatalf("expected 2 chunks drawn, got %d", n)
	}
	left, right := dst.images[0], dst.images[1]
	if left.x > right.x {
		left, right = right, left
	}
	if left.x+left.w != right.x {
		t.Errorf("expected chunks to meet at %v, got gap to %v", left.x+left.w, right.x)
	}
}
