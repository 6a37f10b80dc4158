package region

import (
	"math"
	"path/filepath"
	"testing"
)

// writeConstTile writes a tile with every sample at the given height.
func writeConstTile(t *testing.T, dir string, c Coord, regionSize float64, resolution int, height float32) {
	t.Helper()

	tile := &Tile{
		RegionSize: regionSize,
		Resolution: resolution,
		Heights:    make([]float32, resolution*resolution),
	}
	for i := range tile.Heights {
		tile.Heights[i] = height
	}

	path := filepath.Join(dir, CoordName(c)+TileExt)
	if err := WriteTileFile(tile, path); err != nil {
		t.Fatalf("writing tile %v: %v", c, err)
	}
}

func TestLoadDataset(t *testing.T) {
	dir := t.TempDir()
	writeConstTile(t, dir, Coord{0, 0}, 256, 16, 5)
	writeConstTile(t, dir, Coord{1, 0}, 256, 16, 9)

	ds, err := LoadDataset(dir)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	if ds.TileCount() != 2 {
		t.Errorf("expected 2 tiles, got %d", ds.TileCount())
	}
	if ds.RegionSize() != 256 {
		t.Errorf("expected region size 256, got %v", ds.RegionSize())
	}

	b := ds.Bounds()
	if b.MinX != 0 || b.MaxX != 512 || b.MinZ != 0 || b.MaxZ != 256 {
		t.Errorf("unexpected bounds: %+v", b)
	}
}

func TestDatasetHeightAt(t *testing.T) {
	dir := t.TempDir()
	writeConstTile(t, dir, Coord{0, 0}, 256, 16, 5)
	writeConstTile(t, dir, Coord{1, 0}, 256, 16, 9)

	ds, err := LoadDataset(dir)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	// Inside the first tile: constant 5 regardless of interpolation.
	if h := ds.HeightAt(100, 100); h != 5 {
		t.Errorf("expected height 5 in first tile, got %v", h)
	}
	// Inside the second tile.
	if h := ds.HeightAt(400, 100); h != 9 {
		t.Errorf("expected height 9 in second tile, got %v", h)
	}
	// Outside any tile: NaN.
	if h := ds.HeightAt(100, 300); !math.IsNaN(h) {
		t.Errorf("expected NaN outside tiles, got %v", h)
	}
	if h := ds.HeightAt(-10, 10); !math.IsNaN(h) {
		t.Errorf("expected NaN outside tiles, got %v", h)
	}
}

func TestDatasetHeightAtInterpolates(t *testing.T) {
	dir := t.TempDir()

	// A 2x2 tile whose samples form a ramp along x: 0, 10 on both rows.
	tile := &Tile{
		RegionSize: 100,
		Resolution: 2,
		Heights:    []float32{0, 10, 0, 10},
	}
	if err := WriteTileFile(tile, filepath.Join(dir, "00_00.tile")); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadDataset(dir)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}

	// Sample centers sit at x=25 (h=0) and x=75 (h=10); halfway between
	// them the interpolated height is 5.
	if h := ds.HeightAt(50, 50); math.Abs(h-5) > 1e-9 {
		t.Errorf("expected interpolated height 5 at tile center, got %v", h)
	}
	// At a sample center the stored value comes back exactly.
	if h := ds.HeightAt(25, 25); math.Abs(h-0) > 1e-9 {
		t.Errorf("expected height 0 at first sample center, got %v", h)
	}
	if h := ds.HeightAt(75, 25); math.Abs(h-10) > 1e-9 {
		t.Errorf("expected height 10 at second sample center, got %v", h)
	}
}

func TestLoadDatasetRegionSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	writeConstTile(t, dir, Coord{0, 0}, 256, 8, 1)
	writeConstTile(t, dir, Coord{1, 0}, 128, 8, 1)

	if _, err := LoadDataset(dir); err == nil {
		t.Error("expected error for mismatched region sizes")
	}
}
