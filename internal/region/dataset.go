package region

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/Faultbox/worldexport/internal/geom"
)

// Dataset is a loaded set of region tiles queryable by world coordinate.
type Dataset struct {
	regionSize float64
	bounds     geom.Bounds
	tiles      map[Coord]*Tile
}

// LoadDataset locates and parses every tile in dir. All tiles must share one
// region size; a tile that disagrees is an error since downstream bounds
// math depends on it.
func LoadDataset(dir string) (*Dataset, error) {
	coords, err := LocateTiles(dir)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{tiles: make(map[Coord]*Tile, len(coords))}
	for _, c := range coords {
		tile, err := ParseTileFile(filepath.Join(dir, CoordName(c)+TileExt))
		if err != nil {
			return nil, fmt.Errorf("tile %s: %w", CoordName(c), err)
		}
		if ds.regionSize == 0 {
			ds.regionSize = tile.RegionSize
		} else if tile.RegionSize != ds.regionSize {
			return nil, fmt.Errorf("tile %s: region size %v differs from %v", CoordName(c), tile.RegionSize, ds.regionSize)
		}
		ds.tiles[c] = tile
	}

	ds.bounds, err = Bounds(coords, ds.regionSize)
	if err != nil {
		return nil, err
	}

	return ds, nil
}

// RegionSize returns the shared tile edge length in world units.
func (d *Dataset) RegionSize() float64 {
	return d.regionSize
}

// Bounds returns the union of all tile footprints.
func (d *Dataset) Bounds() geom.Bounds {
	return d.bounds
}

// TileCount returns the number of loaded tiles.
func (d *Dataset) TileCount() int {
	return len(d.tiles)
}

// HeightAt returns the bilinearly interpolated elevation at world
// coordinates (x, z), or NaN when no tile covers the point. Interpolation is
// clamped to the owning tile's grid, so heights near tile seams come from
// one tile only.
func (d *Dataset) HeightAt(x, z float64) float64 {
	c := Coord{
		RX: int(math.Floor(x / d.regionSize)),
		RZ: int(math.Floor(z / d.regionSize)),
	}
	tile, ok := d.tiles[c]
	if !ok {
		return math.NaN()
	}

	if tile.Resolution < 2 {
		return float64(tile.Heights[0])
	}

	step := tile.RegionSize / float64(tile.Resolution)

	// Local coordinates relative to the tile origin, in sample-grid space.
	// Samples sit at cell centers, so shift by half a step.
	fx := (x-float64(c.RX)*tile.RegionSize)/step - 0.5
	fz := (z-float64(c.RZ)*tile.RegionSize)/step - 0.5

	x0 := clampIndex(int(math.Floor(fx)), tile.Resolution-2)
	z0 := clampIndex(int(math.Floor(fz)), tile.Resolution-2)

	tx := geom.Clamp(fx-float64(x0), 0, 1)
	tz := geom.Clamp(fz-float64(z0), 0, 1)

	h00 := float64(tile.Heights[tile.HeightIndex(x0, z0)])
	h10 := float64(tile.Heights[tile.HeightIndex(x0+1, z0)])
	h01 := float64(tile.Heights[tile.HeightIndex(x0, z0+1)])
	h11 := float64(tile.Heights[tile.HeightIndex(x0+1, z0+1)])

	south := h00*(1-tx) + h10*tx
	north := h01*(1-tx) + h11*tx
	return south*(1-tz) + north*tz
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
