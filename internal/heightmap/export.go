package heightmap

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/Faultbox/worldexport/internal/geom"
)

// MetaVersion is the current heightmap artifact format version.
const MetaVersion = 1

// Artifact file suffixes, appended to the zone base name.
const (
	MetaSuffix = "_heightmap.json"
	BinSuffix  = "_heightmap.bin"
)

// Meta is the JSON metadata written alongside the binary sample buffer.
// The binary file is unusable without it.
type Meta struct {
	Version   int     `json:"version"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	WorldMinX float64 `json:"world_min_x"`
	WorldMaxX float64 `json:"world_max_x"`
	WorldMinZ float64 `json:"world_min_z"`
	WorldMaxZ float64 `json:"world_max_z"`
	// TerrainSize is the longer world-space axis extent, the scale the
	// server uses to size its elevation grid.
	TerrainSize float64 `json:"terrain_size"`
}

// Bounds reconstructs the world bounds from the metadata.
func (m *Meta) Bounds() geom.Bounds {
	return geom.Bounds{MinX: m.WorldMinX, MaxX: m.WorldMaxX, MinZ: m.WorldMinZ, MaxZ: m.WorldMaxZ}
}

// Export writes both artifact files for the asset: <base>_heightmap.json and
// <base>_heightmap.bin (little-endian float32, row-major z then x). Either
// both are written or an error is returned.
func Export(a *Asset, basePath string) error {
	meta := Meta{
		Version:     MetaVersion,
		Width:       a.Resolution,
		Height:      a.Resolution,
		WorldMinX:   a.Bounds.MinX,
		WorldMaxX:   a.Bounds.MaxX,
		WorldMinZ:   a.Bounds.MinZ,
		WorldMaxZ:   a.Bounds.MaxZ,
		TerrainSize: a.Bounds.LongestAxis(),
	}

	metaData, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding heightmap metadata: %w", err)
	}
	if err := os.WriteFile(basePath+MetaSuffix, metaData, 0644); err != nil {
		return fmt.Errorf("writing heightmap metadata: %w", err)
	}

	f, err := os.Create(basePath + BinSuffix)
	if err != nil {
		return fmt.Errorf("creating heightmap buffer file: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, a.Samples); err != nil {
		f.Close()
		return fmt.Errorf("writing heightmap buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing heightmap buffer file: %w", err)
	}

	return nil
}

// ReadMeta parses a heightmap metadata file.
func ReadMeta(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading heightmap metadata: %w", err)
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing heightmap metadata: %w", err)
	}
	if meta.Version != MetaVersion {
		return nil, fmt.Errorf("unsupported heightmap format version %d", meta.Version)
	}

	return &meta, nil
}

// ReadBin reads a heightmap sample buffer. The expected sample count comes
// from the metadata; a size mismatch is an error.
func ReadBin(path string, samples int) ([]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading heightmap buffer: %w", err)
	}
	if len(data) != samples*4 {
		return nil, fmt.Errorf("heightmap buffer is %d bytes, expected %d", len(data), samples*4)
	}

	buf := make([]float32, samples)
	for i := range buf {
		buf[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return buf, nil
}
