// Package region implements the on-disk region tile format, the tile
// directory locator, and world-coordinate height lookup over loaded tiles.
package region

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Tile format errors.
var (
	ErrInvalidTileMagic       = errors.New("invalid tile magic: expected 'WTIL'")
	ErrUnsupportedTileVersion = errors.New("unsupported tile version")
	ErrTruncatedTileData      = errors.New("truncated tile data")
)

// TileMagic identifies a region tile file.
const TileMagic = "WTIL"

// Current tile format version.
const (
	TileVersionMajor = 1
	TileVersionMinor = 0
)

// TileVersion represents the tile file version.
type TileVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v TileVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Tile holds one region's height grid. Samples lie at cell centers of a
// Resolution×Resolution grid over the tile's world footprint, row-major by
// increasing z then increasing x.
type Tile struct {
	Version    TileVersion
	RegionSize float64
	Resolution int
	Heights    []float32
}

// HeightIndex returns the buffer index for grid cell (ix, iz).
func (t *Tile) HeightIndex(ix, iz int) int {
	return iz*t.Resolution + ix
}

// WriteTile serializes the tile: magic, version, region size, resolution,
// then the height grid as zstd-compressed little-endian float32s.
func WriteTile(t *Tile) ([]byte, error) {
	if len(t.Heights) != t.Resolution*t.Resolution {
		return nil, fmt.Errorf("tile height buffer length %d does not match resolution %d", len(t.Heights), t.Resolution)
	}

	raw := new(bytes.Buffer)
	if err := binary.Write(raw, binary.LittleEndian, t.Heights); err != nil {
		return nil, fmt.Errorf("encoding heights: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	compressed := enc.EncodeAll(raw.Bytes(), nil)
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("closing zstd encoder: %w", err)
	}

	buf := new(bytes.Buffer)
	buf.WriteString(TileMagic)
	buf.WriteByte(TileVersionMajor)
	buf.WriteByte(TileVersionMinor)
	binary.Write(buf, binary.LittleEndian, uint32(t.RegionSize))
	binary.Write(buf, binary.LittleEndian, uint32(t.Resolution))
	binary.Write(buf, binary.LittleEndian, uint32(len(compressed)))
	buf.Write(compressed)

	return buf.Bytes(), nil
}

// WriteTileFile writes the tile to disk.
func WriteTileFile(t *Tile, path string) error {
	data, err := WriteTile(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseTile parses a tile file from raw bytes.
func ParseTile(data []byte) (*Tile, error) {
	if len(data) < 18 {
		return nil, ErrTruncatedTileData
	}

	if string(data[0:4]) != TileMagic {
		return nil, ErrInvalidTileMagic
	}

	version := TileVersion{Major: data[4], Minor: data[5]}
	if version.Major != TileVersionMajor {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTileVersion, version)
	}

	r := bytes.NewReader(data[6:])

	var regionSize, resolution, compressedLen uint32
	if err := binary.Read(r, binary.LittleEndian, &regionSize); err != nil {
		return nil, fmt.Errorf("%w: reading region size", ErrTruncatedTileData)
	}
	if err := binary.Read(r, binary.LittleEndian, &resolution); err != nil {
		return nil, fmt.Errorf("%w: reading resolution", ErrTruncatedTileData)
	}
	if err := binary.Read(r, binary.LittleEndian, &compressedLen); err != nil {
		return nil, fmt.Errorf("%w: reading payload length", ErrTruncatedTileData)
	}

	if regionSize == 0 || resolution == 0 || resolution > 4096 {
		return nil, fmt.Errorf("invalid tile dimensions: region size %d, resolution %d", regionSize, resolution)
	}

	compressed := make([]byte, compressedLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("%w: reading payload", ErrTruncatedTileData)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing heights: %w", err)
	}

	sampleCount := int(resolution) * int(resolution)
	if len(raw) != sampleCount*4 {
		return nil, fmt.Errorf("%w: expected %d height bytes, got %d", ErrTruncatedTileData, sampleCount*4, len(raw))
	}

	tile := &Tile{
		Version:    version,
		RegionSize: float64(regionSize),
		Resolution: int(resolution),
		Heights:    make([]float32, sampleCount),
	}
	for i := range tile.Heights {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		tile.Heights[i] = math.Float32frombits(bits)
	}

	return tile, nil
}

// ParseTileFile parses a tile file from disk.
func ParseTileFile(path string) (*Tile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tile file: %w", err)
	}
	return ParseTile(data)
}
