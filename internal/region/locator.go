package region

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/worldexport/internal/geom"
	"github.com/Faultbox/worldexport/internal/logger"
)

// ErrNoTiles is returned when a tile directory contains no parseable tiles.
var ErrNoTiles = errors.New("no region tiles found")

// TileExt is the file extension of region tile files.
const TileExt = ".tile"

// Tile names are two signed decimal integers joined by an underscore.
// A single anchored pattern avoids the sign ambiguity of naive splitting:
// "01_-01" must parse as (1,-1), not fail on the embedded minus.
var tileNameRe = regexp.MustCompile(`^(-?\d+)_(-?\d+)$`)

// Coord is a signed region tile coordinate pair.
type Coord struct {
	RX int
	RZ int
}

// ParseCoord parses a tile base name (without extension) into a coordinate.
func ParseCoord(name string) (Coord, error) {
	m := tileNameRe.FindStringSubmatch(name)
	if m == nil {
		return Coord{}, fmt.Errorf("tile name %q does not match rx_rz pattern", name)
	}
	rx, err := strconv.Atoi(m[1])
	if err != nil {
		return Coord{}, fmt.Errorf("tile name %q: %w", name, err)
	}
	rz, err := strconv.Atoi(m[2])
	if err != nil {
		return Coord{}, fmt.Errorf("tile name %q: %w", name, err)
	}
	return Coord{RX: rx, RZ: rz}, nil
}

// CoordName formats a coordinate as the on-disk base name, zero-padding
// magnitudes below 10 to match the authoring convention ("00_01", "-01_00").
func CoordName(c Coord) string {
	return fmt.Sprintf("%s_%s", padCoord(c.RX), padCoord(c.RZ))
}

func padCoord(v int) string {
	if v < 0 {
		return fmt.Sprintf("-%02d", -v)
	}
	return fmt.Sprintf("%02d", v)
}

// LocateTiles scans a directory for region tile files and returns their
// coordinates sorted by (rz, rx). Entries that do not match the naming
// pattern are skipped with a warning, never fatal.
func LocateTiles(dir string) ([]Coord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading tile directory: %w", err)
	}

	var coords []Coord
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), TileExt) {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		c, err := ParseCoord(base)
		if err != nil {
			logger.Warn("skipping unrecognized tile file", zap.String("name", e.Name()), zap.Error(err))
			continue
		}
		coords = append(coords, c)
	}

	if len(coords) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTiles, dir)
	}

	sort.Slice(coords, func(i, j int) bool {
		if coords[i].RZ != coords[j].RZ {
			return coords[i].RZ < coords[j].RZ
		}
		return coords[i].RX < coords[j].RX
	})

	return coords, nil
}

// Bounds computes the union of all tile footprints. A tile at (rx, rz)
// covers [rx·size, (rx+1)·size) × [rz·size, (rz+1)·size).
func Bounds(coords []Coord, regionSize float64) (geom.Bounds, error) {
	if len(coords) == 0 {
		return geom.Bounds{}, ErrNoTiles
	}

	minRX, maxRX := coords[0].RX, coords[0].RX
	minRZ, maxRZ := coords[0].RZ, coords[0].RZ
	for _, c := range coords[1:] {
		if c.RX < minRX {
			minRX = c.RX
		}
		if c.RX > maxRX {
			maxRX = c.RX
		}
		if c.RZ < minRZ {
			minRZ = c.RZ
		}
		if c.RZ > maxRZ {
			maxRZ = c.RZ
		}
	}

	return geom.Bounds{
		MinX: float64(minRX) * regionSize,
		MaxX: float64(maxRX+1) * regionSize,
		MinZ: float64(minRZ) * regionSize,
		MaxZ: float64(maxRZ+1) * regionSize,
	}, nil
}
