// Package heightmap samples an elevation source over a regular grid and
// serializes the result to the dual-file artifact the authoritative server
// loads at startup.
package heightmap

import (
	"math"

	"github.com/Faultbox/worldexport/internal/geom"
)

// Source yields an elevation for a world coordinate. A procedural terrain
// profile is total; a tile dataset returns NaN outside its coverage.
type Source interface {
	HeightAt(x, z float64) float64
}

// Resolution selection. The larger value keeps world-unit sample density
// roughly constant for oversized zones.
const (
	BaseResolution     = 257
	LargeResolution    = 513
	largeAxisThreshold = 2048.0
)

// ChooseResolution picks the sample grid resolution for the given bounds.
func ChooseResolution(b geom.Bounds) int {
	if b.LongestAxis() > largeAxisThreshold {
		return LargeResolution
	}
	return BaseResolution
}

// Asset is a sampled heightmap: a Resolution×Resolution row-major buffer
// (increasing z, then increasing x) over the bounds.
type Asset struct {
	Resolution int
	Bounds     geom.Bounds
	Samples    []float32
	// NaNCount is the number of samples that fell outside valid data and
	// were coerced to 0.
	NaNCount int
}

// Sample queries src at every grid cell center and returns the asset.
// Cell (ix, iz) maps to world (minX + (ix+0.5)·stepX, minZ + (iz+0.5)·stepZ).
func Sample(src Source, b geom.Bounds, resolution int) *Asset {
	a := &Asset{
		Resolution: resolution,
		Bounds:     b,
		Samples:    make([]float32, resolution*resolution),
	}

	stepX := b.Width() / float64(resolution)
	stepZ := b.Depth() / float64(resolution)

	for iz := 0; iz < resolution; iz++ {
		z := b.MinZ + (float64(iz)+0.5)*stepZ
		for ix := 0; ix < resolution; ix++ {
			x := b.MinX + (float64(ix)+0.5)*stepX
			h := src.HeightAt(x, z)
			if math.IsNaN(h) {
				h = 0
				a.NaNCount++
			}
			a.Samples[iz*resolution+ix] = float32(h)
		}
	}

	return a
}
