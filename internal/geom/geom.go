// Package geom holds the small amount of 2D world geometry shared by the
// terrain, region and heightmap packages.
package geom

// Bounds is an axis-aligned world-space rectangle in the horizontal plane.
type Bounds struct {
	MinX float64
	MaxX float64
	MinZ float64
	MaxZ float64
}

// Width returns the X extent.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Depth returns the Z extent.
func (b Bounds) Depth() float64 {
	return b.MaxZ - b.MinZ
}

// LongestAxis returns the larger of the two extents.
func (b Bounds) LongestAxis() float64 {
	if b.Width() > b.Depth() {
		return b.Width()
	}
	return b.Depth()
}

// NormX maps a world X coordinate to [0,1] within the bounds, clamped.
func (b Bounds) NormX(x float64) float64 {
	w := b.Width()
	if w <= 0 {
		return 0
	}
	return Clamp((x-b.MinX)/w, 0, 1)
}

// NormZ maps a world Z coordinate to [0,1] within the bounds, clamped.
func (b Bounds) NormZ(z float64) float64 {
	d := b.Depth()
	if d <= 0 {
		return 0
	}
	return Clamp((z-b.MinZ)/d, 0, 1)
}

// Contains reports whether the point lies inside the bounds.
func (b Bounds) Contains(x, z float64) bool {
	return x >= b.MinX && x < b.MaxX && z >= b.MinZ && z < b.MaxZ
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Smoothstep is the cubic Hermite blend t²(3−2t) on input clamped to [0,1].
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}
