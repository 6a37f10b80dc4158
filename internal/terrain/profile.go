// Package terrain synthesizes deterministic procedural height fields for the
// game's empire terrain styles. A Profile composes seeded noise layers with
// shaping rules (village plateau, rivers, oases, harbor cuts) into a pure
// height function the server-side bake samples from.
package terrain

import (
	"math"

	perlin "github.com/aquilax/go-perlin"

	"github.com/Faultbox/worldexport/internal/geom"
)

// NoiseParams configures one Perlin noise layer.
type NoiseParams struct {
	Seed      int64
	Frequency float64 // World-coordinate multiplier before sampling
	Amplitude float64 // Output scale in world height units
	Octaves   int32
	Alpha     float64 // Weight falloff between octaves (go-perlin alpha)
	Beta      float64 // Frequency step between octaves (go-perlin beta)
}

// GateKind selects how a feature layer fades across the zone.
type GateKind int

const (
	// GateNorth fades the layer in toward the north (max Z) edge.
	GateNorth GateKind = iota
	// GateSouth fades the layer in toward the south (min Z) edge.
	GateSouth
	// GateEast fades the layer in toward the east (max X) edge.
	GateEast
	// GateWest fades the layer in toward the west (min X) edge.
	GateWest
	// GateCorners fades the layer in toward all four zone corners.
	GateCorners
)

// Gate describes the smoothstep ramp that fades a feature layer in or out
// based on normalized position within the zone. The ramp runs from Start to
// End on the gate's axis value; outside that band the factor saturates.
type Gate struct {
	Kind  GateKind
	Start float64
	End   float64
}

// factor returns the blend weight in [0,1] at normalized zone coordinates.
func (g Gate) factor(nx, nz float64) float64 {
	var t float64
	switch g.Kind {
	case GateNorth:
		t = nz
	case GateSouth:
		t = 1 - nz
	case GateEast:
		t = nx
	case GateWest:
		t = 1 - nx
	case GateCorners:
		dx := math.Abs(nx - 0.5)
		dz := math.Abs(nz - 0.5)
		t = 2 * math.Max(dx, dz)
	}
	if g.End == g.Start {
		if t >= g.End {
			return 1
		}
		return 0
	}
	return geom.Smoothstep((t - g.Start) / (g.End - g.Start))
}

// FeatureLayer is a noise layer gated by zone position, used for mountains,
// cliffs, dunes and highland plateaus.
type FeatureLayer struct {
	Noise NoiseParams
	Gate  Gate
}

// VillagePlateau flattens the settlement build area and raises a defensive
// rim around it.
type VillagePlateau struct {
	CenterX   float64
	CenterZ   float64
	Radius    float64 // Rim radius; inner flat area is 0.7·Radius
	Height    float64 // Plateau base height
	RimHeight float64 // Extra height of the sin bump across the rim band
}

// CarveKind selects a carving feature variant.
type CarveKind int

const (
	// CarveRiver interpolates height toward a river bed along a channel.
	CarveRiver CarveKind = iota
	// CarveOasis subtracts a depression inside a radius.
	CarveOasis
	// CarveHarbor interpolates height toward sea level (0) inside a radius.
	CarveHarbor
)

// Carve is a bounded height-carving feature. Rivers run along one axis:
// Center is the channel center on the cross axis, HalfWidth the channel half
// width, and SpanMin/SpanMax bound the feature along the flow axis. Oasis
// and harbor carves use CenterX/CenterZ and Radius.
type Carve struct {
	Kind CarveKind

	// River fields.
	AlongZ    bool // true: flows along Z at X≈Center; false: along X at Z≈Center
	Center    float64
	HalfWidth float64
	SpanMin   float64
	SpanMax   float64
	BedHeight float64

	// Oasis / harbor fields.
	CenterX float64
	CenterZ float64
	Radius  float64
	Depth   float64 // oasis only
}

// apply carves the feature into h at (x, z) and returns the new height.
func (c Carve) apply(h, x, z float64) float64 {
	switch c.Kind {
	case CarveRiver:
		along, cross := x, z
		if c.AlongZ {
			along, cross = z, x
		}
		if along < c.SpanMin || along > c.SpanMax {
			return h
		}
		d := math.Abs(cross - c.Center)
		if d >= c.HalfWidth {
			return h
		}
		t := 1 - d/c.HalfWidth
		t *= t
		return h + (c.BedHeight-h)*t
	case CarveOasis:
		d := math.Hypot(x-c.CenterX, z-c.CenterZ)
		if d >= c.Radius {
			return h
		}
		t := 1 - d/c.Radius
		t *= t
		return h - c.Depth*t
	case CarveHarbor:
		d := math.Hypot(x-c.CenterX, z-c.CenterZ)
		if d >= c.Radius {
			return h
		}
		t := 1 - d/c.Radius
		t *= t
		return h * (1 - t)
	}
	return h
}

// EmpireProfile is the immutable parameter set for one terrain style.
type EmpireProfile struct {
	Name     string
	Base     NoiseParams
	Detail   NoiseParams
	Features []FeatureLayer
	Village  VillagePlateau
	Carves   []Carve
}

// Profile is a constructed height sampler for one empire over one zone's
// bounds. It is deterministic and side-effect-free for fixed seeds.
type Profile struct {
	empire  EmpireProfile
	bounds  geom.Bounds
	base    *perlin.Perlin
	detail  *perlin.Perlin
	feature []*perlin.Perlin
	village VillagePlateau
}

// NewProfile builds a Profile for the empire over the given zone bounds.
// A non-zero seedOverride replaces every layer seed, offset per layer so the
// layers stay decorrelated.
func NewProfile(ep EmpireProfile, bounds geom.Bounds, seedOverride int64) *Profile {
	seed := func(layerSeed int64, offset int64) int64 {
		if seedOverride != 0 {
			return seedOverride + offset
		}
		return layerSeed
	}

	p := &Profile{
		empire:  ep,
		bounds:  bounds,
		base:    newLayer(ep.Base, seed(ep.Base.Seed, 0)),
		detail:  newLayer(ep.Detail, seed(ep.Detail.Seed, 1)),
		village: ep.Village,
	}
	for i, f := range ep.Features {
		p.feature = append(p.feature, newLayer(f.Noise, seed(f.Noise.Seed, int64(2+i))))
	}
	return p
}

func newLayer(np NoiseParams, seed int64) *perlin.Perlin {
	return perlin.NewPerlin(np.Alpha, np.Beta, np.Octaves, seed)
}

// Empire returns the profile's empire parameters.
func (p *Profile) Empire() EmpireProfile {
	return p.empire
}

// Bounds returns the zone bounds the profile was built for.
func (p *Profile) Bounds() geom.Bounds {
	return p.bounds
}

// HeightAt returns the terrain elevation at world coordinates (x, z).
// Layer order is fixed: base, gated features, detail, village plateau,
// carving features, non-negative clamp.
func (p *Profile) HeightAt(x, z float64) float64 {
	ep := p.empire

	// Base layer: [-1,1] noise mapped to [0, amplitude].
	n := p.base.Noise2D(x*ep.Base.Frequency, z*ep.Base.Frequency)
	h := (n + 1) * 0.5 * ep.Base.Amplitude

	// Feature layers gated by normalized zone position.
	nx := p.bounds.NormX(x)
	nz := p.bounds.NormZ(z)
	for i, f := range ep.Features {
		fn := p.feature[i].Noise2D(x*f.Noise.Frequency, z*f.Noise.Frequency)
		h += f.Gate.factor(nx, nz) * (fn + 1) * 0.5 * f.Noise.Amplitude
	}

	// Detail layer: unconditional surface roughness.
	h += p.detail.Noise2D(x*ep.Detail.Frequency, z*ep.Detail.Frequency) * ep.Detail.Amplitude

	h = p.applyVillage(h, x, z)

	for _, c := range ep.Carves {
		h = c.apply(h, x, z)
	}

	return math.Max(0, h)
}

// applyVillage applies the plateau rule: flat inside 0.7·R, a sin(π·t) rim
// bump out to R, a smoothstep blend back to natural terrain out to 2·R.
func (p *Profile) applyVillage(natural, x, z float64) float64 {
	v := p.village
	if v.Radius <= 0 {
		return natural
	}

	d := math.Hypot(x-v.CenterX, z-v.CenterZ)
	inner := v.Radius * 0.7
	rim := v.Radius
	outer := v.Radius * 2.0

	switch {
	case d < inner:
		return v.Height
	case d < rim:
		t := (d - inner) / (rim - inner)
		return v.Height + v.RimHeight*math.Sin(math.Pi*t)
	case d < outer:
		t := geom.Smoothstep((d - rim) / (outer - rim))
		return v.Height + (natural-v.Height)*t
	default:
		return natural
	}
}
