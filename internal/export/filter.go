package export

import "math"

// Obstacle size limits in world units. The maximum rejects ground-plane
// sized volumes, the minimum rejects sub-visual decoration clutter.
const (
	MinObstacleSize = 0.5
	MaxObstacleSize = 50.0
)

// dedupKey quantizes an obstacle's position to one decimal place. Two
// obstacles of the same kind at the same rounded position collapse to one,
// regardless of size differences.
type dedupKey struct {
	kind string
	cx   int64
	cz   int64
}

func keyFor(o Obstacle) dedupKey {
	return dedupKey{
		kind: o.Type,
		cx:   int64(math.Round(o.CenterX * 10)),
		cz:   int64(math.Round(o.CenterZ * 10)),
	}
}

// FilterObstacles discards footprints outside the valid size range and
// deduplicates the survivors by quantized position, first occurrence wins.
// The operation is idempotent.
func FilterObstacles(in []Obstacle) []Obstacle {
	out := make([]Obstacle, 0, len(in))
	seen := make(map[dedupKey]struct{}, len(in))

	for _, o := range in {
		if !sizeValid(o) {
			continue
		}
		key := keyFor(o)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, o)
	}

	return out
}

func sizeValid(o Obstacle) bool {
	switch o.Type {
	case ObstacleBox:
		// Either extent over the maximum means a ground-plane-sized
		// volume; both extents under the minimum means clutter. One
		// axis clearing the minimum is enough to keep it.
		if o.HalfWidth > MaxObstacleSize || o.HalfDepth > MaxObstacleSize {
			return false
		}
		return o.HalfWidth >= MinObstacleSize || o.HalfDepth >= MinObstacleSize
	case ObstacleCircle:
		return o.Radius >= MinObstacleSize && o.Radius <= MaxObstacleSize
	default:
		return false
	}
}
