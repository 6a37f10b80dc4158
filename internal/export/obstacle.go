// Package export turns authored zone scenes into the world-geometry bundles
// the authoritative server consumes: obstacle footprints and spawn points,
// aggregated per zone.
package export

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/Faultbox/worldexport/internal/scene"
)

// Obstacle type tags in the exported JSON.
const (
	ObstacleBox    = "box"
	ObstacleCircle = "circle"
)

// Obstacle is the 2D footprint of a static collision volume. Box footprints
// are axis-aligned; rotation is intentionally dropped during projection
// since the server only needs coarse obstacle avoidance.
type Obstacle struct {
	Type      string
	CenterX   float64
	CenterZ   float64
	HalfWidth float64 // box
	HalfDepth float64 // box
	Radius    float64 // circle
}

// MarshalJSON emits the per-kind schema: boxes always carry both half
// extents (a zero extent is legal), circles carry only a radius.
func (o Obstacle) MarshalJSON() ([]byte, error) {
	switch o.Type {
	case ObstacleBox:
		return json.Marshal(struct {
			Type      string  `json:"type"`
			CenterX   float64 `json:"center_x"`
			CenterZ   float64 `json:"center_z"`
			HalfWidth float64 `json:"half_width"`
			HalfDepth float64 `json:"half_depth"`
		}{o.Type, o.CenterX, o.CenterZ, o.HalfWidth, o.HalfDepth})
	case ObstacleCircle:
		return json.Marshal(struct {
			Type    string  `json:"type"`
			CenterX float64 `json:"center_x"`
			CenterZ float64 `json:"center_z"`
			Radius  float64 `json:"radius"`
		}{o.Type, o.CenterX, o.CenterZ, o.Radius})
	default:
		return nil, fmt.Errorf("unknown obstacle type %q", o.Type)
	}
}

// UnmarshalJSON accepts both schema variants.
func (o *Obstacle) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      string  `json:"type"`
		CenterX   float64 `json:"center_x"`
		CenterZ   float64 `json:"center_z"`
		HalfWidth float64 `json:"half_width"`
		HalfDepth float64 `json:"half_depth"`
		Radius    float64 `json:"radius"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Obstacle{
		Type:      raw.Type,
		CenterX:   raw.CenterX,
		CenterZ:   raw.CenterZ,
		HalfWidth: raw.HalfWidth,
		HalfDepth: raw.HalfDepth,
		Radius:    raw.Radius,
	}
	return nil
}

// ExtractObstacles walks the scene tree and projects every static collision
// volume onto a box or circle footprint. Skipped shapes (unsupported kinds,
// empty meshes) are returned as descriptors for the caller to log.
func ExtractObstacles(root *scene.Node) (obstacles []Obstacle, skipped []string) {
	scene.Walk(root, func(n *scene.Node, world scene.Transform) {
		switch n.Kind {
		case scene.KindBody:
			if !n.Static || isGroundName(n.Name) {
				return
			}
		case scene.KindCSG:
			if !n.CollisionEnabled {
				return
			}
		default:
			return
		}

		for _, s := range n.Shapes {
			ob, ok := projectShape(s, world)
			if !ok {
				skipped = append(skipped, fmt.Sprintf("%s/%s", n.Name, shapeLabel(s)))
				continue
			}
			obstacles = append(obstacles, ob)
		}
	})
	return obstacles, skipped
}

// isGroundName reports whether the body is a walkable surface rather than
// an obstacle.
func isGroundName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "ground") || strings.Contains(lower, "floor")
}

func shapeLabel(s scene.Shape) string {
	if s.Kind == scene.ShapeUnknown && s.RawKind != "" {
		return s.RawKind
	}
	return s.Kind.String()
}

// projectShape maps a collision shape to its horizontal footprint under the
// node's world transform.
func projectShape(s scene.Shape, world scene.Transform) (Obstacle, bool) {
	switch s.Kind {
	case scene.ShapeBox:
		return Obstacle{
			Type:      ObstacleBox,
			CenterX:   world.Position.X,
			CenterZ:   world.Position.Z,
			HalfWidth: math.Abs(s.HalfExtents.X * world.Scale.X),
			HalfDepth: math.Abs(s.HalfExtents.Z * world.Scale.Z),
		}, true

	case scene.ShapeSphere, scene.ShapeCylinder, scene.ShapeCapsule:
		scale := math.Max(math.Abs(world.Scale.X), math.Abs(world.Scale.Z))
		return Obstacle{
			Type:    ObstacleCircle,
			CenterX: world.Position.X,
			CenterZ: world.Position.Z,
			Radius:  s.Radius * scale,
		}, true

	case scene.ShapeMesh:
		if len(s.Points) == 0 {
			return Obstacle{}, false
		}
		minX, maxX := math.Inf(1), math.Inf(-1)
		minZ, maxZ := math.Inf(1), math.Inf(-1)
		for _, p := range s.Points {
			x := p.X * world.Scale.X
			z := p.Z * world.Scale.Z
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
			minZ = math.Min(minZ, z)
			maxZ = math.Max(maxZ, z)
		}
		return Obstacle{
			Type:      ObstacleBox,
			CenterX:   world.Position.X + (minX+maxX)/2,
			CenterZ:   world.Position.Z + (minZ+maxZ)/2,
			HalfWidth: (maxX - minX) / 2,
			HalfDepth: (maxZ - minZ) / 2,
		}, true

	default:
		return Obstacle{}, false
	}
}
