package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/worldexport/internal/logger"
)

// Scene document errors.
var (
	ErrUnsupportedSceneVersion = errors.New("unsupported scene document version")
	ErrMissingRoot             = errors.New("scene document has no root node")
)

// DocVersion is the supported scene document version.
const DocVersion = 1

// On-disk scene document layout. The authoring side exports this JSON from
// the editor; the exporter never touches the engine's own scene files.
type sceneDoc struct {
	Version int      `json:"version"`
	Root    *nodeDoc `json:"root"`
}

type nodeDoc struct {
	Name      string     `json:"name"`
	Kind      string     `json:"kind"`
	Position  []float64  `json:"position,omitempty"`
	Rotation  []float64  `json:"rotation,omitempty"`
	Scale     []float64  `json:"scale,omitempty"`
	Static    bool       `json:"static,omitempty"`
	Collision bool       `json:"collision,omitempty"`
	Shapes    []shapeDoc `json:"shapes,omitempty"`
	Children  []*nodeDoc `json:"children,omitempty"`
}

type shapeDoc struct {
	Type        string      `json:"type"`
	HalfExtents []float64   `json:"half_extents,omitempty"`
	Radius      float64     `json:"radius,omitempty"`
	Height      float64     `json:"height,omitempty"`
	Points      [][]float64 `json:"points,omitempty"`
}

// Load parses a scene document from raw bytes into a node tree. Malformed
// shape entries are skipped with a warning; a malformed document is an
// error.
func Load(data []byte) (*Node, error) {
	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scene document: %w", err)
	}
	if doc.Version != DocVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSceneVersion, doc.Version)
	}
	if doc.Root == nil {
		return nil, ErrMissingRoot
	}
	return buildNode(doc.Root), nil
}

// LoadFile parses a scene document from disk.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Load(data)
}

func buildNode(d *nodeDoc) *Node {
	n := &Node{
		Name:             d.Name,
		Kind:             parseKind(d.Kind),
		Position:         vec3(d.Position, Vec3{}),
		Rotation:         vec3(d.Rotation, Vec3{}),
		Scale:            vec3(d.Scale, One),
		Static:           d.Static,
		CollisionEnabled: d.Collision,
	}

	for _, s := range d.Shapes {
		shape, err := buildShape(s)
		if err != nil {
			logger.Warn("skipping malformed shape",
				zap.String("node", d.Name), zap.String("type", s.Type), zap.Error(err))
			continue
		}
		n.Shapes = append(n.Shapes, shape)
	}

	for _, c := range d.Children {
		if c == nil {
			continue
		}
		n.Children = append(n.Children, buildNode(c))
	}

	return n
}

func parseKind(kind string) NodeKind {
	switch kind {
	case "body":
		return KindBody
	case "csg":
		return KindCSG
	case "marker":
		return KindMarker
	default:
		return KindGroup
	}
}

func buildShape(d shapeDoc) (Shape, error) {
	switch d.Type {
	case "box":
		if len(d.HalfExtents) != 3 {
			return Shape{}, fmt.Errorf("box shape needs 3 half extents, got %d", len(d.HalfExtents))
		}
		return Shape{Kind: ShapeBox, HalfExtents: vec3(d.HalfExtents, Vec3{})}, nil
	case "sphere":
		if d.Radius <= 0 {
			return Shape{}, fmt.Errorf("sphere shape needs positive radius, got %v", d.Radius)
		}
		return Shape{Kind: ShapeSphere, Radius: d.Radius}, nil
	case "cylinder":
		if d.Radius <= 0 {
			return Shape{}, fmt.Errorf("cylinder shape needs positive radius, got %v", d.Radius)
		}
		return Shape{Kind: ShapeCylinder, Radius: d.Radius, Height: d.Height}, nil
	case "capsule":
		if d.Radius <= 0 {
			return Shape{}, fmt.Errorf("capsule shape needs positive radius, got %v", d.Radius)
		}
		return Shape{Kind: ShapeCapsule, Radius: d.Radius, Height: d.Height}, nil
	case "concave_mesh", "convex_mesh":
		if len(d.Points) == 0 {
			return Shape{}, fmt.Errorf("mesh shape has no points")
		}
		points := make([]Vec3, 0, len(d.Points))
		for i, p := range d.Points {
			if len(p) != 3 {
				return Shape{}, fmt.Errorf("mesh point %d has %d components", i, len(p))
			}
			points = append(points, Vec3{p[0], p[1], p[2]})
		}
		return Shape{Kind: ShapeMesh, Points: points}, nil
	default:
		// Preserved so the extractor can log what it skipped.
		return Shape{Kind: ShapeUnknown, RawKind: d.Type}, nil
	}
}

func vec3(v []float64, fallback Vec3) Vec3 {
	if len(v) != 3 {
		return fallback
	}
	return Vec3{v[0], v[1], v[2]}
}
