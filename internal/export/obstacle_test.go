package export

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/Faultbox/worldexport/internal/scene"
)

func staticBody(name string, pos, scale scene.Vec3, shapes ...scene.Shape) *scene.Node {
	return &scene.Node{
		Name:     name,
		Kind:     scene.KindBody,
		Position: pos,
		Scale:    scale,
		Static:   true,
		Shapes:   shapes,
	}
}

func sceneRoot(children ...*scene.Node) *scene.Node {
	return &scene.Node{
		Name:     "root",
		Kind:     scene.KindGroup,
		Scale:    scene.One,
		Children: children,
	}
}

func TestExtractBoxObstacle(t *testing.T) {
	root := sceneRoot(
		staticBody("Wall", scene.Vec3{X: 10, Z: -5}, scene.Vec3{X: 2, Y: 1, Z: 3},
			scene.Shape{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 1, Y: 2, Z: 0.5}}),
	)

	obstacles, skipped := ExtractObstacles(root)
	if len(skipped) != 0 {
		t.Errorf("unexpected skips: %v", skipped)
	}
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obstacles))
	}

	o := obstacles[0]
	if o.Type != ObstacleBox {
		t.Fatalf("expected box, got %s", o.Type)
	}
	if o.CenterX != 10 || o.CenterZ != -5 {
		t.Errorf("unexpected center: (%v,%v)", o.CenterX, o.CenterZ)
	}
	// Half extents scaled by world scale on each axis.
	if o.HalfWidth != 2 || o.HalfDepth != 1.5 {
		t.Errorf("unexpected extents: (%v,%v)", o.HalfWidth, o.HalfDepth)
	}
}

func TestExtractCircleUsesLargerAxis(t *testing.T) {
	root := sceneRoot(
		staticBody("Pillar", scene.Vec3{X: 1, Z: 2}, scene.Vec3{X: 2, Y: 1, Z: 4},
			scene.Shape{Kind: scene.ShapeCylinder, Radius: 1.5, Height: 3}),
	)

	obstacles, _ := ExtractObstacles(root)
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obstacles))
	}

	o := obstacles[0]
	if o.Type != ObstacleCircle {
		t.Fatalf("expected circle, got %s", o.Type)
	}
	// Radius scaled by the larger of x/z scale.
	if o.Radius != 6 {
		t.Errorf("expected radius 6, got %v", o.Radius)
	}
}

func TestExtractSphereAndCapsuleProjectToCircles(t *testing.T) {
	root := sceneRoot(
		staticBody("Boulder", scene.Vec3{}, scene.One,
			scene.Shape{Kind: scene.ShapeSphere, Radius: 2}),
		staticBody("Statue", scene.Vec3{}, scene.One,
			scene.Shape{Kind: scene.ShapeCapsule, Radius: 0.8, Height: 2}),
	)

	obstacles, _ := ExtractObstacles(root)
	if len(obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(obstacles))
	}
	for _, o := range obstacles {
		if o.Type != ObstacleCircle {
			t.Errorf("expected circle, got %s", o.Type)
		}
	}
}

func TestExtractMeshAABB(t *testing.T) {
	root := sceneRoot(
		staticBody("Rocks", scene.Vec3{X: 100, Z: 200}, scene.Vec3{X: 2, Y: 1, Z: 1},
			scene.Shape{Kind: scene.ShapeMesh, Points: []scene.Vec3{
				{X: -1, Y: 0, Z: -2},
				{X: 3, Y: 5, Z: 4},
				{X: 1, Y: 1, Z: 0},
			}}),
	)

	obstacles, _ := ExtractObstacles(root)
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obstacles))
	}

	o := obstacles[0]
	// Scaled x range [-2,6], z range [-2,4]; centered at position plus
	// the AABB midpoint.
	if o.CenterX != 102 || o.CenterZ != 201 {
		t.Errorf("unexpected center: (%v,%v)", o.CenterX, o.CenterZ)
	}
	if o.HalfWidth != 4 || o.HalfDepth != 3 {
		t.Errorf("unexpected extents: (%v,%v)", o.HalfWidth, o.HalfDepth)
	}
}

func TestExtractSkipsGroundAndFloor(t *testing.T) {
	root := sceneRoot(
		staticBody("Ground", scene.Vec3{}, scene.One,
			scene.Shape{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 500, Y: 1, Z: 500}}),
		staticBody("tavern_Floor_01", scene.Vec3{}, scene.One,
			scene.Shape{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 5, Y: 1, Z: 5}}),
		staticBody("Wall", scene.Vec3{}, scene.One,
			scene.Shape{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 2, Y: 1, Z: 2}}),
	)

	obstacles, _ := ExtractObstacles(root)
	if len(obstacles) != 1 {
		t.Fatalf("expected only the wall, got %d obstacles", len(obstacles))
	}
}

func TestExtractSkipsNonStaticBodies(t *testing.T) {
	movable := &scene.Node{
		Name:   "Cart",
		Kind:   scene.KindBody,
		Scale:  scene.One,
		Static: false,
		Shapes: []scene.Shape{{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 1, Y: 1, Z: 1}}},
	}

	obstacles, _ := ExtractObstacles(sceneRoot(movable))
	if len(obstacles) != 0 {
		t.Errorf("expected no obstacles from non-static body, got %d", len(obstacles))
	}
}

func TestExtractCSGRespectsCollisionFlag(t *testing.T) {
	withCollision := &scene.Node{
		Name:             "Fountain",
		Kind:             scene.KindCSG,
		Scale:            scene.One,
		CollisionEnabled: true,
		Shapes:           []scene.Shape{{Kind: scene.ShapeCylinder, Radius: 2}},
	}
	withoutCollision := &scene.Node{
		Name:             "DecorArch",
		Kind:             scene.KindCSG,
		Scale:            scene.One,
		CollisionEnabled: false,
		Shapes:           []scene.Shape{{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 1, Y: 1, Z: 1}}},
	}

	obstacles, _ := ExtractObstacles(sceneRoot(withCollision, withoutCollision))
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obstacles))
	}
	if obstacles[0].Type != ObstacleCircle {
		t.Errorf("expected the fountain circle, got %s", obstacles[0].Type)
	}
}

func TestExtractUnsupportedShapeSkipped(t *testing.T) {
	root := sceneRoot(
		staticBody("Odd", scene.Vec3{}, scene.One,
			scene.Shape{Kind: scene.ShapeUnknown, RawKind: "heightfield"},
			scene.Shape{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 1, Y: 1, Z: 1}}),
	)

	obstacles, skipped := ExtractObstacles(root)
	if len(obstacles) != 1 {
		t.Errorf("expected 1 obstacle, got %d", len(obstacles))
	}
	if len(skipped) != 1 || skipped[0] != "Odd/heightfield" {
		t.Errorf("unexpected skips: %v", skipped)
	}
}

func TestExtractNestedTransforms(t *testing.T) {
	root := &scene.Node{
		Name:     "root",
		Kind:     scene.KindGroup,
		Position: scene.Vec3{X: 100},
		Scale:    scene.Vec3{X: 2, Y: 2, Z: 2},
		Children: []*scene.Node{
			staticBody("Wall", scene.Vec3{X: 5}, scene.One,
				scene.Shape{Kind: scene.ShapeBox, HalfExtents: scene.Vec3{X: 1, Y: 1, Z: 1}}),
		},
	}

	obstacles, _ := ExtractObstacles(root)
	if len(obstacles) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(obstacles))
	}
	o := obstacles[0]
	// Local x=5 scaled by parent scale 2, offset by parent position 100.
	if o.CenterX != 110 {
		t.Errorf("expected center x 110, got %v", o.CenterX)
	}
	if o.HalfWidth != 2 {
		t.Errorf("expected half width 2, got %v", o.HalfWidth)
	}
}

func TestObstacleJSONSchemas(t *testing.T) {
	box := Obstacle{Type: ObstacleBox, CenterX: 1, CenterZ: 2, HalfWidth: 3, HalfDepth: 0}
	data, err := json.Marshal(box)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	// A zero half extent must still be serialized for boxes.
	if _, ok := raw["half_depth"]; !ok {
		t.Error("box JSON missing half_depth")
	}
	if _, ok := raw["radius"]; ok {
		t.Error("box JSON should not carry radius")
	}

	circle := Obstacle{Type: ObstacleCircle, CenterX: 1, CenterZ: 2, Radius: 4}
	data, err = json.Marshal(circle)
	if err != nil {
		t.Fatal(err)
	}
	raw = map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["half_width"]; ok {
		t.Error("circle JSON should not carry half_width")
	}
	if r, ok := raw["radius"].(float64); !ok || math.Abs(r-4) > 1e-12 {
		t.Errorf("circle JSON radius = %v", raw["radius"])
	}
}
