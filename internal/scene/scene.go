// Package scene holds the engine-independent description of an authored
// zone: a tree of typed nodes with transforms and collision-shape payloads.
// The extraction code walks this tree instead of a live engine scene graph.
package scene

// NodeKind classifies a scene node.
type NodeKind int

// Node kinds.
const (
	KindGroup NodeKind = iota // transform-only container
	KindBody                  // collision body with attached shapes
	KindCSG                   // solid-geometry node
	KindMarker                // named position marker (spawn points etc.)
)

// String returns a human-readable node kind name.
func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindBody:
		return "Body"
	case KindCSG:
		return "CSG"
	case KindMarker:
		return "Marker"
	default:
		return "Unknown"
	}
}

// ShapeKind classifies a collision shape.
type ShapeKind int

// Shape kinds. Cylinder, sphere and capsule all project to circles;
// concave and convex meshes are unified as point clouds.
const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCylinder
	ShapeCapsule
	ShapeMesh
	ShapeUnknown
)

// String returns a human-readable shape kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "Box"
	case ShapeSphere:
		return "Sphere"
	case ShapeCylinder:
		return "Cylinder"
	case ShapeCapsule:
		return "Capsule"
	case ShapeMesh:
		return "Mesh"
	default:
		return "Unknown"
	}
}

// Vec3 is a 3D vector.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Mul returns the componentwise product.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Add returns the componentwise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// One is the identity scale.
var One = Vec3{1, 1, 1}

// Shape is a collision shape payload attached to a body or CSG node.
type Shape struct {
	Kind        ShapeKind
	HalfExtents Vec3   // box
	Radius      float64 // sphere, cylinder, capsule
	Height      float64 // cylinder, capsule
	Points      []Vec3  // mesh vertices / convex points
	// RawKind preserves the authored type string for unsupported shapes.
	RawKind string
}

// Node is one element of the authored scene tree.
type Node struct {
	Name     string
	Kind     NodeKind
	Position Vec3
	Rotation Vec3 // radians; carried through but never applied to footprints
	Scale    Vec3
	// Static marks a body as non-moving; only static bodies become
	// obstacles.
	Static bool
	// CollisionEnabled applies to CSG nodes.
	CollisionEnabled bool
	Shapes           []Shape
	Children         []*Node
}

// Transform is a node's accumulated world translation and scale. Rotation is
// deliberately not composed: footprint extraction treats obstacles as
// axis-aligned.
type Transform struct {
	Position Vec3
	Scale    Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Scale: One}
}

// Child composes a child node's local transform onto the parent transform.
func (t Transform) Child(n *Node) Transform {
	return Transform{
		Position: t.Position.Add(n.Position.Mul(t.Scale)),
		Scale:    t.Scale.Mul(n.Scale),
	}
}

// Walk visits every node depth-first in document order, passing each node's
// world transform.
func Walk(root *Node, visit func(n *Node, world Transform)) {
	if root == nil {
		return
	}
	walk(root, Identity().Child(root), visit)
}

func walk(n *Node, world Transform, visit func(*Node, Transform)) {
	visit(n, world)
	for _, child := range n.Children {
		walk(child, world.Child(child), visit)
	}
}
