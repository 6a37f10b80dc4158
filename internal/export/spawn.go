package export

import (
	"strings"

	"github.com/Faultbox/worldexport/internal/scene"
)

// spawnMarkerName is the authoring convention for spawn markers. A marker
// named exactly this is the zone's default spawn.
const spawnMarkerName = "SpawnPoint"

// SpawnPoint is a named spawn position. Within one zone's list exactly one
// entry is the default.
type SpawnPoint struct {
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	IsDefault bool    `json:"is_default"`
}

// DefaultSpawnPoint is the synthetic fallback for zones whose scenes carry
// no spawn markers, slightly elevated so the character drops onto terrain.
func DefaultSpawnPoint() SpawnPoint {
	return SpawnPoint{Name: "default", X: 0, Y: 1, Z: 0, IsDefault: true}
}

// ExtractSpawnPoints collects spawn markers from the scene in traversal
// order. Post-conditions: the result is never empty and exactly one entry
// has IsDefault set.
func ExtractSpawnPoints(root *scene.Node) []SpawnPoint {
	var spawns []SpawnPoint

	scene.Walk(root, func(n *scene.Node, world scene.Transform) {
		if n.Kind != scene.KindMarker || !isSpawnMarker(n.Name) {
			return
		}
		spawns = append(spawns, SpawnPoint{
			Name:      spawnName(n.Name),
			X:         world.Position.X,
			Y:         world.Position.Y,
			Z:         world.Position.Z,
			IsDefault: n.Name == spawnMarkerName,
		})
	})

	if len(spawns) == 0 {
		return []SpawnPoint{DefaultSpawnPoint()}
	}

	// Exactly one default: keep the first, clear the rest, promote the
	// first entry when the scene declared none.
	defaultSeen := false
	for i := range spawns {
		if spawns[i].IsDefault {
			if defaultSeen {
				spawns[i].IsDefault = false
			}
			defaultSeen = true
		}
	}
	if !defaultSeen {
		spawns[0].IsDefault = true
	}

	return spawns
}

// isSpawnMarker matches the two authoring conventions: the exact
// "SpawnPoint" substring, or "spawn_point" case-insensitively.
func isSpawnMarker(name string) bool {
	if strings.Contains(name, spawnMarkerName) {
		return true
	}
	return strings.Contains(strings.ToLower(name), "spawn_point")
}

// spawnName derives the exported name by stripping the marker convention
// and trimming whitespace; an empty result becomes "default".
func spawnName(nodeName string) string {
	name := strings.TrimSpace(strings.ReplaceAll(nodeName, spawnMarkerName, ""))
	if name == "" {
		return "default"
	}
	return name
}
