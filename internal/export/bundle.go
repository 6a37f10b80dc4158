package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Aggregate artifact file names.
const (
	ObstaclesFile = "obstacles.json"
	SpawnsFile    = "spawn_points.json"
)

// Bundle accumulates per-zone world geometry, keyed by decimal zone id, and
// writes the aggregate artifacts the server loads at startup.
type Bundle struct {
	Obstacles map[string][]Obstacle
	Spawns    map[string][]SpawnPoint
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{
		Obstacles: make(map[string][]Obstacle),
		Spawns:    make(map[string][]SpawnPoint),
	}
}

// Add records one zone's extraction results.
func (b *Bundle) Add(zoneID int, obstacles []Obstacle, spawns []SpawnPoint) {
	key := strconv.Itoa(zoneID)
	b.Obstacles[key] = obstacles
	b.Spawns[key] = spawns
}

// Write writes obstacles.json and spawn_points.json into dir. A failure on
// one artifact does not prevent the attempt on the other; the first error
// is returned.
func (b *Bundle) Write(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	obstErr := writeJSON(filepath.Join(dir, ObstaclesFile), b.Obstacles)
	spawnErr := writeJSON(filepath.Join(dir, SpawnsFile), b.Spawns)

	if obstErr != nil {
		return obstErr
	}
	return spawnErr
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
