// Package config handles export pipeline configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Paths   PathsConfig   `yaml:"paths"`
	World   WorldConfig   `yaml:"world"`
	Zones   []ZoneConfig  `yaml:"zones"`
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig holds input and output directories.
type PathsConfig struct {
	Output string `yaml:"output"` // Directory for exported artifacts
	Tiles  string `yaml:"tiles"`  // Root directory holding per-zone tile subdirs
	Scenes string `yaml:"scenes"` // Directory holding authored scene documents
}

// WorldConfig holds world-wide terrain settings.
type WorldConfig struct {
	// RegionSize is the edge length of one region tile in world units.
	// All tiles of one zone share this size.
	RegionSize float64 `yaml:"region_size"`
	// TileResolution is the per-axis sample count of a generated tile grid.
	TileResolution int `yaml:"tile_resolution"`
	// Seed overrides the per-empire noise seeds when non-zero. Leave zero
	// for reproducible output across machines.
	Seed int64 `yaml:"seed"`
}

// TileRect is an inclusive range of region tile coordinates.
type TileRect struct {
	MinRX int `yaml:"min_rx"`
	MinRZ int `yaml:"min_rz"`
	MaxRX int `yaml:"max_rx"`
	MaxRZ int `yaml:"max_rz"`
}

// ZoneConfig describes one zone to process.
type ZoneConfig struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Empire string `yaml:"empire"`
	// Scene is the authored scene document, relative to paths.scenes.
	Scene string `yaml:"scene"`
	// Tiles is the tile subdirectory, relative to paths.tiles.
	Tiles string `yaml:"tiles"`
	// Generate selects procedural generation instead of loading tiles.
	Generate bool `yaml:"generate"`
	// Rect is the tile range to generate when Generate is set.
	Rect TileRect `yaml:"rect"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Output: "export",
			Tiles:  "tiles",
			Scenes: "scenes",
		},
		World: WorldConfig{
			RegionSize:     256,
			TileResolution: 64,
			Seed:           0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
