package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagOutput = flag.String("out", "", "Output directory for exported artifacts")
	flagTiles  = flag.String("tiles", "", "Root directory of region tile data")
	flagScenes = flag.String("scenes", "", "Directory of authored scene documents")
	flagSeed   = flag.Int64("seed", 0, "Override noise seed for all empires")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOutput != "" {
		cfg.Paths.Output = *flagOutput
	}
	if *flagTiles != "" {
		cfg.Paths.Tiles = *flagTiles
	}
	if *flagScenes != "" {
		cfg.Paths.Scenes = *flagScenes
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
}
