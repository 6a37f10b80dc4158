// worldexport is the offline terrain and world-data export tool. It bakes
// procedural height fields into region tiles and heightmap artifacts, and
// converts authored zone scenes into the obstacle and spawn-point bundles
// the authoritative server loads at startup.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/worldexport/internal/config"
	"github.com/Faultbox/worldexport/internal/export"
	"github.com/Faultbox/worldexport/internal/heightmap"
	"github.com/Faultbox/worldexport/internal/logger"
	"github.com/Faultbox/worldexport/internal/region"
	"github.com/Faultbox/worldexport/internal/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	// Flags come after the subcommand.
	os.Args = append(os.Args[:1], os.Args[2:]...)
	config.ParseFlags()

	switch command {
	case "export":
		cmdExport()
	case "generate", "gen":
		cmdGenerate()
	case "info":
		cmdInfo()
	case "empires":
		cmdEmpires()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`worldexport - offline terrain and world-data export tool

Usage:
  worldexport <command> [options]

Commands:
  export     Process all configured zones: heightmaps, obstacles, spawn points
  generate   Bake procedural terrain tiles for zones marked generate
  info       Summarize exported artifacts or a tile directory
  empires    List known empire terrain profiles

Options:
  -config <path>   Config file (default: ./worldexport.yaml)
  -out <dir>       Output directory override
  -tiles <dir>     Tile root directory override
  -scenes <dir>    Scene directory override
  -seed <n>        Noise seed override for all empires
  -debug           Enable debug logging

Examples:
  worldexport generate -config zones.yaml
  worldexport export -out ./dist
  worldexport info ./dist/capital_heightmap.json
  worldexport info ./tiles/capital`)
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	return cfg
}

func cmdExport() {
	cfg := loadConfig()
	defer logger.Sync()

	if len(cfg.Zones) == 0 {
		logger.Error("no zones configured")
		os.Exit(1)
	}

	logger.Info("starting export", zap.Int("zones", len(cfg.Zones)), zap.String("out", cfg.Paths.Output))

	if err := export.NewPipeline(cfg).Run(); err != nil {
		logger.Error("export finished with errors", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("export complete")
}

func cmdGenerate() {
	cfg := loadConfig()
	defer logger.Sync()

	if err := export.NewPipeline(cfg).Generate(); err != nil {
		logger.Error("generation finished with errors", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("generation complete")
}

func cmdEmpires() {
	names := terrain.Profiles()
	for _, name := range names {
		fmt.Println(name)
	}
}

// cmdInfo inspects either a heightmap metadata file or a tile directory.
func cmdInfo() {
	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: worldexport info <heightmap.json | tile-dir>")
		os.Exit(1)
	}
	target := args[0]

	st, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if st.IsDir() {
		infoTileDir(target)
		return
	}
	infoHeightmap(target)
}

func infoHeightmap(path string) {
	meta, err := heightmap.ReadMeta(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Heightmap: %s\n", path)
	fmt.Printf("Version:   %d\n", meta.Version)
	fmt.Printf("Grid:      %dx%d\n", meta.Width, meta.Height)
	b := meta.Bounds()
	fmt.Printf("Bounds:    x [%.1f, %.1f]  z [%.1f, %.1f]\n", b.MinX, b.MaxX, b.MinZ, b.MaxZ)
	fmt.Printf("Size:      %.1f world units\n", meta.TerrainSize)

	binPath := strings.TrimSuffix(path, heightmap.MetaSuffix) + heightmap.BinSuffix
	if buf, err := heightmap.ReadBin(binPath, meta.Width*meta.Height); err == nil {
		min, max := buf[0], buf[0]
		for _, h := range buf {
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
		fmt.Printf("Elevation: %.2f .. %.2f\n", min, max)
	} else {
		fmt.Printf("Buffer:    unreadable (%v)\n", err)
	}
}

func infoTileDir(dir string) {
	coords, err := region.LocateTiles(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Tile directory: %s\n", dir)
	fmt.Printf("Tiles:          %d\n", len(coords))

	first, err := region.ParseTileFile(filepath.Join(dir, region.CoordName(coords[0])+region.TileExt))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", region.CoordName(coords[0]), err)
		os.Exit(1)
	}
	fmt.Printf("Region size:    %.0f\n", first.RegionSize)
	fmt.Printf("Resolution:     %d\n", first.Resolution)

	if b, err := region.Bounds(coords, first.RegionSize); err == nil {
		fmt.Printf("World bounds:   x [%.0f, %.0f]  z [%.0f, %.0f]\n", b.MinX, b.MaxX, b.MinZ, b.MaxZ)
	}
}
