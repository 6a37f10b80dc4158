package export

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/worldexport/internal/config"
	"github.com/Faultbox/worldexport/internal/geom"
	"github.com/Faultbox/worldexport/internal/heightmap"
	"github.com/Faultbox/worldexport/internal/logger"
	"github.com/Faultbox/worldexport/internal/region"
	"github.com/Faultbox/worldexport/internal/scene"
	"github.com/Faultbox/worldexport/internal/terrain"
)

// Pipeline runs the offline export over all configured zones. Zones are
// processed sequentially and independently: a failure in one zone is logged
// and aggregated, never fatal to the run.
type Pipeline struct {
	cfg *config.Config
}

// NewPipeline builds a pipeline over the given configuration.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run processes every configured zone and writes the aggregate bundles.
// The returned error collects all per-zone and per-artifact failures; a nil
// return means a fully clean run.
func (p *Pipeline) Run() error {
	bundle := NewBundle()
	var errs error

	for _, zone := range p.cfg.Zones {
		log := logger.Log.With(zap.Int("zone", zone.ID), zap.String("name", zone.Name))

		// Heightmap export and scene extraction read different inputs;
		// one failing must not stop the other.
		if err := p.exportHeightmap(zone); err != nil {
			log.Error("heightmap export failed, skipping", zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("zone %s heightmap: %w", zone.Name, err))
		}

		obstacles, spawns, err := p.extractZone(zone)
		if err != nil {
			log.Error("scene extraction failed, skipping zone", zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("zone %s scene: %w", zone.Name, err))
			continue
		}
		bundle.Add(zone.ID, obstacles, spawns)

		log.Info("zone processed",
			zap.Int("obstacles", len(obstacles)),
			zap.Int("spawn_points", len(spawns)))
	}

	if err := bundle.Write(p.cfg.Paths.Output); err != nil {
		logger.Error("writing aggregate bundles failed", zap.Error(err))
		errs = multierr.Append(errs, err)
	}

	return errs
}

// Generate synthesizes terrain tiles and heightmaps for every zone marked
// generate, without touching scene data.
func (p *Pipeline) Generate() error {
	var errs error
	for _, zone := range p.cfg.Zones {
		if !zone.Generate {
			continue
		}
		if err := p.exportHeightmap(zone); err != nil {
			logger.Error("terrain generation failed",
				zap.String("name", zone.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("zone %s: %w", zone.Name, err))
		}
	}
	return errs
}

// exportHeightmap produces the per-zone heightmap artifact pair, either by
// generating fresh terrain (writing region tiles along the way) or by
// sampling previously generated tiles.
func (p *Pipeline) exportHeightmap(zone config.ZoneConfig) error {
	var src heightmap.Source
	var bounds geom.Bounds

	if zone.Generate {
		ep, err := terrain.ProfileFor(zone.Empire)
		if err != nil {
			return err
		}
		bounds, err = rectBounds(zone.Rect, p.cfg.World.RegionSize)
		if err != nil {
			return err
		}
		profile := terrain.NewProfile(ep, bounds, p.cfg.World.Seed)
		if err := p.writeTiles(profile, zone); err != nil {
			return err
		}
		src = profile
	} else {
		ds, err := region.LoadDataset(p.tileDir(zone))
		if err != nil {
			return err
		}
		bounds = ds.Bounds()
		src = ds
	}

	resolution := heightmap.ChooseResolution(bounds)
	asset := heightmap.Sample(src, bounds, resolution)

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base := filepath.Join(p.cfg.Paths.Output, zone.Name)
	if err := heightmap.Export(asset, base); err != nil {
		return err
	}

	if asset.NaNCount > 0 {
		logger.Warn("samples outside tile coverage coerced to 0",
			zap.String("name", zone.Name), zap.Int("count", asset.NaNCount))
	}
	logger.Info("heightmap exported",
		zap.String("name", zone.Name),
		zap.Int("resolution", resolution),
		zap.String("empire", zone.Empire))

	return nil
}

// writeTiles bakes the profile into region tile files so later export runs
// can load the zone without regenerating.
func (p *Pipeline) writeTiles(profile *terrain.Profile, zone config.ZoneConfig) error {
	dir := p.tileDir(zone)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating tile directory: %w", err)
	}

	size := p.cfg.World.RegionSize
	resolution := p.cfg.World.TileResolution
	step := size / float64(resolution)

	for rz := zone.Rect.MinRZ; rz <= zone.Rect.MaxRZ; rz++ {
		for rx := zone.Rect.MinRX; rx <= zone.Rect.MaxRX; rx++ {
			tile := &region.Tile{
				RegionSize: size,
				Resolution: resolution,
				Heights:    make([]float32, resolution*resolution),
			}
			originX := float64(rx) * size
			originZ := float64(rz) * size
			for iz := 0; iz < resolution; iz++ {
				z := originZ + (float64(iz)+0.5)*step
				for ix := 0; ix < resolution; ix++ {
					x := originX + (float64(ix)+0.5)*step
					tile.Heights[tile.HeightIndex(ix, iz)] = float32(profile.HeightAt(x, z))
				}
			}

			c := region.Coord{RX: rx, RZ: rz}
			path := filepath.Join(dir, region.CoordName(c)+region.TileExt)
			if err := region.WriteTileFile(tile, path); err != nil {
				return fmt.Errorf("tile %s: %w", region.CoordName(c), err)
			}
		}
	}

	return nil
}

// extractZone loads the zone's authored scene and extracts world geometry.
// The scene tree is only referenced inside this call, so each zone's scene
// is released before the next zone is processed.
func (p *Pipeline) extractZone(zone config.ZoneConfig) ([]Obstacle, []SpawnPoint, error) {
	root, err := scene.LoadFile(filepath.Join(p.cfg.Paths.Scenes, zone.Scene))
	if err != nil {
		return nil, nil, err
	}

	obstacles, skipped := ExtractObstacles(root)
	for _, s := range skipped {
		logger.Warn("skipping unsupported collision shape",
			zap.String("name", zone.Name), zap.String("shape", s))
	}
	filtered := FilterObstacles(obstacles)
	spawns := ExtractSpawnPoints(root)

	return filtered, spawns, nil
}

// tileDir resolves a zone's tile directory; the zone name is the default
// subdirectory.
func (p *Pipeline) tileDir(zone config.ZoneConfig) string {
	sub := zone.Tiles
	if sub == "" {
		sub = zone.Name
	}
	return filepath.Join(p.cfg.Paths.Tiles, sub)
}

// rectBounds converts an inclusive tile range to world bounds.
func rectBounds(r config.TileRect, regionSize float64) (geom.Bounds, error) {
	if r.MaxRX < r.MinRX || r.MaxRZ < r.MinRZ {
		return geom.Bounds{}, fmt.Errorf("invalid tile rect: %+v", r)
	}
	return geom.Bounds{
		MinX: float64(r.MinRX) * regionSize,
		MaxX: float64(r.MaxRX+1) * regionSize,
		MinZ: float64(r.MinRZ) * regionSize,
		MaxZ: float64(r.MaxRZ+1) * regionSize,
	}, nil
}
