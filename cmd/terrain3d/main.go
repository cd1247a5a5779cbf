// Command terrain3d converts a DEM and a zone classification raster
// into a vertex-colored OBJ and a binary STL terrain model.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"terrain-gen/internal/config"
	"terrain-gen/internal/logger"
	"terrain-gen/internal/mesh"
	"terrain-gen/internal/raster"
	"terrain-gen/internal/terrain"
)

const Version = "1.0.0"

var (
	flagConfig     = flag.String("config", "", "Path to YAML config file")
	flagDEM        = flag.String("dem", "", "Input DEM raster (GeoTIFF or any GDAL format)")
	flagZonemap    = flag.String("zonemap", "", "Input zone classification raster")
	flagOBJ        = flag.String("obj", "", "Output vertex-colored OBJ path")
	flagSTL        = flag.String("stl", "", "Output binary STL path")
	flagMode       = flag.String("mode", "", "Coordinate mode: normalized or utm")
	flagColor      = flag.String("color", "", "Color mode: zones or gradient")
	flagZScale     = flag.Float64("zscale", 0, "Vertical exaggeration (0 = mode default)")
	flagDownsample = flag.Int("downsample", 0, "Sample stride >= 1 (1 = full resolution)")
	flagBase       = flag.Float64("base", 0, "Base thickness for a printable solid (0 = surface only)")
	flagNoCenter   = flag.Bool("no-center", false, "Keep absolute coordinates in utm mode")
	flagLogLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "terrain3d v%s\n", Version)
		fmt.Fprintf(flag.CommandLine.Output(), "Builds colored 3D terrain models from a DEM and a zonemap\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s -dem <dem.tif> -zonemap <zones.tif> [options]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("run failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// applyFlags overrides config values with flags the user actually set.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dem":
			cfg.Input.DEM = *flagDEM
		case "zonemap":
			cfg.Input.Zonemap = *flagZonemap
		case "obj":
			cfg.Output.OBJ = *flagOBJ
		case "stl":
			cfg.Output.STL = *flagSTL
		case "mode":
			cfg.Model.Mode = *flagMode
		case "color":
			cfg.Color.Mode = *flagColor
		case "zscale":
			cfg.Model.ZScale = *flagZScale
		case "downsample":
			cfg.Model.Downsample = *flagDownsample
		case "base":
			cfg.Model.BaseThickness = *flagBase
		case "no-center":
			cfg.Model.Center = !*flagNoCenter
		case "log-level":
			cfg.Logging.Level = *flagLogLevel
		}
	})
}

func run(cfg *config.Config, log *zap.Logger) error {
	dem, err := raster.Load(cfg.Input.DEM)
	if err != nil {
		return err
	}
	if cfg.Model.Downsample > 1 {
		dem = dem.Downsample(cfg.Model.Downsample)
		log.Info("downsampled DEM",
			zap.Int("stride", cfg.Model.Downsample),
			zap.Int("rows", dem.Rows), zap.Int("cols", dem.Cols))
	}
	stats := dem.Stats()
	log.Info("DEM loaded",
		zap.String("path", cfg.Input.DEM),
		zap.Int("rows", dem.Rows), zap.Int("cols", dem.Cols),
		zap.Float64("originX", dem.GeoTransform[0]),
		zap.Float64("originY", dem.GeoTransform[3]),
		zap.Float64("pixelW", dem.GeoTransform[1]),
		zap.Float64("pixelH", dem.GeoTransform[5]),
		zap.Float64("minElev", stats.Min),
		zap.Float64("maxElev", stats.Max),
		zap.Int("validSamples", stats.Valid))

	classes, colorizer, err := buildColorizer(cfg, dem, stats, log)
	if err != nil {
		return err
	}

	zScale := cfg.EffectiveZScale()
	var transformer terrain.Transformer
	if cfg.Model.Mode == config.ModeUTM {
		transformer = terrain.NewUTMTransformer(dem, stats, zScale, cfg.Model.Center)
	} else {
		transformer = terrain.NewNormalizedTransformer(dem, stats, zScale)
	}
	log.Info("transform configured",
		zap.String("mode", cfg.Model.Mode),
		zap.Float64("zScale", zScale),
		zap.Bool("center", cfg.Model.Center))

	m, err := mesh.NewBuilder(dem, classes, colorizer, transformer, cfg.Model.BaseThickness).Build()
	if err != nil {
		return err
	}
	log.Info("mesh built",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", len(m.Triangles)))
	if len(m.Triangles) == 0 {
		log.Warn("mesh is empty; no complete quads of valid samples")
	}

	if cfg.Output.OBJ != "" {
		if err := mesh.WriteOBJFile(cfg.Output.OBJ, m); err != nil {
			return err
		}
		log.Info("OBJ written", zap.String("path", cfg.Output.OBJ))
	}
	if cfg.Output.STL != "" {
		if err := mesh.WriteSTLFile(cfg.Output.STL, m); err != nil {
			return err
		}
		log.Info("STL written", zap.String("path", cfg.Output.STL))
	}
	return nil
}

// buildColorizer loads and aligns the zonemap when discrete coloring
// is requested, or derives the gradient bounds otherwise.
func buildColorizer(cfg *config.Config, dem *raster.Grid, stats raster.Stats, log *zap.Logger) (*terrain.ClassGrid, terrain.Colorizer, error) {
	switch cfg.Color.Mode {
	case config.ColorZones:
		zonemap, err := raster.Load(cfg.Input.Zonemap)
		if err != nil {
			return nil, nil, err
		}
		log.Info("zonemap loaded",
			zap.String("path", cfg.Input.Zonemap),
			zap.Int("rows", zonemap.Rows), zap.Int("cols", zonemap.Cols))

		classes, err := terrain.Align(dem, zonemap)
		if err != nil {
			return nil, nil, err
		}

		table := make(map[int]terrain.RGB, len(cfg.Color.Zones))
		for id, c := range cfg.Color.Zones {
			table[id] = terrain.RGBFromBytes(c[0], c[1], c[2])
		}
		var fallback *terrain.RGB
		if cfg.Color.DefaultZone != nil {
			c := terrain.RGBFromBytes(cfg.Color.DefaultZone[0], cfg.Color.DefaultZone[1], cfg.Color.DefaultZone[2])
			fallback = &c
		}
		return classes, terrain.NewZoneColorizer(classes, table, fallback), nil

	case config.ColorGradient:
		low := terrain.RGBFromBytes(cfg.Color.Gradient.Low[0], cfg.Color.Gradient.Low[1], cfg.Color.Gradient.Low[2])
		high := terrain.RGBFromBytes(cfg.Color.Gradient.High[0], cfg.Color.Gradient.High[1], cfg.Color.Gradient.High[2])
		min, max := stats.Min, stats.Max
		if cfg.Color.Gradient.Min != nil {
			min = *cfg.Color.Gradient.Min
		}
		if cfg.Color.Gradient.Max != nil {
			max = *cfg.Color.Gradient.Max
		}
		return nil, terrain.NewGradientColorizer(low, high, min, max), nil
	}
	return nil, nil, fmt.Errorf("unknown color mode %q", cfg.Color.Mode)
}
