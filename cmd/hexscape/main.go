package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/hexscape/internal/assets"
	"github.com/VoidMesh/hexscape/internal/config"
	"github.com/VoidMesh/hexscape/internal/export"
	"github.com/VoidMesh/hexscape/internal/hexgrid"
	"github.com/VoidMesh/hexscape/internal/logging"
	"github.com/VoidMesh/hexscape/internal/noise"
	"github.com/VoidMesh/hexscape/internal/preview"
	"github.com/VoidMesh/hexscape/internal/scene"
	"github.com/VoidMesh/hexscape/internal/terrain"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	outDir := flag.String("out", "", "Output directory (overrides OUTPUT_DIR)")
	seed := flag.Int64("seed", 0, "Noise seed, 0 picks one from the clock (overrides TERRAIN_SEED)")
	noiseKind := flag.String("noise", "", "Noise kind: simplex or perlin (overrides TERRAIN_NOISE)")
	showPreview := flag.Bool("preview", false, "Print a coloured map of the terrain to stdout")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *seed != 0 {
		cfg.Terrain.Seed = *seed
	}
	if *noiseKind != "" {
		cfg.Terrain.Noise = *noiseKind
	}

	logging.Configure(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger := logging.GetLogger()
	logger.Debug("Configuration loaded", "assets_dir", cfg.Assets.Dir, "out_dir", cfg.Output.Dir, "noise", cfg.Terrain.Noise)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var previewOut io.Writer
	if *showPreview {
		previewOut = os.Stdout
	}

	manifest, err := run(ctx, cfg, logger, previewOut)
	if err != nil {
		logger.Fatal("Failed to build scene", "error", err)
	}
	logger.Info("Scene written", "dir", cfg.Output.Dir, "run_id", manifest.RunID, "seed", manifest.Seed, "files", len(manifest.Files))
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

// run loads assets, generates the terrain, assembles the scene and exports
// it. Asset loading finishes before generation starts. A non-nil previewOut
// receives a terminal map of the generated tiles.
func run(ctx context.Context, cfg *config.Config, logger *log.Logger, previewOut io.Writer) (*export.Manifest, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	kind, err := noise.ParseKind(cfg.Terrain.Noise)
	if err != nil {
		return nil, err
	}
	seed := cfg.Terrain.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		logger.Debug("Picked seed from clock", "seed", seed)
	}

	logger.Debug("Loading assets", "dir", cfg.Assets.Dir, "timeout", cfg.Assets.LoadTimeout)
	loadCtx, cancel := context.WithTimeout(ctx, cfg.Assets.LoadTimeout)
	defer cancel()

	manifest := assets.DefaultManifest()
	manifest.Environment = cfg.Assets.Environment
	bundle, err := assets.NewLoader(os.DirFS(cfg.Assets.Dir), manifest, logger).Load(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}

	gen, err := noise.New(kind, seed)
	if err != nil {
		return nil, err
	}
	opts, err := terrainOptions(cfg.Terrain, gen)
	if err != nil {
		return nil, err
	}
	result, err := terrain.NewGenerator(opts, logger).Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate terrain: %w", err)
	}
	if previewOut != nil {
		if _, err := io.WriteString(previewOut, preview.Render(result)); err != nil {
			logger.Warn("Failed to write preview", "error", err)
		}
	}

	s, err := scene.Build(bundle, result, scene.Options{
		MaxHeight: cfg.Terrain.MaxHeight,
		Seed:      seed,
		Noise:     string(kind),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble scene: %w", err)
	}

	return export.NewExporter(cfg.Output.Dir, textureBase(cfg.Output.Dir, cfg.Assets.Dir), logger).Export(ctx, s)
}

func terrainOptions(t config.TerrainConfig, gen noise.Generator) (terrain.Options, error) {
	thresholds, err := terrain.NewThresholds(t.MaxHeight, t.BandFractions)
	if err != nil {
		return terrain.Options{}, err
	}
	opts := terrain.DefaultOptions(gen)
	opts.Grid = hexgrid.Grid{MinCol: t.MinCol, MaxCol: t.MaxCol, MinRow: t.MinRow, MaxRow: t.MaxRow}
	opts.Radius = t.Radius
	opts.Scale = t.Scale
	opts.Exponent = t.Exponent
	opts.MaxHeight = t.MaxHeight
	opts.Thresholds = thresholds
	return opts, nil
}

// textureBase returns the asset dir relative to the output dir so exported
// files keep working when both move together.
func textureBase(outDir, assetsDir string) string {
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return assetsDir
	}
	absAssets, err := filepath.Abs(assetsDir)
	if err != nil {
		return assetsDir
	}
	rel, err := filepath.Rel(absOut, absAssets)
	if err != nil {
		return absAssets
	}
	return filepath.ToSlash(rel)
}
