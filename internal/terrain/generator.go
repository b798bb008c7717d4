// Package terrain turns a noise field into five banded hex-tile meshes.
package terrain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/hexscape/internal/geometry"
	"github.com/VoidMesh/hexscape/internal/hexgrid"
	"github.com/VoidMesh/hexscape/internal/logging"
	"github.com/VoidMesh/hexscape/internal/noise"
)

// ErrInvalidOptions is returned when generation options cannot produce terrain.
var ErrInvalidOptions = errors.New("invalid terrain options")

// Options configures a Generator.
type Options struct {
	Grid       hexgrid.Grid
	Spacing    hexgrid.Spacing
	Radius     float64
	TileRadius float64
	Scale      float64
	Exponent   float64
	MaxHeight  float64
	Thresholds Thresholds
	Noise      noise.Generator
}

// DefaultOptions returns the stock island: a 30x30 grid trimmed to radius 16,
// heights up to 10.
func DefaultOptions(gen noise.Generator) Options {
	return Options{
		Grid:       hexgrid.Grid{MinCol: -15, MaxCol: 14, MinRow: -15, MaxRow: 14},
		Spacing:    hexgrid.DefaultSpacing,
		Radius:     16,
		TileRadius: 1,
		Scale:      0.1,
		Exponent:   1.5,
		MaxHeight:  10,
		Thresholds: DefaultThresholds(10),
		Noise:      gen,
	}
}

// Validate reports the first option that makes generation impossible.
func (o Options) Validate() error {
	switch {
	case o.Noise == nil:
		return fmt.Errorf("%w: noise generator is nil", ErrInvalidOptions)
	case o.Grid.Empty():
		return fmt.Errorf("%w: grid is empty", ErrInvalidOptions)
	case o.MaxHeight <= 0:
		return fmt.Errorf("%w: max height must be positive", ErrInvalidOptions)
	case o.TileRadius <= 0:
		return fmt.Errorf("%w: tile radius must be positive", ErrInvalidOptions)
	}
	return o.Thresholds.Validate()
}

// TileSample records what happened to one grid tile.
type TileSample struct {
	hexgrid.Tile
	Position mgl64.Vec2 `json:"position"`
	Height   float64    `json:"height"`
	Band     Band       `json:"band"`
	Trimmed  bool       `json:"trimmed,omitempty"`
	Dropped  bool       `json:"dropped,omitempty"`
}

// Stats summarises a generation run.
type Stats struct {
	Visited   int            `json:"visited"`
	Trimmed   int            `json:"trimmed"`
	Dropped   int            `json:"dropped"`
	PerBand   [BandCount]int `json:"per_band"`
	MinHeight float64        `json:"min_height"`
	MaxHeight float64        `json:"max_height"`
	Duration  time.Duration  `json:"duration"`
}

// Placed returns the number of tiles merged into some layer.
func (s Stats) Placed() int {
	total := 0
	for _, n := range s.PerBand {
		total += n
	}
	return total
}

// Result holds the frozen layers and the per-tile trace.
type Result struct {
	Layers [BandCount]Layer
	Tiles  []TileSample
	Stats  Stats
}

// Layer returns the layer for band b.
func (r *Result) Layer(b Band) Layer {
	return r.Layers[b]
}

// Generator builds banded terrain layers from a noise field.
type Generator struct {
	opts   Options
	logger logging.LoggerInterface
}

// NewGenerator creates a generator with dependency injection.
func NewGenerator(opts Options, logger logging.LoggerInterface) *Generator {
	componentLogger := logger.With("component", "terrain-generator")
	componentLogger.Debug("Creating new terrain generator")
	return &Generator{
		opts:   opts,
		logger: componentLogger,
	}
}

// NewGeneratorWithDefaultLogger creates a generator with the global logger.
func NewGeneratorWithDefaultLogger(opts Options) *Generator {
	return NewGenerator(opts, logging.GetLogger())
}

// Options returns the options the generator was built with.
func (g *Generator) Options() Options {
	return g.opts
}

// Generate samples every grid tile, trims to the radius, builds a prism per
// tile and merges it into its band. It runs to completion once started; the
// context is only consulted before the first tile.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	o := g.opts
	g.logger.Debug("Generating terrain",
		"grid_len", o.Grid.Len(), "radius", o.Radius, "max_height", o.MaxHeight,
		"noise", o.Noise.Kind(), "seed", o.Noise.Seed())

	var accs [BandCount]*Accumulator
	for _, b := range Bands {
		accs[b] = NewAccumulator(b)
	}

	res := &Result{
		Tiles: make([]TileSample, 0, o.Grid.Len()),
		Stats: Stats{MinHeight: math.Inf(1), MaxHeight: math.Inf(-1)},
	}

	for _, tile := range o.Grid.Tiles() {
		res.Stats.Visited++
		sample := TileSample{Tile: tile, Position: hexgrid.TileToPosition(tile, o.Spacing)}

		if !hexgrid.Within(sample.Position, o.Radius) {
			sample.Trimmed = true
			res.Stats.Trimmed++
			res.Tiles = append(res.Tiles, sample)
			continue
		}

		sample.Height = SampleHeight(o.Noise, tile, o.Scale, o.Exponent, o.MaxHeight)
		res.Stats.MinHeight = math.Min(res.Stats.MinHeight, sample.Height)
		res.Stats.MaxHeight = math.Max(res.Stats.MaxHeight, sample.Height)

		band, ok := o.Thresholds.Select(sample.Height)
		if !ok {
			sample.Dropped = true
			res.Stats.Dropped++
			res.Tiles = append(res.Tiles, sample)
			continue
		}
		sample.Band = band

		accs[band].Merge(TileGeometry(sample.Position, sample.Height, o.TileRadius))
		res.Stats.PerBand[band]++
		res.Tiles = append(res.Tiles, sample)
	}

	for _, b := range Bands {
		res.Layers[b] = accs[b].Freeze()
	}
	if res.Stats.Visited == res.Stats.Trimmed {
		res.Stats.MinHeight, res.Stats.MaxHeight = 0, 0
	}
	res.Stats.Duration = time.Since(start)

	g.logger.Info("Terrain generated",
		"visited", res.Stats.Visited, "trimmed", res.Stats.Trimmed,
		"dropped", res.Stats.Dropped, "placed", res.Stats.Placed(),
		"duration", res.Stats.Duration)
	for _, layer := range res.Layers {
		g.logger.Debug("Layer built", "band", layer.Band, "tiles", layer.Tiles,
			"vertices", layer.Geometry.VertexCount(), "triangles", layer.Geometry.TriangleCount())
	}

	return res, nil
}

// TileGeometry builds the prism for one tile with its base on y=0 at the
// tile's world position.
func TileGeometry(pos mgl64.Vec2, height, radius float64) *geometry.Geometry {
	return geometry.NewHexPrism(radius, height).Translate(mgl64.Vec3{pos[0], height * 0.5, pos[1]})
}
