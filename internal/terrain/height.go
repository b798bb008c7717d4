package terrain

import (
	"math"

	"github.com/VoidMesh/hexscape/internal/hexgrid"
	"github.com/VoidMesh/hexscape/internal/noise"
)

// NormalizeNoise maps a noise sample from [-1, 1] to [0, 1].
func NormalizeNoise(n float64) float64 {
	v := (n + 1) * 0.5
	return math.Max(0, math.Min(1, v))
}

// HeightFromNoise remaps a raw noise sample through the power curve. An
// exponent above 1 pushes the distribution toward low terrain.
func HeightFromNoise(n, exponent, maxHeight float64) float64 {
	return math.Pow(NormalizeNoise(n), exponent) * maxHeight
}

// SampleHeight evaluates the noise field at the scaled tile coordinate.
func SampleHeight(gen noise.Generator, tile hexgrid.Tile, scale, exponent, maxHeight float64) float64 {
	n := gen.Noise2D(float64(tile.Col)*scale, float64(tile.Row)*scale)
	return HeightFromNoise(n, exponent, maxHeight)
}
