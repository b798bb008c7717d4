package terrain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VoidMesh/hexscape/internal/hexgrid"
	"github.com/VoidMesh/hexscape/internal/noise"
)

func TestNormalizeNoise(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: -1, want: 0},
		{in: 0, want: 0.5},
		{in: 1, want: 1},
		{in: -1.2, want: 0},
		{in: 1.2, want: 1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeNoise(tt.in), 1e-12, "normalize(%v)", tt.in)
	}
}

func TestHeightFromNoise_Range(t *testing.T) {
	for i := -100; i <= 100; i++ {
		n := float64(i) / 100
		normalized := NormalizeNoise(n)
		assert.GreaterOrEqual(t, normalized, 0.0)
		assert.LessOrEqual(t, normalized, 1.0)

		h := HeightFromNoise(n, 1.5, 10)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.LessOrEqual(t, h, 10.0)
	}
}

func TestHeightFromNoise_Curve(t *testing.T) {
	assert.InDelta(t, 10, HeightFromNoise(1, 1.5, 10), 1e-12)
	assert.InDelta(t, 0, HeightFromNoise(-1, 1.5, 10), 1e-12)
	assert.InDelta(t, math.Pow(0.5, 1.5)*10, HeightFromNoise(0, 1.5, 10), 1e-12)
	assert.Less(t, HeightFromNoise(0, 1.5, 10), HeightFromNoise(0, 1, 10), "exponent > 1 biases toward low terrain")
}

func TestSampleHeight_ScalesCoordinates(t *testing.T) {
	var gotX, gotY float64
	gen := noise.Func(func(x, y float64) float64 {
		gotX, gotY = x, y
		return 1
	})

	h := SampleHeight(gen, hexgrid.Tile{Col: 3, Row: -7}, 0.1, 1.5, 10)

	assert.InDelta(t, 0.3, gotX, 1e-12)
	assert.InDelta(t, -0.7, gotY, 1e-12)
	assert.InDelta(t, 10, h, 1e-12)
}
