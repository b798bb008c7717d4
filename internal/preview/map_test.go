package preview

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/hexscape/internal/hexgrid"
	"github.com/VoidMesh/hexscape/internal/noise"
	"github.com/VoidMesh/hexscape/internal/terrain"
)

func generate(t *testing.T, opts terrain.Options) *terrain.Result {
	t.Helper()
	res, err := terrain.NewGenerator(opts, log.New(io.Discard)).Generate(context.Background())
	require.NoError(t, err)
	return res
}

func TestRender(t *testing.T) {
	res := generate(t, terrain.DefaultOptions(noise.NewSimplex(5)))

	out := Render(res)

	assert.Contains(t, out, "Terrain Preview")
	for _, b := range terrain.Bands {
		assert.Contains(t, out, b.String())
	}
	assert.Contains(t, out, "Visited: 900")
	assert.Equal(t, res.Stats.Placed(), strings.Count(out, strings.TrimSpace(TileSymbol))-terrain.BandCount,
		"one glyph per placed tile plus one per legend row")
}

func TestRender_SmallGrid(t *testing.T) {
	opts := terrain.DefaultOptions(noise.Constant(1))
	opts.Grid = hexgrid.Grid{MinCol: 0, MaxCol: 1, MinRow: 0, MaxRow: 1}

	out := renderGrid(generate(t, opts))

	lines := strings.Split(out, "\n")
	// two rows plus top and bottom border
	assert.Len(t, lines, 4)
	assert.Equal(t, 4, strings.Count(out, strings.TrimSpace(TileSymbol)))
}

func TestRender_NoTiles(t *testing.T) {
	out := renderGrid(&terrain.Result{})
	assert.Contains(t, out, "No tiles")
}

func TestRenderCell(t *testing.T) {
	assert.Equal(t, TrimmedSymbol, renderCell(terrain.TileSample{Trimmed: true}))
	assert.Contains(t, renderCell(terrain.TileSample{Dropped: true}), strings.TrimSpace(DroppedSymbol))
	assert.Contains(t, renderCell(terrain.TileSample{Band: terrain.Grass}), strings.TrimSpace(TileSymbol))
}
