package hexgrid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileToPosition(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
		want mgl64.Vec2
	}{
		{name: "origin", tile: Tile{0, 0}, want: mgl64.Vec2{0, 0}},
		{name: "even row", tile: Tile{2, 2}, want: mgl64.Vec2{2 * ColSpacing, 2 * RowSpacing}},
		{name: "odd row shifts right", tile: Tile{1, 1}, want: mgl64.Vec2{1.5 * ColSpacing, RowSpacing}},
		{name: "negative odd row shifts left", tile: Tile{1, -1}, want: mgl64.Vec2{0.5 * ColSpacing, -RowSpacing}},
		{name: "negative even row", tile: Tile{-3, -4}, want: mgl64.Vec2{-3 * ColSpacing, -4 * RowSpacing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TileToPosition(tt.tile, DefaultSpacing)
			assert.InDelta(t, tt.want[0], got[0], 1e-9)
			assert.InDelta(t, tt.want[1], got[1], 1e-9)
		})
	}
}

func TestTileToPosition_RowParityOffset(t *testing.T) {
	grid := Grid{MinCol: -15, MaxCol: 14, MinRow: -15, MaxRow: 14}

	for _, tile := range grid.Tiles() {
		pos := TileToPosition(tile, DefaultSpacing)
		again := TileToPosition(tile, DefaultSpacing)
		require.Equal(t, pos, again, "position must be deterministic for %+v", tile)

		unoffset := float64(tile.Col) * ColSpacing
		diff := math.Abs(pos[0] - unoffset)
		if tile.Row%2 == 0 {
			assert.InDelta(t, 0, diff, 1e-9, "even row %+v must not be offset", tile)
		} else {
			assert.InDelta(t, 0.5*ColSpacing, diff, 1e-9, "odd row %+v must be offset by half a column", tile)
		}
		assert.InDelta(t, float64(tile.Row)*RowSpacing, pos[1], 1e-9)
	}
}

func TestGrid(t *testing.T) {
	grid := Grid{MinCol: -15, MaxCol: 14, MinRow: -15, MaxRow: 14}

	assert.False(t, grid.Empty())
	assert.Equal(t, 900, grid.Len())

	tiles := grid.Tiles()
	require.Len(t, tiles, 900)
	assert.Equal(t, Tile{-15, -15}, tiles[0])
	assert.Equal(t, Tile{-15, -14}, tiles[1], "rows vary fastest")
	assert.Equal(t, Tile{14, 14}, tiles[len(tiles)-1])

	empty := Grid{MinCol: 1, MaxCol: 0}
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Tiles())
}

func TestWithin(t *testing.T) {
	assert.True(t, Within(mgl64.Vec2{0, 0}, 16))
	assert.True(t, Within(mgl64.Vec2{16, 0}, 16), "boundary is inside")
	assert.False(t, Within(mgl64.Vec2{12, 12}, 16))
	assert.False(t, Within(TileToPosition(Tile{-15, -15}, DefaultSpacing), 16))
}
