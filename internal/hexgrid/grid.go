// Package hexgrid maps integer tile coordinates on an offset-row hex grid to
// world positions.
package hexgrid

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Spacing between neighbouring tile centres for a unit-radius hexagon.
const (
	ColSpacing = 1.77
	RowSpacing = 1.535
)

// Tile is a (column, row) grid coordinate.
type Tile struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Spacing holds the column and row pitch of the layout.
type Spacing struct {
	Col float64
	Row float64
}

// DefaultSpacing is the pitch used for unit-radius prisms.
var DefaultSpacing = Spacing{Col: ColSpacing, Row: RowSpacing}

// TileToPosition returns the world (x, z) centre of the tile. Odd rows are
// shifted by half a column; row%2 is the truncated remainder, so negative odd
// rows shift left and positive odd rows shift right.
func TileToPosition(t Tile, s Spacing) mgl64.Vec2 {
	return mgl64.Vec2{
		(float64(t.Col) + float64(t.Row%2)*0.5) * s.Col,
		float64(t.Row) * s.Row,
	}
}

// Grid is an inclusive rectangle of tiles.
type Grid struct {
	MinCol, MaxCol int
	MinRow, MaxRow int
}

// Empty reports whether the grid contains no tiles.
func (g Grid) Empty() bool {
	return g.MinCol > g.MaxCol || g.MinRow > g.MaxRow
}

// Len returns the number of tiles in the grid.
func (g Grid) Len() int {
	if g.Empty() {
		return 0
	}
	return (g.MaxCol - g.MinCol + 1) * (g.MaxRow - g.MinRow + 1)
}

// Tiles lists every tile, column-major.
func (g Grid) Tiles() []Tile {
	tiles := make([]Tile, 0, g.Len())
	for col := g.MinCol; col <= g.MaxCol; col++ {
		for row := g.MinRow; row <= g.MaxRow; row++ {
			tiles = append(tiles, Tile{Col: col, Row: row})
		}
	}
	return tiles
}

// Within reports whether pos lies inside the circular trim radius.
func Within(pos mgl64.Vec2, radius float64) bool {
	return pos.Len() <= radius
}
