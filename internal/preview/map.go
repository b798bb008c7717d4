// Package preview draws a generated terrain as a coloured terminal map.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/hexscape/internal/hexgrid"
	"github.com/VoidMesh/hexscape/internal/terrain"
)

// Render draws the tile grid next to a legend and stats panel. Rows run
// top to bottom from the highest row; odd rows are indented by one cell to
// mirror the hex offset.
func Render(res *terrain.Result) string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Terrain Preview") + "\n")
	s.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderGrid(res),
		renderInfoPanel(res),
	))
	s.WriteString("\n")

	return s.String()
}

func renderGrid(res *terrain.Result) string {
	if len(res.Tiles) == 0 {
		return BorderStyle.Render("No tiles")
	}

	samples := make(map[hexgrid.Tile]terrain.TileSample, len(res.Tiles))
	bounds := hexgrid.Grid{
		MinCol: res.Tiles[0].Col, MaxCol: res.Tiles[0].Col,
		MinRow: res.Tiles[0].Row, MaxRow: res.Tiles[0].Row,
	}
	for _, sample := range res.Tiles {
		samples[sample.Tile] = sample
		bounds.MinCol = min(bounds.MinCol, sample.Col)
		bounds.MaxCol = max(bounds.MaxCol, sample.Col)
		bounds.MinRow = min(bounds.MinRow, sample.Row)
		bounds.MaxRow = max(bounds.MaxRow, sample.Row)
	}

	var gridRows []string
	for row := bounds.MaxRow; row >= bounds.MinRow; row-- {
		var cells []string
		if row%2 != 0 {
			cells = append(cells, " ")
		}
		for col := bounds.MinCol; col <= bounds.MaxCol; col++ {
			cells = append(cells, renderCell(samples[hexgrid.Tile{Col: col, Row: row}]))
		}
		gridRows = append(gridRows, strings.Join(cells, ""))
	}

	return BorderStyle.Render(strings.Join(gridRows, "\n"))
}

func renderCell(sample terrain.TileSample) string {
	switch {
	case sample.Trimmed:
		return TrimmedSymbol
	case sample.Dropped:
		return GridCellStyle.Foreground(WaterColor).Render(DroppedSymbol)
	default:
		return BandStyle(sample.Band).Render(TileSymbol)
	}
}

func renderInfoPanel(res *terrain.Result) string {
	var info strings.Builder

	info.WriteString(SubtitleStyle.Render("Bands") + "\n")
	for _, b := range terrain.Bands {
		layer := res.Layer(b)
		info.WriteString(fmt.Sprintf("%s %-6s %4d tiles\n", BandStyle(b).Render(TileSymbol), b, layer.Tiles))
	}
	info.WriteString(fmt.Sprintf("%s %-6s %4d tiles\n\n", GridCellStyle.Foreground(WaterColor).Render(DroppedSymbol), "water", res.Stats.Dropped))

	info.WriteString(SubtitleStyle.Render("Stats") + "\n")
	info.WriteString(fmt.Sprintf("Visited: %d\n", res.Stats.Visited))
	info.WriteString(fmt.Sprintf("Trimmed: %d\n", res.Stats.Trimmed))
	info.WriteString(fmt.Sprintf("Placed:  %d\n", res.Stats.Placed()))
	info.WriteString(fmt.Sprintf("Height:  %.2f - %.2f\n", res.Stats.MinHeight, res.Stats.MaxHeight))
	info.WriteString(fmt.Sprintf("Took:    %s", res.Stats.Duration))

	return InfoPanelStyle.Render(info.String())
}
