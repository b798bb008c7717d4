package preview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/hexscape/internal/terrain"
)

// Color definitions
var (
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")

	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")

	WaterColor = lipgloss.Color("#55AAFF")

	// Band colors, lowest first
	BandColors = [terrain.BandCount]lipgloss.Color{
		terrain.Stone: lipgloss.Color("#696969"), // DimGray
		terrain.Sand:  lipgloss.Color("#E8D28E"), // Sand
		terrain.Grass: lipgloss.Color("#5A9E3A"), // Moss
		terrain.Dirt:  lipgloss.Color("#8B4513"), // SaddleBrown
		terrain.Dirt2: lipgloss.Color("#C2A383"), // Ground
	}
)

// Symbols
const (
	TileSymbol    = "⬢ "
	DroppedSymbol = "~ "
	TrimmedSymbol = "  "
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(0, 1)

	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Foreground(LightGray).
			Padding(0, 1).
			MarginLeft(1)

	GridCellStyle = lipgloss.NewStyle()
)

// BandStyle returns the cell style for a band.
func BandStyle(b terrain.Band) lipgloss.Style {
	return GridCellStyle.Foreground(BandColors[b])
}
