package terrain

import (
	"github.com/VoidMesh/hexscape/internal/geometry"
)

// Accumulator collects the merged geometry of every tile in one band.
type Accumulator struct {
	band  Band
	geo   *geometry.Geometry
	tiles int
}

// NewAccumulator returns an empty accumulator for band.
func NewAccumulator(band Band) *Accumulator {
	return &Accumulator{band: band, geo: geometry.New()}
}

// Merge appends g to the running geometry.
func (a *Accumulator) Merge(g *geometry.Geometry) {
	a.geo.Append(g)
	a.tiles++
}

// Tiles returns how many tiles have been merged.
func (a *Accumulator) Tiles() int { return a.tiles }

// Freeze hands the accumulated geometry over as a Layer. The accumulator
// must not be used afterwards.
func (a *Accumulator) Freeze() Layer {
	layer := Layer{Band: a.band, Geometry: a.geo, Tiles: a.tiles}
	a.geo = nil
	return layer
}

// Layer is the final combined geometry of one band.
type Layer struct {
	Band     Band
	Geometry *geometry.Geometry
	Tiles    int
}
