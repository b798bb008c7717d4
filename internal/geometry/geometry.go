// Package geometry builds and combines indexed triangle meshes.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed triangle mesh. Positions, Normals and UVs are
// parallel per-vertex slices; Indices holds three entries per triangle.
type Geometry struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
}

// New returns an empty geometry.
func New() *Geometry {
	return &Geometry{}
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// IsEmpty reports whether the geometry has no vertices.
func (g *Geometry) IsEmpty() bool {
	return g == nil || len(g.Positions) == 0
}

// Translate moves every vertex by v in place and returns g.
func (g *Geometry) Translate(v mgl64.Vec3) *Geometry {
	for i := range g.Positions {
		g.Positions[i] = g.Positions[i].Add(v)
	}
	return g
}

// Clone returns a deep copy.
func (g *Geometry) Clone() *Geometry {
	return &Geometry{
		Positions: append([]mgl64.Vec3(nil), g.Positions...),
		Normals:   append([]mgl64.Vec3(nil), g.Normals...),
		UVs:       append([]mgl64.Vec2(nil), g.UVs...),
		Indices:   append([]uint32(nil), g.Indices...),
	}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl64.Vec3 `json:"min"`
	Max mgl64.Vec3 `json:"max"`
}

// Bounds returns the bounding box of the geometry. An empty geometry yields
// the zero box.
func (g *Geometry) Bounds() Box {
	if g.IsEmpty() {
		return Box{}
	}
	inf := math.Inf(1)
	b := Box{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
	for _, p := range g.Positions {
		for axis := 0; axis < 3; axis++ {
			b.Min[axis] = math.Min(b.Min[axis], p[axis])
			b.Max[axis] = math.Max(b.Max[axis], p[axis])
		}
	}
	return b
}

// Merge concatenates the given geometries into a new one, rebasing indices.
// Nil and empty inputs are skipped.
func Merge(gs ...*Geometry) *Geometry {
	var vertices, indices int
	for _, g := range gs {
		if g.IsEmpty() {
			continue
		}
		vertices += len(g.Positions)
		indices += len(g.Indices)
	}

	out := &Geometry{
		Positions: make([]mgl64.Vec3, 0, vertices),
		Normals:   make([]mgl64.Vec3, 0, vertices),
		UVs:       make([]mgl64.Vec2, 0, vertices),
		Indices:   make([]uint32, 0, indices),
	}
	for _, g := range gs {
		if g.IsEmpty() {
			continue
		}
		out.appendGeometry(g)
	}
	return out
}

// Append merges other into g in place.
func (g *Geometry) Append(other *Geometry) {
	if other.IsEmpty() {
		return
	}
	g.appendGeometry(other)
}

func (g *Geometry) appendGeometry(other *Geometry) {
	base := uint32(len(g.Positions))
	g.Positions = append(g.Positions, other.Positions...)
	g.Normals = append(g.Normals, other.Normals...)
	g.UVs = append(g.UVs, other.UVs...)
	for _, idx := range other.Indices {
		g.Indices = append(g.Indices, base+idx)
	}
}
