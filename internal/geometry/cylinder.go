package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CylinderOptions describes a cylinder or frustum centred on the origin with
// its axis along +Y.
type CylinderOptions struct {
	RadiusTop      float64
	RadiusBottom   float64
	Height         float64
	RadialSegments int
	HeightSegments int
	OpenEnded      bool
}

// NewCylinder builds the side wall and, unless open ended, both caps. The side
// wall duplicates its first column of vertices so UVs wrap without a seam.
func NewCylinder(opts CylinderOptions) *Geometry {
	radial := max(opts.RadialSegments, 3)
	heightSegs := max(opts.HeightSegments, 1)

	b := &cylinderBuilder{
		opts:       opts,
		radial:     radial,
		heightSegs: heightSegs,
		half:       opts.Height / 2,
		g:          New(),
	}
	b.torso()
	if !opts.OpenEnded {
		if opts.RadiusTop > 0 {
			b.cap(true)
		}
		if opts.RadiusBottom > 0 {
			b.cap(false)
		}
	}
	return b.g
}

// NewHexPrism builds a closed six-sided prism of the given circumradius and
// height, centred on the origin.
func NewHexPrism(radius, height float64) *Geometry {
	return NewCylinder(CylinderOptions{
		RadiusTop:      radius,
		RadiusBottom:   radius,
		Height:         height,
		RadialSegments: 6,
		HeightSegments: 1,
	})
}

type cylinderBuilder struct {
	opts       CylinderOptions
	radial     int
	heightSegs int
	half       float64
	g          *Geometry
}

func (b *cylinderBuilder) add(pos, normal mgl64.Vec3, uv mgl64.Vec2) uint32 {
	b.g.Positions = append(b.g.Positions, pos)
	b.g.Normals = append(b.g.Normals, normal)
	b.g.UVs = append(b.g.UVs, uv)
	return uint32(len(b.g.Positions) - 1)
}

func (b *cylinderBuilder) torso() {
	slope := 0.0
	if b.opts.Height != 0 {
		slope = (b.opts.RadiusBottom - b.opts.RadiusTop) / b.opts.Height
	}

	rows := make([][]uint32, b.heightSegs+1)
	for y := 0; y <= b.heightSegs; y++ {
		v := float64(y) / float64(b.heightSegs)
		radius := v*(b.opts.RadiusBottom-b.opts.RadiusTop) + b.opts.RadiusTop

		rows[y] = make([]uint32, b.radial+1)
		for x := 0; x <= b.radial; x++ {
			u := float64(x) / float64(b.radial)
			theta := u * 2 * math.Pi
			sin, cos := math.Sincos(theta)

			pos := mgl64.Vec3{radius * sin, -v*b.opts.Height + b.half, radius * cos}
			normal := mgl64.Vec3{sin, slope, cos}.Normalize()
			rows[y][x] = b.add(pos, normal, mgl64.Vec2{u, 1 - v})
		}
	}

	for x := 0; x < b.radial; x++ {
		for y := 0; y < b.heightSegs; y++ {
			a := rows[y][x]
			bb := rows[y+1][x]
			c := rows[y+1][x+1]
			d := rows[y][x+1]
			b.g.Indices = append(b.g.Indices, a, bb, d, bb, c, d)
		}
	}
}

func (b *cylinderBuilder) cap(top bool) {
	radius := b.opts.RadiusBottom
	sign := -1.0
	if top {
		radius = b.opts.RadiusTop
		sign = 1.0
	}
	normal := mgl64.Vec3{0, sign, 0}
	y := b.half * sign

	// One centre vertex per segment keeps per-face UVs independent.
	centerStart := uint32(len(b.g.Positions))
	for x := 0; x < b.radial; x++ {
		b.add(mgl64.Vec3{0, y, 0}, normal, mgl64.Vec2{0.5, 0.5})
	}

	ringStart := uint32(len(b.g.Positions))
	for x := 0; x <= b.radial; x++ {
		theta := float64(x) / float64(b.radial) * 2 * math.Pi
		sin, cos := math.Sincos(theta)
		b.add(
			mgl64.Vec3{radius * sin, y, radius * cos},
			normal,
			mgl64.Vec2{cos*0.5 + 0.5, sin*0.5*sign + 0.5},
		)
	}

	for x := uint32(0); x < uint32(b.radial); x++ {
		c := centerStart + x
		i := ringStart + x
		if top {
			b.g.Indices = append(b.g.Indices, i, i+1, c)
		} else {
			b.g.Indices = append(b.g.Indices, i+1, i, c)
		}
	}
}
