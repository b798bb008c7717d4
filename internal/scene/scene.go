// Package scene assembles generated terrain and loaded assets into a
// renderer-neutral scene description.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/VoidMesh/hexscape/internal/assets"
	"github.com/VoidMesh/hexscape/internal/geometry"
	"github.com/VoidMesh/hexscape/internal/terrain"
)

const (
	BackgroundColor = "#CCDDD3"
	LightColor      = "#ffcb8e"
	WaterColor      = "#55aaff"

	// WaterRadius covers the trimmed island with a one-unit margin.
	WaterRadius   = 17
	WaterSegments = 50
)

// LayerTextures assigns each band its texture slot.
var LayerTextures = [terrain.BandCount]assets.TextureName{
	terrain.Stone: assets.TextureStone,
	terrain.Sand:  assets.TextureSand,
	terrain.Grass: assets.TextureGrass,
	terrain.Dirt:  assets.TextureDirt,
	terrain.Dirt2: assets.TextureDirt2,
}

// Camera is a perspective camera with orbit controls.
type Camera struct {
	FOV           float64    `json:"fov"`
	Near          float64    `json:"near"`
	Far           float64    `json:"far"`
	Position      mgl64.Vec3 `json:"position"`
	Target        mgl64.Vec3 `json:"target"`
	EnableDamping bool       `json:"enable_damping"`
	DampingFactor float64    `json:"damping_factor"`
}

// Renderer carries output settings for whatever draws the scene.
type Renderer struct {
	Antialias      bool   `json:"antialias"`
	ToneMapping    string `json:"tone_mapping"`
	OutputEncoding string `json:"output_encoding"`
	ShadowsEnabled bool   `json:"shadows_enabled"`
	ShadowMapType  string `json:"shadow_map_type"`
}

// PointLight is an omnidirectional light with a distance falloff.
type PointLight struct {
	Color         mgl64.Vec3 `json:"color"`
	Intensity     float64    `json:"intensity"`
	Distance      float64    `json:"distance"`
	Position      mgl64.Vec3 `json:"position"`
	CastShadow    bool       `json:"cast_shadow"`
	ShadowMapSize int        `json:"shadow_map_size"`
	ShadowNear    float64    `json:"shadow_near"`
	ShadowFar     float64    `json:"shadow_far"`
}

// Material is a physically based material.
type Material struct {
	Name            string             `json:"name"`
	Color           mgl64.Vec3         `json:"color"`
	Map             assets.TextureName `json:"map,omitempty"`
	RoughnessMap    assets.TextureName `json:"roughness_map,omitempty"`
	MetalnessMap    assets.TextureName `json:"metalness_map,omitempty"`
	EnvMapIntensity float64            `json:"env_map_intensity"`
	FlatShading     bool               `json:"flat_shading,omitempty"`
	Roughness       float64            `json:"roughness"`
	Metalness       float64            `json:"metalness"`
	IOR             float64            `json:"ior"`
	Transmission    float64            `json:"transmission"`
	Thickness       float64            `json:"thickness"`
	Transparent     bool               `json:"transparent,omitempty"`
}

// Mesh pairs a geometry with its material and placement.
type Mesh struct {
	Name          string
	Geometry      *geometry.Geometry
	Material      *Material
	Position      mgl64.Vec3
	CastShadow    bool
	ReceiveShadow bool
	// Band is set for terrain layers only.
	Band *terrain.Band
}

// Scene is everything a renderer needs to draw the island.
type Scene struct {
	Background  mgl64.Vec3
	Camera      Camera
	Renderer    Renderer
	Light       PointLight
	Environment string
	Meshes      []*Mesh
	Textures    map[assets.TextureName]string
	Stats       terrain.Stats
	Seed        int64
	Noise       string
}

// Options tunes scene assembly.
type Options struct {
	MaxHeight float64
	Seed      int64
	Noise     string
}

// DefaultCamera looks down on the island from the south west.
func DefaultCamera() Camera {
	return Camera{
		FOV:           45,
		Near:          0.1,
		Far:           1000,
		Position:      mgl64.Vec3{-17, 31, 33},
		Target:        mgl64.Vec3{0, 0, 0},
		EnableDamping: true,
		DampingFactor: 0.05,
	}
}

// DefaultRenderer returns filmic tone mapped sRGB output with soft shadows.
func DefaultRenderer() Renderer {
	return Renderer{
		Antialias:      true,
		ToneMapping:    "aces_filmic",
		OutputEncoding: "srgb",
		ShadowsEnabled: true,
		ShadowMapType:  "pcf",
	}
}

// DefaultLight returns the warm shadow-casting key light. Its colour is run
// through the sRGB transfer twice, which gives the deep amber tint.
func DefaultLight() PointLight {
	return PointLight{
		Color:         Linearize(mustLinear(LightColor)),
		Intensity:     1,
		Distance:      200,
		Position:      mgl64.Vec3{10, 20, 10},
		CastShadow:    true,
		ShadowMapSize: 512,
		ShadowNear:    0.5,
		ShadowFar:     500,
	}
}

// LayerMaterial returns the flat shaded material for a terrain band.
func LayerMaterial(band terrain.Band) *Material {
	return &Material{
		Name:            band.String(),
		Color:           mgl64.Vec3{1, 1, 1},
		Map:             LayerTextures[band],
		EnvMapIntensity: 0.135,
		FlatShading:     true,
		Roughness:       1,
		Metalness:       0,
		IOR:             1.5,
	}
}

// WaterMaterial returns the transmissive sea material.
func WaterMaterial() *Material {
	return &Material{
		Name:            "water",
		Color:           mustLinear(WaterColor).Mul(3),
		RoughnessMap:    assets.TextureWater,
		MetalnessMap:    assets.TextureWater,
		EnvMapIntensity: 0.2,
		Roughness:       0.5,
		Metalness:       0.025,
		IOR:             1.4,
		Transmission:    1,
		Thickness:       1.5,
		Transparent:     true,
	}
}

// WaterMesh returns the sea cylinder for a terrain of the given max height.
func WaterMesh(maxHeight float64) *Mesh {
	geo := geometry.NewCylinder(geometry.CylinderOptions{
		RadiusTop:      WaterRadius,
		RadiusBottom:   WaterRadius,
		Height:         maxHeight * 0.2,
		RadialSegments: WaterSegments,
		HeightSegments: 1,
	})
	return &Mesh{
		Name:          "water",
		Geometry:      geo,
		Material:      WaterMaterial(),
		Position:      mgl64.Vec3{0, maxHeight * 0.1, 0},
		ReceiveShadow: true,
	}
}

// Build pairs each terrain layer with its material, adds the water and sets
// up camera and lighting. Every texture a material references must be in
// the bundle.
func Build(bundle *assets.Bundle, result *terrain.Result, opts Options) (*Scene, error) {
	if bundle == nil || result == nil {
		return nil, fmt.Errorf("scene needs both assets and terrain")
	}

	s := &Scene{
		Background: mustLinear(BackgroundColor),
		Camera:     DefaultCamera(),
		Renderer:   DefaultRenderer(),
		Light:      DefaultLight(),
		Textures:   make(map[assets.TextureName]string),
		Stats:      result.Stats,
		Seed:       opts.Seed,
		Noise:      opts.Noise,
	}
	if bundle.Environment != nil {
		s.Environment = bundle.Environment.Path
	}

	for _, layer := range result.Layers {
		band := layer.Band
		s.Meshes = append(s.Meshes, &Mesh{
			Name:          band.String(),
			Geometry:      layer.Geometry,
			Material:      LayerMaterial(band),
			CastShadow:    true,
			ReceiveShadow: true,
			Band:          &band,
		})
	}
	s.Meshes = append(s.Meshes, WaterMesh(opts.MaxHeight))

	for _, m := range s.Meshes {
		for _, name := range m.Material.TextureNames() {
			tex, err := bundle.Texture(name)
			if err != nil {
				return nil, fmt.Errorf("material %s: %w", m.Material.Name, err)
			}
			s.Textures[name] = tex.Path
		}
	}

	return s, nil
}

// TextureNames lists the distinct texture slots the material samples.
func (m *Material) TextureNames() []assets.TextureName {
	var names []assets.TextureName
	seen := make(map[assets.TextureName]bool)
	for _, n := range []assets.TextureName{m.Map, m.RoughnessMap, m.MetalnessMap} {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

// TerrainMeshes returns the five layer meshes in band order.
func (s *Scene) TerrainMeshes() []*Mesh {
	var out []*Mesh
	for _, m := range s.Meshes {
		if m.Band != nil {
			out = append(out, m)
		}
	}
	return out
}
