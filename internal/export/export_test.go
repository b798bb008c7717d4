package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/hexscape/internal/assets"
	"github.com/VoidMesh/hexscape/internal/geometry"
	"github.com/VoidMesh/hexscape/internal/noise"
	"github.com/VoidMesh/hexscape/internal/scene"
	"github.com/VoidMesh/hexscape/internal/terrain"
)

func testScene(t *testing.T) *scene.Scene {
	t.Helper()

	gen := terrain.NewGenerator(terrain.DefaultOptions(noise.NewPerlin(11)), log.New(io.Discard))
	res, err := gen.Generate(context.Background())
	require.NoError(t, err)

	bundle := &assets.Bundle{
		Textures:    make(map[assets.TextureName]*assets.Texture),
		Environment: &assets.Environment{Path: assets.DefaultEnvironment},
	}
	for name, file := range assets.DefaultTextureFiles {
		bundle.Textures[name] = &assets.Texture{Name: name, Path: file}
	}

	s, err := scene.Build(bundle, res, scene.Options{MaxHeight: 10, Seed: 11, Noise: "perlin"})
	require.NoError(t, err)
	return s
}

func TestWriteOBJ(t *testing.T) {
	g := geometry.NewHexPrism(1, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, "tile", g, "scene.mtl", "stone"))

	counts := map[string]int{}
	var faces []string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		counts[fields[0]]++
		if fields[0] == "f" {
			faces = append(faces, scanner.Text())
		}
	}

	assert.Equal(t, 1, counts["mtllib"])
	assert.Equal(t, 1, counts["o"])
	assert.Equal(t, 1, counts["usemtl"])
	assert.Equal(t, g.VertexCount(), counts["v"])
	assert.Equal(t, g.VertexCount(), counts["vt"])
	assert.Equal(t, g.VertexCount(), counts["vn"])
	assert.Equal(t, g.TriangleCount(), counts["f"])

	first := g.Indices[0] + 1
	assert.True(t, strings.HasPrefix(faces[0], "f "+itoa(first)+"/"+itoa(first)+"/"+itoa(first)))
}

func TestWriteOBJ_PositionsOnly(t *testing.T) {
	g := &geometry.Geometry{
		Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}},
		Indices:   []uint32{0, 2, 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, "tri", g, "", ""))

	out := buf.String()
	assert.NotContains(t, out, "mtllib")
	assert.NotContains(t, out, "usemtl")
	assert.Contains(t, out, "f 1 3 2\n")
}

func TestWriteMTL(t *testing.T) {
	materials := []*scene.Material{scene.WaterMaterial(), scene.LayerMaterial(terrain.Stone)}
	textures := map[assets.TextureName]string{
		assets.TextureStone: "stonetexture.jpg",
		assets.TextureWater: "water.jpg",
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMTL(&buf, materials, textures, "../public"))
	out := buf.String()

	stoneAt := strings.Index(out, "newmtl stone")
	waterAt := strings.Index(out, "newmtl water")
	require.GreaterOrEqual(t, stoneAt, 0)
	require.GreaterOrEqual(t, waterAt, 0)
	assert.Less(t, stoneAt, waterAt, "materials are sorted by name")

	assert.Contains(t, out, "map_Kd ../public/stonetexture.jpg")
	assert.Contains(t, out, "map_Pr ../public/water.jpg")
	assert.Contains(t, out, "map_Pm ../public/water.jpg")
	assert.Contains(t, out, "Ni 1.4000")
	assert.Contains(t, out, "Tf 1.0000 1.0000 1.0000")
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	s := testScene(t)

	exporter := NewExporter(dir, "../public", log.New(io.Discard))
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	exporter.now = func() time.Time { return fixed }

	manifest, err := exporter.Export(context.Background(), s)
	require.NoError(t, err)

	assert.NotEmpty(t, manifest.RunID)
	assert.Equal(t, fixed, manifest.CreatedAt)
	assert.Len(t, manifest.Meshes, terrain.BandCount+1)
	assert.Len(t, manifest.Files, terrain.BandCount+3)
	assert.Equal(t, "../public/clarens-night.hdr", manifest.Environment)

	for _, f := range manifest.Files {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "file %s should exist", f)
	}

	water := manifest.Meshes[len(manifest.Meshes)-1]
	assert.Equal(t, "water", water.Name)
	assert.InDelta(t, 0, water.Bounds.Min[1], 1e-9, "water placement is baked into vertices")
	assert.InDelta(t, 2, water.Bounds.Max[1], 1e-9)

	placed := 0
	for _, entry := range manifest.Meshes[:terrain.BandCount] {
		require.NotNil(t, entry.Band)
		placed += entry.Tiles
	}
	assert.Equal(t, s.Stats.Placed(), placed)

	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, manifest.RunID, decoded["run_id"])
	assert.EqualValues(t, 11, decoded["seed"])
	assert.Equal(t, "perlin", decoded["noise"])

	meshes := decoded["meshes"].([]interface{})
	assert.Equal(t, "stone", meshes[0].(map[string]interface{})["band"])
}

func TestExporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExporter(t.TempDir(), "", log.New(io.Discard)).Export(ctx, testScene(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExporter_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewExporter(filepath.Join(file, "out"), "", log.New(io.Discard)).Export(context.Background(), testScene(t))
	assert.Error(t, err)
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
