// Package export writes a scene to disk as OBJ/MTL meshes plus a JSON
// manifest describing camera, light and materials.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/VoidMesh/hexscape/internal/assets"
	"github.com/VoidMesh/hexscape/internal/geometry"
	"github.com/VoidMesh/hexscape/internal/logging"
	"github.com/VoidMesh/hexscape/internal/scene"
	"github.com/VoidMesh/hexscape/internal/terrain"
)

const (
	MaterialLibrary = "scene.mtl"
	ManifestFile    = "scene.json"
)

// MeshEntry describes one exported mesh file.
type MeshEntry struct {
	Name          string        `json:"name"`
	File          string        `json:"file"`
	Material      string        `json:"material"`
	Band          *terrain.Band `json:"band,omitempty"`
	Tiles         int           `json:"tiles,omitempty"`
	Vertices      int           `json:"vertices"`
	Triangles     int           `json:"triangles"`
	Bounds        geometry.Box  `json:"bounds"`
	Position      mgl64.Vec3    `json:"position"`
	CastShadow    bool          `json:"cast_shadow"`
	ReceiveShadow bool          `json:"receive_shadow"`
}

// Manifest is the JSON document written next to the meshes.
type Manifest struct {
	RunID       string                        `json:"run_id"`
	CreatedAt   time.Time                     `json:"created_at"`
	Seed        int64                         `json:"seed"`
	Noise       string                        `json:"noise"`
	Background  mgl64.Vec3                    `json:"background"`
	Camera      scene.Camera                  `json:"camera"`
	Renderer    scene.Renderer                `json:"renderer"`
	Light       scene.PointLight              `json:"light"`
	Environment string                        `json:"environment,omitempty"`
	Textures    map[assets.TextureName]string `json:"textures"`
	Materials   []*scene.Material             `json:"materials"`
	Meshes      []MeshEntry                   `json:"meshes"`
	Stats       terrain.Stats                 `json:"stats"`
	Files       []string                      `json:"-"`
}

// Exporter writes scenes into a directory.
type Exporter struct {
	dir         string
	textureBase string
	logger      logging.LoggerInterface
	now         func() time.Time
}

// NewExporter creates an exporter. textureBase is prefixed to texture and
// environment file names in the MTL and manifest, usually the asset directory
// relative to dir.
func NewExporter(dir, textureBase string, logger logging.LoggerInterface) *Exporter {
	return &Exporter{
		dir:         dir,
		textureBase: textureBase,
		logger:      logger.With("component", "exporter"),
		now:         time.Now,
	}
}

// Export writes one OBJ per mesh, the shared MTL and the manifest. Mesh
// placement is baked into the OBJ vertices. The context is checked between
// files.
func (e *Exporter) Export(ctx context.Context, s *scene.Scene) (*Manifest, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	m := &Manifest{
		RunID:       uuid.NewString(),
		CreatedAt:   e.now().UTC(),
		Seed:        s.Seed,
		Noise:       s.Noise,
		Background:  s.Background,
		Camera:      s.Camera,
		Renderer:    s.Renderer,
		Light:       s.Light,
		Environment: e.texturePath(s.Environment),
		Textures:    make(map[assets.TextureName]string, len(s.Textures)),
		Stats:       s.Stats,
	}
	for name, file := range s.Textures {
		m.Textures[name] = e.texturePath(file)
	}

	for _, mesh := range s.Meshes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		file := mesh.Name + ".obj"
		geo := mesh.Geometry
		if mesh.Position != (mgl64.Vec3{}) {
			geo = geo.Clone().Translate(mesh.Position)
		}
		err := e.writeFile(file, func(w io.Writer) error {
			return WriteOBJ(w, mesh.Name, geo, MaterialLibrary, mesh.Material.Name)
		})
		if err != nil {
			return nil, err
		}

		entry := MeshEntry{
			Name:          mesh.Name,
			File:          file,
			Material:      mesh.Material.Name,
			Band:          mesh.Band,
			Vertices:      geo.VertexCount(),
			Triangles:     geo.TriangleCount(),
			Bounds:        geo.Bounds(),
			Position:      mesh.Position,
			CastShadow:    mesh.CastShadow,
			ReceiveShadow: mesh.ReceiveShadow,
		}
		if mesh.Band != nil {
			entry.Tiles = s.Stats.PerBand[*mesh.Band]
		}
		m.Meshes = append(m.Meshes, entry)
		m.Materials = append(m.Materials, mesh.Material)
		m.Files = append(m.Files, file)

		e.logger.Debug("Mesh exported", "mesh", mesh.Name, "file", file, "vertices", entry.Vertices)
	}

	err := e.writeFile(MaterialLibrary, func(w io.Writer) error {
		return WriteMTL(w, m.Materials, s.Textures, e.textureBase)
	})
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, MaterialLibrary)

	err = e.writeFile(ManifestFile, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	})
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, ManifestFile)

	e.logger.Info("Scene exported", "dir", e.dir, "files", len(m.Files), "run_id", m.RunID)
	return m, nil
}

func (e *Exporter) texturePath(file string) string {
	if file == "" || e.textureBase == "" {
		return file
	}
	return filepath.ToSlash(filepath.Join(e.textureBase, file))
}

func (e *Exporter) writeFile(name string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(filepath.Join(e.dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
