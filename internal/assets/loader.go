// Package assets loads the textures and HDR environment map a scene needs.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sort"
	"time"

	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/sync/errgroup"

	"github.com/VoidMesh/hexscape/internal/logging"
)

// ErrMissingTexture is returned by Bundle.Texture for an unknown name.
var ErrMissingTexture = errors.New("texture not loaded")

// TextureName identifies one texture slot.
type TextureName string

const (
	TextureStone TextureName = "stone"
	TextureSand  TextureName = "sand"
	TextureGrass TextureName = "grass"
	TextureDirt  TextureName = "dirt"
	TextureDirt2 TextureName = "dirt2"
	TextureWater TextureName = "water"
)

// DefaultTextureFiles maps each slot to its file name in the asset directory.
var DefaultTextureFiles = map[TextureName]string{
	TextureStone: "stonetexture.jpg",
	TextureSand:  "sandgraveltexture.jpg",
	TextureGrass: "mosstexture.jpg",
	TextureDirt:  "dirttexture.jpg",
	TextureDirt2: "groundtexture.jpg",
	TextureWater: "water.jpg",
}

// DefaultEnvironment is the HDR map used for image based lighting.
const DefaultEnvironment = "clarens-night.hdr"

// Manifest lists the files to load, relative to the loader's file system.
type Manifest struct {
	Textures    map[TextureName]string
	Environment string
}

// DefaultManifest returns the stock texture set and environment map.
func DefaultManifest() Manifest {
	textures := make(map[TextureName]string, len(DefaultTextureFiles))
	for name, file := range DefaultTextureFiles {
		textures[name] = file
	}
	return Manifest{Textures: textures, Environment: DefaultEnvironment}
}

// Texture is a decoded colour texture.
type Texture struct {
	Name   TextureName
	Path   string
	Format string
	Image  image.Image
}

// Size returns the pixel dimensions.
func (t *Texture) Size() (int, int) {
	b := t.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Environment is a decoded equirectangular HDR map.
type Environment struct {
	Path  string
	Image image.Image
}

// Size returns the pixel dimensions.
func (e *Environment) Size() (int, int) {
	b := e.Image.Bounds()
	return b.Dx(), b.Dy()
}

// Bundle holds every loaded asset. It is read-only once Load returns.
type Bundle struct {
	Textures    map[TextureName]*Texture
	Environment *Environment
}

// Texture looks up a loaded texture.
func (b *Bundle) Texture(name TextureName) (*Texture, error) {
	t, ok := b.Textures[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingTexture, name)
	}
	return t, nil
}

// Loader reads assets from a file system.
type Loader struct {
	fsys     fs.FS
	manifest Manifest
	logger   logging.LoggerInterface
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS, manifest Manifest, logger logging.LoggerInterface) *Loader {
	return &Loader{
		fsys:     fsys,
		manifest: manifest,
		logger:   logger.With("component", "asset-loader"),
	}
}

// Load decodes every texture and the environment map concurrently. The first
// failure cancels the remaining loads and is returned; nothing is retried.
func (l *Loader) Load(ctx context.Context) (*Bundle, error) {
	start := time.Now()

	names := make([]TextureName, 0, len(l.manifest.Textures))
	for name := range l.manifest.Textures {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	textures := make([]*Texture, len(names))
	var env *Environment

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			tex, err := l.loadTexture(gctx, name, l.manifest.Textures[name])
			if err != nil {
				return err
			}
			textures[i] = tex
			return nil
		})
	}
	if l.manifest.Environment != "" {
		g.Go(func() error {
			e, err := l.loadEnvironment(gctx, l.manifest.Environment)
			if err != nil {
				return err
			}
			env = e
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.logger.Error("Asset loading failed", "error", err, "duration", time.Since(start))
		return nil, err
	}

	bundle := &Bundle{
		Textures:    make(map[TextureName]*Texture, len(textures)),
		Environment: env,
	}
	for _, tex := range textures {
		bundle.Textures[tex.Name] = tex
	}

	l.logger.Info("Assets loaded", "textures", len(bundle.Textures), "environment", env != nil, "duration", time.Since(start))
	return bundle, nil
}

func (l *Loader) loadTexture(ctx context.Context, name TextureName, path string) (*Texture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", name, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s (%s): %w", name, path, err)
	}

	b := img.Bounds()
	l.logger.Debug("Texture loaded", "name", name, "path", path, "format", format, "width", b.Dx(), "height", b.Dy())
	return &Texture{Name: name, Path: path, Format: format, Image: img}, nil
}

func (l *Loader) loadEnvironment(ctx context.Context, path string) (*Environment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open environment map: %w", err)
	}
	defer f.Close()

	img, err := rgbe.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode environment map %s: %w", path, err)
	}

	b := img.Bounds()
	l.logger.Debug("Environment map loaded", "path", path, "width", b.Dx(), "height", b.Dy())
	return &Environment{Path: path, Image: img}, nil
}
