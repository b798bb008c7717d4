package export

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"sort"

	"github.com/VoidMesh/hexscape/internal/assets"
	"github.com/VoidMesh/hexscape/internal/geometry"
	"github.com/VoidMesh/hexscape/internal/scene"
)

// WriteOBJ writes g as a Wavefront object named name that uses material
// mtl from library lib. Indices are written 1-based with shared v/vt/vn ids.
func WriteOBJ(w io.Writer, name string, g *geometry.Geometry, lib, mtl string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# hexscape mesh %s: %d vertices, %d triangles\n", name, g.VertexCount(), g.TriangleCount())
	if lib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", lib)
	}
	fmt.Fprintf(bw, "o %s\n", name)

	for _, p := range g.Positions {
		fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", p[0], p[1], p[2])
	}
	for _, uv := range g.UVs {
		fmt.Fprintf(bw, "vt %.6f %.6f\n", uv[0], uv[1])
	}
	for _, n := range g.Normals {
		fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n[0], n[1], n[2])
	}

	if mtl != "" {
		fmt.Fprintf(bw, "usemtl %s\n", mtl)
	}
	hasUV := len(g.UVs) == len(g.Positions)
	hasNormal := len(g.Normals) == len(g.Positions)
	for i := 0; i+2 < len(g.Indices); i += 3 {
		bw.WriteString("f")
		for k := 0; k < 3; k++ {
			id := g.Indices[i+k] + 1
			switch {
			case hasUV && hasNormal:
				fmt.Fprintf(bw, " %d/%d/%d", id, id, id)
			case hasNormal:
				fmt.Fprintf(bw, " %d//%d", id, id)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", id, id)
			default:
				fmt.Fprintf(bw, " %d", id)
			}
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// WriteMTL writes a material library. Texture paths are joined onto
// textureBase. PBR values use the common Pr/Pm/Pc extension keys.
func WriteMTL(w io.Writer, materials []*scene.Material, textures map[assets.TextureName]string, textureBase string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# hexscape materials: %d\n", len(materials))

	sorted := append([]*scene.Material(nil), materials...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	texturePath := func(slot assets.TextureName) string {
		file, ok := textures[slot]
		if !ok {
			return ""
		}
		if textureBase == "" {
			return file
		}
		return path.Join(textureBase, file)
	}

	for _, m := range sorted {
		fmt.Fprintf(bw, "\nnewmtl %s\n", m.Name)
		fmt.Fprintf(bw, "Kd %.6f %.6f %.6f\n", m.Color[0], m.Color[1], m.Color[2])
		fmt.Fprintf(bw, "Ni %.4f\n", m.IOR)
		fmt.Fprintf(bw, "Pr %.4f\n", m.Roughness)
		fmt.Fprintf(bw, "Pm %.4f\n", m.Metalness)
		if m.Transmission > 0 {
			fmt.Fprintf(bw, "Tf %.4f %.4f %.4f\n", m.Transmission, m.Transmission, m.Transmission)
		}
		if m.Transparent {
			fmt.Fprintf(bw, "d %.4f\n", 1-m.Transmission)
		}
		if p := texturePath(m.Map); p != "" {
			fmt.Fprintf(bw, "map_Kd %s\n", p)
		}
		if p := texturePath(m.RoughnessMap); p != "" {
			fmt.Fprintf(bw, "map_Pr %s\n", p)
		}
		if p := texturePath(m.MetalnessMap); p != "" {
			fmt.Fprintf(bw, "map_Pm %s\n", p)
		}
	}

	return bw.Flush()
}
