package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"desk-replica/core"
	"desk-replica/scene"
	"desk-replica/scene/shapes"
)

// ExportOBJ writes a composed frame as Wavefront OBJ with every part baked
// into world space. mtlLib, when set, is referenced with mtllib and each part
// selects its material with usemtl.
func ExportOBJ(w io.Writer, mtlLib string, frame []scene.DrawRecord, meshes map[shapes.Kind]*core.MeshData) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Exported by desk-replica")
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}
	fmt.Fprintln(bw)

	offset := 0
	for _, rec := range frame {
		mesh, ok := meshes[rec.Shape]
		if !ok || mesh == nil {
			return fmt.Errorf("export %s/%s: %w: %s", rec.Group, rec.Part, scene.ErrUnknownShape, rec.Shape)
		}
		normalMat := rec.Model.NormalMatrix()

		fmt.Fprintf(bw, "o %s_%s\n", rec.Group, rec.Part)

		for _, v := range mesh.Vertices {
			p := rec.Model.MulVec3(v.Position)
			fmt.Fprintf(bw, "v %f %f %f\n", p.X, p.Y, p.Z)
		}
		for _, v := range mesh.Vertices {
			n := normalMat.MulVec(v.Normal.ToVec4(0)).ToVec3().Normalize()
			fmt.Fprintf(bw, "vn %f %f %f\n", n.X, n.Y, n.Z)
		}
		for _, v := range mesh.Vertices {
			uv := v.UV
			if rec.Surface.IsTextured() {
				uv.X *= rec.Surface.UVScale.X
				uv.Y *= rec.Surface.UVScale.Y
			}
			fmt.Fprintf(bw, "vt %f %f\n", uv.X, uv.Y)
		}

		if mtlLib != "" {
			fmt.Fprintf(bw, "usemtl %s\n", objMaterialName(rec))
		}
		// Faces are 1-indexed and share one index for v, vt and vn.
		for i := 0; i+2 < len(mesh.Indices); i += 3 {
			a := int(mesh.Indices[i]) + 1 + offset
			b := int(mesh.Indices[i+1]) + 1 + offset
			c := int(mesh.Indices[i+2]) + 1 + offset
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}

		offset += len(mesh.Vertices)
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

// ExportMTL writes one material per distinct material and surface pair in
// the frame. Textured surfaces reference <texture tag>.png as their diffuse
// map.
func ExportMTL(w io.Writer, frame []scene.DrawRecord) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# Exported by desk-replica")

	seen := make(map[string]bool)
	for _, rec := range frame {
		name := objMaterialName(rec)
		if seen[name] {
			continue
		}
		seen[name] = true

		m := rec.Material
		fmt.Fprintf(bw, "\nnewmtl %s\n", name)
		fmt.Fprintf(bw, "Ka %f %f %f\n",
			m.AmbientColor.X*m.AmbientStrength, m.AmbientColor.Y*m.AmbientStrength, m.AmbientColor.Z*m.AmbientStrength)
		if rec.Surface.IsTextured() {
			fmt.Fprintf(bw, "Kd %f %f %f\n", m.DiffuseColor.X, m.DiffuseColor.Y, m.DiffuseColor.Z)
			fmt.Fprintf(bw, "map_Kd %s.png\n", rec.Surface.TextureTag)
		} else {
			c := rec.Surface.Color
			fmt.Fprintf(bw, "Kd %f %f %f\n", c.R, c.G, c.B)
			if c.A < 1 {
				fmt.Fprintf(bw, "d %f\n", c.A)
			}
		}
		fmt.Fprintf(bw, "Ks %f %f %f\n", m.SpecularColor.X, m.SpecularColor.Y, m.SpecularColor.Z)
		fmt.Fprintf(bw, "Ns %f\n", m.Shininess)
	}

	return bw.Flush()
}

// objMaterialName is materialName with characters OBJ readers split on
// replaced.
func objMaterialName(rec scene.DrawRecord) string {
	return strings.NewReplacer(" ", "_", ",", "_", "+", "_").Replace(materialName(rec))
}
