package io

import (
	"fmt"
	"io"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"desk-replica/core"
	"desk-replica/scene"
	"desk-replica/scene/shapes"
)

type primitiveKey struct {
	shape    shapes.Kind
	material int
}

type geometry struct {
	position, normal, uv, indices int
}

// ExportGLB writes a composed frame as binary glTF. Geometry is stored once
// per shape kind, each draw record becomes a node carrying its model matrix,
// and each distinct material and surface pair becomes a glTF material.
func ExportGLB(w io.Writer, frame []scene.DrawRecord, meshes map[shapes.Kind]*core.MeshData) error {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "desk-replica"
	doc.Scenes[0].Name = "desk"

	geoms := make(map[shapes.Kind]geometry)
	materials := make(map[string]int)
	gltfMeshes := make(map[primitiveKey]int)

	for _, rec := range frame {
		geo, ok := geoms[rec.Shape]
		if !ok {
			data, ok := meshes[rec.Shape]
			if !ok || data == nil {
				return fmt.Errorf("export %s/%s: %w: %s", rec.Group, rec.Part, scene.ErrUnknownShape, rec.Shape)
			}
			geo = writeGeometry(doc, data)
			geoms[rec.Shape] = geo
		}

		matName := materialName(rec)
		matIdx, ok := materials[matName]
		if !ok {
			matIdx = len(doc.Materials)
			doc.Materials = append(doc.Materials, pbrMaterial(matName, rec))
			materials[matName] = matIdx
		}

		key := primitiveKey{shape: rec.Shape, material: matIdx}
		meshIdx, ok := gltfMeshes[key]
		if !ok {
			meshIdx = len(doc.Meshes)
			doc.Meshes = append(doc.Meshes, &gltf.Mesh{
				Name: fmt.Sprintf("%s.%s", rec.Shape, matName),
				Primitives: []*gltf.Primitive{{
					Indices: gltf.Index(geo.indices),
					Attributes: gltf.PrimitiveAttributes{
						gltf.POSITION:   geo.position,
						gltf.NORMAL:     geo.normal,
						gltf.TEXCOORD_0: geo.uv,
					},
					Material: gltf.Index(matIdx),
				}},
			})
			gltfMeshes[key] = meshIdx
		}

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:   rec.Group + "/" + rec.Part,
			Mesh:   gltf.Index(meshIdx),
			Matrix: nodeMatrix(rec),
		})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}

	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode glb: %w", err)
	}
	return nil
}

func writeGeometry(doc *gltf.Document, data *core.MeshData) geometry {
	positions := make([][3]float32, len(data.Vertices))
	normals := make([][3]float32, len(data.Vertices))
	uvs := make([][2]float32, len(data.Vertices))
	for i, v := range data.Vertices {
		positions[i] = v.Position.Array()
		normals[i] = v.Normal.Array()
		// glTF puts the UV origin at the top-left.
		uvs[i] = [2]float32{v.UV.X, 1 - v.UV.Y}
	}
	return geometry{
		position: modeler.WritePosition(doc, positions),
		normal:   modeler.WriteNormal(doc, normals),
		uv:       modeler.WriteTextureCoord(doc, uvs),
		indices:  modeler.WriteIndices(doc, data.Indices),
	}
}

func materialName(rec scene.DrawRecord) string {
	if rec.Surface.IsTextured() {
		return rec.Material.Tag + "+" + rec.Surface.TextureTag
	}
	c := rec.Surface.Color
	return fmt.Sprintf("%s+%.2f,%.2f,%.2f,%.2f", rec.Material.Tag, c.R, c.G, c.B, c.A)
}

func pbrMaterial(name string, rec scene.DrawRecord) *gltf.Material {
	base := [4]float64{
		float64(rec.Material.DiffuseColor.X),
		float64(rec.Material.DiffuseColor.Y),
		float64(rec.Material.DiffuseColor.Z),
		1,
	}
	if !rec.Surface.IsTextured() {
		c := rec.Surface.Color
		base = [4]float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
	}

	m := &gltf.Material{
		Name: name,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &base,
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(Roughness(rec.Material.Shininess)),
		},
	}
	if base[3] < 1 {
		m.AlphaMode = gltf.AlphaBlend
	}
	return m
}

// Roughness maps a Phong exponent to a PBR roughness in [0, 1].
func Roughness(shininess float32) float64 {
	if shininess < 0 {
		shininess = 0
	}
	return float64(math32.Sqrt(2 / (shininess + 2)))
}

func nodeMatrix(rec scene.DrawRecord) [16]float64 {
	flat := rec.Model.Flatten()
	var out [16]float64
	for i, v := range flat {
		out[i] = float64(v)
	}
	return out
}
