package scene

import (
	"desk-replica/math"
	"desk-replica/scene/shapes"
)

// Uniform names shared by the composer and the GLSL program.
const (
	UniformModel        = "model"
	UniformView         = "view"
	UniformProjection   = "projection"
	UniformViewPosition = "viewPosition"
	UniformObjectColor  = "objectColor"
	UniformTexture      = "objectTexture"
	UniformUseTexture   = "bUseTexture"
	UniformUseLighting  = "bUseLighting"
	UniformUVScale      = "UVscale"

	UniformMaterialAmbientColor    = "material.ambientColor"
	UniformMaterialAmbientStrength = "material.ambientStrength"
	UniformMaterialDiffuseColor    = "material.diffuseColor"
	UniformMaterialSpecularColor   = "material.specularColor"
	UniformMaterialShininess       = "material.shininess"
)

// ShaderBridge pushes named uniform values into the active shader program.
// It is write-only: callers never read shader state back.
type ShaderBridge interface {
	SetMat4(name string, m math.Mat4)
	SetBool(name string, v bool)
	SetFloat(name string, v float32)
	SetVec2(name string, v math.Vec2)
	SetVec3(name string, v math.Vec3)
	SetVec4(name string, v math.Vec4)
	// SetSampler binds a sampler uniform to a texture unit.
	SetSampler(name string, unit int)
}

// MeshLibrary owns one GPU mesh per shape kind. Load must precede any Draw of
// the same kind; Draw uses whatever uniforms and textures are currently bound.
type MeshLibrary interface {
	Load(kind shapes.Kind) error
	Draw(kind shapes.Kind) error
	Release()
}
