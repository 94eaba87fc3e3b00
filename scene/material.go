package scene

import "desk-replica/math"

// Material holds the Phong parameters pushed into the shader's material
// struct.
type Material struct {
	Tag             string
	AmbientColor    math.Vec3
	AmbientStrength float32
	DiffuseColor    math.Vec3
	SpecularColor   math.Vec3
	Shininess       float32
}

// DefaultMaterial is pushed when a part names a material that was never
// defined, so the previous part's material does not carry over.
var DefaultMaterial = Material{
	Tag:             "default",
	AmbientColor:    math.Splat(0.2),
	AmbientStrength: 0.2,
	DiffuseColor:    math.Splat(0.5),
	SpecularColor:   math.Vec3Zero,
	Shininess:       1,
}

// Apply pushes every material field.
func (m Material) Apply(bridge ShaderBridge) {
	bridge.SetVec3(UniformMaterialAmbientColor, m.AmbientColor)
	bridge.SetFloat(UniformMaterialAmbientStrength, m.AmbientStrength)
	bridge.SetVec3(UniformMaterialDiffuseColor, m.DiffuseColor)
	bridge.SetVec3(UniformMaterialSpecularColor, m.SpecularColor)
	bridge.SetFloat(UniformMaterialShininess, m.Shininess)
}

// MaterialRegistry is an ordered list of materials looked up by tag.
// Duplicate tags are accepted; the first definition wins.
type MaterialRegistry struct {
	materials []Material
}

func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{}
}

func (r *MaterialRegistry) Define(m Material) {
	r.materials = append(r.materials, m)
}

func (r *MaterialRegistry) Find(tag string) (Material, bool) {
	for _, m := range r.materials {
		if m.Tag == tag {
			return m, true
		}
	}
	return Material{}, false
}

func (r *MaterialRegistry) Len() int {
	return len(r.materials)
}
