package scene

import (
	"fmt"

	"desk-replica/math"
)

// MaxLights matches the size of the lightSources array in the fragment shader.
const MaxLights = 4

type LightSource struct {
	Position          math.Vec3
	AmbientColor      math.Vec3
	DiffuseColor      math.Vec3
	SpecularColor     math.Vec3
	FocalStrength     float32
	SpecularIntensity float32
}

// LightRig is the fixed set of scene lights. Unused slots stay zero, which
// contributes no light.
type LightRig [MaxLights]LightSource

// Apply enables lighting and pushes every slot.
func (r *LightRig) Apply(bridge ShaderBridge) {
	for i, l := range r {
		prefix := fmt.Sprintf("lightSources[%d].", i)
		bridge.SetVec3(prefix+"position", l.Position)
		bridge.SetVec3(prefix+"ambientColor", l.AmbientColor)
		bridge.SetVec3(prefix+"diffuseColor", l.DiffuseColor)
		bridge.SetVec3(prefix+"specularColor", l.SpecularColor)
		bridge.SetFloat(prefix+"focalStrength", l.FocalStrength)
		bridge.SetFloat(prefix+"specularIntensity", l.SpecularIntensity)
	}
	bridge.SetBool(UniformUseLighting, true)
}
