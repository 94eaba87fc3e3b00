package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"desk-replica/math"
)

func TestMaterialRegistryFind(t *testing.T) {
	reg := NewMaterialRegistry()
	for _, m := range DeskMaterials() {
		reg.Define(m)
	}

	glass, ok := reg.Find(MatGlass)
	require.True(t, ok)
	assert.Equal(t, Material{
		Tag:             MatGlass,
		AmbientColor:    math.Splat(0.4),
		AmbientStrength: 0.3,
		DiffuseColor:    math.Splat(0.3),
		SpecularColor:   math.Splat(0.6),
		Shininess:       85,
	}, glass)

	_, ok = reg.Find("velvet")
	assert.False(t, ok)
}

func TestMaterialRegistryFirstDefinitionWins(t *testing.T) {
	reg := NewMaterialRegistry()
	reg.Define(Material{Tag: "x", Shininess: 1})
	reg.Define(Material{Tag: "x", Shininess: 2})

	m, ok := reg.Find("x")
	require.True(t, ok)
	assert.Equal(t, float32(1), m.Shininess)
	assert.Equal(t, 2, reg.Len())
}

func TestMaterialApplyPushesEveryField(t *testing.T) {
	b := &recordingBridge{}
	DefaultMaterial.Apply(b)

	assert.Equal(t, 3, b.count("vec3 material."))
	assert.Equal(t, 2, b.count("float material."))
}

func TestLightRigApply(t *testing.T) {
	b := &recordingBridge{}
	rig := DeskLights()
	rig.Apply(b)

	assert.Equal(t, MaxLights*4, b.count("vec3 lightSources["))
	assert.Equal(t, MaxLights*2, b.count("float lightSources["))
	assert.Contains(t, b.calls, "vec3 lightSources[3].specularColor {0.6 0.6 0.1}")
	assert.Equal(t, "bool bUseLighting true", b.calls[len(b.calls)-1])
}
