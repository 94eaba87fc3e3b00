package opengl

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"desk-replica/scene"
)

func TestShaderDeclaresSceneUniforms(t *testing.T) {
	src := vertSrc + fragSrc
	for _, name := range []string{
		scene.UniformModel,
		scene.UniformView,
		scene.UniformProjection,
		scene.UniformViewPosition,
		scene.UniformObjectColor,
		scene.UniformTexture,
		scene.UniformUseTexture,
		scene.UniformUseLighting,
		scene.UniformUVScale,
	} {
		assert.Regexp(t, `uniform \w+ `+name+`;`, src, name)
	}
}

func TestShaderStructFieldsMatchBridgeNames(t *testing.T) {
	for _, name := range []string{
		scene.UniformMaterialAmbientColor,
		scene.UniformMaterialAmbientStrength,
		scene.UniformMaterialDiffuseColor,
		scene.UniformMaterialSpecularColor,
		scene.UniformMaterialShininess,
	} {
		field := strings.TrimPrefix(name, "material.")
		assert.Contains(t, fragSrc, " "+field+";", name)
	}

	assert.Contains(t, fragSrc, fmt.Sprintf("#define TOTAL_LIGHTS %d", scene.MaxLights))
	for _, field := range []string{"position", "ambientColor", "diffuseColor", "specularColor", "focalStrength", "specularIntensity"} {
		assert.Contains(t, fragSrc, " "+field+";", field)
	}
}

func TestShaderSourcesAreNulTerminated(t *testing.T) {
	assert.True(t, strings.HasSuffix(vertSrc, "\x00"))
	assert.True(t, strings.HasSuffix(fragSrc, "\x00"))
}
