package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"desk-replica/internal/logger"
)

// vertex shader: world-space position and normal plus scaled UVs.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec3 fragPosition;
out vec3 fragNormal;
out vec2 fragUV;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);
    fragPosition  = worldPos.xyz;
    fragNormal    = mat3(transpose(inverse(model))) * inNormal;
    fragUV        = inUV;
    gl_Position   = projection * view * worldPos;
}
` + "\x00"

// fragment shader: Phong over a fixed array of four light sources, with
// either a flat color or a texture as the base color.
const fragSrc = `
#version 410 core
struct Material {
    vec3  ambientColor;
    float ambientStrength;
    vec3  diffuseColor;
    vec3  specularColor;
    float shininess;
};

struct LightSource {
    vec3  position;
    vec3  ambientColor;
    vec3  diffuseColor;
    vec3  specularColor;
    float focalStrength;
    float specularIntensity;
};

#define TOTAL_LIGHTS 4

in vec3 fragPosition;
in vec3 fragNormal;
in vec2 fragUV;

out vec4 outColor;

uniform bool bUseTexture;
uniform bool bUseLighting;
uniform vec4 objectColor;
uniform sampler2D objectTexture;
uniform vec2 UVscale;
uniform vec3 viewPosition;
uniform Material material;
uniform LightSource lightSources[TOTAL_LIGHTS];

vec3 phong(LightSource light, vec3 n, vec3 viewDir) {
    vec3 lightDir = normalize(light.position - fragPosition);

    vec3 ambient = light.ambientColor * material.ambientStrength * material.ambientColor;

    float diff = max(dot(n, lightDir), 0.0);
    vec3 diffuse = diff * light.diffuseColor * material.diffuseColor;

    vec3 reflectDir = reflect(-lightDir, n);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), max(light.focalStrength, 1.0));
    vec3 specular = light.specularIntensity * spec * light.specularColor * material.specularColor;

    return ambient + diffuse + specular;
}

void main() {
    vec4 base = objectColor;
    if (bUseTexture) {
        base = texture(objectTexture, fragUV * UVscale);
    }

    if (!bUseLighting) {
        outColor = base;
        return;
    }

    vec3 n = normalize(fragNormal);
    vec3 viewDir = normalize(viewPosition - fragPosition);
    vec3 lit = vec3(0.0);
    for (int i = 0; i < TOTAL_LIGHTS; i++) {
        lit += phong(lightSources[i], n, viewDir);
    }
    outColor = vec4(lit * base.rgb, base.a);
}
` + "\x00"

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		logger.Log.Error("failed to link program", zap.String("log", log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		logger.Log.Error("failed to compile shader", zap.Uint32("type", shaderType), zap.String("log", log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
