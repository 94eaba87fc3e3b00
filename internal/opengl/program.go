package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"desk-replica/internal/logger"
	"desk-replica/math"
)

// Program is a linked shader program that implements scene.ShaderBridge.
// Uniform locations are looked up once per name and cached; names the
// program does not use resolve to -1, which GL ignores.
type Program struct {
	id   uint32
	locs map[string]int32
}

// NewSceneProgram compiles and links the desk scene's Phong program.
func NewSceneProgram() (*Program, error) {
	id, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, err
	}
	return &Program{id: id, locs: make(map[string]int32)}, nil
}

func (p *Program) ID() uint32 { return p.id }

func (p *Program) Use() {
	gl.UseProgram(p.id)
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		logger.Log.Debug("uniform not active in program", zap.String("name", name))
	}
	p.locs[name] = loc
	return loc
}

func (p *Program) SetMat4(name string, m math.Mat4) {
	flat := m.Flatten()
	gl.UniformMatrix4fv(p.location(name), 1, false, &flat[0])
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec2(name string, v math.Vec2) {
	gl.Uniform2f(p.location(name), v.X, v.Y)
}

func (p *Program) SetVec3(name string, v math.Vec3) {
	gl.Uniform3f(p.location(name), v.X, v.Y, v.Z)
}

func (p *Program) SetVec4(name string, v math.Vec4) {
	gl.Uniform4f(p.location(name), v.X, v.Y, v.Z, v.W)
}

func (p *Program) SetSampler(name string, unit int) {
	gl.Uniform1i(p.location(name), int32(unit))
}

func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
