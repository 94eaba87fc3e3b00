package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"desk-replica/core"
	"desk-replica/internal/logger"
)

// Renderer owns the GL state the desk scene draws with: the shader program,
// the mesh library and the texture device.
type Renderer struct {
	Program  *Program
	Meshes   *MeshLibrary
	Textures TextureDevice

	viewportW int32
	viewportH int32
}

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	prog, err := NewSceneProgram()
	if err != nil {
		return nil, fmt.Errorf("scene shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	prog.Use()
	return &Renderer{
		Program: prog,
		Meshes:  NewMeshLibrary(),
	}, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	if int32(width) == r.viewportW && int32(height) == r.viewportH {
		return
	}
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, r.viewportW, r.viewportH)
}

// Aspect is the viewport width over height, or 1 before the first resize.
func (r *Renderer) Aspect() float32 {
	if r.viewportH == 0 {
		return 1
	}
	return float32(r.viewportW) / float32(r.viewportH)
}

// BeginFrame clears color and depth and activates the scene program.
func (r *Renderer) BeginFrame(clear core.Color) {
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.Program.Use()
}

// Destroy releases the meshes and the program. Textures belong to the scene's
// registry and are released there.
func (r *Renderer) Destroy() {
	r.Meshes.Release()
	r.Program.Destroy()
}
