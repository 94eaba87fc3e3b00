package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"desk-replica/core"
	"desk-replica/internal/logger"
	"desk-replica/scene"
	"desk-replica/scene/shapes"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// MeshLibrary keeps one uploaded mesh per shape kind. It implements
// scene.MeshLibrary.
type MeshLibrary struct {
	meshes map[shapes.Kind]*GPUMesh
}

func NewMeshLibrary() *MeshLibrary {
	return &MeshLibrary{meshes: make(map[shapes.Kind]*GPUMesh)}
}

// Load generates and uploads the mesh for kind. Loading a kind twice keeps
// the first upload.
func (l *MeshLibrary) Load(kind shapes.Kind) error {
	if _, ok := l.meshes[kind]; ok {
		return nil
	}
	data, err := shapes.Generate(kind)
	if err != nil {
		return err
	}
	l.meshes[kind] = upload(data)
	logger.Log.Debug("uploaded mesh",
		zap.Stringer("shape", kind),
		zap.Int("vertices", len(data.Vertices)),
		zap.Int("triangles", data.TriangleCount()))
	return nil
}

func (l *MeshLibrary) Draw(kind shapes.Kind) error {
	gpu, ok := l.meshes[kind]
	if !ok {
		return fmt.Errorf("%w: %s", scene.ErrUnknownShape, kind)
	}
	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	return nil
}

// Release frees every uploaded mesh.
func (l *MeshLibrary) Release() {
	for kind, gpu := range l.meshes {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(l.meshes, kind)
	}
}

func upload(mesh *core.MeshData) *GPUMesh {
	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{IndexCount: int32(len(mesh.Indices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4,
		gl.Ptr(mesh.Indices),
		gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return gpu
}
