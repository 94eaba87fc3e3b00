package shapes

import (
	"desk-replica/core"
	"desk-replica/math"
)

// builder accumulates flat-shaded faces. Winding is derived from the face
// normal, so callers may list corners in either direction.
type builder struct {
	vertices []core.Vertex
	indices  []uint32
}

func (b *builder) tri(p [3]math.Vec3, uv [3]math.Vec2, n math.Vec3) {
	base := uint32(len(b.vertices))
	for i := range p {
		b.vertices = append(b.vertices, core.Vertex{Position: p[i], Normal: n, UV: uv[i]})
	}
	if facing(p[0], p[1], p[2], n) {
		b.indices = append(b.indices, base, base+1, base+2)
	} else {
		b.indices = append(b.indices, base, base+2, base+1)
	}
}

// quad expects corners listed around the perimeter.
func (b *builder) quad(p [4]math.Vec3, uv [4]math.Vec2, n math.Vec3) {
	base := uint32(len(b.vertices))
	for i := range p {
		b.vertices = append(b.vertices, core.Vertex{Position: p[i], Normal: n, UV: uv[i]})
	}
	if facing(p[0], p[1], p[2], n) {
		b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	} else {
		b.indices = append(b.indices, base, base+2, base+1, base, base+3, base+2)
	}
}

func (b *builder) mesh(name string) *core.MeshData {
	return &core.MeshData{Name: name, Vertices: b.vertices, Indices: b.indices}
}

// facing reports whether a, b, c wind counter-clockwise seen from n.
func facing(a, b, c, n math.Vec3) bool {
	return b.Sub(a).Cross(c.Sub(a)).Dot(n) >= 0
}

var quadUV = [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
