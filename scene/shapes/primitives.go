package shapes

import (
	"github.com/chewxy/math32"

	"desk-replica/core"
	"desk-replica/math"
)

func v3(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

// NewBox returns a unit cube centred on the origin.
func NewBox() *core.MeshData {
	const s = 0.5
	var b builder
	b.quad([4]math.Vec3{v3(-s, -s, s), v3(s, -s, s), v3(s, s, s), v3(-s, s, s)}, quadUV, math.Vec3Front)
	b.quad([4]math.Vec3{v3(s, -s, -s), v3(-s, -s, -s), v3(-s, s, -s), v3(s, s, -s)}, quadUV, math.Vec3Back)
	b.quad([4]math.Vec3{v3(-s, s, s), v3(s, s, s), v3(s, s, -s), v3(-s, s, -s)}, quadUV, math.Vec3Up)
	b.quad([4]math.Vec3{v3(-s, -s, -s), v3(s, -s, -s), v3(s, -s, s), v3(-s, -s, s)}, quadUV, math.Vec3Down)
	b.quad([4]math.Vec3{v3(s, -s, s), v3(s, -s, -s), v3(s, s, -s), v3(s, s, s)}, quadUV, math.Vec3Right)
	b.quad([4]math.Vec3{v3(-s, -s, -s), v3(-s, -s, s), v3(-s, s, s), v3(-s, s, -s)}, quadUV, v3(-1, 0, 0))
	return b.mesh("box")
}

// NewPlane returns a 2x2 plane in XZ facing +Y.
func NewPlane() *core.MeshData {
	var b builder
	b.quad([4]math.Vec3{v3(-1, 0, 1), v3(1, 0, 1), v3(1, 0, -1), v3(-1, 0, -1)}, quadUV, math.Vec3Up)
	return b.mesh("plane")
}

// NewPrism returns a triangular prism: the triangle lies in XY with its apex
// at y=0.5 and is extruded from z=-0.5 to z=0.5.
func NewPrism() *core.MeshData {
	const s = 0.5
	a, bb, c := v3(-s, -s, 0), v3(s, -s, 0), v3(0, s, 0)
	front, back := v3(0, 0, s), v3(0, 0, -s)
	triUV := [3]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}}

	var b builder
	b.tri([3]math.Vec3{a.Add(front), bb.Add(front), c.Add(front)}, triUV, math.Vec3Front)
	b.tri([3]math.Vec3{a.Add(back), bb.Add(back), c.Add(back)}, triUV, math.Vec3Back)
	b.quad([4]math.Vec3{a.Add(front), bb.Add(front), bb.Add(back), a.Add(back)}, quadUV, math.Vec3Down)
	b.quad([4]math.Vec3{bb.Add(front), c.Add(front), c.Add(back), bb.Add(back)}, quadUV, v3(1, 0.5, 0).Normalize())
	b.quad([4]math.Vec3{c.Add(front), a.Add(front), a.Add(back), c.Add(back)}, quadUV, v3(-1, 0.5, 0).Normalize())
	return b.mesh("prism")
}

// NewPyramid4 returns a square-based pyramid with the base at y=-0.5 and the
// apex at y=0.5.
func NewPyramid4() *core.MeshData {
	const s = 0.5
	apex := v3(0, s, 0)
	p0, p1, p2, p3 := v3(-s, -s, -s), v3(s, -s, -s), v3(s, -s, s), v3(-s, -s, s)
	sideUV := [3]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}}

	var b builder
	b.quad([4]math.Vec3{p0, p1, p2, p3}, quadUV, math.Vec3Down)
	b.tri([3]math.Vec3{p0, p1, apex}, sideUV, v3(0, 0.5, -1).Normalize())
	b.tri([3]math.Vec3{p1, p2, apex}, sideUV, v3(1, 0.5, 0).Normalize())
	b.tri([3]math.Vec3{p2, p3, apex}, sideUV, v3(0, 0.5, 1).Normalize())
	b.tri([3]math.Vec3{p3, p0, apex}, sideUV, v3(-1, 0.5, 0).Normalize())
	return b.mesh("pyramid4")
}

// NewTaperedCylinder returns a capped frustum of height 1 standing on y=0.
// A top radius of zero produces a cone with no top cap.
func NewTaperedCylinder(name string, bottomRadius, topRadius float32, segments int) *core.MeshData {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		sinT, cosT := math32.Sincos(theta)
		normal := v3(cosT, bottomRadius-topRadius, sinT).Normalize()
		u := float32(i) / float32(segments)

		vertices = append(vertices,
			core.Vertex{Position: v3(cosT*bottomRadius, 0, sinT*bottomRadius), Normal: normal, UV: math.Vec2{X: u, Y: 0}},
			core.Vertex{Position: v3(cosT*topRadius, 1, sinT*topRadius), Normal: normal, UV: math.Vec2{X: u, Y: 1}},
		)
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	vertices, indices = appendCap(vertices, indices, bottomRadius, 0, math.Vec3Down, segments)
	if topRadius > 0 {
		vertices, indices = appendCap(vertices, indices, topRadius, 1, math.Vec3Up, segments)
	}

	return &core.MeshData{Name: name, Vertices: vertices, Indices: indices}
}

// appendCap adds a triangle fan disc at height y facing n.
func appendCap(vertices []core.Vertex, indices []uint32, radius, y float32, n math.Vec3, segments int) ([]core.Vertex, []uint32) {
	center := uint32(len(vertices))
	vertices = append(vertices, core.Vertex{Position: v3(0, y, 0), Normal: n, UV: math.Vec2{X: 0.5, Y: 0.5}})

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math32.Pi / float32(segments)
		sinT, cosT := math32.Sincos(theta)
		vertices = append(vertices, core.Vertex{
			Position: v3(cosT*radius, y, sinT*radius),
			Normal:   n,
			UV:       math.Vec2{X: cosT*0.5 + 0.5, Y: sinT*0.5 + 0.5},
		})
	}
	for i := 0; i < segments; i++ {
		v1 := center + 1 + uint32(i)
		if n.Y > 0 {
			indices = append(indices, center, v1+1, v1)
		} else {
			indices = append(indices, center, v1, v1+1)
		}
	}
	return vertices, indices
}

// NewSphere returns a UV sphere of radius 1.
func NewSphere(segments, rings int) *core.MeshData {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)

			normal := v3(sinPhi*cosTheta, cosPhi, sinPhi*sinTheta)
			vertices = append(vertices, core.Vertex{
				Position: normal,
				Normal:   normal,
				UV:       math.Vec2{X: float32(seg) / float32(segments), Y: 1 - float32(ring)/float32(rings)},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, current+1, next)
			indices = append(indices, current+1, next+1, next)
		}
	}

	return &core.MeshData{Name: "sphere", Vertices: vertices, Indices: indices}
}

// NewTorus returns a torus lying in the XY plane around the Z axis. sweep is
// the fraction of the full ring to generate; 0.5 yields the upper half.
func NewTorus(name string, mainRadius, tubeRadius, sweep float32, mainSegments, tubeSegs int) *core.MeshData {
	if mainSegments < 3 {
		mainSegments = 3
	}
	if tubeSegs < 3 {
		tubeSegs = 3
	}

	var vertices []core.Vertex
	var indices []uint32

	for i := 0; i <= mainSegments; i++ {
		theta := float32(i) * sweep * 2 * math32.Pi / float32(mainSegments)
		sinTheta, cosTheta := math32.Sincos(theta)

		for j := 0; j <= tubeSegs; j++ {
			phi := float32(j) * 2 * math32.Pi / float32(tubeSegs)
			sinPhi, cosPhi := math32.Sincos(phi)

			ring := mainRadius + tubeRadius*cosPhi
			vertices = append(vertices, core.Vertex{
				Position: v3(ring*cosTheta, ring*sinTheta, tubeRadius*sinPhi),
				Normal:   v3(cosPhi*cosTheta, cosPhi*sinTheta, sinPhi),
				UV:       math.Vec2{X: float32(i) / float32(mainSegments), Y: float32(j) / float32(tubeSegs)},
			})
		}
	}

	for i := 0; i < mainSegments; i++ {
		for j := 0; j < tubeSegs; j++ {
			current := uint32(i*(tubeSegs+1) + j)
			next := uint32((i+1)*(tubeSegs+1) + j)

			indices = append(indices, current, next, current+1)
			indices = append(indices, current+1, next, next+1)
		}
	}

	return &core.MeshData{Name: name, Vertices: vertices, Indices: indices}
}
