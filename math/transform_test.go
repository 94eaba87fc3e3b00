package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference builds T·Rx·Ry·Rz·S with mathgl.
func reference(s Vec3, rx, ry, rz float32, p Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(p.X, p.Y, p.Z).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(rx))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(ry))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(rz))).
		Mul4(mgl32.Scale3D(s.X, s.Y, s.Z))
}

func assertMatches(t *testing.T, want mgl32.Mat4, got Mat4) {
	t.Helper()
	flat := got.Flatten()
	for i := range flat {
		assert.InDelta(t, want[i], flat[i], 1e-4, "element %d", i)
	}
}

func TestMat4ModelXYZMatchesReference(t *testing.T) {
	cases := []struct {
		name       string
		scale      Vec3
		rx, ry, rz float32
		pos        Vec3
	}{
		{"identity", Vec3One, 0, 0, 0, Vec3Zero},
		{"desk surface", NewVec3(20, 1, 30), 0, -25, 0, NewVec3(10, -1, 0)},
		{"hip flipped", NewVec3(4.2, 1, 1.7), 180, 0, 0, NewVec3(-1.25, 2.05, 0)},
		{"left arm", NewVec3(0.5, 3.5, 0.5), 0, 180, -10, NewVec3(1.5, 3, 0)},
		{"right arm", NewVec3(0.5, 3.5, 0.5), -30, 0, -10, NewVec3(-4, 3, 1.7)},
		{"headphone band", NewVec3(5, 16, 7), 90, -7.5, 255, NewVec3(10, 2.75, -3)},
		{"lamp prism", Splat(4.5), -90, 0, 90, NewVec3(2.5, 1.5, -14.77)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Mat4ModelXYZ(tc.scale, tc.rx, tc.ry, tc.rz, tc.pos)
			assertMatches(t, reference(tc.scale, tc.rx, tc.ry, tc.rz, tc.pos), got)
		})
	}
}

func TestMat4ModelXYZRotationOrderMatters(t *testing.T) {
	scale := NewVec3(1, 2, 3)
	pos := NewVec3(4, 5, 6)
	xyz := Mat4ModelXYZ(scale, 30, 45, 60, pos)

	// Z then Y then X composed the other way round
	zyx := Mat4Scale(scale).
		Mul(Mat4RotationX(Radians(30))).
		Mul(Mat4RotationY(Radians(45))).
		Mul(Mat4RotationZ(Radians(60))).
		Mul(Mat4Translation(pos))

	require.False(t, xyz.ApproxEqual(zyx, 1e-4), "swapping rotation order must change the matrix")
}

func TestMat4ModelXYZSingleAxisIsOrderIndependent(t *testing.T) {
	a := Mat4ModelXYZ(Vec3One, 0, 40, 0, Vec3Zero)
	b := Mat4RotationY(Radians(40))
	assert.True(t, a.ApproxEqual(b, 1e-6))
}

func TestMat4ModelXYZTranslatesLast(t *testing.T) {
	m := Mat4ModelXYZ(Splat(2), 0, 0, 90, NewVec3(10, 0, 0))
	got := m.MulVec3(Vec3Right)
	// scale (2,0,0), rotate about Z to (0,2,0), then translate
	assert.InDelta(t, 10, got.X, 1e-4)
	assert.InDelta(t, 2, got.Y, 1e-4)
	assert.InDelta(t, 0, got.Z, 1e-4)
}
