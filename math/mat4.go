package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix stored column-major as m[col][row], so &m[0][0] can be
// handed straight to glUniformMatrix4fv with transpose=false.
type Mat4 [4][4]float32

func Mat4Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the transform that applies m first and other second, i.e.
// other·m in column-vector notation.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				result[i][j] += m[i][k] * other[k][j]
			}
		}
	}
	return result
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return v.MulMat(m)
}

func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec(v.ToVec4(1.0)).ToVec3DivW()
}

func (m Mat4) Transpose() Mat4 {
	return Mat4{
		{m[0][0], m[1][0], m[2][0], m[3][0]},
		{m[0][1], m[1][1], m[2][1], m[3][1]},
		{m[0][2], m[1][2], m[2][2], m[3][2]},
		{m[0][3], m[1][3], m[2][3], m[3][3]},
	}
}

// Flatten returns the sixteen elements in column-major order.
func (m Mat4) Flatten() [16]float32 {
	var out [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] = m[col][row]
		}
	}
	return out
}

// ApproxEqual compares element-wise within eps.
func (m Mat4) ApproxEqual(other Mat4, eps float32) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math32.Abs(m[i][j]-other[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

func Radians(degrees float32) float32 {
	return degrees * math32.Pi / 180
}

func Mat4Translation(translation Vec3) Mat4 {
	m := Mat4Identity()
	m[3][0] = translation.X
	m[3][1] = translation.Y
	m[3][2] = translation.Z
	return m
}

func Mat4Scale(scale Vec3) Mat4 {
	m := Mat4Identity()
	m[0][0] = scale.X
	m[1][1] = scale.Y
	m[2][2] = scale.Z
	return m
}

func Mat4RotationX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func Mat4RotationZ(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mat4ModelXYZ builds a model matrix from a scale, three rotation angles in
// degrees about the world X, Y and Z axes, and a translation. The result is
// Translate · RotateX · RotateY · RotateZ · Scale: scale applies first, then Z,
// Y and X rotations, then translation. Shaders consume it as a single "model"
// uniform so the order is fixed.
func Mat4ModelXYZ(scale Vec3, rotX, rotY, rotZ float32, translate Vec3) Mat4 {
	return Mat4Scale(scale).
		Mul(Mat4RotationZ(Radians(rotZ))).
		Mul(Mat4RotationY(Radians(rotY))).
		Mul(Mat4RotationX(Radians(rotX))).
		Mul(Mat4Translation(translate))
}

func Mat4Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalfFovy := math32.Tan(fovY / 2)

	var m Mat4
	m[0][0] = 1 / (aspect * tanHalfFovy)
	m[1][1] = 1 / tanHalfFovy
	m[2][2] = -(far + near) / (far - near)
	m[2][3] = -1
	m[3][2] = -(2 * far * near) / (far - near)
	return m
}

func Mat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	m := Mat4Identity()
	m[0][0] = 2 / (right - left)
	m[1][1] = 2 / (top - bottom)
	m[2][2] = -2 / (far - near)
	m[3][0] = -(right + left) / (right - left)
	m[3][1] = -(top + bottom) / (top - bottom)
	m[3][2] = -(far + near) / (far - near)
	return m
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	zAxis := eye.Sub(target).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Mat4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}

// NormalMatrix returns the inverse transpose of the upper 3x3 block, for
// transforming normals under non-uniform scale. A singular block yields the
// block unchanged.
func (m Mat4) NormalMatrix() Mat4 {
	a, b, c := m[0][0], m[1][0], m[2][0]
	d, e, f := m[0][1], m[1][1], m[2][1]
	g, h, i := m[0][2], m[1][2], m[2][2]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math32.Abs(det) < 1e-12 {
		out := m
		out[3] = [4]float32{0, 0, 0, 1}
		out[0][3], out[1][3], out[2][3] = 0, 0, 0
		return out
	}
	inv := 1 / det

	// Cofactor matrix divided by the determinant is (M^-1)^T.
	out := Mat4Identity()
	out[0][0] = (e*i - f*h) * inv
	out[1][0] = -(d*i - f*g) * inv
	out[2][0] = (d*h - e*g) * inv
	out[0][1] = -(b*i - c*h) * inv
	out[1][1] = (a*i - c*g) * inv
	out[2][1] = -(a*h - b*g) * inv
	out[0][2] = (b*f - c*e) * inv
	out[1][2] = -(a*f - c*d) * inv
	out[2][2] = (a*e - b*d) * inv
	return out
}
