package scene

import (
	"github.com/chewxy/math32"

	"desk-replica/math"
)

type CameraMovement int

const (
	MoveForward CameraMovement = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

const (
	minCameraSpeed = 0.5
	maxCameraSpeed = 50
	maxPitch       = 89
)

// Camera is a free-flying camera steered by yaw and pitch in degrees. It can
// switch between perspective and orthographic projection.
type Camera struct {
	Position    math.Vec3
	Yaw         float32
	Pitch       float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
	Speed       float32
	Sensitivity float32

	// OrthoHeight is the visible world height in orthographic mode.
	OrthoHeight  float32
	Orthographic bool

	front math.Vec3
	right math.Vec3
	up    math.Vec3
}

func NewCamera(position math.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:    position,
		Yaw:         yaw,
		Pitch:       pitch,
		FOV:         45,
		NearPlane:   0.1,
		FarPlane:    100,
		Speed:       10,
		Sensitivity: 0.1,
		OrthoHeight: 30,
	}
	c.updateVectors()
	return c
}

func (c *Camera) Front() math.Vec3 { return c.front }
func (c *Camera) Right() math.Vec3 { return c.right }
func (c *Camera) Up() math.Vec3 { return c.up }

// Move translates the camera along its own axes; MoveUp and MoveDown use its
// up vector.
func (c *Camera) Move(dir CameraMovement, dt float32) {
	step := c.Speed * dt
	switch dir {
	case MoveForward:
		c.Position = c.Position.Add(c.front.Mul(step))
	case MoveBackward:
		c.Position = c.Position.Sub(c.front.Mul(step))
	case MoveLeft:
		c.Position = c.Position.Sub(c.right.Mul(step))
	case MoveRight:
		c.Position = c.Position.Add(c.right.Mul(step))
	case MoveUp:
		c.Position = c.Position.Add(c.up.Mul(step))
	case MoveDown:
		c.Position = c.Position.Sub(c.up.Mul(step))
	}
}

// Look turns the camera by a cursor offset. Positive dy looks up.
func (c *Camera) Look(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = math32.Max(-maxPitch, math32.Min(maxPitch, c.Pitch))
	c.updateVectors()
}

// AdjustSpeed changes the movement speed by a scroll offset.
func (c *Camera) AdjustSpeed(delta float32) {
	c.Speed = math32.Max(minCameraSpeed, math32.Min(maxCameraSpeed, c.Speed+delta))
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Position.Add(c.front), c.up)
}

func (c *Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if c.Orthographic {
		h := c.OrthoHeight / 2
		w := h * aspect
		return math.Mat4Orthographic(-w, w, -h, h, c.NearPlane, c.FarPlane)
	}
	return math.Mat4Perspective(math.Radians(c.FOV), aspect, c.NearPlane, c.FarPlane)
}

// Apply pushes the view, projection and eye position for one frame.
func (c *Camera) Apply(bridge ShaderBridge, aspect float32) {
	bridge.SetMat4(UniformView, c.ViewMatrix())
	bridge.SetMat4(UniformProjection, c.ProjectionMatrix(aspect))
	bridge.SetVec3(UniformViewPosition, c.Position)
}

func (c *Camera) updateVectors() {
	yaw, pitch := math.Radians(c.Yaw), math.Radians(c.Pitch)
	c.front = math.NewVec3(
		math32.Cos(yaw)*math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw)*math32.Cos(pitch),
	).Normalize()
	c.right = c.front.Cross(math.Vec3Up).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
