package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"desk-replica/math"
	"desk-replica/scene"
)

const viewResetSeconds = 0.6

// cameraHome is the pose the view returns to.
type cameraHome struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32
}

// viewReset eases the camera back to its home pose.
type viewReset struct {
	x, y, z    *gween.Tween
	yaw, pitch *gween.Tween
}

func newViewReset(cam *scene.Camera, home cameraHome) *viewReset {
	tween := func(from, to float32) *gween.Tween {
		return gween.New(from, to, viewResetSeconds, ease.InOutQuad)
	}
	return &viewReset{
		x:     tween(cam.Position.X, home.Position.X),
		y:     tween(cam.Position.Y, home.Position.Y),
		z:     tween(cam.Position.Z, home.Position.Z),
		yaw:   tween(cam.Yaw, cam.Yaw+wrapDegrees(home.Yaw-cam.Yaw)),
		pitch: tween(cam.Pitch, home.Pitch),
	}
}

// Step advances the animation by dt and reports whether it has finished.
func (v *viewReset) Step(cam *scene.Camera, dt float32) bool {
	x, done := v.x.Update(dt)
	y, _ := v.y.Update(dt)
	z, _ := v.z.Update(dt)
	yaw, _ := v.yaw.Update(dt)
	pitch, _ := v.pitch.Update(dt)

	cam.Position = math.NewVec3(x, y, z)
	cam.Yaw = yaw
	cam.Pitch = pitch
	cam.Look(0, 0)
	return done
}

// wrapDegrees maps an angle difference into [-180, 180) so the reset turns
// the short way round.
func wrapDegrees(d float32) float32 {
	for d >= 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}
