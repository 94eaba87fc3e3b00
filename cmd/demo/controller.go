package main

import (
	"desk-replica/core"
	"desk-replica/scene"
)

// maxFrameStep caps deltaTime so a hitch does not teleport the camera.
const maxFrameStep = 0.05

// CameraController maps keyboard, mouse and scroll input onto a fly camera.
// R eases the camera back to its home pose.
type CameraController struct {
	lastMouseX float64
	lastMouseY float64
	firstMouse bool
	scroll     float32

	home  cameraHome
	reset *viewReset
}

func NewCameraController(window *core.Window, home cameraHome) *CameraController {
	cc := &CameraController{firstMouse: true, home: home}
	window.CaptureCursor()
	window.SetScrollCallback(func(_, yoff float64) {
		cc.scroll += float32(yoff)
	})
	return cc
}

func (cc *CameraController) Update(window *core.Window, camera *scene.Camera, deltaTime float32) {
	if deltaTime > maxFrameStep {
		deltaTime = maxFrameStep
	}

	if window.IsKeyPressed(core.KeyEscape) {
		window.SetShouldClose(true)
	}

	mouseX, mouseY := window.GetCursorPos()
	if cc.firstMouse {
		cc.lastMouseX = mouseX
		cc.lastMouseY = mouseY
		cc.firstMouse = false
	}
	dx, dy := float32(mouseX-cc.lastMouseX), float32(cc.lastMouseY-mouseY) // screen Y grows downward
	cc.lastMouseX = mouseX
	cc.lastMouseY = mouseY

	if cc.reset == nil && window.IsKeyPressed(core.KeyR) {
		cc.reset = newViewReset(camera, cc.home)
	}
	if cc.reset != nil {
		if cc.reset.Step(camera, deltaTime) {
			cc.reset = nil
		}
		return
	}

	camera.Look(dx, dy)

	if cc.scroll != 0 {
		camera.AdjustSpeed(cc.scroll)
		cc.scroll = 0
	}

	moves := []struct {
		key int
		dir scene.CameraMovement
	}{
		{core.KeyW, scene.MoveForward},
		{core.KeyS, scene.MoveBackward},
		{core.KeyA, scene.MoveLeft},
		{core.KeyD, scene.MoveRight},
		{core.KeyE, scene.MoveUp},
		{core.KeyQ, scene.MoveDown},
	}
	for _, m := range moves {
		if window.IsKeyPressed(m.key) {
			camera.Move(m.dir, deltaTime)
		}
	}

	if window.IsKeyPressed(core.KeyP) {
		camera.Orthographic = false
	}
	if window.IsKeyPressed(core.KeyO) {
		camera.Orthographic = true
	}
}
