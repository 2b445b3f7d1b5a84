package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is the subset of window input the fly camera reads each frame.
type Input interface {
	LookDown() bool
	MouseDelta() rl.Vector2
	KeyDown(key int32) bool
	Wheel() float32
	ShiftDown() bool
}

// EditorCamera is a fly camera: hold the right mouse button to look around
// and fly with WASD, E and Q.
type EditorCamera struct {
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
	Fov       float32

	input    Input
	detached int

	zooming      bool
	zoomProgress float32
	zoomStart    rl.Vector3
	zoomTarget   rl.Vector3
}

func New(pos rl.Vector3, input Input) *EditorCamera {
	return &EditorCamera{
		Position:  pos,
		Yaw:       -135.0,
		Pitch:     -30.0,
		MoveSpeed: 8.0, // Units per second
		LookSpeed: 0.1,
		Fov:       45,
		input:     input,
	}
}

// DetachControl stops the camera from reacting to input until the matching
// AttachControl. Calls nest.
func (c *EditorCamera) DetachControl() { c.detached++ }

func (c *EditorCamera) AttachControl() {
	if c.detached > 0 {
		c.detached--
	}
}

func (c *EditorCamera) Controlled() bool { return c.detached == 0 }

// Flying reports whether the user is currently steering the camera.
func (c *EditorCamera) Flying() bool {
	return c.Controlled() && c.input != nil && c.input.LookDown()
}

func (c *EditorCamera) Update(deltaTime float32) {
	c.updateZoom(deltaTime)
	if !c.Controlled() || c.input == nil {
		return
	}

	if c.input.LookDown() {
		// Manual control cancels a focus animation
		c.zooming = false

		delta := c.input.MouseDelta()
		c.Yaw += delta.X * c.LookSpeed
		c.Pitch -= delta.Y * c.LookSpeed
		if c.Pitch > 89 {
			c.Pitch = 89
		}
		if c.Pitch < -89 {
			c.Pitch = -89
		}

		forward, right := c.directions()
		speed := c.MoveSpeed * deltaTime
		if c.input.KeyDown(rl.KeyW) {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(forward, speed))
		}
		if c.input.KeyDown(rl.KeyS) {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(forward, -speed))
		}
		if c.input.KeyDown(rl.KeyA) {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(right, speed))
		}
		if c.input.KeyDown(rl.KeyD) {
			c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(right, -speed))
		}
		if c.input.KeyDown(rl.KeyE) {
			c.Position.Y += speed
		}
		if c.input.KeyDown(rl.KeyQ) {
			c.Position.Y -= speed
		}
	}

	// Scroll wheel + Shift adjusts fly speed
	if scroll := c.input.Wheel(); scroll != 0 && c.input.ShiftDown() {
		c.MoveSpeed += scroll * 2.0
		if c.MoveSpeed < 1.0 {
			c.MoveSpeed = 1.0
		}
		if c.MoveSpeed > 100.0 {
			c.MoveSpeed = 100.0
		}
	}
}

// Focus starts a short animation that brings target into view from the
// current viewing direction.
func (c *EditorCamera) Focus(target rl.Vector3, radius float32) {
	distance := radius * 3
	if distance < 3 {
		distance = 3
	}
	forward, _ := c.directions()
	c.zooming = true
	c.zoomProgress = 0
	c.zoomStart = c.Position
	c.zoomTarget = rl.Vector3Subtract(target, rl.Vector3Scale(forward, distance))
}

func (c *EditorCamera) Zooming() bool { return c.zooming }

func (c *EditorCamera) updateZoom(deltaTime float32) {
	if !c.zooming {
		return
	}
	// Completes in ~0.25 seconds
	c.zoomProgress += deltaTime * 4
	if c.zoomProgress >= 1 {
		c.zooming = false
		c.Position = c.zoomTarget
		return
	}
	t := c.zoomProgress
	ease := 1 - (1-t)*(1-t)*(1-t)
	c.Position = rl.Vector3Lerp(c.zoomStart, c.zoomTarget, ease)
}

func (c *EditorCamera) directions() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	forward = rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	right = rl.Vector3{
		X: float32(math.Sin(yawRad)),
		Y: 0,
		Z: float32(-math.Cos(yawRad)),
	}
	return
}

// LookAt points the camera at target without moving it.
func (c *EditorCamera) LookAt(target rl.Vector3) {
	dir := rl.Vector3Normalize(rl.Vector3Subtract(target, c.Position))
	c.Pitch = float32(math.Asin(float64(dir.Y))) * rl.Rad2deg
	c.Yaw = float32(math.Atan2(float64(dir.Z), float64(dir.X))) * rl.Rad2deg
}

func (c *EditorCamera) Raylib() rl.Camera3D {
	forward, _ := c.directions()
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, forward),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fov,
		Projection: rl.CameraPerspective,
	}
}

// RaylibInput reads the window's input state.
type RaylibInput struct{}

func (RaylibInput) LookDown() bool         { return rl.IsMouseButtonDown(rl.MouseRightButton) }
func (RaylibInput) MouseDelta() rl.Vector2 { return rl.GetMouseDelta() }
func (RaylibInput) KeyDown(key int32) bool { return rl.IsKeyDown(key) }
func (RaylibInput) Wheel() float32         { return rl.GetMouseWheelMove() }
func (RaylibInput) ShiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}
