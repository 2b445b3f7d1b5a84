package transform

import rl "github.com/gen2brain/raylib-go/raylib"

// Input is the per-frame pointer and keyboard state the transformer polls.
type Input interface {
	MouseDown() bool
	MousePosition() rl.Vector2
	CtrlDown() bool
	KeyPressed(key int32) bool
}

// RayCaster turns a screen position into a world ray.
type RayCaster interface {
	Ray(screen rl.Vector2, cam rl.Camera3D) rl.Ray
}

// CameraControl is implemented by the editor camera so a gizmo drag does not
// also move the view.
type CameraControl interface {
	AttachControl()
	DetachControl()
}

// RaylibInput reads the window's input state.
type RaylibInput struct{}

func (RaylibInput) MouseDown() bool { return rl.IsMouseButtonDown(rl.MouseLeftButton) }

func (RaylibInput) MousePosition() rl.Vector2 { return rl.GetMousePosition() }

func (RaylibInput) CtrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}

func (RaylibInput) KeyPressed(key int32) bool { return rl.IsKeyPressed(key) }

// RaylibRays casts rays through the window's projection.
type RaylibRays struct{}

func (RaylibRays) Ray(screen rl.Vector2, cam rl.Camera3D) rl.Ray {
	return rl.GetScreenToWorldRay(screen, cam)
}
