package camera

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInput struct {
	look  bool
	delta rl.Vector2
	keys  map[int32]bool
	wheel float32
	shift bool
}

func (f *fakeInput) LookDown() bool         { return f.look }
func (f *fakeInput) MouseDelta() rl.Vector2 { return f.delta }
func (f *fakeInput) KeyDown(key int32) bool { return f.keys[key] }
func (f *fakeInput) Wheel() float32         { return f.wheel }
func (f *fakeInput) ShiftDown() bool        { return f.shift }

func TestFlyForward(t *testing.T) {
	in := &fakeInput{look: true, keys: map[int32]bool{rl.KeyW: true}}
	c := New(rl.Vector3{}, in)
	c.Yaw, c.Pitch = 0, 0

	c.Update(0.5)
	assert.InDelta(t, 4, c.Position.X, 1e-4)
	assert.InDelta(t, 0, c.Position.Z, 1e-4)
}

func TestNoMovementWithoutLookButton(t *testing.T) {
	in := &fakeInput{keys: map[int32]bool{rl.KeyW: true}}
	c := New(rl.Vector3{}, in)
	c.Update(1)
	assert.Equal(t, rl.Vector3{}, c.Position)
}

func TestDetachedControlIgnoresInput(t *testing.T) {
	in := &fakeInput{look: true, delta: rl.Vector2{X: 100}, keys: map[int32]bool{rl.KeyE: true}}
	c := New(rl.Vector3{}, in)
	yaw := c.Yaw

	c.DetachControl()
	c.DetachControl()
	c.AttachControl()
	assert.False(t, c.Flying())
	c.Update(1)
	assert.Equal(t, yaw, c.Yaw)
	assert.Equal(t, rl.Vector3{}, c.Position)

	c.AttachControl()
	c.AttachControl()
	require.True(t, c.Controlled())
	c.Update(1)
	assert.InDelta(t, yaw+10, c.Yaw, 1e-4)
	assert.InDelta(t, 8, c.Position.Y, 1e-4)
}

func TestPitchClamped(t *testing.T) {
	c := New(rl.Vector3{}, &fakeInput{look: true, delta: rl.Vector2{Y: -5000}})
	c.Update(0.016)
	assert.Equal(t, float32(89), c.Pitch)
}

func TestShiftWheelSpeed(t *testing.T) {
	in := &fakeInput{wheel: 100, shift: true}
	c := New(rl.Vector3{}, in)
	c.Update(0.016)
	assert.Equal(t, float32(100), c.MoveSpeed)

	in.shift = false
	in.wheel = -100
	c.Update(0.016)
	assert.Equal(t, float32(100), c.MoveSpeed)
}

func TestFocusAnimates(t *testing.T) {
	c := New(rl.Vector3{}, &fakeInput{})
	c.Yaw, c.Pitch = 0, 0
	c.Focus(rl.Vector3{X: 20}, 2)
	require.True(t, c.Zooming())

	c.Update(0.1)
	assert.True(t, c.Zooming())
	assert.Greater(t, c.Position.X, float32(0))

	c.Update(0.2)
	assert.False(t, c.Zooming())
	assert.InDelta(t, 14, c.Position.X, 1e-4)
}

func TestLookAt(t *testing.T) {
	c := New(rl.Vector3{}, nil)
	c.LookAt(rl.Vector3{Z: 5})
	cam := c.Raylib()
	assert.InDelta(t, 0, cam.Target.X, 1e-4)
	assert.InDelta(t, 1, cam.Target.Z, 1e-4)
	assert.Equal(t, float32(45), cam.Fovy)
}
