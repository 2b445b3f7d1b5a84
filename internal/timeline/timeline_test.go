package timeline

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/scene"
)

func animatedScene(t *testing.T) (*editor.Core, *scene.Scene, *scene.Mesh) {
	t.Helper()
	core := editor.New(zap.NewNop())
	s := scene.New("Main")
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	a := scene.NewAnimation("move", scene.AnimatePosition, 24)
	a.SetKey(0, rl.Vector3{})
	a.SetKey(100, rl.Vector3{X: 10})
	m.AddAnimation(a)
	require.NoError(t, s.Add(m))
	core.AddScene(s, true)
	return core, s, m
}

func TestFrameAtIsClamped(t *testing.T) {
	core, _, _ := animatedScene(t)
	tl := New(core, zap.NewNop())

	assert.Equal(t, float32(50), tl.FrameAt(200, 400))
	assert.Equal(t, float32(0), tl.FrameAt(-30, 400))
	assert.Equal(t, float32(100), tl.FrameAt(900, 400))
	assert.Equal(t, float32(0), tl.FrameAt(10, 0))
}

func TestScrubSeeksAnimatedNodes(t *testing.T) {
	core, s, m := animatedScene(t)
	tl := New(core, zap.NewNop())

	tl.Scrub(100, 400)

	assert.Equal(t, float32(25), s.Frame())
	assert.InDelta(t, 2.5, m.Transform().Position.X, 1e-5)
}

func TestPlaybackAdvancesAndLoops(t *testing.T) {
	core, s, m := animatedScene(t)
	s.Animation.FramesPerSecond = 20
	s.Animation.Speed = 2
	tl := New(core, zap.NewNop())

	tl.Play()
	core.Update(1)
	assert.Equal(t, float32(40), s.Frame())
	assert.InDelta(t, 4, m.Transform().Position.X, 1e-5)

	core.Update(2)
	assert.Equal(t, float32(20), s.Frame())
	assert.True(t, tl.Playing())

	tl.Stop()
	core.Update(1)
	assert.Equal(t, float32(20), s.Frame())
}

func TestPlaybackStopsAtEndWithoutLoop(t *testing.T) {
	core, s, _ := animatedScene(t)
	s.Animation.Loop = false
	tl := New(core, zap.NewNop())

	tl.Play()
	core.Update(10)
	assert.Equal(t, float32(100), s.Frame())
	assert.False(t, tl.Playing())
}

func TestNothingToPlay(t *testing.T) {
	core := editor.New(zap.NewNop())
	core.AddScene(scene.New("Empty"), true)
	tl := New(core, zap.NewNop())

	tl.Play()
	core.Update(1)
	assert.False(t, tl.Playing())
	assert.Equal(t, float32(0), tl.Frame())
}
