package transform

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/history"
	"sceneeditor/internal/scene"
)

var eye = rl.Vector3{X: 0, Y: 5, Z: 10}

type fakeInput struct {
	down    bool
	ctrl    bool
	pressed int32
}

func (f *fakeInput) MouseDown() bool           { return f.down }
func (f *fakeInput) MousePosition() rl.Vector2 { return rl.Vector2{} }
func (f *fakeInput) CtrlDown() bool            { return f.ctrl }
func (f *fakeInput) KeyPressed(key int32) bool { return f.pressed == key }

// fakeRays casts from the eye through a world point chosen by the test.
type fakeRays struct {
	aim rl.Vector3
}

func (f *fakeRays) Ray(rl.Vector2, rl.Camera3D) rl.Ray {
	return rl.Ray{Position: eye, Direction: rl.Vector3Normalize(rl.Vector3Subtract(f.aim, eye))}
}

type fakeControl struct {
	attached, detached int
}

func (f *fakeControl) AttachControl() { f.attached++ }
func (f *fakeControl) DetachControl() { f.detached++ }

type fixture struct {
	core    *editor.Core
	scene   *scene.Scene
	tr      *Transformer
	input   *fakeInput
	rays    *fakeRays
	control *fakeControl
	history *history.Stack
	changed []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		core:    editor.New(zap.NewNop()),
		scene:   scene.New("Main"),
		input:   &fakeInput{},
		rays:    &fakeRays{},
		control: &fakeControl{},
		history: history.New(0),
	}
	f.core.AddScene(f.scene, true)

	cam := scene.NewCamera("camera", "Camera")
	cam.Transform().Position = eye
	require.NoError(t, f.scene.Add(cam))
	f.core.SetCamera(cam)

	f.tr = New(f.core, f.history, f.input, f.rays, f.control, zap.NewNop(), DefaultOptions())
	f.core.Subscribe(editor.OnScene(event.ObjectChanged), func(ev event.Event) {
		f.changed = append(f.changed, ev.Scene.Object.ID())
	})
	return f
}

func (f *fixture) selectObject(t *testing.T, obj scene.Object) {
	t.Helper()
	require.NoError(t, event.SendSceneEvent(f.core, obj, event.ObjectPicked))
}

func (f *fixture) frame(aim rl.Vector3, down bool) {
	f.rays.aim = aim
	f.input.down = down
	f.core.Update(1.0 / 60)
}

func TestOverlayIsComposited(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.tr.Overlay().AutoClear)
	assert.Equal(t, f.scene, f.core.CurrentScene())
	assert.True(t, f.core.Renders(f.tr.Overlay()))
	assert.Len(t, f.tr.Overlay().Meshes(), 9)
}

func TestTranslateAlongX(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	f.selectObject(t, m)

	f.frame(rl.Vector3{X: 1.118034}, true)
	axis, dragging := f.tr.Dragging()
	require.True(t, dragging)
	assert.Equal(t, AxisX, axis)
	assert.Equal(t, 1, f.control.detached)
	assert.Equal(t, float32(1), f.tr.gizmos[FamilyPosition][0].mesh.Material.Emissive)

	f.frame(rl.Vector3{X: 3}, true)
	pos := m.Transform().Position
	assert.InDelta(t, 1.881966, pos.X, 1e-3)
	assert.InDelta(t, 0, pos.Y, 1e-6)
	assert.InDelta(t, 0, pos.Z, 1e-6)

	f.input.ctrl = true
	f.frame(rl.Vector3{X: 4}, true)
	assert.InDelta(t, 1.981966, m.Transform().Position.X, 1e-3)

	f.frame(rl.Vector3{X: 4}, false)
	_, dragging = f.tr.Dragging()
	assert.False(t, dragging)
	assert.Equal(t, 1, f.control.attached)
	assert.Equal(t, float32(0), f.tr.gizmos[FamilyPosition][0].mesh.Material.Emissive)
	assert.Equal(t, []string{"box"}, f.changed)
	assert.Equal(t, 1, f.history.Len())

	_, ok := f.history.Undo(f.scene)
	require.True(t, ok)
	assert.Equal(t, float32(0), m.Transform().Position.X)
}

func TestRotateAroundY(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	f.selectObject(t, m)

	f.input.pressed = rl.KeyE
	f.frame(rl.Vector3{X: 1.265, Z: 1.265}, true)
	f.input.pressed = 0
	assert.Equal(t, FamilyRotation, f.tr.Family())
	axis, dragging := f.tr.Dragging()
	require.True(t, dragging)
	assert.Equal(t, AxisY, axis)

	f.frame(rl.Vector3{X: 1.789}, true)
	assert.InDelta(t, 45, m.Transform().Rotation.Y, 0.5)
	assert.InDelta(t, 0, m.Transform().Rotation.X, 1e-6)
}

func TestRotatingDirectionalLightEditsDirection(t *testing.T) {
	f := newFixture(t)
	l := scene.NewLight("sun", "Sun", scene.LightDirectional)
	require.NoError(t, f.scene.Add(l))
	f.selectObject(t, l)
	f.tr.SetFamily(FamilyRotation)

	f.frame(rl.Vector3{X: 1.265, Z: 1.265}, true)
	f.frame(rl.Vector3{X: 1.789}, true)

	assert.InDelta(t, -0.5, l.Direction.Y, 0.01)
	assert.Equal(t, rl.Vector3{}, l.Transform().Rotation)
}

func TestMissLeavesObjectAlone(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	f.selectObject(t, m)

	f.frame(rl.Vector3{X: -20, Y: 3}, true)
	_, dragging := f.tr.Dragging()
	assert.False(t, dragging)
	f.frame(rl.Vector3{X: -20, Y: 3}, false)
	assert.Empty(t, f.changed)
	assert.Equal(t, 0, f.history.Len())
}

func TestUnsupportedObjectHidesGizmos(t *testing.T) {
	f := newFixture(t)
	ps := scene.NewParticleSystem("ps", "Particles", 100)
	require.NoError(t, f.scene.Add(ps))
	f.selectObject(t, ps)

	f.frame(rl.Vector3{X: 1.118034}, true)
	_, dragging := f.tr.Dragging()
	assert.False(t, dragging)
	for _, m := range f.tr.Overlay().Meshes() {
		assert.False(t, m.Visible, m.Name())
	}
}

func TestFamilyNoneHidesGizmos(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	f.selectObject(t, m)

	f.input.pressed = rl.KeyQ
	f.frame(rl.Vector3{X: 1.118034}, true)
	assert.Equal(t, FamilyNone, f.tr.Family())
	assert.Equal(t, float32(0), m.Transform().Position.X)
	for _, g := range f.tr.Overlay().Meshes() {
		assert.False(t, g.Visible)
	}
}

func TestRemovedNodeIsDropped(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	f.selectObject(t, m)
	require.Equal(t, m, f.tr.Node())

	_, err := f.scene.Dispose("box")
	require.NoError(t, err)
	require.NoError(t, event.SendSceneEvent(f.core, m, event.ObjectRemoved))
	assert.Nil(t, f.tr.Node())
}

func TestRemovingDraggedNodeRestoresCamera(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	f.selectObject(t, m)

	f.frame(rl.Vector3{X: 1.118034}, true)
	_, dragging := f.tr.Dragging()
	require.True(t, dragging)
	require.Equal(t, 1, f.control.detached)

	_, err := f.scene.Dispose("box")
	require.NoError(t, err)
	require.NoError(t, event.SendSceneEvent(f.core, m, event.ObjectRemoved))

	_, dragging = f.tr.Dragging()
	assert.False(t, dragging)
	assert.Equal(t, f.control.detached, f.control.attached)
	assert.Equal(t, float32(0), f.tr.gizmos[FamilyPosition][0].mesh.Material.Emissive)
	assert.Empty(t, f.changed, "a removed node is not reported as changed")

	f.frame(rl.Vector3{}, false)
	assert.Equal(t, 1, f.control.attached)
}

func TestOnlyCurrentFamilyVisible(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	f.selectObject(t, m)
	f.tr.SetFamily(FamilyScaling)
	f.frame(rl.Vector3{}, false)

	for fam := range f.tr.gizmos {
		for _, g := range f.tr.gizmos[fam] {
			assert.Equal(t, g.family == FamilyScaling, g.mesh.Visible)
		}
	}
}

func TestPlaneIntersection(t *testing.T) {
	p := PlaneFromPointNormal(rl.Vector3{Y: 2}, rl.Vector3{Y: 3})
	pt, ok := p.IntersectRay(rl.Ray{Position: rl.Vector3{X: 1, Y: 5}, Direction: rl.Vector3{Y: -1}})
	require.True(t, ok)
	assert.InDelta(t, 0, p.SignedDistance(pt), 1e-5)
	assert.InDelta(t, 2, pt.Y, 1e-5)

	_, ok = p.IntersectRay(rl.Ray{Position: rl.Vector3{Y: 5}, Direction: rl.Vector3{X: 1}})
	assert.False(t, ok)
	_, ok = p.IntersectRay(rl.Ray{Position: rl.Vector3{Y: 5}, Direction: rl.Vector3{Y: 1}})
	assert.False(t, ok)
}

func TestWrapDegrees(t *testing.T) {
	assert.Equal(t, float32(-170), wrapDegrees(190))
	assert.Equal(t, float32(170), wrapDegrees(-190))
	assert.Equal(t, float32(-180), wrapDegrees(180))
}

func TestParseFamily(t *testing.T) {
	f, ok := ParseFamily("scaling")
	assert.True(t, ok)
	assert.Equal(t, FamilyScaling, f)
	_, ok = ParseFamily("shear")
	assert.False(t, ok)
}
