package app

import (
	"os"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sceneeditor/internal/config"
	"sceneeditor/internal/project"
	"sceneeditor/internal/scene"
	"sceneeditor/internal/transform"
)

type fakeInput struct {
	down    bool
	ctrl    bool
	pressed int32
	pos     rl.Vector2
}

func (f *fakeInput) MouseDown() bool           { return f.down }
func (f *fakeInput) MousePosition() rl.Vector2 { return f.pos }
func (f *fakeInput) CtrlDown() bool            { return f.ctrl }
func (f *fakeInput) KeyPressed(key int32) bool { return f.pressed == key }

type fakeRays struct {
	ray rl.Ray
}

func (f *fakeRays) Ray(rl.Vector2, rl.Camera3D) rl.Ray { return f.ray }

type fakeCameraInput struct {
	look bool
}

func (f *fakeCameraInput) LookDown() bool         { return f.look }
func (f *fakeCameraInput) MouseDelta() rl.Vector2 { return rl.Vector2{} }
func (f *fakeCameraInput) KeyDown(int32) bool     { return false }
func (f *fakeCameraInput) Wheel() float32         { return 0 }
func (f *fakeCameraInput) ShiftDown() bool        { return false }

type memStorage map[string][]byte

func (m memStorage) Save(name string, data []byte) error { m[name] = data; return nil }

func (m memStorage) Load(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

type fixture struct {
	app     *App
	input   *fakeInput
	rays    *fakeRays
	look    *fakeCameraInput
	storage memStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		input:   &fakeInput{},
		rays:    &fakeRays{},
		look:    &fakeCameraInput{},
		storage: memStorage{},
	}
	f.app = New(config.Default(), zap.NewNop(), Options{
		Input:       f.input,
		Rays:        f.rays,
		CameraInput: f.look,
		Storage:     f.storage,
	})
	t.Cleanup(f.app.Close)
	return f
}

func (f *fixture) click(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.app.MainToolbar().Toolbar().Click(id))
}

// lastAdded returns the single object the user added to the scene.
func lastAdded[T scene.Object](t *testing.T, objs []T) T {
	t.Helper()
	var found []T
	for _, o := range objs {
		if o.Added() {
			found = append(found, o)
		}
	}
	require.Len(t, found, 1)
	return found[0]
}

func TestDefaultScene(t *testing.T) {
	s := DefaultScene()
	require.NotNil(t, s.ActiveCamera())
	assert.Equal(t, "camera", s.ActiveCamera().ID())
	for _, id := range []string{"ambient", "ground", "box"} {
		obj := s.Lookup(id)
		require.NotNil(t, obj, id)
		assert.False(t, obj.Added(), id)
	}
}

func TestNewShowsBaseScene(t *testing.T) {
	f := newFixture(t)
	a := f.app

	assert.Same(t, a.Scene(), a.Core().CurrentScene())
	assert.Same(t, a.Camera(), a.Core().Camera())
	assert.NotNil(t, a.Graph().Tree().Node("box"))
	assert.NotNil(t, a.Graph().Tree().Node("ground"))
	assert.Nil(t, a.Selected())
	assert.True(t, a.Core().Renders(a.Transformer().Overlay()))
}

func TestAddDeleteAndExportPointLight(t *testing.T) {
	f := newFixture(t)
	a := f.app

	f.click(t, "add:point-light")
	light := lastAdded(t, a.Scene().Lights())
	assert.Equal(t, scene.LightPoint, light.LightType)
	assert.NotNil(t, a.Graph().Tree().Node(light.ID()))

	f.click(t, "file:export")
	p, err := project.Unmarshal(f.storage[a.Exporter().Name()])
	require.NoError(t, err)
	require.Len(t, p.Nodes, 1)
	assert.Equal(t, light.ID(), p.Nodes[0].ID)

	require.NoError(t, a.Select(light))
	f.click(t, "edit:delete")
	assert.Nil(t, a.Scene().Lookup(light.ID()))
	assert.Nil(t, a.Graph().Tree().Node(light.ID()))
	assert.Nil(t, a.Selected())
	assert.Nil(t, a.Transformer().Node())
}

func TestSelectionReachesEveryPanel(t *testing.T) {
	f := newFixture(t)
	a := f.app
	box := a.Scene().Lookup("box")

	require.NoError(t, a.Select(box))
	assert.Same(t, box, a.Selected())
	assert.Same(t, box, a.Transformer().Node())
	assert.Equal(t, "box", a.Graph().Tree().Selected())
	tabs := a.Edition().Tabs().VisibleTabs()
	assert.Contains(t, tabs, "transforms")
	assert.NotContains(t, tabs, "scene")

	require.NoError(t, a.Select(a.Scene()))
	tabs = a.Edition().Tabs().VisibleTabs()
	assert.Contains(t, tabs, "scene")
	assert.NotContains(t, tabs, "transforms")
}

func TestViewportClickPicksMesh(t *testing.T) {
	f := newFixture(t)
	a := f.app
	vp := a.Layout().Viewport()
	f.rays.ray = rl.Ray{Position: rl.Vector3{Y: 0.5, Z: 10}, Direction: rl.Vector3{Z: -1}}

	// Outside the viewport: the graph panel.
	f.input.pos = rl.Vector2{X: 10, Y: vp.Y + 10}
	f.input.down = true
	a.Frame(0.016)
	assert.Nil(t, a.Selected())

	f.input.down = false
	a.Frame(0.016)
	f.input.pos = rl.Vector2{X: vp.X + vp.Width/2, Y: vp.Y + vp.Height/2}
	f.input.down = true
	a.Frame(0.016)
	require.NotNil(t, a.Selected())
	assert.Equal(t, "box", a.Selected().ID())

	// Holding the button does not pick again.
	require.NoError(t, a.Select(a.Scene()))
	a.Frame(0.016)
	assert.Same(t, a.Scene(), a.Selected())
}

func TestViewportMissKeepsSelection(t *testing.T) {
	f := newFixture(t)
	a := f.app
	vp := a.Layout().Viewport()
	require.NoError(t, a.Select(a.Scene().Lookup("ground")))

	f.rays.ray = rl.Ray{Position: rl.Vector3{Y: 5, Z: 10}, Direction: rl.Vector3{Y: 1}}
	f.input.pos = rl.Vector2{X: vp.X + 1, Y: vp.Y + 1}
	f.input.down = true
	a.Frame(0.016)
	assert.Equal(t, "ground", a.Selected().ID())
}

func TestFlyingCameraHidesGizmoKeys(t *testing.T) {
	f := newFixture(t)
	a := f.app
	require.Equal(t, transform.FamilyPosition, a.Transformer().Family())

	f.look.look = true
	f.input.pressed = rl.KeyE
	a.Frame(0.016)
	assert.Equal(t, transform.FamilyPosition, a.Transformer().Family())

	f.look.look = false
	a.Frame(0.016)
	assert.Equal(t, transform.FamilyRotation, a.Transformer().Family())
}

func TestShortcuts(t *testing.T) {
	f := newFixture(t)
	a := f.app
	box := a.Scene().Lookup("box")
	require.NoError(t, a.Select(box))

	f.input.ctrl = true
	f.input.pressed = rl.KeyD
	a.Frame(0.016)
	clone := lastAdded(t, a.Scene().Meshes())
	assert.NotEqual(t, "box", clone.ID())
	assert.NotNil(t, a.Graph().Tree().Node(clone.ID()))

	f.input.pressed = rl.KeyS
	a.Frame(0.016)
	assert.Contains(t, f.storage, a.Exporter().Name())

	f.input.ctrl = false
	f.input.pressed = rl.KeyDelete
	a.Frame(0.016)
	assert.Nil(t, a.Scene().Lookup("box"))
}

func TestImportReplacesSceneAndSelectsIt(t *testing.T) {
	f := newFixture(t)
	a := f.app
	f.click(t, "add:sphere")
	sphere := lastAdded(t, a.Scene().Meshes())
	sphere.Transform().Position = rl.Vector3{X: 3}
	f.click(t, "file:export")
	before := a.Scene()

	f.click(t, "file:import")
	after := a.Scene()
	require.NotSame(t, before, after)
	assert.Same(t, after, a.Selected())
	assert.Zero(t, a.History().Len())
	assert.Equal(t, "camera", after.ActiveCamera().ID())

	imported, ok := after.Lookup(sphere.ID()).(*scene.Mesh)
	require.True(t, ok)
	assert.Equal(t, float32(3), imported.Transform().Position.X)
	assert.NotNil(t, a.Graph().Tree().Node(sphere.ID()))
	assert.NotNil(t, a.Graph().Tree().Node("box"))
}

func TestDeletedBaseNodeStaysDeletedAfterImport(t *testing.T) {
	f := newFixture(t)
	a := f.app
	require.NoError(t, a.Select(a.Scene().Lookup("box")))
	f.click(t, "edit:delete")
	f.click(t, "file:export")

	f.click(t, "file:import")
	assert.Nil(t, a.Scene().Lookup("box"))
	assert.Nil(t, a.Graph().Tree().Node("box"))
	assert.NotNil(t, a.Scene().Lookup("ground"))
}

func TestImportFailureAlerts(t *testing.T) {
	f := newFixture(t)
	a := f.app
	before := a.Scene()

	f.click(t, "file:import")
	assert.Same(t, before, a.Scene())
	_, ok := a.Notifications().Last()
	assert.True(t, ok)
}

func TestSessionRoundTrip(t *testing.T) {
	f := newFixture(t)
	a := f.app
	a.Camera().Position = rl.Vector3{X: 1, Y: 2, Z: 3}
	a.Camera().MoveSpeed = 20
	a.Transformer().SetFamily(transform.FamilyScaling)
	require.NoError(t, a.Select(a.Scene().Lookup("box")))
	saved := a.Session()
	assert.Equal(t, "scaling", saved.Family)
	assert.Equal(t, "box", saved.SelectedID)

	g := newFixture(t)
	g.app.RestoreSession(saved)
	assert.Equal(t, rl.Vector3{X: 1, Y: 2, Z: 3}, g.app.Camera().Position)
	assert.Equal(t, float32(20), g.app.Camera().MoveSpeed)
	assert.Equal(t, transform.FamilyScaling, g.app.Transformer().Family())
	assert.Equal(t, "box", g.app.Selected().ID())

	g.app.RestoreSession(&config.Session{Family: "bogus", SelectedID: "gone"})
	assert.Equal(t, transform.FamilyScaling, g.app.Transformer().Family())
	assert.Equal(t, "box", g.app.Selected().ID())
}

func TestLayoutViewportFollowsResize(t *testing.T) {
	l := &Layout{Width: 1600, Height: 900, TimelineHeight: 40}
	vp := l.Viewport
	assert.Equal(t, float32(1600-graphWidth-editionWidth), vp().Width)

	l.Width = 1200
	assert.Equal(t, float32(1200-graphWidth-editionWidth), vp().Width)
	assert.Equal(t, l.Height-l.TimelineHeight, l.Timeline().Y)
}
