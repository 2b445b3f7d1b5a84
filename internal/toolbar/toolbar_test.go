package toolbar

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/factory"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/history"
	"sceneeditor/internal/scene"
	"sceneeditor/internal/transform"
)

type recorder struct {
	calls    []string
	exportFn func() error
}

func (r *recorder) Export() error {
	r.calls = append(r.calls, "export")
	if r.exportFn != nil {
		return r.exportFn()
	}
	return nil
}

func (r *recorder) Import() error                { r.calls = append(r.calls, "import"); return nil }
func (r *recorder) Delete(id string)             { r.calls = append(r.calls, "delete:"+id) }
func (r *recorder) Play()                        { r.calls = append(r.calls, "play") }
func (r *recorder) Stop()                        { r.calls = append(r.calls, "stop") }
func (r *recorder) SetFamily(f transform.Family) { r.calls = append(r.calls, "family:"+f.String()) }
func (r *recorder) Alert(_, message string)      { r.calls = append(r.calls, "alert:"+message) }

type fixture struct {
	core    *editor.Core
	scene   *scene.Scene
	main    *Main
	tools   *Tools
	rec     *recorder
	history *history.Stack
	added   []scene.Object
	changed []scene.Object
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		core:    editor.New(zap.NewNop()),
		scene:   scene.New("Main"),
		rec:     &recorder{},
		history: history.New(0),
	}
	f.core.AddScene(f.scene, true)
	f.main = NewMain(f.core, gui.NewToolbar("main"), MainDeps{
		Factory:  factory.New(f.core, f.rec, zap.NewNop()),
		History:  f.history,
		Deleter:  f.rec,
		Project:  f.rec,
		Player:   f.rec,
		Notifier: f.rec,
	}, zap.NewNop())
	f.tools = NewTools(f.core, gui.NewToolbar("tools"), f.rec, f.rec, zap.NewNop())
	f.core.Subscribe(editor.OnScene(event.ObjectAdded), func(ev event.Event) {
		f.added = append(f.added, ev.Scene.Object)
	})
	f.core.Subscribe(editor.OnScene(event.ObjectChanged), func(ev event.Event) {
		f.changed = append(f.changed, ev.Scene.Object)
	})
	return f
}

func TestAddMenuCreatesObjects(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.main.Toolbar().Click("add:point-light"))
	require.NoError(t, f.main.Toolbar().Click("add:cube"))

	require.Len(t, f.added, 2)
	l, ok := f.added[0].(*scene.Light)
	require.True(t, ok)
	assert.Equal(t, scene.LightPoint, l.LightType)
	m, ok := f.added[1].(*scene.Mesh)
	require.True(t, ok)
	assert.Equal(t, scene.PrimitiveBox, m.Primitive)
}

func TestParticleSystemUsesSelectedMesh(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))
	require.NoError(t, event.SendSceneEvent(f.core, m, event.ObjectPicked))

	require.NoError(t, f.main.Toolbar().Click("add:particle-system"))
	require.Len(t, f.added, 1)
	assert.Equal(t, "box", f.added[0].(*scene.ParticleSystem).EmitterID)
}

func TestLensFlareNeedsSelection(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.main.Toolbar().Click("add:lens-flare"))
	assert.Empty(t, f.added)
	assert.Equal(t, []string{"alert:Select a light or a mesh to emit the lens flare"}, f.rec.calls)
}

func TestEditMenu(t *testing.T) {
	f := newFixture(t)
	m := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	require.NoError(t, f.scene.Add(m))

	require.NoError(t, f.main.Toolbar().Click("edit:delete"))
	assert.Empty(t, f.rec.calls)

	require.NoError(t, event.SendSceneEvent(f.core, m, event.ObjectPicked))
	f.history.Push(m)
	m.Transform().Position = rl.Vector3{X: 4}

	require.NoError(t, f.main.Toolbar().Click("edit:undo"))
	assert.Equal(t, float32(0), m.Transform().Position.X)
	require.Len(t, f.changed, 1)
	assert.Same(t, m, f.changed[0])

	require.NoError(t, f.main.Toolbar().Click("edit:delete"))
	assert.Equal(t, []string{"delete:box"}, f.rec.calls)
}

func TestFileMenuReportsFailures(t *testing.T) {
	f := newFixture(t)
	f.rec.exportFn = func() error { return errors.New("disk full") }

	require.NoError(t, f.main.Toolbar().Click("file:export"))
	require.NoError(t, f.main.Toolbar().Click("file:import"))
	assert.Equal(t, []string{"export", "alert:disk full", "import"}, f.rec.calls)
}

func TestSceneMenu(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.main.Toolbar().Click("scene:wireframe"))
	assert.True(t, f.scene.ForceWireframe)
	require.Len(t, f.changed, 1)
	assert.Same(t, f.scene, f.changed[0])

	require.NoError(t, f.main.Toolbar().Click("scene:play"))
	assert.True(t, f.core.PlayMode())
	require.NoError(t, f.main.Toolbar().Click("scene:stop"))
	assert.False(t, f.core.PlayMode())
	assert.Equal(t, []string{"play", "stop"}, f.rec.calls)
}

func TestToolsToolbar(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tools.Toolbar().Click("transformer:rotation"))
	require.NoError(t, f.tools.Toolbar().Click("transformer:none"))
	require.NoError(t, f.tools.Toolbar().Click("animations:play"))
	assert.Equal(t, []string{"family:rotation", "family:none", "play"}, f.rec.calls)

	assert.ErrorIs(t, f.tools.Toolbar().Click("transformer:shear"), gui.ErrUnknownItem)
}

func TestToolbarsIgnoreEachOther(t *testing.T) {
	f := newFixture(t)
	// Both toolbars have a "play" item; only the clicked one reacts.
	require.NoError(t, f.tools.Toolbar().Click("animations:play"))
	assert.False(t, f.core.PlayMode())
	assert.Equal(t, []string{"play"}, f.rec.calls)
}
