package factory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/scene"
)

type alerts struct {
	messages []string
}

func (a *alerts) Alert(_, message string) { a.messages = append(a.messages, message) }

type fixture struct {
	core    *editor.Core
	scene   *scene.Scene
	factory *Factory
	alerts  *alerts
	added   []scene.Object
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{core: editor.New(zap.NewNop()), scene: scene.New("Main"), alerts: &alerts{}}
	f.core.AddScene(f.scene, true)
	f.factory = New(f.core, f.alerts, zap.NewNop())
	f.core.Subscribe(editor.OnScene(event.ObjectAdded), func(ev event.Event) {
		// Listeners must already find the object in the scene.
		require.True(t, f.scene.Contains(ev.Scene.Object.ID()))
		f.added = append(f.added, ev.Scene.Object)
	})
	return f
}

func TestAddLightAnnouncesOnce(t *testing.T) {
	f := newFixture(t)
	l, err := f.factory.AddLight(scene.LightPoint)
	require.NoError(t, err)

	_, err = uuid.Parse(l.ID())
	assert.NoError(t, err)
	assert.True(t, l.Added())
	assert.Equal(t, "New Point Light", l.Name())
	require.Len(t, f.added, 1)
	assert.Same(t, l, f.added[0])
}

func TestAddMesh(t *testing.T) {
	f := newFixture(t)
	m, err := f.factory.AddMesh(scene.PrimitiveGround)
	require.NoError(t, err)
	assert.Equal(t, float32(100), m.Size)
	require.NotNil(t, m.Material)
	assert.Equal(t, scene.MaterialStandard, m.Material.Type)

	_, err = f.factory.AddMesh(scene.Primitive("teapot"))
	assert.Error(t, err)
	assert.Len(t, f.added, 1)
}

func TestSecondParticleSystemGetsFreshEmitter(t *testing.T) {
	f := newFixture(t)
	m, err := f.factory.AddMesh(scene.PrimitiveBox)
	require.NoError(t, err)

	first, err := f.factory.AddParticleSystem(m)
	require.NoError(t, err)
	assert.Equal(t, m.ID(), first.EmitterID)
	assert.Empty(t, f.alerts.messages)

	second, err := f.factory.AddParticleSystem(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"A Particle System can be attached to only one mesh"}, f.alerts.messages)
	assert.NotEqual(t, m.ID(), second.EmitterID)
	emitter, ok := f.scene.Lookup(second.EmitterID).(*scene.Mesh)
	require.True(t, ok)
	assert.True(t, emitter.Added())
	// mesh, first system, fresh emitter, second system
	assert.Len(t, f.added, 4)
}

func TestParticleSystemWithoutEmitter(t *testing.T) {
	f := newFixture(t)
	ps, err := f.factory.AddParticleSystem(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, ps.EmitterID)
	assert.Empty(t, f.alerts.messages)
	assert.Len(t, f.added, 2)
}

func TestRenderListsStartWithExistingMeshes(t *testing.T) {
	f := newFixture(t)
	a, _ := f.factory.AddMesh(scene.PrimitiveBox)
	b, _ := f.factory.AddMesh(scene.PrimitiveSphere)

	rt, err := f.factory.AddRenderTarget()
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID(), b.ID()}, rt.RenderList)

	probe, err := f.factory.AddReflectionProbe()
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID(), b.ID()}, probe.RenderList)
}

func TestAddSoundCreatesTrackOnce(t *testing.T) {
	f := newFixture(t)
	a, err := f.factory.AddSound("a", "a.wav")
	require.NoError(t, err)
	b, err := f.factory.AddSound("b", "b.wav")
	require.NoError(t, err)

	tracks := f.scene.SoundTracks()
	require.Len(t, tracks, 1)
	assert.Equal(t, []string{a.ID(), b.ID()}, tracks[0].Sounds)
	assert.Equal(t, tracks[0].ID, b.SoundTrackID)
}

func TestLensFlareNeedsEmitter(t *testing.T) {
	f := newFixture(t)
	_, err := f.factory.AddLensFlareSystem(nil)
	assert.Error(t, err)

	l, _ := f.factory.AddLight(scene.LightPoint)
	lf, err := f.factory.AddLensFlareSystem(l)
	require.NoError(t, err)
	assert.Len(t, lf.Flares, 3)
	assert.Equal(t, []*scene.LensFlareSystem{lf}, f.scene.LensFlareSystemsOf(l.ID()))
}

func TestNoScene(t *testing.T) {
	f := New(editor.New(zap.NewNop()), nil, nil)
	_, err := f.AddLight(scene.LightSpot)
	assert.ErrorIs(t, err, ErrNoScene)
}
