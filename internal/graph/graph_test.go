package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/scene"
)

type alerts struct {
	messages []string
}

func (a *alerts) Alert(title, message string) { a.messages = append(a.messages, message) }

type fixture struct {
	core   *editor.Core
	scene  *scene.Scene
	tool   *Tool
	alerts *alerts
	events []event.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		core:   editor.New(zap.NewNop()),
		scene:  scene.New("Scene"),
		alerts: &alerts{},
	}
	f.core.AddScene(f.scene, true)
	f.tool = New(f.core, gui.NewTree("graph", "Graph"), f.alerts, zap.NewNop())
	f.core.Subscribe(nil, func(ev event.Event) { f.events = append(f.events, ev) })
	f.tool.FillGraph()
	return f
}

func (f *fixture) add(t *testing.T, obj scene.Object) {
	t.Helper()
	require.NoError(t, f.scene.Add(obj))
	require.NoError(t, event.SendSceneEvent(f.core, obj, event.ObjectAdded))
}

func (f *fixture) sceneEvents(typ event.SceneEventType) []scene.Object {
	var out []scene.Object
	for _, ev := range f.events {
		if ev.IsScene(typ) {
			out = append(out, ev.Scene.Object)
		}
	}
	return out
}

func TestAddClassifiesParents(t *testing.T) {
	f := newFixture(t)
	tree := f.tool.Tree()

	mesh := scene.NewMesh("", "Box", scene.PrimitiveBox, 1)
	f.add(t, mesh)
	ps := scene.NewParticleSystem("", "Fire", 100)
	ps.EmitterID = mesh.ID()
	f.add(t, ps)
	rt := scene.NewRenderTarget("", "Mirror", 512)
	f.add(t, rt)
	light := scene.NewLight("", "Lamp", scene.LightPoint)
	light.ParentID = mesh.ID()
	f.add(t, light)

	assert.Equal(t, f.scene.ID(), tree.Node(mesh.ID()).Parent())
	assert.Equal(t, mesh.ID(), tree.Node(ps.ID()).Parent())
	assert.Equal(t, mesh.ID(), tree.Node(light.ID()).Parent())
	assert.Equal(t, "Render Targets", tree.Node(tree.Node(rt.ID()).Parent()).Text)
	assert.Equal(t, "particles", tree.Node(ps.ID()).Icon)
	assert.Equal(t, 2, tree.Node(mesh.ID()).Count)
}

func TestSoundsGoUnderTheirTrack(t *testing.T) {
	f := newFixture(t)
	track := scene.NewSoundTrack("", "Music")
	f.scene.AddSoundTrack(track)
	snd := scene.NewSound("", "Theme", "theme.ogg")
	snd.SoundTrackID = track.ID
	f.add(t, snd)

	tree := f.tool.Tree()
	assert.Equal(t, track.ID, tree.Node(snd.ID()).Parent())
	assert.Equal(t, "Audio", tree.Node(tree.Node(track.ID).Parent()).Text)
}

func TestGraphSelectionPicksObject(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Box", scene.PrimitiveBox, 1)
	f.add(t, mesh)

	f.tool.Tree().Select(mesh.ID())

	picked := f.sceneEvents(event.ObjectPicked)
	require.Len(t, picked, 1)
	assert.Same(t, mesh, picked[0].(*scene.Mesh))
	assert.Equal(t, mesh.ID(), f.tool.Tree().Selected())
}

func TestPickFromElsewhereMovesTreeSelection(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Box", scene.PrimitiveBox, 1)
	f.add(t, mesh)

	clicks := 0
	f.tool.Tree().On(gui.EventClick, func(any) { clicks++ })
	require.NoError(t, event.SendSceneEvent(f.core, mesh, event.ObjectPicked))

	assert.Equal(t, mesh.ID(), f.tool.Tree().Selected())
	assert.Equal(t, 0, clicks)
}

func TestObjectChangedRefreshesText(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Box", scene.PrimitiveBox, 1)
	f.add(t, mesh)

	mesh.SetName("Crate")
	require.NoError(t, event.SendSceneEvent(f.core, mesh, event.ObjectChanged))
	assert.Equal(t, "Crate", f.tool.Tree().Node(mesh.ID()).Text)
}

func TestDeleteScrubsAndNotifies(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Box", scene.PrimitiveBox, 1)
	f.add(t, mesh)
	ps := scene.NewParticleSystem("", "Fire", 100)
	ps.EmitterID = mesh.ID()
	f.add(t, ps)
	lf := scene.NewLensFlareSystem("", "Flare", mesh.ID())
	f.add(t, lf)
	light := scene.NewLight("", "Sun", scene.LightDirectional)
	light.ShadowGenerator = scene.NewShadowGenerator(1024)
	light.ShadowGenerator.Add(mesh.ID())
	f.add(t, light)
	rt := scene.NewRenderTarget("", "Mirror", 256)
	rt.AddToRenderList(mesh.ID())
	f.add(t, rt)

	f.tool.Tree().OpenMenu(mesh.ID(), MenuDelete)

	removed := f.sceneEvents(event.ObjectRemoved)
	var removedIDs []string
	for _, o := range removed {
		removedIDs = append(removedIDs, o.ID())
	}
	assert.ElementsMatch(t, []string{mesh.ID(), ps.ID(), lf.ID()}, removedIDs)

	assert.False(t, f.scene.IsReferenced(mesh.ID()))
	assert.Empty(t, light.ShadowGenerator.RenderList)
	assert.Empty(t, rt.RenderList)
	for _, id := range removedIDs {
		assert.Nil(t, f.tool.Tree().Node(id))
	}
	assert.NotNil(t, f.tool.Tree().Node(light.ID()))
}

func TestDeletedSubMeshStaysGoneAfterRefill(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Multi", scene.PrimitiveBox, 1)
	a := mesh.AddSubMesh("a", 0)
	b := mesh.AddSubMesh("b", 1)
	c := mesh.AddSubMesh("c", 2)
	f.add(t, mesh)
	f.tool.FillGraph()
	require.NotNil(t, f.tool.Tree().Node(b.ID()))

	f.tool.Delete(b.ID())
	assert.Nil(t, f.scene.Lookup(b.ID()))
	assert.Nil(t, f.tool.Tree().Node(b.ID()))

	f.tool.FillGraph()
	assert.Nil(t, f.tool.Tree().Node(b.ID()))
	assert.NotNil(t, f.tool.Tree().Node(a.ID()))
	assert.NotNil(t, f.tool.Tree().Node(c.ID()))
	assert.NotNil(t, f.tool.Tree().Node(mesh.ID()))
	assert.Len(t, mesh.SubMeshes, 2)
}

func TestDeleteGuardsEditCamera(t *testing.T) {
	f := newFixture(t)
	cam := scene.NewCamera("", "Editor")
	f.add(t, cam)
	f.core.SetCamera(cam)

	f.tool.Tree().OpenMenu(cam.ID(), MenuDelete)

	assert.NotNil(t, f.scene.Lookup(cam.ID()))
	assert.Len(t, f.alerts.messages, 1)
	assert.Empty(t, f.sceneEvents(event.ObjectRemoved))
}

func TestCloneAddsMeshAndParticles(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Box", scene.PrimitiveBox, 1)
	f.add(t, mesh)
	ps := scene.NewParticleSystem("", "Fire", 100)
	ps.EmitterID = mesh.ID()
	ps.Texture = &scene.Texture{Name: "fire.png", Data: []byte{7}}
	f.add(t, ps)
	f.events = nil

	f.tool.Tree().OpenMenu(mesh.ID(), MenuClone)

	added := f.sceneEvents(event.ObjectAdded)
	require.Len(t, added, 2)
	clone := added[0].(*scene.Mesh)
	psClone := added[1].(*scene.ParticleSystem)
	assert.Equal(t, clone.ID(), psClone.EmitterID)
	assert.Equal(t, clone.ID(), f.tool.Tree().Node(psClone.ID()).Parent())
	assert.NotSame(t, ps.Texture, psClone.Texture)
}

func TestCloneCustomGeometryAlerts(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Imported", scene.PrimitiveBox, 1)
	mesh.CustomGeometry = true
	f.add(t, mesh)

	f.tool.Clone(mesh.ID())
	assert.Len(t, f.alerts.messages, 1)
}

func TestFillGraph(t *testing.T) {
	f := newFixture(t)
	cam := scene.NewCamera("cam", "Camera")
	light := scene.NewLight("light", "Light", scene.LightPoint)
	mesh := scene.NewMesh("mesh", "Multi", scene.PrimitiveBox, 1)
	mesh.AddSubMesh("a", 0)
	mesh.AddSubMesh("b", 1)
	child := scene.NewMesh("child", "Child", scene.PrimitiveSphere, 1)
	child.ParentID = "mesh"
	ps := scene.NewParticleSystem("ps", "Smoke", 10)
	ps.EmitterID = "child"
	probe := scene.NewReflectionProbe("probe", "Probe", 128)
	for _, o := range []scene.Object{mesh, child, light, cam, ps, probe} {
		require.NoError(t, f.scene.Add(o))
	}

	f.tool.FillGraph()
	tree := f.tool.Tree()

	top := tree.Children(f.scene.ID())
	var texts []string
	for _, n := range top {
		texts = append(texts, n.Text)
	}
	assert.Equal(t, []string{"Render Targets", "Audio", "Camera", "Light", "Multi"}, texts)

	meshChildren := tree.Children("mesh")
	require.Len(t, meshChildren, 2)
	assert.Equal(t, "Sub-Meshes", meshChildren[0].Text)
	assert.Equal(t, 2, meshChildren[0].Count)
	assert.Equal(t, "child", meshChildren[1].ID)
	assert.Equal(t, "child", tree.Node("ps").Parent())
	assert.Equal(t, "Render Targets", tree.Node(tree.Node("probe").Parent()).Text)
}

func TestRemoveDropsNode(t *testing.T) {
	f := newFixture(t)
	mesh := scene.NewMesh("", "Box", scene.PrimitiveBox, 1)
	f.add(t, mesh)

	_, err := f.scene.Dispose(mesh.ID())
	require.NoError(t, err)
	require.NoError(t, event.SendSceneEvent(f.core, mesh, event.ObjectRemoved))
	assert.Nil(t, f.tool.Tree().Node(mesh.ID()))
}
