package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sceneeditor/internal/scene"
)

type recorder struct {
	events []Event
}

func (r *recorder) Dispatch(ev Event) error {
	r.events = append(r.events, ev)
	return nil
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "UNKNOWN", KindUnknown.String())
	assert.Equal(t, "SCENE_EVENT", KindScene.String())
	assert.Equal(t, "GUI_EVENT", KindGUI.String())
}

func TestEnvelopeCarriesOnePayload(t *testing.T) {
	mesh := scene.NewMesh("m", "Box", scene.PrimitiveBox, 1)

	se := NewSceneEvent(mesh, ObjectAdded, nil)
	assert.True(t, se.Valid())
	assert.Nil(t, se.GUI)
	assert.True(t, se.IsScene())
	assert.True(t, se.IsScene(ObjectRemoved, ObjectAdded))
	assert.False(t, se.IsScene(ObjectPicked))
	assert.False(t, se.IsGUI())

	ge := NewGUIEvent("graph", GraphSelected, "m")
	assert.True(t, ge.Valid())
	assert.Nil(t, ge.Scene)
	assert.True(t, ge.IsGUI(GraphSelected))
	assert.False(t, ge.IsScene())

	assert.False(t, Event{}.Valid())
	assert.False(t, Event{Kind: KindScene, Scene: &SceneEvent{}, GUI: &GUIEvent{}}.Valid())
}

func TestSendDispatchesImmediately(t *testing.T) {
	r := &recorder{}
	mesh := scene.NewMesh("m", "Box", scene.PrimitiveBox, 1)

	require.NoError(t, SendSceneEvent(r, mesh, ObjectPicked))
	require.NoError(t, SendSceneEventData(r, mesh, ObjectChanged, "position"))
	require.NoError(t, SendGUIEvent(r, "tabs", TabChanged, "General"))

	require.Len(t, r.events, 3)
	assert.Equal(t, ObjectPicked, r.events[0].Scene.Type)
	assert.Equal(t, "position", r.events[1].Scene.Data)
	assert.Equal(t, "tabs", r.events[2].GUI.Caller)
	assert.Equal(t, "General", r.events[2].GUI.Data)
}

func TestSendWithoutDispatcherPanics(t *testing.T) {
	assert.Panics(t, func() { _ = SendSceneEvent(nil, nil, ObjectPicked) })
	assert.Panics(t, func() { _ = SendGUIEvent(nil, nil, TabChanged, nil) })
}

func TestTypeNames(t *testing.T) {
	assert.Equal(t, "OBJECT_CHANGED", ObjectChanged.String())
	assert.Equal(t, "DOCUMENT_UNCLICK", DocumentUnclick.String())
	assert.Equal(t, "OBJECT_PICKED", GUIObjectPicked.String())
	assert.Equal(t, "GUIEventType(99)", GUIEventType(99).String())
}
