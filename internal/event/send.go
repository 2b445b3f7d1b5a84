package event

import "sceneeditor/internal/scene"

// Dispatcher delivers an envelope to every interested receiver before returning.
type Dispatcher interface {
	Dispatch(ev Event) error
}

// SendSceneEvent builds a scene event and dispatches it in one call. A nil
// dispatcher is a wiring bug and panics.
func SendSceneEvent(d Dispatcher, obj scene.Object, typ SceneEventType) error {
	return SendSceneEventData(d, obj, typ, nil)
}

func SendSceneEventData(d Dispatcher, obj scene.Object, typ SceneEventType, data any) error {
	if d == nil {
		panic("event: SendSceneEvent with nil dispatcher")
	}
	return d.Dispatch(NewSceneEvent(obj, typ, data))
}

func SendGUIEvent(d Dispatcher, caller any, typ GUIEventType, data any) error {
	if d == nil {
		panic("event: SendGUIEvent with nil dispatcher")
	}
	return d.Dispatch(NewGUIEvent(caller, typ, data))
}
