package event

import (
	"fmt"

	"sceneeditor/internal/scene"
)

// Kind is the envelope discriminant.
type Kind int

const (
	KindUnknown Kind = iota
	KindScene
	KindGUI
)

func (k Kind) String() string {
	switch k {
	case KindScene:
		return "SCENE_EVENT"
	case KindGUI:
		return "GUI_EVENT"
	}
	return "UNKNOWN"
}

type SceneEventType int

const (
	ObjectPicked SceneEventType = iota
	ObjectAdded
	ObjectRemoved
	ObjectChanged
)

var sceneEventNames = [...]string{
	ObjectPicked:  "OBJECT_PICKED",
	ObjectAdded:   "OBJECT_ADDED",
	ObjectRemoved: "OBJECT_REMOVED",
	ObjectChanged: "OBJECT_CHANGED",
}

func (t SceneEventType) String() string {
	if int(t) < 0 || int(t) >= len(sceneEventNames) {
		return fmt.Sprintf("SceneEventType(%d)", int(t))
	}
	return sceneEventNames[t]
}

type GUIEventType int

const (
	FormChanged GUIEventType = iota
	FormToolbarClicked
	LayoutChanged
	PanelChanged
	GraphSelected
	GraphDoubleSelected
	GraphMenuSelected
	TabChanged
	ToolbarMenuSelected
	GridSelected
	GridRowAdded
	GridRowRemoved
	GridRowEdited
	GridRowChanged
	WindowButtonClicked
	GUIObjectPicked
	DocumentClick
	DocumentUnclick
)

var guiEventNames = [...]string{
	FormChanged:         "FORM_CHANGED",
	FormToolbarClicked:  "FORM_TOOLBAR_CLICKED",
	LayoutChanged:       "LAYOUT_CHANGED",
	PanelChanged:        "PANEL_CHANGED",
	GraphSelected:       "GRAPH_SELECTED",
	GraphDoubleSelected: "GRAPH_DOUBLE_SELECTED",
	GraphMenuSelected:   "GRAPH_MENU_SELECTED",
	TabChanged:          "TAB_CHANGED",
	ToolbarMenuSelected: "TOOLBAR_MENU_SELECTED",
	GridSelected:        "GRID_SELECTED",
	GridRowAdded:        "GRID_ROW_ADDED",
	GridRowRemoved:      "GRID_ROW_REMOVED",
	GridRowEdited:       "GRID_ROW_EDITED",
	GridRowChanged:      "GRID_ROW_CHANGED",
	WindowButtonClicked: "WINDOW_BUTTON_CLICKED",
	GUIObjectPicked:     "OBJECT_PICKED",
	DocumentClick:       "DOCUMENT_CLICK",
	DocumentUnclick:     "DOCUMENT_UNCLICK",
}

func (t GUIEventType) String() string {
	if int(t) < 0 || int(t) >= len(guiEventNames) {
		return fmt.Sprintf("GUIEventType(%d)", int(t))
	}
	return guiEventNames[t]
}

// SceneEvent reports something that happened to a scene object. Object is a
// non-owning reference; receivers that keep it should keep its id.
type SceneEvent struct {
	Object scene.Object
	Type   SceneEventType
	Data   any
}

// GUIEvent reports a widget interaction. Caller identifies the originating
// widget or component.
type GUIEvent struct {
	Caller any
	Type   GUIEventType
	Data   any
}

// Event is the envelope put on the bus. Exactly one payload is set, matching Kind.
type Event struct {
	Kind  Kind
	Scene *SceneEvent
	GUI   *GUIEvent
}

func NewSceneEvent(obj scene.Object, typ SceneEventType, data any) Event {
	return Event{Kind: KindScene, Scene: &SceneEvent{Object: obj, Type: typ, Data: data}}
}

func NewGUIEvent(caller any, typ GUIEventType, data any) Event {
	return Event{Kind: KindGUI, GUI: &GUIEvent{Caller: caller, Type: typ, Data: data}}
}

// Valid checks the one-payload invariant.
func (e Event) Valid() bool {
	switch e.Kind {
	case KindScene:
		return e.Scene != nil && e.GUI == nil
	case KindGUI:
		return e.GUI != nil && e.Scene == nil
	}
	return false
}

// IsScene reports whether e is a scene event of one of the given types (any
// type when none are given).
func (e Event) IsScene(types ...SceneEventType) bool {
	if e.Kind != KindScene || e.Scene == nil {
		return false
	}
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if e.Scene.Type == t {
			return true
		}
	}
	return false
}

// IsGUI is the GUI counterpart of IsScene.
func (e Event) IsGUI(types ...GUIEventType) bool {
	if e.Kind != KindGUI || e.GUI == nil {
		return false
	}
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if e.GUI.Type == t {
			return true
		}
	}
	return false
}

func (e Event) String() string {
	switch {
	case e.Kind == KindScene && e.Scene != nil:
		name := "<nil>"
		if e.Scene.Object != nil {
			name = e.Scene.Object.ID()
		}
		return fmt.Sprintf("%s %s %s", e.Kind, e.Scene.Type, name)
	case e.Kind == KindGUI && e.GUI != nil:
		return fmt.Sprintf("%s %s", e.Kind, e.GUI.Type)
	}
	return e.Kind.String()
}
