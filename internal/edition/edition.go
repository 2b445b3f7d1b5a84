// Package edition drives the property panel: one tab per tool, shown for the
// tools that support the picked object.
package edition

import (
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/scene"
)

// Result names the outcome of an update request.
type Result int

const (
	Updated Result = iota
	NoSelection
	Unsupported
)

func (r Result) String() string {
	switch r {
	case Updated:
		return "updated"
	case NoSelection:
		return "no selection"
	case Unsupported:
		return "unsupported"
	}
	return "unknown"
}

// Tool edits one aspect of an object. Several tools may support the same
// object; each gets its own tab.
type Tool interface {
	ID() string
	Caption() string
	Supports(s *scene.Scene, obj scene.Object) bool
	// Build creates a form bound to obj.
	Build(s *scene.Scene, obj scene.Object) *gui.Form
}

type slot struct {
	tool      Tool
	container *gui.Container
	form      *gui.Form
	supported bool
}

type EditionTool struct {
	core   *editor.Core
	logger *zap.Logger
	tabs   *gui.Tabs
	slots  []*slot
	object scene.Ref

	// notifying is set while the tool reports its own form edits, so the
	// resulting OBJECT_CHANGED does not rebuild the form being edited.
	notifying  bool
	unregister editor.Unregister
}

func New(core *editor.Core, tabs *gui.Tabs, logger *zap.Logger) *EditionTool {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &EditionTool{
		core:   core,
		logger: logger.Named("edition"),
		tabs:   tabs,
	}
	tabs.On(gui.EventSelect, func(data any) {
		_ = event.SendGUIEvent(core, tabs, event.TabChanged, data)
	})
	e.unregister = core.RegisterReceiver(e)
	return e
}

// AddTool registers a tool. Registration order decides which tab becomes
// active when the previous one no longer applies.
func (e *EditionTool) AddTool(t Tool) {
	e.tabs.Add(t.ID(), t.Caption())
	c := gui.NewContainer(t.ID() + "-container")
	c.Hide()
	e.slots = append(e.slots, &slot{tool: t, container: c})
}

func (e *EditionTool) Tabs() *gui.Tabs { return e.tabs }

func (e *EditionTool) Object() scene.Object {
	return e.object.Get(e.core.CurrentScene())
}

func (e *EditionTool) slot(id string) *slot {
	for _, s := range e.slots {
		if s.tool.ID() == id {
			return s
		}
	}
	return nil
}

func (e *EditionTool) Container(toolID string) *gui.Container {
	if s := e.slot(toolID); s != nil {
		return s.container
	}
	return nil
}

// Form returns the form currently built for toolID, or nil.
func (e *EditionTool) Form(toolID string) *gui.Form {
	if s := e.slot(toolID); s != nil {
		return s.form
	}
	return nil
}

func (e *EditionTool) Dispose() {
	e.unregister()
	for _, s := range e.slots {
		s.container.Destroy()
	}
}

func (e *EditionTool) OnEvent(ev event.Event) bool {
	switch {
	case ev.IsScene(event.ObjectPicked):
		e.Update(ev.Scene.Object)
		return true
	case ev.IsScene(event.ObjectRemoved):
		if obj := ev.Scene.Object; obj != nil && obj.ID() == e.object.ID {
			e.Clear()
			return true
		}
	case ev.IsScene(event.ObjectChanged):
		if e.notifying {
			return false
		}
		if obj := ev.Scene.Object; obj != nil && obj.ID() == e.object.ID {
			e.rebuild(obj)
			return true
		}
	case ev.IsGUI(event.TabChanged):
		if ev.GUI.Caller != e.tabs {
			return false
		}
		id, _ := ev.GUI.Data.(string)
		e.showOnly(id)
		return true
	}
	return false
}

// Update shows the tab of every tool supporting obj, rebuilds their forms
// and hides the rest. The previously active tab stays active when it still
// applies, otherwise the first supported tool wins.
func (e *EditionTool) Update(obj scene.Object) Result {
	if obj == nil {
		e.Clear()
		return NoSelection
	}
	s := e.core.CurrentScene()
	previous := e.tabs.Active()
	e.object.Set(obj)

	first := ""
	for _, sl := range e.slots {
		sl.supported = sl.tool.Supports(s, obj)
		if !sl.supported {
			e.tabs.Hide(sl.tool.ID())
			sl.container.Hide()
			e.setForm(sl, nil)
			continue
		}
		e.tabs.Show(sl.tool.ID())
		e.setForm(sl, sl.tool.Build(s, obj))
		if first == "" {
			first = sl.tool.ID()
		}
	}
	if first == "" {
		e.tabs.SetActive("")
		e.logger.Debug("no tool supports object", zap.String("object", obj.ID()), zap.Stringer("kind", obj.Kind()))
		return Unsupported
	}

	active := first
	if previous != "" && e.tabs.Visible(previous) {
		active = previous
	}
	e.showOnly(active)
	return Updated
}

// Clear hides every tab and destroys the forms.
func (e *EditionTool) Clear() {
	e.object.Clear()
	for _, sl := range e.slots {
		sl.supported = false
		e.tabs.Hide(sl.tool.ID())
		sl.container.Hide()
		e.setForm(sl, nil)
	}
}

func (e *EditionTool) rebuild(obj scene.Object) {
	s := e.core.CurrentScene()
	for _, sl := range e.slots {
		if sl.supported {
			e.setForm(sl, sl.tool.Build(s, obj))
		}
	}
}

func (e *EditionTool) showOnly(id string) {
	if e.slot(id) == nil || !e.tabs.Visible(id) {
		return
	}
	e.tabs.SetActive(id)
	for _, sl := range e.slots {
		if sl.tool.ID() == id {
			sl.container.Show()
		} else {
			sl.container.Hide()
		}
	}
}

func (e *EditionTool) setForm(sl *slot, form *gui.Form) {
	sl.form = form
	if form != nil {
		form.On(gui.EventChange, func(data any) { e.formChanged(form, data) })
	}
	if err := sl.container.SetChild(asElement(form)); err != nil {
		e.logger.Error("build form", zap.String("tool", sl.tool.ID()), zap.Error(err))
	}
}

// asElement keeps a nil *gui.Form from becoming a non-nil interface.
func asElement(form *gui.Form) gui.Element {
	if form == nil {
		return nil
	}
	return form
}

// formChanged reports an edit: the form first, then the mutated object.
func (e *EditionTool) formChanged(form *gui.Form, data any) {
	obj := e.Object()
	if obj == nil {
		return
	}
	_ = event.SendGUIEvent(e.core, form, event.FormChanged, data)

	e.notifying = true
	defer func() { e.notifying = false }()
	_ = event.SendSceneEvent(e.core, obj, event.ObjectChanged)
}
