// Package toolbar turns toolbar clicks into editor actions. Each toolbar
// re-publishes its widget clicks as TOOLBAR_MENU_SELECTED events and reacts
// to its own events by calling factories and tools.
package toolbar

import (
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/factory"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/history"
	"sceneeditor/internal/scene"
)

// Project is the export/import side of the file menu.
type Project interface {
	Export() error
	Import() error
}

// Deleter removes an object and everything depending on it.
type Deleter interface {
	Delete(id string)
}

// Player starts and stops animation playback.
type Player interface {
	Play()
	Stop()
}

// Main is the application menu bar: file, edit, add and scene menus.
type Main struct {
	core     *editor.Core
	logger   *zap.Logger
	toolbar  *gui.Toolbar
	factory  *factory.Factory
	history  *history.Stack
	deleter  Deleter
	project  Project
	player   Player
	notifier gui.Notifier

	selected   scene.Ref
	unregister editor.Unregister
}

type MainDeps struct {
	Factory  *factory.Factory
	History  *history.Stack
	Deleter  Deleter
	Project  Project
	Player   Player
	Notifier gui.Notifier
}

func NewMain(core *editor.Core, tb *gui.Toolbar, deps MainDeps, logger *zap.Logger) *Main {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Main{
		core:     core,
		logger:   logger.Named("toolbar"),
		toolbar:  tb,
		factory:  deps.Factory,
		history:  deps.History,
		deleter:  deps.Deleter,
		project:  deps.Project,
		player:   deps.Player,
		notifier: deps.Notifier,
	}
	tb.AddMenu("file", "File",
		gui.MenuItem{ID: "export", Caption: "Export Project"},
		gui.MenuItem{ID: "import", Caption: "Import Project"},
	)
	tb.AddMenu("edit", "Edit",
		gui.MenuItem{ID: "undo", Caption: "Undo"},
		gui.MenuItem{ID: "delete", Caption: "Delete"},
	)
	tb.AddMenu("add", "Add",
		gui.MenuItem{ID: "point-light", Caption: "Point Light"},
		gui.MenuItem{ID: "directional-light", Caption: "Directional Light"},
		gui.MenuItem{ID: "spot-light", Caption: "Spot Light"},
		gui.MenuItem{ID: "hemispheric-light", Caption: "Hemispheric Light"},
		gui.MenuItem{ID: "cube", Caption: "Cube"},
		gui.MenuItem{ID: "sphere", Caption: "Sphere"},
		gui.MenuItem{ID: "plane", Caption: "Plane"},
		gui.MenuItem{ID: "ground", Caption: "Ground"},
		gui.MenuItem{ID: "particle-system", Caption: "Particle System"},
		gui.MenuItem{ID: "lens-flare", Caption: "Lens Flare"},
		gui.MenuItem{ID: "reflection-probe", Caption: "Reflection Probe"},
		gui.MenuItem{ID: "render-target", Caption: "Render Target"},
		gui.MenuItem{ID: "sound", Caption: "Sound"},
	)
	tb.AddMenu("scene", "Scene",
		gui.MenuItem{ID: "wireframe", Caption: "Wireframe"},
		gui.MenuItem{ID: "play", Caption: "Play"},
		gui.MenuItem{ID: "stop", Caption: "Stop"},
	)
	tb.On(gui.EventClick, func(data any) {
		_ = event.SendGUIEvent(core, tb, event.ToolbarMenuSelected, data)
	})
	m.unregister = core.RegisterReceiver(m)
	return m
}

func (m *Main) Toolbar() *gui.Toolbar { return m.toolbar }

func (m *Main) Dispose() { m.unregister() }

func (m *Main) OnEvent(ev event.Event) bool {
	switch {
	case ev.IsScene(event.ObjectPicked):
		m.selected.Set(ev.Scene.Object)
	case ev.IsScene(event.ObjectRemoved):
		if obj := ev.Scene.Object; obj != nil && obj.ID() == m.selected.ID {
			m.selected.Clear()
		}
	case ev.IsGUI(event.ToolbarMenuSelected) && ev.GUI.Caller == m.toolbar:
		id, _ := ev.GUI.Data.(string)
		menu, item := gui.SplitID(id)
		return m.handle(menu, item)
	}
	return false
}

func (m *Main) handle(menu, item string) bool {
	var err error
	switch menu {
	case "file":
		err = m.file(item)
	case "edit":
		m.edit(item)
	case "add":
		err = m.add(item)
	case "scene":
		m.scene(item)
	default:
		return false
	}
	if err != nil {
		m.logger.Warn("menu action failed", zap.String("menu", menu), zap.String("item", item), zap.Error(err))
		m.alert(menu, err.Error())
	}
	return true
}

func (m *Main) alert(title, message string) {
	if m.notifier != nil {
		m.notifier.Alert(title, message)
	}
}

func (m *Main) file(item string) error {
	if m.project == nil {
		return nil
	}
	switch item {
	case "export":
		return m.project.Export()
	case "import":
		return m.project.Import()
	}
	return nil
}

func (m *Main) edit(item string) {
	s := m.core.CurrentScene()
	switch item {
	case "undo":
		if m.history == nil || s == nil {
			return
		}
		if obj, ok := m.history.Undo(s); ok {
			_ = event.SendSceneEvent(m.core, obj, event.ObjectChanged)
		}
	case "delete":
		if m.deleter != nil && m.selected.IsValid() {
			m.deleter.Delete(m.selected.ID)
		}
	}
}

var lightItems = map[string]scene.LightType{
	"point-light":       scene.LightPoint,
	"directional-light": scene.LightDirectional,
	"spot-light":        scene.LightSpot,
	"hemispheric-light": scene.LightHemispheric,
}

var meshItems = map[string]scene.Primitive{
	"cube":   scene.PrimitiveBox,
	"sphere": scene.PrimitiveSphere,
	"plane":  scene.PrimitivePlane,
	"ground": scene.PrimitiveGround,
}

func (m *Main) add(item string) error {
	if lt, ok := lightItems[item]; ok {
		_, err := m.factory.AddLight(lt)
		return err
	}
	if p, ok := meshItems[item]; ok {
		_, err := m.factory.AddMesh(p)
		return err
	}

	selected := m.selected.Get(m.core.CurrentScene())
	var err error
	switch item {
	case "particle-system":
		emitter, _ := selected.(*scene.Mesh)
		_, err = m.factory.AddParticleSystem(emitter)
	case "lens-flare":
		switch selected.(type) {
		case *scene.Light, *scene.Mesh:
			_, err = m.factory.AddLensFlareSystem(selected)
		default:
			m.alert("Lens Flare", "Select a light or a mesh to emit the lens flare")
		}
	case "reflection-probe":
		_, err = m.factory.AddReflectionProbe()
	case "render-target":
		_, err = m.factory.AddRenderTarget()
	case "sound":
		_, err = m.factory.AddSound("New Sound", "")
	}
	return err
}

func (m *Main) scene(item string) {
	s := m.core.CurrentScene()
	switch item {
	case "wireframe":
		if s == nil {
			return
		}
		s.ForceWireframe = !s.ForceWireframe
		_ = event.SendSceneEvent(m.core, s, event.ObjectChanged)
	case "play":
		m.core.SetPlayMode(true)
		if m.player != nil {
			m.player.Play()
		}
	case "stop":
		m.core.SetPlayMode(false)
		if m.player != nil {
			m.player.Stop()
		}
	}
}
