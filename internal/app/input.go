package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sceneeditor/internal/edition"
	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/graph"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/scene"
	"sceneeditor/internal/transform"
)

const pickDistance float32 = 1000

// gatedInput hides key presses while the camera is flying so that W, E and
// Q move the view instead of switching the gizmo.
type gatedInput struct {
	transform.Input
	camera interface{ Flying() bool }
}

func (g gatedInput) KeyPressed(key int32) bool {
	if g.camera.Flying() {
		return false
	}
	return g.Input.KeyPressed(key)
}

// picker selects the mesh under the cursor when the left button goes down
// inside the viewport and no gizmo drag started on the same press.
type picker struct {
	core        *editor.Core
	input       transform.Input
	rays        transform.RayCaster
	transformer *transform.Transformer
	viewport    func() rl.Rectangle

	wasDown bool
}

func (p *picker) OnPreUpdate() {
	down := p.input.MouseDown()
	pressed := down && !p.wasDown
	p.wasDown = down
	if !pressed {
		return
	}
	if _, dragging := p.transformer.Dragging(); dragging {
		return
	}
	pos := p.input.MousePosition()
	if !contains(p.viewport(), pos) {
		return
	}
	s := p.core.CurrentScene()
	cam := p.core.ActiveCamera()
	if s == nil || cam == nil {
		return
	}
	hit, ok := s.Pick(p.rays.Ray(pos, cam.Raylib()), pickDistance)
	if !ok {
		return
	}
	if err := event.SendSceneEvent(p.core, hit.Mesh, event.ObjectPicked); err != nil {
		p.core.Logger().Warn("viewport pick failed")
	}
}

func (p *picker) OnPostUpdate() {}

func contains(r rl.Rectangle, v rl.Vector2) bool {
	return v.X >= r.X && v.X < r.X+r.Width && v.Y >= r.Y && v.Y < r.Y+r.Height
}

// shortcuts maps editor key chords onto the main toolbar's items so both go
// through the same handling.
type shortcuts struct {
	input   transform.Input
	mainBar *gui.Toolbar
	graph   *graph.Tool
	edition *edition.EditionTool
}

func (k *shortcuts) OnPreUpdate() {
	var item string
	ctrl := k.input.CtrlDown()
	switch {
	case ctrl && k.input.KeyPressed(rl.KeyZ):
		item = "edit:undo"
	case ctrl && k.input.KeyPressed(rl.KeyS):
		item = "file:export"
	case ctrl && k.input.KeyPressed(rl.KeyO):
		item = "file:import"
	case k.input.KeyPressed(rl.KeyDelete):
		item = "edit:delete"
	case ctrl && k.input.KeyPressed(rl.KeyD):
		if m, ok := k.edition.Object().(*scene.Mesh); ok {
			k.graph.Clone(m.ID())
		}
		return
	default:
		return
	}
	_ = k.mainBar.Click(item)
}

func (k *shortcuts) OnPostUpdate() {}
