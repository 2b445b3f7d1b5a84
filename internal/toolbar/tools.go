package toolbar

import (
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/transform"
)

// FamilySetter is the part of the transformer the tools toolbar drives.
type FamilySetter interface {
	SetFamily(f transform.Family)
}

// Tools switches the gizmo family and controls animation playback.
type Tools struct {
	core        *editor.Core
	logger      *zap.Logger
	toolbar     *gui.Toolbar
	transformer FamilySetter
	player      Player
	unregister  editor.Unregister
}

func NewTools(core *editor.Core, tb *gui.Toolbar, transformer FamilySetter, player Player, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tools{
		core:        core,
		logger:      logger.Named("tools"),
		toolbar:     tb,
		transformer: transformer,
		player:      player,
	}
	tb.AddMenu("transformer", "Transform",
		gui.MenuItem{ID: transform.FamilyPosition.String(), Caption: "Move"},
		gui.MenuItem{ID: transform.FamilyRotation.String(), Caption: "Rotate"},
		gui.MenuItem{ID: transform.FamilyScaling.String(), Caption: "Scale"},
		gui.MenuItem{ID: transform.FamilyNone.String(), Caption: "None"},
	)
	tb.AddMenu("animations", "Animations",
		gui.MenuItem{ID: "play", Caption: "Play"},
		gui.MenuItem{ID: "stop", Caption: "Stop"},
	)
	tb.On(gui.EventClick, func(data any) {
		_ = event.SendGUIEvent(core, tb, event.ToolbarMenuSelected, data)
	})
	t.unregister = core.RegisterReceiver(t)
	return t
}

func (t *Tools) Toolbar() *gui.Toolbar { return t.toolbar }

func (t *Tools) Dispose() { t.unregister() }

func (t *Tools) OnEvent(ev event.Event) bool {
	if !ev.IsGUI(event.ToolbarMenuSelected) || ev.GUI.Caller != t.toolbar {
		return false
	}
	id, _ := ev.GUI.Data.(string)
	menu, item := gui.SplitID(id)
	switch menu {
	case "transformer":
		f, ok := transform.ParseFamily(item)
		if !ok || t.transformer == nil {
			return false
		}
		t.transformer.SetFamily(f)
	case "animations":
		if t.player == nil {
			return false
		}
		switch item {
		case "play":
			t.player.Play()
		case "stop":
			t.player.Stop()
		}
	default:
		t.logger.Debug("unhandled item", zap.String("id", id))
		return false
	}
	return true
}
