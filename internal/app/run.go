package app

import (
	"context"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/config"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/project"
)

const fontDir = "assets/fonts"

// OpenWindow creates the raylib window described by the configuration. It
// must run before New when the raylib input and renderer are used.
func OpenWindow(w config.Window) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.Width, w.Height, w.Title)
	rl.SetTargetFPS(w.TargetFPS)
	rl.SetExitKey(0)
	rl.InitAudioDevice()
}

// Run drives the frame loop until the window closes or ctx is cancelled.
// The project file is watched for outside edits when enabled.
func (a *App) Run(ctx context.Context) error {
	defer rl.CloseWindow()
	defer rl.CloseAudioDevice()
	defer a.audio.Dispose()
	gui.InitStyle(a.logger, fontDir)

	if a.cfg.Storage.Watch {
		if err := os.MkdirAll(a.cfg.Storage.Dir, 0o755); err != nil {
			return fmt.Errorf("create project dir: %w", err)
		}
		if err := project.Watch(ctx, a.projectPath(), a.logger, a.reloader.Signal); err != nil {
			a.logger.Warn("project watch disabled", zap.Error(err))
		}
	}

	a.logger.Info("editor started",
		zap.Int32("width", a.cfg.Window.Width),
		zap.Int32("height", a.cfg.Window.Height),
		zap.String("project", a.projectPath()),
	)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}
		if rl.IsWindowResized() {
			a.layout.Width = float32(rl.GetScreenWidth())
			a.layout.Height = float32(rl.GetScreenHeight())
		}
		if r, ok := a.renderer.(interface{ BeginFrame() }); ok {
			r.BeginFrame()
		}

		rl.BeginDrawing()
		a.Frame(rl.GetFrameTime())
		a.DrawUI()
		rl.EndDrawing()
	}
	a.logger.Info("editor stopped")
	return nil
}

// DrawUI draws the panels around the viewport. The scene itself was
// already drawn by the core during Frame.
func (a *App) DrawUI() {
	l := &a.layout
	a.graph.Tree().Draw(l.Graph())

	a.edition.Tabs().Draw(l.EditionTabs())
	if c := a.edition.Container(a.edition.Tabs().Active()); c != nil {
		c.Draw(l.EditionBody())
	}

	a.timeline.Draw(l.Timeline())
	a.mainBar.Toolbar().Draw(l.MainToolbar())
	a.toolsBar.Toolbar().Draw(l.ToolsToolbar())
	a.notifications.Draw(l.Viewport())
}
