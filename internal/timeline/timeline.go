// Package timeline maps a horizontal scrub bar to animation frames of the
// current scene.
package timeline

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	editorgui "sceneeditor/internal/gui"
)

type Timeline struct {
	core    *editor.Core
	logger  *zap.Logger
	playing bool
	// dragging keeps the scrub active while the mouse leaves the bar.
	dragging bool

	unregister editor.Unregister
}

func New(core *editor.Core, logger *zap.Logger) *Timeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Timeline{core: core, logger: logger.Named("timeline")}
	t.unregister = core.RegisterUpdatable(t)
	return t
}

func (t *Timeline) Dispose() { t.unregister() }

// MaxFrame is the last key frame across every animated node of the current
// scene.
func (t *Timeline) MaxFrame() float32 {
	if s := t.core.CurrentScene(); s != nil {
		return s.MaxFrame()
	}
	return 0
}

func (t *Timeline) Frame() float32 {
	if s := t.core.CurrentScene(); s != nil {
		return s.Frame()
	}
	return 0
}

// FrameAt maps x in [0, width] linearly onto [0, MaxFrame].
func (t *Timeline) FrameAt(x, width float32) float32 {
	if width <= 0 {
		return 0
	}
	return clamp(x/width*t.MaxFrame(), 0, t.MaxFrame())
}

// Seek moves every animated node of the current scene to frame.
func (t *Timeline) Seek(frame float32) {
	s := t.core.CurrentScene()
	if s == nil {
		return
	}
	s.GoToFrame(clamp(frame, 0, s.MaxFrame()))
}

func (t *Timeline) Scrub(x, width float32) { t.Seek(t.FrameAt(x, width)) }

func (t *Timeline) Play() {
	t.playing = true
	t.logger.Debug("play", zap.Float32("from", t.Frame()))
}

func (t *Timeline) Stop() { t.playing = false }

func (t *Timeline) Playing() bool { return t.playing }

// Advance moves playback forward by dt seconds at the scene's frame rate
// and speed. Past the last frame playback loops, or stops when looping is
// disabled.
func (t *Timeline) Advance(dt float32) {
	s := t.core.CurrentScene()
	if s == nil {
		return
	}
	last := s.MaxFrame()
	if last <= 0 {
		t.playing = false
		return
	}
	cfg := s.Animation
	frame := s.Frame() + float32(cfg.FramesPerSecond)*cfg.Speed*dt
	if frame > last {
		if !cfg.Loop {
			t.playing = false
			frame = last
		} else {
			for frame > last {
				frame -= last
			}
		}
	}
	s.GoToFrame(frame)
}

func (t *Timeline) OnPreUpdate() {
	if t.playing {
		t.Advance(t.core.DeltaTime())
	}
}

func (t *Timeline) OnPostUpdate() {}

// Draw renders the bar with its cursor and handles scrubbing.
func (t *Timeline) Draw(bounds rl.Rectangle) {
	rl.DrawRectangleRec(bounds, editorgui.ColorBgPanel)
	rl.DrawRectangle(int32(bounds.X), int32(bounds.Y), int32(bounds.Width), 1, editorgui.ColorBorder)

	btn := rl.Rectangle{X: bounds.X + 6, Y: bounds.Y + 6, Width: 50, Height: bounds.Height - 12}
	label := "Play"
	if t.playing {
		label = "Stop"
	}
	if gui.Button(btn, label) {
		if t.playing {
			t.Stop()
		} else {
			t.Play()
		}
	}

	bar := rl.Rectangle{X: btn.X + btn.Width + 10, Y: bounds.Y + 8, Width: bounds.Width - btn.Width - 90, Height: bounds.Height - 16}
	rl.DrawRectangleRec(bar, editorgui.ColorBgElement)

	last := t.MaxFrame()
	if last > 0 {
		x := bar.X + t.Frame()/last*bar.Width
		rl.DrawRectangle(int32(x)-1, int32(bar.Y), 3, int32(bar.Height), editorgui.ColorAccent)
	}
	rl.DrawText(fmt.Sprintf("%.0f / %.0f", t.Frame(), last), int32(bar.X+bar.Width+10), int32(bar.Y)+2, 14, editorgui.ColorTextSecondary)

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(mouse, bar) {
		t.dragging = true
	}
	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		t.dragging = false
	}
	if t.dragging {
		t.Scrub(mouse.X-bar.X, bar.Width)
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
