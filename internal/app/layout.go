package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	toolbarHeight  float32 = 30
	graphWidth     float32 = 260
	editionWidth   float32 = 320
	tabsHeight     float32 = 28
	minViewportDim float32 = 100
)

// Layout splits the window into the editor panels: the two toolbars on top,
// the scene graph on the left, the property panel on the right and the
// timeline at the bottom. The viewport is what remains.
type Layout struct {
	Width          float32
	Height         float32
	TimelineHeight float32
}

func (l *Layout) MainToolbar() rl.Rectangle {
	return rl.Rectangle{Width: l.Width, Height: toolbarHeight}
}

func (l *Layout) ToolsToolbar() rl.Rectangle {
	return rl.Rectangle{Y: toolbarHeight, Width: l.Width, Height: toolbarHeight}
}

func (l *Layout) top() float32 { return 2 * toolbarHeight }

func (l *Layout) Graph() rl.Rectangle {
	return rl.Rectangle{Y: l.top(), Width: graphWidth, Height: l.Height - l.top() - l.TimelineHeight}
}

func (l *Layout) Edition() rl.Rectangle {
	return rl.Rectangle{X: l.Width - editionWidth, Y: l.top(), Width: editionWidth, Height: l.Height - l.top() - l.TimelineHeight}
}

// EditionTabs and EditionBody split the property panel between the tab
// strip and the active tool's form.
func (l *Layout) EditionTabs() rl.Rectangle {
	e := l.Edition()
	e.Height = tabsHeight
	return e
}

func (l *Layout) EditionBody() rl.Rectangle {
	e := l.Edition()
	e.Y += tabsHeight
	e.Height -= tabsHeight
	return e
}

func (l *Layout) Timeline() rl.Rectangle {
	return rl.Rectangle{Y: l.Height - l.TimelineHeight, Width: l.Width, Height: l.TimelineHeight}
}

func (l *Layout) Viewport() rl.Rectangle {
	w := l.Width - graphWidth - editionWidth
	h := l.Height - l.top() - l.TimelineHeight
	if w < minViewportDim {
		w = minViewportDim
	}
	if h < minViewportDim {
		h = minViewportDim
	}
	return rl.Rectangle{X: graphWidth, Y: l.top(), Width: w, Height: h}
}
