package gui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Tab struct {
	ID      string
	Caption string
	Hidden  bool
}

// Tabs keeps at most one active tab. Hiding the active tab leaves no tab
// active until one is selected again.
type Tabs struct {
	element
	tabs   []*Tab
	active string
}

func NewTabs(id string) *Tabs {
	return &Tabs{element: newElement(id)}
}

// Add registers a tab, hidden until Show is called. Adding an existing id is
// a no-op.
func (t *Tabs) Add(id, caption string) {
	if t.tab(id) != nil {
		return
	}
	t.tabs = append(t.tabs, &Tab{ID: id, Caption: caption, Hidden: true})
}

func (t *Tabs) tab(id string) *Tab {
	for _, tab := range t.tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

func (t *Tabs) Show(id string) {
	if tab := t.tab(id); tab != nil {
		tab.Hidden = false
	}
}

func (t *Tabs) Hide(id string) {
	if tab := t.tab(id); tab != nil {
		tab.Hidden = true
		if t.active == id {
			t.active = ""
		}
	}
}

func (t *Tabs) Visible(id string) bool {
	tab := t.tab(id)
	return tab != nil && !tab.Hidden
}

// VisibleTabs lists the shown tab ids in insertion order.
func (t *Tabs) VisibleTabs() []string {
	var out []string
	for _, tab := range t.tabs {
		if !tab.Hidden {
			out = append(out, tab.ID)
		}
	}
	return out
}

func (t *Tabs) Active() string { return t.active }

// SetActive changes the active tab without notifying listeners.
func (t *Tabs) SetActive(id string) {
	if id == "" || t.Visible(id) {
		t.active = id
	}
}

// Select behaves like a user click on the tab and fires "select".
func (t *Tabs) Select(id string) {
	if !t.Visible(id) {
		return
	}
	t.active = id
	t.emit(EventSelect, id)
}

func (t *Tabs) Draw(bounds rl.Rectangle) {
	rl.DrawRectangleRec(bounds, ColorBgDark)
	x := bounds.X
	for _, tab := range t.tabs {
		if tab.Hidden {
			continue
		}
		w := float32(rl.MeasureText(tab.Caption, 15)) + 20
		r := rl.Rectangle{X: x, Y: bounds.Y, Width: w, Height: bounds.Height}
		if tab.ID == t.active {
			rl.DrawRectangleRec(r, ColorSelection)
			rl.DrawRectangle(int32(r.X), int32(r.Y+r.Height-2), int32(r.Width), 2, ColorAccent)
			drawText(editorFont, tab.Caption, int32(r.X)+10, int32(r.Y)+4, 15, ColorAccentLight)
		} else if gui.Button(r, tab.Caption) {
			t.Select(tab.ID)
		}
		x += w + 2
	}
}

// Container is a panel slot that holds one child element and can be hidden
// without destroying it.
type Container struct {
	element
	child  Element
	hidden bool
}

func NewContainer(id string) *Container {
	return &Container{element: newElement(id)}
}

// SetChild builds child inside the container, destroying the previous one.
func (c *Container) SetChild(child Element) error {
	if c.child != nil {
		c.child.Destroy()
	}
	c.child = child
	if child == nil {
		return nil
	}
	return child.BuildElement(c.id)
}

func (c *Container) Child() Element { return c.child }

func (c *Container) Show() { c.hidden = false }

func (c *Container) Hide() { c.hidden = true }

func (c *Container) Visible() bool { return !c.hidden }

// Destroy detaches the container and destroys its child.
func (c *Container) Destroy() {
	if c.child != nil {
		c.child.Destroy()
		c.child = nil
	}
	c.element.Destroy()
}

func (c *Container) Refresh() {
	c.element.Refresh()
	if c.child != nil {
		c.child.Refresh()
	}
}

func (c *Container) Draw(bounds rl.Rectangle) {
	if c.hidden || c.child == nil {
		return
	}
	if d, ok := c.child.(Drawable); ok {
		d.Draw(bounds)
	}
}
