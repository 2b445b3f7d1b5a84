package gui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type MenuItem struct {
	ID      string
	Caption string
}

type Menu struct {
	ID      string
	Caption string
	Items   []MenuItem
}

// Toolbar is a row of drop-down menus. Clicks are reported with the
// composite id "menu:item".
type Toolbar struct {
	element
	menus []*Menu
	open  string
}

func NewToolbar(id string) *Toolbar {
	return &Toolbar{element: newElement(id)}
}

func (t *Toolbar) AddMenu(id, caption string, items ...MenuItem) {
	t.menus = append(t.menus, &Menu{ID: id, Caption: caption, Items: items})
}

func (t *Toolbar) Menus() []*Menu { return t.menus }

// SplitID breaks a composite "menu:item" id apart. An id without a separator
// is a menu with no item.
func SplitID(id string) (menu, item string) {
	menu, item, _ = strings.Cut(id, ":")
	return menu, item
}

// Click behaves like the user choosing an item and fires "click" with the
// composite id.
func (t *Toolbar) Click(id string) error {
	menuID, itemID := SplitID(id)
	for _, m := range t.menus {
		if m.ID != menuID {
			continue
		}
		for _, item := range m.Items {
			if item.ID == itemID {
				t.emit(EventClick, id)
				return nil
			}
		}
	}
	return fmt.Errorf("toolbar %s: %q: %w", t.id, id, ErrUnknownItem)
}

func (t *Toolbar) Draw(bounds rl.Rectangle) {
	rl.DrawRectangleRec(bounds, ColorBgDark)
	x := bounds.X + 4
	for _, m := range t.menus {
		w := float32(rl.MeasureText(m.Caption, 15)) + 24
		r := rl.Rectangle{X: x, Y: bounds.Y + 4, Width: w, Height: bounds.Height - 8}
		if gui.Button(r, m.Caption) {
			if t.open == m.ID {
				t.open = ""
			} else {
				t.open = m.ID
			}
		}
		if t.open == m.ID {
			t.drawItems(m, rl.Rectangle{X: x, Y: bounds.Y + bounds.Height, Width: 160, Height: 24})
		}
		x += w + 4
	}
}

func (t *Toolbar) drawItems(m *Menu, first rl.Rectangle) {
	r := first
	for _, item := range m.Items {
		if gui.Button(r, item.Caption) {
			t.open = ""
			_ = t.Click(m.ID + ":" + item.ID)
			return
		}
		r.Y += r.Height
	}
}
