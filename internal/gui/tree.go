package gui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type TreeNode struct {
	ID    string
	Text  string
	Icon  string
	Data  string // id of the backing object, empty for folders
	Count int    // number of direct children

	parent   string
	children []string
}

func (n *TreeNode) Parent() string { return n.parent }

// MenuEvent is the payload of a tree "menu" event.
type MenuEvent struct {
	NodeID string
	Item   string
}

// Tree is the scene graph widget. Node ids are unique across the whole tree.
type Tree struct {
	element
	Title     string
	MenuItems []MenuItem

	nodes    map[string]*TreeNode
	roots    []string
	selected string

	scroll   int32
	menuNode string
	menuPos  rl.Vector2
}

func NewTree(id, title string) *Tree {
	return &Tree{
		element: newElement(id),
		Title:   title,
		nodes:   make(map[string]*TreeNode),
	}
}

// AddNode inserts n under parent ("" for the top level) and bumps the
// parent's child count.
func (t *Tree) AddNode(parent string, n *TreeNode) error {
	if _, exists := t.nodes[n.ID]; exists {
		return fmt.Errorf("add node %q: %w", n.ID, ErrDuplicateID)
	}
	if parent == "" {
		t.roots = append(t.roots, n.ID)
	} else {
		p, ok := t.nodes[parent]
		if !ok {
			return fmt.Errorf("add node %q under %q: %w", n.ID, parent, ErrUnknownNode)
		}
		p.children = append(p.children, n.ID)
		p.Count = len(p.children)
	}
	n.parent = parent
	n.children = nil
	n.Count = 0
	t.nodes[n.ID] = n
	return nil
}

// RemoveNode drops the node and its whole subtree. It reports whether the
// node existed.
func (t *Tree) RemoveNode(id string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	if n.parent == "" {
		t.roots = removeString(t.roots, id)
	} else if p, ok := t.nodes[n.parent]; ok {
		p.children = removeString(p.children, id)
		p.Count = len(p.children)
	}
	t.removeSubtree(n)
	return true
}

func (t *Tree) removeSubtree(n *TreeNode) {
	for _, c := range n.children {
		if child, ok := t.nodes[c]; ok {
			t.removeSubtree(child)
		}
	}
	delete(t.nodes, n.ID)
	if t.selected == n.ID {
		t.selected = ""
	}
	if t.menuNode == n.ID {
		t.menuNode = ""
	}
}

func (t *Tree) Node(id string) *TreeNode { return t.nodes[id] }

// Children lists the children of id, or the top-level nodes for "".
func (t *Tree) Children(id string) []*TreeNode {
	ids := t.roots
	if id != "" {
		n, ok := t.nodes[id]
		if !ok {
			return nil
		}
		ids = n.children
	}
	out := make([]*TreeNode, 0, len(ids))
	for _, c := range ids {
		out = append(out, t.nodes[c])
	}
	return out
}

// Find returns the first node backed by the object id.
func (t *Tree) Find(dataID string) *TreeNode {
	if n, ok := t.nodes[dataID]; ok && n.Data == dataID {
		return n
	}
	for _, n := range t.nodes {
		if n.Data == dataID {
			return n
		}
	}
	return nil
}

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Selected() string { return t.selected }

// SetSelected moves the visual selection without notifying listeners.
func (t *Tree) SetSelected(id string) {
	if _, ok := t.nodes[id]; ok || id == "" {
		t.selected = id
	}
}

// Select behaves like a user click on the node.
func (t *Tree) Select(id string) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	t.selected = id
	t.emit(EventClick, id)
}

func (t *Tree) DoubleClick(id string) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	t.emit(EventDoubleClick, id)
}

// OpenMenu behaves like the user choosing item from the node's context menu.
func (t *Tree) OpenMenu(id, item string) {
	if _, ok := t.nodes[id]; !ok {
		return
	}
	t.emit(EventMenu, MenuEvent{NodeID: id, Item: item})
}

func (t *Tree) SetText(id, text string) {
	if n, ok := t.nodes[id]; ok {
		n.Text = text
	}
}

func (t *Tree) Clear() {
	t.nodes = make(map[string]*TreeNode)
	t.roots = nil
	t.selected = ""
	t.menuNode = ""
}

// Draw renders the expanded tree with one row per node and handles clicks,
// double clicks and the right-click context menu.
func (t *Tree) Draw(bounds rl.Rectangle) {
	rl.DrawRectangleRec(bounds, ColorBgPanel)
	drawText(editorFontBold, t.Title, int32(bounds.X)+12, int32(bounds.Y)+8, 18, ColorTextSecondary)

	const itemH = 22
	list := rl.Rectangle{X: bounds.X, Y: bounds.Y + 30, Width: bounds.Width, Height: bounds.Height - 30}
	if hovered(list) {
		t.scroll -= int32(rl.GetMouseWheelMove() * 20)
		if t.scroll < 0 {
			t.scroll = 0
		}
	}

	rl.BeginScissorMode(int32(list.X), int32(list.Y), int32(list.Width), int32(list.Height))
	y := list.Y - float32(t.scroll)
	var visit func(ids []string, depth int)
	visit = func(ids []string, depth int) {
		for _, id := range ids {
			n := t.nodes[id]
			r := row(list, y, itemH)
			if n.ID == t.selected {
				rl.DrawRectangleRec(r, ColorSelection)
				rl.DrawRectangle(int32(r.X), int32(r.Y), 3, itemH, ColorAccent)
			} else if hovered(r) && hovered(list) {
				rl.DrawRectangleRec(r, ColorBgHover)
			}

			label := n.Text
			if n.Icon != "" {
				label = "[" + n.Icon + "] " + label
			}
			if n.Count > 0 {
				label = fmt.Sprintf("%s (%d)", label, n.Count)
			}
			color := ColorTextSecondary
			if n.ID == t.selected {
				color = ColorAccentLight
			}
			drawText(editorFont, label, int32(r.X)+12+int32(depth)*16, int32(r.Y)+3, 16, color)

			if hovered(r) && hovered(list) && t.menuNode == "" {
				if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
					if n.ID == t.selected {
						t.DoubleClick(n.ID)
					} else {
						t.Select(n.ID)
					}
				}
				if rl.IsMouseButtonPressed(rl.MouseRightButton) && len(t.MenuItems) > 0 {
					t.menuNode = n.ID
					t.menuPos = rl.GetMousePosition()
				}
			}
			y += itemH
			visit(n.children, depth+1)
		}
	}
	visit(t.roots, 0)
	rl.EndScissorMode()

	t.drawMenu()
}

func (t *Tree) drawMenu() {
	if t.menuNode == "" {
		return
	}
	const w, h = 120, 24
	menu := rl.Rectangle{X: t.menuPos.X, Y: t.menuPos.Y, Width: w, Height: float32(h * len(t.MenuItems))}
	rl.DrawRectangleRec(menu, ColorBgElement)
	for i, item := range t.MenuItems {
		r := rl.Rectangle{X: menu.X, Y: menu.Y + float32(i*h), Width: w, Height: h}
		if gui.Button(r, item.Caption) {
			node := t.menuNode
			t.menuNode = ""
			t.OpenMenu(node, item.ID)
			return
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !hovered(menu) {
		t.menuNode = ""
	}
}

func removeString(list []string, v string) []string {
	for i, s := range list {
		if s == v {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
