package gui

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrAlreadyBuilt = errors.New("gui: element already built")
	ErrUnknownNode  = errors.New("gui: unknown node")
	ErrDuplicateID  = errors.New("gui: duplicate id")
	ErrUnknownField = errors.New("gui: unknown field")
	ErrFieldType    = errors.New("gui: value does not fit field")
	ErrUnknownItem  = errors.New("gui: unknown menu item")
)

// Widget event names passed to On.
const (
	EventClick       = "click"
	EventDoubleClick = "dblclick"
	EventMenu        = "menu"
	EventChange      = "change"
	EventSelect      = "select"
)

// Handler receives the payload of a widget event.
type Handler func(data any)

// Element is the narrow contract editor components rely on.
type Element interface {
	ID() string
	BuildElement(parent string) error
	Destroy()
	Refresh()
	Resize()
	On(name string, fn Handler)
}

// Drawable elements render themselves inside bounds every frame.
type Drawable interface {
	Draw(bounds rl.Rectangle)
}

// element carries the bookkeeping shared by every widget.
type element struct {
	id       string
	parent   string
	built    bool
	revision int
	handlers map[string][]Handler
}

func newElement(id string) element {
	return element{id: id, handlers: make(map[string][]Handler)}
}

func (e *element) ID() string { return e.id }

func (e *element) BuildElement(parent string) error {
	if e.built {
		return fmt.Errorf("build %s in %s: %w", e.id, parent, ErrAlreadyBuilt)
	}
	e.parent = parent
	e.built = true
	e.revision++
	return nil
}

func (e *element) Destroy() {
	e.built = false
	e.parent = ""
}

func (e *element) Refresh() { e.revision++ }

func (e *element) Resize() {}

// Built reports whether the element is currently attached to a parent.
func (e *element) Built() bool { return e.built }

func (e *element) Parent() string { return e.parent }

// Revision counts builds and refreshes.
func (e *element) Revision() int { return e.revision }

// On adds a listener for the named widget event.
func (e *element) On(name string, fn Handler) {
	if fn == nil {
		return
	}
	e.handlers[name] = append(e.handlers[name], fn)
}

func (e *element) emit(name string, data any) {
	for _, fn := range e.handlers[name] {
		fn(data)
	}
}
