package editor

import (
	"errors"
	"fmt"
	"reflect"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/event"
	"sceneeditor/internal/scene"
)

const DefaultMaxDispatchDepth = 16

var (
	ErrDispatchDepth   = errors.New("editor: nested dispatch too deep")
	ErrInvalidEnvelope = errors.New("editor: invalid event envelope")
)

// Receiver is notified of every dispatched event. The returned "handled" flag
// is informational only: dispatch always reaches every receiver.
type Receiver interface {
	OnEvent(ev event.Event) bool
}

// Updatable takes part in the frame loop around scene rendering.
type Updatable interface {
	OnPreUpdate()
	OnPostUpdate()
}

// Camera is anything the renderer can look through.
type Camera interface {
	Raylib() rl.Camera3D
}

type Renderer interface {
	Render(s *scene.Scene, cam rl.Camera3D)
}

// Unregister removes a registration. Calling it more than once is harmless.
type Unregister func()

type receiverEntry struct {
	r      Receiver
	active bool
}

type updatableEntry struct {
	u      Updatable
	active bool
}

type sceneEntry struct {
	scene  *scene.Scene
	render bool
}

// Core is the editor's process state: the event bus, the frame participants,
// the open scenes and the cameras. It is created once and handed to every
// component. Core is not safe for concurrent use; everything runs on the
// window thread.
type Core struct {
	logger   *zap.Logger
	renderer Renderer
	maxDepth int

	receivers  []*receiverEntry
	updatables []*updatableEntry
	depth      int

	scenes  []*sceneEntry
	current *scene.Scene

	camera     Camera
	playCamera Camera
	playMode   bool
	deltaTime  float32
}

type Option func(*Core)

func WithMaxDispatchDepth(n int) Option {
	return func(c *Core) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

func WithRenderer(r Renderer) Option {
	return func(c *Core) { c.renderer = r }
}

func New(logger *zap.Logger, opts ...Option) *Core {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Core{
		logger:   logger.Named("core"),
		maxDepth: DefaultMaxDispatchDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Core) Logger() *zap.Logger { return c.logger }

// RegisterReceiver adds r to the bus. Registering the same receiver twice
// keeps a single entry; both returned handles remove it.
func (c *Core) RegisterReceiver(r Receiver) Unregister {
	if r == nil {
		return func() {}
	}
	if !reflect.TypeOf(r).Comparable() {
		panic(fmt.Sprintf("editor: receiver of type %T is not comparable", r))
	}
	if c.indexOfReceiver(r) < 0 {
		c.receivers = append(c.receivers, &receiverEntry{r: r, active: true})
	}
	return func() { c.UnregisterReceiver(r) }
}

func (c *Core) UnregisterReceiver(r Receiver) {
	i := c.indexOfReceiver(r)
	if i < 0 {
		return
	}
	c.receivers[i].active = false
	c.receivers = append(c.receivers[:i:i], c.receivers[i+1:]...)
}

func (c *Core) indexOfReceiver(r Receiver) int {
	for i, e := range c.receivers {
		if e.r == r {
			return i
		}
	}
	return -1
}

func (c *Core) ReceiverCount() int { return len(c.receivers) }

// Dispatch delivers ev synchronously to every receiver registered when the
// call started, in registration order. Receivers unregistered during the
// dispatch are skipped; receivers registered during it wait for the next
// event. A panicking receiver is logged and does not stop the others.
func (c *Core) Dispatch(ev event.Event) error {
	if !ev.Valid() {
		c.logger.Error("dropping invalid event", zap.Stringer("kind", ev.Kind))
		return fmt.Errorf("dispatch %s: %w", ev.Kind, ErrInvalidEnvelope)
	}
	if c.depth >= c.maxDepth {
		c.logger.Error("dispatch depth exceeded",
			zap.Int("depth", c.depth),
			zap.Stringer("event", ev),
		)
		return fmt.Errorf("dispatch %s: %w", ev, ErrDispatchDepth)
	}

	c.depth++
	defer func() { c.depth-- }()

	snapshot := make([]*receiverEntry, len(c.receivers))
	copy(snapshot, c.receivers)
	for _, e := range snapshot {
		if !e.active {
			continue
		}
		c.deliver(e.r, ev)
	}
	return nil
}

func (c *Core) deliver(r Receiver, ev event.Event) {
	defer func() {
		if p := recover(); p != nil {
			c.logger.Error("receiver panicked",
				zap.String("receiver", fmt.Sprintf("%T", r)),
				zap.Stringer("event", ev),
				zap.Any("panic", p),
			)
		}
	}()
	r.OnEvent(ev)
}

// RegisterUpdatable adds u to the frame loop, once.
func (c *Core) RegisterUpdatable(u Updatable) Unregister {
	if u == nil {
		return func() {}
	}
	if !reflect.TypeOf(u).Comparable() {
		panic(fmt.Sprintf("editor: updatable of type %T is not comparable", u))
	}
	found := false
	for _, e := range c.updatables {
		if e.u == u {
			found = true
			break
		}
	}
	if !found {
		c.updatables = append(c.updatables, &updatableEntry{u: u, active: true})
	}
	return func() { c.UnregisterUpdatable(u) }
}

func (c *Core) UnregisterUpdatable(u Updatable) {
	for i, e := range c.updatables {
		if e.u == u {
			e.active = false
			c.updatables = append(c.updatables[:i:i], c.updatables[i+1:]...)
			return
		}
	}
}

func (c *Core) UpdatableCount() int { return len(c.updatables) }

func (c *Core) PreUpdate() {
	c.runUpdatables("pre-update", Updatable.OnPreUpdate)
}

func (c *Core) PostUpdate() {
	c.runUpdatables("post-update", Updatable.OnPostUpdate)
}

func (c *Core) runUpdatables(phase string, hook func(Updatable)) {
	snapshot := make([]*updatableEntry, len(c.updatables))
	copy(snapshot, c.updatables)
	for _, e := range snapshot {
		if !e.active {
			continue
		}
		func() {
			defer func() {
				if p := recover(); p != nil {
					c.logger.Error("updatable panicked",
						zap.String("phase", phase),
						zap.String("updatable", fmt.Sprintf("%T", e.u)),
						zap.Any("panic", p),
					)
				}
			}()
			hook(e.u)
		}()
	}
}

// Update runs one frame: pre-update, render every scene flagged for
// rendering in the order they were added, post-update.
func (c *Core) Update(dt float32) {
	c.deltaTime = dt
	c.PreUpdate()
	if c.renderer != nil {
		if cam := c.ActiveCamera(); cam != nil {
			view := cam.Raylib()
			for _, e := range c.scenes {
				if e.render {
					c.renderer.Render(e.scene, view)
				}
			}
		}
	}
	c.PostUpdate()
}

func (c *Core) DeltaTime() float32 { return c.deltaTime }

// AddScene opens s. Adding a scene that is already open only updates its
// render flag. The first scene added becomes current.
func (c *Core) AddScene(s *scene.Scene, render bool) {
	if s == nil {
		return
	}
	for _, e := range c.scenes {
		if e.scene == s {
			e.render = render
			return
		}
	}
	c.scenes = append(c.scenes, &sceneEntry{scene: s, render: render})
	if c.current == nil {
		c.current = s
	}
}

func (c *Core) RemoveScene(s *scene.Scene) {
	for i, e := range c.scenes {
		if e.scene == s {
			c.scenes = append(c.scenes[:i], c.scenes[i+1:]...)
			break
		}
	}
	if c.current == s {
		c.current = nil
		if len(c.scenes) > 0 {
			c.current = c.scenes[0].scene
		}
	}
}

// ReplaceScene swaps old for s in place, keeping its render order, render
// flag and current status. When old is not open, s is added.
func (c *Core) ReplaceScene(old, s *scene.Scene) {
	for _, e := range c.scenes {
		if e.scene == old {
			e.scene = s
			if c.current == old {
				c.current = s
			}
			return
		}
	}
	c.AddScene(s, true)
}

func (c *Core) Scenes() []*scene.Scene {
	out := make([]*scene.Scene, 0, len(c.scenes))
	for _, e := range c.scenes {
		out = append(out, e.scene)
	}
	return out
}

// Renders reports whether s is open and flagged for rendering.
func (c *Core) Renders(s *scene.Scene) bool {
	for _, e := range c.scenes {
		if e.scene == s {
			return e.render
		}
	}
	return false
}

func (c *Core) CurrentScene() *scene.Scene { return c.current }

// SetCurrentScene makes s current, opening it for rendering if needed.
func (c *Core) SetCurrentScene(s *scene.Scene) {
	c.AddScene(s, true)
	c.current = s
}

func (c *Core) Camera() Camera           { return c.camera }
func (c *Core) SetCamera(cam Camera)     { c.camera = cam }
func (c *Core) PlayCamera() Camera       { return c.playCamera }
func (c *Core) SetPlayCamera(cam Camera) { c.playCamera = cam }
func (c *Core) PlayMode() bool           { return c.playMode }
func (c *Core) SetPlayMode(on bool)      { c.playMode = on }

// ActiveCamera is the play camera while playing (when one is set), the edit
// camera otherwise.
func (c *Core) ActiveCamera() Camera {
	if c.playMode && c.playCamera != nil {
		return c.playCamera
	}
	return c.camera
}
