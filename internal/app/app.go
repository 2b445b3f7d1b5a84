// Package app assembles the editor: one core, the scene graph, the property
// panel, the gizmo, the toolbars, the timeline and the project storage.
package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/audio"
	"sceneeditor/internal/camera"
	"sceneeditor/internal/config"
	"sceneeditor/internal/edition"
	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/factory"
	"sceneeditor/internal/graph"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/history"
	"sceneeditor/internal/project"
	"sceneeditor/internal/scene"
	"sceneeditor/internal/timeline"
	"sceneeditor/internal/toolbar"
	"sceneeditor/internal/transform"
)

// Options carries the platform pieces. Zero values select the raylib
// implementations; tests inject fakes and leave Renderer nil to stay
// headless.
type Options struct {
	Input       transform.Input
	Rays        transform.RayCaster
	CameraInput camera.Input
	Renderer    editor.Renderer
	Storage     project.Storage
	Audio       audio.Backend

	// Scene builds the base scene; DefaultScene when nil.
	Scene func() *scene.Scene
}

type App struct {
	cfg      config.Config
	logger   *zap.Logger
	layout   Layout
	renderer editor.Renderer

	core          *editor.Core
	camera        *camera.EditorCamera
	history       *history.Stack
	notifications *gui.Notifications

	graph       *graph.Tool
	edition     *edition.EditionTool
	transformer *transform.Transformer
	factory     *factory.Factory
	timeline    *timeline.Timeline
	audio       *audio.Player
	mainBar     *toolbar.Main
	toolsBar    *toolbar.Tools
	exporter    *project.StorageExporter
	reloader    *project.Reloader

	unregister []editor.Unregister
}

func New(cfg config.Config, logger *zap.Logger, opts Options) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CameraInput == nil {
		opts.CameraInput = camera.RaylibInput{}
	}
	if opts.Input == nil {
		opts.Input = transform.RaylibInput{}
	}
	if opts.Rays == nil {
		opts.Rays = transform.RaylibRays{}
	}
	if opts.Audio == nil {
		opts.Audio = audio.RaylibBackend{}
	}
	if opts.Storage == nil {
		opts.Storage = project.LocalStorage{Dir: cfg.Storage.Dir}
	}
	if opts.Scene == nil {
		opts.Scene = DefaultScene
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		layout:   Layout{Width: float32(cfg.Window.Width), Height: float32(cfg.Window.Height), TimelineHeight: cfg.Timeline.Height},
		renderer: opts.Renderer,
	}

	coreOpts := []editor.Option{editor.WithMaxDispatchDepth(cfg.Bus.MaxDispatchDepth)}
	if opts.Renderer != nil {
		coreOpts = append(coreOpts, editor.WithRenderer(opts.Renderer))
	}
	a.core = editor.New(logger, coreOpts...)

	base := opts.Scene()
	if cfg.Timeline.FramesPerSecond > 0 {
		base.Animation.FramesPerSecond = cfg.Timeline.FramesPerSecond
	}
	a.core.AddScene(base, true)

	a.camera = camera.New(rl.Vector3{X: 8, Y: 6, Z: 8}, opts.CameraInput)
	a.camera.LookAt(rl.Vector3{})
	a.core.SetCamera(a.camera)
	a.syncPlayCamera(base)

	a.history = history.New(0)
	a.notifications = gui.NewNotifications(logger)

	// Registration order is dispatch and update order: the graph and the
	// panel see a pick before the gizmo, and the gizmo updates before the
	// viewport picker so a click on a handle never re-picks.
	a.graph = graph.New(a.core, gui.NewTree("graph", "Scene"), a.notifications, logger)
	a.edition = edition.New(a.core, gui.NewTabs("edition"), logger)
	for _, tool := range edition.DefaultTools(a.history) {
		a.edition.AddTool(tool)
	}

	keys := gatedInput{Input: opts.Input, camera: a.camera}
	a.transformer = transform.New(a.core, a.history, keys, opts.Rays, a.camera, logger, transformOptions(cfg.Transformer))
	a.unregister = append(a.unregister, a.core.RegisterUpdatable(&picker{
		core:        a.core,
		input:       opts.Input,
		rays:        opts.Rays,
		transformer: a.transformer,
		viewport:    a.layout.Viewport,
	}))

	a.factory = factory.New(a.core, a.notifications, logger)
	a.timeline = timeline.New(a.core, logger)
	a.audio = audio.NewPlayer(a.core, opts.Audio, a.timeline, logger)

	a.exporter = project.NewStorageExporter(a.core, opts.Storage, cfg.Storage.Project, logger)
	a.exporter.Base = opts.Scene
	a.exporter.Reloaded = a.reloaded
	a.reloader = project.NewReloader(a.core, a.exporter, logger)

	a.mainBar = toolbar.NewMain(a.core, gui.NewToolbar("main"), toolbar.MainDeps{
		Factory:  a.factory,
		History:  a.history,
		Deleter:  a.graph,
		Project:  a.exporter,
		Player:   a.timeline,
		Notifier: a.notifications,
	}, logger)
	a.toolsBar = toolbar.NewTools(a.core, gui.NewToolbar("tools"), a.transformer, a.timeline, logger)

	a.unregister = append(a.unregister, a.core.RegisterUpdatable(&shortcuts{
		input:   keys,
		mainBar: a.mainBar.Toolbar(),
		graph:   a.graph,
		edition: a.edition,
	}))

	a.graph.FillGraph()
	return a
}

func transformOptions(c config.Transformer) transform.Options {
	opts := transform.DefaultOptions()
	if c.GizmoLength > 0 {
		opts.GizmoLength = c.GizmoLength
	}
	if c.DistanceDivisor > 0 {
		opts.DistanceDivisor = c.DistanceDivisor
	}
	if c.CoarseMultiplier > 0 {
		opts.CoarseMultiplier = c.CoarseMultiplier
	}
	if c.FineMultiplier > 0 {
		opts.FineMultiplier = c.FineMultiplier
	}
	return opts
}

func (a *App) Core() *editor.Core                  { return a.core }
func (a *App) Camera() *camera.EditorCamera        { return a.camera }
func (a *App) History() *history.Stack             { return a.history }
func (a *App) Notifications() *gui.Notifications   { return a.notifications }
func (a *App) Graph() *graph.Tool                  { return a.graph }
func (a *App) Edition() *edition.EditionTool       { return a.edition }
func (a *App) Transformer() *transform.Transformer { return a.transformer }
func (a *App) Timeline() *timeline.Timeline        { return a.timeline }
func (a *App) Audio() *audio.Player                { return a.audio }
func (a *App) MainToolbar() *toolbar.Main          { return a.mainBar }
func (a *App) ToolsToolbar() *toolbar.Tools        { return a.toolsBar }
func (a *App) Exporter() *project.StorageExporter  { return a.exporter }
func (a *App) Reloader() *project.Reloader         { return a.reloader }
func (a *App) Layout() *Layout                     { return &a.layout }

// Scene is the scene being edited.
func (a *App) Scene() *scene.Scene { return a.core.CurrentScene() }

// Selected is the object shown in the property panel.
func (a *App) Selected() scene.Object { return a.edition.Object() }

func (a *App) Select(obj scene.Object) error {
	return event.SendSceneEvent(a.core, obj, event.ObjectPicked)
}

// Frame advances the camera and runs one core frame (update, render, post-update).
func (a *App) Frame(dt float32) {
	a.camera.Update(dt)
	a.core.Update(dt)
}

func (a *App) projectPath() string {
	return project.LocalStorage{Dir: a.cfg.Storage.Dir}.Path(a.cfg.Storage.Project)
}

// reloaded runs after an import swapped the current scene: the tree is
// rebuilt, stale undo entries are dropped and the scene itself is selected.
func (a *App) reloaded(s *scene.Scene) {
	a.history.Clear()
	a.syncPlayCamera(s)
	a.graph.FillGraph()
	if err := a.Select(s); err != nil {
		a.logger.Warn("select reloaded scene", zap.Error(err))
	}
}

func (a *App) syncPlayCamera(s *scene.Scene) {
	if cam := s.ActiveCamera(); cam != nil {
		a.core.SetPlayCamera(cam)
	} else {
		a.core.SetPlayCamera(nil)
	}
}

func (a *App) Close() {
	for _, u := range a.unregister {
		u()
	}
	a.reloader.Dispose()
	a.audio.Dispose()
	a.mainBar.Dispose()
	a.toolsBar.Dispose()
	a.transformer.Dispose()
	a.edition.Dispose()
	a.graph.Dispose()
}
