// Package factory creates scene objects on behalf of menus and tools. Every
// factory mutates the current scene first and then announces the new object
// with a single OBJECT_ADDED event.
package factory

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/gui"
	"sceneeditor/internal/scene"
)

var ErrNoScene = errors.New("factory: no current scene")

const (
	defaultParticleCapacity = 1000
	defaultTargetSize       = 512
)

// Factory builds objects with fresh UUIDs and tags them as added by the user.
type Factory struct {
	core     *editor.Core
	notifier gui.Notifier
	logger   *zap.Logger
}

func New(core *editor.Core, notifier gui.Notifier, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{core: core, notifier: notifier, logger: logger.Named("factory")}
}

// add tags obj, inserts it into the current scene and announces it.
func (f *Factory) add(obj scene.Object) error {
	s := f.core.CurrentScene()
	if s == nil {
		return ErrNoScene
	}
	obj.SetAdded(true)
	if err := s.Add(obj); err != nil {
		return fmt.Errorf("add %s %s: %w", obj.Kind(), obj.Name(), err)
	}
	f.logger.Debug("object added", zap.String("id", obj.ID()), zap.Stringer("kind", obj.Kind()))
	return event.SendSceneEvent(f.core, obj, event.ObjectAdded)
}

// lightNames gives each light type its default display name.
var lightNames = map[scene.LightType]string{
	scene.LightPoint:       "New Point Light",
	scene.LightDirectional: "New Directional Light",
	scene.LightSpot:        "New Spot Light",
	scene.LightHemispheric: "New Hemispheric Light",
}

func (f *Factory) AddLight(t scene.LightType) (*scene.Light, error) {
	l := scene.NewLight(scene.NewID(), lightNames[t], t)
	switch t {
	case scene.LightPoint:
		l.Transform().Position = rl.Vector3{Y: 10}
	case scene.LightDirectional:
		l.Direction = rl.Vector3{X: -1, Y: -2, Z: -1}
	case scene.LightSpot:
		l.Transform().Position = rl.Vector3{Y: 10}
		l.Direction = rl.Vector3{Y: -1}
	case scene.LightHemispheric:
		l.Direction = rl.Vector3{Y: 1}
	}
	if err := f.add(l); err != nil {
		return nil, err
	}
	return l, nil
}

var meshDefaults = map[scene.Primitive]struct {
	name string
	size float32
}{
	scene.PrimitiveBox:    {"New Cube", 1},
	scene.PrimitiveSphere: {"New Sphere", 1},
	scene.PrimitivePlane:  {"New Plane", 10},
	scene.PrimitiveGround: {"New Ground", 100},
	scene.PrimitiveTorus:  {"New Torus", 1},
}

func newMesh(p scene.Primitive, name string, size float32) *scene.Mesh {
	m := scene.NewMesh(scene.NewID(), name, p, size)
	m.Material = scene.NewStandardMaterial(name+" Material", rl.White)
	return m
}

func (f *Factory) AddMesh(p scene.Primitive) (*scene.Mesh, error) {
	def, ok := meshDefaults[p]
	if !ok {
		return nil, fmt.Errorf("add mesh: unknown primitive %q", p)
	}
	m := newMesh(p, def.name, def.size)
	if err := f.add(m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddParticleSystem attaches a particle system to emitter. A mesh emits at
// most one particle system: when emitter is nil or already emits, the user
// is told and a fresh sphere emitter is created instead.
func (f *Factory) AddParticleSystem(emitter *scene.Mesh) (*scene.ParticleSystem, error) {
	s := f.core.CurrentScene()
	if s == nil {
		return nil, ErrNoScene
	}
	if emitter != nil && len(s.ParticleSystemsOf(emitter.ID())) > 0 {
		if f.notifier != nil {
			f.notifier.Alert("Particle System", "A Particle System can be attached to only one mesh")
		}
		emitter = nil
	}
	if emitter == nil {
		emitter = newMesh(scene.PrimitiveSphere, "New Particle System Emitter", 0.2)
		if err := f.add(emitter); err != nil {
			return nil, err
		}
	}

	ps := scene.NewParticleSystem(scene.NewID(), "New Particle System", defaultParticleCapacity)
	ps.EmitterID = emitter.ID()
	if err := f.add(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// AddLensFlareSystem creates a three-flare system emitting from emitter,
// typically a light.
func (f *Factory) AddLensFlareSystem(emitter scene.Object) (*scene.LensFlareSystem, error) {
	if emitter == nil {
		return nil, errors.New("add lens flare system: no emitter")
	}
	lf := scene.NewLensFlareSystem(scene.NewID(), "New Lens Flare System", emitter.ID())
	lf.AddFlare(0.2, 0, rl.White, nil)
	lf.AddFlare(0.5, 0.2, rl.NewColor(128, 128, 255, 255), nil)
	lf.AddFlare(0.2, 1, rl.NewColor(255, 255, 128, 255), nil)
	if err := f.add(lf); err != nil {
		return nil, err
	}
	return lf, nil
}

// AddReflectionProbe creates a probe whose render list holds every mesh
// currently in the scene.
func (f *Factory) AddReflectionProbe() (*scene.ReflectionProbe, error) {
	s := f.core.CurrentScene()
	if s == nil {
		return nil, ErrNoScene
	}
	p := scene.NewReflectionProbe(scene.NewID(), "New Reflection Probe", defaultTargetSize)
	for _, m := range s.Meshes() {
		p.AddToRenderList(m.ID())
	}
	if err := f.add(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *Factory) AddRenderTarget() (*scene.RenderTarget, error) {
	s := f.core.CurrentScene()
	if s == nil {
		return nil, ErrNoScene
	}
	rt := scene.NewRenderTarget(scene.NewID(), "New Render Target", defaultTargetSize)
	for _, m := range s.Meshes() {
		rt.AddToRenderList(m.ID())
	}
	if err := f.add(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// AddSound creates a sound in the scene's first soundtrack, creating the
// soundtrack when the scene has none.
func (f *Factory) AddSound(name, url string) (*scene.Sound, error) {
	s := f.core.CurrentScene()
	if s == nil {
		return nil, ErrNoScene
	}
	tracks := s.SoundTracks()
	var track *scene.SoundTrack
	if len(tracks) == 0 {
		track = scene.NewSoundTrack("", "Main Track")
		s.AddSoundTrack(track)
	} else {
		track = tracks[0]
	}

	snd := scene.NewSound(scene.NewID(), name, url)
	snd.SoundTrackID = track.ID
	if err := f.add(snd); err != nil {
		return nil, err
	}
	return snd, nil
}
