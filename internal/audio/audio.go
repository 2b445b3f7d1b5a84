// Package audio previews the scene's sounds while the timeline plays.
package audio

import (
	"errors"
	"fmt"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/scene"
)

// MaxDistance is the distance at which a spatial sound fades out completely.
const MaxDistance float32 = 100

var ErrUnsupportedURL = errors.New("audio: unsupported sound url")

// Clip is a loaded sound owned by a Backend.
type Clip any

// Backend plays clips. Pan runs from 0 (left) to 1 (right).
type Backend interface {
	Load(url string) (Clip, error)
	Unload(c Clip)
	Play(c Clip)
	Stop(c Clip)
	IsPlaying(c Clip) bool
	SetVolume(c Clip, volume float32)
	SetPan(c Clip, pan float32)
}

// Playback reports whether the scene is being played.
type Playback interface {
	Playing() bool
}

type source struct {
	clip    Clip
	playing bool
}

// Player starts the autoplay sounds when playback starts, keeps spatial
// sounds mixed relative to the active camera and stops everything when
// playback stops.
type Player struct {
	core     *editor.Core
	backend  Backend
	playback Playback
	logger   *zap.Logger

	sources    map[string]*source
	failed     map[string]bool
	wasPlaying bool
	unregister editor.Unregister
}

func NewPlayer(core *editor.Core, backend Backend, playback Playback, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Player{
		core:     core,
		backend:  backend,
		playback: playback,
		logger:   logger.Named("audio"),
		sources:  make(map[string]*source),
		failed:   make(map[string]bool),
	}
	p.unregister = core.RegisterUpdatable(p)
	return p
}

// Dispose stops and unloads every clip.
func (p *Player) Dispose() {
	p.unregister()
	for id := range p.sources {
		p.release(id)
	}
}

// Playing reports whether the sound with id is currently audible.
func (p *Player) Playing(id string) bool {
	src, ok := p.sources[id]
	return ok && src.playing
}

func (p *Player) OnPreUpdate() {}

// OnPostUpdate runs after the timeline advanced and the scene was drawn.
func (p *Player) OnPostUpdate() {
	playing := p.playback.Playing()
	s := p.core.CurrentScene()

	for id := range p.sources {
		if s == nil || s.Lookup(id) == nil {
			p.release(id)
		}
	}

	switch {
	case playing && !p.wasPlaying:
		p.start(s)
	case !playing && p.wasPlaying:
		p.stopAll()
	}
	p.wasPlaying = playing
	if playing && s != nil {
		p.mix(s)
	}
}

func (p *Player) start(s *scene.Scene) {
	if s == nil {
		return
	}
	for _, snd := range s.Sounds() {
		if !snd.Autoplay {
			continue
		}
		src := p.load(snd)
		if src == nil {
			continue
		}
		p.backend.Play(src.clip)
		src.playing = true
	}
}

func (p *Player) load(snd *scene.Sound) *source {
	if src, ok := p.sources[snd.ID()]; ok {
		return src
	}
	if p.failed[snd.ID()] {
		return nil
	}
	clip, err := p.backend.Load(snd.URL)
	if err != nil {
		p.failed[snd.ID()] = true
		p.logger.Warn("sound not loaded", zap.String("sound", snd.Name()), zap.Error(err))
		return nil
	}
	src := &source{clip: clip}
	p.sources[snd.ID()] = src
	return src
}

func (p *Player) stopAll() {
	for _, src := range p.sources {
		if src.playing {
			p.backend.Stop(src.clip)
			src.playing = false
		}
	}
}

func (p *Player) release(id string) {
	src := p.sources[id]
	if src.playing {
		p.backend.Stop(src.clip)
	}
	p.backend.Unload(src.clip)
	delete(p.sources, id)
}

// mix restarts looping clips, retires finished ones and applies distance
// attenuation and panning to spatial sounds.
func (p *Player) mix(s *scene.Scene) {
	var view rl.Camera3D
	cam := p.core.ActiveCamera()
	if cam != nil {
		view = cam.Raylib()
	}
	for id, src := range p.sources {
		if !src.playing {
			continue
		}
		snd, ok := s.Lookup(id).(*scene.Sound)
		if !ok {
			continue
		}
		if !p.backend.IsPlaying(src.clip) {
			if !snd.Loop {
				src.playing = false
				continue
			}
			p.backend.Play(src.clip)
		}

		mesh, attached := s.Lookup(snd.AttachedMeshID).(*scene.Mesh)
		if !snd.Spatial || !attached || cam == nil {
			p.backend.SetVolume(src.clip, snd.Volume)
			p.backend.SetPan(src.clip, 0.5)
			continue
		}
		volume, pan := Spatialize(view, s.WorldPosition(mesh), snd.Volume)
		p.backend.SetVolume(src.clip, volume)
		p.backend.SetPan(src.clip, pan)
	}
}

// Spatialize returns the volume and pan of a sound at pos heard from view.
// Volume falls off linearly up to MaxDistance and sounds behind the
// listener are slightly quieter.
func Spatialize(view rl.Camera3D, pos rl.Vector3, volume float32) (float32, float32) {
	toSource := rl.Vector3Subtract(pos, view.Position)
	distance := rl.Vector3Length(toSource)
	if distance >= MaxDistance {
		return 0, 0.5
	}
	volume *= 1 - distance/MaxDistance
	if distance < 0.001 {
		return volume, 0.5
	}

	forward := rl.Vector3Normalize(rl.Vector3Subtract(view.Target, view.Position))
	if rl.Vector3Length(forward) < 0.001 {
		forward = rl.Vector3{Z: -1}
	}
	right := rl.Vector3CrossProduct(forward, view.Up)
	if rl.Vector3Length(right) < 0.001 {
		right = rl.Vector3{X: 1}
	} else {
		right = rl.Vector3Normalize(right)
	}

	direction := rl.Vector3Scale(toSource, 1/distance)
	pan := 0.5 + rl.Vector3DotProduct(direction, right)*0.5
	pan = float32(math.Max(0, math.Min(1, float64(pan))))

	if front := rl.Vector3DotProduct(direction, forward); front < 0 {
		volume *= 0.7 + 0.3*float32(math.Abs(float64(front)))
	}
	return volume, pan
}

// RaylibBackend plays sounds from files through the raylib audio device,
// which must be initialized.
type RaylibBackend struct{}

func (RaylibBackend) Load(url string) (Clip, error) {
	if url == "" || strings.HasPrefix(url, "data:") || strings.Contains(url, "://") {
		return nil, fmt.Errorf("%q: %w", url, ErrUnsupportedURL)
	}
	snd := rl.LoadSound(url)
	if !rl.IsSoundValid(snd) {
		return nil, fmt.Errorf("load sound %s: invalid data", url)
	}
	return snd, nil
}

func (RaylibBackend) Unload(c Clip)               { rl.UnloadSound(c.(rl.Sound)) }
func (RaylibBackend) Play(c Clip)                 { rl.PlaySound(c.(rl.Sound)) }
func (RaylibBackend) Stop(c Clip)                 { rl.StopSound(c.(rl.Sound)) }
func (RaylibBackend) IsPlaying(c Clip) bool       { return rl.IsSoundPlaying(c.(rl.Sound)) }
func (RaylibBackend) SetVolume(c Clip, v float32) { rl.SetSoundVolume(c.(rl.Sound), v) }
func (RaylibBackend) SetPan(c Clip, pan float32)  { rl.SetSoundPan(c.(rl.Sound), pan) }
