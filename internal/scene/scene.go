package scene

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrDuplicateID    = errors.New("scene: duplicate object id")
	ErrNotFound       = errors.New("scene: object not found")
	ErrCustomGeometry = errors.New("scene: mesh has custom geometry")
	ErrNotAMesh       = errors.New("scene: object is not a mesh")
)

type PostProcesses struct {
	Bloom       bool
	BloomWeight float32
	FXAA        bool
	SSAO        bool
	SSAORatio   float32
	Exposure    float32
}

// Scene owns every object it contains and is the lookup table through which
// editor components resolve the ids they hold.
type Scene struct {
	Header
	ClearColor     rl.Color
	AmbientColor   rl.Color
	FogEnabled     bool
	FogDensity     float32
	ForceWireframe bool
	PostProcesses  PostProcesses
	Animation      AnimationConfig
	ActiveCameraID string
	// AutoClear is false for overlay scenes drawn over the previous one.
	AutoClear bool

	order       []string
	objects     map[string]Object
	soundTracks []*SoundTrack
	frame       float32
	removedBase []string
}

func New(name string) *Scene {
	return &Scene{
		Header:        newHeader("", name, KindScene),
		ClearColor:    rl.NewColor(51, 51, 76, 255),
		AmbientColor:  rl.Black,
		FogDensity:    0.1,
		PostProcesses: PostProcesses{BloomWeight: 0.15, SSAORatio: 0.5, Exposure: 1},
		Animation:     DefaultAnimationConfig(),
		AutoClear:     true,
		objects:       make(map[string]Object),
	}
}

// Add inserts obj into the lookup table. Meshes bring their sub-meshes along
// and sounds join their soundtrack.
func (s *Scene) Add(obj Object) error {
	if obj == nil {
		return fmt.Errorf("add: nil object")
	}
	if _, exists := s.objects[obj.ID()]; exists || obj.ID() == s.ID() {
		return fmt.Errorf("add %q: %w", obj.ID(), ErrDuplicateID)
	}
	s.objects[obj.ID()] = obj
	s.order = append(s.order, obj.ID())

	switch o := obj.(type) {
	case *Mesh:
		for _, sm := range o.SubMeshes {
			if _, exists := s.objects[sm.ID()]; !exists {
				s.objects[sm.ID()] = sm
				s.order = append(s.order, sm.ID())
			}
		}
	case *Sound:
		if t := s.SoundTrack(o.SoundTrackID); t != nil && !containsID(t.Sounds, o.ID()) {
			t.Sounds = append(t.Sounds, o.ID())
		}
	}
	return nil
}

// Lookup resolves an id; the scene itself answers to its own id.
func (s *Scene) Lookup(id string) Object {
	if id == s.ID() {
		return s
	}
	if obj, ok := s.objects[id]; ok {
		return obj
	}
	return nil
}

func (s *Scene) Contains(id string) bool {
	_, ok := s.objects[id]
	return ok
}

// Objects returns every object in insertion order.
func (s *Scene) Objects() []Object {
	out := make([]Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

func collect[T Object](s *Scene) []T {
	var out []T
	for _, id := range s.order {
		if v, ok := s.objects[id].(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func (s *Scene) Meshes() []*Mesh                      { return collect[*Mesh](s) }
func (s *Scene) Lights() []*Light                     { return collect[*Light](s) }
func (s *Scene) Cameras() []*Camera                   { return collect[*Camera](s) }
func (s *Scene) ParticleSystems() []*ParticleSystem   { return collect[*ParticleSystem](s) }
func (s *Scene) LensFlareSystems() []*LensFlareSystem { return collect[*LensFlareSystem](s) }
func (s *Scene) Sounds() []*Sound                     { return collect[*Sound](s) }
func (s *Scene) RenderTargets() []*RenderTarget       { return collect[*RenderTarget](s) }
func (s *Scene) ReflectionProbes() []*ReflectionProbe { return collect[*ReflectionProbe](s) }

func (s *Scene) SoundTracks() []*SoundTrack { return s.soundTracks }

func (s *Scene) AddSoundTrack(t *SoundTrack) {
	for _, existing := range s.soundTracks {
		if existing.ID == t.ID {
			return
		}
	}
	s.soundTracks = append(s.soundTracks, t)
}

func (s *Scene) SoundTrack(id string) *SoundTrack {
	for _, t := range s.soundTracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Children returns the objects whose parent reference is id, in insertion order.
func (s *Scene) Children(id string) []Object {
	var out []Object
	for _, oid := range s.order {
		if p, ok := s.objects[oid].(Parented); ok && p.ParentRef() == id {
			out = append(out, s.objects[oid])
		}
	}
	return out
}

// Roots returns the nodes that have no parent.
func (s *Scene) Roots() []NodeObject {
	var out []NodeObject
	for _, id := range s.order {
		if n, ok := s.objects[id].(NodeObject); ok && n.Base().ParentID == "" {
			out = append(out, n)
		}
	}
	return out
}

func (s *Scene) ParticleSystemsOf(emitterID string) []*ParticleSystem {
	var out []*ParticleSystem
	for _, ps := range s.ParticleSystems() {
		if ps.EmitterID == emitterID {
			out = append(out, ps)
		}
	}
	return out
}

func (s *Scene) LensFlareSystemsOf(emitterID string) []*LensFlareSystem {
	var out []*LensFlareSystem
	for _, lf := range s.LensFlareSystems() {
		if lf.EmitterID == emitterID {
			out = append(out, lf)
		}
	}
	return out
}

func (s *Scene) ActiveCamera() *Camera {
	c, _ := s.Lookup(s.ActiveCameraID).(*Camera)
	return c
}

// referrers lists every holder of non-owning references, soundtracks included.
func (s *Scene) referrers() []Referrer {
	var out []Referrer
	for _, id := range s.order {
		if r, ok := s.objects[id].(Referrer); ok {
			out = append(out, r)
		}
	}
	for _, t := range s.soundTracks {
		out = append(out, t)
	}
	return out
}

// IsReferenced reports whether any holder still references id.
func (s *Scene) IsReferenced(id string) bool {
	for _, r := range s.referrers() {
		if r.References(id) {
			return true
		}
	}
	return false
}

// Dispose removes the object, its descendants and every holder orphaned by
// their removal, then scrubs the remaining references to all of them. The
// removed objects are returned in removal order.
func (s *Scene) Dispose(id string) ([]Object, error) {
	obj, ok := s.objects[id]
	if !ok {
		return nil, fmt.Errorf("dispose %q: %w", id, ErrNotFound)
	}
	var removed []Object
	s.dispose(obj, &removed)
	return removed, nil
}

func (s *Scene) dispose(obj Object, removed *[]Object) {
	id := obj.ID()
	if _, ok := s.objects[id]; !ok {
		return
	}
	delete(s.objects, id)
	s.order = removeID(s.order, id)
	*removed = append(*removed, obj)
	if !obj.Added() {
		s.removedBase = append(s.removedBase, id)
	}
	if s.ActiveCameraID == id {
		s.ActiveCameraID = ""
	}

	for _, child := range s.Children(id) {
		s.dispose(child, removed)
	}

	for _, r := range s.referrers() {
		if !r.References(id) {
			continue
		}
		if r.ReleaseReference(id) {
			if o, ok := r.(Object); ok {
				s.dispose(o, removed)
			}
		}
	}
}

// RemovedBase returns the ids of the disposed objects that were not added in
// the editor, in removal order.
func (s *Scene) RemovedBase() []string { return s.removedBase }

// CloneMesh duplicates a mesh next to the original. Every particle system
// emitting from the original gets a copy emitting from the clone, with its
// own texture buffer.
func (s *Scene) CloneMesh(id string) (*Mesh, []*ParticleSystem, error) {
	obj := s.Lookup(id)
	if obj == nil {
		return nil, nil, fmt.Errorf("clone %q: %w", id, ErrNotFound)
	}
	mesh, ok := obj.(*Mesh)
	if !ok {
		return nil, nil, fmt.Errorf("clone %q: %w", id, ErrNotAMesh)
	}
	if mesh.CustomGeometry {
		return nil, nil, fmt.Errorf("clone %q: %w", id, ErrCustomGeometry)
	}

	clone := mesh.Clone("", mesh.Name()+" (Clone)")
	clone.SetAdded(true)
	if err := s.Add(clone); err != nil {
		return nil, nil, err
	}

	var systems []*ParticleSystem
	for _, ps := range s.ParticleSystemsOf(mesh.ID()) {
		c := ps.Clone("", ps.Name()+" (Clone)", clone.ID())
		c.SetAdded(true)
		if err := s.Add(c); err != nil {
			return nil, nil, err
		}
		systems = append(systems, c)
	}
	return clone, systems, nil
}

// MaxFrame is the last key frame across every animated node.
func (s *Scene) MaxFrame() float32 {
	var last float32
	for _, id := range s.order {
		n, ok := s.objects[id].(NodeObject)
		if !ok {
			continue
		}
		for _, a := range n.Base().Animations {
			if f := a.MaxFrame(); f > last {
				last = f
			}
		}
	}
	return last
}

func (s *Scene) Frame() float32 { return s.frame }

// GoToFrame sets every animated node to its state at frame.
func (s *Scene) GoToFrame(frame float32) {
	s.frame = frame
	for _, id := range s.order {
		n, ok := s.objects[id].(NodeObject)
		if !ok {
			continue
		}
		for _, a := range n.Base().Animations {
			applyAnimation(n.Transform(), a, frame)
		}
	}
}

// Animated returns the nodes carrying at least one animation.
func (s *Scene) Animated() []NodeObject {
	var out []NodeObject
	for _, id := range s.order {
		if n, ok := s.objects[id].(NodeObject); ok && len(n.Base().Animations) > 0 {
			out = append(out, n)
		}
	}
	return out
}
