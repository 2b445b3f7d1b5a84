package scene

import rl "github.com/gen2brain/raylib-go/raylib"

// Texture holds an image buffer. Offsets are baked per instance, so textures
// are copied rather than shared when their owner is cloned.
type Texture struct {
	Name     string
	MimeType string
	Data     []byte
	UOffset  float32
	VOffset  float32
}

func (t *Texture) Clone() *Texture {
	if t == nil {
		return nil
	}
	c := *t
	c.Data = append([]byte(nil), t.Data...)
	return &c
}

type ParticleSystem struct {
	Header
	EmitterID   string
	Capacity    int
	EmitRate    float32
	MinSize     float32
	MaxSize     float32
	MinLifeTime float32
	MaxLifeTime float32
	Gravity     rl.Vector3
	Color       rl.Color
	Texture     *Texture
}

func NewParticleSystem(id, name string, capacity int) *ParticleSystem {
	return &ParticleSystem{
		Header:      newHeader(id, name, KindParticleSystem),
		Capacity:    capacity,
		EmitRate:    100,
		MinSize:     0.1,
		MaxSize:     0.5,
		MinLifeTime: 0.3,
		MaxLifeTime: 1.5,
		Gravity:     rl.Vector3{Y: -9.81},
		Color:       rl.White,
	}
}

func (p *ParticleSystem) ParentRef() string { return p.EmitterID }

func (p *ParticleSystem) References(id string) bool { return p.EmitterID == id }

// ReleaseReference detaches the emitter; a particle system without an
// emitter is disposed with it.
func (p *ParticleSystem) ReleaseReference(id string) bool {
	if p.EmitterID != id {
		return false
	}
	p.EmitterID = ""
	return true
}

// Clone duplicates the system onto another emitter with its own texture buffer.
func (p *ParticleSystem) Clone(id, name, emitterID string) *ParticleSystem {
	c := *p
	c.Header = newHeader(id, name, KindParticleSystem)
	c.EmitterID = emitterID
	c.Texture = p.Texture.Clone()
	return &c
}

type LensFlare struct {
	Size     float32
	Position float32
	Color    rl.Color
	Texture  *Texture
}

type LensFlareSystem struct {
	Header
	EmitterID string
	Flares    []*LensFlare
}

func NewLensFlareSystem(id, name, emitterID string) *LensFlareSystem {
	return &LensFlareSystem{
		Header:    newHeader(id, name, KindLensFlareSystem),
		EmitterID: emitterID,
	}
}

func (l *LensFlareSystem) AddFlare(size, position float32, color rl.Color, tex *Texture) *LensFlare {
	f := &LensFlare{Size: size, Position: position, Color: color, Texture: tex}
	l.Flares = append(l.Flares, f)
	return f
}

func (l *LensFlareSystem) ParentRef() string { return l.EmitterID }

func (l *LensFlareSystem) References(id string) bool { return l.EmitterID == id }

func (l *LensFlareSystem) ReleaseReference(id string) bool {
	if l.EmitterID != id {
		return false
	}
	l.EmitterID = ""
	return true
}
