package scene

import rl "github.com/gen2brain/raylib-go/raylib"

// RenderTarget renders its render list into a texture.
type RenderTarget struct {
	Header
	Size        int
	RefreshRate int
	RenderList  []string
}

func NewRenderTarget(id, name string, size int) *RenderTarget {
	return &RenderTarget{
		Header:      newHeader(id, name, KindRenderTarget),
		Size:        size,
		RefreshRate: 1,
	}
}

func (r *RenderTarget) AddToRenderList(id string) {
	if !containsID(r.RenderList, id) {
		r.RenderList = append(r.RenderList, id)
	}
}

func (r *RenderTarget) References(id string) bool { return containsID(r.RenderList, id) }

func (r *RenderTarget) ReleaseReference(id string) bool {
	r.RenderList = removeID(r.RenderList, id)
	return false
}

// ReflectionProbe captures a cube map around a position or an attached mesh.
type ReflectionProbe struct {
	Header
	Size           int
	RefreshRate    int
	Position       rl.Vector3
	AttachedMeshID string
	RenderList     []string
}

func NewReflectionProbe(id, name string, size int) *ReflectionProbe {
	return &ReflectionProbe{
		Header:      newHeader(id, name, KindReflectionProbe),
		Size:        size,
		RefreshRate: 1,
	}
}

func (p *ReflectionProbe) AddToRenderList(id string) {
	if !containsID(p.RenderList, id) {
		p.RenderList = append(p.RenderList, id)
	}
}

func (p *ReflectionProbe) References(id string) bool {
	return p.AttachedMeshID == id || containsID(p.RenderList, id)
}

func (p *ReflectionProbe) ReleaseReference(id string) bool {
	if p.AttachedMeshID == id {
		p.AttachedMeshID = ""
	}
	p.RenderList = removeID(p.RenderList, id)
	return false
}
