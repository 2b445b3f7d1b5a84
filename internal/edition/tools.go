package edition

import (
	"fmt"

	"sceneeditor/internal/gui"
	"sceneeditor/internal/history"
	"sceneeditor/internal/scene"
)

// tab supplies the identity half of a Tool.
type tab struct {
	id, caption string
}

func (t tab) ID() string      { return t.id }
func (t tab) Caption() string { return t.caption }

func newForm(t Tool, obj scene.Object) *gui.Form {
	return gui.NewForm(t.ID()+"-"+obj.ID(), t.Caption())
}

// DefaultTools returns every property tool in tab order.
func DefaultTools(hist *history.Stack) []Tool {
	return []Tool{
		NewGeneralTool(),
		NewTransformsTool(hist),
		NewMaterialTool(),
		NewStandardMaterialTool(),
		NewPBRMaterialTool(),
		NewLightTool(),
		NewParticleSystemTool(),
		NewLensFlareTool(),
		NewSoundTool(),
		NewRenderTargetTool(),
		NewSceneTool(),
		NewPostProcessesTool(),
	}
}

type GeneralTool struct{ tab }

func NewGeneralTool() *GeneralTool { return &GeneralTool{tab{"general", "General"}} }

func (t *GeneralTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	switch obj.Kind() {
	case scene.KindMesh, scene.KindLight, scene.KindCamera, scene.KindParticleSystem,
		scene.KindLensFlareSystem, scene.KindSound, scene.KindRenderTarget, scene.KindReflectionProbe:
		return true
	}
	return false
}

func (t *GeneralTool) Build(_ *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	f.AddTextFunc("name", obj.Name, obj.SetName)
	if n, ok := obj.(scene.NodeObject); ok {
		f.AddBool("enabled", &n.Base().Enabled)
	}
	if m, ok := obj.(*scene.Mesh); ok {
		f.AddBool("visible", &m.Visible)
		f.AddBool("receiveShadows", &m.ReceiveShadows)
	}
	return f
}

// TransformsTool edits position, rotation and scaling. Each edit snapshots
// the previous transform for undo; a slider drag is one edit.
type TransformsTool struct {
	tab
	history *history.Stack
}

func NewTransformsTool(hist *history.Stack) *TransformsTool {
	return &TransformsTool{tab: tab{"transforms", "Transforms"}, history: hist}
}

func (t *TransformsTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	_, ok := obj.(scene.Transformable)
	return ok
}

func (t *TransformsTool) Build(_ *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	tr := obj.(scene.Transformable)
	tf := tr.Transform()
	vectors := []struct {
		name     string
		v        *float32
		min, max float32
	}{
		{"position.x", &tf.Position.X, -100, 100},
		{"position.y", &tf.Position.Y, -100, 100},
		{"position.z", &tf.Position.Z, -100, 100},
		{"rotation.x", &tf.Rotation.X, -180, 180},
		{"rotation.y", &tf.Rotation.Y, -180, 180},
		{"rotation.z", &tf.Rotation.Z, -180, 180},
		{"scaling.x", &tf.Scaling.X, 0, 10},
		{"scaling.y", &tf.Scaling.Y, 0, 10},
		{"scaling.z", &tf.Scaling.Z, 0, 10},
	}
	for _, vec := range vectors {
		ptr, name := vec.v, vec.name
		f.AddFloatFunc(name, vec.min, vec.max,
			func() float32 { return *ptr },
			func(v float32) {
				if f.BeginEdit(name) && t.history != nil {
					t.history.Push(tr)
				}
				*ptr = v
			})
	}
	return f
}

// editedMaterial is the material a material tool works on: a sub-mesh's
// effective material, or a mesh's own material.
func editedMaterial(s *scene.Scene, obj scene.Object) *scene.Material {
	switch o := obj.(type) {
	case *scene.Mesh:
		return o.Material
	case *scene.SubMesh:
		if s == nil {
			return nil
		}
		return o.EffectiveMaterial(s)
	}
	return nil
}

type MaterialTool struct{ tab }

func NewMaterialTool() *MaterialTool { return &MaterialTool{tab{"material", "Material"}} }

// Supports accepts a mesh with a single material, or a sub-mesh of a mesh
// using a multi-material.
func (t *MaterialTool) Supports(s *scene.Scene, obj scene.Object) bool {
	switch o := obj.(type) {
	case *scene.Mesh:
		return o.Material != nil && o.Material.Type != scene.MaterialMulti
	case *scene.SubMesh:
		if s == nil {
			return false
		}
		mesh, ok := s.Lookup(o.MeshID).(*scene.Mesh)
		return ok && mesh.Material != nil && mesh.Material.Type == scene.MaterialMulti && o.EffectiveMaterial(s) != nil
	}
	return false
}

func (t *MaterialTool) Build(s *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	m := editedMaterial(s, obj)
	f.AddText("name", &m.Name)
	f.AddFloat("alpha", &m.Alpha, 0, 1)
	f.AddBool("backFaceCulling", &m.BackFaceCulling)
	return f
}

type StandardMaterialTool struct{ tab }

func NewStandardMaterialTool() *StandardMaterialTool {
	return &StandardMaterialTool{tab{"standard-material", "Standard Material"}}
}

func (t *StandardMaterialTool) Supports(s *scene.Scene, obj scene.Object) bool {
	m := editedMaterial(s, obj)
	return m != nil && m.Type == scene.MaterialStandard
}

func (t *StandardMaterialTool) Build(s *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	m := editedMaterial(s, obj)
	f.AddColor("diffuse", &m.Diffuse)
	f.AddFloat("specularPower", &m.SpecularPower, 0, 256)
	f.AddFloat("emissive", &m.Emissive, 0, 1)
	return f
}

type PBRMaterialTool struct{ tab }

func NewPBRMaterialTool() *PBRMaterialTool { return &PBRMaterialTool{tab{"pbr-material", "PBR Material"}} }

func (t *PBRMaterialTool) Supports(s *scene.Scene, obj scene.Object) bool {
	m := editedMaterial(s, obj)
	return m != nil && m.Type == scene.MaterialPBR
}

func (t *PBRMaterialTool) Build(s *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	m := editedMaterial(s, obj)
	f.AddColor("albedo", &m.Diffuse)
	f.AddFloat("metallic", &m.Metallic, 0, 1)
	f.AddFloat("roughness", &m.Roughness, 0, 1)
	f.AddFloat("emissive", &m.Emissive, 0, 1)
	return f
}

type LightTool struct {
	tab
	ShadowMapSize int
}

func NewLightTool() *LightTool { return &LightTool{tab: tab{"light", "Light"}, ShadowMapSize: 1024} }

func (t *LightTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	_, ok := obj.(*scene.Light)
	return ok
}

func (t *LightTool) Build(_ *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	l := obj.(*scene.Light)
	f.AddFloat("intensity", &l.Intensity, 0, 10)
	f.AddColor("diffuse", &l.Diffuse)
	f.AddFloat("range", &l.Range, 0, 1000)
	if l.LightType == scene.LightDirectional || l.LightType == scene.LightSpot {
		f.AddVector3("direction", &l.Direction, -1, 1)
	}
	if l.LightType == scene.LightSpot {
		f.AddFloat("angle", &l.Angle, 0, 180)
	}
	if l.CanCastShadows() {
		f.AddBoolFunc("castShadows",
			func() bool { return l.ShadowGenerator != nil },
			func(on bool) {
				switch {
				case on && l.ShadowGenerator == nil:
					l.ShadowGenerator = scene.NewShadowGenerator(t.ShadowMapSize)
				case !on:
					l.ShadowGenerator = nil
				}
			})
	}
	return f
}

// emitterChoices lists the mesh ids an emitter field may point at, keeping
// the current value selectable.
func emitterChoices(s *scene.Scene, current string) []string {
	var ids []string
	found := false
	if s != nil {
		for _, m := range s.Meshes() {
			ids = append(ids, m.ID())
			found = found || m.ID() == current
		}
	}
	if !found {
		ids = append([]string{current}, ids...)
	}
	return ids
}

type ParticleSystemTool struct{ tab }

func NewParticleSystemTool() *ParticleSystemTool {
	return &ParticleSystemTool{tab{"particle-system", "Particle System"}}
}

func (t *ParticleSystemTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	_, ok := obj.(*scene.ParticleSystem)
	return ok
}

func (t *ParticleSystemTool) Build(s *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	ps := obj.(*scene.ParticleSystem)
	f.AddChoice("emitter", emitterChoices(s, ps.EmitterID),
		func() string { return ps.EmitterID },
		func(id string) { ps.EmitterID = id })
	f.AddInt("capacity", &ps.Capacity, 1, 10000)
	f.AddFloat("emitRate", &ps.EmitRate, 0, 1000)
	f.AddFloat("minSize", &ps.MinSize, 0, 10)
	f.AddFloat("maxSize", &ps.MaxSize, 0, 10)
	f.AddFloat("minLifeTime", &ps.MinLifeTime, 0, 10)
	f.AddFloat("maxLifeTime", &ps.MaxLifeTime, 0, 10)
	f.AddVector3("gravity", &ps.Gravity, -20, 20)
	f.AddColor("color", &ps.Color)
	return f
}

type LensFlareTool struct{ tab }

func NewLensFlareTool() *LensFlareTool { return &LensFlareTool{tab{"lens-flare", "Lens Flare"}} }

func (t *LensFlareTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	_, ok := obj.(*scene.LensFlareSystem)
	return ok
}

func (t *LensFlareTool) Build(s *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	lf := obj.(*scene.LensFlareSystem)
	f.AddChoice("emitter", emitterChoices(s, lf.EmitterID),
		func() string { return lf.EmitterID },
		func(id string) { lf.EmitterID = id })
	for i, flare := range lf.Flares {
		prefix := fmt.Sprintf("flare%d.", i)
		f.AddFloat(prefix+"size", &flare.Size, 0, 1)
		f.AddFloat(prefix+"position", &flare.Position, -1, 1)
		f.AddColor(prefix+"color", &flare.Color)
	}
	return f
}

type SoundTool struct{ tab }

func NewSoundTool() *SoundTool { return &SoundTool{tab{"sound", "Sound"}} }

func (t *SoundTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	_, ok := obj.(*scene.Sound)
	return ok
}

func (t *SoundTool) Build(_ *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	snd := obj.(*scene.Sound)
	f.AddText("url", &snd.URL)
	f.AddFloat("volume", &snd.Volume, 0, 1)
	f.AddBool("loop", &snd.Loop)
	f.AddBool("autoplay", &snd.Autoplay)
	f.AddBoolFunc("spatial",
		func() bool { return snd.Spatial },
		func(on bool) { snd.Spatial = on && snd.AttachedMeshID != "" })
	return f
}

type RenderTargetTool struct{ tab }

func NewRenderTargetTool() *RenderTargetTool {
	return &RenderTargetTool{tab{"render-target", "Render Target"}}
}

func (t *RenderTargetTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	switch obj.(type) {
	case *scene.RenderTarget, *scene.ReflectionProbe:
		return true
	}
	return false
}

func (t *RenderTargetTool) Build(s *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	switch o := obj.(type) {
	case *scene.RenderTarget:
		f.AddInt("size", &o.Size, 16, 4096)
		f.AddInt("refreshRate", &o.RefreshRate, 0, 60)
	case *scene.ReflectionProbe:
		f.AddInt("size", &o.Size, 16, 4096)
		f.AddInt("refreshRate", &o.RefreshRate, 0, 60)
		f.AddChoice("attachedMesh", emitterChoices(s, o.AttachedMeshID),
			func() string { return o.AttachedMeshID },
			func(id string) { o.AttachedMeshID = id })
		f.AddVector3("position", &o.Position, -100, 100)
	}
	return f
}

type SceneTool struct{ tab }

func NewSceneTool() *SceneTool { return &SceneTool{tab{"scene", "Scene"}} }

func (t *SceneTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	_, ok := obj.(*scene.Scene)
	return ok
}

func (t *SceneTool) Build(_ *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	s := obj.(*scene.Scene)
	f.AddColor("clearColor", &s.ClearColor)
	f.AddColor("ambientColor", &s.AmbientColor)
	f.AddBool("fogEnabled", &s.FogEnabled)
	f.AddFloat("fogDensity", &s.FogDensity, 0, 1)
	f.AddBool("forceWireframe", &s.ForceWireframe)
	f.AddFloat("animation.speed", &s.Animation.Speed, 0, 10)
	f.AddInt("animation.fps", &s.Animation.FramesPerSecond, 1, 120)
	f.AddBool("animation.loop", &s.Animation.Loop)
	return f
}

type PostProcessesTool struct{ tab }

func NewPostProcessesTool() *PostProcessesTool {
	return &PostProcessesTool{tab{"post-processes", "Post-Processes"}}
}

func (t *PostProcessesTool) Supports(_ *scene.Scene, obj scene.Object) bool {
	_, ok := obj.(*scene.Scene)
	return ok
}

func (t *PostProcessesTool) Build(_ *scene.Scene, obj scene.Object) *gui.Form {
	f := newForm(t, obj)
	pp := &obj.(*scene.Scene).PostProcesses
	f.AddFloat("exposure", &pp.Exposure, 0, 10)
	f.AddBool("bloom", &pp.Bloom)
	f.AddFloat("bloomWeight", &pp.BloomWeight, 0, 1)
	f.AddBool("fxaa", &pp.FXAA)
	f.AddBool("ssao", &pp.SSAO)
	f.AddFloat("ssaoRatio", &pp.SSAORatio, 0, 1)
	return f
}
