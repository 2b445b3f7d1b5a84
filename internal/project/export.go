package project

import (
	"encoding/json"
	"fmt"

	"sceneeditor/internal/scene"
)

// Export captures s. Nodes created in the editor are written in full, base
// nodes only by transform and deleted base objects by id. Particle systems, lens flares, render targets,
// probes and sounds are always written.
func Export(s *scene.Scene) *Project {
	p := &Project{
		Version: Version,
		GlobalConfiguration: GlobalConfiguration{
			Name:            s.Name(),
			AnimationSpeed:  s.Animation.Speed,
			FramesPerSecond: s.Animation.FramesPerSecond,
			AutoAnimate:     append([]string(nil), s.Animation.AutoAnimate...),
			AnimateFrom:     s.Animation.From,
			AnimateTo:       s.Animation.To,
			AnimateLoop:     s.Animation.Loop,
			ClearColor:      colorHex(s.ClearColor),
			AmbientColor:    colorHex(s.AmbientColor),
			FogEnabled:      s.FogEnabled,
			FogDensity:      s.FogDensity,
			ForceWireframe:  s.ForceWireframe,
			ActiveCamera:    s.ActiveCameraID,
		},
		PostProcesses: PostProcessesDef{
			Exposure:    s.PostProcesses.Exposure,
			Bloom:       s.PostProcesses.Bloom,
			BloomWeight: s.PostProcesses.BloomWeight,
			FXAA:        s.PostProcesses.FXAA,
			SSAO:        s.PostProcesses.SSAO,
			SSAORatio:   s.PostProcesses.SSAORatio,
		},
		RemovedNodes: append([]string(nil), s.RemovedBase()...),
	}

	for _, obj := range s.Objects() {
		if n, ok := obj.(scene.NodeObject); ok {
			if n.Added() {
				p.Nodes = append(p.Nodes, encodeNode(n))
			} else {
				tf := n.Transform()
				p.ModifiedNodes = append(p.ModifiedNodes, ModifiedNodeDef{
					ID:       n.ID(),
					Position: vec(tf.Position),
					Rotation: vec(tf.Rotation),
					Scaling:  vec(tf.Scaling),
				})
			}
			for _, a := range n.Base().Animations {
				p.Animations = append(p.Animations, encodeAnimation(n.ID(), a))
			}
		}

		switch o := obj.(type) {
		case *scene.Light:
			if g := o.ShadowGenerator; g != nil {
				p.ShadowGenerators = append(p.ShadowGenerators, ShadowGeneratorDef{
					LightID:    o.ID(),
					MapSize:    g.MapSize,
					Bias:       g.Bias,
					RenderList: append([]string{}, g.RenderList...),
				})
			}
		case *scene.ParticleSystem:
			p.ParticleSystems = append(p.ParticleSystems, ParticleSystemDef{
				ID:          o.ID(),
				Name:        o.Name(),
				EmitterID:   o.EmitterID,
				Capacity:    o.Capacity,
				EmitRate:    o.EmitRate,
				MinSize:     o.MinSize,
				MaxSize:     o.MaxSize,
				MinLifeTime: o.MinLifeTime,
				MaxLifeTime: o.MaxLifeTime,
				Gravity:     vec(o.Gravity),
				Color:       colorHex(o.Color),
				Texture:     encodeTexture(o.Texture),
			})
		case *scene.LensFlareSystem:
			def := LensFlareSystemDef{ID: o.ID(), Name: o.Name(), EmitterID: o.EmitterID}
			for _, f := range o.Flares {
				def.Flares = append(def.Flares, LensFlareDef{
					Size:     f.Size,
					Position: f.Position,
					Color:    colorHex(f.Color),
					Texture:  encodeTexture(f.Texture),
				})
			}
			p.LensFlareSystems = append(p.LensFlareSystems, def)
		case *scene.RenderTarget:
			p.RenderTargets = append(p.RenderTargets, RenderTargetDef{
				ID:          o.ID(),
				Name:        o.Name(),
				Type:        targetRenderTarget,
				Size:        o.Size,
				RefreshRate: o.RefreshRate,
				RenderList:  append([]string{}, o.RenderList...),
			})
		case *scene.ReflectionProbe:
			p.RenderTargets = append(p.RenderTargets, RenderTargetDef{
				ID:             o.ID(),
				Name:           o.Name(),
				Type:           targetReflectionProbe,
				Size:           o.Size,
				RefreshRate:    o.RefreshRate,
				Position:       vec(o.Position),
				AttachedMeshID: o.AttachedMeshID,
				RenderList:     append([]string{}, o.RenderList...),
			})
		case *scene.Sound:
			def := SoundDef{
				ID:             o.ID(),
				Name:           o.Name(),
				URL:            o.URL,
				Volume:         o.Volume,
				Loop:           o.Loop,
				Autoplay:       o.Autoplay,
				Spatial:        o.Spatial,
				SoundTrackID:   o.SoundTrackID,
				AttachedMeshID: o.AttachedMeshID,
			}
			if t := s.SoundTrack(o.SoundTrackID); t != nil {
				def.SoundTrackName = t.Name
			}
			p.Sounds = append(p.Sounds, def)
		}
	}
	return p
}

func encodeNode(n scene.NodeObject) NodeDef {
	base := n.Base()
	tf := n.Transform()
	def := NodeDef{
		ID:       n.ID(),
		Name:     n.Name(),
		Type:     n.Kind().String(),
		ParentID: base.ParentID,
		Disabled: !base.Enabled,
		Position: vec(tf.Position),
		Rotation: vec(tf.Rotation),
		Scaling:  vec(tf.Scaling),
	}
	switch o := n.(type) {
	case *scene.Mesh:
		m := &MeshDef{
			Primitive:      string(o.Primitive),
			Size:           o.Size,
			Hidden:         !o.Visible,
			ReceiveShadows: o.ReceiveShadows,
			CustomGeometry: o.CustomGeometry,
			Material:       encodeMaterial(o.Material),
		}
		for _, sm := range o.SubMeshes {
			m.SubMeshes = append(m.SubMeshes, SubMeshDef{ID: sm.ID(), Name: sm.Name(), MaterialIndex: sm.MaterialIndex})
		}
		def.Mesh = m
	case *scene.Light:
		def.Light = &LightDef{
			Type:      o.LightType.String(),
			Intensity: o.Intensity,
			Diffuse:   colorHex(o.Diffuse),
			Direction: vec(o.Direction),
			Range:     o.Range,
			Angle:     o.Angle,
		}
	case *scene.Camera:
		def.Camera = &CameraDef{Fov: o.Fov, Target: vec(o.Target), Near: o.Near, Far: o.Far}
	}
	return def
}

func encodeMaterial(m *scene.Material) *MaterialDef {
	if m == nil {
		return nil
	}
	def := &MaterialDef{
		Name:            m.Name,
		Type:            m.Type.String(),
		Diffuse:         colorHex(m.Diffuse),
		Alpha:           m.Alpha,
		Emissive:        m.Emissive,
		SpecularPower:   m.SpecularPower,
		Metallic:        m.Metallic,
		Roughness:       m.Roughness,
		BackFaceCulling: m.BackFaceCulling,
	}
	for _, sub := range m.SubMaterials {
		if sd := encodeMaterial(sub); sd != nil {
			def.SubMaterials = append(def.SubMaterials, *sd)
		}
	}
	return def
}

func encodeAnimation(nodeID string, a *scene.Animation) AnimationDef {
	def := AnimationDef{
		NodeID:          nodeID,
		Name:            a.Name,
		Property:        string(a.Property),
		FramesPerSecond: a.FramesPerSecond,
	}
	for _, k := range a.Keys {
		def.Keys = append(def.Keys, KeyDef{Frame: k.Frame, Value: vec(k.Value)})
	}
	for _, e := range a.Events {
		def.Events = append(def.Events, KeyEventDef{Frame: e.Frame, Name: e.Name, Target: e.Target})
	}
	return def
}

// Marshal encodes the project the way it is stored on disk.
func Marshal(p *Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	return data, nil
}

func Unmarshal(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if p.Version != Version {
		return nil, fmt.Errorf("version %d: %w", p.Version, ErrUnsupportedVersion)
	}
	return &p, nil
}
