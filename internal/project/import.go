package project

import (
	"fmt"

	"go.uber.org/zap"

	"sceneeditor/internal/scene"
)

// Importer applies a project onto a scene holding the base content.
type Importer struct {
	logger *zap.Logger
}

func NewImporter(logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{logger: logger.Named("import")}
}

// Apply restores p into s. Base objects deleted in the editor are disposed
// again and objects whose id already exists in s are skipped. A node whose
// parent chain loops back is detached from its parent.
// Nodes are created first; references held by the other objects are resolved
// afterwards, and references to ids that never appeared are dropped.
func (im *Importer) Apply(s *scene.Scene, p *Project) error {
	if p.Version != Version {
		return fmt.Errorf("version %d: %w", p.Version, ErrUnsupportedVersion)
	}
	if err := im.applyGlobal(s, p); err != nil {
		return err
	}

	for _, id := range p.RemovedNodes {
		if !s.Contains(id) {
			im.logger.Debug("removed node not in scene", zap.String("id", id))
			continue
		}
		if _, err := s.Dispose(id); err != nil {
			return fmt.Errorf("removed node %s: %w", id, err)
		}
	}

	var nodes []scene.NodeObject
	for i := range p.Nodes {
		def := &p.Nodes[i]
		if s.Contains(def.ID) {
			im.logger.Debug("node exists, skipped", zap.String("id", def.ID))
			continue
		}
		n, err := decodeNode(def)
		if err != nil {
			return fmt.Errorf("node %s: %w", def.ID, err)
		}
		n.SetAdded(true)
		if err := s.Add(n); err != nil {
			return fmt.Errorf("node %s: %w", def.ID, err)
		}
		nodes = append(nodes, n)
	}
	for _, n := range nodes {
		if s.InParentCycle(n) {
			im.logger.Warn("parent cycle broken", zap.String("id", n.ID()), zap.String("parent", n.Base().ParentID))
			n.Base().ParentID = ""
		}
	}

	for _, def := range p.ModifiedNodes {
		t, ok := s.Lookup(def.ID).(scene.Transformable)
		if !ok {
			im.logger.Warn("modified node not in scene", zap.String("id", def.ID))
			continue
		}
		*t.Transform() = scene.Transform{
			Position: toVec(def.Position),
			Rotation: toVec(def.Rotation),
			Scaling:  toVec(def.Scaling),
		}
	}

	for _, def := range p.Animations {
		n, ok := s.Lookup(def.NodeID).(scene.NodeObject)
		if !ok {
			im.logger.Warn("animated node not in scene", zap.String("id", def.NodeID), zap.String("animation", def.Name))
			continue
		}
		n.Base().AddAnimation(decodeAnimation(def))
	}

	for _, def := range p.ShadowGenerators {
		l, ok := s.Lookup(def.LightID).(*scene.Light)
		if !ok || !l.CanCastShadows() {
			im.logger.Warn("shadow generator without light", zap.String("light", def.LightID))
			continue
		}
		g := scene.NewShadowGenerator(def.MapSize)
		g.Bias = def.Bias
		g.RenderList = im.existing(s, def.RenderList)
		l.ShadowGenerator = g
	}

	steps := []func(*scene.Scene, *Project) error{
		im.applyParticleSystems,
		im.applyLensFlares,
		im.applyRenderTargets,
		im.applySounds,
	}
	for _, step := range steps {
		if err := step(s, p); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) applyGlobal(s *scene.Scene, p *Project) error {
	g := p.GlobalConfiguration
	clearColor, err := parseColor(g.ClearColor)
	if err != nil {
		return fmt.Errorf("clear color: %w", err)
	}
	ambient, err := parseColor(g.AmbientColor)
	if err != nil {
		return fmt.Errorf("ambient color: %w", err)
	}
	if g.Name != "" {
		s.SetName(g.Name)
	}
	s.ClearColor = clearColor
	s.AmbientColor = ambient
	s.FogEnabled = g.FogEnabled
	s.FogDensity = g.FogDensity
	s.ForceWireframe = g.ForceWireframe
	s.Animation = scene.AnimationConfig{
		Speed:           g.AnimationSpeed,
		FramesPerSecond: g.FramesPerSecond,
		AutoAnimate:     append([]string(nil), g.AutoAnimate...),
		From:            g.AnimateFrom,
		To:              g.AnimateTo,
		Loop:            g.AnimateLoop,
	}
	if g.ActiveCamera != "" {
		s.ActiveCameraID = g.ActiveCamera
	}
	s.PostProcesses = scene.PostProcesses{
		Exposure:    p.PostProcesses.Exposure,
		Bloom:       p.PostProcesses.Bloom,
		BloomWeight: p.PostProcesses.BloomWeight,
		FXAA:        p.PostProcesses.FXAA,
		SSAO:        p.PostProcesses.SSAO,
		SSAORatio:   p.PostProcesses.SSAORatio,
	}
	return nil
}

func (im *Importer) applyParticleSystems(s *scene.Scene, p *Project) error {
	for _, def := range p.ParticleSystems {
		if s.Contains(def.ID) {
			continue
		}
		if _, ok := s.Lookup(def.EmitterID).(*scene.Mesh); !ok {
			im.logger.Warn("particle system emitter missing", zap.String("id", def.ID), zap.String("emitter", def.EmitterID))
			continue
		}
		color, err := parseColor(def.Color)
		if err != nil {
			return fmt.Errorf("particle system %s: %w", def.ID, err)
		}
		tex, err := decodeTexture(def.Texture)
		if err != nil {
			return fmt.Errorf("particle system %s: %w", def.ID, err)
		}
		ps := scene.NewParticleSystem(def.ID, def.Name, def.Capacity)
		ps.EmitterID = def.EmitterID
		ps.EmitRate = def.EmitRate
		ps.MinSize, ps.MaxSize = def.MinSize, def.MaxSize
		ps.MinLifeTime, ps.MaxLifeTime = def.MinLifeTime, def.MaxLifeTime
		ps.Gravity = toVec(def.Gravity)
		ps.Color = color
		ps.Texture = tex
		if err := im.add(s, ps); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) applyLensFlares(s *scene.Scene, p *Project) error {
	for _, def := range p.LensFlareSystems {
		if s.Contains(def.ID) {
			continue
		}
		switch s.Lookup(def.EmitterID).(type) {
		case *scene.Mesh, *scene.Light:
		default:
			im.logger.Warn("lens flare emitter missing", zap.String("id", def.ID), zap.String("emitter", def.EmitterID))
			continue
		}
		lf := scene.NewLensFlareSystem(def.ID, def.Name, def.EmitterID)
		for _, fd := range def.Flares {
			color, err := parseColor(fd.Color)
			if err != nil {
				return fmt.Errorf("lens flare %s: %w", def.ID, err)
			}
			tex, err := decodeTexture(fd.Texture)
			if err != nil {
				return fmt.Errorf("lens flare %s: %w", def.ID, err)
			}
			lf.AddFlare(fd.Size, fd.Position, color, tex)
		}
		if err := im.add(s, lf); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) applyRenderTargets(s *scene.Scene, p *Project) error {
	for _, def := range p.RenderTargets {
		if s.Contains(def.ID) {
			continue
		}
		var obj scene.Object
		switch def.Type {
		case targetReflectionProbe:
			probe := scene.NewReflectionProbe(def.ID, def.Name, def.Size)
			probe.RefreshRate = def.RefreshRate
			probe.Position = toVec(def.Position)
			if _, ok := s.Lookup(def.AttachedMeshID).(*scene.Mesh); ok {
				probe.AttachedMeshID = def.AttachedMeshID
			} else if def.AttachedMeshID != "" {
				im.logger.Warn("probe attached mesh missing", zap.String("id", def.ID), zap.String("mesh", def.AttachedMeshID))
			}
			probe.RenderList = im.existing(s, def.RenderList)
			obj = probe
		default:
			rt := scene.NewRenderTarget(def.ID, def.Name, def.Size)
			rt.RefreshRate = def.RefreshRate
			rt.RenderList = im.existing(s, def.RenderList)
			obj = rt
		}
		if err := im.add(s, obj); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) applySounds(s *scene.Scene, p *Project) error {
	for _, def := range p.Sounds {
		if s.Contains(def.ID) {
			continue
		}
		if def.SoundTrackID != "" && s.SoundTrack(def.SoundTrackID) == nil {
			s.AddSoundTrack(scene.NewSoundTrack(def.SoundTrackID, def.SoundTrackName))
		}
		snd := scene.NewSound(def.ID, def.Name, def.URL)
		snd.Volume = def.Volume
		snd.Loop = def.Loop
		snd.Autoplay = def.Autoplay
		snd.SoundTrackID = def.SoundTrackID
		if _, ok := s.Lookup(def.AttachedMeshID).(*scene.Mesh); ok {
			snd.AttachedMeshID = def.AttachedMeshID
			snd.Spatial = def.Spatial
		} else if def.AttachedMeshID != "" {
			im.logger.Warn("sound attached mesh missing", zap.String("id", def.ID), zap.String("mesh", def.AttachedMeshID))
		}
		if err := im.add(s, snd); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) add(s *scene.Scene, obj scene.Object) error {
	obj.SetAdded(true)
	if err := s.Add(obj); err != nil {
		return fmt.Errorf("%s %s: %w", obj.Kind(), obj.ID(), err)
	}
	return nil
}

// existing keeps the ids of ids that resolve in s.
func (im *Importer) existing(s *scene.Scene, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.Contains(id) {
			out = append(out, id)
		} else {
			im.logger.Debug("dropped unresolved reference", zap.String("id", id))
		}
	}
	return out
}

func decodeNode(def *NodeDef) (scene.NodeObject, error) {
	var n scene.NodeObject
	switch {
	case def.Mesh != nil:
		m := scene.NewMesh(def.ID, def.Name, scene.Primitive(def.Mesh.Primitive), def.Mesh.Size)
		m.Visible = !def.Mesh.Hidden
		m.ReceiveShadows = def.Mesh.ReceiveShadows
		m.CustomGeometry = def.Mesh.CustomGeometry
		mat, err := decodeMaterial(def.Mesh.Material)
		if err != nil {
			return nil, err
		}
		m.Material = mat
		for _, sm := range def.Mesh.SubMeshes {
			m.AddSubMeshID(sm.ID, sm.Name, sm.MaterialIndex)
		}
		n = m
	case def.Light != nil:
		diffuse, err := parseColor(def.Light.Diffuse)
		if err != nil {
			return nil, err
		}
		l := scene.NewLight(def.ID, def.Name, scene.ParseLightType(def.Light.Type))
		l.Intensity = def.Light.Intensity
		l.Diffuse = diffuse
		l.Direction = toVec(def.Light.Direction)
		l.Range = def.Light.Range
		l.Angle = def.Light.Angle
		n = l
	case def.Camera != nil:
		c := scene.NewCamera(def.ID, def.Name)
		c.Fov = def.Camera.Fov
		c.Target = toVec(def.Camera.Target)
		c.Near, c.Far = def.Camera.Near, def.Camera.Far
		n = c
	default:
		return nil, fmt.Errorf("unsupported node type %q", def.Type)
	}

	base := n.Base()
	base.ParentID = def.ParentID
	base.Enabled = !def.Disabled
	*n.Transform() = scene.Transform{
		Position: toVec(def.Position),
		Rotation: toVec(def.Rotation),
		Scaling:  toVec(def.Scaling),
	}
	return n, nil
}

func decodeMaterial(def *MaterialDef) (*scene.Material, error) {
	if def == nil {
		return nil, nil
	}
	diffuse, err := parseColor(def.Diffuse)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", def.Name, err)
	}
	m := &scene.Material{
		Name:            def.Name,
		Type:            scene.ParseMaterialType(def.Type),
		Diffuse:         diffuse,
		Alpha:           def.Alpha,
		Emissive:        def.Emissive,
		SpecularPower:   def.SpecularPower,
		Metallic:        def.Metallic,
		Roughness:       def.Roughness,
		BackFaceCulling: def.BackFaceCulling,
	}
	for i := range def.SubMaterials {
		sub, err := decodeMaterial(&def.SubMaterials[i])
		if err != nil {
			return nil, err
		}
		m.SubMaterials = append(m.SubMaterials, sub)
	}
	return m, nil
}

func decodeAnimation(def AnimationDef) *scene.Animation {
	a := scene.NewAnimation(def.Name, scene.AnimationProperty(def.Property), def.FramesPerSecond)
	for _, k := range def.Keys {
		a.SetKey(k.Frame, toVec(k.Value))
	}
	for _, e := range def.Events {
		a.Events = append(a.Events, scene.KeyEvent{Frame: e.Frame, Name: e.Name, Target: e.Target})
	}
	return a
}
