// Package transform implements the translate/rotate/scale gizmo drawn over
// the edited scene.
package transform

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/editor"
	"sceneeditor/internal/event"
	"sceneeditor/internal/history"
	"sceneeditor/internal/scene"
)

type Family int

const (
	FamilyPosition Family = iota
	FamilyRotation
	FamilyScaling
	FamilyNone
)

func (f Family) String() string {
	switch f {
	case FamilyPosition:
		return "position"
	case FamilyRotation:
		return "rotation"
	case FamilyScaling:
		return "scaling"
	}
	return "none"
}

// ParseFamily accepts the names produced by Family.String.
func ParseFamily(s string) (Family, bool) {
	for _, f := range []Family{FamilyPosition, FamilyRotation, FamilyScaling, FamilyNone} {
		if f.String() == s {
			return f, true
		}
	}
	return FamilyNone, false
}

type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

var axes = [3]Axis{AxisX, AxisY, AxisZ}

var axisColors = [3]rl.Color{rl.Red, rl.Green, rl.Blue}

type Options struct {
	GizmoLength      float32
	Thickness        float32
	RingHitDistance  float32
	DistanceDivisor  float32
	CoarseMultiplier float32
	FineMultiplier   float32
	// DirectionPerDegree converts rotation-gizmo degrees to light direction units.
	DirectionPerDegree float32
}

func DefaultOptions() Options {
	return Options{
		GizmoLength:        2,
		Thickness:          0.15,
		RingHitDistance:    0.4,
		DistanceDivisor:    10,
		CoarseMultiplier:   1,
		FineMultiplier:     0.1,
		DirectionPerDegree: 1.0 / 90,
	}
}

type gizmo struct {
	mesh   *scene.Mesh
	family Family
	axis   Axis
}

// Transformer owns an overlay scene with one gizmo per family and axis and
// streams pointer drags into the selected object's transform.
type Transformer struct {
	core    *editor.Core
	logger  *zap.Logger
	opts    Options
	history *history.Stack
	input   Input
	rays    RayCaster
	control CameraControl

	overlay *scene.Scene
	gizmos  [3][3]*gizmo

	family Family
	node   scene.Ref
	scale  float32

	axis      Axis
	picked    *gizmo
	plane     Plane
	center    rl.Vector3
	start     float32
	offset    float32
	lastCoord float32
	lastAngle float32
	fine      bool

	unregister []editor.Unregister
}

func New(core *editor.Core, hist *history.Stack, input Input, rays RayCaster, control CameraControl, logger *zap.Logger, opts Options) *Transformer {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Transformer{
		core:    core,
		logger:  logger.Named("transformer"),
		opts:    opts,
		history: hist,
		input:   input,
		rays:    rays,
		control: control,
		overlay: scene.New("transformer"),
		family:  FamilyPosition,
		scale:   1,
	}
	t.overlay.AutoClear = false
	t.createGizmos()
	core.AddScene(t.overlay, true)
	t.unregister = append(t.unregister,
		core.RegisterReceiver(t),
		core.RegisterUpdatable(t),
	)
	return t
}

func (t *Transformer) createGizmos() {
	for f, family := range []Family{FamilyPosition, FamilyRotation, FamilyScaling} {
		for i, axis := range axes {
			primitive := scene.PrimitiveBox
			if family == FamilyRotation {
				primitive = scene.PrimitiveTorus
			}
			m := scene.NewMesh("", family.String()+"-"+string(rune('x'+i)), primitive, 1)
			m.Material = scene.NewStandardMaterial(m.Name(), axisColors[i])
			m.Visible = false
			_ = t.overlay.Add(m)
			t.gizmos[f][i] = &gizmo{mesh: m, family: family, axis: axis}
		}
	}
}

func (t *Transformer) Overlay() *scene.Scene { return t.overlay }

func (t *Transformer) Family() Family { return t.family }

// SetFamily switches the visible gizmo family and abandons any drag in progress.
func (t *Transformer) SetFamily(f Family) {
	if t.axis != AxisNone {
		t.release()
	}
	t.family = f
}

// Node is the object the gizmo is attached to.
func (t *Transformer) Node() scene.Object {
	return t.node.Get(t.core.CurrentScene())
}

func (t *Transformer) Dragging() (Axis, bool) { return t.axis, t.axis != AxisNone }

func (t *Transformer) Dispose() {
	if t.axis != AxisNone {
		t.endDrag()
	}
	for _, u := range t.unregister {
		u()
	}
	t.core.RemoveScene(t.overlay)
}

func (t *Transformer) OnEvent(ev event.Event) bool {
	switch {
	case ev.IsScene(event.ObjectPicked):
		if t.axis != AxisNone {
			t.release()
		}
		t.node.Set(ev.Scene.Object)
		return true
	case ev.IsScene(event.ObjectRemoved):
		if obj := ev.Scene.Object; obj != nil && obj.ID() == t.node.ID {
			if t.axis != AxisNone {
				t.endDrag()
			}
			t.node.Clear()
			return true
		}
	}
	return false
}

func (t *Transformer) OnPreUpdate() {
	switch {
	case t.input.KeyPressed(rl.KeyW):
		t.SetFamily(FamilyPosition)
	case t.input.KeyPressed(rl.KeyE):
		t.SetFamily(FamilyRotation)
	case t.input.KeyPressed(rl.KeyR):
		t.SetFamily(FamilyScaling)
	case t.input.KeyPressed(rl.KeyQ):
		t.SetFamily(FamilyNone)
	}
	t.Update()
}

func (t *Transformer) OnPostUpdate() {}

// target resolves the selected object when the gizmo can act on it.
func (t *Transformer) target() (scene.Transformable, rl.Vector3, bool) {
	s := t.core.CurrentScene()
	obj := t.node.Get(s)
	tr, ok := obj.(scene.Transformable)
	if !ok {
		return nil, rl.Vector3{}, false
	}
	if n, ok := tr.(scene.NodeObject); ok {
		return tr, s.WorldPosition(n), true
	}
	return tr, tr.Transform().Position, true
}

// Update runs one frame of the idle/picking/dragging state machine. Objects
// without a transform are left alone.
func (t *Transformer) Update() {
	tr, center, ok := t.target()
	cam := t.core.ActiveCamera()
	if !ok || cam == nil || t.family == FamilyNone {
		t.hideGizmos()
		if t.axis != AxisNone && !t.input.MouseDown() {
			t.release()
		}
		return
	}
	view := cam.Raylib()
	t.center = center
	t.layout(center, view.Position)

	down := t.input.MouseDown()
	switch {
	case down && t.axis == AxisNone:
		ray := t.rays.Ray(t.input.MousePosition(), view)
		if g := t.pickGizmo(ray); g != nil {
			t.startDrag(tr, g, ray, view.Position)
		}
	case down:
		t.drag(tr, t.rays.Ray(t.input.MousePosition(), view))
	case t.axis != AxisNone:
		t.release()
	}
}

func (t *Transformer) hideGizmos() {
	for f := range t.gizmos {
		for _, g := range t.gizmos[f] {
			g.mesh.Visible = false
		}
	}
}

// layout places the visible family around center with a size proportional
// to the camera distance, so gizmos keep their apparent size.
func (t *Transformer) layout(center, eye rl.Vector3) {
	t.scale = rl.Vector3Length(rl.Vector3Subtract(center, eye)) / t.opts.DistanceDivisor
	length := t.opts.GizmoLength * t.scale
	thick := t.opts.Thickness * t.scale

	for f := range t.gizmos {
		for i, g := range t.gizmos[f] {
			g.mesh.Visible = g.family == t.family
			if !g.mesh.Visible {
				continue
			}
			dir := unit(axes[i])
			tf := g.mesh.Transform()
			switch g.family {
			case FamilyPosition:
				tf.Position = rl.Vector3Add(center, rl.Vector3Scale(dir, length/2))
				tf.Scaling = rl.Vector3{X: thick, Y: thick, Z: thick}
				setComponent(&tf.Scaling, axes[i], length)
			case FamilyScaling:
				tf.Position = rl.Vector3Add(center, rl.Vector3Scale(dir, length))
				tf.Scaling = rl.Vector3{X: thick * 2, Y: thick * 2, Z: thick * 2}
			case FamilyRotation:
				tf.Position = center
				tf.Scaling = rl.Vector3{X: length * 0.8, Y: length * 0.8, Z: length * 0.8}
			}
		}
	}
}

func (t *Transformer) pickGizmo(ray rl.Ray) *gizmo {
	if t.family == FamilyRotation {
		return t.pickRing(ray)
	}
	hit, ok := t.overlay.Pick(ray, math.MaxFloat32)
	if !ok {
		return nil
	}
	for f := range t.gizmos {
		for _, g := range t.gizmos[f] {
			if g.mesh == hit.Mesh {
				return g
			}
		}
	}
	return nil
}

// pickRing finds the rotation ring whose circle passes closest to where the
// ray crosses the ring's plane.
func (t *Transformer) pickRing(ray rl.Ray) *gizmo {
	radius := t.opts.GizmoLength * 0.8 * t.scale
	maxDist := t.opts.RingHitDistance * t.scale
	var best *gizmo
	bestDist := float32(math.MaxFloat32)
	for i, g := range t.gizmos[FamilyRotation] {
		pt, ok := PlaneFromPointNormal(t.center, unit(axes[i])).IntersectRay(ray)
		if !ok {
			continue
		}
		d := float32(math.Abs(float64(rl.Vector3Length(rl.Vector3Subtract(pt, t.center)) - radius)))
		if d < maxDist && d < bestDist {
			best = g
			bestDist = d
		}
	}
	return best
}

// vectorFor is the vector the current family edits on obj.
func (t *Transformer) vectorFor(obj scene.Transformable) (*rl.Vector3, float32) {
	tf := obj.Transform()
	switch t.family {
	case FamilyPosition:
		return &tf.Position, 1
	case FamilyRotation:
		if l, ok := obj.(*scene.Light); ok && (l.LightType == scene.LightDirectional || l.LightType == scene.LightSpot) {
			return &l.Direction, t.opts.DirectionPerDegree
		}
		return &tf.Rotation, 1
	case FamilyScaling:
		return &tf.Scaling, 1
	}
	return nil, 0
}

// coordinate reads the dragged quantity from a plane hit: the axis
// coordinate for translation and scaling, the unwrapped ring angle for
// rotation.
func (t *Transformer) coordinate(pt rl.Vector3) float32 {
	if t.family != FamilyRotation {
		return component(pt, t.axis)
	}
	angle := ringAngle(t.axis, t.center, pt)
	coord := t.lastCoord + wrapDegrees(angle-t.lastAngle)
	t.lastAngle = angle
	return coord
}

func (t *Transformer) multiplier() float32 {
	if t.fine {
		return t.opts.FineMultiplier
	}
	return t.opts.CoarseMultiplier
}

func (t *Transformer) startDrag(obj scene.Transformable, g *gizmo, ray rl.Ray, eye rl.Vector3) {
	viewDir := rl.Vector3Normalize(rl.Vector3Subtract(t.center, eye))
	plane := dragPlane(t.family, g.axis, t.center, viewDir)
	pt, ok := plane.IntersectRay(ray)
	if !ok {
		return
	}
	v, _ := t.vectorFor(obj)
	if v == nil {
		return
	}

	if t.history != nil {
		t.history.Push(obj)
	}
	if t.control != nil {
		t.control.DetachControl()
	}
	t.axis = g.axis
	t.picked = g
	t.plane = plane
	t.fine = t.input.CtrlDown()
	t.lastCoord = 0
	if t.family == FamilyRotation {
		t.lastAngle = ringAngle(t.axis, t.center, pt)
	} else {
		t.lastCoord = component(pt, t.axis)
	}
	t.offset = t.lastCoord
	t.start = component(*v, t.axis)
	g.mesh.Material.Emissive = 1
	t.logger.Debug("drag start",
		zap.Stringer("family", t.family),
		zap.Int("axis", int(t.axis)),
		zap.String("object", obj.ID()),
	)
}

func (t *Transformer) drag(obj scene.Transformable, ray rl.Ray) {
	pt, ok := t.plane.IntersectRay(ray)
	if !ok {
		return
	}
	v, unitScale := t.vectorFor(obj)
	if v == nil {
		return
	}
	if fine := t.input.CtrlDown(); fine != t.fine {
		// Re-base so the multiplier change does not make the value jump.
		t.start = component(*v, t.axis)
		t.offset = t.lastCoord
		t.fine = fine
	}
	coord := t.coordinate(pt)
	t.lastCoord = coord
	setComponent(v, t.axis, t.start+(coord-t.offset)*t.multiplier()*unitScale)
}

// endDrag hands control back to the camera and resets the dragged gizmo.
func (t *Transformer) endDrag() {
	if t.control != nil {
		t.control.AttachControl()
	}
	if t.picked != nil {
		t.picked.mesh.Material.Emissive = 0
	}
	t.axis = AxisNone
	t.picked = nil
}

func (t *Transformer) release() {
	t.endDrag()
	if obj := t.node.Get(t.core.CurrentScene()); obj != nil {
		_ = event.SendSceneEvent(t.core, obj, event.ObjectChanged)
	}
}
