// Package render draws editor scenes with raylib. Scenes are drawn in the
// order the core holds them; a scene without AutoClear is composited over
// the previous one.
package render

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"sceneeditor/internal/scene"
)

const (
	Near float32 = 0.1
	Far  float32 = 1000.0
)

// Stats counts the meshes of the last rendered frame.
type Stats struct {
	Drawn  int
	Culled int
}

type Renderer struct {
	logger *zap.Logger
	// Aspect returns the viewport aspect ratio used for culling.
	Aspect   func() float32
	ShowGrid bool

	stats Stats
}

func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		logger:   logger.Named("render"),
		Aspect:   screenAspect,
		ShowGrid: true,
	}
}

func screenAspect() float32 {
	h := rl.GetScreenHeight()
	if h == 0 {
		return 1
	}
	return float32(rl.GetScreenWidth()) / float32(h)
}

// Stats returns the counters accumulated since the last BeginFrame.
func (r *Renderer) Stats() Stats { return r.stats }

func (r *Renderer) BeginFrame() { r.stats = Stats{} }

// Render draws s through cam. Overlay scenes skip the clear and are drawn
// without depth testing so they stay on top.
func (r *Renderer) Render(s *scene.Scene, cam rl.Camera3D) {
	if s.AutoClear {
		rl.ClearBackground(s.ClearColor)
	}

	rl.BeginMode3D(cam)
	if !s.AutoClear {
		rl.DrawRenderBatchActive()
		rl.DisableDepthTest()
	} else if r.ShowGrid {
		rl.DrawGrid(20, 1.0)
	}

	meshes, culled := r.Visible(s, cam)
	r.stats.Culled += culled
	for _, m := range meshes {
		drawMesh(m, MeshColor(m), s.ForceWireframe)
		r.stats.Drawn++
	}
	if s.AutoClear {
		for _, l := range s.Lights() {
			if l.Base().Enabled {
				drawLight(l)
			}
		}
	}

	if !s.AutoClear {
		rl.DrawRenderBatchActive()
		rl.EnableDepthTest()
	}
	rl.EndMode3D()
}

// Visible returns the meshes of s that are enabled, visible and inside the
// camera frustum, with the number culled by the frustum.
func (r *Renderer) Visible(s *scene.Scene, cam rl.Camera3D) ([]*scene.Mesh, int) {
	aspect := float32(1)
	if r.Aspect != nil {
		aspect = r.Aspect()
	}
	frustum := ExtractFrustum(cam, aspect, Near, Far)

	var out []*scene.Mesh
	culled := 0
	for _, m := range s.Meshes() {
		if !m.Visible || !m.Base().Enabled {
			continue
		}
		tf := m.Transform()
		if !frustum.ContainsSphere(tf.Position, BoundingRadius(m)) {
			culled++
			continue
		}
		out = append(out, m)
	}
	return out, culled
}

// BoundingRadius is the radius of a sphere enclosing the scaled primitive.
func BoundingRadius(m *scene.Mesh) float32 {
	s := m.Transform().Scaling
	scale := float32(math.Max(math.Max(math.Abs(float64(s.X)), math.Abs(float64(s.Y))), math.Abs(float64(s.Z))))
	half := m.Size / 2
	switch m.Primitive {
	case scene.PrimitiveBox:
		return half * float32(math.Sqrt(3)) * scale
	case scene.PrimitivePlane, scene.PrimitiveGround:
		return half * float32(math.Sqrt2) * scale
	}
	return half * scale
}

// MeshColor resolves the colour a mesh is drawn with. Multi-materials draw
// with their first slot; emissive lightens toward white.
func MeshColor(m *scene.Mesh) rl.Color {
	mat := m.Material
	if mat != nil && mat.Type == scene.MaterialMulti {
		if len(mat.SubMaterials) == 0 {
			mat = nil
		} else {
			mat = mat.SubMaterials[0]
		}
	}
	if mat == nil {
		return rl.LightGray
	}
	c := mat.Diffuse
	if mat.Emissive > 0 {
		e := mat.Emissive
		if e > 1 {
			e = 1
		}
		c = lerpColor(c, rl.White, e*0.5)
	}
	c.A = uint8(float32(c.A) * clamp01(mat.Alpha))
	return c
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func drawMesh(m *scene.Mesh, color rl.Color, wireframe bool) {
	tf := m.Transform()
	rl.PushMatrix()
	rl.Translatef(tf.Position.X, tf.Position.Y, tf.Position.Z)
	rl.Rotatef(tf.Rotation.Y, 0, 1, 0)
	rl.Rotatef(tf.Rotation.X, 1, 0, 0)
	rl.Rotatef(tf.Rotation.Z, 0, 0, 1)
	rl.Scalef(tf.Scaling.X, tf.Scaling.Y, tf.Scaling.Z)

	zero := rl.Vector3Zero()
	size := m.Size
	switch m.Primitive {
	case scene.PrimitiveBox:
		if wireframe {
			rl.DrawCubeWires(zero, size, size, size, color)
		} else {
			rl.DrawCube(zero, size, size, size, color)
		}
	case scene.PrimitiveSphere:
		if wireframe {
			rl.DrawSphereWires(zero, size/2, 12, 12, color)
		} else {
			rl.DrawSphere(zero, size/2, color)
		}
	case scene.PrimitivePlane, scene.PrimitiveGround:
		if wireframe {
			rl.DrawCubeWires(zero, size, 0, size, color)
		} else {
			rl.DrawPlane(zero, rl.Vector2{X: size, Y: size}, color)
		}
	case scene.PrimitiveTorus:
		// Rings lie in the XZ plane
		rl.DrawCircle3D(zero, size/2, rl.Vector3{X: 1}, 90, color)
	}
	rl.PopMatrix()
}

func drawLight(l *scene.Light) {
	pos := l.Transform().Position
	rl.DrawSphereWires(pos, 0.2, 6, 6, l.Diffuse)
	switch l.LightType {
	case scene.LightDirectional, scene.LightSpot:
		end := rl.Vector3Add(pos, rl.Vector3Scale(rl.Vector3Normalize(l.Direction), 1.5))
		rl.DrawLine3D(pos, end, rl.Yellow)
	}
}
