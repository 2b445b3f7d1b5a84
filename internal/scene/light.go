package scene

import rl "github.com/gen2brain/raylib-go/raylib"

type LightType int

const (
	LightPoint LightType = iota
	LightDirectional
	LightSpot
	LightHemispheric
)

func (t LightType) String() string {
	switch t {
	case LightPoint:
		return "point"
	case LightDirectional:
		return "directional"
	case LightSpot:
		return "spot"
	case LightHemispheric:
		return "hemispheric"
	}
	return "unknown"
}

func ParseLightType(s string) LightType {
	switch s {
	case "directional":
		return LightDirectional
	case "spot":
		return LightSpot
	case "hemispheric":
		return LightHemispheric
	}
	return LightPoint
}

type Light struct {
	Node
	LightType       LightType
	Intensity       float32
	Diffuse         rl.Color
	Direction       rl.Vector3
	Range           float32
	Angle           float32
	ShadowGenerator *ShadowGenerator
}

func NewLight(id, name string, t LightType) *Light {
	l := &Light{
		Node:      newNode(id, name, KindLight),
		LightType: t,
		Intensity: 1,
		Diffuse:   rl.White,
		Direction: rl.Vector3{X: 0, Y: -1, Z: 0},
		Range:     100,
		Angle:     60,
	}
	return l
}

// CanCastShadows reports whether a shadow generator may be attached.
func (l *Light) CanCastShadows() bool {
	return l.LightType != LightHemispheric
}

func (l *Light) References(id string) bool {
	return l.ShadowGenerator != nil && l.ShadowGenerator.Contains(id)
}

func (l *Light) ReleaseReference(id string) bool {
	if l.ShadowGenerator != nil {
		l.ShadowGenerator.Remove(id)
	}
	return false
}

// ShadowGenerator renders the meshes of its render list into a light's shadow map.
type ShadowGenerator struct {
	MapSize    int
	Bias       float32
	RenderList []string
}

func NewShadowGenerator(mapSize int) *ShadowGenerator {
	return &ShadowGenerator{MapSize: mapSize, Bias: 0.00005}
}

func (g *ShadowGenerator) Add(id string) {
	if !g.Contains(id) {
		g.RenderList = append(g.RenderList, id)
	}
}

func (g *ShadowGenerator) Remove(id string) {
	g.RenderList = removeID(g.RenderList, id)
}

func (g *ShadowGenerator) Contains(id string) bool {
	return containsID(g.RenderList, id)
}

type Camera struct {
	Node
	Fov    float32
	Target rl.Vector3
	Near   float32
	Far    float32
}

func NewCamera(id, name string) *Camera {
	return &Camera{
		Node: newNode(id, name, KindCamera),
		Fov:  45,
		Near: 0.1,
		Far:  1000,
	}
}

// Raylib converts the camera to the renderer's camera description.
func (c *Camera) Raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.transform.Position,
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fov,
		Projection: rl.CameraPerspective,
	}
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []string, id string) []string {
	for i, v := range list {
		if v == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
