// Package project saves and restores the editor's work as a JSON document.
// Objects the user created are written in full; objects of the base scene
// only contribute their modified transforms, or their id once deleted.
package project

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const Version = 1

var ErrUnsupportedVersion = errors.New("project: unsupported version")

// --- JSON types ---

type Project struct {
	Version             int                  `json:"version"`
	GlobalConfiguration GlobalConfiguration  `json:"globalConfiguration"`
	Nodes               []NodeDef            `json:"nodes"`
	ModifiedNodes       []ModifiedNodeDef    `json:"modifiedNodes"`
	RemovedNodes        []string             `json:"removedNodes,omitempty"`
	Animations          []AnimationDef       `json:"animations"`
	ParticleSystems     []ParticleSystemDef  `json:"particleSystems"`
	LensFlareSystems    []LensFlareSystemDef `json:"lensFlareSystems"`
	ShadowGenerators    []ShadowGeneratorDef `json:"shadowGenerators"`
	PostProcesses       PostProcessesDef     `json:"postProcesses"`
	RenderTargets       []RenderTargetDef    `json:"renderTargets"`
	Sounds              []SoundDef           `json:"sounds"`
}

type GlobalConfiguration struct {
	Name            string   `json:"name"`
	AnimationSpeed  float32  `json:"animationSpeed"`
	FramesPerSecond int      `json:"framesPerSecond"`
	AutoAnimate     []string `json:"autoAnimate,omitempty"`
	AnimateFrom     float32  `json:"animateFrom"`
	AnimateTo       float32  `json:"animateTo"`
	AnimateLoop     bool     `json:"animateLoop"`
	ClearColor      string   `json:"clearColor"`
	AmbientColor    string   `json:"ambientColor"`
	FogEnabled      bool     `json:"fogEnabled,omitempty"`
	FogDensity      float32  `json:"fogDensity"`
	ForceWireframe  bool     `json:"forceWireframe,omitempty"`
	ActiveCamera    string   `json:"activeCamera,omitempty"`
}

// NodeDef is a mesh, light or camera created in the editor. Exactly one of
// Mesh, Light and Camera is set, matching Type.
type NodeDef struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	ParentID string     `json:"parentId,omitempty"`
	Disabled bool       `json:"disabled,omitempty"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scaling  [3]float32 `json:"scaling"`
	Mesh     *MeshDef   `json:"mesh,omitempty"`
	Light    *LightDef  `json:"light,omitempty"`
	Camera   *CameraDef `json:"camera,omitempty"`
}

type MeshDef struct {
	Primitive      string       `json:"primitive"`
	Size           float32      `json:"size"`
	Hidden         bool         `json:"hidden,omitempty"`
	ReceiveShadows bool         `json:"receiveShadows,omitempty"`
	CustomGeometry bool         `json:"customGeometry,omitempty"`
	Material       *MaterialDef `json:"material,omitempty"`
	SubMeshes      []SubMeshDef `json:"subMeshes,omitempty"`
}

type SubMeshDef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MaterialIndex int    `json:"materialIndex"`
}

type MaterialDef struct {
	Name            string        `json:"name"`
	Type            string        `json:"type"`
	Diffuse         string        `json:"diffuse,omitempty"`
	Alpha           float32       `json:"alpha"`
	Emissive        float32       `json:"emissive,omitempty"`
	SpecularPower   float32       `json:"specularPower,omitempty"`
	Metallic        float32       `json:"metallic,omitempty"`
	Roughness       float32       `json:"roughness,omitempty"`
	BackFaceCulling bool          `json:"backFaceCulling"`
	SubMaterials    []MaterialDef `json:"subMaterials,omitempty"`
}

type LightDef struct {
	Type      string     `json:"type"`
	Intensity float32    `json:"intensity"`
	Diffuse   string     `json:"diffuse"`
	Direction [3]float32 `json:"direction"`
	Range     float32    `json:"range"`
	Angle     float32    `json:"angle"`
}

type CameraDef struct {
	Fov    float32    `json:"fov"`
	Target [3]float32 `json:"target"`
	Near   float32    `json:"near"`
	Far    float32    `json:"far"`
}

// ModifiedNodeDef carries the transform of a base-scene node moved in the
// editor.
type ModifiedNodeDef struct {
	ID       string     `json:"id"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scaling  [3]float32 `json:"scaling"`
}

type AnimationDef struct {
	NodeID          string        `json:"nodeId"`
	Name            string        `json:"name"`
	Property        string        `json:"property"`
	FramesPerSecond int           `json:"framesPerSecond"`
	Keys            []KeyDef      `json:"keys"`
	Events          []KeyEventDef `json:"events,omitempty"`
}

type KeyDef struct {
	Frame float32    `json:"frame"`
	Value [3]float32 `json:"value"`
}

type KeyEventDef struct {
	Frame  float32 `json:"frame"`
	Name   string  `json:"name"`
	Target string  `json:"target,omitempty"`
}

// TextureDef embeds the image as a data URI so the project does not depend
// on file paths.
type TextureDef struct {
	Name    string  `json:"name"`
	Data    string  `json:"data"`
	UOffset float32 `json:"uOffset,omitempty"`
	VOffset float32 `json:"vOffset,omitempty"`
}

type ParticleSystemDef struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	EmitterID   string      `json:"emitterId"`
	Capacity    int         `json:"capacity"`
	EmitRate    float32     `json:"emitRate"`
	MinSize     float32     `json:"minSize"`
	MaxSize     float32     `json:"maxSize"`
	MinLifeTime float32     `json:"minLifeTime"`
	MaxLifeTime float32     `json:"maxLifeTime"`
	Gravity     [3]float32  `json:"gravity"`
	Color       string      `json:"color"`
	Texture     *TextureDef `json:"texture,omitempty"`
}

type LensFlareSystemDef struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	EmitterID string         `json:"emitterId"`
	Flares    []LensFlareDef `json:"flares"`
}

type LensFlareDef struct {
	Size     float32     `json:"size"`
	Position float32     `json:"position"`
	Color    string      `json:"color"`
	Texture  *TextureDef `json:"texture,omitempty"`
}

type ShadowGeneratorDef struct {
	LightID    string   `json:"lightId"`
	MapSize    int      `json:"mapSize"`
	Bias       float32  `json:"bias"`
	RenderList []string `json:"renderList"`
}

type PostProcessesDef struct {
	Exposure    float32 `json:"exposure"`
	Bloom       bool    `json:"bloom,omitempty"`
	BloomWeight float32 `json:"bloomWeight"`
	FXAA        bool    `json:"fxaa,omitempty"`
	SSAO        bool    `json:"ssao,omitempty"`
	SSAORatio   float32 `json:"ssaoRatio"`
}

const (
	targetRenderTarget    = "renderTarget"
	targetReflectionProbe = "reflectionProbe"
)

// RenderTargetDef describes a render target or a reflection probe. Render
// lists and the attached mesh are resolved by id once every node exists.
type RenderTargetDef struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Size           int        `json:"size"`
	RefreshRate    int        `json:"refreshRate"`
	Position       [3]float32 `json:"position,omitempty"`
	AttachedMeshID string     `json:"attachedMeshId,omitempty"`
	RenderList     []string   `json:"renderList"`
}

type SoundDef struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	URL            string  `json:"url"`
	Volume         float32 `json:"volume"`
	Loop           bool    `json:"loop,omitempty"`
	Autoplay       bool    `json:"autoplay,omitempty"`
	Spatial        bool    `json:"spatial,omitempty"`
	SoundTrackID   string  `json:"soundTrackId"`
	SoundTrackName string  `json:"soundTrackName"`
	AttachedMeshID string  `json:"attachedMeshId,omitempty"`
}

// --- Value mapping ---

func vec(v rl.Vector3) [3]float32 { return [3]float32{v.X, v.Y, v.Z} }

func toVec(a [3]float32) rl.Vector3 { return rl.Vector3{X: a[0], Y: a[1], Z: a[2]} }

func colorHex(c rl.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func parseColor(s string) (rl.Color, error) {
	var c rl.Color
	if s == "" {
		return rl.White, nil
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
		return rl.White, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}
