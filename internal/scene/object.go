package scene

import (
	"github.com/google/uuid"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind tags the closed set of scene object variants the editor knows about.
type Kind int

const (
	KindScene Kind = iota
	KindMesh
	KindSubMesh
	KindLight
	KindCamera
	KindParticleSystem
	KindLensFlareSystem
	KindSound
	KindReflectionProbe
	KindRenderTarget
)

var kindNames = [...]string{
	KindScene:           "Scene",
	KindMesh:            "Mesh",
	KindSubMesh:         "SubMesh",
	KindLight:           "Light",
	KindCamera:          "Camera",
	KindParticleSystem:  "ParticleSystem",
	KindLensFlareSystem: "LensFlareSystem",
	KindSound:           "Sound",
	KindReflectionProbe: "ReflectionProbe",
	KindRenderTarget:    "RenderTarget",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Object is anything the scene's lookup table can resolve by id.
type Object interface {
	ID() string
	Name() string
	SetName(name string)
	Kind() Kind
	Added() bool
	SetAdded(added bool)
}

// Transformable objects expose position/rotation/scaling to the gizmo and the
// transforms panel.
type Transformable interface {
	Object
	Transform() *Transform
}

// Parented objects hang below another object in the scene graph.
type Parented interface {
	ParentRef() string
}

// Referrer is implemented by everything that holds a non-owning reference to
// another object by id (emitters, render lists, attached meshes). The scene
// sweeps every Referrer when an object is disposed.
type Referrer interface {
	References(id string) bool
	// ReleaseReference drops id. It returns true when the holder has no
	// reason to exist without it and must be disposed as well.
	ReleaseReference(id string) (orphaned bool)
}

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scaling  rl.Vector3
}

func IdentityTransform() Transform {
	return Transform{Scaling: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

// Header carries the identity shared by every object variant.
type Header struct {
	id    string
	name  string
	kind  Kind
	added bool
}

func newHeader(id, name string, kind Kind) Header {
	if id == "" {
		id = NewID()
	}
	return Header{id: id, name: name, kind: kind}
}

// NewID returns a fresh globally unique object id.
func NewID() string {
	return uuid.NewString()
}

func (h *Header) ID() string          { return h.id }
func (h *Header) Name() string        { return h.name }
func (h *Header) SetName(name string) { h.name = name }
func (h *Header) Kind() Kind          { return h.kind }
func (h *Header) Added() bool         { return h.added }
func (h *Header) SetAdded(added bool) { h.added = added }

// Node is the base of every object with a transform and a place in the
// parent/children hierarchy.
type Node struct {
	Header
	transform  Transform
	ParentID   string
	Enabled    bool
	Animations []*Animation
}

func newNode(id, name string, kind Kind) Node {
	return Node{
		Header:    newHeader(id, name, kind),
		transform: IdentityTransform(),
		Enabled:   true,
	}
}

func (n *Node) Transform() *Transform { return &n.transform }

func (n *Node) ParentRef() string { return n.ParentID }

// Base gives access to the shared node fields of a concrete variant.
func (n *Node) Base() *Node { return n }

// NodeObject is implemented by Mesh, Light and Camera.
type NodeObject interface {
	Transformable
	Base() *Node
}

// AddAnimation attaches an animation, replacing one that drives the same property.
func (n *Node) AddAnimation(a *Animation) {
	for i, existing := range n.Animations {
		if existing.Property == a.Property {
			n.Animations[i] = a
			return
		}
	}
	n.Animations = append(n.Animations, a)
}
