package scene

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Primitive string

const (
	PrimitiveBox    Primitive = "box"
	PrimitiveSphere Primitive = "sphere"
	PrimitivePlane  Primitive = "plane"
	PrimitiveGround Primitive = "ground"
	PrimitiveTorus  Primitive = "torus"
)

type MaterialType int

const (
	MaterialStandard MaterialType = iota
	MaterialPBR
	MaterialMulti
)

func (t MaterialType) String() string {
	switch t {
	case MaterialStandard:
		return "standard"
	case MaterialPBR:
		return "pbr"
	case MaterialMulti:
		return "multi"
	}
	return "unknown"
}

func ParseMaterialType(s string) MaterialType {
	switch s {
	case "pbr":
		return MaterialPBR
	case "multi":
		return MaterialMulti
	}
	return MaterialStandard
}

// Material is shared freely between meshes; it is not part of the object table.
type Material struct {
	Name            string
	Type            MaterialType
	Diffuse         rl.Color
	Alpha           float32
	Emissive        float32
	SpecularPower   float32
	Metallic        float32
	Roughness       float32
	BackFaceCulling bool
	SubMaterials    []*Material
}

func NewStandardMaterial(name string, diffuse rl.Color) *Material {
	return &Material{
		Name:            name,
		Type:            MaterialStandard,
		Diffuse:         diffuse,
		Alpha:           1,
		SpecularPower:   64,
		BackFaceCulling: true,
	}
}

func NewPBRMaterial(name string, albedo rl.Color) *Material {
	return &Material{
		Name:            name,
		Type:            MaterialPBR,
		Diffuse:         albedo,
		Alpha:           1,
		Metallic:        0,
		Roughness:       1,
		BackFaceCulling: true,
	}
}

func NewMultiMaterial(name string, subs ...*Material) *Material {
	return &Material{Name: name, Type: MaterialMulti, Alpha: 1, SubMaterials: subs}
}

type Mesh struct {
	Node
	Primitive      Primitive
	Size           float32
	Material       *Material
	SubMeshes      []*SubMesh
	CustomGeometry bool
	ReceiveShadows bool
	Visible        bool
}

func NewMesh(id, name string, primitive Primitive, size float32) *Mesh {
	return &Mesh{
		Node:      newNode(id, name, KindMesh),
		Primitive: primitive,
		Size:      size,
		Visible:   true,
	}
}

// AddSubMesh registers a sub-mesh drawing with the given material slot.
func (m *Mesh) AddSubMesh(name string, materialIndex int) *SubMesh {
	return m.AddSubMeshID("", name, materialIndex)
}

// AddSubMeshID is AddSubMesh with a caller-chosen id, used when restoring.
func (m *Mesh) AddSubMeshID(id, name string, materialIndex int) *SubMesh {
	sm := &SubMesh{
		Header:        newHeader(id, name, KindSubMesh),
		MeshID:        m.ID(),
		MaterialIndex: materialIndex,
	}
	m.SubMeshes = append(m.SubMeshes, sm)
	return sm
}

// References reports whether id is one of the mesh's sub-meshes.
func (m *Mesh) References(id string) bool {
	for _, sm := range m.SubMeshes {
		if sm.ID() == id {
			return true
		}
	}
	return false
}

// ReleaseReference forgets a disposed sub-mesh. The mesh stays.
func (m *Mesh) ReleaseReference(id string) bool {
	for i, sm := range m.SubMeshes {
		if sm.ID() == id {
			m.SubMeshes = append(m.SubMeshes[:i:i], m.SubMeshes[i+1:]...)
			break
		}
	}
	return false
}

// Clone copies the mesh under a new id. Materials are shared, sub-meshes and
// animations are duplicated.
func (m *Mesh) Clone(id, name string) *Mesh {
	c := NewMesh(id, name, m.Primitive, m.Size)
	c.transform = m.transform
	c.ParentID = m.ParentID
	c.Enabled = m.Enabled
	c.Material = m.Material
	c.ReceiveShadows = m.ReceiveShadows
	c.Visible = m.Visible
	for _, sm := range m.SubMeshes {
		c.AddSubMesh(sm.Name(), sm.MaterialIndex)
	}
	for _, a := range m.Animations {
		c.Animations = append(c.Animations, a.Clone())
	}
	return c
}

type SubMesh struct {
	Header
	MeshID        string
	MaterialIndex int
}

func (sm *SubMesh) ParentRef() string { return sm.MeshID }

// EffectiveMaterial resolves the material this sub-mesh draws with: the
// indexed slot of a multi-material, or the owning mesh's material.
func (sm *SubMesh) EffectiveMaterial(s *Scene) *Material {
	mesh, ok := s.Lookup(sm.MeshID).(*Mesh)
	if !ok || mesh.Material == nil {
		return nil
	}
	if mesh.Material.Type != MaterialMulti {
		return mesh.Material
	}
	if sm.MaterialIndex < 0 || sm.MaterialIndex >= len(mesh.Material.SubMaterials) {
		return nil
	}
	return mesh.Material.SubMaterials[sm.MaterialIndex]
}

func (sm *SubMesh) String() string {
	return fmt.Sprintf("SubMesh(%s #%d)", sm.MeshID, sm.MaterialIndex)
}
