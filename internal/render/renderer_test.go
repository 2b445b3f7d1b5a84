package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sceneeditor/internal/scene"
)

func testCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

func TestFrustumContainsSphere(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1, Near, Far)

	assert.True(t, f.ContainsSphere(rl.Vector3{}, 1))
	assert.True(t, f.ContainsPoint(rl.Vector3{X: 1}))
	assert.False(t, f.ContainsSphere(rl.Vector3{Z: 20}, 1), "behind the camera")
	assert.False(t, f.ContainsSphere(rl.Vector3{X: 100}, 1), "far to the side")
	assert.False(t, f.ContainsSphere(rl.Vector3{Z: -2000}, 1), "beyond the far plane")
	assert.True(t, f.ContainsSphere(rl.Vector3{X: 100}, 100), "large enough to intersect")
}

func TestVisibleSkipsHiddenAndCulled(t *testing.T) {
	s := scene.New("Main")
	inView := scene.NewMesh("a", "A", scene.PrimitiveBox, 1)
	hidden := scene.NewMesh("b", "B", scene.PrimitiveBox, 1)
	hidden.Visible = false
	disabled := scene.NewMesh("c", "C", scene.PrimitiveSphere, 1)
	disabled.Enabled = false
	away := scene.NewMesh("d", "D", scene.PrimitiveBox, 1)
	away.Transform().Position = rl.Vector3{Z: 50}
	for _, m := range []*scene.Mesh{inView, hidden, disabled, away} {
		require.NoError(t, s.Add(m))
	}

	r := NewRenderer(nil)
	r.Aspect = func() float32 { return 16.0 / 9.0 }
	meshes, culled := r.Visible(s, testCamera())
	require.Len(t, meshes, 1)
	assert.Same(t, inView, meshes[0])
	assert.Equal(t, 1, culled)
}

func TestBoundingRadius(t *testing.T) {
	box := scene.NewMesh("", "box", scene.PrimitiveBox, 2)
	assert.InDelta(t, 1.7320508, BoundingRadius(box), 1e-5)

	sphere := scene.NewMesh("", "sphere", scene.PrimitiveSphere, 2)
	sphere.Transform().Scaling = rl.Vector3{X: 1, Y: -3, Z: 1}
	assert.InDelta(t, 3, BoundingRadius(sphere), 1e-5)
}

func TestMeshColor(t *testing.T) {
	m := scene.NewMesh("", "m", scene.PrimitiveBox, 1)
	assert.Equal(t, rl.LightGray, MeshColor(m))

	mat := scene.NewStandardMaterial("red", rl.NewColor(200, 0, 0, 255))
	mat.Alpha = 0.5
	m.Material = mat
	assert.Equal(t, rl.NewColor(200, 0, 0, 127), MeshColor(m))

	mat.Alpha = 1
	mat.Emissive = 1
	assert.Equal(t, rl.NewColor(228, 128, 128, 255), MeshColor(m))

	m.Material = scene.NewMultiMaterial("multi", scene.NewStandardMaterial("blue", rl.Blue))
	assert.Equal(t, rl.Blue, MeshColor(m))
}
