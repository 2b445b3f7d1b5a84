package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"sceneeditor/internal/scene"
)

// DefaultScene is the base scene an editor session starts from. Its objects
// are not marked as added, so a project export only records edits made on
// top of it. Ids are fixed so an exported project can be applied to a
// freshly built copy.
func DefaultScene() *scene.Scene {
	s := scene.New("Scene")

	cam := scene.NewCamera("camera", "Camera")
	cam.Transform().Position = rl.Vector3{X: 0, Y: 5, Z: -10}
	s.ActiveCameraID = cam.ID()

	ambient := scene.NewLight("ambient", "Ambient", scene.LightHemispheric)
	ambient.Direction = rl.Vector3{Y: 1}
	ambient.Intensity = 0.7

	ground := scene.NewMesh("ground", "Ground", scene.PrimitiveGround, 20)
	ground.Material = scene.NewStandardMaterial("ground", rl.Gray)

	box := scene.NewMesh("box", "Box", scene.PrimitiveBox, 1)
	box.Transform().Position = rl.Vector3{Y: 0.5}

	for _, obj := range []scene.Object{cam, ambient, ground, box} {
		// Fresh scene and distinct ids
		_ = s.Add(obj)
	}
	return s
}
