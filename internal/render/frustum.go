package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum extracts frustum planes from the camera's view-projection
// matrix (Gribb/Hartmann).
func ExtractFrustum(camera rl.Camera3D, aspect, near, far float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, near, far)
	}

	// VP = P * V
	vp := rl.MatrixMultiply(view, proj)

	return Frustum{planes: [6]Plane{
		normalizePlane(vp.M3+vp.M0, vp.M7+vp.M4, vp.M11+vp.M8, vp.M15+vp.M12),
		normalizePlane(vp.M3-vp.M0, vp.M7-vp.M4, vp.M11-vp.M8, vp.M15-vp.M12),
		normalizePlane(vp.M3+vp.M1, vp.M7+vp.M5, vp.M11+vp.M9, vp.M15+vp.M13),
		normalizePlane(vp.M3-vp.M1, vp.M7-vp.M5, vp.M11-vp.M9, vp.M15-vp.M13),
		normalizePlane(vp.M3+vp.M2, vp.M7+vp.M6, vp.M11+vp.M10, vp.M15+vp.M14),
		normalizePlane(vp.M3-vp.M2, vp.M7-vp.M6, vp.M11-vp.M10, vp.M15-vp.M14),
	}}
}

func normalizePlane(a, b, c, d float32) Plane {
	p := Plane{normal: rl.Vector3{X: a, Y: b, Z: c}, distance: d}
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere reports whether a sphere is inside or intersects the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		// Completely behind any plane means outside
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, point) + f.planes[i].distance
		if dist < 0 {
			return false
		}
	}
	return true
}
