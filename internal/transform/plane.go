package transform

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Plane is the set of points p with dot(Normal, p) + D == 0.
type Plane struct {
	Normal rl.Vector3
	D      float32
}

func PlaneFromPointNormal(point, normal rl.Vector3) Plane {
	n := rl.Vector3Normalize(normal)
	return Plane{Normal: n, D: -rl.Vector3DotProduct(n, point)}
}

func (p Plane) SignedDistance(point rl.Vector3) float32 {
	return rl.Vector3DotProduct(p.Normal, point) + p.D
}

// IntersectRay returns where the ray crosses the plane. Rays parallel to the
// plane or pointing away from it miss.
func (p Plane) IntersectRay(ray rl.Ray) (rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(p.Normal, ray.Direction)
	if math.Abs(float64(denom)) < 1e-6 {
		return rl.Vector3{}, false
	}
	t := -(rl.Vector3DotProduct(p.Normal, ray.Position) + p.D) / denom
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t)), true
}

func component(v rl.Vector3, a Axis) float32 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return 0
}

func setComponent(v *rl.Vector3, a Axis, value float32) {
	switch a {
	case AxisX:
		v.X = value
	case AxisY:
		v.Y = value
	case AxisZ:
		v.Z = value
	}
}

func unit(a Axis) rl.Vector3 {
	switch a {
	case AxisX:
		return rl.Vector3{X: 1}
	case AxisY:
		return rl.Vector3{Y: 1}
	case AxisZ:
		return rl.Vector3{Z: 1}
	}
	return rl.Vector3{}
}

// dragPlane picks the plane a drag along axis is measured in. Translation
// and scaling use the cardinal plane containing the axis that faces the
// viewer most; rotation uses the plane perpendicular to the axis.
func dragPlane(f Family, a Axis, center, viewDir rl.Vector3) Plane {
	if f == FamilyRotation {
		return PlaneFromPointNormal(center, unit(a))
	}
	best := AxisNone
	var bestDot float32 = -1
	for _, other := range []Axis{AxisX, AxisY, AxisZ} {
		if other == a {
			continue
		}
		d := float32(math.Abs(float64(rl.Vector3DotProduct(unit(other), viewDir))))
		if d > bestDot {
			bestDot = d
			best = other
		}
	}
	return PlaneFromPointNormal(center, unit(best))
}

// ringAngle is the angle in degrees of point around axis, measured in the
// plane perpendicular to the axis with the right-hand rule.
func ringAngle(a Axis, center, point rl.Vector3) float32 {
	v := rl.Vector3Subtract(point, center)
	var u, w float32
	switch a {
	case AxisX:
		u, w = v.Y, v.Z
	case AxisY:
		u, w = v.Z, v.X
	case AxisZ:
		u, w = v.X, v.Y
	}
	return float32(math.Atan2(float64(w), float64(u)) * 180 / math.Pi)
}

// wrapDegrees brings d into [-180, 180).
func wrapDegrees(d float32) float32 {
	for d >= 180 {
		d -= 360
	}
	for d < -180 {
		d += 360
	}
	return d
}
