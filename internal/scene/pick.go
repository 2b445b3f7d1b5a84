package scene

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PickHit describes the closest mesh under a ray.
type PickHit struct {
	Mesh     *Mesh
	Point    rl.Vector3
	Distance float32
}

// lineage returns n followed by its ancestors, nearest first. The walk stops
// at a parent already visited, so a ParentID cycle ends like a root.
func (s *Scene) lineage(n NodeObject) []NodeObject {
	out := []NodeObject{n}
	seen := map[string]bool{n.ID(): true}
	for {
		parent, ok := s.Lookup(out[len(out)-1].Base().ParentID).(NodeObject)
		if !ok || seen[parent.ID()] {
			return out
		}
		seen[parent.ID()] = true
		out = append(out, parent)
	}
}

// InParentCycle reports whether n is its own ancestor.
func (s *Scene) InParentCycle(n NodeObject) bool {
	chain := s.lineage(n)
	return chain[len(chain)-1].Base().ParentID == n.ID()
}

// WorldPosition composes the parent chain (scale, then X/Y/Z rotation, then
// translation).
func (s *Scene) WorldPosition(n NodeObject) rl.Vector3 {
	chain := s.lineage(n)
	root := chain[len(chain)-1].Transform()
	pos, rot, scale := root.Position, root.Rotation, root.Scaling
	for i := len(chain) - 2; i >= 0; i-- {
		t := chain[i].Transform()
		scaled := rl.Vector3{
			X: t.Position.X * scale.X,
			Y: t.Position.Y * scale.Y,
			Z: t.Position.Z * scale.Z,
		}
		pos = rl.Vector3Add(pos, rl.Vector3Transform(scaled, rotationMatrix(rot)))
		rot = rl.Vector3Add(rot, t.Rotation)
		scale = rl.Vector3{X: scale.X * t.Scaling.X, Y: scale.Y * t.Scaling.Y, Z: scale.Z * t.Scaling.Z}
	}
	return pos
}

func (s *Scene) WorldRotation(n NodeObject) rl.Vector3 {
	var rot rl.Vector3
	for _, o := range s.lineage(n) {
		rot = rl.Vector3Add(rot, o.Transform().Rotation)
	}
	return rot
}

func (s *Scene) WorldScaling(n NodeObject) rl.Vector3 {
	sc := rl.Vector3{X: 1, Y: 1, Z: 1}
	for _, o := range s.lineage(n) {
		t := o.Transform().Scaling
		sc = rl.Vector3{X: sc.X * t.X, Y: sc.Y * t.Y, Z: sc.Z * t.Z}
	}
	return sc
}

func rotationMatrix(deg rl.Vector3) rl.Matrix {
	rx := float64(deg.X) * math.Pi / 180
	ry := float64(deg.Y) * math.Pi / 180
	rz := float64(deg.Z) * math.Pi / 180
	return rl.MatrixMultiply(rl.MatrixMultiply(rl.MatrixRotateX(float32(rx)), rl.MatrixRotateY(float32(ry))), rl.MatrixRotateZ(float32(rz)))
}

// Pick returns the closest visible mesh hit by the ray within maxDistance.
func (s *Scene) Pick(ray rl.Ray, maxDistance float32) (PickHit, bool) {
	dir := rl.Vector3Normalize(ray.Direction)
	best := PickHit{Distance: maxDistance}
	hit := false

	for _, m := range s.Meshes() {
		if !m.Visible || !m.Enabled {
			continue
		}
		center := s.WorldPosition(m)
		scale := s.WorldScaling(m)

		var t float32
		var ok bool
		if m.Primitive == PrimitiveSphere {
			r := m.Size / 2 * maxAbs(scale)
			t, ok = raySphere(ray.Position, dir, center, r)
		} else {
			half := rl.Vector3{X: abs(scale.X) * m.Size / 2, Y: abs(scale.Y) * m.Size / 2, Z: abs(scale.Z) * m.Size / 2}
			if m.Primitive == PrimitivePlane || m.Primitive == PrimitiveGround {
				half.Y = 0.01
			}
			t, ok = rayBox(ray.Position, dir, rl.Vector3Subtract(center, half), rl.Vector3Add(center, half))
		}
		if ok && t < best.Distance {
			best = PickHit{Mesh: m, Point: rl.Vector3Add(ray.Position, rl.Vector3Scale(dir, t)), Distance: t}
			hit = true
		}
	}
	return best, hit
}

// rayBox is the slab test; it returns the entry distance, or the exit
// distance when the origin is inside the box.
func rayBox(origin, dir, min, max rl.Vector3) (float32, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{dir.X, dir.Y, dir.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

func raySphere(origin, dir, center rl.Vector3, radius float32) (float32, bool) {
	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(dir, dir)
	b := 2.0 * rl.Vector3DotProduct(oc, dir)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(discriminant)))
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func maxAbs(v rl.Vector3) float32 {
	m := abs(v.X)
	if a := abs(v.Y); a > m {
		m = a
	}
	if a := abs(v.Z); a > m {
		m = a
	}
	return m
}
