package core

import "math"

// AABB is an axis-aligned box, used for box-shaped media bounds and the
// extent of the world
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a box from its corners
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Intersect clips [tMin, tMax] to the part of the ray inside the box with
// the slab method. ok is false when nothing remains.
func (b AABB) Intersect(ray Ray, tMin, tMax float64) (near, far float64, ok bool) {
	for axis := 0; axis < 3; axis++ {
		o, d := ray.Origin.Channel(axis), ray.Direction.Channel(axis)
		lo, hi := b.Min.Channel(axis), b.Max.Channel(axis)

		if math.Abs(d) < 1e-12 {
			// Parallel to the slab: inside it for all t or never
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}

		t0, t1 := (lo-o)/d, (hi-o)/d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin, tMax = math.Max(tMin, t0), math.Min(tMax, t1)
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}

// Contains reports whether p lies inside or on the box
func (b AABB) Contains(p Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		v := p.Channel(axis)
		if v < b.Min.Channel(axis) || v > b.Max.Channel(axis) {
			return false
		}
	}
	return true
}

// Local maps p to box coordinates, (0,0,0) at Min and (1,1,1) at Max
func (b AABB) Local(p Vec3) Vec3 {
	size := b.Max.Subtract(b.Min)
	local := p.Subtract(b.Min)
	return NewVec3(local.X/size.X, local.Y/size.Y, local.Z/size.Z)
}

// Union returns the box enclosing both boxes
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: NewVec3(math.Min(b.Min.X, other.Min.X), math.Min(b.Min.Y, other.Min.Y), math.Min(b.Min.Z, other.Min.Z)),
		Max: NewVec3(math.Max(b.Max.X, other.Max.X), math.Max(b.Max.Y, other.Max.Y), math.Max(b.Max.Z, other.Max.Z)),
	}
}

// BoundingSphere returns the sphere through the box corners
func (b AABB) BoundingSphere() (Vec3, float64) {
	center := b.Min.Add(b.Max).Multiply(0.5)
	return center, b.Max.Subtract(center).Length()
}
