package geometry

import (
	"math"

	"github.com/df07/go-volumetric-raytracer/pkg/core"
)

// Box is an axis-aligned box boundary
type Box struct {
	Center core.Vec3 // Center point of the box
	Size   core.Vec3 // Half-extents along each axis
	Volume VolumeRef
	bounds core.AABB
}

// NewBox creates a box from its center and half-extents, so a size of
// (1,1,1) creates a 2x2x2 box
func NewBox(center, size core.Vec3, ref VolumeRef) *Box {
	return &Box{
		Center: center,
		Size:   size,
		Volume: ref,
		bounds: core.NewAABB(center.Subtract(size), center.Add(size)),
	}
}

// Hit tests if a ray intersects the box surface
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	tNear, tFar, ok := b.bounds.Intersect(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}

	root := tNear
	if root < tMin || root > tMax {
		root = tFar
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &HitRecord{
		T:      root,
		Point:  ray.At(root),
		Volume: b.Volume,
	}
	hitRecord.SetFaceNormal(ray, b.outwardNormal(hitRecord.Point))

	return hitRecord, true
}

// outwardNormal picks the face whose plane the point is closest to
func (b *Box) outwardNormal(p core.Vec3) core.Vec3 {
	local := p.Subtract(b.Center)

	axis := 0
	best := -1.0
	for i := 0; i < 3; i++ {
		d := math.Abs(local.Channel(i)) / b.Size.Channel(i)
		if d > best {
			best = d
			axis = i
		}
	}

	sign := math.Copysign(1, local.Channel(axis))
	switch axis {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bounds
}

// Contains reports whether p is inside the box
func (b *Box) Contains(p core.Vec3) bool {
	return b.bounds.Contains(p)
}
